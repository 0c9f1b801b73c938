// SPDX-License-Identifier: MIT

package report

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/katalvlaran/modiv/pareto"
	"github.com/katalvlaran/modiv/solution"
)

// ErrMalformed is returned when a results table cannot be parsed.
var ErrMalformed = errors.New("report: malformed table")

// RecordHeader is the column layout of a results table.
var RecordHeader = []string{"Solution", "MaxSum", "MaxMin", "Cost", "Capacity"}

const nodeSep = " - "

// WriteRecords writes recs as a results table; nodes are joined with " - ".
func WriteRecords(w io.Writer, recs []solution.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(RecordHeader); err != nil {
		return err
	}
	for _, r := range recs {
		row := []string{
			r.Key(),
			formatFloat(r.MaxSum),
			formatFloat(r.MaxMin),
			strconv.Itoa(r.Cost),
			strconv.Itoa(r.Capacity),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}

// ReadRecords parses a table written by WriteRecords. Node lists are sorted.
func ReadRecords(r io.Reader) ([]solution.Record, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(RecordHeader)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("%w: missing header", ErrMalformed)
	}
	for i, h := range RecordHeader {
		if rows[0][i] != h {
			return nil, fmt.Errorf("%w: column %d is %q, want %q", ErrMalformed, i, rows[0][i], h)
		}
	}

	recs := make([]solution.Record, 0, len(rows)-1)
	for line, row := range rows[1:] {
		rec, err := parseRecord(row)
		if err != nil {
			return nil, fmt.Errorf("%w: row %d: %w", ErrMalformed, line+2, err)
		}
		recs = append(recs, rec)
	}

	return recs, nil
}

func parseRecord(row []string) (solution.Record, error) {
	var (
		rec solution.Record
		err error
	)
	if strings.TrimSpace(row[0]) != "" {
		for _, f := range strings.Split(row[0], nodeSep) {
			v, err := strconv.Atoi(strings.TrimSpace(f))
			if err != nil {
				return rec, err
			}
			rec.Selected = append(rec.Selected, v)
		}
		sort.Ints(rec.Selected)
	}
	if rec.MaxSum, err = strconv.ParseFloat(row[1], 64); err != nil {
		return rec, err
	}
	if rec.MaxMin, err = strconv.ParseFloat(row[2], 64); err != nil {
		return rec, err
	}
	if rec.Cost, err = strconv.Atoi(row[3]); err != nil {
		return rec, err
	}
	if rec.Capacity, err = strconv.Atoi(row[4]); err != nil {
		return rec, err
	}

	return rec, nil
}

// Points projects records onto objective space.
func Points(recs []solution.Record) []pareto.Point {
	pts := make([]pareto.Point, len(recs))
	for i, r := range recs {
		pts[i] = r.Point()
	}

	return pts
}

// formatFloat prints the shortest exact form; non-finite values print empty.
func formatFloat(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}

	return strconv.FormatFloat(v, 'f', -1, 64)
}
