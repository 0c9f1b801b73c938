// SPDX-License-Identifier: MIT

package report

import (
	"encoding/csv"
	"io"
	"math"
	"strconv"
)

// IndicatorHeader is the column layout written by WriteIndicators.
var IndicatorHeader = []string{"inst", "alg_config", "runs", "HV", "SC", "eps"}

// WriteIndicators writes rows with values rounded to two decimals; missing
// (non-finite) values are left empty.
func WriteIndicators(w io.Writer, rows []IndicatorRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(IndicatorHeader); err != nil {
		return err
	}
	for _, r := range rows {
		rec := []string{
			r.Instance,
			r.Experiment,
			strconv.Itoa(r.Runs),
			round2(r.Hypervolume),
			round2(r.SetCoverage),
			round2(r.Epsilon),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}
	cw.Flush()

	return cw.Error()
}

func round2(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return ""
	}

	return strconv.FormatFloat(math.Round(v*100)/100, 'f', 2, 64)
}
