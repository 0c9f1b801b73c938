// SPDX-License-Identifier: MIT

package instance

import (
	"fmt"
	"math"

	"github.com/tidwall/gjson"

	"github.com/katalvlaran/modiv/matrix"
)

// ReadJSON parses an instance document of the form
//
//	{"name": "...", "n": 5,
//	 "distance": [[0, 1.5, ...], ...],
//	 "cost": [...], "capacity": [...],
//	 "budget": 10, "min_capacity": 3}
//
// "name" is optional and overrides fallbackName. "n" is optional and, when
// present, must agree with the matrix size. Missing "cost"/"capacity" default
// to all ones, a missing "budget" to n+1, a missing "min_capacity" to 0.
func ReadJSON(data []byte, fallbackName string) (*Instance, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid JSON", ErrFormat)
	}
	doc := gjson.ParseBytes(data)

	name := fallbackName
	if v := doc.Get("name"); v.Exists() {
		name = v.String()
	}

	rows := doc.Get("distance")
	if !rows.IsArray() {
		return nil, fmt.Errorf("%w: \"distance\" must be an array of arrays", ErrFormat)
	}
	src := make([][]float64, 0, len(rows.Array()))
	var bad error
	rows.ForEach(func(_, row gjson.Result) bool {
		if !row.IsArray() {
			bad = fmt.Errorf("%w: distance row %d is not an array", ErrFormat, len(src))
			return false
		}
		vals := row.Array()
		r := make([]float64, len(vals))
		for j, x := range vals {
			if x.Type != gjson.Number {
				bad = fmt.Errorf("%w: distance[%d][%d] is not a number", ErrFormat, len(src), j)
				return false
			}
			r[j] = x.Float()
		}
		src = append(src, r)
		return true
	})
	if bad != nil {
		return nil, bad
	}
	if len(src) == 0 {
		return nil, ErrEmpty
	}
	d, err := matrix.NewDenseFrom(src)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidDistance, err)
	}

	n := len(src)
	if v := doc.Get("n"); v.Exists() {
		declared, err := jsonInt(v, "n")
		if err != nil {
			return nil, err
		}
		if declared != n {
			return nil, fmt.Errorf("%w: n=%d but distance has %d rows", ErrLengthMismatch, declared, n)
		}
	}

	cost, err := readIntSlice(doc.Get("cost"), "cost", n)
	if err != nil {
		return nil, err
	}
	capacity, err := readIntSlice(doc.Get("capacity"), "capacity", n)
	if err != nil {
		return nil, err
	}
	budget := n + 1
	if v := doc.Get("budget"); v.Exists() {
		if budget, err = jsonInt(v, "budget"); err != nil {
			return nil, err
		}
	}
	minCapacity := 0
	if v := doc.Get("min_capacity"); v.Exists() {
		if minCapacity, err = jsonInt(v, "min_capacity"); err != nil {
			return nil, err
		}
	}

	return New(name, d, cost, capacity, budget, minCapacity)
}

// readIntSlice converts a JSON array of integers; an absent value yields n ones.
func readIntSlice(v gjson.Result, field string, n int) ([]int, error) {
	if !v.Exists() {
		out := make([]int, n)
		for i := range out {
			out[i] = 1
		}
		return out, nil
	}
	if !v.IsArray() {
		return nil, fmt.Errorf("%w: %q must be an array", ErrFormat, field)
	}
	arr := v.Array()
	out := make([]int, len(arr))
	var err error
	for i, item := range arr {
		if out[i], err = jsonInt(item, fmt.Sprintf("%s[%d]", field, i)); err != nil {
			return nil, err
		}
	}

	return out, nil
}

// jsonInt accepts integral JSON numbers only.
func jsonInt(v gjson.Result, field string) (int, error) {
	if v.Type != gjson.Number {
		return 0, fmt.Errorf("%w: %s is not a number", ErrFormat, field)
	}
	if x := v.Float(); x != math.Trunc(x) {
		return 0, fmt.Errorf("%w: %s=%v is not an integer", ErrFormat, field, x)
	}

	return int(v.Int()), nil
}
