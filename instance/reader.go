// SPDX-License-Identifier: MIT

package instance

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/katalvlaran/modiv/matrix"
)

// maxLineBytes bounds a single input line; cost/capacity lines of large
// instances can be long.
const maxLineBytes = 1 << 22

// lineReader yields the whitespace-separated fields of each non-blank line.
type lineReader struct {
	sc   *bufio.Scanner
	line int
}

func newLineReader(r io.Reader) *lineReader {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	return &lineReader{sc: sc}
}

// next returns the fields of the next non-blank line or io.EOF.
func (lr *lineReader) next() ([]string, error) {
	var f []string
	for lr.sc.Scan() {
		lr.line++
		f = strings.Fields(lr.sc.Text())
		if len(f) > 0 {
			return f, nil
		}
	}
	if err := lr.sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFormat, err)
	}

	return nil, io.EOF
}

func (lr *lineReader) errorf(format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrFormat, lr.line, fmt.Sprintf(format, args...))
}

// ints parses every field as a base-10 integer.
func (lr *lineReader) ints(f []string) ([]int, error) {
	out := make([]int, len(f))
	var (
		i   int
		err error
	)
	for i = range f {
		if out[i], err = strconv.Atoi(f[i]); err != nil {
			return nil, lr.errorf("integer expected, got %q", f[i])
		}
	}

	return out, nil
}

// readTriplets consumes exactly n(n-1)/2 "u v d" lines into a symmetric matrix.
// Distances are rounded to two decimals.
func (lr *lineReader) readTriplets(n int) (*matrix.Dense, error) {
	d, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, ErrEmpty
	}

	var (
		want = n * (n - 1) / 2
		seen = make([]bool, n*n)
		k    int
		f    []string
		u, v int
		x    float64
	)
	for k = 0; k < want; k++ {
		if f, err = lr.next(); err != nil {
			if err == io.EOF {
				return nil, lr.errorf("expected %d distance lines, got %d", want, k)
			}
			return nil, err
		}
		if len(f) != 3 {
			return nil, lr.errorf("want \"u v d\", got %d fields", len(f))
		}
		if u, err = strconv.Atoi(f[0]); err != nil {
			return nil, lr.errorf("bad node %q", f[0])
		}
		if v, err = strconv.Atoi(f[1]); err != nil {
			return nil, lr.errorf("bad node %q", f[1])
		}
		if u < 0 || u >= n || v < 0 || v >= n || u == v {
			return nil, lr.errorf("pair (%d,%d) outside 0..%d", u, v, n-1)
		}
		if u > v {
			u, v = v, u
		}
		if seen[u*n+v] {
			return nil, lr.errorf("pair (%d,%d) listed twice", u, v)
		}
		seen[u*n+v] = true
		if x, err = strconv.ParseFloat(f[2], 64); err != nil {
			return nil, lr.errorf("bad distance %q", f[2])
		}
		if err = d.SetSym(u, v, math.Round(x*100)/100); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrInvalidDistance, err)
		}
	}

	return d, nil
}

// ReadTriplet parses the classic MDG form: a "n p" header followed by
// n(n-1)/2 lines "u v d" with 0-based node ids. Every node gets cost 1 and
// capacity 1; the budget is p+1 and the capacity floor 0.
func ReadTriplet(r io.Reader, name string) (*Instance, error) {
	lr := newLineReader(r)
	f, err := lr.next()
	if err != nil {
		return nil, ErrEmpty
	}
	if len(f) != 2 {
		return nil, lr.errorf("want \"n p\" header, got %d fields", len(f))
	}
	hdr, err := lr.ints(f)
	if err != nil {
		return nil, err
	}
	n, p := hdr[0], hdr[1]
	if n <= 0 {
		return nil, ErrEmpty
	}
	if p < 0 {
		return nil, lr.errorf("negative p=%d", p)
	}

	d, err := lr.readTriplets(n)
	if err != nil {
		return nil, err
	}

	ones := make([]int, n)
	for i := range ones {
		ones[i] = 1
	}

	return New(name, d, ones, ones, p+1, 0)
}

// ReadExtended parses the resource-constrained form:
//
//	n
//	u v d            (n(n-1)/2 lines)
//	K B
//	a_0 ... a_{n-1}  (costs)
//	c_0 ... c_{n-1}  (capacities)
func ReadExtended(r io.Reader, name string) (*Instance, error) {
	lr := newLineReader(r)
	f, err := lr.next()
	if err != nil {
		return nil, ErrEmpty
	}
	if len(f) != 1 {
		return nil, lr.errorf("want \"n\" header, got %d fields", len(f))
	}
	n, err := strconv.Atoi(f[0])
	if err != nil {
		return nil, lr.errorf("bad n %q", f[0])
	}
	if n <= 0 {
		return nil, ErrEmpty
	}

	d, err := lr.readTriplets(n)
	if err != nil {
		return nil, err
	}

	var (
		kb, cost, capacity []int
	)
	if kb, err = lr.intLine(2); err != nil {
		return nil, err
	}
	if cost, err = lr.intLine(n); err != nil {
		return nil, err
	}
	if capacity, err = lr.intLine(n); err != nil {
		return nil, err
	}

	return New(name, d, cost, capacity, kb[0], kb[1])
}

// intLine reads the next line and requires exactly want integers on it.
func (lr *lineReader) intLine(want int) ([]int, error) {
	f, err := lr.next()
	if err == io.EOF {
		return nil, lr.errorf("unexpected end of input, want %d integers", want)
	}
	if err != nil {
		return nil, err
	}
	if len(f) != want {
		return nil, lr.errorf("want %d integers, got %d", want, len(f))
	}

	return lr.ints(f)
}

// Load reads an instance file. Files ending in ".json" go through ReadJSON;
// otherwise the header decides: two fields select ReadTriplet, one field
// selects ReadExtended. The instance name is the file base name without
// extension unless the JSON document names itself.
func Load(path string) (*Instance, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("instance: load %s: %w", path, err)
	}
	base := filepath.Base(path)
	name := strings.TrimSuffix(base, filepath.Ext(base))

	if strings.EqualFold(filepath.Ext(path), ".json") {
		return ReadJSON(data, name)
	}

	lr := newLineReader(strings.NewReader(string(data)))
	f, err := lr.next()
	if err != nil {
		return nil, ErrEmpty
	}
	switch len(f) {
	case 2:
		return ReadTriplet(strings.NewReader(string(data)), name)
	case 1:
		return ReadExtended(strings.NewReader(string(data)), name)
	default:
		return nil, lr.errorf("unrecognised header with %d fields", len(f))
	}
}
