// SPDX-License-Identifier: MIT

// Package config reads YAML experiment files and turns each experiment into
// grasp.Options.
//
// File layout:
//
//	experiments:
//	  - name: b03_vnd_best
//	    iterations: 100
//	    seed: 1309
//	    construction:
//	      method: BiasedRandomized   # BiasedRandomized | Greedy | AlphaGRASP
//	      distribution: Geometric    # Geometric | Triangular
//	      beta: 0.3                  # negative ⇒ random per run
//	      alpha: 0.3                 # AlphaGRASP only
//	      approach: Alternate        # Alternate | MaxSum | MaxMin
//	      trajectory: false
//	    local_search:
//	      scheme: VND                # Best | First | VND | None
//	      inner: Best                # improver used by VND
//	      approach: Alternate        # Alternate | MaxSum | MaxMin | Dominance
//	      neighborhoods: {1: [1, 1], 2: [1, 2], 3: [2, 1]}
//	    execution_limits:
//	      max_time: 60               # seconds, 0 ⇒ unlimited
//	      max_local_search_time: 1   # seconds per First Improve attempt
//	      max_local_search_iterations: 0
//
// Omitted fields take the defaults shown above (beta 0.3, no time limits).
// Unknown keys are rejected. Struct constraints are checked with
// go-playground/validator; enum names are matched case-insensitively.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/modiv/construct"
	"github.com/katalvlaran/modiv/grasp"
	"github.com/katalvlaran/modiv/localsearch"
)

// ErrInvalidConfig wraps every parse, validation and conversion failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// DefaultBeta is the Geometric bias used when beta is omitted.
const DefaultBeta = 0.3

// File is one experiment file.
type File struct {
	Experiments []Experiment `yaml:"experiments" validate:"required,min=1,dive"`
}

// Experiment is one algorithm configuration.
type Experiment struct {
	Name         string       `yaml:"name" validate:"required"`
	Iterations   int          `yaml:"iterations" validate:"gte=1"`
	Seed         int64        `yaml:"seed"`
	Construction Construction `yaml:"construction"`
	LocalSearch  LocalSearch  `yaml:"local_search"`
	Limits       Limits       `yaml:"execution_limits"`
}

// Construction mirrors construct.Params plus the method choice.
type Construction struct {
	Method       string   `yaml:"method"`
	Distribution string   `yaml:"distribution"`
	Beta         *float64 `yaml:"beta" validate:"omitempty,lte=1"`
	Alpha        float64  `yaml:"alpha" validate:"lte=1"`
	Approach     string   `yaml:"approach"`
	Trajectory   bool     `yaml:"trajectory"`
}

// LocalSearch mirrors localsearch.Options.
type LocalSearch struct {
	Scheme        string         `yaml:"scheme"`
	Inner         string         `yaml:"inner"`
	Approach      string         `yaml:"approach"`
	Neighborhoods map[int][2]int `yaml:"neighborhoods" validate:"omitempty,max=16"`
}

// Limits are expressed in seconds.
type Limits struct {
	MaxTime                  float64 `yaml:"max_time" validate:"gte=0"`
	MaxLocalSearchTime       float64 `yaml:"max_local_search_time" validate:"gte=0"`
	MaxLocalSearchIterations int     `yaml:"max_local_search_iterations" validate:"gte=0"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Load reads and parses the file at path.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	return Parse(data)
}

// Parse decodes YAML, fills defaults and validates every experiment,
// including the enum names and neighborhoods.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	for i := range f.Experiments {
		f.Experiments[i].applyDefaults()
	}
	if err := validate.Struct(&f); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	seen := make(map[string]struct{}, len(f.Experiments))
	for _, e := range f.Experiments {
		if _, dup := seen[e.Name]; dup {
			return nil, fmt.Errorf("%w: duplicate experiment %q", ErrInvalidConfig, e.Name)
		}
		seen[e.Name] = struct{}{}
		if _, err := e.Options(); err != nil {
			return nil, err
		}
	}

	return &f, nil
}

// Default returns a single experiment with every default applied.
func Default() *File {
	e := Experiment{Name: "default", Iterations: 100}
	e.applyDefaults()

	return &File{Experiments: []Experiment{e}}
}

func (e *Experiment) applyDefaults() {
	c := &e.Construction
	if c.Method == "" {
		c.Method = grasp.BiasedRandomized.String()
	}
	if c.Distribution == "" {
		c.Distribution = construct.Geometric.String()
	}
	if c.Beta == nil {
		beta := DefaultBeta
		c.Beta = &beta
	}
	if c.Approach == "" {
		c.Approach = construct.Alternate.String()
	}

	ls := &e.LocalSearch
	if ls.Scheme == "" {
		ls.Scheme = "VND"
	}
	if ls.Inner == "" {
		ls.Inner = localsearch.Best.String()
	}
	if ls.Approach == "" {
		ls.Approach = localsearch.Alternate.String()
	}
	if len(ls.Neighborhoods) == 0 {
		ls.Neighborhoods = make(map[int][2]int)
		for i, nb := range localsearch.DefaultNeighborhoods() {
			ls.Neighborhoods[i+1] = [2]int{nb.Out, nb.In}
		}
	}
}

// Options converts the experiment into grasp.Options. Logger and Metrics are
// left for the caller to set.
func (e Experiment) Options() (grasp.Options, error) {
	wrap := func(err error) error {
		return fmt.Errorf("%w: experiment %q: %w", ErrInvalidConfig, e.Name, err)
	}

	opts := grasp.Options{
		Iterations: e.Iterations,
		Seed:       e.Seed,
		MaxTime:    seconds(e.Limits.MaxTime),
		Alpha:      e.Construction.Alpha,
	}

	var err error
	if opts.Method, err = grasp.ParseMethod(e.Construction.Method); err != nil {
		return grasp.Options{}, wrap(err)
	}
	if opts.Construction.Distribution, err = construct.ParseDistribution(e.Construction.Distribution); err != nil {
		return grasp.Options{}, wrap(err)
	}
	if opts.Construction.Approach, err = construct.ParseApproach(e.Construction.Approach); err != nil {
		return grasp.Options{}, wrap(err)
	}
	opts.Construction.Beta = DefaultBeta
	if e.Construction.Beta != nil {
		opts.Construction.Beta = *e.Construction.Beta
	}
	opts.Construction.Trajectory = e.Construction.Trajectory

	ls, enabled, err := e.LocalSearch.options(e.Limits)
	if err != nil {
		return grasp.Options{}, wrap(err)
	}
	if enabled {
		opts.LocalSearch = &ls
	}

	return opts, nil
}

func (l LocalSearch) options(limits Limits) (localsearch.Options, bool, error) {
	ls := localsearch.Options{
		TimeLimit:     seconds(limits.MaxLocalSearchTime),
		MaxIterations: limits.MaxLocalSearchIterations,
	}

	var err error
	switch strings.ToLower(l.Scheme) {
	case "none":
		return ls, false, nil
	case "vnd":
		ls.Strategy = localsearch.VND
		if ls.Scheme, err = localsearch.ParseScheme(l.Inner); err != nil {
			return ls, false, err
		}
	default:
		ls.Strategy = localsearch.Standard
		if ls.Scheme, err = localsearch.ParseScheme(l.Scheme); err != nil {
			return ls, false, err
		}
	}
	if ls.Approach, err = localsearch.ParseApproach(l.Approach); err != nil {
		return ls, false, err
	}
	if ls.Neighborhoods, err = l.neighborhoods(); err != nil {
		return ls, false, err
	}

	return ls, true, nil
}

// neighborhoods orders the map by key; keys must run 1..n without gaps.
func (l LocalSearch) neighborhoods() ([]localsearch.Neighborhood, error) {
	keys := make([]int, 0, len(l.Neighborhoods))
	for k := range l.Neighborhoods {
		keys = append(keys, k)
	}
	sort.Ints(keys)

	out := make([]localsearch.Neighborhood, 0, len(keys))
	for i, k := range keys {
		if k != i+1 {
			return nil, fmt.Errorf("%w: keys must be 1..%d, got %d", localsearch.ErrInvalidNeighborhood, len(keys), k)
		}
		pair := l.Neighborhoods[k]
		nb := localsearch.Neighborhood{Out: pair[0], In: pair[1]}
		if nb.Out < 1 || nb.In < 1 {
			return nil, fmt.Errorf("%w: %d: %s", localsearch.ErrInvalidNeighborhood, k, nb)
		}
		out = append(out, nb)
	}

	return out, nil
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}
