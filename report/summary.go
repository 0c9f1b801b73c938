// SPDX-License-Identifier: MIT

package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/host"
	"github.com/shirou/gopsutil/mem"

	"github.com/katalvlaran/modiv/grasp"
)

// HostInfo describes the machine a run executed on.
type HostInfo struct {
	Platform string `json:"platform"`
	CPU      string `json:"cpu"`
	Cores    int    `json:"cores"`
	RAM      string `json:"ram"`
}

// CollectHost queries the host once. Fields that cannot be read stay at
// their runtime fallback; the first query error is returned alongside.
func CollectHost() (HostInfo, error) {
	info := HostInfo{Platform: runtime.GOOS + "/" + runtime.GOARCH, CPU: "unknown", Cores: runtime.NumCPU(), RAM: "unknown"}

	var first error
	if h, err := host.Info(); err == nil {
		info.Platform = fmt.Sprintf("%s %s (%s)", h.Platform, h.PlatformVersion, h.KernelArch)
	} else {
		first = err
	}
	if cs, err := cpu.Info(); err == nil && len(cs) > 0 {
		info.CPU = cs[0].ModelName
	} else if first == nil {
		first = err
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		info.RAM = fmt.Sprintf("%d GB", vm.Total/1024/1024/1024)
	} else if first == nil {
		first = err
	}

	return info, first
}

// Summary is the JSON record stored next to every results table.
type Summary struct {
	ID           string    `json:"id"`
	Instance     string    `json:"instance"`
	Experiment   string    `json:"experiment"`
	Repetition   int       `json:"repetition"`
	Started      time.Time `json:"started"`
	Time         float64   `json:"time"` // seconds, 2 decimals
	Iterations   int       `json:"iterations"`
	Failures     int       `json:"failures"`
	Improvements int       `json:"improvements"`
	TimedOut     bool      `json:"timed_out"`
	AllSols      int       `json:"all_sols"`
	NDSols       int       `json:"nd_sols"`
	Host         HostInfo  `json:"host"`
}

// NewSummary builds a Summary for res with a fresh random id.
func NewSummary(instance, experiment string, repetition int, started time.Time, res grasp.Result, h HostInfo) Summary {
	return Summary{
		ID:           uuid.NewString(),
		Instance:     instance,
		Experiment:   experiment,
		Repetition:   repetition,
		Started:      started.UTC(),
		Time:         math.Round(res.Elapsed.Seconds()*100) / 100,
		Iterations:   res.Iterations,
		Failures:     res.Failures,
		Improvements: res.Improvements,
		TimedOut:     res.TimedOut,
		AllSols:      len(res.All),
		NDSols:       len(res.Front),
		Host:         h,
	}
}

// WriteSummary encodes s as indented JSON.
func WriteSummary(w io.Writer, s Summary) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(s)
}

// ReadSummary decodes a Summary written by WriteSummary.
func ReadSummary(r io.Reader) (Summary, error) {
	var s Summary
	if err := json.NewDecoder(r).Decode(&s); err != nil {
		return Summary{}, fmt.Errorf("%w: %w", ErrMalformed, err)
	}
	if _, err := uuid.Parse(s.ID); err != nil {
		return Summary{}, fmt.Errorf("%w: id: %w", ErrMalformed, err)
	}

	return s, nil
}
