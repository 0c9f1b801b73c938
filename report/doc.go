// Package report persists and evaluates GRASP runs.
//
// Tables:
//   - Results: Solution,MaxSum,MaxMin,Cost,Capacity with nodes joined by " - ".
//   - Indicators: inst,alg_config,runs,HV,SC,eps rounded to two decimals,
//     non-finite values left empty.
//
// Summaries are JSON documents carrying a random run id, timings, solution
// counts and the host description gathered with gopsutil.
//
// Store ties both together on disk and computes indicators against a
// per-instance reference front built from every stored run.
package report
