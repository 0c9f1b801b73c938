// SPDX-License-Identifier: MIT

// Command modiv solves bi-objective constrained maximum-diversity instances
// with GRASP and VND, and evaluates stored fronts with quality indicators.
//
//	modiv solve --config experiments.yaml --out results --workers 8 instances/
//	modiv evaluate --results results
//	modiv version
//
// Every flag can also be set through a MODIV_ environment variable
// (e.g. MODIV_WORKERS=4, MODIV_LOG_LEVEL=debug).
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
