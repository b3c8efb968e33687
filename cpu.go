// Package sysinfo provides system information utility functions initially required by `cbbackupmgr`.
package sysinfo

import "runtime"

// NumCPU returns the number of logical CPUs usable by the current process. This function should be used when
// determining how many Goroutines to create for performing short running tasks which benefit from being performed
// concurrently.
//
// NOTE: The returned value is always at least one, on platforms where the lookup fails we fall back to the value
// detected by the runtime.
func NumCPU() int {
	n := numCPU()
	if n < 1 {
		n = runtime.NumCPU()
	}

	return max(1, n)
}

// NumWorkers returns a sane number of workers to create when performing a task concurrently. This function should be
// used for the same reason as 'NumCPU', however, with the added caveat that we'd like to ensure we don't create more
// workers than the amount of work that is going to be processed.
func NumWorkers(limit int) int {
	numCPU := NumCPU()
	if numCPU > 1 && limit > 0 {
		numCPU = min(numCPU, limit)
	}

	return numCPU
}
