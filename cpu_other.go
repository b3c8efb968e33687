//go:build !linux && !windows && !darwin && !dragonfly && !freebsd && !netbsd && !openbsd
// +build !linux,!windows,!darwin,!dragonfly,!freebsd,!netbsd,!openbsd

package sysinfo

import "runtime"

// numCPU returns the number of logical CPUs detected by the runtime, platforms with a native lookup provide their own
// implementation.
func numCPU() int {
	return runtime.NumCPU()
}
