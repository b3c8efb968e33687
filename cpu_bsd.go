//go:build darwin || dragonfly || freebsd || netbsd || openbsd
// +build darwin dragonfly freebsd netbsd openbsd

package sysinfo

import "golang.org/x/sys/unix"

// numCPU returns the number of logical CPUs reported by sysctl. The 'hw.availcpu' key accounts for processors which
// have been disabled, though it's not available on all BSD flavors, in which case we fall back to 'hw.ncpu'.
func numCPU() int {
	for _, name := range []string{"hw.availcpu", "hw.ncpu"} {
		count, err := unix.SysctlUint32(name)
		if err == nil && count >= 1 {
			return int(count)
		}
	}

	return 0
}
