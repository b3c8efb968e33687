package sysinfo

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"golang.org/x/sys/unix"
)

// numCPU returns the number of logical CPUs the current process may run on, capped by the cgroup CPU limit if one is
// in effect.
func numCPU() int {
	count := affinityCPUCount()
	if count < 1 {
		count = onlineCPUCount()
	}

	limit, err := getCGroupCPULimit()
	if err == nil && limit >= 1 && limit < count {
		count = limit
	}

	return count
}

// affinityCPUCount returns the number of CPUs in the affinity mask of the current process, or zero if it could not be
// determined.
func affinityCPUCount() int {
	var set unix.CPUSet

	err := unix.SchedGetaffinity(0, &set)
	if err != nil {
		return 0
	}

	return set.Count()
}

// onlineCPUCount returns the number of CPUs which are currently online, or zero if it could not be determined.
func onlineCPUCount() int {
	contents, err := os.ReadFile("/sys/devices/system/cpu/online")
	if err != nil {
		return 0
	}

	count, err := countCPUList(strings.TrimSpace(string(contents)))
	if err != nil {
		return 0
	}

	return count
}

// countCPUList returns the number of CPUs in a kernel CPU list e.g. '0-4,6,8-11'.
func countCPUList(list string) (int, error) {
	var count int

	for _, entry := range strings.Split(list, ",") {
		lower, upper, ranged := strings.Cut(entry, "-")

		first, err := strconv.Atoi(lower)
		if err != nil {
			return 0, fmt.Errorf("invalid cpu list entry '%s': %w", entry, err)
		}

		if !ranged {
			count++
			continue
		}

		last, err := strconv.Atoi(upper)
		if err != nil {
			return 0, fmt.Errorf("invalid cpu list entry '%s': %w", entry, err)
		}

		if last < first {
			return 0, fmt.Errorf("invalid cpu list entry '%s', range is backwards", entry)
		}

		count += last - first + 1
	}

	return count, nil
}
