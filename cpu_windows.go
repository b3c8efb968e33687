package sysinfo

import "golang.org/x/sys/windows"

// numCPU returns the number of active logical processors across all processor groups, unlike the runtime which only
// counts those in the group the process has been assigned to.
func numCPU() int {
	return int(windows.GetActiveProcessorCount(windows.ALL_PROCESSOR_GROUPS))
}
