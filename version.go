package sysinfo

// Version returns a string representation of the running kernel release.
//
// NOTE: This function is a wrapper around os specific functions each of which shell out to query the system.
func Version() (string, error) {
	return version()
}
