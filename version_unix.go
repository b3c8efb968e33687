//go:build !windows
// +build !windows

package sysinfo

import (
	"bytes"
	"fmt"
	"os/exec"
)

// version returns a string representation of the current kernel release.
func version() (string, error) {
	output, err := exec.Command("uname", "-r").CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("failed to run 'uname -r': %s", formatCommandError(output, err))
	}

	return string(bytes.TrimSpace(output)), nil
}
