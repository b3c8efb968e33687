package sysinfo

import (
	"bytes"
	"fmt"
	"os/exec"
)

// version returns a string representation of the current Windows release.
func version() (string, error) {
	output, err := exec.Command("cmd", "/C", "ver").CombinedOutput()
	if err != nil {
		return "", fmt.Errorf("failed to run 'ver': %s", formatCommandError(output, err))
	}

	return string(bytes.TrimSpace(output)), nil
}
