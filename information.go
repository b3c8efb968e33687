package sysinfo

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"
)

// Information represents useful system information which is logged by 'cbbackupmgr' at the beginning of each command.
type Information struct {
	Hostname string
	OS       string
	Version  string
	Arch     string
	VCPU     int
}

// String implements the 'Stringer' interface, note changes to this format should be considered carefully so as not to
// break backwards compatibility.
func (i Information) String() string {
	return fmt.Sprintf("Hostname: %s OS: %s Version: %s Arch: %s vCPU: %d",
		i.Hostname, i.OS, i.Version, i.Arch, i.VCPU)
}

// GetInformation fetches and returns common system information in a platform agnostic fashion.
//
// NOTE: On supported platforms, the returned information may not be that of the host system but of any limits applied.
func GetInformation(logger *slog.Logger) Information {
	if logger == nil {
		logger = slog.Default()
	}

	def := func(s string) string {
		if s == "" {
			return "unavailable"
		}

		return s
	}

	hostname, err := os.Hostname()
	if err != nil {
		logger.Error("failed to get system hostname", "error", err)
	}

	version, err := Version()
	if err != nil {
		logger.Error("failed to get system version", "error", err)
	}

	return Information{
		Hostname: def(hostname),
		OS:       runtime.GOOS,
		Version:  def(version),
		Arch:     runtime.GOARCH,
		VCPU:     NumCPU(),
	}
}
