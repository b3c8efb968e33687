package sysinfo

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"golang.org/x/exp/slices"
)

// cGroupVersion is the implementation of cgroups we've found.
type cGroupVersion int

const (
	cGroupVersion1 cGroupVersion = iota
	cGroupVersion2
)

// cGroupInfo holds the information parsed from /proc/<pid>/cgroup.
type cGroupInfo struct {
	paths   map[string]string
	version cGroupVersion
}

// getPath - find the path of the process within the hierarchy controller is attached to. For cgroups v1 each
// controller can be attached to a different hierarchy, but for v2 there is a single hierarchy so we look for the
// default entry.
func (i *cGroupInfo) getPath(controller string) (string, error) {
	switch i.version {
	case cGroupVersion1:
		// Hierarchies may have multiple comma separated controllers attached e.g. 'cpu,cpuacct'
		for name, path := range i.paths {
			if slices.Contains(strings.Split(name, ","), controller) {
				return path, nil
			}
		}
	case cGroupVersion2:
		if path, ok := i.paths["default"]; ok {
			return path, nil
		}
	default:
		return "", fmt.Errorf("unknown cgroup version %d", i.version)
	}

	return "", fmt.Errorf("could not find path for %s", controller)
}

// readCGroupFile reads from r a file in the format of /proc/<id>/cgroup and populates a cGroupInfo with the paths of
// different controllers.
func readCGroupFile(r io.Reader) (*cGroupInfo, error) {
	var (
		reader = bufio.NewReader(r)
		paths  = make(map[string]string)
		line   string
		err    error
	)

	// read a file in the /proc/self/cgroup format, eg for v1:
	// 9:cpu,cpuacct:/docker/51722a12fe5ccb03046f01753c92fc06172a5343c6267ec286731ea9e559c476
	// and:
	// 0::/
	// for v2

	for line, err = reader.ReadString('\n'); err == nil; line, err = reader.ReadString('\n') {
		split := strings.Split(strings.TrimSpace(line), ":")
		if len(split) != 3 {
			return nil, fmt.Errorf("invalid cgroup file, wrong number of separators (%d not 3)", len(split))
		}

		if split[2] == "" {
			return nil, fmt.Errorf("invalid cgroup file, no path")
		}

		if split[1] == "" {
			// cgroup file with no middle value means version 2 with a single hierarchy, unless we've already had a
			// valid line
			if len(paths) != 0 {
				continue
			}

			return &cGroupInfo{version: cGroupVersion2, paths: map[string]string{"default": split[2]}}, nil
		}

		paths[split[1]] = split[2]
	}

	if !errors.Is(err, io.EOF) || len(paths) == 0 {
		return nil, fmt.Errorf("could not read a line from cgroup file: %w", err)
	}

	return &cGroupInfo{version: cGroupVersion1, paths: paths}, nil
}

var errNoLimitSpecified = errors.New("no cgroup limit specified")

// readMountInfo - will look in r for where the cgroup hierarchy containing path is mounted, with filesystem type fs.
// For cgroups v1 controller must also appear in the super options of the mount. Returns path translated to a path in
// the mounted filesystem.
func readMountInfo(r io.Reader, fs, controller, path string) (string, error) {
	var (
		err    error
		line   string
		reader = bufio.NewReader(r)
	)

	// Read lines in the following format:
	// 36 35 98:0 /mnt1 /mnt2 rw,noatime master:1 - ext3 /dev/root rw,errors=continue
	// (1)(2)(3)   (4)   (5)      (6)      (7)   (8) (9)   (10)         (11)
	//
	// (1) mount ID:  unique identifier of the mount (may be reused after umount)
	// (2) parent ID:  ID of parent (or of self for the top of the mount tree)
	// (3) major:minor:  value of st_dev for files on filesystem
	// (4) root:  root of the mount within the filesystem
	// (5) mount point:  mount point relative to the process's root
	// (6) mount options:  per mount options
	// (7) optional fields:  zero or more fields of the form "tag[:value]"
	// (8) separator:  marks the end of the optional fields
	// (9) filesystem type:  name of filesystem of the form "type[.subtype]"
	// (10) mount source:  filesystem specific information or "none"
	// (11) super options:  per super block options
	// from https://www.kernel.org/doc/Documentation/filesystems/proc.txt

	for line, err = reader.ReadString('\n'); err == nil; line, err = reader.ReadString('\n') {
		// 7 takes us up to just before the separator
		split := strings.SplitN(strings.TrimSpace(line), " ", 7)
		if len(split) < 7 {
			return "", fmt.Errorf("invalid mountinfo file, less than seven fields")
		}

		separatorSplit := strings.SplitN(split[6], "-", 2)
		if len(separatorSplit) < 2 {
			return "", fmt.Errorf("invalid mountinfo file, no separator")
		}

		postSeparator := strings.Split(strings.TrimSpace(separatorSplit[1]), " ")
		if len(postSeparator) < 2 {
			return "", fmt.Errorf("invalid mountinfo file, no space after separator")
		}

		if postSeparator[0] != fs {
			continue
		}

		// The controllers attached to a v1 hierarchy appear in the super options, ensure we have the mount for ours
		// and not another which shares a prefix e.g. 'cpuset' when looking for 'cpu'
		if controller != "" && (len(postSeparator) < 3 ||
			!slices.Contains(strings.Split(postSeparator[2], ","), controller)) {
			continue
		}

		translated, ok := translateCGroupPath(split[3], split[4], path)
		if !ok {
			continue
		}

		return translated, nil
	}

	return "", errNoLimitSpecified
}

// translateCGroupPath translates a path within a cgroup hierarchy to a path in the mounted filesystem, given the root
// of the mount within the hierarchy. The path must be the root itself or a descendant of it.
func translateCGroupPath(root, mountPoint, path string) (string, bool) {
	rel, found := strings.CutPrefix(path, root)
	if !found {
		return "", false
	}

	// The root must match at a component boundary e.g. '/docker' is not the root of '/dockerfoo'
	if rel != "" && root != "/" && !strings.HasPrefix(rel, "/") {
		return "", false
	}

	return filepath.Join(mountPoint, rel), true
}

// getCGroupCPULimitFromFile reads the cgroup CPU quota using the correct file(s) for version and returns it as a
// number of CPUs, rounded up.
func getCGroupCPULimitFromFile(dir string, version cGroupVersion) (int, error) {
	var quota, period int64

	switch version {
	case cGroupVersion1:
		var err error

		quota, err = readCGroupParam(filepath.Join(dir, "cpu.cfs_quota_us"))
		if err != nil {
			return 0, err
		}

		// A negative quota means the cgroup does not limit CPU usage
		if quota < 0 {
			return 0, errNoLimitSpecified
		}

		period, err = readCGroupParam(filepath.Join(dir, "cpu.cfs_period_us"))
		if err != nil {
			return 0, err
		}
	case cGroupVersion2:
		contents, err := os.ReadFile(filepath.Join(dir, "cpu.max"))
		if err != nil {
			return 0, err
		}

		fields := strings.Fields(string(contents))
		if len(fields) != 2 {
			return 0, fmt.Errorf("invalid cpu.max file, wrong number of fields (%d not 2)", len(fields))
		}

		// A quota of 'max' means the cgroup does not limit CPU usage
		if fields[0] == "max" {
			return 0, errNoLimitSpecified
		}

		quota, err = strconv.ParseInt(fields[0], 10, 64)
		if err != nil {
			return 0, err
		}

		period, err = strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return 0, err
		}
	default:
		return 0, fmt.Errorf("unknown cgroup version %d", version)
	}

	if period == 0 {
		return 0, errNoLimitSpecified
	}

	return int(math.Ceil(float64(quota) / float64(period))), nil
}

// readCGroupParam reads a single integer parameter from the file at path.
func readCGroupParam(path string) (int64, error) {
	contents, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	return strconv.ParseInt(strings.TrimSpace(string(contents)), 10, 64)
}

// getCGroupCPULimit finds the CPU limit specified by the cgroup by reading the correct files in the VFS based on the
// cgroup version that is detected. If there is no limit or no cgroup is detected then errNoLimitSpecified is
// returned.
func getCGroupCPULimit() (int, error) {
	file, err := os.Open("/proc/self/cgroup")
	if err != nil {
		return 0, fmt.Errorf("could not open /proc/self/cgroup: %w", err)
	}
	defer file.Close()

	info, err := readCGroupFile(file)
	if err != nil {
		return 0, err
	}

	cGroupPath, err := info.getPath("cpu")
	if err != nil {
		return 0, errNoLimitSpecified
	}

	file, err = os.Open("/proc/self/mountinfo")
	if err != nil {
		return 0, fmt.Errorf("could not open /proc/self/mountinfo: %w", err)
	}
	defer file.Close()

	var fs, controller string

	switch info.version {
	case cGroupVersion1:
		fs, controller = "cgroup", "cpu"
	case cGroupVersion2:
		fs = "cgroup2"
	}

	dir, err := readMountInfo(file, fs, controller, cGroupPath)
	if err != nil {
		return 0, err
	}

	return getCGroupCPULimitFromFile(dir, info.version)
}
