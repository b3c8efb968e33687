package sysinfo

import (
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNumCPULinux(t *testing.T) {
	numCPU, numVCPU := NumCPU(), runtime.NumCPU()
	require.False(t, numCPU < 1 || numCPU > numVCPU,
		"Received an unexpected value from NumCPU, expected a sane value between 1 and %d", numVCPU)
}

func TestAffinityCPUCount(t *testing.T) {
	require.GreaterOrEqual(t, affinityCPUCount(), 1)
}

func TestOnlineCPUCount(t *testing.T) {
	require.GreaterOrEqual(t, onlineCPUCount(), 1)
}

func TestCountCPUList(t *testing.T) {
	type test struct {
		name     string
		list     string
		expected int
		errors   bool
	}

	tests := []*test{
		{
			name:     "Single",
			list:     "0",
			expected: 1,
		},
		{
			name:     "Range",
			list:     "0-7",
			expected: 8,
		},
		{
			name:     "MultipleRanges",
			list:     "0-3,8-11",
			expected: 8,
		},
		{
			name:     "MixedSingleAndRange",
			list:     "0,2-5,7",
			expected: 6,
		},
		{
			name:   "Empty",
			errors: true,
		},
		{
			name:   "NotANumber",
			list:   "zero",
			errors: true,
		},
		{
			name:   "BackwardsRange",
			list:   "7-0",
			errors: true,
		},
		{
			name:   "MissingUpperBound",
			list:   "0-",
			errors: true,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			count, err := countCPUList(test.list)
			if test.errors {
				require.Error(t, err)
				return
			}

			require.NoError(t, err)
			require.Equal(t, test.expected, count)
		})
	}
}
