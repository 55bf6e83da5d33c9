package sysinfo

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCollect(t *testing.T) {
	snap := Collect()

	require.NotEmpty(t, snap.GoVersion)
	require.Greater(t, snap.Goroutines, 0)
	// gopsutil probes can fail on unusual platforms, but CPU count and
	// total memory are expected everywhere tests run.
	require.Greater(t, snap.LogicalCPUs, 0)
	require.Greater(t, snap.MemTotalMB, 0.0)
}

func TestDebugLines(t *testing.T) {
	lines := Collect().DebugLines()

	require.Len(t, lines, 6)
	for _, line := range lines {
		require.NotContains(t, line, "\n")
	}
	joined := strings.Join(lines, " ")
	require.Contains(t, joined, "cpus=")
	require.Contains(t, joined, "mem_total_mb=")
	require.Contains(t, joined, "go=go1")
}
