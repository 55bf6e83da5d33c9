// Package sysinfo gathers a small host diagnostics snapshot for emission as
// debug messages. Individual probes may fail on exotic platforms; a failed
// probe leaves its field zero instead of failing the whole snapshot.
package sysinfo

import (
	"fmt"
	"runtime"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/load"
	"github.com/shirou/gopsutil/v3/mem"
)

// Snapshot is one point-in-time view of the host the worker runs on.
type Snapshot struct {
	Hostname    string
	OS          string
	Platform    string
	Uptime      time.Duration
	LogicalCPUs int
	Load1       float64
	MemTotalMB  float64
	MemUsedMB   float64
	MemPercent  float64
	GoVersion   string
	Goroutines  int
}

// Collect probes the host. It never fails as a whole.
func Collect() Snapshot {
	snap := Snapshot{
		GoVersion:  runtime.Version(),
		Goroutines: runtime.NumGoroutine(),
	}

	if info, err := host.Info(); err == nil {
		snap.Hostname = info.Hostname
		snap.OS = info.OS
		snap.Platform = info.Platform
		snap.Uptime = time.Duration(info.Uptime) * time.Second
	}
	if n, err := cpu.Counts(true); err == nil {
		snap.LogicalCPUs = n
	}
	if avg, err := load.Avg(); err == nil {
		snap.Load1 = avg.Load1
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		snap.MemTotalMB = float64(vm.Total) / 1024 / 1024
		snap.MemUsedMB = float64(vm.Used) / 1024 / 1024
		snap.MemPercent = vm.UsedPercent
	}

	return snap
}

// DebugLines renders the snapshot as key=value lines suitable for debug
// commands.
func (s Snapshot) DebugLines() []string {
	return []string{
		fmt.Sprintf("hostname=%s", s.Hostname),
		fmt.Sprintf("os=%s platform=%s", s.OS, s.Platform),
		fmt.Sprintf("uptime=%s", s.Uptime),
		fmt.Sprintf("cpus=%d load1=%.2f", s.LogicalCPUs, s.Load1),
		fmt.Sprintf("mem_total_mb=%.0f mem_used_mb=%.0f mem_used_pct=%.1f",
			s.MemTotalMB, s.MemUsedMB, s.MemPercent),
		fmt.Sprintf("go=%s goroutines=%d", s.GoVersion, s.Goroutines),
	}
}
