package renderer

import (
	"fmt"

	"github.com/shirou/gopsutil/cpu"
	"github.com/shirou/gopsutil/mem"
)

// SystemInfo describes the machine a render runs on
type SystemInfo struct {
	CPUModel     string
	LogicalCores int
	ClockGHz     float64
	TotalRAMGB   uint64
}

// GetSystemInfo queries the CPU model, logical core count and installed memory
func GetSystemInfo() (SystemInfo, error) {
	cpuInfo, err := cpu.Info()
	if err != nil {
		return SystemInfo{}, fmt.Errorf("read cpu info: %w", err)
	}
	if len(cpuInfo) == 0 {
		return SystemInfo{}, fmt.Errorf("no CPU information available")
	}

	memInfo, err := mem.VirtualMemory()
	if err != nil {
		return SystemInfo{}, fmt.Errorf("read memory info: %w", err)
	}

	return SystemInfo{
		CPUModel:     cpuInfo[0].ModelName,
		LogicalCores: DefaultWorkerCount(),
		ClockGHz:     cpuInfo[0].Mhz / 1000,
		TotalRAMGB:   memInfo.Total / (1024 * 1024 * 1024),
	}, nil
}

func (s SystemInfo) String() string {
	return fmt.Sprintf("%s (%d logical cores, %.1f GHz), %d GB RAM",
		s.CPUModel, s.LogicalCores, s.ClockGHz, s.TotalRAMGB)
}
