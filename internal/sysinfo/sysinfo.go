// Package sysinfo collects best-effort host descriptors for session
// enrichment and the system-info query. All lookups are advisory; callers
// treat failures as non-fatal.
package sysinfo

import (
	"context"
	"fmt"
	"net"

	"github.com/shirou/gopsutil/v4/cpu"
	"github.com/shirou/gopsutil/v4/disk"
	"github.com/shirou/gopsutil/v4/host"
	"github.com/shirou/gopsutil/v4/mem"
)

// Info describes the host a session is being tracked from.
type Info struct {
	IPAddress   string  `json:"ip_address"`
	MACAddress  string  `json:"mac_address"`
	Hostname    string  `json:"hostname"`
	OS          string  `json:"os_info"`
	OSVersion   string  `json:"os_version"`
	CPUUsage    float64 `json:"cpu_usage"`
	MemoryUsage float64 `json:"memory_usage"`
	DiskUsage   float64 `json:"disk_usage"`
}

// Collector gathers host descriptors.
type Collector interface {
	Collect(ctx context.Context) (*Info, error)
}

// systemCollector implements Collector using gopsutil.
type systemCollector struct{}

// NewCollector creates a Collector reading from the local system.
func NewCollector() Collector {
	return &systemCollector{}
}

// Collect gathers hostname, OS, network identity and resource utilization.
// Individual probes that fail leave their fields at zero values; only a total
// host-info failure is returned as an error.
func (c *systemCollector) Collect(ctx context.Context) (*Info, error) {
	hostInfo, err := host.InfoWithContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("read host info: %w", err)
	}

	info := &Info{
		Hostname:  hostInfo.Hostname,
		OS:        fmt.Sprintf("%s %s", hostInfo.Platform, hostInfo.PlatformVersion),
		OSVersion: hostInfo.PlatformVersion,
	}

	if percents, err := cpu.PercentWithContext(ctx, 0, false); err == nil && len(percents) > 0 {
		info.CPUUsage = percents[0]
	}
	if vm, err := mem.VirtualMemoryWithContext(ctx); err == nil {
		info.MemoryUsage = vm.UsedPercent
	}
	if usage, err := disk.UsageWithContext(ctx, "/"); err == nil {
		info.DiskUsage = usage.UsedPercent
	}

	info.IPAddress = outboundIP()
	info.MACAddress = primaryMAC()

	return info, nil
}

// outboundIP resolves the local address used for outbound traffic. No packet
// is sent; the dial only selects a route.
func outboundIP() string {
	conn, err := net.Dial("udp", "8.8.8.8:80")
	if err != nil {
		return "127.0.0.1"
	}
	defer conn.Close()

	if addr, ok := conn.LocalAddr().(*net.UDPAddr); ok {
		return addr.IP.String()
	}
	return "127.0.0.1"
}

// primaryMAC returns the hardware address of the first up, non-loopback
// interface.
func primaryMAC() string {
	ifaces, err := net.Interfaces()
	if err != nil {
		return ""
	}
	for _, iface := range ifaces {
		if iface.Flags&net.FlagLoopback != 0 || iface.Flags&net.FlagUp == 0 {
			continue
		}
		if len(iface.HardwareAddr) > 0 {
			return iface.HardwareAddr.String()
		}
	}
	return ""
}
