package services

import (
	"log"
	"os"
	"steamsize/internal/models"
	"time"

	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

const (
	MB = 1024 * 1024
	GB = 1024 * 1024 * 1024
)

var startedAt = time.Now()

// GetServiceStatus reports catalog size, uptime and memory figures.
// Host metrics that cannot be read are left at zero.
func GetServiceStatus(catalog *SizeCatalog) *models.ServiceStatus {
	status := &models.ServiceStatus{
		CatalogEntries: catalog.Len(),
		StartedAt:      startedAt,
		UptimeSeconds:  time.Since(startedAt).Seconds(),
	}

	if p, err := process.NewProcess(int32(os.Getpid())); err != nil {
		log.Printf("[STATUS] Warning: Could not open own process: %v", err)
	} else if info, err := p.MemoryInfo(); err != nil {
		log.Printf("[STATUS] Warning: Could not get process memory: %v", err)
	} else {
		status.ProcessRSSMB = float64(info.RSS) / MB
	}

	if vm, err := mem.VirtualMemory(); err != nil {
		log.Printf("[STATUS] Warning: Could not get host memory: %v", err)
	} else {
		status.HostMemoryGB = float64(vm.Total) / GB
		status.HostMemoryUsed = vm.UsedPercent
	}

	return status
}
