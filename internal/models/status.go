package models

import "time"

// ServiceStatus is reported by /api/status
type ServiceStatus struct {
	CatalogEntries int       `json:"catalog_entries"`
	StartedAt      time.Time `json:"started_at"`
	UptimeSeconds  float64   `json:"uptime_seconds"`
	ProcessRSSMB   float64   `json:"process_rss_mb"`
	HostMemoryGB   float64   `json:"host_memory_gb"`
	HostMemoryUsed float64   `json:"host_memory_used_percent"`
}
