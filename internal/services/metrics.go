package services

import (
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/mem"
	"github.com/shirou/gopsutil/v3/process"
)

type MetricSample struct {
	CapturedAt         time.Time `json:"capturedAt"`
	ProcessMemoryBytes int64     `json:"processMemoryBytes"`
	SystemMemoryTotal  int64     `json:"systemMemoryTotalBytes"`
	SystemMemoryUsed   int64     `json:"systemMemoryUsedBytes"`
	DiskTotalBytes     int64     `json:"diskTotalBytes"`
	DiskUsedBytes      int64     `json:"diskUsedBytes"`
	ProcessCpuLoad     float64   `json:"processCpuLoad"`
	SystemCpuLoad      float64   `json:"systemCpuLoad"`
}

// CaptureMetrics samples process and host gauges, persists the sample and
// returns it for broadcasting. diskPath falls back to / when unreadable.
func CaptureMetrics(db *sqlx.DB, diskPath string) (MetricSample, error) {
	memStat, _ := mem.VirtualMemory()
	diskStat, err := disk.Usage(diskPath)
	if err != nil {
		diskStat, _ = disk.Usage("/")
	}
	processRSS := int64(0)
	processCPU := float64(0)
	if proc, _ := process.NewProcess(int32(os.Getpid())); proc != nil {
		if info, _ := proc.MemoryInfo(); info != nil {
			processRSS = int64(info.RSS)
		}
		cpuPerc, _ := proc.CPUPercent()
		processCPU = cpuPerc / 100.0
	}
	sysCPUValue := 0.0
	if sysCPU, _ := cpu.Percent(0, false); len(sysCPU) > 0 {
		sysCPUValue = sysCPU[0] / 100.0
	}
	sample := MetricSample{
		CapturedAt:         time.Now().UTC(),
		ProcessMemoryBytes: processRSS,
		SystemMemoryTotal:  int64(memStat.Total),
		SystemMemoryUsed:   int64(memStat.Total - memStat.Available),
		DiskTotalBytes:     int64(diskStat.Total),
		DiskUsedBytes:      int64(diskStat.Used),
		ProcessCpuLoad:     processCPU,
		SystemCpuLoad:      sysCPUValue,
	}
	_, err = db.Exec(`
INSERT INTO server_metric_samples (
  id, captured_at, process_memory_bytes, system_memory_total_bytes,
  system_memory_used_bytes, disk_total_bytes, disk_used_bytes, process_cpu_load, system_cpu_load
) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9)
`, uuid.NewString(), sample.CapturedAt, sample.ProcessMemoryBytes, sample.SystemMemoryTotal,
		sample.SystemMemoryUsed, sample.DiskTotalBytes, sample.DiskUsedBytes, sample.ProcessCpuLoad, sample.SystemCpuLoad)
	if err != nil {
		return MetricSample{}, err
	}
	return sample, nil
}

// LatestMetrics returns up to limit samples, oldest first.
func LatestMetrics(db *sqlx.DB, limit int) ([]MetricSample, error) {
	type row struct {
		CapturedAt         time.Time `db:"captured_at"`
		ProcessMemoryBytes int64     `db:"process_memory_bytes"`
		SystemMemoryTotal  int64     `db:"system_memory_total_bytes"`
		SystemMemoryUsed   int64     `db:"system_memory_used_bytes"`
		DiskTotalBytes     int64     `db:"disk_total_bytes"`
		DiskUsedBytes      int64     `db:"disk_used_bytes"`
		ProcessCpuLoad     float64   `db:"process_cpu_load"`
		SystemCpuLoad      float64   `db:"system_cpu_load"`
	}
	rows := []row{}
	if err := db.Select(&rows, `
SELECT captured_at, process_memory_bytes, system_memory_total_bytes,
       system_memory_used_bytes, disk_total_bytes, disk_used_bytes, process_cpu_load, system_cpu_load
FROM server_metric_samples
ORDER BY captured_at DESC
LIMIT $1
`, limit); err != nil {
		return nil, err
	}
	items := make([]MetricSample, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		items = append(items, MetricSample{
			CapturedAt:         rows[i].CapturedAt,
			ProcessMemoryBytes: rows[i].ProcessMemoryBytes,
			SystemMemoryTotal:  rows[i].SystemMemoryTotal,
			SystemMemoryUsed:   rows[i].SystemMemoryUsed,
			DiskTotalBytes:     rows[i].DiskTotalBytes,
			DiskUsedBytes:      rows[i].DiskUsedBytes,
			ProcessCpuLoad:     rows[i].ProcessCpuLoad,
			SystemCpuLoad:      rows[i].SystemCpuLoad,
		})
	}
	return items, nil
}
