package metrics

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/nakabonne/tstorage"
)

// Metric names used across the application.
const (
	SystemCpuUse        = "system_cpuuse"
	SystemMemUse        = "system_memuse"
	CatalogProducts     = "catalog_products"
	CatalogSyncAdded    = "catalog_sync_added"
	CatalogSyncUpdated  = "catalog_sync_updated"
	CatalogSyncDeleted  = "catalog_sync_deleted"
	CatalogSyncDuration = "catalog_sync_duration_ms"
)

var (
	storage tstorage.Storage
	mu      sync.Mutex
)

// InitMetrics opens the embedded time-series store under workdir/metrics.
func InitMetrics(workdir string) error {
	mu.Lock()
	defer mu.Unlock()
	s, err := tstorage.NewStorage(
		tstorage.WithDataPath(filepath.Join(workdir, "metrics")),
		tstorage.WithTimestampPrecision(tstorage.Seconds),
		tstorage.WithRetention(30*24*time.Hour),
	)
	if err != nil {
		return err
	}
	storage = s
	return nil
}

// SetGauge records a point for the named metric at the current time.
func SetGauge(name string, value int64) {
	mu.Lock()
	defer mu.Unlock()
	if storage == nil {
		return
	}
	_ = storage.InsertRows([]tstorage.Row{
		{
			Metric: name,
			DataPoint: tstorage.DataPoint{
				Timestamp: time.Now().Unix(),
				Value:     float64(value),
			},
		},
	})
}

// Select returns the raw points for a metric in [start, end].
func Select(name string, start, end int64) ([]*tstorage.DataPoint, error) {
	mu.Lock()
	defer mu.Unlock()
	if storage == nil {
		return nil, nil
	}
	return storage.Select(name, nil, start, end)
}

// Close flushes and closes the store.
func Close() error {
	mu.Lock()
	defer mu.Unlock()
	if storage == nil {
		return nil
	}
	err := storage.Close()
	storage = nil
	return err
}
