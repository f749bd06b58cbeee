package app

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"
	"go.uber.org/zap"

	"github.com/orderkart/orderkart/internal/domain"
	"github.com/orderkart/orderkart/pkg/metrics"
)

var cronParser = cron.NewParser(
	cron.SecondOptional | cron.Minute | cron.Hour | cron.Dom | cron.Month | cron.Dow | cron.Descriptor,
)

func (a *Application) initJob() {
	loc, _ := time.LoadLocation(a.appConfig.System.Location)
	a.sched = cron.New(cron.WithLocation(loc), cron.WithParser(cronParser))

	var err error
	_, err = a.sched.AddFunc("@every 30s", func() {
		go a.SchedSystemMonitorTask()
	})
	if err != nil {
		zap.S().Errorf("init job error %s", err.Error())
	}

	// Auto-sync schedule comes from settings; an empty value disables it.
	autoCron := a.configManager.GetString("sync", "auto_cron")
	if autoCron != "" {
		_, err = a.sched.AddFunc(autoCron, a.SchedCatalogSyncTask)
		if err != nil {
			zap.S().Errorf("auto-sync job error %s", err.Error())
		} else {
			zap.L().Info("auto-sync scheduled", zap.String("cron", autoCron))
		}
	}

	a.sched.Start()
}

// SchedSystemMonitorTask collects host cpu/mem gauges.
func (a *Application) SchedSystemMonitorTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	_cpuuse, err := cpu.Percent(0, false)
	if err == nil && len(_cpuuse) > 0 {
		metrics.SetGauge(metrics.SystemCpuUse, int64(_cpuuse[0]*100))
	}

	_meminfo, err := mem.VirtualMemory()
	if err == nil {
		metrics.SetGauge(metrics.SystemMemUse, int64(_meminfo.Used/1024/1024)) //nolint:gosec // G115: memory MB value fits in int64
	}
}

// SchedCatalogSyncTask runs one scheduled catalog sync. Failures are logged
// and left for the next tick; there is no retry.
func (a *Application) SchedCatalogSyncTask() {
	defer func() {
		if err := recover(); err != nil {
			zap.S().Error(err)
		}
	}()

	timeout := time.Duration(a.appConfig.Catalog.Timeout) * time.Second
	ctx, cancel := context.WithTimeout(context.Background(), timeout+10*time.Second)
	defer cancel()

	if _, err := a.syncService.Sync(ctx); err != nil {
		zap.L().Warn("scheduled catalog sync failed", zap.Error(err))
	}
}

// onSyncCompleted feeds sync statistics into the metrics store.
func (a *Application) onSyncCompleted(st domain.SyncStats, elapsed time.Duration) {
	metrics.SetGauge(metrics.CatalogSyncAdded, int64(st.Added))
	metrics.SetGauge(metrics.CatalogSyncUpdated, int64(st.Updated))
	metrics.SetGauge(metrics.CatalogSyncDeleted, int64(st.Deleted))
	metrics.SetGauge(metrics.CatalogSyncDuration, elapsed.Milliseconds())
	if products, err := a.cacheStore.Products(); err == nil {
		metrics.SetGauge(metrics.CatalogProducts, int64(len(products)))
	}
}
