package app

import (
	"context"
	"os"
	"path/filepath"
	"time"
	_ "time/tzdata"

	"github.com/asaskevich/EventBus"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/orderkart/orderkart/config"
	"github.com/orderkart/orderkart/internal/cart"
	"github.com/orderkart/orderkart/internal/catalog"
	"github.com/orderkart/orderkart/internal/store"
	"github.com/orderkart/orderkart/internal/syncer"
	"github.com/orderkart/orderkart/internal/whatsapp"
	"github.com/orderkart/orderkart/pkg/metrics"
)

// Application owns all shared state: the store, the event bus, the domain
// services and the cron scheduler. Commands flow through the services; there
// is no ambient mutable state outside this container.
type Application struct {
	appConfig     *config.AppConfig
	cacheStore    *store.Store
	bus           EventBus.Bus
	sched         *cron.Cron
	configManager *ConfigManager
	cartService   *cart.Service
	syncService   *syncer.Service
	waService     *whatsapp.Service
}

// Ensure Application implements all interfaces
var (
	_ ConfigProvider    = (*Application)(nil)
	_ StoreProvider     = (*Application)(nil)
	_ SettingsProvider  = (*Application)(nil)
	_ SchedulerProvider = (*Application)(nil)
	_ BusProvider       = (*Application)(nil)
	_ AppContext        = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) Store() *store.Store {
	return a.cacheStore
}

func (a *Application) Bus() EventBus.Bus {
	return a.bus
}

// Scheduler returns the cron scheduler
func (a *Application) Scheduler() *cron.Cron {
	return a.sched
}

// ConfigMgr returns the settings manager
func (a *Application) ConfigMgr() *ConfigManager {
	return a.configManager
}

func (a *Application) CartService() *cart.Service {
	return a.cartService
}

func (a *Application) SyncService() *syncer.Service {
	return a.syncService
}

func (a *Application) Init(cfg *config.AppConfig) error {
	loc, err := time.LoadLocation(cfg.System.Location)
	if err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	a.initLogger(cfg)

	if err := metrics.InitMetrics(cfg.System.Workdir); err != nil {
		zap.S().Warn("Failed to initialize metrics:", err)
	}

	st, err := store.Open(filepath.Join(cfg.GetDataDir(), "orderkart.db"))
	if err != nil {
		return err
	}
	a.cacheStore = st
	zap.S().Infof("store opened under %s", cfg.GetDataDir())

	a.bus = EventBus.New()
	a.configManager = NewConfigManager(a)
	a.checkSettings()

	fetcher := catalog.NewHTTPFetcher(cfg.Catalog.URL, time.Duration(cfg.Catalog.Timeout)*time.Second)
	a.syncService = syncer.New(fetcher, st, a.bus)
	a.cartService = cart.New(st)

	if err := a.bus.Subscribe(syncer.TopicSyncCompleted, a.onSyncCompleted); err != nil {
		zap.S().Errorf("bus subscribe error %s", err.Error())
	}

	if cfg.Whatsapp.Enabled {
		wa, err := whatsapp.New(context.Background(), cfg)
		if err != nil {
			zap.L().Error("whatsapp init failed", zap.Error(err))
		} else {
			a.waService = wa
			if wa.Paired() {
				wa.ConnectAsync()
			}
		}
	}

	a.initJob()
	return nil
}

// initLogger configures the global zap logger with an optional rotating
// file sink.
func (a *Application) initLogger(cfg *config.AppConfig) {
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}

	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}

		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stdout),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller())
	} else {
		var err error
		logger, err = zapConfig.Build(zap.AddCaller())
		if err != nil {
			panic(err)
		}
	}

	zap.ReplaceGlobals(logger)
}

// GetSettingsStringValue retrieves a string settings value
func (a *Application) GetSettingsStringValue(category, key string) string {
	return a.configManager.GetString(category, key)
}

// GetSettingsInt64Value retrieves an int64 settings value
func (a *Application) GetSettingsInt64Value(category, key string) int64 {
	return a.configManager.GetInt64(category, key)
}

// GetSettingsBoolValue retrieves a boolean settings value
func (a *Application) GetSettingsBoolValue(category, key string) bool {
	return a.configManager.GetBool(category, key)
}

// SaveSettings persists a settings map
func (a *Application) SaveSettings(settings map[string]interface{}) error {
	return a.configManager.Save(settings)
}

// Release releases application resources
func (a *Application) Release() {
	if a.sched != nil {
		a.sched.Stop()
	}
	if a.waService != nil {
		a.waService.Stop()
	}
	if a.cacheStore != nil {
		_ = a.cacheStore.Close()
	}
	_ = metrics.Close()
	_ = zap.L().Sync()
}
