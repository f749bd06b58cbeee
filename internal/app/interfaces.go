package app

import (
	"github.com/asaskevich/EventBus"
	"github.com/robfig/cron/v3"

	"github.com/orderkart/orderkart/config"
	"github.com/orderkart/orderkart/internal/cart"
	"github.com/orderkart/orderkart/internal/store"
	"github.com/orderkart/orderkart/internal/syncer"
)

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// StoreProvider provides the durable key-value store
type StoreProvider interface {
	Store() *store.Store
}

// SettingsProvider provides runtime settings access
type SettingsProvider interface {
	GetSettingsStringValue(category, key string) string
	GetSettingsInt64Value(category, key string) int64
	GetSettingsBoolValue(category, key string) bool
	SaveSettings(settings map[string]interface{}) error
}

// SchedulerProvider provides task scheduling capability
type SchedulerProvider interface {
	Scheduler() *cron.Cron
}

// BusProvider provides the application event bus
type BusProvider interface {
	Bus() EventBus.Bus
}

// ServiceProvider provides the domain services
type ServiceProvider interface {
	CartService() *cart.Service
	SyncService() *syncer.Service
}

// AppContext combines all provider interfaces for full application context.
// Components should depend on the narrowest provider that serves them.
type AppContext interface {
	ConfigProvider
	StoreProvider
	SettingsProvider
	SchedulerProvider
	BusProvider
	ServiceProvider
}
