package app

import (
	"fmt"
	"strings"

	"github.com/mitchellh/mapstructure"
	"github.com/pkg/errors"
	"github.com/spf13/cast"
	"go.uber.org/zap"
)

// ConfigManager reads and writes runtime settings kept in the store's
// settings bucket, keyed "category.name". Values are stored as strings and
// cast on read.
type ConfigManager struct {
	app *Application
}

func NewConfigManager(app *Application) *ConfigManager {
	return &ConfigManager{app: app}
}

func (m *ConfigManager) GetString(category, key string) string {
	return m.app.cacheStore.GetSetting(category, key)
}

func (m *ConfigManager) GetInt64(category, key string) int64 {
	return cast.ToInt64(m.app.cacheStore.GetSetting(category, key))
}

func (m *ConfigManager) GetInt(category, key string) int {
	return cast.ToInt(m.app.cacheStore.GetSetting(category, key))
}

func (m *ConfigManager) GetBool(category, key string) bool {
	return cast.ToBool(m.app.cacheStore.GetSetting(category, key))
}

func (m *ConfigManager) Set(category, key, value string) error {
	return m.app.cacheStore.PutSetting(category, key, value)
}

// settingsPayload is the accepted shape for bulk settings saves.
type settingsPayload struct {
	Sync struct {
		AutoCron string `mapstructure:"auto_cron"`
	} `mapstructure:"sync"`
	Orders struct {
		HistoryLimit int `mapstructure:"history_limit"`
	} `mapstructure:"orders"`
}

// Save decodes a nested settings map and persists every known value.
// Unknown keys are rejected so typos do not vanish silently.
func (m *ConfigManager) Save(settings map[string]interface{}) error {
	var payload settingsPayload
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      &payload,
		ErrorUnused: true,
	})
	if err != nil {
		return err
	}
	if err := decoder.Decode(settings); err != nil {
		return errors.Wrap(err, "decode settings")
	}

	pairs := map[string]string{
		"sync.auto_cron":       payload.Sync.AutoCron,
		"orders.history_limit": fmt.Sprintf("%d", payload.Orders.HistoryLimit),
	}
	for key, value := range pairs {
		parts := strings.SplitN(key, ".", 2)
		if err := m.Set(parts[0], parts[1], value); err != nil {
			return err
		}
	}
	return nil
}

// checkSettings seeds missing settings with their defaults.
func (a *Application) checkSettings() {
	defaults := map[string]string{
		"sync.auto_cron":       "@every 1h",
		"orders.history_limit": "50",
	}
	for key, value := range defaults {
		parts := strings.SplitN(key, ".", 2)
		if a.cacheStore.GetSetting(parts[0], parts[1]) != "" {
			continue
		}
		if err := a.cacheStore.PutSetting(parts[0], parts[1], value); err != nil {
			zap.L().Error("failed to seed setting", zap.String("key", key), zap.Error(err))
		}
	}
}
