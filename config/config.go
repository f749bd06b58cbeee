package config

import (
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v2"
)

// SysConfig holds common system-level options.
type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

// WebConfig holds the HTTP API listener options.
type WebConfig struct {
	Host string `yaml:"host" json:"host"`
	Port int    `yaml:"port" json:"port"`
}

// CatalogConfig points at the remote catalog source.
type CatalogConfig struct {
	URL     string `yaml:"url" json:"url"`
	Timeout int    `yaml:"timeout" json:"timeout"` // seconds
}

// WhatsappConfig controls the optional outbound WhatsApp client.
type WhatsappConfig struct {
	Enabled    bool   `yaml:"enabled" json:"enabled"`
	StoreFile  string `yaml:"store_file" json:"store_file"`
	DefaultJid string `yaml:"default_jid" json:"default_jid"`
}

// LogConfig holds logger options.
type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System   SysConfig      `yaml:"system" json:"system"`
	Web      WebConfig      `yaml:"web" json:"web"`
	Catalog  CatalogConfig  `yaml:"catalog" json:"catalog"`
	Whatsapp WhatsappConfig `yaml:"whatsapp" json:"whatsapp"`
	Logger   LogConfig      `yaml:"logger" json:"logger"`
}

func (c *AppConfig) GetLogDir() string {
	return filepath.Join(c.System.Workdir, "logs")
}

func (c *AppConfig) GetDataDir() string {
	return filepath.Join(c.System.Workdir, "data")
}

func (c *AppConfig) initDirs() {
	_ = os.MkdirAll(filepath.Join(c.System.Workdir, "logs"), 0755)
	_ = os.MkdirAll(filepath.Join(c.System.Workdir, "data"), 0755)
	_ = os.MkdirAll(filepath.Join(c.System.Workdir, "metrics"), 0755)
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "orderkart",
		Location: "Asia/Kolkata",
		Workdir:  "/var/orderkart",
		Debug:    true,
	},
	Web: WebConfig{
		Host: "0.0.0.0",
		Port: 1980,
	},
	Catalog: CatalogConfig{
		URL:     "https://raw.githubusercontent.com/orderkart/catalog/main/catalog.json",
		Timeout: 30,
	},
	Whatsapp: WhatsappConfig{
		Enabled:   false,
		StoreFile: "whatsapp.db",
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/orderkart/orderkart.log",
	},
}

// LoadConfig reads the YAML config file and applies environment overrides.
// A missing file yields the defaults.
func LoadConfig(cfile string) *AppConfig {
	cfg := new(AppConfig)
	*cfg = *DefaultAppConfig
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			_ = yaml.Unmarshal(data, cfg)
		}
	}

	setEnvString("ORDERKART_SYSTEM_WORKDIR", &cfg.System.Workdir)
	setEnvString("ORDERKART_SYSTEM_LOCATION", &cfg.System.Location)
	setEnvBool("ORDERKART_SYSTEM_DEBUG", &cfg.System.Debug)
	setEnvString("ORDERKART_WEB_HOST", &cfg.Web.Host)
	setEnvInt("ORDERKART_WEB_PORT", &cfg.Web.Port)
	setEnvString("ORDERKART_CATALOG_URL", &cfg.Catalog.URL)
	setEnvInt("ORDERKART_CATALOG_TIMEOUT", &cfg.Catalog.Timeout)
	setEnvBool("ORDERKART_WHATSAPP_ENABLED", &cfg.Whatsapp.Enabled)
	setEnvString("ORDERKART_LOGGER_MODE", &cfg.Logger.Mode)

	cfg.initDirs()
	return cfg
}

func setEnvString(name string, val *string) {
	if v := os.Getenv(name); v != "" {
		*val = v
	}
}

func setEnvInt(name string, val *int) {
	if v := os.Getenv(name); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			*val = i
		}
	}
}

func setEnvBool(name string, val *bool) {
	if v := os.Getenv(name); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*val = b
		}
	}
}
