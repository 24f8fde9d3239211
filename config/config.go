package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type APIConfig struct {
	BaseURL        string `mapstructure:"baseURL" json:"baseURL"`
	TimeoutSeconds int    `mapstructure:"timeoutSeconds" json:"timeoutSeconds"`
	Email          string `mapstructure:"email" json:"email"`
	Password       string `mapstructure:"password" json:"-"`
}

type ServerConfig struct {
	Addr           string   `mapstructure:"addr" json:"addr"`
	OpenBrowser    bool     `mapstructure:"openBrowser" json:"openBrowser"`
	AllowedOrigins []string `mapstructure:"allowedOrigins" json:"allowedOrigins"`
}

type CacheConfig struct {
	Path string `mapstructure:"path" json:"path"`
}

type InvoiceConfig struct {
	OrganizationName string `mapstructure:"organizationName" json:"organizationName"`
	BrowserBin       string `mapstructure:"browserBin" json:"browserBin"`
}

// Config はアプリケーション全体の設定です。
type Config struct {
	API     APIConfig     `mapstructure:"api" json:"api"`
	Server  ServerConfig  `mapstructure:"server" json:"server"`
	Cache   CacheConfig   `mapstructure:"cache" json:"cache"`
	Invoice InvoiceConfig `mapstructure:"invoice" json:"invoice"`
	Offline bool          `mapstructure:"offline" json:"offline"`
}

// Timeout is the API request timeout.
func (c Config) Timeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

var (
	cfg  Config
	used string
	mu   sync.RWMutex
)

const (
	configName = "nightshift"
	envPrefix  = "NIGHTSHIFT"
)

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.baseURL", "http://localhost:8080/api")
	v.SetDefault("api.timeoutSeconds", 20)
	v.SetDefault("api.email", "")
	v.SetDefault("api.password", "")
	v.SetDefault("server.addr", "127.0.0.1:8090")
	v.SetDefault("server.openBrowser", true)
	v.SetDefault("server.allowedOrigins", []string{"http://localhost:3000"})
	v.SetDefault("cache.path", "./nightshift.db")
	v.SetDefault("invoice.organizationName", "")
	v.SetDefault("invoice.browserBin", "")
	v.SetDefault("offline", false)
}

// LoadConfig は設定ファイル・環境変数・フラグから設定を読み込みます。
// path may be empty to search ./nightshift.yaml and $HOME/.nightshift.
func LoadConfig(path string, flags *pflag.FlagSet) (Config, error) {
	mu.Lock()
	defer mu.Unlock()

	v := viper.New()
	setDefaults(v)
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".nightshift"))
		}
	}
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if f := flags.Lookup("offline"); f != nil {
			if err := v.BindPFlag("offline", f); err != nil {
				return Config{}, fmt.Errorf("failed to bind offline flag: %w", err)
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
		log.Println("INFO: no nightshift.yaml found, using defaults and env vars")
	} else {
		log.Printf("INFO: loaded config from %s", v.ConfigFileUsed())
	}

	var tempCfg Config
	if err := v.Unmarshal(&tempCfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	if tempCfg.API.TimeoutSeconds <= 0 {
		tempCfg.API.TimeoutSeconds = 20
	}
	cfg = tempCfg
	used = v.ConfigFileUsed()
	return cfg, nil
}

// SaveConfig writes newCfg to path, or to the file it was loaded from.
func SaveConfig(newCfg Config, path string) error {
	mu.Lock()
	defer mu.Unlock()

	if path == "" {
		path = used
	}
	if path == "" {
		path = configName + ".yaml"
	}
	if newCfg.API.TimeoutSeconds <= 0 {
		newCfg.API.TimeoutSeconds = 20
	}

	v := viper.New()
	v.Set("api.baseURL", newCfg.API.BaseURL)
	v.Set("api.timeoutSeconds", newCfg.API.TimeoutSeconds)
	v.Set("api.email", newCfg.API.Email)
	v.Set("api.password", newCfg.API.Password)
	v.Set("server.addr", newCfg.Server.Addr)
	v.Set("server.openBrowser", newCfg.Server.OpenBrowser)
	v.Set("server.allowedOrigins", newCfg.Server.AllowedOrigins)
	v.Set("cache.path", newCfg.Cache.Path)
	v.Set("invoice.organizationName", newCfg.Invoice.OrganizationName)
	v.Set("invoice.browserBin", newCfg.Invoice.BrowserBin)
	v.Set("offline", newCfg.Offline)
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}
	cfg = newCfg
	used = path
	return nil
}

func GetConfig() Config {
	mu.RLock()
	defer mu.RUnlock()
	return cfg
}
