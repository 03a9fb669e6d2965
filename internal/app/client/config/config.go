package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvLocal = "local"
	EnvDev   = "dev"
	EnvProd  = "prod"
)

const (
	StoreSQLite = "sqlite"
	StoreFile   = "file"
	StoreMemory = "memory"
)

const (
	defaultEnv             = EnvLocal
	defaultAPIBaseURL      = "http://localhost:8000"
	defaultOrigin          = "http://localhost:5173"
	defaultLogLevel        = "info"
	defaultConfigDir       = ".notekeeper"
	defaultCredentialStore = StoreSQLite
	defaultHTTPTimeout     = 30
	defaultRevalidate      = 0
)

type Config struct {
	Env                string        `mapstructure:"app_env"`
	APIBaseURL         string        `mapstructure:"api_base_url"`
	Origin             string        `mapstructure:"app_origin"`
	LogLevel           string        `mapstructure:"log_level"`
	ConfigDir          string        `mapstructure:"config_dir"`
	CredentialStore    string        `mapstructure:"credential_store"`
	CredentialPath     string        `mapstructure:"credential_path"`
	HTTPTimeout        time.Duration `mapstructure:"http_timeout_seconds"`
	RevalidateInterval time.Duration `mapstructure:"session_revalidate_seconds"`
}

// LoadDefault загружает конфигурацию клиента из .env, переменных окружения
// и файла конфигурации, уже прочитанного глобальным viper
func LoadDefault() (*Config, error) {
	loadDotEnv()
	return Load(viper.GetViper())
}

// Load собирает конфигурацию из переданного экземпляра viper
func Load(v *viper.Viper) (*Config, error) {
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", defaultEnv)
	v.SetDefault("API_BASE_URL", defaultAPIBaseURL)
	v.SetDefault("APP_ORIGIN", defaultOrigin)
	v.SetDefault("LOG_LEVEL", defaultLogLevel)
	v.SetDefault("CONFIG_DIR", defaultConfigDir)
	v.SetDefault("CREDENTIAL_STORE", defaultCredentialStore)
	v.SetDefault("HTTP_TIMEOUT_SECONDS", defaultHTTPTimeout)
	v.SetDefault("SESSION_REVALIDATE_SECONDS", defaultRevalidate)

	configDir := v.GetString("CONFIG_DIR")
	if configDir == defaultConfigDir {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			homeDir = "."
		}
		configDir = filepath.Join(homeDir, configDir)
	}

	storeKind := strings.ToLower(v.GetString("CREDENTIAL_STORE"))

	cfg := &Config{
		Env:                v.GetString("APP_ENV"),
		APIBaseURL:         strings.TrimRight(v.GetString("API_BASE_URL"), "/"),
		Origin:             strings.TrimRight(v.GetString("APP_ORIGIN"), "/"),
		LogLevel:           v.GetString("LOG_LEVEL"),
		ConfigDir:          configDir,
		CredentialStore:    storeKind,
		CredentialPath:     v.GetString("CREDENTIAL_PATH"),
		HTTPTimeout:        time.Duration(v.GetInt("HTTP_TIMEOUT_SECONDS")) * time.Second,
		RevalidateInterval: time.Duration(v.GetInt("SESSION_REVALIDATE_SECONDS")) * time.Second,
	}

	if cfg.CredentialPath == "" {
		cfg.CredentialPath = defaultCredentialPath(configDir, storeKind)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	if cfg.CredentialStore != StoreMemory {
		if err := os.MkdirAll(cfg.ConfigDir, 0700); err != nil {
			return nil, fmt.Errorf("ошибка создания директории конфигурации: %w", err)
		}
	}

	return cfg, nil
}

func loadDotEnv() {
	// .env ищем рядом с местом запуска, затем в родительской директории
	envPath := ".env"
	if _, err := os.Stat(envPath); os.IsNotExist(err) {
		envPath = "../.env"
	}

	if _, err := os.Stat(envPath); err == nil {
		if err := godotenv.Load(envPath); err != nil {
			fmt.Fprintf(os.Stderr, "Ошибка загрузки .env файла: %v\n", err)
		}
	}
}

func defaultCredentialPath(configDir, storeKind string) string {
	switch storeKind {
	case StoreFile:
		return filepath.Join(configDir, "credentials")
	case StoreSQLite:
		return filepath.Join(configDir, "credentials.db")
	default:
		return ""
	}
}

func (c *Config) validate() error {
	if err := validateURL("api_base_url", c.APIBaseURL); err != nil {
		return err
	}
	if err := validateURL("app_origin", c.Origin); err != nil {
		return err
	}

	switch c.CredentialStore {
	case StoreSQLite, StoreFile, StoreMemory:
	default:
		return fmt.Errorf("неизвестный credential_store: %q", c.CredentialStore)
	}

	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("http_timeout_seconds должен быть положительным")
	}
	if c.RevalidateInterval < 0 {
		return fmt.Errorf("session_revalidate_seconds не может быть отрицательным")
	}

	return nil
}

func validateURL(name, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s не может быть пустым", name)
	}

	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s: ожидается схема http или https, получено %q", name, u.Scheme)
	}
	if u.Host == "" {
		return fmt.Errorf("%s: не указан хост", name)
	}

	return nil
}

// StoreScope возвращает область хранения учетных данных:
// токены разных серверов не должны пересекаться
func (c *Config) StoreScope() string {
	u, err := url.Parse(c.APIBaseURL)
	if err != nil || u.Host == "" {
		return c.APIBaseURL
	}
	return u.Host
}

// IsProd проверяет, prod ли окружение
func (c *Config) IsProd() bool {
	return c.Env == EnvProd
}

// IsDev проверяет, dev ли окружение
func (c *Config) IsDev() bool {
	return c.Env == EnvDev
}

// IsLocal проверяет, local ли окружение
func (c *Config) IsLocal() bool {
	return c.Env == EnvLocal || c.Env == ""
}
