package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	App     AppConfig
	Logger  LoggerConfig
	Backend BackendConfig
	Sheets  SheetsConfig
	SQLite  SQLiteConfig
	CSV     CSVConfig
	Cache   CacheConfig
}

type AppConfig struct {
	Env string
	// RequestTimeout bounds every backend call. Writes are not cancelable
	// once dispatched; this caps how long we wait for the answer.
	RequestTimeout time.Duration
}

type LoggerConfig struct {
	Level             string
	Encoding          string
	DisableCaller     bool
	DisableStacktrace bool
}

type BackendConfig struct {
	// Kind selects the persistence adapter: "sheets", "sqlite" or "csv".
	Kind string
}

type SheetsConfig struct {
	CredentialsFile string
	SpreadsheetID   string
	SheetName       string
}

type SQLiteConfig struct {
	Path string
}

type CSVConfig struct {
	Path string
}

type CacheConfig struct {
	TTL time.Duration
}

func LoadEnv() *Config {
	return &Config{
		App: AppConfig{
			Env:            getEnv("APP_ENV", "dev"),
			RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 30*time.Second),
		},
		Logger: LoggerConfig{
			Level:             getEnv("LOGGER_LEVEL", "debug"),
			Encoding:          getEnv("LOGGER_ENCODING", "console"),
			DisableCaller:     getEnvBool("LOGGER_DISABLE_CALLER", false),
			DisableStacktrace: getEnvBool("LOGGER_DISABLE_STACKTRACE", true),
		},
		Backend: BackendConfig{
			Kind: getEnv("BACKEND", "sheets"),
		},
		Sheets: SheetsConfig{
			CredentialsFile: getEnv("SHEETS_CREDENTIALS_FILE", ""),
			SpreadsheetID:   getEnv("SHEETS_SPREADSHEET_ID", ""),
			SheetName:       getEnv("SHEETS_SHEET_NAME", "在庫"),
		},
		SQLite: SQLiteConfig{
			Path: getEnv("SQLITE_PATH", "inventory.db"),
		},
		CSV: CSVConfig{
			Path: getEnv("CSV_PATH", "inventory.csv"),
		},
		Cache: CacheConfig{
			TTL: getEnvDuration("CACHE_TTL", time.Minute),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
