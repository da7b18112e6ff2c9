package config

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/spf13/viper"

	"github.com/Veraticus/hamyon/internal/common"
	"github.com/Veraticus/hamyon/internal/storage"
)

// EnvPrefix prefixes every environment override, e.g. HAMYON_STORAGE_BACKEND.
const EnvPrefix = "HAMYON"

// Viper keys.
const (
	KeyStorageBackend = "storage.backend"
	KeyStoragePath    = "storage.path"
	KeyStorageKey     = "storage.key"
	KeyLogLevel       = "logging.level"
	KeyLogFormat      = "logging.format"
	KeyCurrency       = "display.currency"
	KeyRecent         = "display.recent"
	KeyMonths         = "display.months"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{"console", "json"}
)

// Config is the resolved application configuration.
type Config struct {
	Storage StorageConfig
	Logging LoggingConfig
	Display DisplayConfig
}

// StorageConfig selects where the finance document lives.
type StorageConfig struct {
	Backend string
	// Path is a database file for sqlite and a directory for file.
	Path string
	Key  string
}

// LoggingConfig controls the slog handler.
type LoggingConfig struct {
	Level  string
	Format string
}

// DisplayConfig controls terminal output.
type DisplayConfig struct {
	Currency string
	Recent   int
	Months   int
}

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(KeyStorageBackend, storage.BackendSQLite)
	v.SetDefault(KeyStoragePath, "")
	v.SetDefault(KeyStorageKey, "finance_tracker_data")
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "console")
	v.SetDefault(KeyCurrency, "so'm")
	v.SetDefault(KeyRecent, 5)
	v.SetDefault(KeyMonths, 6)
}

// Load reads the configuration out of v and validates it.
// An empty storage path resolves to the backend's default location.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Storage: StorageConfig{
			Backend: strings.ToLower(strings.TrimSpace(v.GetString(KeyStorageBackend))),
			Path:    ExpandPath(v.GetString(KeyStoragePath)),
			Key:     v.GetString(KeyStorageKey),
		},
		Logging: LoggingConfig{
			Level:  strings.ToLower(v.GetString(KeyLogLevel)),
			Format: strings.ToLower(v.GetString(KeyLogFormat)),
		},
		Display: DisplayConfig{
			Currency: v.GetString(KeyCurrency),
			Recent:   v.GetInt(KeyRecent),
			Months:   v.GetInt(KeyMonths),
		},
	}

	if cfg.Storage.Path == "" {
		cfg.Storage.Path = DefaultStoragePath(cfg.Storage.Backend)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// DefaultStoragePath returns the default location for backend.
func DefaultStoragePath(backend string) string {
	switch backend {
	case storage.BackendSQLite:
		return filepath.Join(DataDir(), appName+".db")
	case storage.BackendFile:
		return DataDir()
	default:
		return ""
	}
}

// Validate reports every problem at once. The error wraps ErrInvalidConfig,
// and also ErrMissingConfig when a required value is empty.
func (c *Config) Validate() error {
	var problems []string
	missing := false

	if !slices.Contains(storage.Backends, c.Storage.Backend) {
		problems = append(problems, fmt.Sprintf("invalid storage backend %q: must be one of %v", c.Storage.Backend, storage.Backends))
	}
	if c.Storage.Backend != storage.BackendMemory && c.Storage.Path == "" {
		problems = append(problems, fmt.Sprintf("storage path cannot be empty for the %s backend", c.Storage.Backend))
		missing = true
	}
	if c.Storage.Key == "" {
		problems = append(problems, "storage key cannot be empty")
		missing = true
	} else if strings.ContainsAny(c.Storage.Key, `/\`) {
		problems = append(problems, fmt.Sprintf("invalid storage key %q: must not contain path separators", c.Storage.Key))
	}

	if !slices.Contains(logLevels, c.Logging.Level) {
		problems = append(problems, fmt.Sprintf("invalid log level %q: must be one of %v", c.Logging.Level, logLevels))
	}
	if !slices.Contains(logFormats, c.Logging.Format) {
		problems = append(problems, fmt.Sprintf("invalid log format %q: must be one of %v", c.Logging.Format, logFormats))
	}

	if c.Display.Recent < 1 {
		problems = append(problems, fmt.Sprintf("invalid display.recent %d: must be at least 1", c.Display.Recent))
	}
	if c.Display.Months < 1 || c.Display.Months > 120 {
		problems = append(problems, fmt.Sprintf("invalid display.months %d: must be between 1 and 120", c.Display.Months))
	}

	if len(problems) == 0 {
		return nil
	}
	listed := strings.Join(problems, "\n- ")
	if missing {
		return fmt.Errorf("%w: %w:\n- %s", common.ErrInvalidConfig, common.ErrMissingConfig, listed)
	}
	return fmt.Errorf("%w:\n- %s", common.ErrInvalidConfig, listed)
}

// EnvKeyReplacer maps nested keys to environment names: storage.path becomes STORAGE_PATH.
func EnvKeyReplacer() *strings.Replacer {
	return strings.NewReplacer(".", "_")
}
