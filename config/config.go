// Package config loads the service configuration. Values are layered:
// defaults, then an optional YAML file, then a .env file, then MENU_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/goliatone/go-menu-cache/cache"
	"github.com/goliatone/go-menu-cache/internal/storage"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const envPrefix = "MENU_"

type Config struct {
	HTTP    HTTPConfig     `yaml:"http"`
	Storage storage.Config `yaml:"storage"`
	Cache   cache.Config   `yaml:"cache"`
	Log     LogConfig      `yaml:"log"`
}

type HTTPConfig struct {
	Addr            string        `yaml:"addr"`
	ReadTimeout     time.Duration `yaml:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type LogConfig struct {
	Level       string `yaml:"level"`
	Development bool   `yaml:"development"`
}

// Default returns a configuration that runs against a local SQLite file with
// the in-process cache.
func Default() Config {
	return Config{
		HTTP: HTTPConfig{
			Addr:            ":8000",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    10 * time.Second,
			ShutdownTimeout: 15 * time.Second,
		},
		Storage: storage.Config{
			Driver:       storage.DriverSQLite,
			DSN:          "file:menu.db?_foreign_keys=1",
			MaxOpenConns: 10,
			MaxIdleConns: 5,
			AutoMigrate:  true,
		},
		Cache: cache.DefaultConfig(),
		Log: LogConfig{
			Level: "info",
		},
	}
}

// Load builds the configuration. path may be empty to skip the YAML layer.
// A missing .env file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("config: load .env: %w", err)
	}

	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if err := validation.ValidateStruct(&c.HTTP,
		validation.Field(&c.HTTP.Addr, validation.Required),
		validation.Field(&c.HTTP.ShutdownTimeout, validation.Min(time.Duration(0))),
	); err != nil {
		return fmt.Errorf("http: %w", err)
	}

	if err := validation.ValidateStruct(&c.Storage,
		validation.Field(&c.Storage.Driver, validation.Required, validation.In(storage.DriverPostgres, storage.DriverPgx, storage.DriverSQLite)),
		validation.Field(&c.Storage.DSN, validation.Required),
	); err != nil {
		return fmt.Errorf("storage: %w", err)
	}

	if err := c.Cache.Validate(); err != nil {
		return fmt.Errorf("cache: %w", err)
	}

	return validation.ValidateStruct(&c.Log,
		validation.Field(&c.Log.Level, validation.In("debug", "info", "warn", "error")),
	)
}

type lookupFunc func(string) (string, bool)

func (c *Config) applyEnv(lookup lookupFunc) error {
	env := envReader{lookup: lookup}

	env.str("HTTP_ADDR", &c.HTTP.Addr)
	env.str("DB_DRIVER", &c.Storage.Driver)
	env.str("DB_DSN", &c.Storage.DSN)
	env.boolean("DB_AUTO_MIGRATE", &c.Storage.AutoMigrate)

	var backend string
	if env.str("CACHE_BACKEND", &backend) {
		c.Cache.Backend = cache.Backend(backend)
	}
	env.str("CACHE_NAMESPACE", &c.Cache.Namespace)
	env.duration("CACHE_TTL", &c.Cache.TTL)
	env.integer("CACHE_CAPACITY", &c.Cache.Capacity)

	var addrs string
	if env.str("MEMCACHE_ADDR", &addrs) {
		c.Cache.MemcacheAddrs = splitList(addrs)
	}

	env.str("LOG_LEVEL", &c.Log.Level)
	env.boolean("LOG_DEVELOPMENT", &c.Log.Development)

	return env.err()
}

// envReader collects parse failures so every variable is reported at once.
type envReader struct {
	lookup lookupFunc
	errs   []error
}

func (r *envReader) str(name string, dst *string) bool {
	v, ok := r.lookup(envPrefix + name)
	if !ok {
		return false
	}
	*dst = strings.TrimSpace(v)
	return true
}

func (r *envReader) boolean(name string, dst *bool) {
	var raw string
	if !r.str(name, &raw) {
		return
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s%s: %w", envPrefix, name, err))
		return
	}
	*dst = v
}

func (r *envReader) integer(name string, dst *int) {
	var raw string
	if !r.str(name, &raw) {
		return
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s%s: %w", envPrefix, name, err))
		return
	}
	*dst = v
}

func (r *envReader) duration(name string, dst *time.Duration) {
	var raw string
	if !r.str(name, &raw) {
		return
	}
	v, err := time.ParseDuration(raw)
	if err != nil {
		r.errs = append(r.errs, fmt.Errorf("%s%s: %w", envPrefix, name, err))
		return
	}
	*dst = v
}

func (r *envReader) err() error {
	if len(r.errs) == 0 {
		return nil
	}
	return fmt.Errorf("config: %w", errors.Join(r.errs...))
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
