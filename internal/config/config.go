// Package config resolves tasklist settings from defaults, a TOML file,
// TASKLIST_* environment variables and command line flags, in that order.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/BurntSushi/toml"
)

const (
	DefaultAddr       = "127.0.0.1:8080"
	DefaultStore      = StoreMemory
	DefaultSQLiteDSN  = ":memory:"
	DefaultIDScheme   = IDSchemeUUID
	DefaultLogLevel   = "info"
	DefaultConfigFile = "tasklist.toml"
)

const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"

	IDSchemeUUID    = "uuid"
	IDSchemeCounter = "counter"
)

// Config holds runtime settings for both shells.
type Config struct {
	Addr      string `toml:"addr"`
	Store     string `toml:"store"`
	SQLiteDSN string `toml:"sqlite_dsn"`
	IDScheme  string `toml:"id_scheme"`
	LogLevel  string `toml:"log_level"`
	LogFile   string `toml:"log_file"`
	Seed      bool   `toml:"seed"`

	// ConfigFile is the file that was loaded, if any.
	ConfigFile string `toml:"-"`
}

func setDefaults(cfg *Config) {
	cfg.Addr = DefaultAddr
	cfg.Store = DefaultStore
	cfg.SQLiteDSN = DefaultSQLiteDSN
	cfg.IDScheme = DefaultIDScheme
	cfg.LogLevel = DefaultLogLevel
}

type flagValues struct {
	config    string
	addr      string
	store     string
	sqliteDSN string
	idScheme  string
	logLevel  string
	logFile   string
	seed      bool
}

func registerFlags(fs *flag.FlagSet) *flagValues {
	v := &flagValues{}
	fs.StringVar(&v.config, "config", "", "Path to a TOML config file (env: TASKLIST_CONFIG)")
	fs.StringVar(&v.addr, "addr", "", "Listen address for the web shell (env: TASKLIST_ADDR)")
	fs.StringVar(&v.store, "store", "", "Session store: memory or sqlite (env: TASKLIST_STORE)")
	fs.StringVar(&v.sqliteDSN, "sqlite-dsn", "", "SQLite DSN for the sqlite store (env: TASKLIST_SQLITE_DSN)")
	fs.StringVar(&v.idScheme, "id-scheme", "", "Task id scheme: uuid or counter (env: TASKLIST_ID_SCHEME)")
	fs.StringVar(&v.logLevel, "log-level", "", "Log level: debug, info, warn, error (env: TASKLIST_LOG_LEVEL)")
	fs.StringVar(&v.logFile, "log-file", "", "Write logs to this file (env: TASKLIST_LOG_FILE)")
	fs.BoolVar(&v.seed, "seed", false, "Start with sample tasks (env: TASKLIST_SEED)")
	return v
}

// Load parses args with fs and returns the merged configuration.
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	flags := registerFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	cfg := &Config{}
	setDefaults(cfg)

	path, required := configPath(flags.config)
	if path != "" {
		if err := loadConfigFile(cfg, path, required); err != nil {
			return nil, fmt.Errorf("loading config file %s: %w", path, err)
		}
	}

	if err := loadFromEnv(cfg); err != nil {
		return nil, err
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "addr":
			cfg.Addr = flags.addr
		case "store":
			cfg.Store = flags.store
		case "sqlite-dsn":
			cfg.SQLiteDSN = flags.sqliteDSN
		case "id-scheme":
			cfg.IDScheme = flags.idScheme
		case "log-level":
			cfg.LogLevel = flags.logLevel
		case "log-file":
			cfg.LogFile = flags.logFile
		case "seed":
			cfg.Seed = flags.seed
		}
	})

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// configPath returns the file to load and whether it must exist. An
// explicit path wins over TASKLIST_CONFIG; with neither, tasklist.toml in
// the working directory is used when present.
func configPath(flagPath string) (string, bool) {
	if flagPath != "" {
		return flagPath, true
	}
	if env := os.Getenv("TASKLIST_CONFIG"); env != "" {
		return env, true
	}
	if _, err := os.Stat(DefaultConfigFile); err == nil {
		return DefaultConfigFile, false
	}
	return "", false
}

func loadConfigFile(cfg *Config, path string, required bool) error {
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		if !required && errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown key %q", undecoded[0].String())
	}
	cfg.ConfigFile = path
	return nil
}

func loadFromEnv(cfg *Config) error {
	if v := os.Getenv("TASKLIST_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("TASKLIST_STORE"); v != "" {
		cfg.Store = v
	}
	if v := os.Getenv("TASKLIST_SQLITE_DSN"); v != "" {
		cfg.SQLiteDSN = v
	}
	if v := os.Getenv("TASKLIST_ID_SCHEME"); v != "" {
		cfg.IDScheme = v
	}
	if v := os.Getenv("TASKLIST_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TASKLIST_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("TASKLIST_SEED"); v != "" {
		seed, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("TASKLIST_SEED: %w", err)
		}
		cfg.Seed = seed
	}
	return nil
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch c.Store {
	case StoreMemory, StoreSQLite:
	default:
		return fmt.Errorf("store: unsupported value %q (want %s or %s)", c.Store, StoreMemory, StoreSQLite)
	}
	switch c.IDScheme {
	case IDSchemeUUID, IDSchemeCounter:
	default:
		return fmt.Errorf("id_scheme: unsupported value %q (want %s or %s)", c.IDScheme, IDSchemeUUID, IDSchemeCounter)
	}
	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log_level: unsupported value %q", c.LogLevel)
	}
	if c.Store == StoreSQLite && c.SQLiteDSN == "" {
		return fmt.Errorf("sqlite_dsn: required when store is %s", StoreSQLite)
	}
	return nil
}
