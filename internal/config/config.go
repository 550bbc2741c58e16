package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/goriiin/go-notes/internal/journal"
)

const (
	DefaultAddr      = "127.0.0.1:1440"
	DefaultNotesRoot = "notes"
	DefaultMaxBody   = 10 << 20
)

type Config struct {
	Addr         string        `toml:"addr"`
	NotesRoot    string        `toml:"notes_root"`
	MaxBodyBytes int64         `toml:"max_body_bytes"`
	Log          LogConfig     `toml:"log"`
	Admin        AdminConfig   `toml:"admin"`
	Journal      JournalConfig `toml:"journal"`
}

type LogConfig struct {
	Level   string `toml:"level"`
	Format  string `toml:"format"`
	NoColor bool   `toml:"no_color"`
}

// AdminConfig enables the journal API when Addr is set.
type AdminConfig struct {
	Addr string `toml:"addr"`
}

type JournalConfig struct {
	Backend  string   `toml:"backend"`
	Addr     string   `toml:"addr"`
	User     string   `toml:"user"`
	Password string   `toml:"password"`
	Space    string   `toml:"space"`
	Timeout  duration `toml:"timeout"`
	Capacity int      `toml:"capacity"`
}

type duration struct {
	time.Duration
}

func (d *duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func Default() Config {
	cfg := Config{MaxBodyBytes: DefaultMaxBody}
	applyDefaults(&cfg)
	return cfg
}

// Load reads a TOML file. An empty path yields the defaults. An explicit
// max_body_bytes = 0 disables the body limit.
func Load(path string) (Config, error) {
	cfg := Config{MaxBodyBytes: DefaultMaxBody}
	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
		}
	}
	applyDefaults(&cfg)
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.NotesRoot == "" {
		cfg.NotesRoot = DefaultNotesRoot
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Journal.Backend == "" {
		cfg.Journal.Backend = journal.BackendNone
	}
	if cfg.Journal.Addr == "" {
		cfg.Journal.Addr = "127.0.0.1:3301"
	}
	if cfg.Journal.User == "" {
		cfg.Journal.User = "guest"
	}
	if cfg.Journal.Space == "" {
		cfg.Journal.Space = "requests"
	}
	if cfg.Journal.Timeout.Duration == 0 {
		cfg.Journal.Timeout.Duration = 3 * time.Second
	}
	if cfg.Journal.Capacity == 0 {
		cfg.Journal.Capacity = 256
	}
}

func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.Addr) == "" {
		return fmt.Errorf("config missing addr")
	}
	if strings.TrimSpace(cfg.NotesRoot) == "" {
		return fmt.Errorf("config missing notes_root")
	}
	if cfg.MaxBodyBytes < 0 {
		return fmt.Errorf("max_body_bytes must not be negative")
	}
	switch cfg.Log.Format {
	case "console", "json":
	default:
		return fmt.Errorf("log format %q must be console or json", cfg.Log.Format)
	}
	switch cfg.Journal.Backend {
	case journal.BackendNone, journal.BackendMemory, journal.BackendTarantool:
	default:
		return fmt.Errorf("journal backend %q must be none, memory or tarantool", cfg.Journal.Backend)
	}
	if cfg.Journal.Capacity < 0 {
		return fmt.Errorf("journal capacity must not be negative")
	}
	if cfg.Admin.Addr != "" && cfg.Journal.Backend == journal.BackendNone {
		return fmt.Errorf("admin api requires a journal backend")
	}
	return nil
}

func (c Config) TarantoolOptions() journal.TarantoolOptions {
	return journal.TarantoolOptions{
		Addr:     c.Journal.Addr,
		User:     c.Journal.User,
		Password: c.Journal.Password,
		Space:    c.Journal.Space,
		Timeout:  c.Journal.Timeout.Duration,
	}
}
