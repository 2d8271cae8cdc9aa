// Package config loads layered YAML configuration for layerkit.
package config

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/adalundhe/layerkit/core/naming"
	"github.com/adalundhe/layerkit/core/storage"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid config")

type Manager struct {
	config  atomic.Pointer[Config]
	dirs    *storage.Dirs
	project string
}

type Config struct {
	Resolver ResolverConfig `yaml:"resolver"`
	Actors   ActorsConfig   `yaml:"actors"`
	Graph    GraphConfig    `yaml:"graph"`
	Naming   NamingConfig   `yaml:"naming"`
	Batch    BatchConfig    `yaml:"batch"`
	Log      LogConfig      `yaml:"log"`
}

type ResolverConfig struct {
	// CacheSize bounds the per-document transform memo; 0 keeps everything.
	CacheSize int `yaml:"cache_size"`
}

type ActorsConfig struct {
	RootComponents []string `yaml:"root_components"`
}

type GraphConfig struct {
	PathSeparator string `yaml:"path_separator"`
}

type NamingConfig struct {
	AttackMain  string `yaml:"attack_main"`
	DefenseMain string `yaml:"defense_main"`
}

type BatchConfig struct {
	Concurrency int `yaml:"concurrency"`
}

type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// NewManager returns a manager holding DefaultConfig. projectRoot locates the
// project-level .layerkit directory.
func NewManager(dirs *storage.Dirs, projectRoot string) *Manager {
	m := &Manager{dirs: dirs, project: projectRoot}
	m.config.Store(DefaultConfig())
	return m
}

func DefaultConfig() *Config {
	return &Config{
		Resolver: ResolverConfig{
			CacheSize: 0,
		},
		Actors: ActorsConfig{
			RootComponents: []string{"DefaultSceneRoot", "Root"},
		},
		Graph: GraphConfig{
			PathSeparator: "->",
		},
		Naming: NamingConfig{
			AttackMain:  naming.DefaultAttackMain,
			DefenseMain: naming.DefaultDefenseMain,
		},
		Batch: BatchConfig{
			Concurrency: 4,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

func (m *Manager) Get() *Config {
	return m.config.Load()
}

// Load rebuilds the configuration from defaults, the project file, the user
// file, the project-local file and the environment, in that order.
func (m *Manager) Load() error {
	cfg := DefaultConfig()
	project := storage.ResolveProjectDirs(m.project)

	if err := loadYAMLFile(project.Config, cfg); err != nil {
		return fmt.Errorf("project config: %w", err)
	}
	if m.dirs != nil {
		if err := loadYAMLFile(m.dirs.ConfigDir("config.yaml"), cfg); err != nil {
			return fmt.Errorf("user config: %w", err)
		}
	}
	if err := loadYAMLFile(filepath.Join(project.Local, "config.yaml"), cfg); err != nil {
		return fmt.Errorf("local config: %w", err)
	}

	applyEnvironment(cfg)

	if err := cfg.Validate(); err != nil {
		return err
	}
	m.config.Store(cfg)
	return nil
}

// LoadFile layers an explicit file over the current configuration. Unlike
// the layered files, a missing explicit file is an error.
func (m *Manager) LoadFile(path string) error {
	if _, err := os.Stat(path); err != nil {
		return err
	}

	cfg := *m.Get()
	cfg.Actors.RootComponents = append([]string(nil), cfg.Actors.RootComponents...)
	if err := loadYAMLFile(path, &cfg); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	m.config.Store(&cfg)
	return nil
}

func (m *Manager) Reload() error {
	return m.Load()
}

func loadYAMLFile(path string, cfg *Config) error {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return err
	}

	return yaml.Unmarshal(data, cfg)
}

func applyEnvironment(cfg *Config) {
	if v := os.Getenv("LAYERKIT_RESOLVER_CACHE_SIZE"); v != "" {
		if n, err := parseInt(v); err == nil {
			cfg.Resolver.CacheSize = n
		}
	}
	if v := os.Getenv("LAYERKIT_BATCH_CONCURRENCY"); v != "" {
		if n, err := parseInt(v); err == nil {
			cfg.Batch.Concurrency = n
		}
	}
	if v := os.Getenv("LAYERKIT_LOG_LEVEL"); v != "" {
		cfg.Log.Level = strings.ToLower(v)
	}
	if v := os.Getenv("LAYERKIT_LOG_FORMAT"); v != "" {
		cfg.Log.Format = strings.ToLower(v)
	}
}

func parseInt(s string) (int, error) {
	var n int
	_, err := fmt.Sscanf(s, "%d", &n)
	return n, err
}

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if c.Resolver.CacheSize < 0 {
		return fmt.Errorf("%w: resolver.cache_size must not be negative", ErrInvalidConfig)
	}
	if c.Batch.Concurrency < 1 {
		return fmt.Errorf("%w: batch.concurrency must be at least 1", ErrInvalidConfig)
	}
	for _, name := range c.Actors.RootComponents {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: actors.root_components contains a blank name", ErrInvalidConfig)
		}
	}
	if _, err := c.Log.level(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log.format %q (want text or json)", ErrInvalidConfig, c.Log.Format)
	}
	return nil
}

func (l LogConfig) level() (slog.Level, error) {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(l.Level)); err != nil {
		return 0, fmt.Errorf("%w: log.level %q", ErrInvalidConfig, l.Level)
	}
	return lvl, nil
}

// Logger builds a logger writing to w at the configured level and format.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	lvl, err := c.Log.level()
	if err != nil {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if c.Log.Format == "json" {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
