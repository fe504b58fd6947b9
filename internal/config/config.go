package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
)

const (
	DefaultFile    = "scenectl.toml"
	DefaultRoot    = "."
	DefaultAddr    = ":9300"
	DefaultWorkers = 1
)

// Config is the scenectl runtime configuration. File values are applied
// first; SCENECTL_* variables override them.
type Config struct {
	Root        string   `toml:"root" env:"SCENECTL_ROOT"`
	Addr        string   `toml:"addr" env:"SCENECTL_ADDR"`
	Workers     int      `toml:"workers" env:"SCENECTL_WORKERS"`
	CorsOrigins []string `toml:"cors_origins" env:"SCENECTL_CORS_ORIGINS" envSeparator:","`
}

func Default() Config {
	return Config{
		Root:        DefaultRoot,
		Addr:        DefaultAddr,
		Workers:     DefaultWorkers,
		CorsOrigins: []string{"http://localhost:3000"},
	}
}

// Load reads path when it is non-empty, then applies environment overrides.
// An empty path yields defaults plus environment.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) != "" {
		if err := loadToml(path, &cfg); err != nil {
			return Config{}, err
		}
	}
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	applyDefaults(&cfg)
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadOptional behaves like Load but treats a missing file as absent.
func LoadOptional(path string) (Config, error) {
	if _, err := os.Stat(path); err != nil && os.IsNotExist(err) {
		return Load("")
	}
	return Load(path)
}

func loadToml(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if err := toml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("config parse failed (%s): %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("config env failed: %w", err)
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.Root) == "" {
		cfg.Root = DefaultRoot
	}
	if strings.TrimSpace(cfg.Addr) == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.Workers == 0 {
		cfg.Workers = DefaultWorkers
	}
	origins := cfg.CorsOrigins[:0]
	for _, o := range cfg.CorsOrigins {
		if o = strings.TrimSpace(o); o != "" {
			origins = append(origins, o)
		}
	}
	cfg.CorsOrigins = origins
}

func Validate(cfg Config) error {
	if strings.TrimSpace(cfg.Root) == "" {
		return fmt.Errorf("config missing root")
	}
	if strings.TrimSpace(cfg.Addr) == "" {
		return fmt.Errorf("config missing addr")
	}
	if cfg.Workers < 1 {
		return fmt.Errorf("config workers must be at least 1, got %d", cfg.Workers)
	}
	return nil
}

// Encode renders cfg as TOML.
func Encode(cfg Config) (string, error) {
	data, err := toml.Marshal(cfg)
	if err != nil {
		return "", fmt.Errorf("config encode failed: %w", err)
	}
	return string(data), nil
}
