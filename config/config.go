package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
}

type HTTPConfig struct {
	Address     string `yaml:"address"`
	StaticDir   string `yaml:"static_dir"`
	OpenBrowser bool   `yaml:"open_browser"`
}

// ResolveStaticDir returns the static root as an absolute path. A relative
// static_dir is resolved against the directory containing the server binary,
// so the dashboard is found no matter where the process was started from.
func (h HTTPConfig) ResolveStaticDir() (string, error) {
	dir := h.StaticDir
	if dir == "" {
		dir = "static"
	}
	if filepath.IsAbs(dir) {
		return dir, nil
	}
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	return filepath.Join(filepath.Dir(exe), dir), nil
}

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"` // empty user means integrated (OS-level) authentication
	Password string `yaml:"password"`
	Name     string `yaml:"name"`
	SSLMode  string `yaml:"ssl_mode"`
}

// IntegratedAuth reports whether the connection falls back to OS-level
// credentials instead of an explicit user/password pair.
func (d DatabaseConfig) IntegratedAuth() bool {
	return d.User == ""
}

func (d DatabaseConfig) DSN() string {
	if d.IntegratedAuth() {
		return fmt.Sprintf("host=%s port=%d dbname=%s sslmode=%s", d.Host, d.Port, d.Name, d.SSLMode)
	}
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s", d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr           string `yaml:"addr"` // empty disables the flights cache
	Password       string `yaml:"password"`
	DB             int    `yaml:"db"`
	FlightsTTLSecs int    `yaml:"flights_ttl_seconds"`
}

func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if cfg.HTTP.Address == "" {
		cfg.HTTP.Address = ":8000"
	}

	return &cfg, nil
}
