package model

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/inovacc/shelfr/internal/application"
	"gopkg.in/ini.v1"
)

// Config holds the console configuration. Everything else lives in the
// record store; this file is the only local state the tool keeps.
type Config struct {
	// ServerURL is the base URL of the record store API.
	ServerURL string

	// PageSize is the number of rows per list page.
	PageSize int

	// Timeout bounds each store request.
	Timeout time.Duration
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		ServerURL: "http://localhost:8080/api",
		PageSize:  5,
		Timeout:   30 * time.Second,
	}
}

// ConfigPath returns the path of the config file inside the application
// directory.
func ConfigPath() (string, error) {
	dir, err := application.GetApplicationDirectory()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, "config.ini"), nil
}

// LoadConfig reads the INI config at path. A missing file yields the
// defaults without error.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	file, err := ini.Load(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to load config %s: %w", path, err)
	}

	server := file.Section("server")
	if v := server.Key("url").String(); v != "" {
		cfg.ServerURL = v
	}

	if v, err := server.Key("timeout_seconds").Int(); err == nil && v > 0 {
		cfg.Timeout = time.Duration(v) * time.Second
	}

	uiSection := file.Section("ui")
	if v, err := uiSection.Key("page_size").Int(); err == nil && v > 0 {
		cfg.PageSize = v
	}

	return cfg, nil
}

// Save writes the config as INI to path, creating parent directories as
// needed.
func (c Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	file := ini.Empty()

	server := file.Section("server")
	server.Key("url").SetValue(c.ServerURL)
	server.Key("timeout_seconds").SetValue(fmt.Sprintf("%d", int(c.Timeout/time.Second)))

	file.Section("ui").Key("page_size").SetValue(fmt.Sprintf("%d", c.PageSize))

	if err := file.SaveTo(path); err != nil {
		return fmt.Errorf("failed to save config %s: %w", path, err)
	}

	return nil
}
