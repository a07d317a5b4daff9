package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/pelletier/go-toml/v2"

	"github.com/dcezar286-art/telecon-ocorrencias/internal/model"
)

// AppConfig application configuration, loaded from config.toml beside the
// executable with defaults for everything.
type AppConfig struct {
	Server     ServerConfig     `toml:"server"`
	Upload     UploadConfig     `toml:"upload"`
	Extraction ExtractionConfig `toml:"extraction"`
}

// ServerConfig HTTP server settings.
type ServerConfig struct {
	Port        int  `toml:"port"`
	DevMode     bool `toml:"dev_mode"`
	OpenBrowser bool `toml:"open_browser"`
}

// UploadConfig workbook upload limits.
type UploadConfig struct {
	MaxSizeMB int64 `toml:"max_size_mb"`
}

// ExtractionConfig the extraction-mode axes as config strings; empty values
// mean the default for that axis. See model.ParseMode for the accepted
// values.
type ExtractionConfig struct {
	OccurrenceRow  string `toml:"occurrence_row"`
	Promotion      string `toml:"promotion"`
	OccurrenceList string `toml:"occurrence_list"`
}

// DefaultConfig built-in defaults.
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:        20873,
			DevMode:     false,
			OpenBrowser: true,
		},
		Upload: UploadConfig{
			MaxSizeMB: 10,
		},
		Extraction: ExtractionConfig{},
	}
}

// Mode parses the extraction section into an ExtractionMode.
func (c *AppConfig) Mode() (model.ExtractionMode, error) {
	return model.ParseMode(c.Extraction.OccurrenceRow, c.Extraction.Promotion, c.Extraction.OccurrenceList)
}

// MaxUploadBytes upload limit in bytes.
func (c *AppConfig) MaxUploadBytes() int64 {
	return c.Upload.MaxSizeMB * 1024 * 1024
}

// GetExeDir directory of the running executable.
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfig reads config.toml from the executable's directory. On the
// first run the file is missing; the defaults are written out so users have
// a file to edit, then used. Env vars override afterwards.
func LoadConfig() (*AppConfig, error) {
	cfg := DefaultConfig()

	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	data, err := os.ReadFile(filepath.Join(exeDir, "config.toml"))
	if err != nil {
		if os.IsNotExist(err) {
			_ = SaveConfig(cfg)
			applyEnv(cfg)
			return cfg, nil
		}
		return nil, err
	}

	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	applyEnv(cfg)
	return cfg, nil
}

// applyEnv environment overrides, also picked up from .env via godotenv in
// cmd.
func applyEnv(cfg *AppConfig) {
	if v := os.Getenv("TELECON_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil && port > 0 {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("TELECON_DEV"); v != "" {
		cfg.Server.DevMode = v == "1" || v == "true"
	}
	if v := os.Getenv("TELECON_OCCURRENCE_ROW"); v != "" {
		cfg.Extraction.OccurrenceRow = v
	}
	if v := os.Getenv("TELECON_PROMOTION"); v != "" {
		cfg.Extraction.Promotion = v
	}
	if v := os.Getenv("TELECON_OCCURRENCE_LIST"); v != "" {
		cfg.Extraction.OccurrenceList = v
	}
}

// SaveConfig writes the configuration back to config.toml beside the
// executable.
func SaveConfig(cfg *AppConfig) error {
	exeDir, err := GetExeDir()
	if err != nil {
		exeDir = "."
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(exeDir, "config.toml"), data, 0644)
}
