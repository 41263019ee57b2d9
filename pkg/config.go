package findupes

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-ini/ini"
)

// Config represents the findupes configuration file. The file is plain INI
// with [scan], [output] and [log] sections; missing sections or keys fall
// back to built-in defaults. The scanner never writes the file: loading a
// path that does not exist simply yields the defaults, since a duplicate
// finder should stay read-only on the machine it inspects.
type Config struct {
	configPath string
	ini        *ini.File
}

// ScanConfig represents scanning configuration
type ScanConfig struct {
	MinSize  uint64   // Minimum file size considered (bytes)
	Excludes []string // Directory basenames skipped during traversal
}

// OutputConfig represents report output configuration
type OutputConfig struct {
	Format string // Default report format: text, html, json
}

// LogConfig represents logging configuration
type LogConfig struct {
	Level string // zerolog level name (debug, info, warn, error)
}

// LoadConfig loads configuration from the given path, or returns the
// built-in defaults if the path is empty or the file does not exist.
func LoadConfig(configPath string) (*Config, error) {
	cfg := &Config{configPath: configPath}

	if configPath == "" {
		cfg.ini = ini.Empty()
		return cfg, nil
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		cfg.ini = ini.Empty()
		return cfg, nil
	}

	iniFile, err := ini.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
	}
	cfg.ini = iniFile

	return cfg, nil
}

// GetScanConfig returns the scan section with defaults applied.
func (c *Config) GetScanConfig() (*ScanConfig, error) {
	sc := &ScanConfig{MinSize: DefaultMinSize}

	section := c.ini.Section("scan")

	if key := section.Key("min_size"); key.String() != "" {
		minSize, err := ParseSizeSpec(key.String())
		if err != nil {
			return nil, fmt.Errorf("invalid min_size in config: %w", err)
		}
		sc.MinSize = minSize
	}

	if key := section.Key("exclude"); key.String() != "" {
		for _, name := range strings.Split(key.String(), ",") {
			name = strings.TrimSpace(name)
			if name != "" {
				sc.Excludes = append(sc.Excludes, name)
			}
		}
	}

	return sc, nil
}

// GetOutputConfig returns the output section with defaults applied.
func (c *Config) GetOutputConfig() (*OutputConfig, error) {
	oc := &OutputConfig{Format: FormatText}

	if key := c.ini.Section("output").Key("format"); key.String() != "" {
		format := strings.ToLower(key.String())
		if !ValidFormat(format) {
			return nil, fmt.Errorf("invalid output format in config: %q", key.String())
		}
		oc.Format = format
	}

	return oc, nil
}

// GetLogConfig returns the log section with defaults applied.
func (c *Config) GetLogConfig() *LogConfig {
	lc := &LogConfig{Level: "warn"}

	if key := c.ini.Section("log").Key("level"); key.String() != "" {
		lc.Level = strings.ToLower(key.String())
	}

	return lc
}

// Path returns the path the config was loaded from, or "" for defaults.
func (c *Config) Path() string {
	return c.configPath
}
