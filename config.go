package main

import (
	"fmt"
	"path/filepath"

	"github.com/go-ini/ini"
)

const (
	defaultSourceDir  = "foundation/ai/engine/services/common/protocol/plugin_config/plugin_config_ini"
	defaultOutputFile = "etc/ai_engine_plugin.ini"
)

type Config struct {
	SourceDir  string
	OutputFile string
	LogLevel   string `ini:"Level"`
}

func defaultConfig() *Config {
	return &Config{
		SourceDir:  defaultSourceDir,
		OutputFile: defaultOutputFile,
	}
}

// loadConfig returns the defaults overlaid with the [paths] and [log]
// sections of path. An empty path yields the defaults.
func loadConfig(path string) (*Config, error) {
	config := defaultConfig()
	if path == "" {
		return config, nil
	}

	cfg, err := ini.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}
	if err := cfg.Section("paths").MapTo(config); err != nil {
		return nil, fmt.Errorf("failed to load paths configuration: %w", err)
	}
	if err := cfg.Section("log").MapTo(config); err != nil {
		return nil, fmt.Errorf("failed to load log configuration: %w", err)
	}

	return config, nil
}

func (c *Config) sourcePath(buildDir string) string {
	return resolvePath(buildDir, c.SourceDir)
}

func (c *Config) outputPath(outDir string) string {
	return resolvePath(outDir, c.OutputFile)
}

func resolvePath(root, rel string) string {
	if filepath.IsAbs(rel) {
		return rel
	}
	return filepath.Join(root, rel)
}
