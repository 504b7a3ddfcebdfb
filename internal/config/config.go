/*
Package config manages hanseg's TOML config: cutter, server, and CLI
sections with a custom-path -> user-config-dir -> built-in-defaults
fallback chain.
*/
package config

import (
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/duanmu/hanseg/internal/utils"
)

// Config holds the entire config structure.
type Config struct {
	Cutter CutterConfig `toml:"cutter"`
	Server ServerConfig `toml:"server"`
	CLI    CliConfig    `toml:"cli"`
}

// CutterConfig has segmentation-related options.
type CutterConfig struct {
	DictPath      string `toml:"dict_path"`
	EnableHMM     bool   `toml:"enable_hmm"`
	SearchGram2   bool   `toml:"search_gram2"`
	SearchGram3   bool   `toml:"search_gram3"`
}

// ServerConfig has msgpack server options.
type ServerConfig struct {
	MaxTextLength int `toml:"max_text_length"`
}

// CliConfig holds CLI interface defaults.
type CliConfig struct {
	DefaultMode string `toml:"default_mode"`
	EnableHMM   bool   `toml:"enable_hmm"`
	Debug       bool   `toml:"debug"`
}

// GetConfigDir returns the config directory with fallback priority:
// ~/.config/hanseg, then ~/Library/Application Support/hanseg
// (macOS), then the executable's directory.
func GetConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		log.Errorf("Failed to get home directory: %v", err)
		execDir, execErr := utils.GetExecutableDir()
		if execErr != nil {
			return "", execErr
		}
		return execDir, nil
	}
	primaryPath := filepath.Join(homeDir, ".config", "hanseg")
	if result := utils.CheckDirStatus(primaryPath); result.Writable {
		return primaryPath, nil
	}
	macOSPath := filepath.Join(homeDir, "Library", "Application Support", "hanseg")
	if result := utils.CheckDirStatus(macOSPath); result.Writable {
		return macOSPath, nil
	}
	execDir, err := utils.GetExecutableDir()
	if err != nil {
		log.Errorf("Failed to get executable directory: %v", err)
		return "", err
	}
	return execDir, nil
}

// GetDefaultConfigPath returns the default path for config.toml.
func GetDefaultConfigPath() (string, error) {
	configDir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "config.toml"), nil
}

// LoadConfigWithPriority loads config with priority: custom path, then
// config.toml in GetConfigDir's directory, then builtin defaults.
func LoadConfigWithPriority(customConfigPath string) (*Config, string, error) {
	if customConfigPath != "" {
		if _, statErr := os.Stat(customConfigPath); statErr == nil {
			config, err := LoadConfig(customConfigPath)
			if err != nil {
				log.Warnf("Failed to load custom config from %s: %v. Trying default path...", customConfigPath, err)
			} else {
				log.Debugf("Loaded config from custom path: %s", customConfigPath)
				return config, customConfigPath, nil
			}
		} else {
			log.Warnf("Custom config file not found at %s: %v. Trying default path...", customConfigPath, statErr)
		}
	}

	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		log.Warnf("Failed to determine default config path: %v. Using built-in defaults...", err)
		return DefaultConfig(), "", nil
	}

	config, err := InitConfig(defaultPath)
	if err != nil {
		log.Warnf("Failed to load/create config at default path %s: %v. Using builtin defaults...", defaultPath, err)
		return DefaultConfig(), "", nil
	}
	log.Debugf("Loaded config from default path: %s", defaultPath)
	return config, defaultPath, nil
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() *Config {
	return &Config{
		Cutter: CutterConfig{
			DictPath:    "",
			EnableHMM:   true,
			SearchGram2: true,
			SearchGram3: true,
		},
		Server: ServerConfig{
			MaxTextLength: 1 << 16,
		},
		CLI: CliConfig{
			DefaultMode: "cut",
			EnableHMM:   true,
			Debug:       false,
		},
	}
}

// InitConfig loads config from file or creates default if missing.
func InitConfig(configPath string) (*Config, error) {
	configDir := filepath.Dir(configPath)

	if err := utils.EnsureDir(configDir); err != nil {
		log.Warnf("Failed to create config directory %s: %v. Using built-in defaults...", configDir, err)
		return DefaultConfig(), nil
	}

	if !utils.FileExists(configPath) {
		config := DefaultConfig()
		if err := SaveConfig(config, configPath); err != nil {
			log.Warnf("Failed to create default config file at %s: %v. Using built-in defaults...", configPath, err)
			return DefaultConfig(), nil
		}
		log.Debugf("Created default config file at: %s", configPath)
		return config, nil
	}

	config, err := LoadConfig(configPath)
	if err != nil {
		log.Warnf("Failed to load config from %s: %v. Using built-in defaults...", configPath, err)
		return DefaultConfig(), nil
	}
	return config, nil
}

// LoadConfig loads from a TOML file, falling back to a best-effort
// partial parse on malformed input.
func LoadConfig(configPath string) (*Config, error) {
	config := DefaultConfig()
	if err := utils.LoadTOMLFile(configPath, config); err != nil {
		return tryPartialParse(configPath)
	}
	return config, nil
}

func tryPartialParse(configPath string) (*Config, error) {
	config := DefaultConfig()

	tempConfig, err := utils.ParseTOMLWithRecovery(configPath)
	if err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v. Using all defaults.", configPath, err)
		return config, nil
	}

	if section, ok := utils.ExtractSection(tempConfig, "cutter"); ok {
		extractCutterConfig(section, &config.Cutter)
	}
	if section, ok := utils.ExtractSection(tempConfig, "server"); ok {
		extractServerConfig(section, &config.Server)
	}
	if section, ok := utils.ExtractSection(tempConfig, "cli"); ok {
		extractCliConfig(section, &config.CLI)
	}
	return config, nil
}

func extractCutterConfig(data map[string]any, cutter *CutterConfig) {
	if val, ok := data["dict_path"].(string); ok {
		cutter.DictPath = val
	}
	if val, ok := utils.ExtractBool(data, "enable_hmm"); ok {
		cutter.EnableHMM = val
	}
	if val, ok := utils.ExtractBool(data, "search_gram2"); ok {
		cutter.SearchGram2 = val
	}
	if val, ok := utils.ExtractBool(data, "search_gram3"); ok {
		cutter.SearchGram3 = val
	}
}

func extractServerConfig(data map[string]any, server *ServerConfig) {
	if val, ok := utils.ExtractInt64(data, "max_text_length"); ok {
		server.MaxTextLength = val
	}
}

func extractCliConfig(data map[string]any, cli *CliConfig) {
	if val, ok := data["default_mode"].(string); ok {
		cli.DefaultMode = val
	}
	if val, ok := utils.ExtractBool(data, "enable_hmm"); ok {
		cli.EnableHMM = val
	}
	if val, ok := utils.ExtractBool(data, "debug"); ok {
		cli.Debug = val
	}
}

// RebuildConfigFile force-creates a new config.toml at the default path.
func RebuildConfigFile() error {
	defaultPath, err := GetDefaultConfigPath()
	if err != nil {
		return err
	}
	if err := utils.EnsureDir(filepath.Dir(defaultPath)); err != nil {
		return err
	}
	return utils.SaveTOMLFile(DefaultConfig(), defaultPath)
}

// GetActiveConfigPath returns the absolute path of the loaded config file.
func GetActiveConfigPath(configPath string) string {
	if configPath == "" {
		if defaultPath, err := GetDefaultConfigPath(); err == nil {
			return defaultPath
		}
		return "unknown"
	}
	return utils.GetAbsolutePath(configPath)
}

// SaveConfig saves config into a TOML file.
func SaveConfig(config *Config, configPath string) error {
	return utils.SaveTOMLFile(config, configPath)
}

// Update changes the config's cutter options and saves to file.
func (c *Config) Update(configPath string, enableHMM *bool, dictPath *string) error {
	if enableHMM != nil {
		c.Cutter.EnableHMM = *enableHMM
	}
	if dictPath != nil {
		c.Cutter.DictPath = *dictPath
	}
	return SaveConfig(c, configPath)
}
