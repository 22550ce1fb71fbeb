package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
)

type SystemConfig struct {
	DataDirectory string `toml:"data_directory"`
}

type PlannerConfig struct {
	APIURL             string `toml:"api_url"`
	TurnTimeoutSeconds int    `toml:"turn_timeout_seconds"`
}

type UserConfig struct {
	Planner  PlannerConfig `toml:"planner"`
	Language string        `toml:"language,omitempty"`
}

type Config struct {
	DataDirectory      string
	PlannerURL         string
	TurnTimeoutSeconds int
	Language           string
}

var Debug = false
var DebugLog *log.Logger

func (c *Config) DataDir() string {
	return ExpandPath(c.DataDirectory)
}

func (c *Config) applyEnvOverrides() {
	if url := os.Getenv("WANDERTUI_API_URL"); url != "" {
		c.PlannerURL = url
	}
	if dataDir := os.Getenv("WANDERTUI_DATA_DIR"); dataDir != "" {
		c.DataDirectory = dataDir
	}
	if lang := os.Getenv("WANDERTUI_LANG"); lang != "" {
		c.Language = lang
	}
}

func CheckDebug() bool {
	debug := os.Getenv("WANDERTUI_DEBUG")
	return debug == "true" || debug == "1"
}

func InitDebugLog(dataDir string) {
	if !CheckDebug() {
		return
	}

	Debug = true
	logPath := filepath.Join(dataDir, "debug.log")

	// 0600: turn traces can contain conversation content.
	f, err := os.OpenFile(logPath, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0600)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Could not open debug log at %s: %v\n", logPath, err)
		return
	}

	DebugLog = log.New(f, "", log.Ldate|log.Ltime|log.Lmicroseconds|log.Lshortfile)
	DebugLog.Printf("=== Debug logging started (WANDERTUI_DEBUG=%s) ===", os.Getenv("WANDERTUI_DEBUG"))
	DebugLog.Printf("Log path: %s", logPath)
}

// The env vars form an all-or-nothing pair: set both to run without any
// config files (WANDERTUI_LANG stays optional either way).
func HasAllEnvVars() bool {
	return os.Getenv("WANDERTUI_API_URL") != "" &&
		os.Getenv("WANDERTUI_DATA_DIR") != ""
}

func HasAnyEnvVar() bool {
	return os.Getenv("WANDERTUI_API_URL") != "" ||
		os.Getenv("WANDERTUI_DATA_DIR") != ""
}

func GetMissingEnvVar() string {
	if os.Getenv("WANDERTUI_API_URL") == "" {
		return "WANDERTUI_API_URL"
	}
	if os.Getenv("WANDERTUI_DATA_DIR") == "" {
		return "WANDERTUI_DATA_DIR"
	}
	return ""
}

func Load() (*Config, error) {
	cfg := &Config{
		DataDirectory:      "~/.local/share/wandertui",
		PlannerURL:         "http://localhost:8080",
		TurnTimeoutSeconds: 90,
	}

	settingsPath := GetSettingsFilePath()
	settingsExist := FileExists(settingsPath)

	if settingsExist || !HasAllEnvVars() {
		systemCfg, err := LoadSystemConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to load system config: %w", err)
		}
		cfg.DataDirectory = systemCfg.DataDirectory

		dataDir := cfg.DataDir()
		userCfg, err := LoadUserConfig(dataDir)
		if err != nil {
			return nil, fmt.Errorf("failed to load user config: %w", err)
		}
		cfg.PlannerURL = userCfg.Planner.APIURL
		if userCfg.Planner.TurnTimeoutSeconds > 0 {
			cfg.TurnTimeoutSeconds = userCfg.Planner.TurnTimeoutSeconds
		}
		cfg.Language = userCfg.Language
	} else {
		cfg.applyEnvOverrides()
	}

	dataDir := cfg.DataDir()
	if err := os.MkdirAll(dataDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	if err := EnsureDataDirPermissions(dataDir); err != nil {
		return nil, fmt.Errorf("failed to set data directory permissions: %w", err)
	}

	return cfg, nil
}
