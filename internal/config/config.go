package config

import (
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

const defaultDBName = "portfolio.db"

// UserConfig is the persisted app configuration. It lives as config.json in
// the platform config directory and only records what cannot be derived at
// startup.
type UserConfig struct {
	DBName  string `json:"db_name"`
	DataDir string `json:"data_dir"`
}

var runtimeDataDir string
var runtimePort = 8000

func IsMacOS() bool {
	return runtime.GOOS == "darwin"
}

func IsWindows() bool {
	return runtime.GOOS == "windows"
}

// SetRuntimeDataDir overrides the data directory for this process, taking
// precedence over environment and stored config.
func SetRuntimeDataDir(dir string) {
	runtimeDataDir = dir
}

func SetRuntimePort(port int) {
	if port > 0 {
		runtimePort = port
	}
}

func GetRuntimePort() int {
	return runtimePort
}

func appConfigDir() (string, error) {
	if IsMacOS() {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "Library", "Application Support", "PortfolioTracker"), nil
	}
	if IsWindows() {
		if appData := os.Getenv("APPDATA"); appData != "" {
			return filepath.Join(appData, "PortfolioTracker"), nil
		}
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, "PortfolioTracker"), nil
	}
	configDir, err := os.UserConfigDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		return filepath.Join(home, ".config", "portfoliotracker"), nil
	}
	return filepath.Join(configDir, "portfoliotracker"), nil
}

func appConfigPath() (string, error) {
	dir, err := appConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.json"), nil
}

// LoadUserConfig reads the stored config, falling back to defaults when the
// file is missing or unreadable. It never fails: a broken config file means a
// fresh start, not a dead app.
func LoadUserConfig() UserConfig {
	defaults := UserConfig{DBName: defaultDBName}

	configPath, err := appConfigPath()
	if err != nil {
		return defaults
	}
	file, err := os.Open(configPath)
	if err != nil {
		return defaults
	}
	defer file.Close()

	if err := json.NewDecoder(file).Decode(&defaults); err != nil {
		return UserConfig{DBName: defaultDBName}
	}
	if strings.TrimSpace(defaults.DBName) == "" {
		defaults.DBName = defaultDBName
	}
	return defaults
}

// SaveUserConfig writes the config to the platform config directory,
// creating it if needed.
func SaveUserConfig(cfg UserConfig) error {
	path, err := appConfigPath()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// GetDataDir resolves the data directory: runtime override, then the
// PORTFOLIO_DATA_DIR environment variable, then stored config, then the
// platform config directory. The chosen directory is created if absent.
func GetDataDir() (string, error) {
	if runtimeDataDir != "" {
		if err := os.MkdirAll(runtimeDataDir, 0o755); err != nil {
			return "", err
		}
		return runtimeDataDir, nil
	}
	if envDir := os.Getenv("PORTFOLIO_DATA_DIR"); envDir != "" {
		if err := os.MkdirAll(envDir, 0o755); err != nil {
			return "", err
		}
		return envDir, nil
	}
	cfg := LoadUserConfig()
	if cfg.DataDir != "" {
		if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
			return "", err
		}
		return cfg.DataDir, nil
	}
	defaultDir, err := appConfigDir()
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(defaultDir, 0o755); err != nil {
		return "", err
	}
	return defaultDir, nil
}

// GetDBPath resolves the SQLite database path. PORTFOLIO_DB_PATH wins
// outright; otherwise the configured db name is joined onto the data dir.
func GetDBPath() (string, error) {
	if envPath := os.Getenv("PORTFOLIO_DB_PATH"); envPath != "" {
		return envPath, nil
	}
	cfg := LoadUserConfig()
	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	name := cfg.DBName
	if name == "" {
		name = defaultDBName
	}
	return filepath.Join(dataDir, name), nil
}

// GetAuditLogPath resolves the audit log path. PORTFOLIO_AUDIT_LOG wins;
// otherwise the log sits next to the database.
func GetAuditLogPath() (string, error) {
	if envPath := os.Getenv("PORTFOLIO_AUDIT_LOG"); envPath != "" {
		return envPath, nil
	}
	dbPath, err := GetDBPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(dbPath), "portfolio_audit.log"), nil
}
