package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const LocalConnectionString = "file:./local.db?cache=shared&mode=rwc"

type Config struct {
	DB  DBConfig  `toml:"database"`
	Log LogConfig `toml:"logging"`
}

type DBConfig struct {
	ConnectionString string `toml:"connection_string"` // The entire DB connection string.
	AuthToken        string `toml:"auth_token"`
}

type LogConfig struct {
	Level    string `toml:"level"`
	File     string `toml:"file"`
	JSON     bool   `toml:"json"`
	ToStdout bool   `toml:"to_stdout"`
}

// Returns the directory holding the config file and the session state.
func GetConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "cooperpro"), nil
}

// Returns the path to the config file.
func GetConfigPath() (string, error) {
	dir, err := GetConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// Reads the configuration from the config file. A missing file is not an
// error; the environment can provide everything.
func LoadConfig() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadConfigFrom(path)
}

func LoadConfigFrom(path string) (*Config, error) {
	cfg := Config{
		Log: LogConfig{Level: "warn"},
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	// .env is optional too.
	_ = godotenv.Load()
	applyEnv(&cfg)

	return &cfg, nil
}

func applyEnv(cfg *Config) {
	if url := os.Getenv("TURSO_DATABASE_URL"); url != "" {
		cfg.DB.ConnectionString = url
	}
	if token := os.Getenv("TURSO_AUTH_TOKEN"); token != "" {
		cfg.DB.AuthToken = token
	}
	if level := os.Getenv("COOPERPRO_LOG_LEVEL"); level != "" {
		cfg.Log.Level = level
	}

	// Check for a DEV_MODE environment variable.
	if os.Getenv("DEV_MODE") == "true" || cfg.DB.ConnectionString == "" {
		cfg.DB.ConnectionString = LocalConnectionString
	}
}
