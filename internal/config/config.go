package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Registry RegistryConfig
	Storage  StorageConfig
	Runner   RunnerConfig
	Server   ServerConfig
	Database DatabaseConfig
	Logger   LoggerConfig
}

// RegistryConfig points the client at the central registry.
type RegistryConfig struct {
	URL     string
	Token   string
	Timeout time.Duration
}

// StorageConfig locates the local entity cache.
type StorageConfig struct {
	Root        string
	DownloadDir string
}

// RunnerConfig configures cube execution on Kubernetes.
type RunnerConfig struct {
	InCluster      bool
	KubeConfigPath string
	Namespace      string
	PollInterval   time.Duration
}

// ServerConfig is used by the benchregd reference registry.
type ServerConfig struct {
	Host string
	Port int
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	Name            string
	SSLMode         string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

type LoggerConfig struct {
	Level  string
	Format string
}

func Load() (*Config, error) {
	v := viper.New()

	home, _ := os.UserHomeDir()
	defaultRoot := filepath.Join(home, ".benchreg")

	// Defaults
	v.SetDefault("REGISTRY_URL", "http://localhost:8080/api/v1")
	v.SetDefault("REGISTRY_TOKEN", "")
	v.SetDefault("REGISTRY_TIMEOUT", "30s")
	v.SetDefault("STORAGE_ROOT", defaultRoot)
	v.SetDefault("STORAGE_DOWNLOAD_DIR", filepath.Join(defaultRoot, "downloads"))
	v.SetDefault("RUNNER_IN_CLUSTER", false)
	v.SetDefault("RUNNER_KUBECONFIG", "")
	v.SetDefault("RUNNER_NAMESPACE", "benchreg-runs")
	v.SetDefault("RUNNER_POLL_INTERVAL", "5s")
	v.SetDefault("SERVER_HOST", "0.0.0.0")
	v.SetDefault("SERVER_PORT", 8080)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "benchreg")
	v.SetDefault("DB_PASSWORD", "")
	v.SetDefault("DB_NAME", "benchreg")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 2)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "30m")
	v.SetDefault("LOGGER_LEVEL", "info")
	v.SetDefault("LOGGER_FORMAT", "text")

	// Env
	v.AutomaticEnv()

	cfg := &Config{
		Registry: RegistryConfig{
			URL:     v.GetString("REGISTRY_URL"),
			Token:   v.GetString("REGISTRY_TOKEN"),
			Timeout: duration(v, "REGISTRY_TIMEOUT", 30*time.Second),
		},
		Storage: StorageConfig{
			Root:        v.GetString("STORAGE_ROOT"),
			DownloadDir: v.GetString("STORAGE_DOWNLOAD_DIR"),
		},
		Runner: RunnerConfig{
			InCluster:      v.GetBool("RUNNER_IN_CLUSTER"),
			KubeConfigPath: v.GetString("RUNNER_KUBECONFIG"),
			Namespace:      v.GetString("RUNNER_NAMESPACE"),
			PollInterval:   duration(v, "RUNNER_POLL_INTERVAL", 5*time.Second),
		},
		Server: ServerConfig{
			Host: v.GetString("SERVER_HOST"),
			Port: v.GetInt("SERVER_PORT"),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: duration(v, "DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Logger: LoggerConfig{
			Level:  v.GetString("LOGGER_LEVEL"),
			Format: v.GetString("LOGGER_FORMAT"),
		},
	}

	return cfg, nil
}

func duration(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil {
		return fallback
	}
	return d
}
