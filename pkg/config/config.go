package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	BackendMemory = "memory"
	BackendBolt   = "bolt"
)

// Config represents the server configuration
type Config struct {
	Server  ServerConfig  `yaml:"server"`
	APIKeys []string      `yaml:"api_keys"`
	Storage StorageConfig `yaml:"storage"`
	Seed    bool          `yaml:"seed"`
	Logging LogConfig     `yaml:"logging"`
}

// ServerConfig contains listener settings
type ServerConfig struct {
	Host              string        `yaml:"host"`
	Port              int           `yaml:"port"`
	ReadTimeout       time.Duration `yaml:"read_timeout"`
	ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
	WriteTimeout      time.Duration `yaml:"write_timeout"`
	IdleTimeout       time.Duration `yaml:"idle_timeout"`
	ShutdownTimeout   time.Duration `yaml:"shutdown_timeout"`
}

// StorageConfig selects where records live
type StorageConfig struct {
	Backend string `yaml:"backend"` // memory or bolt
	Path    string `yaml:"path"`    // bolt database file
}

// LogConfig contains settings for logging
type LogConfig struct {
	Debug       bool   `yaml:"debug"`
	Pretty      bool   `yaml:"pretty"`
	LogToFile   bool   `yaml:"log_to_file"`
	LogFilePath string `yaml:"log_file_path"`
	MaxSize     int    `yaml:"max_size"`    // megabytes
	MaxBackups  int    `yaml:"max_backups"` // rotated files to keep
	MaxAge      int    `yaml:"max_age"`     // days
	Compress    bool   `yaml:"compress"`
}

// Default returns a configuration with default values
func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:              3000,
			ReadTimeout:       5 * time.Second,
			ReadHeaderTimeout: 2 * time.Second,
			WriteTimeout:      10 * time.Second,
			IdleTimeout:       60 * time.Second,
			ShutdownTimeout:   5 * time.Second,
		},
		APIKeys: []string{"perscholas", "ps-example", "hJAsknw-L198sAJD-l3kasx"},
		Storage: StorageConfig{
			Backend: BackendMemory,
			Path:    "miniblog.db",
		},
		Seed: true,
		Logging: LogConfig{
			Pretty:      true,
			LogFilePath: "miniblog.log",
			MaxSize:     10,
			MaxBackups:  3,
			MaxAge:      28,
			Compress:    true,
		},
	}
}

// Load reads configuration from a file on top of the defaults.
// Keys absent from the file keep their default value.
func Load(configPath string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file: %w", err)
	}
	return cfg, nil
}

// FromEnv returns the default configuration with environment overrides
// applied. It is used when no config file is given.
func FromEnv() *Config {
	cfg := Default()
	cfg.applyEnv()
	return cfg
}

// MINIBLOG_API_KEYS replaces the configured key set (comma separated).
func (c *Config) applyEnv() {
	raw := os.Getenv("MINIBLOG_API_KEYS")
	if raw == "" {
		return
	}
	var keys []string
	for _, k := range strings.Split(raw, ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	if len(keys) > 0 {
		c.APIKeys = keys
	}
}

func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port < 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if len(c.APIKeys) == 0 {
		errs = append(errs, errors.New("api_keys must not be empty"))
	}
	for _, k := range c.APIKeys {
		if k == "" {
			errs = append(errs, errors.New("api_keys must not contain empty keys"))
			break
		}
	}
	switch c.Storage.Backend {
	case BackendMemory:
	case BackendBolt:
		if c.Storage.Path == "" {
			errs = append(errs, errors.New("storage.path is required for the bolt backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage.backend %q", c.Storage.Backend))
	}
	if c.Logging.LogToFile && c.Logging.LogFilePath == "" {
		errs = append(errs, errors.New("logging.log_file_path is required when log_to_file is set"))
	}
	return errors.Join(errs...)
}

// Addr is the listen address in host:port form.
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}
