package config

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	"github.com/CIDgravity/snakelet"
	"github.com/joho/godotenv"
)

const (
	TokenEnvironmentVariable = "ASTRONOMER_GITHUB_TOKEN"
	PortEnvironmentVariable  = "PORT"
)

var ErrMissingToken = errors.New("missing " + TokenEnvironmentVariable + " environment variable or GITHUB.Token configuration")

// config structure
type Config struct {
	API    APIConfig    `mapstructure:"API"`
	Github GithubConfig `mapstructure:"GITHUB"`
	Cache  CacheConfig  `mapstructure:"CACHE"`
	Tasks  TasksConfig  `mapstructure:"TASKS"`
	Logs   LogsConfig   `mapstructure:"LOGS"`
}

type APIConfig struct {
	ListenPort   string `mapstructure:"ListenPort"`
	DefaultLogin string `mapstructure:"DefaultLogin"` // user displayed when requesting /
}

type GithubConfig struct {
	Token                 string `mapstructure:"Token"`
	RequestTimeoutSeconds int    `mapstructure:"RequestTimeoutSeconds"` // 0 disable the timeout
	UseLocalRateLimiter   bool   `mapstructure:"UseLocalRateLimiter"`
}

type CacheConfig struct {
	TTLSeconds   int      `mapstructure:"TTLSeconds"`
	MaxEntries   int      `mapstructure:"MaxEntries"` // 0 means unbounded
	WarmupLogins []string `mapstructure:"WarmupLogins"`
}

type TasksConfig struct {
	MaxParallelTasksAllowed int `mapstructure:"MaxParallelTasksAllowed"`
}

type LogsConfig struct {
	Level            string `mapstructure:"Level"` // error | warn | info | debug - case insensitive
	OutputLogsAsJSON bool   `mapstructure:"OutputLogsAsJson"`
}

// Load
func Load() (*Config, error) {
	// .env file is optional, variables already set are never overridden
	_ = godotenv.Load()

	dir, err := filepath.Abs(filepath.Dir(os.Args[0]))

	if err != nil {
		return nil, err
	}

	cfg := GetDefault()

	// check config file exists
	// without any config file, defaults and environment variables are used
	configFilePath := dir + "/config/config.toml"

	if _, err := os.Stat(configFilePath); errors.Is(err, os.ErrNotExist) {
		configFilePath = "config/config.toml"

		if _, err := os.Stat(configFilePath); errors.Is(err, os.ErrNotExist) {
			configFilePath = ""
		}
	}

	// load default and config file content
	if configFilePath != "" {
		if _, err = snakelet.InitAndLoad(cfg, configFilePath); err != nil {
			return nil, err
		}
	}

	cfg.applyEnvironment()
	return cfg, nil
}

// GetDefault
func GetDefault() *Config {
	return &Config{
		API: APIConfig{
			ListenPort:   "8000",
			DefaultLogin: "cuducos",
		},
		Github: GithubConfig{
			RequestTimeoutSeconds: 30,
			UseLocalRateLimiter:   true,
		},
		Cache: CacheConfig{
			TTLSeconds: 86400,
			MaxEntries: 0,
		},
		Tasks: TasksConfig{
			MaxParallelTasksAllowed: 8,
		},
		Logs: LogsConfig{
			Level:            "info",
			OutputLogsAsJSON: false,
		},
	}
}

// Validate check the configuration can be used to start the server
func (c Config) Validate() error {
	if c.Github.Token == "" {
		return ErrMissingToken
	}

	return nil
}

func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

func (c Config) RequestTimeout() time.Duration {
	return time.Duration(c.Github.RequestTimeoutSeconds) * time.Second
}

// environment variables take precedence over the config file
func (c *Config) applyEnvironment() {
	if token, found := os.LookupEnv(TokenEnvironmentVariable); found && token != "" {
		c.Github.Token = token
	}

	if port, found := os.LookupEnv(PortEnvironmentVariable); found && port != "" {
		c.API.ListenPort = port
	}
}
