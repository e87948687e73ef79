package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config defines the structure of the configuration file.
type Config struct {
	GitCommit          string        `yaml:"git_commit" envconfig:"LCAT_GIT_COMMIT" json:"git_commit"`
	GitTag             string        `yaml:"git_tag" envconfig:"LCAT_GIT_TAG" json:"git_tag"`
	BuildTime          string        `yaml:"build_time" envconfig:"LCAT_BUILD_TIME" json:"build_time"`
	IsProduction       bool          `yaml:"is_production" envconfig:"LCAT_IS_PRODUCTION" json:"is_production"`
	LogLevel           zapcore.Level `yaml:"log_level" envconfig:"LCAT_LOG_LEVEL" json:"log_level"`
	LogFile            string        `yaml:"log_file" envconfig:"LCAT_LOG_FILE" json:"log_file"`
	OpsEndpointsEnable bool          `yaml:"ops_endpoints_enable" envconfig:"LCAT_OPS_ENDPOINTS_ENABLE" json:"ops_endpoints_enable"`
	Server             ServerConfig  `yaml:"server" json:"server"`
	Redis              RedisConfig   `yaml:"redis" json:"redis"`
	BoltDB             BoltDBConfig  `yaml:"boltdb" json:"boltdb"`
	Catalog            CatalogConfig `yaml:"catalog" json:"catalog"`
}

type ServerConfig struct {
	Host            string        `yaml:"host" envconfig:"LCAT_SERVER_HOST" json:"host"`
	Port            string        `yaml:"port" envconfig:"LCAT_SERVER_PORT" json:"port"`
	ReadTimeout     time.Duration `yaml:"read_timeout" envconfig:"LCAT_SERVER_READ_TIMEOUT" json:"read_timeout"`
	WriteTimeout    time.Duration `yaml:"write_timeout" envconfig:"LCAT_SERVER_WRITE_TIMEOUT" json:"write_timeout"`
	RequestTimeout  time.Duration `yaml:"request_timeout" envconfig:"LCAT_SERVER_REQUEST_TIMEOUT" json:"request_timeout"` // Time to wait for a request to finish
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" envconfig:"LCAT_SERVER_SHUTDOWN_TIMEOUT" json:"shutdown_timeout"`
}

type RedisConfig struct {
	Host          string        `yaml:"host" envconfig:"LCAT_REDIS_HOST" json:"host"`
	Port          string        `yaml:"port" envconfig:"LCAT_REDIS_PORT" json:"port"`
	DialTimeout   time.Duration `yaml:"dial_timeout" envconfig:"LCAT_REDIS_DIAL_TIMEOUT" json:"dial_timeout"`
	ReadTimeout   time.Duration `yaml:"read_timeout" envconfig:"LCAT_REDIS_READ_TIMEOUT" json:"read_timeout"`
	WriteTimeout  time.Duration `yaml:"write_timeout" envconfig:"LCAT_REDIS_WRITE_TIMEOUT" json:"write_timeout"`
	PoolSize      int           `yaml:"pool_size" envconfig:"LCAT_REDIS_POOL_SIZE" json:"pool_size"`
	PoolTimeout   time.Duration `yaml:"pool_timeout" envconfig:"LCAT_REDIS_POOL_TIMEOUT" json:"pool_timeout"`
	Username      string        `yaml:"username" envconfig:"LCAT_REDIS_USERNAME" json:"-"`
	Password      string        `yaml:"password" envconfig:"LCAT_REDIS_PASSWORD" json:"-"`
	DatabaseIndex int           `yaml:"db_index" envconfig:"LCAT_REDIS_DATABASE_INDEX" json:"db_index"`
}

type BoltDBConfig struct {
	FilePath   string        `yaml:"filepath" envconfig:"LCAT_BOLTDB_FILE_PATH" json:"filepath"`
	Timeout    time.Duration `yaml:"timeout" envconfig:"LCAT_BOLTDB_TIMEOUT" json:"timeout"`
	BucketName string        `yaml:"bucket_name" envconfig:"LCAT_BOLTDB_BUCKET_NAME" json:"bucket_name"`
}

type CatalogConfig struct {
	ActivityLimit int `yaml:"activity_limit" envconfig:"LCAT_CATALOG_ACTIVITY_LIMIT" json:"activity_limit"` // Max journal entries served
}

// Defaults applied by InitConfig to unset settings.
const (
	DefaultActivityLimit   = 100
	DefaultRequestTimeout  = 10 * time.Second
	DefaultShutdownTimeout = 30 * time.Second
)

// LoadConfigFile provides an instance of config structure for the all application.
func LoadConfigFile(configFile string) (*Config, error) {
	file, err := os.Open(configFile)
	if err != nil {
		return nil, err
	}
	defer file.Close()
	cfg := &Config{}
	yd := yaml.NewDecoder(file)
	err = yd.Decode(cfg)

	if err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadConfigEnvs reads the environments variables and overrides matching settings of the App config.
func LoadConfigEnvs(prefix string, config *Config) error {
	return envconfig.Process(prefix, config)
}

// InitConfig setup defaults values for non provided parameters
// and configures build tags values to be used if provided.
func InitConfig(config *Config, gitCommit, gitTag, buildTime string) error {
	if len(gitCommit) != 0 {
		config.GitCommit = gitCommit
	}

	if len(gitTag) != 0 {
		config.GitTag = gitTag
	}

	if len(buildTime) != 0 {
		config.BuildTime = buildTime
	}

	if config.Catalog.ActivityLimit <= 0 {
		config.Catalog.ActivityLimit = DefaultActivityLimit
	}

	if config.Server.RequestTimeout <= 0 {
		config.Server.RequestTimeout = DefaultRequestTimeout
	}

	if config.Server.ShutdownTimeout <= 0 {
		config.Server.ShutdownTimeout = DefaultShutdownTimeout
	}

	if len(config.Server.Host) == 0 || len(config.Server.Port) == 0 {
		return errors.New("make sure to set valid server address and port in configuration file")
	}

	if len(config.Redis.Host) == 0 || len(config.Redis.Port) == 0 {
		return errors.New("make sure to set valid redis address and port in configuration file")
	}

	if len(config.BoltDB.FilePath) == 0 || len(config.BoltDB.BucketName) == 0 {
		return errors.New("make sure to set valid boltdb file path and bucket name in configuration file")
	}

	return nil
}

// LoadAndInitConfigs loads in order the configs from various predefined sources
// then build the App configuration data.
func LoadAndInitConfigs(gitCommit, gitTag, buildTime string) (*Config, error) {
	// Setup the yaml configuration from file.
	config, err := LoadConfigFile("./config.yml")
	if err != nil {
		return config, fmt.Errorf("failed to load configurations from file: %s", err)
	}

	// Set the environment configuration.
	err = godotenv.Load("./config.env")
	if err != nil {
		return config, fmt.Errorf("failed to set environment configurations: %s", err)
	}

	// Use environment variables with prefix `LCAT`.
	err = LoadConfigEnvs("LCAT", config)
	if err != nil {
		return config, fmt.Errorf("failed to load configurations from environment: %s", err)
	}

	err = InitConfig(config, gitCommit, gitTag, buildTime)
	if err != nil {
		return config, fmt.Errorf("failed to initialize configurations: %s", err)
	}
	return config, nil
}
