package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Storage drivers and file formats.
const (
	FileDriver  = "file"
	BoltDriver  = "bolt"
	RedisDriver = "redis"

	JSONFormat = "json"
	YAMLFormat = "yaml"
)

var (
	ErrUnknownStorageDriver = errors.New("unknown storage driver")
	ErrUnknownStorageFormat = errors.New("unknown storage format")
)

// Config defines the structure of the configuration file.
type Config struct {
	GitCommit    string        `yaml:"git_commit" envconfig:"PLM_GIT_COMMIT"`
	GitTag       string        `yaml:"git_tag" envconfig:"PLM_GIT_TAG"`
	BuildTime    string        `yaml:"build_time" envconfig:"PLM_BUILD_TIME"`
	IsProduction bool          `yaml:"is_production" envconfig:"PLM_IS_PRODUCTION"`
	LogLevel     zapcore.Level `yaml:"log_level" envconfig:"PLM_LOG_LEVEL"`
	LogFolder    string        `yaml:"log_folder" envconfig:"PLM_LOG_FOLDER"`
	LogMaxSize   int           `yaml:"log_max_size" envconfig:"PLM_LOG_MAX_SIZE"`
	LogConsole   bool          `yaml:"log_console" envconfig:"PLM_LOG_CONSOLE"`
	Storage      StorageConfig `yaml:"storage"`
	Redis        RedisConfig   `yaml:"redis"`
	BoltDB       BoltDBConfig  `yaml:"boltdb"`
}

type StorageConfig struct {
	Driver   string `yaml:"driver" envconfig:"PLM_STORAGE_DRIVER"`
	FilePath string `yaml:"file_path" envconfig:"PLM_STORAGE_FILE_PATH"`
	Format   string `yaml:"format" envconfig:"PLM_STORAGE_FORMAT"`
}

type RedisConfig struct {
	Host          string        `yaml:"host" envconfig:"PLM_REDIS_HOST"`
	Port          string        `yaml:"port" envconfig:"PLM_REDIS_PORT"`
	DialTimeout   time.Duration `yaml:"dial_timeout" envconfig:"PLM_REDIS_DIAL_TIMEOUT"`
	ReadTimeout   time.Duration `yaml:"read_timeout" envconfig:"PLM_REDIS_READ_TIMEOUT"`
	WriteTimeout  time.Duration `yaml:"write_timeout" envconfig:"PLM_REDIS_WRITE_TIMEOUT"`
	PoolSize      int           `yaml:"pool_size" envconfig:"PLM_REDIS_POOL_SIZE"`
	PoolTimeout   time.Duration `yaml:"pool_timeout" envconfig:"PLM_REDIS_POOL_TIMEOUT"`
	Username      string        `yaml:"username" envconfig:"PLM_REDIS_USERNAME"`
	Password      string        `yaml:"password" envconfig:"PLM_REDIS_PASSWORD"`
	DatabaseIndex int           `yaml:"db_index" envconfig:"PLM_REDIS_DATABASE_INDEX"`
	Key           string        `yaml:"key" envconfig:"PLM_REDIS_KEY"`
}

type BoltDBConfig struct {
	FilePath   string        `yaml:"filepath" envconfig:"PLM_BOLTDB_FILE_PATH"`
	Timeout    time.Duration `yaml:"timeout" envconfig:"PLM_BOLTDB_TIMEOUT"`
	BucketName string        `yaml:"bucket_name" envconfig:"PLM_BOLTDB_BUCKET_NAME"`
}

// DefaultConfig returns the settings used when nothing else is provided.
func DefaultConfig() *Config {
	return &Config{
		LogLevel:   zapcore.InfoLevel,
		LogFolder:  "./logs",
		LogMaxSize: 10,
		Storage: StorageConfig{
			Driver:   FileDriver,
			FilePath: "library.json",
			Format:   JSONFormat,
		},
		Redis: RedisConfig{
			Host:         "localhost",
			Port:         "6379",
			DialTimeout:  5 * time.Second,
			ReadTimeout:  3 * time.Second,
			WriteTimeout: 3 * time.Second,
			PoolSize:     2,
			PoolTimeout:  5 * time.Second,
			Key:          "library:books",
		},
		BoltDB: BoltDBConfig{
			FilePath:   "library.db",
			Timeout:    2 * time.Second,
			BucketName: "books",
		},
	}
}

// LoadConfigFile decodes the yaml configuration file on top of the given config.
// A missing file leaves the config untouched.
func LoadConfigFile(configFile string, config *Config) error {
	file, err := os.Open(configFile)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err != nil {
		return err
	}
	defer file.Close()

	err = yaml.NewDecoder(file).Decode(config)
	if err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// LoadConfigEnvs reads the environments variables into the App config.
func LoadConfigEnvs(prefix string, config *Config) error {
	return envconfig.Process(prefix, config)
}

// InitConfig configures build tags values to be used if provided
// and checks the settings required by the selected storage.
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

	if config.LogMaxSize <= 0 {
		return errors.New("make sure to set a positive log max size in configuration file")
	}

	config.Storage.Driver = strings.ToLower(config.Storage.Driver)
	config.Storage.Format = strings.ToLower(config.Storage.Format)

	switch config.Storage.Driver {
	case FileDriver:
		if len(config.Storage.FilePath) == 0 {
			return errors.New("make sure to set a valid library file path in configuration file")
		}
		if config.Storage.Format != JSONFormat && config.Storage.Format != YAMLFormat {
			return fmt.Errorf("%w: %q", ErrUnknownStorageFormat, config.Storage.Format)
		}
	case BoltDriver:
		if len(config.BoltDB.FilePath) == 0 || len(config.BoltDB.BucketName) == 0 {
			return errors.New("make sure to set valid boltdb file path and bucket name in configuration file")
		}
	case RedisDriver:
		if len(config.Redis.Host) == 0 || len(config.Redis.Port) == 0 {
			return errors.New("make sure to set valid redis address and port in configuration file")
		}
		if len(config.Redis.Key) == 0 {
			return errors.New("make sure to set a valid redis key in configuration file")
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStorageDriver, config.Storage.Driver)
	}

	return nil
}

// LoadAndInitConfigs loads in order the configs from various predefined sources
// then build the App configuration data.
func LoadAndInitConfigs(configFile, envFile, gitCommit, gitTag, buildTime string) (*Config, error) {
	config := DefaultConfig()

	// Setup the yaml configuration from file.
	err := LoadConfigFile(configFile, config)
	if err != nil {
		return config, fmt.Errorf("failed to load configurations from file: %w", err)
	}

	// Set the environment configuration.
	err = godotenv.Load(envFile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return config, fmt.Errorf("failed to set environment configurations: %w", err)
	}

	// Use environment variables with prefix `PLM`.
	err = LoadConfigEnvs("PLM", config)
	if err != nil {
		return config, fmt.Errorf("failed to load configurations from environment: %w", err)
	}

	err = InitConfig(config, gitCommit, gitTag, buildTime)
	if err != nil {
		return config, fmt.Errorf("failed to initialize configurations: %w", err)
	}
	return config, nil
}
