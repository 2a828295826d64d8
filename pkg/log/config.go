package log

import (
	"fmt"
	"strings"
	"time"
)

type Config struct {
	Level       string `yaml:"level"`
	Format      string `yaml:"format"`
	Environment string `yaml:"environment"`
	ServiceName string `yaml:"service_name"`
	Version     string `yaml:"version"`

	// OutputPath is "stdout", "stderr" or a file path. File output
	// rotates via the File* settings below.
	OutputPath string `yaml:"output_path"`

	FileMaxSizeInMB  int  `yaml:"file_max_size_mb"`
	FileMaxAgeInDays int  `yaml:"file_max_age_days"`
	FileMaxBackups   int  `yaml:"file_max_backups"`
	CompressRotated  bool `yaml:"compress_rotated"`

	DisableCaller     bool            `yaml:"disable_caller"`
	DisableStacktrace bool            `yaml:"disable_stacktrace"`
	SamplingConfig    *SamplingConfig `yaml:"sampling"`

	// InitialFields are attached to every entry the logger writes.
	InitialFields map[string]interface{} `yaml:"initial_fields"`
}

type SamplingConfig struct {
	Initial    int           `yaml:"initial"`
	Thereafter int           `yaml:"thereafter"`
	Tick       time.Duration `yaml:"tick"`
}

func (c *Config) Validate() error {
	switch strings.ToLower(c.Level) {
	case "debug", "info", "warn", "error", "fatal":
	default:
		return fmt.Errorf("invalid log level %q, expected one of debug, info, warn, error, fatal", c.Level)
	}

	switch strings.ToLower(c.Format) {
	case "json", "console":
	default:
		return fmt.Errorf("invalid log format %q, expected json or console", c.Format)
	}

	if c.FileMaxSizeInMB <= 0 {
		return fmt.Errorf("file_max_size_mb must be positive")
	}
	if c.FileMaxAgeInDays <= 0 {
		return fmt.Errorf("file_max_age_days must be positive")
	}
	if c.FileMaxBackups < 0 {
		return fmt.Errorf("file_max_backups must not be negative")
	}

	if c.SamplingConfig != nil {
		if c.SamplingConfig.Initial <= 0 {
			return fmt.Errorf("sampling initial must be positive")
		}
		if c.SamplingConfig.Thereafter <= 0 {
			return fmt.Errorf("sampling thereafter must be positive")
		}
	}

	return nil
}

func DefaultConfig() Config {
	return Config{
		Level:            "info",
		Format:           "json",
		Environment:      "development",
		ServiceName:      "ecom-admin",
		Version:          "1.0.0",
		OutputPath:       "stdout",
		FileMaxSizeInMB:  100,
		FileMaxAgeInDays: 30,
		FileMaxBackups:   10,
		CompressRotated:  true,
		InitialFields:    make(map[string]interface{}),
	}
}

// DevelopmentConfig is a console logger at debug level.
func DevelopmentConfig() Config {
	config := DefaultConfig()
	config.Level = "debug"
	config.Format = "console"
	return config
}

// ProductionConfig is a sampled json logger with caller and stacktrace
// capture turned off.
func ProductionConfig(serviceName, version string) Config {
	config := DefaultConfig()
	config.Environment = "production"
	config.ServiceName = serviceName
	config.Version = version
	config.DisableCaller = true
	config.DisableStacktrace = true
	config.SamplingConfig = &SamplingConfig{
		Initial:    100,
		Thereafter: 100,
	}
	return config
}
