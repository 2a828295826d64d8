package config

import (
	"fmt"
	"sync"

	"github.com/ilyakaznacheev/cleanenv"
)

var (
	instance Config
	once     sync.Once
)

// Load reads the yaml files in order, then overlays environment
// variables on top. The first successful call wins for the process.
func Load(configPaths ...string) (Config, error) {
	var err error
	once.Do(func() {
		cfg := &config{}

		for _, configPath := range configPaths {
			if err = cleanenv.ReadConfig(configPath, cfg); err != nil {
				err = fmt.Errorf("failed to read config file %s: %w", configPath, err)
				return
			}
		}

		// Secrets come from the environment, never from yaml.
		if err = cleanenv.ReadEnv(cfg); err != nil {
			err = fmt.Errorf("failed to read environment variables: %w", err)
			return
		}

		instance = cfg
	})

	if err != nil {
		return nil, err
	}
	return instance, nil
}

func MustLoad(configPath string) Config {
	cfg, err := Load(configPath)
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// Reset clears the cached instance. Test use only.
func Reset() {
	instance = nil
	once = sync.Once{}
}

func MustGet() Config {
	if instance == nil {
		panic("config not loaded, call Load() first")
	}
	return instance
}
