package core

import (
	"fmt"
	"strings"
)

type SaveConfig struct {
	PromptBeforeSaving      bool `koanf:"prompt_before_saving" mapstructure:"prompt_before_saving"`
	OverwriteFailedCheckout bool `koanf:"overwrite_failed_checkout" mapstructure:"overwrite_failed_checkout"`
}

type PathsConfig struct {
	ReadOnlyRoots []string `koanf:"read_only_roots" mapstructure:"read_only_roots"`
}

type StatusConfig struct {
	CacheTTLSeconds int `koanf:"cache_ttl_seconds" mapstructure:"cache_ttl_seconds"`
}

type Config struct {
	ServiceName string       `koanf:"service_name" mapstructure:"service_name"`
	Save        SaveConfig   `koanf:"save" mapstructure:"save"`
	Paths       PathsConfig  `koanf:"paths" mapstructure:"paths"`
	Status      StatusConfig `koanf:"status" mapstructure:"status"`
}

func DefaultConfig() Config {
	return Config{
		ServiceName: "assets",
		Save: SaveConfig{
			PromptBeforeSaving: true,
		},
		Status: StatusConfig{
			CacheTTLSeconds: 30,
		},
	}
}

func (c Config) Validate() error {
	if strings.TrimSpace(c.ServiceName) == "" {
		return fmt.Errorf("core: service_name is required")
	}
	if c.Status.CacheTTLSeconds < 0 {
		return fmt.Errorf("core: status.cache_ttl_seconds must not be negative")
	}
	return nil
}
