package api

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config controls the HTTP server.
type Config struct {
	// Addr is the listen address, e.g. ":8080".
	Addr string `mapstructure:"addr"`

	// GeneratePerMinute limits quiz generation requests. 0 disables the limit.
	GeneratePerMinute float64 `mapstructure:"generate_per_minute"`

	// GenerateBurst is the number of generation requests allowed at once.
	GenerateBurst int `mapstructure:"generate_burst"`

	// GenerateTimeout bounds a single generation request.
	GenerateTimeout time.Duration `mapstructure:"generate_timeout"`
}

// DefaultConfig returns the server defaults.
func DefaultConfig() Config {
	return Config{
		Addr:              ":8080",
		GeneratePerMinute: 6,
		GenerateBurst:     2,
		GenerateTimeout:   2 * time.Minute,
	}
}

// LoadConfig reads the server config from v. Values come, lowest first,
// from DefaultConfig, the optional config file, READQUIZ_SERVER_*
// environment variables and any flags already bound to v.
func LoadConfig(v *viper.Viper, file string) (Config, error) {
	def := DefaultConfig()
	v.SetDefault("server.addr", def.Addr)
	v.SetDefault("server.generate_per_minute", def.GeneratePerMinute)
	v.SetDefault("server.generate_burst", def.GenerateBurst)
	v.SetDefault("server.generate_timeout", def.GenerateTimeout)

	v.SetEnvPrefix("READQUIZ")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config %s: %w", file, err)
		}
	}

	// Unmarshal resolves every leaf key, so env and flag overrides apply.
	var doc struct {
		Server Config `mapstructure:"server"`
	}
	if err := v.Unmarshal(&doc); err != nil {
		return Config{}, fmt.Errorf("decode server config: %w", err)
	}
	if err := doc.Server.Validate(); err != nil {
		return Config{}, err
	}
	return doc.Server, nil
}

// Validate checks the config values.
func (c Config) Validate() error {
	if c.Addr == "" {
		return errors.New("server address is required")
	}
	if c.GeneratePerMinute < 0 {
		return fmt.Errorf("generate_per_minute must not be negative, got %v", c.GeneratePerMinute)
	}
	if c.GenerateBurst < 0 {
		return fmt.Errorf("generate_burst must not be negative, got %d", c.GenerateBurst)
	}
	return nil
}
