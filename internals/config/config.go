package config

import (
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/GyroTools/clinica-connector-go/internals/utils"
)

const DefaultEnvFile = ".env"

type Config struct {
	APIURL     string        `mapstructure:"CLINICA_API_URL"`
	VerifyCert bool          `mapstructure:"CLINICA_VERIFY_CERT"`
	Timeout    time.Duration `mapstructure:"CLINICA_TIMEOUT"`
	LogLevel   string        `mapstructure:"LOG_LEVEL"`
	LogFormat  string        `mapstructure:"LOG_FORMAT"`
	StubPort   int           `mapstructure:"STUB_PORT"`
	StubSeed   bool          `mapstructure:"STUB_SEED"`
}

var keys = []string{
	"CLINICA_API_URL",
	"CLINICA_VERIFY_CERT",
	"CLINICA_TIMEOUT",
	"LOG_LEVEL",
	"LOG_FORMAT",
	"STUB_PORT",
	"STUB_SEED",
}

// Load reads envFile into the process environment, then the environment into
// a Config. A missing envFile is not an error; variables already set in the
// environment win over the file.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("CLINICA_API_URL", "http://localhost:3000")
	v.SetDefault("CLINICA_VERIFY_CERT", true)
	v.SetDefault("CLINICA_TIMEOUT", "0s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("STUB_PORT", 3000)
	v.SetDefault("STUB_SEED", true)

	// Unmarshal only sees env vars that are bound
	for _, key := range keys {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return cfg, nil
}

// Validate normalizes APIURL and rejects values the CLI cannot run with.
func (c *Config) Validate() error {
	u, err := utils.ValidateURL(c.APIURL)
	if err != nil {
		return fmt.Errorf("CLINICA_API_URL: %w", err)
	}
	c.APIURL = u

	switch c.LogLevel {
	case "trace", "debug", "info", "warn", "error", "fatal", "panic", "disabled":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of trace, debug, info, warn, error or disabled, got %q", c.LogLevel)
	}
	switch c.LogFormat {
	case "console", "json":
	default:
		return fmt.Errorf("LOG_FORMAT must be \"console\" or \"json\", got %q", c.LogFormat)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("CLINICA_TIMEOUT must not be negative, got %s", c.Timeout)
	}
	if c.StubPort <= 0 || c.StubPort > 65535 {
		return fmt.Errorf("STUB_PORT out of range: %d", c.StubPort)
	}
	return nil
}
