package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"gotest.tools/v3/assert"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range keys {
		if old, ok := os.LookupEnv(key); ok {
			os.Unsetenv(key)
			t.Cleanup(func() { os.Setenv(key, old) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.NilError(t, err)
	assert.Equal(t, cfg.APIURL, "http://localhost:3000")
	assert.Equal(t, cfg.VerifyCert, true)
	assert.Equal(t, cfg.Timeout, time.Duration(0))
	assert.Equal(t, cfg.LogLevel, "info")
	assert.Equal(t, cfg.LogFormat, "console")
	assert.Equal(t, cfg.StubPort, 3000)
	assert.Equal(t, cfg.StubSeed, true)
	assert.NilError(t, cfg.Validate())
}

func TestLoad_EnvFile(t *testing.T) {
	clearEnv(t)
	envFile := filepath.Join(t.TempDir(), ".env")
	content := "CLINICA_API_URL=clinica.local:8080/api\nCLINICA_TIMEOUT=5s\nCLINICA_VERIFY_CERT=false\nSTUB_SEED=false\n"
	assert.NilError(t, os.WriteFile(envFile, []byte(content), 0o600))
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load(envFile)
	assert.NilError(t, err)
	assert.Equal(t, cfg.Timeout, 5*time.Second)
	assert.Equal(t, cfg.VerifyCert, false)
	assert.Equal(t, cfg.StubSeed, false)
	assert.Equal(t, cfg.LogFormat, "json")

	assert.NilError(t, cfg.Validate())
	assert.Equal(t, cfg.APIURL, "http://clinica.local:8080")
}

func TestLoad_EnvWinsOverFile(t *testing.T) {
	clearEnv(t)
	envFile := filepath.Join(t.TempDir(), ".env")
	assert.NilError(t, os.WriteFile(envFile, []byte("LOG_LEVEL=debug\n"), 0o600))
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load(envFile)
	assert.NilError(t, err)
	assert.Equal(t, cfg.LogLevel, "warn")
}

func TestValidate(t *testing.T) {
	valid := Config{APIURL: "http://localhost:3000", LogLevel: "info", LogFormat: "console", StubPort: 3000}
	assert.NilError(t, valid.Validate())

	cases := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"empty url", func(c *Config) { c.APIURL = "" }, "CLINICA_API_URL"},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "LOG_LEVEL"},
		{"bad format", func(c *Config) { c.LogFormat = "xml" }, "LOG_FORMAT"},
		{"negative timeout", func(c *Config) { c.Timeout = -time.Second }, "CLINICA_TIMEOUT"},
		{"port", func(c *Config) { c.StubPort = 70000 }, "STUB_PORT"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := valid
			tc.mutate(&cfg)
			assert.ErrorContains(t, cfg.Validate(), tc.want)
		})
	}
}
