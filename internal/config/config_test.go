package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/njchilds90/polynorm"
)

// chdirTemp moves the test into an empty directory so a stray
// polynorm.yaml cannot leak into the defaults.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestLoad_DefaultValues(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.False(t, cfg.Log.File.Enabled)
	assert.Equal(t, DefaultServerPort, cfg.Server.Port)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr())
	assert.Equal(t, 15*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 10*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, int64(DefaultMaxBodyBytes), cfg.Server.MaxBodyBytes)
	assert.Equal(t, polynorm.MaxDepth, cfg.Engine.MaxDepth)
	assert.Equal(t, polynorm.DefaultMaxTerms, cfg.Engine.MaxTerms)
	assert.Equal(t, 5*time.Second, cfg.Engine.Timeout)
	assert.Equal(t, "auto", cfg.Output.Format)
	require.NoError(t, cfg.Validate())
}

func TestLoad_EnvVarOverrides(t *testing.T) {
	chdirTemp(t)
	t.Setenv("POLYNORM_SERVER_PORT", "9090")
	t.Setenv("POLYNORM_LOG_LEVEL", "warn")
	t.Setenv("POLYNORM_SERVER_MAX_BODY_BYTES", "2048")
	t.Setenv("POLYNORM_LOG_FILE_ENABLED", "true")
	t.Setenv("POLYNORM_ENGINE_MAX_TERMS", "500")
	t.Setenv("POLYNORM_ENGINE_TIMEOUT", "250ms")

	cfg, err := Load("", nil)
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, int64(2048), cfg.Server.MaxBodyBytes)
	assert.True(t, cfg.Log.File.Enabled)
	assert.Equal(t, 500, cfg.Engine.MaxTerms)
	assert.Equal(t, 250*time.Millisecond, cfg.Engine.Timeout)
	assert.Equal(t, polynorm.Limits{MaxDepth: polynorm.MaxDepth, MaxTerms: 500}, cfg.Engine.Limits())
}

func TestLoad_ConfigFile(t *testing.T) {
	dir := chdirTemp(t)
	path := filepath.Join(dir, "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("log:\n  format: json\nengine:\n  max_depth: 64\n"), 0o600))

	cfg, err := Load(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 64, cfg.Engine.MaxDepth)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoad_DefaultFileInWorkingDir(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, DefaultConfigFile), []byte("output:\n  format: json\n"), 0o600))

	cfg, err := Load("", nil)
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Output.Format)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	chdirTemp(t)
	_, err := Load("does-not-exist.yaml", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "does-not-exist.yaml")
}

func TestLoad_FlagsOverrideEnv(t *testing.T) {
	chdirTemp(t)
	t.Setenv("POLYNORM_LOG_LEVEL", "warn")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("log-level", "", "")
	fs.String("output", "", "")
	fs.Int("port", 0, "")
	require.NoError(t, fs.Parse([]string{"--log-level", "debug", "--port", "7000"}))

	cfg, err := Load("", fs)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.Equal(t, "auto", cfg.Output.Format, "unset flags must not clobber defaults")
}

func TestEnvKey(t *testing.T) {
	tests := map[string]string{
		"SERVER_PORT":           "server.port",
		"SERVER_MAX_BODY_BYTES": "server.max_body_bytes",
		"LOG_FILE_MAX_SIZE":     "log.file.max_size",
		"LOG_FORMAT":            "log.format",
		"ENGINE_MAX_DEPTH":      "engine.max_depth",
		"ENGINE_MAX_TERMS":      "engine.max_terms",
		"VERBOSE":               "verbose",
	}
	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, envKey(in))
		})
	}
}

func TestValidate(t *testing.T) {
	chdirTemp(t)

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad level", func(c *Config) { c.Log.Level = "loud" }, "log.level must be one of: debug info warn error"},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, "server.port must be at most 65535"},
		{"file path required", func(c *Config) { c.Log.File.Enabled = true; c.Log.File.Path = "" }, "log.file.path is required when enabled is true"},
		{"bad output", func(c *Config) { c.Output.Format = "xml" }, "output.format must be one of"},
		{"depth zero", func(c *Config) { c.Engine.MaxDepth = 0 }, "engine.max_depth is required"},
		{"terms too high", func(c *Config) { c.Engine.MaxTerms = 20000000 }, "engine.max_terms must be at most 10000000"},
		{"timeout too short", func(c *Config) { c.Engine.Timeout = time.Microsecond }, "engine.timeout must be at least 1ms"},
		{"body limit zero", func(c *Config) { c.Server.MaxBodyBytes = 0 }, "server.max_body_bytes is required"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Load("", nil)
			require.NoError(t, err)
			tt.mutate(cfg)

			err = cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLogConfig_LoggerConfig(t *testing.T) {
	c := LogConfig{Level: "debug", Format: "json", File: LogFileConfig{
		Path:       "/tmp/polynorm.log",
		MaxSizeMB:  10,
		MaxBackups: 2,
		MaxAgeDays: 7,
		Compress:   true,
	}}

	lc := c.LoggerConfig()
	assert.Equal(t, "debug", lc.Level)
	assert.Equal(t, "json", lc.Format)
	assert.Nil(t, lc.File, "disabled file sink must not be attached")

	c.File.Enabled = true
	lc = c.LoggerConfig()
	require.NotNil(t, lc.File)
	assert.Equal(t, "/tmp/polynorm.log", lc.File.Path)
	assert.Equal(t, 10, lc.File.MaxSizeMB)
	assert.Equal(t, 2, lc.File.MaxBackups)
	assert.Equal(t, 7, lc.File.MaxAgeDays)
	assert.True(t, lc.File.Compress)
}
