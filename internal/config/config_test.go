package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	siteerrors "github.com/crabby-lang/website/internal/errors"
	"github.com/crabby-lang/website/internal/logging"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := LoadFrom(viper.New())
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "Crabby", cfg.Site.Title)
	assert.Empty(t, cfg.Site.FeaturesFile)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.True(t, cfg.Development.HotReload)
	assert.Equal(t, "localhost:3000", cfg.Addr())
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".crabbysite.yml")
	content := `
server:
  port: 8080
  allowed_origins: ["docs.example.com"]
site:
  title: Crabby Docs
  features_file: content/features.yml
logging:
  level: debug
  format: json
development:
  hot_reload: false
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	v := viper.New()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := LoadFrom(v)
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"docs.example.com"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "Crabby Docs", cfg.Site.Title)
	assert.Equal(t, "content/features.yml", cfg.Site.FeaturesFile)
	assert.False(t, cfg.Development.HotReload)

	lc := cfg.LoggerConfig()
	assert.Equal(t, logging.LevelDebug, lc.Level)
	assert.Equal(t, "json", lc.Format)
}

func TestLoadEnvironmentOverride(t *testing.T) {
	t.Setenv("CRABBYSITE_SERVER_PORT", "4242")

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(envKeyReplacer)

	cfg, err := LoadFrom(v)
	require.NoError(t, err)
	assert.Equal(t, 4242, cfg.Server.Port)
}

func TestLoadFlagOverrides(t *testing.T) {
	v := viper.New()
	v.Set("log-level", "warn")
	v.Set("log-format", "json")

	cfg, err := LoadFrom(v)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
}

func TestLoadValidation(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value interface{}
	}{
		{"port too large", "server.port", 70000},
		{"negative port", "server.port", -1},
		{"host injection", "server.host", "localhost;rm -rf"},
		{"features traversal", "site.features_file", "../secrets.yml"},
		{"assets injection", "site.assets_dir", "static|evil"},
		{"log level", "logging.level", "chatty"},
		{"log format", "logging.format", "xml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := viper.New()
			v.Set(tt.key, tt.value)

			_, err := LoadFrom(v)
			require.Error(t, err)
			assert.True(t, siteerrors.IsType(err, siteerrors.ErrorTypeConfig), err.Error())
		})
	}
}

func TestLoadDecodeError(t *testing.T) {
	v := viper.New()
	v.Set("server.port", "not-a-number")

	_, err := LoadFrom(v)
	require.Error(t, err)
	assert.True(t, siteerrors.IsType(err, siteerrors.ErrorTypeConfig))
	assert.ErrorContains(t, err, siteerrors.CodeInvalidConfig)
}
