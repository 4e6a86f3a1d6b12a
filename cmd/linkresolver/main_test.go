// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/pdiddy/linkresolver/internal/secrets"
	"github.com/pdiddy/linkresolver/pkg/types"
)

func TestNewLogger(t *testing.T) {
	tests := []struct {
		name        string
		environment string
		verbose     bool
		debug       bool
	}{
		{"dev default", "", false, false},
		{"dev verbose", "dev", true, true},
		{"production", "production", false, false},
		{"production verbose", "production", true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, err := newLogger(tt.environment, tt.verbose)
			require.NoError(t, err)
			assert.Equal(t, tt.debug, l.Core().Enabled(zapcore.DebugLevel))
			assert.True(t, l.Core().Enabled(zapcore.InfoLevel))
		})
	}
}

func TestLoadConfig(t *testing.T) {
	t.Cleanup(viper.Reset)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, secrets.BackendToken), []byte("tok_file\n"), 0o600))

	viper.Set("backend_url", "https://backend.example/v0/")
	viper.Set("render_timeout", "2s")
	viper.Set("secrets_dir", dir)

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://backend.example/v0/", cfg.BackendURL)
	assert.Equal(t, 2*time.Second, cfg.RenderTimeout)
	assert.Equal(t, types.DefaultListen, cfg.Listen)
	assert.Equal(t, types.DefaultMaxRetries, cfg.MaxRetries)
	assert.Equal(t, "tok_file", cfg.BackendToken)

	viper.Set("backend_token", "tok_explicit")
	viper.Set("max_retries", 0)
	cfg, err = loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "tok_explicit", cfg.BackendToken)
	assert.Equal(t, 0, cfg.MaxRetries, "zero turns retries off")
}

func TestLoadCitationDefault(t *testing.T) {
	rec, err := loadCitation(types.ResolverConfig{})
	require.NoError(t, err)
	assert.NotEmpty(t, rec.ArticleTitle)
}

func TestLoadCitationMissingFile(t *testing.T) {
	_, err := loadCitation(types.ResolverConfig{MetadataFile: filepath.Join(t.TempDir(), "nope.json")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "reading metadata")
}
