package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, DefaultMaxTraversalSteps, cfg.MaxTraversalSteps)
	assert.Equal(t, DefaultDefaultMaxHops, cfg.DefaultMaxHops)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"max_traversal_steps: 20\ndefault_max_hops: 5\n"), 0o644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 20, cfg.MaxTraversalSteps)
	assert.Equal(t, 5, cfg.DefaultMaxHops)
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("max_traversal_steps: 20\n"), 0o644))
	t.Setenv("NEBULA_MAX_TRAVERSAL_STEPS", "30")
	t.Setenv("NEBULA_DEFAULT_MAX_HOPS", "8")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, 30, cfg.MaxTraversalSteps)
	assert.Equal(t, 8, cfg.DefaultMaxHops)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("NEBULA_MAX_TRAVERSAL_STEPS", "50")

	cfg, err := LoadFromEnv()
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.MaxTraversalSteps)
	assert.Equal(t, DefaultDefaultMaxHops, cfg.DefaultMaxHops)
}

func TestBadEnvValue(t *testing.T) {
	t.Setenv("NEBULA_MAX_TRAVERSAL_STEPS", "plenty")

	_, err := LoadFromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NEBULA_MAX_TRAVERSAL_STEPS")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"zero steps", Config{MaxTraversalSteps: 0, DefaultMaxHops: 1}, "max_traversal_steps"},
		{"zero hops", Config{MaxTraversalSteps: 10, DefaultMaxHops: 0}, "default_max_hops"},
		{"hops beyond cap", Config{MaxTraversalSteps: 5, DefaultMaxHops: 6}, "exceeds"},
		{"ok", Config{MaxTraversalSteps: 10, DefaultMaxHops: 10}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestMissingFile(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}
