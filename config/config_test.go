package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, ":8090", cfg.ListenAddr)
	assert.True(t, cfg.AllowClaimedIdentity)
	assert.Equal(t, 256, cfg.SendQueueSize)
	assert.Equal(t, 2*time.Hour, cfg.JWTTTL)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	yaml := []byte("listen_addr: \":9000\"\nallow_claimed_identity: false\nfanout_shards: 8\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "gateway.yaml"), yaml, 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.ListenAddr)
	assert.False(t, cfg.AllowClaimedIdentity)
	assert.Equal(t, 8, cfg.FanoutShards)
	// untouched keys keep their defaults
	assert.Equal(t, "HS256", cfg.JWTAlg)
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("GATEWAY_JWT_SECRET", "from-env")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.JWTSecret)
}
