package actor

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultSystemConfig(t *testing.T) {
	cfg := DefaultSystemConfig()
	require.NoError(t, cfg.Validate())
	assert.Greater(t, cfg.Workers, 0)
	assert.Equal(t, DuplicateReject, cfg.DuplicatePolicy)
	assert.Equal(t, 5*time.Second, cfg.AskTimeout)
}

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
name: bench
workers: 3
throughput: 16
ask_timeout: 250ms
duplicate_policy: replace
`))
	require.NoError(t, err)

	assert.Equal(t, "bench", cfg.Name)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, 16, cfg.Throughput)
	assert.Equal(t, 250*time.Millisecond, cfg.AskTimeout)
	assert.Equal(t, DuplicateReplace, cfg.DuplicatePolicy)

	// 未出现的字段保留默认值
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
}

func TestParseConfigInvalid(t *testing.T) {
	_, err := ParseConfig([]byte("duplicate_policy: sometimes\n"))
	assert.ErrorContains(t, err, "duplicate_policy")

	_, err = ParseConfig([]byte("workers: -1\n"))
	assert.ErrorContains(t, err, "workers")
}

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "actor.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: from-file\nworkers: 2\n"), 0o600))

	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.Name)
	assert.Equal(t, 2, cfg.Workers)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestNewSystemWithInvalidConfig(t *testing.T) {
	cfg := DefaultSystemConfig()
	cfg.Throughput = -1
	_, err := NewSystemWithConfig(cfg)
	assert.Error(t, err)
}
