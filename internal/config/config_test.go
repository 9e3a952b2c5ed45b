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
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, "text", cfg.Logging.Format)
	assert.Equal(t, 0xFFFE, cfg.Extraction.MaxStringBytes)
	assert.False(t, cfg.Extraction.VerifyPathToken)
	assert.Equal(t, 8, cfg.Batch.Concurrency)
	require.NoError(t, cfg.Validate())
}

func TestLoadFromBytes(t *testing.T) {
	cfg, err := LoadFromBytes([]byte(`
logging:
  level: debug
  format: json
extraction:
  max_string_bytes: 4096
  verify_path_token: true
batch:
  concurrency: 2
`))
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, 4096, cfg.Extraction.MaxStringBytes)
	assert.True(t, cfg.Extraction.VerifyPathToken)
	assert.Equal(t, 2, cfg.Batch.Concurrency)
}

func TestLoadFromBytesPartialKeepsDefaults(t *testing.T) {
	cfg, err := LoadFromBytes([]byte("extraction:\n  verify_path_token: true\n"))
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, 0xFFFE, cfg.Extraction.MaxStringBytes)
	assert.True(t, cfg.Extraction.VerifyPathToken)
}

func TestLoadFromBytesInvalid(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr string
	}{
		{"bad level", "logging:\n  level: loud\n", "logging.level"},
		{"bad format", "logging:\n  format: xml\n", "logging.format"},
		{"tiny buffer", "extraction:\n  max_string_bytes: 1\n", "extraction.max_string_bytes"},
		{"huge buffer", "extraction:\n  max_string_bytes: 70000\n", "extraction.max_string_bytes"},
		{"too many workers", "batch:\n  concurrency: 1000\n", "batch.concurrency"},
		{"negative workers", "batch:\n  concurrency: -1\n", "batch.concurrency"},
		{"not yaml", "logging: [", "parse config"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromBytes([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadAppliesEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "procargs.yaml")
	require.NoError(t, os.WriteFile(path, []byte("batch:\n  concurrency: 4\n"), 0o600))

	t.Setenv("PROCARGS_LOG_LEVEL", "DEBUG")
	t.Setenv("PROCARGS_CONCURRENCY", "16")
	t.Setenv("PROCARGS_VERIFY_PATH_TOKEN", "true")
	t.Setenv("PROCARGS_MAX_STRING_BYTES", "1024")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 16, cfg.Batch.Concurrency)
	assert.True(t, cfg.Extraction.VerifyPathToken)
	assert.Equal(t, 1024, cfg.Extraction.MaxStringBytes)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestFromEnvRejectsBadValues(t *testing.T) {
	t.Setenv("PROCARGS_CONCURRENCY", "many")
	_, err := FromEnv()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PROCARGS_CONCURRENCY")
}

func TestFromEnv(t *testing.T) {
	t.Setenv("PROCARGS_LOG_FORMAT", "json")
	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, "json", cfg.Logging.Format)
}
