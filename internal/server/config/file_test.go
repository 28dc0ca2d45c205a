package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestParseFile_NoFlag(t *testing.T) {
	var c Config
	c.LoadDefaults()
	before := c

	require.NoError(t, parseFile(&c, []string{"-a", ":1"}))
	assert.Equal(t, before.EndpointAddrGRPC, c.EndpointAddrGRPC)
}

func TestParseFile_JSON(t *testing.T) {
	path := writeFile(t, "cfg.json", `{
		"database_dsn": "postgres://x",
		"access_token_validity_duration": "5m",
		"refresh_token_validity_duration": 7200000000000,
		"strict_visibility": false,
		"public_delete_admins": ["root"]
	}`)

	var c Config
	c.LoadDefaults()
	require.NoError(t, parseFile(&c, []string{"-config", path}))

	assert.Equal(t, "postgres://x", c.DatabaseDSN)
	assert.Equal(t, 5*time.Minute, c.AccessTokenValidityDuration)
	assert.Equal(t, 2*time.Hour, c.RefreshTokenValidityDuration)
	assert.False(t, c.StrictVisibility)
	assert.Equal(t, []string{"root"}, c.PublicDeleteAdmins)
	// untouched keys keep defaults
	assert.Equal(t, ":50051", c.EndpointAddrGRPC)
}

func TestParseFile_YAMLExpandsEnv(t *testing.T) {
	t.Setenv("TEST_GOPHDROP_SECRET", "from-env")
	path := writeFile(t, "cfg.yaml", `
secret_key: ${TEST_GOPHDROP_SECRET}
storage_backend: minio
minio_endpoint: "minio:9000"
minio_use_ssl: true
max_upload_bytes: 2048
`)

	var c Config
	c.LoadDefaults()
	require.NoError(t, parseFile(&c, []string{"-c", path}))

	assert.Equal(t, "from-env", c.SecretKey)
	assert.Equal(t, BackendMinio, c.StorageBackend)
	assert.Equal(t, "minio:9000", c.MinioEndpoint)
	assert.True(t, c.MinioUseSSL)
	assert.Equal(t, int64(2048), c.MaxUploadBytes)
}

func TestParseFile_Malformed(t *testing.T) {
	path := writeFile(t, "cfg.json", `{"database_dsn": `)

	var c Config
	err := parseFile(&c, []string{"-c", path})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode config file")
}
