package main

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/lcsgo/blobstore"
	lcsminio "github.com/hupe1980/lcsgo/blobstore/minio"
	lcss3 "github.com/hupe1980/lcsgo/blobstore/s3"
)

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig([]byte(`
representation:
  attributes: 6
  classes: 2
compression: zstd
log_level: debug
storage:
  backend: local
  root: /tmp/lcs
`))
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.Representation.Attributes)
	assert.Equal(t, "zstd", cfg.Compression)
	assert.Equal(t, "/tmp/lcs", cfg.Storage.Root)

	level, err := cfg.level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelDebug, level)
}

func TestParseConfig_Defaults(t *testing.T) {
	cfg, err := ParseConfig([]byte("representation: {attributes: 3, classes: 2}\n"))
	require.NoError(t, err)

	assert.Equal(t, "local", cfg.Storage.Backend)
	assert.Equal(t, ".", cfg.Storage.Root)
	level, err := cfg.level()
	require.NoError(t, err)
	assert.Equal(t, slog.LevelWarn, level)
}

func TestParseConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		yaml string
	}{
		{"no attributes", "representation: {classes: 2}"},
		{"no classes", "representation: {attributes: 2, classes: 0}"},
		{"bad compression", "representation: {attributes: 2, classes: 2}\ncompression: brotli"},
		{"bad level", "representation: {attributes: 2, classes: 2}\nlog_level: loud"},
		{"bad backend", "representation: {attributes: 2, classes: 2}\nstorage: {backend: ftp}"},
		{"minio without endpoint", "representation: {attributes: 2, classes: 2}\nstorage: {backend: minio, bucket: b}"},
		{"s3 without bucket", "representation: {attributes: 2, classes: 2}\nstorage: {backend: s3}"},
		{"malformed", "representation: ["},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseConfig([]byte(tt.yaml))
			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOpenStore(t *testing.T) {
	ctx := context.Background()

	local := &Config{Storage: StorageConfig{Backend: "local", Root: t.TempDir()}}
	store, err := local.OpenStore(ctx)
	require.NoError(t, err)
	assert.IsType(t, &blobstore.LocalStore{}, store)

	mc := &Config{Storage: StorageConfig{Backend: "minio", Endpoint: "localhost:9000", Bucket: "b", AccessKey: "k", SecretKey: "s"}}
	store, err = mc.OpenStore(ctx)
	require.NoError(t, err)
	assert.IsType(t, &lcsminio.Store{}, store)

	t.Setenv("AWS_ACCESS_KEY_ID", "test")
	t.Setenv("AWS_SECRET_ACCESS_KEY", "test")
	t.Setenv("AWS_CONFIG_FILE", filepath.Join(t.TempDir(), "none"))
	t.Setenv("AWS_SHARED_CREDENTIALS_FILE", filepath.Join(t.TempDir(), "none"))

	sc := &Config{Storage: StorageConfig{Backend: "s3", Bucket: "b", Region: "eu-central-1", Endpoint: "http://localhost:4566"}}
	store, err = sc.OpenStore(ctx)
	require.NoError(t, err)
	assert.IsType(t, &lcss3.Store{}, store)

	sc.Storage.CommitTable = "lcs-commits"
	store, err = sc.OpenStore(ctx)
	require.NoError(t, err)
	assert.IsType(t, &lcss3.CommitStore{}, store)
}
