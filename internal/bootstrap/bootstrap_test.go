package bootstrap

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/educompact/school-records/internal/config"
)

func TestBuildDependenciesUsesRelativeUploadPaths(t *testing.T) {
	cfg := &config.Config{}
	cfg.Server.Port = "9090"
	cfg.Server.StoragePath = t.TempDir()
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.AccessTokenExpiration = "1h"

	deps, err := BuildDependencies(cfg, nil, zerolog.Nop())
	require.NoError(t, err)

	// Stored paths carry no host, so a path-only value must resolve against
	// the storage root regardless of the configured port.
	target := filepath.Join(cfg.Server.StoragePath, "students", "photo.jpg")
	require.NoError(t, os.MkdirAll(filepath.Dir(target), 0o755))
	require.NoError(t, os.WriteFile(target, []byte("img"), 0o644))

	require.NoError(t, deps.FileStorage.DeleteFile("/uploads/students/photo.jpg"))
	_, statErr := os.Stat(target)
	assert.True(t, os.IsNotExist(statErr))
}
