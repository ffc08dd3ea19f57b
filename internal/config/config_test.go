package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_RepositoryFile(t *testing.T) {
	v, err := LoadConfig("../../config.yml")
	require.NoError(t, err)
	cfg, err := ParseConfig(v)
	require.NoError(t, err)

	assert.Equal(t, ":5001", cfg.Server.Port)
	assert.Equal(t, "fs", cfg.Storage.Driver)
	assert.Equal(t, 112, cfg.Media.FrameSize)
	assert.Equal(t, 16, cfg.Clips.FramesPerClip)
	assert.Equal(t, 4, cfg.Clips.Stride)
	assert.Equal(t, 5, cfg.Model.BreakerFailures)
	assert.NoError(t, validator.New().StructCtx(context.Background(), cfg))
}

func TestLoadConfig_DefaultsAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte("storage:\n  dataDir: /srv/cube\n"), 0o644))
	t.Setenv("CLIPS_STRIDE", "8")

	v, err := LoadConfig(path)
	require.NoError(t, err)
	cfg, err := ParseConfig(v)
	require.NoError(t, err)

	assert.Equal(t, "/srv/cube", cfg.Storage.DataDir)
	assert.Equal(t, "fs", cfg.Storage.LabelDriver)
	assert.Equal(t, 16, cfg.Clips.FramesPerClip)
	assert.Equal(t, 8, cfg.Clips.Stride)
	assert.Equal(t, "ffmpeg", cfg.Media.FFmpegPath)
}

func TestValidation_RejectsUnknownDriver(t *testing.T) {
	v, err := LoadConfig("../../config.yml")
	require.NoError(t, err)
	cfg, err := ParseConfig(v)
	require.NoError(t, err)

	cfg.Storage.Driver = "ftp"
	assert.Error(t, validator.New().Struct(cfg))
}

func TestLoadConfig_MissingFile(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml"))
	assert.Error(t, err)
}
