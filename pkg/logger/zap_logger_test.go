package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/amankumarsingh77/cube-phase-detector/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestInitLogger_WritesRotatedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cubephase.log")
	cfg := &config.Config{Logger: config.Logger{
		Encoding:          "json",
		Level:             "info",
		FilePath:          path,
		MaxSizeMB:         1,
		DisableStacktrace: true,
	}}
	log := NewApiLogger(cfg)
	log.InitLogger()

	log.Debugf("hidden %d", 1)
	log.Infof("stored %s", "solve.mp4")
	_ = log.sugarLogger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"MESSAGE":"stored solve.mp4"`)
	assert.NotContains(t, string(data), "hidden")
}

func TestGetLoggerLevel(t *testing.T) {
	l := &apiLogger{}
	assert.Equal(t, zapcore.WarnLevel, l.getLoggerLevel(&config.Config{Logger: config.Logger{Level: "warn"}}))
	assert.Equal(t, zapcore.DebugLevel, l.getLoggerLevel(&config.Config{Logger: config.Logger{Level: "loud"}}))
}

func TestNopLogger(t *testing.T) {
	log := NewNopLogger()
	log.Infof("nothing %s", "here")
	log.Errorf("nothing %s", "here")
}
