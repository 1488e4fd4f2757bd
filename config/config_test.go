package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/plus3/okit/config"
	"github.com/plus3/okit/framelog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.Equal(t, time.Second/60, cfg.Loop.TickRate)

	format, err := cfg.Log.Format()
	require.NoError(t, err)
	assert.Equal(t, framelog.DefaultFormat(), format)
}

func TestLoad(t *testing.T) {
	t.Run("overrides defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "okit.toml")
		data := `
[logging]
level = "debug"
format = "json"

[log]
csv = true
blank_between_frames = true
topic_width = 12

[loop]
tick_rate = "50ms"
`
		require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

		cfg, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.Logging.Level)
		assert.Equal(t, 50*time.Millisecond, cfg.Loop.TickRate)
		assert.Equal(t, 1280, cfg.Debug.WindowWidth)

		format, err := cfg.Log.Format()
		require.NoError(t, err)
		assert.Equal(t, framelog.FormatTabular, format.Mode)
		assert.True(t, format.BlankBetweenFrames)
		assert.False(t, format.BlankBetweenEntries)
		assert.Equal(t, 12, format.TopicWidth)
		assert.Equal(t, framelog.DefaultFormat().FunctionWidth, format.FunctionWidth)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := config.Load(filepath.Join(t.TempDir(), "missing.toml"))
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("invalid toml", func(t *testing.T) {
		_, err := config.Parse([]byte("[log\ncsv = true"))
		assert.Error(t, err)
	})

	t.Run("conflicting layouts", func(t *testing.T) {
		_, err := config.Parse([]byte("[log]\ncsv = true\nsecond_line = true\n"))
		assert.ErrorIs(t, err, config.ErrConflictingFormat)
	})

	t.Run("unknown halt mode", func(t *testing.T) {
		_, err := config.Parse([]byte("[log]\nhalt = \"sleep\"\n"))
		assert.ErrorIs(t, err, config.ErrUnknownHalt)
	})
}

func TestLogConfigFormat(t *testing.T) {
	t.Run("second line", func(t *testing.T) {
		format, err := config.LogConfig{SecondLine: true}.Format()
		require.NoError(t, err)
		assert.Equal(t, framelog.FormatSecondLine, format.Mode)
	})

	t.Run("custom time layout", func(t *testing.T) {
		format, err := config.LogConfig{TimeLayout: "15:04"}.Format()
		require.NoError(t, err)
		assert.Equal(t, "15:04", format.TimeLayout)
	})
}

func TestHaltPolicy(t *testing.T) {
	policy, err := config.LogConfig{Halt: "panic"}.HaltPolicy(zap.NewNop())
	require.NoError(t, err)
	assert.Panics(t, func() { policy.Halt("Game", framelog.Entry{}) })

	policy, err = config.LogConfig{}.HaltPolicy(zap.NewNop())
	require.NoError(t, err)
	assert.NotNil(t, policy)
}

func TestHubOptions(t *testing.T) {
	cfg, err := config.Parse([]byte("[log]\nsecond_line = true\nhalt = \"panic\"\n"))
	require.NoError(t, err)

	opts, err := cfg.HubOptions(zap.NewNop())
	require.NoError(t, err)

	hub := framelog.NewHub(append(opts, framelog.WithConsole(framelog.Discard))...)
	defer hub.Close()

	assert.Equal(t, framelog.FormatSecondLine, hub.Format().Mode)
	l := hub.NewLog("Game", "", framelog.HaltOnNewEntry())
	assert.Panics(t, func() { l.Add("stop") })
}

func TestLoggingConfigBuild(t *testing.T) {
	for _, format := range []string{"console", "json"} {
		t.Run(format, func(t *testing.T) {
			logger, err := config.LoggingConfig{Level: "warn", Format: format}.Build()
			require.NoError(t, err)
			assert.False(t, logger.Core().Enabled(zap.InfoLevel))
			assert.True(t, logger.Core().Enabled(zap.WarnLevel))
		})
	}

	t.Run("unknown level falls back to info", func(t *testing.T) {
		logger, err := config.LoggingConfig{Level: "loud"}.Build()
		require.NoError(t, err)
		assert.True(t, logger.Core().Enabled(zap.InfoLevel))
		assert.False(t, logger.Core().Enabled(zap.DebugLevel))
	})
}
