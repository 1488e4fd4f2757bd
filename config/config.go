package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/plus3/okit/framelog"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// ErrConflictingFormat is returned when more than one log layout is selected.
var ErrConflictingFormat = errors.New("config: csv and second_line are mutually exclusive")

// ErrUnknownHalt is returned for a halt mode other than "exit" or "panic".
var ErrUnknownHalt = errors.New("config: unknown halt mode")

type Config struct {
	Logging LoggingConfig `toml:"logging"`
	Log     LogConfig     `toml:"log"`
	Loop    LoopConfig    `toml:"loop"`
	Debug   DebugConfig   `toml:"debug"`
}

// LoggingConfig controls the zap logger used for diagnostics.
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// LogConfig controls how frame logs are rendered.
type LogConfig struct {
	CSV                 bool   `toml:"csv"`
	SecondLine          bool   `toml:"second_line"`
	BlankBetweenEntries bool   `toml:"blank_between_entries"`
	BlankBetweenFrames  bool   `toml:"blank_between_frames"`
	TitleWidth          int    `toml:"title_width"`
	TopicWidth          int    `toml:"topic_width"`
	FunctionWidth       int    `toml:"function_width"`
	TimeLayout          string `toml:"time_layout"`
	Halt                string `toml:"halt"` // "exit" or "panic"
}

type LoopConfig struct {
	TickRate time.Duration `toml:"tick_rate"`
}

type DebugConfig struct {
	UI           bool   `toml:"ui"`
	WindowTitle  string `toml:"window_title"`
	WindowWidth  int    `toml:"window_width"`
	WindowHeight int    `toml:"window_height"`
}

// Load reads a TOML file. Keys missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	return Parse(data)
}

// Parse decodes TOML data over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if _, err := cfg.Log.Format(); err != nil {
		return nil, err
	}
	if err := cfg.Log.validateHalt(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Default() *Config {
	format := framelog.DefaultFormat()
	return &Config{
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
		Log: LogConfig{
			TitleWidth:    format.TitleWidth,
			TopicWidth:    format.TopicWidth,
			FunctionWidth: format.FunctionWidth,
			TimeLayout:    format.TimeLayout,
			Halt:          "exit",
		},
		Loop: LoopConfig{
			TickRate: time.Second / 60,
		},
		Debug: DebugConfig{
			WindowTitle:  "okit",
			WindowWidth:  1280,
			WindowHeight: 720,
		},
	}
}

// Build constructs the zap logger described by c. Unknown levels fall back
// to info.
func (c LoggingConfig) Build() (*zap.Logger, error) {
	var level zapcore.Level
	if err := level.UnmarshalText([]byte(c.Level)); err != nil {
		level = zapcore.InfoLevel
	}

	var zapCfg zap.Config
	if c.Format == "json" {
		zapCfg = zap.NewProductionConfig()
	} else {
		zapCfg = zap.NewDevelopmentConfig()
		zapCfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		zapCfg.EncoderConfig.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05")
		zapCfg.EncoderConfig.ConsoleSeparator = "  "
		zapCfg.DisableCaller = true
		zapCfg.DisableStacktrace = true
	}
	zapCfg.Level = zap.NewAtomicLevelAt(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

// Format translates the layout settings into a framelog.Format.
// Zero widths and an empty time layout keep the framelog defaults.
func (c LogConfig) Format() (framelog.Format, error) {
	f := framelog.DefaultFormat()

	switch {
	case c.CSV && c.SecondLine:
		return f, ErrConflictingFormat
	case c.CSV:
		f.Mode = framelog.FormatTabular
	case c.SecondLine:
		f.Mode = framelog.FormatSecondLine
	}

	f.BlankBetweenEntries = c.BlankBetweenEntries
	f.BlankBetweenFrames = c.BlankBetweenFrames
	if c.TitleWidth > 0 {
		f.TitleWidth = c.TitleWidth
	}
	if c.TopicWidth > 0 {
		f.TopicWidth = c.TopicWidth
	}
	if c.FunctionWidth > 0 {
		f.FunctionWidth = c.FunctionWidth
	}
	if c.TimeLayout != "" {
		f.TimeLayout = c.TimeLayout
	}
	return f, nil
}

func (c LogConfig) validateHalt() error {
	switch c.Halt {
	case "", "exit", "panic":
		return nil
	}
	return fmt.Errorf("%w: %q", ErrUnknownHalt, c.Halt)
}

// HaltPolicy returns the policy selected by Halt.
func (c LogConfig) HaltPolicy(logger *zap.Logger) (framelog.HaltPolicy, error) {
	if err := c.validateHalt(); err != nil {
		return nil, err
	}
	if c.Halt == "panic" {
		return framelog.PanicOnHalt, nil
	}
	return framelog.ExitOnHalt(logger), nil
}

// HubOptions returns the framelog options for a hub configured by c,
// reporting diagnostics to logger.
func (c *Config) HubOptions(logger *zap.Logger) ([]framelog.HubOption, error) {
	format, err := c.Log.Format()
	if err != nil {
		return nil, err
	}
	halt, err := c.Log.HaltPolicy(logger)
	if err != nil {
		return nil, err
	}
	return []framelog.HubOption{
		framelog.WithFormat(format),
		framelog.WithHaltPolicy(halt),
		framelog.WithDiagnostics(logger),
	}, nil
}
