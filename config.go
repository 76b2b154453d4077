package ace

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/pelletier/go-toml/v2"

	"github.com/grindlemire/go-ace/internal/debug"
	"github.com/grindlemire/go-ace/internal/gesture"
)

// Duration is a time.Duration written as a string such as "500ms" in
// config files.
type Duration struct {
	time.Duration
}

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return fmt.Errorf("parse duration %q: %w", b, err)
	}
	d.Duration = v
	return nil
}

// MarshalText formats the duration as a Go duration string.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Config is the file form of the pipeline settings.
type Config struct {
	FrameRate         int      `toml:"frame_rate"`
	TaskQueueSize     int      `toml:"task_queue_size"`
	RootWidth         float32  `toml:"root_width"`
	RootHeight        float32  `toml:"root_height"`
	LogLevel          string   `toml:"log_level"`
	DebugLogPath      string   `toml:"debug_log_path"`
	TouchSlop         float32  `toml:"touch_slop"`
	LongPressDuration Duration `toml:"long_press_duration"`
	SwipeDeleteRatio  float32  `toml:"swipe_delete_ratio"`
}

// DefaultConfig returns the settings used when no file is given.
func DefaultConfig() Config {
	return Config{
		FrameRate:         60,
		TaskQueueSize:     256,
		RootWidth:         1080,
		RootHeight:        2244,
		LogLevel:          "warn",
		TouchSlop:         gesture.DefaultTouchSlop,
		LongPressDuration: Duration{gesture.DefaultLongPressDuration},
		SwipeDeleteRatio:  0.5,
	}
}

// LoadConfig reads a TOML file over DefaultConfig. Keys the file omits keep
// their defaults; unknown keys are an error.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	cfg, err := ParseConfig(data)
	if err != nil {
		return Config{}, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// ParseConfig decodes TOML data over DefaultConfig.
func ParseConfig(data []byte) (Config, error) {
	cfg := DefaultConfig()
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first setting out of range.
func (c Config) Validate() error {
	if c.TaskQueueSize < 1 {
		return fmt.Errorf("task_queue_size must be at least 1")
	}
	if _, err := debug.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	return nil
}

// Options converts the settings into pipeline options. Range checks happen
// when the options are applied.
func (c Config) Options() []PipelineOption {
	return []PipelineOption{
		WithFrameRate(c.FrameRate),
		WithRootSize(c.RootWidth, c.RootHeight),
		WithTouchSlop(c.TouchSlop),
		WithLongPressDuration(c.LongPressDuration.Duration),
		WithSwipeDeleteRatio(c.SwipeDeleteRatio),
	}
}

// InitLogging points internal/debug at the configured sink and level.
func (c Config) InitLogging() error {
	level, err := debug.ParseLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("log_level: %w", err)
	}
	if c.DebugLogPath == "" {
		debug.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))
		return nil
	}
	return debug.Init(c.DebugLogPath, level)
}

// Encode writes the settings as TOML.
func (c Config) Encode() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return nil, fmt.Errorf("encode config: %w", err)
	}
	return buf.Bytes(), nil
}
