package ace

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grindlemire/go-ace/internal/debug"
)

func TestParseConfig(t *testing.T) {
	type tc struct {
		data    string
		want    func(*Config)
		wantErr string
	}

	tests := map[string]tc{
		"empty file keeps defaults": {
			data: "",
			want: func(*Config) {},
		},
		"overrides": {
			data: `
frame_rate = 120
root_width = 500.0
root_height = 800.0
log_level = "debug"
long_press_duration = "750ms"
swipe_delete_ratio = 0.3
`,
			want: func(c *Config) {
				c.FrameRate = 120
				c.RootWidth = 500
				c.RootHeight = 800
				c.LogLevel = "debug"
				c.LongPressDuration = Duration{750 * time.Millisecond}
				c.SwipeDeleteRatio = 0.3
			},
		},
		"unknown key": {
			data:    `frame_rat = 30`,
			wantErr: "decode config",
		},
		"bad duration": {
			data:    `long_press_duration = "soon"`,
			wantErr: "parse duration",
		},
		"bad log level": {
			data:    `log_level = "loud"`,
			wantErr: "log_level",
		},
		"empty task queue": {
			data:    `task_queue_size = 0`,
			wantErr: "task_queue_size",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := ParseConfig([]byte(tt.data))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			want := DefaultConfig()
			tt.want(&want)
			if diff := cmp.Diff(want, got); diff != "" {
				t.Errorf("ParseConfig() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestConfig_EncodeRoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.FrameRate = 90
	cfg.LongPressDuration = Duration{2 * time.Second}

	data, err := cfg.Encode()
	require.NoError(t, err)
	assert.Contains(t, string(data), "long_press_duration")
	assert.Contains(t, string(data), "2s")

	got, err := ParseConfig(data)
	require.NoError(t, err)
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadConfig(t *testing.T) {
	dir := t.TempDir()

	t.Run("missing file", func(t *testing.T) {
		_, err := LoadConfig(filepath.Join(dir, "nope.toml"))
		require.Error(t, err)
		assert.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("error names the file", func(t *testing.T) {
		path := filepath.Join(dir, "bad.toml")
		require.NoError(t, os.WriteFile(path, []byte("frame_rate = 'fast'"), 0o644))
		_, err := LoadConfig(path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), path)
	})

	t.Run("reads settings", func(t *testing.T) {
		path := filepath.Join(dir, "ace.toml")
		require.NoError(t, os.WriteFile(path, []byte("touch_slop = 12.0\n"), 0o644))
		cfg, err := LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, float32(12), cfg.TouchSlop)
	})
}

func TestConfig_Options(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RootWidth = 320
	cfg.RootHeight = 480
	cfg.SwipeDeleteRatio = 0.75
	cfg.LongPressDuration = Duration{time.Second}

	p, err := NewPipelineContext(NewManualExecutor(), nil, cfg.Options()...)
	require.NoError(t, err)
	assert.Equal(t, float32(0.75), p.SwipeDeleteRatio())
	assert.Equal(t, time.Second, p.LongPressDuration())
	assert.Equal(t, float32(320), p.rootSize.Width)
	assert.Equal(t, float32(480), p.rootSize.Height)

	cfg.FrameRate = 0
	_, err = NewPipelineContext(NewManualExecutor(), nil, cfg.Options()...)
	assert.Error(t, err, "ranges are checked when options apply")
}

func TestConfig_InitLogging(t *testing.T) {
	t.Cleanup(func() {
		_ = debug.Close()
		debug.Discard()
	})
	cfg := DefaultConfig()
	cfg.DebugLogPath = filepath.Join(t.TempDir(), "logs", "ace.log")
	cfg.LogLevel = "info"
	require.NoError(t, cfg.InitLogging())
	_, err := os.Stat(cfg.DebugLogPath)
	assert.NoError(t, err)

	cfg.LogLevel = "shout"
	assert.Error(t, cfg.InitLogging())
}
