package tetris

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseConfig(t *testing.T) {
	cfg, err := ParseConfig(`
return {
    config = { frame_rate = 30, show_ghost = false, seed = 42 },
    keys = { left = { "h", "ARROW_LEFT" }, right = "l", quit = { "q" } },
}`)
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.FrameRate)
	assert.False(t, cfg.ShowGhost)
	assert.Equal(t, int64(42), cfg.Seed)
	assert.Equal(t, map[string]Action{
		"h":          ActionLeft,
		"arrow_left": ActionLeft,
		"l":          ActionRight,
		"q":          ActionQuit,
	}, cfg.Keys)
}

func TestParseConfigFallbacks(t *testing.T) {
	tests := []struct {
		name   string
		script string
	}{
		{"no table returned", `local x = 1`},
		{"empty table", `return {}`},
		{"wrong types", `return { config = { frame_rate = "fast", show_ghost = 1 } }`},
		{"non-positive frame rate", `return { config = { frame_rate = 0 } }`},
	}

	defaults := DefaultConfig()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := ParseConfig(tt.script)
			require.NoError(t, err)
			assert.Equal(t, defaults, cfg)
		})
	}
}

func TestParseConfigSyntaxError(t *testing.T) {
	_, err := ParseConfig(`return {`)
	assert.Error(t, err)
}

func TestLoadConfig(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		assert.Equal(t, DefaultConfig(), LoadConfig("does-not-exist.lua"))
	})

	t.Run("shipped script", func(t *testing.T) {
		cfg := LoadConfig("tetris.lua")
		assert.Equal(t, DefaultConfig(), cfg, "shipped script mirrors the defaults")
	})
}
