package tetris

import (
	"log"
	"os"
	"strings"

	lua "github.com/yuin/gopher-lua"
)

const configPath = "games/tetris/tetris.lua"

// Config holds terminal driver settings loaded from the Lua script.
type Config struct {
	FrameRate int
	ShowGhost bool
	Seed      int64
	Keys      map[string]Action // key name -> action
}

// DefaultConfig returns the settings used when no script is available.
func DefaultConfig() *Config {
	return &Config{
		FrameRate: 60,
		ShowGhost: true,
		Seed:      0,
		Keys: map[string]Action{
			"a":           ActionLeft,
			"arrow_left":  ActionLeft,
			"d":           ActionRight,
			"arrow_right": ActionRight,
			"s":           ActionDown,
			"arrow_down":  ActionDown,
			"w":           ActionRotate,
			"arrow_up":    ActionRotate,
			"space":       ActionDrop,
			"p":           ActionPause,
			"r":           ActionReset,
			"q":           ActionQuit,
			"esc":         ActionQuit,
		},
	}
}

// LoadConfig reads settings from the Lua script at path. Any problem falls
// back to the defaults.
func LoadConfig(path string) *Config {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		log.Printf("[INFO] %s not found, using default config", path)
		return DefaultConfig()
	}

	L := lua.NewState()
	defer L.Close()

	if err := L.DoFile(path); err != nil {
		log.Printf("[WARN] Error loading %s: %v. Using default config.", path, err)
		return DefaultConfig()
	}
	return configFromState(L)
}

// ParseConfig evaluates a Lua script held in memory.
func ParseConfig(script string) (*Config, error) {
	L := lua.NewState()
	defer L.Close()

	if err := L.DoString(script); err != nil {
		return nil, err
	}
	return configFromState(L), nil
}

// configFromState reads the table returned by the script, which is at the
// top of the stack.
func configFromState(L *lua.LState) *Config {
	cfg := DefaultConfig()

	root, ok := L.Get(-1).(*lua.LTable)
	if !ok {
		log.Println("[WARN] tetris script did not return a table, using default config")
		return cfg
	}

	if tbl, ok := root.RawGetString("config").(*lua.LTable); ok {
		cfg.FrameRate = getLuaInt(tbl, "frame_rate", cfg.FrameRate)
		cfg.ShowGhost = getLuaBool(tbl, "show_ghost", cfg.ShowGhost)
		cfg.Seed = int64(getLuaInt(tbl, "seed", int(cfg.Seed)))
	}
	if cfg.FrameRate <= 0 {
		cfg.FrameRate = DefaultConfig().FrameRate
	}

	// The keys table replaces the default bindings entirely: { left = {"a", "arrow_left"}, ... }
	if keysTbl, ok := root.RawGetString("keys").(*lua.LTable); ok {
		keys := make(map[string]Action)
		keysTbl.ForEach(func(actionVal, namesVal lua.LValue) {
			action := Action(actionVal.String())
			switch names := namesVal.(type) {
			case lua.LString:
				keys[strings.ToLower(string(names))] = action
			case *lua.LTable:
				names.ForEach(func(_, nameVal lua.LValue) {
					if name, ok := nameVal.(lua.LString); ok {
						keys[strings.ToLower(string(name))] = action
					}
				})
			}
		})
		if len(keys) > 0 {
			cfg.Keys = keys
		}
	}

	return cfg
}

// Helper functions to safely get values from a Lua table
func getLuaInt(tbl *lua.LTable, key string, fallback int) int {
	val := tbl.RawGetString(key)
	if num, ok := val.(lua.LNumber); ok {
		return int(num)
	}
	return fallback
}

func getLuaBool(tbl *lua.LTable, key string, fallback bool) bool {
	val := tbl.RawGetString(key)
	if b, ok := val.(lua.LBool); ok {
		return bool(b)
	}
	return fallback
}
