// Package config loads the game tuning from an optional TOML file.
//
// Every field has a default reproducing the classic game, so a missing file
// or a partial file is fine. Values are checked by Validate, which reports
// all problems at once.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/hashicorp/go-multierror"

	"snake-arcade/game/types"
)

// ErrInvalid wraps every validation failure
var ErrInvalid = errors.New("invalid config")

// Duration decodes TOML strings such as "150ms"
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

type DifficultyConfig struct {
	Interval   Duration `toml:"interval"`
	Multiplier int      `toml:"multiplier"`
}

type FoodConfig struct {
	Points int    `toml:"points"`
	Color  string `toml:"color"`
}

type BoostConfig struct {
	Percent  int      `toml:"percent"`
	Duration Duration `toml:"duration"`
}

type ColorConfig struct {
	Head       string `toml:"head"`
	Body       string `toml:"body"`
	Background string `toml:"background"`
	Grid       string `toml:"grid"`
}

// Config is the full set of tunables
type Config struct {
	GridSize     int                         `toml:"grid_size"`
	Difficulty   string                      `toml:"difficulty"`
	DataDir      string                      `toml:"data_dir"`
	Frontend     string                      `toml:"frontend"`
	Mute         bool                        `toml:"mute"`
	MinInterval  Duration                    `toml:"min_interval"`
	Boost        BoostConfig                 `toml:"boost"`
	Difficulties map[string]DifficultyConfig `toml:"difficulties"`
	Foods        map[string]FoodConfig       `toml:"foods"`
	Colors       ColorConfig                 `toml:"colors"`
}

const (
	FrontendRaylib   = "raylib"
	FrontendTerminal = "terminal"
)

// Default returns the classic tuning
func Default() *Config {
	rules := types.DefaultRules()
	cfg := &Config{
		GridSize:    rules.GridSize,
		Difficulty:  types.Normal.String(),
		DataDir:     "data",
		Frontend:    FrontendRaylib,
		MinInterval: Duration{rules.MinInterval},
		Boost: BoostConfig{
			Percent:  rules.BoostPercent,
			Duration: Duration{rules.BoostDuration},
		},
		Difficulties: make(map[string]DifficultyConfig),
		Foods:        make(map[string]FoodConfig),
		Colors: ColorConfig{
			Head:       "#4CAF50",
			Body:       "#69F0AE",
			Background: "#1E1E1E",
			Grid:       "#2A2A2A",
		},
	}
	for _, d := range types.Difficulties {
		cfg.Difficulties[d.String()] = DifficultyConfig{
			Interval:   Duration{rules.Intervals[d]},
			Multiplier: rules.Multipliers[d],
		}
	}
	foodColors := map[types.FoodType]string{
		types.FoodNormal: "#FF5252",
		types.FoodBonus:  "#FFD700",
		types.FoodSpeed:  "#00FFFF",
	}
	for _, f := range types.FoodTypes {
		cfg.Foods[f.String()] = FoodConfig{Points: rules.Points[f], Color: foodColors[f]}
	}
	return cfg
}

// Load reads path over the defaults. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config %s: %w", path, err)
	}

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%w: unknown keys in %s: %s", ErrInvalid, path, strings.Join(keys, ", "))
	}
	return cfg, nil
}

// Validate checks every field and returns all problems found
func (c *Config) Validate() error {
	var result *multierror.Error
	fail := func(format string, args ...any) {
		result = multierror.Append(result, fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...))
	}

	if c.GridSize < 5 {
		fail("grid_size %d is below 5", c.GridSize)
	}
	if _, ok := types.ParseDifficulty(c.Difficulty); !ok {
		fail("unknown difficulty %q", c.Difficulty)
	}
	if c.Frontend != FrontendRaylib && c.Frontend != FrontendTerminal {
		fail("unknown frontend %q", c.Frontend)
	}
	if c.DataDir == "" {
		fail("data_dir is empty")
	}
	if c.MinInterval.Duration <= 0 {
		fail("min_interval must be positive")
	}
	if c.Boost.Percent <= 0 || c.Boost.Percent > 100 {
		fail("boost percent %d outside 1..100", c.Boost.Percent)
	}
	if c.Boost.Duration.Duration <= 0 {
		fail("boost duration must be positive")
	}

	for name, d := range c.Difficulties {
		if _, ok := types.ParseDifficulty(name); !ok {
			fail("unknown difficulty table %q", name)
			continue
		}
		if d.Interval.Duration < c.MinInterval.Duration {
			fail("difficulty %s interval %v below min_interval", name, d.Interval.Duration)
		}
		if d.Multiplier <= 0 {
			fail("difficulty %s multiplier must be positive", name)
		}
	}
	for _, d := range types.Difficulties {
		if _, ok := c.Difficulties[d.String()]; !ok {
			fail("difficulty %s missing", d)
		}
	}

	for name, f := range c.Foods {
		if _, ok := types.ParseFoodType(name); !ok {
			fail("unknown food %q", name)
			continue
		}
		if f.Points < 0 {
			fail("food %s points must not be negative", name)
		}
		if _, err := ParseColor(f.Color); err != nil {
			fail("food %s: %v", name, err)
		}
	}
	for _, f := range types.FoodTypes {
		if _, ok := c.Foods[f.String()]; !ok {
			fail("food %s missing", f)
		}
	}

	for name, value := range map[string]string{
		"head":       c.Colors.Head,
		"body":       c.Colors.Body,
		"background": c.Colors.Background,
		"grid":       c.Colors.Grid,
	} {
		if _, err := ParseColor(value); err != nil {
			fail("color %s: %v", name, err)
		}
	}

	return result.ErrorOrNil()
}

// Rules converts the config into the game's rule table. Call Validate first.
func (c *Config) Rules() types.Rules {
	rules := types.Rules{
		GridSize:      c.GridSize,
		Intervals:     make(map[types.Difficulty]time.Duration),
		Multipliers:   make(map[types.Difficulty]int),
		Points:        make(map[types.FoodType]int),
		BoostPercent:  c.Boost.Percent,
		MinInterval:   c.MinInterval.Duration,
		BoostDuration: c.Boost.Duration.Duration,
	}
	for name, d := range c.Difficulties {
		if diff, ok := types.ParseDifficulty(name); ok {
			rules.Intervals[diff] = d.Interval.Duration
			rules.Multipliers[diff] = d.Multiplier
		}
	}
	for name, f := range c.Foods {
		if ft, ok := types.ParseFoodType(name); ok {
			rules.Points[ft] = f.Points
		}
	}
	return rules
}

// StartDifficulty returns the configured starting difficulty, Normal if unset
func (c *Config) StartDifficulty() types.Difficulty {
	if d, ok := types.ParseDifficulty(c.Difficulty); ok {
		return d
	}
	return types.Normal
}

// Palette holds the resolved colours for drawing
type Palette struct {
	Head       types.Color
	Body       types.Color
	Background types.Color
	Grid       types.Color
	Food       map[types.FoodType]types.Color
}

// Palette resolves the colour strings. Unparseable entries fall back to white.
func (c *Config) Palette() Palette {
	p := Palette{
		Head:       mustColor(c.Colors.Head),
		Body:       mustColor(c.Colors.Body),
		Background: mustColor(c.Colors.Background),
		Grid:       mustColor(c.Colors.Grid),
		Food:       make(map[types.FoodType]types.Color),
	}
	for name, f := range c.Foods {
		if ft, ok := types.ParseFoodType(name); ok {
			p.Food[ft] = mustColor(f.Color)
		}
	}
	return p
}

func mustColor(s string) types.Color {
	c, err := ParseColor(s)
	if err != nil {
		return types.Color{R: 255, G: 255, B: 255}
	}
	return c
}

// ParseColor parses "#RRGGBB"
func ParseColor(s string) (types.Color, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return types.Color{}, fmt.Errorf("color %q is not #RRGGBB", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return types.Color{}, fmt.Errorf("color %q is not #RRGGBB", s)
	}
	return types.Color{
		R: uint8(v >> 16),
		G: uint8(v >> 8),
		B: uint8(v),
	}, nil
}
