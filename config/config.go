// Package config provides configuration loading and access for the game.
package config

import (
	_ "embed"
	"fmt"
	"image/color"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:embed defaults.yaml
var defaultsYAML []byte

// Config holds all game configuration parameters.
type Config struct {
	Screen    ScreenConfig    `yaml:"screen"`
	Sim       SimConfig       `yaml:"sim"`
	Balloon   BalloonConfig   `yaml:"balloon"`
	Variants  VariantsConfig  `yaml:"variants"`
	Fart      FartConfig      `yaml:"fart"`
	Input     InputConfig     `yaml:"input"`
	Scoring   ScoringConfig   `yaml:"scoring"`
	Particles ParticlesConfig `yaml:"particles"`
	Wind      WindConfig      `yaml:"wind"`
	Battle    BattleConfig    `yaml:"battle"`
	Duel      DuelConfig      `yaml:"duel"`
	Audio     AudioConfig     `yaml:"audio"`
	Telemetry TelemetryConfig `yaml:"telemetry"`

	// Derived values computed after loading
	Derived DerivedConfig `yaml:"-"`
}

// ScreenConfig holds display settings.
type ScreenConfig struct {
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
	TargetFPS int    `yaml:"target_fps"`
	Title     string `yaml:"title"`
}

// SimConfig fixes the simulation tick. Every rate in this file is per tick.
type SimConfig struct {
	TickRate         int `yaml:"tick_rate"`           // Ticks per second
	MaxStepsPerFrame int `yaml:"max_steps_per_frame"` // Catch-up cap after a slow frame
}

// BalloonConfig holds balloon lifecycle parameters shared by all variants.
type BalloonConfig struct {
	InflateRate      float64  `yaml:"inflate_rate"`       // Radius gained per tick while held
	FartThreshold    float64  `yaml:"fart_threshold"`     // Release above this radius farts instead of popping
	HitMargin        float64  `yaml:"hit_margin"`         // Added to radius for touch hit-testing
	TargetCount      int      `yaml:"target_count"`       // Live balloons kept on screen
	BonusTargetCount int      `yaml:"bonus_target_count"` // Live balloons during the golden bonus
	SpawnMargin      float64  `yaml:"spawn_margin"`       // Distance from the edges for new balloons
	SpawnSpeed       float64  `yaml:"spawn_speed"`        // Initial velocity range is [-speed, speed]
	GoldenChance     float64  `yaml:"golden_chance"`      // Probability a spawn is golden
	Ghosts           bool     `yaml:"ghosts"`             // Over-inflated balloons escape as ghosts instead of popping
	GhostSpeed       float64  `yaml:"ghost_speed"`        // Escape velocity range for ghosts
	Palette          []string `yaml:"palette"`
	GoldenColor      string   `yaml:"golden_color"`
	GhostColor       string   `yaml:"ghost_color"`
}

// Variant holds the constants that differ between standard and pro play.
type Variant struct {
	SpawnRadius     float64 `yaml:"spawn_radius"`
	SpeedMultiplier float64 `yaml:"speed_multiplier"`
	PopLimit        float64 `yaml:"pop_limit"` // Held balloons pop (or escape) above this radius
}

// VariantsConfig holds the selectable variants.
type VariantsConfig struct {
	Standard Variant `yaml:"standard"`
	Pro      Variant `yaml:"pro"`
}

// FartConfig holds deflation parameters.
type FartConfig struct {
	DeflateRate     float64 `yaml:"deflate_rate"`
	Jitter          float64 `yaml:"jitter"`     // Velocity is re-rolled in [-jitter, jitter] each tick
	MaxTicks        int     `yaml:"max_ticks"`  // Fart ends once the counter exceeds this
	MinRadius       float64 `yaml:"min_radius"` // Fart ends once the radius drops below this
	HapticEvery     int     `yaml:"haptic_every"`
	HapticMs        int     `yaml:"haptic_ms"`
	HapticIntensity int     `yaml:"haptic_intensity"`
}

// InputConfig holds touch routing parameters.
type InputConfig struct {
	CornerSize          float64 `yaml:"corner_size"` // Side of the top-left menu zone in pixels
	LongPress           float64 `yaml:"long_press"`  // Seconds the corner must be held
	MenuHapticMs        int     `yaml:"menu_haptic_ms"`
	MenuHapticIntensity int     `yaml:"menu_haptic_intensity"`
}

// ComboLabels holds the celebratory texts per combo tier.
type ComboLabels struct {
	Double string `yaml:"double"`
	Triple string `yaml:"triple"`
	Mega   string `yaml:"mega"`
	Golden string `yaml:"golden"`
}

// ScoringConfig holds combo, streak and bonus parameters.
type ScoringConfig struct {
	ComboWindow        float64     `yaml:"combo_window"`  // Seconds between pops to keep a combo
	ComboDisplay       float64     `yaml:"combo_display"` // Seconds the combo label stays visible
	BPMWindow          float64     `yaml:"bpm_window"`    // Seconds of pop history counted for BPM
	ShakePerCombo      float64     `yaml:"shake_per_combo"`
	ShakeDecay         float64     `yaml:"shake_decay"`
	BonusDuration      float64     `yaml:"bonus_duration"` // Seconds of golden bonus
	MissResetsStreak   bool        `yaml:"miss_resets_streak"`
	PopHapticMs        int         `yaml:"pop_haptic_ms"`
	PopHapticIntensity int         `yaml:"pop_haptic_intensity"`
	Labels             ComboLabels `yaml:"labels"`
}

// ParticlesConfig holds particle burst parameters.
type ParticlesConfig struct {
	Max           int     `yaml:"max"`
	PopBurst      int     `yaml:"pop_burst"`
	PopSpeed      float64 `yaml:"pop_speed"`
	StinkBurst    int     `yaml:"stink_burst"`
	StinkSpeed    float64 `yaml:"stink_speed"`
	StinkAlpha    float64 `yaml:"stink_alpha"`
	StinkColor    string  `yaml:"stink_color"`
	ConfettiBurst int     `yaml:"confetti_burst"`
	RocketBurst   int     `yaml:"rocket_burst"`
}

// WindConfig holds ambient wind parameters.
type WindConfig struct {
	Strength  float64 `yaml:"strength"`  // Peak displacement per tick (0 = no wind)
	Frequency float64 `yaml:"frequency"` // Noise frequency per tick
}

// BattleConfig holds duel countdown parameters.
type BattleConfig struct {
	DefaultSeconds int `yaml:"default_seconds"`
	MaxSeconds     int `yaml:"max_seconds"`
	FlashTicks     int `yaml:"flash_ticks"`
}

// DuelConfig holds link parameters. Durations are in seconds.
type DuelConfig struct {
	Address           string  `yaml:"address"`
	ConnectTimeout    float64 `yaml:"connect_timeout"`
	WriteTimeout      float64 `yaml:"write_timeout"`
	HeartbeatInterval float64 `yaml:"heartbeat_interval"`
	SendQueue         int     `yaml:"send_queue"`
	MaxLineLength     int     `yaml:"max_line_length"`
}

// AudioConfig holds sound parameters.
type AudioConfig struct {
	Enabled       bool    `yaml:"enabled"`
	MaxStreams    int     `yaml:"max_streams"`
	InflateVolume float32 `yaml:"inflate_volume"`
	PopVolume     float32 `yaml:"pop_volume"`
	FartVolume    float32 `yaml:"fart_volume"`
	CustomPop     string  `yaml:"custom_pop"`  // Sound file used by the POP FX action
	CustomFart    string  `yaml:"custom_fart"` // Sound file used by the FART FX action
}

// TelemetryConfig holds telemetry parameters.
type TelemetryConfig struct {
	PerfWindow      int     `yaml:"perf_window"`
	PerfLogInterval float64 `yaml:"perf_log_interval"` // Seconds between perf logs (0 = off)
}

// DerivedConfig holds computed values derived from the loaded config.
type DerivedConfig struct {
	TickDuration    time.Duration
	LongPress       time.Duration
	ComboWindow     time.Duration
	ComboDisplay    time.Duration
	BPMWindow       time.Duration
	BonusDuration   time.Duration
	ConnectTimeout  time.Duration
	WriteTimeout    time.Duration
	Heartbeat       time.Duration
	ReadTimeout     time.Duration // Three missed heartbeats
	PerfLogInterval time.Duration
	Palette         []color.RGBA
	GoldenColor     color.RGBA
	GhostColor      color.RGBA
	StinkColor      color.RGBA
}

// Default returns the embedded defaults. It panics if they fail to parse,
// which can only happen if defaults.yaml is broken at build time.
func Default() *Config {
	cfg, err := Load("")
	if err != nil {
		panic(fmt.Sprintf("config: embedded defaults invalid: %v", err))
	}
	return cfg
}

// Load loads configuration from a YAML file, merging with embedded defaults.
// If path is empty, only embedded defaults are used.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal(defaultsYAML, cfg); err != nil {
		return nil, fmt.Errorf("parsing embedded defaults: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		// Unmarshal into same struct - only overwrites fields present in file
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	if err := cfg.computeDerived(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Variant returns the active variant constants.
func (c *Config) Variant(pro bool) Variant {
	if pro {
		return c.Variants.Pro
	}
	return c.Variants.Standard
}

func (c *Config) validate() error {
	if c.Sim.TickRate <= 0 {
		return fmt.Errorf("sim.tick_rate must be positive, got %d", c.Sim.TickRate)
	}
	if c.Sim.MaxStepsPerFrame <= 0 {
		c.Sim.MaxStepsPerFrame = 1
	}
	for name, v := range map[string]Variant{"standard": c.Variants.Standard, "pro": c.Variants.Pro} {
		if v.SpawnRadius <= 0 {
			return fmt.Errorf("variants.%s.spawn_radius must be positive", name)
		}
		if v.PopLimit <= v.SpawnRadius {
			return fmt.Errorf("variants.%s.pop_limit %.0f must exceed spawn_radius %.0f", name, v.PopLimit, v.SpawnRadius)
		}
	}
	if c.Balloon.InflateRate <= 0 {
		return fmt.Errorf("balloon.inflate_rate must be positive")
	}
	if c.Fart.DeflateRate <= 0 || c.Fart.MinRadius <= 0 {
		return fmt.Errorf("fart.deflate_rate and fart.min_radius must be positive")
	}
	if len(c.Balloon.Palette) == 0 {
		return fmt.Errorf("balloon.palette must not be empty")
	}
	if c.Battle.MaxSeconds <= 0 {
		c.Battle.MaxSeconds = 3600
	}
	return nil
}

// computeDerived calculates values derived from loaded config.
func (c *Config) computeDerived() error {
	d := &c.Derived
	d.TickDuration = time.Second / time.Duration(c.Sim.TickRate)
	d.LongPress = seconds(c.Input.LongPress)
	d.ComboWindow = seconds(c.Scoring.ComboWindow)
	d.ComboDisplay = seconds(c.Scoring.ComboDisplay)
	d.BPMWindow = seconds(c.Scoring.BPMWindow)
	d.BonusDuration = seconds(c.Scoring.BonusDuration)
	d.ConnectTimeout = seconds(c.Duel.ConnectTimeout)
	d.WriteTimeout = seconds(c.Duel.WriteTimeout)
	d.Heartbeat = seconds(c.Duel.HeartbeatInterval)
	d.ReadTimeout = 3 * d.Heartbeat
	d.PerfLogInterval = seconds(c.Telemetry.PerfLogInterval)

	d.Palette = d.Palette[:0]
	for _, hex := range c.Balloon.Palette {
		col, err := ParseHexColor(hex)
		if err != nil {
			return fmt.Errorf("parsing balloon.palette: %w", err)
		}
		d.Palette = append(d.Palette, col)
	}

	var err error
	if d.GoldenColor, err = ParseHexColor(c.Balloon.GoldenColor); err != nil {
		return fmt.Errorf("parsing balloon.golden_color: %w", err)
	}
	if d.GhostColor, err = ParseHexColor(c.Balloon.GhostColor); err != nil {
		return fmt.Errorf("parsing balloon.ghost_color: %w", err)
	}
	if d.StinkColor, err = ParseHexColor(c.Particles.StinkColor); err != nil {
		return fmt.Errorf("parsing particles.stink_color: %w", err)
	}
	return nil
}

func seconds(s float64) time.Duration {
	return time.Duration(s * float64(time.Second))
}

// ParseHexColor parses "#RRGGBB" or "#RRGGBBAA" into an opaque or translucent color.
func ParseHexColor(s string) (color.RGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 && len(hex) != 8 {
		return color.RGBA{}, fmt.Errorf("invalid color %q", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xFF
	}
	return color.RGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}

// WriteYAML writes the configuration to a YAML file.
func (c *Config) WriteYAML(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
