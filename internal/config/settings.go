package config

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	sim "github.com/tomz197/asteroids-sim/internal/loop/config"
)

// ErrInvalidSettings is wrapped by every validation failure.
var ErrInvalidSettings = errors.New("invalid settings")

// Environment variables read by ApplyEnv.
const (
	EnvConfig    = "SIM_CONFIG"
	EnvSeed      = "SIM_SEED"
	EnvTicks     = "SIM_TICKS"
	EnvRounds    = "SIM_ROUNDS"
	EnvSpawnRate = "SIM_SPAWN_RATE"
	EnvRealtime  = "SIM_REALTIME"
	EnvPilot     = "SIM_PILOT"
	EnvSplit     = "SIM_SPLIT"
	EnvLogLevel  = "LOG_LEVEL"
	EnvLogFormat = "LOG_FORMAT"
)

// Log formats.
const (
	FormatAuto   = "auto"
	FormatText   = "text"
	FormatJSON   = "json"
	FormatLogfmt = "logfmt"
)

var (
	logLevels  = []string{"debug", "info", "warn", "error"}
	logFormats = []string{FormatAuto, FormatText, FormatJSON, FormatLogfmt}
)

// Settings is everything a headless run needs.
type Settings struct {
	World      WorldSettings      `yaml:"world"`
	Simulation SimulationSettings `yaml:"simulation"`
	Log        LogSettings        `yaml:"log"`
}

// WorldSettings sizes the world and seeds it with asteroids.
type WorldSettings struct {
	Width     float64 `yaml:"width"`
	Height    float64 `yaml:"height"`
	Asteroids int     `yaml:"asteroids"`
}

// SimulationSettings controls spawning, pacing, rounds and the pilot.
type SimulationSettings struct {
	SpawnRate float64 `yaml:"spawn_rate"`
	Seed      uint64  `yaml:"seed"`
	Ticks     int     `yaml:"ticks"`
	Rounds    int     `yaml:"rounds"`
	TickRate  int     `yaml:"tick_rate"`
	Realtime  bool    `yaml:"realtime"`
	Split     bool    `yaml:"split_asteroids"`
	Pilot     string  `yaml:"pilot"`
}

// LogSettings selects the log level and output format.
type LogSettings struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// Default returns settings built from the simulation constants.
func Default() Settings {
	return Settings{
		World: WorldSettings{
			Width:     sim.WorldWidth,
			Height:    sim.WorldHeight,
			Asteroids: sim.InitialAsteroids,
		},
		Simulation: SimulationSettings{
			SpawnRate: sim.AsteroidSpawnRate,
			Seed:      1,
			Ticks:     sim.DefaultMaxTicks,
			Rounds:    sim.DefaultRounds,
			TickRate:  sim.TickRate,
			Split:     sim.SplitAsteroids,
			Pilot:     "idle",
		},
		Log: LogSettings{
			Level:  "info",
			Format: FormatAuto,
		},
	}
}

// Load reads a YAML settings file on top of the defaults. Keys missing from
// the file keep their default value and unknown keys are rejected.
func Load(path string) (Settings, error) {
	s := Default()
	f, err := os.Open(path)
	if err != nil {
		return s, fmt.Errorf("open settings: %w", err)
	}
	defer f.Close()

	if err := decode(f, &s); err != nil {
		return s, fmt.Errorf("parse %s: %w", path, err)
	}
	return s, nil
}

func decode(r io.Reader, s *Settings) error {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(s); err != nil && !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

// FromEnv loads the file named by SIM_CONFIG, if any, applies the other
// environment overrides and validates the result.
func FromEnv() (Settings, error) {
	s := Default()
	if path := GetEnv(EnvConfig, ""); path != "" {
		var err error
		if s, err = Load(path); err != nil {
			return s, err
		}
	}
	if err := s.ApplyEnv(); err != nil {
		return s, err
	}
	return s, s.Validate()
}

// ApplyEnv overrides fields whose environment variable is set.
func (s *Settings) ApplyEnv() error {
	var errs []error
	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	var err error
	sm := &s.Simulation
	sm.Seed, err = GetEnvUint64(EnvSeed, sm.Seed)
	collect(err)
	sm.Ticks, err = GetEnvInt(EnvTicks, sm.Ticks)
	collect(err)
	sm.Rounds, err = GetEnvInt(EnvRounds, sm.Rounds)
	collect(err)
	sm.SpawnRate, err = GetEnvFloat(EnvSpawnRate, sm.SpawnRate)
	collect(err)
	sm.Realtime, err = GetEnvBool(EnvRealtime, sm.Realtime)
	collect(err)
	sm.Split, err = GetEnvBool(EnvSplit, sm.Split)
	collect(err)
	sm.Pilot = GetEnv(EnvPilot, sm.Pilot)

	s.Log.Level = GetEnv(EnvLogLevel, s.Log.Level)
	s.Log.Format = GetEnv(EnvLogFormat, s.Log.Format)

	if len(errs) > 0 {
		return fmt.Errorf("environment: %w", errors.Join(errs...))
	}
	return nil
}

// Validate reports every problem with s at once.
func (s Settings) Validate() error {
	var errs []error
	bad := func(format string, args ...any) {
		errs = append(errs, fmt.Errorf("%w: "+format, append([]any{ErrInvalidSettings}, args...)...))
	}

	if !(s.World.Width > 0) || math.IsInf(s.World.Width, 0) {
		bad("world.width must be positive, got %v", s.World.Width)
	}
	if !(s.World.Height > 0) || math.IsInf(s.World.Height, 0) {
		bad("world.height must be positive, got %v", s.World.Height)
	}
	if s.World.Asteroids < 0 {
		bad("world.asteroids must not be negative, got %d", s.World.Asteroids)
	}
	if !(s.Simulation.SpawnRate >= 0 && s.Simulation.SpawnRate <= 1) {
		bad("simulation.spawn_rate must be within [0, 1], got %v", s.Simulation.SpawnRate)
	}
	if s.Simulation.Ticks < 0 {
		bad("simulation.ticks must not be negative, got %d", s.Simulation.Ticks)
	}
	if s.Simulation.Rounds < 1 {
		bad("simulation.rounds must be at least 1, got %d", s.Simulation.Rounds)
	}
	if s.Simulation.TickRate < 1 || s.Simulation.TickRate > sim.MaxTickRate {
		bad("simulation.tick_rate must be within [1, %d], got %d", sim.MaxTickRate, s.Simulation.TickRate)
	}
	if !slices.Contains(logLevels, strings.ToLower(s.Log.Level)) {
		bad("log.level must be one of %s, got %q", strings.Join(logLevels, ", "), s.Log.Level)
	}
	if !slices.Contains(logFormats, strings.ToLower(s.Log.Format)) {
		bad("log.format must be one of %s, got %q", strings.Join(logFormats, ", "), s.Log.Format)
	}
	return errors.Join(errs...)
}
