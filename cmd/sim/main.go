package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/tomz197/asteroids-sim/internal/config"
	"github.com/tomz197/asteroids-sim/internal/logging"
	"github.com/tomz197/asteroids-sim/internal/loop"
	"github.com/tomz197/asteroids-sim/internal/object"
	"github.com/tomz197/asteroids-sim/internal/pilot"
)

// report is written to stdout as YAML when the run ends.
type report struct {
	Settings    config.Settings    `yaml:"settings"`
	Interrupted bool               `yaml:"interrupted,omitempty"`
	Rounds      []loop.RoundResult `yaml:"rounds"`
	BestScore   int                `yaml:"best_score"`
}

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "sim error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	settings, err := config.FromEnv()
	if err != nil {
		return err
	}

	logger, err := logging.New(os.Stderr, settings.Log.Level, settings.Log.Format)
	if err != nil {
		return err
	}

	p, err := pilot.New(settings.Simulation.Pilot)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	runner := loop.NewRunner(p, runnerOptions(settings, logger))

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for ev := range runner.Events() {
			logger.Debug("event", "type", ev.Type, "round", ev.Round, "tick", ev.Tick, "score", ev.Score)
		}
	}()

	start := time.Now()
	runErr := runner.Run(ctx)
	wg.Wait()

	interrupted := errors.Is(runErr, context.Canceled)
	if runErr != nil && !interrupted {
		return runErr
	}
	logger.Info("simulation finished", "elapsed", time.Since(start).Round(time.Millisecond), "interrupted", interrupted)

	rep := report{
		Settings:    settings,
		Interrupted: interrupted,
		Rounds:      runner.Results(),
	}
	for _, r := range rep.Rounds {
		rep.BestScore = max(rep.BestScore, r.Score)
	}

	enc := yaml.NewEncoder(os.Stdout)
	enc.SetIndent(2)
	if err := enc.Encode(rep); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return enc.Close()
}

func runnerOptions(s config.Settings, logger *log.Logger) loop.RunnerOptions {
	world := loop.DefaultOptions()
	world.Bounds = object.Bounds{Width: s.World.Width, Height: s.World.Height}
	world.Asteroids = s.World.Asteroids
	world.SpawnRate = s.Simulation.SpawnRate
	world.Seed = s.Simulation.Seed
	world.SplitAsteroids = s.Simulation.Split
	world.Delta = 0 // Derived from the tick rate by the runner.

	return loop.RunnerOptions{
		World:    world,
		Rounds:   s.Simulation.Rounds,
		MaxTicks: s.Simulation.Ticks,
		Realtime: s.Simulation.Realtime,
		TickRate: s.Simulation.TickRate,
		Logger:   logger,
	}
}
