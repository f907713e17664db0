// Package loop owns the simulation state and the per-tick update, and drives
// it through rounds with a Runner.
package loop

import (
	"fmt"
	"math/rand/v2"
	"slices"
	"time"

	"github.com/tomz197/asteroids-sim/internal/loop/config"
	"github.com/tomz197/asteroids-sim/internal/object"
	"github.com/tomz197/asteroids-sim/internal/physics"
)

// collisionGridCellSize must be >= the largest collision distance
// (two large asteroids: 5.0 + 5.0).
const collisionGridCellSize = 2 * object.MaxAsteroidRadius

// Options configures a new World.
type Options struct {
	Bounds         object.Bounds
	SpawnRate      float64
	Seed           uint64
	SplitAsteroids bool
	Delta          time.Duration // Simulated time per tick
	Asteroids      int           // Asteroids placed on the edges at start
}

// DefaultOptions returns options built from the tuning constants.
func DefaultOptions() Options {
	return Options{
		Bounds:         object.Bounds{Width: config.WorldWidth, Height: config.WorldHeight},
		SpawnRate:      config.AsteroidSpawnRate,
		SplitAsteroids: config.SplitAsteroids,
		Delta:          config.TickTime,
		Asteroids:      config.InitialAsteroids,
	}
}

// World holds the complete simulation state. It is mutated only by Step and
// must not be shared between goroutines; readers use Snapshot.
type World struct {
	Ship      *object.Ship
	Bullets   []*object.Bullet
	Asteroids []*object.Asteroid
	Score     int
	SpawnRate float64
	GameOver  bool
	Tick      uint64
	Bounds    object.Bounds
	Delta     time.Duration

	split     bool
	spawner   *object.AsteroidSpawner
	rng       *rand.Rand
	nextID    uint32
	toSpawn   []object.Object // Objects to add after the current phase
	destroyed int             // Asteroids destroyed by bullets

	grid *physics.SpatialGrid
}

// NewWorld creates a world with a live ship at its centre, no bullets and
// opts.Asteroids asteroids on the edges.
func NewWorld(opts Options) *World {
	if opts.Delta <= 0 {
		opts.Delta = config.TickTime
	}
	w := &World{
		SpawnRate: opts.SpawnRate,
		Bounds:    opts.Bounds,
		Delta:     opts.Delta,
		split:     opts.SplitAsteroids,
		spawner:   object.NewAsteroidSpawner(opts.SpawnRate),
		rng:       rand.New(rand.NewPCG(opts.Seed, opts.Seed^0x9e3779b97f4a7c15)),
		grid:      physics.NewSpatialGrid(opts.Bounds.Width, opts.Bounds.Height, collisionGridCellSize),
	}
	w.SpawnRate = w.spawner.Rate
	w.Ship = object.NewShip(opts.Bounds.CenterX(), opts.Bounds.CenterY())
	for range opts.Asteroids {
		w.AddAsteroid(object.NewAsteroidAtEdge(w.rng, w.Bounds, object.RandomAsteroidSize(w.rng)))
	}
	return w
}

// Spawn queues an object to be added after the current update phase.
// Implements object.Spawner.
func (w *World) Spawn(obj object.Object) {
	w.toSpawn = append(w.toSpawn, obj)
}

// FlushSpawned moves all queued objects into their collections.
func (w *World) FlushSpawned() {
	for _, obj := range w.toSpawn {
		switch o := obj.(type) {
		case *object.Bullet:
			w.AddBullet(o)
		case *object.Asteroid:
			w.AddAsteroid(o)
		}
	}
	clear(w.toSpawn)
	w.toSpawn = w.toSpawn[:0]
}

// AddAsteroid inserts an asteroid immediately and assigns it an ID.
func (w *World) AddAsteroid(a *object.Asteroid) {
	w.nextID++
	a.ID = w.nextID
	w.Asteroids = append(w.Asteroids, a)
}

// AddBullet inserts a bullet immediately.
func (w *World) AddBullet(b *object.Bullet) {
	w.Bullets = append(w.Bullets, b)
}

// Rand returns the world's random source.
func (w *World) Rand() *rand.Rand {
	return w.rng
}

// Destroyed returns how many asteroids bullets have destroyed.
func (w *World) Destroyed() int {
	return w.destroyed
}

// Spawner returns the asteroid spawner.
func (w *World) Spawner() *object.AsteroidSpawner {
	return w.spawner
}

func (w *World) updateContext(c object.Controls) object.UpdateContext {
	ctx := object.UpdateContext{
		Delta:    w.Delta,
		Controls: c,
		Bounds:   w.Bounds,
		Spawner:  w,
		Rand:     w.rng,
	}
	if w.Ship != nil && w.Ship.Alive {
		ctx.Ship = w.Ship
	}
	return ctx
}

// Step advances the simulation by one tick using the given ship controls.
// After game over it does nothing.
func (w *World) Step(c object.Controls) error {
	if w.GameOver {
		return nil
	}
	ctx := w.updateContext(c)

	if _, err := w.spawner.Update(ctx); err != nil {
		return fmt.Errorf("tick %d: spawn: %w", w.Tick, err)
	}
	w.FlushSpawned()

	if w.Ship != nil {
		if _, err := w.Ship.Update(ctx); err != nil {
			return fmt.Errorf("tick %d: update ship: %w", w.Tick, err)
		}
	}
	w.FlushSpawned()

	var err error
	if w.Bullets, err = updateAll(ctx, w.Bullets); err != nil {
		return fmt.Errorf("tick %d: update bullets: %w", w.Tick, err)
	}
	if w.Asteroids, err = updateAll(ctx, w.Asteroids); err != nil {
		return fmt.Errorf("tick %d: update asteroids: %w", w.Tick, err)
	}

	w.checkCollisions()
	w.compact()
	w.FlushSpawned()

	w.Tick++
	return nil
}

// updateAll updates every object and drops those that ask for removal.
func updateAll[T object.Object](ctx object.UpdateContext, objs []T) ([]T, error) {
	kept := objs[:0] // reuse backing array
	for i, obj := range objs {
		remove, err := obj.Update(ctx)
		if err != nil {
			return append(kept, objs[i:]...), err
		}
		if !remove {
			kept = append(kept, obj)
		}
	}
	clear(objs[len(kept):])
	return kept, nil
}

// compact removes destroyed bullets and asteroids.
func (w *World) compact() {
	w.Bullets = slices.DeleteFunc(w.Bullets, (*object.Bullet).IsDestroyed)
	w.Asteroids = slices.DeleteFunc(w.Asteroids, (*object.Asteroid).IsDestroyed)
}
