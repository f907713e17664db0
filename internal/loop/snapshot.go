package loop

import (
	"time"

	"github.com/kamstrup/intmap"

	"github.com/tomz197/asteroids-sim/internal/object"
)

// ShipView is a read-only copy of the ship.
type ShipView struct {
	X, Y   float64
	VX, VY float64
	Angle  float64
	Radius float64
	Alive  bool
}

// BulletView is a read-only copy of a bullet.
type BulletView struct {
	X, Y   float64
	VX, VY float64
}

// AsteroidView is a read-only copy of an asteroid.
type AsteroidView struct {
	ID     uint32
	X, Y   float64
	VX, VY float64
	Radius float64
	Size   object.AsteroidSize
}

// Snapshot is an immutable copy of the world taken between ticks.
// It is safe to read from any goroutine.
type Snapshot struct {
	Tick      uint64
	Score     int
	GameOver  bool
	Bounds    object.Bounds
	Delta     time.Duration // Simulated time per tick
	SpawnRate float64
	Trials    int
	Spawned   int
	Ship      ShipView
	Bullets   []BulletView
	Asteroids []AsteroidView

	byID *intmap.Map[uint32, int] // Asteroid ID -> index in Asteroids
}

// Snapshot copies the current state.
func (w *World) Snapshot() *Snapshot {
	s := &Snapshot{
		Tick:      w.Tick,
		Score:     w.Score,
		GameOver:  w.GameOver,
		Bounds:    w.Bounds,
		Delta:     w.Delta,
		SpawnRate: w.SpawnRate,
		Trials:    w.spawner.Trials(),
		Spawned:   w.spawner.Spawned(),
		Bullets:   make([]BulletView, len(w.Bullets)),
		Asteroids: make([]AsteroidView, len(w.Asteroids)),
		byID:      intmap.New[uint32, int](max(len(w.Asteroids), 8)),
	}
	if sh := w.Ship; sh != nil {
		s.Ship = ShipView{
			X: sh.X, Y: sh.Y,
			VX: sh.VX, VY: sh.VY,
			Angle:  sh.Angle,
			Radius: sh.Radius,
			Alive:  sh.Alive,
		}
	}
	for i, b := range w.Bullets {
		s.Bullets[i] = BulletView{X: b.X, Y: b.Y, VX: b.VX, VY: b.VY}
	}
	for i, a := range w.Asteroids {
		s.Asteroids[i] = AsteroidView{
			ID: a.ID,
			X:  a.X, Y: a.Y,
			VX: a.VX, VY: a.VY,
			Radius: a.Radius,
			Size:   a.Size,
		}
		s.byID.Put(a.ID, i)
	}
	return s
}

// Asteroid looks up a live asteroid by ID.
func (s *Snapshot) Asteroid(id uint32) (AsteroidView, bool) {
	if s.byID == nil {
		return AsteroidView{}, false
	}
	i, ok := s.byID.Get(id)
	if !ok {
		return AsteroidView{}, false
	}
	return s.Asteroids[i], true
}
