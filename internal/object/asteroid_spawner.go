package object

import (
	"github.com/tomz197/asteroids-sim/internal/loop/config"
	"github.com/tomz197/asteroids-sim/internal/physics"
)

// AsteroidSpawner adds asteroids at the world edges. Every tick it runs one
// Bernoulli trial with probability Rate.
type AsteroidSpawner struct {
	Rate         float64 // Per-tick spawn probability in [0, 1]
	SafeDistance float64 // Minimum distance from the live ship
	trials       int
	spawned      int
}

// NewAsteroidSpawner creates a spawner with the given per-tick probability.
// The rate is clamped to [0, 1].
func NewAsteroidSpawner(rate float64) *AsteroidSpawner {
	return &AsteroidSpawner{
		Rate:         min(max(rate, 0), 1),
		SafeDistance: config.SpawnSafeDistance,
	}
}

// Update performs this tick's trial. The spawner is never removed.
func (s *AsteroidSpawner) Update(ctx UpdateContext) (bool, error) {
	s.trials++
	if s.Rate <= 0 || ctx.Spawner == nil || ctx.Rand.Float64() >= s.Rate {
		return false, nil
	}

	size := RandomAsteroidSize(ctx.Rand)
	a := NewAsteroidAtEdge(ctx.Rand, ctx.Bounds, size)
	for attempt := 1; attempt < config.SpawnMaxAttempts && s.tooClose(ctx, a); attempt++ {
		a = NewAsteroidAtEdge(ctx.Rand, ctx.Bounds, size)
	}

	ctx.Spawner.Spawn(a)
	s.spawned++
	return false, nil
}

// tooClose reports whether a would appear on top of the live ship.
func (s *AsteroidSpawner) tooClose(ctx UpdateContext, a *Asteroid) bool {
	ship := ctx.Ship
	if ship == nil || !ship.Alive || s.SafeDistance <= 0 {
		return false
	}
	d := s.SafeDistance + a.Radius + ship.Radius
	return physics.WrappedDistanceSquared(a.X, a.Y, ship.X, ship.Y, ctx.Bounds.Width, ctx.Bounds.Height) < d*d
}

// Trials returns how many Bernoulli trials have run.
func (s *AsteroidSpawner) Trials() int {
	return s.trials
}

// Spawned returns how many asteroids the spawner has created.
func (s *AsteroidSpawner) Spawned() int {
	return s.spawned
}

// Expected returns the mean number of spawns for the trials run so far.
func (s *AsteroidSpawner) Expected() float64 {
	return float64(s.trials) * s.Rate
}
