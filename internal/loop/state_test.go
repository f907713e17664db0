package loop_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/asteroids-sim/internal/loop"
	"github.com/tomz197/asteroids-sim/internal/object"
)

// quietWorld returns a world that never spawns on its own.
func quietWorld(t *testing.T) *loop.World {
	t.Helper()
	opts := loop.DefaultOptions()
	opts.SpawnRate = 0
	opts.Seed = 1
	return loop.NewWorld(opts)
}

// still places a motionless asteroid.
func still(w *loop.World, x, y float64, size object.AsteroidSize) *object.Asteroid {
	a := object.NewAsteroid(w.Rand(), x, y, size, 0)
	a.VX, a.VY, a.RotationSpeed = 0, 0, 0
	w.AddAsteroid(a)
	return a
}

// parked places a motionless bullet.
func parked(w *loop.World, x, y float64) *object.Bullet {
	b := object.NewBullet(x, y, 0, 0, 0)
	b.VX, b.VY = 0, 0
	w.AddBullet(b)
	return b
}

func TestNewWorldStartsPlaying(t *testing.T) {
	w := quietWorld(t)

	require.NotNil(t, w.Ship)
	assert.True(t, w.Ship.Alive)
	assert.Zero(t, w.Score)
	assert.False(t, w.GameOver)
	assert.Empty(t, w.Bullets)
	assert.Empty(t, w.Asteroids)
	assert.InDelta(t, 60.0, w.Ship.X, 1e-9)
	assert.InDelta(t, 40.0, w.Ship.Y, 1e-9)
}

func TestDefaultSpawnRate(t *testing.T) {
	w := loop.NewWorld(loop.DefaultOptions())
	assert.InDelta(t, 0.015, w.SpawnRate, 1e-12)
}

func TestBulletAsteroidCollisionScores(t *testing.T) {
	w := quietWorld(t)
	still(w, 20, 20, object.AsteroidSmall)
	parked(w, 20, 20)

	require.NoError(t, w.Step(object.Controls{}))

	assert.Equal(t, 1, w.Score)
	assert.Empty(t, w.Asteroids)
	assert.Empty(t, w.Bullets)
	assert.False(t, w.GameOver)
	assert.Equal(t, 1, w.Destroyed())
	assert.Equal(t, uint64(1), w.Tick)
}

func TestBulletHitsAcrossSeam(t *testing.T) {
	w := quietWorld(t)
	still(w, 119.5, 20, object.AsteroidSmall)
	parked(w, 0.5, 20)

	require.NoError(t, w.Step(object.Controls{}))
	assert.Equal(t, 1, w.Score)
}

func TestOneBulletDestroysOneAsteroid(t *testing.T) {
	w := quietWorld(t)
	still(w, 20, 20, object.AsteroidSmall)
	still(w, 20.5, 20, object.AsteroidSmall)
	parked(w, 20.2, 20)

	require.NoError(t, w.Step(object.Controls{}))
	assert.Equal(t, 1, w.Score)
	assert.Len(t, w.Asteroids, 1)
	assert.Empty(t, w.Bullets)
}

func TestShipShootsAsteroid(t *testing.T) {
	w := quietWorld(t)
	// Ship sits at (60, 40) pointing up.
	still(w, 60, 15, object.AsteroidLarge)

	for range 120 {
		require.NoError(t, w.Step(object.Controls{Fire: true}))
		if w.Score > 0 {
			break
		}
	}
	assert.Equal(t, 1, w.Score)
	assert.False(t, w.GameOver)
	assert.Equal(t, 0, len(w.Asteroids))
}

func TestShipAsteroidCollisionEndsGame(t *testing.T) {
	w := quietWorld(t)
	still(w, w.Ship.X+1, w.Ship.Y, object.AsteroidMedium)

	require.NoError(t, w.Step(object.Controls{}))

	assert.True(t, w.GameOver)
	assert.False(t, w.Ship.Alive)
	assert.Empty(t, w.Asteroids, "the asteroid that hit the ship is destroyed")
	assert.Zero(t, w.Score, "crashing does not score")
}

func TestGameOverHaltsSimulation(t *testing.T) {
	w := quietWorld(t)
	still(w, w.Ship.X, w.Ship.Y, object.AsteroidSmall)
	require.NoError(t, w.Step(object.Controls{}))
	require.True(t, w.GameOver)

	a := still(w, 10, 10, object.AsteroidSmall)
	a.VX = 10
	tick, x := w.Tick, a.X

	for range 10 {
		require.NoError(t, w.Step(object.Controls{Thrust: true, Fire: true}))
	}
	assert.True(t, w.GameOver)
	assert.Equal(t, tick, w.Tick)
	assert.InDelta(t, x, a.X, 1e-9)
	assert.Empty(t, w.Bullets)
}

func TestSplitAsteroids(t *testing.T) {
	opts := loop.DefaultOptions()
	opts.SpawnRate = 0
	opts.SplitAsteroids = true
	w := loop.NewWorld(opts)

	still(w, 20, 20, object.AsteroidLarge)
	parked(w, 20, 20)
	require.NoError(t, w.Step(object.Controls{}))

	assert.Equal(t, 1, w.Score)
	require.Len(t, w.Asteroids, 2)
	for _, a := range w.Asteroids {
		assert.Equal(t, object.AsteroidMedium, a.Size)
		assert.False(t, a.IsDestroyed())
		assert.NotZero(t, a.ID)
	}
}

func TestAsteroidsBounce(t *testing.T) {
	w := quietWorld(t)
	a1 := still(w, 30, 10, object.AsteroidMedium)
	a2 := still(w, 33, 10, object.AsteroidMedium)
	a1.VX, a2.VX = 5, -5

	require.NoError(t, w.Step(object.Controls{}))

	assert.InDelta(t, -5.0, a1.VX, 1e-9)
	assert.InDelta(t, 5.0, a2.VX, 1e-9)
	assert.Len(t, w.Asteroids, 2)
	assert.Zero(t, w.Score)
}

func TestAsteroidIDsAreUnique(t *testing.T) {
	w := quietWorld(t)
	seen := map[uint32]bool{}
	for i := range 20 {
		a := still(w, float64(i*5), 70, object.AsteroidSmall)
		assert.False(t, seen[a.ID])
		seen[a.ID] = true
	}
}

// TestInvariantsUnderLoad runs a busy world and checks the properties that
// must hold after every tick.
func TestInvariantsUnderLoad(t *testing.T) {
	opts := loop.DefaultOptions()
	opts.SpawnRate = 0.2
	opts.Seed = 99
	opts.SplitAsteroids = true
	w := loop.NewWorld(opts)

	prevScore := 0
	wasOver := false
	for i := range 5000 {
		c := object.Controls{Fire: true, Right: i%90 < 30, Thrust: i%200 < 20}
		require.NoError(t, w.Step(c))

		assert.GreaterOrEqual(t, w.Score, prevScore, "score decreased at tick %d", i)
		prevScore = w.Score
		if wasOver {
			assert.True(t, w.GameOver, "game over reverted at tick %d", i)
		}
		wasOver = w.GameOver

		for _, a := range w.Asteroids {
			require.False(t, a.IsDestroyed())
			require.True(t, w.Bounds.Contains(a.X, a.Y))
		}
		for _, b := range w.Bullets {
			require.False(t, b.IsDestroyed())
			require.True(t, w.Bounds.Contains(b.X, b.Y))
		}
	}
}

func TestSpawnCountApproximatesRate(t *testing.T) {
	const ticks = 20000
	opts := loop.DefaultOptions()
	opts.Seed = 2024
	w := loop.NewWorld(opts)
	w.Ship = nil // Nothing to collide with, so every spawn survives.

	for range ticks {
		require.NoError(t, w.Step(object.Controls{}))
	}

	expected := ticks * w.SpawnRate
	stddev := math.Sqrt(ticks * w.SpawnRate * (1 - w.SpawnRate))
	assert.InDelta(t, expected, float64(len(w.Asteroids)), 5*stddev)
	assert.Equal(t, w.Spawner().Spawned(), len(w.Asteroids))
	assert.Equal(t, ticks, w.Spawner().Trials())
}

func TestInitialAsteroids(t *testing.T) {
	opts := loop.DefaultOptions()
	opts.Asteroids = 4
	w := loop.NewWorld(opts)

	require.Len(t, w.Asteroids, 4)
	for _, a := range w.Asteroids {
		assert.True(t, w.Bounds.Contains(a.X, a.Y))
	}
	assert.Zero(t, w.Spawner().Spawned(), "initial asteroids are not spawner trials")
}
