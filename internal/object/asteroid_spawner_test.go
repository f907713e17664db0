package object_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/asteroids-sim/internal/object"
	"github.com/tomz197/asteroids-sim/internal/physics"
)

func TestSpawnerRateZeroNeverSpawns(t *testing.T) {
	s := object.NewAsteroidSpawner(0)
	c := &collector{}
	ctx := newCtx(object.Controls{}, c)
	for range 1000 {
		_, err := s.Update(ctx)
		require.NoError(t, err)
	}
	assert.Empty(t, c.objs)
	assert.Equal(t, 1000, s.Trials())
	assert.Zero(t, s.Spawned())
}

func TestSpawnerRateOneAlwaysSpawns(t *testing.T) {
	s := object.NewAsteroidSpawner(1)
	c := &collector{}
	ctx := newCtx(object.Controls{}, c)
	for range 10 {
		_, err := s.Update(ctx)
		require.NoError(t, err)
	}
	require.Len(t, c.objs, 10)
	for _, o := range c.objs {
		_, ok := o.(*object.Asteroid)
		assert.True(t, ok)
	}
}

func TestSpawnerClampsRate(t *testing.T) {
	assert.InDelta(t, 1.0, object.NewAsteroidSpawner(3).Rate, 1e-9)
	assert.InDelta(t, 0.0, object.NewAsteroidSpawner(-1).Rate, 1e-9)
}

func TestSpawnerApproximatesRate(t *testing.T) {
	const (
		rate  = 0.015
		ticks = 200000
	)
	s := object.NewAsteroidSpawner(rate)
	c := &collector{}
	ctx := newCtx(object.Controls{}, c)
	ctx.Rand = rand.New(rand.NewPCG(42, 42))
	for range ticks {
		_, err := s.Update(ctx)
		require.NoError(t, err)
	}

	expected := ticks * rate
	stddev := math.Sqrt(ticks * rate * (1 - rate))
	assert.InDelta(t, expected, float64(s.Spawned()), 5*stddev)
	assert.InDelta(t, expected, s.Expected(), 1e-6)
	assert.Len(t, c.objs, s.Spawned())
}

func TestSpawnerKeepsAwayFromShip(t *testing.T) {
	s := object.NewAsteroidSpawner(1)
	c := &collector{}
	ctx := newCtx(object.Controls{}, c)
	// Ship parked on the top edge where some spawns land.
	ctx.Ship = object.NewShip(50, 0)

	for range 500 {
		_, err := s.Update(ctx)
		require.NoError(t, err)
	}

	near := 0
	for _, o := range c.objs {
		a := o.(*object.Asteroid)
		d := s.SafeDistance + a.Radius + ctx.Ship.Radius
		if physics.WrappedDistanceSquared(a.X, a.Y, 50, 0, 100, 100) < d*d {
			near++
		}
	}
	// With eight re-rolls an unsafe spawn is rare but possible.
	assert.Less(t, near, 5)
}
