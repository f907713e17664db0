package loop

import (
	"github.com/tomz197/asteroids-sim/internal/loop/config"
	"github.com/tomz197/asteroids-sim/internal/object"
	"github.com/tomz197/asteroids-sim/internal/physics"
)

// checkCollisions detects and resolves all collisions for this tick.
func (w *World) checkCollisions() {
	w.grid.Clear()
	for i, a := range w.Asteroids {
		w.grid.Insert(a.X, a.Y, i)
	}

	w.checkBulletAsteroidCollisions()
	w.checkAsteroidAsteroidCollisions()
	w.checkShipCollisions()
}

// checkBulletAsteroidCollisions destroys both parties of every hit and
// scores the asteroid.
func (w *World) checkBulletAsteroidCollisions() {
	ww, wh := w.Bounds.Width, w.Bounds.Height
	for _, b := range w.Bullets {
		if b.IsDestroyed() {
			continue
		}
		w.grid.QueryAround(b.X, b.Y, func(j int) bool {
			a := w.Asteroids[j]
			if a.IsDestroyed() {
				return false
			}
			if physics.WrappedPointInCircle(b.X, b.Y, a.X, a.Y, a.Radius, ww, wh) {
				b.MarkDestroyed()
				w.destroyAsteroid(a)
				return true
			}
			return false
		})
	}
}

// destroyAsteroid removes a shot asteroid and awards the score.
func (w *World) destroyAsteroid(a *object.Asteroid) {
	a.MarkDestroyed()
	w.destroyed++
	w.Score += config.ScorePerAsteroid
	if w.split {
		for _, f := range a.Fragments(w.rng) {
			w.Spawn(f)
		}
	}
}

// checkAsteroidAsteroidCollisions bounces overlapping asteroids.
func (w *World) checkAsteroidAsteroidCollisions() {
	ww, wh := w.Bounds.Width, w.Bounds.Height
	for i, a1 := range w.Asteroids {
		if a1.IsDestroyed() {
			continue
		}
		w.grid.QueryAround(a1.X, a1.Y, func(j int) bool {
			if j <= i {
				return false // Skip self and already-checked pairs
			}
			a2 := w.Asteroids[j]
			if a2.IsDestroyed() {
				return false
			}
			dx := physics.WrappedDelta(a1.X, a2.X, ww)
			dy := physics.WrappedDelta(a1.Y, a2.Y, wh)
			dist2 := dx*dx + dy*dy
			minDist := a1.Radius + a2.Radius
			if dist2 < minDist*minDist && dist2 > 0 {
				bounceAsteroids(a1, a2, dx, dy)
				w.Bounds.Wrap(&a1.X, &a1.Y)
				w.Bounds.Wrap(&a2.X, &a2.Y)
			}
			return false
		})
	}
}

// checkShipCollisions ends the game when an asteroid reaches the ship.
func (w *World) checkShipCollisions() {
	s := w.Ship
	if s == nil || !s.Alive {
		return
	}
	ww, wh := w.Bounds.Width, w.Bounds.Height
	w.grid.QueryAround(s.X, s.Y, func(j int) bool {
		a := w.Asteroids[j]
		if a.IsDestroyed() {
			return false
		}
		if physics.WrappedCirclesOverlap(s.X, s.Y, s.Radius, a.X, a.Y, a.Radius, ww, wh) {
			a.MarkDestroyed()
			s.Kill()
			w.GameOver = true
			return true
		}
		return false
	})
}

// bounceAsteroids resolves an elastic collision. (dx, dy) is the offset
// from a1 to a2, already measured across the world seams.
func bounceAsteroids(a1, a2 *object.Asteroid, dx, dy float64) {
	dist := physics.Distance(0, 0, dx, dy)
	nx := dx / dist
	ny := dy / dist

	// Relative velocity along the collision normal
	dvn := (a1.VX-a2.VX)*nx + (a1.VY-a2.VY)*ny
	if dvn < 0 {
		return // Already separating
	}

	// Area-based mass
	m1 := a1.Radius * a1.Radius
	m2 := a2.Radius * a2.Radius
	total := m1 + m2

	impulse := 2 * dvn / total
	a1.VX -= impulse * m2 * nx
	a1.VY -= impulse * m2 * ny
	a2.VX += impulse * m1 * nx
	a2.VY += impulse * m1 * ny

	if overlap := (a1.Radius + a2.Radius) - dist; overlap > 0 {
		sep1 := overlap * m2 / total
		sep2 := overlap * m1 / total
		a1.X -= nx * sep1
		a1.Y -= ny * sep1
		a2.X += nx * sep2
		a2.Y += ny * sep2
	}
}
