// Package object defines the simulated entities: the ship, its bullets,
// asteroids and the asteroid spawner.
package object

import (
	"math/rand/v2"
	"time"

	"github.com/tomz197/asteroids-sim/internal/physics"
)

// Spawner allows objects to spawn new objects during update.
type Spawner interface {
	Spawn(obj Object)
}

// Controls is the command applied to the ship for one tick.
type Controls struct {
	Left   bool
	Right  bool
	Thrust bool
	Fire   bool
}

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Delta    time.Duration
	Controls Controls
	Bounds   Bounds
	Spawner  Spawner
	Rand     *rand.Rand
	Ship     *Ship // Live ship, nil when there is none
}

// Bounds is the size of the world in logical units.
type Bounds struct {
	Width  float64
	Height float64
}

// CenterX returns the horizontal midpoint.
func (b Bounds) CenterX() float64 { return b.Width / 2 }

// CenterY returns the vertical midpoint.
func (b Bounds) CenterY() float64 { return b.Height / 2 }

// Wrap wraps x and y around the world edges (Asteroids-style).
func (b Bounds) Wrap(x, y *float64) {
	*x = physics.Wrap(*x, b.Width)
	*y = physics.Wrap(*y, b.Height)
}

// Contains reports whether (x, y) lies inside the world.
func (b Bounds) Contains(x, y float64) bool {
	return x >= 0 && x < b.Width && y >= 0 && y < b.Height
}

// Object is an updatable simulation entity.
type Object interface {
	// Update advances the object by ctx.Delta. Returns true if the object
	// should be removed.
	Update(ctx UpdateContext) (remove bool, err error)
}

// Destructible is implemented by objects that can be marked for removal.
type Destructible interface {
	MarkDestroyed()
	IsDestroyed() bool
}

// Circle is implemented by objects with a circular collision shape.
type Circle interface {
	GetPosition() (float64, float64)
	GetRadius() float64
}
