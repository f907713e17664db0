package object

import (
	"math"
	"math/rand/v2"

	"github.com/tomz197/asteroids-sim/internal/loop/config"
)

// AsteroidSize represents the size category of an asteroid.
type AsteroidSize int

const (
	AsteroidSmall  AsteroidSize = 1
	AsteroidMedium AsteroidSize = 2
	AsteroidLarge  AsteroidSize = 3
)

// MaxAsteroidRadius is the radius of the largest asteroid size.
const MaxAsteroidRadius = 5.0

var asteroidRadii = map[AsteroidSize]float64{
	AsteroidSmall:  1.5,
	AsteroidMedium: 3.0,
	AsteroidLarge:  MaxAsteroidRadius,
}

var asteroidSpeeds = map[AsteroidSize]float64{
	AsteroidSmall:  15.0,
	AsteroidMedium: 10.0,
	AsteroidLarge:  6.0,
}

func (s AsteroidSize) String() string {
	switch s {
	case AsteroidSmall:
		return "small"
	case AsteroidMedium:
		return "medium"
	case AsteroidLarge:
		return "large"
	default:
		return "unknown"
	}
}

// Radius returns the collision radius for the size.
func (s AsteroidSize) Radius() float64 {
	return asteroidRadii[s]
}

// RandomAsteroidSize picks one of the three sizes uniformly.
func RandomAsteroidSize(rng *rand.Rand) AsteroidSize {
	return AsteroidSize(1 + rng.IntN(3))
}

// Asteroid is a destructible space rock.
type Asteroid struct {
	ID            uint32       // Assigned by the world on insertion
	X, Y          float64      // Position (center)
	VX, VY        float64      // Velocity
	Angle         float64      // Current rotation angle
	RotationSpeed float64      // Radians per second
	Size          AsteroidSize // Size category
	Radius        float64      // Collision radius
	Destroyed     bool         // Marked for removal
}

// NewAsteroid creates an asteroid at (x, y) with the given size moving in
// direction angle. A negative angle picks a random direction.
func NewAsteroid(rng *rand.Rand, x, y float64, size AsteroidSize, angle float64) *Asteroid {
	speed := asteroidSpeeds[size]
	if angle < 0 {
		angle = rng.Float64() * 2 * math.Pi
	}

	return &Asteroid{
		X:             x,
		Y:             y,
		VX:            math.Cos(angle) * speed,
		VY:            math.Sin(angle) * speed,
		Angle:         rng.Float64() * 2 * math.Pi,
		RotationSpeed: (rng.Float64() - 0.5) * 2.0,
		Size:          size,
		Radius:        size.Radius(),
	}
}

// NewAsteroidAtEdge creates an asteroid on a random world edge aimed roughly
// at the centre.
func NewAsteroidAtEdge(rng *rand.Rand, bounds Bounds, size AsteroidSize) *Asteroid {
	var x, y float64
	w, h := bounds.Width, bounds.Height

	switch rng.IntN(4) {
	case 0: // Top
		x, y = rng.Float64()*w, 0
	case 1: // Bottom
		x, y = rng.Float64()*w, math.Nextafter(h, 0)
	case 2: // Left
		x, y = 0, rng.Float64()*h
	default: // Right
		x, y = math.Nextafter(w, 0), rng.Float64()*h
	}

	angle := math.Atan2(bounds.CenterY()-y, bounds.CenterX()-x)
	angle += (rng.Float64() - 0.5) * math.Pi * config.AsteroidEdgeSpread
	if angle < 0 {
		angle += 2 * math.Pi
	}

	return NewAsteroid(rng, x, y, size, angle)
}

// Fragments returns the asteroids this one breaks into when shot.
// Small asteroids leave nothing behind.
func (a *Asteroid) Fragments(rng *rand.Rand) []*Asteroid {
	if a.Size <= AsteroidSmall {
		return nil
	}
	out := make([]*Asteroid, 0, config.FragmentsPerSplit)
	for range config.FragmentsPerSplit {
		out = append(out, NewAsteroid(rng, a.X, a.Y, a.Size-1, -1))
	}
	return out
}

// Update moves and rotates the asteroid.
func (a *Asteroid) Update(ctx UpdateContext) (bool, error) {
	if a.Destroyed {
		return true, nil
	}
	dt := ctx.Delta.Seconds()

	a.Angle += a.RotationSpeed * dt
	a.X += a.VX * dt
	a.Y += a.VY * dt
	ctx.Bounds.Wrap(&a.X, &a.Y)

	return false, nil
}

// MarkDestroyed marks the asteroid for removal.
func (a *Asteroid) MarkDestroyed() {
	a.Destroyed = true
}

// IsDestroyed returns true if the asteroid is marked for destruction.
func (a *Asteroid) IsDestroyed() bool {
	return a.Destroyed
}

// GetPosition returns the asteroid's center position.
func (a *Asteroid) GetPosition() (float64, float64) {
	return a.X, a.Y
}

// GetRadius returns the asteroid's collision radius.
func (a *Asteroid) GetRadius() float64 {
	return a.Radius
}
