package object

import (
	"math"

	"github.com/tomz197/asteroids-sim/internal/loop/config"
	"github.com/tomz197/asteroids-sim/internal/physics"
)

// Ship is the player-controlled spaceship.
type Ship struct {
	X, Y   float64 // Position (center of ship)
	VX, VY float64 // Velocity (momentum)
	Angle  float64 // Heading in radians (0 = right, y grows downward)
	Alive  bool

	ThrustPower   float64 // Acceleration when thrusting
	RotationSpeed float64 // Radians per second
	MaxSpeed      float64 // Maximum velocity magnitude
	Drag          float64 // Fraction of speed kept per second without thrust
	Radius        float64 // Collision radius

	FireRate     float64 // Minimum seconds between shots
	fireCooldown float64 // Time until next shot allowed
	shots        int
}

// NewShip creates a live ship at the given position pointing up.
func NewShip(x, y float64) *Ship {
	return &Ship{
		X:             x,
		Y:             y,
		Angle:         -math.Pi / 2,
		Alive:         true,
		ThrustPower:   config.ShipThrustPower,
		RotationSpeed: config.ShipRotationSpeed,
		MaxSpeed:      config.ShipMaxSpeed,
		Drag:          config.ShipDrag,
		Radius:        config.ShipRadius,
		FireRate:      config.ShipFireRate,
	}
}

// Update handles rotation, thrust, momentum and shooting.
// A dead ship is inert but never asks to be removed; the world owns it.
func (s *Ship) Update(ctx UpdateContext) (bool, error) {
	if !s.Alive {
		return false, nil
	}
	dt := ctx.Delta.Seconds()
	c := ctx.Controls

	if c.Left {
		s.Angle -= s.RotationSpeed * dt
	}
	if c.Right {
		s.Angle += s.RotationSpeed * dt
	}
	s.Angle = physics.NormalizeAngle(s.Angle)

	if c.Thrust {
		s.VX += math.Cos(s.Angle) * s.ThrustPower * dt
		s.VY += math.Sin(s.Angle) * s.ThrustPower * dt
	} else {
		drag := math.Pow(s.Drag, dt)
		s.VX *= drag
		s.VY *= drag
	}

	if speed := math.Hypot(s.VX, s.VY); speed > s.MaxSpeed {
		scale := s.MaxSpeed / speed
		s.VX *= scale
		s.VY *= scale
	}

	s.X += s.VX * dt
	s.Y += s.VY * dt
	ctx.Bounds.Wrap(&s.X, &s.Y)

	s.fireCooldown -= dt
	if c.Fire && s.fireCooldown <= 0 && ctx.Spawner != nil {
		s.fireCooldown = s.FireRate
		s.shots++
		noseX, noseY := s.Nose()
		ctx.Spawner.Spawn(NewBullet(noseX, noseY, s.Angle, s.VX, s.VY))
	}

	return false, nil
}

// Nose returns the position bullets are fired from.
func (s *Ship) Nose() (float64, float64) {
	return s.X + math.Cos(s.Angle)*s.Radius, s.Y + math.Sin(s.Angle)*s.Radius
}

// Kill marks the ship as destroyed.
func (s *Ship) Kill() {
	s.Alive = false
	s.VX, s.VY = 0, 0
}

// Shots returns how many bullets the ship has fired.
func (s *Ship) Shots() int {
	return s.shots
}

// GetPosition returns the ship's center position.
func (s *Ship) GetPosition() (float64, float64) {
	return s.X, s.Y
}

// GetRadius returns the ship's collision radius.
func (s *Ship) GetRadius() float64 {
	return s.Radius
}
