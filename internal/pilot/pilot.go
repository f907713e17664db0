// Package pilot provides ship controllers for headless runs.
package pilot

import (
	"fmt"
	"math"

	"github.com/tomz197/asteroids-sim/internal/loop"
	"github.com/tomz197/asteroids-sim/internal/loop/config"
	"github.com/tomz197/asteroids-sim/internal/object"
	"github.com/tomz197/asteroids-sim/internal/physics"
)

// Names accepted by New.
const (
	NameIdle = "idle"
	NameAuto = "auto"
)

// New returns the pilot registered under name.
func New(name string) (loop.Pilot, error) {
	switch name {
	case NameIdle, "":
		return Idle{}, nil
	case NameAuto:
		return NewAutopilot(), nil
	default:
		return nil, fmt.Errorf("unknown pilot %q", name)
	}
}

// aimDeadband is the heading error below which the autopilot stops turning.
const aimDeadband = 0.02

// Idle never touches the controls.
type Idle struct{}

// Controls returns zero controls.
func (Idle) Controls(*loop.Snapshot) object.Controls {
	return object.Controls{}
}

// Autopilot locks onto the asteroid nearest in the plane, turns toward it and
// shoots it, and thrusts away from anything that gets too close across the
// seams. Bullets do not wrap, so an asteroid that is only near across a seam
// is a threat but not a target.
type Autopilot struct {
	AimTolerance float64 // Fire when the heading is within this many radians
	DangerRadius float64 // Clearance kept around the ship

	target uint32
	locked bool
}

// NewAutopilot creates an autopilot with the default tuning.
func NewAutopilot() *Autopilot {
	return &Autopilot{
		AimTolerance: config.AutopilotAimTolerance,
		DangerRadius: config.AutopilotDangerRadius,
	}
}

// Target returns the ID of the asteroid currently locked on.
func (p *Autopilot) Target() (uint32, bool) {
	return p.target, p.locked
}

// Controls implements loop.Pilot.
func (p *Autopilot) Controls(s *loop.Snapshot) object.Controls {
	if s == nil || !s.Ship.Alive || len(s.Asteroids) == 0 {
		p.locked = false
		return object.Controls{}
	}
	ship := s.Ship

	// Keep the lock while the target is alive so the ship does not dither
	// between two asteroids at similar range.
	var (
		t  loop.AsteroidView
		ok bool
	)
	if p.locked {
		t, ok = s.Asteroid(p.target)
	}
	if !ok {
		t = p.closest(s, false)
		p.target, p.locked = t.ID, true
	}

	// Bullets do not wrap, so aim in the plane.
	diff := physics.NormalizeAngle(math.Atan2(t.Y-ship.Y, t.X-ship.X) - ship.Angle)

	c := object.Controls{
		Fire:  math.Abs(diff) <= p.AimTolerance,
		Right: diff > aimDeadband,
		Left:  diff < -aimDeadband,
	}

	// Asteroids do wrap, so measure threats across the seams and thrust
	// only while facing away from one.
	threat := p.closest(s, true)
	w, h := s.Bounds.Width, s.Bounds.Height
	dx := physics.WrappedDelta(ship.X, threat.X, w)
	dy := physics.WrappedDelta(ship.Y, threat.Y, h)
	if math.Hypot(dx, dy) < p.DangerRadius+threat.Radius {
		away := physics.NormalizeAngle(math.Atan2(dy, dx) - ship.Angle)
		c.Thrust = math.Abs(away) > math.Pi/2
	}
	return c
}

// closest returns the asteroid nearest the ship, optionally measured across
// the world seams.
func (p *Autopilot) closest(s *loop.Snapshot, wrapped bool) loop.AsteroidView {
	best := s.Asteroids[0]
	bestD2 := math.Inf(1)
	for _, a := range s.Asteroids {
		var d2 float64
		if wrapped {
			d2 = physics.WrappedDistanceSquared(s.Ship.X, s.Ship.Y, a.X, a.Y, s.Bounds.Width, s.Bounds.Height)
		} else {
			d2 = physics.DistanceSquared(s.Ship.X, s.Ship.Y, a.X, a.Y)
		}
		if d2 < bestD2 {
			best, bestD2 = a, d2
		}
	}
	return best
}
