package object

import (
	"math"

	"github.com/tomz197/asteroids-sim/internal/loop/config"
)

// Bullet is a projectile fired by the ship.
// Bullets do not wrap: leaving the world removes them.
type Bullet struct {
	X, Y      float64 // Position
	VX, VY    float64 // Velocity
	Lifetime  float64 // Seconds remaining before removal
	destroyed bool
}

// NewBullet creates a bullet at (x, y) traveling in direction angle.
// The bullet inherits the shooter's velocity plus its own speed.
func NewBullet(x, y, angle, shooterVX, shooterVY float64) *Bullet {
	return &Bullet{
		X:        x,
		Y:        y,
		VX:       shooterVX + math.Cos(angle)*config.BulletSpeed,
		VY:       shooterVY + math.Sin(angle)*config.BulletSpeed,
		Lifetime: config.BulletLifetime,
	}
}

// MarkDestroyed marks the bullet for removal.
func (b *Bullet) MarkDestroyed() {
	b.destroyed = true
}

// IsDestroyed returns true if the bullet is spent.
func (b *Bullet) IsDestroyed() bool {
	return b.destroyed || b.Lifetime <= 0
}

// Update moves the bullet and expires it by lifetime or bounds.
func (b *Bullet) Update(ctx UpdateContext) (bool, error) {
	if b.IsDestroyed() {
		return true, nil
	}
	dt := ctx.Delta.Seconds()

	b.Lifetime -= dt
	if b.Lifetime <= 0 {
		return true, nil
	}

	b.X += b.VX * dt
	b.Y += b.VY * dt

	return !ctx.Bounds.Contains(b.X, b.Y), nil
}

// GetPosition returns the bullet's position.
func (b *Bullet) GetPosition() (float64, float64) {
	return b.X, b.Y
}
