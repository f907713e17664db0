// Package config centralizes all tunable simulation parameters.
package config

import "time"

// World dimensions in logical units.
const (
	WorldWidth  = 120
	WorldHeight = 80
)

// Spawning
const (
	InitialAsteroids   = 0     // Asteroids on the edges when a world starts
	AsteroidSpawnRate  = 0.015 // Per-tick probability of a new asteroid
	SpawnSafeDistance  = 15.0  // Minimum distance between a new asteroid and the ship
	SpawnMaxAttempts   = 8     // Edge re-rolls before accepting an unsafe position
	SplitAsteroids     = false // Break non-small asteroids into two fragments when shot
	FragmentsPerSplit  = 2
	ScorePerAsteroid   = 1
	AsteroidEdgeSpread = 0.5 // Fraction of a half-turn an edge spawn deviates from the centre
)

// Ship
const (
	ShipThrustPower   = 40.0 // Units per second²
	ShipRotationSpeed = 5.0  // Radians per second
	ShipMaxSpeed      = 25.0
	ShipDrag          = 0.5 // Fraction of speed kept per second without thrust
	ShipRadius        = 2.0
	ShipFireRate      = 0.15 // Seconds between shots
)

// Bullets
const (
	BulletSpeed    = 50.0
	BulletLifetime = 2.0 // Seconds
)

// Simulation pacing
const (
	TickRate    = 60
	TickTime    = time.Second / TickRate
	MaxTickRate = 1000 // Highest pacing rate accepted from settings
)

// Runner
const (
	DefaultMaxTicks = 60 * 60 // One minute of simulated time
	DefaultRounds   = 1
	EventBuffer     = 64
)

// Autopilot
const (
	AutopilotAimTolerance = 0.12 // Radians
	AutopilotDangerRadius = 12.0
)
