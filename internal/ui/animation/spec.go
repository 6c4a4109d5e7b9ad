package animation

import (
	"image/color"
	"math"
	"math/rand"
	"time"
)

// Range defines a float range with random sampling.
type Range struct {
	Min float64
	Max float64
}

// Random returns a random value within the range.
func (value Range) Random(rng *rand.Rand) float64 {
	if value.Max <= value.Min {
		return value.Min
	}
	return value.Min + rng.Float64()*(value.Max-value.Min)
}

// Burst describes one emission of particles.
// Angle and Spread are in degrees; 90 points up. Origin is relative to the surface.
type Burst struct {
	Count         int
	Angle         float64
	Spread        float64
	StartVelocity float64
	Decay         float64
	Gravity       float64
	Drift         float64
	Ticks         int
	Scalar        float64
	Glyph         string
	Colors        []color.NRGBA
	OriginX       Range
	OriginY       Range
}

// Particle is a single animated element in surface-relative coordinates.
type Particle struct {
	X        float64
	Y        float64
	Heading  float64
	Velocity float64
	Decay    float64
	Gravity  float64
	Drift    float64
	Age      int
	Life     int
	Scalar   float64
	Glyph    string
	Color    color.NRGBA
}

// Alpha returns the remaining opacity in [0, 1].
func (particle Particle) Alpha() float64 {
	if particle.Life <= 0 {
		return 0
	}
	alpha := 1 - float64(particle.Age)/float64(particle.Life)
	return math.Max(0, math.Min(1, alpha))
}

// MatrixSpec is the falling-glyph effect played when work resumes.
type MatrixSpec struct {
	Duration time.Duration
	PerFrame Burst
}

// FireworksSpec is the burst effect played when a rest starts.
type FireworksSpec struct {
	Duration      time.Duration
	BurstInterval time.Duration
	MaxCount      int
	Burst         Burst
}
