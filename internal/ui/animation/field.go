package animation

import (
	"math"
	"math/rand"
)

// unitsPerSurface converts burst velocities to surface-relative distances.
const unitsPerSurface = 400.0

// Field simulates a set of particles frame by frame.
type Field struct {
	particles []Particle
}

// Emit adds the particles of one burst.
func (field *Field) Emit(burst Burst, rng *rand.Rand) {
	if burst.Count <= 0 || burst.Ticks <= 0 {
		return
	}
	angle := radians(burst.Angle)
	spread := radians(burst.Spread)
	originX := burst.OriginX.Random(rng)
	originY := burst.OriginY.Random(rng)
	for i := 0; i < burst.Count; i++ {
		particle := Particle{
			X:        originX,
			Y:        originY,
			Heading:  -angle + (0.5*spread - rng.Float64()*spread),
			Velocity: burst.StartVelocity*0.5 + rng.Float64()*burst.StartVelocity,
			Decay:    burst.Decay,
			Gravity:  burst.Gravity,
			Drift:    burst.Drift,
			Life:     burst.Ticks,
			Scalar:   burst.Scalar,
			Glyph:    burst.Glyph,
		}
		if len(burst.Colors) > 0 {
			particle.Color = burst.Colors[rng.Intn(len(burst.Colors))]
		}
		field.particles = append(field.particles, particle)
	}
}

// Step advances every particle by one frame and drops expired ones.
func (field *Field) Step() {
	alive := field.particles[:0]
	for _, particle := range field.particles {
		particle.X += (math.Cos(particle.Heading)*particle.Velocity + particle.Drift) / unitsPerSurface
		particle.Y += (math.Sin(particle.Heading)*particle.Velocity + particle.Gravity*3) / unitsPerSurface
		particle.Velocity *= particle.Decay
		particle.Age++
		if particle.Age < particle.Life {
			alive = append(alive, particle)
		}
	}
	field.particles = alive
}

// Particles returns a copy of the live particles.
func (field *Field) Particles() []Particle {
	return append([]Particle(nil), field.particles...)
}

// Len returns the number of live particles.
func (field *Field) Len() int {
	return len(field.particles)
}

func radians(degrees float64) float64 {
	return degrees * math.Pi / 180
}
