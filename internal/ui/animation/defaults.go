package animation

import (
	"image/color"
	"time"
)

var (
	matrixGreen = []color.NRGBA{
		{R: 0x00, G: 0xFF, B: 0x00, A: 0xFF},
		{R: 0x32, G: 0xCD, B: 0x32, A: 0xFF},
	}
	rainbow = []color.NRGBA{
		{R: 0xFF, G: 0x00, B: 0x00, A: 0xFF},
		{R: 0xFF, G: 0xA5, B: 0x00, A: 0xFF},
		{R: 0xFF, G: 0xFF, B: 0x00, A: 0xFF},
		{R: 0x00, G: 0xFF, B: 0x00, A: 0xFF},
		{R: 0x00, G: 0x00, B: 0xFF, A: 0xFF},
		{R: 0x4B, G: 0x00, B: 0x82, A: 0xFF},
		{R: 0xEE, G: 0x82, B: 0xEE, A: 0xFF},
	}
)

// DefaultConfig returns the celebration effects used on mode switches.
func DefaultConfig() Config {
	return Config{
		FrameInterval: 16 * time.Millisecond,
		Matrix: MatrixSpec{
			Duration: 2 * time.Second,
			PerFrame: Burst{
				Count:         5,
				Angle:         90,
				Spread:        100,
				StartVelocity: 2,
				Decay:         0.9,
				Gravity:       0.35,
				Ticks:         300,
				Scalar:        2,
				Glyph:         "$",
				Colors:        matrixGreen,
				OriginX:       Range{Min: 0.5, Max: 0.5},
				OriginY:       Range{Min: 0, Max: 0},
			},
		},
		Fireworks: FireworksSpec{
			Duration:      time.Second,
			BurstInterval: 250 * time.Millisecond,
			MaxCount:      50,
			Burst: Burst{
				Angle:         90,
				Spread:        360,
				StartVelocity: 30,
				Decay:         0.9,
				Gravity:       1,
				Ticks:         60,
				Scalar:        1,
				Colors:        rainbow,
				OriginX:       Range{Min: 0.1, Max: 0.9},
				OriginY:       Range{Min: -0.2, Max: 0.8},
			},
		},
	}
}
