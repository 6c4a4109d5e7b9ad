package window

import (
	"image/color"

	"pomodoro/internal/ui/animation"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
)

const (
	glyphSize = 12
	dotSize   = 6
)

// particleLayer draws animation frames over the window content.
// Canvas objects are pooled and reused between frames.
type particleLayer struct {
	container *fyne.Container
	glyphs    []*canvas.Text
	dots      []*canvas.Circle
}

func newParticleLayer() *particleLayer {
	return &particleLayer{container: container.NewWithoutLayout()}
}

// Render schedules a frame on the UI thread; nil clears the layer.
func (layer *particleLayer) Render(particles []animation.Particle) {
	fyne.Do(func() {
		layer.draw(particles)
	})
}

func (layer *particleLayer) draw(particles []animation.Particle) {
	size := layer.container.Size()
	glyphIndex := 0
	dotIndex := 0

	for _, particle := range particles {
		position := fyne.NewPos(float32(particle.X)*size.Width, float32(particle.Y)*size.Height)
		tint := fade(particle.Color, particle.Alpha())
		scalar := float32(particle.Scalar)
		if scalar <= 0 {
			scalar = 1
		}

		if particle.Glyph != "" {
			glyph := layer.glyph(glyphIndex)
			glyphIndex++
			glyph.Text = particle.Glyph
			glyph.Color = tint
			glyph.TextSize = glyphSize * scalar
			glyph.Move(position)
			glyph.Resize(glyph.MinSize())
			glyph.Show()
			glyph.Refresh()
			continue
		}

		dot := layer.dot(dotIndex)
		dotIndex++
		dot.FillColor = tint
		dot.Move(position)
		dot.Resize(fyne.NewSize(dotSize*scalar, dotSize*scalar))
		dot.Show()
		dot.Refresh()
	}

	for _, glyph := range layer.glyphs[glyphIndex:] {
		glyph.Hide()
	}
	for _, dot := range layer.dots[dotIndex:] {
		dot.Hide()
	}
}

func (layer *particleLayer) glyph(index int) *canvas.Text {
	if index < len(layer.glyphs) {
		return layer.glyphs[index]
	}
	glyph := canvas.NewText("", color.Transparent)
	glyph.TextStyle = fyne.TextStyle{Monospace: true, Bold: true}
	layer.glyphs = append(layer.glyphs, glyph)
	layer.container.Add(glyph)
	return glyph
}

func (layer *particleLayer) dot(index int) *canvas.Circle {
	if index < len(layer.dots) {
		return layer.dots[index]
	}
	dot := canvas.NewCircle(color.Transparent)
	layer.dots = append(layer.dots, dot)
	layer.container.Add(dot)
	return dot
}

func fade(base color.NRGBA, alpha float64) color.NRGBA {
	base.A = uint8(float64(base.A) * alpha)
	return base
}
