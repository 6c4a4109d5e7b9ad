package terminal

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"pomodoro/internal/ui/animation"
)

const dotGlyph = "•"

// rasterize projects particles onto a width x height character grid.
// Later particles overwrite earlier ones in the same cell.
func rasterize(particles []animation.Particle, width, height int) string {
	cells := make([][]string, height)
	for row := range cells {
		cells[row] = make([]string, width)
		for col := range cells[row] {
			cells[row][col] = " "
		}
	}

	for _, particle := range particles {
		col := int(particle.X * float64(width))
		row := int(particle.Y * float64(height))
		if col < 0 || col >= width || row < 0 || row >= height || particle.Alpha() <= 0 {
			continue
		}
		glyph := particle.Glyph
		if glyph == "" {
			glyph = dotGlyph
		}
		cells[row][col] = lipgloss.NewStyle().Foreground(hexColor(particle.Color)).Render(glyph)
	}

	lines := make([]string, height)
	for row, cols := range cells {
		lines[row] = strings.Join(cols, "")
	}
	return strings.Join(lines, "\n")
}

func hexColor(value color.NRGBA) lipgloss.Color {
	return lipgloss.Color(fmt.Sprintf("#%02X%02X%02X", value.R, value.G, value.B))
}
