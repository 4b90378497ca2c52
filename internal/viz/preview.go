package viz

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/metaballs/internal/field"
)

// sampleAt maps a sub-pixel to the nearest lattice sample. Screen rows grow
// downward while lattice rows grow with y, so rows are flipped.
func sampleAt(g *field.Grid, sx, sy, subW, subH int) float64 {
	col := (sx*g.N + (subW-1)/2) / max(subW-1, 1)
	row := g.N - (sy*g.N+(subH-1)/2)/max(subH-1, 1)
	return g.At(row, col)
}

// Preview lights every sub-pixel whose field value reaches threshold.
func Preview(g *field.Grid, threshold float64, cols, rows int) *Canvas {
	c := NewCanvas(cols, rows)
	subW, subH := c.SubWidth(), c.SubHeight()
	for sy := 0; sy < subH; sy++ {
		for sx := 0; sx < subW; sx++ {
			if sampleAt(g, sx, sy, subW, subH) >= threshold {
				c.Set(sx, sy)
			}
		}
	}
	return c
}

// band classifies a value the way the blob shader does: below half the
// threshold is background, up to the threshold is glow, above is blob.
func band(v, threshold float64) int {
	switch {
	case v >= threshold:
		return 2
	case v >= threshold/2:
		return 1
	}
	return 0
}

// RenderField is Preview with each cell coloured by its field band. Glow cells
// are drawn as a light shade so the halo is visible around the dots.
func RenderField(g *field.Grid, threshold float64, cols, rows int, p Palette) string {
	c := Preview(g, threshold, cols, rows)
	styles := [3]lipgloss.Style{
		lipgloss.NewStyle().Foreground(p.Background),
		lipgloss.NewStyle().Foreground(p.Glow),
		lipgloss.NewStyle().Foreground(p.Blob),
	}

	subW, subH := c.SubWidth(), c.SubHeight()
	var b strings.Builder
	for row := 0; row < rows; row++ {
		for col := 0; col < cols; col++ {
			v := sampleAt(g, col*2+1, row*4+2, subW, subH)
			k := band(v, threshold)
			cell := c.Cell(col, row)
			if cell == brailleBlank && k == 1 {
				cell = '░'
			}
			b.WriteString(styles[k].Render(string(cell)))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// CrossSection plots lattice row `row`, clipping values at clip so the
// ceiling spikes do not flatten the rest of the curve.
func CrossSection(g *field.Grid, row int, clip float64, width, height int) string {
	src := g.Row(row)
	data := make([]float64, len(src))
	for i, v := range src {
		data[i] = min(v, clip)
	}
	return asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(fmt.Sprintf("field along row %d (clipped at %.1f)", row, clip)),
	)
}
