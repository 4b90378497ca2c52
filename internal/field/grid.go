package field

import "fmt"

// Grid is a row-major (N+1)x(N+1) lattice of field samples.
type Grid struct {
	N       int
	Samples []float64
}

func NewGrid(n int) *Grid {
	side := n + 1
	return &Grid{N: n, Samples: make([]float64, side*side)}
}

func (g *Grid) Side() int { return g.N + 1 }

func (g *Grid) Index(row, col int) int { return row*(g.N+1) + col }

func (g *Grid) At(row, col int) float64 { return g.Samples[g.Index(row, col)] }

// Row returns a view of one lattice row.
func (g *Grid) Row(row int) []float64 {
	side := g.N + 1
	return g.Samples[row*side : (row+1)*side]
}

func (g *Grid) String() string {
	return fmt.Sprintf("Grid(%dx%d)", g.N+1, g.N+1)
}
