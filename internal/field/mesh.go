package field

import (
	"github.com/san-kum/metaballs/internal/dynamo"
	"github.com/san-kum/metaballs/internal/physics"
)

// VerticesPerCell is two triangles of three vertices.
const VerticesPerCell = 6

// BufferLen is the weight buffer length for resolution n.
func BufferLen(n int) int {
	return n * n * VerticesPerCell
}

// Pack writes six corner samples per cell into dst, reusing its storage when
// large enough, and returns the filled slice.
func Pack(g *Grid, dst []float32) []float32 {
	n := g.N
	size := BufferLen(n)
	if cap(dst) < size {
		dst = make([]float32, size)
	}
	dst = dst[:size]

	side := n + 1
	s := g.Samples
	i := 0
	for row := 0; row < n; row++ {
		top := row * side
		bottom := top + side
		for col := 0; col < n; col++ {
			tl := float32(s[top+col])
			tr := float32(s[top+col+1])
			bl := float32(s[bottom+col])
			br := float32(s[bottom+col+1])

			dst[i] = tl
			dst[i+1] = bl
			dst[i+2] = br
			dst[i+3] = tl
			dst[i+4] = tr
			dst[i+5] = br
			i += VerticesPerCell
		}
	}
	return dst
}

// Positions returns the (x, y) pair for every vertex Pack emits, in the same order.
// Columns run along x and rows along y.
func Positions(n int) []float32 {
	out := make([]float32, 0, BufferLen(n)*2)
	for row := 0; row < n; row++ {
		y0 := float32(physics.LatticeCoord(row, n))
		y1 := float32(physics.LatticeCoord(row+1, n))
		for col := 0; col < n; col++ {
			x0 := float32(physics.LatticeCoord(col, n))
			x1 := float32(physics.LatticeCoord(col+1, n))
			out = append(out,
				x0, y0,
				x0, y1,
				x1, y1,
				x0, y0,
				x1, y0,
				x1, y1,
			)
		}
	}
	return out
}

// Mesher is the field+mesh entry point. It owns its grid and weight buffer and
// reuses them across calls; it is not safe for concurrent use.
type Mesher struct {
	Sampler *Sampler
	grid    *Grid
	weights []float32
}

func NewMesher(s *Sampler) *Mesher {
	if s == nil {
		s = NewSampler()
	}
	return &Mesher{Sampler: s, grid: NewGrid(s.Resolution)}
}

// Weights samples the field for sources and packs it. The returned slice is
// overwritten by the next call.
func (m *Mesher) Weights(sources []dynamo.Source) []float32 {
	m.Sampler.SampleInto(m.grid, sources)
	m.weights = Pack(m.grid, m.weights)
	return m.weights
}

// Grid returns the lattice sampled by the last Weights call.
func (m *Mesher) Grid() *Grid {
	return m.grid
}

// Weights is a one-shot Mesher with default settings.
func Weights(sources []dynamo.Source) []float32 {
	return NewMesher(nil).Weights(sources)
}
