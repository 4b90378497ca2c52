package field

import (
	"github.com/san-kum/metaballs/internal/compute"
	"github.com/san-kum/metaballs/internal/dynamo"
)

const (
	DefaultResolution = 100
	DefaultCeiling    = 100.0
)

// Sampler evaluates the clamped metaball field. A nil Backend uses compute.GetBackend().
type Sampler struct {
	Resolution int
	Ceiling    float64
	Backend    compute.Backend
}

func NewSampler() *Sampler {
	return &Sampler{
		Resolution: DefaultResolution,
		Ceiling:    DefaultCeiling,
	}
}

func (s *Sampler) Sample(sources []dynamo.Source) *Grid {
	g := NewGrid(s.Resolution)
	s.SampleInto(g, sources)
	return g
}

// SampleInto overwrites g, resizing it when its resolution does not match.
func (s *Sampler) SampleInto(g *Grid, sources []dynamo.Source) {
	side := s.Resolution + 1
	if g.N != s.Resolution || len(g.Samples) != side*side {
		g.N = s.Resolution
		g.Samples = make([]float64, side*side)
	}
	s.backend().SampleField(sources, s.Resolution, s.Ceiling, g.Samples)
}

func (s *Sampler) backend() compute.Backend {
	if s.Backend != nil {
		return s.Backend
	}
	return compute.GetBackend()
}

func (s *Sampler) BackendName() string { return s.backend().Name() }
