package metrics

import (
	"github.com/san-kum/metaballs/internal/dynamo"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Coverage is the mean fraction of vertex weights at or above the iso threshold,
// i.e. how much of the mesh is inside a blob.
type Coverage struct {
	threshold float32
	samples   []float64
}

func NewCoverage(threshold float64) *Coverage {
	return &Coverage{threshold: float32(threshold)}
}

func (c *Coverage) Name() string { return "coverage" }

func (c *Coverage) Observe(f dynamo.Frame) {
	if len(f.Weights) == 0 {
		return
	}
	inside := 0
	for _, w := range f.Weights {
		if w >= c.threshold {
			inside++
		}
	}
	c.samples = append(c.samples, float64(inside)/float64(len(f.Weights)))
}

func (c *Coverage) Value() float64 {
	if len(c.samples) == 0 {
		return 0
	}
	return stat.Mean(c.samples, nil)
}

func (c *Coverage) Reset() {
	c.samples = c.samples[:0]
}

// PeakField is the largest vertex weight seen in any frame.
type PeakField struct {
	peaks []float64
}

func NewPeakField() *PeakField {
	return &PeakField{}
}

func (p *PeakField) Name() string { return "peak_field" }

func (p *PeakField) Observe(f dynamo.Frame) {
	if len(f.Weights) == 0 {
		return
	}
	peak := f.Weights[0]
	for _, w := range f.Weights[1:] {
		if w > peak {
			peak = w
		}
	}
	p.peaks = append(p.peaks, float64(peak))
}

func (p *PeakField) Value() float64 {
	if len(p.peaks) == 0 {
		return 0
	}
	return floats.Max(p.peaks)
}

func (p *PeakField) Reset() {
	p.peaks = p.peaks[:0]
}

// Standard returns the metric set the CLI reports.
func Standard(threshold float64) []dynamo.Metric {
	return []dynamo.Metric{
		NewKineticEnergy(),
		NewCoverage(threshold),
		NewPeakField(),
		NewMinSeparation(),
	}
}
