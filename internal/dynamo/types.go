package dynamo

import (
	"fmt"
	"math"
)

// Circle is a single influence source. R is never changed by the integrator.
type Circle struct {
	X  float64 `yaml:"x" json:"x"`
	Y  float64 `yaml:"y" json:"y"`
	R  float64 `yaml:"r" json:"r"`
	DX float64 `yaml:"dx" json:"dx"`
	DY float64 `yaml:"dy" json:"dy"`
}

// Source drops the velocity; it is all the field sampler needs.
func (c Circle) Source() Source {
	return Source{X: c.X, Y: c.Y, R: c.R}
}

func (c Circle) IsValid() bool {
	for _, v := range [...]float64{c.X, c.Y, c.R, c.DX, c.DY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

// Source is the rendering-facing circle: position and radius only.
type Source struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	R float64 `json:"r"`
}

// Scene is the ordered simulation state. Order only matters for reproducibility.
type Scene []Circle

func (s Scene) Clone() Scene {
	c := make(Scene, len(s))
	copy(c, s)
	return c
}

func (s Scene) Sources() []Source {
	out := make([]Source, len(s))
	for i, c := range s {
		out[i] = c.Source()
	}
	return out
}

func (s Scene) IsValid() bool {
	for _, c := range s {
		if !c.IsValid() {
			return false
		}
	}
	return true
}

// Validate reports the first non-finite circle, if any.
func (s Scene) Validate() error {
	for i, c := range s {
		if !c.IsValid() {
			return fmt.Errorf("circle %d: %w", i, ErrInvalidState)
		}
	}
	return nil
}

// Frame is the outcome of one driver step.
type Frame struct {
	Index   int
	Time    float64
	Elapsed float64
	Scene   Scene
	Weights []float32
}

type Metric interface {
	Name() string
	Observe(f Frame)
	Value() float64
	Reset()
}

type Observer interface {
	OnFrame(f Frame)
}
