package metrics

import (
	"github.com/san-kum/metaballs/internal/dynamo"
	"github.com/san-kum/metaballs/internal/physics"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// KineticEnergy averages physics.KineticEnergy over observed frames.
type KineticEnergy struct {
	samples []float64
}

func NewKineticEnergy() *KineticEnergy {
	return &KineticEnergy{}
}

func (k *KineticEnergy) Name() string { return "kinetic_energy" }

func (k *KineticEnergy) Observe(f dynamo.Frame) {
	k.samples = append(k.samples, physics.KineticEnergy(f.Scene))
}

func (k *KineticEnergy) Value() float64 {
	if len(k.samples) == 0 {
		return 0
	}
	return stat.Mean(k.samples, nil)
}

func (k *KineticEnergy) Reset() {
	k.samples = k.samples[:0]
}

// MinSeparation tracks the closest approach between any two circle centers.
type MinSeparation struct {
	samples []float64
}

func NewMinSeparation() *MinSeparation {
	return &MinSeparation{}
}

func (m *MinSeparation) Name() string { return "min_separation" }

func (m *MinSeparation) Observe(f dynamo.Frame) {
	if len(f.Scene) < 2 {
		return
	}
	m.samples = append(m.samples, physics.MinSeparation(f.Scene))
}

func (m *MinSeparation) Value() float64 {
	if len(m.samples) == 0 {
		return 0
	}
	return floats.Min(m.samples)
}

func (m *MinSeparation) Reset() {
	m.samples = m.samples[:0]
}
