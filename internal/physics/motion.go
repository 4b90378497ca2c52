package physics

import (
	"math"

	"github.com/san-kum/metaballs/internal/dynamo"
	"gonum.org/v1/gonum/spatial/r2"
)

const (
	DefaultAttraction = 0.00001
	DefaultMaxSpeed   = 0.0005
)

// Integrator advances circles under toroidal pairwise forces.
//
// Forces are computed from a snapshot of the scene taken before any circle
// moves, so the result does not depend on circle order.
type Integrator struct {
	Attraction float64
	MaxSpeed   float64

	// LegacyAccumulation reproduces the shared-accumulator behaviour where each
	// neighbour's y term is added to the running x total instead of the y total.
	LegacyAccumulation bool

	snapshot dynamo.Scene
	forces   []r2.Vec
}

func NewIntegrator() *Integrator {
	return &Integrator{
		Attraction: DefaultAttraction,
		MaxSpeed:   DefaultMaxSpeed,
	}
}

func (in *Integrator) GetParams() map[string]float64 {
	return map[string]float64{
		"attraction": in.Attraction,
		"max_speed":  in.MaxSpeed,
	}
}

func (in *Integrator) SetParam(name string, value float64) error {
	switch name {
	case "attraction":
		in.Attraction = value
	case "max_speed":
		if value <= 0 {
			return dynamo.ErrParameterBounds
		}
		in.MaxSpeed = value
	default:
		return dynamo.ErrParameterBounds
	}
	return nil
}

// Step mutates scene in place: velocity += force, clamp, position += velocity*elapsed, wrap.
// A zero elapsed still applies the velocity update.
func (in *Integrator) Step(scene dynamo.Scene, elapsed float64) error {
	if elapsed < 0 || math.IsNaN(elapsed) || math.IsInf(elapsed, 0) {
		return dynamo.ErrInvalidElapsed
	}
	if err := scene.Validate(); err != nil {
		return err
	}
	if len(scene) == 0 {
		return nil
	}

	in.snapshot = append(in.snapshot[:0], scene...)
	if cap(in.forces) < len(scene) {
		in.forces = make([]r2.Vec, len(scene))
	}
	in.forces = in.forces[:len(scene)]
	for i := range scene {
		in.forces[i] = in.force(in.snapshot, i)
	}

	for i := range scene {
		c := &scene[i]
		c.DX = clamp(c.DX+in.forces[i].X, in.MaxSpeed)
		c.DY = clamp(c.DY+in.forces[i].Y, in.MaxSpeed)
		c.X = WrapPosition(c.X + c.DX*elapsed)
		c.Y = WrapPosition(c.Y + c.DY*elapsed)
	}
	return nil
}

// Force returns the net force acting on scene[i].
func (in *Integrator) Force(scene dynamo.Scene, i int) r2.Vec {
	return in.force(scene, i)
}

func (in *Integrator) force(scene dynamo.Scene, i int) r2.Vec {
	cur := scene[i]
	var f r2.Vec
	for j, other := range scene {
		if j == i {
			continue
		}
		dx, dy := WrappedDelta(cur.X, cur.Y, other.X, other.Y)
		d := math.Hypot(dx, dy)
		if d == 0 {
			continue
		}
		s := (-in.Attraction * cur.R * cur.R) / (d * d)
		term := r2.Scale(s/d, r2.Vec{X: dx, Y: dy})
		if in.LegacyAccumulation {
			f = r2.Vec{X: f.X + term.X, Y: f.X + term.Y}
			continue
		}
		f = r2.Add(f, term)
	}
	return f
}

func clamp(v, limit float64) float64 {
	if v > limit {
		return limit
	}
	if v < -limit {
		return -limit
	}
	return v
}

// KineticEnergy treats r² as the mass of each circle.
func KineticEnergy(scene dynamo.Scene) float64 {
	e := 0.0
	for _, c := range scene {
		e += 0.5 * c.R * c.R * (c.DX*c.DX + c.DY*c.DY)
	}
	return e
}

// MinSeparation is the smallest wrapped center distance between any two circles.
// It returns +Inf for fewer than two circles.
func MinSeparation(scene dynamo.Scene) float64 {
	best := math.Inf(1)
	for i := range scene {
		for j := i + 1; j < len(scene); j++ {
			d := WrappedDistance(scene[i].X, scene[i].Y, scene[j].X, scene[j].Y)
			if d < best {
				best = d
			}
		}
	}
	return best
}
