package physics_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/spatial/r2"

	"github.com/san-kum/metaballs/internal/dynamo"
	"github.com/san-kum/metaballs/internal/physics"
)

var _ = Describe("Integrator", func() {
	var integ *physics.Integrator

	BeforeEach(func() {
		integ = physics.NewIntegrator()
	})

	Context("with a single circle", func() {
		It("feels no force and coasts by exactly dx*elapsed", func() {
			scene := dynamo.Scene{{X: 0.1, Y: 0.2, R: 0.3, DX: 0.0001, DY: -0.0002}}

			Expect(integ.Force(scene, 0)).To(Equal(r2.Vec{}))
			Expect(integ.Step(scene, 16)).To(Succeed())

			Expect(scene[0].DX).To(Equal(0.0001))
			Expect(scene[0].DY).To(Equal(-0.0002))
			Expect(scene[0].X).To(Equal(0.1 + 0.0001*16))
			Expect(scene[0].Y).To(Equal(0.2 + -0.0002*16))
			Expect(scene[0].R).To(Equal(0.3))
		})

		It("teleports to +1 when leaving through -1", func() {
			scene := dynamo.Scene{{X: -0.9999, Y: 0, R: 0.2, DX: -0.0005}}

			Expect(integ.Step(scene, 1)).To(Succeed())

			Expect(scene[0].X).To(Equal(1.0))
		})

		It("teleports to -1 when leaving through +1", func() {
			scene := dynamo.Scene{{X: 0, Y: 0.9999, R: 0.2, DY: 0.0005}}

			Expect(integ.Step(scene, 1)).To(Succeed())

			Expect(scene[0].Y).To(Equal(-1.0))
		})
	})

	Context("with two symmetric circles", func() {
		It("produces equal and opposite velocity changes on both axes", func() {
			scene := dynamo.Scene{
				{X: -0.25, Y: 0.1, R: 0.3},
				{X: 0.25, Y: -0.1, R: 0.3},
			}

			Expect(integ.Step(scene, 16)).To(Succeed())

			Expect(scene[0].DX).To(Equal(-scene[1].DX))
			Expect(scene[0].DY).To(Equal(-scene[1].DY))
			Expect(scene[0].DX).NotTo(BeZero())
			Expect(scene[0].DY).NotTo(BeZero())
		})

		It("is independent of circle order", func() {
			a := dynamo.Scene{{X: -0.3, Y: 0.2, R: 0.3}, {X: 0.4, Y: -0.1, R: 0.2}}
			b := dynamo.Scene{a[1], a[0]}

			Expect(integ.Step(a, 16)).To(Succeed())
			Expect(integ.Step(b, 16)).To(Succeed())

			Expect(a[0]).To(Equal(b[1]))
			Expect(a[1]).To(Equal(b[0]))
		})
	})

	Context("velocity clamp", func() {
		It("bounds each axis regardless of the accumulated force", func() {
			scene := dynamo.Scene{
				{X: 0, Y: 0, R: 0.5},
				{X: 0.0001, Y: 0.0001, R: 0.5},
				{X: -0.5, Y: 0.9, R: 0.4, DX: 0.01, DY: -0.01},
			}

			for i := 0; i < 50; i++ {
				Expect(integ.Step(scene, 16)).To(Succeed())
				for _, c := range scene {
					Expect(math.Abs(c.DX)).To(BeNumerically("<=", integ.MaxSpeed))
					Expect(math.Abs(c.DY)).To(BeNumerically("<=", integ.MaxSpeed))
					Expect(c.X).To(BeNumerically(">=", -1))
					Expect(c.X).To(BeNumerically("<=", 1))
					Expect(c.Y).To(BeNumerically(">=", -1))
					Expect(c.Y).To(BeNumerically("<=", 1))
				}
			}
		})
	})

	Context("zero elapsed time", func() {
		It("keeps positions but still updates velocities", func() {
			scene := dynamo.Scene{{X: -0.2, Y: 0, R: 0.3}, {X: 0.2, Y: 0, R: 0.3}}

			Expect(integ.Step(scene, 0)).To(Succeed())

			Expect(scene[0].X).To(Equal(-0.2))
			Expect(scene[1].X).To(Equal(0.2))
			Expect(scene[0].DX).NotTo(BeZero())
		})
	})

	Context("degenerate input", func() {
		It("skips coincident circles instead of producing NaN", func() {
			scene := dynamo.Scene{{X: 0.3, Y: 0.3, R: 0.2}, {X: 0.3, Y: 0.3, R: 0.2}}

			Expect(integ.Step(scene, 16)).To(Succeed())

			Expect(scene.IsValid()).To(BeTrue())
			Expect(scene[0].DX).To(BeZero())
		})

		It("rejects negative elapsed time", func() {
			scene := dynamo.Scene{{R: 0.2}}
			Expect(integ.Step(scene, -1)).To(MatchError(dynamo.ErrInvalidElapsed))
			Expect(integ.Step(scene, math.NaN())).To(MatchError(dynamo.ErrInvalidElapsed))
		})

		It("rejects non-finite circles", func() {
			scene := dynamo.Scene{{X: math.Inf(1), R: 0.2}}
			Expect(integ.Step(scene, 1)).To(MatchError(dynamo.ErrInvalidState))
		})

		It("treats an empty scene as a no-op", func() {
			Expect(integ.Step(dynamo.Scene{}, 16)).To(Succeed())
		})
	})

	Context("legacy accumulation", func() {
		three := func() dynamo.Scene {
			return dynamo.Scene{
				{X: 0, Y: 0, R: 0.3},
				{X: 0.3, Y: 0.1, R: 0.25},
				{X: -0.2, Y: 0.4, R: 0.2},
			}
		}

		It("matches the fixed force with a single neighbour", func() {
			pair := dynamo.Scene{{X: 0, Y: 0, R: 0.3}, {X: 0.3, Y: 0.1, R: 0.25}}
			fixed := integ.Force(pair, 0)
			integ.LegacyAccumulation = true
			Expect(integ.Force(pair, 0)).To(Equal(fixed))
		})

		It("corrupts the y axis once there are several neighbours", func() {
			scene := three()
			fixed := integ.Force(scene, 0)
			integ.LegacyAccumulation = true
			legacy := integ.Force(scene, 0)

			Expect(legacy.X).To(Equal(fixed.X))
			Expect(legacy.Y).NotTo(BeNumerically("~", fixed.Y, 1e-15))
		})
	})
})

var _ = Describe("Params", func() {
	It("exposes and updates the tunable parameters", func() {
		integ := physics.NewIntegrator()
		Expect(integ.GetParams()).To(HaveKeyWithValue("max_speed", physics.DefaultMaxSpeed))

		Expect(integ.SetParam("attraction", 0.002)).To(Succeed())
		Expect(integ.Attraction).To(Equal(0.002))
		Expect(integ.SetParam("max_speed", 0)).To(MatchError(dynamo.ErrParameterBounds))
		Expect(integ.SetParam("gravity", 1)).To(MatchError(dynamo.ErrParameterBounds))
	})
})
