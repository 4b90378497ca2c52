// Package physics holds the numeric heart of the metaball simulation.
//
//   - [WrappedDelta] / [WrappedDistance]: shortest-path geometry on the [-1, 1] torus
//   - [Intensity]: the clamped inverse-square metaball field at a point
//   - [Integrator]: pairwise attraction/repulsion motion step
//
// # Force Law
//
// For circle i and neighbour j at wrapped offset Δ and distance d:
//
//	s = -k * r_i² / d²
//	force_i += (s / d) * Δ
//
// Velocities are clamped per axis to MaxSpeed and positions teleport across
// the opposite edge when they leave [-1, 1].
//
//	integ := physics.NewIntegrator()
//	if err := integ.Step(scene, 16); err != nil {
//	    return err
//	}
package physics
