// Package dynamo provides the core data model for the metaball simulation.
//
// The package defines the types shared by every other stage of the pipeline:
//
//   - [Circle]: an influence source with position, radius and velocity
//   - [Source]: the velocity-free view of a circle handed to the field sampler
//   - [Scene]: the ordered list of circles owned by the driver loop
//   - [Frame]: one integrated and meshed step, delivered to metrics and observers
//
// # Domain
//
// Coordinates live on the torus [-1, 1] x [-1, 1]. Producers of circle data
// must already be normalized to that square; the integrator keeps positions
// inside it by teleporting across the opposite edge.
//
// # Thread Safety
//
// A Scene is owned by exactly one driver. Nothing in this package locks.
// [ParallelFor] is the only concurrent helper and it hands each worker a
// disjoint index range.
package dynamo
