// Package compute provides the backends that evaluate the metaball field.
//
// The package selects a default backend at init:
//
//   - CPU: rows of the lattice split across GOMAXPROCS goroutines
//   - serial: a single goroutine, used for small lattices and as a reference
//
// Both produce identical samples; each worker writes a disjoint row range.
//
//	backend := compute.GetBackend()
//	backend.SampleField(sources, 100, 100, out)
package compute
