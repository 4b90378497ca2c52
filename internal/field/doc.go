// Package field samples the metaball field on a lattice and packs it into a
// renderer-ready vertex weight buffer.
//
// A resolution of N cells per axis gives an (N+1)x(N+1) [Grid] over [-1, 1]²
// and a weight buffer of N*N*6 float32 values, two triangles per cell:
//
//	(r,c) (r+1,c) (r+1,c+1)   (r,c) (r,c+1) (r+1,c+1)
//
// Only intensities are packed. [Positions] rebuilds the matching geometry.
package field
