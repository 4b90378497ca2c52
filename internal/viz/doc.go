// Package viz provides terminal diagnostics for the metaball field.
//
//   - [Canvas]: Braille-based sub-pixel canvas (2x4 dots per cell)
//   - [Preview] / [RenderField]: iso-level preview of a sampled [field.Grid]
//   - [CrossSection]: asciigraph plot of one lattice row
//   - [WatchModel]: Bubble Tea live view driving a [sim.Simulator]
//
// # Key Bindings
//
//	Space  - Pause/Resume
//	R      - Reset to the initial scene
//	+/-    - Change simulation speed
//	Arrows - Move the cursor
//	M      - Pin the first circle to the cursor
//	T      - Cycle palettes
//	Q      - Quit
package viz
