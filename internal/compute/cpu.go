package compute

import (
	"runtime"

	"github.com/san-kum/metaballs/internal/dynamo"
	"github.com/san-kum/metaballs/internal/physics"
)

type Source = dynamo.Source

// minRowsPerWorker keeps goroutine overhead below the per-row work.
const minRowsPerWorker = 8

type CPUBackend struct {
	workers int
}

func NewCPUBackend() *CPUBackend {
	return &CPUBackend{
		workers: runtime.GOMAXPROCS(0),
	}
}

func NewSerialBackend() *CPUBackend {
	return &CPUBackend{workers: 1}
}

func (c *CPUBackend) Name() string {
	if c.workers <= 1 {
		return "serial"
	}
	return "cpu"
}

func (c *CPUBackend) Available() bool { return true }
func (c *CPUBackend) Cleanup()        {}
func (c *CPUBackend) Workers() int    { return c.workers }

func (c *CPUBackend) SampleField(sources []Source, n int, ceiling float64, out []float64) {
	side := n + 1

	rows := func(start, end int) {
		for row := start; row < end; row++ {
			y := physics.LatticeCoord(row, n)
			base := row * side
			for col := 0; col < side; col++ {
				out[base+col] = physics.Intensity(physics.LatticeCoord(col, n), y, sources, ceiling)
			}
		}
	}

	if len(sources) == 0 {
		clear(out[:side*side])
		return
	}

	dynamo.ParallelForWorkers(side, minRowsPerWorker, c.workers, rows)
}
