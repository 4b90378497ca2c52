package compute

type Backend interface {
	Name() string
	Available() bool
	// SampleField writes the clamped field for an (n+1)x(n+1) lattice into out,
	// row-major. out must hold at least (n+1)*(n+1) values.
	SampleField(sources []Source, n int, ceiling float64, out []float64)
	Cleanup()
}

var activeBackend Backend

func init() {
	activeBackend = AutoSelectBackend()
}

func SetBackend(b Backend) {
	if activeBackend != nil {
		activeBackend.Cleanup()
	}
	activeBackend = b
}

func GetBackend() Backend {
	return activeBackend
}

func AutoSelectBackend() Backend {
	cpu := NewCPUBackend()
	if cpu.workers > 1 {
		return cpu
	}
	return NewSerialBackend()
}

// Lookup returns a fresh backend by name, or nil.
func Lookup(name string) Backend {
	switch name {
	case "cpu":
		return NewCPUBackend()
	case "serial":
		return NewSerialBackend()
	case "auto", "":
		return AutoSelectBackend()
	}
	return nil
}
