package sim

import (
	"log/slog"
	"math"
	"sort"

	"github.com/san-kum/metaballs/internal/dynamo"
)

// Config times are in milliseconds.
type Config struct {
	FrameDt    float64
	MaxElapsed float64
	Speed      float64
	Frames     int
	Record     bool
}

func DefaultConfig() Config {
	return Config{
		FrameDt:    1000.0 / 60.0,
		MaxElapsed: 50,
		Speed:      1,
		Frames:     600,
	}
}

// ClampElapsed replaces a missing, non-positive or oversized frame time with max.
func ClampElapsed(raw, max float64) float64 {
	if raw <= 0 || math.IsNaN(raw) || raw > max {
		return max
	}
	return raw
}

type Snapshot struct {
	Frame int
	Time  float64
	Scene dynamo.Scene
}

type Result struct {
	Frames     int
	Time       float64
	Final      dynamo.Scene
	Weights    []float32
	Trajectory []Snapshot
	Metrics    map[string]float64
}

// MetricNames returns the metric keys in sorted order.
func (r *Result) MetricNames() []string {
	names := make([]string, 0, len(r.Metrics))
	for name := range r.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// LogValue implements slog.LogValuer.
func (r *Result) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("frames", r.Frames),
		slog.Float64("time_ms", r.Time),
		slog.Int("circles", len(r.Final)),
	}
	for _, name := range r.MetricNames() {
		attrs = append(attrs, slog.Float64(name, r.Metrics[name]))
	}
	return slog.GroupValue(attrs...)
}
