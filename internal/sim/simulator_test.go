package sim

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/metaballs/internal/compute"
	"github.com/san-kum/metaballs/internal/dynamo"
	"github.com/san-kum/metaballs/internal/field"
	"github.com/san-kum/metaballs/internal/physics"
)

func newTestSimulator() *Simulator {
	mesher := field.NewMesher(&field.Sampler{Resolution: 10, Ceiling: 100, Backend: compute.NewSerialBackend()})
	return New(physics.NewIntegrator(), mesher)
}

func pairScene() dynamo.Scene {
	return dynamo.Scene{
		{X: -0.25, Y: 0.1, R: 0.3, DX: 0.0001},
		{X: 0.25, Y: -0.1, R: 0.3, DY: 0.0002},
	}
}

type countingMetric struct {
	count int
}

func (c *countingMetric) Name() string           { return "count" }
func (c *countingMetric) Observe(f dynamo.Frame) { c.count++ }
func (c *countingMetric) Value() float64         { return float64(c.count) }
func (c *countingMetric) Reset()                 { c.count = 0 }

type recordingObserver struct {
	indices []int
	sizes   []int
}

func (r *recordingObserver) OnFrame(f dynamo.Frame) {
	r.indices = append(r.indices, f.Index)
	r.sizes = append(r.sizes, len(f.Weights))
}

func TestSimulatorRun(t *testing.T) {
	s := newTestSimulator()
	metric := &countingMetric{}
	obs := &recordingObserver{}
	s.AddMetric(metric)
	s.AddObserver(obs)

	cfg := Config{FrameDt: 16, MaxElapsed: 50, Speed: 1, Frames: 10, Record: true}
	scene := pairScene()

	result, err := s.Run(context.Background(), scene, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.Frames != 10 {
		t.Errorf("expected 10 frames, got %d", result.Frames)
	}
	if result.Time != 160 {
		t.Errorf("expected 160ms, got %f", result.Time)
	}
	if len(result.Trajectory) != 11 {
		t.Errorf("expected 11 snapshots, got %d", len(result.Trajectory))
	}
	if result.Metrics["count"] != 10 {
		t.Errorf("expected metric count 10, got %f", result.Metrics["count"])
	}
	if len(result.Weights) != field.BufferLen(10) {
		t.Errorf("expected %d weights, got %d", field.BufferLen(10), len(result.Weights))
	}
	if len(obs.indices) != 10 || obs.indices[0] != 1 || obs.indices[9] != 10 {
		t.Errorf("unexpected observer frames: %v", obs.indices)
	}
	if scene[0].X != -0.25 {
		t.Error("Run mutated the caller's scene")
	}
	if result.Trajectory[0].Scene[0].X != -0.25 {
		t.Error("first snapshot should hold the initial scene")
	}
}

func TestSimulatorElapsedClamp(t *testing.T) {
	s := newTestSimulator()
	cfg := Config{FrameDt: 500, MaxElapsed: 50, Speed: 2, Frames: 1}

	single := dynamo.Scene{{X: 0, Y: 0, R: 0.2, DX: 0.0001}}
	result, err := s.Run(context.Background(), single, cfg)
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if result.Time != 100 {
		t.Errorf("expected clamped elapsed 50*2=100, got %f", result.Time)
	}
	if math.Abs(result.Final[0].X-0.01) > 1e-12 {
		t.Errorf("expected x=0.01, got %f", result.Final[0].X)
	}
}

func TestSimulatorCursorPin(t *testing.T) {
	s := newTestSimulator()
	s.SetCursor(0.4, -1.5)

	scene := pairScene()
	if _, err := s.Frame(scene, 16); err != nil {
		t.Fatalf("frame failed: %v", err)
	}

	if scene[0].X != 0.4 || scene[0].Y != -1 {
		t.Errorf("expected first circle pinned to (0.4, -1), got (%f, %f)", scene[0].X, scene[0].Y)
	}

	s.ReleaseCursor()
	if _, _, pinned := s.Cursor(); pinned {
		t.Error("cursor still pinned after release")
	}
	if _, err := s.Frame(scene, 16); err != nil {
		t.Fatalf("frame failed: %v", err)
	}
	if scene[0].X == 0.4 && scene[0].Y == -1 {
		t.Error("circle did not move after release")
	}
}

func TestSimulatorInvalidConfig(t *testing.T) {
	s := newTestSimulator()

	tests := []struct {
		name string
		cfg  Config
	}{
		{"zero max elapsed", Config{FrameDt: 16, MaxElapsed: 0, Speed: 1, Frames: 1}},
		{"negative speed", Config{FrameDt: 16, MaxElapsed: 50, Speed: -1, Frames: 1}},
		{"negative frames", Config{FrameDt: 16, MaxElapsed: 50, Speed: 1, Frames: -1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := s.Run(context.Background(), pairScene(), tt.cfg); err == nil {
				t.Error("expected error, got nil")
			}
		})
	}
}

func TestSimulatorStepError(t *testing.T) {
	s := newTestSimulator()
	scene := dynamo.Scene{{X: math.NaN(), R: 0.2}}

	_, err := s.Run(context.Background(), scene, DefaultConfig())

	var stepErr *dynamo.StepError
	if !errors.As(err, &stepErr) {
		t.Fatalf("expected StepError, got %v", err)
	}
	if stepErr.Step != 0 {
		t.Errorf("expected failure on step 0, got %d", stepErr.Step)
	}
	if !errors.Is(err, dynamo.ErrInvalidState) {
		t.Errorf("expected ErrInvalidState cause, got %v", err)
	}
}

func TestSimulatorCanceled(t *testing.T) {
	s := newTestSimulator()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	result, err := s.Run(ctx, pairScene(), DefaultConfig())
	if !errors.Is(err, dynamo.ErrContextCanceled) || !errors.Is(err, context.Canceled) {
		t.Fatalf("expected cancellation, got %v", err)
	}
	if result.Frames != 0 {
		t.Errorf("expected 0 frames, got %d", result.Frames)
	}
}

func TestClampElapsed(t *testing.T) {
	tests := []struct {
		raw, expected float64
	}{
		{16, 16},
		{50, 50},
		{51, 50},
		{0, 50},
		{-3, 50},
		{math.NaN(), 50},
	}

	for _, tt := range tests {
		if got := ClampElapsed(tt.raw, 50); got != tt.expected {
			t.Errorf("ClampElapsed(%v, 50) = %v, want %v", tt.raw, got, tt.expected)
		}
	}
}

func TestResultMetricNames(t *testing.T) {
	r := &Result{Metrics: map[string]float64{"peak_field": 1, "coverage": 0.5}}
	names := r.MetricNames()
	if len(names) != 2 || names[0] != "coverage" || names[1] != "peak_field" {
		t.Errorf("unexpected names %v", names)
	}
	if got := len(r.LogValue().Group()); got != 5 {
		t.Errorf("expected 5 log attrs, got %d", got)
	}
}

func TestEnsemble(t *testing.T) {
	e := NewEnsemble(newTestSimulator)
	scenes := []dynamo.Scene{pairScene(), pairScene(), {{R: 0.3, DX: 0.0003}}}

	results, err := e.Run(context.Background(), scenes, Config{FrameDt: 16, MaxElapsed: 50, Speed: 1, Frames: 5})
	if err != nil {
		t.Fatalf("ensemble failed: %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("expected 3 results, got %d", len(results))
	}
	if results[0].Final[0] != results[1].Final[0] {
		t.Error("identical scenes diverged")
	}
	for i, r := range results {
		if r.Frames != 5 {
			t.Errorf("result %d: expected 5 frames, got %d", i, r.Frames)
		}
	}
}
