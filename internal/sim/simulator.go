package sim

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/san-kum/metaballs/internal/dynamo"
	"github.com/san-kum/metaballs/internal/field"
	"github.com/san-kum/metaballs/internal/physics"
)

type Simulator struct {
	integrator *physics.Integrator
	mesher     *field.Mesher
	metrics    []dynamo.Metric
	observers  []dynamo.Observer
	logger     *slog.Logger

	pinned           bool
	cursorX, cursorY float64
}

func New(integrator *physics.Integrator, mesher *field.Mesher) *Simulator {
	if integrator == nil {
		integrator = physics.NewIntegrator()
	}
	if mesher == nil {
		mesher = field.NewMesher(nil)
	}
	return &Simulator{
		integrator: integrator,
		mesher:     mesher,
		metrics:    make([]dynamo.Metric, 0),
		observers:  make([]dynamo.Observer, 0),
		logger:     slog.Default(),
	}
}

func (s *Simulator) AddMetric(m dynamo.Metric)     { s.metrics = append(s.metrics, m) }
func (s *Simulator) AddObserver(o dynamo.Observer) { s.observers = append(s.observers, o) }
func (s *Simulator) SetLogger(l *slog.Logger)     { s.logger = l }

func (s *Simulator) Integrator() *physics.Integrator { return s.integrator }
func (s *Simulator) Mesher() *field.Mesher           { return s.mesher }

// SetCursor pins the first circle to (x, y) after every integration step.
func (s *Simulator) SetCursor(x, y float64) {
	s.cursorX = clampUnit(x)
	s.cursorY = clampUnit(y)
	s.pinned = true
}

func (s *Simulator) ReleaseCursor() { s.pinned = false }

func (s *Simulator) Cursor() (x, y float64, pinned bool) {
	return s.cursorX, s.cursorY, s.pinned
}

func clampUnit(v float64) float64 {
	if v < -1 {
		return -1
	}
	if v > 1 {
		return 1
	}
	return v
}

// Frame integrates scene by elapsed, applies the cursor pin and returns the
// packed weights. The slice is reused by the next call.
func (s *Simulator) Frame(scene dynamo.Scene, elapsed float64) ([]float32, error) {
	if err := s.integrator.Step(scene, elapsed); err != nil {
		return nil, err
	}
	if s.pinned && len(scene) > 0 {
		scene[0].X = s.cursorX
		scene[0].Y = s.cursorY
	}
	return s.mesher.Weights(scene.Sources()), nil
}

func (s *Simulator) Run(ctx context.Context, scene0 dynamo.Scene, cfg Config) (*Result, error) {
	if err := s.validateConfig(cfg); err != nil {
		return nil, err
	}

	scene := scene0.Clone()
	elapsed := ClampElapsed(cfg.FrameDt, cfg.MaxElapsed) * cfg.Speed
	result := &Result{
		Metrics: make(map[string]float64),
	}
	if cfg.Record {
		result.Trajectory = make([]Snapshot, 0, cfg.Frames+1)
		result.Trajectory = append(result.Trajectory, Snapshot{Frame: 0, Time: 0, Scene: scene.Clone()})
	}

	for _, m := range s.metrics {
		m.Reset()
	}

	s.logger.Debug("run started",
		"circles", len(scene),
		"frames", cfg.Frames,
		"elapsed_ms", elapsed,
		"resolution", s.mesher.Sampler.Resolution,
	)

	t := 0.0
	var weights []float32
	for i := 0; i < cfg.Frames; i++ {
		select {
		case <-ctx.Done():
			result.Final = scene
			return result, fmt.Errorf("%w: %w", dynamo.ErrContextCanceled, ctx.Err())
		default:
		}

		var err error
		weights, err = s.Frame(scene, elapsed)
		if err != nil {
			result.Final = scene
			return result, &dynamo.StepError{Step: i, Time: t, Wrapped: err}
		}
		t += elapsed
		result.Frames++

		frame := dynamo.Frame{Index: i + 1, Time: t, Elapsed: elapsed, Scene: scene, Weights: weights}
		for _, m := range s.metrics {
			m.Observe(frame)
		}
		for _, obs := range s.observers {
			obs.OnFrame(frame)
		}

		if cfg.Record {
			result.Trajectory = append(result.Trajectory, Snapshot{Frame: i + 1, Time: t, Scene: scene.Clone()})
		}
	}

	result.Final = scene
	result.Time = t
	if weights != nil {
		result.Weights = append([]float32(nil), weights...)
	}
	for _, m := range s.metrics {
		result.Metrics[m.Name()] = m.Value()
	}

	s.logger.Debug("run finished", "result", result)
	return result, nil
}

func (s *Simulator) validateConfig(cfg Config) error {
	if cfg.MaxElapsed <= 0 {
		return fmt.Errorf("max elapsed must be positive, got %f", cfg.MaxElapsed)
	}
	if cfg.Speed < 0 {
		return fmt.Errorf("speed must not be negative, got %f", cfg.Speed)
	}
	if cfg.Frames < 0 {
		return fmt.Errorf("frames must not be negative, got %d", cfg.Frames)
	}
	return nil
}
