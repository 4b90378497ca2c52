package dynamo

import (
	"errors"
	"math"
	"sync/atomic"
	"testing"
)

func TestScene_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		scene Scene
		valid bool
	}{
		{"empty", Scene{}, true},
		{"normal", Scene{{X: 0.1, Y: -0.2, R: 0.3}}, true},
		{"with NaN", Scene{{X: math.NaN(), R: 0.3}}, false},
		{"with +Inf velocity", Scene{{R: 0.3, DX: math.Inf(1)}}, false},
		{"with -Inf radius", Scene{{R: math.Inf(-1)}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.scene.IsValid(); got != tt.valid {
				t.Errorf("IsValid() = %v, want %v", got, tt.valid)
			}
		})
	}
}

func TestScene_Validate(t *testing.T) {
	s := Scene{{R: 0.2}, {X: math.NaN(), R: 0.2}}
	err := s.Validate()
	if !errors.Is(err, ErrInvalidState) {
		t.Fatalf("expected ErrInvalidState, got %v", err)
	}
	if err.Error() != "circle 1: dynamo: invalid state (NaN or Inf detected)" {
		t.Errorf("unexpected message: %q", err.Error())
	}
}

func TestScene_CloneIndependent(t *testing.T) {
	s := Scene{{X: 0.5, Y: 0.2, R: 0.29}}
	c := s.Clone()
	c[0].X = 0.9
	if s[0].X != 0.5 {
		t.Error("Clone did not create independent copy")
	}
}

func TestScene_Sources(t *testing.T) {
	s := Scene{{X: 0.5, Y: 0.2, R: 0.29, DX: 1, DY: 2}}
	src := s.Sources()
	if len(src) != 1 {
		t.Fatalf("expected 1 source, got %d", len(src))
	}
	if src[0] != (Source{X: 0.5, Y: 0.2, R: 0.29}) {
		t.Errorf("unexpected source %+v", src[0])
	}
}

func TestStepError(t *testing.T) {
	err := &StepError{Step: 150, Time: 1.5, Wrapped: ErrInvalidElapsed}
	expected := "step 150 (t=1.5000): dynamo: elapsed time must be finite and non-negative"
	if err.Error() != expected {
		t.Errorf("StepError.Error() = %q, want %q", err.Error(), expected)
	}
	if !errors.Is(err, ErrInvalidElapsed) {
		t.Error("StepError does not unwrap to its cause")
	}
}

func TestParallelForCoversRange(t *testing.T) {
	for _, workers := range []int{1, 2, 3, 8} {
		n := 101
		hits := make([]int32, n)
		ParallelForWorkers(n, 4, workers, func(start, end int) {
			for i := start; i < end; i++ {
				atomic.AddInt32(&hits[i], 1)
			}
		})
		for i, h := range hits {
			if h != 1 {
				t.Fatalf("workers=%d: index %d visited %d times", workers, i, h)
			}
		}
	}
}

func TestParallelForEmpty(t *testing.T) {
	called := false
	ParallelFor(0, 1, func(start, end int) { called = true })
	if called {
		t.Error("fn should not run for an empty range")
	}
}
