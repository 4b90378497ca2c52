package sim

import (
	"context"
	"sync"

	"github.com/san-kum/metaballs/internal/dynamo"
)

// Ensemble runs independent scenes concurrently, one Simulator each.
type Ensemble struct {
	newSim func() *Simulator
}

func NewEnsemble(newSim func() *Simulator) *Ensemble {
	return &Ensemble{newSim: newSim}
}

func (e *Ensemble) Run(ctx context.Context, scenes []dynamo.Scene, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(scenes))
	errs := make([]error, len(scenes))

	var wg sync.WaitGroup
	for i := range scenes {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			results[idx], errs[idx] = e.newSim().Run(ctx, scenes[idx], cfg)
		}(i)
	}

	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	return results, nil
}
