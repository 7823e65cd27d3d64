package sim

import (
	"context"
	"fmt"
	"runtime"
	"sync"

	"github.com/san-kum/sixdof/internal/control"
	"github.com/san-kum/sixdof/internal/dynamo"
	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// Ensemble runs independent bodies in parallel. Actuators and metrics carry
// per-run memory, so each run gets fresh ones from the factories.
type Ensemble struct {
	integrator  dynamo.Integrator
	newActuator func() control.Actuator
	newMetrics  func() []Metric
	logger      *zap.Logger
}

// NewEnsemble returns an Ensemble. Either factory may be nil.
func NewEnsemble(integrator dynamo.Integrator, newActuator func() control.Actuator, newMetrics func() []Metric, logger *zap.Logger) *Ensemble {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ensemble{
		integrator:  integrator,
		newActuator: newActuator,
		newMetrics:  newMetrics,
		logger:      logger,
	}
}

// Run simulates every body with cfg. Results are index-aligned with bodies;
// a failed run leaves a nil entry and its error is combined into the
// returned error.
func (e *Ensemble) Run(ctx context.Context, bodies []*dynamo.State, cfg Config) ([]*Result, error) {
	results := make([]*Result, len(bodies))
	errs := make([]error, len(bodies))

	ParallelFor(len(bodies), 1, func(start, end int) {
		for i := start; i < end; i++ {
			var act control.Actuator
			if e.newActuator != nil {
				act = e.newActuator()
			}

			s := New(e.integrator, act, WithLogger(e.logger.With(zap.Int("body", i))))
			if e.newMetrics != nil {
				for _, m := range e.newMetrics() {
					s.AddMetric(m)
				}
			}

			res, err := s.Run(ctx, bodies[i], cfg)
			if err != nil {
				errs[i] = fmt.Errorf("body %d: %w", i, err)
				continue
			}
			results[i] = res
		}
	})

	return results, multierr.Combine(errs...)
}

// StepAll advances every body by dt in parallel. ext supplies the external
// moment per body and may be nil.
func StepAll(bodies []*dynamo.State, integ dynamo.Integrator, dt float64, ext func(i int) dynamo.Moment) error {
	errs := make([]error, len(bodies))

	ParallelFor(len(bodies), 16, func(start, end int) {
		for i := start; i < end; i++ {
			var m dynamo.Moment
			if ext != nil {
				m = ext(i)
			}
			if err := bodies[i].StepWith(integ, dt, m); err != nil {
				errs[i] = fmt.Errorf("body %d: %w", i, err)
			}
		}
	})

	return multierr.Combine(errs...)
}

// ParallelFor executes a function in parallel over a range [0, n)
func ParallelFor(n, minChunk int, fn func(start, end int)) {
	if minChunk < 1 {
		minChunk = 1
	}
	numWorkers := runtime.GOMAXPROCS(0)
	if n <= minChunk || numWorkers <= 1 {
		fn(0, n)
		return
	}

	workers := numWorkers
	if n/minChunk < workers {
		workers = n / minChunk
	}
	if workers < 1 {
		workers = 1
	}

	chunkSize := (n + workers - 1) / workers

	var wg sync.WaitGroup
	for start := 0; start < n; start += chunkSize {
		end := start + chunkSize
		if end > n {
			end = n
		}

		wg.Add(1)
		go func(s, e int) {
			defer wg.Done()
			fn(s, e)
		}(start, end)
	}

	wg.Wait()
}
