package nn

import (
	"context"
	"fmt"
	"math/rand"

	"golang.org/x/sync/errgroup"
)

// Generate steps an initialized runner steps times, handing each output to
// emit. The slice passed to emit is reused between calls. Generation stops at
// the first error from the runner, emit or ctx.
func Generate(ctx context.Context, r *Runner, steps int, emit func(step int, output []float64) error) error {
	out := make([]float64, r.OutputSize())
	for n := 0; n < steps; n++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := r.Step(); err != nil {
			return err
		}
		r.OutputInto(out)
		if err := emit(n, out); err != nil {
			return err
		}
	}
	return nil
}

// TrajectoryRequest describes one independent replay of a model
type TrajectoryRequest struct {
	Init  InitialState
	Seed  int64 // seeds the random source used by random initialization
	Steps int
}

// GenerateTrajectories replays every request on its own Runner sharing params
// and returns the outputs indexed [request][step][component]. At most workers
// requests run at once (unbounded when workers <= 0). Results are identical to
// running the requests one after another.
func GenerateTrajectories(ctx context.Context, params *Parameters, requests []TrajectoryRequest, workers int) ([][][]float64, error) {
	results := make([][][]float64, len(requests))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}

	for i, req := range requests {
		i, req := i, req
		g.Go(func() error {
			runner := NewRunner(params, rand.New(rand.NewSource(req.Seed)))
			if err := runner.Initialize(req.Init); err != nil {
				return fmt.Errorf("trajectory %d: %w", i, err)
			}

			trajectory := make([][]float64, 0, max(req.Steps, 0))
			err := Generate(ctx, runner, req.Steps, func(_ int, output []float64) error {
				trajectory = append(trajectory, append([]float64(nil), output...))
				return nil
			})
			if err != nil {
				return fmt.Errorf("trajectory %d: %w", i, err)
			}
			results[i] = trajectory
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
