package nn

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGenerateEmitsEveryStep(t *testing.T) {
	runner := NewRunner(identityPlusBias(t), nil)
	require.NoError(t, runner.Initialize(UseStoredIndex(0)))

	var steps []int
	var outputs []float64
	err := Generate(context.Background(), runner, 3, func(step int, output []float64) error {
		steps = append(steps, step)
		outputs = append(outputs, output...)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 2}, steps)
	require.Equal(t, []float64{1.5, 3, 4.5}, outputs)
}

func TestGenerateZeroSteps(t *testing.T) {
	runner := NewRunner(identityPlusBias(t), nil)
	require.NoError(t, runner.Initialize(UseStoredIndex(0)))

	err := Generate(context.Background(), runner, 0, func(int, []float64) error {
		t.Fatal("emit called for zero steps")
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, uint64(0), runner.StepCount())
}

func TestGenerateStopsOnError(t *testing.T) {
	runner := NewRunner(identityPlusBias(t), nil)
	require.ErrorIs(t, Generate(context.Background(), runner, 1, func(int, []float64) error { return nil }), ErrNotInitialized)

	require.NoError(t, runner.Initialize(UseStoredIndex(0)))
	stop := errors.New("stop")
	calls := 0
	err := Generate(context.Background(), runner, 10, func(step int, _ []float64) error {
		calls++
		if step == 1 {
			return stop
		}
		return nil
	})
	require.ErrorIs(t, err, stop)
	require.Equal(t, 2, calls)
}

func TestGenerateHonorsCancellation(t *testing.T) {
	runner := NewRunner(identityPlusBias(t), nil)
	require.NoError(t, runner.Initialize(UseStoredIndex(0)))

	ctx, cancel := context.WithCancel(context.Background())
	err := Generate(ctx, runner, 100, func(step int, _ []float64) error {
		if step == 4 {
			cancel()
		}
		return nil
	})
	require.ErrorIs(t, err, context.Canceled)
	require.Equal(t, uint64(5), runner.StepCount())
}

func TestGenerateTrajectoriesMatchesSequentialRuns(t *testing.T) {
	params := tanhModel(t)
	requests := []TrajectoryRequest{
		{Init: UseRandom(), Seed: 1, Steps: 20},
		{Init: UseRandom(), Seed: 2, Steps: 20},
		{Init: UseStoredIndex(0), Seed: 3, Steps: 15},
		{Init: UseStoredIndex(1), Seed: 4, Steps: 0},
		{Init: UseRandom(), Seed: 1, Steps: 5},
	}

	got, err := GenerateTrajectories(context.Background(), params, requests, 2)
	require.NoError(t, err)
	require.Len(t, got, len(requests))

	for i, req := range requests {
		runner := NewRunner(params, rand.New(rand.NewSource(req.Seed)))
		require.NoError(t, runner.Initialize(req.Init))

		want := [][]float64{}
		for n := 0; n < req.Steps; n++ {
			require.NoError(t, runner.Step())
			want = append(want, runner.Output())
		}
		require.Equal(t, want, got[i], "request %d", i)
	}

	// Same seed, same trajectory prefix
	require.Equal(t, got[0][:5], got[4])
}

func TestGenerateTrajectoriesReportsInvalidIndex(t *testing.T) {
	params := tanhModel(t)
	requests := []TrajectoryRequest{
		{Init: UseStoredIndex(0), Steps: 3},
		{Init: UseStoredIndex(params.NumInitialStates()), Steps: 3},
	}

	_, err := GenerateTrajectories(context.Background(), params, requests, 0)
	require.ErrorIs(t, err, ErrInvalidIndex)
}
