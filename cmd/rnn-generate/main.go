// Command rnn-generate prints the output of a trained recurrent network,
// one line per step.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"github.com/openfluke/rnngen/nn"
)

const version = "0.1.0"

const usage = "Usage: rnn-generate [-s seed] [-n steps] [-i index] rnn-file"

const tryHelp = "Try `rnn-generate -h' for more information."

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// run executes the command and returns the process exit code
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, err := parseOptions(args)
	switch {
	case errors.Is(err, errUsage):
		fmt.Fprintln(stderr, tryHelp)
		return 0
	case errors.Is(err, errMissingModel):
		fmt.Fprintf(stderr, "rnn-generate: %s\n%s\n", usage, tryHelp)
		return 0
	case err != nil:
		fmt.Fprintf(stderr, "rnn-generate: %v\n", err)
		return 1
	}

	if opts.showVersion {
		fmt.Fprintf(stdout, "rnn-generate version %s\n", version)
		return 0
	}
	if opts.showHelp {
		printHelp(stdout)
		return 0
	}

	logger, err := newLogger(stderr, opts.LogLevel)
	if err != nil {
		fmt.Fprintf(stderr, "rnn-generate: %v\n", err)
		return 1
	}

	if err := generate(ctx, opts, stdout, logger); err != nil {
		fmt.Fprintf(stderr, "rnn-generate: %v\n", err)
		return 1
	}
	return 0
}

func newLogger(w io.Writer, level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}

	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetLevel(lvl)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return logger, nil
}

// generate loads the model, initializes one runner and streams its outputs
func generate(ctx context.Context, opts options, stdout io.Writer, logger *logrus.Logger) error {
	params, err := nn.LoadModel(opts.modelPath)
	if errors.Is(err, nn.ErrIOFailure) {
		return fmt.Errorf("cannot open %s: %w", opts.modelPath, err)
	}
	if err != nil {
		return fmt.Errorf("cannot load %s: %w", opts.modelPath, err)
	}

	logger.WithFields(logrus.Fields{
		"model":          opts.modelPath,
		"id":             params.ID,
		"transition":     params.Transition.Name(),
		"input_size":     params.InputSize,
		"hidden_size":    params.HiddenSize,
		"output_size":    params.OutputSize,
		"initial_states": params.NumInitialStates(),
	}).Debug("model loaded")

	start := opts.initialState()
	runner := nn.NewRunner(params, rand.New(rand.NewSource(int64(opts.seed))))
	if err := runner.Initialize(start); err != nil {
		return err
	}

	logger.WithFields(logrus.Fields{
		"seed":  opts.seed,
		"init":  start.String(),
		"steps": opts.Steps,
	}).Debug("runner initialized")

	out := newLineWriter(bufio.NewWriter(stdout))
	err = nn.Generate(ctx, runner, int(max(opts.Steps, 0)), func(_ int, output []float64) error {
		return out.writeLine(output)
	})
	if err != nil {
		logger.WithError(err).WithField("step", runner.StepCount()).Info("generation stopped")
		return err
	}
	return nil
}

func printHelp(w io.Writer) {
	fmt.Fprintf(w, `rnn-generate - a program to display output of recurrent neural networks

%s
Usage: rnn-generate [-v] [-h]

Available options are:
-s seed
    Seed for the random number generator used to draw a random initial
    state. The same seed reproduces the same trajectory. If omitted, the
    current system time is used. Valid range: 1 to 4294967295.
-n steps
    Number of steps to generate. Default is %d.
-i index
    Index of the initial state stored for a training example. Default is
    %d (use a random initial state).
-v
    Print the version information and exit.
-h
    Print this help and exit.

Environment:
RNN_GENERATE_STEPS, RNN_GENERATE_INDEX
    Defaults for -n and -i.
RNN_GENERATE_LOG_LEVEL
    Diagnostic verbosity on stderr (panic, fatal, error, warn, info, debug,
    trace). Default is warn.

rnn-generate reads rnn-file to set up the model parameters, then prints the
output of the network for the given number of steps, starting from the
initial state selected by index. Each line holds one step, values separated
by tabs.
`, usage, defaultSteps, nn.RandomIndex)
}
