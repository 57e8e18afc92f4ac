package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math"
	"strconv"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/openfluke/rnngen/nn"
)

const (
	defaultSteps = 1000
	maxSeed      = math.MaxUint32
)

var (
	errInvalidSeed  = errors.New("seed for random number generator not in valid range: 1 <= x <= 4294967295 (integer)")
	errUsage        = errors.New("invalid command line")
	errMissingModel = errors.New("missing model file")
)

// now is replaced in tests
var now = time.Now

// config holds defaults read from the environment; flags override them
type config struct {
	Steps    int64  `env:"RNN_GENERATE_STEPS" envDefault:"1000"`
	Index    int    `env:"RNN_GENERATE_INDEX" envDefault:"-1"`
	LogLevel string `env:"RNN_GENERATE_LOG_LEVEL" envDefault:"warn"`
}

type options struct {
	config

	seed        uint32
	modelPath   string
	showHelp    bool
	showVersion bool
}

// parseOptions loads env defaults and then parses args. Help and version
// requests are returned without validating the rest of the command line.
func parseOptions(args []string) (options, error) {
	var opts options
	if err := env.Parse(&opts.config); err != nil {
		return options{}, fmt.Errorf("parse env: %w", err)
	}

	var seedArg string
	fs := flag.NewFlagSet("rnn-generate", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.StringVar(&seedArg, "s", "", "seed for the random number generator")
	fs.Int64Var(&opts.Steps, "n", opts.Steps, "number of steps")
	fs.IntVar(&opts.Index, "i", opts.Index, "index of the stored initial state")
	fs.BoolVar(&opts.showVersion, "v", false, "print version")
	fs.BoolVar(&opts.showHelp, "h", false, "print help")

	operands, err := parsePermuted(fs, args)
	if err != nil {
		return options{}, err
	}
	if opts.showHelp || opts.showVersion {
		return opts, nil
	}

	if seedArg != "" {
		seed, err := parseSeed(seedArg)
		if err != nil {
			return options{}, err
		}
		opts.seed = seed
	} else {
		opts.seed = defaultSeed(now())
	}

	switch len(operands) {
	case 0:
		return options{}, errMissingModel
	case 1:
		opts.modelPath = operands[0]
		return opts, nil
	default:
		return options{}, fmt.Errorf("%w: unexpected argument %q", errUsage, operands[1])
	}
}

// parsePermuted parses flags anywhere in args, getopt style, and returns the
// operands in order. Everything after "--" is an operand.
func parsePermuted(fs *flag.FlagSet, args []string) ([]string, error) {
	var operands []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, fmt.Errorf("%w: %w", errUsage, err)
		}
		rest := fs.Args()
		if len(rest) == 0 {
			return operands, nil
		}
		if consumed := len(args) - len(rest); consumed > 0 && args[consumed-1] == "--" {
			return append(operands, rest...), nil
		}
		operands = append(operands, rest[0])
		args = rest[1:]
	}
}

// parseSeed accepts decimal, 0x-prefixed hex and 0-prefixed octal seeds in [1, 2^32-1]
func parseSeed(s string) (uint32, error) {
	seed, err := strconv.ParseUint(s, 0, 64)
	if err != nil || seed == 0 || seed > maxSeed {
		return 0, errInvalidSeed
	}
	return uint32(seed), nil
}

func defaultSeed(t time.Time) uint32 {
	return uint32(uint64(t.Unix())%maxSeed + 1)
}

// initialState maps the -i value onto the runner's initial-state choice
func (o options) initialState() nn.InitialState {
	return nn.InitialStateFromIndex(o.Index)
}
