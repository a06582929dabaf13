// Package main provides the nero training CLI.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/pkg/errors"

	"github.com/born-ml/nero/internal/autodiff"
	"github.com/born-ml/nero/internal/config"
	"github.com/born-ml/nero/internal/dataset"
	"github.com/born-ml/nero/internal/nn"
	"github.com/born-ml/nero/internal/optim"
	"github.com/born-ml/nero/internal/trainer"
)

const version = "v0.1.0-dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, log.Default()); err != nil {
		log.Fatalf("nero: %v", err)
	}
}

// layoutFlag parses a comma separated list of layer widths.
type layoutFlag []int

func (l *layoutFlag) String() string {
	parts := make([]string, len(*l))
	for i, w := range *l {
		parts[i] = strconv.Itoa(w)
	}
	return strings.Join(parts, ",")
}

func (l *layoutFlag) Set(v string) error {
	var widths []int
	for _, p := range strings.Split(v, ",") {
		w, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return errors.Wrapf(err, "layout %q", v)
		}
		widths = append(widths, w)
	}
	*l = widths
	return nil
}

func run(ctx context.Context, args []string, stdout io.Writer, logger *log.Logger) error {
	fs := flag.NewFlagSet("nero", flag.ContinueOnError)
	cfgPath := fs.String("config", "", "Path to YAML config (optional)")
	name := fs.String("dataset", "", "Dataset: "+strings.Join(dataset.Names(), ", "))
	bits := fs.Int("bits", 0, "Operand width for adder, log2 of the sample count for double")
	activation := fs.String("activation", "", "Activation: sigmoid, tanh or relu")
	epochs := fs.Int("epochs", 0, "Number of epochs")
	lr := fs.Float64("lr", 0, "Learning rate")
	lrMin := fs.Float64("lr-min", 0, "Learning rate floor")
	lrMul := fs.Float64("lr-mul", 0, "Learning rate multiplier")
	learnPerTick := fs.Int("learn-per-tick", 0, "Epochs per tick")
	batchCount := fs.Int("batch-count", 0, "Minibatches per epoch")
	seed := fs.Int64("seed", 0, "PRNG seed (0 derives one from the clock)")
	logEvery := fs.Int("log-every", 0, "Log every N epochs (0 disables progress logging)")
	showVersion := fs.Bool("version", false, "Show version")
	var layout layoutFlag
	fs.Var(&layout, "layout", "Layer widths, e.g. 2,2,1 (default: the dataset's)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *showVersion || fs.Arg(0) == "version" {
		fmt.Fprintf(stdout, "nero %s\n", version)
		return nil
	}

	overrides := config.Overrides{
		Dataset:         *name,
		Bits:            *bits,
		Layout:          layout,
		Activation:      *activation,
		Epochs:          *epochs,
		LearnPerTick:    *learnPerTick,
		BatchCount:      *batchCount,
		LearningRate:    float32(*lr),
		MinLearningRate: float32(*lrMin),
		LearningRateMul: float32(*lrMul),
		Seed:            *seed,
	}
	fs.Visit(func(f *flag.Flag) {
		if f.Name == "log-every" {
			overrides.LogEvery = logEvery
		}
	})

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	cfg.ApplyOverrides(overrides)
	if err := cfg.Validate(); err != nil {
		return errors.Wrap(err, "invalid config")
	}
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	set, err := dataset.Lookup(cfg.Dataset, cfg.Bits)
	if err != nil {
		return err
	}
	if cfg.Layout == nil {
		cfg.Layout = set.Layout
	}
	act, _ := nn.ActivationByName(cfg.Activation)
	net := nn.NewWithActivation(act, cfg.Layout...)

	rng := rand.New(rand.NewSource(cfg.Seed))
	net.Randomize(rng, 0, 1)

	logger.Printf("dataset=%s rows=%d layout=%v activation=%s seed=%d params=%d",
		set.Name, set.Rows(), net.Layout(), act.Name(), cfg.Seed, net.NumParams())

	session, err := trainer.NewSession(net, set.In, set.Out, rng, trainer.Options{
		Epochs:       cfg.Epochs,
		LearnPerTick: cfg.LearnPerTick,
		BatchCount:   cfg.BatchCount,
		SGD: optim.SGDConfig{
			LR:    cfg.LearningRate,
			MinLR: cfg.MinLearningRate,
			Mul:   cfg.LearningRateMul,
		},
		HistorySize: cfg.History,
		LogEvery:    cfg.LogEvery,
		Logger:      logger,
	})
	if err != nil {
		return err
	}

	start := time.Now()
	if err := session.Run(ctx); err != nil {
		if !errors.Is(err, context.Canceled) {
			return errors.Wrap(err, "training failed")
		}
		logger.Printf("interrupted at epoch=%d", session.Epoch())
	}
	logger.Printf("trained epochs=%d elapsed=%s", session.Epoch(), time.Since(start).Round(time.Millisecond))

	for i := 0; i < set.Rows(); i++ {
		out := net.Predict(set.In.Row(i))
		fmt.Fprintf(stdout, "%v -> %v (want %v)\n", formatRow(set.In.Row(i).Values()), formatRow(out.Values()), formatRow(set.Out.Row(i).Values()))
	}
	fmt.Fprintf(stdout, "cost: %.6f\n", autodiff.Cost(net, set.In, set.Out))
	fmt.Fprintf(stdout, "accuracy: %.2f%%\n", 100*trainer.Accuracy(net, set.In, set.Out, 0.5))
	return nil
}

func formatRow(values []float64) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.FormatFloat(v, 'f', 3, 64)
	}
	return "[" + strings.Join(parts, " ") + "]"
}
