// Package main provides the perceptron CLI.
//
// Usage:
//
//	perceptron train -config xor.yaml [-out xor.born] [-every 100] [-quiet] [-v]
//	perceptron eval  -config xor.yaml -model xor.born
//	perceptron check -config xor.yaml [-epsilon 1e-6] [-tol 1e-5]
//	perceptron version
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/born-ml/perceptron/internal/config"
	"github.com/born-ml/perceptron/internal/nn"
	"github.com/born-ml/perceptron/internal/optim"
	"github.com/born-ml/perceptron/internal/serialization"
)

const version = "v0.1.0"

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 2
	}

	var err error
	switch args[0] {
	case "train":
		err = runTrain(args[1:], stdout, stderr)
	case "eval":
		err = runEval(args[1:], stdout, stderr)
	case "check":
		err = runCheck(args[1:], stdout, stderr)
	case "version":
		_, _ = fmt.Fprintf(stdout, "perceptron %s\n", version)
		return 0
	case "help", "-h", "--help":
		usage(stdout)
		return 0
	default:
		_, _ = fmt.Fprintf(stderr, "unknown command %q\n\n", args[0])
		usage(stderr)
		return 2
	}

	if errors.Is(err, flag.ErrHelp) {
		return 0
	}
	if err != nil {
		_, _ = fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func usage(w io.Writer) {
	_, _ = fmt.Fprintln(w, "perceptron - sigmoid MLP trainer")
	_, _ = fmt.Fprintf(w, "Version: %s\n\n", version)
	_, _ = fmt.Fprintln(w, "Commands:")
	_, _ = fmt.Fprintln(w, "  train      Train a network from a YAML config")
	_, _ = fmt.Fprintln(w, "  eval       Evaluate a saved model on a config's dataset")
	_, _ = fmt.Fprintln(w, "  check      Compare backprop against finite differences")
	_, _ = fmt.Fprintln(w, "  version    Show version")
}

func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return nil, errors.New("-config is required")
	}
	return config.Load(path)
}

func runTrain(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("train", stderr)
	cfgPath := fs.String("config", "", "Training config (YAML)")
	out := fs.String("out", "", "Write the trained model to this .born file")
	every := fs.Int("every", 1, "Print the cost every N iterations")
	quiet := fs.Bool("quiet", false, "Do not print per-iteration costs")
	verbose := fs.Bool("v", false, "Debug logging to stderr")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	sizes, err := cfg.LayerSizes()
	if err != nil {
		return err
	}
	tc, err := cfg.TrainerConfig()
	if err != nil {
		return err
	}
	if *verbose {
		tc.Logger = slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
	if !*quiet && *every > 0 {
		tc.OnIteration = func(p optim.Progress) {
			if (p.Iteration+1)%*every == 0 {
				_, _ = fmt.Fprintf(stdout, "iteration %d: cost %.6f\n", p.Iteration+1, p.Cost)
			}
		}
	}

	effective := optim.NewTrainer(tc).Config()

	net, result, err := optim.Fit(sizes, cfg.Generator(), cfg.Dataset(), tc)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout, "trained %v with %s: final cost %.6f\n", net.Sizes(), effective.Strategy.Name(), result.FinalCost())

	if *out != "" {
		err := serialization.SaveFile(*out, result.Model, serialization.SaveOptions{
			Metadata: map[string]string{"config": *cfgPath},
			Training: &serialization.TrainingMeta{
				Strategy:     effective.Strategy.Name(),
				LearningRate: effective.LearningRate,
				Iterations:   len(result.Costs),
				FinalCost:    result.FinalCost(),
			},
		})
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(stdout, "saved %s\n", *out)
	}
	return nil
}

func runEval(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("eval", stderr)
	cfgPath := fs.String("config", "", "Config whose dataset is evaluated (YAML)")
	modelPath := fs.String("model", "", "Trained model (.born)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *modelPath == "" {
		return errors.New("-model is required")
	}

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	net, _, err := serialization.LoadNetwork(*modelPath)
	if err != nil {
		return err
	}

	data := cfg.Dataset()
	if err := data.Validate(net.InputSize(), net.OutputSize()); err != nil {
		return fmt.Errorf("model %v does not fit dataset: %w", net.Sizes(), err)
	}
	for _, ex := range data {
		out, err := net.Forward(ex.Input)
		if err != nil {
			return err
		}
		_, _ = fmt.Fprintf(stdout, "%v -> %.4f (expected %v)\n", ex.Input, out, ex.Expected)
	}
	cost, err := net.Cost(data)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(stdout, "cost %.6f\n", cost)
	return nil
}

func runCheck(args []string, stdout, stderr io.Writer) error {
	fs := newFlagSet("check", stderr)
	cfgPath := fs.String("config", "", "Training config (YAML)")
	epsilon := fs.Float64("epsilon", 1e-6, "Finite-difference step")
	tol := fs.Float64("tol", 1e-5, "Maximum absolute gradient difference")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := loadConfig(*cfgPath)
	if err != nil {
		return err
	}
	sizes, err := cfg.LayerSizes()
	if err != nil {
		return err
	}
	net, err := nn.NewNetwork(sizes, cfg.Generator())
	if err != nil {
		return err
	}

	report, err := optim.CheckGradients(net, cfg.Dataset(), *epsilon, *tol)
	_, _ = fmt.Fprintf(stdout, "max abs error %.3g, max rel error %.3g\n", report.MaxAbsError, report.MaxRelError)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintln(stdout, "gradients ok")
	return nil
}
