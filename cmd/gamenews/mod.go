// Package main implements a command line tool that plays scripts of video game
// leaks followed by gamers.
//
//	go run . demo
//	go run . demo --seed 42 --metrics
//	go run . run --script leaks.yml
package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
	"go.dedis.ch/gamenews"
	"go.dedis.ch/gamenews/cli"
	"go.dedis.ch/gamenews/cli/ucli"
	"go.dedis.ch/gamenews/scenario"
	"go.dedis.ch/gamenews/videogame"
	"golang.org/x/xerrors"
)

type config struct {
	Writer io.Writer
}

func main() {
	err := run(os.Args)
	if err != nil {
		gamenews.Logger.Fatal().Err(err).Send()
	}
}

func run(args []string) error {
	return runWithCfg(args, config{Writer: os.Stdout})
}

func runWithCfg(args []string, cfg config) error {
	builder := ucli.NewBuilder("gamenews", nil)
	builder.SetUsage("follow the leaks of an upcoming video game")

	common := []cli.Flag{
		cli.IntFlag{
			Name:  "seed",
			Usage: "seed of the severity of the leaks, random when zero",
		},
		cli.BoolFlag{
			Name:  "metrics",
			Usage: "prints the metrics after the script",
		},
	}

	demo := builder.SetCommand("demo")
	demo.SetDescription("play the demonstration script")
	demo.SetFlags(common...)
	demo.SetAction(func(flags cli.Flags) error {
		return play(flags, scenario.Default(), cfg.Writer)
	})

	script := builder.SetCommand("run")
	script.SetDescription("play a YAML script")
	script.SetFlags(append([]cli.Flag{
		cli.StringFlag{
			Name:     "script",
			Usage:    "path to the YAML script",
			Required: true,
		},
	}, common...)...)
	script.SetAction(func(flags cli.Flags) error {
		s, err := scenario.Load(flags.String("script"))
		if err != nil {
			return xerrors.Errorf("failed to load: %v", err)
		}

		return play(flags, s, cfg.Writer)
	})

	return builder.Build().Run(args)
}

// play runs the script and optionally prints the metrics.
func play(flags cli.Flags, script scenario.Script, out io.Writer) error {
	var opts []scenario.RunnerOption

	seed := flags.Int("seed")
	if seed != 0 {
		r := rand.New(rand.NewSource(int64(seed)))
		opts = append(opts, scenario.WithSubjectOptions(videogame.WithRandom(r)))
	}

	runner := scenario.NewRunner(out, opts...)

	err := runner.Run(context.Background(), script)
	if err != nil {
		return xerrors.Errorf("failed to play: %v", err)
	}

	if flags.Bool("metrics") {
		err = printMetrics(out)
		if err != nil {
			return xerrors.Errorf("metrics: %v", err)
		}
	}

	return nil
}

// printMetrics writes the collectors of the module in the text format.
func printMetrics(out io.Writer) error {
	registry := prometheus.NewRegistry()

	for _, c := range gamenews.PromCollectors {
		err := registry.Register(c)
		if err != nil {
			return xerrors.Errorf("failed to register: %v", err)
		}
	}

	families, err := registry.Gather()
	if err != nil {
		return xerrors.Errorf("failed to gather: %v", err)
	}

	fmt.Fprintln(out)

	for _, family := range families {
		_, err = expfmt.MetricFamilyToText(out, family)
		if err != nil {
			return xerrors.Errorf("failed to write: %v", err)
		}
	}

	return nil
}
