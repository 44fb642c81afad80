package main

import (
	"flag"
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	slogmulti "github.com/samber/slog-multi"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/they4kman/rgep/config"
	"github.com/they4kman/rgep/evolve"
	"github.com/they4kman/rgep/selection"
)

var numPrinter = message.NewPrinter(language.English)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg := config.Default()

	configPath := ""
	mode := "gep"
	target := "x*x + x + 1"
	selector := "sus"
	tournamentSize := 3
	cacheSize := 0

	flag.StringVar(&configPath, "config", configPath, "TOML file to read settings from. Flags given explicitly override it")
	flag.StringVar(&mode, "mode", mode, "gep: symbolic regression of -target; ga: maximize the sum of genome bytes")
	flag.StringVar(&target, "target", target, "Expression in x to fit in gep mode")
	flag.StringVar(&selector, "selector", selector, "Selection scheme: sus or tournament")
	flag.IntVar(&tournamentSize, "tournament-size", tournamentSize, "Number of entrants per tournament")
	flag.IntVar(&cacheSize, "cache", cacheSize, "Number of program fitnesses to remember in gep mode. 0 disables the cache")
	flag.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed. 0 seeds from the clock")
	flag.StringVar(&cfg.Log.Level, "log-level", cfg.Log.Level, "debug, info, warn or error")
	flag.StringVar(&cfg.Log.File, "log-file", cfg.Log.File, "Also write JSON logs to this file")

	flag.Float64Var(&cfg.GEP.ProbMut, "prob-mut", cfg.GEP.ProbMut, "Probability each bit flips per generation")
	flag.Float64Var(&cfg.GEP.ProbOnePointCrossover, "prob-one-point-crossover", cfg.GEP.ProbOnePointCrossover, "Probability each pair crosses over at one point")
	flag.Float64Var(&cfg.GEP.ProbTwoPointCrossover, "prob-two-point-crossover", cfg.GEP.ProbTwoPointCrossover, "Probability each pair crosses over at two points")
	flag.Float64Var(&cfg.GEP.ProbRotation, "prob-rotation", cfg.GEP.ProbRotation, "Probability each genome is rotated")
	flag.IntVar(&cfg.GEP.PopSize, "pop-size", cfg.GEP.PopSize, "Number of genomes in the population")
	flag.IntVar(&cfg.GEP.IndSize, "ind-size", cfg.GEP.IndSize, "Number of words in each genome")
	flag.IntVar(&cfg.GEP.Elitism, "elitism", cfg.GEP.Elitism, "Number of fittest genomes kept each generation")
	flag.IntVar(&cfg.GEP.NumGens, "num-gens", cfg.GEP.NumGens, "Number of generations to run")

	flag.IntVar(&cfg.GA.PopSize, "ga-pop-size", cfg.GA.PopSize, "Number of genomes in the population in ga mode")
	flag.IntVar(&cfg.GA.IndSize, "ga-ind-size", cfg.GA.IndSize, "Number of bytes in each genome in ga mode")
	flag.IntVar(&cfg.GA.NumGens, "ga-num-gens", cfg.GA.NumGens, "Number of generations to run in ga mode")

	flag.Parse()

	if configPath != "" {
		if err := loadConfig(cfg, configPath); err != nil {
			return err
		}
	} else if err := cfg.Validate(); err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	logger.Info("starting", "mode", mode, "seed", cfg.Seed)
	rng := rand.New(rand.NewSource(cfg.Seed))

	opts := []evolve.Option{evolve.WithLogger(logger)}
	switch selector {
	case "sus":
	case "tournament":
		elitism := cfg.GEP.Elitism
		if mode == "ga" {
			elitism = cfg.GA.Elitism
		}
		opts = append(opts, evolve.WithSelector(selection.Tournament{Size: tournamentSize, Prob: 0.9, Elitism: elitism}))
	default:
		return fmt.Errorf("unknown selector %q", selector)
	}

	switch mode {
	case "gep":
		if cacheSize > 0 {
			opts = append(opts, evolve.WithFitnessCache(cacheSize))
		}
		return runRegression(&cfg.GEP, target, rng, opts...)
	case "ga":
		return runOneMax(&cfg.GA, rng, opts...)
	default:
		return fmt.Errorf("unknown mode %q", mode)
	}
}

// loadConfig replaces cfg with the file's settings, then reapplies the flags given on the command line
func loadConfig(cfg *config.Config, path string) error {
	explicit := map[string]string{}
	flag.Visit(func(f *flag.Flag) {
		explicit[f.Name] = f.Value.String()
	})

	loaded, err := config.Load(path)
	if err != nil {
		return err
	}
	*cfg = *loaded

	for name, value := range explicit {
		if err := flag.Set(name, value); err != nil {
			return err
		}
	}
	return cfg.Validate()
}

func newLogger(cfg config.LogConfig) (*slog.Logger, func() error, error) {
	level, err := cfg.SlogLevel()
	if err != nil {
		return nil, nil, err
	}
	levelVar := new(slog.LevelVar)
	levelVar.Set(level)

	handlers := []slog.Handler{
		slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: levelVar}),
	}
	closeLog := func() error { return nil }
	if cfg.File != "" {
		f, err := os.OpenFile(cfg.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		handlers = append(handlers, slog.NewJSONHandler(f, &slog.HandlerOptions{Level: levelVar}))
		closeLog = f.Close
	}

	return slog.New(slogmulti.Fanout(handlers...)), closeLog, nil
}
