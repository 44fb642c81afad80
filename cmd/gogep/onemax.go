package main

import (
	"fmt"
	"math/rand"

	"github.com/they4kman/rgep/evolve"
	"github.com/they4kman/rgep/genome"
)

func sumOfBytes(g genome.Genome, _ *rand.Rand) float64 {
	sum := 0.0
	for _, word := range g {
		sum += float64(word)
	}
	return sum
}

func runOneMax(params *evolve.GAParams, rng *rand.Rand, opts ...evolve.Option) error {
	ga, err := evolve.NewGA(params, sumOfBytes, opts...)
	if err != nil {
		return err
	}

	numPrinter.Printf("Maximizing the byte sum of %d genomes of %d bytes over %d generations\n\n",
		params.PopSize, params.IndSize, params.NumGens)

	result, err := ga.Run(rng)
	if err != nil {
		return err
	}

	for _, stats := range result.History {
		if stats.Generation%100 == 0 {
			numPrinter.Printf("Generation %d: best %.0f, mean %.1f\n", stats.Generation, stats.Best, stats.Mean)
		}
	}

	fmt.Printf("\n%s\n", result.Best)
	numPrinter.Printf("    sum = %.0f of %d\n", result.BestFitness, 255*params.IndSize)
	return nil
}
