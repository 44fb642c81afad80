package main

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/they4kman/rgep/evolve"
	"github.com/they4kman/rgep/genome"
	"github.com/they4kman/rgep/program"
	"github.com/they4kman/rgep/symbols"
)

type sample struct {
	x, y float64
}

// samples evaluates target at the integers in [-5, 5]
func samples(target string) ([]sample, error) {
	var points []sample
	for x := -5.0; x <= 5; x++ {
		y, err := program.Evaluate(target, map[string]interface{}{"x": x}, symbols.ArithLanguage)
		if err != nil {
			return nil, fmt.Errorf("target %q: %w", target, err)
		}
		points = append(points, sample{x: x, y: y})
	}
	return points, nil
}

func cloneVariables(vars symbols.Variables) symbols.Variables {
	clone := make(symbols.Variables, len(vars))
	for k, v := range vars {
		clone[k] = v
	}
	return clone
}

func runRegression(params *evolve.Params, target string, rng *rand.Rand, opts ...evolve.Option) error {
	points, err := samples(target)
	if err != nil {
		return err
	}

	ctx, err := symbols.ArithContext("x")
	if err != nil {
		return err
	}

	fitness := func(prog program.Program[float64, symbols.Variables], vars symbols.Variables, _ *rand.Rand) float64 {
		errSum := 0.0
		for _, p := range points {
			vars["x"] = p.x
			errSum += math.Abs(prog.Eval(vars, ctx.Default) - p.y)
		}
		if math.IsNaN(errSum) || math.IsInf(errSum, 0) {
			return 0
		}
		return 1 / (1 + errSum/float64(len(points)))
	}

	opts = append(opts, evolve.WithState(symbols.Variables{"x": 0}, cloneVariables))
	gep, err := evolve.NewGEP(params, ctx, fitness, opts...)
	if err != nil {
		return err
	}

	numPrinter.Printf("Fitting: %s\n", target)
	numPrinter.Printf("%d genomes of %d words, %d bits per symbol, %d generations\n\n",
		params.PopSize, params.IndSize, ctx.BitsPerSym(), params.NumGens)

	result, err := gep.Run(rng)
	if err != nil {
		return err
	}

	printProgram(ctx, result.Best, result.BestFitness, points)
	return nil
}

func printProgram(ctx *program.Context[float64, symbols.Variables], best genome.Genome, fitness float64, points []sample) {
	prog := ctx.Compile(best)
	vars := symbols.Variables{}

	fmt.Printf("%s\n", best.Format(ctx.BitsPerSym()))
	fmt.Printf("  %s\n", prog)
	numPrinter.Printf("    fitness = %f\n\n", fitness)

	trees, err := program.BuildTree(prog, vars)
	if err != nil {
		fmt.Println(err)
		return
	}
	if len(trees) == 0 {
		fmt.Println("program leaves nothing on the stack")
		return
	}
	tree := trees[len(trees)-1]
	simplified := symbols.Simplify(tree, vars)
	fmt.Printf("expression: %s\n", tree.Infix())
	fmt.Printf("simplified: %s\n\n", simplified.Infix())

	for _, p := range points {
		vars["x"] = p.x
		stackValue := prog.Eval(vars, ctx.Default)
		exprValue, err := program.EvaluateNode(simplified, map[string]interface{}{"x": p.x}, symbols.ArithLanguage)
		if err != nil {
			fmt.Printf("x = %g: %v\n", p.x, err)
			continue
		}
		numPrinter.Printf("x = %g  target %g  program %g  expression %g\n", p.x, p.y, stackValue, exprValue)
	}
}
