package symbols

import (
	"math"

	"github.com/PaesslerAG/gval"

	"github.com/they4kman/rgep/program"
)

// Variables binds the names read by Var terminals
type Variables map[string]float64

func Add[S any]() program.Instruction[float64, S] {
	return program.Binary[float64, S]("+", func(a, b float64) float64 { return a + b })
}

func Sub[S any]() program.Instruction[float64, S] {
	return program.Binary[float64, S]("-", func(a, b float64) float64 { return a - b })
}

func Mul[S any]() program.Instruction[float64, S] {
	return program.Binary[float64, S]("*", func(a, b float64) float64 { return a * b })
}

// Div divides the second value by the top value, pushing 0 when the top value is 0
func Div[S any]() program.Instruction[float64, S] {
	return program.Binary[float64, S]("/", safeDiv)
}

// Mod pushes the floating-point remainder of the second value by the top value, or 0 when the top value is 0
func Mod[S any]() program.Instruction[float64, S] {
	return program.Binary[float64, S]("%", safeMod)
}

func safeDiv(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return a / b
}

func safeMod(a, b float64) float64 {
	if b == 0 {
		return 0
	}
	return math.Mod(a, b)
}

// Var pushes the value bound to name, or 0 when name is unbound
func Var(name string) program.Instruction[float64, Variables] {
	return program.Func(name, program.NewArity(0, 1), func(stack *program.Stack[float64], vars Variables) {
		stack.Push(vars[name])
	})
}

// ArithFunctions are the binary operators + - * / %
func ArithFunctions[S any]() []program.Symbol[float64, S] {
	return []program.Symbol[float64, S]{Add[S](), Sub[S](), Mul[S](), Div[S](), Mod[S]()}
}

// ArithConstants are the terminals 0, 1 and 2
func ArithConstants[S any]() []program.Symbol[float64, S] {
	return []program.Symbol[float64, S]{
		program.Const[float64, S]("0", 0),
		program.Const[float64, S]("1", 1),
		program.Const[float64, S]("2", 2),
	}
}

// ArithContext builds the symbolic regression instruction set: the constants 0, 1, 2 and
// one terminal per variable name, combined with the arithmetic operators.
func ArithContext(varNames ...string) (*program.Context[float64, Variables], error) {
	terminals := ArithConstants[Variables]()
	for _, name := range varNames {
		terminals = append(terminals, Var(name))
	}
	return program.NewContext(terminals, ArithFunctions[Variables](), 0)
}

// ArithLanguage evaluates rendered arithmetic trees the way the stack instructions compute them
var ArithLanguage = gval.NewLanguage(
	gval.Arithmetic(),
	gval.InfixNumberOperator("/", func(a, b float64) (interface{}, error) {
		return safeDiv(a, b), nil
	}),
	gval.InfixNumberOperator("%", func(a, b float64) (interface{}, error) {
		return safeMod(a, b), nil
	}),
)

func zeroNode[S any]() *program.Node[float64, S] {
	return &program.Node[float64, S]{Symbol: program.Const[float64, S]("0", 0)}
}

func isConstant[S any](n *program.Node[float64, S], value float64) bool {
	if !n.IsLeaf() {
		return false
	}
	c, ok := n.Symbol.(program.Valuer[float64])
	return ok && c.Value() == value
}

// Simplify folds constant sub-trees of an arithmetic tree and removes the identities
// x+0, 0+x, x-0, x*1, 1*x, x/1, and the annihilators x*0, 0*x, x/0, x%0.
// Results may differ from the unsimplified tree when x evaluates to an infinity or NaN.
func Simplify[S any](n *program.Node[float64, S], state S) *program.Node[float64, S] {
	if n.IsLeaf() {
		return n
	}

	simplified := &program.Node[float64, S]{Symbol: n.Symbol, Children: make([]*program.Node[float64, S], len(n.Children))}
	for i, child := range n.Children {
		simplified.Children[i] = Simplify(child, state)
	}
	simplified = program.Fold(simplified, state)
	if len(simplified.Children) != 2 {
		return simplified
	}

	a, b := simplified.Children[0], simplified.Children[1]
	switch simplified.Symbol.Name() {
	case "+":
		if isConstant(a, 0) {
			return b
		}
		if isConstant(b, 0) {
			return a
		}
	case "-":
		if isConstant(b, 0) {
			return a
		}
	case "*":
		if isConstant(a, 0) || isConstant(b, 0) {
			return zeroNode[S]()
		}
		if isConstant(a, 1) {
			return b
		}
		if isConstant(b, 1) {
			return a
		}
	case "/":
		if isConstant(b, 0) {
			return zeroNode[S]()
		}
		if isConstant(b, 1) {
			return a
		}
	case "%":
		if isConstant(b, 0) {
			return zeroNode[S]()
		}
	}
	return simplified
}
