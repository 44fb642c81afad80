package program

import (
	"fmt"

	"github.com/PaesslerAG/gval"
)

// Evaluate computes a rendered infix expression with gval. vars binds the
// names of variable terminals; lang supplies the operators and functions used.
func Evaluate(expression string, vars map[string]interface{}, lang gval.Language) (float64, error) {
	result, err := gval.Evaluate(expression, vars, lang)
	if err != nil {
		return 0, err
	}

	switch v := result.(type) {
	case float64:
		return v, nil
	case int:
		return float64(v), nil
	case int64:
		return float64(v), nil
	case bool:
		if v {
			return 1, nil
		}
		return 0, nil
	default:
		return 0, fmt.Errorf("expression %q evaluated to %T, expected a number", expression, result)
	}
}

// EvaluateNode renders n and evaluates it with gval
func EvaluateNode[V, S any](n *Node[V, S], vars map[string]interface{}, lang gval.Language) (float64, error) {
	return Evaluate(n.Infix(), vars, lang)
}
