package program

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// Node is one instruction of a program together with the sub-trees that produced its inputs.
// Children are kept in stack order: Children[0] was deepest on the stack.
type Node[V, S any] struct {
	Symbol   Symbol[V, S]
	Children []*Node[V, S]
}

var ErrTreeArity = errors.New("tree mode needs instructions with exactly one output")

type treeSymbol[V, S any] struct {
	sym Symbol[V, S]
}

// Tree wraps sym so that, instead of computing, it pops the nodes built for its inputs
// and pushes a single node holding them. Every tree symbol produces exactly one node.
func Tree[V, S any](sym Symbol[V, S]) Symbol[*Node[V, S], S] {
	return treeSymbol[V, S]{sym: sym}
}

func (t treeSymbol[V, S]) Name() string {
	return t.sym.Name()
}

func (t treeSymbol[V, S]) Arity() Arity {
	return NewArity(t.sym.Arity().NumIn, 1)
}

func (t treeSymbol[V, S]) Apply(stack *Stack[*Node[V, S]], _ S) {
	numIn := t.sym.Arity().NumIn
	node := &Node[V, S]{Symbol: t.sym}
	if numIn > 0 {
		node.Children = make([]*Node[V, S], numIn)
		for i := numIn - 1; i >= 0; i-- {
			node.Children[i] = stack.Pop()
		}
	}
	stack.Push(node)
}

func TreeProgram[V, S any](prog Program[V, S]) Program[*Node[V, S], S] {
	tree := make(Program[*Node[V, S], S], len(prog))
	for i, sym := range prog {
		tree[i] = Tree(sym)
	}
	return tree
}

// BuildTree runs prog in tree mode and returns the trees left on the stack, bottom first.
// The last tree is the one whose value the program returns. Every instruction of prog
// must push exactly one value; stack shuffles such as dup or drop have no tree form.
func BuildTree[V, S any](prog Program[V, S], state S) ([]*Node[V, S], error) {
	for i, sym := range prog {
		if numOut := sym.Arity().NumOut; numOut != 1 {
			return nil, fmt.Errorf("%w: %s at %d pushes %d values", ErrTreeArity, sym.Name(), i, numOut)
		}
	}

	stack := NewStack[*Node[V, S]](len(prog))
	TreeProgram(prog).Exec(stack, state)
	return stack.Values(), nil
}

func (n *Node[V, S]) IsLeaf() bool {
	return len(n.Children) == 0
}

func (n *Node[V, S]) Size() int {
	size := 1
	for _, child := range n.Children {
		size += child.Size()
	}
	return size
}

func (n *Node[V, S]) Depth() int {
	depth := 0
	for _, child := range n.Children {
		depth = max(depth, child.Depth())
	}
	return depth + 1
}

// Linearize flattens the tree back into a program computing the same value
func (n *Node[V, S]) Linearize() Program[V, S] {
	var prog Program[V, S]
	n.linearizeTo(&prog)
	return prog
}

func (n *Node[V, S]) linearizeTo(prog *Program[V, S]) {
	for _, child := range n.Children {
		child.linearizeTo(prog)
	}
	*prog = append(*prog, n.Symbol)
}

// Eval computes the node's value
func (n *Node[V, S]) Eval(state S) V {
	stack := NewStack[V](len(n.Children) + n.Symbol.Arity().NumOut)
	for _, child := range n.Children {
		stack.Push(child.Eval(state))
	}
	n.Symbol.Apply(stack, state)
	return stack.Pop()
}

// Infix renders the tree as an expression. Two-input instructions named by an operator
// render as "(a op b)"; anything else with inputs renders as a call "name(a, b)".
func (n *Node[V, S]) Infix() string {
	if n.IsLeaf() {
		return n.Symbol.Name()
	}

	name := n.Symbol.Name()
	if len(n.Children) == 2 && isOperator(name) {
		return "(" + n.Children[0].Infix() + " " + name + " " + n.Children[1].Infix() + ")"
	}

	args := make([]string, len(n.Children))
	for i, child := range n.Children {
		args[i] = child.Infix()
	}
	return name + "(" + strings.Join(args, ", ") + ")"
}

func (n *Node[V, S]) String() string {
	return n.Infix()
}

func isOperator(name string) bool {
	for _, r := range name {
		return !(unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_')
	}
	return false
}

// Fold replaces every single-output sub-tree whose leaves are all constants with the
// constant it evaluates to. Single-output functions are assumed to be pure.
func Fold[V, S any](n *Node[V, S], state S) *Node[V, S] {
	if n.IsLeaf() {
		return n
	}

	folded := &Node[V, S]{Symbol: n.Symbol, Children: make([]*Node[V, S], len(n.Children))}
	allConst := true
	for i, child := range n.Children {
		folded.Children[i] = Fold(child, state)
		if _, ok := folded.Children[i].Symbol.(Valuer[V]); !ok || !folded.Children[i].IsLeaf() {
			allConst = false
		}
	}

	if !allConst || n.Symbol.Arity().NumOut != 1 {
		return folded
	}

	value := folded.Eval(state)
	return &Node[V, S]{Symbol: Const[V, S](fmt.Sprint(value), value)}
}
