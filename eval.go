package arith

import (
	"math"
)

// Evaluate computes the value of a tree. The angle unit applies to the
// trigonometric functions sin, cos, tg, and ctg. The result is always finite:
// any infinite or NaN value, including in a subtree, is reported as an
// overflow error instead.
//
// Evaluate is safe for concurrent use, provided no tree is modified while it
// is being evaluated.
func Evaluate(n Node, unit AngleUnit) (float64, error) {
	e := evaluator{unit: unit}
	return e.eval(n)
}

// Calculate is a shortcut to parse an expression and evaluate the result.
func Calculate(src string, unit AngleUnit) (float64, error) {
	n, err := Parse(src)
	if err != nil {
		return 0, err
	}
	return Evaluate(n, unit)
}

type evaluator struct {
	unit  AngleUnit
	depth int
}

// eval computes the value of a node, visiting the left subtree fully before
// the right.
func (e *evaluator) eval(n Node) (float64, error) {
	e.depth++
	defer func() { e.depth-- }()
	if e.depth > MaxDepth {
		return 0, &DepthError{}
	}
	switch n := n.(type) {
	case nil:
		return 0, &EmptyExpressionError{}
	case *Number:
		return finite(n.Value, "number")
	case *Ident:
		v, ok := consts[n.Name]
		if !ok {
			return 0, &NameError{Name: n.Name}
		}
		return v, nil
	case *UnaryOp:
		x, err := e.eval(n.Operand)
		if err != nil {
			return 0, err
		}
		switch n.Op {
		case Neg:
			return -x, nil
		default:
			panic("arith: invalid unary operator " + n.Op.String())
		}
	case *BinaryOp:
		l, err := e.eval(n.Left)
		if err != nil {
			return 0, err
		}
		r, err := e.eval(n.Right)
		if err != nil {
			return 0, err
		}
		var v float64
		switch n.Op {
		case Add:
			v = l + r
		case Sub:
			v = l - r
		case Mul:
			v = l * r
		case Div:
			if r == 0 {
				return 0, &DivisionError{X: l}
			}
			v = l / r
		case Pow:
			v = math.Pow(l, r)
		default:
			panic("arith: invalid binary operator " + n.Op.String())
		}
		return finite(v, n.Op.String())
	case *Call:
		fn, ok := funcs[n.Func]
		if !ok {
			return 0, &NameError{Name: n.Func, Func: true}
		}
		x, err := e.eval(n.Arg)
		if err != nil {
			return 0, err
		}
		v, err := fn.call(n.Func, x, e.unit)
		if err != nil {
			return 0, err
		}
		return finite(v, n.Func)
	default:
		panic(invalidNode(n))
	}
}

// finite reports an overflow if x is infinite or NaN. op names the node that
// produced x.
func finite(x float64, op string) (float64, error) {
	if math.IsInf(x, 0) || math.IsNaN(x) {
		return 0, &OverflowError{Op: op}
	}
	return x, nil
}
