package arith_test

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/zephyrtronium/arith"
)

func TestParseTreeRoundTrip(t *testing.T) {
	cases := []struct {
		src  string
		tree string
	}{
		{"2 + 3 * 4", "Add(2, Mult(3, 4))"},
		{"2^3^2", "Pow(2, Pow(3, 2))"},
		{"1 - 2 - 3", "Sub(Sub(1, 2), 3)"},
		{"-2^2", "Pow(Neg(2), 2)"},
		{"sqrt(16) / pi", "Div(sqrt(16), pi)"},
		{"0.5 * 1e300", "Mult(0.5, 1e+300)"},
		{"ln(exp(-e))", "ln(exp(Neg(e)))"},
	}
	for _, c := range cases {
		n, err := arith.Parse(c.src)
		if err != nil {
			t.Errorf("%q failed to parse: %v", c.src, err)
			continue
		}
		if got := n.String(); got != c.tree {
			t.Errorf("%q: want %s, got %s", c.src, c.tree, got)
		}
		m, err := arith.ParseTree(c.tree)
		if err != nil {
			t.Errorf("%s failed to parse as a tree: %v", c.tree, err)
			continue
		}
		if diff := cmp.Diff(n, m); diff != "" {
			t.Errorf("%s round trip mismatch (-parsed +tree):\n%s", c.tree, diff)
		}
	}
}

func TestParseTreeCalculator(t *testing.T) {
	cases := []struct {
		tree string
		want float64
	}{
		{"Add(2, 2)", 4},
		{"Mult(3, 4)", 12},
		{"Div(10, 2)", 5},
		{"Sub(10, 5)", 5},
		{"Pow(2, 10)", 1024},
		{"Neg(-5)", 5},
		{"Add(-1.5, 2)", 0.5},
		{"Mult(2, sqrt(Pow(3, 2)))", 6},
		{"Sub(pi, pi)", 0},
	}
	for _, c := range cases {
		n, err := arith.ParseTree(c.tree)
		if err != nil {
			t.Errorf("%s failed to parse: %v", c.tree, err)
			continue
		}
		r, err := arith.Evaluate(n, arith.Radian)
		if err != nil {
			t.Errorf("%s failed to evaluate: %v", c.tree, err)
			continue
		}
		if r != c.want {
			t.Errorf("%s: want %g, got %g", c.tree, c.want, r)
		}
	}
}

func TestParseTreeErrors(t *testing.T) {
	cases := []struct {
		tree string
		err  error
	}{
		{"Div(2, 0)", arith.ErrDivisionByZero},
		{"Div(1, Sub(2, 2))", arith.ErrDivisionByZero},
		{"Add(1, 4j)", arith.ErrValue},
		{"Div(1e300, 1e-300)", arith.ErrOverflow},
		{"Foo(1, 2)", arith.ErrValue},
		{"Add(1)", arith.ErrValue},
		{"Add(1, 2, 3)", arith.ErrValue},
		{"Neg(1, 2)", arith.ErrValue},
		{"sin(1, 2)", arith.ErrValue},
		{"Add(x, 1)", arith.ErrValue},
		{"Add(1, 2", arith.ErrValue},
		{"", arith.ErrValue},
	}
	for _, c := range cases {
		n, err := arith.ParseTree(c.tree)
		if err == nil {
			_, err = arith.Evaluate(n, arith.Radian)
		}
		if !errors.Is(err, c.err) {
			t.Errorf("%q: want %v, got %v", c.tree, c.err, err)
		}
	}
}

func TestParseTreeErrorTypes(t *testing.T) {
	_, err := arith.ParseTree("Foo(1)")
	var nerr *arith.NameError
	if !errors.As(err, &nerr) || !nerr.Func || nerr.Name != "Foo" {
		t.Errorf("want unknown function Foo, got %v", err)
	}
	_, err = arith.ParseTree("Mult(3)")
	var cerr *arith.CallError
	if !errors.As(err, &cerr) || cerr.Func != "Mult" || cerr.Len != 1 {
		t.Errorf("want arity error for Mult, got %v", err)
	}
	_, err = arith.ParseTree("Add(1, 4j)")
	var terr *arith.TreeError
	if !errors.As(err, &terr) {
		t.Errorf("want tree error, got %v", err)
	}
}
