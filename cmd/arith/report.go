package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/zephyrtronium/arith"
)

// outcome is either a value or the kind of error that prevented one.
type outcome struct {
	value float64
	kind  arith.Kind
}

func outcomeOf(v float64, err error) outcome {
	if err != nil {
		return outcome{kind: arith.KindOf(err)}
	}
	return outcome{value: v}
}

func (o outcome) String() string {
	if o.kind != arith.KindNone {
		return o.kind.String()
	}
	return strconv.FormatFloat(o.value, 'g', -1, 64)
}

// parserCases map expressions to their canonical trees, or to the kind of
// error they produce.
var parserCases = []struct {
	src, want string
}{
	{"42", "42"},
	{"3.14", "3.14"},
	{"2 + 3", "Add(2, 3)"},
	{"5 * 6", "Mult(5, 6)"},
	{"50 / 0.5", "Div(50, 0.5)"},
	{"500 - 800", "Sub(500, 800)"},
	{"2 + 3 * 4", "Add(2, Mult(3, 4))"},
	{"10 - 4 / 2", "Sub(10, Div(4, 2))"},
	{"0.25 / 0.001 + 0.081 * 25", "Add(Div(0.25, 0.001), Mult(0.081, 25))"},
	{"2^3^2", "Pow(2, Pow(3, 2))"},
	{"-sqrt(4)", "Neg(sqrt(4))"},
	{"a", arith.Value.String()},
	{"2 /", arith.Syntax.String()},
	{"5**4", arith.Value.String()},
	{"(1 + 1)", arith.Syntax.String()},
	{"1e300 / 1e-300", "Div(1e+300, 1e-300)"},
}

// calculatorCases evaluate trees written in canonical form.
var calculatorCases = []struct {
	tree string
	want outcome
}{
	{"Add(2,2)", outcome{value: 4}},
	{"Mult(3,4)", outcome{value: 12}},
	{"Div(10,2)", outcome{value: 5}},
	{"Sub(10, 5)", outcome{value: 5}},
	{"Div(2, 0)", outcome{kind: arith.DivisionByZero}},
	{"Div(1, Sub(2, 2))", outcome{kind: arith.DivisionByZero}},
	{"Add(1, 4j)", outcome{kind: arith.Value}},
	{"Div(1e300, 1e-300)", outcome{kind: arith.Overflow}},
}

// expressionCases evaluate expressions from source.
var expressionCases = []struct {
	src  string
	want outcome
}{
	{"1 + 1", outcome{value: 2}},
	{"2 * 3 + 4", outcome{value: 10}},
	{"10 / 2 - 1", outcome{value: 4}},
	{"-5 + 10", outcome{value: 5}},
	{"1 + 1 / 4", outcome{value: 1.25}},
	{"sqrt(16) * 2^-1", outcome{value: 2}},
	{"exp(0) - cos(0)", outcome{value: 0}},
	{"(1 + 1)", outcome{kind: arith.Syntax}},
	{"a", outcome{kind: arith.Value}},
	{"1 + ", outcome{kind: arith.Syntax}},
	{"2 ** 3", outcome{kind: arith.Value}},
	{"1 / 0", outcome{kind: arith.DivisionByZero}},
	{"1 % 2", outcome{kind: arith.Syntax}},
	{"ln(0)", outcome{kind: arith.Value}},
	{"exp(1000)", outcome{kind: arith.Overflow}},
}

func status(ok bool) string {
	if ok {
		return "ok"
	}
	return "FAIL"
}

// report runs the built-in parser, calculator, and expression tables and
// writes them to w. It returns whether every row matched its expectation.
func report(w io.Writer) (bool, error) {
	pass := true
	tw := tabwriter.NewWriter(w, 13, 0, 2, ' ', 0)

	fmt.Fprintln(tw, "Parser:")
	fmt.Fprintln(tw, "EXPRESSION\tTREE\tSTATUS")
	for _, c := range parserCases {
		var got string
		n, err := arith.Parse(c.src)
		if err != nil {
			got = arith.KindOf(err).String()
		} else {
			got = n.String()
		}
		ok := got == c.want
		pass = pass && ok
		fmt.Fprintf(tw, "%s\t%s\t%s\n", c.src, got, status(ok))
	}

	fmt.Fprintln(tw, "\nCalculator:")
	fmt.Fprintln(tw, "TREE\tEXPECTED\tGOT\tSTATUS")
	for _, c := range calculatorCases {
		n, err := arith.ParseTree(c.tree)
		var v float64
		if err == nil {
			v, err = arith.Evaluate(n, arith.Radian)
		}
		got := outcomeOf(v, err)
		ok := got == c.want
		pass = pass && ok
		fmt.Fprintf(tw, "%s\t%v\t%v\t%s\n", c.tree, c.want, got, status(ok))
	}

	fmt.Fprintln(tw, "\nExpressions:")
	fmt.Fprintln(tw, "EXPRESSION\tEXPECTED\tGOT\tSTATUS")
	for _, c := range expressionCases {
		got := outcomeOf(arith.Calculate(c.src, arith.Radian))
		ok := got == c.want
		pass = pass && ok
		fmt.Fprintf(tw, "%s\t%v\t%v\t%s\n", c.src, c.want, got, status(ok))
	}

	if err := tw.Flush(); err != nil {
		return false, err
	}
	return pass, nil
}
