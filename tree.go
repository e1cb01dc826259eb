package arith

import (
	"errors"
	"strconv"

	"github.com/alecthomas/participle/v2"
	plexer "github.com/alecthomas/participle/v2/lexer"
)

// Tree = num | name | op '(' Tree { ',' Tree } ')'

type treeNode struct {
	Pos plexer.Position

	Number *string   `  @("-"? (Float | Int))`
	Call   *treeCall `| @@`
	Name   *string   `| @Ident`
}

type treeCall struct {
	Pos plexer.Position

	Name string      `@Ident "("`
	Args []*treeNode `( @@ ( "," @@ )* )? ")"`
}

var treeParser = participle.MustBuild[treeNode](participle.UseLookahead(2))

var binaryNames = map[string]BinaryKind{
	Add.String(): Add,
	Sub.String(): Sub,
	Mul.String(): Mul,
	Div.String(): Div,
	Pow.String(): Pow,
}

// ParseTree parses a tree written in the canonical prefix form that Format
// produces, e.g. "Div(1, Sub(2, 2))". Binary operators are Add, Sub, Mult, Div,
// and Pow; Neg negates its single argument; function calls and constants are
// written as in expressions. Unlike Parse, ParseTree accepts any finite number
// literal, including negative ones.
func ParseTree(src string) (Node, error) {
	t, err := treeParser.ParseString("", src)
	if err != nil {
		var perr participle.Error
		if errors.As(err, &perr) {
			return nil, &TreeError{Col: perr.Position().Column, Msg: perr.Message()}
		}
		return nil, &TreeError{Msg: err.Error()}
	}
	return t.build()
}

func (t *treeNode) build() (Node, error) {
	switch {
	case t.Number != nil:
		v, err := strconv.ParseFloat(*t.Number, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return nil, &TreeError{Col: t.Pos.Column, Msg: "malformed number " + strconv.Quote(*t.Number)}
		}
		return &Number{Value: v}, nil
	case t.Call != nil:
		return t.Call.build()
	case t.Name != nil:
		if !isConst(*t.Name) {
			return nil, &NameError{Col: t.Pos.Column, Name: *t.Name}
		}
		return &Ident{Name: *t.Name}, nil
	default:
		panic("arith: empty tree node")
	}
}

func (c *treeCall) build() (Node, error) {
	op, binary := binaryNames[c.Name]
	arity := 1
	switch {
	case binary:
		arity = 2
	case c.Name == Neg.String(), isFunc(c.Name):
	default:
		return nil, &NameError{Col: c.Pos.Column, Name: c.Name, Func: true}
	}
	args := make([]Node, len(c.Args))
	for i, a := range c.Args {
		n, err := a.build()
		if err != nil {
			return nil, err
		}
		args[i] = n
	}
	if len(args) != arity {
		return nil, &CallError{Col: c.Pos.Column, Func: c.Name, Len: len(args)}
	}
	switch {
	case binary:
		return &BinaryOp{Op: op, Left: args[0], Right: args[1]}, nil
	case c.Name == Neg.String():
		return &UnaryOp{Op: Neg, Operand: args[0]}, nil
	default:
		return &Call{Func: c.Name, Arg: args[0]}, nil
	}
}
