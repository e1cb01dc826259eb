package arith

import (
	"fmt"
	"strconv"
	"strings"
)

// Node is a node in the abstract syntax tree of an expression. The set of
// node types is closed: *Number, *BinaryOp, *UnaryOp, *Ident, and *Call.
// Trees may be built by hand and passed to Evaluate; each node should have
// exactly one parent.
type Node interface {
	// String formats the node in canonical prefix form, e.g.
	// "Add(2, Mult(3, 4))".
	String() string
	// fmt writes the canonical prefix form to b.
	fmt(b *strings.Builder)
}

// Number is a numeric literal.
type Number struct {
	Value float64
}

// BinaryOp applies an arithmetic operator to two operands.
type BinaryOp struct {
	Op          BinaryKind
	Left, Right Node
}

// UnaryOp applies a unary operator to its operand.
type UnaryOp struct {
	Op      UnaryKind
	Operand Node
}

// Ident is a reference to a named constant.
type Ident struct {
	Name string
}

// Call applies a named function to exactly one argument.
type Call struct {
	Func string
	Arg  Node
}

// BinaryKind identifies a binary operator.
type BinaryKind int8

const (
	Add BinaryKind = iota
	Sub
	Mul
	Div
	Pow
)

// String returns the operator's name in canonical prefix form.
func (k BinaryKind) String() string {
	switch k {
	case Add:
		return "Add"
	case Sub:
		return "Sub"
	case Mul:
		return "Mult"
	case Div:
		return "Div"
	case Pow:
		return "Pow"
	default:
		return "BinaryKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// UnaryKind identifies a unary operator.
type UnaryKind int8

const (
	Neg UnaryKind = iota
)

func (k UnaryKind) String() string {
	switch k {
	case Neg:
		return "Neg"
	default:
		return "UnaryKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Format formats a tree in canonical prefix form. A nil node formats as "$".
func Format(n Node) string {
	var b strings.Builder
	format(&b, n)
	return b.String()
}

func format(b *strings.Builder, n Node) {
	if n == nil {
		// Invalid nodes use invalid characters.
		b.WriteByte('$')
		return
	}
	n.fmt(b)
}

func (n *Number) String() string   { return Format(n) }
func (n *BinaryOp) String() string { return Format(n) }
func (n *UnaryOp) String() string  { return Format(n) }
func (n *Ident) String() string    { return Format(n) }
func (n *Call) String() string     { return Format(n) }

func (n *Number) fmt(b *strings.Builder) {
	b.WriteString(strconv.FormatFloat(n.Value, 'g', -1, 64))
}

func (n *BinaryOp) fmt(b *strings.Builder) {
	b.WriteString(n.Op.String())
	b.WriteByte('(')
	format(b, n.Left)
	b.WriteString(", ")
	format(b, n.Right)
	b.WriteByte(')')
}

func (n *UnaryOp) fmt(b *strings.Builder) {
	b.WriteString(n.Op.String())
	b.WriteByte('(')
	format(b, n.Operand)
	b.WriteByte(')')
}

func (n *Ident) fmt(b *strings.Builder) {
	b.WriteString(n.Name)
}

func (n *Call) fmt(b *strings.Builder) {
	b.WriteString(n.Func)
	b.WriteByte('(')
	format(b, n.Arg)
	b.WriteByte(')')
}

// invalidNode describes a node of a type outside the closed set. Such a node
// can only come from a type in this package that a consumer forgot to handle.
func invalidNode(n Node) string {
	return fmt.Sprintf("arith: invalid AST node %T", n)
}
