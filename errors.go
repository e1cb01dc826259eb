package arith

import (
	"errors"
	"strconv"
)

// Kind classifies every error produced by parsing or evaluation. The set of
// kinds is closed.
type Kind int8

const (
	// KindNone is the kind of nil and of errors not produced by this package.
	KindNone Kind = iota
	// Syntax is malformed input: grouping brackets, stray tokens, incomplete
	// expressions, malformed numbers.
	Syntax
	// Value is an unknown name, a call with the wrong number of arguments, the
	// legacy ** operator, or a function argument outside its domain.
	Value
	// DivisionByZero is division by exactly zero.
	DivisionByZero
	// Overflow is any infinite or NaN result.
	Overflow
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case Syntax:
		return "syntax error"
	case Value:
		return "invalid expression"
	case DivisionByZero:
		return "division by zero"
	case Overflow:
		return "arithmetic overflow"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Sentinels for each kind. Every error from this package unwraps to exactly
// one of them, so errors.Is(err, ErrOverflow) and KindOf(err) == Overflow are
// equivalent.
var (
	ErrSyntax         = errors.New("syntax error")
	ErrValue          = errors.New("invalid expression")
	ErrDivisionByZero = errors.New("division by zero")
	ErrOverflow       = errors.New("arithmetic overflow")
)

// Distinguished syntax errors. Errors matching these also match ErrSyntax.
var (
	ErrIncomplete = &kindError{Syntax, "incomplete expression"}
	ErrTooComplex = &kindError{Syntax, "expression too complex"}
)

type kindError struct {
	kind Kind
	msg  string
}

func (err *kindError) Error() string { return err.msg }
func (err *kindError) Kind() Kind    { return err.kind }
func (err *kindError) Unwrap() error { return sentinel(err.kind) }

func sentinel(k Kind) error {
	switch k {
	case Syntax:
		return ErrSyntax
	case Value:
		return ErrValue
	case DivisionByZero:
		return ErrDivisionByZero
	case Overflow:
		return ErrOverflow
	default:
		return nil
	}
}

// KindOf returns the kind of err, or KindNone if err is nil or did not come
// from this package.
func KindOf(err error) Kind {
	var k interface{ Kind() Kind }
	if errors.As(err, &k) {
		return k.Kind()
	}
	switch {
	case errors.Is(err, ErrSyntax):
		return Syntax
	case errors.Is(err, ErrValue):
		return Value
	case errors.Is(err, ErrDivisionByZero):
		return DivisionByZero
	case errors.Is(err, ErrOverflow):
		return Overflow
	}
	return KindNone
}

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Text is the token the lexer was scanning when the invalid rune was
	// encountered, plus the invalid rune.
	Text string
	// What is the type of token the lexer was scanning: "number" or the
	// empty string if a token kind hadn't been decided.
	What string
	// Col is the total number of runes scanned by the lexer up to and
	// including this error.
	Col int
}

func (err *LexError) Error() string {
	if err.What == "" {
		return errpos(err.Col, "invalid token "+strconv.Quote(err.Text))
	}
	return errpos(err.Col, "malformed "+err.What+" "+strconv.Quote(err.Text))
}

func (err *LexError) Pos() int      { return err.Col }
func (err *LexError) Kind() Kind    { return Syntax }
func (err *LexError) Unwrap() error { return ErrSyntax }

// BracketError indicates a bracket that does not delimit a function call's
// argument, or a call bracket that is never closed. Grouping is not part of the
// language. It implements InputError.
type BracketError struct {
	// Col is the position of the bracket.
	Col int
	// Bracket is the offending bracket, or the empty string for a missing
	// close bracket at the end of input.
	Bracket string
}

func (err *BracketError) Error() string {
	switch err.Bracket {
	case "":
		return errpos(err.Col, "open bracket ( with no close bracket")
	case ")":
		return errpos(err.Col, "close bracket ) with no function call")
	default:
		return errpos(err.Col, "grouping brackets are not supported")
	}
}

func (err *BracketError) Pos() int      { return err.Col }
func (err *BracketError) Kind() Kind    { return Syntax }
func (err *BracketError) Unwrap() error { return ErrSyntax }

// OperatorError indicates an operator token in a position where it has no
// meaning, e.g. a leading * or a unary +. It implements InputError.
type OperatorError struct {
	// Col is the position of the operator.
	Col int
	// Operator is the token that was not understood.
	Operator string
	// Unary is whether the parser expected a unary operator at the time.
	Unary bool
}

func (err *OperatorError) Error() string {
	s := "binary"
	if err.Unary {
		s = "unary"
	}
	return errpos(err.Col, "unknown "+s+" operator "+strconv.Quote(err.Operator))
}

func (err *OperatorError) Pos() int      { return err.Col }
func (err *OperatorError) Kind() Kind    { return Syntax }
func (err *OperatorError) Unwrap() error { return ErrSyntax }

// EmptyExpressionError indicates an expression or call argument that ends
// before it has any content, as in "2 /" or "sqrt()". It matches
// ErrIncomplete. It implements InputError.
type EmptyExpressionError struct {
	// Col is the position of the token that ended the subexpression.
	Col int
	// End is the token that ended the subexpression, or the empty string at
	// the end of input.
	End string
}

func (err *EmptyExpressionError) Error() string {
	if err.Col == 0 {
		return "incomplete expression: missing operand"
	}
	if err.End == "" {
		if err.Col <= 1 {
			return errpos(err.Col, "incomplete expression: no expression")
		}
		return errpos(err.Col, "incomplete expression: no expression at end")
	}
	return errpos(err.Col, "incomplete expression: no expression up to "+strconv.Quote(err.End))
}

func (err *EmptyExpressionError) Pos() int      { return err.Col }
func (err *EmptyExpressionError) Kind() Kind    { return Syntax }
func (err *EmptyExpressionError) Unwrap() error { return ErrIncomplete }

// TrailingError indicates input left over after a complete expression, such
// as "2 3" or "2 pi". It implements InputError.
type TrailingError struct {
	// Col is the position of the first unconsumed token.
	Col int
	// Text is the first unconsumed token.
	Text string
}

func (err *TrailingError) Error() string {
	return errpos(err.Col, "invalid expression: unexpected "+strconv.Quote(err.Text))
}

func (err *TrailingError) Pos() int      { return err.Col }
func (err *TrailingError) Kind() Kind    { return Syntax }
func (err *TrailingError) Unwrap() error { return ErrSyntax }

// PowerError indicates use of ** for exponentiation. Only ^ is accepted. It
// implements InputError.
type PowerError struct {
	// Col is the position of the first *.
	Col int
}

func (err *PowerError) Error() string {
	return errpos(err.Col, `unsupported operator "**", use "^"`)
}

func (err *PowerError) Pos() int      { return err.Col }
func (err *PowerError) Kind() Kind    { return Value }
func (err *PowerError) Unwrap() error { return ErrValue }

// NameError indicates an identifier which is neither a known function nor a
// known constant. Col is zero when the name came from a hand-built tree.
type NameError struct {
	// Col is the position of the identifier in the source, if any.
	Col int
	// Name is the unknown identifier.
	Name string
	// Func is whether the name was used as a function.
	Func bool
}

func (err *NameError) Error() string {
	s := "unknown constant: "
	if err.Func {
		s = "unknown function: "
	}
	if err.Col == 0 {
		return s + err.Name
	}
	return errpos(err.Col, s+err.Name)
}

func (err *NameError) Pos() int      { return err.Col }
func (err *NameError) Kind() Kind    { return Value }
func (err *NameError) Unwrap() error { return ErrValue }

// CallError indicates a function call with other than one argument, or a
// function name used without a call. It implements InputError.
type CallError struct {
	// Col is the position of the call.
	Col int
	// Func is the function name that was called.
	Func string
	// Len is the number of arguments the call supplied.
	Len int
}

func (err *CallError) Error() string {
	return errpos(err.Col, "cannot call "+err.Func+" with "+strconv.Itoa(err.Len)+" arguments")
}

func (err *CallError) Pos() int      { return err.Col }
func (err *CallError) Kind() Kind    { return Value }
func (err *CallError) Unwrap() error { return ErrValue }

// DepthError indicates an expression nested more deeply than MaxDepth. It
// matches ErrTooComplex.
type DepthError struct {
	// Col is the position at which the limit was reached while parsing, or
	// zero during evaluation.
	Col int
}

func (err *DepthError) Error() string {
	msg := "expression too complex: nesting exceeds " + strconv.Itoa(MaxDepth)
	if err.Col == 0 {
		return msg
	}
	return errpos(err.Col, msg)
}

func (err *DepthError) Pos() int      { return err.Col }
func (err *DepthError) Kind() Kind    { return Syntax }
func (err *DepthError) Unwrap() error { return ErrTooComplex }

// DomainError is returned when a function is called on an argument outside
// its domain, e.g. ln(0) or sqrt(-1).
type DomainError struct {
	// X is the out-of-domain argument.
	X float64
	// Func is the name of the function.
	Func string
}

func (err *DomainError) Error() string {
	return err.Func + ": " + strconv.FormatFloat(err.X, 'g', -1, 64) + " outside domain"
}

func (err *DomainError) Kind() Kind    { return Value }
func (err *DomainError) Unwrap() error { return ErrValue }

// DivisionError is returned for division by exactly zero.
type DivisionError struct {
	// X is the dividend.
	X float64
}

func (err *DivisionError) Error() string {
	return "division by zero: " + strconv.FormatFloat(err.X, 'g', -1, 64) + " / 0"
}

func (err *DivisionError) Kind() Kind    { return DivisionByZero }
func (err *DivisionError) Unwrap() error { return ErrDivisionByZero }

// OverflowError is returned when a node evaluates to an infinity or NaN.
type OverflowError struct {
	// Op names the node that produced the value: an operator name such as
	// "Div", a function name, or "number" for a literal too large to
	// represent.
	Op string
}

func (err *OverflowError) Error() string {
	if err.Op == "" {
		return "arithmetic overflow"
	}
	return "arithmetic overflow in " + err.Op
}

func (err *OverflowError) Kind() Kind    { return Overflow }
func (err *OverflowError) Unwrap() error { return ErrOverflow }

// TreeError indicates malformed input to ParseTree. Like other problems with
// hand-built trees, it is an invalid expression rather than a syntax error.
type TreeError struct {
	// Col is the position of the error in the tree text.
	Col int
	// Msg describes the problem.
	Msg string
}

func (err *TreeError) Error() string {
	return errpos(err.Col, "invalid tree: "+err.Msg)
}

func (err *TreeError) Pos() int      { return err.Col }
func (err *TreeError) Kind() Kind    { return Value }
func (err *TreeError) Unwrap() error { return ErrValue }

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid source text implements InputError.
type InputError interface {
	error
	// Pos returns the position of the error as the number of runes up to and
	// including the start of the token that caused the error.
	Pos() int
	// Kind returns the error's classification.
	Kind() Kind
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*OperatorError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*TrailingError)(nil)
	_ InputError = (*PowerError)(nil)
	_ InputError = (*NameError)(nil)
	_ InputError = (*CallError)(nil)
	_ InputError = (*DepthError)(nil)
	_ InputError = (*TreeError)(nil)
)
