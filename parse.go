package arith

import (
	"errors"
	"strconv"
)

// Expr = num | const | Call | Neg | Add | Sub | Mul | Div | Pow
// Call = funcname '(' Expr ')'
// Neg = '-' Expr
// Add = Expr '+' Expr
// Sub = Expr '-' Expr
// Mul = Expr '*' Expr
// Div = Expr '/' Expr
// Pow = Expr '^' Expr
//
// Negation binds tightest, then ^ (right-associative), then * and /, then + and
// -, all left-associative.

// MaxDepth is the deepest nesting that Parse and Evaluate accept. Parse counts
// nested operands of ^, negations, and call arguments; Evaluate counts the
// height of the tree. Deeper expressions fail with an error matching
// ErrTooComplex.
//
// Flat chains of left-associative operators count too: "1+1+...+1" with
// MaxDepth operators parses, but its tree is MaxDepth+1 nodes high, so
// Evaluate rejects it.
const MaxDepth = 1000

// Parse parses an expression into a tree. On failure the result is nil and the
// error is one of the types in this package, classified by KindOf.
func Parse(src string) (Node, error) {
	s, err := Normalize(src)
	if err != nil {
		return nil, err
	}
	p := parser{scan: lex(s)}
	n, err := p.term(exprprec)
	if err != nil {
		return nil, err
	}
	if tok := p.scan.must(); tok.kind != tokenEOF {
		return nil, itShouldNotHaveEndedThisWay(tok)
	}
	return n, nil
}

// parser holds the state of a single parse.
type parser struct {
	scan *lexer
	// depth is the current nesting of term.
	depth int
}

// term parses a single term whose operators bind more tightly than until. If
// there is no error, then term pushes the last token it scans, including EOF.
func (p *parser) term(until operator) (Node, error) {
	p.depth++
	defer func() { p.depth-- }()
	if p.depth > MaxDepth {
		return nil, &DepthError{Col: p.scan.col}
	}
	n, err := p.lhs()
	if err != nil {
		return nil, err
	}
	for {
		tok, err := p.scan.next()
		if err != nil {
			return nil, err
		}
		switch tok.kind {
		case tokenOp:
			prec := binop(tok.text)
			if !prec.valid {
				if tok.text == "**" {
					return nil, &PowerError{Col: tok.pos}
				}
				return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: false}
			}
			if !prec.moreBinding(until) {
				p.scan.push(tok)
				return n, nil
			}
			rhs, err := p.term(prec)
			if err != nil {
				return nil, err
			}
			n = &BinaryOp{Op: prec.op, Left: n, Right: rhs}
		case tokenNum, tokenIdent, tokenOpen, tokenClose, tokenSep, tokenEOF:
			// Either the end of this term or trailing input; the caller
			// decides which.
			p.scan.push(tok)
			return n, nil
		default:
			panic("arith: unknown token: " + tok.String())
		}
	}
}

// lhs parses the first component of a term: a number, a constant, a call, or
// a negation.
func (p *parser) lhs() (Node, error) {
	tok, err := p.scan.next()
	if err != nil {
		return nil, err
	}
	switch tok.kind {
	case tokenNum:
		v, err := strconv.ParseFloat(tok.text, 64)
		if err != nil && !errors.Is(err, strconv.ErrRange) {
			return nil, &LexError{Text: tok.text, What: "number", Col: tok.pos}
		}
		// Out of range literals become infinities, which Evaluate reports
		// as overflow.
		return &Number{Value: v}, nil
	case tokenIdent:
		next, err := p.scan.next()
		if err != nil {
			return nil, err
		}
		if next.kind == tokenOpen {
			return p.call(tok, next)
		}
		p.scan.push(next)
		if err := checkName(tok, false); err != nil {
			return nil, err
		}
		return &Ident{Name: tok.text}, nil
	case tokenOp:
		switch tok.text {
		case "-":
			operand, err := p.term(negprec)
			if err != nil {
				return nil, err
			}
			return &UnaryOp{Op: Neg, Operand: operand}, nil
		case "**":
			return nil, &PowerError{Col: tok.pos}
		default:
			return nil, &OperatorError{Col: tok.pos, Operator: tok.text, Unary: true}
		}
	case tokenOpen:
		return nil, &BracketError{Col: tok.pos, Bracket: tok.text}
	case tokenClose, tokenSep:
		return nil, &EmptyExpressionError{Col: tok.pos, End: tok.text}
	case tokenEOF:
		return nil, &EmptyExpressionError{Col: tok.pos}
	default:
		panic("arith: unknown token: " + tok.String())
	}
}

// call parses the argument list of a call to the function named by name. The
// open bracket has already been scanned.
func (p *parser) call(name, open lexToken) (Node, error) {
	if err := checkName(name, true); err != nil {
		return nil, err
	}
	tok, err := p.scan.next()
	if err != nil {
		return nil, err
	}
	if tok.kind == tokenClose {
		return nil, &CallError{Col: name.pos, Func: name.text, Len: 0}
	}
	p.scan.push(tok)
	var arg Node
	n := 0
	for {
		a, err := p.term(exprprec)
		if err != nil {
			return nil, err
		}
		if n == 0 {
			arg = a
		}
		n++
		end := p.scan.must()
		switch end.kind {
		case tokenClose:
			if n != 1 {
				return nil, &CallError{Col: name.pos, Func: name.text, Len: n}
			}
			return &Call{Func: name.text, Arg: arg}, nil
		case tokenSep:
			// Keep parsing to count the arguments.
		case tokenEOF:
			return nil, &BracketError{Col: open.pos}
		default:
			return nil, itShouldNotHaveEndedThisWay(end)
		}
	}
}

// itShouldNotHaveEndedThisWay returns an error appropriate for an unexpected
// token at the end of a complete expression.
func itShouldNotHaveEndedThisWay(tok lexToken) error {
	switch tok.kind {
	case tokenClose:
		return &BracketError{Col: tok.pos, Bracket: tok.text}
	case tokenNum, tokenIdent, tokenOpen, tokenSep:
		return &TrailingError{Col: tok.pos, Text: tok.text}
	default:
		panic("arith: it really should not have ended this way: " + tok.String())
	}
}

type operator struct {
	// prec is the precedence value. Higher is more binding.
	prec int8
	// right indicates right-associativity.
	right bool
	// op is the node kind to use when this operator is selected.
	op BinaryKind
	// valid is false for tokens that are not binary operators.
	valid bool
}

func (p operator) moreBinding(than operator) bool {
	if p.prec != than.prec {
		return p.prec > than.prec
	}
	return p.right
}

// binop gets a binary operator for a token string. If there is no such binary
// operator, then the result is not valid.
func binop(text string) operator {
	switch text {
	case "+":
		return operator{1, false, Add, true}
	case "-":
		return operator{1, false, Sub, true}
	case "*":
		return operator{5, false, Mul, true}
	case "/":
		return operator{5, false, Div, true}
	case "^":
		return operator{15, true, Pow, true}
	default:
		return operator{}
	}
}

var (
	// negprec is the precedence of negation. It binds more tightly than every
	// binary operator, so -2^2 is (-2)^2.
	negprec = operator{prec: 20, right: true}
	// exprprec is the precedence required to parse an entire subexpression.
	exprprec = operator{prec: -128, right: true}
)
