package arith

import (
	"strconv"
	"unicode"
	"unicode/utf8"
)

type lexToken struct {
	text string
	kind tokenKind
	pos  int
}

func (t lexToken) String() string {
	return t.kind.String() + ":" + t.text + "@" + strconv.Itoa(t.pos)
}

type tokenKind int

const (
	tokenNone tokenKind = iota
	// tokenEOF indicates the end of the input.
	tokenEOF
	// tokenNum is a decimal number, possibly with an exponent.
	tokenNum
	// tokenIdent is a function or constant name.
	tokenIdent
	// tokenOp is an operator.
	tokenOp
	// tokenOpen is an open bracket.
	tokenOpen
	// tokenClose is a close bracket.
	tokenClose
	// tokenSep is a comma. No function takes more than one argument, but
	// commas are scanned so that calls with several can be diagnosed.
	tokenSep
)

func (k tokenKind) String() string {
	switch k {
	case tokenNone:
		return "None"
	case tokenEOF:
		return "EOF"
	case tokenNum:
		return "Num"
	case tokenIdent:
		return "Ident"
	case tokenOp:
		return "Op"
	case tokenOpen:
		return "Open"
	case tokenClose:
		return "Close"
	case tokenSep:
		return "Sep"
	default:
		return "tokenKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Operators contains the runes which are considered to be operators.
const Operators = "+-*/^"

type lexer struct {
	src string
	// off is the byte offset of the next rune in src.
	off int
	// col is the number of runes scanned so far.
	col int
	p   lexToken
}

func lex(src string) *lexer {
	return &lexer{src: src}
}

// push unreads a token so that it is the next token returned from next. Panics
// if there is already a pushed token.
func (l *lexer) push(tok lexToken) {
	if l.p.kind != tokenNone {
		panic("arith: double push")
	}
	l.p = tok
}

// must scans the pushed token. Panics if there is no pushed token.
func (l *lexer) must() lexToken {
	tok := l.p
	if tok.kind == tokenNone {
		panic("arith: no pushed token")
	}
	l.p = lexToken{}
	return tok
}

// peek returns the rune k runes ahead of the next one without consuming
// anything, or -1 past the end of the input.
func (l *lexer) peek(k int) rune {
	off := l.off
	for {
		if off >= len(l.src) {
			return -1
		}
		r, sz := utf8.DecodeRuneInString(l.src[off:])
		if k == 0 {
			return r
		}
		off += sz
		k--
	}
}

// readRune consumes the next rune.
func (l *lexer) readRune() rune {
	r, sz := utf8.DecodeRuneInString(l.src[l.off:])
	l.off += sz
	l.col++
	return r
}

// next scans the next token from the input. Once the input is exhausted, every
// call returns an EOF token.
func (l *lexer) next() (lexToken, error) {
	if l.p.kind != tokenNone {
		tok := l.p
		l.p = lexToken{}
		return tok, nil
	}
	for l.off < len(l.src) && unicode.IsSpace(l.peek(0)) {
		l.readRune()
	}
	tok := lexToken{pos: l.col + 1}
	if l.off >= len(l.src) {
		tok.kind = tokenEOF
		return tok, nil
	}
	start := l.off
	r := l.peek(0)
	switch {
	case '0' <= r && r <= '9', r == '.':
		if err := l.scanNum(); err != nil {
			return tok, err
		}
		tok.text = l.src[start:l.off]
		tok.kind = tokenNum
	case r == '_', unicode.IsLetter(r):
		l.scanIdent()
		tok.text = l.src[start:l.off]
		tok.kind = tokenIdent
	case r == '*' && l.peek(1) == '*':
		l.readRune()
		l.readRune()
		tok.text = "**"
		tok.kind = tokenOp
	case r == '+', r == '-', r == '*', r == '/', r == '^':
		l.readRune()
		tok.text = string(r)
		tok.kind = tokenOp
	case r == '(':
		l.readRune()
		tok.text = "("
		tok.kind = tokenOpen
	case r == ')':
		l.readRune()
		tok.text = ")"
		tok.kind = tokenClose
	case r == ',':
		l.readRune()
		tok.text = ","
		tok.kind = tokenSep
	default:
		l.readRune()
		return tok, &LexError{Text: string(r), Col: tok.pos}
	}
	return tok, nil
}

// scanNum consumes a number. An e or E is an exponent marker only when it
// follows a digit and is itself followed by a digit or sign; otherwise the
// number ends before it, so "2e" is the number 2 followed by the name e. Any
// other letter also ends the number, so "2x" is 2 followed by the name x.
func (l *lexer) scanNum() error {
	var dig, dot, e, ed bool
	start, pos := l.off, l.col+1
loop:
	for l.off < len(l.src) {
		r := l.peek(0)
		switch {
		case '0' <= r && r <= '9':
			if e {
				ed = true
			} else {
				dig = true
			}
		case r == '.':
			if dot || e {
				l.readRune()
				return l.error(start, pos)
			}
			dot = true
		case r == 'e' || r == 'E':
			if !dig || e {
				break loop
			}
			x := l.peek(1)
			if x != '+' && x != '-' && (x < '0' || x > '9') {
				break loop
			}
			e = true
			if x == '+' || x == '-' {
				l.readRune()
			}
		default:
			break loop
		}
		l.readRune()
	}
	if !dig || (e && !ed) {
		return l.error(start, pos)
	}
	return nil
}

func (l *lexer) scanIdent() {
	for l.off < len(l.src) {
		r := l.peek(0)
		if r != '_' && !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return
		}
		l.readRune()
	}
}

func (l *lexer) error(start, pos int) error {
	return &LexError{
		Text: l.src[start:l.off],
		What: "number",
		Col:  pos,
	}
}
