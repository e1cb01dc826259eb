package arith

import (
	"strings"
	"unicode/utf8"
)

// Normalize canonicalizes an expression before parsing. It collapses runs of
// whitespace to single spaces and trims both ends, then rejects the legacy **
// operator, names that are neither functions nor constants, and brackets that
// do not delimit a function call's argument. Grouping with brackets is not
// supported, so "(1 + 1)" is an error while "sqrt(4)" is not.
//
// Parse calls Normalize itself. It is exported for callers that want to
// validate or display input without building a tree.
func Normalize(src string) (string, error) {
	s := strings.Join(strings.Fields(src), " ")
	if k := strings.Index(s, "**"); k >= 0 {
		return "", &PowerError{Col: utf8.RuneCountInString(s[:k]) + 1}
	}
	scan := lex(s)
	// open holds the positions of unclosed call brackets.
	var open []int
	var prev lexToken
	for {
		tok, err := scan.next()
		if err != nil {
			return "", err
		}
		if prev.kind == tokenIdent {
			if err := checkName(prev, tok.kind == tokenOpen); err != nil {
				return "", err
			}
		}
		switch tok.kind {
		case tokenEOF:
			if len(open) != 0 {
				return "", &BracketError{Col: open[len(open)-1]}
			}
			return s, nil
		case tokenOpen:
			if prev.kind != tokenIdent {
				return "", &BracketError{Col: tok.pos, Bracket: tok.text}
			}
			open = append(open, tok.pos)
		case tokenClose:
			if len(open) == 0 {
				return "", &BracketError{Col: tok.pos, Bracket: tok.text}
			}
			open = open[:len(open)-1]
		}
		prev = tok
	}
}

// checkName checks that an identifier token names a function if it is called
// and a constant otherwise.
func checkName(tok lexToken, called bool) error {
	switch {
	case called && isFunc(tok.text), !called && isConst(tok.text):
		return nil
	case !called && isFunc(tok.text):
		return &CallError{Col: tok.pos, Func: tok.text, Len: 0}
	default:
		return &NameError{Col: tok.pos, Name: tok.text, Func: called}
	}
}
