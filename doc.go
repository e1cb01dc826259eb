// Package arith implements a floating-point calculator for arithmetic
// expressions.
//
// Expressions combine decimal numbers (3.14, 1e+03) with + - * / and ^, unary
// minus, the constants pi and e, and the functions sqrt, sin, cos, tg, ctg, ln,
// and exp, each called with exactly one argument in brackets: "sin(pi/2)".
// Brackets are only for calls; "(1 + 1)" is an error. Negation binds tightest,
// so "-2^2" is 4, and ^ is right-associative, so "2^3^2" is 512.
//
// Every error is classified by KindOf as a syntax error, an invalid
// expression, a division by zero, or an overflow. Results are always finite;
// an infinity or NaN anywhere in the evaluation is an overflow.
//
// Trees can also be built directly or parsed from the prefix form that Format
// writes, e.g. "Add(2, Mult(3, 4))", and evaluated with Evaluate.
package arith
