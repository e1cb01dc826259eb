package arith

import (
	"math"
	"sort"
	"strconv"
	"strings"
)

// AngleUnit selects how the trigonometric functions interpret their
// arguments. The zero value is Radian.
type AngleUnit int8

const (
	Radian AngleUnit = iota
	Degree
)

func (u AngleUnit) String() string {
	switch u {
	case Radian:
		return "radian"
	case Degree:
		return "degree"
	default:
		return "AngleUnit(" + strconv.Itoa(int(u)) + ")"
	}
}

// ParseAngleUnit parses an angle unit name. It accepts "radian", "rad",
// "degree", and "deg", ignoring case, with an optional plural s.
func ParseAngleUnit(s string) (AngleUnit, error) {
	switch strings.TrimSuffix(strings.ToLower(strings.TrimSpace(s)), "s") {
	case "radian", "rad":
		return Radian, nil
	case "degree", "deg":
		return Degree, nil
	default:
		return Radian, &UnitError{Unit: s}
	}
}

// MarshalText implements encoding.TextMarshaler.
func (u AngleUnit) MarshalText() ([]byte, error) {
	return []byte(u.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (u *AngleUnit) UnmarshalText(text []byte) error {
	v, err := ParseAngleUnit(string(text))
	if err != nil {
		return err
	}
	*u = v
	return nil
}

// UnitError is returned by ParseAngleUnit for an unrecognized unit name.
type UnitError struct {
	Unit string
}

func (err *UnitError) Error() string {
	return "unknown angle unit " + strconv.Quote(err.Unit)
}

// function is an entry in the function table.
type function struct {
	f func(float64) float64
	// trig marks functions whose argument is an angle.
	trig bool
	// domain reports whether x is a valid argument. Nil means every real
	// number is.
	domain func(x float64) bool
}

func (fn function) call(name string, x float64, unit AngleUnit) (float64, error) {
	if fn.domain != nil && !fn.domain(x) {
		return 0, &DomainError{X: x, Func: name}
	}
	if fn.trig && unit == Degree {
		x = x * math.Pi / 180
	}
	return fn.f(x), nil
}

// funcs and consts are never written after initialization, so they are safe
// for concurrent use.
var (
	funcs = map[string]function{
		"sqrt": {f: math.Sqrt, domain: func(x float64) bool { return x >= 0 }},
		"sin":  {f: math.Sin, trig: true},
		"cos":  {f: math.Cos, trig: true},
		"tg":   {f: math.Tan, trig: true},
		"ctg":  {f: func(x float64) float64 { return 1 / math.Tan(x) }, trig: true},
		"ln":   {f: math.Log, domain: func(x float64) bool { return x > 0 }},
		"exp":  {f: math.Exp},
	}

	consts = map[string]float64{
		"pi": math.Pi,
		"e":  math.E,
	}
)

func isFunc(name string) bool {
	_, ok := funcs[name]
	return ok
}

func isConst(name string) bool {
	_, ok := consts[name]
	return ok
}

// Funcs returns the sorted names of the functions expressions may call.
func Funcs() []string {
	return sortedKeys(funcs)
}

// Consts returns the sorted names of the constants expressions may use.
func Consts() []string {
	return sortedKeys(consts)
}

func sortedKeys[V any](m map[string]V) []string {
	r := make([]string, 0, len(m))
	for k := range m {
		r = append(r, k)
	}
	sort.Strings(r)
	return r
}
