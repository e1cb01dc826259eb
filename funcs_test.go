package arith_test

import (
	"errors"
	"math"
	"math/big"
	"reflect"
	"strconv"
	"testing"

	"github.com/zephyrtronium/bigfloat"

	"github.com/zephyrtronium/arith"
)

const oraclePrec = 256

func bigf(x float64) *big.Float {
	return new(big.Float).SetPrec(oraclePrec).SetFloat64(x)
}

func fstr(x float64) string {
	return strconv.FormatFloat(x, 'g', -1, 64)
}

// closeTo checks that got is within ulps units in the last place of the
// oracle value want.
func closeTo(t *testing.T, src string, want *big.Float, got, ulps float64) {
	t.Helper()
	w, _ := want.Float64()
	tol := ulps * math.Abs(w) * 0x1p-52
	if tol == 0 {
		tol = 0x1p-1074
	}
	if math.Abs(got-w) > tol {
		t.Errorf("%s: want %.17g, got %.17g", src, w, got)
	}
}

func TestExpMatchesOracle(t *testing.T) {
	for _, x := range []float64{-20, -2.5, -1, -0.125, 0.001, 0.5, 1, 2, 10, 100, 700} {
		src := "exp(" + fstr(x) + ")"
		got, err := arith.Calculate(src, arith.Radian)
		if err != nil {
			t.Errorf("%s failed: %v", src, err)
			continue
		}
		want := bigfloat.Exp(new(big.Float).SetPrec(oraclePrec), bigf(x))
		closeTo(t, src, want, got, 4)
	}
}

func TestLnMatchesOracle(t *testing.T) {
	for _, x := range []float64{1e-300, 1e-5, 0.5, 2, math.E, 10, 12345.678, 1e300} {
		src := "ln(" + fstr(x) + ")"
		got, err := arith.Calculate(src, arith.Radian)
		if err != nil {
			t.Errorf("%s failed: %v", src, err)
			continue
		}
		want := bigfloat.Log(new(big.Float).SetPrec(oraclePrec), bigf(x))
		closeTo(t, src, want, got, 4)
	}
}

func TestPowMatchesOracle(t *testing.T) {
	cases := []struct{ x, y float64 }{
		{2, 0.5},
		{2, 10},
		{10, -3},
		{0.5, 7.25},
		{3, 3.5},
		{123.456, 2.2},
	}
	for _, c := range cases {
		src := fstr(c.x) + "^" + fstr(c.y)
		got, err := arith.Calculate(src, arith.Radian)
		if err != nil {
			t.Errorf("%s failed: %v", src, err)
			continue
		}
		want := bigfloat.Pow(new(big.Float).SetPrec(oraclePrec), bigf(c.x), bigf(c.y))
		// math.Pow is not correctly rounded.
		closeTo(t, src, want, got, 64)
	}
}

func TestDegreesMatchRadians(t *testing.T) {
	for _, fn := range []string{"sin", "cos", "tg", "ctg"} {
		for _, deg := range []float64{-135, -30, 1, 30, 45, 60, 120, 225, 359} {
			d, err := arith.Calculate(fn+"("+fstr(deg)+")", arith.Degree)
			if err != nil {
				t.Errorf("%s(%g) in degrees failed: %v", fn, deg, err)
				continue
			}
			r, err := arith.Evaluate(&arith.Call{Func: fn, Arg: &arith.Number{Value: deg * math.Pi / 180}}, arith.Radian)
			if err != nil {
				t.Errorf("%s(%g) in radians failed: %v", fn, deg, err)
				continue
			}
			if math.Abs(d-r) > 1e-12 {
				t.Errorf("%s(%g): degrees gave %g, radians gave %g", fn, deg, d, r)
			}
		}
	}
}

func TestUnitOnlyAffectsTrig(t *testing.T) {
	for _, src := range []string{"sqrt(90)", "ln(90)", "exp(2)", "90 * pi"} {
		r, err := arith.Calculate(src, arith.Radian)
		if err != nil {
			t.Fatalf("%q failed: %v", src, err)
		}
		d, err := arith.Calculate(src, arith.Degree)
		if err != nil {
			t.Fatalf("%q failed: %v", src, err)
		}
		if r != d {
			t.Errorf("%q depends on unit: %g in radians, %g in degrees", src, r, d)
		}
	}
}

func TestDomainError(t *testing.T) {
	cases := []struct {
		src string
		fn  string
		x   float64
	}{
		{"ln(0)", "ln", 0},
		{"ln(-e)", "ln", -math.E},
		{"sqrt(-4)", "sqrt", -4},
	}
	for _, c := range cases {
		_, err := arith.Calculate(c.src, arith.Radian)
		var de *arith.DomainError
		if !errors.As(err, &de) {
			t.Errorf("%q gave %#v, not a DomainError", c.src, err)
			continue
		}
		if de.Func != c.fn || de.X != c.x {
			t.Errorf("%q gave wrong error %+v", c.src, de)
		}
		if k := arith.KindOf(err); k != arith.Value {
			t.Errorf("%q gave kind %v", c.src, k)
		}
	}
}

func TestFuncsConsts(t *testing.T) {
	if f := arith.Funcs(); !reflect.DeepEqual(f, []string{"cos", "ctg", "exp", "ln", "sin", "sqrt", "tg"}) {
		t.Errorf("wrong functions %q", f)
	}
	if c := arith.Consts(); !reflect.DeepEqual(c, []string{"e", "pi"}) {
		t.Errorf("wrong constants %q", c)
	}
	// The results are copies.
	arith.Funcs()[0] = "x"
	if f := arith.Funcs(); f[0] != "cos" {
		t.Errorf("Funcs returned shared storage: %q", f)
	}
}

func TestParseAngleUnit(t *testing.T) {
	cases := []struct {
		s  string
		u  arith.AngleUnit
		ok bool
	}{
		{"radian", arith.Radian, true},
		{"Radians", arith.Radian, true},
		{"rad", arith.Radian, true},
		{"degree", arith.Degree, true},
		{" DEG ", arith.Degree, true},
		{"degrees", arith.Degree, true},
		{"grad", arith.Radian, false},
		{"", arith.Radian, false},
	}
	for _, c := range cases {
		u, err := arith.ParseAngleUnit(c.s)
		if (err == nil) != c.ok {
			t.Errorf("%q gave error %v", c.s, err)
		}
		if u != c.u {
			t.Errorf("%q gave %v, want %v", c.s, u, c.u)
		}
	}
	var u arith.AngleUnit
	if err := u.UnmarshalText([]byte("degree")); err != nil || u != arith.Degree {
		t.Errorf("UnmarshalText gave %v, %v", u, err)
	}
	if b, _ := arith.Degree.MarshalText(); string(b) != "degree" {
		t.Errorf("MarshalText gave %q", b)
	}
}
