package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/alecthomas/kingpin/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func runArgs(t *testing.T, stdin string, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	t.Setenv("ARITH_ANGLE_UNIT", "")
	var out, log bytes.Buffer
	c := command{stdin: strings.NewReader(stdin), stdout: &out, stderr: &log}
	app := kingpin.New("arith", help())
	c.Register(app)
	_, err = app.Parse(flagArgs(app, args))
	return out.String(), log.String(), err
}

func TestRunExpressions(t *testing.T) {
	cases := []struct {
		name string
		args []string
		want string
	}{
		{"single", []string{"2 + 3 * 4"}, "14\n"},
		{"several", []string{"1 + 1", "2^10"}, "2\n1024\n"},
		{"format", []string{"--fmt=%.2f", "1 / 3"}, "0.33\n"},
		{"degree", []string{"-d", "sin(90)"}, "1\n"},
		{"angle", []string{"--angle=deg", "cos(0)"}, "1\n"},
		{"echo", []string{"--echo", "2 + 3 * 4"}, "Add(2, Mult(3, 4)) : 14\n"},
		{"negative", []string{"-5 + 10"}, "5\n"},
		{"negative-func", []string{"-sqrt(4)"}, "-2\n"},
		{"negative-after-flag", []string{"-d", "-sin(90)"}, "-1\n"},
		{"negative-later", []string{"1", "-2", "-e^0"}, "1\n-2\n1\n"},
		{"separator", []string{"--", "-1"}, "-1\n"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out, _, err := runArgs(t, "", c.args...)
			require.NoError(t, err)
			assert.Equal(t, c.want, out)
		})
	}
}

func TestRunFailure(t *testing.T) {
	out, log, err := runArgs(t, "", "1 / 0", "2")
	assert.ErrorIs(t, err, errFailed)
	assert.Equal(t, "2\n", out)
	assert.Contains(t, log, "level=error")
	assert.Contains(t, log, `kind="division by zero"`)
	assert.Contains(t, log, `expr="1 / 0"`)
}

func TestRunDump(t *testing.T) {
	out, _, err := runArgs(t, "", "--dump", "-2")
	require.NoError(t, err)
	assert.Contains(t, out, "UnaryOp")
	assert.Contains(t, out, "Number")
	assert.True(t, strings.HasSuffix(out, "-2\n"), "output: %q", out)
}

func TestRunLines(t *testing.T) {
	out, log, err := runArgs(t, "1 + 1\n\n2 * 3\n1 / 0\n2^3^2\n", "--lines", "--workers=2")
	assert.ErrorIs(t, err, errFailed)
	assert.Equal(t, "2\n6\ndivision by zero: 1 / 0\n512\n", out)
	assert.Contains(t, log, "line=4")
}

func TestRunLinesClean(t *testing.T) {
	out, _, err := runArgs(t, "sqrt(16)\nexp(0)\n", "--lines")
	require.NoError(t, err)
	assert.Equal(t, "4\n1\n", out)
}

func TestRunUsage(t *testing.T) {
	_, _, err := runArgs(t, "")
	assert.Error(t, err)
	_, _, err = runArgs(t, "", "--lines", "1")
	assert.Error(t, err)
	_, _, err = runArgs(t, "", "--angle=gradian", "1")
	assert.Error(t, err)
	_, _, err = runArgs(t, "", "--workers=-1", "1")
	assert.Error(t, err)
}

func TestRunReport(t *testing.T) {
	out, _, err := runArgs(t, "", "--test")
	require.NoError(t, err)
	assert.Contains(t, out, "Calculator:")
	assert.NotContains(t, out, "FAIL")
}

func TestLogLevelFilter(t *testing.T) {
	_, log, err := runArgs(t, "", "--log.level=debug", "1")
	require.NoError(t, err)
	assert.Contains(t, log, "level=debug")
	_, log, err = runArgs(t, "", "1")
	require.NoError(t, err)
	assert.NotContains(t, log, "level=debug")
}

func TestFlagArgs(t *testing.T) {
	app := kingpin.New("arith", "")
	var c command
	c.Register(app)
	cases := []struct {
		args, want []string
	}{
		{[]string{"1"}, []string{"1"}},
		{[]string{"-d", "--echo", "1"}, []string{"-d", "--echo", "1"}},
		{[]string{"-5 + 10"}, []string{"--", "-5 + 10"}},
		{[]string{"-t", "-x"}, []string{"-t", "--", "-x"}},
		{[]string{"--", "-1"}, []string{"--", "-1"}},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, flagArgs(app, c.args))
	}
}

func TestHelpListsNames(t *testing.T) {
	h := help()
	for _, name := range []string{"sqrt", "ctg", "pi", "e"} {
		assert.Contains(t, h, name)
	}
}
