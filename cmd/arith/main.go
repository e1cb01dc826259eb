// Command arith evaluates arithmetic expressions.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/alecthomas/kingpin/v2"
	"github.com/alecthomas/repr"
	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/pkg/errors"

	"github.com/zephyrtronium/arith"
)

// errFailed is returned when an expression could not be evaluated. The
// details have already been logged.
var errFailed = errors.New("one or more expressions failed")

func main() {
	app := kingpin.New("arith", help())
	c := command{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr}
	c.Register(app)
	kingpin.MustParse(app.Parse(flagArgs(app, os.Args[1:])))
}

// help describes the language for the usage text.
func help() string {
	return "Evaluate arithmetic expressions.\n\n" +
		"Operators: + - * / ^ and unary -. Brackets only delimit function calls.\n" +
		"Functions: " + strings.Join(arith.Funcs(), ", ") + "\n" +
		"Constants: " + strings.Join(arith.Consts(), ", ")
}

// flagArgs inserts -- before the first argument that starts with - but is not
// a flag, so that expressions like "-5 + 10" are read as positional arguments.
// Everything after that argument is positional.
func flagArgs(app *kingpin.Application, args []string) []string {
	shorts := make(map[rune]bool)
	for _, f := range app.Model().Flags {
		if f.Short != 0 {
			shorts[f.Short] = true
		}
	}
	for i, a := range args {
		if a == "--" {
			return args
		}
		if len(a) < 2 || a[0] != '-' || a[1] == '-' {
			continue
		}
		if r, _ := utf8.DecodeRuneInString(a[1:]); shorts[r] {
			continue
		}
		r := make([]string, 0, len(args)+1)
		r = append(r, args[:i]...)
		r = append(r, "--")
		return append(r, args[i:]...)
	}
	return args
}

// command holds the flags and streams of one invocation.
type command struct {
	exprs       []string
	angle       string
	degree      bool
	format      string
	workers     int
	echo, dump  bool
	echoSet     bool
	dumpSet     bool
	lines       bool
	interactive bool
	test        bool
	configFile  string
	logLevel    string

	stdin          io.Reader
	stdout, stderr io.Writer
	logger         log.Logger
}

// Register adds the command's flags to app and makes it the app's action.
func (c *command) Register(app *kingpin.Application) {
	app.Arg("expression", "expressions to evaluate").StringsVar(&c.exprs)
	app.Flag("angle", "angle unit for trigonometric functions: radian or degree").Envar("ARITH_ANGLE_UNIT").StringVar(&c.angle)
	app.Flag("degree", "shorthand for --angle=degree").Short('d').BoolVar(&c.degree)
	app.Flag("fmt", "result formatting verb (default %g)").StringVar(&c.format)
	app.Flag("echo", "print the canonical tree before each result").IsSetByUser(&c.echoSet).BoolVar(&c.echo)
	app.Flag("dump", "print the Go structure of each tree").IsSetByUser(&c.dumpSet).BoolVar(&c.dump)
	app.Flag("lines", "evaluate each line of standard input").BoolVar(&c.lines)
	app.Flag("workers", "maximum concurrent evaluations with --lines").IntVar(&c.workers)
	app.Flag("interactive", "prompt for expressions").Short('i').BoolVar(&c.interactive)
	app.Flag("test", "run the built-in report tables").Short('t').BoolVar(&c.test)
	app.Flag("config.file", "YAML configuration file").StringVar(&c.configFile)
	app.Flag("log.level", "log filter level").Default("info").EnumVar(&c.logLevel, "debug", "info", "warn", "error")
	app.Action(c.run)
}

func (c *command) run(_ *kingpin.ParseContext) error {
	c.logger = newLogger(c.stderr, c.logLevel)
	cfg, err := c.config()
	if err != nil {
		return err
	}
	level.Debug(c.logger).Log("msg", "configured", "angle_unit", cfg.AngleUnit, "format", cfg.Format, "workers", cfg.Workers)

	switch {
	case c.test:
		pass, err := report(c.stdout)
		if err != nil {
			return errors.Wrap(err, "writing report")
		}
		if !pass {
			return errors.New("report has failing rows")
		}
		return nil
	case c.interactive:
		return c.repl(cfg)
	case c.lines:
		if len(c.exprs) != 0 {
			return errors.New("expressions cannot be given as arguments with --lines")
		}
		return c.runLines(context.Background(), cfg)
	case len(c.exprs) == 0:
		return errors.New("no expression given; use --lines or --interactive to read input")
	}

	failed := false
	for _, src := range c.exprs {
		out, err := cfg.calc(src)
		if err != nil {
			c.logFailure(src, err)
			failed = true
			continue
		}
		fmt.Fprint(c.stdout, out)
	}
	if failed {
		return errFailed
	}
	return nil
}

// config layers flags over the config file over the defaults.
func (c *command) config() (Config, error) {
	cfg := DefaultConfig()
	if c.configFile != "" {
		var err error
		cfg, err = LoadConfig(c.configFile)
		if err != nil {
			return cfg, err
		}
	}
	if c.angle != "" {
		u, err := arith.ParseAngleUnit(c.angle)
		if err != nil {
			return cfg, errors.Wrap(err, "--angle")
		}
		cfg.AngleUnit = u
	}
	if c.degree {
		cfg.AngleUnit = arith.Degree
	}
	if c.format != "" {
		cfg.Format = c.format
	}
	if c.workers != 0 {
		cfg.Workers = c.workers
	}
	if c.echoSet {
		cfg.Echo = c.echo
	}
	if c.dumpSet {
		cfg.Dump = c.dump
	}
	return cfg, cfg.Validate()
}

// runLines evaluates each line of standard input.
func (c *command) runLines(ctx context.Context, cfg Config) error {
	srcs, lines, err := readLines(c.stdin)
	if err != nil {
		return err
	}
	level.Debug(c.logger).Log("msg", "read expressions", "count", len(srcs))
	res, err := calcAll(ctx, srcs, lines, cfg.Workers, cfg.calc)
	if err != nil {
		return err
	}
	failed := false
	for _, r := range res {
		if r.err != nil {
			c.logFailure(r.src, r.err, "line", r.line)
			fmt.Fprintln(c.stdout, r.err)
			failed = true
			continue
		}
		fmt.Fprint(c.stdout, r.out)
	}
	if failed {
		return errFailed
	}
	return nil
}

// calc parses and evaluates one expression and formats its output.
func (cfg Config) calc(src string) (string, error) {
	n, err := arith.Parse(src)
	if err != nil {
		return "", err
	}
	r, err := arith.Evaluate(n, cfg.AngleUnit)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	if cfg.Dump {
		b.WriteString(repr.String(n, repr.Indent("  ")))
		b.WriteByte('\n')
	}
	if cfg.Echo {
		fmt.Fprintf(&b, "%v : ", n)
	}
	fmt.Fprintf(&b, cfg.Format, r)
	b.WriteByte('\n')
	return b.String(), nil
}

func (c *command) logFailure(src string, err error, keyvals ...interface{}) {
	kv := append([]interface{}{"msg", "evaluation failed", "expr", src, "kind", arith.KindOf(err), "err", err}, keyvals...)
	level.Error(c.logger).Log(kv...)
}

func newLogger(w io.Writer, lvl string) log.Logger {
	var opt level.Option
	switch lvl {
	case "debug":
		opt = level.AllowDebug()
	case "warn":
		opt = level.AllowWarn()
	case "error":
		opt = level.AllowError()
	default:
		opt = level.AllowInfo()
	}
	l := log.NewLogfmtLogger(log.NewSyncWriter(w))
	l = level.NewFilter(l, opt)
	return log.With(l, "ts", log.DefaultTimestampUTC)
}
