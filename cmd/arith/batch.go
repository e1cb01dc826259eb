package main

import (
	"bufio"
	"context"
	"io"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// result is the outcome of one input line.
type result struct {
	// line is the 1-based line number in the input.
	line int
	src  string
	out  string
	err  error
}

// readLines reads the non-blank lines of r.
func readLines(r io.Reader) (srcs []string, lines []int, err error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for n := 1; sc.Scan(); n++ {
		s := sc.Text()
		if strings.TrimSpace(s) == "" {
			continue
		}
		srcs = append(srcs, s)
		lines = append(lines, n)
	}
	if err := sc.Err(); err != nil {
		return nil, nil, errors.Wrap(err, "reading expressions")
	}
	return srcs, lines, nil
}

// calcAll runs calc on each source with at most workers calls at a time. The
// results are in the same order as srcs. Failures of individual calls are
// recorded in their results; the returned error is only for cancellation.
func calcAll(ctx context.Context, srcs []string, lines []int, workers int, calc func(string) (string, error)) ([]result, error) {
	res := make([]result, len(srcs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, src := range srcs {
		i, src := i, src
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			out, err := calc(src)
			res[i] = result{line: lines[i], src: src, out: out, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return res, nil
}
