package main

import (
	"fmt"
	"strings"

	"github.com/manifoldco/promptui"
	"github.com/pkg/errors"

	"github.com/zephyrtronium/arith"
)

// repl prompts for expressions until end of input or an interrupt.
func (c *command) repl(cfg Config) error {
	prompt := promptui.Prompt{
		Label: "arith",
		Validate: func(s string) error {
			_, err := arith.Normalize(s)
			return err
		},
	}
	for {
		src, err := prompt.Run()
		switch {
		case errors.Is(err, promptui.ErrEOF), errors.Is(err, promptui.ErrInterrupt):
			return nil
		case err != nil:
			return errors.Wrap(err, "reading expression")
		}
		if strings.TrimSpace(src) == "" {
			continue
		}
		out, err := cfg.calc(src)
		if err != nil {
			c.logFailure(src, err)
			fmt.Fprintln(c.stdout, err)
			continue
		}
		fmt.Fprint(c.stdout, out)
	}
}
