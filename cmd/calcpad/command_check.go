package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/shibukawa/calcpad"
	"github.com/shibukawa/calcpad/parser"
)

// ErrCheckFailed indicates at least one line failed to parse.
var ErrCheckFailed = errors.New("check found problems")

// CheckCmd represents the check command
type CheckCmd struct {
	Files []string `arg:"" optional:"" help:"Calc files to check (stdin when omitted)" type:"path"`
}

// Run executes the check command
func (c *CheckCmd) Run(ctx *Context) error {
	config, err := calcpad.LoadConfig(ctx.Config)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	registry, err := config.UnitRegistry()
	if err != nil {
		return err
	}

	p := parser.New(registry)

	problems := 0
	checked := 0

	report := func(name string, r *os.File) error {
		scanner := bufio.NewScanner(r)
		line := 0

		for scanner.Scan() {
			line++
			checked++

			node := p.ParseLine(scanner.Text(), line)
			if node.IsError() {
				problems++

				if !ctx.Quiet {
					color.Red("%s:%d: %s error: %s", name, line, node.Category, node.Message)
				}
			}
		}

		return scanner.Err()
	}

	if len(c.Files) == 0 {
		if err := report("stdin", os.Stdin); err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
	}

	for _, path := range c.Files {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}

		err = report(path, f)
		f.Close()

		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
	}

	if problems > 0 {
		return fmt.Errorf("%w: %d problem(s) in %d line(s)", ErrCheckFailed, problems, checked)
	}

	if !ctx.Quiet {
		color.Green("Checked %d line(s), no problems found", checked)
	}

	return nil
}
