package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/shibukawa/calcpad"
	"github.com/shibukawa/calcpad/engine"
	"github.com/shibukawa/calcpad/evaluator"
)

// EvalCmd represents the eval command
type EvalCmd struct {
	Files []string `arg:"" optional:"" help:"Calc files to evaluate (stdin when omitted)" type:"path"`
	All   bool     `short:"a" help:"Show results for every expression, not only lines ending in =>"`
}

// Run executes the eval command
func (e *EvalCmd) Run(ctx *Context) error {
	config, err := calcpad.LoadConfig(ctx.Config)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if len(e.Files) == 0 {
		return e.evalReader(ctx, config, os.Stdin)
	}

	for _, path := range e.Files {
		if ctx.Verbose {
			color.Blue("Evaluating %s", path)
		}

		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}

		err = e.evalReader(ctx, config, f)
		f.Close()

		if err != nil {
			return fmt.Errorf("failed to evaluate %s: %w", path, err)
		}
	}

	return nil
}

func (e *EvalCmd) evalReader(ctx *Context, config *calcpad.Config, r io.Reader) error {
	doc, err := config.Document()
	if err != nil {
		return err
	}

	var texts []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		texts = append(texts, scanner.Text())
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	// Two passes: feed every line first so forward edits have settled,
	// then print the final render state
	for i, text := range texts {
		doc.SetLine(i+1, text)
	}

	if ctx.Quiet {
		return firstError(doc, len(texts))
	}

	for i, text := range texts {
		rn, ok := doc.Render(i + 1)
		if !ok {
			fmt.Println(text)
			continue
		}

		printRender(text, rn, e.All)
	}

	return firstError(doc, len(texts))
}

// firstError returns the first evaluation error so the process exits
// non-zero on broken input.
func firstError(doc *engine.Document, lines int) error {
	for i := 1; i <= lines; i++ {
		if rn, ok := doc.Render(i); ok && rn.IsError() {
			return fmt.Errorf("line %d: %s", i, rn.Message)
		}
	}

	return nil
}

func printRender(text string, rn *evaluator.RenderNode, showAll bool) {
	switch rn.Kind {
	case evaluator.RenderError:
		fmt.Println(text)
		color.Red("  ^ %s error: %s", rn.Category, rn.Message)

	case evaluator.RenderMath, evaluator.RenderCombined:
		if rn.Result != "" && (rn.Visible || showAll) {
			fmt.Printf("%s %s\n", text, color.GreenString("| %s", rn.Result))
		} else {
			fmt.Println(text)
		}

	default:
		fmt.Println(text)
	}
}
