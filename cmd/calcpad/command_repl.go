package main

import (
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/fatih/color"
	"github.com/peterh/liner"
	"github.com/shibukawa/calcpad"
	"github.com/shibukawa/calcpad/engine"
	"github.com/shibukawa/calcpad/evaluator"
	"github.com/shibukawa/calcpad/value"
)

const historyFile = ".calcpad_history"

// ReplCmd represents the repl command
type ReplCmd struct{}

// Run executes the repl command
func (r *ReplCmd) Run(ctx *Context) error {
	config, err := calcpad.LoadConfig(ctx.Config)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	doc, err := config.Document()
	if err != nil {
		return err
	}

	home, _ := os.UserHomeDir()
	histPath := filepath.Join(home, historyFile)

	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	defer func() {
		if f, err := os.Create(histPath); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	if f, err := os.Open(histPath); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}

	if !ctx.Quiet {
		fmt.Println("calcpad interactive session (:help for commands)")
	}

	opts := config.DisplayOptions()
	line := 0

	for {
		input, err := ln.Prompt("> ")
		if err != nil {
			fmt.Println()
			break
		}

		trimmed := strings.TrimSpace(input)
		if trimmed == "" {
			continue
		}

		ln.AppendHistory(input)

		if strings.HasPrefix(trimmed, ":") {
			if runMetaCommand(trimmed, doc, opts) {
				break
			}

			continue
		}

		line++
		rn := doc.SetLine(line, input)
		printReplResult(rn)
	}

	return nil
}

// runMetaCommand handles colon commands; it reports whether to exit.
func runMetaCommand(cmd string, doc *engine.Document, opts value.DisplayOptions) bool {
	switch strings.ToLower(cmd) {
	case ":quit", ":q", ":exit":
		return true

	case ":vars":
		vars := doc.Variables()

		for _, name := range slices.Sorted(maps.Keys(vars)) {
			v := vars[name]
			if v.Err != nil {
				color.Red("%s = ! %s", name, v.Err.Message)
				continue
			}

			fmt.Printf("%s = %s\n", name, v.Value.Format(opts))
		}

	case ":help":
		fmt.Println(":vars  list defined variables")
		fmt.Println(":quit  leave the session")

	default:
		color.Yellow("unknown command %s", cmd)
	}

	return false
}

func printReplResult(rn *evaluator.RenderNode) {
	switch rn.Kind {
	case evaluator.RenderError:
		color.Red("! %s error: %s", rn.Category, rn.Message)

	case evaluator.RenderMath, evaluator.RenderCombined:
		if rn.Result != "" {
			color.Green("= %s", rn.Result)
		}
	}
}
