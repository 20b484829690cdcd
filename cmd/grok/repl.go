package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/reusee/grok/grokasm"
	"github.com/reusee/grok/grokobj"
	"github.com/reusee/grok/grokrun"
)

// runREPL reads assembly until an empty line, then executes the block on a
// persistent machine. Global bindings carry over between blocks.
func runREPL(ctx context.Context, machine *grokrun.Machine, execute grokrun.Execute) {
	var historyFile string
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = filepath.Join(home, ".grok_history")
	}
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      "> ",
		HistoryFile: historyFile,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		return
	}
	defer rl.Close()
	var lines []string
	for {
		line, err := rl.Readline()
		if err != nil { // Ctrl-C or Ctrl-D
			break
		}
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
			rl.SetPrompt(". ")
			continue
		}
		if len(lines) == 0 {
			continue
		}
		src := strings.Join(lines, "\n")
		lines = lines[:0]
		rl.SetPrompt("> ")

		program, err := grokasm.ParseString(src)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			continue
		}
		machine.VM.Reset()
		res, err := execute(ctx, machine, program)
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		} else if res != nil {
			fmt.Println(grokobj.ToString(res))
		}
	}
}
