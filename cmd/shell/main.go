package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/embedkit/hostbind/shell"
)

func main() {
	var (
		expr        = flag.String("e", "", "Commands to evaluate (semicolon-separated)")
		script      = flag.String("script", "", "Path to a script file (one command per line)")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		debug       = flag.Bool("debug", false, "Enable debug logging")
	)
	flag.Parse()

	if *expr == "" && *script == "" && !*interactive {
		fmt.Fprintln(os.Stderr, "Usage: shell -e '<cmd>; <cmd>'")
		fmt.Fprintln(os.Stderr, "       shell -script <file>")
		fmt.Fprintln(os.Stderr, "       shell -i  (interactive mode)")
		os.Exit(1)
	}

	logger := zap.NewNop()
	if *debug {
		l, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		logger = l
		defer logger.Sync()
	}

	sh, err := newDemoShell(logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode requires a terminal")
			os.Exit(1)
		}
		if err := runInteractive(sh); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(sh, *expr, *script); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(sh *shell.Shell, expr, script string) error {
	var lines []string

	if expr != "" {
		// One evaluation: temporaries minted by the expression are
		// scoped to it.
		lines = []string{expr}
	} else {
		f, err := os.Open(script)
		if err != nil {
			return fmt.Errorf("open script: %w", err)
		}
		defer f.Close()

		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			lines = append(lines, scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("read script: %w", err)
		}
	}

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		out, err := sh.Eval(line)
		if err != nil {
			return err
		}
		if out != "" {
			fmt.Println(out)
		}
	}
	return nil
}
