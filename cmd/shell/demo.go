package main

import (
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/embedkit/hostbind/errors"
	"github.com/embedkit/hostbind/shell"
)

// Demo object types for exercising the registry from the command line.

type counter struct {
	n int
}

type note struct {
	text string
}

func newDemoShell(logger *zap.Logger) (*shell.Shell, error) {
	sh := shell.NewWithConfig(&shell.Config{Logger: logger})

	err := sh.RegisterType(shell.Type{
		Name:   "counter",
		New:    func() any { return &counter{} },
		Delete: func(obj any) { obj.(*counter).n = 0 },
		Command: func(obj any) shell.Command {
			c := obj.(*counter)
			return func(args []string) (string, error) {
				if len(args) == 0 {
					return "", errors.InvalidInput(errors.PhaseCommand, "usage: <name> get|incr|reset")
				}
				switch args[0] {
				case "get":
					return strconv.Itoa(c.n), nil
				case "incr":
					c.n++
					return strconv.Itoa(c.n), nil
				case "reset":
					c.n = 0
					return "0", nil
				}
				return "", errors.InvalidInput(errors.PhaseCommand, "unknown method "+args[0])
			}
		},
	})
	if err != nil {
		return nil, err
	}

	err = sh.RegisterType(shell.Type{
		Name:   "note",
		New:    func() any { return &note{} },
		Delete: func(obj any) { obj.(*note).text = "" },
		Command: func(obj any) shell.Command {
			n := obj.(*note)
			return func(args []string) (string, error) {
				if len(args) == 0 {
					return "", errors.InvalidInput(errors.PhaseCommand, "usage: <name> get|set <words>")
				}
				switch args[0] {
				case "get":
					return n.text, nil
				case "set":
					n.text = strings.Join(args[1:], " ")
					return n.text, nil
				}
				return "", errors.InvalidInput(errors.PhaseCommand, "unknown method "+args[0])
			}
		},
	})
	if err != nil {
		return nil, err
	}

	return sh, nil
}
