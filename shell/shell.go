package shell

import (
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/embedkit/hostbind/errors"
	"github.com/embedkit/hostbind/instances"
)

// Command handles one invocation of a bound name with the remaining words
// of the input line.
type Command func(args []string) (string, error)

// Type describes an object type the shell can construct. New builds the
// native object, Delete reclaims it, and Command (optional) produces the
// per-instance command bound under the instance's name.
type Type struct {
	Name    string
	New     func() any
	Delete  instances.DeleteFunc
	Command func(obj any) Command
}

// Shell is an in-process command interpreter embedding an instance
// registry. Every constructed object is registered under its handle and a
// command is bound under the same name; deleting the instance removes both
// together.
type Shell struct {
	reg   *instances.Registry
	mu    sync.RWMutex
	cmds  map[string]Command
	types map[string]Type
	log   *zap.Logger
}

// Config holds configuration for shell creation
type Config struct {
	// Logger receives debug-level dispatch events. Nil means no logging.
	Logger *zap.Logger
}

// New creates a shell with no logging.
func New() *Shell {
	return NewWithConfig(nil)
}

// NewWithConfig creates a shell with custom configuration.
func NewWithConfig(cfg *Config) *Shell {
	log := zap.NewNop()
	if cfg != nil && cfg.Logger != nil {
		log = cfg.Logger
	}

	s := &Shell{
		cmds:  make(map[string]Command),
		types: make(map[string]Type),
		log:   log,
	}
	s.reg = instances.NewWithConfig(&instances.Config{
		Binder: s,
		Logger: log,
	})
	return s
}

// Registry returns the shell's instance registry.
func (s *Shell) Registry() *instances.Registry {
	return s.reg
}

// RegisterType installs a constructor, its destruction callback, and its
// per-instance command in one step.
func (s *Shell) RegisterType(t Type) error {
	if t.Name == "" {
		return errors.InvalidInput(errors.PhaseCommand, "type name cannot be empty")
	}
	if t.New == nil || t.Delete == nil {
		return errors.InvalidInput(errors.PhaseCommand, "type needs both a constructor and a destruction function")
	}

	s.mu.Lock()
	s.types[t.Name] = t
	s.mu.Unlock()

	s.reg.RegisterDeleteFunction(t.Name, t.Delete)
	return nil
}

// Bind binds cmd under name in the shell's command namespace.
func (s *Shell) Bind(name string, cmd Command) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cmds[name] = cmd
}

// Unbind removes the command bound under name. It implements
// hostbind.Binder: the registry calls it when the instance named name is
// deleted.
func (s *Shell) Unbind(name string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.cmds, name)
}

// Eval evaluates one input line of semicolon-separated commands and returns
// the last command's output. Temporaries minted during evaluation are swept
// afterwards; a temporary whose handle is the final result is the caller's
// and survives. A failed evaluation sweeps everything it minted.
func (s *Shell) Eval(line string) (string, error) {
	var minted []string
	out, err := s.evalLine(line, &minted)
	s.sweep(minted, out, err)
	return out, err
}

func (s *Shell) evalLine(line string, minted *[]string) (string, error) {
	var out string
	for _, segment := range strings.Split(line, ";") {
		words := strings.Fields(segment)
		if len(words) == 0 {
			continue
		}
		res, err := s.evalCommand(words, minted)
		if err != nil {
			return "", err
		}
		out = res
	}
	return out, nil
}

// evalCommand dispatches one command: builtins first, then commands bound
// to instance names.
func (s *Shell) evalCommand(words []string, minted *[]string) (string, error) {
	s.log.Debug("eval", zap.String("command", strings.Join(words, " ")))

	switch words[0] {
	case "new":
		return s.evalNew(words[1:], minted)
	case "delete":
		return s.evalDelete(words[1:])
	case "exists":
		return s.evalExists(words[1:])
	case "type":
		return s.evalType(words[1:])
	case "ls":
		return strings.Join(s.reg.Names(), "\n"), nil
	}

	s.mu.RLock()
	cmd, ok := s.cmds[words[0]]
	s.mu.RUnlock()
	if !ok {
		return "", errors.UnknownCommand(words[0])
	}
	return cmd(words[1:])
}

// sweep deletes the temporaries minted during one evaluation. The final
// result's own handle is spared so "new <type>" can hand a temporary back
// to the caller.
func (s *Shell) sweep(minted []string, result string, evalErr error) {
	for _, name := range minted {
		if evalErr == nil && name == result {
			continue
		}
		if err := s.reg.DeleteIfTemporary(name); err != nil {
			s.log.Debug("temporary sweep", zap.String("name", name), zap.Error(err))
		}
	}
}

// evalNew handles "new <type> [name]". Without a name the object is
// registered as a temporary, scoped to the evaluation that minted it.
func (s *Shell) evalNew(args []string, minted *[]string) (string, error) {
	if len(args) < 1 || len(args) > 2 {
		return "", errors.InvalidInput(errors.PhaseCommand, "usage: new <type> [name]")
	}

	s.mu.RLock()
	typ, ok := s.types[args[0]]
	s.mu.RUnlock()
	if !ok {
		return "", errors.UnknownType(errors.PhaseCommand, args[0])
	}

	obj := typ.New()
	qtype := instances.QualifiedType{Name: typ.Name}

	var name string
	if len(args) == 2 {
		name = args[1]
		if instances.IsTemporary(name) {
			return "", errors.InvalidInput(errors.PhaseCommand,
				fmt.Sprintf("names starting with %q are reserved", instances.TempPrefix))
		}
		if err := s.reg.SetObject(name, obj, qtype); err != nil {
			return "", err
		}
	} else {
		var err error
		name, err = s.reg.CreateTemporary(obj, qtype)
		if err != nil {
			return "", err
		}
		*minted = append(*minted, name)
	}

	if typ.Command != nil {
		s.Bind(name, typ.Command(obj))
	}
	return name, nil
}

func (s *Shell) evalDelete(args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.InvalidInput(errors.PhaseCommand, "usage: delete <name>")
	}
	if err := s.reg.DeleteObject(args[0]); err != nil {
		return "", err
	}
	return "", nil
}

func (s *Shell) evalExists(args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.InvalidInput(errors.PhaseCommand, "usage: exists <name>")
	}
	if s.reg.Exists(args[0]) {
		return "true", nil
	}
	return "false", nil
}

func (s *Shell) evalType(args []string) (string, error) {
	if len(args) != 1 {
		return "", errors.InvalidInput(errors.PhaseCommand, "usage: type <name>")
	}
	qt, err := s.reg.GetType(args[0])
	if err != nil {
		return "", err
	}
	return qt.String(), nil
}
