package errors

import (
	"fmt"
	"strings"
)

// Phase indicates where in processing the error occurred
type Phase string

const (
	PhaseRegistry Phase = "registry" // instance table operations
	PhaseCommand  Phase = "command"  // shell command dispatch
	PhaseGuest    Phase = "guest"    // wasm guest boundary
)

// Kind categorizes the error
type Kind string

const (
	KindUndefinedName  Kind = "undefined_name"  // lookup or delete on an absent handle
	KindUndefinedType  Kind = "undefined_type"  // delete with no destruction function for the type
	KindUnknownCommand Kind = "unknown_command" // dispatch to an unbound command
	KindUnknownType    Kind = "unknown_type"    // construction of an unregistered type
	KindInvalidInput   Kind = "invalid_input"
)

// Error is the structured error type used throughout the library
type Error struct {
	Cause  error
	Phase  Phase
	Kind   Kind
	Name   string
	Type   string
	Detail string
}

// Error implements the error interface
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Phase))
	b.WriteString("] ")
	b.WriteString(string(e.Kind))

	if e.Name != "" || e.Type != "" {
		b.WriteString(": ")
		if e.Name != "" && e.Type != "" {
			b.WriteString("instance ")
			b.WriteString(fmt.Sprintf("%q", e.Name))
			b.WriteString(", type ")
			b.WriteString(fmt.Sprintf("%q", e.Type))
		} else if e.Name != "" {
			b.WriteString("instance ")
			b.WriteString(fmt.Sprintf("%q", e.Name))
		} else {
			b.WriteString("type ")
			b.WriteString(fmt.Sprintf("%q", e.Type))
		}
	}

	if e.Detail != "" {
		if e.Name != "" || e.Type != "" {
			b.WriteString(" - ")
		} else {
			b.WriteString(": ")
		}
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Phase == t.Phase && e.Kind == t.Kind
	}
	return false
}

// Builder provides structured error construction
type Builder struct {
	err Error
}

// New creates a new error builder
func New(phase Phase, kind Kind) *Builder {
	return &Builder{
		err: Error{
			Phase: phase,
			Kind:  kind,
		},
	}
}

// Name sets the offending instance name
func (b *Builder) Name(name string) *Builder {
	b.err.Name = name
	return b
}

// Type sets the offending type identifier
func (b *Builder) Type(t string) *Builder {
	b.err.Type = t
	return b
}

// Cause sets the underlying error
func (b *Builder) Cause(err error) *Builder {
	b.err.Cause = err
	return b
}

// Detail sets the human-readable detail message
func (b *Builder) Detail(msg string, args ...any) *Builder {
	if len(args) > 0 {
		b.err.Detail = fmt.Sprintf(msg, args...)
	} else {
		b.err.Detail = msg
	}
	return b
}

// Build returns the constructed error
func (b *Builder) Build() *Error {
	return &b.err
}

// Convenience constructors for common error patterns

// UndefinedName creates an unregistered-handle error
func UndefinedName(phase Phase, name string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUndefinedName,
		Name:   name,
		Detail: "no instance registered under this name",
	}
}

// UndefinedType creates an untyped-deletion error. The offending base type
// identifier is carried so callers can see which type lacks a destruction
// function.
func UndefinedType(phase Phase, name, typeName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUndefinedType,
		Name:   name,
		Type:   typeName,
		Detail: "no destruction function registered for this type",
	}
}

// UnknownCommand creates an unbound-command dispatch error
func UnknownCommand(name string) *Error {
	return &Error{
		Phase:  PhaseCommand,
		Kind:   KindUnknownCommand,
		Name:   name,
		Detail: "no command bound under this name",
	}
}

// UnknownType creates an unregistered-constructor error
func UnknownType(phase Phase, typeName string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindUnknownType,
		Type:   typeName,
		Detail: "no factory registered for this type",
	}
}

// InvalidInput creates an invalid input error
func InvalidInput(phase Phase, detail string) *Error {
	return &Error{
		Phase:  phase,
		Kind:   KindInvalidInput,
		Detail: detail,
	}
}
