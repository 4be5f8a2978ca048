// Package errors provides structured error types for the hostbind library.
//
// Errors are categorized by Phase (where the error occurred) and Kind (error
// category). The Error type carries the offending instance name and type
// identifier alongside a cause chain.
//
// Use the Builder for structured error construction:
//
//	err := errors.New(errors.PhaseRegistry, errors.KindUndefinedType).
//		Name("c1").
//		Type("Counter").
//		Detail("cannot destroy instance").
//		Build()
//
// Or use convenience constructors for common patterns:
//
//	err := errors.UndefinedName(errors.PhaseRegistry, "c1")
//	err := errors.UndefinedType(errors.PhaseRegistry, "c1", "Counter")
//
// All errors implement the standard error interface and support errors.Is/As.
package errors
