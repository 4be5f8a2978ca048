// Package hostbind provides an instance registry for embedding command layers.
//
// The registry maps string handles chosen by an embedding command layer (a
// shell, a scripting interpreter, a WebAssembly guest) to host-side native
// objects, tagged with qualified types and per-type destruction callbacks.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct responsibilities:
//
//	hostbind/            Root package with the Binder contract
//	├── instances/       Instance registry: handles, types, destruction
//	├── errors/          Structured error types
//	├── shell/           In-process command interpreter embedding
//	├── wasmhost/        wazero host module exposing a registry to guests
//	└── cmd/shell/       CLI and interactive TUI driving a live registry
//
// # Quick Start
//
// Create a registry, register a type's destruction callback, and track an
// object under a handle:
//
//	reg := instances.New()
//	reg.RegisterDeleteFunction("Counter", func(obj any) {
//	    obj.(*Counter).Close()
//	})
//
//	c := NewCounter()
//	if err := reg.SetObject("c1", c, instances.QualifiedType{Name: "Counter"}); err != nil {
//	    log.Fatal(err)
//	}
//
//	obj, err := reg.GetObject("c1")
//	...
//	if err := reg.DeleteObject("c1"); err != nil {
//	    log.Fatal(err)
//	}
//
// Temporary objects get auto-generated handles and best-effort cleanup:
//
//	name, _ := reg.CreateTemporary(NewCounter(), instances.QualifiedType{Name: "Counter"})
//	...
//	reg.DeleteIfTemporary(name)
//
// # Command Binding
//
// An embedder that binds a command per handle implements Binder so the
// registry can remove the command when the instance is deleted. The table
// entry and the command binding always go away together.
package hostbind
