// Package instances provides the instance registry: a runtime table mapping
// opaque string handles to native objects.
//
// Each entry pairs a handle name with an object address and a qualified type.
// Destruction is type-erased: a per-base-type DeleteFunc must be registered
// before any instance of that type can be deleted.
//
// # Lifecycle
//
// Entries are created by SetObject (after the embedder constructs an object)
// or by CreateTemporary, which mints a unique "__temp"-prefixed name. They
// are destroyed by DeleteObject, by a DeleteIfTemporary sweep, or through
// DeleteCallBack when the object's own teardown notifies the registry.
//
//	reg := instances.New()
//	reg.RegisterDeleteFunction("File", func(obj any) { obj.(*File).Close() })
//
//	reg.SetObject("f", file, instances.QualifiedType{Name: "File"})
//	obj, err := reg.GetObject("f")
//	err = reg.DeleteObject("f")
//
// # Invariants
//
// The address index is the exact inverse of the instance map: every live
// object has exactly one current name and vice versa. Re-registering a name
// deletes the prior object first, so at most one object is ever live per
// name. DeleteObject checks for a destruction function before mutating
// anything; on failure the registry is unchanged.
//
// # Concurrency
//
// All public operations are safe for concurrent use: the three co-mutated
// structures share one lock. Destruction callbacks, binder unbinding, and
// observer notification run outside the lock, so an object tearing itself
// down may re-enter DeleteCallBack.
package instances
