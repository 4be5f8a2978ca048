// Package wasmhost exposes an instance registry to WebAssembly guests.
//
// The host module (import namespace "hostbind") lets a guest create,
// inspect, and delete host-side instances by name over linear memory. The
// guest-visible name set is maintained through the registry's binder
// contract: when an instance is deleted, by the guest or by host-side code,
// its name disappears from the guest's view in the same operation.
//
//	host := wasmhost.New()
//	host.RegisterFactory("counter",
//	    func() any { return &Counter{} },
//	    func(obj any) { obj.(*Counter).Close() })
//
//	rt := wazero.NewRuntime(ctx)
//	defer rt.Close(ctx)
//	if err := host.Instantiate(ctx, rt); err != nil {
//	    log.Fatal(err)
//	}
//	// guest modules instantiated in rt can now import "hostbind" functions
//
// Guests instantiate types through registered factories only; every
// guest-created instance is a temporary, so host code can sweep leftovers
// with DeleteIfTemporary.
package wasmhost
