package hostbind

// Binder is implemented by embedding command layers that bind a command or
// handle per instance name. The registry calls Unbind when an instance is
// deleted so the name's command binding and its table entry are removed
// together.
type Binder interface {
	// Unbind removes the command bound to name. Unknown names are ignored.
	Unbind(name string)
}

// NopBinder is a Binder that does nothing, for registries used without an
// embedding command layer.
type NopBinder struct{}

func (NopBinder) Unbind(string) {}
