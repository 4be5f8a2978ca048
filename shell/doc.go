// Package shell provides an in-process command interpreter built on the
// instance registry.
//
// The shell is the embedding layer the registry serves: constructing an
// object registers it under a handle and binds a command with the same name,
// and deleting the instance removes both together (the shell implements
// hostbind.Binder).
//
//	sh := shell.New()
//	sh.RegisterType(shell.Type{
//	    Name:   "counter",
//	    New:    func() any { return &Counter{} },
//	    Delete: func(obj any) { obj.(*Counter).Close() },
//	    Command: func(obj any) shell.Command {
//	        c := obj.(*Counter)
//	        return func(args []string) (string, error) { ... }
//	    },
//	})
//
//	out, err := sh.Eval("new counter c1")
//	out, err = sh.Eval("c1 incr")
//	out, err = sh.Eval("delete c1")
//
// Builtins: new, delete, exists, type, ls. "new" without an instance name
// creates a temporary with an auto-generated handle.
//
// An Eval line may chain semicolon-separated commands; its result is the
// last command's output. Temporaries minted during an evaluation live for
// that evaluation only and are swept when it finishes, except a temporary
// handed back as the final result, which the caller then owns.
package shell
