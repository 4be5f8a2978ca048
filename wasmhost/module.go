package wasmhost

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"
)

// Instantiate builds the host module in rt under ModuleName. Guests import
// its functions to query and manage the registry:
//
//	exists(name_ptr, name_len) -> u32                            0 or 1
//	delete(name_ptr, name_len) -> errno
//	delete_if_temporary(name_ptr, name_len) -> errno
//	create(type_ptr, type_len, out_ptr, out_cap, written_ptr) -> errno
//	type_of(name_ptr, name_len, out_ptr, out_cap, written_ptr) -> errno
//	name_count() -> u32
//	name_at(index, out_ptr, out_cap, written_ptr) -> errno
//
// String results are written into a guest-supplied buffer; written_ptr
// receives the byte length. ErrnoShortBuffer reports a too-small buffer with
// the required length in written_ptr.
func (h *Host) Instantiate(ctx context.Context, rt wazero.Runtime) error {
	builder := rt.NewHostModuleBuilder(ModuleName)

	builder.NewFunctionBuilder().
		WithFunc(func(ctx context.Context, mod api.Module, namePtr, nameLen uint32) uint32 {
			name, ok := readString(mod, namePtr, nameLen)
			if !ok {
				return 0
			}
			if h.visible(name) && h.reg.Exists(name) {
				return 1
			}
			return 0
		}).
		Export("exists")

	builder.NewFunctionBuilder().
		WithFunc(func(ctx context.Context, mod api.Module, namePtr, nameLen uint32) uint32 {
			name, ok := readString(mod, namePtr, nameLen)
			if !ok {
				return ErrnoInvalidInput
			}
			return h.deleteInstance(name)
		}).
		Export("delete")

	builder.NewFunctionBuilder().
		WithFunc(func(ctx context.Context, mod api.Module, namePtr, nameLen uint32) uint32 {
			name, ok := readString(mod, namePtr, nameLen)
			if !ok {
				return ErrnoInvalidInput
			}
			return h.deleteIfTemporary(name)
		}).
		Export("delete_if_temporary")

	builder.NewFunctionBuilder().
		WithFunc(func(ctx context.Context, mod api.Module, typePtr, typeLen, outPtr, outCap, writtenPtr uint32) uint32 {
			typeName, ok := readString(mod, typePtr, typeLen)
			if !ok {
				return ErrnoInvalidInput
			}
			name, errno := h.createInstance(typeName)
			if errno != ErrnoOK {
				return errno
			}
			return writeString(mod, name, outPtr, outCap, writtenPtr)
		}).
		Export("create")

	builder.NewFunctionBuilder().
		WithFunc(func(ctx context.Context, mod api.Module, namePtr, nameLen, outPtr, outCap, writtenPtr uint32) uint32 {
			name, ok := readString(mod, namePtr, nameLen)
			if !ok {
				return ErrnoInvalidInput
			}
			rendered, errno := h.typeOf(name)
			if errno != ErrnoOK {
				return errno
			}
			return writeString(mod, rendered, outPtr, outCap, writtenPtr)
		}).
		Export("type_of")

	builder.NewFunctionBuilder().
		WithFunc(func(ctx context.Context, mod api.Module) uint32 {
			return uint32(len(h.Exported()))
		}).
		Export("name_count")

	builder.NewFunctionBuilder().
		WithFunc(func(ctx context.Context, mod api.Module, index, outPtr, outCap, writtenPtr uint32) uint32 {
			names := h.Exported()
			if int(index) >= len(names) {
				return ErrnoOutOfRange
			}
			return writeString(mod, names[index], outPtr, outCap, writtenPtr)
		}).
		Export("name_at")

	if _, err := builder.Instantiate(ctx); err != nil {
		return err
	}

	h.log.Debug("host module instantiated", zap.String("module", ModuleName))
	return nil
}

// readString copies a guest string out of linear memory.
func readString(mod api.Module, ptr, length uint32) (string, bool) {
	buf, ok := mod.Memory().Read(ptr, length)
	if !ok {
		return "", false
	}
	return string(buf), true
}

// writeString copies s into a guest buffer and records its length at
// writtenPtr. A too-small buffer reports the required length instead.
func writeString(mod api.Module, s string, outPtr, outCap, writtenPtr uint32) uint32 {
	if !mod.Memory().WriteUint32Le(writtenPtr, uint32(len(s))) {
		return ErrnoInvalidInput
	}
	if uint32(len(s)) > outCap {
		return ErrnoShortBuffer
	}
	if !mod.Memory().Write(outPtr, []byte(s)) {
		return ErrnoInvalidInput
	}
	return ErrnoOK
}
