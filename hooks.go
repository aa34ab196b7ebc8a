package llalloc

import (
	"sync/atomic"
	"unsafe"
)

// Hooks receives allocation events from arenas carrying the CallHooks
// flag. Hooks run synchronously but outside the arena lock, so they may
// themselves allocate and free without deadlocking against the arena
// they are reporting on.
type Hooks struct {
	// Alloc is called after a successful allocation with the returned
	// pointer and the originally requested size.
	Alloc func(p unsafe.Pointer, size uintptr)

	// Free is called with the pointer being freed, before the block is
	// returned to the free list.
	Free func(p unsafe.Pointer)
}

var hooks atomic.Pointer[Hooks]

// SetHooks installs h as the process-wide hook set, replacing any
// previous one. Pass nil to remove all hooks.
func SetHooks(h *Hooks) { hooks.Store(h) }

func notifyAlloc(p unsafe.Pointer, size uintptr) {
	if h := hooks.Load(); h != nil && h.Alloc != nil {
		h.Alloc(p, size)
	}
}

func notifyFree(p unsafe.Pointer) {
	if h := hooks.Load(); h != nil && h.Free != nil {
		h.Free(p)
	}
}
