// Package llalloc implements a low-level arena allocator that manages raw
// OS pages instead of the Go heap.
//
// # Overview
//
// llalloc is a general-purpose first-fit allocator with logarithmic-time
// free-list management. It exists for code that must not depend on the
// primary allocator: allocation hooks, leak checkers, and similar
// infrastructure that would otherwise recurse into the very allocator it
// instruments. It is deliberately slow and wasteful of memory; do not use
// it where performance is key. What it offers instead:
//
//   - Blocks are carved out of anonymous pages mapped directly from the OS
//   - Usable before any initializer runs (the singleton arenas are valid
//     zero values with lazy setup)
//   - Arenas can be flagged safe to use from a signal handler
//   - Individual Free, with address-ordered coalescing of free blocks
//
// # Basic Usage
//
//	p := llalloc.Alloc(100)  // 100 usable bytes from the default arena
//	defer llalloc.Free(p)
//
//	// Isolated arena with its own lock and pages
//	a := llalloc.NewArena(0, llalloc.DefaultArena())
//	q := llalloc.AllocWithArena(100, a)
//	llalloc.Free(q)               // the block remembers its arena
//	llalloc.DeleteArena(a)        // returns true once the arena is empty
//
// # Arenas
//
// An Arena is an independent allocation domain: its own mutex, its own
// free list (a skiplist ordered by address), and its own mapped page
// ranges. The default arena reports every allocation through the hooks
// installed with SetHooks; arenas created with NewArena only do so when
// given the CallHooks flag. An arena created with AsyncSignalSafe blocks
// all signals on the current thread for the duration of each critical
// section, so it can be used from a signal handler without deadlocking
// against an interrupted allocation on the same thread.
//
// # Failure Model
//
// Corruption of the allocator's bookkeeping (a mismatched block tag, a
// free block missing from the skiplist, an allocation-count underflow) is
// unrecoverable by construction: by the time it is observed the heap
// state cannot be trusted, so llalloc panics immediately rather than
// returning an error. The only defined non-fatal outcomes are a zero-size
// Alloc (returns nil), Free of nil (no-op), and DeleteArena of a
// non-empty arena (returns false, arena untouched).
//
// # Important Notes
//
//   - Memory returned by Alloc is not zeroed when a block is recycled;
//     use New or NewSlice for cleared typed storage
//   - Arena memory is invisible to the garbage collector: do not store
//     the only reference to a Go-heap object inside an arena block
//   - Free must receive exactly the pointer Alloc returned
package llalloc
