package llalloc

import (
	"os"
	"sync"
	"sync/atomic"
	"unsafe"
)

// Flags configure an arena at creation time. They are read-only after
// NewArena returns.
type Flags uint32

const (
	// CallHooks makes the arena report every Alloc and Free through the
	// hooks installed with SetHooks.
	CallHooks Flags = 1 << iota

	// AsyncSignalSafe makes the arena usable from a signal handler:
	// taking its lock first blocks all signals on the current thread,
	// restoring the prior mask only after the lock is released.
	AsyncSignalSafe
)

// Arena is an independent allocation domain: its own lock, free list and
// mapped page ranges. The zero Arena is valid storage; derived fields are
// computed lazily under the lock, which is what lets the package-level
// singletons work before any initializer has run.
type Arena struct {
	mu         sync.Mutex // protects all fields below
	freelist   allocList  // sentinel; list sorted by address (under mu)
	allocCount int32      // live allocated blocks (under mu)
	flags      uint32     // Flags passed to NewArena (read-only after init)
	pagesize   uintptr    // OS page size (init under mu, then read-only)
	roundup    uintptr    // smallest power of two >= headerSize
	minSize    uintptr    // smallest block ever carved; 2*roundup
	random     uint32     // PRNG state for skiplist level draws
	mapped     uintptr    // total bytes obtained from the pager (under mu)
}

// The arena used when no Arena is given, and the arenas used to hold
// metadata for arenas that must not report through hooks (so that even
// creating such an arena triggers no hook callbacks).
var (
	defaultArena         Arena
	unhookedArena        Arena
	unhookedSigSafeArena Arena
)

// DefaultArena returns the process-wide arena used by Alloc and Free.
func DefaultArena() *Arena { return &defaultArena }

// arenaInit computes the derived constants on first use. Must run with
// a.mu held, or before the arena is visible to other goroutines.
func arenaInit(a *Arena) {
	if a.pagesize != 0 {
		return
	}
	a.pagesize = uintptr(os.Getpagesize())
	// Round block sizes up to a power of two close to the header size.
	a.roundup = 16
	for a.roundup < headerSize {
		a.roundup *= 2
	}
	// Never carve blocks smaller than twice the roundup, to avoid tiny
	// free fragments.
	a.minSize = 2 * a.roundup
	a.freelist.header.size = 0
	a.freelist.header.magic = magicFor(magicFree, &a.freelist.header)
	a.freelist.header.arena = a
	a.freelist.levels = 0
	clear(a.freelist.next[:])
	a.allocCount = 0
	switch a {
	case &defaultArena:
		// The default arena reports to hooks, e.g. so a leak checker can
		// trace pointer chains through its blocks.
		atomic.StoreUint32(&a.flags, uint32(CallHooks))
	case &unhookedSigSafeArena:
		atomic.StoreUint32(&a.flags, uint32(AsyncSignalSafe))
	default:
		// User arenas get their flags stored by NewArena afterwards;
		// unhookedArena stays at 0.
		atomic.StoreUint32(&a.flags, 0)
	}
}

func (a *Arena) flagSet(f Flags) bool {
	return Flags(atomic.LoadUint32(&a.flags))&f != 0
}

func atomicStoreFlags(a *Arena, f Flags) {
	atomic.StoreUint32(&a.flags, uint32(f))
}

// next returns prev.next[i] after validating the free-list invariants:
// the successor is tagged free, owned by this arena, at a strictly
// higher address, and not adjacent to prev (coalescing would already
// have merged the two).
func (a *Arena) next(i int, prev *allocList) *allocList {
	rawCheck(i < prev.levels, "too few levels in next")
	n := prev.next[i]
	if n != nil {
		rawCheck(n.header.magic == magicFor(magicFree, &n.header),
			"bad magic number in next")
		rawCheck(n.header.arena == a, "bad arena pointer in next")
		if prev != &a.freelist {
			rawCheck(prev.addr() < n.addr(), "unordered freelist")
			rawCheck(prev.end() < n.addr(), "malformed freelist")
		}
	}
	return n
}

// coalesce merges f with its successor when the two are address-contiguous.
func coalesce(f *allocList) {
	n := f.next[0]
	if n != nil && f.end() == n.addr() {
		a := f.header.arena
		f.header.size += n.header.size
		n.header.magic = 0
		n.header.arena = nil
		var prev [maxLevel]*allocList
		skiplistDelete(&a.freelist, n, &prev)
		skiplistDelete(&a.freelist, f, &prev)
		f.levels = skiplistLevels(f.header.size, a.minSize, &a.random)
		skiplistInsert(&a.freelist, f, &prev)
	}
}

// addToFreelist returns the block whose body is v to a's free list,
// coalescing in both directions. Must run with a.mu held.
func addToFreelist(v unsafe.Pointer, a *Arena) {
	f := blockOf(v)
	rawCheck(f.header.magic == magicFor(magicAllocated, &f.header),
		"bad magic number in addToFreelist")
	rawCheck(f.header.arena == a, "bad arena pointer in addToFreelist")
	f.levels = skiplistLevels(f.header.size, a.minSize, &a.random)
	var prev [maxLevel]*allocList
	skiplistInsert(&a.freelist, f, &prev)
	f.header.magic = magicFor(magicFree, &f.header)
	coalesce(f)       // maybe merge with successor
	coalesce(prev[0]) // maybe merge with predecessor
}
