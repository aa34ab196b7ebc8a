package llalloc

import "unsafe"

// Alloc returns a pointer to size usable bytes from the default arena.
// A zero size returns nil without any side effects. The block must be
// released with Free.
func Alloc(size uintptr) unsafe.Pointer {
	p := doAlloc(size, &defaultArena)
	if p != nil && defaultArena.flagSet(CallHooks) {
		notifyAlloc(p, size)
	}
	return p
}

// AllocWithArena is Alloc against a specific arena.
func AllocWithArena(size uintptr, a *Arena) unsafe.Pointer {
	rawCheck(a != nil, "must pass a valid arena")
	p := doAlloc(size, a)
	if p != nil && a.flagSet(CallHooks) {
		notifyAlloc(p, size)
	}
	return p
}

// doAlloc carves a block of at least request usable bytes out of a.
func doAlloc(request uintptr, a *Arena) unsafe.Pointer {
	if request == 0 {
		return nil
	}
	// Die on requests whose rounded size would wrap before any lock is
	// taken. roundup never exceeds 2*headerSize, so this bound covers the
	// header plus worst-case alignment slack.
	checkedAdd(request, 2*headerSize)
	var section arenaLock
	section.lock(a)
	arenaInit(a)
	req := roundUp(checkedAdd(request, headerSize), a.roundup)
	var s *allocList // will point to the block that satisfies the request
	for {
		// The fewest levels a block of this size can have; any adequate
		// block is reachable at that level or above.
		i := skiplistLevels(req, a.minSize, nil) - 1
		if i < a.freelist.levels { // potential blocks exist
			before := &a.freelist
			for s = a.next(i, before); s != nil && s.header.size < req; s = a.next(i, before) {
				before = s
			}
			if s != nil { // found a first fit
				break
			}
		}
		// No adequate block: grow the arena. The pager may be slow and a
		// hook may reenter the allocator, so drop the mutex around the
		// page request. Map generously to limit fragmentation.
		a.mu.Unlock()
		growth := roundUp(req, a.pagesize*16)
		pages, err := sysPager.RequestPages(growth)
		if err != nil {
			panic(err)
		}
		a.mu.Lock()
		a.mapped += growth
		s = (*allocList)(pages)
		s.header.size = growth
		// Pretend the fresh range is allocated, then hand it to
		// addToFreelist so it coalesces with any neighbouring free block.
		s.header.magic = magicFor(magicAllocated, &s.header)
		s.header.arena = a
		addToFreelist(s.body(), a)
	}
	var prev [maxLevel]*allocList
	skiplistDelete(&a.freelist, s, &prev)
	if checkedAdd(req, a.minSize) <= s.header.size {
		// Big enough to split: the tail becomes a free block of its own.
		n := (*allocList)(unsafe.Add(unsafe.Pointer(s), req))
		n.header.size = s.header.size - req
		n.header.magic = magicFor(magicAllocated, &n.header)
		n.header.arena = a
		s.header.size = req
		addToFreelist(n.body(), a)
	}
	s.header.magic = magicFor(magicAllocated, &s.header)
	rawCheck(s.header.arena == a, "block owned by wrong arena")
	a.allocCount++
	section.leave()
	return s.body()
}

// Free releases a block obtained from Alloc or AllocWithArena, returning
// it to the arena that issued it. Freeing nil is a no-op.
func Free(v unsafe.Pointer) {
	if v == nil {
		return
	}
	f := blockOf(v)
	rawCheck(f.header.magic == magicFor(magicAllocated, &f.header),
		"bad magic number in Free")
	a := f.header.arena
	if a.flagSet(CallHooks) {
		// Report before taking the lock; the hook may allocate.
		notifyFree(v)
	}
	var section arenaLock
	section.lock(a)
	addToFreelist(v, a)
	rawCheck(a.allocCount > 0, "nothing in arena to free")
	a.allocCount--
	section.leave()
}

// NewArena returns a fresh arena with the given flags. The Arena struct
// itself is carved out of meta, which must be non-nil; when meta is the
// default arena and the flags ask for unhooked or signal-safe semantics,
// the matching unhooked singleton is silently substituted so that
// creating the arena triggers no hook callbacks.
func NewArena(flags Flags, meta *Arena) *Arena {
	rawCheck(meta != nil, "must pass a valid metadata arena")
	if meta == &defaultArena {
		if flags&AsyncSignalSafe != 0 {
			meta = &unhookedSigSafeArena
		} else if flags&CallHooks == 0 {
			meta = &unhookedArena
		}
	}
	a := (*Arena)(AllocWithArena(unsafe.Sizeof(Arena{}), meta))
	*a = Arena{} // recycled blocks are not zeroed
	arenaInit(a)
	atomicStoreFlags(a, flags)
	return a
}

// DeleteArena releases every page an empty arena holds and frees the
// Arena struct itself against its metadata arena. It reports false,
// leaving the arena untouched and usable, when live allocations remain.
// The singleton arenas may never be deleted.
func DeleteArena(a *Arena) bool {
	rawCheck(a != nil && a != &defaultArena && a != &unhookedArena &&
		a != &unhookedSigSafeArena, "may not delete a singleton arena")
	var section arenaLock
	section.lock(a)
	empty := a.allocCount == 0
	section.leave()
	if !empty {
		return false
	}
	// Emptiness plus single ownership means no concurrent mutators, so
	// the teardown walk needs no lock.
	for a.freelist.next[0] != nil {
		region := a.freelist.next[0]
		size := region.header.size
		a.freelist.next[0] = region.next[0]
		rawCheck(region.header.magic == magicFor(magicFree, &region.header),
			"bad magic number in DeleteArena")
		rawCheck(region.header.arena == a, "bad arena pointer in DeleteArena")
		rawCheck(size%a.pagesize == 0,
			"empty arena has non-page-aligned block size")
		rawCheck(region.addr()%a.pagesize == 0,
			"empty arena has non-page-aligned block")
		if err := sysPager.ReleasePages(unsafe.Pointer(region), size); err != nil {
			panic(err)
		}
	}
	Free(unsafe.Pointer(a))
	return true
}

// AllocBytes returns a slice of n bytes backed by the default arena, or
// nil when n <= 0. Release it with FreeBytes.
func AllocBytes(n int) []byte {
	if n <= 0 {
		return nil
	}
	return unsafe.Slice((*byte)(Alloc(uintptr(n))), n)
}

// AllocBytesWithArena is AllocBytes against a specific arena.
func AllocBytesWithArena(n int, a *Arena) []byte {
	if n <= 0 {
		return nil
	}
	return unsafe.Slice((*byte)(AllocWithArena(uintptr(n), a)), n)
}

// FreeBytes releases a slice obtained from AllocBytes. The slice must be
// exactly as returned, not resliced. Freeing nil is a no-op.
func FreeBytes(b []byte) {
	if b == nil {
		return
	}
	Free(unsafe.Pointer(&b[0]))
}
