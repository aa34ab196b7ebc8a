package llalloc

import (
	"testing"
	"unsafe"
)

func TestDefaultArenaSingleton(t *testing.T) {
	a := DefaultArena()
	if a == nil {
		t.Fatal("DefaultArena() = nil")
	}
	if a != DefaultArena() {
		t.Error("DefaultArena() not stable across calls")
	}

	// Lazy init makes the default arena report through hooks.
	p := Alloc(16)
	defer Free(p)
	if !a.flagSet(CallHooks) {
		t.Error("default arena missing CallHooks flag after first use")
	}
}

func TestArenaDerivedConstants(t *testing.T) {
	a := NewArena(0, DefaultArena())
	defer DeleteArena(a)

	if a.pagesize == 0 || a.pagesize&(a.pagesize-1) != 0 {
		t.Errorf("pagesize = %d, want a power of two", a.pagesize)
	}
	if a.roundup < headerSize || a.roundup&(a.roundup-1) != 0 {
		t.Errorf("roundup = %d, want a power of two >= %d", a.roundup, headerSize)
	}
	if a.minSize != 2*a.roundup {
		t.Errorf("minSize = %d, want %d", a.minSize, 2*a.roundup)
	}
	if a.freelist.header.arena != a {
		t.Error("freelist sentinel does not point back at its arena")
	}
	if a.freelist.header.magic != magicFor(magicFree, &a.freelist.header) {
		t.Error("freelist sentinel not tagged free")
	}
}

func TestArenaFlags(t *testing.T) {
	a := NewArena(CallHooks|AsyncSignalSafe, DefaultArena())
	defer DeleteArena(a)
	if !a.flagSet(CallHooks) || !a.flagSet(AsyncSignalSafe) {
		t.Errorf("flags = %#x, want CallHooks|AsyncSignalSafe", a.flags)
	}

	b := NewArena(0, DefaultArena())
	defer DeleteArena(b)
	if b.flagSet(CallHooks) || b.flagSet(AsyncSignalSafe) {
		t.Errorf("flags = %#x, want 0", b.flags)
	}
}

func TestAllocationAlignment(t *testing.T) {
	a := NewArena(0, DefaultArena())
	defer DeleteArena(a)

	for _, size := range []uintptr{1, 7, 16, 100, 4096} {
		p := AllocWithArena(size, a)
		if uintptr(p)%(2*unsafe.Sizeof(uintptr(0))) != 0 {
			t.Errorf("AllocWithArena(%d) = %#x, not aligned to 2*ptrsize", size, uintptr(p))
		}
		Free(p)
	}
}

func TestGrowthIsPageGranular(t *testing.T) {
	a := NewArena(0, DefaultArena())
	defer DeleteArena(a)

	allocAndFree := func(size uintptr) {
		p := AllocWithArena(size, a)
		if p == nil {
			t.Fatalf("AllocWithArena(%d) = nil", size)
		}
		Free(p)
	}
	allocAndFree(1)
	st := a.Stats()
	if st.BytesMapped == 0 || st.BytesMapped%st.PageSize != 0 {
		t.Errorf("BytesMapped = %d, want a positive multiple of page size %d",
			st.BytesMapped, st.PageSize)
	}

	// A small follow-up allocation must reuse the mapping.
	before := st.BytesMapped
	allocAndFree(64)
	if got := a.Stats().BytesMapped; got != before {
		t.Errorf("BytesMapped grew from %d to %d on a satisfiable request", before, got)
	}
}

func TestSplitLeavesNoTinyFragments(t *testing.T) {
	a := NewArena(0, DefaultArena())
	defer DeleteArena(a)

	p := AllocWithArena(100, a)
	defer Free(p)

	var section arenaLock
	section.lock(a)
	defer section.leave()
	for f := a.freelist.next[0]; f != nil; f = f.next[0] {
		if f.header.size < a.minSize {
			t.Errorf("free block of %d bytes, want >= %d", f.header.size, a.minSize)
		}
		if f.header.size%a.roundup != 0 {
			t.Errorf("free block of %d bytes not a multiple of roundup %d",
				f.header.size, a.roundup)
		}
	}
}

func TestArenasAreIndependent(t *testing.T) {
	a := NewArena(0, DefaultArena())
	b := NewArena(0, DefaultArena())

	pa := AllocWithArena(100, a)
	pb := AllocWithArena(100, b)

	if got := a.Stats().Allocations; got != 1 {
		t.Errorf("arena a Allocations = %d, want 1", got)
	}
	if got := b.Stats().Allocations; got != 1 {
		t.Errorf("arena b Allocations = %d, want 1", got)
	}

	// Free routes back to the issuing arena without being told which.
	Free(pa)
	if got := a.Stats().Allocations; got != 0 {
		t.Errorf("arena a Allocations after Free = %d, want 0", got)
	}
	if got := b.Stats().Allocations; got != 1 {
		t.Errorf("arena b Allocations after a's Free = %d, want 1", got)
	}
	Free(pb)

	if !DeleteArena(a) || !DeleteArena(b) {
		t.Error("DeleteArena on emptied arenas returned false")
	}
}
