package llalloc

import "unsafe"

// Tags distinguishing allocated from free blocks. A header stores its tag
// xor-ed with its own address, so a stale or copied header cannot
// masquerade as a valid block somewhere else in memory.
const (
	magicAllocated uintptr = 0x4c833e95
	magicFree              = ^magicAllocated
)

// header prefixes every block, allocated or free.
type header struct {
	// Total size of the region in bytes, including this header. Must stay
	// the first field: splitting and coalescing do address arithmetic
	// straight off it.
	size uintptr

	// magicAllocated or magicFree, xor-ed with the header's address.
	magic uintptr

	// Owning arena. Weak reference: never released through this field.
	arena *Arena

	// Keeps the body aligned to 0 mod 2*pointer-size.
	_ [1]uintptr
}

const headerSize = unsafe.Sizeof(header{})

// allocList overlays a free block. Past the header, the body doubles as a
// skiplist node; in allocated blocks the same bytes are client data.
type allocList struct {
	header header

	// Number of skiplist levels this node participates in.
	levels int

	// Only the first levels entries are valid. A small node has no room
	// for all maxLevel of them; see skiplistLevels.
	next [maxLevel]*allocList
}

// magicFor builds the tag value for a header at its current address.
func magicFor(tag uintptr, h *header) uintptr {
	return tag ^ uintptr(unsafe.Pointer(h))
}

func (l *allocList) addr() uintptr { return uintptr(unsafe.Pointer(l)) }
func (l *allocList) end() uintptr  { return l.addr() + l.header.size }

// body returns the usable region just past the header.
func (l *allocList) body() unsafe.Pointer {
	return unsafe.Add(unsafe.Pointer(l), headerSize)
}

// blockOf recovers the block from the body pointer handed to a caller.
func blockOf(v unsafe.Pointer) *allocList {
	return (*allocList)(unsafe.Add(v, -int(headerSize)))
}

// rawCheck is the fatal-check primitive. Once one of these fires the
// allocator's bookkeeping cannot be trusted, so there is no error return
// and no recovery path.
func rawCheck(cond bool, msg string) {
	if !cond {
		panic("llalloc: " + msg)
	}
}

// checkedAdd dies on wraparound rather than letting an oversized request
// fold a size computation back into range.
func checkedAdd(a, b uintptr) uintptr {
	sum := a + b
	rawCheck(sum >= a, "arithmetic overflow")
	return sum
}

// roundUp rounds v up to the next multiple of align. align must be a
// power of two.
func roundUp(v, align uintptr) uintptr {
	return checkedAdd(v, align-1) &^ (align - 1)
}
