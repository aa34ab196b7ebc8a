package llalloc

import "unsafe"

// Pager is the seam between the allocator and the OS virtual-memory
// primitives. Implementations must hand out page-aligned, zeroed,
// read-write ranges of at least the requested size.
type Pager interface {
	// RequestPages maps n bytes of anonymous memory.
	RequestPages(n uintptr) (unsafe.Pointer, error)

	// ReleasePages unmaps a previously mapped, page-aligned range.
	ReleasePages(p unsafe.Pointer, n uintptr) error
}
