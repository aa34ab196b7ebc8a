package llalloc

import "unsafe"

// New returns a zeroed *T carved out of a. Release it with FreeValue.
// Zero-size types still consume a minimal block so that FreeValue works
// uniformly.
func New[T any](a *Arena) *T {
	var zero T
	size := unsafe.Sizeof(zero)
	if size == 0 {
		size = 1
	}
	t := (*T)(AllocWithArena(size, a))
	*t = zero
	return t
}

// FreeValue releases a value obtained from New.
func FreeValue[T any](t *T) {
	Free(unsafe.Pointer(t))
}

// NewSlice returns a zeroed slice of n elements of T carved out of a, or
// nil when n <= 0. Release it with FreeSlice.
func NewSlice[T any](a *Arena, n int) []T {
	if n <= 0 {
		return nil
	}
	var zero T
	size := uintptr(n) * unsafe.Sizeof(zero)
	if size == 0 {
		size = 1
	}
	s := unsafe.Slice((*T)(AllocWithArena(size, a)), n)
	clear(s)
	return s
}

// FreeSlice releases a slice obtained from NewSlice. The slice must be
// exactly as returned, not resliced.
func FreeSlice[T any](s []T) {
	if len(s) == 0 {
		return
	}
	Free(unsafe.Pointer(&s[0]))
}
