//go:build !unix

package llalloc

import (
	"fmt"
	"os"
	"sync"
	"unsafe"
)

// heapPager backs arenas with page-aligned Go-heap buffers on platforms
// without anonymous mmap. Buffers stay pinned in a registry until
// released, since arena blocks are invisible to the garbage collector.
type heapPager struct {
	mu   sync.Mutex
	held map[uintptr][]byte
}

func (h *heapPager) RequestPages(n uintptr) (unsafe.Pointer, error) {
	pagesize := uintptr(os.Getpagesize())
	buf := make([]byte, n+pagesize)
	base := uintptr(unsafe.Pointer(&buf[0]))
	aligned := roundUp(base, pagesize)
	h.mu.Lock()
	if h.held == nil {
		h.held = make(map[uintptr][]byte)
	}
	h.held[aligned] = buf
	h.mu.Unlock()
	return unsafe.Pointer(aligned), nil
}

func (h *heapPager) ReleasePages(p unsafe.Pointer, n uintptr) error {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.held[uintptr(p)]; !ok {
		return fmt.Errorf("llalloc: release of unmapped range at %#x", uintptr(p))
	}
	delete(h.held, uintptr(p))
	return nil
}

var sysPager Pager = &heapPager{}
