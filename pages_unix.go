//go:build unix

package llalloc

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// mmapPager acquires anonymous read-write pages straight from the kernel,
// so block storage never touches the Go heap.
type mmapPager struct{}

func (mmapPager) RequestPages(n uintptr) (unsafe.Pointer, error) {
	p, err := unix.MmapPtr(-1, 0, nil, n,
		unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("llalloc: mmap %d bytes: %w", n, err)
	}
	return p, nil
}

func (mmapPager) ReleasePages(p unsafe.Pointer, n uintptr) error {
	if err := unix.MunmapPtr(p, n); err != nil {
		return fmt.Errorf("llalloc: munmap %d bytes at %#x: %w",
			n, uintptr(p), err)
	}
	return nil
}

var sysPager Pager = mmapPager{}
