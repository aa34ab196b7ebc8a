package llalloc

// ArenaStats is a point-in-time snapshot of an arena's bookkeeping.
type ArenaStats struct {
	Allocations int     // live allocated blocks
	BytesMapped uintptr // total bytes obtained from the OS
	FreeBytes   uintptr // bytes sitting on the free list
	FreeBlocks  int     // entries on the free list
	PageSize    uintptr // OS page size the arena rounds growth to
	MinBlock    uintptr // smallest block the arena will carve
	Utilization float64 // 1 - FreeBytes/BytesMapped; 0 for an unused arena
}

// Stats returns a consistent snapshot of a's counters, taken under the
// arena lock.
func (a *Arena) Stats() ArenaStats {
	var section arenaLock
	section.lock(a)
	arenaInit(a)
	st := ArenaStats{
		Allocations: int(a.allocCount),
		BytesMapped: a.mapped,
		PageSize:    a.pagesize,
		MinBlock:    a.minSize,
	}
	for f := a.freelist.next[0]; f != nil; f = f.next[0] {
		st.FreeBytes += f.header.size
		st.FreeBlocks++
	}
	if st.BytesMapped != 0 {
		st.Utilization = 1 - float64(st.FreeBytes)/float64(st.BytesMapped)
	}
	section.leave()
	return st
}
