package llalloc

import "unsafe"

// The free list is kept in address order by a trivial intrusive skiplist,
// giving logarithmic expected time per insert and delete.

// maxLevel bounds the number of forward pointers any node carries.
const maxLevel = 30

// intLog2 is an integer approximation of log2(size/base).
// Requires size >= base.
func intLog2(size, base uintptr) int {
	result := 0
	for i := size; i > base; i >>= 1 { // i == floor(size/2**result)
		result++
	}
	return result
}

// random draws n with p(n) = 2**-n for n >= 1, advancing the LCG state.
func random(state *uint32) int {
	r := *state
	result := 1
	for {
		r = r*1103515245 + 12345
		if (r>>30)&1 != 0 {
			break
		}
		result++
	}
	*state = r
	return result
}

// skiplistLevels returns the number of levels for a node of the given
// size, where base is the minimum block size: log2(size/base) plus 1 when
// rng is nil (so a later recomputation gives the same answer) or a
// geometric random draw when inserting a fresh node. Bigger blocks tend to
// get more levels, so first-fit searches for large requests touch fewer
// nodes; the random term keeps the structure balanced regardless of size.
// The result is clipped to what physically fits in the node and to
// maxLevel-1.
func skiplistLevels(size, base uintptr, rng *uint32) int {
	// maxFit is the most levels a node of this size can store, no matter
	// what the random draw says.
	maxFit := (size - unsafe.Offsetof(allocList{}.next)) / unsafe.Sizeof((*allocList)(nil))
	level := intLog2(size, base)
	if rng != nil {
		level += random(rng)
	} else {
		level++
	}
	if uintptr(level) > maxFit {
		level = int(maxFit)
	}
	if level > maxLevel-1 {
		level = maxLevel - 1
	}
	rawCheck(level >= 1, "block not big enough for even one level")
	return level
}

// skiplistSearch returns the first element of head at or after e. For
// 0 <= i < head.levels it sets prev[i] to the last element at level i
// whose address is below e's, or head if no such element exists.
func skiplistSearch(head, e *allocList, prev *[maxLevel]*allocList) *allocList {
	p := head
	for level := head.levels - 1; level >= 0; level-- {
		for n := p.next[level]; n != nil && n.addr() < e.addr(); n = p.next[level] {
			p = n
		}
		prev[level] = p
	}
	if head.levels == 0 {
		return nil
	}
	return prev[0].next[0]
}

// skiplistInsert links e into head at each of its levels, filling prev as
// skiplistSearch does. e.levels must have been set with skiplistLevels.
func skiplistInsert(head, e *allocList, prev *[maxLevel]*allocList) {
	skiplistSearch(head, e, prev)
	for ; head.levels < e.levels; head.levels++ { // extend prev pointers
		prev[head.levels] = head // to all of e's levels
	}
	for i := 0; i != e.levels; i++ {
		e.next[i] = prev[i].next[i]
		prev[i].next[i] = e
	}
}

// skiplistDelete unlinks e from head at every level it participates in.
// e not being found means the free list is internally inconsistent, which
// is unrecoverable.
func skiplistDelete(head, e *allocList, prev *[maxLevel]*allocList) {
	found := skiplistSearch(head, e, prev)
	rawCheck(found == e, "element not in freelist")
	for i := 0; i != e.levels && prev[i].next[i] == e; i++ {
		prev[i].next[i] = e.next[i]
	}
	for head.levels > 0 && head.next[head.levels-1] == nil {
		head.levels-- // drop empty top levels
	}
}
