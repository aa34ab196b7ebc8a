package llalloc

import (
	"math/rand"
	"testing"
)

func BenchmarkAllocFree(b *testing.B) {
	a := NewArena(0, DefaultArena())
	defer DeleteArena(a)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p := AllocWithArena(128, a)
		Free(p)
	}
}

func BenchmarkAllocFreeHooked(b *testing.B) {
	SetHooks(&Hooks{})
	defer SetHooks(nil)
	a := NewArena(CallHooks, DefaultArena())
	defer DeleteArena(a)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		p := AllocWithArena(128, a)
		Free(p)
	}
}

// BenchmarkFreelistChurn keeps a few hundred live blocks of mixed sizes
// so every operation walks a realistically populated skiplist.
func BenchmarkFreelistChurn(b *testing.B) {
	a := NewArena(0, DefaultArena())
	rng := rand.New(rand.NewSource(1))
	live := make([][]byte, 0, 512)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if len(live) < 256 || rng.Intn(2) == 0 {
			live = append(live, AllocBytesWithArena(1+rng.Intn(0x3fff), a))
		} else {
			k := rng.Intn(len(live))
			FreeBytes(live[k])
			live[k] = live[len(live)-1]
			live = live[:len(live)-1]
		}
	}
	b.StopTimer()
	for _, p := range live {
		FreeBytes(p)
	}
	DeleteArena(a)
}
