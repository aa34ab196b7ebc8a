package llalloc

import "runtime"

// arenaLock is the scoped lock for an arena. For signal-safe arenas it
// pins the goroutine to its OS thread and blocks every signal before
// taking the mutex, so a handler arriving mid-critical-section cannot
// reenter the same lock on the same thread. leave must be called on every
// exit path; it restores the saved mask only after the mutex is released.
type arenaLock struct {
	arena        *Arena
	mask         sigset
	maskValid    bool
	threadLocked bool
}

func (s *arenaLock) lock(a *Arena) {
	s.arena = a
	if a == &unhookedSigSafeArena || a.flagSet(AsyncSignalSafe) {
		// The signal mask is per OS thread; stay on this one until the
		// mask is restored.
		runtime.LockOSThread()
		s.threadLocked = true
		s.maskValid = blockAllSignals(&s.mask)
	}
	a.mu.Lock()
}

func (s *arenaLock) leave() {
	s.arena.mu.Unlock()
	if s.maskValid {
		restoreSignals(&s.mask)
	}
	if s.threadLocked {
		runtime.UnlockOSThread()
	}
}
