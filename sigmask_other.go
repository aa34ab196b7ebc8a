//go:build !linux

package llalloc

// Platforms without a usable pthread_sigmask fall back to plain mutual
// exclusion: AsyncSignalSafe arenas still lock correctly, they just lose
// the guarantee against reentry from a handler on the same thread.

type sigset struct{}

func blockAllSignals(*sigset) bool { return false }

func restoreSignals(*sigset) {}
