//go:build linux

package llalloc

import "golang.org/x/sys/unix"

type sigset = unix.Sigset_t

// blockAllSignals blocks every signal on the current thread, saving the
// prior mask in old. Reports whether the mask was actually changed.
func blockAllSignals(old *sigset) bool {
	var all unix.Sigset_t
	for i := range all.Val {
		all.Val[i] = ^uint64(0)
	}
	return unix.PthreadSigmask(unix.SIG_SETMASK, &all, old) == nil
}

func restoreSignals(old *sigset) {
	unix.PthreadSigmask(unix.SIG_SETMASK, old, nil)
}
