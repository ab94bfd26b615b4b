package apu

// requestFlag is a one-shot latch: something requests an action be taken
// the next time the owner polls, and polling clears it. Used throughout
// this package for deferred triggers and settings-changed notifications
// that must take effect on the next tick rather than synchronously on the
// register write that caused them.
type requestFlag bool

func (f *requestFlag) set() { *f = true }

func (f *requestFlag) getAndClear() bool {
	v := bool(*f)
	*f = false
	return v
}
