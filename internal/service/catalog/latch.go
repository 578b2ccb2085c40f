// internal/service/catalog/latch.go
package catalog

import "sync/atomic"

// Latch is a one-way switch shared by every request. Once tripped it stays
// tripped until Reset is called.
type Latch struct {
	tripped atomic.Bool
}

// Trip reports whether this call was the one that flipped the latch.
func (l *Latch) Trip() bool {
	return l.tripped.CompareAndSwap(false, true)
}

func (l *Latch) Tripped() bool {
	return l.tripped.Load()
}

func (l *Latch) Reset() {
	l.tripped.Store(false)
}
