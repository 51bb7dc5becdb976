// Package latches serializes commands which write overlapping keys on storages without a per-region apply loop.
package latches

import (
	"sync"

	"github.com/talent-plan/txnkv/kv/transaction/mvcc"
)

// Latches hold one latch per user key. A command takes the latches of every key it might write before reading,
// and keeps them until its writes reach the storage. The keys of one command are latched together or not at all.
type Latches struct {
	mu sync.Mutex
	// held maps a latched key to a channel which is closed when its holder releases it. All keys latched by one
	// command share the channel.
	held map[string]chan struct{}
	// Validation, if set, is called with the built transaction while the latches are held. Tests only.
	Validation func(txn *mvcc.MvccTxn, keys [][]byte)
}

func NewLatches() *Latches {
	return &Latches{held: make(map[string]chan struct{})}
}

// tryAcquire latches all keys and returns nil, or returns the release channel of a holder of one of them.
func (l *Latches) tryAcquire(keys [][]byte) <-chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, key := range keys {
		if ch, ok := l.held[string(key)]; ok {
			return ch
		}
	}
	ch := make(chan struct{})
	for _, key := range keys {
		l.held[string(key)] = ch
	}
	return nil
}

// Acquire blocks until all keys are latched by the caller.
func (l *Latches) Acquire(keys [][]byte) {
	for {
		ch := l.tryAcquire(keys)
		if ch == nil {
			return
		}
		<-ch
	}
}

// Release frees keys latched by one Acquire call and wakes the commands waiting on them. Keys which are not
// latched are ignored.
func (l *Latches) Release(keys [][]byte) {
	l.mu.Lock()
	defer l.mu.Unlock()
	var ch chan struct{}
	for _, key := range keys {
		if c, ok := l.held[string(key)]; ok {
			ch = c
			delete(l.held, string(key))
		}
	}
	if ch != nil {
		close(ch)
	}
}

func (l *Latches) Validate(txn *mvcc.MvccTxn, keys [][]byte) {
	if l.Validation != nil {
		l.Validation(txn, keys)
	}
}
