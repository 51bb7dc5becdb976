package message

import (
	"time"

	"go.uber.org/atomic"
)

const (
	callbackPending int32 = iota
	callbackRunning
	callbackCancelled
)

// Callback carries the outcome of a message back to the goroutine waiting for it. A message is
// either run by the region loop or cancelled by its sender, never both.
type Callback struct {
	Err   error
	state *atomic.Int32
	done  chan struct{}
}

// Start marks the message as running. It returns false when the sender already cancelled it,
// the loop must then drop the message without applying it.
func (cb *Callback) Start() bool {
	if cb == nil {
		return true
	}
	return cb.state.CAS(callbackPending, callbackRunning)
}

// Cancel withdraws a message the loop has not started. It returns false when the loop is
// already running it, the sender must then wait for the real result.
func (cb *Callback) Cancel() bool {
	return cb.state.CAS(callbackPending, callbackCancelled)
}

func (cb *Callback) Done(err error) {
	if cb == nil {
		return
	}
	cb.Err = err
	cb.done <- struct{}{}
}

func (cb *Callback) WaitResp() error {
	<-cb.done
	return cb.Err
}

// WaitRespWithTimeout returns done == false when the timeout elapsed before Done was called.
func (cb *Callback) WaitRespWithTimeout(timeout time.Duration) (done bool, err error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-cb.done:
		return true, cb.Err
	case <-timer.C:
		return false, nil
	}
}

func NewCallback() *Callback {
	return &Callback{state: atomic.NewInt32(callbackPending), done: make(chan struct{}, 1)}
}
