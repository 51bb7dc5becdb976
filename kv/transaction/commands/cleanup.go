package commands

import (
	"github.com/talent-plan/txnkv/kv/transaction/mvcc"
	"github.com/talent-plan/txnkv/proto/pkg/kvrpcpb"
)

// physicalShiftBits is the number of logical bits at the bottom of a timestamp.
const physicalShiftBits = 18

// Cleanup rolls back a single key of a transaction which may have died. A lock which is still alive is left alone.
type Cleanup struct {
	CommandBase
	request *kvrpcpb.CleanupRequest
}

func NewCleanup(request *kvrpcpb.CleanupRequest) Cleanup {
	return Cleanup{
		CommandBase: CommandBase{
			context: request.Context,
			startTs: request.StartVersion,
		},
		request: request,
	}
}

func (c *Cleanup) Keys() [][]byte {
	return [][]byte{c.request.Key}
}

func (c *Cleanup) EmptyResponse() interface{} {
	return new(kvrpcpb.CleanupResponse)
}

func (c *Cleanup) PrepareWrites(txn *mvcc.MvccTxn) (interface{}, error) {
	key := c.request.Key
	response := new(kvrpcpb.CleanupResponse)

	lock, err := txn.GetLock(key)
	if err != nil {
		return nil, err
	}
	if lock != nil && lock.Ts == txn.StartTS && !expired(lock, c.request.CurrentTs) {
		response.Error = notExpiredError(key, lock, c.request.CurrentTs)
		return response, nil
	}

	keyError, commitTs, err := rollbackKey(key, txn)
	if err != nil {
		return nil, err
	}
	response.Error = keyError
	response.CommitVersion = commitTs
	return response, nil
}

// expired reports whether lock's ttl passed at currentTs. A zero currentTs never expires a lock.
func expired(lock *mvcc.Lock, currentTs uint64) bool {
	if currentTs == 0 {
		return false
	}
	lockPhysical, current := physical(lock.Ts), physical(currentTs)
	if current < lockPhysical {
		return false
	}
	// current - lockPhysical cannot wrap, lockPhysical + ttl could.
	return lock.Ttl <= current-lockPhysical
}

func physical(ts uint64) uint64 {
	return ts >> physicalShiftBits
}

func (c *Cleanup) WillWrite() [][]byte {
	return [][]byte{c.request.Key}
}
