package commands

import (
	"bytes"

	"github.com/pingcap/errors"
	"github.com/talent-plan/txnkv/kv/transaction/mvcc"
	"github.com/talent-plan/txnkv/proto/pkg/kvrpcpb"
)

// ResolveLock commits (CommitVersion > 0) or rolls back every lock of one transaction in the region.
type ResolveLock struct {
	CommandBase
	request  *kvrpcpb.ResolveLockRequest
	keyLocks []mvcc.KlPair
}

func NewResolveLock(request *kvrpcpb.ResolveLockRequest) ResolveLock {
	return ResolveLock{
		CommandBase: CommandBase{
			context: request.Context,
			startTs: request.StartVersion,
		},
		request: request,
	}
}

func (rl *ResolveLock) Keys() [][]byte {
	return nil
}

func (rl *ResolveLock) EmptyResponse() interface{} {
	return new(kvrpcpb.ResolveLockResponse)
}

func (rl *ResolveLock) PrepareWrites(txn *mvcc.MvccTxn) (interface{}, error) {
	commitTs := rl.request.CommitVersion
	response := new(kvrpcpb.ResolveLockResponse)
	if commitTs != 0 && commitTs <= txn.StartTS {
		response.Error = abortError("invalid transaction timestamp: %d (commit TS) <= %d (start TS)", commitTs, txn.StartTS)
		return response, nil
	}

	// All locks of a transaction point at the same primary.
	var primary []byte
	for _, kl := range rl.keyLocks {
		if primary == nil {
			primary = kl.Lock.Primary
		} else if !bytes.Equal(primary, kl.Lock.Primary) {
			return nil, errors.Errorf("locks of txn %d disagree on the primary: %q and %q", txn.StartTS, primary, kl.Lock.Primary)
		}
	}

	for _, kl := range rl.keyLocks {
		var keyError *kvrpcpb.KeyError
		var err error
		if commitTs == 0 {
			keyError, _, err = rollbackKey(kl.Key, txn)
		} else {
			keyError, err = commitKey(kl.Key, commitTs, txn)
		}
		if err != nil {
			return nil, err
		}
		if keyError != nil {
			response.Error = keyError
			txn.DiscardWrites()
			return response, nil
		}
	}

	return response, nil
}

func (rl *ResolveLock) WillWrite() [][]byte {
	return nil
}

func (rl *ResolveLock) Read(txn *mvcc.RoTxn) (interface{}, [][]byte, error) {
	keyLocks, err := mvcc.AllLocksForTxn(txn)
	if err != nil {
		return nil, nil, err
	}
	rl.keyLocks = keyLocks
	keys := [][]byte{}
	for _, kl := range keyLocks {
		keys = append(keys, kl.Key)
	}
	return nil, keys, nil
}
