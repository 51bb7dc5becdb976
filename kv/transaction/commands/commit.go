package commands

import (
	"github.com/talent-plan/txnkv/kv/transaction/mvcc"
	"github.com/talent-plan/txnkv/proto/pkg/kvrpcpb"
)

type Commit struct {
	CommandBase
	request *kvrpcpb.CommitRequest
}

func NewCommit(request *kvrpcpb.CommitRequest) Commit {
	return Commit{
		CommandBase: CommandBase{
			context: request.Context,
			startTs: request.StartVersion,
		},
		request: request,
	}
}

func (c *Commit) Keys() [][]byte {
	return c.request.Keys
}

func (c *Commit) EmptyResponse() interface{} {
	return new(kvrpcpb.CommitResponse)
}

func (c *Commit) PrepareWrites(txn *mvcc.MvccTxn) (interface{}, error) {
	commitTs := c.request.CommitVersion
	response := new(kvrpcpb.CommitResponse)
	if commitTs <= txn.StartTS {
		response.Error = abortError("invalid transaction timestamp: %d (commit TS) <= %d (start TS)", commitTs, txn.StartTS)
		return response, nil
	}

	// Commit each key.
	for _, k := range c.request.Keys {
		keyError, err := commitKey(k, commitTs, txn)
		if err != nil {
			return nil, err
		}
		if keyError != nil {
			if response.Error == nil {
				response.Error = keyError
			}
			response.Errors = append(response.Errors, keyError)
		}
	}

	return response, nil
}

func commitKey(key []byte, commitTs uint64, txn *mvcc.MvccTxn) (*kvrpcpb.KeyError, error) {
	lock, err := txn.GetLock(key)
	if err != nil {
		return nil, err
	}

	if lock == nil || lock.Ts != txn.StartTS {
		// Not locked by us, check what happened to the transaction on this key.
		write, _, err := txn.CurrentWrite(key)
		if err != nil {
			return nil, err
		}
		if write == nil {
			return lockNotFoundError(key, txn.StartTS), nil
		}
		if write.Kind == mvcc.WriteKindRollback {
			return alreadyRolledBackError(key, txn.StartTS), nil
		}
		// Already committed.
		return nil, nil
	}

	// Commit a Write object to the DB
	write := mvcc.Write{StartTS: txn.StartTS, Kind: lock.Kind, ShortValue: lock.ShortValue}
	txn.PutWrite(key, commitTs, &write)
	// Unlock the key
	txn.DeleteLock(key)

	return nil, nil
}

func (c *Commit) WillWrite() [][]byte {
	return c.request.Keys
}
