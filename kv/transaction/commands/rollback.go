package commands

import (
	"github.com/talent-plan/txnkv/kv/transaction/mvcc"
	"github.com/talent-plan/txnkv/proto/pkg/kvrpcpb"
)

type Rollback struct {
	CommandBase
	request *kvrpcpb.BatchRollbackRequest
}

func NewRollback(request *kvrpcpb.BatchRollbackRequest) Rollback {
	return Rollback{
		CommandBase: CommandBase{
			context: request.Context,
			startTs: request.StartVersion,
		},
		request: request,
	}
}

func (r *Rollback) Keys() [][]byte {
	return r.request.Keys
}

func (r *Rollback) EmptyResponse() interface{} {
	return new(kvrpcpb.BatchRollbackResponse)
}

func (r *Rollback) PrepareWrites(txn *mvcc.MvccTxn) (interface{}, error) {
	response := new(kvrpcpb.BatchRollbackResponse)

	for _, k := range r.request.Keys {
		keyError, _, err := rollbackKey(k, txn)
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

// rollbackKey rolls back txn on key. When the transaction already committed on key, the commit timestamp is returned
// with the key error.
func rollbackKey(key []byte, txn *mvcc.MvccTxn) (*kvrpcpb.KeyError, uint64, error) {
	lock, err := txn.GetLock(key)
	if err != nil {
		return nil, 0, err
	}

	if lock == nil || lock.Ts != txn.StartTS {
		// There is no lock of ours, check the write status.
		existingWrite, ts, err := txn.CurrentWrite(key)
		if err != nil {
			return nil, 0, err
		}
		if existingWrite == nil {
			// There is no write either, presumably the prewrite was lost. We insert a rollback write anyway so that
			// a late prewrite fails. A lock of another transaction is left alone.
			write := mvcc.Write{StartTS: txn.StartTS, Kind: mvcc.WriteKindRollback}
			txn.PutWrite(key, txn.StartTS, &write)
			return nil, 0, nil
		}
		if existingWrite.Kind == mvcc.WriteKindRollback {
			// The key has already been rolled back, so nothing to do.
			return nil, 0, nil
		}
		// The key has already been committed. This should not happen since the client should never send both
		// commit and rollback requests.
		return alreadyCommittedError(key, txn.StartTS, ts), ts, nil
	}

	if lock.Kind == mvcc.WriteKindPut && lock.ShortValue == nil {
		txn.DeleteValue(key)
	}

	write := mvcc.Write{StartTS: txn.StartTS, Kind: mvcc.WriteKindRollback}
	txn.PutWrite(key, txn.StartTS, &write)
	txn.DeleteLock(key)

	return nil, 0, nil
}

func (r *Rollback) WillWrite() [][]byte {
	return r.request.Keys
}
