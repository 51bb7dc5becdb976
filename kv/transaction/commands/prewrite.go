package commands

import (
	"github.com/talent-plan/txnkv/kv/transaction/mvcc"
	"github.com/talent-plan/txnkv/proto/pkg/kvrpcpb"
)

// Prewrite represents the prewrite stage of a transaction. A prewrite contains all writes (but not reads) in a transaction,
// if the whole transaction can be written to underlying storage atomically and without conflicting with other
// transactions (complete or in-progress) then success is returned to the client. If all a client's prewrites succeed,
// then it will send a commit message. I.e., prewrite is the first phase in a two phase commit.
//
// A prewrite either locks every key of the request or none of them.
type Prewrite struct {
	CommandBase
	request *kvrpcpb.PrewriteRequest
}

func NewPrewrite(request *kvrpcpb.PrewriteRequest) Prewrite {
	return Prewrite{
		CommandBase: CommandBase{
			context: request.Context,
			startTs: request.StartVersion,
		},
		request: request,
	}
}

func (p *Prewrite) Keys() [][]byte {
	return p.WillWrite()
}

func (p *Prewrite) EmptyResponse() interface{} {
	return new(kvrpcpb.PrewriteResponse)
}

func (p *Prewrite) PrepareWrites(txn *mvcc.MvccTxn) (interface{}, error) {
	response := new(kvrpcpb.PrewriteResponse)

	// Prewrite all mutations in the request.
	for _, m := range p.request.Mutations {
		keyError, err := p.prewriteMutation(txn, m)
		if err != nil {
			return nil, err
		}
		if keyError != nil {
			response.Errors = append(response.Errors, keyError)
		}
	}
	if len(response.Errors) > 0 {
		txn.DiscardWrites()
	}

	return response, nil
}

// prewriteMutation prewrites mut to txn. It returns (nil, nil) on success, (err, nil) if the key in mut is already
// locked or there is any other key error, and (nil, err) if an internal error occurs.
func (p *Prewrite) prewriteMutation(txn *mvcc.MvccTxn, mut *kvrpcpb.Mutation) (*kvrpcpb.KeyError, error) {
	key := mut.Key
	kind, ok := mvcc.WriteKindFromProto(mut.Op)
	if !ok {
		return abortError("invalid mutation %v on key %q", mut.Op, key), nil
	}

	// Check if key is locked.
	if existingLock, err := txn.GetLock(key); err != nil {
		return nil, err
	} else if existingLock != nil {
		if existingLock.Ts != txn.StartTS {
			// Key is locked by someone else.
			return lockedError(key, existingLock), nil
		}
		// Key is locked by us, this is a retry.
		return nil, nil
	}

	// The transaction may already have finished on this key.
	if write, commitTs, err := txn.CurrentWrite(key); err != nil {
		return nil, err
	} else if write != nil {
		if write.Kind == mvcc.WriteKindRollback {
			return alreadyRolledBackError(key, txn.StartTS), nil
		}
		return alreadyCommittedError(key, txn.StartTS, commitTs), nil
	}

	// Check for write conflicts.
	if write, writeCommitTS, err := txn.MostRecentWrite(key); err != nil {
		return nil, err
	} else if write != nil && writeCommitTS >= txn.StartTS {
		return writeConflictError(key, p.request.PrimaryLock, txn.StartTS, write.StartTS, writeCommitTS), nil
	}

	// Write a lock and value.
	lock := mvcc.Lock{
		Primary: p.request.PrimaryLock,
		Ts:      txn.StartTS,
		Kind:    kind,
		Ttl:     p.request.LockTtl,
	}
	if kind == mvcc.WriteKindPut {
		if len(mut.Value) <= mvcc.ShortValueMaxLen {
			lock.ShortValue = append([]byte{}, mut.Value...)
		} else {
			txn.PutValue(key, mut.Value)
		}
	}
	txn.PutLock(key, &lock)

	return nil, nil
}

func (p *Prewrite) WillWrite() [][]byte {
	result := [][]byte{}
	for _, m := range p.request.Mutations {
		result = append(result, m.Key)
	}
	return result
}
