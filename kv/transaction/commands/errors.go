package commands

import (
	"fmt"

	"github.com/talent-plan/txnkv/kv/transaction/mvcc"
	"github.com/talent-plan/txnkv/proto/pkg/kvrpcpb"
)

// keyError splits a read error into a key error for the response and an internal error.
func keyError(err error) (*kvrpcpb.KeyError, error) {
	if e, ok := err.(*mvcc.KeyError); ok {
		return &e.KeyError, nil
	}
	return nil, err
}

func abortError(format string, args ...interface{}) *kvrpcpb.KeyError {
	return &kvrpcpb.KeyError{Abort: fmt.Sprintf(format, args...)}
}

func lockedError(key []byte, lock *mvcc.Lock) *kvrpcpb.KeyError {
	return &kvrpcpb.KeyError{Locked: lock.Info(key)}
}

func writeConflictError(key, primary []byte, startTs, conflictTs, conflictCommitTs uint64) *kvrpcpb.KeyError {
	return &kvrpcpb.KeyError{Conflict: &kvrpcpb.WriteConflict{
		StartTs:          startTs,
		ConflictTs:       conflictTs,
		Key:              key,
		Primary:          primary,
		ConflictCommitTs: conflictCommitTs,
	}}
}

func alreadyCommittedError(key []byte, startTs, commitTs uint64) *kvrpcpb.KeyError {
	return &kvrpcpb.KeyError{AlreadyCommitted: &kvrpcpb.AlreadyCommitted{Key: key, StartTs: startTs, CommitTs: commitTs}}
}

func alreadyRolledBackError(key []byte, startTs uint64) *kvrpcpb.KeyError {
	return &kvrpcpb.KeyError{AlreadyRolledBack: &kvrpcpb.AlreadyRolledBack{Key: key, StartTs: startTs}}
}

func lockNotFoundError(key []byte, startTs uint64) *kvrpcpb.KeyError {
	return &kvrpcpb.KeyError{LockNotFound: &kvrpcpb.LockNotFound{Key: key, StartTs: startTs}}
}

func notExpiredError(key []byte, lock *mvcc.Lock, currentTs uint64) *kvrpcpb.KeyError {
	return &kvrpcpb.KeyError{NotExpired: &kvrpcpb.NotExpired{
		Key:         key,
		LockVersion: lock.Ts,
		LockTtl:     lock.Ttl,
		CurrentTs:   currentTs,
	}}
}
