package mvcc

import (
	"bytes"

	"github.com/pingcap/errors"
	"github.com/talent-plan/txnkv/kv/util/codec"
	"github.com/talent-plan/txnkv/kv/util/engine_util"
	"github.com/talent-plan/txnkv/proto/pkg/kvrpcpb"
)

const TsMax uint64 = ^uint64(0)

// Lock is the value stored in the lock CF under a user key while a transaction writing that key is in flight. Ttl is
// in milliseconds of the physical part of timestamps.
type Lock struct {
	Primary    []byte
	Ts         uint64
	Ttl        uint64
	Kind       WriteKind
	ShortValue []byte
}

type KlPair struct {
	Key  []byte
	Lock *Lock
}

// Info creates a LockInfo object from a Lock object for key.
func (lock *Lock) Info(key []byte) *kvrpcpb.LockInfo {
	info := kvrpcpb.LockInfo{}
	info.Key = key
	info.LockVersion = lock.Ts
	info.PrimaryLock = lock.Primary
	info.LockTtl = lock.Ttl
	info.LockType = lock.Kind.ToProto()
	return &info
}

func (lock *Lock) ToBytes() []byte {
	buf := make([]byte, 0, 1+len(lock.Primary)+22+len(lock.ShortValue)+2)
	buf = append(buf, byte(lock.Kind))
	buf = codec.EncodeCompactBytes(buf, lock.Primary)
	buf = codec.EncodeUvarint(buf, lock.Ts)
	buf = codec.EncodeUvarint(buf, lock.Ttl)
	if lock.ShortValue != nil {
		buf = append(buf, shortValuePrefix)
		buf = codec.EncodeCompactBytes(buf, lock.ShortValue)
	}
	return buf
}

// ParseLock attempts to parse a byte string into a Lock object.
func ParseLock(input []byte) (*Lock, error) {
	if len(input) < 4 {
		return nil, errors.Errorf("mvcc: error parsing lock, not enough input, found %d bytes", len(input))
	}
	lock := &Lock{Kind: WriteKind(input[0])}
	if !lock.Kind.valid() || lock.Kind == WriteKindRollback {
		return nil, errors.Errorf("mvcc: error parsing lock, bad kind %d", input[0])
	}
	left, primary, err := codec.DecodeCompactBytes(input[1:])
	if err != nil {
		return nil, err
	}
	lock.Primary = append([]byte{}, primary...)
	if left, lock.Ts, err = codec.DecodeUvarint(left); err != nil {
		return nil, err
	}
	if left, lock.Ttl, err = codec.DecodeUvarint(left); err != nil {
		return nil, err
	}
	if lock.ShortValue, err = parseShortValue(left); err != nil {
		return nil, err
	}
	return lock, nil
}

// IsLockedFor checks if lock locks key at txnStartTs. Locks of kind Lock never block readers.
func (lock *Lock) IsLockedFor(key []byte, txnStartTs uint64) bool {
	return lock != nil && lock.Ts <= txnStartTs && lock.Kind != WriteKindLock
}

// ScanLocks returns locks in [startKey, endKey) with a start timestamp of at most maxTs, ordered by key. The range is
// clamped to txn's region, an empty endKey is unbounded and limit 0 means no limit.
func ScanLocks(txn *RoTxn, startKey, endKey []byte, maxTs uint64, limit int) ([]KlPair, error) {
	return filterLocks(txn, startKey, endKey, limit, func(l *Lock) bool { return l.Ts <= maxTs })
}

// AllLocksForTxn returns all locks of the txn with start timestamp txn.StartTS inside txn's region.
func AllLocksForTxn(txn *RoTxn) ([]KlPair, error) {
	return filterLocks(txn, nil, nil, 0, func(l *Lock) bool { return l.Ts == txn.StartTS })
}

func filterLocks(txn *RoTxn, startKey, endKey []byte, limit int, keep func(*Lock) bool) ([]KlPair, error) {
	startKey, endKey = txn.clamp(startKey, endKey)
	var result []KlPair
	iter := txn.Reader.IterCF(engine_util.CfLock)
	defer iter.Close()
	for iter.Seek(startKey); iter.Valid(); iter.Next() {
		item := iter.Item()
		if len(endKey) > 0 && bytes.Compare(item.Key(), endKey) >= 0 {
			break
		}
		val, err := item.Value()
		if err != nil {
			return nil, err
		}
		lock, err := ParseLock(val)
		if err != nil {
			return nil, err
		}
		if keep(lock) {
			result = append(result, KlPair{Key: item.KeyCopy(nil), Lock: lock})
			if limit > 0 && len(result) >= limit {
				break
			}
		}
	}
	return result, nil
}
