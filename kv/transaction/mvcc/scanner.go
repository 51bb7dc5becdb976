package mvcc

import (
	"bytes"

	"github.com/talent-plan/txnkv/kv/util/codec"
	"github.com/talent-plan/txnkv/kv/util/engine_util"
	"github.com/talent-plan/txnkv/proto/pkg/kvrpcpb"
)

// Scanner is used for reading multiple sequential key/value pairs from the storage layer. It is aware of the implementation
// of the storage layer and returns results suitable for users. Keys are visited in the union of the lock and write
// CFs, so a key which is only locked is still reported.
// Invariant: either the scanner is finished and cannot be used, or it is ready to return a value immediately.
type Scanner struct {
	txn       *RoTxn
	writeIter engine_util.DBIterator
	lockIter  engine_util.DBIterator
	endKey    []byte
}

// NewScanner creates a new scanner ready to read from the snapshot in txn. The scan is clamped to txn's region.
func NewScanner(startKey []byte, txn *RoTxn) *Scanner {
	startKey, endKey := txn.clamp(startKey, nil)
	writeIter := txn.Reader.IterCF(engine_util.CfWrite)
	writeIter.Seek(EncodeKey(startKey, TsMax))
	lockIter := txn.Reader.IterCF(engine_util.CfLock)
	lockIter.Seek(startKey)
	return &Scanner{
		txn:       txn,
		writeIter: writeIter,
		lockIter:  lockIter,
		endKey:    endKey,
	}
}

func (scan *Scanner) Close() {
	scan.writeIter.Close()
	scan.lockIter.Close()
}

// Next returns the next key/value pair from the scanner. If the scanner is exhausted, then it will return `nil, nil, nil`.
// A key which cannot be read returns the key with a *KeyError, the scanner stays usable after that.
func (scan *Scanner) Next() ([]byte, []byte, error) {
	for {
		key, err := scan.nextKey()
		if key == nil || err != nil {
			return nil, nil, err
		}

		var lock *Lock
		if scan.lockIter.Valid() && bytes.Equal(scan.lockIter.Item().Key(), key) {
			value, err := scan.lockIter.Item().Value()
			if err != nil {
				return nil, nil, err
			}
			if lock, err = ParseLock(value); err != nil {
				return nil, nil, err
			}
			scan.lockIter.Next()
		}
		if err := scan.skipWrites(key); err != nil {
			return nil, nil, err
		}

		value, err := scan.txn.readWithLock(key, lock)
		if err != nil {
			if _, ok := err.(*KeyError); ok {
				return key, nil, err
			}
			return nil, nil, err
		}
		if value == nil {
			// Deleted or not yet visible, go to next key.
			continue
		}
		return key, value, nil
	}
}

// nextKey returns the smallest user key under either iterator, or nil once both are past the end.
func (scan *Scanner) nextKey() ([]byte, error) {
	var key []byte
	if scan.writeIter.Valid() {
		userKey, _, err := codec.DecodeKey(scan.writeIter.Item().Key())
		if err != nil {
			return nil, err
		}
		key = userKey
	}
	if scan.lockIter.Valid() {
		lockKey := scan.lockIter.Item().Key()
		if key == nil || bytes.Compare(lockKey, key) < 0 {
			key = scan.lockIter.Item().KeyCopy(nil)
		}
	}
	if key == nil || (len(scan.endKey) > 0 && bytes.Compare(key, scan.endKey) >= 0) {
		return nil, nil
	}
	return key, nil
}

// skipWrites moves the write iterator past every version of key.
func (scan *Scanner) skipWrites(key []byte) error {
	for scan.writeIter.Valid() {
		userKey, _, err := codec.DecodeKey(scan.writeIter.Item().Key())
		if err != nil {
			return err
		}
		if !bytes.Equal(userKey, key) {
			return nil
		}
		scan.writeIter.Next()
	}
	return nil
}

// KeyError is a wrapper type so we can implement the `error` interface.
type KeyError struct {
	kvrpcpb.KeyError
}

func (ke *KeyError) Error() string {
	return ke.String()
}
