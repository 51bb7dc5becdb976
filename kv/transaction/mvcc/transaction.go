package mvcc

import (
	"bytes"

	"github.com/talent-plan/txnkv/kv/regionstore/util"
	"github.com/talent-plan/txnkv/kv/storage"
	"github.com/talent-plan/txnkv/kv/util/codec"
	"github.com/talent-plan/txnkv/kv/util/engine_util"
	"github.com/talent-plan/txnkv/proto/pkg/metapb"
)

// MvccTxn represents an mvcc transaction. It permits reading from a snapshot and stores writes in a buffer for atomic
// writing.
type MvccTxn struct {
	RoTxn
	writes []storage.Modify
}

// A 'transaction' which will only read from the DB.
type RoTxn struct {
	Reader  storage.StorageReader
	StartTS uint64
	// Region bounds the keys the txn may look at, nil means unbounded.
	Region *metapb.Region
}

func NewTxn(reader storage.StorageReader, startTs uint64) MvccTxn {
	return MvccTxn{
		RoTxn: RoTxn{Reader: reader, StartTS: startTs},
	}
}

func NewRoTxn(reader storage.StorageReader, startTs uint64, region *metapb.Region) *RoTxn {
	return &RoTxn{Reader: reader, StartTS: startTs, Region: region}
}

func (txn *MvccTxn) Writes() []storage.Modify {
	return txn.writes
}

// DiscardWrites drops every write buffered so far.
func (txn *MvccTxn) DiscardWrites() {
	txn.writes = nil
}

func (txn *RoTxn) bounds() ([]byte, []byte) {
	if txn.Region == nil {
		return nil, nil
	}
	return txn.Region.StartKey, txn.Region.EndKey
}

// clamp narrows [startKey, endKey) to the region. An empty endKey is unbounded.
func (txn *RoTxn) clamp(startKey, endKey []byte) ([]byte, []byte) {
	regionStart, regionEnd := txn.bounds()
	if bytes.Compare(startKey, regionStart) < 0 {
		startKey = regionStart
	}
	if len(regionEnd) > 0 && (len(endKey) == 0 || bytes.Compare(regionEnd, endKey) < 0) {
		endKey = regionEnd
	}
	return startKey, endKey
}

func (txn *RoTxn) inRegion(key []byte) bool {
	return txn.Region == nil || util.CheckKeyInRegion(key, txn.Region) == nil
}

// MostRecentWrite finds the most recent write with the given key. It returns a Write from the DB and that
// write's commit timestamp, or an error.
func (txn *RoTxn) MostRecentWrite(key []byte) (*Write, uint64, error) {
	return txn.mostRecentWriteBefore(key, TsMax)
}

// mostRecentWriteBefore finds the write with the given key and the most recent commit timestamp before or equal to ts.
// Postcondition: the returned ts is <= the ts arg.
func (txn *RoTxn) mostRecentWriteBefore(key []byte, ts uint64) (*Write, uint64, error) {
	iter := txn.Reader.IterCF(engine_util.CfWrite)
	defer iter.Close()
	iter.Seek(EncodeKey(key, ts))
	if !iter.Valid() {
		return nil, 0, nil
	}
	item := iter.Item()
	userKey, commitTs, err := codec.DecodeKey(item.Key())
	if err != nil {
		return nil, 0, err
	}
	if !bytes.Equal(userKey, key) {
		return nil, 0, nil
	}
	value, err := item.Value()
	if err != nil {
		return nil, 0, err
	}
	write, err := ParseWrite(value)
	if err != nil {
		return nil, 0, err
	}
	return write, commitTs, nil
}

// CurrentWrite searches for a write with this transaction's start timestamp. It returns a Write from the DB and that
// write's commit timestamp, or an error.
func (txn *RoTxn) CurrentWrite(key []byte) (*Write, uint64, error) {
	return txn.findWrite(key, txn.StartTS)
}

// findWrite looks for the write of the transaction started at startTs. Writes are never committed before their
// start, so the search stops at startTs.
func (txn *RoTxn) findWrite(key []byte, startTs uint64) (*Write, uint64, error) {
	seekTs := TsMax
	for {
		write, commitTs, err := txn.mostRecentWriteBefore(key, seekTs)
		if err != nil {
			return nil, 0, err
		}
		if write == nil {
			return nil, 0, nil
		}
		if write.StartTS == startTs {
			return write, commitTs, nil
		}
		if commitTs <= startTs {
			return nil, 0, nil
		}
		seekTs = commitTs - 1
	}
}

// GetValue finds the value for key, valid at the start timestamp of this transaction.
// I.e., the most recent value committed before the start of this transaction. Locks are not considered, see Get.
func (txn *RoTxn) GetValue(key []byte) ([]byte, error) {
	return txn.valueAt(key, txn.StartTS)
}

func (txn *RoTxn) valueAt(key []byte, ts uint64) ([]byte, error) {
	iter := txn.Reader.IterCF(engine_util.CfWrite)
	defer iter.Close()
	for iter.Seek(EncodeKey(key, ts)); iter.Valid(); iter.Next() {
		item := iter.Item()
		userKey, _, err := codec.DecodeKey(item.Key())
		if err != nil {
			return nil, err
		}
		// If the user key part of the combined key has changed, then we've got to the next key without finding a put write.
		if !bytes.Equal(userKey, key) {
			return nil, nil
		}
		value, err := item.Value()
		if err != nil {
			return nil, err
		}
		write, err := ParseWrite(value)
		if err != nil {
			return nil, err
		}
		switch write.Kind {
		case WriteKindPut:
			if write.ShortValue != nil {
				return write.ShortValue, nil
			}
			return txn.getValue(key, write.StartTS)
		case WriteKindDelete:
			return nil, nil
		}
	}

	// Iterated to the end of the DB
	return nil, nil
}

// Get reads key at the start timestamp. A lock of an earlier transaction is resolved through its primary when
// possible, otherwise a Locked KeyError is returned.
func (txn *RoTxn) Get(key []byte) ([]byte, error) {
	lock, err := txn.GetLock(key)
	if err != nil {
		return nil, err
	}
	return txn.readWithLock(key, lock)
}

func (txn *RoTxn) readWithLock(key []byte, lock *Lock) ([]byte, error) {
	if lock.IsLockedFor(key, txn.StartTS) {
		value, visible, err := txn.resolveLock(key, lock)
		if err != nil {
			return nil, err
		}
		if visible {
			return value, nil
		}
	}
	return txn.GetValue(key)
}

// resolveLock decides what lock means to a reader at txn.StartTS by looking at the primary's write record. visible
// reports whether the lock's value is the one to read.
func (txn *RoTxn) resolveLock(key []byte, lock *Lock) (value []byte, visible bool, err error) {
	if !txn.inRegion(lock.Primary) {
		return nil, false, lockedError(key, lock)
	}
	write, commitTs, err := txn.findWrite(lock.Primary, lock.Ts)
	if err != nil {
		return nil, false, err
	}
	if write == nil {
		return nil, false, lockedError(key, lock)
	}
	if write.Kind == WriteKindRollback || commitTs > txn.StartTS {
		return nil, false, nil
	}
	switch lock.Kind {
	case WriteKindDelete:
		return nil, true, nil
	case WriteKindPut:
		if lock.ShortValue != nil {
			return lock.ShortValue, true, nil
		}
		value, err = txn.getValue(key, lock.Ts)
		return value, true, err
	}
	return nil, false, nil
}

func lockedError(key []byte, lock *Lock) *KeyError {
	keyError := new(KeyError)
	keyError.Locked = lock.Info(key)
	return keyError
}

// PutWrite records write at key and ts.
func (txn *MvccTxn) PutWrite(key []byte, ts uint64, write *Write) {
	txn.writes = append(txn.writes, storage.Modify{
		Data: storage.Put{
			Key:   EncodeKey(key, ts),
			Value: write.ToBytes(),
			Cf:    engine_util.CfWrite,
		},
	})
}

// GetLock returns a lock if key is locked. It will return (nil, nil) if there is no lock on key, and (nil, err)
// if an error occurs during lookup.
func (txn *RoTxn) GetLock(key []byte) (*Lock, error) {
	bytes, err := txn.Reader.GetCF(engine_util.CfLock, key)
	if err != nil {
		return nil, err
	}
	if bytes == nil {
		return nil, nil
	}
	return ParseLock(bytes)
}

// PutLock adds a key/lock to this transaction.
func (txn *MvccTxn) PutLock(key []byte, lock *Lock) {
	txn.writes = append(txn.writes, storage.Modify{
		Data: storage.Put{
			Key:   key,
			Value: lock.ToBytes(),
			Cf:    engine_util.CfLock,
		},
	})
}

// DeleteLock adds a delete lock to this transaction.
func (txn *MvccTxn) DeleteLock(key []byte) {
	txn.writes = append(txn.writes, storage.Modify{
		Data: storage.Delete{
			Key: key,
			Cf:  engine_util.CfLock,
		},
	})
}

// getValue gets the value at precisely the given key and ts, without searching.
func (txn *RoTxn) getValue(key []byte, ts uint64) ([]byte, error) {
	return txn.Reader.GetCF(engine_util.CfDefault, EncodeKey(key, ts))
}

// PutValue adds a key/value write to this transaction.
func (txn *MvccTxn) PutValue(key []byte, value []byte) {
	txn.writes = append(txn.writes, storage.Modify{
		Data: storage.Put{
			Key:   EncodeKey(key, txn.StartTS),
			Value: value,
			Cf:    engine_util.CfDefault,
		},
	})
}

// DeleteValue removes a key/value pair in this transaction.
func (txn *MvccTxn) DeleteValue(key []byte) {
	txn.writes = append(txn.writes, storage.Modify{
		Data: storage.Delete{
			Key: EncodeKey(key, txn.StartTS),
			Cf:  engine_util.CfDefault,
		},
	})
}

// EncodeKey encodes a user key and appends an encoded timestamp to a key, see codec.EncodeKey.
func EncodeKey(key []byte, ts uint64) []byte {
	return codec.EncodeKey(key, ts)
}

// DecodeUserKey takes a key + timestamp and returns the key part.
func DecodeUserKey(key []byte) []byte {
	userKey, _, err := codec.DecodeKey(key)
	if err != nil {
		panic(err)
	}
	return userKey
}
