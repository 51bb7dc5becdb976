package engine_util

import (
	"github.com/coocood/badger"
	"github.com/pingcap/errors"
)

// GetCFFromTxn reads key of cf inside txn. A missing key returns badger.ErrKeyNotFound.
func GetCFFromTxn(txn *badger.Txn, cf string, key []byte) ([]byte, error) {
	item, err := txn.Get(KeyWithCF(cf, key))
	if err != nil {
		return nil, err
	}
	return item.ValueCopy(nil)
}

type cfItem struct {
	item      *badger.Item
	prefixLen int
}

func (i cfItem) Key() []byte {
	return i.item.Key()[i.prefixLen:]
}

func (i cfItem) KeyCopy(dst []byte) []byte {
	return append(dst[:0], i.Key()...)
}

func (i cfItem) Value() ([]byte, error) {
	return i.item.Value()
}

func (i cfItem) ValueSize() int {
	return i.item.ValueSize()
}

func (i cfItem) ValueCopy(dst []byte) ([]byte, error) {
	return i.item.ValueCopy(dst)
}

// BadgerIterator is a DBIterator over the keys of one column family of a badger transaction.
type BadgerIterator struct {
	iter   *badger.Iterator
	cf     string
	prefix []byte
}

func NewCFIterator(cf string, txn *badger.Txn) *BadgerIterator {
	return &BadgerIterator{
		iter:   txn.NewIterator(badger.DefaultIteratorOptions),
		cf:     cf,
		prefix: KeyWithCF(cf, nil),
	}
}

func (it *BadgerIterator) Item() DBItem {
	return cfItem{item: it.iter.Item(), prefixLen: len(it.prefix)}
}

func (it *BadgerIterator) Valid() bool {
	return it.iter.ValidForPrefix(it.prefix)
}

func (it *BadgerIterator) Next() {
	it.iter.Next()
}

func (it *BadgerIterator) Seek(key []byte) {
	it.iter.Seek(KeyWithCF(it.cf, key))
}

func (it *BadgerIterator) Close() {
	it.iter.Close()
}

type batchEntry struct {
	key    []byte
	value  []byte
	delete bool
}

// WriteBatch collects writes of several column families and applies them in one badger
// transaction.
type WriteBatch struct {
	entries []batchEntry
}

func (wb *WriteBatch) Len() int {
	return len(wb.entries)
}

func (wb *WriteBatch) SetCF(cf string, key, val []byte) {
	wb.entries = append(wb.entries, batchEntry{key: KeyWithCF(cf, key), value: val})
}

func (wb *WriteBatch) DeleteCF(cf string, key []byte) {
	wb.entries = append(wb.entries, batchEntry{key: KeyWithCF(cf, key), delete: true})
}

func (wb *WriteBatch) WriteToDB(db *badger.DB) error {
	if len(wb.entries) == 0 {
		return nil
	}
	err := db.Update(func(txn *badger.Txn) error {
		for _, entry := range wb.entries {
			var err error
			if entry.delete {
				err = txn.Delete(entry.key)
			} else {
				err = txn.Set(entry.key, entry.value)
			}
			if err != nil {
				return err
			}
		}
		return nil
	})
	return errors.WithStack(err)
}
