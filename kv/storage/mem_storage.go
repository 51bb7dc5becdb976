package storage

import (
	"bytes"
	"sync"

	"github.com/google/btree"
	"github.com/pingcap/errors"
	"github.com/talent-plan/txnkv/kv/util/engine_util"
	"github.com/talent-plan/txnkv/proto/pkg/kvrpcpb"
)

const memBtreeDegree = 32

// MemStorage is a simple storage backed by memory, one btree per column family. Data is not
// written to disk. Readers work on lazily cloned trees, so they see a stable snapshot.
type MemStorage struct {
	mu  sync.Mutex
	cfs map[string]*btree.BTree
}

func NewMemStorage() *MemStorage {
	cfs := make(map[string]*btree.BTree, len(engine_util.CFs))
	for _, cf := range engine_util.CFs {
		cfs[cf] = btree.New(memBtreeDegree)
	}
	return &MemStorage{cfs: cfs}
}

func (s *MemStorage) Start() error {
	return nil
}

func (s *MemStorage) Stop() error {
	return nil
}

func (s *MemStorage) Reader(ctx *kvrpcpb.Context) (StorageReader, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snap := make(map[string]*btree.BTree, len(s.cfs))
	for cf, tree := range s.cfs {
		snap[cf] = tree.Clone()
	}
	return &memReader{cfs: snap}, nil
}

func (s *MemStorage) Write(ctx *kvrpcpb.Context, batch []Modify) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, m := range batch {
		if _, ok := s.cfs[m.Cf()]; !ok {
			return errors.Errorf("mem-storage: bad CF %s", m.Cf())
		}
	}
	for _, m := range batch {
		switch data := m.Data.(type) {
		case Put:
			key := data.Key
			if key == nil {
				key = []byte{}
			}
			s.cfs[data.Cf].ReplaceOrInsert(memItem{key: key, value: data.Value})
		case Delete:
			s.cfs[data.Cf].Delete(memItem{key: data.Key})
		}
	}
	return nil
}

// Get returns the value of key in cf, or nil. Used by tests.
func (s *MemStorage) Get(cf string, key []byte) []byte {
	s.mu.Lock()
	defer s.mu.Unlock()
	tree, ok := s.cfs[cf]
	if !ok {
		return nil
	}
	result := tree.Get(memItem{key: key})
	if result == nil {
		return nil
	}
	return result.(memItem).value
}

// Set stores a value and marks it fresh, see HasChanged. Used by tests to seed data.
func (s *MemStorage) Set(cf string, key []byte, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tree, ok := s.cfs[cf]; ok {
		tree.ReplaceOrInsert(memItem{key: key, value: value, fresh: true})
	}
}

// HasChanged reports whether the value set by Set was overwritten or deleted since.
func (s *MemStorage) HasChanged(cf string, key []byte) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	tree, ok := s.cfs[cf]
	if !ok {
		return true
	}
	result := tree.Get(memItem{key: key})
	if result == nil {
		return true
	}
	return !result.(memItem).fresh
}

func (s *MemStorage) Len(cf string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tree, ok := s.cfs[cf]; ok {
		return tree.Len()
	}
	return -1
}

// memReader is a StorageReader which reads from a snapshot of a MemStorage.
type memReader struct {
	cfs map[string]*btree.BTree
}

func (mr *memReader) GetCF(cf string, key []byte) ([]byte, error) {
	tree, ok := mr.cfs[cf]
	if !ok {
		return nil, errors.Errorf("mem-storage: bad CF %s", cf)
	}
	result := tree.Get(memItem{key: key})
	if result == nil {
		return nil, nil
	}
	return result.(memItem).value, nil
}

func (mr *memReader) IterCF(cf string) engine_util.DBIterator {
	tree, ok := mr.cfs[cf]
	if !ok {
		tree = btree.New(2)
	}
	it := &memIter{data: tree}
	if min := tree.Min(); min != nil {
		it.item = min.(memItem)
	}
	return it
}

func (mr *memReader) Close() {}

type memIter struct {
	data *btree.BTree
	item memItem
}

func (it *memIter) Item() engine_util.DBItem {
	return it.item
}

func (it *memIter) Valid() bool {
	return it.item.key != nil
}

func (it *memIter) Next() {
	first := true
	oldItem := it.item
	it.item = memItem{}
	it.data.AscendGreaterOrEqual(oldItem, func(item btree.Item) bool {
		// Skip the first item, which will be it.item
		if first {
			first = false
			return true
		}
		it.item = item.(memItem)
		return false
	})
}

func (it *memIter) Seek(key []byte) {
	it.item = memItem{}
	it.data.AscendGreaterOrEqual(memItem{key: key}, func(item btree.Item) bool {
		it.item = item.(memItem)
		return false
	})
}

func (it *memIter) Close() {}

type memItem struct {
	key   []byte
	value []byte
	fresh bool
}

func (it memItem) Key() []byte {
	return it.key
}

func (it memItem) KeyCopy(dst []byte) []byte {
	return safeCopy(dst, it.key)
}

func (it memItem) Value() ([]byte, error) {
	return it.value, nil
}

func (it memItem) ValueSize() int {
	return len(it.value)
}

func (it memItem) ValueCopy(dst []byte) ([]byte, error) {
	return safeCopy(dst, it.value), nil
}

func (it memItem) Less(than btree.Item) bool {
	return bytes.Compare(it.key, than.(memItem).key) < 0
}

func safeCopy(dst, src []byte) []byte {
	return append(dst[:0], src...)
}
