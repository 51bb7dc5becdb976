package leveldb_storage

import (
	"os"
	"path/filepath"

	"github.com/pingcap/errors"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/iterator"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
	"github.com/talent-plan/txnkv/kv/config"
	"github.com/talent-plan/txnkv/kv/storage"
	"github.com/talent-plan/txnkv/kv/util/engine_util"
	"github.com/talent-plan/txnkv/log"
	"github.com/talent-plan/txnkv/proto/pkg/kvrpcpb"
)

// LevelDBStorage stores every column family as a key prefix of a single goleveldb database.
type LevelDBStorage struct {
	dir  string
	sync bool
	db   *leveldb.DB
}

func NewLevelDBStorage(conf *config.Config) *LevelDBStorage {
	return &LevelDBStorage{
		dir:  filepath.Join(conf.DBPath, "leveldb"),
		sync: conf.Badger.SyncWrites,
	}
}

func (s *LevelDBStorage) Start() error {
	if err := os.MkdirAll(s.dir, os.ModePerm); err != nil {
		return errors.WithStack(err)
	}
	// goleveldb holds a file lock on the directory itself.
	db, err := leveldb.OpenFile(s.dir, nil)
	if err != nil {
		return errors.Annotatef(err, "open leveldb at %s", s.dir)
	}
	s.db = db
	log.Infof("leveldb storage opened at %s", s.dir)
	return nil
}

func (s *LevelDBStorage) Stop() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return errors.WithStack(err)
}

func (s *LevelDBStorage) Write(ctx *kvrpcpb.Context, batch []storage.Modify) error {
	b := new(leveldb.Batch)
	for _, m := range batch {
		if !engine_util.IsValidCF(m.Cf()) {
			return errors.Errorf("leveldb-storage: bad CF %s", m.Cf())
		}
		switch data := m.Data.(type) {
		case storage.Put:
			b.Put(engine_util.KeyWithCF(data.Cf, data.Key), data.Value)
		case storage.Delete:
			b.Delete(engine_util.KeyWithCF(data.Cf, data.Key))
		}
	}
	return errors.WithStack(s.db.Write(b, &opt.WriteOptions{Sync: s.sync}))
}

func (s *LevelDBStorage) Reader(ctx *kvrpcpb.Context) (storage.StorageReader, error) {
	snap, err := s.db.GetSnapshot()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &levelReader{snap: snap}, nil
}

type levelReader struct {
	snap *leveldb.Snapshot
}

func (r *levelReader) GetCF(cf string, key []byte) ([]byte, error) {
	val, err := r.snap.Get(engine_util.KeyWithCF(cf, key), nil)
	if err == leveldb.ErrNotFound {
		return nil, nil
	}
	return val, errors.WithStack(err)
}

func (r *levelReader) IterCF(cf string) engine_util.DBIterator {
	prefix := []byte(cf + "_")
	it := &levelIter{
		iter:   r.snap.NewIterator(util.BytesPrefix(prefix), nil),
		prefix: prefix,
	}
	it.valid = it.iter.First()
	return it
}

func (r *levelReader) Close() {
	r.snap.Release()
}

type levelIter struct {
	iter   iterator.Iterator
	prefix []byte
	valid  bool
}

func (it *levelIter) Item() engine_util.DBItem {
	return &levelItem{key: it.iter.Key()[len(it.prefix):], value: it.iter.Value()}
}

func (it *levelIter) Valid() bool { return it.valid }

func (it *levelIter) Next() { it.valid = it.iter.Next() }

func (it *levelIter) Seek(key []byte) {
	it.valid = it.iter.Seek(append(append([]byte{}, it.prefix...), key...))
}

func (it *levelIter) Close() { it.iter.Release() }

// levelItem points into the iterator buffers, which are only valid until the next move.
type levelItem struct {
	key   []byte
	value []byte
}

func (i *levelItem) Key() []byte { return i.key }

func (i *levelItem) KeyCopy(dst []byte) []byte { return append(dst[:0], i.key...) }

func (i *levelItem) Value() ([]byte, error) { return i.value, nil }

func (i *levelItem) ValueSize() int { return len(i.value) }

func (i *levelItem) ValueCopy(dst []byte) ([]byte, error) { return append(dst[:0], i.value...), nil }
