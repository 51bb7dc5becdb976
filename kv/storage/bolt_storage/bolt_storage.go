package bolt_storage

import (
	"os"
	"path/filepath"
	"time"

	"github.com/pingcap/errors"
	"github.com/talent-plan/txnkv/kv/config"
	"github.com/talent-plan/txnkv/kv/storage"
	"github.com/talent-plan/txnkv/kv/util/engine_util"
	"github.com/talent-plan/txnkv/log"
	"github.com/talent-plan/txnkv/proto/pkg/kvrpcpb"
	"go.etcd.io/bbolt"
)

const (
	boltFileName    = "txnkv.bolt"
	initialMmapSize = 1 << 30
)

// BoltStorage keeps each column family in its own bbolt bucket. A reader holds a read-only
// bbolt transaction, so long readers pin old pages until closed.
type BoltStorage struct {
	path   string
	noSync bool
	db     *bbolt.DB
}

func NewBoltStorage(conf *config.Config) *BoltStorage {
	return &BoltStorage{
		path:   filepath.Join(conf.DBPath, boltFileName),
		noSync: !conf.Badger.SyncWrites,
	}
}

func (s *BoltStorage) Start() error {
	if err := os.MkdirAll(filepath.Dir(s.path), os.ModePerm); err != nil {
		return errors.WithStack(err)
	}
	opts := *bbolt.DefaultOptions
	opts.NoSync = s.noSync
	// Fail fast instead of blocking when another process holds the file.
	opts.Timeout = time.Second
	// Writers must remap the file to grow it, which waits for open readers.
	opts.InitialMmapSize = initialMmapSize
	db, err := bbolt.Open(s.path, 0644, &opts)
	if err != nil {
		return errors.Annotatef(err, "open bolt at %s", s.path)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		for _, cf := range engine_util.CFs {
			if _, err := tx.CreateBucketIfNotExists([]byte(cf)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		db.Close()
		return errors.WithStack(err)
	}
	s.db = db
	log.Infof("bolt storage opened at %s", s.path)
	return nil
}

func (s *BoltStorage) Stop() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return errors.WithStack(err)
}

func (s *BoltStorage) Write(ctx *kvrpcpb.Context, batch []storage.Modify) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		for _, m := range batch {
			bucket := tx.Bucket([]byte(m.Cf()))
			if bucket == nil {
				return errors.Errorf("bolt-storage: bad CF %s", m.Cf())
			}
			var err error
			switch data := m.Data.(type) {
			case storage.Put:
				// bbolt rejects a zero length key.
				if len(data.Key) == 0 {
					return errors.New("bolt-storage: empty key")
				}
				err = bucket.Put(data.Key, data.Value)
			case storage.Delete:
				if len(data.Key) == 0 {
					continue
				}
				err = bucket.Delete(data.Key)
			}
			if err != nil {
				return errors.WithStack(err)
			}
		}
		return nil
	})
}

func (s *BoltStorage) Reader(ctx *kvrpcpb.Context) (storage.StorageReader, error) {
	tx, err := s.db.Begin(false)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &boltReader{tx: tx}, nil
}

type boltReader struct {
	tx *bbolt.Tx
}

func (r *boltReader) GetCF(cf string, key []byte) ([]byte, error) {
	bucket := r.tx.Bucket([]byte(cf))
	if bucket == nil {
		return nil, errors.Errorf("bolt-storage: bad CF %s", cf)
	}
	if len(key) == 0 {
		return nil, nil
	}
	val := bucket.Get(key)
	if val == nil {
		return nil, nil
	}
	// Values are only valid for the life of the transaction.
	return append([]byte{}, val...), nil
}

func (r *boltReader) IterCF(cf string) engine_util.DBIterator {
	it := &boltIter{}
	if bucket := r.tx.Bucket([]byte(cf)); bucket != nil {
		it.cursor = bucket.Cursor()
		it.key, it.value = it.cursor.First()
	}
	return it
}

func (r *boltReader) Close() {
	r.tx.Rollback()
}

type boltIter struct {
	cursor *bbolt.Cursor
	key    []byte
	value  []byte
}

func (it *boltIter) Item() engine_util.DBItem {
	return &boltItem{key: it.key, value: it.value}
}

func (it *boltIter) Valid() bool { return it.key != nil }

func (it *boltIter) Next() {
	if it.cursor != nil {
		it.key, it.value = it.cursor.Next()
	}
}

func (it *boltIter) Seek(key []byte) {
	if it.cursor == nil {
		return
	}
	it.key, it.value = it.cursor.Seek(key)
}

func (it *boltIter) Close() {}

type boltItem struct {
	key   []byte
	value []byte
}

func (i *boltItem) Key() []byte { return i.key }

func (i *boltItem) KeyCopy(dst []byte) []byte { return append(dst[:0], i.key...) }

func (i *boltItem) Value() ([]byte, error) { return i.value, nil }

func (i *boltItem) ValueSize() int { return len(i.value) }

func (i *boltItem) ValueCopy(dst []byte) ([]byte, error) { return append(dst[:0], i.value...), nil }
