package standalone_storage

import (
	"os"
	"path/filepath"

	"github.com/coocood/badger"
	"github.com/gofrs/flock"
	"github.com/pingcap/errors"
	"github.com/talent-plan/txnkv/kv/config"
	"github.com/talent-plan/txnkv/kv/storage"
	"github.com/talent-plan/txnkv/kv/util/engine_util"
	"github.com/talent-plan/txnkv/log"
	"github.com/talent-plan/txnkv/proto/pkg/kvrpcpb"
)

const lockFileName = "txnkv.lock"

// StandAloneStorage is an implementation of `Storage` for a single-node txnkv instance backed by
// badger. All data is stored locally; every column family is a key prefix in one badger DB.
type StandAloneStorage struct {
	conf *config.Config
	dir  string
	db   *badger.DB
	lock *flock.Flock
}

func NewStandAloneStorage(conf *config.Config) *StandAloneStorage {
	return &StandAloneStorage{
		conf: conf,
		dir:  filepath.Join(conf.DBPath, "kv"),
	}
}

func (s *StandAloneStorage) Start() error {
	if err := os.MkdirAll(s.conf.DBPath, os.ModePerm); err != nil {
		return errors.WithStack(err)
	}
	s.lock = flock.New(filepath.Join(s.conf.DBPath, lockFileName))
	locked, err := s.lock.TryLock()
	if err != nil {
		return errors.WithStack(err)
	}
	if !locked {
		return errors.Errorf("data directory %s is used by another process", s.conf.DBPath)
	}
	db, err := engine_util.CreateDB(s.dir, &s.conf.Badger)
	if err != nil {
		s.lock.Unlock()
		return err
	}
	s.db = db
	log.Infof("badger storage opened at %s", s.dir)
	return nil
}

func (s *StandAloneStorage) Stop() error {
	var err error
	if s.db != nil {
		err = s.db.Close()
		s.db = nil
	}
	if s.lock != nil {
		if uerr := s.lock.Unlock(); err == nil {
			err = uerr
		}
	}
	return errors.WithStack(err)
}

func (s *StandAloneStorage) Reader(ctx *kvrpcpb.Context) (storage.StorageReader, error) {
	return &badgerReader{txn: s.db.NewTransaction(false)}, nil
}

func (s *StandAloneStorage) Write(ctx *kvrpcpb.Context, batch []storage.Modify) error {
	wb := new(engine_util.WriteBatch)
	for _, m := range batch {
		switch data := m.Data.(type) {
		case storage.Put:
			wb.SetCF(data.Cf, data.Key, data.Value)
		case storage.Delete:
			wb.DeleteCF(data.Cf, data.Key)
		default:
			return errors.Errorf("unsupported modify %T", m.Data)
		}
	}
	return wb.WriteToDB(s.db)
}

// DB exposes the underlying badger DB. Used for size reporting.
func (s *StandAloneStorage) DB() *badger.DB {
	return s.db
}

type badgerReader struct {
	txn *badger.Txn
}

func (r *badgerReader) GetCF(cf string, key []byte) ([]byte, error) {
	val, err := engine_util.GetCFFromTxn(r.txn, cf, key)
	if err == badger.ErrKeyNotFound {
		return nil, nil
	}
	return val, err
}

func (r *badgerReader) IterCF(cf string) engine_util.DBIterator {
	return engine_util.NewCFIterator(cf, r.txn)
}

func (r *badgerReader) Close() {
	r.txn.Discard()
}
