package engine_util

import (
	"os"

	"github.com/coocood/badger"
	"github.com/pingcap/errors"
	"github.com/talent-plan/txnkv/kv/config"
)

// CreateDB opens (creating if needed) a badger DB at dir.
func CreateDB(dir string, conf *config.BadgerConfig) (*badger.DB, error) {
	opts := badger.DefaultOptions
	if conf.NumCompactors > 0 {
		opts.NumCompactors = conf.NumCompactors
	}
	if conf.ValueThreshold > 0 {
		opts.ValueThreshold = int(conf.ValueThreshold)
	}
	if conf.VlogFileSize > 0 {
		opts.ValueLogFileSize = int64(conf.VlogFileSize)
	}
	if conf.MaxTableSize > 0 {
		opts.MaxTableSize = int64(conf.MaxTableSize)
	}
	if conf.NumMemTables > 0 {
		opts.NumMemtables = conf.NumMemTables
	}
	if conf.NumL0Tables > 0 {
		opts.NumLevelZeroTables = conf.NumL0Tables
	}
	if conf.NumL0TablesStall > 0 {
		opts.NumLevelZeroTablesStall = conf.NumL0TablesStall
	}
	opts.Dir = dir
	opts.ValueDir = dir
	opts.SyncWrites = conf.SyncWrites
	if err := os.MkdirAll(opts.Dir, os.ModePerm); err != nil {
		return nil, errors.WithStack(err)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, errors.Annotatef(err, "open badger at %s", dir)
	}
	return db, nil
}
