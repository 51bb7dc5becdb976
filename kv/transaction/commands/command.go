package commands

import (
	"reflect"

	"github.com/pingcap/errors"
	"github.com/talent-plan/txnkv/kv/storage"
	"github.com/talent-plan/txnkv/kv/transaction/latches"
	"github.com/talent-plan/txnkv/kv/transaction/mvcc"
	"github.com/talent-plan/txnkv/proto/pkg/kvrpcpb"
	"github.com/talent-plan/txnkv/proto/pkg/metapb"
)

// Command is an abstraction which covers the process from receiving a request from gRPC to returning a response.
type Command interface {
	Context() *kvrpcpb.Context
	StartTs() uint64
	// Keys returns the keys named by the request. They are checked against the region before anything runs.
	Keys() [][]byte
	// WillWrite returns a list of all keys that might be written by this command. Return nil if the command is readonly
	// or can only find its keys by reading.
	WillWrite() [][]byte
	// Read executes a readonly part of the command. Only called if WillWrite returns nil. If the command needs to write
	// to the DB it should return a non-nil set of keys that the command will write.
	Read(txn *mvcc.RoTxn) (interface{}, [][]byte, error)
	// PrepareWrites is for building writes in an mvcc transaction. Commands can also make non-transactional
	// reads and writes using txn. Returning without modifying txn means that no transaction will be executed.
	PrepareWrites(txn *mvcc.MvccTxn) (interface{}, error)
	// EmptyResponse returns a response to carry a region error.
	EmptyResponse() interface{}
}

// RunCommand runs a transactional command. Storages which implement storage.Executor run the whole command inside
// the region it addresses, other storages are serialized per key with latches. A region error is returned inside the
// response, any other error means the command failed internally.
func RunCommand(cmd Command, store storage.Storage, latches *latches.Latches) (interface{}, error) {
	var resp interface{}
	var err error
	if exec, ok := store.(storage.Executor); ok {
		resp, err = runInRegion(cmd, exec)
	} else {
		resp, err = runLatched(cmd, store, latches)
	}
	if err != nil {
		return regionError(err, cmd.EmptyResponse())
	}
	return resp, nil
}

func runInRegion(cmd Command, exec storage.Executor) (interface{}, error) {
	var resp interface{}
	err := exec.Exec(cmd.Context(), cmd.Keys(), func(region *metapb.Region, reader storage.StorageReader) ([]storage.Modify, error) {
		var err error
		keysToWrite := cmd.WillWrite()
		if keysToWrite == nil {
			resp, keysToWrite, err = cmd.Read(mvcc.NewRoTxn(reader, cmd.StartTs(), region))
			if err != nil || keysToWrite == nil {
				return nil, err
			}
		}

		txn := mvcc.NewTxn(reader, cmd.StartTs())
		txn.Region = region
		resp, err = cmd.PrepareWrites(&txn)
		if err != nil {
			return nil, err
		}
		return txn.Writes(), nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}

func runLatched(cmd Command, store storage.Storage, latches *latches.Latches) (interface{}, error) {
	ctxt := cmd.Context()
	var resp interface{}

	keysToWrite := cmd.WillWrite()
	if keysToWrite == nil {
		// The command is readonly or requires access to the DB to determine the keys it will write.
		reader, err := store.Reader(ctxt)
		if err != nil {
			return nil, err
		}
		resp, keysToWrite, err = cmd.Read(mvcc.NewRoTxn(reader, cmd.StartTs(), nil))
		reader.Close()
		if err != nil {
			return nil, err
		}
	}

	if keysToWrite != nil {
		// The command will write to the DB.
		latches.Acquire(keysToWrite)
		defer latches.Release(keysToWrite)

		reader, err := store.Reader(ctxt)
		if err != nil {
			return nil, err
		}
		defer reader.Close()

		// Build an mvcc transaction.
		txn := mvcc.NewTxn(reader, cmd.StartTs())
		resp, err = cmd.PrepareWrites(&txn)
		if err != nil {
			return nil, err
		}

		latches.Validate(&txn, keysToWrite)

		// Building the transaction succeeded without conflict, write all writes to backing storage.
		if writes := txn.Writes(); len(writes) > 0 {
			if err = store.Write(ctxt, writes); err != nil {
				return nil, err
			}
		}
	}

	return resp, nil
}

// regionError puts a region error into resp. Any other error is returned as is.
func regionError(err error, resp interface{}) (interface{}, error) {
	if regionErr, ok := errors.Cause(err).(*storage.RegionError); ok {
		respValue := reflect.Indirect(reflect.ValueOf(resp))
		respValue.FieldByName("RegionError").Set(reflect.ValueOf(regionErr.RequestErr))
		return resp, nil
	}
	return nil, err
}

// CommandBase provides some default function implementations for the Command interface.
type CommandBase struct {
	context *kvrpcpb.Context
	startTs uint64
}

func (base CommandBase) Context() *kvrpcpb.Context {
	return base.context
}

func (base CommandBase) StartTs() uint64 {
	return base.startTs
}

func (base CommandBase) Read(txn *mvcc.RoTxn) (interface{}, [][]byte, error) {
	return nil, nil, nil
}

// ReadOnly is a helper type for commands which will never write anything to the database. It provides some default
// function implementations.
type ReadOnly struct{}

func (ro ReadOnly) WillWrite() [][]byte {
	return nil
}

func (ro ReadOnly) PrepareWrites(txn *mvcc.MvccTxn) (interface{}, error) {
	return nil, nil
}

// keyOrNone returns key as a key list, a missing start key addresses the region as a whole.
func keyOrNone(key []byte) [][]byte {
	if len(key) == 0 {
		return nil
	}
	return [][]byte{key}
}
