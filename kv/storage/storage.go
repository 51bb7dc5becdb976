package storage

import (
	"github.com/talent-plan/txnkv/kv/util/engine_util"
	"github.com/talent-plan/txnkv/proto/pkg/errorpb"
	"github.com/talent-plan/txnkv/proto/pkg/kvrpcpb"
	"github.com/talent-plan/txnkv/proto/pkg/metapb"
)

// Storage represents the internal-facing part of txnkv: it reads and writes data to disk (or
// semi-permanent memory). Implementations guarantee that a batch passed to Write is applied
// atomically and that a reader sees a consistent snapshot.
type Storage interface {
	Start() error
	Stop() error
	Write(ctx *kvrpcpb.Context, batch []Modify) error
	Reader(ctx *kvrpcpb.Context) (StorageReader, error)
}

type StorageReader interface {
	// When the key doesn't exist, return nil for the value
	GetCF(cf string, key []byte) ([]byte, error)
	IterCF(cf string) engine_util.DBIterator
	Close()
}

// ExecFunc reads from a snapshot and returns the modifications to apply. region is the region
// the request was validated against; it is nil when the storage has no regions.
type ExecFunc func(region *metapb.Region, reader StorageReader) ([]Modify, error)

// Executor is a Storage which can run a read-check-write sequence as one atomic step. Exec
// validates ctx and keys first; fn is not called when validation fails.
type Executor interface {
	Storage
	Exec(ctx *kvrpcpb.Context, keys [][]byte, fn ExecFunc) error
}

// RegionError wraps a region level error, the whole request it belongs to must be rejected.
type RegionError struct {
	RequestErr *errorpb.Error
}

func (re *RegionError) Error() string {
	return re.RequestErr.String()
}
