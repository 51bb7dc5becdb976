package transaction

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talent-plan/txnkv/kv/server"
	"github.com/talent-plan/txnkv/kv/storage"
	"github.com/talent-plan/txnkv/kv/transaction/mvcc"
	"github.com/talent-plan/txnkv/kv/util/engine_util"
	"github.com/talent-plan/txnkv/proto/pkg/kvrpcpb"
)

// testBuilder runs transactional requests against a server over a memory storage and inspects what they
// left in the column families.
type testBuilder struct {
	t      *testing.T
	server *server.Server
	// mem will always be the backing store for server.
	mem *storage.MemStorage
	// Keep track of timestamps.
	prevTs uint64
}

// kv is a type which identifies a key/value pair to testBuilder.
type kv struct {
	cf string
	// The user key (unencoded, no time stamp).
	key []byte
	// Can be elided. The builder's prevTS will be used if the ts is needed.
	ts uint64
	// Can be elided in assertion functions. If elided then testBuilder checks that the value has not changed.
	value []byte
}

func newBuilder(t *testing.T) testBuilder {
	mem := storage.NewMemStorage()
	server := server.NewServer(mem)
	server.Latches.Validation = func(txn *mvcc.MvccTxn, keys [][]byte) {
		keyMap := make(map[string]struct{})
		for _, k := range keys {
			keyMap[string(k)] = struct{}{}
		}
		for _, wr := range txn.Writes() {
			key := wr.Key()
			switch wr.Cf() {
			case engine_util.CfDefault, engine_util.CfWrite:
				key = mvcc.DecodeUserKey(wr.Key())
			}
			if _, ok := keyMap[string(key)]; !ok {
				t.Errorf("Failed latching validation: tried to write a key which was not latched in %v", wr.Data)
			}
		}
	}
	return testBuilder{t, server, mem, 99}
}

// storedKey is the engine key of kv, using the builder's latest timestamp when kv has none.
func (builder *testBuilder) storedKey(kv kv) []byte {
	if kv.cf == engine_util.CfLock {
		return kv.key
	}
	ts := kv.ts
	if ts == 0 {
		ts = builder.prevTs
	}
	return mvcc.EncodeKey(kv.key, ts)
}

// init sets values in the test's DB.
func (builder *testBuilder) init(values []kv) {
	for _, kv := range values {
		builder.mem.Set(kv.cf, builder.storedKey(kv), kv.value)
	}
}

// send dispatches one request to the server method handling it.
func (builder *testBuilder) send(req interface{}) (interface{}, error) {
	ctx := context.Background()
	server := builder.server
	switch req := req.(type) {
	case *kvrpcpb.GetRequest:
		return server.KvGet(ctx, req)
	case *kvrpcpb.ScanRequest:
		return server.KvScan(ctx, req)
	case *kvrpcpb.BatchGetRequest:
		return server.KvBatchGet(ctx, req)
	case *kvrpcpb.PrewriteRequest:
		return server.KvPrewrite(ctx, req)
	case *kvrpcpb.CommitRequest:
		return server.KvCommit(ctx, req)
	case *kvrpcpb.BatchRollbackRequest:
		return server.KvBatchRollback(ctx, req)
	case *kvrpcpb.CleanupRequest:
		return server.KvCleanup(ctx, req)
	case *kvrpcpb.ScanLockRequest:
		return server.KvScanLock(ctx, req)
	case *kvrpcpb.ResolveLockRequest:
		return server.KvResolveLock(ctx, req)
	}
	builder.t.Fatalf("no handler for %T", req)
	return nil, nil
}

// runRequests sends the requests in order. A request failing with an error, rather than an error in its
// response, fails the test.
func (builder *testBuilder) runRequests(reqs ...interface{}) []interface{} {
	result := make([]interface{}, 0, len(reqs))
	for _, req := range reqs {
		resp, err := builder.send(req)
		require.Nil(builder.t, err, "%T", req)
		result = append(result, resp)
	}
	return result
}

// runOneRequest is like runRequests but only runs a single request.
func (builder *testBuilder) runOneRequest(req interface{}) interface{} {
	return builder.runRequests(req)[0]
}

func (builder *testBuilder) nextTs() uint64 {
	builder.prevTs++
	return builder.prevTs
}

// ts returns the most recent timestamp used by testBuilder.
func (builder *testBuilder) ts() uint64 {
	return builder.prevTs
}

// assert checks every kv holds its value. A kv without a value must not have been written since init.
func (builder *testBuilder) assert(kvs []kv) {
	for _, kv := range kvs {
		key := builder.storedKey(kv)
		if kv.value == nil {
			assert.False(builder.t, builder.mem.HasChanged(kv.cf, key), "%s %v changed", kv.cf, kv.key)
			continue
		}
		assert.Equal(builder.t, kv.value, builder.mem.Get(kv.cf, key), "%s %v", kv.cf, kv.key)
	}
}

// assertMissing asserts that nothing is stored under the user key in cf.
func (builder *testBuilder) assertMissing(cf string, key []byte, ts uint64) {
	stored := builder.storedKey(kv{cf: cf, key: key, ts: ts})
	assert.Nil(builder.t, builder.mem.Get(cf, stored), "%s %v", cf, key)
}

// assertLen asserts the size of one of the column families.
func (builder *testBuilder) assertLen(cf string, size int) {
	assert.Equal(builder.t, size, builder.mem.Len(cf), cf)
}

// assertLens asserts the size of each column family.
func (builder *testBuilder) assertLens(def int, lock int, write int) {
	builder.assertLen(engine_util.CfDefault, def)
	builder.assertLen(engine_util.CfLock, lock)
	builder.assertLen(engine_util.CfWrite, write)
}

// lockValue is the stored form of a lock of a put without an inline value.
func lockValue(primary byte, ts uint64, ttl uint64) []byte {
	lock := mvcc.Lock{Primary: []byte{primary}, Ts: ts, Ttl: ttl, Kind: mvcc.WriteKindPut}
	return lock.ToBytes()
}

// shortLockValue is the stored form of a lock of a put carrying its value inline.
func shortLockValue(primary byte, ts uint64, ttl uint64, value []byte) []byte {
	lock := mvcc.Lock{Primary: []byte{primary}, Ts: ts, Ttl: ttl, Kind: mvcc.WriteKindPut, ShortValue: value}
	return lock.ToBytes()
}

func writeValue(kind mvcc.WriteKind, startTs uint64) []byte {
	write := mvcc.Write{StartTS: startTs, Kind: kind}
	return write.ToBytes()
}

func shortWriteValue(startTs uint64, value []byte) []byte {
	write := mvcc.Write{StartTS: startTs, Kind: mvcc.WriteKindPut, ShortValue: value}
	return write.ToBytes()
}

// longValue is too large to be stored inline with a lock or write.
func longValue(b byte) []byte {
	return bytes.Repeat([]byte{b}, mvcc.ShortValueMaxLen+1)
}

func (builder *testBuilder) prewriteRequest(muts ...*kvrpcpb.Mutation) *kvrpcpb.PrewriteRequest {
	var req kvrpcpb.PrewriteRequest
	req.PrimaryLock = []byte{1}
	req.StartVersion = builder.nextTs()
	req.Mutations = muts
	return &req
}

func mutation(key byte, value []byte, op kvrpcpb.Op) *kvrpcpb.Mutation {
	var mut kvrpcpb.Mutation
	mut.Key = []byte{key}
	mut.Value = value
	mut.Op = op
	return &mut
}

func (builder *testBuilder) commitRequest(keys ...[]byte) *kvrpcpb.CommitRequest {
	var req kvrpcpb.CommitRequest
	req.StartVersion = builder.nextTs()
	req.CommitVersion = builder.prevTs + 10
	req.Keys = keys
	return &req
}

func (builder *testBuilder) rollbackRequest(keys ...[]byte) *kvrpcpb.BatchRollbackRequest {
	var req kvrpcpb.BatchRollbackRequest
	req.StartVersion = builder.nextTs()
	req.Keys = keys
	return &req
}

func (builder *testBuilder) cleanupRequest(key []byte, currentTs uint64) *kvrpcpb.CleanupRequest {
	var req kvrpcpb.CleanupRequest
	req.StartVersion = builder.nextTs()
	req.Key = key
	req.CurrentTs = currentTs
	return &req
}

func resolveRequest(startTs uint64, commitTs uint64) *kvrpcpb.ResolveLockRequest {
	var req kvrpcpb.ResolveLockRequest
	req.StartVersion = startTs
	req.CommitVersion = commitTs
	return &req
}

func (builder *testBuilder) scanRequest(startKey []byte, limit uint32) *kvrpcpb.ScanRequest {
	var req kvrpcpb.ScanRequest
	req.StartKey = startKey
	req.Limit = limit
	req.Version = builder.nextTs()
	return &req
}
