package transaction

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talent-plan/txnkv/kv/transaction/mvcc"
	"github.com/talent-plan/txnkv/kv/util/engine_util"
	"github.com/talent-plan/txnkv/proto/pkg/kvrpcpb"
)

// lock parses the lock stored for key.
func (builder *testBuilder) lock(key []byte) *mvcc.Lock {
	lock, err := mvcc.ParseLock(builder.mem.Get(engine_util.CfLock, key))
	require.Nil(builder.t, err)
	require.NotNil(builder.t, lock, "no lock on %v", key)
	return lock
}

// write parses the write record of key committed at commitTs.
func (builder *testBuilder) write(key []byte, commitTs uint64) *mvcc.Write {
	write, err := mvcc.ParseWrite(builder.mem.Get(engine_util.CfWrite, mvcc.EncodeKey(key, commitTs)))
	require.Nil(builder.t, err)
	require.NotNil(builder.t, write, "no write on %v at %d", key, commitTs)
	return write
}

func (builder *testBuilder) assertRollback(key []byte, startTs uint64) {
	write := builder.write(key, startTs)
	assert.Equal(builder.t, mvcc.WriteKindRollback, write.Kind)
	assert.Equal(builder.t, startTs, write.StartTS)
}

// TestEmptyPrewrite tests that a Prewrite with no mutations succeeds and changes nothing.
func TestEmptyPrewrite(t *testing.T) {
	builder := newBuilder(t)
	cmd := builder.prewriteRequest()
	resp := builder.runOneRequest(cmd).(*kvrpcpb.PrewriteResponse)

	assert.Empty(t, resp.Errors)
	assert.Nil(t, resp.RegionError)
	builder.assertLens(0, 0, 0)
}

// TestSinglePrewrite tests a prewrite with one write, it should succeed, we test all the expected values.
func TestSinglePrewrite(t *testing.T) {
	builder := newBuilder(t)
	cmd := builder.prewriteRequest(mutation(3, []byte{42}, kvrpcpb.Op_Put))
	cmd.LockTtl = 1000
	resp := builder.runOneRequest(cmd).(*kvrpcpb.PrewriteResponse)

	assert.Empty(t, resp.Errors)
	assert.Nil(t, resp.RegionError)
	// The value is short, so it is kept in the lock.
	builder.assertLens(0, 1, 0)
	lock := builder.lock([]byte{3})
	assert.Equal(t, []byte{1}, lock.Primary)
	assert.Equal(t, builder.ts(), lock.Ts)
	assert.Equal(t, uint64(1000), lock.Ttl)
	assert.Equal(t, mvcc.WriteKindPut, lock.Kind)
	assert.Equal(t, []byte{42}, lock.ShortValue)
}

// TestPrewriteLargeValue tests that a large value goes to the default column family.
func TestPrewriteLargeValue(t *testing.T) {
	builder := newBuilder(t)
	cmd := builder.prewriteRequest(mutation(3, longValue(42), kvrpcpb.Op_Put))
	resp := builder.runOneRequest(cmd).(*kvrpcpb.PrewriteResponse)

	assert.Empty(t, resp.Errors)
	builder.assertLens(1, 1, 0)
	builder.assert([]kv{
		{cf: engine_util.CfDefault, key: []byte{3}, value: longValue(42)},
	})
	assert.Nil(t, builder.lock([]byte{3}).ShortValue)
}

// TestPrewriteLocked tests that two prewrites to the same key causes a lock error.
func TestPrewriteLocked(t *testing.T) {
	builder := newBuilder(t)
	cmd := builder.prewriteRequest(mutation(3, []byte{42}, kvrpcpb.Op_Put))
	cmd2 := builder.prewriteRequest(mutation(3, []byte{53}, kvrpcpb.Op_Put))
	resps := builder.runRequests(cmd, cmd2)

	assert.Empty(t, resps[0].(*kvrpcpb.PrewriteResponse).Errors)
	assert.Nil(t, resps[0].(*kvrpcpb.PrewriteResponse).RegionError)
	errors := resps[1].(*kvrpcpb.PrewriteResponse).Errors
	require.Equal(t, 1, len(errors))
	require.NotNil(t, errors[0].Locked)
	assert.Equal(t, uint64(100), errors[0].Locked.LockVersion)
	builder.assertLens(0, 1, 0)
	lock := builder.lock([]byte{3})
	assert.Equal(t, uint64(100), lock.Ts)
	assert.Equal(t, []byte{42}, lock.ShortValue)
}

// TestPrewriteRetry tests that a repeated prewrite is accepted and changes nothing.
func TestPrewriteRetry(t *testing.T) {
	builder := newBuilder(t)
	cmd := builder.prewriteRequest(mutation(3, []byte{42}, kvrpcpb.Op_Put))
	resps := builder.runRequests(cmd, cmd)

	assert.Empty(t, resps[0].(*kvrpcpb.PrewriteResponse).Errors)
	assert.Empty(t, resps[1].(*kvrpcpb.PrewriteResponse).Errors)
	builder.assertLens(0, 1, 0)
}

// TestPrewriteWritten tests an attempted prewrite with a write conflict.
func TestPrewriteWritten(t *testing.T) {
	builder := newBuilder(t)
	cmd := builder.prewriteRequest(mutation(3, []byte{42}, kvrpcpb.Op_Put))
	builder.init([]kv{
		{cf: engine_util.CfDefault, key: []byte{3}, ts: 80, value: []byte{5}},
		{cf: engine_util.CfWrite, key: []byte{3}, ts: 101, value: writeValue(mvcc.WriteKindPut, 80)},
	})
	resp := builder.runOneRequest(cmd).(*kvrpcpb.PrewriteResponse)

	require.Equal(t, 1, len(resp.Errors))
	conflict := resp.Errors[0].Conflict
	require.NotNil(t, conflict)
	assert.Equal(t, uint64(100), conflict.StartTs)
	assert.Equal(t, uint64(80), conflict.ConflictTs)
	assert.Equal(t, uint64(101), conflict.ConflictCommitTs)
	assert.Equal(t, []byte{3}, conflict.Key)
	assert.Equal(t, []byte{1}, conflict.Primary)
	assert.Nil(t, resp.RegionError)
	builder.assertLens(1, 0, 1)

	builder.assert([]kv{
		{cf: engine_util.CfDefault, key: []byte{3}, ts: 80, value: []byte{5}},
	})
}

// TestPrewriteWrittenNoConflict tests an attempted prewrite with a write already present, but no conflict.
func TestPrewriteWrittenNoConflict(t *testing.T) {
	builder := newBuilder(t)
	cmd := builder.prewriteRequest(mutation(3, []byte{42}, kvrpcpb.Op_Put))
	builder.init([]kv{
		{cf: engine_util.CfDefault, key: []byte{3}, ts: 80, value: []byte{5}},
		{cf: engine_util.CfWrite, key: []byte{3}, ts: 90, value: writeValue(mvcc.WriteKindPut, 80)},
	})
	resp := builder.runOneRequest(cmd).(*kvrpcpb.PrewriteResponse)

	assert.Empty(t, resp.Errors)
	assert.Nil(t, resp.RegionError)
	builder.assertLens(1, 1, 1)

	builder.assert([]kv{
		{cf: engine_util.CfDefault, key: []byte{3}, value: []byte{5}, ts: 80},
		{cf: engine_util.CfWrite, key: []byte{3}, ts: 90},
	})
	assert.Equal(t, builder.ts(), builder.lock([]byte{3}).Ts)
}

// TestPrewriteAfterRollback tests that a prewrite arriving after its rollback fails.
func TestPrewriteAfterRollback(t *testing.T) {
	builder := newBuilder(t)
	cmd := builder.prewriteRequest(mutation(3, []byte{42}, kvrpcpb.Op_Put))
	builder.init([]kv{
		{cf: engine_util.CfWrite, key: []byte{3}, value: writeValue(mvcc.WriteKindRollback, builder.ts())},
	})
	resp := builder.runOneRequest(cmd).(*kvrpcpb.PrewriteResponse)

	require.Equal(t, 1, len(resp.Errors))
	assert.NotNil(t, resp.Errors[0].AlreadyRolledBack)
	builder.assertLens(0, 0, 1)
}

// TestPrewriteAllOrNothing tests that one failing mutation keeps every other key unlocked.
func TestPrewriteAllOrNothing(t *testing.T) {
	builder := newBuilder(t)
	cmd := builder.prewriteRequest(
		mutation(3, []byte{42}, kvrpcpb.Op_Put),
		mutation(4, []byte{43}, kvrpcpb.Op_Put),
		mutation(5, longValue(44), kvrpcpb.Op_Put),
	)
	builder.init([]kv{
		{cf: engine_util.CfLock, key: []byte{4}, value: lockValue(4, 90, 0)},
	})
	resp := builder.runOneRequest(cmd).(*kvrpcpb.PrewriteResponse)

	require.Equal(t, 1, len(resp.Errors))
	assert.Equal(t, []byte{4}, resp.Errors[0].Locked.Key)
	builder.assertLens(0, 1, 0)
	builder.assert([]kv{
		{cf: engine_util.CfLock, key: []byte{4}},
	})
}

// TestPrewriteInvalidOp tests that a rollback is not a valid mutation.
func TestPrewriteInvalidOp(t *testing.T) {
	builder := newBuilder(t)
	cmd := builder.prewriteRequest(mutation(3, nil, kvrpcpb.Op_Rollback))
	resp := builder.runOneRequest(cmd).(*kvrpcpb.PrewriteResponse)

	require.Equal(t, 1, len(resp.Errors))
	assert.NotEmpty(t, resp.Errors[0].Abort)
	builder.assertLens(0, 0, 0)
}

// TestPrewriteMultiple tests that a prewrite with multiple mutations succeeds, the last mutation of a key wins.
func TestPrewriteMultiple(t *testing.T) {
	builder := newBuilder(t)
	cmd := builder.prewriteRequest(
		mutation(3, []byte{42}, kvrpcpb.Op_Put),
		mutation(4, []byte{43}, kvrpcpb.Op_Put),
		mutation(5, nil, kvrpcpb.Op_Lock),
		mutation(4, nil, kvrpcpb.Op_Del),
		mutation(4, []byte{1, 3, 5}, kvrpcpb.Op_Put),
		mutation(255, []byte{45}, kvrpcpb.Op_Del),
	)
	resp := builder.runOneRequest(cmd).(*kvrpcpb.PrewriteResponse)

	assert.Empty(t, resp.Errors)
	assert.Nil(t, resp.RegionError)
	builder.assertLens(0, 4, 0)
	assert.Equal(t, []byte{1, 3, 5}, builder.lock([]byte{4}).ShortValue)
	assert.Equal(t, mvcc.WriteKindLock, builder.lock([]byte{5}).Kind)
	lock := builder.lock([]byte{255})
	assert.Equal(t, mvcc.WriteKindDelete, lock.Kind)
	assert.Nil(t, lock.ShortValue)
}

// TestEmptyCommit tests a commit request with no keys to commit.
func TestEmptyCommit(t *testing.T) {
	builder := newBuilder(t)
	cmd := builder.commitRequest([][]byte{}...)
	resp := builder.runOneRequest(cmd).(*kvrpcpb.CommitResponse)

	assert.Nil(t, resp.Error)
	assert.Nil(t, resp.RegionError)
	builder.assertLens(0, 0, 0)
}

// TestSingleCommit tests committing a single key.
func TestSingleCommit(t *testing.T) {
	builder := newBuilder(t)
	cmd := builder.commitRequest([]byte{3})
	builder.init([]kv{
		{cf: engine_util.CfLock, key: []byte{3}, value: shortLockValue(3, builder.ts(), 0, []byte{42})},
	})
	resp := builder.runOneRequest(cmd).(*kvrpcpb.CommitResponse)

	assert.Nil(t, resp.Error)
	assert.Empty(t, resp.Errors)
	assert.Nil(t, resp.RegionError)
	builder.assertLens(0, 0, 1)
	write := builder.write([]byte{3}, 110)
	assert.Equal(t, builder.ts(), write.StartTS)
	assert.Equal(t, mvcc.WriteKindPut, write.Kind)
	assert.Equal(t, []byte{42}, write.ShortValue)

	get := builder.runOneRequest(getRequest([]byte{3}, 110)).(*kvrpcpb.GetResponse)
	assert.Equal(t, []byte{42}, get.Value)
}

// TestCommitLargeValue tests that committing keeps a large value in the default column family.
func TestCommitLargeValue(t *testing.T) {
	builder := newBuilder(t)
	cmd := builder.commitRequest([]byte{3})
	builder.init([]kv{
		{cf: engine_util.CfDefault, key: []byte{3}, value: longValue(42)},
		{cf: engine_util.CfLock, key: []byte{3}, value: lockValue(3, builder.ts(), 0)},
	})
	resp := builder.runOneRequest(cmd).(*kvrpcpb.CommitResponse)

	assert.Nil(t, resp.Error)
	builder.assertLens(1, 0, 1)
	assert.Nil(t, builder.write([]byte{3}, 110).ShortValue)
	builder.assert([]kv{
		{cf: engine_util.CfDefault, key: []byte{3}},
	})

	get := builder.runOneRequest(getRequest([]byte{3}, 200)).(*kvrpcpb.GetResponse)
	assert.Equal(t, longValue(42), get.Value)
}

// TestCommitMultipleKeys tests committing multiple keys in the same commit. Also puts some other data in the DB and
// test that it is unchanged.
func TestCommitMultipleKeys(t *testing.T) {
	builder := newBuilder(t)
	cmd := builder.commitRequest([]byte{3}, []byte{12, 4, 0}, []byte{15})
	builder.init([]kv{
		// Current, pre-written.
		{cf: engine_util.CfLock, key: []byte{3}, value: shortLockValue(3, builder.ts(), 0, []byte{42})},
		{cf: engine_util.CfDefault, key: []byte{12, 4, 0}, value: longValue(1)},
		{cf: engine_util.CfLock, key: []byte{12, 4, 0}, value: lockValue(3, builder.ts(), 0)},
		{cf: engine_util.CfLock, key: []byte{15}, value: shortLockValue(3, builder.ts(), 0, []byte{0})},

		// Some committed data.
		{cf: engine_util.CfDefault, key: []byte{4}, ts: 80, value: []byte{15}},
		{cf: engine_util.CfWrite, key: []byte{4}, ts: 84, value: writeValue(mvcc.WriteKindPut, 80)},
		{cf: engine_util.CfWrite, key: []byte{3, 0}, ts: 84, value: shortWriteValue(80, []byte{150})},

		// Another pre-written transaction.
		{cf: engine_util.CfDefault, key: []byte{2}, ts: 99, value: longValue(8)},
		{cf: engine_util.CfLock, key: []byte{2}, value: lockValue(2, 99, 0)},
		{cf: engine_util.CfLock, key: []byte{43, 6}, value: shortLockValue(2, 99, 0, []byte{1, 1})},
	})
	resp := builder.runOneRequest(cmd).(*kvrpcpb.CommitResponse)

	assert.Nil(t, resp.Error)
	assert.Nil(t, resp.RegionError)
	builder.assertLens(3, 2, 5)
	for _, key := range [][]byte{{3}, {12, 4, 0}, {15}} {
		assert.Equal(t, builder.ts(), builder.write(key, 110).StartTS)
	}
	builder.assert([]kv{
		// Committed data is untouched.
		{cf: engine_util.CfDefault, key: []byte{4}, ts: 80},
		{cf: engine_util.CfWrite, key: []byte{4}, ts: 84},
		{cf: engine_util.CfWrite, key: []byte{3, 0}, ts: 84},

		// Pre-written data is untouched.
		{cf: engine_util.CfDefault, key: []byte{2}, ts: 99},
		{cf: engine_util.CfLock, key: []byte{2}},
		{cf: engine_util.CfLock, key: []byte{43, 6}},
	})
}

// TestRecommitKey tests committing the same key multiple times in one commit.
func TestRecommitKey(t *testing.T) {
	builder := newBuilder(t)
	cmd := builder.commitRequest([]byte{3}, []byte{3})
	builder.init([]kv{
		{cf: engine_util.CfLock, key: []byte{3}, value: shortLockValue(3, builder.ts(), 0, []byte{42})},
	})
	resp := builder.runOneRequest(cmd).(*kvrpcpb.CommitResponse)

	assert.Nil(t, resp.Error)
	assert.Nil(t, resp.RegionError)
	builder.assertLens(0, 0, 1)
	assert.Equal(t, builder.ts(), builder.write([]byte{3}, 110).StartTS)
}

// TestCommitConflictRollback tests committing a rolled back transaction.
func TestCommitConflictRollback(t *testing.T) {
	builder := newBuilder(t)
	cmd := builder.commitRequest([]byte{3})
	builder.init([]kv{
		{cf: engine_util.CfWrite, key: []byte{3}, value: writeValue(mvcc.WriteKindRollback, builder.ts())},
	})
	resp := builder.runOneRequest(cmd).(*kvrpcpb.CommitResponse)

	require.NotNil(t, resp.Error)
	assert.NotNil(t, resp.Error.AlreadyRolledBack)
	assert.Len(t, resp.Errors, 1)
	assert.Nil(t, resp.RegionError)
	builder.assertLens(0, 0, 1)
	builder.assert([]kv{
		{cf: engine_util.CfWrite, key: []byte{3}},
	})
}

// TestCommitConflictRace tests committing where a key is pre-written by a different transaction.
func TestCommitConflictRace(t *testing.T) {
	builder := newBuilder(t)
	cmd := builder.commitRequest([]byte{3})
	builder.init([]kv{
		{cf: engine_util.CfDefault, key: []byte{3}, ts: 90, value: longValue(110)},
		{cf: engine_util.CfLock, key: []byte{3}, value: lockValue(3, 90, 0)},
	})
	resp := builder.runOneRequest(cmd).(*kvrpcpb.CommitResponse)

	require.NotNil(t, resp.Error)
	require.NotNil(t, resp.Error.LockNotFound)
	assert.Equal(t, builder.ts(), resp.Error.LockNotFound.StartTs)
	assert.Nil(t, resp.RegionError)
	builder.assertLens(1, 1, 0)
	builder.assert([]kv{
		{cf: engine_util.CfLock, key: []byte{3}},
		{cf: engine_util.CfDefault, key: []byte{3}, ts: 90},
	})
}

// TestCommitConflictRepeat tests recommitting a transaction (i.e., the same commit request is received twice).
func TestCommitConflictRepeat(t *testing.T) {
	builder := newBuilder(t)
	cmd := builder.commitRequest([]byte{3})
	builder.init([]kv{
		{cf: engine_util.CfWrite, key: []byte{3}, ts: 110, value: shortWriteValue(builder.ts(), []byte{42})},
	})
	resp := builder.runOneRequest(cmd).(*kvrpcpb.CommitResponse)

	assert.Nil(t, resp.Error)
	assert.Nil(t, resp.RegionError)
	builder.assertLens(0, 0, 1)
	builder.assert([]kv{
		{cf: engine_util.CfWrite, key: []byte{3}, ts: 110},
	})
}

// TestCommitMissingPrewrite tests committing a transaction which was not prewritten (i.e., a request was lost, but
// the commit request was not).
func TestCommitMissingPrewrite(t *testing.T) {
	builder := newBuilder(t)
	cmd := builder.commitRequest([]byte{3})
	builder.init([]kv{
		// Some committed data.
		{cf: engine_util.CfWrite, key: []byte{4}, ts: 84, value: shortWriteValue(80, []byte{15})},
		{cf: engine_util.CfWrite, key: []byte{3, 0}, ts: 84, value: shortWriteValue(80, []byte{150})},
		// Note no prewrite.
	})
	resp := builder.runOneRequest(cmd).(*kvrpcpb.CommitResponse)

	require.NotNil(t, resp.Error)
	assert.NotNil(t, resp.Error.LockNotFound)
	assert.Nil(t, resp.RegionError)
	builder.assertLens(0, 0, 2)
	builder.assert([]kv{
		{cf: engine_util.CfWrite, key: []byte{4}, ts: 84},
		{cf: engine_util.CfWrite, key: []byte{3, 0}, ts: 84},
	})
}

// TestCommitPartial tests that keys which can commit do, the others are reported.
func TestCommitPartial(t *testing.T) {
	builder := newBuilder(t)
	cmd := builder.commitRequest([]byte{3}, []byte{4}, []byte{5})
	builder.init([]kv{
		{cf: engine_util.CfLock, key: []byte{3}, value: shortLockValue(3, builder.ts(), 0, []byte{42})},
		{cf: engine_util.CfLock, key: []byte{5}, value: shortLockValue(3, builder.ts(), 0, []byte{43})},
	})
	resp := builder.runOneRequest(cmd).(*kvrpcpb.CommitResponse)

	require.Len(t, resp.Errors, 1)
	assert.Equal(t, []byte{4}, resp.Errors[0].LockNotFound.Key)
	assert.Equal(t, resp.Errors[0], resp.Error)
	builder.assertLens(0, 0, 2)
}

// TestCommitInvalidTs tests that a commit timestamp must follow the start timestamp.
func TestCommitInvalidTs(t *testing.T) {
	builder := newBuilder(t)
	cmd := builder.commitRequest([]byte{3})
	cmd.CommitVersion = cmd.StartVersion
	builder.init([]kv{
		{cf: engine_util.CfLock, key: []byte{3}, value: shortLockValue(3, builder.ts(), 0, []byte{42})},
	})
	resp := builder.runOneRequest(cmd).(*kvrpcpb.CommitResponse)

	require.NotNil(t, resp.Error)
	assert.NotEmpty(t, resp.Error.Abort)
	builder.assertLens(0, 1, 0)
}

// TestEmptyRollback tests a rollback with no keys.
func TestEmptyRollback(t *testing.T) {
	builder := newBuilder(t)
	cmd := builder.rollbackRequest([][]byte{}...)
	resp := builder.runOneRequest(cmd).(*kvrpcpb.BatchRollbackResponse)

	assert.Nil(t, resp.Error)
	assert.Nil(t, resp.RegionError)
	builder.assertLens(0, 0, 0)
}

// TestRollback tests a successful rollback.
func TestRollback(t *testing.T) {
	builder := newBuilder(t)
	cmd := builder.rollbackRequest([]byte{3})
	builder.init([]kv{
		{cf: engine_util.CfLock, key: []byte{3}, value: shortLockValue(3, builder.ts(), 0, []byte{42})},
	})
	resp := builder.runOneRequest(cmd).(*kvrpcpb.BatchRollbackResponse)

	assert.Nil(t, resp.Error)
	assert.Nil(t, resp.RegionError)
	builder.assertLens(0, 0, 1)
	builder.assertRollback([]byte{3}, builder.ts())
}

// TestRollbackLargeValue tests that rolling back removes a value stored apart from the lock.
func TestRollbackLargeValue(t *testing.T) {
	builder := newBuilder(t)
	cmd := builder.rollbackRequest([]byte{3})
	builder.init([]kv{
		{cf: engine_util.CfDefault, key: []byte{3}, value: longValue(42)},
		{cf: engine_util.CfLock, key: []byte{3}, value: lockValue(3, builder.ts(), 0)},
	})
	resp := builder.runOneRequest(cmd).(*kvrpcpb.BatchRollbackResponse)

	assert.Nil(t, resp.Error)
	builder.assertLens(0, 0, 1)
	builder.assertMissing(engine_util.CfDefault, []byte{3}, builder.ts())
	builder.assertMissing(engine_util.CfLock, []byte{3}, 0)
}

// TestRollbackDuplicateKeys tests a rollback which rolls back multiple keys, including one duplicated key.
func TestRollbackDuplicateKeys(t *testing.T) {
	builder := newBuilder(t)
	cmd := builder.rollbackRequest([]byte{3}, []byte{15}, []byte{3})
	builder.init([]kv{
		{cf: engine_util.CfLock, key: []byte{3}, value: shortLockValue(3, builder.ts(), 0, []byte{42})},
		{cf: engine_util.CfLock, key: []byte{15}, value: shortLockValue(3, builder.ts(), 0, []byte{0})},
	})
	resp := builder.runOneRequest(cmd).(*kvrpcpb.BatchRollbackResponse)

	assert.Nil(t, resp.Error)
	assert.Nil(t, resp.RegionError)
	builder.assertLens(0, 0, 2)
	builder.assertRollback([]byte{3}, builder.ts())
	builder.assertRollback([]byte{15}, builder.ts())
}

// TestRollbackMissingPrewrite tests trying to roll back a missing prewrite.
func TestRollbackMissingPrewrite(t *testing.T) {
	builder := newBuilder(t)
	cmd := builder.rollbackRequest([]byte{3})
	resp := builder.runOneRequest(cmd).(*kvrpcpb.BatchRollbackResponse)

	assert.Nil(t, resp.Error)
	assert.Nil(t, resp.RegionError)
	builder.assertLens(0, 0, 1)
	builder.assertRollback([]byte{3}, builder.ts())
}

// TestRollbackCommitted tests trying to roll back a transaction which is already committed.
func TestRollbackCommitted(t *testing.T) {
	builder := newBuilder(t)
	cmd := builder.rollbackRequest([]byte{3})
	builder.init([]kv{
		{cf: engine_util.CfWrite, key: []byte{3}, ts: 110, value: shortWriteValue(builder.ts(), []byte{42})},
	})
	resp := builder.runOneRequest(cmd).(*kvrpcpb.BatchRollbackResponse)

	require.NotNil(t, resp.Error)
	require.NotNil(t, resp.Error.AlreadyCommitted)
	assert.Equal(t, uint64(110), resp.Error.AlreadyCommitted.CommitTs)
	assert.Nil(t, resp.RegionError)
	builder.assertLens(0, 0, 1)
	builder.assert([]kv{
		{cf: engine_util.CfWrite, key: []byte{3}, ts: 110},
	})
}

// TestRollbackDuplicate tests trying to roll back a transaction which has already been rolled back.
func TestRollbackDuplicate(t *testing.T) {
	builder := newBuilder(t)
	cmd := builder.rollbackRequest([]byte{3})
	builder.init([]kv{
		{cf: engine_util.CfWrite, key: []byte{3}, ts: 100, value: writeValue(mvcc.WriteKindRollback, builder.ts())},
	})
	resp := builder.runOneRequest(cmd).(*kvrpcpb.BatchRollbackResponse)

	assert.Nil(t, resp.Error)
	assert.Nil(t, resp.RegionError)
	builder.assertLens(0, 0, 1)
	builder.assert([]kv{
		{cf: engine_util.CfWrite, key: []byte{3}, ts: 100},
	})
}

// TestRollbackOtherTxn tests trying to roll back the wrong transaction.
func TestRollbackOtherTxn(t *testing.T) {
	builder := newBuilder(t)
	cmd := builder.rollbackRequest([]byte{3})
	builder.init([]kv{
		{cf: engine_util.CfDefault, key: []byte{3}, ts: 80, value: longValue(42)},
		{cf: engine_util.CfLock, key: []byte{3}, value: lockValue(3, 80, 0)},
	})
	resp := builder.runOneRequest(cmd).(*kvrpcpb.BatchRollbackResponse)

	assert.Nil(t, resp.Error)
	assert.Nil(t, resp.RegionError)
	builder.assertLens(1, 1, 1)
	builder.assert([]kv{
		{cf: engine_util.CfDefault, key: []byte{3}, ts: 80},
		{cf: engine_util.CfLock, key: []byte{3}},
	})
	builder.assertRollback([]byte{3}, 100)
}

// physicalTs is a timestamp of the given physical time with no logical part.
func physicalTs(physical uint64) uint64 {
	return physical << 18
}

// TestCleanupExpired tests that an expired lock is rolled back.
func TestCleanupExpired(t *testing.T) {
	builder := newBuilder(t)
	cmd := builder.cleanupRequest([]byte{3}, physicalTs(11))
	builder.init([]kv{
		{cf: engine_util.CfLock, key: []byte{3}, value: shortLockValue(3, builder.ts(), 10, []byte{42})},
	})
	resp := builder.runOneRequest(cmd).(*kvrpcpb.CleanupResponse)

	assert.Nil(t, resp.Error)
	assert.Nil(t, resp.RegionError)
	assert.Equal(t, uint64(0), resp.CommitVersion)
	builder.assertLens(0, 0, 1)
	builder.assertRollback([]byte{3}, builder.ts())
}

// TestCleanupNotExpired tests that a live lock is left alone.
func TestCleanupNotExpired(t *testing.T) {
	for _, currentTs := range []uint64{physicalTs(5), 0} {
		builder := newBuilder(t)
		cmd := builder.cleanupRequest([]byte{3}, currentTs)
		builder.init([]kv{
			{cf: engine_util.CfLock, key: []byte{3}, value: shortLockValue(3, builder.ts(), 10, []byte{42})},
		})
		resp := builder.runOneRequest(cmd).(*kvrpcpb.CleanupResponse)

		require.NotNil(t, resp.Error)
		notExpired := resp.Error.NotExpired
		require.NotNil(t, notExpired)
		assert.Equal(t, builder.ts(), notExpired.LockVersion)
		assert.Equal(t, uint64(10), notExpired.LockTtl)
		assert.Equal(t, currentTs, notExpired.CurrentTs)
		builder.assertLens(0, 1, 0)
		builder.assert([]kv{
			{cf: engine_util.CfLock, key: []byte{3}},
		})
	}
}

// TestCleanupHugeTtl tests that a ttl near the top of the range keeps the lock alive.
func TestCleanupHugeTtl(t *testing.T) {
	for _, ttl := range []uint64{math.MaxUint64, math.MaxUint64 - 1} {
		builder := newBuilder(t)
		builder.prevTs = physicalTs(3) - 2
		cmd := builder.cleanupRequest([]byte{3}, physicalTs(5))
		builder.init([]kv{
			{cf: engine_util.CfLock, key: []byte{3}, value: shortLockValue(3, builder.ts(), ttl, []byte{42})},
		})
		resp := builder.runOneRequest(cmd).(*kvrpcpb.CleanupResponse)

		require.NotNil(t, resp.Error)
		require.NotNil(t, resp.Error.NotExpired)
		assert.Equal(t, ttl, resp.Error.NotExpired.LockTtl)
		builder.assertLens(0, 1, 0)
	}
}

// TestCleanupLockFromTheFuture tests that a lock newer than the current ts is not expired.
func TestCleanupLockFromTheFuture(t *testing.T) {
	builder := newBuilder(t)
	builder.prevTs = physicalTs(9)
	cmd := builder.cleanupRequest([]byte{3}, physicalTs(5))
	builder.init([]kv{
		{cf: engine_util.CfLock, key: []byte{3}, value: shortLockValue(3, builder.ts(), 1, []byte{42})},
	})
	resp := builder.runOneRequest(cmd).(*kvrpcpb.CleanupResponse)

	require.NotNil(t, resp.Error)
	assert.NotNil(t, resp.Error.NotExpired)
	builder.assertLens(0, 1, 0)
}

// TestCleanupCommitted tests that cleanup of a committed key reports the commit timestamp.
func TestCleanupCommitted(t *testing.T) {
	builder := newBuilder(t)
	cmd := builder.cleanupRequest([]byte{3}, physicalTs(100))
	builder.init([]kv{
		{cf: engine_util.CfWrite, key: []byte{3}, ts: 110, value: shortWriteValue(builder.ts(), []byte{42})},
	})
	resp := builder.runOneRequest(cmd).(*kvrpcpb.CleanupResponse)

	require.NotNil(t, resp.Error)
	assert.NotNil(t, resp.Error.AlreadyCommitted)
	assert.Equal(t, uint64(110), resp.CommitVersion)
	builder.assertLens(0, 0, 1)
}

// TestCleanupNoLock tests that cleanup of a lost prewrite leaves a rollback record which refuses the prewrite.
func TestCleanupNoLock(t *testing.T) {
	builder := newBuilder(t)
	cmd := builder.cleanupRequest([]byte{3}, 0)
	resp := builder.runOneRequest(cmd).(*kvrpcpb.CleanupResponse)

	assert.Nil(t, resp.Error)
	builder.assertRollback([]byte{3}, cmd.StartVersion)

	late := &kvrpcpb.PrewriteRequest{
		Mutations:    []*kvrpcpb.Mutation{mutation(4, []byte{1}, kvrpcpb.Op_Put), mutation(3, []byte{1}, kvrpcpb.Op_Put)},
		PrimaryLock:  []byte{3},
		StartVersion: cmd.StartVersion,
	}
	prewrite := builder.runOneRequest(late).(*kvrpcpb.PrewriteResponse)
	require.Len(t, prewrite.Errors, 1)
	assert.NotNil(t, prewrite.Errors[0].AlreadyRolledBack)
	builder.assertLens(0, 0, 1)

	// A later transaction writing the key is not affected.
	prewrite = builder.runOneRequest(builder.prewriteRequest(mutation(3, []byte{42}, kvrpcpb.Op_Put))).(*kvrpcpb.PrewriteResponse)
	assert.Empty(t, prewrite.Errors)
	builder.assertLens(0, 1, 1)
}

// TestEmptyResolve tests a completely empty resolve request.
func TestEmptyResolve(t *testing.T) {
	builder := newBuilder(t)
	cmd := resolveRequest(0, 0)
	resp := builder.runOneRequest(cmd).(*kvrpcpb.ResolveLockResponse)

	assert.Nil(t, resp.Error)
	assert.Nil(t, resp.RegionError)
	builder.assertLens(0, 0, 0)
}

func builderForResolve(t *testing.T) testBuilder {
	builder := newBuilder(t)
	builder.init([]kv{
		{cf: engine_util.CfLock, key: []byte{3}, value: shortLockValue(3, 100, 0, []byte{42})},
		{cf: engine_util.CfDefault, key: []byte{7}, ts: 100, value: longValue(43)},
		{cf: engine_util.CfLock, key: []byte{7}, value: lockValue(3, 100, 0)},
		{cf: engine_util.CfLock, key: []byte{200}, value: shortLockValue(200, 110, 0, []byte{44})},
	})
	return builder
}

// TestResolveCommit should commit all keys in the specified transaction.
func TestResolveCommit(t *testing.T) {
	builder := builderForResolve(t)
	resp := builder.runOneRequest(resolveRequest(100, 120)).(*kvrpcpb.ResolveLockResponse)

	assert.Nil(t, resp.Error)
	assert.Nil(t, resp.RegionError)
	builder.assertLens(1, 1, 2)
	assert.Equal(t, []byte{42}, builder.write([]byte{3}, 120).ShortValue)
	assert.Equal(t, uint64(100), builder.write([]byte{7}, 120).StartTS)
	builder.assert([]kv{
		{cf: engine_util.CfDefault, key: []byte{7}, ts: 100},
		{cf: engine_util.CfLock, key: []byte{200}},
	})

	get := builder.runOneRequest(getRequest([]byte{7}, 130)).(*kvrpcpb.GetResponse)
	assert.Equal(t, longValue(43), get.Value)
}

// TestResolveRollback should rollback all keys in the specified transaction.
func TestResolveRollback(t *testing.T) {
	builder := builderForResolve(t)
	resp := builder.runOneRequest(resolveRequest(100, 0)).(*kvrpcpb.ResolveLockResponse)

	assert.Nil(t, resp.Error)
	assert.Nil(t, resp.RegionError)
	builder.assertLens(0, 1, 2)
	builder.assertRollback([]byte{3}, 100)
	builder.assertRollback([]byte{7}, 100)
	builder.assert([]kv{
		{cf: engine_util.CfLock, key: []byte{200}},
	})
}

// TestResolveNothingLocked tests a resolve where the transaction has no locks left.
func TestResolveNothingLocked(t *testing.T) {
	builder := newBuilder(t)
	builder.init([]kv{
		{cf: engine_util.CfWrite, key: []byte{201}, ts: 120, value: shortWriteValue(100, []byte{42})},
		{cf: engine_util.CfLock, key: []byte{200}, value: shortLockValue(200, 110, 0, []byte{44})},
	})
	resps := builder.runRequests(resolveRequest(100, 120), resolveRequest(100, 0))

	assert.Nil(t, resps[0].(*kvrpcpb.ResolveLockResponse).Error)
	assert.Nil(t, resps[1].(*kvrpcpb.ResolveLockResponse).Error)
	builder.assertLens(0, 1, 1)
	builder.assert([]kv{
		{cf: engine_util.CfWrite, key: []byte{201}, ts: 120},
		{cf: engine_util.CfLock, key: []byte{200}},
	})
}

// TestResolveInvalidTs tests that a commit timestamp must follow the start timestamp.
func TestResolveInvalidTs(t *testing.T) {
	builder := builderForResolve(t)
	resp := builder.runOneRequest(resolveRequest(100, 90)).(*kvrpcpb.ResolveLockResponse)

	require.NotNil(t, resp.Error)
	assert.NotEmpty(t, resp.Error.Abort)
	builder.assertLens(1, 3, 0)
}
