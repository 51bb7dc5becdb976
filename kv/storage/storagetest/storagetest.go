// Package storagetest holds the behaviour every storage.Storage engine must share.
package storagetest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talent-plan/txnkv/kv/storage"
	"github.com/talent-plan/txnkv/kv/util/engine_util"
	"github.com/talent-plan/txnkv/proto/pkg/kvrpcpb"
)

// NewStorageFunc returns a started storage and a function releasing it.
type NewStorageFunc func(t *testing.T) (storage.Storage, func())

func put(cf string, key, value string) storage.Modify {
	return storage.Modify{Data: storage.Put{Cf: cf, Key: []byte(key), Value: []byte(value)}}
}

func del(cf string, key string) storage.Modify {
	return storage.Modify{Data: storage.Delete{Cf: cf, Key: []byte(key)}}
}

func scanAll(t *testing.T, r storage.StorageReader, cf string, start string) []string {
	var out []string
	it := r.IterCF(cf)
	defer it.Close()
	for it.Seek([]byte(start)); it.Valid(); it.Next() {
		item := it.Item()
		val, err := item.ValueCopy(nil)
		require.Nil(t, err)
		out = append(out, string(item.KeyCopy(nil))+"="+string(val))
	}
	return out
}

// Run exercises reads, writes, iteration, column family isolation and snapshot reads.
func Run(t *testing.T, newStorage NewStorageFunc) {
	t.Run("GetAndDelete", func(t *testing.T) {
		s, clean := newStorage(t)
		defer clean()
		ctx := &kvrpcpb.Context{}

		require.Nil(t, s.Write(ctx, []storage.Modify{put(engine_util.CfDefault, "a", "x")}))
		r, err := s.Reader(ctx)
		require.Nil(t, err)
		val, err := r.GetCF(engine_util.CfDefault, []byte("a"))
		require.Nil(t, err)
		assert.Equal(t, []byte("x"), val)
		val, err = r.GetCF(engine_util.CfDefault, []byte("b"))
		require.Nil(t, err)
		assert.Nil(t, val)
		r.Close()

		require.Nil(t, s.Write(ctx, []storage.Modify{del(engine_util.CfDefault, "a")}))
		r, err = s.Reader(ctx)
		require.Nil(t, err)
		val, err = r.GetCF(engine_util.CfDefault, []byte("a"))
		require.Nil(t, err)
		assert.Nil(t, val)
		r.Close()
	})

	t.Run("IterCF", func(t *testing.T) {
		s, clean := newStorage(t)
		defer clean()
		ctx := &kvrpcpb.Context{}

		require.Nil(t, s.Write(ctx, []storage.Modify{
			put(engine_util.CfDefault, "a", "x"),
			put(engine_util.CfDefault, "c", "z"),
			put(engine_util.CfDefault, "b", "y"),
			put(engine_util.CfLock, "b", "lock"),
			put(engine_util.CfWrite, "d", "write"),
		}))
		r, err := s.Reader(ctx)
		require.Nil(t, err)
		defer r.Close()
		assert.Equal(t, []string{"a=x", "b=y", "c=z"}, scanAll(t, r, engine_util.CfDefault, ""))
		assert.Equal(t, []string{"b=y", "c=z"}, scanAll(t, r, engine_util.CfDefault, "aa"))
		assert.Equal(t, []string{"b=lock"}, scanAll(t, r, engine_util.CfLock, ""))
		assert.Equal(t, []string{"d=write"}, scanAll(t, r, engine_util.CfWrite, ""))
		assert.Nil(t, scanAll(t, r, engine_util.CfRaw, ""))
	})

	t.Run("Snapshot", func(t *testing.T) {
		s, clean := newStorage(t)
		defer clean()
		ctx := &kvrpcpb.Context{}

		require.Nil(t, s.Write(ctx, []storage.Modify{put(engine_util.CfRaw, "k", "v1")}))
		r, err := s.Reader(ctx)
		require.Nil(t, err)
		defer r.Close()
		require.Nil(t, s.Write(ctx, []storage.Modify{put(engine_util.CfRaw, "k", "v2"), put(engine_util.CfRaw, "k2", "v")}))

		val, err := r.GetCF(engine_util.CfRaw, []byte("k"))
		require.Nil(t, err)
		assert.Equal(t, []byte("v1"), val)
		assert.Equal(t, []string{"k=v1"}, scanAll(t, r, engine_util.CfRaw, ""))
	})
}
