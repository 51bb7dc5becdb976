package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/talent-plan/txnkv/kv/storage"
	"github.com/talent-plan/txnkv/proto/pkg/kvrpcpb"
	"github.com/talent-plan/txnkv/proto/pkg/metapb"
	"github.com/talent-plan/txnkv/proto/pkg/regionpb"
)

func TestRegionStateKey(t *testing.T) {
	for _, id := range []uint64{0, 1, 1 << 40} {
		got, err := DecodeRegionStateKey(RegionStateKey(id))
		require.Nil(t, err)
		assert.Equal(t, id, got)
	}
	_, err := DecodeRegionStateKey(StoreIdentKey)
	assert.NotNil(t, err)
}

func TestLoadRegionLocalStates(t *testing.T) {
	s := storage.NewMemStorage()
	var batch []storage.Modify
	for _, id := range []uint64{3, 1, 2} {
		m, err := RegionLocalStateModify(&regionpb.RegionLocalState{
			Region:   &metapb.Region{Id: id, RegionEpoch: &metapb.RegionEpoch{ConfVer: 1, Version: id}},
			LeaderId: id + 10,
		})
		require.Nil(t, err)
		batch = append(batch, m)
	}
	m, err := StoreIdentModify(&regionpb.StoreIdent{StoreId: 7})
	require.Nil(t, err)
	batch = append(batch, m, LastIDModify(42))
	require.Nil(t, s.Write(&kvrpcpb.Context{}, batch))

	reader, err := s.Reader(nil)
	require.Nil(t, err)
	defer reader.Close()

	states, err := LoadRegionLocalStates(reader)
	require.Nil(t, err)
	require.Len(t, states, 3)
	for i, state := range states {
		assert.Equal(t, uint64(i+1), state.Region.Id)
		assert.Equal(t, uint64(i+11), state.LeaderId)
	}

	ident, err := GetStoreIdent(reader)
	require.Nil(t, err)
	assert.Equal(t, uint64(7), ident.StoreId)
	last, err := GetLastID(reader)
	require.Nil(t, err)
	assert.Equal(t, uint64(42), last)

	state, err := GetRegionLocalState(reader, 9)
	require.Nil(t, err)
	assert.Nil(t, state)
}
