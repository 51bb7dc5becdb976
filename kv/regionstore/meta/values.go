package meta

import (
	"bytes"
	"encoding/binary"

	"github.com/golang/protobuf/proto"
	"github.com/pingcap/errors"
	"github.com/talent-plan/txnkv/kv/storage"
	"github.com/talent-plan/txnkv/kv/util/engine_util"
	"github.com/talent-plan/txnkv/proto/pkg/regionpb"
)

func getMsg(reader storage.StorageReader, key []byte, msg proto.Message) (bool, error) {
	val, err := reader.GetCF(engine_util.CfMeta, key)
	if err != nil || val == nil {
		return false, err
	}
	return true, errors.WithStack(proto.Unmarshal(val, msg))
}

func putMsg(key []byte, msg proto.Message) (storage.Modify, error) {
	val, err := proto.Marshal(msg)
	if err != nil {
		return storage.Modify{}, errors.WithStack(err)
	}
	return storage.Modify{Data: storage.Put{Cf: engine_util.CfMeta, Key: key, Value: val}}, nil
}

// GetStoreIdent returns nil when the store was never bootstrapped.
func GetStoreIdent(reader storage.StorageReader) (*regionpb.StoreIdent, error) {
	ident := new(regionpb.StoreIdent)
	found, err := getMsg(reader, StoreIdentKey, ident)
	if err != nil || !found {
		return nil, err
	}
	return ident, nil
}

func StoreIdentModify(ident *regionpb.StoreIdent) (storage.Modify, error) {
	return putMsg(StoreIdentKey, ident)
}

func GetRegionLocalState(reader storage.StorageReader, regionID uint64) (*regionpb.RegionLocalState, error) {
	state := new(regionpb.RegionLocalState)
	found, err := getMsg(reader, RegionStateKey(regionID), state)
	if err != nil || !found {
		return nil, err
	}
	return state, nil
}

func RegionLocalStateModify(state *regionpb.RegionLocalState) (storage.Modify, error) {
	return putMsg(RegionStateKey(state.Region.Id), state)
}

// LoadRegionLocalStates returns every persisted region state ordered by region id, tombstones included.
func LoadRegionLocalStates(reader storage.StorageReader) ([]*regionpb.RegionLocalState, error) {
	var states []*regionpb.RegionLocalState
	it := reader.IterCF(engine_util.CfMeta)
	defer it.Close()
	for it.Seek(RegionMetaMinKey); it.Valid(); it.Next() {
		item := it.Item()
		if bytes.Compare(item.Key(), RegionMetaMaxKey) >= 0 {
			break
		}
		if _, err := DecodeRegionStateKey(item.Key()); err != nil {
			return nil, err
		}
		val, err := item.ValueCopy(nil)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		state := new(regionpb.RegionLocalState)
		if err := proto.Unmarshal(val, state); err != nil {
			return nil, errors.WithStack(err)
		}
		states = append(states, state)
	}
	return states, nil
}

func GetLastID(reader storage.StorageReader) (uint64, error) {
	val, err := reader.GetCF(engine_util.CfMeta, IDAllocKey)
	if err != nil || val == nil {
		return 0, err
	}
	if len(val) != 8 {
		return 0, errors.Errorf("invalid id alloc value %q", val)
	}
	return binary.BigEndian.Uint64(val), nil
}

func LastIDModify(id uint64) storage.Modify {
	val := make([]byte, 8)
	binary.BigEndian.PutUint64(val, id)
	return storage.Modify{Data: storage.Put{Cf: engine_util.CfMeta, Key: IDAllocKey, Value: val}}
}
