package meta

import (
	"encoding/binary"

	"github.com/pingcap/errors"
)

// Keys of the meta column family:
//
//	0x01 0x01                        -> StoreIdent
//	0x01 0x02                        -> last allocated id
//	0x01 0x03 region_id(8B) 0x01     -> RegionLocalState
const (
	LocalPrefix byte = 0x01

	storeIdentSuffix  byte = 0x01
	idAllocSuffix     byte = 0x02
	RegionMetaPrefix  byte = 0x03
	RegionStateSuffix byte = 0x01
)

var (
	StoreIdentKey = []byte{LocalPrefix, storeIdentSuffix}
	IDAllocKey    = []byte{LocalPrefix, idAllocSuffix}

	RegionMetaMinKey = []byte{LocalPrefix, RegionMetaPrefix}
	RegionMetaMaxKey = []byte{LocalPrefix, RegionMetaPrefix + 1}
)

func RegionStateKey(regionID uint64) []byte {
	key := make([]byte, 11)
	key[0] = LocalPrefix
	key[1] = RegionMetaPrefix
	binary.BigEndian.PutUint64(key[2:10], regionID)
	key[10] = RegionStateSuffix
	return key
}

func DecodeRegionStateKey(key []byte) (uint64, error) {
	if len(key) != 11 || key[0] != LocalPrefix || key[1] != RegionMetaPrefix || key[10] != RegionStateSuffix {
		return 0, errors.Errorf("invalid region state key %q", key)
	}
	return binary.BigEndian.Uint64(key[2:10]), nil
}
