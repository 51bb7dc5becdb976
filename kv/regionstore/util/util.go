package util

import (
	"bytes"
	"fmt"

	"github.com/golang/protobuf/proto"
	"github.com/talent-plan/txnkv/log"
	"github.com/talent-plan/txnkv/proto/pkg/metapb"
)

const InvalidID uint64 = 0

// CheckKeyInRegion checks key is in [start_key, end_key).
func CheckKeyInRegion(key []byte, region *metapb.Region) error {
	if bytes.Compare(key, region.StartKey) >= 0 && (len(region.EndKey) == 0 || bytes.Compare(key, region.EndKey) < 0) {
		return nil
	}
	return &ErrKeyNotInRegion{Key: key, Region: region}
}

// CheckKeyInRegionExclusive checks key is in (start_key, end_key).
func CheckKeyInRegionExclusive(key []byte, region *metapb.Region) error {
	if bytes.Compare(region.StartKey, key) < 0 && (len(region.EndKey) == 0 || bytes.Compare(key, region.EndKey) < 0) {
		return nil
	}
	return &ErrKeyNotInRegion{Key: key, Region: region}
}

// IsEpochStale reports whether epoch is older than checkEpoch in either half.
func IsEpochStale(epoch *metapb.RegionEpoch, checkEpoch *metapb.RegionEpoch) bool {
	return epoch.Version < checkEpoch.Version || epoch.ConfVer < checkEpoch.ConfVer
}

// CheckRegionEpoch compares the epoch a request was routed with against the live one. Data
// commands check both halves: any difference means the routing is stale in one direction or
// the other, and serving it could read or write outside the region's current range.
func CheckRegionEpoch(fromEpoch *metapb.RegionEpoch, region *metapb.Region, checkVer, checkConfVer bool) error {
	if !checkVer && !checkConfVer {
		return nil
	}
	if fromEpoch == nil {
		return &ErrEpochNotMatch{Message: "missing epoch", Regions: []*metapb.Region{CloneRegion(region)}}
	}
	currentEpoch := region.RegionEpoch
	if (checkConfVer && fromEpoch.ConfVer != currentEpoch.ConfVer) ||
		(checkVer && fromEpoch.Version != currentEpoch.Version) {
		log.Debugf("epoch not match, region id %v, from epoch %v, current epoch %v",
			region.Id, fromEpoch, currentEpoch)
		state := "newer than"
		if IsEpochStale(fromEpoch, currentEpoch) {
			state = "stale against"
		}
		return &ErrEpochNotMatch{Message: fmt.Sprintf("epoch %v is %s current epoch %v of region %v",
			fromEpoch, state, currentEpoch, region.Id), Regions: []*metapb.Region{CloneRegion(region)}}
	}
	return nil
}

func FindPeer(region *metapb.Region, storeID uint64) *metapb.Peer {
	for _, peer := range region.Peers {
		if peer.StoreId == storeID {
			return peer
		}
	}
	return nil
}

func FindPeerByID(region *metapb.Region, peerID uint64) *metapb.Peer {
	for _, peer := range region.Peers {
		if peer.Id == peerID {
			return peer
		}
	}
	return nil
}

func RemovePeer(region *metapb.Region, storeID uint64) *metapb.Peer {
	for i, peer := range region.Peers {
		if peer.StoreId == storeID {
			region.Peers = append(region.Peers[:i], region.Peers[i+1:]...)
			return peer
		}
	}
	return nil
}

func CloneRegion(region *metapb.Region) *metapb.Region {
	if region == nil {
		return nil
	}
	return proto.Clone(region).(*metapb.Region)
}

func ClonePeer(peer *metapb.Peer) *metapb.Peer {
	if peer == nil {
		return nil
	}
	return &metapb.Peer{Id: peer.Id, StoreId: peer.StoreId}
}

func SafeCopy(b []byte) []byte {
	return append([]byte{}, b...)
}

func PeerEqual(l, r *metapb.Peer) bool {
	return l.Id == r.Id && l.StoreId == r.StoreId
}
