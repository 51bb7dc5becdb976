package util

import (
	"fmt"

	"github.com/pingcap/errors"
	"github.com/talent-plan/txnkv/proto/pkg/errorpb"
	"github.com/talent-plan/txnkv/proto/pkg/metapb"
)

type ErrNotLeader struct {
	RegionId uint64
	Leader   *metapb.Peer
}

func (e *ErrNotLeader) Error() string {
	return fmt.Sprintf("region %v is not leader", e.RegionId)
}

type ErrRegionNotFound struct {
	RegionId uint64
}

func (e *ErrRegionNotFound) Error() string {
	return fmt.Sprintf("region %v is not found", e.RegionId)
}

type ErrKeyNotInRegion struct {
	Key    []byte
	Region *metapb.Region
}

func (e *ErrKeyNotInRegion) Error() string {
	return fmt.Sprintf("key %q is not in region %v", e.Key, e.Region)
}

type ErrEpochNotMatch struct {
	Message string
	Regions []*metapb.Region
}

func (e *ErrEpochNotMatch) Error() string {
	return fmt.Sprintf("epoch not match, error msg %v, regions %v", e.Message, e.Regions)
}

type ErrStaleCommand struct{}

func (e *ErrStaleCommand) Error() string {
	return "stale command"
}

type ErrStoreNotMatch struct {
	RequestStoreId uint64
	ActualStoreId  uint64
}

func (e *ErrStoreNotMatch) Error() string {
	return fmt.Sprintf("store not match, request store id is %v, but actual store id is %v", e.RequestStoreId, e.ActualStoreId)
}

// ErrTimeout means the region did not answer within the request timeout. The command may
// still be applied later.
type ErrTimeout struct {
	RegionId uint64
}

func (e *ErrTimeout) Error() string {
	return fmt.Sprintf("region %v request timeout", e.RegionId)
}

// IsRegionError reports whether err is one of the region level errors above.
func IsRegionError(err error) bool {
	switch errors.Cause(err).(type) {
	case *ErrNotLeader, *ErrRegionNotFound, *ErrKeyNotInRegion, *ErrEpochNotMatch,
		*ErrStaleCommand, *ErrStoreNotMatch, *ErrTimeout:
		return true
	}
	return false
}

func RegionErrToPbError(e error) *errorpb.Error {
	ret := &errorpb.Error{Message: e.Error()}
	switch err := errors.Cause(e).(type) {
	case *ErrNotLeader:
		ret.NotLeader = &errorpb.NotLeader{RegionId: err.RegionId, Leader: err.Leader}
	case *ErrRegionNotFound:
		ret.RegionNotFound = &errorpb.RegionNotFound{RegionId: err.RegionId}
	case *ErrKeyNotInRegion:
		ret.KeyNotInRegion = &errorpb.KeyNotInRegion{Key: err.Key, RegionId: err.Region.Id,
			StartKey: err.Region.StartKey, EndKey: err.Region.EndKey}
	case *ErrEpochNotMatch:
		ret.EpochNotMatch = &errorpb.EpochNotMatch{CurrentRegions: err.Regions}
	case *ErrStaleCommand:
		ret.StaleCommand = &errorpb.StaleCommand{}
	case *ErrStoreNotMatch:
		ret.StoreNotMatch = &errorpb.StoreNotMatch{RequestStoreId: err.RequestStoreId, ActualStoreId: err.ActualStoreId}
	}
	return ret
}
