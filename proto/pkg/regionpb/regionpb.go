// Package regionpb holds the store local region state persisted in the meta column family.
package regionpb

import (
	proto "github.com/golang/protobuf/proto"
	metapb "github.com/talent-plan/txnkv/proto/pkg/metapb"
)

type PeerState int32

const (
	PeerState_Normal    PeerState = 0
	PeerState_Tombstone PeerState = 1
)

var PeerState_name = map[int32]string{
	0: "Normal",
	1: "Tombstone",
}

var PeerState_value = map[string]int32{
	"Normal":    0,
	"Tombstone": 1,
}

func (x PeerState) String() string {
	return proto.EnumName(PeerState_name, int32(x))
}

// StoreIdent is written once when a store is bootstrapped.
type StoreIdent struct {
	StoreId uint64 `protobuf:"varint,1,opt,name=store_id,json=storeId,proto3" json:"store_id,omitempty"`
}

func (m *StoreIdent) Reset()         { *m = StoreIdent{} }
func (m *StoreIdent) String() string { return proto.CompactTextString(m) }
func (*StoreIdent) ProtoMessage()    {}

func (m *StoreIdent) GetStoreId() uint64 {
	if m != nil {
		return m.StoreId
	}
	return 0
}

type RegionLocalState struct {
	State    PeerState      `protobuf:"varint,1,opt,name=state,proto3,enum=regionpb.PeerState" json:"state,omitempty"`
	Region   *metapb.Region `protobuf:"bytes,2,opt,name=region,proto3" json:"region,omitempty"`
	LeaderId uint64         `protobuf:"varint,3,opt,name=leader_id,json=leaderId,proto3" json:"leader_id,omitempty"`
}

func (m *RegionLocalState) Reset()         { *m = RegionLocalState{} }
func (m *RegionLocalState) String() string { return proto.CompactTextString(m) }
func (*RegionLocalState) ProtoMessage()    {}

func (m *RegionLocalState) GetState() PeerState {
	if m != nil {
		return m.State
	}
	return PeerState_Normal
}

func (m *RegionLocalState) GetRegion() *metapb.Region {
	if m != nil {
		return m.Region
	}
	return nil
}

func (m *RegionLocalState) GetLeaderId() uint64 {
	if m != nil {
		return m.LeaderId
	}
	return 0
}

func init() {
	proto.RegisterEnum("regionpb.PeerState", PeerState_name, PeerState_value)
	proto.RegisterType((*StoreIdent)(nil), "regionpb.StoreIdent")
	proto.RegisterType((*RegionLocalState)(nil), "regionpb.RegionLocalState")
}
