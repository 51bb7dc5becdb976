package message

import (
	"github.com/talent-plan/txnkv/kv/storage"
	"github.com/talent-plan/txnkv/proto/pkg/kvrpcpb"
	"github.com/talent-plan/txnkv/proto/pkg/metapb"
)

type MsgType int64

const (
	// just a placeholder
	MsgTypeNull MsgType = 0
	// message wraps a data command, validated and applied in one turn of the region loop
	MsgTypeCmd MsgType = 1
	// message to split the region at a key
	MsgTypeSplitRegion MsgType = 2
	// message to add or remove a peer
	MsgTypeChangePeer MsgType = 3
	// message to move leadership to another peer of the region
	MsgTypeTransferLeader MsgType = 4
)

func (t MsgType) String() string {
	switch t {
	case MsgTypeCmd:
		return "cmd"
	case MsgTypeSplitRegion:
		return "split"
	case MsgTypeChangePeer:
		return "change_peer"
	case MsgTypeTransferLeader:
		return "transfer_leader"
	}
	return "null"
}

type Msg struct {
	Type     MsgType
	RegionID uint64
	Data     interface{}
}

func NewPeerMsg(tp MsgType, regionID uint64, data interface{}) Msg {
	return Msg{Type: tp, RegionID: regionID, Data: data}
}

// MsgCmd runs Exec against a snapshot after Header and Keys passed validation. Nil Exec only
// validates.
type MsgCmd struct {
	Header   *kvrpcpb.Context
	Keys     [][]byte
	Exec     storage.ExecFunc
	Callback *Callback
}

type MsgSplitRegion struct {
	RegionEpoch *metapb.RegionEpoch
	SplitKey    []byte
	NewRegionID uint64
	// One new peer id for every peer of the region, in the same order.
	NewPeerIDs []uint64
	Callback   *Callback
}

type ChangePeerType int

const (
	AddPeer ChangePeerType = iota
	RemovePeer
)

func (t ChangePeerType) String() string {
	if t == AddPeer {
		return "add"
	}
	return "remove"
}

type MsgChangePeer struct {
	RegionEpoch *metapb.RegionEpoch
	ChangeType  ChangePeerType
	Peer        *metapb.Peer
	Callback    *Callback
}

type MsgTransferLeader struct {
	RegionEpoch *metapb.RegionEpoch
	Peer        *metapb.Peer
	Callback    *Callback
}
