package api

import (
	"encoding/hex"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/pingcap/errcode"
	"github.com/pingcap/errors"
	"github.com/talent-plan/txnkv/kv/regionstore"
	"github.com/talent-plan/txnkv/kv/regionstore/message"
	"github.com/talent-plan/txnkv/kv/regionstore/util"
	"github.com/talent-plan/txnkv/proto/pkg/metapb"
	"github.com/unrolled/render"
)

// RegionInfo is the JSON view of a region. Keys are hex encoded, an empty end key is the end of
// the keyspace.
type RegionInfo struct {
	ID       uint64              `json:"id"`
	StartKey string              `json:"start_key"`
	EndKey   string              `json:"end_key"`
	Epoch    *metapb.RegionEpoch `json:"epoch"`
	Peers    []*metapb.Peer      `json:"peers"`
	Leader   *metapb.Peer        `json:"leader,omitempty"`
	Applied  uint64              `json:"applied_commands"`
	Pending  int                 `json:"pending_commands"`
}

func newRegionInfo(info *regionstore.RegionInfo) *RegionInfo {
	return &RegionInfo{
		ID:       info.Region.Id,
		StartKey: hex.EncodeToString(info.Region.StartKey),
		EndKey:   hex.EncodeToString(info.Region.EndKey),
		Epoch:    info.Region.RegionEpoch,
		Peers:    info.Region.Peers,
		Leader:   info.Leader,
		Applied:  info.Applied,
		Pending:  info.Pending,
	}
}

// RegionsInfo is the response of the region listing.
type RegionsInfo struct {
	Count   int           `json:"count"`
	Regions []*RegionInfo `json:"regions"`
}

// SplitInput is the body of a split request. Without an epoch the current one is used.
type SplitInput struct {
	SplitKey string              `json:"split_key"`
	Epoch    *metapb.RegionEpoch `json:"epoch,omitempty"`
}

// SplitOutput holds both halves of a split region.
type SplitOutput struct {
	Left  *RegionInfo `json:"left"`
	Right *RegionInfo `json:"right"`
}

// PeerInput is the body of transfer-leader and add-peer requests. Adding a peer with a zero
// peer id allocates one.
type PeerInput struct {
	PeerID  uint64              `json:"peer_id"`
	StoreID uint64              `json:"store_id"`
	Epoch   *metapb.RegionEpoch `json:"epoch,omitempty"`
}

type regionHandler struct {
	rs *regionstore.RegionStorage
	rd *render.Render
}

func newRegionHandler(rs *regionstore.RegionStorage, rd *render.Render) *regionHandler {
	return &regionHandler{rs: rs, rd: rd}
}

func (h *regionHandler) List(w http.ResponseWriter, r *http.Request) {
	regions := h.rs.Regions()
	result := &RegionsInfo{Count: len(regions), Regions: make([]*RegionInfo, 0, len(regions))}
	for _, info := range regions {
		result.Regions = append(result.Regions, newRegionInfo(info))
	}
	h.rd.JSON(w, http.StatusOK, result)
}

// region looks up the region named in the path, writing the error response when it fails.
func (h *regionHandler) region(w http.ResponseWriter, r *http.Request) *regionstore.RegionInfo {
	regionID, err := parseUint64VarsField(mux.Vars(r), "id")
	if err != nil {
		errorResp(h.rd, w, errcode.NewInvalidInputErr(err))
		return nil
	}
	info := h.rs.GetRegion(regionID)
	if info == nil {
		errorResp(h.rd, w, toErrorCode(&util.ErrRegionNotFound{RegionId: regionID}))
		return nil
	}
	return info
}

func (h *regionHandler) Get(w http.ResponseWriter, r *http.Request) {
	if info := h.region(w, r); info != nil {
		h.rd.JSON(w, http.StatusOK, newRegionInfo(info))
	}
}

func epochOr(epoch *metapb.RegionEpoch, info *regionstore.RegionInfo) *metapb.RegionEpoch {
	if epoch != nil {
		return epoch
	}
	return info.Region.RegionEpoch
}

func (h *regionHandler) Split(w http.ResponseWriter, r *http.Request) {
	info := h.region(w, r)
	if info == nil {
		return
	}
	var input SplitInput
	if err := readJSONRespondError(h.rd, w, r.Body, &input); err != nil {
		return
	}
	splitKey, err := hex.DecodeString(input.SplitKey)
	if err != nil || len(splitKey) == 0 {
		errorResp(h.rd, w, errcode.NewInvalidInputErr(errors.Errorf("invalid split key %q", input.SplitKey)))
		return
	}
	left, right, err := h.rs.SplitRegion(info.Region.Id, epochOr(input.Epoch, info), splitKey)
	if err != nil {
		errorResp(h.rd, w, toErrorCode(err))
		return
	}
	h.rd.JSON(w, http.StatusOK, &SplitOutput{Left: newRegionInfo(left), Right: newRegionInfo(right)})
}

func (h *regionHandler) TransferLeader(w http.ResponseWriter, r *http.Request) {
	info := h.region(w, r)
	if info == nil {
		return
	}
	var input PeerInput
	if err := readJSONRespondError(h.rd, w, r.Body, &input); err != nil {
		return
	}
	peer := util.FindPeerByID(info.Region, input.PeerID)
	if peer == nil {
		errorResp(h.rd, w, errcode.NewInvalidInputErr(errors.Errorf("peer %d is not in region %d", input.PeerID, info.Region.Id)))
		return
	}
	if err := h.rs.TransferLeader(info.Region.Id, epochOr(input.Epoch, info), peer); err != nil {
		errorResp(h.rd, w, toErrorCode(err))
		return
	}
	h.rd.JSON(w, http.StatusOK, newRegionInfo(h.rs.GetRegion(info.Region.Id)))
}

func (h *regionHandler) AddPeer(w http.ResponseWriter, r *http.Request) {
	info := h.region(w, r)
	if info == nil {
		return
	}
	var input PeerInput
	if err := readJSONRespondError(h.rd, w, r.Body, &input); err != nil {
		return
	}
	if input.StoreID == 0 {
		errorResp(h.rd, w, errcode.NewInvalidInputErr(errors.New("store_id must be set")))
		return
	}
	if input.PeerID == 0 {
		id, err := h.rs.AllocID()
		if err != nil {
			errorResp(h.rd, w, errcode.NewInternalErr(err))
			return
		}
		input.PeerID = id
	}
	peer := &metapb.Peer{Id: input.PeerID, StoreId: input.StoreID}
	if err := h.rs.ChangePeer(info.Region.Id, epochOr(input.Epoch, info), message.AddPeer, peer); err != nil {
		errorResp(h.rd, w, toErrorCode(err))
		return
	}
	h.rd.JSON(w, http.StatusOK, newRegionInfo(h.rs.GetRegion(info.Region.Id)))
}

func (h *regionHandler) RemovePeer(w http.ResponseWriter, r *http.Request) {
	info := h.region(w, r)
	if info == nil {
		return
	}
	peerID, err := parseUint64VarsField(mux.Vars(r), "peer_id")
	if err != nil {
		errorResp(h.rd, w, errcode.NewInvalidInputErr(err))
		return
	}
	peer := util.FindPeerByID(info.Region, peerID)
	if peer == nil {
		errorResp(h.rd, w, errcode.NewInvalidInputErr(errors.Errorf("peer %d is not in region %d", peerID, info.Region.Id)))
		return
	}
	if err := h.rs.ChangePeer(info.Region.Id, info.Region.RegionEpoch, message.RemovePeer, peer); err != nil {
		errorResp(h.rd, w, toErrorCode(err))
		return
	}
	// Removing the last local peer destroys the region.
	if after := h.rs.GetRegion(info.Region.Id); after != nil {
		h.rd.JSON(w, http.StatusOK, newRegionInfo(after))
		return
	}
	h.rd.JSON(w, http.StatusOK, nil)
}
