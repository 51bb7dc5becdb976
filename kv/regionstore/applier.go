package regionstore

import (
	"github.com/pingcap/errors"
	"github.com/talent-plan/txnkv/kv/regionstore/message"
	"github.com/talent-plan/txnkv/kv/regionstore/meta"
	"github.com/talent-plan/txnkv/kv/regionstore/util"
	"github.com/talent-plan/txnkv/kv/storage"
	"github.com/talent-plan/txnkv/kv/util/worker"
	"github.com/talent-plan/txnkv/proto/pkg/metapb"
	"github.com/talent-plan/txnkv/proto/pkg/regionpb"
	"go.uber.org/zap"
)

// applier is the handler of a region loop. Every message of the region, data commands and
// admin commands alike, runs to completion before the next one starts.
type applier struct {
	rs   *RegionStorage
	peer *regionPeer
}

func (a *applier) Start() {
	a.peer.logger.Debug("region loop started")
}

func (a *applier) Stop() {
	a.peer.logger.Debug("region loop stopped")
}

func (a *applier) Handle(t worker.Task) {
	msg := t.(message.Msg)
	regionPendingGauge.Dec()
	cb := callbackOf(msg)
	if !cb.Start() {
		// The sender gave up waiting before the loop reached the message.
		a.peer.logger.Debug("dropped cancelled message", zap.Stringer("type", msg.Type))
		return
	}
	var err error
	switch msg.Type {
	case message.MsgTypeCmd:
		err = a.applyCmd(msg.Data.(*message.MsgCmd))
	case message.MsgTypeSplitRegion:
		split := msg.Data.(*message.MsgSplitRegion)
		err = a.admin(msg.Type, func() error { return a.applySplit(split) })
	case message.MsgTypeChangePeer:
		cp := msg.Data.(*message.MsgChangePeer)
		err = a.admin(msg.Type, func() error { return a.applyChangePeer(cp) })
	case message.MsgTypeTransferLeader:
		tl := msg.Data.(*message.MsgTransferLeader)
		err = a.admin(msg.Type, func() error { return a.applyTransferLeader(tl) })
	default:
		a.peer.logger.Error("unexpected message", zap.Stringer("type", msg.Type))
		return
	}
	a.peer.applied.Inc()
	cb.Done(err)
}

func callbackOf(msg message.Msg) *message.Callback {
	switch data := msg.Data.(type) {
	case *message.MsgCmd:
		return data.Callback
	case *message.MsgSplitRegion:
		return data.Callback
	case *message.MsgChangePeer:
		return data.Callback
	case *message.MsgTransferLeader:
		return data.Callback
	}
	return nil
}

func (a *applier) applyCmd(cmd *message.MsgCmd) error {
	if err := a.peer.checkCmd(cmd.Header, cmd.Keys); err != nil {
		return err
	}
	if cmd.Exec == nil {
		return nil
	}
	engine := a.rs.engine
	reader, err := engine.Reader(cmd.Header)
	if err != nil {
		return err
	}
	// The region is only read by fn; a copy keeps it safe from a later split in this loop.
	modifies, err := cmd.Exec(util.CloneRegion(a.peer.region), reader)
	reader.Close()
	if err != nil || len(modifies) == 0 {
		return err
	}
	return engine.Write(cmd.Header, modifies)
}

func (a *applier) admin(tp message.MsgType, fn func() error) error {
	if a.peer.closed.Load() {
		return &util.ErrRegionNotFound{RegionId: a.peer.region.Id}
	}
	err := fn()
	result := "ok"
	if err != nil {
		result = "error"
		a.peer.logger.Warn("admin command failed", zap.Stringer("type", tp), zap.Error(err))
	}
	regionAdminCounter.WithLabelValues(tp.String(), result).Inc()
	return err
}

func (a *applier) persist(states ...*regionpb.RegionLocalState) error {
	batch := make([]storage.Modify, 0, len(states))
	for _, state := range states {
		m, err := meta.RegionLocalStateModify(state)
		if err != nil {
			return err
		}
		batch = append(batch, m)
	}
	return a.rs.engine.Write(nil, batch)
}

func (a *applier) checkLeader() error {
	if !a.peer.isLeader() {
		return &util.ErrNotLeader{RegionId: a.peer.region.Id, Leader: util.ClonePeer(a.peer.leader)}
	}
	return nil
}

func leaderID(leader *metapb.Peer) uint64 {
	if leader == nil {
		return util.InvalidID
	}
	return leader.Id
}

// applySplit keeps [start, split_key) in the current region and moves [split_key, end) to a
// new region. Both halves get version + 1.
func (a *applier) applySplit(split *message.MsgSplitRegion) error {
	region := a.peer.region
	if err := a.checkLeader(); err != nil {
		return err
	}
	if err := util.CheckRegionEpoch(split.RegionEpoch, region, true, true); err != nil {
		return err
	}
	if len(split.SplitKey) == 0 {
		return errors.New("missing split key")
	}
	if err := util.CheckKeyInRegionExclusive(split.SplitKey, region); err != nil {
		return err
	}
	if len(split.NewPeerIDs) != len(region.Peers) {
		return errors.Errorf("need %d new peer ids, got %d", len(region.Peers), len(split.NewPeerIDs))
	}
	if a.rs.router.get(split.NewRegionID) != nil {
		return errors.Errorf("region %d already exists", split.NewRegionID)
	}

	left := util.CloneRegion(region)
	left.RegionEpoch.Version++
	left.EndKey = util.SafeCopy(split.SplitKey)

	right := util.CloneRegion(region)
	right.Id = split.NewRegionID
	right.RegionEpoch.Version++
	right.StartKey = util.SafeCopy(split.SplitKey)
	var rightLeader *metapb.Peer
	for i, p := range right.Peers {
		p.Id = split.NewPeerIDs[i]
		if p.StoreId == a.peer.leader.StoreId {
			rightLeader = util.ClonePeer(p)
		}
	}

	err := a.persist(
		&regionpb.RegionLocalState{Region: left, LeaderId: leaderID(a.peer.leader)},
		&regionpb.RegionLocalState{Region: right, LeaderId: leaderID(rightLeader)},
	)
	if err != nil {
		return err
	}
	// Register the new half before shrinking this one so key lookups never see a gap.
	a.rs.startPeer(right, rightLeader)
	a.peer.setRegion(left, a.peer.leader)
	a.peer.logger.Info("region split",
		zap.Binary("split_key", split.SplitKey),
		zap.Uint64("new_region_id", right.Id),
		zap.Stringer("epoch", left.RegionEpoch))
	return nil
}

func (a *applier) applyChangePeer(cp *message.MsgChangePeer) error {
	region := a.peer.region
	if err := a.checkLeader(); err != nil {
		return err
	}
	if err := util.CheckRegionEpoch(cp.RegionEpoch, region, false, true); err != nil {
		return err
	}
	if cp.Peer == nil || cp.Peer.Id == util.InvalidID || cp.Peer.StoreId == util.InvalidID {
		return errors.New("invalid peer")
	}

	changed := util.CloneRegion(region)
	changed.RegionEpoch.ConfVer++
	leader := a.peer.leader
	switch cp.ChangeType {
	case message.AddPeer:
		if util.FindPeer(region, cp.Peer.StoreId) != nil {
			return errors.Errorf("store %d already has a peer of region %d", cp.Peer.StoreId, region.Id)
		}
		if util.FindPeerByID(region, cp.Peer.Id) != nil {
			return errors.Errorf("peer %d already exists", cp.Peer.Id)
		}
		changed.Peers = append(changed.Peers, util.ClonePeer(cp.Peer))
	case message.RemovePeer:
		existing := util.FindPeerByID(region, cp.Peer.Id)
		if existing == nil || existing.StoreId != cp.Peer.StoreId {
			return errors.Errorf("peer %v not found in region %d", cp.Peer, region.Id)
		}
		util.RemovePeer(changed, cp.Peer.StoreId)
		if leader != nil && leader.Id == cp.Peer.Id {
			leader = nil
		}
		if cp.Peer.StoreId == a.peer.storeID {
			return a.destroy(changed)
		}
	}

	if err := a.persist(&regionpb.RegionLocalState{Region: changed, LeaderId: leaderID(leader)}); err != nil {
		return err
	}
	a.peer.setRegion(changed, leader)
	a.peer.logger.Info("peer changed",
		zap.Stringer("change", cp.ChangeType),
		zap.Stringer("peer", cp.Peer),
		zap.Stringer("epoch", changed.RegionEpoch))
	return nil
}

// destroy tombstones the region on this store after its local peer was removed. Data in its
// range is left in place.
func (a *applier) destroy(region *metapb.Region) error {
	err := a.persist(&regionpb.RegionLocalState{State: regionpb.PeerState_Tombstone, Region: region})
	if err != nil {
		return err
	}
	a.peer.closed.Store(true)
	a.peer.setRegion(region, nil)
	a.rs.router.unregister(region)
	// Stop from another goroutine, the sender may block while this loop is busy.
	go a.peer.worker.Stop()
	a.peer.logger.Info("region destroyed", zap.Stringer("epoch", region.RegionEpoch))
	return nil
}

// applyTransferLeader moves leadership without an epoch change. It is accepted from any peer
// state so an operator can hand leadership back.
func (a *applier) applyTransferLeader(tl *message.MsgTransferLeader) error {
	region := a.peer.region
	if err := util.CheckRegionEpoch(tl.RegionEpoch, region, true, true); err != nil {
		return err
	}
	if tl.Peer == nil {
		return errors.New("invalid peer")
	}
	target := util.FindPeerByID(region, tl.Peer.Id)
	if target == nil {
		return errors.Errorf("peer %d not found in region %d", tl.Peer.Id, region.Id)
	}
	if a.peer.leader != nil && util.PeerEqual(a.peer.leader, target) {
		return nil
	}
	if err := a.persist(&regionpb.RegionLocalState{Region: region, LeaderId: target.Id}); err != nil {
		return err
	}
	a.peer.setRegion(region, util.ClonePeer(target))
	a.peer.logger.Info("leader transferred", zap.Stringer("leader", target))
	return nil
}
