// Package regionstore serves the regions of one store. Each region owns a loop that applies
// its commands one at a time; validation of the routing context and the command itself run in
// the same loop turn, so an epoch or leader change can never fall between the two.
package regionstore

import (
	"sync"
	"time"

	"github.com/pingcap/errors"
	"github.com/talent-plan/txnkv/kv/config"
	"github.com/talent-plan/txnkv/kv/regionstore/message"
	"github.com/talent-plan/txnkv/kv/regionstore/meta"
	"github.com/talent-plan/txnkv/kv/regionstore/util"
	"github.com/talent-plan/txnkv/kv/storage"
	"github.com/talent-plan/txnkv/kv/util/codec"
	"github.com/talent-plan/txnkv/kv/util/engine_util"
	"github.com/talent-plan/txnkv/log"
	"github.com/talent-plan/txnkv/proto/pkg/kvrpcpb"
	"github.com/talent-plan/txnkv/proto/pkg/metapb"
	"github.com/talent-plan/txnkv/proto/pkg/regionpb"
	"go.uber.org/atomic"
)

const (
	InitEpochVer     uint64 = 1
	InitEpochConfVer uint64 = 1
)

// RegionStorage is a storage.Executor which fences every command by the region directory of
// this store before handing it to the wrapped engine.
type RegionStorage struct {
	engine  storage.Storage
	storeID uint64
	conf    *config.RegionConfig

	router *router
	wg     sync.WaitGroup
	closed atomic.Bool

	idMu sync.Mutex
}

func NewRegionStorage(engine storage.Storage, conf *config.Config) *RegionStorage {
	return &RegionStorage{
		engine:  engine,
		storeID: conf.StoreID,
		conf:    &conf.Region,
		router:  newRouter(),
	}
}

func (rs *RegionStorage) StoreID() uint64 {
	return rs.storeID
}

// Engine returns the wrapped storage.
func (rs *RegionStorage) Engine() storage.Storage {
	return rs.engine
}

// Start opens the engine, bootstraps the store when it is empty and starts one loop per region.
func (rs *RegionStorage) Start() error {
	if err := rs.engine.Start(); err != nil {
		return err
	}
	states, err := rs.loadOrBootstrap()
	if err != nil {
		rs.engine.Stop()
		return err
	}
	for _, state := range states {
		if state.State == regionpb.PeerState_Tombstone {
			continue
		}
		var leader *metapb.Peer
		if state.LeaderId != util.InvalidID {
			leader = util.ClonePeer(util.FindPeerByID(state.Region, state.LeaderId))
		}
		rs.startPeer(state.Region, leader)
	}
	log.Infof("store %d started with %d regions", rs.storeID, len(rs.router.all()))
	return nil
}

func (rs *RegionStorage) loadOrBootstrap() ([]*regionpb.RegionLocalState, error) {
	reader, err := rs.engine.Reader(nil)
	if err != nil {
		return nil, err
	}
	ident, err := meta.GetStoreIdent(reader)
	if err != nil {
		reader.Close()
		return nil, err
	}
	states, err := meta.LoadRegionLocalStates(reader)
	reader.Close()
	if err != nil {
		return nil, err
	}

	if ident != nil {
		if ident.StoreId != rs.storeID {
			return nil, errors.Errorf("store id mismatch, data belongs to store %d, configured %d", ident.StoreId, rs.storeID)
		}
		return states, nil
	}
	if len(states) != 0 {
		return nil, errors.New("found region state without store ident")
	}

	peer := &metapb.Peer{Id: rs.conf.BootstrapPeerID, StoreId: rs.storeID}
	state := &regionpb.RegionLocalState{
		Region: &metapb.Region{
			Id:          rs.conf.BootstrapRegionID,
			RegionEpoch: &metapb.RegionEpoch{ConfVer: InitEpochConfVer, Version: InitEpochVer},
			Peers:       []*metapb.Peer{peer},
		},
		LeaderId: peer.Id,
	}
	identModify, err := meta.StoreIdentModify(&regionpb.StoreIdent{StoreId: rs.storeID})
	if err != nil {
		return nil, err
	}
	stateModify, err := meta.RegionLocalStateModify(state)
	if err != nil {
		return nil, err
	}
	lastID := state.Region.Id
	if peer.Id > lastID {
		lastID = peer.Id
	}
	batch := []storage.Modify{identModify, stateModify, meta.LastIDModify(lastID)}
	if err := rs.engine.Write(nil, batch); err != nil {
		return nil, err
	}
	log.Infof("bootstrapped store %d with region %v", rs.storeID, state.Region)
	return []*regionpb.RegionLocalState{state}, nil
}

func (rs *RegionStorage) startPeer(region *metapb.Region, leader *metapb.Peer) {
	peer := newRegionPeer(rs.storeID, region, leader, rs.conf.ApplyQueueSize, &rs.wg)
	rs.router.register(peer, region)
	peer.worker.Start(&applier{rs: rs, peer: peer})
}

// Stop stops every region loop, then the engine.
func (rs *RegionStorage) Stop() error {
	if rs.closed.Swap(true) {
		return nil
	}
	for _, peer := range rs.router.all() {
		peer.closed.Store(true)
		peer.worker.Stop()
	}
	rs.wg.Wait()
	return rs.engine.Stop()
}

// Exec runs fn in the loop of ctx's region after the context and keys passed validation.
func (rs *RegionStorage) Exec(ctx *kvrpcpb.Context, keys [][]byte, fn storage.ExecFunc) error {
	cmd := &message.MsgCmd{Header: ctx, Keys: keys, Exec: fn, Callback: message.NewCallback()}
	return wrapRegionError(rs.propose(ctx, ctx.GetRegionId(), message.MsgTypeCmd, cmd, cmd.Callback))
}

// Reader validates ctx through the region loop, then opens a snapshot of the engine. Commands
// needing the check and the read in one step use Exec instead.
func (rs *RegionStorage) Reader(ctx *kvrpcpb.Context) (storage.StorageReader, error) {
	cmd := &message.MsgCmd{Header: ctx, Callback: message.NewCallback()}
	if err := rs.propose(ctx, ctx.GetRegionId(), message.MsgTypeCmd, cmd, cmd.Callback); err != nil {
		return nil, wrapRegionError(err)
	}
	return rs.engine.Reader(ctx)
}

// Write validates ctx and the keys of batch, then applies batch in the region loop.
func (rs *RegionStorage) Write(ctx *kvrpcpb.Context, batch []storage.Modify) error {
	keys := make([][]byte, 0, len(batch))
	for i := range batch {
		key, err := userKey(&batch[i])
		if err != nil {
			return err
		}
		keys = append(keys, key)
	}
	return rs.Exec(ctx, keys, func(_ *metapb.Region, _ storage.StorageReader) ([]storage.Modify, error) {
		return batch, nil
	})
}

// userKey returns the key a modification is routed by; versioned column families carry an
// encoded key with a timestamp suffix.
func userKey(m *storage.Modify) ([]byte, error) {
	switch m.Cf() {
	case engine_util.CfDefault, engine_util.CfWrite:
		key, _, err := codec.DecodeKey(m.Key())
		return key, err
	case engine_util.CfMeta:
		return nil, errors.New("meta column family is not writable through regions")
	}
	return m.Key(), nil
}

func (rs *RegionStorage) propose(ctx *kvrpcpb.Context, regionID uint64, tp message.MsgType, data interface{}, cb *message.Callback) error {
	start := time.Now()
	err := rs.send(ctx, regionID, tp, data, cb)
	regionCmdDuration.WithLabelValues(tp.String()).Observe(time.Since(start).Seconds())
	if err != nil && util.IsRegionError(err) {
		regionErrorCounter.WithLabelValues(regionErrorType(err)).Inc()
	}
	return err
}

func (rs *RegionStorage) send(ctx *kvrpcpb.Context, regionID uint64, tp message.MsgType, data interface{}, cb *message.Callback) error {
	if peer := ctx.GetPeer(); peer != nil && peer.StoreId != rs.storeID {
		return &util.ErrStoreNotMatch{RequestStoreId: peer.StoreId, ActualStoreId: rs.storeID}
	}
	if rs.closed.Load() {
		return &util.ErrStaleCommand{}
	}
	peer := rs.router.get(regionID)
	if peer == nil {
		return &util.ErrRegionNotFound{RegionId: regionID}
	}
	timeout := rs.conf.RequestTimeout.Duration
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	start := time.Now()
	select {
	case peer.worker.Sender() <- message.NewPeerMsg(tp, regionID, data):
		regionPendingGauge.Inc()
	case <-timer.C:
		return &util.ErrTimeout{RegionId: regionID}
	}
	done, err := cb.WaitRespWithTimeout(timeout - time.Since(start))
	if done {
		return err
	}
	if cb.Cancel() {
		return &util.ErrTimeout{RegionId: regionID}
	}
	// The loop started the message before it could be withdrawn. Its outcome is the answer.
	return cb.WaitResp()
}

func wrapRegionError(err error) error {
	if err != nil && util.IsRegionError(err) {
		return &storage.RegionError{RequestErr: util.RegionErrToPbError(err)}
	}
	return err
}

func regionErrorType(err error) string {
	switch errors.Cause(err).(type) {
	case *util.ErrNotLeader:
		return "not_leader"
	case *util.ErrRegionNotFound:
		return "region_not_found"
	case *util.ErrKeyNotInRegion:
		return "key_not_in_region"
	case *util.ErrEpochNotMatch:
		return "epoch_not_match"
	case *util.ErrStoreNotMatch:
		return "store_not_match"
	case *util.ErrTimeout:
		return "timeout"
	}
	return "stale_command"
}

// RegionInfo is a copy of a region's state as seen by this store.
type RegionInfo struct {
	Region  *metapb.Region
	Leader  *metapb.Peer
	Applied uint64
	Pending int
}

func (rs *RegionStorage) regionInfo(peer *regionPeer) *RegionInfo {
	return &RegionInfo{
		Region:  peer.Region(),
		Leader:  peer.Leader(),
		Applied: peer.applied.Load(),
		Pending: peer.worker.Len(),
	}
}

// Regions lists the regions of this store ordered by start key.
func (rs *RegionStorage) Regions() []*RegionInfo {
	peers := rs.router.all()
	infos := make([]*RegionInfo, 0, len(peers))
	for _, peer := range peers {
		infos = append(infos, rs.regionInfo(peer))
	}
	return infos
}

// GetRegion returns nil when the region is not on this store.
func (rs *RegionStorage) GetRegion(regionID uint64) *RegionInfo {
	peer := rs.router.get(regionID)
	if peer == nil {
		return nil
	}
	return rs.regionInfo(peer)
}

// RegionForKey returns the region containing key, or nil.
func (rs *RegionStorage) RegionForKey(key []byte) *RegionInfo {
	peer := rs.router.lookup(key)
	if peer == nil {
		return nil
	}
	return rs.regionInfo(peer)
}

// AllocID returns a new id for regions and peers, unique within this store.
func (rs *RegionStorage) AllocID() (uint64, error) {
	rs.idMu.Lock()
	defer rs.idMu.Unlock()
	reader, err := rs.engine.Reader(nil)
	if err != nil {
		return 0, err
	}
	last, err := meta.GetLastID(reader)
	reader.Close()
	if err != nil {
		return 0, err
	}
	id := last + 1
	if err := rs.engine.Write(nil, []storage.Modify{meta.LastIDModify(id)}); err != nil {
		return 0, err
	}
	return id, nil
}

func (rs *RegionStorage) admin(regionID uint64, tp message.MsgType, data interface{}, cb *message.Callback) error {
	return rs.propose(nil, regionID, tp, data, cb)
}

// SplitRegion splits a region at splitKey. The new region takes [splitKey, end) and gets
// freshly allocated region and peer ids.
func (rs *RegionStorage) SplitRegion(regionID uint64, epoch *metapb.RegionEpoch, splitKey []byte) (*RegionInfo, *RegionInfo, error) {
	current := rs.router.get(regionID)
	if current == nil {
		return nil, nil, &util.ErrRegionNotFound{RegionId: regionID}
	}
	newRegionID, err := rs.AllocID()
	if err != nil {
		return nil, nil, err
	}
	peers := current.Region().Peers
	newPeerIDs := make([]uint64, 0, len(peers))
	for range peers {
		id, err := rs.AllocID()
		if err != nil {
			return nil, nil, err
		}
		newPeerIDs = append(newPeerIDs, id)
	}
	msg := &message.MsgSplitRegion{
		RegionEpoch: epoch,
		SplitKey:    splitKey,
		NewRegionID: newRegionID,
		NewPeerIDs:  newPeerIDs,
		Callback:    message.NewCallback(),
	}
	if err := rs.admin(regionID, message.MsgTypeSplitRegion, msg, msg.Callback); err != nil {
		return nil, nil, err
	}
	left, right := rs.GetRegion(regionID), rs.GetRegion(newRegionID)
	if left == nil || right == nil {
		return nil, nil, &util.ErrStaleCommand{}
	}
	return left, right, nil
}

func (rs *RegionStorage) ChangePeer(regionID uint64, epoch *metapb.RegionEpoch, tp message.ChangePeerType, peer *metapb.Peer) error {
	msg := &message.MsgChangePeer{RegionEpoch: epoch, ChangeType: tp, Peer: peer, Callback: message.NewCallback()}
	return rs.admin(regionID, message.MsgTypeChangePeer, msg, msg.Callback)
}

func (rs *RegionStorage) TransferLeader(regionID uint64, epoch *metapb.RegionEpoch, peer *metapb.Peer) error {
	msg := &message.MsgTransferLeader{RegionEpoch: epoch, Peer: peer, Callback: message.NewCallback()}
	return rs.admin(regionID, message.MsgTypeTransferLeader, msg, msg.Callback)
}
