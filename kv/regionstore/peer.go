package regionstore

import (
	"fmt"
	"sync"

	"github.com/talent-plan/txnkv/kv/regionstore/util"
	"github.com/talent-plan/txnkv/kv/util/worker"
	"github.com/talent-plan/txnkv/log"
	"github.com/talent-plan/txnkv/proto/pkg/kvrpcpb"
	"github.com/talent-plan/txnkv/proto/pkg/metapb"
	"go.uber.org/atomic"
	"go.uber.org/zap"
)

// regionPeer is this store's replica of one region. region and leader are only changed by the
// region's own loop; other goroutines read copies through Region and Leader.
type regionPeer struct {
	storeID uint64
	tag     string
	logger  *zap.Logger

	mu     sync.RWMutex
	region *metapb.Region
	leader *metapb.Peer

	worker  *worker.Worker
	applied atomic.Uint64
	closed  atomic.Bool
}

func newRegionPeer(storeID uint64, region *metapb.Region, leader *metapb.Peer, queueSize int, wg *sync.WaitGroup) *regionPeer {
	tag := fmt.Sprintf("[region %d]", region.Id)
	return &regionPeer{
		storeID: storeID,
		tag:     tag,
		logger:  log.With(zap.Uint64("region_id", region.Id)),
		region:  region,
		leader:  leader,
		worker:  worker.NewWorkerWithCapacity(tag, queueSize, wg),
	}
}

func (p *regionPeer) Region() *metapb.Region {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return util.CloneRegion(p.region)
}

// Leader returns the current leader, nil when unknown.
func (p *regionPeer) Leader() *metapb.Peer {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return util.ClonePeer(p.leader)
}

func (p *regionPeer) setRegion(region *metapb.Region, leader *metapb.Peer) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.region = region
	p.leader = leader
}

func (p *regionPeer) isLeader() bool {
	return p.leader != nil && p.leader.StoreId == p.storeID
}

// checkCmd validates a data command. Called from the region loop only.
func (p *regionPeer) checkCmd(header *kvrpcpb.Context, keys [][]byte) error {
	if p.closed.Load() {
		return &util.ErrRegionNotFound{RegionId: p.region.Id}
	}
	// A request names the peer it was routed to, and that peer must be the leader on this store.
	if !p.isLeader() || header.GetPeer() == nil || header.GetPeer().Id != p.leader.Id {
		return &util.ErrNotLeader{RegionId: p.region.Id, Leader: util.ClonePeer(p.leader)}
	}
	if err := util.CheckRegionEpoch(header.GetRegionEpoch(), p.region, true, true); err != nil {
		return err
	}
	for _, key := range keys {
		if err := util.CheckKeyInRegion(key, p.region); err != nil {
			return err
		}
	}
	return nil
}
