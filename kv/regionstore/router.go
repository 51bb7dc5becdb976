package regionstore

import (
	"bytes"
	"sync"

	"github.com/google/btree"
	"github.com/talent-plan/txnkv/proto/pkg/metapb"
)

// router maps region ids to their peers and keeps an index of region ranges by start key.
type router struct {
	mu      sync.RWMutex
	regions map[uint64]*regionPeer
	ranges  *btree.BTree
}

type rangeItem struct {
	startKey []byte
	peer     *regionPeer
}

func (r rangeItem) Less(than btree.Item) bool {
	return bytes.Compare(r.startKey, than.(rangeItem).startKey) < 0
}

func newRouter() *router {
	return &router{
		regions: make(map[uint64]*regionPeer),
		ranges:  btree.New(16),
	}
}

func (r *router) get(regionID uint64) *regionPeer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.regions[regionID]
}

func (r *router) register(peer *regionPeer, region *metapb.Region) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.regions[region.Id] = peer
	r.ranges.ReplaceOrInsert(rangeItem{startKey: region.StartKey, peer: peer})
	regionCountGauge.Set(float64(len(r.regions)))
}

func (r *router) unregister(region *metapb.Region) {
	r.mu.Lock()
	defer r.mu.Unlock()
	peer, ok := r.regions[region.Id]
	if !ok {
		return
	}
	delete(r.regions, region.Id)
	item := r.ranges.Get(rangeItem{startKey: region.StartKey})
	if item != nil && item.(rangeItem).peer == peer {
		r.ranges.Delete(item)
	}
	regionCountGauge.Set(float64(len(r.regions)))
}

// lookup returns the peer whose region contains key, or nil.
func (r *router) lookup(key []byte) *regionPeer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var found *regionPeer
	r.ranges.DescendLessOrEqual(rangeItem{startKey: key}, func(i btree.Item) bool {
		found = i.(rangeItem).peer
		return false
	})
	if found == nil {
		return nil
	}
	if end := found.Region().EndKey; len(end) > 0 && bytes.Compare(key, end) >= 0 {
		return nil
	}
	return found
}

func (r *router) all() []*regionPeer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	peers := make([]*regionPeer, 0, r.ranges.Len())
	r.ranges.Ascend(func(i btree.Item) bool {
		peers = append(peers, i.(rangeItem).peer)
		return true
	})
	return peers
}
