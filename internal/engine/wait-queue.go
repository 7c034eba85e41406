package engine

import (
	"github.com/kode4food/flagstaff/pkg/api"
	"github.com/kode4food/flagstaff/pkg/util"
)

// WaitQueue holds the suspended chains that are resumed on every tick. It
// is keyed by sprite handle and chain id so that deleting a sprite detaches
// all of its chains at once
type WaitQueue struct {
	chains map[Handle]map[api.BlockID]*Chain
	index  util.Set[*Chain]
}

// NewWaitQueue creates an empty wait queue
func NewWaitQueue() *WaitQueue {
	return &WaitQueue{
		chains: map[Handle]map[api.BlockID]*Chain{},
		index:  util.Set[*Chain]{},
	}
}

// Add queues a chain. Adding a queued chain is a no-op
func (q *WaitQueue) Add(c *Chain) bool {
	if q.index.Contains(c) {
		return false
	}
	byID, ok := q.chains[c.sprite]
	if !ok {
		byID = map[api.BlockID]*Chain{}
		q.chains[c.sprite] = byID
	}
	byID[c.ID()] = c
	q.index.Add(c)
	return true
}

// Remove dequeues a chain
func (q *WaitQueue) Remove(c *Chain) bool {
	if !q.index.Contains(c) {
		return false
	}
	if byID, ok := q.chains[c.sprite]; ok {
		delete(byID, c.ID())
		if len(byID) == 0 {
			delete(q.chains, c.sprite)
		}
	}
	q.index.Remove(c)
	return true
}

// RemoveSprite dequeues every chain of a sprite and returns them
func (q *WaitQueue) RemoveSprite(h Handle) []*Chain {
	byID := q.chains[h]
	delete(q.chains, h)
	res := make([]*Chain, 0, len(byID))
	for _, c := range byID {
		q.index.Remove(c)
		res = append(res, c)
	}
	return res
}

// Contains reports whether a chain is queued
func (q *WaitQueue) Contains(c *Chain) bool {
	return q.index.Contains(c)
}

// Lookup returns the queued chain of a sprite with the given hat id
func (q *WaitQueue) Lookup(h Handle, id api.BlockID) (*Chain, bool) {
	c, ok := q.chains[h][id]
	return c, ok
}

// Len returns the number of queued chains
func (q *WaitQueue) Len() int {
	return q.index.Len()
}

// Chains returns the queued chains in world order, then chain declaration
// order. The result is a snapshot that stays valid while the queue changes
func (q *WaitQueue) Chains(sprites []*Sprite) []*Chain {
	res := make([]*Chain, 0, q.index.Len())
	for _, s := range sprites {
		for _, c := range s.chains {
			if q.index.Contains(c) {
				res = append(res, c)
			}
		}
	}
	return res
}

// Clear dequeues every chain
func (q *WaitQueue) Clear() {
	q.chains = map[Handle]map[api.BlockID]*Chain{}
	q.index = util.Set[*Chain]{}
}
