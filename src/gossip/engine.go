package gossip

import (
	"math/rand"

	"github.com/ecoblock/ecoblock/src/tangle"
	"github.com/sirupsen/logrus"
)

// DefaultQueueSize is the number of blocks an Engine holds before it starts
// dropping the oldest ones.
const DefaultQueueSize = 1024

// noCopy may be embedded into structs which must not be copied after the first
// use. go vet's copylocks checker reports violations.
type noCopy struct{}

func (*noCopy) Lock()   {}
func (*noCopy) Unlock() {}

// Engine is a bounded FIFO of blocks awaiting propagation, plus the record of
// block ids it has already accepted so that a block is gossiped only once.
type Engine struct {
	noCopy noCopy

	queue    []*tangle.Block
	capacity int
	seen     map[string]struct{}
	last     string
	dropped  int

	logger *logrus.Entry
}

// NewEngine creates an Engine holding at most capacity pending blocks. A
// non-positive capacity selects DefaultQueueSize.
func NewEngine(capacity int, logger *logrus.Entry) *Engine {
	if capacity <= 0 {
		capacity = DefaultQueueSize
	}

	if logger == nil {
		logger = logrus.NewEntry(logrus.New())
	}

	return &Engine{
		capacity: capacity,
		seen:     make(map[string]struct{}),
		logger:   logger,
	}
}

// Propagate schedules a block for dissemination. It returns false if the block
// was already scheduled once. When the queue is full the oldest pending block
// is dropped.
func (e *Engine) Propagate(block *tangle.Block) bool {
	id := block.Hex()

	if _, ok := e.seen[id]; ok {
		return false
	}
	e.seen[id] = struct{}{}

	if len(e.queue) >= e.capacity {
		e.logger.WithField("block", e.queue[0].Hex()).Warn("Gossip queue full, dropping oldest block")
		e.queue[0] = nil
		e.queue = e.queue[1:]
		e.dropped++
	}

	e.queue = append(e.queue, block)

	e.logger.WithFields(logrus.Fields{
		"block":   id,
		"pending": len(e.queue),
	}).Debug("Scheduled block for gossip")

	return true
}

// Pending returns the number of blocks waiting to be propagated.
func (e *Engine) Pending() int {
	return len(e.queue)
}

// Dropped returns the number of blocks evicted from a full queue.
func (e *Engine) Dropped() int {
	return e.dropped
}

// Seen reports whether a block id was ever passed to Propagate.
func (e *Engine) Seen(id string) bool {
	_, ok := e.seen[id]
	return ok
}

// Drain removes and returns up to max pending blocks, oldest first. A
// non-positive max drains the whole queue.
func (e *Engine) Drain(max int) []*tangle.Block {
	if max <= 0 || max > len(e.queue) {
		max = len(e.queue)
	}

	batch := make([]*tangle.Block, max)
	copy(batch, e.queue[:max])

	rest := make([]*tangle.Block, len(e.queue)-max)
	copy(rest, e.queue[max:])
	e.queue = rest

	return batch
}

// SelectTargets picks up to n distinct peers from candidates, in random order.
// The peer chosen first by the previous call is avoided when there are enough
// other candidates, so consecutive rounds do not start with the same peer.
func (e *Engine) SelectTargets(candidates []string, n int) []string {
	selectable := dedupe(candidates)

	if len(selectable) == 0 || n <= 0 {
		return []string{}
	}

	if len(selectable) > n {
		selectable = exclude(selectable, e.last)
	}

	rand.Shuffle(len(selectable), func(i, j int) {
		selectable[i], selectable[j] = selectable[j], selectable[i]
	})

	if n > len(selectable) {
		n = len(selectable)
	}

	targets := selectable[:n]
	e.last = targets[0]

	return targets
}

func dedupe(ids []string) []string {
	res := make([]string, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		res = append(res, id)
	}
	return res
}

func exclude(ids []string, id string) []string {
	res := make([]string, 0, len(ids))
	for _, i := range ids {
		if i != id {
			res = append(res, i)
		}
	}
	return res
}
