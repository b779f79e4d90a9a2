package search

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/seekerror/logw"

	"github.com/tinyboard/variantengine/pkg/board"
	"github.com/tinyboard/variantengine/pkg/eval"
)

// HashDepth is the bounded linear-probe length: a key is searched or evicted
// within this many consecutive slots from its home hash.
const HashDepth = 5

// maxDepthSentinel is larger than any depth the kernel will ever request, so
// an empty slot is always a valid eviction candidate.
const maxDepthSentinel = 1 << 30

// slotStatus is the tri-state a table slot can be in.
type slotStatus uint8

const (
	empty slotStatus = iota
	reserved
	resolved
)

type slot struct {
	key    board.Key
	score  eval.Score
	depth  int
	status slotStatus
}

// LookupStatus is the outcome of Table.Check.
type LookupStatus uint8

const (
	Hit LookupStatus = iota
	Miss
	Full
	InProgress
)

// Lookup is the result of Table.Check: a reusable cached Score on Hit, a
// reserved slot index to fill via Store on Miss, InProgress when another
// worker has reserved this very key and not yet stored it, or Full when
// every probed slot is reserved. InProgress and Full both tell the caller
// to compute without caching.
type Lookup struct {
	Status LookupStatus
	Score  eval.Score
	Index  int
}

// Table is the lock-striped, open-addressing transposition table. It is a
// hint, not a source of truth: Full and InProgress force the caller to
// recompute without caching, so no race can corrupt a result.
type Table struct {
	mu    []sync.Mutex
	slots []slot
	size  int

	used      int64
	hashHit   uint64
	hashCheck uint64
}

// NewTable allocates a table with a prime number of slots at most size.
func NewTable(ctx context.Context, size int) *Table {
	m := NextPrimeAtMost(size)
	logw.Infof(ctx, "Allocating transposition table with %v slots", m)
	return &Table{
		mu:    make([]sync.Mutex, m),
		slots: make([]slot, m),
		size:  m,
	}
}

func (t *Table) hash(key board.Key) int {
	m := uint64(t.size)
	kw := uint64(key.White) % m
	kb := uint64(key.Black) % m
	h := (kw * kb % m) * uint64(key.Flags) % m
	return int(h)
}

// Check scans the HashDepth-long probe window from key's home slot, locking
// each slot in increasing order, and returns Hit, Miss, InProgress or Full.
// Every held lock is released before Check returns.
func (t *Table) Check(key board.Key, depth int) Lookup {
	atomic.AddUint64(&t.hashCheck, 1)

	home := t.hash(key)
	locked := make([]int, 0, HashDepth)
	unlockAll := func() {
		for _, idx := range locked {
			t.mu[idx].Unlock()
		}
	}

	worstIdx := -1
	worstDepth := maxDepthSentinel
	pending := false

	for i := 0; i < HashDepth; i++ {
		idx := (home + i) % t.size
		t.mu[idx].Lock()
		locked = append(locked, idx)

		s := &t.slots[idx]
		if s.status == reserved {
			if s.key == key {
				pending = true
			}
			continue
		}
		if s.depth < worstDepth {
			worstDepth = s.depth
			worstIdx = idx
		}
		if s.status == resolved && s.key == key && s.depth >= depth {
			score := s.score
			unlockAll()
			atomic.AddUint64(&t.hashHit, 1)
			return Lookup{Status: Hit, Score: score}
		}
	}

	if pending {
		// Another worker is computing this key; reserving a second slot for
		// it would just duplicate the entry once both store.
		unlockAll()
		return Lookup{Status: InProgress}
	}

	if worstIdx >= 0 {
		if t.slots[worstIdx].status == empty {
			atomic.AddInt64(&t.used, 1)
		}
		t.slots[worstIdx].status = reserved
		t.slots[worstIdx].key = key
		unlockAll()
		return Lookup{Status: Miss, Index: worstIdx}
	}

	unlockAll()
	return Lookup{Status: Full}
}

// Store fills a slot reserved by a prior Miss with a resolved evaluation.
func (t *Table) Store(index int, key board.Key, score eval.Score, depth int) {
	t.mu[index].Lock()
	t.slots[index] = slot{key: key, score: score, depth: depth, status: resolved}
	t.mu[index].Unlock()
}

// Size returns the number of slots in the table.
func (t *Table) Size() int {
	return t.size
}

// Used returns the slot utilization as a fraction [0;1].
func (t *Table) Used() float64 {
	return float64(atomic.LoadInt64(&t.used)) / float64(t.size)
}

// Stats returns the lifetime hit and check counters.
func (t *Table) Stats() (hit, check uint64) {
	return atomic.LoadUint64(&t.hashHit), atomic.LoadUint64(&t.hashCheck)
}

func (t *Table) String() string {
	hit, check := t.Stats()
	return fmt.Sprintf("TT[%v slots @ %v%% used, %v/%v hits]", t.size, int(100*t.Used()), hit, check)
}
