// Package driver implements the root parallel search: it fans the root
// moves of a position out across a bounded worker pool and collects their
// evaluations.
package driver

import (
	"context"
	"fmt"
	"math/rand"
	"sync"

	"golang.org/x/sync/semaphore"

	"github.com/seekerror/logw"

	"github.com/tinyboard/variantengine/pkg/board"
	"github.com/tinyboard/variantengine/pkg/eval"
	"github.com/tinyboard/variantengine/pkg/search"
	"github.com/tinyboard/variantengine/pkg/variant"
)

// Options configure a Driver, parsed from the engine's CLI flag surface.
type Options struct {
	// Threads is the number of root workers running concurrently (1..64).
	Threads int
	// Depth is the start search depth (1..12).
	Depth int
	// HashSize is the requested transposition table size, rounded down to a
	// prime (1..10^6).
	HashSize int
	// Mode selects the active variant.
	Mode variant.Mode
	// Verbose enables per-root-move evaluation logging.
	Verbose bool
}

// DefaultOptions returns the defaults: 8 threads, depth 9, a ~100k-slot
// hash table, Three-Checks.
func DefaultOptions() Options {
	return Options{
		Threads:  8,
		Depth:    9,
		HashSize: 99991,
		Mode:     variant.ThreeChecks,
	}
}

// Driver owns the transposition table and search kernel for one game and
// fans root moves out across a semaphore-bounded worker pool.
type Driver struct {
	opts   Options
	tt     *search.Table
	kernel *search.Kernel
}

// New allocates a Driver with a freshly sized transposition table.
func New(ctx context.Context, opts Options) *Driver {
	tt := search.NewTable(ctx, opts.HashSize)
	return &Driver{
		opts:   opts,
		tt:     tt,
		kernel: search.NewKernel(opts.Mode, tt),
	}
}

// Reset discards the transposition table and allocates a fresh one. The
// engine carries no cross-turn memory: every new position to analyze starts
// from an empty table.
func (d *Driver) Reset(ctx context.Context) {
	d.tt = search.NewTable(ctx, d.opts.HashSize)
	d.kernel = search.NewKernel(d.opts.Mode, d.tt)
}

// SetDepth updates the start depth used by subsequent FindBestMove calls.
func (d *Driver) SetDepth(depth int) {
	d.opts.Depth = depth
}

// SetThreads updates the root worker-pool size used by subsequent
// FindBestMove calls.
func (d *Driver) SetThreads(n int) {
	d.opts.Threads = n
}

// Stats returns the table and kernel counters for diagnostics/logging.
func (d *Driver) Stats() (hashHit, hashCheck, nodes, shallowChecks, shallowRejects uint64) {
	hashHit, hashCheck = d.tt.Stats()
	nodes, shallowChecks, shallowRejects = d.kernel.Stats()
	return
}

// RootEvaluation pairs a root move with its searched evaluation.
type RootEvaluation struct {
	Move  board.Move
	Score eval.Score
}

// FindBestMove computes the best root move from p: enumerate root moves,
// bound concurrency with a counting semaphore sized to opts.Threads, launch
// one worker per move writing to a disjoint result slot, then pick
// uniformly at random among the moves tied for the extremum evaluation.
func (d *Driver) FindBestMove(ctx context.Context, p *board.Position) (RootEvaluation, []RootEvaluation, error) {
	moves := p.LegalMoves(d.opts.Mode.Order)
	if score, over := d.opts.Mode.Terminal(p, len(moves)); over {
		return RootEvaluation{Score: score}, nil, fmt.Errorf("position is already terminal: %v", score)
	}

	results := make([]eval.Score, len(moves))
	sem := semaphore.NewWeighted(int64(d.opts.Threads))

	var wg sync.WaitGroup
	for i, m := range moves {
		if err := sem.Acquire(ctx, 1); err != nil {
			wg.Wait()
			return RootEvaluation{}, nil, err
		}

		wg.Add(1)
		go func(i int, m board.Move) {
			defer wg.Done()
			defer sem.Release(1)

			child := p.Apply(m)
			score, _ := d.kernel.FindBestMove(ctx, &child, eval.AlphaReject, eval.BetaReject, d.opts.Depth)
			results[i] = score

			if d.opts.Verbose {
				logw.Infof(ctx, "root %v: %v", m, score)
			}
		}(i, m)
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return RootEvaluation{}, nil, err
	}

	all := make([]RootEvaluation, len(moves))
	for i, m := range moves {
		all[i] = RootEvaluation{Move: m, Score: results[i]}
	}

	extremum := results[0]
	for _, s := range results[1:] {
		if (p.ToMove == board.White && s > extremum) || (p.ToMove == board.Black && s < extremum) {
			extremum = s
		}
	}

	var tied []int
	for i, s := range results {
		if s == extremum {
			tied = append(tied, i)
		}
	}
	choice := tied[rand.Intn(len(tied))]

	return RootEvaluation{Move: moves[choice], Score: extremum}, all, nil
}
