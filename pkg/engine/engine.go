package engine

import (
	"context"
	"fmt"
	"sync"

	"github.com/seekerror/build"
	"github.com/seekerror/logw"
	"github.com/seekerror/stdlib/pkg/lang"

	"github.com/tinyboard/variantengine/pkg/board"
	"github.com/tinyboard/variantengine/pkg/driver"
	"github.com/tinyboard/variantengine/pkg/eval"
	"github.com/tinyboard/variantengine/pkg/variant"
)

var version = build.NewVersion(0, 1, 0)

// Engine wraps one game's driver and current position behind a mutex,
// logging on every state transition. There is no background analysis to
// halt: every FindBestMove call runs to completion synchronously.
type Engine struct {
	mu sync.Mutex

	opts driver.Options
	p    board.Position
	d    *driver.Driver
}

// New creates an engine in the starting position under opts.
func New(ctx context.Context, opts driver.Options) *Engine {
	e := &Engine{opts: opts}
	e.Reset(ctx, lang.Optional[variant.Mode]{})

	logw.Infof(ctx, "Initialized %v, options=%v", e.Name(), opts)
	return e
}

// Name returns the engine name and version.
func (e *Engine) Name() string {
	return fmt.Sprintf("variantengine %v", version)
}

func (e *Engine) Options() driver.Options {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.opts
}

func (e *Engine) SetDepth(depth int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Depth = depth
	e.d.SetDepth(depth)
}

func (e *Engine) SetThreads(n int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.Threads = n
	e.d.SetThreads(n)
}

func (e *Engine) SetHashSize(size int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.opts.HashSize = size
	e.d = driver.New(context.Background(), e.opts)
}

func (e *Engine) setModeLocked(mode lang.Optional[variant.Mode]) {
	if v, ok := mode.V(); ok {
		e.opts.Mode = v
	}
}

// Position returns a copy of the current position.
func (e *Engine) Position() board.Position {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.p
}

// Reset starts a new game in the starting position, optionally switching
// variant first. The table carries no memory across resets.
func (e *Engine) Reset(ctx context.Context, mode lang.Optional[variant.Mode]) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.setModeLocked(mode)
	logw.Infof(ctx, "Reset: mode=%v, depth=%v, hash=%v, threads=%v", e.opts.Mode, e.opts.Depth, e.opts.HashSize, e.opts.Threads)

	e.p = board.StartingPosition()
	e.d = driver.New(ctx, e.opts)
}

// Move applies a user-supplied move string, validating it against the
// current position's legal moves.
func (e *Engine) Move(ctx context.Context, move string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	start, end, err := board.ParseUserMove(move)
	if err != nil {
		return fmt.Errorf("invalid move: %w", err)
	}

	for _, m := range e.p.LegalMoves(e.opts.Mode.Order) {
		if m.Start == start && m.End == end {
			e.p = e.p.Apply(m)
			logw.Infof(ctx, "Move %v: %v", m, e.p.String())
			return nil
		}
	}
	return fmt.Errorf("illegal move: %v-%v", start, end)
}

// FindBestMove searches the current position and applies the resulting
// move, returning the move played and its evaluation.
func (e *Engine) FindBestMove(ctx context.Context) (driver.RootEvaluation, []driver.RootEvaluation, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	// No cross-turn memory: every response starts from an empty table and
	// fresh counters. The previous turn's stats stay readable until here.
	e.d.Reset(ctx)

	best, all, err := e.d.FindBestMove(ctx, &e.p)
	if err != nil {
		return driver.RootEvaluation{}, nil, err
	}

	e.p = e.p.Apply(best.Move)
	logw.Infof(ctx, "FindBestMove %v: %v", best.Move, e.p.String())
	return best, all, nil
}

// Stats returns the driver's table and kernel counters for diagnostics.
func (e *Engine) Stats() (hashHit, hashCheck, nodes, shallowChecks, shallowRejects uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.d.Stats()
}

// Terminal reports whether the current position has already ended the game.
func (e *Engine) Terminal() (eval.Score, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	moves := e.p.LegalMoves(e.opts.Mode.Order)
	return e.opts.Mode.Terminal(&e.p, len(moves))
}

// Mode returns the active variant.
func (e *Engine) Mode() variant.Mode {
	e.mu.Lock()
	defer e.mu.Unlock()

	return e.opts.Mode
}
