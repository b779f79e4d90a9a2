package search

import (
	"context"
	"sync/atomic"

	"github.com/seekerror/stdlib/pkg/util/contextx"

	"github.com/tinyboard/variantengine/pkg/board"
	"github.com/tinyboard/variantengine/pkg/eval"
	"github.com/tinyboard/variantengine/pkg/variant"
)

// ShallowSearchDepth is the depth of the forward-pruning probe.
const ShallowSearchDepth = 5

// ShallowExecutionDepth is the minimum remaining depth at which the shallow
// prune engages at all.
const ShallowExecutionDepth = 8

// Kernel is a depth-limited, turn-dispatched alpha-beta search: unlike a
// negamax formulation, it branches on Mode and p.ToMove explicitly rather
// than negating the score at every frame.
type Kernel struct {
	Mode variant.Mode
	TT   *Table

	nodes          uint64
	shallowChecks  uint64
	shallowRejects uint64
}

// NewKernel builds a Kernel over the given table.
func NewKernel(mode variant.Mode, tt *Table) *Kernel {
	return &Kernel{Mode: mode, TT: tt}
}

// Stats returns the lifetime node and shallow-prune counters.
func (k *Kernel) Stats() (nodes, shallowChecks, shallowRejects uint64) {
	return atomic.LoadUint64(&k.nodes), atomic.LoadUint64(&k.shallowChecks), atomic.LoadUint64(&k.shallowRejects)
}

// FindBestMove returns the evaluation of p's best move (from White's point
// of view) and that move, searching depth plies.
//
// ctx is checked once per frame (contextx.IsCancelled), not per node: an
// interrupted root call unwinds the recursion quickly without threading a
// cancellation reject sentinel through the alpha-beta bookkeeping.
func (k *Kernel) FindBestMove(ctx context.Context, p *board.Position, alpha, beta eval.Score, depth int) (eval.Score, board.Move) {
	if contextx.IsCancelled(ctx) {
		return eval.Draw, board.Move{}
	}
	atomic.AddUint64(&k.nodes, 1)

	if depth == 0 {
		return k.Mode.Evaluate(p), board.Move{}
	}

	moves := p.LegalMoves(k.Mode.Order)
	if score, over := k.Mode.Terminal(p, len(moves)); over {
		return score, board.Move{}
	}

	var shallowBest eval.Score
	var best board.Move
	bestSet := false
	var bestScore eval.Score

	for i, m := range moves {
		child := p.Apply(m)

		if depth >= ShallowExecutionDepth {
			if i == 0 {
				shallowBest, _ = k.FindBestMove(ctx, &child, eval.AlphaReject, eval.BetaReject, ShallowSearchDepth)
			} else {
				shallowVal, _ := k.FindBestMove(ctx, &child, alpha, beta, ShallowSearchDepth)
				atomic.AddUint64(&k.shallowChecks, 1)

				rejected := false
				if p.ToMove == board.White {
					if shallowVal < alpha && shallowVal <= shallowBest {
						rejected = true
					} else if shallowVal > shallowBest {
						shallowBest = shallowVal
					}
				} else {
					if shallowVal > beta && shallowVal >= shallowBest {
						rejected = true
					} else if shallowVal < shallowBest {
						shallowBest = shallowVal
					}
				}
				if rejected {
					atomic.AddUint64(&k.shallowRejects, 1)
					continue
				}
			}
		}

		key := child.Compress()
		lookup := k.TT.Check(key, depth)

		var score eval.Score
		switch lookup.Status {
		case Hit:
			score = lookup.Score
		case Miss:
			score, _ = k.FindBestMove(ctx, &child, alpha, beta, depth-1)
			if !score.IsReject() {
				k.TT.Store(lookup.Index, key, score, depth)
			}
		default: // Full or InProgress: compute, but there is nowhere to cache.
			score, _ = k.FindBestMove(ctx, &child, alpha, beta, depth-1)
		}

		if !bestSet || better(p.ToMove, score, bestScore) {
			bestScore, best, bestSet = score, m, true
		}

		if p.ToMove == board.White {
			if score >= beta {
				return eval.BetaReject, board.Move{}
			}
			if score > alpha {
				alpha = score
			}
		} else {
			if score <= alpha {
				return eval.AlphaReject, board.Move{}
			}
			if score < beta {
				beta = score
			}
		}
	}

	return eval.IncrementMateDistance(bestScore), best
}

// better reports whether candidate supersedes current as the running best
// for the side to move, using >=/<= (not strict) so that, combined with
// move-order bucketing, the *last* equal-value move wins.
func better(toMove board.Side, candidate, current eval.Score) bool {
	if toMove == board.White {
		return candidate >= current
	}
	return candidate <= current
}
