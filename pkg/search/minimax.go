package search

import (
	"github.com/tinyboard/variantengine/pkg/board"
	"github.com/tinyboard/variantengine/pkg/eval"
	"github.com/tinyboard/variantengine/pkg/variant"
)

// Minimax is the naive, unpruned, uncached reference search used to
// cross-check Kernel in tests. It visits every node in the game tree to the
// given depth.
type Minimax struct {
	Mode variant.Mode
}

// Search returns the minimax evaluation of p to the given depth.
func (m Minimax) Search(p *board.Position, depth int) eval.Score {
	if depth == 0 {
		return m.Mode.Evaluate(p)
	}

	moves := p.LegalMoves(m.Mode.Order)
	if score, over := m.Mode.Terminal(p, len(moves)); over {
		return score
	}

	var best eval.Score
	set := false
	for _, mv := range moves {
		child := p.Apply(mv)
		score := m.Search(&child, depth-1)
		if !set || better(p.ToMove, score, best) {
			best, set = score, true
		}
	}
	return eval.IncrementMateDistance(best)
}
