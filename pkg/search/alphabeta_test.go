package search_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tinyboard/variantengine/pkg/board"
	"github.com/tinyboard/variantengine/pkg/eval"
	"github.com/tinyboard/variantengine/pkg/search"
	"github.com/tinyboard/variantengine/pkg/variant"
)

func TestKernelStartingPosition(t *testing.T) {
	ctx := context.Background()
	tt := search.NewTable(ctx, 9973)
	k := search.NewKernel(variant.ThreeChecks, tt)

	score, move := k.FindBestMove(ctx, refPos(board.StartingPosition()), eval.AlphaReject, eval.BetaReject, 2)
	assert.False(t, score.IsReject())
	assert.NotEqual(t, board.Move{}, move)
}

func TestKernelTerminalAtRoot(t *testing.T) {
	ctx := context.Background()
	tt := search.NewTable(ctx, 9973)
	k := search.NewKernel(variant.ThreeChecks, tt)

	p := board.StartingPosition()
	p.ChecksRemaining[board.Black] = 0

	score, move := k.FindBestMove(ctx, &p, eval.AlphaReject, eval.BetaReject, 4)
	assert.Equal(t, eval.WhiteWins, score)
	assert.Equal(t, board.Move{}, move)
}

func TestKernelSingleCheckCapture(t *testing.T) {
	ctx := context.Background()
	tt := search.NewTable(ctx, 9973)
	k := search.NewKernel(variant.ThreeChecks, tt)

	p := board.Position{
		Kings:           [2]board.Square{board.White: {Row: 5, Col: 0}, board.Black: {Row: 0, Col: 5}},
		ChecksRemaining: [2]int8{3, 3},
		ToMove:          board.White,
		InCheck:         true,
		CheckingSquare:  board.Square{Row: 4, Col: 4},
	}
	p.Knights[board.White] = []board.Square{{Row: 3, Col: 2}}
	p.Knights[board.Black] = []board.Square{{Row: 4, Col: 4}}
	require.True(t, board.KnightAttacks(p.Knights[board.White][0], p.CheckingSquare))

	score, move := k.FindBestMove(ctx, &p, eval.AlphaReject, eval.BetaReject, 1)
	assert.False(t, score.IsReject())
	assert.NotEqual(t, board.Move{}, move)
}

// TestKernelShallowPruneRejectsInferiorSibling exercises the depth>=8
// forward-pruning branch directly: it is otherwise never reached by this
// suite, since every other kernel test runs at depth<=4.
func TestKernelShallowPruneRejectsInferiorSibling(t *testing.T) {
	ctx := context.Background()
	tt := search.NewTable(ctx, 9973)
	k := search.NewKernel(variant.ThreeChecks, tt)

	// White to move: Knight (2,2) captures the undefended Black knight on
	// (0,1) (ev=1, so move generation orders it before every quiet move).
	// Everything else White can play is a quiet move with no comparable
	// material gain, and no recapture or further capture is reachable by
	// either side within the shallow-search horizon.
	p := board.Position{
		Kings:           [2]board.Square{board.White: {Row: 5, Col: 0}, board.Black: {Row: 0, Col: 5}},
		ChecksRemaining: [2]int8{3, 3},
		ToMove:          board.White,
	}
	p.Knights[board.White] = []board.Square{{Row: 2, Col: 2}, {Row: 5, Col: 3}}
	p.Knights[board.Black] = []board.Square{{Row: 0, Col: 1}, {Row: 0, Col: 4}}
	require.True(t, board.KnightAttacks(p.Knights[board.White][0], p.Knights[board.Black][0]))

	// A raised alpha forces every non-capturing sibling's shallow value
	// below the window, so the capture (processed first, per move ordering)
	// sets shallowBest and the remaining quiet siblings get rejected. The
	// returned score itself may legitimately be a reject: with alpha at 90
	// the whole node fails low unless a forced win is found.
	k.FindBestMove(ctx, &p, eval.Score(90), eval.BetaReject, search.ShallowExecutionDepth)

	_, checks, rejects := k.Stats()
	assert.Greater(t, checks, uint64(0), "shallow prune never evaluated a sibling")
	assert.Greater(t, rejects, uint64(0), "shallow prune never rejected a sibling")
}

// TestKernelForcedMateInOne exercises mate-distance propagation end to end
// through the real kernel, not just eval.IncrementMateDistance in isolation:
// a regression in how the decrement is wired into FindBestMove's return
// path would not be caught by score_test.go alone.
func TestKernelForcedMateInOne(t *testing.T) {
	ctx := context.Background()

	// Black to move, king cornered at (0,0): the knight on (2,1) checks it,
	// and (0,1)/(1,0)/(1,1) are all covered (by the White king on (1,2) and
	// the knight on (2,2)), so Black has no knights to interpose/capture
	// with and no king move escapes. Checkmate.
	mated := board.Position{
		Kings:           [2]board.Square{board.White: {Row: 1, Col: 2}, board.Black: {Row: 0, Col: 0}},
		ChecksRemaining: [2]int8{3, 2},
		ToMove:          board.Black,
		InCheck:         true,
		CheckingSquare:  board.Square{Row: 2, Col: 1},
	}
	mated.Knights[board.White] = []board.Square{{Row: 2, Col: 1}, {Row: 2, Col: 2}}
	require.Empty(t, mated.LegalMoves(variant.ThreeChecks.Order))

	tt := search.NewTable(ctx, 9973)
	k := search.NewKernel(variant.ThreeChecks, tt)
	score, move := k.FindBestMove(ctx, &mated, eval.AlphaReject, eval.BetaReject, 1)
	assert.Equal(t, eval.WhiteWins, score)
	assert.Equal(t, board.Move{}, move)

	// One ply earlier: White to move, the knight on (4,2) delivers the same
	// mate by relocating to (2,1). No other legal move gives check, so none
	// of them wins at once: at best it leads to a slower forced win (a
	// magnitude below 119), and the mating move is the unique best reply
	// at either depth.
	parent := board.Position{
		Kings:           [2]board.Square{board.White: {Row: 1, Col: 2}, board.Black: {Row: 0, Col: 0}},
		ChecksRemaining: [2]int8{3, 3},
		ToMove:          board.White,
	}
	parent.Knights[board.White] = []board.Square{{Row: 4, Col: 2}, {Row: 2, Col: 2}}

	for _, depth := range []int{2, 4} {
		tt := search.NewTable(ctx, 9973)
		k := search.NewKernel(variant.ThreeChecks, tt)

		score, move := k.FindBestMove(ctx, &parent, eval.AlphaReject, eval.BetaReject, depth)
		assert.Equal(t, eval.Score(119), score, "depth %d", depth)
		assert.Equal(t, board.Square{Row: 4, Col: 2}, move.Start, "depth %d", depth)
		assert.Equal(t, board.Square{Row: 2, Col: 1}, move.End, "depth %d", depth)
	}
}

func TestKernelAgreesWithMinimax(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping minimax cross-check")
	}

	positions := []board.Position{
		board.StartingPosition(),
	}

	for _, p := range positions {
		ctx := context.Background()
		tt := search.NewTable(ctx, 9973)
		k := search.NewKernel(variant.ThreeChecks, tt)
		m := search.Minimax{Mode: variant.ThreeChecks}

		pos := p
		kernelScore, _ := k.FindBestMove(ctx, &pos, eval.AlphaReject, eval.BetaReject, 3)
		minimaxScore := m.Search(&p, 3)

		assert.Equal(t, minimaxScore, kernelScore)
	}
}

// TestKernelDepthOneMaximizesChildEval pins the depth-1 contract: the
// returned evaluation is the maximum static evaluation over all children,
// each of which stays well below the forced-win band.
func TestKernelDepthOneMaximizesChildEval(t *testing.T) {
	ctx := context.Background()

	p := board.StartingPosition()
	moves := p.LegalMoves(variant.ThreeChecks.Order)
	require.NotEmpty(t, moves)

	var want eval.Score
	for i, m := range moves {
		child := p.Apply(m)
		s := variant.ThreeChecks.Evaluate(&child)
		assert.GreaterOrEqual(t, int(s), -7)
		assert.LessOrEqual(t, int(s), 7)
		if i == 0 || s > want {
			want = s
		}
	}

	tt := search.NewTable(ctx, 9973)
	k := search.NewKernel(variant.ThreeChecks, tt)
	score, _ := k.FindBestMove(ctx, refPos(board.StartingPosition()), eval.AlphaReject, eval.BetaReject, 1)
	assert.Equal(t, want, score)
}

// TestKernelMirrorSymmetry: swapping the sides, flipping the rows and the
// side to move negates the minimax value at every depth.
func TestKernelMirrorSymmetry(t *testing.T) {
	ctx := context.Background()

	p := board.StartingPosition()
	m := mirror(p)

	for _, depth := range []int{1, 2, 3} {
		k1 := search.NewKernel(variant.ThreeChecks, search.NewTable(ctx, 9973))
		k2 := search.NewKernel(variant.ThreeChecks, search.NewTable(ctx, 9973))

		s1, _ := k1.FindBestMove(ctx, &p, eval.AlphaReject, eval.BetaReject, depth)
		s2, _ := k2.FindBestMove(ctx, &m, eval.AlphaReject, eval.BetaReject, depth)
		assert.Equal(t, s1, -s2, "depth %d", depth)
	}
}

func mirror(p board.Position) board.Position {
	flip := func(s board.Square) board.Square {
		return board.Square{Row: board.N - 1 - s.Row, Col: s.Col}
	}

	var q board.Position
	q.Kings[board.White] = flip(p.Kings[board.Black])
	q.Kings[board.Black] = flip(p.Kings[board.White])
	for _, k := range p.Knights[board.Black] {
		q.Knights[board.White] = append(q.Knights[board.White], flip(k))
	}
	for _, k := range p.Knights[board.White] {
		q.Knights[board.Black] = append(q.Knights[board.Black], flip(k))
	}
	q.ChecksRemaining[board.White] = p.ChecksRemaining[board.Black]
	q.ChecksRemaining[board.Black] = p.ChecksRemaining[board.White]
	q.ToMove = p.ToMove.Opponent()
	q.InCheck = p.InCheck
	if p.InCheck {
		q.CheckingSquare = flip(p.CheckingSquare)
	}
	return q
}

// TestKernelTranspositionReuse: searching the same position twice against
// one table hits the cached root children the second time and returns the
// same evaluation.
func TestKernelTranspositionReuse(t *testing.T) {
	ctx := context.Background()
	tt := search.NewTable(ctx, 9973)
	k := search.NewKernel(variant.ThreeChecks, tt)

	p := board.StartingPosition()
	s1, _ := k.FindBestMove(ctx, refPos(p), eval.AlphaReject, eval.BetaReject, 3)
	hitsBefore, _ := tt.Stats()

	s2, _ := k.FindBestMove(ctx, refPos(p), eval.AlphaReject, eval.BetaReject, 3)
	hitsAfter, _ := tt.Stats()

	assert.Equal(t, s1, s2)
	assert.Greater(t, hitsAfter, hitsBefore)
}

func refPos(p board.Position) *board.Position {
	return &p
}
