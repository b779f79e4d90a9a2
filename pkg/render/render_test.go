package render_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tinyboard/variantengine/pkg/board"
	"github.com/tinyboard/variantengine/pkg/eval"
	"github.com/tinyboard/variantengine/pkg/render"
)

func TestBoardRendersStartingPosition(t *testing.T) {
	p := board.StartingPosition()
	out := render.Board(&p)

	assert.Equal(t, 1, strings.Count(out, "♔"))
	assert.Equal(t, 1, strings.Count(out, "♚"))
	assert.Equal(t, board.K, strings.Count(out, "♘"))
	assert.Equal(t, board.K, strings.Count(out, "♞"))
}

func TestMoveRendering(t *testing.T) {
	m := board.Move{Start: board.Square{Row: 5, Col: 2}, End: board.Square{Row: 3, Col: 3}, Type: board.KnightMove}

	assert.Equal(t, "c1-d3", render.Move(m, true))
	assert.Equal(t, "5233", render.Move(m, false))
}

func TestRootEvaluationRendersMateDistance(t *testing.T) {
	m := board.Move{Start: board.Square{Row: 5, Col: 0}, End: board.Square{Row: 4, Col: 0}, Type: board.KingMove}
	out := render.RootEvaluation(m, eval.Score(119), true)

	assert.Contains(t, out, "#1")
	assert.Contains(t, out, "a1-a2")
}
