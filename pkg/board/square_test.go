package board_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/tinyboard/variantengine/pkg/board"
)

func TestSquareString(t *testing.T) {
	assert.Equal(t, "a6", board.Square{Row: 0, Col: 0}.String())
	assert.Equal(t, "f1", board.Square{Row: 5, Col: 5}.String())
	assert.Equal(t, "c3", board.Square{Row: 3, Col: 2}.String())
}

func TestParseSquareRoundTrips(t *testing.T) {
	for _, s := range []string{"a6", "f1", "c3", "a1", "f6"} {
		sq, err := board.ParseSquare(s)
		assert.NoError(t, err)
		assert.Equal(t, s, sq.String())
	}
}

func TestParseSquareRejectsOutOfBounds(t *testing.T) {
	_, err := board.ParseSquare("g1")
	assert.Error(t, err)

	_, err = board.ParseSquare("a7")
	assert.Error(t, err)

	_, err = board.ParseSquare("a")
	assert.Error(t, err)
}

func TestSquareInBounds(t *testing.T) {
	assert.True(t, board.Square{Row: 0, Col: 0}.InBounds())
	assert.True(t, board.Square{Row: 5, Col: 5}.InBounds())
	assert.False(t, board.Square{Row: -1, Col: 0}.InBounds())
	assert.False(t, board.Square{Row: 0, Col: 6}.InBounds())
}

func TestKnightAttacks(t *testing.T) {
	assert.True(t, board.KnightAttacks(board.Square{Row: 2, Col: 2}, board.Square{Row: 0, Col: 1}))
	assert.True(t, board.KnightAttacks(board.Square{Row: 2, Col: 2}, board.Square{Row: 4, Col: 3}))
	assert.False(t, board.KnightAttacks(board.Square{Row: 2, Col: 2}, board.Square{Row: 3, Col: 3}))
	assert.False(t, board.KnightAttacks(board.Square{Row: 2, Col: 2}, board.Square{Row: 2, Col: 2}))
}

func TestKingAttacks(t *testing.T) {
	assert.True(t, board.KingAttacks(board.Square{Row: 2, Col: 2}, board.Square{Row: 1, Col: 1}))
	assert.True(t, board.KingAttacks(board.Square{Row: 2, Col: 2}, board.Square{Row: 3, Col: 2}))
	assert.False(t, board.KingAttacks(board.Square{Row: 2, Col: 2}, board.Square{Row: 2, Col: 2}))
	assert.False(t, board.KingAttacks(board.Square{Row: 2, Col: 2}, board.Square{Row: 0, Col: 2}))
}

func TestSideOpponent(t *testing.T) {
	assert.Equal(t, board.Black, board.White.Opponent())
	assert.Equal(t, board.White, board.Black.Opponent())
}
