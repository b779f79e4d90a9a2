// Package render formats positions and evaluated moves for the console
// driver.
package render

import (
	"fmt"
	"strings"

	"github.com/tinyboard/variantengine/pkg/board"
	"github.com/tinyboard/variantengine/pkg/eval"
)

// Unicode chess glyphs, one per occupant; '.' marks an empty square.
const (
	whiteKing   = '♔'
	blackKing   = '♚'
	whiteKnight = '♘'
	blackKnight = '♞'
)

// Board renders p as a labeled 6x6 grid, White's home rank at the bottom.
func Board(p *board.Position) string {
	var grid [board.N][board.N]rune
	for r := range grid {
		for c := range grid[r] {
			grid[r][c] = '.'
		}
	}
	grid[p.Kings[board.White].Row][p.Kings[board.White].Col] = whiteKing
	grid[p.Kings[board.Black].Row][p.Kings[board.Black].Col] = blackKing
	for _, s := range p.Knights[board.White] {
		grid[s.Row][s.Col] = whiteKnight
	}
	for _, s := range p.Knights[board.Black] {
		grid[s.Row][s.Col] = blackKnight
	}

	var b strings.Builder
	for r := 0; r < board.N; r++ {
		fmt.Fprintf(&b, "%d |", board.N-r)
		for c := 0; c < board.N; c++ {
			fmt.Fprintf(&b, "%c|", grid[r][c])
		}
		b.WriteByte('\n')
	}
	b.WriteString("  ")
	for c := 0; c < board.N; c++ {
		fmt.Fprintf(&b, " %c", 'a'+byte(c))
	}
	return b.String()
}

// Evaluation renders a score exactly as eval.Score.String does; exported
// here too so callers needn't import pkg/eval just to print a result.
func Evaluation(s eval.Score) string {
	return s.String()
}

// Move renders m in either verbose ("a1-b3") or compact ("rcrc") form.
func Move(m board.Move, verbose bool) string {
	if verbose {
		return m.String()
	}
	return m.Compact()
}

// RootEvaluation renders one root move's move and evaluation together, the
// form printed for every candidate under -v.
func RootEvaluation(m board.Move, s eval.Score, verbose bool) string {
	return fmt.Sprintf("Evaluation: %v\tMove: %v", s, Move(m, verbose))
}
