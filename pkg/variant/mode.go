// Package variant supplies the two rule sets the search kernel and move
// generator are parameterized over: Three-Checks and King's-Cross. Rather
// than subclassing board.Position, a Mode is a tagged value dispatching to
// three small pure functions: order, evaluate, terminal.
package variant

import (
	"github.com/tinyboard/variantengine/pkg/board"
	"github.com/tinyboard/variantengine/pkg/eval"
)

// Mode selects the active rule set.
type Mode uint8

const (
	ThreeChecks Mode = iota
	KingsCross
)

func (m Mode) String() string {
	if m == KingsCross {
		return "kings-cross"
	}
	return "three-checks"
}

// ParseMode parses a variant name, as given to the console's reset command.
func ParseMode(s string) (Mode, bool) {
	switch s {
	case "three-checks", "3c":
		return ThreeChecks, true
	case "kings-cross", "kc":
		return KingsCross, true
	default:
		return 0, false
	}
}

func btoi(b bool) int {
	if b {
		return 1
	}
	return 0
}

// Order is the move-ordering heuristic fed into board.Position.LegalMoves. It
// never consults the search tree — only the immediate tactical shape of the
// candidate move — and its output is clamped into the generator's four
// buckets.
func (m Mode) Order(p *board.Position, start, end board.Square, t board.MoveType) int {
	switch m {
	case ThreeChecks:
		switch t {
		case board.KingMove:
			return btoi(p.OccupiedByOpponent(end))
		default: // KnightMove
			attacksKing := board.KnightAttacks(end, p.Kings[p.ToMove.Opponent()])
			return btoi(p.OccupiedByOpponent(end)) + btoi(attacksKing)
		}
	case KingsCross:
		switch t {
		case board.KingMove:
			// rowsForward is -1, 0 or +1; the +1 shifts the score into the
			// generator's non-negative bucket range without reordering.
			var rowsForward int8
			if p.ToMove == board.White {
				rowsForward = start.Row - end.Row
			} else {
				rowsForward = end.Row - start.Row
			}
			return btoi(p.OccupiedByOpponent(end)) + int(rowsForward) + 1
		default: // KnightMove
			return btoi(p.OccupiedByOpponent(end)) + 1
		}
	default:
		panic("unknown mode")
	}
}

// Evaluate is the static evaluator applied at the search frontier (depth 0).
// It never looks past the current position.
func (m Mode) Evaluate(p *board.Position) eval.Score {
	switch m {
	case ThreeChecks:
		white := 2*p.NumKnights(board.White) + int(p.ChecksRemaining[board.White])
		black := 2*p.NumKnights(board.Black) + int(p.ChecksRemaining[board.Black])
		return eval.Score(white - black)
	case KingsCross:
		white := 2*p.NumKnights(board.White) + (board.N - int(p.Kings[board.White].Row))
		black := 2*p.NumKnights(board.Black) + int(p.Kings[board.Black].Row) + 1
		return eval.Score(white - black)
	default:
		panic("unknown mode")
	}
}

// Terminal reports whether p is a completed game under m, given the number
// of legal moves available to the side to move. When true, score is one of
// eval.WhiteWins, eval.BlackWins or eval.Draw (stalemate, or in
// Three-Checks both sides out of knights).
func (m Mode) Terminal(p *board.Position, numLegalMoves int) (score eval.Score, over bool) {
	switch m {
	case ThreeChecks:
		if p.ChecksRemaining[board.White] == 0 {
			return eval.BlackWins, true
		}
		if p.ChecksRemaining[board.Black] == 0 {
			return eval.WhiteWins, true
		}
		if p.NumKnights(board.White) == 0 && p.NumKnights(board.Black) == 0 {
			// Neither side can ever deliver another check.
			return eval.Draw, true
		}
	case KingsCross:
		if p.Kings[board.White].Row == 0 {
			return eval.WhiteWins, true
		}
		if p.Kings[board.Black].Row == board.N-1 {
			return eval.BlackWins, true
		}
	default:
		panic("unknown mode")
	}
	if numLegalMoves == 0 {
		if p.InCheck {
			if p.ToMove == board.White {
				return eval.BlackWins, true
			}
			return eval.WhiteWins, true
		}
		return eval.Draw, true
	}
	return 0, false
}
