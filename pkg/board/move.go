package board

import (
	"fmt"
	"strings"
)

// MoveType distinguishes which piece is moving, since the ordering heuristic
// and the apply step both branch on it.
type MoveType uint8

const (
	KnightMove MoveType = iota
	KingMove
)

// Move is a single ply: a piece relocating from Start to End. OrderingValue is
// the move-ordering score assigned by the generator (see pkg/variant); it is
// not part of move identity.
type Move struct {
	Start, End    Square
	Type          MoveType
	OrderingValue int
}

// Equals compares moves by identity (start/end/type), ignoring OrderingValue.
func (m Move) Equals(o Move) bool {
	return m.Start == o.Start && m.End == o.End && m.Type == o.Type
}

func (m Move) String() string {
	return fmt.Sprintf("%v-%v", m.Start, m.End)
}

// Compact renders the move as four row/col digits, e.g. "5041" — the terse
// form that ParseUserMove also accepts.
func (m Move) Compact() string {
	return fmt.Sprintf("%d%d%d%d", m.Start.Row, m.Start.Col, m.End.Row, m.End.Col)
}

// ParseUserMove parses the start/end squares out of a move string in either
// verbose ("a1-b3") or compact ("5033") form. It does not check legality —
// that belongs to the caller pairing this with Position.LegalMoves.
func ParseUserMove(s string) (start, end Square, err error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "-") {
		parts := strings.SplitN(s, "-", 2)
		if len(parts) != 2 {
			return Square{}, Square{}, fmt.Errorf("invalid move %q", s)
		}
		start, err = ParseSquare(parts[0])
		if err != nil {
			return Square{}, Square{}, err
		}
		end, err = ParseSquare(parts[1])
		if err != nil {
			return Square{}, Square{}, err
		}
		return start, end, nil
	}

	if len(s) != 4 {
		return Square{}, Square{}, fmt.Errorf("invalid move %q", s)
	}
	digits := make([]int8, 4)
	for i, c := range s {
		if c < '0' || c > '9' {
			return Square{}, Square{}, fmt.Errorf("invalid move %q", s)
		}
		digits[i] = int8(c - '0')
	}
	start = Square{Row: digits[0], Col: digits[1]}
	end = Square{Row: digits[2], Col: digits[3]}
	if !start.InBounds() || !end.InBounds() {
		return Square{}, Square{}, fmt.Errorf("invalid move %q", s)
	}
	return start, end, nil
}
