package board

import "fmt"

// Position is the full game state. It is a value type: Apply returns a fresh
// child and never mutates the receiver, so positions may be freely shared
// across search frames and goroutines.
type Position struct {
	// Knights holds each side's knight squares in insertion/capture order.
	// Order is irrelevant to game semantics but must be stable so that
	// Compress is deterministic.
	Knights [2][]Square
	Kings   [2]Square

	// ChecksRemaining[s] counts down as s is checked; hitting zero in
	// Three-Checks mode means s has absorbed three checks and lost. Unused
	// in King's-Cross, but always carried since it is part of the Position
	// entity regardless of variant.
	ChecksRemaining [2]int8

	ToMove Side

	// InCheck and CheckingSquare are derived from the piece placement (some
	// enemy knight attacks ToMove's king) but cached on Position so the
	// search kernel and move generator don't recompute it on every call.
	InCheck        bool
	CheckingSquare Square
}

// StartingPosition returns the initial 6x6 position shared by both variants.
func StartingPosition() Position {
	p := Position{
		Kings:           [2]Square{White: {Row: 5, Col: 0}, Black: {Row: 0, Col: 5}},
		ChecksRemaining: [2]int8{White: 3, Black: 3},
		ToMove:          White,
	}
	for i := 0; i < K; i++ {
		p.Knights[White] = append(p.Knights[White], Square{Row: 5, Col: int8(2 + i)})
		p.Knights[Black] = append(p.Knights[Black], Square{Row: 0, Col: int8(i)})
	}
	return p
}

// NumKnights returns the number of knights side s has remaining.
func (p *Position) NumKnights(s Side) int {
	return len(p.Knights[s])
}

func indexOfSquare(squares []Square, sq Square) int {
	for i, s := range squares {
		if s == sq {
			return i
		}
	}
	return -1
}

func (p *Position) occupiedByOwn(sq Square) bool {
	if p.Kings[p.ToMove] == sq {
		return true
	}
	return indexOfSquare(p.Knights[p.ToMove], sq) >= 0
}

// OccupiedByOpponent reports whether sq holds a knight of ToMove's opponent.
// Exported since the move-ordering heuristic (pkg/variant) needs it too.
func (p *Position) OccupiedByOpponent(sq Square) bool {
	return indexOfSquare(p.Knights[p.ToMove.Opponent()], sq) >= 0
}

// IsProtected reports whether sq is attacked by ToMove's opponent: by their
// king or by any of their knights.
func (p *Position) IsProtected(sq Square) bool {
	enemy := p.ToMove.Opponent()
	if KingAttacks(p.Kings[enemy], sq) {
		return true
	}
	for _, k := range p.Knights[enemy] {
		if KnightAttacks(k, sq) {
			return true
		}
	}
	return false
}

func (p *Position) knightTargets(from Square) []Square {
	var out []Square
	for _, o := range knightOffsets {
		t := Square{Row: from.Row + o.Row, Col: from.Col + o.Col}
		if t.InBounds() && !p.occupiedByOwn(t) {
			out = append(out, t)
		}
	}
	return out
}

func (p *Position) kingTargets() []Square {
	from := p.Kings[p.ToMove]
	var out []Square
	for _, o := range kingOffsets {
		t := Square{Row: from.Row + o.Row, Col: from.Col + o.Col}
		if t.InBounds() && !p.occupiedByOwn(t) && !p.IsProtected(t) {
			out = append(out, t)
		}
	}
	return out
}

// OrderFunc scores a candidate move for generation-time ordering. It is
// supplied by the caller (pkg/variant's Mode.Order) so that the generator
// stays variant-agnostic.
type OrderFunc func(p *Position, start, end Square, t MoveType) int

// LegalMoves returns every legal move from p, ordered by descending score
// under order. Moves are bucketed by clamped score 0..3 and buckets are
// concatenated from 3 down to 0, preserving insertion order within a bucket
// (deterministic within one run, which is all correctness requires).
//
// If p.InCheck, only knight-captures of the checking knight and king moves
// are generated: with only knights and kings on the board, no other
// resolution is possible against a knight check.
func (p *Position) LegalMoves(order OrderFunc) []Move {
	var buckets [4][]Move
	add := func(start, end Square, t MoveType) {
		v := order(p, start, end, t)
		switch {
		case v < 0:
			v = 0
		case v > 3:
			v = 3
		}
		buckets[v] = append(buckets[v], Move{Start: start, End: end, Type: t, OrderingValue: v})
	}

	if p.InCheck {
		for _, k := range p.Knights[p.ToMove] {
			if KnightAttacks(k, p.CheckingSquare) {
				add(k, p.CheckingSquare, KnightMove)
			}
		}
	} else {
		for _, k := range p.Knights[p.ToMove] {
			for _, t := range p.knightTargets(k) {
				add(k, t, KnightMove)
			}
		}
	}

	from := p.Kings[p.ToMove]
	for _, t := range p.kingTargets() {
		add(from, t, KingMove)
	}

	moves := make([]Move, 0, 8*(K+1))
	for v := 3; v >= 0; v-- {
		moves = append(moves, buckets[v]...)
	}
	return moves
}

// Apply returns the child position reached by playing m from p. p is left
// unmodified: positions are value types.
func (p Position) Apply(m Move) Position {
	mover, defender := p.ToMove, p.ToMove.Opponent()

	child := p
	child.Knights[White] = append([]Square(nil), p.Knights[White]...)
	child.Knights[Black] = append([]Square(nil), p.Knights[Black]...)
	child.ToMove = defender

	if idx := indexOfSquare(child.Knights[defender], m.End); idx >= 0 {
		child.Knights[defender] = append(child.Knights[defender][:idx], child.Knights[defender][idx+1:]...)
	}

	if m.Type == KingMove {
		child.Kings[mover] = m.End
		child.InCheck = false
		child.CheckingSquare = ZeroSquare
		return child
	}

	idx := indexOfSquare(child.Knights[mover], m.Start)
	if idx < 0 {
		panic(fmt.Sprintf("apply: no knight of %v at %v", mover, m.Start))
	}
	child.Knights[mover][idx] = m.End

	child.InCheck = KnightAttacks(m.End, child.Kings[defender])
	child.CheckingSquare = m.End
	if child.InCheck && child.ChecksRemaining[defender] > 0 {
		// In Three-Checks a counter hitting zero ends the game before any
		// further check can land; the floor only matters in King's-Cross,
		// where the counters are ignored but must stay within the two bits
		// Compress packs them into.
		child.ChecksRemaining[defender]--
	}
	return child
}

func (p *Position) String() string {
	var grid [N][N]byte
	for i := range grid {
		for j := range grid[i] {
			grid[i][j] = '.'
		}
	}
	grid[p.Kings[White].Row][p.Kings[White].Col] = 'K'
	grid[p.Kings[Black].Row][p.Kings[Black].Col] = 'k'
	for _, s := range p.Knights[White] {
		grid[s.Row][s.Col] = 'N'
	}
	for _, s := range p.Knights[Black] {
		grid[s.Row][s.Col] = 'n'
	}

	s := ""
	for r := 0; r < N; r++ {
		for c := 0; c < N; c++ {
			s += string(grid[r][c])
		}
		s += "/"
	}
	return fmt.Sprintf("%s %v checks=%d/%d", s, p.ToMove, p.ChecksRemaining[White], p.ChecksRemaining[Black])
}
