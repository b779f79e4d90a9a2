// Package eval contains the scalar evaluation type shared by move ordering,
// static evaluation and the search kernel.
package eval

import "fmt"

// Score is a signed evaluation, in the same small integer units the move
// ordering heuristic and the static evaluator use. Positive favors White.
//
// The range [-120,120] is partitioned into three bands:
//
//   - [-100,100]: ordinary static evaluations and non-terminal search values.
//   - [101,119] / [-119,-101]: forced-win distances. A value of sign s and
//     magnitude 120-k encodes "the winning side mates in k plies from here".
//     Each ply of propagation nudges the magnitude one step further from 120
//     (see IncrementMateDistance), including the first hop up from a bare
//     ±120 a child resolved directly.
//   - ±120: the game is over; White or Black has already won.
//
// AlphaReject and BetaReject fall outside [-120,120] entirely: they are
// short-circuit sentinels for a window miss, never a position's value.
type Score int16

const (
	// WhiteWins is the score of a position where White has already won.
	WhiteWins Score = 120
	// BlackWins is the score of a position where Black has already won.
	BlackWins Score = -120

	// ForcedWinWhite is the smallest magnitude in White's forced-win band.
	ForcedWinWhite Score = 101
	// ForcedWinBlack is the smallest magnitude (least negative value) in Black's forced-win band.
	ForcedWinBlack Score = -101

	// AlphaReject is returned by the search kernel from a Black-to-move frame
	// once a child scores at or below alpha (a cutoff White, one frame up,
	// rejects this branch on). It is never a genuine position value.
	AlphaReject Score = -121
	// BetaReject is returned by the search kernel from a White-to-move frame
	// once a child scores at or above beta (a cutoff Black, one frame up,
	// rejects this branch on). It is never a genuine position value.
	BetaReject Score = 121

	// Draw is the neutral score.
	Draw Score = 0
)

// IsReject reports whether s is one of the alpha-beta short-circuit sentinels
// rather than a genuine position value.
func (s Score) IsReject() bool {
	return s == AlphaReject || s == BetaReject
}

// IsForcedWin reports whether s lies in the forced-win band (mate distance encoded,
// game not yet over).
func (s Score) IsForcedWin() bool {
	return s >= ForcedWinWhite && s < WhiteWins || s <= ForcedWinBlack && s > BlackWins
}

// IncrementMateDistance nudges a forced-win score one ply further from the
// terminal bound, as it propagates up one level of the search tree. A bare
// ±120 is included: the first frame above a position Terminal() resolved
// directly reports that win as "one ply away" (119), not as an untouched
// 120, since 120 is reserved for a position that is ITSELF already over.
// Values outside the forced-win band (draws, ordinary static evaluations)
// pass through unchanged.
func IncrementMateDistance(s Score) Score {
	switch {
	case s >= ForcedWinWhite && s <= WhiteWins:
		return s - 1
	case s <= ForcedWinBlack && s >= BlackWins:
		return s + 1
	default:
		return s
	}
}

// PliesToMate returns the number of plies to mate encoded by s, and whether s
// was in the forced-win band at all. A returned value of 1 means mate is
// delivered by the next ply. A bare ±120 is outside the band: the game is
// already over, so there is no distance left to report.
func PliesToMate(s Score) (int, bool) {
	if !s.IsForcedWin() {
		return 0, false
	}
	if s > 0 {
		return int(WhiteWins - s), true
	}
	return int(s - BlackWins), true
}

func (s Score) String() string {
	if k, ok := PliesToMate(s); ok {
		if s < 0 {
			return fmt.Sprintf("-#%d", k)
		}
		return fmt.Sprintf("#%d", k)
	}
	return fmt.Sprintf("%+d", int(s))
}
