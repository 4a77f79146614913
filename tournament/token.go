/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tournament

import (
	"fmt"
	"strconv"
)

// OutcomeClass is the decoded result class of a single outcome token.
type OutcomeClass int

const (
	OutcomeWin OutcomeClass = iota
	OutcomeLoss
	OutcomeDraw
	// OutcomeNone covers byes, half-byes, and unplayed games: the player is
	// accounted for this round but no rating update occurs.
	OutcomeNone
)

func (c OutcomeClass) String() string {
	switch c {
	case OutcomeWin:
		return "win"
	case OutcomeLoss:
		return "loss"
	case OutcomeDraw:
		return "draw"
	case OutcomeNone:
		return "no game"
	default:
		return "?"
	}
}

// ParseOutcomeToken decodes a raw results cell into a result class and the
// opponent's seat number. Decisive and drawn games are encoded as W<seat>,
// L<seat>, and D<seat>; "-B-" (full bye), "-H-" (half bye), "-U-"
// (unplayed), and an empty cell all denote no game. Anything else is an
// invalid token.
func ParseOutcomeToken(token string) (OutcomeClass, int, error) {
	switch token {
	case "", "-B-", "-H-", "-U-":
		return OutcomeNone, 0, nil
	}

	var class OutcomeClass
	switch token[0] {
	case 'W':
		class = OutcomeWin
	case 'L':
		class = OutcomeLoss
	case 'D':
		class = OutcomeDraw
	default:
		return OutcomeNone, 0,
			fmt.Errorf("outcome token %q is not one of win/loss/draw/bye/unplayed",
				token)
	}

	seat, err := strconv.Atoi(token[1:])
	if err != nil {
		return OutcomeNone, 0,
			fmt.Errorf("outcome token %q has a bad opponent seat: %w", token, err)
	}
	if seat <= 0 {
		return OutcomeNone, 0,
			fmt.Errorf("outcome token %q references non-positive seat %d",
				token, seat)
	}

	return class, seat, nil
}
