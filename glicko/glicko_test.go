/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package glicko

import (
	"math"
	"testing"
)

// TestRatePaperExample reproduces the worked example from Glickman's paper: a
// 1500/200/0.06 player beats a 1400/30 opponent and loses to 1550/100 and
// 1700/300 opponents within one rating period.
func TestRatePaperExample(t *testing.T) {
	sys := NewSystem(DefaultTau)
	player := Rating{Value: 1500, Deviation: 200, Volatility: 0.06}

	games := []game{
		{opponent: Rating{Value: 1400, Deviation: 30, Volatility: 0.06}, score: 1},
		{opponent: Rating{Value: 1550, Deviation: 100, Volatility: 0.06}, score: 0},
		{opponent: Rating{Value: 1700, Deviation: 300, Volatility: 0.06}, score: 0},
	}
	got := sys.rate(player, games)

	if math.Abs(got.Value-1464.06) > 0.01 {
		t.Errorf("Value = %v; want 1464.06", got.Value)
	}
	if math.Abs(got.Deviation-151.52) > 0.01 {
		t.Errorf("Deviation = %v; want 151.52", got.Deviation)
	}
	if math.Abs(got.Volatility-0.05999) > 0.0001 {
		t.Errorf("Volatility = %v; want 0.05999", got.Volatility)
	}
}

func TestUpdateWinnerGainsLoserDrops(t *testing.T) {
	sys := NewSystem(DefaultTau)
	alice := NewRating()
	bob := NewRating()

	newAlice, newBob := sys.Update(alice, bob, false)

	if newAlice.Value <= alice.Value {
		t.Errorf("winner Value = %v; want > %v", newAlice.Value, alice.Value)
	}
	if newBob.Value >= bob.Value {
		t.Errorf("loser Value = %v; want < %v", newBob.Value, bob.Value)
	}
	// Deviation shrinks after a game is observed.
	if newAlice.Deviation >= alice.Deviation {
		t.Errorf("winner Deviation = %v; want < %v", newAlice.Deviation,
			alice.Deviation)
	}
}

func TestUpdateDrawBetweenEqualsIsNeutral(t *testing.T) {
	sys := NewSystem(DefaultTau)
	a := Rating{Value: 1500, Deviation: 200, Volatility: 0.06}
	b := Rating{Value: 1500, Deviation: 200, Volatility: 0.06}

	newA, newB := sys.Update(a, b, true)

	if math.Abs(newA.Value-1500) > 1e-9 {
		t.Errorf("drawn equal player A Value = %v; want 1500", newA.Value)
	}
	if math.Abs(newB.Value-1500) > 1e-9 {
		t.Errorf("drawn equal player B Value = %v; want 1500", newB.Value)
	}
	if math.Abs(newA.Value-newB.Value) > 1e-9 ||
		math.Abs(newA.Deviation-newB.Deviation) > 1e-9 {
		t.Errorf("symmetric draw produced asymmetric ratings: %+v vs %+v",
			newA, newB)
	}
}

func TestUpdateDoesNotModifyInputs(t *testing.T) {
	sys := NewSystem(DefaultTau)
	a := Rating{Value: 1600, Deviation: 120, Volatility: 0.06}
	b := Rating{Value: 1450, Deviation: 90, Volatility: 0.06}
	aCopy, bCopy := a, b

	sys.Update(a, b, false)

	if a != aCopy || b != bCopy {
		t.Errorf("Update mutated its inputs: %+v %+v", a, b)
	}
}

func TestNewSystemRejectsNonPositiveTau(t *testing.T) {
	sys := NewSystem(-1)
	if sys.tau != DefaultTau {
		t.Errorf("tau = %v; want %v", sys.tau, DefaultTau)
	}
}
