/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tournament

import (
	"fmt"
	"log"

	"github.com/mikeb26/boylstonchessclub-ratings/glicko"
)

// Updater is the pairwise rating-update capability the engine invokes. When
// drawn is false the first argument is the winner. Implementations must be
// pure; the engine relies on replacing stored ratings with the returned
// values. glicko.System satisfies this interface, and tests substitute
// deterministic stubs.
type Updater interface {
	Update(first, second glicko.Rating, drawn bool) (glicko.Rating, glicko.Rating)
}

// Engine propagates one tournament's results through the roster, one round
// at a time. Rounds are strictly sequential: round k+1 sees the roster as of
// the end of round k, so the engine must never be run round-parallel.
type Engine struct {
	roster  *Roster
	results *Results
	updater Updater
	policy  LoadPolicy

	seats  map[int]PlayerID
	deltas map[PlayerID]map[string]float64
	diags  []Diagnostic

	// OnRound, when non-nil, is invoked before each round is resolved.
	OnRound func(round string)
}

// NewEngine wires a roster, a results sheet, and a rating updater together.
// The seat lookup is built once here, from the full row set; per-round
// deltas start at zero for every known player/round pair.
func NewEngine(roster *Roster, results *Results, updater Updater,
	policy LoadPolicy) *Engine {

	deltas := make(map[PlayerID]map[string]float64, len(results.Rows))
	for _, row := range results.Rows {
		deltas[row.ID] = make(map[string]float64, len(results.Rounds))
		for _, round := range results.Rounds {
			deltas[row.ID][round] = 0
		}
	}

	return &Engine{
		roster:  roster,
		results: results,
		updater: updater,
		policy:  policy,
		seats:   results.SeatLookup(),
		deltas:  deltas,
	}
}

// Run processes every round in order. Under PolicyStrict a results row whose
// player is absent from the roster is a fatal data error; under
// PolicyLenient it is reported and that player's games are skipped.
func (e *Engine) Run() error {
	if err := e.checkRosterCoverage(); err != nil {
		return err
	}

	for _, round := range e.results.Rounds {
		if e.OnRound != nil {
			e.OnRound(round)
		}
		e.processRound(round)
	}

	return nil
}

func (e *Engine) checkRosterCoverage() error {
	for _, row := range e.results.Rows {
		if _, ok := e.roster.Get(row.ID); ok {
			continue
		}
		if e.policy == PolicyStrict {
			return fmt.Errorf("player %v (%v) not found in roster", row.ID,
				row.Name)
		}
		e.report(Diagnostic{
			Kind:   DiagUnknownPlayer,
			Player: row.ID,
			Detail: fmt.Sprintf("%v appears in the results sheet but not the roster; their games will not be scored", row.Name),
		})
	}
	return nil
}

// processRound visits each pairing in the round exactly once. Both sides of
// a game carry a row for it, so resolving a pairing marks both players and
// the corroborating row is skipped when reached.
func (e *Engine) processRound(round string) {
	resolved := make(map[PlayerID]bool, len(e.results.Rows))

	for _, row := range e.results.Rows {
		if resolved[row.ID] {
			continue
		}

		class, seat, err := ParseOutcomeToken(row.Outcome(round))
		if err != nil {
			resolved[row.ID] = true
			e.report(Diagnostic{
				Kind:   DiagInvalidOutcomeToken,
				Round:  round,
				Player: row.ID,
				Detail: err.Error(),
			})
			continue
		}
		if class == OutcomeNone {
			resolved[row.ID] = true
			continue
		}

		oppID, ok := e.seats[seat]
		if !ok {
			// Data-entry error in the opponent reference. The row stays
			// unresolved so the opponent's corroborating row can still
			// score the game.
			e.report(Diagnostic{
				Kind:   DiagUnknownOpponent,
				Round:  round,
				Player: row.ID,
				Detail: fmt.Sprintf("no player holds seat %d", seat),
			})
			continue
		}

		resolved[row.ID] = true
		resolved[oppID] = true

		e.resolveGame(round, row.ID, oppID, class)
	}
}

// resolveGame invokes the updater once for the pairing and stores both new
// ratings and deltas. Argument order honors the updater's winner-first
// contract: for a loss the arguments are swapped rather than re-encoded.
func (e *Engine) resolveGame(round string, playerID, oppID PlayerID,
	class OutcomeClass) {

	playerEntry, ok := e.roster.Entry(playerID)
	if !ok {
		// lenient load already reported this player during Run
		return
	}
	oppEntry, ok := e.roster.Entry(oppID)
	if !ok {
		return
	}

	var playerNew, oppNew glicko.Rating
	switch class {
	case OutcomeWin:
		playerNew, oppNew = e.updater.Update(playerEntry.Rating,
			oppEntry.Rating, false)
	case OutcomeLoss:
		oppNew, playerNew = e.updater.Update(oppEntry.Rating,
			playerEntry.Rating, false)
	case OutcomeDraw:
		playerNew, oppNew = e.updater.Update(playerEntry.Rating,
			oppEntry.Rating, true)
	default:
		e.report(Diagnostic{
			Kind:   DiagInvalidOutcomeToken,
			Round:  round,
			Player: playerID,
			Detail: fmt.Sprintf("unhandled outcome class %v", class),
		})
		return
	}

	// Full precision is carried internally; rounding happens only at
	// output time to avoid compounding error across rounds.
	e.roster.Put(playerID, playerEntry.Name, playerNew)
	e.roster.Put(oppID, oppEntry.Name, oppNew)

	e.setDelta(playerID, round, playerNew.Value-playerEntry.Rating.Value)
	e.setDelta(oppID, round, oppNew.Value-oppEntry.Rating.Value)
}

func (e *Engine) setDelta(id PlayerID, round string, delta float64) {
	if _, ok := e.deltas[id]; !ok {
		e.deltas[id] = make(map[string]float64)
	}
	e.deltas[id][round] = delta
}

// Delta returns the signed rating movement for one player in one round.
// Players with no resolved game in a round keep their initialized zero.
func (e *Engine) Delta(id PlayerID, round string) float64 {
	return e.deltas[id][round]
}

// Diagnostics returns every non-fatal problem encountered, in occurrence
// order.
func (e *Engine) Diagnostics() []Diagnostic {
	return e.diags
}

// Roster returns the roster store the engine mutates.
func (e *Engine) Roster() *Roster {
	return e.roster
}

// Results returns the results sheet driving the engine.
func (e *Engine) Results() *Results {
	return e.results
}

func (e *Engine) report(d Diagnostic) {
	e.diags = append(e.diags, d)
	log.Printf("warning: %v", d)
}
