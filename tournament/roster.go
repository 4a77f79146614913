/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package tournament recomputes club Glicko-2 ratings from a tab-delimited
// roster and a round-by-round results sheet. The rating mathematics live
// behind the Updater interface; this package's job is sequencing: resolve
// each pairing exactly once per round, in round order, and track how much
// every player's rating moved.
package tournament

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"strconv"
	"strings"

	"github.com/mikeb26/boylstonchessclub-ratings/glicko"
)

// PlayerID is the stable identity key used throughout a run. Club rosters
// use USCF member ids here, but any unique token works.
type PlayerID string

// LoadPolicy fixes how malformed input rows are treated. The two behaviors
// must never be mixed silently within one load; callers choose exactly one.
type LoadPolicy int

const (
	// PolicyStrict aborts the whole load on the first malformed row.
	PolicyStrict LoadPolicy = iota
	// PolicyLenient skips malformed rows with a diagnostic.
	PolicyLenient
)

// RosterEntry is one player's record in the roster store.
type RosterEntry struct {
	ID     PlayerID
	Name   string
	Rating glicko.Rating
}

// Roster is the in-memory mapping of player identity to display name and
// current rating. It is loaded once and mutated in place as rounds resolve.
type Roster struct {
	entries map[PlayerID]*RosterEntry
	order   []PlayerID
}

// rosterFieldCount is the expected shape of a roster record:
// ID, Name, Rating, RD, RV.
const rosterFieldCount = 5

// LoadRoster reads a tab-delimited roster table with a header row. Records
// that do not split into (ID, Name, Rating, RD, RV) are malformed and
// handled per policy.
func LoadRoster(r io.Reader, policy LoadPolicy) (*Roster, []Diagnostic, error) {
	roster := &Roster{
		entries: make(map[PlayerID]*RosterEntry),
	}
	var diags []Diagnostic

	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, nil, fmt.Errorf("unable to read roster header: %w", err)
		}
		return nil, nil, fmt.Errorf("roster table has no header row")
	}

	lineNum := 1
	for scanner.Scan() {
		lineNum++
		line := scanner.Text()

		entry, err := parseRosterRecord(line)
		if err != nil {
			if policy == PolicyStrict {
				return nil, nil, fmt.Errorf("roster line %d: %w; check that the table is tab delimited with columns ID, Name, Rating, RD, RV and has no blank lines",
					lineNum, err)
			}
			d := Diagnostic{
				Kind:   DiagMalformedRecord,
				Detail: fmt.Sprintf("roster line %d: %v", lineNum, err),
			}
			diags = append(diags, d)
			log.Printf("warning: %v", d)
			continue
		}

		roster.Put(entry.ID, entry.Name, entry.Rating)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("unable to read roster: %w", err)
	}

	return roster, diags, nil
}

func parseRosterRecord(line string) (RosterEntry, error) {
	parts := strings.Split(line, "\t")
	if len(parts) != rosterFieldCount {
		return RosterEntry{}, fmt.Errorf("expected %d fields, found %d in %q",
			rosterFieldCount, len(parts), line)
	}
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	if parts[0] == "" {
		return RosterEntry{}, fmt.Errorf("empty player id in %q", line)
	}
	value, err := strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return RosterEntry{}, fmt.Errorf("bad rating %q: %w", parts[2], err)
	}
	deviation, err := strconv.ParseFloat(parts[3], 64)
	if err != nil {
		return RosterEntry{}, fmt.Errorf("bad rating deviation %q: %w",
			parts[3], err)
	}
	volatility, err := strconv.ParseFloat(parts[4], 64)
	if err != nil {
		return RosterEntry{}, fmt.Errorf("bad volatility %q: %w", parts[4], err)
	}
	if deviation < 0 || volatility < 0 {
		return RosterEntry{}, fmt.Errorf("negative deviation or volatility in %q",
			line)
	}

	return RosterEntry{
		ID:   PlayerID(parts[0]),
		Name: parts[1],
		Rating: glicko.Rating{
			Value:      value,
			Deviation:  deviation,
			Volatility: volatility,
		},
	}, nil
}

// Get returns the player's current rating.
func (ro *Roster) Get(id PlayerID) (glicko.Rating, bool) {
	entry, ok := ro.entries[id]
	if !ok {
		return glicko.Rating{}, false
	}
	return entry.Rating, true
}

// Entry returns a copy of the player's full roster record.
func (ro *Roster) Entry(id PlayerID) (RosterEntry, bool) {
	entry, ok := ro.entries[id]
	if !ok {
		return RosterEntry{}, false
	}
	return *entry, true
}

// Put replaces the stored rating for id, creating the entry if needed.
// Ratings are replaced whole rather than mutated since updates come from a
// pure rating function.
func (ro *Roster) Put(id PlayerID, name string, rating glicko.Rating) {
	if entry, ok := ro.entries[id]; ok {
		entry.Name = name
		entry.Rating = rating
		return
	}
	ro.entries[id] = &RosterEntry{ID: id, Name: name, Rating: rating}
	ro.order = append(ro.order, id)
}

// Entries returns all roster records in load order.
func (ro *Roster) Entries() []RosterEntry {
	out := make([]RosterEntry, 0, len(ro.order))
	for _, id := range ro.order {
		out = append(out, *ro.entries[id])
	}
	return out
}

// Len returns the number of roster entries.
func (ro *Roster) Len() int {
	return len(ro.order)
}
