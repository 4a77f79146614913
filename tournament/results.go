/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tournament

import (
	"bufio"
	"fmt"
	"io"
	"log"
	"sort"
	"strconv"
	"strings"
)

// RoundRow is one player's record for one tournament: their identity, seat
// number, as-loaded rating, and raw outcome token per round. Rows are
// immutable once loaded.
type RoundRow struct {
	ID            PlayerID
	Name          string
	Seat          int
	InitialRating int

	outcomes map[string]string
}

// Outcome returns the raw outcome token for the given round column, or ""
// when the cell is absent (treated as an unplayed game).
func (rr RoundRow) Outcome(round string) string {
	return rr.outcomes[round]
}

// Results holds the parsed results sheet: one row per player plus the round
// column identifiers in play order.
type Results struct {
	Rows []RoundRow
	// Rounds is sorted numerically by the digits embedded in each header,
	// so "Rnd10" follows "Rnd2".
	Rounds []string
}

// LoadResults reads a tab-delimited results sheet with a header row. The
// required columns are ID, Name, and Rating; round columns are discovered by
// header prefix. Each row is annotated with its 1-based table position as
// the seat number; seat numbers are assigned once per tournament and remain
// stable even when a lenient load skips a malformed row.
func LoadResults(r io.Reader, policy LoadPolicy) (*Results, []Diagnostic, error) {
	scanner := bufio.NewScanner(r)
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, nil, fmt.Errorf("unable to read results header: %w", err)
		}
		return nil, nil, fmt.Errorf("results table has no header row")
	}

	header := splitRecord(scanner.Text())
	colIdx := make(map[string]int)
	for i, col := range header {
		if col == "" {
			continue
		}
		colIdx[col] = i
	}
	for _, required := range []string{"ID", "Name", "Rating"} {
		if _, ok := colIdx[required]; !ok {
			return nil, nil, fmt.Errorf("results table is missing required column %q; check that the table is tab delimited with columns ID, Name, Rating, Rnd1, Rnd2, etc",
				required)
		}
	}

	results := &Results{
		Rounds: discoverRoundColumns(header),
	}

	var diags []Diagnostic
	seat := 0
	lineNum := 1
	for scanner.Scan() {
		lineNum++
		seat++
		fields := splitRecord(scanner.Text())

		row, err := parseResultRow(fields, colIdx, results.Rounds, seat)
		if err != nil {
			if policy == PolicyStrict {
				return nil, nil, fmt.Errorf("results line %d: %w; check that the table is tab delimited with columns ID, Name, Rating, Rnd1, Rnd2, etc",
					lineNum, err)
			}
			d := Diagnostic{
				Kind:   DiagMalformedRecord,
				Detail: fmt.Sprintf("results line %d: %v", lineNum, err),
			}
			diags = append(diags, d)
			log.Printf("warning: %v", d)
			continue
		}

		results.Rows = append(results.Rows, row)
	}
	if err := scanner.Err(); err != nil {
		return nil, nil, fmt.Errorf("unable to read results: %w", err)
	}

	return results, diags, nil
}

func splitRecord(line string) []string {
	fields := strings.Split(line, "\t")
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}
	return fields
}

func parseResultRow(fields []string, colIdx map[string]int, rounds []string,
	seat int) (RoundRow, error) {

	cell := func(col string) string {
		idx := colIdx[col]
		if idx >= len(fields) {
			return ""
		}
		return fields[idx]
	}

	id := cell("ID")
	if id == "" {
		return RoundRow{}, fmt.Errorf("empty player id")
	}
	rating, err := strconv.Atoi(cell("Rating"))
	if err != nil {
		return RoundRow{}, fmt.Errorf("bad rating %q: %w", cell("Rating"), err)
	}

	row := RoundRow{
		ID:            PlayerID(id),
		Name:          cell("Name"),
		Seat:          seat,
		InitialRating: rating,
		outcomes:      make(map[string]string, len(rounds)),
	}
	for _, round := range rounds {
		row.outcomes[round] = cell(round)
	}

	return row, nil
}

// discoverRoundColumns finds the round headers. A column literally named
// "RD" is the rating-deviation column, not a round, and headers without an
// embedded round number are ignored.
func discoverRoundColumns(header []string) []string {
	var rounds []string
	for _, col := range header {
		if col == "RD" {
			continue
		}
		if !strings.HasPrefix(col, "Rnd") && !strings.HasPrefix(col, "RD") &&
			!strings.HasPrefix(col, "Round ") {
			continue
		}
		if _, ok := embeddedNumber(col); !ok {
			continue
		}
		rounds = append(rounds, col)
	}

	// "Round 10" must sort after "Round 2"
	sort.SliceStable(rounds, func(i, j int) bool {
		ni, _ := embeddedNumber(rounds[i])
		nj, _ := embeddedNumber(rounds[j])
		return ni < nj
	})

	return rounds
}

// embeddedNumber concatenates the digits of s and parses them as an int.
func embeddedNumber(s string) (int, bool) {
	var sb strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			sb.WriteRune(r)
		}
	}
	if sb.Len() == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(sb.String())
	if err != nil {
		return 0, false
	}
	return n, true
}

// SeatLookup builds the seat number to player identity mapping from the full
// row set. Build it once, before any round is processed; outcome tokens
// reference opponents by these seat numbers.
func (res *Results) SeatLookup() map[int]PlayerID {
	lookup := make(map[int]PlayerID, len(res.Rows))
	for _, row := range res.Rows {
		lookup[row.Seat] = row.ID
	}
	return lookup
}
