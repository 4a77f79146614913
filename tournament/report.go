/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tournament

import (
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
)

// Rating values are carried at full precision and rounded only here, at
// output time: skill and deviation to the nearest integer, volatility to 8
// decimal places.

func roundInt(v float64) int {
	return int(math.Round(v))
}

func formatVolatility(v float64) string {
	rounded := math.Round(v*1e8) / 1e8
	return strconv.FormatFloat(rounded, 'f', -1, 64)
}

var outputHeader = []string{"ID", "Name", "Rating", "RD", "RV"}

// WriteFullRatings emits the full ratings table: one row per roster entry,
// including players who played no games, in roster load order.
func (e *Engine) WriteFullRatings(w io.Writer) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	if err := cw.Write(outputHeader); err != nil {
		return fmt.Errorf("unable to write ratings header: %w", err)
	}
	for _, entry := range e.roster.Entries() {
		record := []string{
			string(entry.ID),
			entry.Name,
			strconv.Itoa(roundInt(entry.Rating.Value)),
			strconv.Itoa(roundInt(entry.Rating.Deviation)),
			formatVolatility(entry.Rating.Volatility),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("unable to write ratings row for %v: %w",
				entry.ID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("unable to write ratings table: %w", err)
	}
	return nil
}

// WriteChangedPlayers emits the per-round movement table for the players in
// the results sheet: final rating triple, one delta column per round, and an
// overall gain column. Overall gain compares the rounded final rating
// against the rating recorded in the results sheet before any processing,
// not against the engine's unrounded starting value.
func (e *Engine) WriteChangedPlayers(w io.Writer) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	header := append([]string{}, outputHeader...)
	header = append(header, e.results.Rounds...)
	header = append(header, "overall gain")
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("unable to write changed players header: %w", err)
	}

	for _, row := range e.results.Rows {
		entry, ok := e.roster.Entry(row.ID)
		if !ok {
			// reported during Run under PolicyLenient
			continue
		}

		record := []string{
			string(row.ID),
			entry.Name,
			strconv.Itoa(roundInt(entry.Rating.Value)),
			strconv.Itoa(roundInt(entry.Rating.Deviation)),
			formatVolatility(entry.Rating.Volatility),
		}
		for _, round := range e.results.Rounds {
			record = append(record,
				strconv.Itoa(roundInt(e.Delta(row.ID, round))))
		}
		record = append(record,
			strconv.Itoa(roundInt(entry.Rating.Value)-row.InitialRating))

		if err := cw.Write(record); err != nil {
			return fmt.Errorf("unable to write changed players row for %v: %w",
				row.ID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("unable to write changed players table: %w", err)
	}
	return nil
}

// BuildChangedSummary formats an aligned console table of each results-sheet
// player's rating movement, for the TD to eyeball before publishing.
func (e *Engine) BuildChangedSummary() string {
	headers := []string{"No", "Name", "Rating", "Net"}
	var rows [][]string

	for _, row := range e.results.Rows {
		entry, ok := e.roster.Entry(row.ID)
		if !ok {
			continue
		}
		gain := roundInt(entry.Rating.Value) - row.InitialRating
		rows = append(rows, []string{
			fmt.Sprintf("%d.", row.Seat),
			entry.Name,
			fmt.Sprintf("%v->%v", row.InitialRating,
				roundInt(entry.Rating.Value)),
			fmt.Sprintf("%+d", gain),
		})
	}

	// Compute column widths
	colWidths := make([]int, len(headers))
	for i, h := range headers {
		colWidths[i] = len(h)
	}
	for _, row := range rows {
		for i, cell := range row {
			if len(cell) > colWidths[i] {
				colWidths[i] = len(cell)
			}
		}
	}

	var sb strings.Builder
	writeRow := func(cells []string) {
		for i, cell := range cells {
			if i > 0 {
				sb.WriteString("  ")
			}
			fmt.Fprintf(&sb, "%-*s", colWidths[i], cell)
		}
		sb.WriteString("\n")
	}

	writeRow(headers)
	for _, row := range rows {
		writeRow(row)
	}

	return sb.String()
}
