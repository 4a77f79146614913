/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package tournament

import (
	"bytes"
	"strings"
	"testing"
)

func TestFormatVolatility(t *testing.T) {
	cases := []struct {
		in   float64
		want string
	}{
		{in: 0.06, want: "0.06"},
		{in: 0.0612345678, want: "0.06123457"},
		{in: 0.059999999999, want: "0.06"},
		{in: 0, want: "0"},
	}
	for _, c := range cases {
		if got := formatVolatility(c.in); got != c.want {
			t.Errorf("formatVolatility(%v) = %q; want %q", c.in, got, c.want)
		}
	}
}

func TestWriteFullRatingsIncludesIdlePlayers(t *testing.T) {
	rosterTSV := "ID\tName\tRating\tRD\tRV\n" +
		"1\tAlice Archer\t1500\t200\t0.06\n" +
		"2\tBob Brook\t1500\t200\t0.06\n" +
		"3\tIda Idle\t1903\t48\t0.05751\n"
	resultsTSV := "ID\tName\tRating\tRnd1\n" +
		"1\tAlice Archer\t1500\tW2\n" +
		"2\tBob Brook\t1500\tL1\n"
	roster, results := mustLoad(t, rosterTSV, resultsTSV, PolicyStrict)

	engine := NewEngine(roster, results, &stubUpdater{}, PolicyStrict)
	if err := engine.Run(); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	var buf bytes.Buffer
	if err := engine.WriteFullRatings(&buf); err != nil {
		t.Fatalf("WriteFullRatings error: %v", err)
	}

	want := "ID\tName\tRating\tRD\tRV\n" +
		"1\tAlice Archer\t1516\t200\t0.06\n" +
		"2\tBob Brook\t1484\t200\t0.06\n" +
		"3\tIda Idle\t1903\t48\t0.05751\n"
	if buf.String() != want {
		t.Errorf("full ratings table =\n%q\nwant\n%q", buf.String(), want)
	}
}

func TestBuildChangedSummaryAlignment(t *testing.T) {
	resultsTSV := "ID\tName\tRating\tRnd1\n" +
		"1\tAlice Archer\t1500\tW2\n" +
		"2\tBob Brook\t1500\tL1\n"
	roster, results := mustLoad(t, twoPlayerRoster, resultsTSV, PolicyStrict)

	engine := NewEngine(roster, results, &stubUpdater{}, PolicyStrict)
	if err := engine.Run(); err != nil {
		t.Fatalf("Run error: %v", err)
	}

	summary := engine.BuildChangedSummary()
	lines := strings.Split(strings.TrimRight(summary, "\n"), "\n")
	if len(lines) != 3 {
		t.Fatalf("summary lines = %d; want 3:\n%v", len(lines), summary)
	}
	if !strings.HasPrefix(lines[0], "No") || !strings.Contains(lines[0], "Net") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.Contains(lines[1], "1500->1516") ||
		!strings.Contains(lines[1], "+16") {
		t.Errorf("Alice row = %q", lines[1])
	}
	if !strings.Contains(lines[2], "1500->1484") ||
		!strings.Contains(lines[2], "-16") {
		t.Errorf("Bob row = %q", lines[2])
	}
}
