/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"bytes"
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/mikeb26/boylstonchessclub-ratings/glicko"
	"github.com/mikeb26/boylstonchessclub-ratings/internal"
	"github.com/mikeb26/boylstonchessclub-ratings/internal/webcache"
	"github.com/mikeb26/boylstonchessclub-ratings/tournament"
)

func handleRecalc(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("recalc", flag.ExitOnError)
	playersSrc := fs.String("players", "", "Current ratings table (file or URL)")
	resultsSrc := fs.String("results", "", "Tournament results sheet (file or URL)")
	outputPath := fs.String("output", "newratings.txt",
		"Where to write the full updated ratings table")
	changedPath := fs.String("changed", "changes.txt",
		"Where to write the per-round changes table")
	tau := fs.Float64("tau", glicko.DefaultTau, "Volatility constraint")
	lenient := fs.Bool("lenient", false,
		"Skip unusable rows instead of aborting")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *playersSrc == "" || *resultsSrc == "" {
		fmt.Fprintln(os.Stderr, "Please provide both --players and --results.")
		fs.Usage()
		os.Exit(1)
	}

	eng, diags := buildAndRun(ctx, *playersSrc, *resultsSrc, *tau, *lenient)

	if err := writeReport(*outputPath, eng.WriteFullRatings); err != nil {
		d := tournament.Diagnostic{
			Kind:   tournament.DiagOutputWriteFailure,
			Detail: fmt.Sprintf("%v: %v", *outputPath, err),
		}
		log.Printf("warning: %v", d)
		diags = append(diags, d)
	}
	if err := writeReport(*changedPath, eng.WriteChangedPlayers); err != nil {
		d := tournament.Diagnostic{
			Kind:   tournament.DiagOutputWriteFailure,
			Detail: fmt.Sprintf("%v: %v", *changedPath, err),
		}
		log.Printf("warning: %v", d)
		diags = append(diags, d)
	}

	fmt.Println(eng.BuildChangedSummary())
	if len(diags) > 0 {
		fmt.Fprintf(os.Stderr,
			"%d problems were encountered; review the warnings above.\n",
			len(diags))
	}
}

// buildAndRun loads both input tables, recomputes ratings, and returns the
// finished engine along with every diagnostic raised so far. Fatal data
// errors terminate the process.
func buildAndRun(ctx context.Context, playersSrc, resultsSrc string,
	tau float64, lenient bool) (*tournament.Engine, []tournament.Diagnostic) {

	policy := tournament.PolicyStrict
	if lenient {
		policy = tournament.PolicyLenient
	}

	playersData, resultsData, err := loadSources(ctx, playersSrc, resultsSrc)
	if err != nil {
		log.Fatalf("Error loading inputs: %v", err)
	}

	roster, rosterDiags, err := tournament.LoadRoster(
		bytes.NewReader(playersData), policy)
	if err != nil {
		log.Fatalf("Error loading %v: %v", playersSrc, err)
	}
	results, resultDiags, err := tournament.LoadResults(
		bytes.NewReader(resultsData), policy)
	if err != nil {
		log.Fatalf("Error loading %v: %v", resultsSrc, err)
	}

	eng := tournament.NewEngine(roster, results,
		glicko.NewSystem(tau), policy)
	eng.OnRound = func(round string) {
		fmt.Printf("Processing round: %v\n", round)
	}
	if err := eng.Run(); err != nil {
		log.Fatalf("Error recomputing ratings: %v", err)
	}

	diags := append(rosterDiags, resultDiags...)
	diags = append(diags, eng.Diagnostics()...)

	return eng, diags
}

// loadSources reads the players and results tables concurrently. Each source
// may be a local file path or an http(s) URL.
func loadSources(ctx context.Context, playersSrc,
	resultsSrc string) ([]byte, []byte, error) {

	client := webcache.NewCachedClient(ctx, 15*time.Minute)

	var playersData, resultsData []byte
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		playersData, err = readSource(ctx, client, playersSrc)
		return err
	})
	g.Go(func() error {
		var err error
		resultsData, err = readSource(ctx, client, resultsSrc)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return playersData, resultsData, nil
}

func readSource(ctx context.Context, client *http.Client,
	src string) ([]byte, error) {

	if !strings.HasPrefix(src, "http://") && !strings.HasPrefix(src, "https://") {
		data, err := os.ReadFile(src)
		if err != nil {
			return nil, fmt.Errorf("unable to read %v: %w", src, err)
		}
		return data, nil
	}

	req, err := http.NewRequestWithContext(ctx, "GET", src, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", internal.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("unable to fetch %v: %w", src, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d fetching %v", resp.StatusCode, src)
	}

	return io.ReadAll(resp.Body)
}

// writeReport writes one output table. A failure here must not abort the
// run; the recomputation itself already succeeded.
func writeReport(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
