/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/mikeb26/boylstonchessclub-ratings/clubsite"
	"github.com/mikeb26/boylstonchessclub-ratings/glicko"
	"github.com/mikeb26/boylstonchessclub-ratings/internal/webcache"
)

func handleFetch(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("fetch", flag.ExitOnError)
	eventID := fs.Int("eventid", 0, "Event ID to fetch entries for")
	outputPath := fs.String("output", "players.txt",
		"Where to write the seed ratings table")
	if err := fs.Parse(args); err != nil {
		os.Exit(1)
	}
	if *eventID <= 0 {
		fmt.Fprintln(os.Stderr, "Please provide a valid --eventid ID.")
		fs.Usage()
		os.Exit(1)
	}

	client := webcache.NewCachedClient(ctx, 15*time.Minute)
	event, err := clubsite.FetchEventEntries(ctx, client, int64(*eventID))
	if err != nil {
		log.Fatalf("Error fetching entries: %v", err)
	}
	if len(event.Entries) == 0 {
		log.Fatalf("Event %v has no entries yet", *eventID)
	}

	f, err := os.Create(*outputPath)
	if err != nil {
		log.Fatalf("Error creating %v: %v", *outputPath, err)
	}
	defer f.Close()

	if err := clubsite.WriteRosterSeed(f, event.Entries,
		glicko.NewRating()); err != nil {
		log.Fatalf("Error writing %v: %v", *outputPath, err)
	}

	when := ""
	if !event.Date.IsZero() {
		when = fmt.Sprintf(" (%v)", event.Date.Format("2006-01-02"))
	}
	fmt.Printf("Wrote %d players from %v%v to %v\n", len(event.Entries),
		event.EventName, when, *outputPath)
}
