/* Copyright © 2026 Mike Brown. All Rights Reserved.
 *
 * See LICENSE file at the root of this repository for license terms
 */

// Package clubsite retrieves tournament entry lists from the Boylston Chess
// Club website so a roster file can be seeded for players who have no club
// rating on record yet.
package clubsite

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/sync/errgroup"

	"github.com/mikeb26/boylstonchessclub-ratings/glicko"
	"github.com/mikeb26/boylstonchessclub-ratings/internal"
)

// Entry is one row of the club entries page.
type Entry struct {
	SeatNumber int
	Name       string
	Rating     int // 0 when unrated
	MemberID   string
}

// EventEntries holds the entry list for one club event.
type EventEntries struct {
	EventName string
	Date      time.Time
	Entries   []Entry
}

// vended by https://beta.boylstonchess.org/api/event/<eventId>
type apiEventResponse struct {
	EventID     int    `json:"eventId"`
	Title       string `json:"title"`
	DateDisplay string `json:"dateDisplay"`
}

// FetchEventEntries retrieves the entries page and event summary for the
// given club event id. The two requests are issued concurrently.
func FetchEventEntries(ctx context.Context, client *http.Client,
	eventID int64) (*EventEntries, error) {

	entriesURL := fmt.Sprintf("https://boylstonchess.org/tournament/entries/%d",
		eventID)
	eventURL := fmt.Sprintf("https://beta.boylstonchess.org/api/event/%d",
		eventID)

	var doc *goquery.Document
	var detail apiEventResponse

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		doc, err = fetchDoc(ctx, client, entriesURL)
		if err != nil {
			return fmt.Errorf("unable to fetch entries page: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		if err := fetchJSON(ctx, client, eventURL, &detail); err != nil {
			return fmt.Errorf("unable to fetch event summary: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	date, err := internal.ParseDateOrZero(detail.DateDisplay)
	if err != nil {
		// best effort; the date only decorates output
		date = time.Time{}
	}

	return &EventEntries{
		EventName: detail.Title,
		Date:      date,
		Entries:   parseEntries(doc),
	}, nil
}

// parseEntries extracts entry rows from the members table in the document.
func parseEntries(doc *goquery.Document) []Entry {
	var entries []Entry
	doc.Find("table#members tbody tr").Each(func(_ int, s *goquery.Selection) {
		cells := s.Find("td")
		if cells.Length() < 4 {
			return
		}
		num, _ := strconv.Atoi(strings.TrimSpace(cells.Eq(0).Text()))
		name := strings.TrimSpace(cells.Eq(1).Text())
		rating := 0
		if r, err := strconv.Atoi(strings.TrimSpace(cells.Eq(2).Text())); err == nil {
			rating = r
		}
		memberID := strings.TrimSpace(cells.Eq(3).Text())
		if name == "" || memberID == "" {
			return
		}

		entries = append(entries, Entry{
			SeatNumber: num,
			Name:       internal.NormalizeName(name),
			Rating:     rating,
			MemberID:   memberID,
		})
	})

	return entries
}

// WriteRosterSeed emits a tab-delimited roster table for the given entries,
// suitable as the players file of a recalculation run. Players with a
// published rating keep it; unrated players start at the defaults. Deviation
// and volatility always start at the defaults since the club site publishes
// neither.
func WriteRosterSeed(w io.Writer, entries []Entry, defaults glicko.Rating) error {
	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	if err := cw.Write([]string{"ID", "Name", "Rating", "RD", "RV"}); err != nil {
		return fmt.Errorf("unable to write roster seed header: %w", err)
	}
	for _, entry := range entries {
		rating := entry.Rating
		if rating == 0 {
			rating = int(defaults.Value)
		}
		record := []string{
			entry.MemberID,
			entry.Name,
			strconv.Itoa(rating),
			strconv.Itoa(int(defaults.Deviation)),
			strconv.FormatFloat(defaults.Volatility, 'f', -1, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("unable to write roster seed row for %v: %w",
				entry.MemberID, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("unable to write roster seed: %w", err)
	}
	return nil
}

// fetchDoc gets the HTML document at the given URL using the configured
// User-Agent.
func fetchDoc(ctx context.Context, client *http.Client,
	url string) (*goquery.Document, error) {

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", internal.UserAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("status %d fetching %s", resp.StatusCode, url)
	}

	return goquery.NewDocumentFromReader(resp.Body)
}

func fetchJSON(ctx context.Context, client *http.Client, url string,
	out any) error {

	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", internal.UserAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("status %d fetching %s: %s", resp.StatusCode, url,
			string(body))
	}

	return json.NewDecoder(resp.Body).Decode(out)
}
