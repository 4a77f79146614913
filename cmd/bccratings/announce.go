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
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/mikeb26/boylstonchessclub-ratings/glicko"
)

const webhookEnvVar = "BCC_RATINGS_WEBHOOK_URL"

// Discord rejects message content longer than this.
const maxMessageLen = 2000

func handleAnnounce(ctx context.Context, args []string) {
	fs := flag.NewFlagSet("announce", flag.ExitOnError)
	playersSrc := fs.String("players", "", "Current ratings table (file or URL)")
	resultsSrc := fs.String("results", "", "Tournament results sheet (file or URL)")
	webhookURL := fs.String("webhook", os.Getenv(webhookEnvVar),
		"Discord webhook URL")
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
	webhookID, webhookToken, err := parseWebhookURL(*webhookURL)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Please provide a valid --webhook URL or set %v: %v\n",
			webhookEnvVar, err)
		os.Exit(1)
	}

	eng, diags := buildAndRun(ctx, *playersSrc, *resultsSrc, *tau, *lenient)

	content := fmt.Sprintf("```\n%v```", eng.BuildChangedSummary())
	if len(content) > maxMessageLen {
		const ellipsis = "...\n```"
		content = content[:maxMessageLen-len(ellipsis)] + ellipsis
	}

	// webhooks don't need a bot token
	session, err := discordgo.New("")
	if err != nil {
		log.Fatalf("Error creating discord session: %v", err)
	}
	_, err = session.WebhookExecute(webhookID, webhookToken, false,
		&discordgo.WebhookParams{Content: content})
	if err != nil {
		log.Fatalf("Error posting to webhook: %v", err)
	}

	fmt.Println("Posted rating changes.")
	if len(diags) > 0 {
		fmt.Fprintf(os.Stderr,
			"%d problems were encountered; review the warnings above.\n",
			len(diags))
	}
}

// parseWebhookURL splits a Discord webhook URL of the form
// https://discord.com/api/webhooks/<id>/<token> into its id and token.
func parseWebhookURL(url string) (string, string, error) {
	const marker = "/api/webhooks/"
	idx := strings.Index(url, marker)
	if idx < 0 {
		return "", "", fmt.Errorf("not a webhook URL: %q", url)
	}
	rest := strings.TrimSuffix(url[idx+len(marker):], "/")
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("not a webhook URL: %q", url)
	}
	return parts[0], parts[1], nil
}
