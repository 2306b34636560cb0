package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"time"

	"github.com/osse101/FarmBot_Go/internal/compose"
	"github.com/osse101/FarmBot_Go/internal/domain"
	"github.com/osse101/FarmBot_Go/internal/feed"
	"github.com/osse101/FarmBot_Go/internal/status"
)

type CheckServerCommand struct{}

func (c *CheckServerCommand) Name() string {
	return "check-server"
}

func (c *CheckServerCommand) Description() string {
	return "Fetch a server's feeds once and print the status fields"
}

func (c *CheckServerCommand) Run(args []string) error {
	fs := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	stats := fs.String("stats", "", "dedicated-server-stats.xml URL (required)")
	career := fs.String("career", "", "careerSavegame feed URL")
	vehicles := fs.String("vehicles", "", "vehicles feed URL")
	economy := fs.String("economy", "", "economy feed URL")
	mods := fs.String("mods", "", "mod list page URL")
	timeout := fs.Duration("timeout", domain.DefaultFeedTimeout, "per-feed timeout")
	guard := fs.Bool("ssrf-guard", false, "refuse private network targets")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *stats == "" {
		return errors.New("-stats is required")
	}

	server := domain.ServerConfig{
		ID:   "check",
		Name: "check",
		Feeds: domain.FeedURLs{
			Stats:    *stats,
			Career:   *career,
			Vehicles: *vehicles,
			Economy:  *economy,
			ModList:  *mods,
		},
	}

	fetcher := feed.NewFetcher(feed.Config{Timeout: *timeout, SSRFGuard: *guard, AllowedPorts: []int{80, 443, 8080}})
	agg := status.NewAggregator(fetcher, time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), *timeout+5*time.Second)
	defer cancel()

	PrintHeader("Checking " + *stats)
	st := agg.Check(ctx, server)
	if !st.Online {
		PrintWarning("Offline: %s", st.Reason)
	} else {
		PrintSuccess("Online: %s (%d/%d players)", st.Name, len(st.Players), st.Capacity)
	}

	candidates := compose.Candidates(ctx, st, domain.DisplaySettings{})
	for _, f := range candidates {
		fmt.Printf("  %-28s %s\n", f.Label, f.Value)
	}
	if len(candidates) > domain.MaxEmbedFields {
		PrintInfo("%d fields visible; an embed shows %d at a time with rotation", len(candidates), domain.MaxEmbedFields)
	}
	return nil
}
