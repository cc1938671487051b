package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/matiasleandrokruk/tripgen/internal/domain/trip"
	"github.com/matiasleandrokruk/tripgen/internal/infra/config"
)

// runGenerate performs one generation and writes the raw model text to stdout.
func runGenerate(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("generate", flag.ContinueOnError)
	fs.SetOutput(stderr)

	batch := fs.String("batch", "", "Batch id: place_info|adventure|itinerary (or batch1..batch3)")
	prompt := fs.String("prompt", "", "Free-text request")
	companion := fs.String("companion", "", "Who the traveller goes with")
	activities := fs.String("activities", "", "Comma-separated activity preferences")

	var in trip.Input
	fs.Func("from", "Trip start as an integer timestamp", int64Flag(&in.FromDate))
	fs.Func("to", "Trip end as an integer timestamp", int64Flag(&in.ToDate))

	if err := fs.Parse(args); err != nil {
		return 2
	}

	id, err := trip.ParseBatchID(*batch)
	if err != nil {
		fmt.Fprintf(stderr, "tripgen generate: %v\n", err) //nolint:errcheck
		return 2
	}
	if strings.TrimSpace(*prompt) == "" {
		fmt.Fprintln(stderr, "tripgen generate: --prompt is required") //nolint:errcheck
		return 2
	}

	in.UserPrompt = *prompt
	in.Companion = *companion
	in.ActivityPreferences = splitList(*activities)

	cfg := config.Load()
	logger := newLogger(cfg)

	svc, err := newService(cfg, logger)
	if err != nil {
		fmt.Fprintf(stderr, "tripgen generate: %v\n", err) //nolint:errcheck
		return 1
	}

	text, err := svc.Generate(ctx, id, in)
	if err != nil {
		fmt.Fprintf(stderr, "tripgen generate: %v\n", err) //nolint:errcheck
		return 1
	}
	fmt.Fprintln(stdout, text) //nolint:errcheck
	return 0
}

func int64Flag(dst **int64) func(string) error {
	return func(s string) error {
		v, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return fmt.Errorf("not an integer: %q", s)
		}
		*dst = &v
		return nil
	}
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
