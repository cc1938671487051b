package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/matiasleandrokruk/tripgen/internal/domain/trip"
	"github.com/matiasleandrokruk/tripgen/internal/infra/config"
)

// runBatches validates a catalog (the embedded one, TRIP_BATCHES_FILE or
// --file) and prints it as JSON.
func runBatches(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("batches", flag.ContinueOnError)
	fs.SetOutput(stderr)
	file := fs.String("file", config.Load().BatchesFile, "YAML catalog to validate instead of the embedded one")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	catalog, err := trip.LoadCatalog(*file)
	if err != nil {
		fmt.Fprintf(stderr, "tripgen batches: %v\n", err) //nolint:errcheck
		return 1
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(catalog.All()); err != nil {
		fmt.Fprintf(stderr, "tripgen batches: %v\n", err) //nolint:errcheck
		return 1
	}
	return 0
}
