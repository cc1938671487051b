// tripgen generates travel information, adventure recommendations and
// itineraries with an LLM, as a one-shot CLI, an HTTP API or an MCP server.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/matiasleandrokruk/tripgen/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("tripgen", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	showVersion := fs.Bool("version", false, "Show version information")
	showHelp := fs.Bool("help", false, "Show help")

	if err := fs.Parse(args); err != nil {
		fmt.Fprintf(stderr, "tripgen: %v\n", err) //nolint:errcheck
		return 2
	}

	if *showVersion {
		fmt.Fprintln(stdout, version.String()) //nolint:errcheck
		return 0
	}

	if *showHelp {
		printHelp(stdout)
		return 0
	}

	rest := fs.Args()
	if len(rest) == 0 {
		printHelp(stderr)
		return 2
	}

	switch rest[0] {
	case "serve":
		return runServe(ctx, rest[1:], stderr)
	case "mcp":
		return runMCP(ctx, rest[1:], stderr)
	case "generate":
		return runGenerate(ctx, rest[1:], stdout, stderr)
	case "batches":
		return runBatches(rest[1:], stdout, stderr)
	case "version":
		fmt.Fprintln(stdout, version.String()) //nolint:errcheck
		return 0
	case "help":
		printHelp(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "tripgen: unknown command %q\n\n", rest[0]) //nolint:errcheck
		printHelp(stderr)
		return 2
	}
}

func printHelp(out io.Writer) {
	helpText := `tripgen - LLM travel planner

Usage:
  tripgen [options] <command> [flags]

Options:
  --version    Show version information
  --help       Show this help message

Commands:
  serve        Start the HTTP API (history, metrics, optional JWT auth)
  mcp          Serve the generators as MCP tools over stdio
  generate     Run one generation and print the raw model response
  batches      Print the batch catalog as JSON

Examples:
  tripgen serve --port 8080
  tripgen generate --batch place_info --prompt "Lisbon"
  tripgen generate --batch itinerary --prompt "4 days in Kyoto" --companion family --activities temples,food
  tripgen batches --file ./batches.yaml

Configuration is read from the environment (LLM_PROVIDER, OLLAMA_BASE_URL,
OLLAMA_MODEL, OPENAI_API_KEY, DB_PATH, JWT_SECRET, LOG_LEVEL, ...).`
	fmt.Fprintln(out, helpText) //nolint:errcheck
}
