// Package mcpserver exposes the trip generators as Model Context Protocol
// tools so MCP clients can call them directly.
package mcpserver

import (
	"context"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/rs/zerolog"

	"github.com/matiasleandrokruk/tripgen/internal/domain/trip"
	"github.com/matiasleandrokruk/tripgen/internal/version"
)

// Tool names.
const (
	ToolPlaceInfo = "place_info"
	ToolAdventure = "adventure"
	ToolItinerary = "itinerary"
)

// Generator is the subset of trip.Service the tools call.
type Generator interface {
	GeneratePlaceInfo(ctx context.Context, promptText string) (string, error)
	GenerateAdventure(ctx context.Context, in trip.Input) (string, error)
	GenerateItinerary(ctx context.Context, in trip.Input) (string, error)
}

// PlaceArgs are the place_info tool arguments.
type PlaceArgs struct {
	Prompt string `json:"prompt" jsonschema:"place or location to describe"`
}

// TripArgs are the adventure and itinerary tool arguments.
type TripArgs struct {
	Prompt              string   `json:"prompt" jsonschema:"free-text trip request"`
	ActivityPreferences []string `json:"activityPreferences,omitempty" jsonschema:"preferred activities"`
	FromDate            *int64   `json:"fromDate,omitempty" jsonschema:"trip start as epoch milliseconds"`
	ToDate              *int64   `json:"toDate,omitempty" jsonschema:"trip end as epoch milliseconds"`
	Companion           string   `json:"companion,omitempty" jsonschema:"who the traveller goes with"`
}

func (a TripArgs) input() trip.Input {
	return trip.Input{
		UserPrompt:          a.Prompt,
		ActivityPreferences: a.ActivityPreferences,
		FromDate:            a.FromDate,
		ToDate:              a.ToDate,
		Companion:           a.Companion,
	}
}

// New builds an MCP server named "tripgen" with one tool per batch.
func New(gen Generator, logger zerolog.Logger) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "tripgen", Version: version.Version}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolPlaceInfo,
		Description: "General information about a place and the best time to visit, as JSON text.",
	}, func(ctx context.Context, _ *mcp.CallToolRequest, args PlaceArgs) (*mcp.CallToolResult, any, error) {
		if strings.TrimSpace(args.Prompt) == "" {
			return errorResult("prompt is required"), nil, nil
		}
		text, err := gen.GeneratePlaceInfo(ctx, args.Prompt)
		return toolResult(logger, ToolPlaceInfo, text, err), nil, nil
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolAdventure,
		Description: "Adventure activities, local cuisine and a packing checklist for a trip, as JSON text.",
	}, tripTool(gen.GenerateAdventure, ToolAdventure, logger))

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolItinerary,
		Description: "A day-by-day itinerary plus top places with coordinates, as JSON text.",
	}, tripTool(gen.GenerateItinerary, ToolItinerary, logger))

	return server
}

// Serve runs the server over stdin/stdout until ctx is done or the client
// disconnects.
func Serve(ctx context.Context, gen Generator, logger zerolog.Logger) error {
	return New(gen, logger).Run(ctx, &mcp.StdioTransport{})
}

func tripTool(
	generate func(context.Context, trip.Input) (string, error),
	name string,
	logger zerolog.Logger,
) mcp.ToolHandlerFor[TripArgs, any] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, args TripArgs) (*mcp.CallToolResult, any, error) {
		if strings.TrimSpace(args.Prompt) == "" {
			return errorResult("prompt is required"), nil, nil
		}
		text, err := generate(ctx, args.input())
		return toolResult(logger, name, text, err), nil, nil
	}
}

// toolResult reports generation failures as tool errors so the model sees
// them, rather than as protocol errors.
func toolResult(logger zerolog.Logger, tool, text string, err error) *mcp.CallToolResult {
	if err != nil {
		logger.Warn().Err(err).Str("tool", tool).Msg("tool call failed")
		return errorResult(err.Error())
	}
	return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: text}}}
}

func errorResult(msg string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: msg}},
	}
}
