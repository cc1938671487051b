// Package trip builds travel prompts and runs them through an LLM provider.
//
// A batch pairs a fixed task description with a descriptive JSON schema.
// There are exactly three: place information, adventure recommendations and
// an itinerary. The model's answer is returned verbatim; it is never checked
// against the schema.
package trip

import (
	_ "embed"
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// BatchID identifies one of the fixed prompt/schema pairings.
type BatchID string

const (
	BatchPlaceInfo BatchID = "place_info"
	BatchAdventure BatchID = "adventure"
	BatchItinerary BatchID = "itinerary"
)

// BatchIDs lists every batch in catalog order.
var BatchIDs = []BatchID{BatchPlaceInfo, BatchAdventure, BatchItinerary}

// ErrUnknownBatch is returned for ids outside BatchIDs.
var ErrUnknownBatch = errors.New("trip: unknown batch")

// ParseBatchID accepts the canonical ids plus the numbered aliases
// "batch1".."batch3".
func ParseBatchID(s string) (BatchID, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case string(BatchPlaceInfo), "batch1", "place":
		return BatchPlaceInfo, nil
	case string(BatchAdventure), "batch2":
		return BatchAdventure, nil
	case string(BatchItinerary), "batch3":
		return BatchItinerary, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownBatch, s)
}

// Batch is one prompt/schema pairing.
type Batch struct {
	ID          BatchID        `yaml:"id" json:"id"`
	Title       string         `yaml:"title" json:"title"`
	Description string         `yaml:"description" json:"description"`
	Schema      map[string]any `yaml:"schema" json:"schema,omitempty"`
}

//go:embed batches.yaml
var defaultCatalogYAML []byte

// Catalog holds the three batches, keyed by id.
type Catalog struct {
	batches map[BatchID]Batch
}

type catalogFile struct {
	Batches []Batch `yaml:"batches"`
}

// DefaultCatalog parses the catalog compiled into the binary.
func DefaultCatalog() (*Catalog, error) {
	return ParseCatalog(defaultCatalogYAML)
}

// LoadCatalog reads a YAML catalog from path. An empty path means DefaultCatalog.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("trip: read catalog %q: %w", path, err)
	}
	return ParseCatalog(data)
}

// ParseCatalog decodes and validates a YAML catalog. Every known batch must
// be present exactly once with a non-empty description.
func ParseCatalog(data []byte) (*Catalog, error) {
	var file catalogFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("trip: parse catalog: %w", err)
	}

	c := &Catalog{batches: make(map[BatchID]Batch, len(BatchIDs))}
	for _, b := range file.Batches {
		id, err := ParseBatchID(string(b.ID))
		if err != nil {
			return nil, fmt.Errorf("trip: parse catalog: %w", err)
		}
		b.ID = id
		if _, dup := c.batches[b.ID]; dup {
			return nil, fmt.Errorf("trip: parse catalog: batch %q defined twice", b.ID)
		}
		if strings.TrimSpace(b.Description) == "" {
			return nil, fmt.Errorf("trip: parse catalog: batch %q has no description", b.ID)
		}
		c.batches[b.ID] = b
	}
	for _, id := range BatchIDs {
		if _, ok := c.batches[id]; !ok {
			return nil, fmt.Errorf("trip: parse catalog: batch %q missing", id)
		}
	}
	return c, nil
}

// Get returns the batch for id.
func (c *Catalog) Get(id BatchID) (Batch, error) {
	b, ok := c.batches[id]
	if !ok {
		return Batch{}, fmt.Errorf("%w: %q", ErrUnknownBatch, id)
	}
	return b, nil
}

// All returns the batches in BatchIDs order.
func (c *Catalog) All() []Batch {
	out := make([]Batch, 0, len(BatchIDs))
	for _, id := range BatchIDs {
		out = append(out, c.batches[id])
	}
	return out
}
