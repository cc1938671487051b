package trip

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultCatalog_HasAllBatches(t *testing.T) {
	t.Parallel()

	c, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog() error = %v", err)
	}

	all := c.All()
	if len(all) != 3 {
		t.Fatalf("expected 3 batches, got %d", len(all))
	}
	for i, id := range BatchIDs {
		if all[i].ID != id {
			t.Errorf("All()[%d].ID = %q; want %q", i, all[i].ID, id)
		}
		if all[i].Schema == nil {
			t.Errorf("batch %q has no schema", id)
		}
	}

	place, _ := c.Get(BatchPlaceInfo)
	if !strings.HasPrefix(place.Description, "Generate a description of information about a place") {
		t.Errorf("unexpected place description %q", place.Description)
	}
	itinerary, _ := c.Get(BatchItinerary)
	if !strings.Contains(itinerary.Description, "Top Places to Visit") {
		t.Errorf("unexpected itinerary description %q", itinerary.Description)
	}
}

func TestCatalog_Get_Unknown(t *testing.T) {
	t.Parallel()

	c, err := DefaultCatalog()
	if err != nil {
		t.Fatalf("DefaultCatalog() error = %v", err)
	}
	if _, err := c.Get("weather"); !errors.Is(err, ErrUnknownBatch) {
		t.Errorf("expected ErrUnknownBatch, got %v", err)
	}
}

func TestParseBatchID(t *testing.T) {
	t.Parallel()

	cases := map[string]BatchID{
		"place_info": BatchPlaceInfo,
		"batch1":     BatchPlaceInfo,
		" Place ":    BatchPlaceInfo,
		"adventure":  BatchAdventure,
		"BATCH2":     BatchAdventure,
		"itinerary":  BatchItinerary,
		"batch3":     BatchItinerary,
	}
	for in, want := range cases {
		got, err := ParseBatchID(in)
		if err != nil || got != want {
			t.Errorf("ParseBatchID(%q) = (%q, %v); want %q", in, got, err, want)
		}
	}
	if _, err := ParseBatchID("batch4"); !errors.Is(err, ErrUnknownBatch) {
		t.Errorf("expected ErrUnknownBatch for batch4, got %v", err)
	}
}

func TestParseCatalog_Validation(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"missing batch": `
batches:
  - {id: place_info, description: a}
  - {id: adventure, description: b}
`,
		"duplicate": `
batches:
  - {id: place_info, description: a}
  - {id: batch1, description: a2}
  - {id: adventure, description: b}
  - {id: itinerary, description: c}
`,
		"empty description": `
batches:
  - {id: place_info, description: " "}
  - {id: adventure, description: b}
  - {id: itinerary, description: c}
`,
		"unknown id": `
batches:
  - {id: weather, description: w}
`,
		"bad yaml": "batches: [",
	}
	for name, doc := range cases {
		if _, err := ParseCatalog([]byte(doc)); err == nil {
			t.Errorf("%s: expected error, got nil", name)
		}
	}
}

func TestParseCatalog_AliasesNormalised(t *testing.T) {
	t.Parallel()

	c, err := ParseCatalog([]byte(`
batches:
  - {id: batch1, title: One, description: d1}
  - {id: batch2, title: Two, description: d2}
  - {id: batch3, title: Three, description: d3}
`))
	if err != nil {
		t.Fatalf("ParseCatalog() error = %v", err)
	}
	b, err := c.Get(BatchAdventure)
	if err != nil || b.Title != "Two" || b.ID != BatchAdventure {
		t.Errorf("Get(adventure) = (%+v, %v)", b, err)
	}
}

func TestLoadCatalog_FromFileAndDefault(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "batches.yaml")
	doc := `
batches:
  - {id: place_info, description: custom place}
  - {id: adventure, description: custom adventure}
  - {id: itinerary, description: custom itinerary}
`
	if err := os.WriteFile(path, []byte(doc), 0o600); err != nil {
		t.Fatalf("write catalog: %v", err)
	}

	c, err := LoadCatalog(path)
	if err != nil {
		t.Fatalf("LoadCatalog(%q) error = %v", path, err)
	}
	if b, _ := c.Get(BatchPlaceInfo); b.Description != "custom place" {
		t.Errorf("expected override description, got %q", b.Description)
	}

	if _, err := LoadCatalog(""); err != nil {
		t.Errorf("LoadCatalog(\"\") error = %v; want embedded catalog", err)
	}
	if _, err := LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}
