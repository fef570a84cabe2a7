package data

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/icariumtech/mothership-console/events"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func testStore(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "galaxy", "star_map.yaml"), `
title: Known Space
camera:
  position: {x: 0, y: 120, z: 200}
  look_at: {x: 0, y: 0, z: 0}
  fov: 60
bodies:
  - name: Hyperion
    orbital_radius: 80
    orbital_period: 0
    initial_angle: 45
    visual_size: 3
    child_key: hyperion
  - name: Prospero
    orbital_radius: 140
    orbital_period: 0
    initial_angle: 210
    visual_size: 2.5
    child_key: prospero
`)

	writeFile(t, filepath.Join(root, "galaxy", "hyperion", "location.yaml"), `
name: Hyperion System
description: Mining frontier.
`)

	writeFile(t, filepath.Join(root, "galaxy", "hyperion", "system_map.yaml"), `
title: Hyperion System
camera:
  position: {x: 0, y: 60, z: 110}
  look_at: {x: 0, y: 0, z: 0}
  fov: 55
central:
  name: Hyperion
  visual_size: 8
bodies:
  - name: Erebus
    orbital_radius: 30
    orbital_period: 18
    initial_angle: 0
    inclination: 3
    visual_size: 1.5
    child_key: hyperion/erebus
  - name: Thanatos
    orbital_radius: 55
    orbital_period: 42
    initial_angle: 120
    visual_size: 2.2
    has_ring: true
stations:
  - name: Relay Prime
    orbital_radius: 70
    orbital_period: 90
    initial_angle: 15
    visual_size: 0.6
`)

	writeFile(t, filepath.Join(root, "galaxy", "hyperion", "erebus", "orbit_map.yaml"), `
title: Erebus Orbit
camera:
  position: {x: 0, y: 20, z: 40}
  look_at: {x: 0, y: 0, z: 0}
  fov: 50
central:
  name: Erebus
  visual_size: 6
bodies:
  - name: Shade
    orbital_radius: 14
    orbital_period: 7
    initial_angle: 80
    visual_size: 0.8
markers:
  - name: Landing Site Bravo
    latitude: 12.5
    longitude: -30
`)

	writeFile(t, filepath.Join(root, "galaxy", "hyperion", "erebus", "outpost", "location.yaml"), `
name: Erebus Outpost
`)
	writeFile(t, filepath.Join(root, "galaxy", "hyperion", "erebus", "outpost", "map", "manifest.yaml"), `
name: Erebus Outpost
decks:
  - id: ops
    name: Operations Deck
    file: ops.yaml
    default: true
  - id: hab
    name: Habitation Deck
    file: hab.yaml
`)
	writeFile(t, filepath.Join(root, "galaxy", "hyperion", "erebus", "outpost", "map", "ops.yaml"), `
name: Operations Deck
grid_cols: 24
grid_rows: 16
`)
	writeFile(t, filepath.Join(root, "galaxy", "hyperion", "erebus", "outpost", "map", "hab.yaml"), `
name: Habitation Deck
grid_cols: 20
grid_rows: 12
`)

	return root
}

func TestLoadStarMap(t *testing.T) {
	l := NewLoader(testStore(t))

	doc, err := l.LoadStarMap()
	if err != nil {
		t.Fatalf("LoadStarMap: %v", err)
	}
	if doc.Tier != "galaxy" || doc.Title != "Known Space" {
		t.Errorf("unexpected doc header: tier=%q title=%q", doc.Tier, doc.Title)
	}
	if len(doc.Bodies) != 2 {
		t.Fatalf("expected 2 bodies, got %d", len(doc.Bodies))
	}
	if doc.Bodies[0].ChildKey != "hyperion" {
		t.Errorf("expected child key hyperion, got %q", doc.Bodies[0].ChildKey)
	}
	// Galaxy stars are authored stationary
	if doc.Bodies[0].OrbitalPeriod != 0 {
		t.Errorf("expected stationary star, period %v", doc.Bodies[0].OrbitalPeriod)
	}
	if doc.ExpectedCount() != 2 {
		t.Errorf("expected count 2, got %d", doc.ExpectedCount())
	}
}

func TestLoadSystemMap(t *testing.T) {
	l := NewLoader(testStore(t))

	doc, err := l.LoadSystemMap("hyperion")
	if err != nil {
		t.Fatalf("LoadSystemMap: %v", err)
	}
	if doc.Central == nil || doc.Central.Name != "Hyperion" {
		t.Fatalf("missing central star: %+v", doc.Central)
	}
	// 2 planets + 1 station + central
	if doc.ExpectedCount() != 4 {
		t.Errorf("expected count 4, got %d", doc.ExpectedCount())
	}
	if !doc.Bodies[1].HasRing {
		t.Errorf("Thanatos should have a ring")
	}
}

func TestLoadOrbitMap(t *testing.T) {
	l := NewLoader(testStore(t))

	doc, err := l.LoadOrbitMap("hyperion", "erebus")
	if err != nil {
		t.Fatalf("LoadOrbitMap: %v", err)
	}
	if doc.Key != "hyperion/erebus" {
		t.Errorf("unexpected key %q", doc.Key)
	}
	// 1 moon + 1 marker + central
	if doc.ExpectedCount() != 3 {
		t.Errorf("expected count 3, got %d", doc.ExpectedCount())
	}
}

func TestLoadLocationsHierarchy(t *testing.T) {
	l := NewLoader(testStore(t))

	locs, err := l.LoadLocations()
	if err != nil {
		t.Fatalf("LoadLocations: %v", err)
	}
	if len(locs) != 1 || locs[0].Slug != "hyperion" {
		t.Fatalf("expected single hyperion root, got %+v", locs)
	}
	sys := locs[0]
	if sys.Name != "Hyperion System" {
		t.Errorf("location.yaml not applied: %q", sys.Name)
	}
	if len(sys.Children) != 1 || sys.Children[0].Slug != "erebus" {
		t.Fatalf("expected erebus child, got %+v", sys.Children)
	}
	outpost := sys.Children[0].Children[0]
	if outpost.Slug != "outpost" || !outpost.HasMap {
		t.Errorf("outpost should carry a map: %+v", outpost)
	}
}

func TestLoadEncounterMapDecks(t *testing.T) {
	l := NewLoader(testStore(t))

	// Default deck
	m, manifest, err := l.LoadEncounterMap("outpost", "")
	if err != nil {
		t.Fatalf("LoadEncounterMap: %v", err)
	}
	if m.DeckID != "ops" || m.GridCols != 24 {
		t.Errorf("expected default ops deck, got %+v", m)
	}
	if manifest == nil || len(manifest.Decks) != 2 {
		t.Fatalf("expected 2-deck manifest, got %+v", manifest)
	}

	// Explicit deck
	m, _, err = l.LoadEncounterMap("outpost", "hab")
	if err != nil {
		t.Fatalf("explicit deck: %v", err)
	}
	if m.Name != "Habitation Deck" {
		t.Errorf("expected habitation deck, got %q", m.Name)
	}

	// Unknown deck
	if _, _, err := l.LoadEncounterMap("outpost", "cargo"); err == nil {
		t.Errorf("expected error for unknown deck")
	}
}

func TestStoreFetcherKeys(t *testing.T) {
	f := NewStoreFetcher(NewLoader(testStore(t)))
	ctx := context.Background()

	for key, tier := range map[string]string{
		"":                "galaxy",
		"galaxy":          "galaxy",
		"hyperion":        "system",
		"hyperion/erebus": "orbit",
	} {
		doc, err := f.FetchTier(ctx, key)
		if err != nil {
			t.Fatalf("FetchTier(%q): %v", key, err)
		}
		if doc.Tier != tier {
			t.Errorf("FetchTier(%q): tier %q, want %q", key, doc.Tier, tier)
		}
	}
}

func TestCachingFetcher(t *testing.T) {
	queue := events.NewQueue()
	f := NewCachingFetcher(NewStoreFetcher(NewLoader(testStore(t))), queue)
	ctx := context.Background()

	doc1, err := f.FetchTier(ctx, "hyperion")
	if err != nil {
		t.Fatal(err)
	}
	doc2, _ := f.FetchTier(ctx, "hyperion")
	if doc1 != doc2 {
		t.Errorf("expected cache hit to return the same document")
	}

	// Missing key reports failure but does not panic
	if _, err := f.FetchTier(ctx, "nonesuch"); err == nil {
		t.Errorf("expected error for unknown system")
	}

	evs := queue.Consume()
	var loaded, failed int
	for _, ev := range evs {
		switch ev.Type {
		case events.EventDataLoaded:
			loaded++
		case events.EventDataFailed:
			failed++
		}
	}
	if loaded != 1 || failed != 1 {
		t.Errorf("expected 1 loaded + 1 failed event, got %d/%d", loaded, failed)
	}
}

func TestPrefetchAllSurvivesFailures(t *testing.T) {
	f := NewCachingFetcher(NewStoreFetcher(NewLoader(testStore(t))), nil)

	err := f.PrefetchAll(context.Background(), []string{"galaxy", "hyperion", "missing", "hyperion/erebus"})
	if err != nil {
		t.Fatalf("PrefetchAll should not fail: %v", err)
	}

	// Good keys are now warm
	doc, err := f.FetchTier(context.Background(), "hyperion/erebus")
	if err != nil || doc.Tier != "orbit" {
		t.Errorf("expected warm orbit doc, got %v, %v", doc, err)
	}
}
