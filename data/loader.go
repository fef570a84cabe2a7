// Package data loads campaign content from the filesystem store.
//
// Store layout, one directory tree per campaign:
//
//	data/galaxy/star_map.yaml                     galaxy tier
//	data/galaxy/<system>/location.yaml            location metadata
//	data/galaxy/<system>/system_map.yaml          system tier
//	data/galaxy/<system>/<body>/orbit_map.yaml    orbit tier
//	.../map/manifest.yaml + <deck>.yaml + image   encounter maps
package data

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Loader reads campaign data from a store root directory
type Loader struct {
	root      string
	galaxyDir string
}

// NewLoader creates a loader for the given campaign data directory
func NewLoader(root string) *Loader {
	return &Loader{
		root:      root,
		galaxyDir: filepath.Join(root, "galaxy"),
	}
}

func (l *Loader) readYAML(path string, out any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// LoadStarMap loads the galaxy-tier document
func (l *Loader) LoadStarMap() (*TierDocument, error) {
	doc := &TierDocument{}
	path := filepath.Join(l.galaxyDir, "star_map.yaml")
	if err := l.readYAML(path, doc); err != nil {
		return nil, fmt.Errorf("star map: %w", err)
	}
	doc.Tier = "galaxy"
	doc.Key = "galaxy"
	return doc, nil
}

// LoadSystemMap loads the system-tier document for a star system slug
func (l *Loader) LoadSystemMap(system string) (*TierDocument, error) {
	doc := &TierDocument{}
	path := filepath.Join(l.galaxyDir, system, "system_map.yaml")
	if err := l.readYAML(path, doc); err != nil {
		return nil, fmt.Errorf("system map %q: %w", system, err)
	}
	doc.Tier = "system"
	doc.Key = system
	return doc, nil
}

// LoadOrbitMap loads the orbit-tier document for a body within a system
func (l *Loader) LoadOrbitMap(system, body string) (*TierDocument, error) {
	doc := &TierDocument{}
	path := filepath.Join(l.galaxyDir, system, body, "orbit_map.yaml")
	if err := l.readYAML(path, doc); err != nil {
		return nil, fmt.Errorf("orbit map %q/%q: %w", system, body, err)
	}
	doc.Tier = "orbit"
	doc.Key = system + "/" + body
	return doc, nil
}

// LoadLocations builds the full location hierarchy from nested directories.
// Directories named "map", "maps", or "comms" are content, not child
// locations.
func (l *Loader) LoadLocations() ([]*Location, error) {
	entries, err := os.ReadDir(l.galaxyDir)
	if err != nil {
		return nil, fmt.Errorf("locations: %w", err)
	}

	var locations []*Location
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		loc, err := l.loadLocationRecursive(filepath.Join(l.galaxyDir, e.Name()), e.Name())
		if err != nil {
			return nil, err
		}
		locations = append(locations, loc)
	}
	sort.Slice(locations, func(i, j int) bool { return locations[i].Slug < locations[j].Slug })
	return locations, nil
}

func (l *Loader) loadLocationRecursive(dir, slug string) (*Location, error) {
	loc := &Location{Name: slug}
	metaPath := filepath.Join(dir, "location.yaml")
	if _, err := os.Stat(metaPath); err == nil {
		if err := l.readYAML(metaPath, loc); err != nil {
			return nil, err
		}
	}
	loc.Slug = slug

	if _, err := os.Stat(filepath.Join(dir, "map")); err == nil {
		loc.HasMap = true
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		switch e.Name() {
		case "map", "maps", "comms":
			continue
		}
		child, err := l.loadLocationRecursive(filepath.Join(dir, e.Name()), e.Name())
		if err != nil {
			return nil, err
		}
		loc.Children = append(loc.Children, child)
	}
	sort.Slice(loc.Children, func(i, j int) bool { return loc.Children[i].Slug < loc.Children[j].Slug })
	return loc, nil
}

// FindLocationDir resolves a location slug to its directory anywhere in the
// hierarchy; empty string when absent
func (l *Loader) FindLocationDir(slug string) string {
	var found string
	filepath.WalkDir(l.galaxyDir, func(path string, d os.DirEntry, err error) error {
		if err != nil || !d.IsDir() {
			return nil
		}
		switch d.Name() {
		case "map", "maps", "comms":
			return filepath.SkipDir
		}
		if d.Name() == slug {
			found = path
			return filepath.SkipAll
		}
		return nil
	})
	return found
}

// LoadEncounterMap loads a location's encounter map. With deckID empty the
// default deck of a multi-deck manifest (or the single-deck map file) is
// returned. The returned ImagePath, when set, is relative to the store root.
func (l *Loader) LoadEncounterMap(locationSlug, deckID string) (*EncounterMap, *DeckManifest, error) {
	dir := l.FindLocationDir(locationSlug)
	if dir == "" {
		return nil, nil, fmt.Errorf("location %q not found", locationSlug)
	}
	mapDir := filepath.Join(dir, "map")
	if _, err := os.Stat(mapDir); err != nil {
		return nil, nil, fmt.Errorf("location %q has no map", locationSlug)
	}

	manifest := &DeckManifest{}
	manifestPath := filepath.Join(mapDir, "manifest.yaml")
	if err := l.readYAML(manifestPath, manifest); err == nil && len(manifest.Decks) > 0 {
		deck := pickDeck(manifest, deckID)
		if deck == nil {
			return nil, manifest, fmt.Errorf("deck %q not found in %q", deckID, locationSlug)
		}
		m, err := l.loadDeckFile(mapDir, filepath.Join(mapDir, deck.File))
		if err != nil {
			return nil, manifest, err
		}
		m.DeckID = deck.ID
		return m, manifest, nil
	}

	// Single-deck: first yaml file that is not a manifest
	entries, err := os.ReadDir(mapDir)
	if err != nil {
		return nil, nil, err
	}
	for _, e := range entries {
		name := e.Name()
		if e.IsDir() || name == "manifest.yaml" || !strings.HasSuffix(name, ".yaml") {
			continue
		}
		m, err := l.loadDeckFile(mapDir, filepath.Join(mapDir, name))
		return m, nil, err
	}
	return nil, nil, fmt.Errorf("location %q has no map file", locationSlug)
}

func pickDeck(manifest *DeckManifest, deckID string) *DeckRef {
	for i := range manifest.Decks {
		d := &manifest.Decks[i]
		if deckID != "" && d.ID == deckID {
			return d
		}
		if deckID == "" && d.Default {
			return d
		}
	}
	if deckID == "" && len(manifest.Decks) > 0 {
		return &manifest.Decks[0]
	}
	return nil
}

func (l *Loader) loadDeckFile(mapDir, path string) (*EncounterMap, error) {
	m := &EncounterMap{}
	if err := l.readYAML(path, m); err != nil {
		return nil, err
	}
	stem := strings.TrimSuffix(filepath.Base(path), ".yaml")
	m.Slug = stem

	// Sibling raster (or PDF deck plan) with the same stem
	for _, ext := range []string{".png", ".jpg", ".jpeg", ".gif", ".webp", ".pdf"} {
		imgPath := filepath.Join(mapDir, stem+ext)
		if _, err := os.Stat(imgPath); err == nil {
			if rel, err := filepath.Rel(l.root, imgPath); err == nil {
				m.ImagePath = rel
			}
			break
		}
	}
	return m, nil
}

// Root returns the store root directory
func (l *Loader) Root() string {
	return l.root
}
