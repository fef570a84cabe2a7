package data

// Campaign data schema. These structs map directly to the YAML files of the
// campaign store and to the JSON responses of the tier-document API; the
// choreography core treats them as read-only input.

// Vec is a 3-component position or direction in document space
type Vec struct {
	X float64 `yaml:"x" json:"x"`
	Y float64 `yaml:"y" json:"y"`
	Z float64 `yaml:"z" json:"z"`
}

// CameraPose is a tier's authored resting camera
type CameraPose struct {
	Position Vec     `yaml:"position" json:"position"`
	LookAt   Vec     `yaml:"look_at" json:"look_at"`
	FOV      float64 `yaml:"fov" json:"fov"`
}

// BodyRecord describes one orbiting (or stationary) renderable element.
// OrbitalPeriod <= 0 marks an authored stationary placement.
type BodyRecord struct {
	Name          string  `yaml:"name" json:"name"`
	OrbitalRadius float64 `yaml:"orbital_radius" json:"orbital_radius"`
	OrbitalPeriod float64 `yaml:"orbital_period" json:"orbital_period"`
	InitialAngle  float64 `yaml:"initial_angle" json:"initial_angle"`
	Inclination   float64 `yaml:"inclination" json:"inclination"`
	VisualSize    float64 `yaml:"visual_size" json:"visual_size"`
	Texture       string  `yaml:"texture,omitempty" json:"texture,omitempty"`
	HasRing       bool    `yaml:"has_ring,omitempty" json:"has_ring,omitempty"`
	Description   string  `yaml:"description,omitempty" json:"description,omitempty"`
	// Slug of the child tier this element dives into, when one exists
	ChildKey string `yaml:"child_key,omitempty" json:"child_key,omitempty"`
}

// StationRecord describes an artificial satellite or deep-space station
type StationRecord struct {
	Name          string  `yaml:"name" json:"name"`
	OrbitalRadius float64 `yaml:"orbital_radius" json:"orbital_radius"`
	OrbitalPeriod float64 `yaml:"orbital_period" json:"orbital_period"`
	InitialAngle  float64 `yaml:"initial_angle" json:"initial_angle"`
	Inclination   float64 `yaml:"inclination" json:"inclination"`
	VisualSize    float64 `yaml:"visual_size" json:"visual_size"`
	Description   string  `yaml:"description,omitempty" json:"description,omitempty"`
}

// MarkerRecord describes a fixed surface marker on the central body
// (landing site, settlement, anomaly). Latitude/longitude in degrees.
type MarkerRecord struct {
	Name        string  `yaml:"name" json:"name"`
	Latitude    float64 `yaml:"latitude" json:"latitude"`
	Longitude   float64 `yaml:"longitude" json:"longitude"`
	Description string  `yaml:"description,omitempty" json:"description,omitempty"`
}

// CentralRecord describes the tier's central body (the star of a system
// map, the planet of an orbit map). Absent on the galaxy tier.
type CentralRecord struct {
	Name       string  `yaml:"name" json:"name"`
	VisualSize float64 `yaml:"visual_size" json:"visual_size"`
	Texture    string  `yaml:"texture,omitempty" json:"texture,omitempty"`
}

// TierDocument is the complete renderable description of one tier
type TierDocument struct {
	Tier     string          `yaml:"tier" json:"tier"` // "galaxy", "system", "orbit"
	Key      string          `yaml:"key,omitempty" json:"key"`
	Title    string          `yaml:"title" json:"title"`
	Camera   CameraPose      `yaml:"camera" json:"camera"`
	Central  *CentralRecord  `yaml:"central,omitempty" json:"central,omitempty"`
	Bodies   []BodyRecord    `yaml:"bodies" json:"bodies"`
	Stations []StationRecord `yaml:"stations,omitempty" json:"stations,omitempty"`
	Markers  []MarkerRecord  `yaml:"markers,omitempty" json:"markers,omitempty"`
}

// ExpectedCount returns the number of renderable objects the readiness gate
// waits for: bodies + stations + markers + the central body when present
func (d *TierDocument) ExpectedCount() int {
	n := len(d.Bodies) + len(d.Stations) + len(d.Markers)
	if d.Central != nil {
		n++
	}
	return n
}

// Location is one node of the campaign location hierarchy
type Location struct {
	Name        string      `yaml:"name" json:"name"`
	Slug        string      `yaml:"slug,omitempty" json:"slug"`
	Description string      `yaml:"description,omitempty" json:"description,omitempty"`
	HasMap      bool        `yaml:"-" json:"has_map"`
	Children    []*Location `yaml:"-" json:"children,omitempty"`
}

// DeckRef is one deck entry of a multi-deck encounter map manifest
type DeckRef struct {
	ID      string `yaml:"id" json:"id"`
	Name    string `yaml:"name" json:"name"`
	File    string `yaml:"file" json:"file"`
	Default bool   `yaml:"default,omitempty" json:"default,omitempty"`
}

// DeckManifest lists the decks of a multi-deck encounter location
type DeckManifest struct {
	Name  string    `yaml:"name" json:"name"`
	Decks []DeckRef `yaml:"decks" json:"decks"`
}

// EncounterMap is a single deck's map: grid metadata plus a raster image
// path (PNG/JPEG/WebP, or a PDF deck plan rasterized at load time)
type EncounterMap struct {
	Name      string `yaml:"name" json:"name"`
	Slug      string `yaml:"slug,omitempty" json:"slug"`
	DeckID    string `yaml:"deck_id,omitempty" json:"deck_id,omitempty"`
	GridCols  int    `yaml:"grid_cols,omitempty" json:"grid_cols,omitempty"`
	GridRows  int    `yaml:"grid_rows,omitempty" json:"grid_rows,omitempty"`
	Notes     string `yaml:"notes,omitempty" json:"notes,omitempty"`
	ImagePath string `yaml:"-" json:"image_path,omitempty"`
}
