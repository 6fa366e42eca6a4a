package mapsync

import (
	"encoding/json"
	"sync"
	"time"

	"rental-radar/models"
)

// DocumentMap is an in-memory map instance: it records the markers,
// popups and click handlers the controller installs, for embedding into
// rendered output and for tests.
type DocumentMap struct {
	CollectionID string
	Center       models.Coordinate
	Markers      []Marker
	Popups       []string
	Fitted       bool
	BoundsMin    models.Coordinate
	BoundsMax    models.Coordinate
	Padding      int
	Removed      bool

	clicks []func()
}

// AddMarker implements Map.
func (d *DocumentMap) AddMarker(m Marker, popupHTML string, onClick func()) {
	d.Markers = append(d.Markers, m)
	d.Popups = append(d.Popups, popupHTML)
	d.clicks = append(d.clicks, onClick)
}

// FitBounds implements Map.
func (d *DocumentMap) FitBounds(minLat, minLon, maxLat, maxLon float64, padding int) {
	d.Fitted = true
	d.BoundsMin = models.Coordinate{Lat: minLat, Lon: minLon}
	d.BoundsMax = models.Coordinate{Lat: maxLat, Lon: maxLon}
	d.Padding = padding
}

// Remove implements Map.
func (d *DocumentMap) Remove() error {
	d.Removed = true
	return nil
}

// ClickMarker fires the click handler bound to marker i.
func (d *DocumentMap) ClickMarker(i int) {
	if i >= 0 && i < len(d.clicks) {
		d.clicks[i]()
	}
}

// Document is an in-memory Provider and View. The batch renderer uses it
// to capture marker sets per collection; tests use it to observe the
// controller's behavior.
type Document struct {
	mu          sync.Mutex
	maps        map[string]*DocumentMap
	visible     map[string]bool
	Scrolled    []string
	Highlighted []string
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{
		maps:    make(map[string]*DocumentMap),
		visible: make(map[string]bool),
	}
}

// CreateMap implements Provider.
func (d *Document) CreateMap(collectionID string, center models.Coordinate) (Map, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	m := &DocumentMap{CollectionID: collectionID, Center: center}
	d.maps[collectionID] = m
	return m, nil
}

// SetMapVisible implements View.
func (d *Document) SetMapVisible(collectionID string, visible bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.visible[collectionID] = visible
}

// ScrollToCard implements View.
func (d *Document) ScrollToCard(cardID string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Scrolled = append(d.Scrolled, cardID)
}

// HighlightCard implements View.
func (d *Document) HighlightCard(cardID string, _ time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.Highlighted = append(d.Highlighted, cardID)
}

// Map returns the current instance for a collection, or nil.
func (d *Document) Map(collectionID string) *DocumentMap {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.maps[collectionID]
}

// MapVisible reports the container's visibility for a collection.
func (d *Document) MapVisible(collectionID string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.visible[collectionID]
}

// MarkersJSON serializes a collection's markers for embedding into
// rendered output. A hidden or absent map serializes as an empty array.
func (d *Document) MarkersJSON(collectionID string) ([]byte, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	m, ok := d.maps[collectionID]
	if !ok || !d.visible[collectionID] {
		return []byte("[]"), nil
	}
	return json.Marshal(m.Markers)
}
