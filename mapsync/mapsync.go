// Package mapsync keeps one map-widget instance per listing collection
// in step with the pipeline's visible subset. The tile/widget library is
// consumed as a capability behind the Provider interface and never
// imported here.
package mapsync

import (
	"fmt"
	"html"
	"sync"
	"time"

	"rental-radar/models"
	"rental-radar/pipeline"
	"rental-radar/render"
	"rental-radar/utils"
)

const (
	fitBoundsPadding  = 40
	highlightDuration = 1500 * time.Millisecond
)

// Marker describes one badge-colored numeric marker.
type Marker struct {
	CardID string  `json:"card_id"`
	Lat    float64 `json:"lat"`
	Lon    float64 `json:"lon"`
	Score  int     `json:"score"`
	Color  string  `json:"color"`
	Title  string  `json:"title"`
	Price  int     `json:"price"`
}

// Map is one live widget instance.
type Map interface {
	AddMarker(m Marker, popupHTML string, onClick func())
	FitBounds(minLat, minLon, maxLat, maxLon float64, padding int)
	Remove() error
}

// Provider creates map instances inside a collection's container.
type Provider interface {
	CreateMap(collectionID string, center models.Coordinate) (Map, error)
}

// View is the card-list side of the bidirectional sync: marker clicks
// scroll to and transiently highlight the matching card.
type View interface {
	SetMapVisible(collectionID string, visible bool)
	ScrollToCard(cardID string)
	HighlightCard(cardID string, d time.Duration)
}

// Controller owns the map instance per collection. On every pipeline
// update it destroys and rebuilds the markers to match the exact visible
// subset — no incremental diffing, at the cost of discarding pan/zoom
// state.
type Controller struct {
	provider Provider
	view     View
	logger   *utils.Logger

	mu   sync.Mutex
	maps map[string]Map
}

// NewController wires the controller to a widget provider and card view.
func NewController(provider Provider, view View, logger *utils.Logger) *Controller {
	return &Controller{
		provider: provider,
		view:     view,
		logger:   logger,
		maps:     make(map[string]Map),
	}
}

// CollectionUpdated implements pipeline.Observer.
func (c *Controller) CollectionUpdated(collectionID string, _ pipeline.RenderState, visible []*models.Listing) {
	c.Sync(collectionID, visible)
}

// Sync rebuilds the collection's map against the visible subset. With no
// valid coordinates in the subset the container is hidden and no map is
// created.
func (c *Controller) Sync(collectionID string, visible []*models.Listing) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if old, ok := c.maps[collectionID]; ok {
		c.destroy(collectionID, old)
	}

	type placed struct {
		listing *models.Listing
		cardID  string
	}
	var valid []placed
	for i, l := range visible {
		if l.HasCoordinates() {
			valid = append(valid, placed{l, render.CardDOMID(collectionID, i)})
		}
	}

	if len(valid) == 0 {
		c.view.SetMapVisible(collectionID, false)
		return
	}

	var sumLat, sumLon float64
	for _, p := range valid {
		sumLat += *p.listing.Latitude
		sumLon += *p.listing.Longitude
	}
	center := models.Coordinate{
		Lat: sumLat / float64(len(valid)),
		Lon: sumLon / float64(len(valid)),
	}

	m, err := c.provider.CreateMap(collectionID, center)
	if err != nil {
		c.logger.Error("[mapsync] %s: create map: %v", collectionID, err)
		c.view.SetMapVisible(collectionID, false)
		return
	}

	minLat, minLon := *valid[0].listing.Latitude, *valid[0].listing.Longitude
	maxLat, maxLon := minLat, minLon
	for _, p := range valid {
		l, cardID := p.listing, p.cardID
		lat, lon := *l.Latitude, *l.Longitude
		if lat < minLat {
			minLat = lat
		}
		if lat > maxLat {
			maxLat = lat
		}
		if lon < minLon {
			minLon = lon
		}
		if lon > maxLon {
			maxLon = lon
		}

		tier := render.BadgeTierFor(l.Score())
		marker := Marker{
			CardID: cardID,
			Lat:    lat,
			Lon:    lon,
			Score:  l.Score(),
			Color:  render.BadgeColor(tier),
			Title:  l.Title,
			Price:  l.Price,
		}
		m.AddMarker(marker, popupHTML(l), func() {
			c.view.ScrollToCard(cardID)
			c.view.HighlightCard(cardID, highlightDuration)
		})
	}

	// A single listing keeps the centered default zoom.
	if len(valid) > 1 {
		m.FitBounds(minLat, minLon, maxLat, maxLon, fitBoundsPadding)
	}

	c.maps[collectionID] = m
	c.view.SetMapVisible(collectionID, true)
}

// destroy removes the previous instance unconditionally, guarding
// against the underlying library throwing mid-teardown.
func (c *Controller) destroy(collectionID string, m Map) {
	delete(c.maps, collectionID)
	defer func() {
		if r := recover(); r != nil {
			c.logger.Warn("[mapsync] %s: map teardown panicked: %v", collectionID, r)
		}
	}()
	if err := m.Remove(); err != nil {
		c.logger.Warn("[mapsync] %s: map teardown: %v", collectionID, err)
	}
}

func popupHTML(l *models.Listing) string {
	price := "price unknown"
	if l.Price > 0 {
		price = fmt.Sprintf("$%d/mo", l.Price)
	}
	return fmt.Sprintf("<b>%s</b><br>%s &middot; score %d", html.EscapeString(l.Title), price, l.Score())
}
