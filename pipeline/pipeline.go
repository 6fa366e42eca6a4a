// Package pipeline owns the raw listing set and active filter state for
// one collection, and produces the visible subset consumed by the card
// renderer and the map sync controller.
package pipeline

import (
	"fmt"
	"sort"
	"sync/atomic"

	"rental-radar/filter"
	"rental-radar/geo"
	"rental-radar/models"
	"rental-radar/utils"
)

// RenderState distinguishes "nothing fetched yet" from "valid data, zero
// post-filter matches" — the two get different empty-state treatments.
type RenderState int

const (
	StateNoData RenderState = iota
	StateNoResults
	StateResults
)

// Observer is notified with the visible subset after every recompute.
// Both the card renderer and the map sync controller register as
// observers.
type Observer interface {
	CollectionUpdated(collectionID string, state RenderState, visible []*models.Listing)
}

// AreaOption is one entry of a collection's area multi-select, populated
// from the collection's own data.
type AreaOption struct {
	Value string // slug
	Label string // "Name (count)"
	Count int
}

// Pipeline is the per-collection state machine. Two triggers: a data
// refresh replaces the raw set; a filter/sort mutation changes the
// state. Either one recomputes the visible subset and notifies the
// observers. All state is confined to one collection.
type Pipeline struct {
	id     string
	logger *utils.Logger

	raw         []*models.Listing
	state       filter.State
	areaOptions []AreaOption
	visible     []*models.Listing
	renderState RenderState
	loaded      bool

	observers  []Observer
	refreshing atomic.Bool
}

// New creates an empty pipeline for a collection. The filter state
// starts at all/all/no bounds/best-deal.
func New(id string, logger *utils.Logger) *Pipeline {
	return &Pipeline{
		id:          id,
		logger:      logger,
		state:       filter.NewState(),
		renderState: StateNoData,
	}
}

// ID returns the collection identifier.
func (p *Pipeline) ID() string { return p.id }

// Register adds an observer. Newly registered observers receive the next
// update, not a replay.
func (p *Pipeline) Register(o Observer) {
	p.observers = append(p.observers, o)
}

// Filter returns a copy of the active filter state.
func (p *Pipeline) Filter() filter.State {
	st := p.state
	st.SelectedAreas = append([]string(nil), p.state.SelectedAreas...)
	return st
}

// Visible returns the current filtered-and-sorted subset.
func (p *Pipeline) Visible() []*models.Listing { return p.visible }

// RenderState returns the current empty/results state.
func (p *Pipeline) RenderState() RenderState { return p.renderState }

// AreaOptions returns the multi-select options ranked by descending
// frequency in the raw set.
func (p *Pipeline) AreaOptions() []AreaOption { return p.areaOptions }

// SetListings replaces the raw set (data-refresh trigger). The area
// options are repopulated from the new data; already-selected values
// survive repopulation even if they dropped out of the data.
func (p *Pipeline) SetListings(raw []*models.Listing) {
	p.raw = raw
	p.loaded = true
	p.populateAreaOptions()
	p.logger.Debug("[pipeline] %s: raw set replaced (%d listings)", p.id, len(raw))
	p.recompute()
}

// SelectArea handles an area multi-select change. Mutual exclusivity
// with the "all" sentinel is enforced before recomputation.
func (p *Pipeline) SelectArea(value string) {
	p.state.SelectArea(value)
	p.recompute()
}

// DeselectArea removes an area from the multi-select.
func (p *Pipeline) DeselectArea(value string) {
	p.state.DeselectArea(value)
	p.recompute()
}

// SetBedrooms changes the bedroom bucket.
func (p *Pipeline) SetBedrooms(bucket string) {
	p.state.Bedrooms = bucket
	p.recompute()
}

// SetPriceBounds parses and applies the min/max price inputs. Unparsable
// input clears the corresponding bound.
func (p *Pipeline) SetPriceBounds(minRaw, maxRaw string) {
	p.state.MinPrice = filter.ParsePrice(minRaw)
	p.state.MaxPrice = filter.ParsePrice(maxRaw)
	p.recompute()
}

// SetSortKey changes the sort strategy.
func (p *Pipeline) SetSortKey(key string) {
	p.state.SortKey = key
	p.recompute()
}

// BeginRefresh marks a data refresh as in flight. It returns false when
// one is already running — the re-entrant trigger is a no-op, which is
// how concurrent refreshes are serialized.
func (p *Pipeline) BeginRefresh() bool {
	return p.refreshing.CompareAndSwap(false, true)
}

// EndRefresh re-enables the refresh trigger.
func (p *Pipeline) EndRefresh() {
	p.refreshing.Store(false)
}

func (p *Pipeline) recompute() {
	if !p.loaded {
		p.visible = nil
		p.renderState = StateNoData
		p.notify()
		return
	}

	matched := make([]*models.Listing, 0, len(p.raw))
	for _, l := range p.raw {
		if filter.Matches(l, &p.state) {
			matched = append(matched, l)
		}
	}
	p.visible = Sort(matched, p.state.SortKey)

	if len(p.visible) == 0 {
		p.renderState = StateNoResults
	} else {
		p.renderState = StateResults
	}
	p.notify()
}

func (p *Pipeline) notify() {
	for _, o := range p.observers {
		o.CollectionUpdated(p.id, p.renderState, p.visible)
	}
}

func (p *Pipeline) populateAreaOptions() {
	counts := make(map[string]int)
	names := make(map[string]string) // slug -> first-seen display name
	for _, l := range p.raw {
		if l.Neighborhood == "" {
			continue
		}
		slug := filter.Slug(l.Neighborhood)
		if slug == "" {
			continue
		}
		if _, seen := names[slug]; !seen {
			names[slug] = l.Neighborhood
		}
		counts[slug]++
	}

	options := make([]AreaOption, 0, len(counts))
	for slug, count := range counts {
		options = append(options, AreaOption{
			Value: slug,
			Label: fmt.Sprintf("%s (%d)", names[slug], count),
			Count: count,
		})
	}
	sort.Slice(options, func(i, j int) bool {
		if options[i].Count != options[j].Count {
			return options[i].Count > options[j].Count
		}
		return options[i].Value < options[j].Value
	})

	// A selected area that vanished from the data stays selectable.
	for _, selected := range p.state.SelectedAreas {
		if _, present := counts[selected]; !present {
			options = append(options, AreaOption{
				Value: selected,
				Label: fmt.Sprintf("%s (0)", geo.DisplayName(selected)),
			})
		}
	}

	p.areaOptions = options
}
