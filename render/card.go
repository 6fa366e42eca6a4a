// Package render turns listings into self-contained HTML cards. All
// logic that decides what a card shows (media treatment, badge tier,
// outbound link) is pure and testable without a DOM.
package render

import (
	"fmt"
	"html/template"
	"strings"

	"rental-radar/geo"
	"rental-radar/models"
	"rental-radar/pipeline"
	"rental-radar/utils"
)

// CardDOMID is the stable element id for a card at a position in the
// visible subset. The map sync controller derives the same id for its
// marker click targets.
func CardDOMID(collectionID string, index int) string {
	return fmt.Sprintf("card-%s-%d", collectionID, index)
}

const cardTemplate = `<div class="apt-card" id="{{.DOMID}}">
  <span class="deal-badge deal-{{.Tier}}" style="background:{{.TierColor}}">{{.Score}}</span>
  {{if .IsCarousel}}<div class="apt-carousel" data-count="{{len .Images}}">
    <button class="carousel-prev" aria-label="Previous">&#8249;</button>
    {{range $i, $img := .Images}}<img class="carousel-slide{{if eq $i 0}} active{{end}}" src="{{$img}}" loading="lazy" alt="">{{end}}
    <button class="carousel-next" aria-label="Next">&#8250;</button>
    <div class="carousel-dots">{{range $i, $img := .Images}}<span class="dot{{if eq $i 0}} active{{end}}" data-slide="{{$i}}"></span>{{end}}</div>
  </div>
  {{else if .IsThumbnail}}<img class="apt-thumb" src="{{.Thumbnail}}" loading="lazy" alt="">
  {{else if .IsMapTile}}<div class="apt-map-thumb" data-lat="{{.Lat}}" data-lon="{{.Lon}}"></div>
  {{else}}<div class="apt-placeholder">{{.Neighborhood}} &middot; <a href="{{.MapSearch}}" target="_blank" rel="noopener">view on map</a></div>
  {{end}}<div class="apt-body">
    <a class="apt-title" href="{{.Link}}" target="_blank" rel="noopener">{{.Title}}</a>
    <div class="apt-metrics">{{.PriceText}} &middot; {{.BedsText}}{{if .BathsText}} &middot; {{.BathsText}}{{end}}{{if .SqftText}} &middot; {{.SqftText}}{{end}}{{if .PerSqftText}} &middot; {{.PerSqftText}}{{end}}</div>
    {{if .DiscountText}}<div class="apt-discount">{{.DiscountText}}</div>{{end}}
    {{if .Analysis}}<p class="apt-analysis">{{.Analysis}}</p>{{end}}
  </div>
</div>`

const collectionTemplate = `<div class="apt-collection" id="collection-{{.CollectionID}}">
{{if .NoData}}<div class="empty-state">No listings loaded yet. Refresh to fetch data.</div>
{{else if .NoResults}}<div class="empty-state">No listings match the current filters.</div>
{{else}}{{range .Cards}}{{.}}
{{end}}{{end}}</div>`

type cardData struct {
	DOMID        string
	Title        string
	Link         string
	Tier         BadgeTier
	TierColor    string
	Score        int
	PriceText    string
	BedsText     string
	BathsText    string
	SqftText     string
	PerSqftText  string
	DiscountText string
	Analysis     string
	Neighborhood string
	IsCarousel   bool
	IsThumbnail  bool
	IsMapTile    bool
	Images       []string
	Thumbnail    string
	Lat          float64
	Lon          float64
	MapSearch    string
}

// CardRenderer renders one listing into a card. It is a pure function of
// the listing and the resolved coordinate.
type CardRenderer struct {
	tmpl   *template.Template
	rules  LinkRules
	region *geo.Region
}

// NewCardRenderer builds a renderer for one collection's link rules and
// region.
func NewCardRenderer(rules LinkRules, region *geo.Region) *CardRenderer {
	return &CardRenderer{
		tmpl:   template.Must(template.New("card").Parse(cardTemplate)),
		rules:  rules,
		region: region,
	}
}

// Render produces the card HTML for a listing. The coordinate is the
// listing's own when present, otherwise the geocode resolver's.
func (r *CardRenderer) Render(l *models.Listing, coord models.Coordinate, domID string) (string, error) {
	tier := BadgeTierFor(l.Score())
	media := SelectMedia(l, coord)

	data := cardData{
		DOMID:        domID,
		Title:        titleOrFallback(l),
		Link:         ResolveLink(l, r.rules),
		Tier:         tier,
		TierColor:    BadgeColor(tier),
		Score:        l.Score(),
		PriceText:    priceText(l),
		BedsText:     bedsText(l),
		Analysis:     l.DealAnalysis,
		Neighborhood: neighborhoodOrRegion(l, r.region),
		IsCarousel:   media == MediaCarousel,
		IsThumbnail:  media == MediaThumbnail,
		IsMapTile:    media == MediaMapTile,
		Images:       l.ImageURLs,
		Lat:          coord.Lat,
		Lon:          coord.Lon,
		MapSearch:    MapSearchURL(l, r.region.Name),
	}
	if data.IsThumbnail {
		data.Thumbnail = l.ThumbnailURL
		if data.Thumbnail == "" && len(l.ImageURLs) == 1 {
			data.Thumbnail = l.ImageURLs[0]
		}
	}
	if l.Bathrooms != nil {
		data.BathsText = strings.TrimSuffix(fmt.Sprintf("%.1f", *l.Bathrooms), ".0") + " ba"
	}
	if l.Sqft != nil {
		data.SqftText = fmt.Sprintf("%d sqft", *l.Sqft)
	}
	if l.PricePerSqft != nil {
		data.PerSqftText = fmt.Sprintf("$%.2f/sqft", *l.PricePerSqft)
	}
	if l.DiscountPct != nil {
		data.DiscountText = discountText(*l.DiscountPct)
	}

	var b strings.Builder
	if err := r.tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render: card %q: %w", l.Title, err)
	}
	return b.String(), nil
}

// CollectionRenderer renders a pipeline's visible subset behind a single
// boundary, so the pipeline itself never touches markup. It registers as
// a pipeline observer.
type CollectionRenderer struct {
	logger *utils.Logger
	cards  *CardRenderer
	region *geo.Region
	tmpl   *template.Template

	// Sink receives the rendered collection HTML; when nil the result is
	// only kept for HTML().
	Sink func(collectionID, html string)

	last map[string]string
}

// NewCollectionRenderer builds the render boundary for one collection.
func NewCollectionRenderer(logger *utils.Logger, rules LinkRules, region *geo.Region) *CollectionRenderer {
	return &CollectionRenderer{
		logger: logger,
		cards:  NewCardRenderer(rules, region),
		region: region,
		tmpl:   template.Must(template.New("collection").Parse(collectionTemplate)),
		last:   make(map[string]string),
	}
}

// CollectionUpdated implements pipeline.Observer.
func (r *CollectionRenderer) CollectionUpdated(collectionID string, state pipeline.RenderState, visible []*models.Listing) {
	html, err := r.RenderCollection(collectionID, state, visible)
	if err != nil {
		r.logger.Error("[render] %s: %v", collectionID, err)
		return
	}
	r.last[collectionID] = html
	if r.Sink != nil {
		r.Sink(collectionID, html)
	}
}

// HTML returns the most recently rendered markup for a collection.
func (r *CollectionRenderer) HTML(collectionID string) string {
	return r.last[collectionID]
}

// RenderCollection renders the visible subset, or the appropriate empty
// state when there is nothing to show.
func (r *CollectionRenderer) RenderCollection(collectionID string, state pipeline.RenderState, visible []*models.Listing) (string, error) {
	data := struct {
		CollectionID string
		NoData       bool
		NoResults    bool
		Cards        []template.HTML
	}{
		CollectionID: collectionID,
		NoData:       state == pipeline.StateNoData,
		NoResults:    state == pipeline.StateNoResults,
	}

	if state == pipeline.StateResults {
		for i, l := range visible {
			coord := resolveCoord(l, r.region)
			card, err := r.cards.Render(l, coord, CardDOMID(collectionID, i))
			if err != nil {
				return "", err
			}
			data.Cards = append(data.Cards, template.HTML(card))
		}
	}

	var b strings.Builder
	if err := r.tmpl.Execute(&b, data); err != nil {
		return "", fmt.Errorf("render: collection %s: %w", collectionID, err)
	}
	return b.String(), nil
}

// resolveCoord prefers the listing's own coordinates; the geocode
// resolver is consulted only when at least one is missing.
func resolveCoord(l *models.Listing, region *geo.Region) models.Coordinate {
	if l.HasCoordinates() {
		return l.Coordinates()
	}
	lat, lon := geo.Resolve(l.Neighborhood, region)
	return models.Coordinate{Lat: lat, Lon: lon}
}

func titleOrFallback(l *models.Listing) string {
	if strings.TrimSpace(l.Title) == "" {
		return "Rental listing"
	}
	return l.Title
}

func neighborhoodOrRegion(l *models.Listing, region *geo.Region) string {
	n := strings.TrimSpace(l.Neighborhood)
	if n == "" || strings.EqualFold(n, "unknown") {
		return region.Name
	}
	return n
}

func priceText(l *models.Listing) string {
	if l.Price <= 0 {
		return "Price unknown"
	}
	return "$" + formatThousands(l.Price) + "/mo"
}

func bedsText(l *models.Listing) string {
	if l.Bedrooms == nil {
		return "BR unknown"
	}
	if *l.Bedrooms == 0 {
		return "Studio"
	}
	return fmt.Sprintf("%d BR", *l.Bedrooms)
}

func discountText(pct float64) string {
	if pct > 0 {
		return fmt.Sprintf("%.1f%% below market", pct)
	}
	if pct < 0 {
		return fmt.Sprintf("%.1f%% above market", -pct)
	}
	return "At market rate"
}

func formatThousands(n int) string {
	s := fmt.Sprintf("%d", n)
	if len(s) <= 3 {
		return s
	}
	var b strings.Builder
	lead := len(s) % 3
	if lead > 0 {
		b.WriteString(s[:lead])
	}
	for i := lead; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return b.String()
}
