package geo

import (
	"github.com/dhconnelly/rtreego"

	"rental-radar/models"
)

const (
	indexTolerance   = 0.001
	indexDimensions  = 2
	indexMinChildren = 2
	indexMaxChildren = 8
)

// aliasEntry wraps one alias-table reference point for R-tree indexing.
type aliasEntry struct {
	key   string
	coord models.Coordinate
	rect  *rtreego.Rect
}

func (e *aliasEntry) Bounds() *rtreego.Rect {
	return e.rect
}

// Index is an R-tree over a region's alias-table reference coordinates.
// It reverse-geocodes listings that arrive with coordinates but only a
// generic city label, replacing the label with the nearest named
// neighborhood.
type Index struct {
	region *Region
	tree   *rtreego.Rtree
}

// NewIndex builds the R-tree for a region. Tables are small; the tree is
// built once at startup and never mutated.
func NewIndex(region *Region) *Index {
	tree := rtreego.NewTree(indexDimensions, indexMinChildren, indexMaxChildren)
	for key, coord := range region.Aliases {
		point := rtreego.Point{coord.Lat, coord.Lon}
		rect := point.ToRect(indexTolerance)
		tree.Insert(&aliasEntry{key: key, coord: coord, rect: rect})
	}
	return &Index{region: region, tree: tree}
}

// Nearest returns the alias key and reference coordinate closest to the
// given point.
func (ix *Index) Nearest(lat, lon float64) (string, models.Coordinate) {
	obj := ix.tree.NearestNeighbor(rtreego.Point{lat, lon})
	entry := obj.(*aliasEntry)
	return entry.key, entry.coord
}

// InferNeighborhood fills in a display-form neighborhood name for
// listings that have coordinates but only a generic location label.
// Listings with a real neighborhood, or without coordinates, are left
// untouched.
func (ix *Index) InferNeighborhood(listings []*models.Listing) int {
	inferred := 0
	for _, l := range listings {
		if !l.HasCoordinates() || !IsGenericLocation(l.Neighborhood, ix.region) {
			continue
		}
		key, _ := ix.Nearest(*l.Latitude, *l.Longitude)
		l.Neighborhood = DisplayName(key)
		inferred++
	}
	return inferred
}
