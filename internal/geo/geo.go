// Package geo answers viewport queries over an in-memory catalog with a
// brute-force bounding-box scan.
package geo

import (
	"fmt"
	"strconv"

	"github.com/kcg-rescue/lifesavermap/internal/model"
)

// ZoomThreshold is the map zoom level below which individual records are
// suppressed from filtered responses. Low-zoom views cover huge areas; the
// client only needs the count there.
const ZoomThreshold = 7

// BoundingBox is a map viewport in longitude/latitude degrees. Bounds are
// inclusive on all four edges. An inverted box (left > right or bottom > top)
// simply matches nothing.
type BoundingBox struct {
	Left   float64
	Bottom float64
	Right  float64
	Top    float64
}

// Contains reports whether the point (lng, lat) falls inside the box.
func (b BoundingBox) Contains(lng, lat float64) bool {
	return b.Left <= lng && lng <= b.Right && b.Bottom <= lat && lat <= b.Top
}

// ParseBoundingBox builds a box from the four query-string values. Every
// value must be a parseable float.
func ParseBoundingBox(left, bottom, right, top string) (BoundingBox, error) {
	var box BoundingBox
	for _, f := range []struct {
		name string
		raw  string
		dst  *float64
	}{
		{"left", left, &box.Left},
		{"bottom", bottom, &box.Bottom},
		{"right", right, &box.Right},
		{"top", top, &box.Top},
	} {
		if f.raw == "" {
			return BoundingBox{}, fmt.Errorf("missing query parameter %q", f.name)
		}
		v, err := strconv.ParseFloat(f.raw, 64)
		if err != nil {
			return BoundingBox{}, fmt.Errorf("query parameter %q is not a number", f.name)
		}
		*f.dst = v
	}
	return box, nil
}

// CountInBounds counts the catalog records inside box. Records without
// numeric coordinates never match.
func CountInBounds(catalog []model.Lifesaver, box BoundingBox) int {
	n := 0
	for _, l := range catalog {
		if inBounds(l, box) {
			n++
		}
	}
	return n
}

// FilterInBounds returns the count of records inside box and, when zoom is
// at or above ZoomThreshold, the records themselves. Below the threshold the
// returned slice is empty but the count still reflects every match.
func FilterInBounds(catalog []model.Lifesaver, box BoundingBox, zoom int) (int, []model.Lifesaver) {
	matched := make([]model.Lifesaver, 0, len(catalog))
	for _, l := range catalog {
		if inBounds(l, box) {
			matched = append(matched, l)
		}
	}
	if zoom < ZoomThreshold {
		return len(matched), []model.Lifesaver{}
	}
	return len(matched), matched
}

func inBounds(l model.Lifesaver, box BoundingBox) bool {
	lat, ok := l.Lat()
	if !ok {
		return false
	}
	lng, ok := l.Lng()
	if !ok {
		return false
	}
	return box.Contains(lng, lat)
}
