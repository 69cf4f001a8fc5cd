// Package region defines the WGS-84 bounding box every format parser must
// converge on, plus the handful of total conversions from parser-local
// region shapes (KML/GeoJSON's bottom-left/top-right pair, DTED's four
// corners) that the unifier (spec C9) performs.
package region

import (
	"encoding/json"
	"fmt"
)

// Coordinate is a (lon, lat) pair in decimal degrees, WGS-84 datum.
type Coordinate struct {
	Lon float64
	Lat float64
}

// Region is an axis-aligned WGS-84 bounding box. TopLeft.Lon <= BottomRight.Lon
// and TopLeft.Lat >= BottomRight.Lat; the Y axis increases upward.
type Region struct {
	TopLeft     Coordinate
	BottomRight Coordinate
}

// BottomLeft is the mirror corner (TopLeft.Lon, BottomRight.Lat).
func (r Region) BottomLeft() Coordinate {
	return Coordinate{Lon: r.TopLeft.Lon, Lat: r.BottomRight.Lat}
}

// TopRight is the mirror corner (BottomRight.Lon, TopLeft.Lat).
func (r Region) TopRight() Coordinate {
	return Coordinate{Lon: r.BottomRight.Lon, Lat: r.TopLeft.Lat}
}

// Intersects reports whether r and other overlap, including edge touches.
func (r Region) Intersects(other Region) bool {
	return !(other.BottomRight.Lon < r.TopLeft.Lon ||
		other.TopLeft.Lon > r.BottomRight.Lon ||
		other.TopLeft.Lat < r.BottomRight.Lat ||
		other.BottomRight.Lat > r.TopLeft.Lat)
}

// Valid reports whether r satisfies the data-model invariants: normalized
// corners and coordinates within the WGS-84 domain.
func (r Region) Valid() bool {
	if r.TopLeft.Lon > r.BottomRight.Lon || r.TopLeft.Lat < r.BottomRight.Lat {
		return false
	}
	for _, c := range []Coordinate{r.TopLeft, r.BottomRight} {
		if c.Lon < -180 || c.Lon > 180 || c.Lat < -90 || c.Lat > 90 {
			return false
		}
	}
	return true
}

// MarshalJSON renders a Region as {"top_left":[lon,lat],"bottom_right":[lon,lat]},
// the wire shape every HTTP response and format-compatibility fixture expects.
func (r Region) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		TopLeft     [2]float64 `json:"top_left"`
		BottomRight [2]float64 `json:"bottom_right"`
	}{
		TopLeft:     [2]float64{r.TopLeft.Lon, r.TopLeft.Lat},
		BottomRight: [2]float64{r.BottomRight.Lon, r.BottomRight.Lat},
	})
}

func (r Region) String() string {
	return fmt.Sprintf("Region{top_left:(%.6f,%.6f), bottom_right:(%.6f,%.6f)}",
		r.TopLeft.Lon, r.TopLeft.Lat, r.BottomRight.Lon, r.BottomRight.Lat)
}

// FromCorners builds a Region directly from its top-left and bottom-right
// corners. Used by parsers (TIFF, Shapefile) that already compute those two
// corners directly.
func FromCorners(topLeft, bottomRight Coordinate) Region {
	return Region{TopLeft: topLeft, BottomRight: bottomRight}
}

// FromBottomLeftTopRight converts the bottom-left/top-right shape produced
// by the KML and GeoJSON readers (which derive a bounding box from a point
// cloud) into the canonical top-left/bottom-right Region.
func FromBottomLeftTopRight(bottomLeft, topRight Coordinate) Region {
	return Region{
		TopLeft:     Coordinate{Lon: bottomLeft.Lon, Lat: topRight.Lat},
		BottomRight: Coordinate{Lon: topRight.Lon, Lat: bottomLeft.Lat},
	}
}

// FromDTEDCorners converts DTED's four named corners (spec C4/C9) into the
// canonical Region: top_left = NW, bottom_right = SE. NE and SW are
// currently unused by the unifier but are accepted for symmetry with the
// source DSI block.
func FromDTEDCorners(nw, ne, se, sw Coordinate) Region {
	_ = ne
	_ = sw
	return Region{TopLeft: nw, BottomRight: se}
}
