// Package geojsonreader derives a WGS-84 bounding box from a GeoJSON
// document by token-streaming its JSON, tracking array nesting depth under
// every "coordinates" key.
package geojsonreader

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/wavemark/fathom/internal/region"
)

// ErrInvalidJSON wraps a tokenizer failure.
type ErrInvalidJSON struct {
	Cause error
}

func (e *ErrInvalidJSON) Error() string {
	return fmt.Sprintf("geojsonreader: invalid JSON: %v", e.Cause)
}

func (e *ErrInvalidJSON) Unwrap() error { return e.Cause }

// ErrUnparsableCoordinate indicates a token inside a coordinates capture
// was not a JSON number.
type ErrUnparsableCoordinate struct {
	Text string
}

func (e *ErrUnparsableCoordinate) Error() string {
	return fmt.Sprintf("geojsonreader: unparsable coordinate: %q", e.Text)
}

// ErrNotEnoughGeoData indicates no coordinates were found anywhere in the
// document.
type ErrNotEnoughGeoData struct{}

func (e *ErrNotEnoughGeoData) Error() string {
	return "geojsonreader: document has no coordinates"
}

// Extract token-streams r and returns the bounding box over every leaf
// coordinate pair found under any "coordinates" key, at any nesting depth.
func Extract(r io.Reader) (region.Region, error) {
	dec := json.NewDecoder(r)

	var points []region.Coordinate
	capturing := false
	depth := 0
	var scratch [2]float64
	dimsWritten := 0
	nesting := 0

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			if nesting != 0 {
				return region.Region{}, &ErrInvalidJSON{Cause: io.ErrUnexpectedEOF}
			}
			break
		}
		if err != nil {
			return region.Region{}, &ErrInvalidJSON{Cause: err}
		}

		if d, ok := tok.(json.Delim); ok {
			switch d {
			case '{', '[':
				nesting++
			case '}', ']':
				nesting--
			}
		}

		if !capturing {
			if key, ok := tok.(string); ok && key == "coordinates" {
				capturing = true
				depth = 0
				dimsWritten = 0
			}
			continue
		}

		switch v := tok.(type) {
		case json.Delim:
			switch v {
			case '[':
				depth++
				dimsWritten = 0
			case ']':
				depth--
				if depth == 0 {
					capturing = false
				}
			}
		case float64:
			if dimsWritten < 2 {
				scratch[dimsWritten] = v
			}
			dimsWritten++
		default:
			if capturing {
				return region.Region{}, &ErrUnparsableCoordinate{Text: fmt.Sprintf("%v", v)}
			}
		}

		// A leaf array (a concrete coordinate pair) closes one level above
		// where we entered a fresh array; detect it by watching for the
		// array-close that immediately follows at least two numbers.
		if d, ok := tok.(json.Delim); ok && d == ']' && dimsWritten >= 2 {
			points = append(points, region.Coordinate{Lon: scratch[0], Lat: scratch[1]})
			dimsWritten = 0
		}
	}

	if len(points) == 0 {
		return region.Region{}, &ErrNotEnoughGeoData{}
	}

	return boundingBox(points), nil
}

func boundingBox(points []region.Coordinate) region.Region {
	minLon, maxLon := points[0].Lon, points[0].Lon
	minLat, maxLat := points[0].Lat, points[0].Lat
	for _, p := range points[1:] {
		if p.Lon < minLon {
			minLon = p.Lon
		}
		if p.Lon > maxLon {
			maxLon = p.Lon
		}
		if p.Lat < minLat {
			minLat = p.Lat
		}
		if p.Lat > maxLat {
			maxLat = p.Lat
		}
	}
	return region.FromBottomLeftTopRight(
		region.Coordinate{Lon: minLon, Lat: minLat},
		region.Coordinate{Lon: maxLon, Lat: maxLat},
	)
}
