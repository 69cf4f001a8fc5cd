// Package kmlreader derives a WGS-84 bounding box from every <coordinates>
// element in a KML document by streaming its XML events.
package kmlreader

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/wavemark/fathom/internal/region"
)

// ErrUnexpectedFormat indicates a coordinate token could not be parsed.
type ErrUnexpectedFormat struct {
	Detail string
}

func (e *ErrUnexpectedFormat) Error() string {
	return fmt.Sprintf("kmlreader: unexpected format: %s", e.Detail)
}

// ErrNotEnoughGeoData indicates the document contained no coordinates at
// all.
type ErrNotEnoughGeoData struct{}

func (e *ErrNotEnoughGeoData) Error() string {
	return "kmlreader: document has no coordinates elements"
}

// Extract streams r as XML and returns the bounding box over every point in
// every <coordinates> element, regardless of its containing geometry type.
func Extract(r io.Reader) (region.Region, error) {
	dec := xml.NewDecoder(r)

	var points []region.Coordinate
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return region.Region{}, err
		}

		start, ok := tok.(xml.StartElement)
		if !ok || start.Name.Local != "coordinates" {
			continue
		}

		text, err := collectCharData(dec)
		if err != nil {
			return region.Region{}, err
		}

		parsed, err := parseCoordinates(text)
		if err != nil {
			return region.Region{}, err
		}
		points = append(points, parsed...)
	}

	if len(points) == 0 {
		return region.Region{}, &ErrNotEnoughGeoData{}
	}

	return boundingBox(points), nil
}

// collectCharData concatenates character data until the matching end
// element for the <coordinates> element just opened.
func collectCharData(dec *xml.Decoder) (string, error) {
	var sb strings.Builder
	depth := 1
	for {
		tok, err := dec.Token()
		if err != nil {
			return "", err
		}
		switch t := tok.(type) {
		case xml.CharData:
			sb.Write(t)
		case xml.StartElement:
			if t.Name.Local == "coordinates" {
				depth++
			}
		case xml.EndElement:
			if t.Name.Local == "coordinates" {
				depth--
				if depth == 0 {
					return sb.String(), nil
				}
			}
		}
	}
}

// parseCoordinates splits KML's "lon,lat[,alt] lon,lat[,alt] ..." text into
// coordinate pairs, discarding any altitude component.
func parseCoordinates(text string) ([]region.Coordinate, error) {
	var points []region.Coordinate
	for _, token := range strings.Fields(text) {
		fields := strings.Split(token, ",")
		if len(fields) < 2 {
			return nil, &ErrUnexpectedFormat{Detail: fmt.Sprintf("coordinate token missing lat: %q", token)}
		}
		lon, err := strconv.ParseFloat(fields[0], 64)
		if err != nil {
			return nil, &ErrUnexpectedFormat{Detail: fmt.Sprintf("unparsable longitude: %q", fields[0])}
		}
		lat, err := strconv.ParseFloat(fields[1], 64)
		if err != nil {
			return nil, &ErrUnexpectedFormat{Detail: fmt.Sprintf("unparsable latitude: %q", fields[1])}
		}
		points = append(points, region.Coordinate{Lon: lon, Lat: lat})
	}
	return points, nil
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
