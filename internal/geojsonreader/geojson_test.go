package geojsonreader

import (
	"strings"
	"testing"

	"github.com/wavemark/fathom/internal/region"
)

func TestExtractPoint(t *testing.T) {
	const doc = `{"type":"Feature","geometry":{"type":"Point","coordinates":[-122.08,37.42]}}`
	got, err := Extract(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	want := region.Region{
		TopLeft:     region.Coordinate{Lon: -122.08, Lat: 37.42},
		BottomRight: region.Coordinate{Lon: -122.08, Lat: 37.42},
	}
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExtractPolygon(t *testing.T) {
	const doc = `{"type":"Polygon","coordinates":[[[0,0],[4,0],[4,4],[0,4],[0,0]]]}`
	got, err := Extract(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	want := region.Region{
		TopLeft:     region.Coordinate{Lon: 0, Lat: 4},
		BottomRight: region.Coordinate{Lon: 4, Lat: 0},
	}
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExtractDiscardsThirdDimension(t *testing.T) {
	const doc = `{"coordinates":[1,2,9999]}`
	got, err := Extract(strings.NewReader(doc))
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}
	if got.TopLeft.Lon != 1 || got.TopLeft.Lat != 2 {
		t.Errorf("got %v, want lon=1 lat=2", got)
	}
}

func TestExtractNoCoordinates(t *testing.T) {
	_, err := Extract(strings.NewReader(`{"type":"FeatureCollection","features":[]}`))
	if _, ok := err.(*ErrNotEnoughGeoData); !ok {
		t.Fatalf("expected ErrNotEnoughGeoData, got %T: %v", err, err)
	}
}

func TestExtractInvalidJSON(t *testing.T) {
	_, err := Extract(strings.NewReader(`{"coordinates":[1,2`))
	if _, ok := err.(*ErrInvalidJSON); !ok {
		t.Fatalf("expected ErrInvalidJSON, got %T: %v", err, err)
	}
}
