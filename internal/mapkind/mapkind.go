// Package mapkind defines the tagged variant over supported source formats
// and the Metadata/IndexNode shapes the indexer and spatial index share.
package mapkind

import (
	"encoding/json"

	"github.com/wavemark/fathom/internal/region"
)

// Format names the MapKind variants. It doubles as the "Filetype" tag value
// the indexer attaches to every parsed file.
type Format string

const (
	FormatGeoTIFF   Format = "TIFF"
	FormatDted      Format = "DTED"
	FormatKml       Format = "KML"
	FormatGeoJSON   Format = "GEOJSON"
	FormatMBTiles   Format = "MBTILES"
	FormatGeoPkg    Format = "GPKG"
	FormatShapefile Format = "SHAPEFILE"
)

// MapKind is the tagged variant over the seven source formats the indexer
// discovers. Path fields are filesystem locators fixed at discovery time
// and never mutated afterward.
type MapKind struct {
	Format Format

	Primary        string
	WorldFile      string // GeoTIFF/Shapefile only; "" if absent
	ProjectionFile string // GeoTIFF/Shapefile only; "" if absent
}

// GeoTIFF builds the GeoTIFF variant.
func GeoTIFF(primary, worldFile, projectionFile string) MapKind {
	return MapKind{Format: FormatGeoTIFF, Primary: primary, WorldFile: worldFile, ProjectionFile: projectionFile}
}

// Shapefile builds the Shapefile variant.
func Shapefile(primary, worldFile, projectionFile string) MapKind {
	return MapKind{Format: FormatShapefile, Primary: primary, WorldFile: worldFile, ProjectionFile: projectionFile}
}

// Dted builds the Dted variant.
func Dted(primary string) MapKind { return MapKind{Format: FormatDted, Primary: primary} }

// Kml builds the Kml variant.
func Kml(primary string) MapKind { return MapKind{Format: FormatKml, Primary: primary} }

// GeoJSON builds the GeoJson variant.
func GeoJSON(primary string) MapKind { return MapKind{Format: FormatGeoJSON, Primary: primary} }

// MBTiles builds the MbTiles variant.
func MBTiles(primary string) MapKind { return MapKind{Format: FormatMBTiles, Primary: primary} }

// GeoPackage builds the GeoPackage variant.
func GeoPackage(primary string) MapKind { return MapKind{Format: FormatGeoPkg, Primary: primary} }

// variantName maps each Format to its MapKind discriminator name. This is
// a distinct vocabulary from the Format string itself: Format doubles as
// the short "Filetype" tag value (see FiletypeTag), while the wire
// discriminator for MapKind uses the longer variant names.
var variantName = map[Format]string{
	FormatGeoTIFF:   "GeoTIFF",
	FormatDted:      "Dted",
	FormatKml:       "Kml",
	FormatGeoJSON:   "GeoJson",
	FormatMBTiles:   "MbTiles",
	FormatGeoPkg:    "GeoPackage",
	FormatShapefile: "Shapefile",
}

// MarshalJSON renders a MapKind as a single-key object tagged by its
// variant name, e.g. {"GeoTIFF":{"primary":"...","world_file":"...","projection_file":"..."}}.
func (m MapKind) MarshalJSON() ([]byte, error) {
	type body struct {
		Primary        string `json:"primary"`
		WorldFile      string `json:"world_file,omitempty"`
		ProjectionFile string `json:"projection_file,omitempty"`
	}
	return json.Marshal(map[string]body{
		variantName[m.Format]: {Primary: m.Primary, WorldFile: m.WorldFile, ProjectionFile: m.ProjectionFile},
	})
}

// Tag is one (key, value) pair in a Metadata's ordered tag sequence.
type Tag struct {
	Key   string
	Value string
}

// MarshalJSON renders a Tag as the two-element ["key","value"] array the
// HTTP surface's tags list uses.
func (t Tag) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{t.Key, t.Value})
}

// Metadata pairs a parsed Region with an ordered sequence of tags. The
// indexer gives every node it builds at least a ("Filetype", <format>) tag.
type Metadata struct {
	Region region.Region `json:"region"`
	Tags   []Tag         `json:"tags"`
}

// FiletypeTag builds the one tag every indexed node carries.
func FiletypeTag(format Format) Tag {
	return Tag{Key: "Filetype", Value: string(format)}
}

// IndexNode is one entry in the spatial index: a parsed Metadata plus a
// shared handle to the MapKind it was derived from. Nodes are immutable
// once inserted; MapKind is referenced both by the node and by any result
// row that includes it, hence the pointer indirection rather than a copy.
type IndexNode struct {
	Metadata Metadata `json:"metadata"`
	Map      *MapKind `json:"map"`
}
