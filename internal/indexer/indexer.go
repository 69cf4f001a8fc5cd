// Package indexer walks a directory tree of map files, classifies each one
// by extension, dispatches it to the matching format parser, and inserts
// the resulting footprint into a spatial index.
package indexer

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/wavemark/fathom/internal/dted"
	"github.com/wavemark/fathom/internal/geojsonreader"
	"github.com/wavemark/fathom/internal/geotiff"
	"github.com/wavemark/fathom/internal/kmlreader"
	"github.com/wavemark/fathom/internal/mapkind"
	"github.com/wavemark/fathom/internal/region"
	"github.com/wavemark/fathom/internal/shapefile"
	"github.com/wavemark/fathom/internal/spatialindex"
	"github.com/wavemark/fathom/internal/sqlitebounds"
)

// ErrNotADirectory indicates the configured root is not a directory.
type ErrNotADirectory struct {
	Path string
}

func (e *ErrNotADirectory) Error() string {
	return fmt.Sprintf("indexer: not a directory: %s", e.Path)
}

// ErrUnexpectedPathType indicates a walked entry was neither a regular file,
// a directory nor a symlink (a device file, socket, named pipe, etc).
// Symlinks are skipped without error.
type ErrUnexpectedPathType struct {
	Path string
}

func (e *ErrUnexpectedPathType) Error() string {
	return fmt.Sprintf("indexer: unexpected path type: %s", e.Path)
}

// Build walks root and returns a spatial index over every file it could
// successfully classify and parse. Per-file format errors and "no
// geographic data" results are logged and skipped; only directory-walk I/O
// failures, a non-directory root, and an entry of unexpected type (see
// ErrUnexpectedPathType) are fatal.
func Build(root string) (*spatialindex.Index, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, &ErrNotADirectory{Path: root}
	}

	idx := spatialindex.New()
	if err := walk(root, idx); err != nil {
		return nil, err
	}
	return idx, nil
}

// walk descends root depth-first, grouping same-directory sidecars with
// their primary file before dispatching each discovered MapKind.
func walk(dir string, idx *spatialindex.Index) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}

	stems := make(map[string]bool)
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		stems[stem(e.Name())] = true
	}

	for _, e := range entries {
		path := filepath.Join(dir, e.Name())
		if e.IsDir() {
			if err := walk(path, idx); err != nil {
				return err
			}
			continue
		}
		if !e.Type().IsRegular() {
			if e.Type()&os.ModeSymlink != 0 {
				continue
			}
			return &ErrUnexpectedPathType{Path: path}
		}

		kind, ok := classify(dir, e.Name())
		if !ok {
			continue
		}

		node, err := parse(kind)
		if err != nil {
			log.Printf("indexer: skipping %s: %v", path, err)
			continue
		}
		idx.Insert(node)
	}
	return nil
}

func stem(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// classify maps a filename's lowercased extension to a MapKind, matching
// GeoTIFF/Shapefile sidecars (.tfw, .prj) by stem within the same
// directory.
func classify(dir, name string) (mapkind.MapKind, bool) {
	ext := strings.ToLower(filepath.Ext(name))
	ext = strings.TrimPrefix(ext, ".")
	primary := filepath.Join(dir, name)
	fileStem := stem(name)

	sidecar := func(suffix string) string {
		candidate := filepath.Join(dir, fileStem+suffix)
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		return ""
	}

	switch ext {
	case "tif", "tiff":
		return mapkind.GeoTIFF(primary, sidecar(".tfw"), sidecar(".prj")), true
	case "dt1", "dt2":
		return mapkind.Dted(primary), true
	case "kml":
		return mapkind.Kml(primary), true
	case "geojson":
		return mapkind.GeoJSON(primary), true
	case "mbtiles":
		return mapkind.MBTiles(primary), true
	case "gpkg":
		return mapkind.GeoPackage(primary), true
	case "shp":
		return mapkind.Shapefile(primary, sidecar(".tfw"), sidecar(".prj")), true
	default:
		return mapkind.MapKind{}, false
	}
}

// parse dispatches kind to its format parser and wraps the resulting Region
// into an IndexNode. A parser returning geotiff.ErrNotEnoughGeoData (or the
// equivalent from another reader) is surfaced as an error so the caller can
// log-and-skip it like any other per-file failure.
func parse(kind mapkind.MapKind) (mapkind.IndexNode, error) {
	var (
		r   region.Region
		err error
	)

	switch kind.Format {
	case mapkind.FormatGeoTIFF:
		if kind.WorldFile != "" && kind.ProjectionFile != "" {
			r, err = geotiff.ExtractWithSidecars(kind.Primary, true, true)
		} else {
			r, err = geotiff.Extract(kind.Primary)
		}
	case mapkind.FormatDted:
		f, ferr := os.Open(kind.Primary)
		if ferr != nil {
			return mapkind.IndexNode{}, ferr
		}
		defer f.Close()
		r, err = dted.Extract(f)
	case mapkind.FormatKml:
		f, ferr := os.Open(kind.Primary)
		if ferr != nil {
			return mapkind.IndexNode{}, ferr
		}
		defer f.Close()
		r, err = kmlreader.Extract(f)
	case mapkind.FormatGeoJSON:
		f, ferr := os.Open(kind.Primary)
		if ferr != nil {
			return mapkind.IndexNode{}, ferr
		}
		defer f.Close()
		r, err = geojsonreader.Extract(f)
	case mapkind.FormatMBTiles:
		r, err = sqlitebounds.ExtractMBTiles(kind.Primary)
	case mapkind.FormatGeoPkg:
		r, err = sqlitebounds.ExtractGeoPackage(kind.Primary)
	case mapkind.FormatShapefile:
		r, err = shapefile.Extract(kind.Primary, kind.ProjectionFile)
	default:
		return mapkind.IndexNode{}, fmt.Errorf("indexer: unclassified MapKind format %q", kind.Format)
	}

	if err != nil {
		return mapkind.IndexNode{}, err
	}

	k := kind
	return mapkind.IndexNode{
		Metadata: mapkind.Metadata{
			Region: r,
			Tags:   []mapkind.Tag{mapkind.FiletypeTag(kind.Format)},
		},
		Map: &k,
	}, nil
}
