// Package geotiff extracts a WGS-84 bounding box from a (Geo)TIFF file: an
// 8-byte header, a single IFD of deferred-resolution entries, and a
// GeoKeyDirectory naming the source coordinate reference system.
package geotiff

import (
	"fmt"
	"io"
	"os"

	"github.com/wavemark/fathom/internal/projection"
	"github.com/wavemark/fathom/internal/region"
)

const (
	tagImageWidth      = 256
	tagImageLength     = 257
	tagModelPixelScale = 33550
	tagModelTiepoint   = 33922
	tagGeoKeyDirectory = 34735
)

// Extract reads the file at path and returns its WGS-84 extent. Sidecars
// (world-file + projection overrides) are not consulted here; callers that
// find both a .tfw and a .prj beside path should use ExtractWithSidecars
// instead.
func Extract(path string) (region.Region, error) {
	f, err := os.Open(path)
	if err != nil {
		return region.Region{}, err
	}
	defer f.Close()
	return extract(f)
}

// ExtractWithSidecars mirrors Extract but additionally reports whether a
// world-file and projection sidecar were supplied. The .tfw+.prj override
// path is not implemented; when both are present this always fails with
// NotEnoughGeoData rather than fabricate a result from partial support.
func ExtractWithSidecars(path string, worldFile, projectionFile bool) (region.Region, error) {
	if worldFile && projectionFile {
		return region.Region{}, &ErrNotEnoughGeoData{Reason: "world-file + projection sidecar override is not implemented"}
	}
	return Extract(path)
}

func extract(r io.ReaderAt) (region.Region, error) {
	hdr, err := readHeader(r)
	if err != nil {
		return region.Region{}, err
	}

	dir, err := readDirectory(r, hdr.order, hdr.firstIFDAddr)
	if err != nil {
		return region.Region{}, err
	}

	width, err := requiredDimension(dir, tagImageWidth)
	if err != nil {
		return region.Region{}, err
	}
	length, err := requiredDimension(dir, tagImageLength)
	if err != nil {
		return region.Region{}, err
	}

	scale, ok, err := dir.doubles(tagModelPixelScale)
	if err != nil {
		return region.Region{}, err
	}
	if !ok || len(scale) < 2 {
		return region.Region{}, &ErrNotEnoughGeoData{Reason: "missing ModelPixelScale"}
	}

	tiepoint, ok, err := dir.doubles(tagModelTiepoint)
	if err != nil {
		return region.Region{}, err
	}
	if !ok || len(tiepoint) < 5 {
		return region.Region{}, &ErrNotEnoughGeoData{Reason: "missing ModelTiepoint"}
	}

	geoKeys, ok, err := dir.shorts(tagGeoKeyDirectory)
	if err != nil {
		return region.Region{}, err
	}
	if !ok {
		return region.Region{}, &ErrNotEnoughGeoData{Reason: "missing GeoKeyDirectory"}
	}

	epsg, err := resolveCRSCode(geoKeys)
	if err != nil {
		return region.Region{}, err
	}

	x0, y0 := tiepoint[3], tiepoint[4]
	sx, sy := scale[0], scale[1]
	x1 := x0 + sx*float64(width)
	y1 := y0 - sy*float64(length)

	tlLon, tlLat, brLon, brLat := x0, y0, x1, y1
	if !projection.Identity(epsg) {
		tlLon, tlLat, err = projection.ToWGS84(epsg, x0, y0)
		if err != nil {
			return region.Region{}, translateProjectionErr(err)
		}
		brLon, brLat, err = projection.ToWGS84(epsg, x1, y1)
		if err != nil {
			return region.Region{}, translateProjectionErr(err)
		}
	}

	return region.FromCorners(
		region.Coordinate{Lon: tlLon, Lat: tlLat},
		region.Coordinate{Lon: brLon, Lat: brLat},
	), nil
}

func requiredDimension(dir *directory, tag uint16) (uint32, error) {
	values, ok, err := dir.shorts(tag)
	if err != nil {
		return 0, err
	}
	if !ok || len(values) == 0 {
		return 0, &ErrNotEnoughGeoData{Reason: fmt.Sprintf("missing tag %d", tag)}
	}
	return uint32(values[0]), nil
}

func translateProjectionErr(err error) error {
	switch e := err.(type) {
	case *projection.ErrUnsupportedCRS:
		return &ErrUnsupportedCRS{Code: e.Code}
	case *projection.ErrTransform:
		return &ErrProjection{Detail: e.Detail}
	default:
		return &ErrProjection{Detail: err.Error()}
	}
}
