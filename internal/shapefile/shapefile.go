// Package shapefile extracts a WGS-84 bounding box from a .shp header and an
// optional companion .prj projection file.
package shapefile

import (
	"bytes"
	"fmt"
	"log"
	"os"
	"regexp"
	"strconv"

	"github.com/wavemark/fathom/internal/byteorder"
	"github.com/wavemark/fathom/internal/projection"
	"github.com/wavemark/fathom/internal/region"
)

const headerSize = 100

var expectedMagic = [4]byte{0x00, 0x00, 0x27, 0x0A}

// ErrUnexpectedMagicNumber indicates the .shp header's leading bytes were
// not the 9994 file-code magic.
type ErrUnexpectedMagicNumber struct {
	Got [4]byte
}

func (e *ErrUnexpectedMagicNumber) Error() string {
	return fmt.Sprintf("shapefile: unexpected magic number: % x", e.Got[:])
}

// ErrUnsupportedCRS indicates the .prj WKT named a geocentric CRS or carried
// no usable EPSG authority code. An EPSG code with no known transform
// surfaces as ErrProjection instead.
type ErrUnsupportedCRS struct {
	Detail string
}

func (e *ErrUnsupportedCRS) Error() string {
	return fmt.Sprintf("shapefile: unsupported CRS: %s", e.Detail)
}

// ErrProjection wraps a failure applying the WKT-derived transform.
type ErrProjection struct {
	Detail string
}

func (e *ErrProjection) Error() string {
	return fmt.Sprintf("shapefile: projection error: %s", e.Detail)
}

var authorityPattern = regexp.MustCompile(`AUTHORITY\["EPSG",\s*"?(\d+)"?\]`)

// Extract reads shpPath's header and, if prjPath is non-empty, reprojects
// its bounds through the CRS that .prj names. With no .prj, the header
// bounds are passed through as already being WGS-84 degrees.
func Extract(shpPath, prjPath string) (region.Region, error) {
	raw, err := os.ReadFile(shpPath)
	if err != nil {
		return region.Region{}, err
	}
	if len(raw) < headerSize {
		return region.Region{}, fmt.Errorf("shapefile: header truncated: got %d bytes", len(raw))
	}

	var magic [4]byte
	copy(magic[:], raw[0:4])
	if magic != expectedMagic {
		return region.Region{}, &ErrUnexpectedMagicNumber{Got: magic}
	}

	xMin, err := byteorder.ReadF64(raw[36:44], byteorder.LittleEndian)
	if err != nil {
		return region.Region{}, err
	}
	yMin, err := byteorder.ReadF64(raw[44:52], byteorder.LittleEndian)
	if err != nil {
		return region.Region{}, err
	}
	xMax, err := byteorder.ReadF64(raw[52:60], byteorder.LittleEndian)
	if err != nil {
		return region.Region{}, err
	}
	yMax, err := byteorder.ReadF64(raw[60:68], byteorder.LittleEndian)
	if err != nil {
		return region.Region{}, err
	}

	if prjPath == "" {
		log.Printf("shapefile: %s has no .prj companion, treating header bounds as WGS-84", shpPath)
		return region.FromCorners(
			region.Coordinate{Lon: xMin, Lat: yMax},
			region.Coordinate{Lon: xMax, Lat: yMin},
		), nil
	}

	wkt, err := os.ReadFile(prjPath)
	if err != nil {
		return region.Region{}, err
	}
	if bytes.Contains(wkt, []byte("GEOCCS")) {
		return region.Region{}, &ErrUnsupportedCRS{Detail: "geocentric CRS is not supported"}
	}

	match := authorityPattern.FindSubmatch(wkt)
	if match == nil {
		return region.Region{}, &ErrUnsupportedCRS{Detail: "no EPSG authority code found in .prj"}
	}
	epsg, err := strconv.Atoi(string(match[1]))
	if err != nil {
		return region.Region{}, &ErrUnsupportedCRS{Detail: fmt.Sprintf("malformed EPSG code: %q", match[1])}
	}

	tlLon, tlLat, brLon, brLat := xMin, yMax, xMax, yMin
	if !projection.Identity(epsg) {
		tlLon, tlLat, err = projection.ToWGS84(epsg, xMin, yMax)
		if err != nil {
			return region.Region{}, &ErrProjection{Detail: err.Error()}
		}
		brLon, brLat, err = projection.ToWGS84(epsg, xMax, yMin)
		if err != nil {
			return region.Region{}, &ErrProjection{Detail: err.Error()}
		}
	}

	return region.FromCorners(
		region.Coordinate{Lon: tlLon, Lat: tlLat},
		region.Coordinate{Lon: brLon, Lat: brLat},
	), nil
}
