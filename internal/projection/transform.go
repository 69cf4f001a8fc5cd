// Package projection resolves an EPSG coordinate reference system to a
// transform into WGS-84 longitude/latitude. GeoTIFF and Shapefile readers
// both need this: a GeoKeyDirectory or a .prj sidecar names a source CRS,
// and the bounding box corners it hands back must land in degrees.
package projection

import (
	"fmt"

	"github.com/wroge/wgs84"
)

// ErrUnsupportedCRS indicates the source EPSG code has no known transform.
type ErrUnsupportedCRS struct {
	Code int
}

func (e *ErrUnsupportedCRS) Error() string {
	return fmt.Sprintf("projection: unsupported CRS: %d", e.Code)
}

// ErrTransform wraps a failure while applying a transform.
type ErrTransform struct {
	Detail string
}

func (e *ErrTransform) Error() string {
	return fmt.Sprintf("projection: %s", e.Detail)
}

// remap holds CRS codes that alias another definition. 4277 (OSGB36, the
// geographic CRS underlying British National Grid) is carried forward as
// 27700 (the projected grid itself) per the GeoKeyDirectory convention this
// reader follows.
var remap = map[int]int{
	4277: 27700,
}

// ToWGS84 resolves the EPSG code (after alias remapping) and transforms the
// point (x, y) in that CRS's native units into WGS-84 (lon, lat) degrees.
func ToWGS84(epsg int, x, y float64) (lon, lat float64, err error) {
	if target, ok := remap[epsg]; ok {
		epsg = target
	}

	src, ok := wgs84.ByEPSG(epsg)
	if !ok {
		return 0, 0, &ErrUnsupportedCRS{Code: epsg}
	}

	transform := wgs84.Transform(src, wgs84.LonLat())
	lon, lat, _ = transform(x, y, 0)
	return lon, lat, nil
}

// Identity reports whether epsg (after remapping) is already WGS-84
// geographic, letting callers skip the transform call entirely.
func Identity(epsg int) bool {
	if target, ok := remap[epsg]; ok {
		epsg = target
	}
	return epsg == 4326
}
