package sqlitebounds

import (
	"github.com/wavemark/fathom/internal/region"
)

// ExtractGeoPackage reads min_x, min_y, max_x, max_y from gpkg_contents. If
// the table holds more than one row, the last row scanned wins — the same
// "last row wins" behavior the original reader settled on.
func ExtractGeoPackage(path string) (region.Region, error) {
	db, err := open(path)
	if err != nil {
		return region.Region{}, err
	}
	defer db.Close()

	rows, err := db.Query(`SELECT min_x, min_y, max_x, max_y FROM gpkg_contents`)
	if err != nil {
		return region.Region{}, &ErrQuery{Detail: err.Error()}
	}
	defer rows.Close()

	var minX, minY, maxX, maxY float64
	seen := false
	for rows.Next() {
		if err := rows.Scan(&minX, &minY, &maxX, &maxY); err != nil {
			return region.Region{}, &ErrRowDecode{Detail: err.Error()}
		}
		seen = true
	}
	if err := rows.Err(); err != nil {
		return region.Region{}, &ErrRowDecode{Detail: err.Error()}
	}
	if !seen {
		return region.Region{}, &ErrNotFound{Detail: "gpkg_contents has no rows"}
	}

	return region.FromCorners(
		region.Coordinate{Lon: minX, Lat: maxY},
		region.Coordinate{Lon: maxX, Lat: minY},
	), nil
}
