// Package sqlitebounds derives a WGS-84 bounding box from the two SQLite
// container formats the indexer supports: MBTiles and GeoPackage.
package sqlitebounds

import (
	"database/sql"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/mattn/go-sqlite3"

	"github.com/wavemark/fathom/internal/region"
)

// ErrConnection indicates the database file could not be opened.
type ErrConnection struct {
	Detail string
}

func (e *ErrConnection) Error() string {
	return fmt.Sprintf("sqlitebounds: connection failed: %s", e.Detail)
}

// ErrQuery indicates statement preparation or execution failed.
type ErrQuery struct {
	Detail string
}

func (e *ErrQuery) Error() string {
	return fmt.Sprintf("sqlitebounds: query failed: %s", e.Detail)
}

// ErrRowDecode indicates a row's columns didn't scan into the expected
// shape.
type ErrRowDecode struct {
	Detail string
}

func (e *ErrRowDecode) Error() string {
	return fmt.Sprintf("sqlitebounds: row decode failed: %s", e.Detail)
}

// ErrNumericParse indicates a bounds field was not a parseable float.
type ErrNumericParse struct {
	Field string
}

func (e *ErrNumericParse) Error() string {
	return fmt.Sprintf("sqlitebounds: unparsable numeric field: %s", e.Field)
}

// ErrNotFound indicates the expected metadata row was absent.
type ErrNotFound struct {
	Detail string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("sqlitebounds: %s", e.Detail)
}

func open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		return nil, &ErrConnection{Detail: err.Error()}
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, &ErrConnection{Detail: err.Error()}
	}
	return db, nil
}

// ExtractMBTiles reads the `bounds` row of the metadata table: an ASCII
// "left,bottom,right,top" string.
func ExtractMBTiles(path string) (region.Region, error) {
	db, err := open(path)
	if err != nil {
		return region.Region{}, err
	}
	defer db.Close()

	var value string
	row := db.QueryRow(`SELECT value FROM metadata WHERE name = 'bounds'`)
	if err := row.Scan(&value); err != nil {
		if err == sql.ErrNoRows {
			return region.Region{}, &ErrNotFound{Detail: "metadata has no bounds row"}
		}
		return region.Region{}, &ErrRowDecode{Detail: err.Error()}
	}

	fields := strings.Split(value, ",")
	if len(fields) != 4 {
		return region.Region{}, &ErrRowDecode{Detail: fmt.Sprintf("bounds value has %d fields, want 4", len(fields))}
	}

	nums := make([]float64, 4)
	names := [4]string{"left", "bottom", "right", "top"}
	for i, f := range fields {
		v, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return region.Region{}, &ErrNumericParse{Field: names[i]}
		}
		nums[i] = v
	}
	left, bottom, right, top := nums[0], nums[1], nums[2], nums[3]

	return region.FromCorners(
		region.Coordinate{Lon: left, Lat: top},
		region.Coordinate{Lon: right, Lat: bottom},
	), nil
}
