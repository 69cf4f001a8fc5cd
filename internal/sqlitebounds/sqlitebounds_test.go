package sqlitebounds

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/wavemark/fathom/internal/region"
)

func newTestDB(t *testing.T, name string) (*sql.DB, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, path
}

func TestExtractMBTilesBounds(t *testing.T) {
	db, path := newTestDB(t, "tiles.mbtiles")
	if _, err := db.Exec(`CREATE TABLE metadata (name TEXT, value TEXT)`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO metadata (name, value) VALUES ('bounds', '10.1,20.2,30.3,40.4')`); err != nil {
		t.Fatalf("insert: %v", err)
	}
	db.Close()

	got, err := ExtractMBTiles(path)
	if err != nil {
		t.Fatalf("ExtractMBTiles: %v", err)
	}
	want := region.Region{
		TopLeft:     region.Coordinate{Lon: 10.1, Lat: 40.4},
		BottomRight: region.Coordinate{Lon: 30.3, Lat: 20.2},
	}
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExtractMBTilesMissingRow(t *testing.T) {
	db, path := newTestDB(t, "empty.mbtiles")
	if _, err := db.Exec(`CREATE TABLE metadata (name TEXT, value TEXT)`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	db.Close()

	_, err := ExtractMBTiles(path)
	if _, ok := err.(*ErrNotFound); !ok {
		t.Fatalf("expected ErrNotFound, got %T: %v", err, err)
	}
}

func TestExtractGeoPackageBounds(t *testing.T) {
	db, path := newTestDB(t, "map.gpkg")
	if _, err := db.Exec(`CREATE TABLE gpkg_contents (min_x REAL, min_y REAL, max_x REAL, max_y REAL)`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO gpkg_contents VALUES (10.1, 20.2, 30.3, 40.4)`); err != nil {
		t.Fatalf("insert: %v", err)
	}
	db.Close()

	got, err := ExtractGeoPackage(path)
	if err != nil {
		t.Fatalf("ExtractGeoPackage: %v", err)
	}
	want := region.Region{
		TopLeft:     region.Coordinate{Lon: 10.1, Lat: 40.4},
		BottomRight: region.Coordinate{Lon: 30.3, Lat: 20.2},
	}
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExtractGeoPackageLastRowWins(t *testing.T) {
	db, path := newTestDB(t, "multi.gpkg")
	if _, err := db.Exec(`CREATE TABLE gpkg_contents (min_x REAL, min_y REAL, max_x REAL, max_y REAL)`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	if _, err := db.Exec(`INSERT INTO gpkg_contents VALUES (0, 0, 1, 1), (10.1, 20.2, 30.3, 40.4)`); err != nil {
		t.Fatalf("insert: %v", err)
	}
	db.Close()

	got, err := ExtractGeoPackage(path)
	if err != nil {
		t.Fatalf("ExtractGeoPackage: %v", err)
	}
	want := region.Region{
		TopLeft:     region.Coordinate{Lon: 10.1, Lat: 40.4},
		BottomRight: region.Coordinate{Lon: 30.3, Lat: 20.2},
	}
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExtractGeoPackageEmpty(t *testing.T) {
	db, path := newTestDB(t, "noattrs.gpkg")
	if _, err := db.Exec(`CREATE TABLE gpkg_contents (min_x REAL, min_y REAL, max_x REAL, max_y REAL)`); err != nil {
		t.Fatalf("create table: %v", err)
	}
	db.Close()

	_, err := ExtractGeoPackage(path)
	if _, ok := err.(*ErrNotFound); !ok {
		t.Fatalf("expected ErrNotFound, got %T: %v", err, err)
	}
}
