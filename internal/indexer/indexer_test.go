package indexer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/wavemark/fathom/internal/region"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestBuildIndexesSupportedFormats(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a.kml"),
		`<kml><coordinates>-122.08,37.42,0 -123.08,38.42,0</coordinates></kml>`)
	writeFile(t, filepath.Join(root, "a.geojson"),
		`{"coordinates":[0,0]}`)
	writeFile(t, filepath.Join(root, "ignored.txt"), "not a map file")

	sub := filepath.Join(root, "nested")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	writeFile(t, filepath.Join(sub, "b.geojson"), `{"coordinates":[10,10]}`)

	idx, err := Build(root)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if idx.Count() != 3 {
		t.Errorf("got count %d, want 3", idx.Count())
	}

	got := idx.Search(region.Region{
		TopLeft:     region.Coordinate{Lon: -180, Lat: 90},
		BottomRight: region.Coordinate{Lon: 180, Lat: -90},
	})
	if len(got) != 3 {
		t.Errorf("got %d results from world search, want 3", len(got))
	}
}

func TestBuildSkipsUnparsableFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "good.kml"),
		`<kml><coordinates>1,2,0</coordinates></kml>`)
	writeFile(t, filepath.Join(root, "bad.kml"), `<kml><Placemark/></kml>`)

	idx, err := Build(root)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if idx.Count() != 1 {
		t.Errorf("got count %d, want 1 (bad.kml should be skipped)", idx.Count())
	}
}

func TestBuildNotADirectory(t *testing.T) {
	root := t.TempDir()
	file := filepath.Join(root, "file.txt")
	writeFile(t, file, "hi")

	_, err := Build(file)
	if _, ok := err.(*ErrNotADirectory); !ok {
		t.Fatalf("expected ErrNotADirectory, got %T: %v", err, err)
	}
}

func TestClassifyMatchesSidecarsByStem(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "tract.shp"), "")
	writeFile(t, filepath.Join(root, "tract.prj"), "")
	writeFile(t, filepath.Join(root, "other.tfw"), "")

	kind, ok := classify(root, "tract.shp")
	if !ok {
		t.Fatal("expected tract.shp to classify")
	}
	if kind.ProjectionFile == "" {
		t.Error("expected tract.prj to be matched as projection sidecar")
	}
	if kind.WorldFile != "" {
		t.Error("expected no world file sidecar (other.tfw has a different stem)")
	}
}
