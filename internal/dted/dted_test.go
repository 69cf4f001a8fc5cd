package dted

import (
	"bytes"
	"testing"

	"github.com/wavemark/fathom/internal/region"
)

func buildUHL() []byte {
	buf := bytes.Repeat([]byte{' '}, uhlSize)
	copy(buf[0:4], uhlSentinel)
	copy(buf[4:12], "1000000E") // origin longitude, DDDMMSSH
	copy(buf[12:20], "0100000N") // origin latitude, DDDMMSSH per field width
	return buf
}

func buildDSI() []byte {
	buf := bytes.Repeat([]byte{' '}, dsiSize)
	copy(buf[0:4], dsiSentinel)

	// SW = (lat 0, lon 0)
	copy(buf[204:211], "000000N")
	copy(buf[211:219], "0000000E")
	// NW = (lat 10, lon 100)
	copy(buf[219:226], "100000N")
	copy(buf[226:234], "1000000E")
	// NE = (lat 0.5, lon 0.5)
	copy(buf[234:241], "003000N")
	copy(buf[241:249], "0003000E")
	// SE = (lat 0.0125, lon 0.0125)
	copy(buf[249:256], "000045N")
	copy(buf[256:264], "0000045E")

	return buf
}

func TestExtractDTEDCorners(t *testing.T) {
	var stream bytes.Buffer
	stream.Write(buildUHL())
	stream.Write(buildDSI())

	got, err := Extract(&stream)
	if err != nil {
		t.Fatalf("Extract: %v", err)
	}

	want := region.Region{
		TopLeft:     region.Coordinate{Lon: 100.0, Lat: 10.0},
		BottomRight: region.Coordinate{Lon: 0.0125, Lat: 0.0125},
	}
	if got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestExtractBadUHLSentinel(t *testing.T) {
	uhl := buildUHL()
	copy(uhl[0:4], "XXXX")
	var stream bytes.Buffer
	stream.Write(uhl)
	stream.Write(buildDSI())

	_, err := Extract(&stream)
	if _, ok := err.(*ErrInvalidSentinel); !ok {
		t.Fatalf("expected ErrInvalidSentinel, got %T: %v", err, err)
	}
}

func TestExtractBadDSISentinel(t *testing.T) {
	dsi := buildDSI()
	copy(dsi[0:4], "XXXX")
	var stream bytes.Buffer
	stream.Write(buildUHL())
	stream.Write(dsi)

	_, err := Extract(&stream)
	if _, ok := err.(*ErrInvalidSentinel); !ok {
		t.Fatalf("expected ErrInvalidSentinel, got %T: %v", err, err)
	}
}

func TestExtractShortStream(t *testing.T) {
	_, err := Extract(bytes.NewReader(buildUHL()[:40]))
	if err == nil {
		t.Error("expected error for truncated UHL")
	}
}
