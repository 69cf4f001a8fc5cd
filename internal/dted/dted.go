// Package dted extracts a WGS-84 bounding box from a DTED level 1/2 file's
// UHL and DSI header blocks.
package dted

import (
	"fmt"
	"io"

	"github.com/wavemark/fathom/internal/dms"
	"github.com/wavemark/fathom/internal/region"
)

const (
	uhlSize = 80
	dsiSize = 648

	uhlSentinel = "UHL1"
	dsiSentinel = "DSIU"
)

// ErrInvalidSentinel indicates a block's leading magic bytes didn't match
// what the format requires.
type ErrInvalidSentinel struct {
	Block string
	Got   string
}

func (e *ErrInvalidSentinel) Error() string {
	return fmt.Sprintf("dted: invalid %s sentinel: %q", e.Block, e.Got)
}

// Extract reads the UHL and DSI blocks from r, in that order, and returns
// the Region whose top-left is the DSI's NW corner and whose bottom-right is
// its SE corner. The SW and NE corners are decoded and validated but do not
// affect the result.
func Extract(r io.Reader) (region.Region, error) {
	uhl := make([]byte, uhlSize)
	if _, err := io.ReadFull(r, uhl); err != nil {
		return region.Region{}, err
	}
	if string(uhl[0:4]) != uhlSentinel {
		return region.Region{}, &ErrInvalidSentinel{Block: "UHL", Got: string(uhl[0:4])}
	}
	// Origin longitude/latitude (bytes 4..12, 12..20) are read for
	// completeness; extent comes from the DSI corners below.
	if _, err := dms.ParseDDDMMSSH(uhl[4:12]); err != nil {
		return region.Region{}, err
	}
	if _, err := dms.ParseDDDMMSSH(uhl[12:20]); err != nil {
		return region.Region{}, err
	}

	dsi := make([]byte, dsiSize)
	if _, err := io.ReadFull(r, dsi); err != nil {
		return region.Region{}, err
	}
	if string(dsi[0:4]) != dsiSentinel {
		return region.Region{}, &ErrInvalidSentinel{Block: "DSI", Got: string(dsi[0:4])}
	}

	sw, err := corner(dsi, 204, 211, 219)
	if err != nil {
		return region.Region{}, err
	}
	nw, err := corner(dsi, 219, 226, 234)
	if err != nil {
		return region.Region{}, err
	}
	ne, err := corner(dsi, 234, 241, 249)
	if err != nil {
		return region.Region{}, err
	}
	se, err := corner(dsi, 249, 256, 264)
	if err != nil {
		return region.Region{}, err
	}

	return region.FromDTEDCorners(nw, ne, se, sw), nil
}

// corner decodes one DSI corner: a 7-byte DDMMSSH latitude field followed by
// an 8-byte DDDMMSSH longitude field.
func corner(dsi []byte, latStart, lonStart, lonEnd int) (region.Coordinate, error) {
	lat, err := dms.ParseDDMMSSH(dsi[latStart : latStart+7])
	if err != nil {
		return region.Coordinate{}, err
	}
	lon, err := dms.ParseDDDMMSSH(dsi[lonStart:lonEnd])
	if err != nil {
		return region.Coordinate{}, err
	}
	return region.Coordinate{Lon: lon, Lat: lat}, nil
}
