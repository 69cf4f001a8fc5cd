package geotiff

import (
	"io"

	"github.com/wavemark/fathom/internal/byteorder"
)

// header is the result of phase 1: the 8-byte TIFF preamble.
type header struct {
	order        byteorder.Order
	firstIFDAddr uint32
}

func readHeader(r io.ReaderAt) (header, error) {
	buf := make([]byte, 8)
	if _, err := r.ReadAt(buf, 0); err != nil {
		return header{}, err
	}

	var order byteorder.Order
	switch {
	case buf[0] == 'I' && buf[1] == 'I':
		order = byteorder.LittleEndian
	case buf[0] == 'M' && buf[1] == 'M':
		order = byteorder.BigEndian
	default:
		return header{}, &ErrUnexpectedByteOrder{Got: [2]byte{buf[0], buf[1]}}
	}

	magic, err := byteorder.ReadU16(buf[2:4], order)
	if err != nil {
		return header{}, err
	}
	if magic != 42 {
		return header{}, &ErrUnexpectedMagicNumber{Got: magic}
	}

	offset, err := byteorder.ReadU32(buf[4:8], order)
	if err != nil {
		return header{}, err
	}

	return header{order: order, firstIFDAddr: offset}, nil
}
