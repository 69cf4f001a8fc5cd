package geotiff

import (
	"io"

	"github.com/wavemark/fathom/internal/byteorder"
)

// fieldType is the IFD entry's value encoding.
type fieldType uint16

const (
	typeByte      fieldType = 1
	typeASCII     fieldType = 2
	typeShort     fieldType = 3
	typeLong      fieldType = 4
	typeRational  fieldType = 5
	typeUndefined fieldType = 7
	typeDouble    fieldType = 12
)

func (t fieldType) size() (int, bool) {
	switch t {
	case typeByte, typeASCII, typeUndefined:
		return 1, true
	case typeShort:
		return 2, true
	case typeLong:
		return 4, true
	case typeRational:
		return 8, true
	case typeDouble:
		return 8, true
	default:
		return 0, false
	}
}

// entry is one unresolved 12-byte IFD record.
type entry struct {
	tag   uint16
	typ   fieldType
	count uint32
	slot  [4]byte
}

// directory is the IFD: entries keyed by tag, with a lazily-populated value
// cache (phase 3 is deferred until a tag is actually consulted).
type directory struct {
	r       io.ReaderAt
	order   byteorder.Order
	entries map[uint16]entry
	cache   map[uint16]any
}

func readDirectory(r io.ReaderAt, order byteorder.Order, offset uint32) (*directory, error) {
	countBuf := make([]byte, 2)
	if _, err := r.ReadAt(countBuf, int64(offset)); err != nil {
		return nil, err
	}
	count, err := byteorder.ReadU16(countBuf, order)
	if err != nil {
		return nil, err
	}

	dir := &directory{
		r:       r,
		order:   order,
		entries: make(map[uint16]entry, count),
		cache:   make(map[uint16]any),
	}

	buf := make([]byte, 12)
	pos := int64(offset) + 2
	for i := uint16(0); i < count; i++ {
		if _, err := r.ReadAt(buf, pos); err != nil {
			return nil, err
		}
		tag, err := byteorder.ReadU16(buf[0:2], order)
		if err != nil {
			return nil, err
		}
		rawType, err := byteorder.ReadU16(buf[2:4], order)
		if err != nil {
			return nil, err
		}
		typ := fieldType(rawType)
		if _, ok := typ.size(); !ok {
			return nil, &ErrUnexpectedEntryType{Tag: tag, Type: rawType}
		}
		cnt, err := byteorder.ReadU32(buf[4:8], order)
		if err != nil {
			return nil, err
		}
		var slot [4]byte
		copy(slot[:], buf[8:12])

		dir.entries[tag] = entry{tag: tag, typ: typ, count: cnt, slot: slot}
		pos += 12
	}

	// The four bytes following the last entry (next-IFD offset) are
	// deliberately left unread; only the first IFD is supported.
	return dir, nil
}

// shorts resolves a tag as a slice of uint16, materializing and caching the
// value on first access.
func (d *directory) shorts(tag uint16) ([]uint16, bool, error) {
	e, ok := d.entries[tag]
	if !ok {
		return nil, false, nil
	}
	if e.typ != typeShort {
		return nil, true, &ErrUnexpectedEntryType{Tag: tag, Type: uint16(e.typ)}
	}
	if cached, ok := d.cache[tag]; ok {
		return cached.([]uint16), true, nil
	}

	raw, err := d.resolveBytes(e, 2)
	if err != nil {
		return nil, true, err
	}
	out := make([]uint16, e.count)
	for i := range out {
		v, err := byteorder.ReadU16(raw[i*2:i*2+2], d.order)
		if err != nil {
			return nil, true, err
		}
		out[i] = v
	}
	d.cache[tag] = out
	return out, true, nil
}

// doubles resolves a tag as a slice of float64.
func (d *directory) doubles(tag uint16) ([]float64, bool, error) {
	e, ok := d.entries[tag]
	if !ok {
		return nil, false, nil
	}
	if e.typ != typeDouble {
		return nil, true, &ErrUnexpectedEntryType{Tag: tag, Type: uint16(e.typ)}
	}
	if cached, ok := d.cache[tag]; ok {
		return cached.([]float64), true, nil
	}

	raw, err := d.resolveBytes(e, 8)
	if err != nil {
		return nil, true, err
	}
	out := make([]float64, e.count)
	for i := range out {
		v, err := byteorder.ReadF64(raw[i*8:i*8+8], d.order)
		if err != nil {
			return nil, true, err
		}
		out[i] = v
	}
	d.cache[tag] = out
	return out, true, nil
}

// resolveBytes materializes the raw bytes backing an entry: inline if they
// fit in the 4-byte slot, otherwise seeked from the file offset it encodes.
func (d *directory) resolveBytes(e entry, elemSize int) ([]byte, error) {
	total := elemSize * int(e.count)
	if total <= 4 {
		return append([]byte(nil), e.slot[:total]...), nil
	}

	offset, err := byteorder.ReadU32(e.slot[:], d.order)
	if err != nil {
		return nil, err
	}
	buf := make([]byte, total)
	if _, err := d.r.ReadAt(buf, int64(offset)); err != nil {
		return nil, err
	}
	return buf, nil
}
