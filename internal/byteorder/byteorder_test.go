package byteorder

import "testing"

func TestU16RoundTrip(t *testing.T) {
	for _, order := range []Order{LittleEndian, BigEndian} {
		for _, v := range []uint16{0, 1, 42, 0xBEEF, 0xFFFF} {
			got, err := ReadU16(WriteU16(v, order), order)
			if err != nil {
				t.Fatalf("ReadU16: %v", err)
			}
			if got != v {
				t.Errorf("order=%v: got %d, want %d", order, got, v)
			}
		}
	}
}

func TestU32RoundTrip(t *testing.T) {
	for _, order := range []Order{LittleEndian, BigEndian} {
		for _, v := range []uint32{0, 1, 42, 0xDEADBEEF, 0xFFFFFFFF} {
			got, err := ReadU32(WriteU32(v, order), order)
			if err != nil {
				t.Fatalf("ReadU32: %v", err)
			}
			if got != v {
				t.Errorf("order=%v: got %d, want %d", order, got, v)
			}
		}
	}
}

func TestF64RoundTrip(t *testing.T) {
	for _, order := range []Order{LittleEndian, BigEndian} {
		for _, v := range []float64{0, 1, -1, 3.14159265, 1e308, -1e-308} {
			got, err := ReadF64(WriteF64(v, order), order)
			if err != nil {
				t.Fatalf("ReadF64: %v", err)
			}
			if got != v {
				t.Errorf("order=%v: got %v, want %v", order, got, v)
			}
		}
	}
}

func TestWrongLength(t *testing.T) {
	if _, err := ReadU16([]byte{1}, LittleEndian); err == nil {
		t.Error("expected error for short buffer")
	}
	if _, err := ReadU32([]byte{1, 2, 3}, LittleEndian); err == nil {
		t.Error("expected error for short buffer")
	}
	if _, err := ReadF64([]byte{1, 2, 3, 4, 5, 6, 7}, LittleEndian); err == nil {
		t.Error("expected error for short buffer")
	}
}

func TestEndianness(t *testing.T) {
	b := []byte{0x01, 0x00}
	le, _ := ReadU16(b, LittleEndian)
	be, _ := ReadU16(b, BigEndian)
	if le != 1 {
		t.Errorf("little-endian: got %d, want 1", le)
	}
	if be != 256 {
		t.Errorf("big-endian: got %d, want 256", be)
	}
}
