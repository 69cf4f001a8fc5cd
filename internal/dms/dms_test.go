package dms

import (
	"math"
	"testing"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestParseDDMMSSH(t *testing.T) {
	cases := []struct {
		in   string
		want float64
	}{
		{"000000N", 0.0},
		{"120456E", 12.082222222222223},
		{"123045S", -(12.0 + 30.0/60.0 + 45.0/3600.0)},
	}
	for _, c := range cases {
		got, err := ParseDDMMSSH([]byte(c.in))
		if err != nil {
			t.Fatalf("ParseDDMMSSH(%q): %v", c.in, err)
		}
		if !near(got, c.want) {
			t.Errorf("ParseDDMMSSH(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestParseDDDMMSSH(t *testing.T) {
	got, err := ParseDDDMMSSH([]byte("1230456E"))
	if err != nil {
		t.Fatalf("ParseDDDMMSSH: %v", err)
	}
	want := 123.08222222222222
	if !near(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestInvalidHemisphere(t *testing.T) {
	if _, err := ParseDDMMSSH([]byte("123045X")); err == nil {
		t.Error("expected error for invalid hemisphere")
	}
	if _, err := ParseDDDMMSSH([]byte("1230456X")); err == nil {
		t.Error("expected error for invalid hemisphere")
	}
}

func TestInvalidLength(t *testing.T) {
	if _, err := ParseDDMMSSH([]byte("123456")); err == nil {
		t.Error("expected error for short input")
	}
	if _, err := ParseDDDMMSSH([]byte("123456")); err == nil {
		t.Error("expected error for short input")
	}
}

func TestInvalidDigits(t *testing.T) {
	if _, err := ParseDDMMSSH([]byte("1A0456E")); err == nil {
		t.Error("expected error for non-numeric field")
	}
}
