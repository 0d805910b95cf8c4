package frame

import (
	"testing"

	"github.com/danmuck/mspctl/internal/testutil/testlog"
)

func TestCrcV2KnownVectors(t *testing.T) {
	testlog.Start(t)
	cases := []struct {
		name string
		data []byte
		want byte
	}{
		{"empty", nil, 0x00},
		{"api version header", []byte{0x00, 0x00, 0x01, 0x00, 0x00}, 0x83},
		{"payload frame", []byte{0x00, 0x00, 0x02, 0x03, 0x00, 0x01, 0x02, 0x03}, 0xD5},
		{"check string", []byte("123456789"), 0xBC},
	}
	for _, tc := range cases {
		if got := CrcV2(tc.data); got != tc.want {
			t.Fatalf("%s: crc 0x%02X, want 0x%02X", tc.name, got, tc.want)
		}
	}
}

func TestChecksumV1(t *testing.T) {
	testlog.Start(t)
	if got := ChecksumV1(nil); got != 0 {
		t.Fatalf("empty xor: got 0x%02X", got)
	}
	if got := ChecksumV1([]byte{3, 2, 1, 2, 3}); got != 1 {
		t.Fatalf("xor: got 0x%02X, want 0x01", got)
	}
	// xor over a range is order independent and self-inverse
	if got := ChecksumV1([]byte{0xAA, 0xAA}); got != 0 {
		t.Fatalf("self-inverse xor: got 0x%02X", got)
	}
}
