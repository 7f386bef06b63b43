package common

import (
	"bytes"
	"testing"
)

func TestHexRoundTrip(t *testing.T) {
	in := []byte{0x00, 0xab, 0x10, 0xff}

	s := EncodeToString(in)
	if s != "0X00AB10FF" {
		t.Fatalf("EncodeToString should be 0X00AB10FF, not %s", s)
	}

	out, err := DecodeFromString(s)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(in, out) {
		t.Fatalf("decoded bytes should be %v, not %v", in, out)
	}

	if _, err := DecodeFromString("AB10"); err == nil {
		t.Fatalf("DecodeFromString should reject strings without prefix")
	}
}
