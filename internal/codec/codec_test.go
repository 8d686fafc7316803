package codec

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"testing"

	perr "peloton/internal/platform/errors"
	"peloton/internal/wire"
)

func payload() *wire.CyclingData {
	return &wire.CyclingData{
		Teams:  []wire.Team{{ID: "jumbo", Name: "Team Visma", Status: wire.TeamStatusWorldTeam}},
		Riders: []wire.Rider{{ID: "jonas", FirstName: "Jonas", LastName: "Vingegaard"}},
		Races:  []wire.Race{{ID: "tdf", Name: "Tour de France"}},
	}
}

func TestRoundTrip(t *testing.T) {
	blob, err := Encode(payload())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := Decode(blob)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Riders[0].LastName != "Vingegaard" {
		t.Fatalf("payload mangled: %+v", out)
	}
}

func TestStringRoundTrip(t *testing.T) {
	b64, err := EncodeString(payload())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	out, err := DecodeString(b64)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if out.Teams[0].ID != "jumbo" {
		t.Fatalf("payload mangled: %+v", out)
	}
}

func TestDecodeNotGzip(t *testing.T) {
	_, err := Decode([]byte("not a gzip stream"))
	if !perr.IsCode(err, perr.ErrorCodeDecompression) {
		t.Fatalf("want Decompression error, got %v", err)
	}
}

func TestDecodeTruncatedGzip(t *testing.T) {
	blob, err := Encode(payload())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	_, err = Decode(blob[:len(blob)-4])
	if !perr.IsCode(err, perr.ErrorCodeDecompression) {
		t.Fatalf("want Decompression error for truncated stream, got %v", err)
	}
}

func TestDecodeCorruptGzipBody(t *testing.T) {
	blob, err := Encode(payload())
	if err != nil {
		t.Fatalf("encode: %v", err)
	}
	// flip a byte past the header
	blob[len(blob)/2] ^= 0xff
	if _, err := Decode(blob); err == nil {
		t.Fatalf("expected error for corrupt stream")
	}
}

func TestDecodeStringBadBase64(t *testing.T) {
	_, err := DecodeString("%%% definitely not base64 %%%")
	if !perr.IsCode(err, perr.ErrorCodeDecompression) {
		t.Fatalf("want Decompression error, got %v", err)
	}
}

func TestDecodeStringGzipOfGarbage(t *testing.T) {
	// valid base64, valid gzip, but the plaintext is not a wire message
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write([]byte{0xff, 0xff, 0xff}); err != nil {
		t.Fatalf("gzip write: %v", err)
	}
	if err := gz.Close(); err != nil {
		t.Fatalf("gzip close: %v", err)
	}
	b64 := base64.StdEncoding.EncodeToString(buf.Bytes())
	_, err := DecodeString(b64)
	if !perr.IsCode(err, perr.ErrorCodeWireDecode) {
		t.Fatalf("want WireDecode error, got %v", err)
	}
}
