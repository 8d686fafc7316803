// Package codec handles the transport framing around the wire payload:
// base64 on the config channel, gzip underneath, wire messages inside.
// All functions are pure; the caller owns retries and fallback.
package codec

import (
	"bytes"
	"compress/gzip"
	"encoding/base64"
	"io"

	perr "peloton/internal/platform/errors"
	"peloton/internal/wire"
)

// Decode gunzips blob and decodes the plaintext as a CyclingData message.
// A corrupt or truncated stream is a Decompression error; schema
// violations surface as WireDecode errors from the wire package.
func Decode(blob []byte) (*wire.CyclingData, error) {
	gz, err := gzip.NewReader(bytes.NewReader(blob))
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDecompression, "gzip header")
	}
	plain, err := io.ReadAll(gz)
	if cerr := gz.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDecompression, "gzip stream")
	}
	return wire.Unmarshal(plain)
}

// DecodeString strips the base64 transport encoding used by the config
// channel, then decodes as Decode does
func DecodeString(b64 string) (*wire.CyclingData, error) {
	blob, err := base64.StdEncoding.DecodeString(b64)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDecompression, "base64 payload")
	}
	return Decode(blob)
}

// Encode is the producer-side inverse of Decode
func Encode(d *wire.CyclingData) ([]byte, error) {
	var buf bytes.Buffer
	gz := gzip.NewWriter(&buf)
	if _, err := gz.Write(wire.Marshal(d)); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnknown, "gzip write")
	}
	if err := gz.Close(); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeUnknown, "gzip close")
	}
	return buf.Bytes(), nil
}

// EncodeString is the producer-side inverse of DecodeString
func EncodeString(d *wire.CyclingData) (string, error) {
	blob, err := Encode(d)
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(blob), nil
}
