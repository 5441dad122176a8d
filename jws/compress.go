package jws

import (
	"bytes"
	"compress/flate"
	"io"

	"go.bryk.io/jose/errors"
)

// zipDEF is the only recognized 'zip' header value: raw DEFLATE (no zlib
// or gzip framing) applied to the payload before base64url encoding.
const zipDEF = "DEF"

// deflate compresses `data` using raw DEFLATE.
func deflate(data []byte) ([]byte, error) {
	buf := new(bytes.Buffer)
	w, err := flate.NewWriter(buf, flate.BestCompression)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize deflate writer")
	}
	if _, err = w.Write(data); err != nil {
		return nil, errors.Wrap(err, "failed to compress payload")
	}
	if err = w.Close(); err != nil {
		return nil, errors.Wrap(err, "failed to finalize compressed payload")
	}
	return buf.Bytes(), nil
}

// inflate decompresses a raw DEFLATE stream produced by deflate.
func inflate(data []byte) ([]byte, error) {
	r := flate.NewReader(bytes.NewReader(data))
	defer func() { _ = r.Close() }()
	out, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "failed to decompress payload")
	}
	return out, nil
}
