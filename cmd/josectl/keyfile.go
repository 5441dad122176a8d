package main

import (
	"encoding/json"
	"os"

	"go.bryk.io/jose/errors"
	"go.bryk.io/jose/jwk"
)

// loadKey reads a key from `path`, accepting either a JWK JSON record or a
// PEM-encoded block.
func loadKey(path string) (jwk.Key, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read key file")
	}
	if key, err := jwk.ImportPEM(data); err == nil {
		return key, nil
	}
	var rec jwk.Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, errors.Wrap(err, "key file is neither a valid PEM block nor a JWK record")
	}
	return jwk.Import(rec)
}

// loadKeySet reads a JWK Set document (as produced by `josectl jwks export`)
// from `path`.
func loadKeySet(path string) (*jwk.KeySet, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "read JWKS file")
	}
	var set jwk.Set
	if err := json.Unmarshal(data, &set); err != nil {
		return nil, errors.Wrap(err, "decode JWKS document")
	}
	return jwk.ImportKeySet(set)
}
