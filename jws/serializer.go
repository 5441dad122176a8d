package jws

import (
	"encoding/json"

	"go.bryk.io/jose/base64url"
	"go.bryk.io/jose/jwk"
)

// SerializeCompact implements §4.6's serialize_compact transition:
// resolve the signing key, refresh the header/payload caches, compute
// the signature, and emit `H.P.S` (S empty, but the trailing dot still
// present, for `alg`=="none").
func (j *JWS) SerializeCompact() (string, error) {
	return j.serializeCompact(nil)
}

// SerializeCompactWithKey is SerializeCompact, but forces `key` as the
// signing key regardless of the header's `kid` or the private key set's
// contents.
func (j *JWS) SerializeCompactWithKey(key jwk.Key) (string, error) {
	return j.serializeCompact(key)
}

func (j *JWS) serializeCompact(explicit jwk.Key) (string, error) {
	key, err := j.resolveSigningKey(explicit)
	if err != nil {
		return "", err
	}
	if err := j.refreshHeaderB64(); err != nil {
		return "", err
	}
	if err := j.refreshPayloadB64(); err != nil {
		return "", err
	}

	input := j.headerB64 + "." + j.payloadB64
	sig, err := sign(j.alg, key, []byte(input))
	if err != nil {
		return "", err
	}
	j.signature = sig
	if len(sig) == 0 {
		j.signatureB64 = ""
	} else {
		j.signatureB64 = base64url.Encode(sig)
	}
	j.mode = Compact
	return input + "." + j.signatureB64, nil
}

// SerializeJSON implements §4.6's serialize_json transition. `mode` must
// be Flattened or General.
func (j *JWS) SerializeJSON(mode Mode) ([]byte, error) {
	switch mode {
	case Flattened:
		return j.serializeFlattened()
	case General:
		return j.serializeGeneral()
	default:
		return nil, newError(BadInput, "SerializeJSON requires Flattened or General mode")
	}
}

func (j *JWS) serializeFlattened() ([]byte, error) {
	key, err := j.resolveSigningKey(nil)
	if err != nil {
		return nil, err
	}
	if err := j.refreshHeaderB64(); err != nil {
		return nil, err
	}
	if err := j.refreshPayloadB64(); err != nil {
		return nil, err
	}

	input := j.headerB64 + "." + j.payloadB64
	sig, err := sign(j.alg, key, []byte(input))
	if err != nil {
		return nil, err
	}
	j.signature = sig
	j.signatureB64 = base64url.Encode(sig)
	j.mode = Flattened

	return json.Marshal(wireFlattened{
		Payload:   j.payloadB64,
		Protected: j.headerB64,
		Signature: j.signatureB64,
	})
}

// serializeGeneral computes one signature per key in the private key
// set, each under its own protected header (a clone of the JWS's base
// header with `alg` and `kid` overridden to match that key), all sharing
// the single outer `payload`.
func (j *JWS) serializeGeneral() ([]byte, error) {
	if j.jwksPrivate.Len() == 0 {
		return nil, newError(InvalidKey, "General serialization requires at least one signing key")
	}
	if err := j.refreshPayloadB64(); err != nil {
		return nil, err
	}

	out := wireGeneral{Payload: j.payloadB64}
	for _, key := range j.jwksPrivate.Keys() {
		alg := key.Alg()
		if alg == "" {
			alg = j.alg
		}

		perKeyHeader := j.header.Clone()
		if err := perKeyHeader.Set("alg", string(alg)); err != nil {
			return nil, err
		}
		if key.ID() != "" {
			if err := perKeyHeader.Set("kid", key.ID()); err != nil {
				return nil, err
			}
		}
		headerJSON, err := json.Marshal(perKeyHeader)
		if err != nil {
			return nil, wrapError(InternalError, err, "failed to encode per-key protected header")
		}
		protectedB64 := base64url.Encode(headerJSON)

		input := protectedB64 + "." + j.payloadB64
		sig, err := sign(alg, key, []byte(input))
		if err != nil {
			return nil, err
		}
		out.Signatures = append(out.Signatures, wireGeneralEntry{
			Protected: protectedB64,
			Signature: base64url.Encode(sig),
		})
	}

	j.mode = General
	return json.Marshal(out)
}

// refreshHeaderB64 recomputes the cached protected-header encoding if it
// was invalidated by a prior setter call.
func (j *JWS) refreshHeaderB64() error {
	if j.headerB64 != "" {
		return nil
	}
	raw, err := json.Marshal(j.header)
	if err != nil {
		return wrapError(InternalError, err, "failed to encode header")
	}
	j.headerB64 = base64url.Encode(raw)
	return nil
}

// refreshPayloadB64 recomputes the cached payload encoding, applying
// raw-DEFLATE compression first if `zip`=="DEF".
func (j *JWS) refreshPayloadB64() error {
	if j.payloadB64 != "" {
		return nil
	}
	data := j.payload
	if j.header.Zip() == zipDEF {
		compressed, err := deflate(data)
		if err != nil {
			return err
		}
		data = compressed
	}
	j.payloadB64 = base64url.Encode(data)
	return nil
}
