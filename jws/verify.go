package jws

import (
	"go.bryk.io/jose/base64url"
	"go.bryk.io/jose/jwa"
	"go.bryk.io/jose/jwk"
)

// Verify checks the JWS's signature(s) against its public key set (and,
// optionally, an explicit key), per §4.7. It returns Ok on success, and
// otherwise the most specific failure code available: BadInput for
// malformed state, InvalidKey for a key/kind mismatch or unresolved key,
// InvalidSignature for a cryptographically invalid signature.
func (j *JWS) Verify(explicit jwk.Key) Code {
	switch j.mode {
	case Compact, Flattened:
		return j.verifySingle(explicit)
	case General:
		return j.verifyGeneral(explicit)
	default:
		return BadInput
	}
}

// verifySingle handles Compact and Flattened mode: one signature, one
// resolved key.
func (j *JWS) verifySingle(explicit jwk.Key) Code {
	if j.alg == jwa.NONE {
		return InvalidKey
	}
	key, ok := j.selectVerificationKey(explicit, j.header.Kid())
	if !ok {
		return InvalidKey
	}
	// a signature segment with non-zero unused trailing bits decodes to the
	// same bytes, but it is not the encoding produced at signing time
	if base64url.Encode(j.signature) != j.signatureB64 {
		return InvalidSignature
	}
	input := j.headerB64 + "." + j.payloadB64
	return resultOf(verify(j.alg, key, []byte(input), j.signature))
}

// verifyGeneral handles General mode: iterate signatures in array order;
// for each, resolve its candidate key(s) and verify under its own
// declared `alg`. Per §8 property 6, the overall result is Ok iff at
// least one (signature, key) pair verifies; a successful entry
// short-circuits both its own key loop and the outer signature loop, so
// this is equivalent to an OR across all (signature, key) pairs. When no
// entry succeeds, the result is the last entry's own outcome.
func (j *JWS) verifyGeneral(explicit jwk.Key) Code {
	if j.serialization == nil || len(j.serialization.entries) == 0 {
		return BadInput
	}

	last := InvalidKey
	for _, entry := range j.serialization.entries {
		header, err := decodeProtected(entry.protected)
		if err != nil {
			last = BadInput
			continue
		}
		alg := jwa.Alg(header.Alg())
		if !alg.Recognized() || alg == jwa.NONE {
			last = InvalidKey
			continue
		}
		sig, err := base64url.Decode(entry.signature)
		if err != nil {
			last = BadInput
			continue
		}
		input := entry.protected + "." + j.serialization.payload

		last = j.verifyEntryAgainstCandidates(alg, explicit, header.Kid(), []byte(input), sig)
		if last == Ok {
			return Ok
		}
	}
	return last
}

// verifyEntryAgainstCandidates tries `explicit` if given, else the key
// matching `kid` in the public key set, else every public key in
// insertion order, stopping at the first non-InvalidSignature outcome. A
// `kid` that matches nothing in the public key set falls back to trying
// every key, the same as having no `kid` at all, rather than failing the
// entry outright: a forged or misattributed `kid` must not short-circuit
// past a key that would otherwise verify it.
func (j *JWS) verifyEntryAgainstCandidates(alg jwa.Alg, explicit jwk.Key, kid string, input, signature []byte) Code {
	if explicit != nil {
		return resultOf(verify(alg, explicit, input, signature))
	}
	if kid != "" {
		if key, ok := j.jwksPublic.Find(kid); ok {
			return resultOf(verify(alg, key, input, signature))
		}
	}

	result := InvalidKey
	for _, key := range j.jwksPublic.Keys() {
		result = resultOf(verify(alg, key, input, signature))
		if result != InvalidSignature {
			return result
		}
	}
	return result
}

// selectVerificationKey implements §4.7's single-signature key selection
// order: explicit key, else `kid` lookup, else a lone public key.
func (j *JWS) selectVerificationKey(explicit jwk.Key, kid string) (jwk.Key, bool) {
	if explicit != nil {
		return explicit, true
	}
	if kid != "" {
		return j.jwksPublic.Find(kid)
	}
	if j.jwksPublic.Len() == 1 {
		return j.jwksPublic.Keys()[0], true
	}
	return nil, false
}

// resultOf translates a dispatch verify() call into a Code: a non-nil
// error reports its own carried code; otherwise Ok/InvalidSignature
// follows the boolean result.
func resultOf(ok bool, err error) Code {
	if err != nil {
		return CodeOf(err)
	}
	if ok {
		return Ok
	}
	return InvalidSignature
}
