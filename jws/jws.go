/*
Package jws implements JSON Web Signature processing per RFC-7515: the
compact, flattened-JSON and general-JSON serialization forms, the
algorithm dispatch across HMAC/RSA/ECDSA/EdDSA, and the key-resolution
rules a verifier applies across inline headers and caller-supplied key
sets.

https://www.rfc-editor.org/rfc/rfc7515.html
*/
package jws

import (
	"go.bryk.io/jose/jwa"
	"go.bryk.io/jose/jwk"
	"go.bryk.io/jose/log"
)

// Mode identifies the wire shape a JWS was parsed from, or will be
// serialized to.
type Mode int

const (
	// ModeUnknown is the zero value: no shape has been chosen yet.
	ModeUnknown Mode = iota
	// Compact is the three-segment `H.P.S` form.
	Compact
	// Flattened is the single-signature JSON object form.
	Flattened
	// General is the multi-signature JSON object form.
	General
)

// String implements fmt.Stringer.
func (m Mode) String() string {
	switch m {
	case Compact:
		return "compact"
	case Flattened:
		return "flattened"
	case General:
		return "general"
	default:
		return "unknown"
	}
}

// JWS is the central state machine: it owns a header, a payload, a
// signature, the algorithm in use, the wire mode, and the two key sets
// used to sign (private) and verify (public) it.
//
// A JWS is not safe for concurrent use by multiple goroutines.
type JWS struct {
	header    *Header
	headerB64 string

	payload    []byte
	payloadB64 string

	signature    []byte
	signatureB64 string

	alg  jwa.Alg
	mode Mode

	jwksPrivate *jwk.KeySet
	jwksPublic  *jwk.KeySet

	// serialization holds the parsed JSON tree for a Flattened/General
	// JWS, deep-copied at parse time so the JWS is self-contained. It is
	// nil for a JWS built by composition.
	serialization *jsonSerialization

	logger log.Logger
}

// New returns an empty JWS, ready for composition: set a payload, set
// header fields, add a signing key, then serialize.
func New() *JWS {
	return &JWS{
		header:      NewHeader(),
		jwksPrivate: jwk.NewKeySet(),
		jwksPublic:  jwk.NewKeySet(),
		logger:      log.Discard(),
	}
}

// SetLogger overrides the logger used to report non-fatal conditions. The
// default is a discarding logger. Header-extension processing, where a
// failed `jku`/`x5u` fetch is reported, runs inside Parse with that
// default logger, before SetLogger can be called on the result; those
// entries are therefore never written to a logger set here.
func (j *JWS) SetLogger(l log.Logger) {
	if l == nil {
		l = log.Discard()
	}
	j.logger = l
}

// Mode reports the wire shape this JWS was parsed from or last
// serialized to.
func (j *JWS) Mode() Mode {
	return j.mode
}

// Alg reports the algorithm currently associated with this JWS.
func (j *JWS) Alg() jwa.Alg {
	return j.alg
}

// Header returns a deep copy of the current header. Mutating the
// returned value has no effect on the JWS; use SetHeaderValue /
// DeleteHeaderValue to mutate the JWS's own header so its cached
// encoding is invalidated correctly.
func (j *JWS) Header() *Header {
	return j.header.Clone()
}

// Payload returns the (decompressed, if `zip` was set) payload bytes.
func (j *JWS) Payload() []byte {
	return j.payload
}

// Signature returns the raw signature bytes, or nil if the JWS has not
// been signed (or parsed from a signed token).
func (j *JWS) Signature() []byte {
	return j.signature
}

// SetPayload sets the payload to be signed. Any previously computed
// signature is invalidated: a JWS must be re-signed after its payload
// changes.
func (j *JWS) SetPayload(data []byte) {
	j.payload = data
	j.payloadB64 = ""
	j.invalidateSignature()
}

// SetAlg sets the signature algorithm, writing it into the header's
// `alg` member.
func (j *JWS) SetAlg(alg jwa.Alg) error {
	if err := j.header.Set("alg", string(alg)); err != nil {
		return err
	}
	j.alg = alg
	j.invalidateHeader()
	return nil
}

// SetZip enables (or disables) raw-DEFLATE payload compression by
// writing (or clearing) the header's `zip` member.
func (j *JWS) SetZip(enabled bool) error {
	if !enabled {
		j.header.Delete("zip")
		j.invalidateHeader()
		return nil
	}
	if err := j.header.Set("zip", zipDEF); err != nil {
		return err
	}
	j.invalidateHeader()
	return nil
}

// SetHeaderValue sets an arbitrary header member, invalidating the
// cached header encoding.
func (j *JWS) SetHeaderValue(key string, value any) error {
	if err := j.header.Set(key, value); err != nil {
		return err
	}
	j.invalidateHeader()
	return nil
}

// DeleteHeaderValue removes a header member, invalidating the cached
// header encoding.
func (j *JWS) DeleteHeaderValue(key string) {
	j.header.Delete(key)
	j.invalidateHeader()
}

// AddSigningKey adds a private signing key, deep-copying it into the
// JWS's own private key set (per the ownership rule in §3: keys added to
// a JWS are owned by it, not aliased to the caller's key instance).
func (j *JWS) AddSigningKey(key jwk.Key) error {
	cp, err := deepCopyKey(key)
	if err != nil {
		return wrapError(InternalError, err, "failed to copy signing key")
	}
	j.jwksPrivate.Add(cp)
	return nil
}

// AddVerificationKey adds a public verification key, deep-copying it
// into the JWS's own public key set.
func (j *JWS) AddVerificationKey(key jwk.Key) error {
	cp, err := deepCopyKey(key)
	if err != nil {
		return wrapError(InternalError, err, "failed to copy verification key")
	}
	j.jwksPublic.Add(cp)
	return nil
}

// resolveSigningKey implements §4.8's key resolution order for
// serialization: an explicit key wins; else a header `kid` is looked up
// in the private key set; else the private key set must hold exactly one
// key. If the JWS's `alg` is still unset but the resolved key names one,
// it is adopted and written into the header; if the key carries a `kid`
// and the header does not, it is copied in too.
func (j *JWS) resolveSigningKey(explicit jwk.Key) (jwk.Key, error) {
	// alg="none" requires no key at all.
	if explicit == nil && j.alg == jwa.NONE && j.jwksPrivate.Len() == 0 {
		return nil, nil
	}

	key := explicit
	if key == nil {
		if kid := j.header.Kid(); kid != "" {
			if k, ok := j.jwksPrivate.Find(kid); ok {
				key = k
			}
		}
	}
	if key == nil {
		if j.jwksPrivate.Len() != 1 {
			return nil, newError(InvalidKey, "no signing key resolved: supply one explicitly, via 'kid', or add exactly one")
		}
		key = j.jwksPrivate.Keys()[0]
	}

	if j.alg == "" || j.alg == jwa.NONE {
		if keyAlg := key.Alg(); keyAlg != "" && keyAlg.Recognized() {
			if err := j.SetAlg(keyAlg); err != nil {
				return nil, err
			}
		}
	}
	if j.header.Kid() == "" && key.ID() != "" {
		if err := j.SetHeaderValue("kid", key.ID()); err != nil {
			return nil, err
		}
	}
	return key, nil
}

// deepCopyKey clones a jwk.Key by round-tripping it through its portable
// (private, i.e. `safe=false`) record representation. This both satisfies
// the ownership rule (the JWS never aliases a caller's key instance) and
// reuses the same import/export machinery already exercised by Parse.
func deepCopyKey(key jwk.Key) (jwk.Key, error) {
	return jwk.Import(key.Export(false))
}

// invalidateHeader clears the cached header encoding. Per §4.6, any
// setter that writes into the header JSON must call this so a subsequent
// serialize recomputes the signing input against the new header bytes.
func (j *JWS) invalidateHeader() {
	j.headerB64 = ""
	j.invalidateSignature()
}

// invalidateSignature clears the cached signature: it is only ever valid
// for the exact (header, payload) pair it was computed over.
func (j *JWS) invalidateSignature() {
	j.signature = nil
	j.signatureB64 = ""
}

// Destroy releases the private key material owned by this JWS. Safe to
// call more than once.
func (j *JWS) Destroy() {
	for _, k := range j.jwksPrivate.Keys() {
		k.Destroy()
	}
}
