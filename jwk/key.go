package jwk

import (
	"bytes"
	"crypto"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"

	"go.bryk.io/jose/errors"
	"go.bryk.io/jose/jwa"
)

// Base64 encoding used consistently by all standard keys.
var b64 = base64.RawURLEncoding

// Kind identifies the cryptographic key family backing a Key instance,
// independent of the signing algorithm it happens to be tagged with.
type Kind int

const (
	// Unknown marks a key whose kind could not be determined.
	Unknown Kind = iota
	// RSA keys, used with RS*/PS* algorithms.
	RSA
	// EC keys (P-256/P-384/P-521), used with ES* algorithms.
	EC
	// OKPSigning keys (Ed25519), used with EdDSA.
	OKPSigning
	// OKPKeyAgreement keys (X25519/X448). No JWS algorithm signs with
	// these; they exist to complete the `kty: OKP` representation surface.
	OKPKeyAgreement
	// Symmetric (oct) keys, used with HS* algorithms.
	Symmetric
)

// String implements fmt.Stringer.
func (k Kind) String() string {
	switch k {
	case RSA:
		return "RSA"
	case EC:
		return "EC"
	case OKPSigning:
		return "OKP(signing)"
	case OKPKeyAgreement:
		return "OKP(key-agreement)"
	case Symmetric:
		return "oct"
	default:
		return "unknown"
	}
}

// New returns a new cryptographic key to sign tokens for the provided
// 'alg' identifier.
// https://www.rfc-editor.org/rfc/rfc7518.html#section-3.1
func New(alg jwa.Alg) (Key, error) {
	if alg == jwa.NONE {
		return nil, errors.New("no key is required for alg 'NONE'")
	}
	if alg == jwa.EdDSA {
		return newOKPSigning()
	}
	if len(alg) < 2 {
		return nil, errors.Errorf("invalid 'alg' value '%s'", alg)
	}
	// nolint: forcetypeassert, errcheck
	switch alg[0:2] {
	case "HS":
		k, err := newHMAC(64)
		if err == nil {
			k.(*hmacKey).alg = alg
		}
		return k, err
	case "RS":
		k, err := newRSA(2048, false)
		if err == nil {
			k.(*rsaKey).alg = alg
		}
		return k, err
	case "PS":
		k, err := newRSA(2048, true)
		if err == nil {
			k.(*rsaKey).alg = alg
		}
		return k, err
	case "ES":
		k, err := newEC(alg)
		if err == nil {
			k.(*ecKey).alg = alg
		}
		return k, err
	default:
		return nil, errors.Errorf("invalid 'alg' value '%s'", alg)
	}
}

// Import a cryptographic key from its portable JWK representation.
//
// Dispatch is by 'kty' (and, for EC/OKP, 'crv'), never by 'alg': RFC 7517
// makes 'alg' optional, and real-world JWKS commonly omit it.
func Import(jwk Record) (Key, error) {
	var k Key
	switch jwk.KeyType {
	case "oct":
		k = new(hmacKey)
	case "RSA":
		k = new(rsaKey)
	case "EC":
		k = new(ecKey)
	case "OKP":
		if jwk.Crv == "X25519" || jwk.Crv == "X448" {
			k = newOKPAgreement(jwk.Crv)
		} else {
			k = new(okpSigningKey)
		}
	default:
		return nil, errors.Errorf("invalid 'kty' value '%s'", jwk.KeyType)
	}
	if err := k.Import(jwk); err != nil {
		return nil, err
	}
	return k, nil
}

// Calculate a JWK thumbprint as defined by RFC7638.
//
// https://www.rfc-editor.org/rfc/rfc7638.html
func thumbprint(k Key, segments []string) (string, error) {
	// get map of key parameters
	rec := k.Export(true)
	if rec.KeyType == "oct" {
		rec = k.Export(false) // the required 'k' member is private material
	}
	js, _ := json.Marshal(rec)
	params := make(map[string]any)
	if err := json.Unmarshal(js, &params); err != nil {
		return "", err
	}

	// create deterministic output of required segments
	j := len(segments)
	sb := bytes.NewBuffer(nil)
	sb.Write([]byte("{"))
	for i := range j {
		fmt.Fprintf(sb, "\"%s\":\"%s\"", segments[i], params[segments[i]])
		if i < j-1 {
			sb.Write([]byte(","))
		}
	}
	sb.Write([]byte("}"))

	// return b64-encoded SHA256 value of thumbprint
	hash := sha256.Sum256(sb.Bytes())
	return b64.EncodeToString(hash[:]), nil
}

// Key represents a cryptographic key used to sign and verify JWT instances.
// Different key types are required to support the different algorithms (i.e.
// methods) included in the RFC-7519 specification.
type Key interface {
	// ID returns a unique identifier for the key. If no `id` was
	// explicitly set for the key, one is assigned on first use and kept:
	// a random identifier for RSA, EC and oct keys, and an encoding of
	// the first bytes of the public key for OKP keys.
	ID() string

	// SetID adjust the `id` value for the key instance.
	SetID(id string)

	// Alg returns the JWA cryptographic algorithm identifier intended for the key.
	Alg() jwa.Alg

	// Kind reports the cryptographic key family backing the instance.
	Kind() Kind

	// Thumbprint returns a unique key identifier as defined by RFC-7638.
	//
	// https://www.rfc-editor.org/rfc/rfc7638.html
	Thumbprint() (string, error)

	// Public returns the public key corresponding to the opaque,
	// private key.
	Public() crypto.PublicKey

	// Sign will produce a valid digital signature. The original `data` will be
	// hashed using the provided `hh` hash function.
	Sign(rand io.Reader, data []byte, hh crypto.SignerOpts) (signature []byte, err error)

	// Verify the authenticity of a provided signature against the original data.
	Verify(hh crypto.Hash, data, signature []byte) bool

	// Export a portable representation of the key instance.
	// When `safe` is true, the private key information won't be included
	// in the exported data.
	// https://www.rfc-editor.org/rfc/rfc7517.html
	Export(safe bool) Record

	// Destroy releases any secure memory segment backing the key's private
	// material. Safe to call more than once; safe to call on a verify-only
	// key. After Destroy, Sign must not be called again.
	Destroy()

	// Import a key instance from a previously generated record.
	Import(src Record) error

	// MarshalBinary encodes the receiver into a binary form and returns the result
	MarshalBinary() ([]byte, error)

	// UnmarshalBinary decodes the `data` produced by `MarshalBinary` into the
	// receiver.
	UnmarshalBinary(data []byte) error
}

// Record is an object that represents a cryptographic key.
// https://www.rfc-editor.org/rfc/rfc7517.html#section-4
type Record struct {
	// The "kty" (key type) parameter identifies the cryptographic algorithm
	// family used with the key, such as "RSA" or "EC".  "kty" values should
	// either be registered in the IANA "JSON Web Key Types" registry
	// established by [JWA] or be a value that contains a Collision-Resistant
	// name. The "kty" value is a case-sensitive string. This member MUST be
	// present.
	//
	// JWA: https://www.rfc-editor.org/rfc/rfc7518.html
	KeyType string `json:"kty" yaml:"kty" mapstructure:"kty"`

	// The "key_ops" (key operations) parameter identifies the operation(s)
	// for which the key is intended to be used.  The "key_ops" parameter is
	// intended for use cases in which public, private, or symmetric keys
	// may be present.
	//  - "sign" (compute digital signature or MAC)
	//  - "verify" (verify digital signature or MAC)
	//  - "encrypt" (encrypt content)
	//  - "decrypt" (decrypt content and validate decryption, if applicable)
	//  - "wrapKey" (encrypt key)
	//  - "unwrapKey" (decrypt key and validate decryption, if applicable)
	//  - "deriveKey" (derive key)
	//  - "deriveBits" (derive bits not to be used as a key)
	KeyOps []string `json:"key_ops" yaml:"key_ops" mapstructure:"key_ops"`

	// The "kid" (key ID) parameter is used to match a specific key.  This
	// is used, for instance, to choose among a set of keys within a JWK Set
	// during key rollover.  The structure of the "kid" value is
	// unspecified.  When "kid" values are used within a JWK Set, different
	// keys within the JWK Set SHOULD use distinct "kid" values.
	KeyID string `json:"kid" yaml:"kid" mapstructure:"kid"`

	// The "use" (public key use) parameter identifies the intended use of
	// the public key.  The "use" parameter is employed to indicate whether
	// a public key is used for encrypting ("enc") data or verifying the signature
	// on data ("sig").
	Use string `json:"use" yaml:"use" mapstructure:"use"`

	// The "alg" (algorithm) parameter identifies the algorithm intended for
	// use with the key. The values used should either be registered in the
	// IANA "JSON Web Signature and Encryption Algorithms".
	Alg string `json:"alg" yaml:"alg" mapstructure:"alg"`

	// The "k" (key value) parameter contains the value of the symmetric (or
	// other single-valued) key.
	K string `json:"k,omitempty" yaml:"k,omitempty" mapstructure:"k,omitempty"`

	// Curve identifier.
	Crv string `json:"crv,omitempty" yaml:"crv,omitempty" mapstructure:"crv,omitempty"`

	// X coordinate of the public key.
	X string `json:"x,omitempty" yaml:"x,omitempty" mapstructure:"x,omitempty"`

	// Y coordinate of the public key.
	Y string `json:"y,omitempty" yaml:"y,omitempty" mapstructure:"y,omitempty"`

	// The "d" (ECC private key) parameter contains the Elliptic Curve
	// private key value.
	D string `json:"d,omitempty" yaml:"d,omitempty" mapstructure:"d,omitempty"`

	// The "n" (modulus) parameter contains the modulus value for the RSA
	// public key.
	N string `json:"n,omitempty" yaml:"n,omitempty" mapstructure:"n,omitempty"`

	// The "e" (exponent) parameter contains the exponent value for the RSA
	// public key.
	E string `json:"e,omitempty" yaml:"e,omitempty" mapstructure:"e,omitempty"`

	// == Private RSA key fields.

	// The "p" (first prime factor) parameter contains the first prime
	// factor.
	P string `json:"p,omitempty" yaml:"p,omitempty" mapstructure:"p,omitempty"`

	// The "q" (second prime factor) parameter contains the second prime
	// factor.
	Q string `json:"q,omitempty" yaml:"q,omitempty" mapstructure:"q,omitempty"`

	// The "dp" (first factor CRT exponent) parameter contains the Chinese
	// Remainder Theorem (CRT) exponent of the first factor.
	DP string `json:"dp,omitempty" yaml:"dp,omitempty" mapstructure:"dp,omitempty"`

	// The "dq" (second factor CRT exponent) parameter contains the CRT
	// exponent of the second factor.
	DQ string `json:"dq,omitempty" yaml:"dq,omitempty" mapstructure:"dq,omitempty"`

	// The "qi" (first CRT coefficient) parameter contains the CRT
	// coefficient of the second factor.
	Qi string `json:"qi,omitempty" yaml:"qi,omitempty" mapstructure:"qi,omitempty"`

	// == EOF Private RSA key fields.

	// The "x5u" (X.509 URL) parameter is a URI [RFC3986] that refers to a
	// resource for an X.509 public key certificate or certificate chain
	// [RFC5280].
	CertificateURL string `json:"x5u,omitempty" yaml:"x5u,omitempty" mapstructure:"x5u,omitempty"`

	// The "x5c" (X.509 certificate chain) parameter contains a chain of one
	// or more PKIX certificates [RFC5280].  The certificate chain is
	// represented as a JSON array of certificate value strings. Each string in
	// the array is a base64-encoded PKIX certificate.
	CertificateChain []string `json:"x5c,omitempty" yaml:"x5c,omitempty" mapstructure:"x5c,omitempty"`

	// The "x5t" (X.509 certificate SHA-1 thumbprint) parameter is a
	// base64url-encoded SHA-1 thumbprint (a.k.a. digest) of the DER
	// encoding of an X.509 certificate
	CertificateThumbprintSHA1 string `json:"x5t,omitempty" yaml:"x5t,omitempty" mapstructure:"x5t,omitempty"`

	// The "x5t#S256" (X.509 certificate SHA-256 thumbprint) parameter is a
	// base64url-encoded SHA-256 thumbprint (a.k.a. digest) of the DER
	// encoding of an X.509 certificate
	CertificateThumbprintSHA2 string `json:"x5t#S256,omitempty" yaml:"x5t#S256,omitempty" mapstructure:"x5t#S256,omitempty"` // nolint: lll
}

// Set is an object that represents a collection of "JSON Web Keys".
// https://www.rfc-editor.org/rfc/rfc7517.html#section-5
type Set struct {
	// The value of the "keys" parameter is an array of JWK values.
	// By default, the order of the JWK values within the array does
	// not imply an order of preference among them.
	Keys []Record `json:"keys" yaml:"keys" mapstructure:"keys"`
}

// KeySet is the runtime (as opposed to wire-format) counterpart of Set: an
// ordered collection of imported Key instances, indexed by key ID for O(1)
// average-case lookups.
type KeySet struct {
	keys  []Key
	index map[string]int
}

// NewKeySet returns an empty, ready to use key set.
func NewKeySet() *KeySet {
	return &KeySet{index: make(map[string]int)}
}

// ImportKeySet builds a KeySet from a wire-format Set, importing every
// record in order. The first record that fails to import aborts the
// operation and returns its error.
func ImportKeySet(set Set) (*KeySet, error) {
	ks := NewKeySet()
	for _, rec := range set.Keys {
		k, err := Import(rec)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to import key '%s'", rec.KeyID)
		}
		ks.Add(k)
	}
	return ks, nil
}

// Add appends a key to the set, preserving insertion order. If a key with
// the same ID is already present, it keeps its original position but Find
// will keep returning the first match (the newly added key is still
// reachable by iterating Keys).
func (ks *KeySet) Add(k Key) {
	if _, ok := ks.index[k.ID()]; !ok {
		ks.index[k.ID()] = len(ks.keys)
	}
	ks.keys = append(ks.keys, k)
}

// Find returns the first key in the set matching the provided `kid`.
func (ks *KeySet) Find(kid string) (Key, bool) {
	i, ok := ks.index[kid]
	if !ok || i >= len(ks.keys) {
		return nil, false
	}
	return ks.keys[i], true
}

// Len returns the number of keys held by the set.
func (ks *KeySet) Len() int {
	return len(ks.keys)
}

// Keys returns the keys in the set, in insertion order. The returned slice
// must not be mutated by the caller.
func (ks *KeySet) Keys() []Key {
	return ks.keys
}

// Export renders the set in its portable JWKS wire format.
func (ks *KeySet) Export(safe bool) Set {
	set := Set{Keys: make([]Record, 0, len(ks.keys))}
	for _, k := range ks.keys {
		set.Keys = append(set.Keys, k.Export(safe))
	}
	return set
}
