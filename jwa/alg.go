/*
Package jwa provides cryptographic algorithm identifiers as described by RFC-7518.

The specification registers cryptographic algorithms and identifiers
to be used with the JSON Web Signature (JWS), JSON Web Encryption
(JWE), and JSON Web Key (JWK) specifications. It defines several
IANA registries for these identifiers.

More information:
https://www.rfc-editor.org/rfc/rfc7518.html
*/
package jwa

import (
	"crypto"
	"crypto/elliptic"

	"go.bryk.io/jose/errors"
)

// Alg values provide valid cryptographic algorithm identifiers as described
// by RFC-7518, plus "EdDSA" as registered by RFC-8037.
//
// https://www.rfc-editor.org/rfc/rfc7518.html#section-3.1
type Alg string

const (
	// NONE - Insecure token, i.e, empty signature segment.
	NONE Alg = "none"
	// HS256 - HMAC using SHA-256.
	HS256 Alg = "HS256"
	// HS384 - HMAC using SHA-384.
	HS384 Alg = "HS384"
	// HS512 - HMAC using SHA-512.
	HS512 Alg = "HS512"
	// RS256 - RSASSA-PKCS1-v1_5 using SHA-256.
	RS256 Alg = "RS256"
	// RS384 - RSASSA-PKCS1-v1_5 using SHA-384.
	RS384 Alg = "RS384"
	// RS512 - RSASSA-PKCS1-v1_5 using SHA-512.
	RS512 Alg = "RS512"
	// PS256 - RSASSA-PSS using SHA-256 and MGF1 with SHA-256.
	PS256 Alg = "PS256"
	// PS384 - RSASSA-PSS using SHA-384 and MGF1 with SHA-384.
	PS384 Alg = "PS384"
	// PS512 - RSASSA-PSS using SHA-512 and MGF1 with SHA-512.
	PS512 Alg = "PS512"
	// ES256 - ECDSA using P-256 and SHA-256.
	ES256 Alg = "ES256"
	// ES384 - ECDSA using P-384 and SHA-384.
	ES384 Alg = "ES384"
	// ES512 - ECDSA using P-521 and SHA-512.
	ES512 Alg = "ES512"
	// EdDSA - Edwards-curve Digital Signature Algorithm (Ed25519 only here).
	EdDSA Alg = "EdDSA"
	// ES256K - ECDSA using secp256k1 and SHA-256. Reserved: recognized as a
	// valid string so callers can detect and reject it explicitly, but no
	// Family/Dispatch support is provided. See DESIGN.md.
	ES256K Alg = "ES256K"
)

// Family groups algorithm identifiers that share a signing/verification
// mechanism and key requirements.
type Family int

const (
	// FamilyUnknown marks an unrecognized 'alg' value.
	FamilyUnknown Family = iota
	// FamilyNone is the insecure 'none' algorithm.
	FamilyNone
	// FamilyHMAC covers HS256/HS384/HS512.
	FamilyHMAC
	// FamilyRSAPKCS1 covers RS256/RS384/RS512.
	FamilyRSAPKCS1
	// FamilyRSAPSS covers PS256/PS384/PS512.
	FamilyRSAPSS
	// FamilyECDSA covers ES256/ES384/ES512.
	FamilyECDSA
	// FamilyEdDSA covers EdDSA (Ed25519).
	FamilyEdDSA
)

// Family returns the signing mechanism family for the algorithm identifier.
// Unrecognized or reserved-but-unsupported values (e.g. "ES256K") return
// FamilyUnknown.
func (a Alg) Family() Family {
	switch a {
	case NONE:
		return FamilyNone
	case HS256, HS384, HS512:
		return FamilyHMAC
	case RS256, RS384, RS512:
		return FamilyRSAPKCS1
	case PS256, PS384, PS512:
		return FamilyRSAPSS
	case ES256, ES384, ES512:
		return FamilyECDSA
	case EdDSA:
		return FamilyEdDSA
	default:
		return FamilyUnknown
	}
}

// Recognized reports whether the identifier names an algorithm this package
// can dispatch (i.e. has a non-unknown Family).
func (a Alg) Recognized() bool {
	return a.Family() != FamilyUnknown
}

// HashFunction returns the proper crypto function for the algorithm identifier.
// EdDSA has no associated crypto.Hash (Ed25519 hashes internally) and returns
// an error, as does any unrecognized identifier.
func (a Alg) HashFunction() (crypto.Hash, error) {
	switch a.Family() {
	case FamilyHMAC, FamilyRSAPKCS1, FamilyRSAPSS, FamilyECDSA:
		// fall through to suffix-based lookup below
	default:
		return 0, errors.Errorf("alg '%s' has no associated hash function", a)
	}
	alg := string(a)
	switch s := alg[len(alg)-3:]; s {
	case "256":
		return crypto.SHA256, nil
	case "384":
		return crypto.SHA384, nil
	case "512":
		return crypto.SHA512, nil
	default:
		return crypto.SHA256, errors.Errorf("invalid hash suffix '%s'", s)
	}
}

// Curve returns the proper Elliptic curve for the algorithm identifier.
func (a Alg) Curve() (elliptic.Curve, error) {
	switch a {
	case ES256:
		return elliptic.P256(), nil
	case ES384:
		return elliptic.P384(), nil
	case ES512:
		return elliptic.P521(), nil
	default:
		return nil, errors.Errorf("invalid curve identifier %s", a)
	}
}

// CoordSize returns the fixed byte length used for the 'x'/'y'/'d' EC
// coordinates and for the raw signature halves, per curve: 32 for P-256,
// 48 for P-384 and 66 (not 64) for P-521.
func (a Alg) CoordSize() (int, error) {
	switch a {
	case ES256:
		return 32, nil
	case ES384:
		return 48, nil
	case ES512:
		return 66, nil
	default:
		return 0, errors.Errorf("invalid curve identifier %s", a)
	}
}
