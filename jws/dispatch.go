package jws

import (
	"crypto"
	"crypto/rand"

	"go.bryk.io/jose/jwa"
	"go.bryk.io/jose/jwk"
)

// requiredKind reports the jwk.Kind a key must have to sign or verify with
// `alg`, per §4.3's dispatch table. This mapping cannot live in jwa itself
// without introducing an import cycle (jwk already imports jwa), so it is
// kept here, next to the code that actually enforces it.
func requiredKind(alg jwa.Alg) (jwk.Kind, bool) {
	switch alg.Family() {
	case jwa.FamilyHMAC:
		return jwk.Symmetric, true
	case jwa.FamilyRSAPKCS1, jwa.FamilyRSAPSS:
		return jwk.RSA, true
	case jwa.FamilyECDSA:
		return jwk.EC, true
	case jwa.FamilyEdDSA:
		return jwk.OKPSigning, true
	default:
		return jwk.Unknown, false
	}
}

// sign produces a signature over `input` using `key` under `alg`, enforcing
// the key-kind/algorithm match the dispatcher requires. A kind mismatch is
// reported as InvalidKey, never as a cryptographic failure.
func sign(alg jwa.Alg, key jwk.Key, input []byte) ([]byte, error) {
	if alg == jwa.NONE {
		return nil, nil
	}
	if !alg.Recognized() {
		return nil, errorf(InvalidKey, "unrecognized algorithm '%s'", alg)
	}
	want, ok := requiredKind(alg)
	if !ok || key == nil || key.Kind() != want {
		return nil, newError(InvalidKey, "key kind does not match algorithm '"+string(alg)+"'")
	}

	opts, err := signerOpts(alg)
	if err != nil {
		return nil, wrapError(InternalError, err, "failed to resolve hash for algorithm")
	}
	sig, err := key.Sign(rand.Reader, input, opts)
	if err != nil {
		return nil, wrapError(InvalidKey, err, "signing operation failed")
	}
	return sig, nil
}

// verify reports whether `signature` is valid over `input` using `key`
// under `alg`. A kind mismatch is InvalidKey; everything else collapses to
// a boolean, cryptographic-validity question for the caller to translate.
func verify(alg jwa.Alg, key jwk.Key, input, signature []byte) (bool, error) {
	if !alg.Recognized() {
		return false, errorf(InvalidKey, "unrecognized algorithm '%s'", alg)
	}
	want, ok := requiredKind(alg)
	if !ok || key == nil || key.Kind() != want {
		return false, newError(InvalidKey, "key kind does not match algorithm '"+string(alg)+"'")
	}
	opts, err := signerOpts(alg)
	if err != nil {
		return false, wrapError(InternalError, err, "failed to resolve hash for algorithm")
	}
	return key.Verify(opts.HashFunc(), input, signature), nil
}

// signerOpts returns the crypto.SignerOpts to use for `alg`. EdDSA has no
// associated hash (it hashes internally), so crypto.Hash(0) is used as a
// placeholder SignerOpts; jwk's EdDSA key implementation ignores it.
func signerOpts(alg jwa.Alg) (crypto.SignerOpts, error) {
	if alg.Family() == jwa.FamilyEdDSA {
		return crypto.Hash(0), nil
	}
	return alg.HashFunction()
}
