package jwk

import (
	"crypto/ecdsa"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"

	"go.bryk.io/jose/errors"
	"go.bryk.io/jose/jwa"
	e "golang.org/x/crypto/ed25519"
)

// ImportPEM loads a cryptographic key from a PEM-encoded block, without the
// caller having to know its type ahead of time. It recognizes PKCS#1/PKCS#8
// private keys and PKIX public keys for RSA, EC and Ed25519.
func ImportPEM(data []byte) (Key, error) {
	bl, _ := pem.Decode(data)
	if bl == nil {
		return nil, errors.New("invalid PEM data")
	}
	return ImportDER(bl.Bytes)
}

// ImportDER loads a cryptographic key from a DER-encoded block, trying
// private key encodings (PKCS#1, EC, PKCS#8) before falling back to a
// PKIX public key.
func ImportDER(der []byte) (Key, error) {
	if key, err := x509.ParsePKCS1PrivateKey(der); err == nil {
		return fromStd(key, true)
	}
	if key, err := x509.ParseECPrivateKey(der); err == nil {
		return fromStd(key, true)
	}
	if key, err := x509.ParsePKCS8PrivateKey(der); err == nil {
		return fromStd(key, true)
	}
	if key, err := x509.ParsePKIXPublicKey(der); err == nil {
		return fromStd(key, false)
	}
	return nil, errors.New("unrecognized key encoding")
}

// fromStd wraps a standard-library key value (as returned by crypto/x509)
// into the matching jwk.Key implementation.
func fromStd(key any, private bool) (Key, error) {
	switch k := key.(type) {
	case *rsa.PrivateKey:
		rk := &rsaKey{key: k}
		return rk, nil
	case *rsa.PublicKey:
		rk := &rsaKey{key: &rsa.PrivateKey{PublicKey: *k}}
		return rk, nil
	case *ecdsa.PrivateKey:
		alg, err := stdAlgForCurve(k.Curve.Params().Name)
		if err != nil {
			return nil, err
		}
		return &ecKey{sk: k, alg: alg}, nil
	case *ecdsa.PublicKey:
		alg, err := stdAlgForCurve(k.Curve.Params().Name)
		if err != nil {
			return nil, err
		}
		return &ecKey{sk: &ecdsa.PrivateKey{PublicKey: *k}, alg: alg}, nil
	case e.PrivateKey:
		pub := k.Public().(e.PublicKey) // nolint: forcetypeassert
		kp := &okpSigningKey{pub: pub, alg: jwa.EdDSA}
		if err := kp.UnmarshalBinary(mustPEMWrap(k)); err != nil {
			return nil, err
		}
		return kp, nil
	case e.PublicKey:
		return &okpSigningKey{pub: k, alg: jwa.EdDSA}, nil
	default:
		_ = private
		return nil, errors.Errorf("unsupported key type %T", key)
	}
}

func stdAlgForCurve(name string) (jwa.Alg, error) {
	switch name {
	case "P-256":
		return jwa.ES256, nil
	case "P-384":
		return jwa.ES384, nil
	case "P-521":
		return jwa.ES512, nil
	default:
		return "", errors.Errorf("unsupported EC curve '%s'", name)
	}
}

// mustPEMWrap re-encodes a raw Ed25519 private key into the PEM block
// expected by ed25519kp.UnmarshalBinary, since x509.ParsePKCS8PrivateKey
// hands back the decoded key material directly rather than a PEM block.
func mustPEMWrap(k e.PrivateKey) []byte {
	return pem.EncodeToMemory(&pem.Block{
		Type:  "ED25519 PRIVATE KEY",
		Bytes: k,
	})
}
