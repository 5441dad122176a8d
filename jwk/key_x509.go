package jwk

import (
	"context"
	"crypto/ecdsa"
	"crypto/rsa"
	"crypto/sha1" //nolint:gosec // x5t is defined by RFC-7517 to use SHA-1.
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"math/big"

	"go.bryk.io/jose/errors"
	"go.bryk.io/jose/fetch"
	e "golang.org/x/crypto/ed25519"
)

// ImportCertificateChain loads the public key material of `jwk` from its
// `x5c` certificate chain. Per §4.2, the chain uses *standard* (non
// URL-safe) base64, unlike every other binary JWK member. The public
// parameters decoded from the leaf certificate (`x5c[0]`) are validated
// against any `n`/`e`/`x`/`y` already present on the record, when set.
func ImportCertificateChain(rec Record) (Key, error) {
	if len(rec.CertificateChain) == 0 {
		return nil, errors.New("record carries no 'x5c' chain")
	}
	leaf, err := decodeCertificate(rec.CertificateChain[0])
	if err != nil {
		return nil, err
	}
	k, err := fromStd(leaf.PublicKey, false)
	if err != nil {
		return nil, errors.Wrap(err, "unsupported certificate public key")
	}
	if err := crossCheckPublicParams(k, rec); err != nil {
		return nil, err
	}
	k.SetID(rec.KeyID)
	return k, nil
}

// ImportCertificateURL resolves `jwk`'s `x5u` reference through `fetcher`
// and imports the resulting certificate chain the same way
// ImportCertificateChain does. Returns an error (never silently empty) if
// `flags` disables remote resolution.
func ImportCertificateURL(ctx context.Context, rec Record, fetcher fetch.RemoteFetcher, flags fetch.Flags) (Key, error) {
	if rec.CertificateURL == "" {
		return nil, errors.New("record carries no 'x5u' reference")
	}
	raw, err := fetcher.Fetch(ctx, rec.CertificateURL, flags)
	if err != nil {
		return nil, errors.Wrap(err, "failed to fetch 'x5u' reference")
	}
	rec.CertificateChain = []string{base64.StdEncoding.EncodeToString(raw)}
	return ImportCertificateChain(rec)
}

func decodeCertificate(b64cert string) (*x509.Certificate, error) {
	der, err := base64.StdEncoding.DecodeString(b64cert)
	if err != nil {
		return nil, errors.Wrap(err, "invalid base64 in 'x5c[0]'")
	}
	cert, err := x509.ParseCertificate(der)
	if err != nil {
		return nil, errors.Wrap(err, "invalid X.509 certificate")
	}
	return cert, nil
}

// crossCheckPublicParams verifies the key decoded from a certificate
// matches any public parameters already present on the record, per the
// invariant that `x5c[0]` must agree with `n`/`e` or `x`/`y` when both are
// present.
func crossCheckPublicParams(k Key, rec Record) error {
	switch pk := k.Public().(type) {
	case *rsa.PublicKey:
		if rec.N != "" {
			nB, err := b64.DecodeString(rec.N)
			if err != nil {
				return errors.Wrap(err, "invalid 'n' value")
			}
			if !bytesEqualBigEndian(nB, pk.N.Bytes()) {
				return errors.New("'x5c[0]' public key does not match 'n'")
			}
		}
		if rec.E != "" {
			eB, err := b64.DecodeString(rec.E)
			if err != nil {
				return errors.Wrap(err, "invalid 'e' value")
			}
			if !bytesEqualBigEndian(eB, big.NewInt(int64(pk.E)).Bytes()) {
				return errors.New("'x5c[0]' public key does not match 'e'")
			}
		}
	case ecdsa.PublicKey:
		if rec.X != "" {
			xB, err := b64.DecodeString(rec.X)
			if err != nil {
				return errors.Wrap(err, "invalid 'x' value")
			}
			if !bytesEqualBigEndian(xB, pk.X.Bytes()) {
				return errors.New("'x5c[0]' public key does not match 'x'")
			}
		}
		if rec.Y != "" {
			yB, err := b64.DecodeString(rec.Y)
			if err != nil {
				return errors.Wrap(err, "invalid 'y' value")
			}
			if !bytesEqualBigEndian(yB, pk.Y.Bytes()) {
				return errors.New("'x5c[0]' public key does not match 'y'")
			}
		}
	case e.PublicKey:
		if rec.X != "" {
			xB, err := b64.DecodeString(rec.X)
			if err != nil {
				return errors.Wrap(err, "invalid 'x' value")
			}
			if !bytesEqualBigEndian(xB, pk) {
				return errors.New("'x5c[0]' public key does not match 'x'")
			}
		}
	}
	return nil
}

// bytesEqualBigEndian compares two big-endian byte strings for numeric
// equality, tolerating differing leading-zero padding.
func bytesEqualBigEndian(a, b []byte) bool {
	a = trimLeadingZeros(a)
	b = trimLeadingZeros(b)
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func trimLeadingZeros(b []byte) []byte {
	for len(b) > 0 && b[0] == 0 {
		b = b[1:]
	}
	return b
}

// CertificateThumbprints computes the `x5t` (SHA-1) and `x5t#S256`
// (SHA-256) thumbprints of a DER-encoded certificate.
func CertificateThumbprints(der []byte) (sha1Thumb, sha256Thumb string) {
	h1 := sha1.Sum(der) //nolint:gosec // per RFC-7517 x5t definition.
	h2 := sha256.Sum256(der)
	return base64.RawURLEncoding.EncodeToString(h1[:]), base64.RawURLEncoding.EncodeToString(h2[:])
}
