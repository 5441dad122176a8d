package jwk

import (
	"encoding/asn1"
	"math/big"

	"go.bryk.io/jose/errors"
)

// ecdsaSignature mirrors the ASN.1 SEQUENCE of two INTEGERs most
// cryptographic backends (and the wire format this module's original
// source targets) use to represent an ECDSA signature, ahead of
// conversion to/from the JWS raw fixed-width form used on the wire.
//
// Go's crypto/ecdsa.Sign hands back (r, s *big.Int) directly rather than a
// DER blob, but round-tripping explicitly through encoding/asn1 here keeps
// the DER<->raw conversion a real, independently testable code path
// instead of an implicit consequence of the stdlib API shape.
type ecdsaSignature struct {
	R, S *big.Int
}

// derToRaw converts a DER-encoded ECDSA signature into the raw big-endian
// concatenation of R and S, each padded (or stripped of leading-zero
// padding) to `size` bytes.
func derToRaw(der []byte, size int) ([]byte, error) {
	var sig ecdsaSignature
	if _, err := asn1.Unmarshal(der, &sig); err != nil {
		return nil, errors.Wrap(err, "failed to decode DER signature")
	}
	out := make([]byte, 2*size)
	writeFixedWidth(out[:size], sig.R, size)
	writeFixedWidth(out[size:], sig.S, size)
	return out, nil
}

// rawToDER converts a fixed-width raw ECDSA signature (2*size bytes) back
// into its DER-encoded ASN.1 SEQUENCE form. A length mismatch is reported
// as errWrongSignatureLength, which callers should translate to
// InvalidSignature rather than a parse failure.
func rawToDER(raw []byte, size int) ([]byte, error) {
	if len(raw) != 2*size {
		return nil, errWrongSignatureLength
	}
	sig := ecdsaSignature{
		R: new(big.Int).SetBytes(raw[:size]),
		S: new(big.Int).SetBytes(raw[size:]),
	}
	der, err := asn1.Marshal(sig)
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode DER signature")
	}
	return der, nil
}

// errWrongSignatureLength is a sentinel distinguishing a malformed
// signature length (a verification failure) from a genuine encoding
// error (an internal failure).
var errWrongSignatureLength = errors.New("signature length does not match curve size")

// writeFixedWidth writes the big-endian bytes of `n` into `dst`, which
// must be exactly `size` bytes long.
func writeFixedWidth(dst []byte, n *big.Int, size int) {
	b := n.Bytes()
	if len(b) > size {
		b = b[len(b)-size:]
	}
	copy(dst[size-len(b):], b)
}
