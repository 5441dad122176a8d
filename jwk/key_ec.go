package jwk

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/asn1"
	"encoding/pem"
	"io"
	"math/big"

	"go.bryk.io/jose/errors"
	cryptoutils "go.bryk.io/jose/internal/crypto"
	"go.bryk.io/jose/jwa"
)

// EC generates a new random Elliptic-Curve cryptographic key
// based on the provided curve identifier.
func newEC(alg jwa.Alg) (Key, error) {
	crv, err := alg.Curve()
	if err != nil {
		return nil, err
	}
	k := new(ecKey)
	k.sk, err = ecdsa.GenerateKey(crv, rand.Reader)
	if err != nil {
		return nil, err
	}
	return k, nil
}

type ecKey struct {
	sk  *ecdsa.PrivateKey
	id  string
	alg jwa.Alg
}

func (k *ecKey) ID() string {
	if k.id != "" {
		return k.id
	}
	k.id = cryptoutils.RandomID()
	return k.id
}

func (k *ecKey) SetID(id string) {
	k.id = id
}

func (k *ecKey) Alg() jwa.Alg {
	return k.alg
}

func (k *ecKey) Kind() Kind {
	return EC
}

func (k *ecKey) Thumbprint() (string, error) {
	return thumbprint(k, []string{"crv", "kty", "x", "y"})
}

// Destroy is a no-op for EC keys: crypto/ecdsa.PrivateKey stores its scalar
// as a *big.Int, which is not a fixed-size buffer memguard can lock or wipe
// without reimplementing the standard library's curve arithmetic. See
// DESIGN.md for the scoping decision.
func (k *ecKey) Destroy() {}

func (k *ecKey) Sign(rr io.Reader, data []byte, hh crypto.SignerOpts) ([]byte, error) {
	// No private key
	if k.sk == nil || k.sk.D == nil {
		return nil, errors.New("key is 'verify' only")
	}

	// Get digest of original data
	ih := hh.HashFunc().New()
	if _, err := ih.Write(data); err != nil {
		return nil, err
	}
	msg := ih.Sum(nil)

	// Sign message, then round-trip the (r, s) pair through its DER
	// encoding before converting to the fixed-width wire form.
	r, s, err := ecdsa.Sign(rr, k.sk, msg[:])
	if err != nil {
		return nil, err
	}
	der, err := asn1.Marshal(ecdsaSignature{R: r, S: s})
	if err != nil {
		return nil, errors.Wrap(err, "failed to encode DER signature")
	}
	return derToRaw(der, coordSize(k.sk.Curve))
}

func (k *ecKey) Verify(hh crypto.Hash, data, signature []byte) bool {
	// Get digest of original data
	ih := hh.New()
	if _, err := ih.Write(data); err != nil {
		return false
	}
	msg := ih.Sum(nil)

	// Convert the raw wire-format signature back to DER, then to (r, s).
	der, err := rawToDER(signature, coordSize(k.sk.Curve))
	if err != nil {
		return false
	}
	var sig ecdsaSignature
	if _, err := asn1.Unmarshal(der, &sig); err != nil {
		return false
	}
	return ecdsa.Verify(&k.sk.PublicKey, msg[:], sig.R, sig.S)
}

func (k *ecKey) Public() crypto.PublicKey {
	return k.sk.PublicKey
}

func (k *ecKey) MarshalBinary() ([]byte, error) {
	kb, err := x509.MarshalECPrivateKey(k.sk)
	if err != nil {
		return nil, errors.New("failed to marshal generated key")
	}
	return pem.EncodeToMemory(&pem.Block{
		Type:  "EC PRIVATE KEY",
		Bytes: kb,
	}), nil
}

func (k *ecKey) UnmarshalBinary(data []byte) error {
	bl, _ := pem.Decode(data)
	if bl == nil {
		return errors.New("invalid PEM data")
	}
	var err error
	k.sk, err = x509.ParseECPrivateKey(bl.Bytes)
	return err
}

func (k *ecKey) Export(safe bool) Record {
	size := coordSize(k.sk.Curve)
	rec := Record{
		KeyID:   k.ID(),
		KeyType: "EC",
		Use:     "sig",
		Alg:     string(k.alg),
		KeyOps:  []string{"verify"},
		Crv:     k.sk.Curve.Params().Name,
		X:       b64.EncodeToString(padBytes(k.sk.X.Bytes(), size)),
		Y:       b64.EncodeToString(padBytes(k.sk.Y.Bytes(), size)),
	}
	if !safe {
		rec.KeyOps = append(rec.KeyOps, "sign")
		rec.D = b64.EncodeToString(padBytes(k.sk.D.Bytes(), size))
	}
	return rec
}

// curveByName resolves a JWK 'crv' member to its Go curve implementation.
func curveByName(name string) (elliptic.Curve, error) {
	switch name {
	case "P-256":
		return elliptic.P256(), nil
	case "P-384":
		return elliptic.P384(), nil
	case "P-521":
		return elliptic.P521(), nil
	default:
		return nil, errors.Errorf("invalid 'crv' value '%s'", name)
	}
}

// algForCurve returns the default signing 'alg' for a curve, used when a
// JWK record omits the optional 'alg' member.
func algForCurve(name string) jwa.Alg {
	switch name {
	case "P-256":
		return jwa.ES256
	case "P-384":
		return jwa.ES384
	case "P-521":
		return jwa.ES512
	default:
		return ""
	}
}

// coordSize returns the fixed byte length for EC point coordinates of the
// given curve: 32 for P-256, 48 for P-384, 66 (not 64) for P-521.
func coordSize(crv elliptic.Curve) int {
	size := (crv.Params().BitSize + 7) / 8
	return size
}

// padBytes left-pads `b` with zeroes up to `size` bytes. If `b` is already
// `size` bytes or longer it is returned unmodified.
func padBytes(b []byte, size int) []byte {
	if len(b) >= size {
		return b
	}
	out := make([]byte, size)
	copy(out[size-len(b):], b)
	return out
}

func (k *ecKey) Import(r Record) error {
	// dispatch by 'crv', per spec: 'alg' is optional on the wire and must
	// not gate curve selection.
	crv, err := curveByName(r.Crv)
	if err != nil {
		return err
	}

	// decode public key
	xB, err := b64.DecodeString(r.X)
	if err != nil {
		return errors.Wrap(err, "invalid 'x' value")
	}
	x := new(big.Int).SetBytes(xB)
	yB, err := b64.DecodeString(r.Y)
	if err != nil {
		return errors.Wrap(err, "invalid 'y' value")
	}
	y := new(big.Int).SetBytes(yB)
	pub := ecdsa.PublicKey{
		X: x,
		Y: y,
	}
	k.id = r.KeyID
	k.alg = jwa.Alg(r.Alg)
	if k.alg == "" {
		k.alg = algForCurve(r.Crv)
	}
	k.sk = &ecdsa.PrivateKey{
		D:         nil,
		PublicKey: pub,
	}
	k.sk.Curve = crv

	// no private key available
	if r.D == "" {
		return nil
	}

	// decode private key
	dB, err := b64.DecodeString(r.D)
	if err != nil {
		return errors.Wrap(err, "invalid 'd' value")
	}
	k.sk.D = new(big.Int).SetBytes(dB)
	return nil
}
