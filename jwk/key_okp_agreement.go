package jwk

import (
	"crypto"
	"crypto/ecdh"
	"io"

	x25519kp "go.bryk.io/jose/crypto/x25519"
	"go.bryk.io/jose/errors"
	"go.bryk.io/jose/jwa"
)

// newOKPAgreement builds an (initially empty) OKP(key-agreement) key for
// the given curve name ("X25519" or "X448"). It is only meant to be used
// right before Import: there is no signing algorithm that creates these
// from scratch through New().
func newOKPAgreement(crv string) *okpAgreementKey {
	return &okpAgreementKey{crv: crv}
}

// okpAgreementKey represents X25519/X448 key-agreement material. No JWS
// algorithm signs or verifies with these; Sign/Verify always fail. They
// exist to round-trip the `kty: OKP` representation and to support the
// DH() helper for callers building higher-level protocols on top of JWK.
type okpAgreementKey struct {
	crv  string // "X25519" or "X448"
	pub  []byte
	priv []byte // nil for verify-only/public-only instances
	kp   *x25519kp.KeyPair
	id   string
}

// newX25519Agreement generates a new random X25519 key-agreement key.
func newX25519Agreement() (*okpAgreementKey, error) {
	kp, err := x25519kp.New()
	if err != nil {
		return nil, err
	}
	pub := kp.PublicKey()
	return &okpAgreementKey{crv: "X25519", kp: kp, pub: pub[:]}, nil
}

func (k *okpAgreementKey) ID() string {
	if k.id != "" {
		return k.id
	}
	if len(k.pub) >= 8 {
		k.id = b64.EncodeToString(k.pub[:8])
	}
	return k.id
}

func (k *okpAgreementKey) SetID(id string) { k.id = id }

// Alg always returns the empty string: OKP(key-agreement) keys are not
// associated with any JWS signing algorithm.
func (k *okpAgreementKey) Alg() jwa.Alg { return "" }

func (k *okpAgreementKey) Kind() Kind { return OKPKeyAgreement }

func (k *okpAgreementKey) Thumbprint() (string, error) {
	return thumbprint(k, []string{"crv", "kty", "x"})
}

func (k *okpAgreementKey) Public() crypto.PublicKey {
	if k.crv == "X25519" && len(k.pub) == 32 {
		pk, err := ecdh.X25519().NewPublicKey(k.pub)
		if err == nil {
			return pk
		}
	}
	return k.pub
}

// Sign always fails: key-agreement keys do not sign.
func (k *okpAgreementKey) Sign(_ io.Reader, _ []byte, _ crypto.SignerOpts) ([]byte, error) {
	return nil, errors.New("OKP(key-agreement) keys cannot sign")
}

// Verify always fails, for the same reason Sign does.
func (k *okpAgreementKey) Verify(_ crypto.Hash, _, _ []byte) bool {
	return false
}

// DH computes the X25519 shared secret with the given peer public key.
// Returns an error for X448 (representation-only in this module) or when
// no private key is available.
func (k *okpAgreementKey) DH(peerPublic []byte) ([]byte, error) {
	if k.crv != "X25519" {
		return nil, errors.Errorf("key agreement not implemented for curve '%s'", k.crv)
	}
	if k.kp == nil {
		return nil, errors.New("key is 'public' only")
	}
	var pub [32]byte
	copy(pub[:], peerPublic)
	secret := k.kp.DH(pub)
	if secret == nil {
		return nil, errors.New("failed to compute shared secret")
	}
	return secret, nil
}

func (k *okpAgreementKey) Destroy() {
	if k.kp != nil {
		k.kp.Destroy()
	}
}

func (k *okpAgreementKey) MarshalBinary() ([]byte, error) {
	if k.kp == nil {
		return nil, errors.New("key is 'public' only")
	}
	return k.kp.MarshalBinary()
}

func (k *okpAgreementKey) UnmarshalBinary(data []byte) error {
	if k.crv == "" {
		k.crv = "X25519"
	}
	kp, err := x25519kp.Unmarshal(data)
	if err != nil {
		return err
	}
	pub := kp.PublicKey()
	k.kp = kp
	k.pub = pub[:]
	return nil
}

func (k *okpAgreementKey) Export(safe bool) Record {
	rec := Record{
		KeyID:   k.ID(),
		KeyType: "OKP",
		Crv:     k.crv,
		Use:     "enc",
		KeyOps:  []string{"deriveBits"},
		X:       b64.EncodeToString(k.pub),
	}
	if !safe {
		switch {
		case k.kp != nil:
			rec.D = b64.EncodeToString(k.kp.PrivateKey())
		case k.priv != nil:
			rec.D = b64.EncodeToString(k.priv)
		}
	}
	return rec
}

func (k *okpAgreementKey) Import(r Record) error {
	k.id = r.KeyID
	k.crv = r.Crv
	xB, err := b64.DecodeString(r.X)
	if err != nil {
		return errors.Wrap(err, "invalid 'x' value")
	}
	k.pub = xB

	if r.D == "" {
		return nil
	}
	dB, err := b64.DecodeString(r.D)
	if err != nil {
		return errors.Wrap(err, "invalid 'd' value")
	}
	switch k.crv {
	case "X25519":
		kp, err := x25519kp.FromSeed(dB)
		if err != nil {
			return err
		}
		k.kp = kp
	case "X448":
		// Representation-only: X448 key agreement is out of scope (no JWE
		// support), so the raw 'd' value is kept verbatim without deriving
		// or validating a shared-secret-capable key pair.
		k.priv = dB
	default:
		return errors.Errorf("unsupported OKP curve '%s'", k.crv)
	}
	return nil
}

// NewX25519 generates a new random X25519 key-agreement key.
func NewX25519() (Key, error) {
	return newX25519Agreement()
}

// NewX448 builds a representation-only X448 key from caller-supplied public
// and private values (56 bytes each). X448 key agreement is not performed
// by this module (JWE is out of scope, and the standard library has no
// X448 implementation); the key exists so a `kty: OKP, crv: X448` JWK
// round-trips through Export/Import and Thumbprint correctly.
func NewX448(pub, priv []byte) (Key, error) {
	if len(pub) != 56 {
		return nil, errors.New("X448 public value must be 56 bytes")
	}
	if priv != nil && len(priv) != 56 {
		return nil, errors.New("X448 private value must be 56 bytes")
	}
	return &okpAgreementKey{crv: "X448", priv: priv, pub: pub}, nil
}
