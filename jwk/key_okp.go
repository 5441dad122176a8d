package jwk

import (
	"crypto"
	"io"

	ed25519kp "go.bryk.io/jose/crypto/ed25519"
	"go.bryk.io/jose/errors"
	"go.bryk.io/jose/jwa"
	e "golang.org/x/crypto/ed25519"
)

// newOKPSigning generates a new random Ed25519 signing key.
func newOKPSigning() (Key, error) {
	kp, err := ed25519kp.New()
	if err != nil {
		return nil, err
	}
	pub := kp.PublicKey()
	return &okpSigningKey{kp: kp, pub: pub[:], alg: jwa.EdDSA}, nil
}

// okpSigningKey is the OKP(signing) (Ed25519) Key implementation. `kp` is
// nil for keys imported without a 'd' (verify-only) value; `pub` is always
// populated.
type okpSigningKey struct {
	kp  *ed25519kp.KeyPair
	pub []byte
	id  string
	alg jwa.Alg
}

func (k *okpSigningKey) ID() string {
	if k.id != "" {
		return k.id
	}
	k.id = b64.EncodeToString(k.pub[:8])
	return k.id
}

func (k *okpSigningKey) SetID(id string) {
	k.id = id
}

func (k *okpSigningKey) Alg() jwa.Alg {
	return k.alg
}

func (k *okpSigningKey) Kind() Kind {
	return OKPSigning
}

func (k *okpSigningKey) Thumbprint() (string, error) {
	return thumbprint(k, []string{"crv", "kty", "x"})
}

func (k *okpSigningKey) Public() crypto.PublicKey {
	return e.PublicKey(k.pub)
}

// Destroy releases the locked memory segment backing the private key, when
// present. Verify-only keys hold no secret material and are a no-op.
func (k *okpSigningKey) Destroy() {
	if k.kp != nil {
		k.kp.Destroy()
	}
}

// Sign ignores `hh`: EdDSA hashes internally and never takes a pre-digested
// message. `rand` is also ignored, matching crypto/ed25519's deterministic
// signature scheme.
func (k *okpSigningKey) Sign(_ io.Reader, data []byte, _ crypto.SignerOpts) ([]byte, error) {
	if k.kp == nil {
		return nil, errors.New("key is 'verify' only")
	}
	return k.kp.Sign(data), nil
}

// Verify ignores `hh` for the same reason Sign does.
func (k *okpSigningKey) Verify(_ crypto.Hash, data, signature []byte) bool {
	return e.Verify(k.pub, data, signature)
}

func (k *okpSigningKey) MarshalBinary() ([]byte, error) {
	if k.kp == nil {
		return nil, errors.New("key is 'verify' only")
	}
	return k.kp.MarshalBinary()
}

func (k *okpSigningKey) UnmarshalBinary(data []byte) error {
	kp, err := ed25519kp.Unmarshal(data)
	if err != nil {
		return err
	}
	pub := kp.PublicKey()
	k.kp = kp
	k.pub = pub[:]
	return nil
}

func (k *okpSigningKey) Export(safe bool) Record {
	rec := Record{
		KeyID:   k.ID(),
		KeyType: "OKP",
		Crv:     "Ed25519",
		Use:     "sig",
		Alg:     string(k.alg),
		KeyOps:  []string{"verify"},
		X:       b64.EncodeToString(k.pub),
	}
	if !safe && k.kp != nil {
		rec.KeyOps = append(rec.KeyOps, "sign")
		rec.D = b64.EncodeToString(k.kp.PrivateKey()[:e.SeedSize])
	}
	return rec
}

func (k *okpSigningKey) Import(r Record) error {
	k.id = r.KeyID
	k.alg = jwa.EdDSA
	xB, err := b64.DecodeString(r.X)
	if err != nil {
		return errors.Wrap(err, "invalid 'x' value")
	}
	if len(xB) != e.PublicKeySize {
		return errors.New("invalid 'x' length for Ed25519 key")
	}
	k.pub = xB

	if r.D == "" {
		return nil
	}
	dB, err := b64.DecodeString(r.D)
	if err != nil {
		return errors.Wrap(err, "invalid 'd' value")
	}
	kp, err := ed25519kp.FromSeed(dB)
	if err != nil {
		return err
	}
	k.kp = kp
	return nil
}
