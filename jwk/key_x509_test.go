package jwk

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/base64"
	"math/big"
	"testing"
	"time"

	tdd "github.com/stretchr/testify/assert"
)

func selfSignedCert(t *testing.T) (*ecdsa.PrivateKey, []byte) {
	t.Helper()
	sk, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	tmpl := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "test"},
		NotBefore:    time.Unix(0, 0),
		NotAfter:     time.Unix(0, 0).Add(24 * time.Hour),
	}
	der, err := x509.CreateCertificate(rand.Reader, tmpl, tmpl, &sk.PublicKey, sk)
	if err != nil {
		t.Fatal(err)
	}
	return sk, der
}

func TestImportCertificateChain(t *testing.T) {
	assert := tdd.New(t)
	_, der := selfSignedCert(t)

	rec := Record{
		CertificateChain: []string{base64.StdEncoding.EncodeToString(der)},
	}
	k, err := ImportCertificateChain(rec)
	assert.Nil(err)
	assert.Equal(EC, k.Kind())
}

func TestCertificateThumbprints(t *testing.T) {
	assert := tdd.New(t)
	_, der := selfSignedCert(t)
	t1, t256 := CertificateThumbprints(der)
	assert.NotEmpty(t1)
	assert.NotEmpty(t256)
	assert.NotEqual(t1, t256)
}
