package security

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCertificate(t *testing.T) *Certificate {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	require.NoError(t, err)

	template := x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "F100.FAKEUSER"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
		KeyUsage:     x509.KeyUsageDigitalSignature,
	}
	der, err := x509.CreateCertificate(rand.Reader, &template, &template, &key.PublicKey, key)
	require.NoError(t, err)
	cert, err := x509.ParseCertificate(der)
	require.NoError(t, err)
	return &Certificate{cert: cert, key: key}
}

func TestCanonicalize(t *testing.T) {
	// Attributes are sorted and empty elements expanded in canonical form.
	out, err := Canonicalize([]byte(`<?xml version='1.0' encoding='utf-8'?>
<MarketData b="2" a="1"><MarketSubmit/></MarketData>`))
	require.NoError(t, err)
	assert.Equal(t, `<MarketData a="1" b="2"><MarketSubmit></MarketSubmit></MarketData>`, string(out))
}

func TestCanonicalizeKeepsComments(t *testing.T) {
	out, err := Canonicalize([]byte(`<MarketData><!-- annotation --></MarketData>`))
	require.NoError(t, err)
	assert.Contains(t, string(out), "<!-- annotation -->")
}

func TestCanonicalizeInvalid(t *testing.T) {
	_, err := Canonicalize([]byte("not xml <<<"))
	assert.Error(t, err)
}

func TestSignAndVerify(t *testing.T) {
	signer, err := NewSigner(testCertificate(t))
	require.NoError(t, err)

	doc := []byte(`<MarketData b="2" a="1"><MarketSubmit/></MarketData>`)
	canonical, sig, err := signer.Sign(doc)
	require.NoError(t, err)
	assert.NotEmpty(t, sig)

	// The signature covers the canonical bytes, not the input bytes.
	assert.NoError(t, signer.Verify(canonical, sig))
	assert.Error(t, signer.Verify(doc, sig))
	assert.Error(t, signer.Verify(canonical, "Zm9yZ2VyeQ=="))
}

func TestSignBytes(t *testing.T) {
	signer, err := NewSigner(testCertificate(t))
	require.NoError(t, err)

	sig, err := signer.SignBytes([]byte("attachment content"))
	require.NoError(t, err)
	assert.NoError(t, signer.Verify([]byte("attachment content"), sig))
}

func TestNewSignerRequiresKey(t *testing.T) {
	_, err := NewSigner(nil)
	assert.Error(t, err)
}

func TestCertificateFromPEM(t *testing.T) {
	source := testCertificate(t)
	certPEM := pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: source.cert.Raw})
	keyPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(source.key)})

	cert, err := NewCertificateFromPEM(certPEM, keyPEM)
	require.NoError(t, err)
	assert.Equal(t, "F100.FAKEUSER", cert.X509().Subject.CommonName)

	tlsCert := cert.TLSCertificate()
	require.Len(t, tlsCert.Certificate, 1)
	assert.Equal(t, source.cert.Raw, tlsCert.Certificate[0])
}
