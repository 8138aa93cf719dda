package security

import (
	"crypto/rsa"
	"crypto/tls"
	"crypto/x509"
	"encoding/pem"
	"fmt"
	"os"

	"golang.org/x/crypto/pkcs12"
)

// Certificate is a client certificate and its RSA private key, used both
// for mutual TLS and for signing request payloads.
type Certificate struct {
	cert *x509.Certificate
	key  *rsa.PrivateKey
}

// NewCertificateFromPFX loads a certificate from PKCS#12 data, as issued by
// the market operator.
func NewCertificateFromPFX(data []byte, passphrase string) (*Certificate, error) {
	key, cert, err := pkcs12.Decode(data, passphrase)
	if err != nil {
		return nil, fmt.Errorf("failed to decode PKCS#12 data: %w", err)
	}
	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("certificate key is %T, expected an RSA private key", key)
	}
	return &Certificate{cert: cert, key: rsaKey}, nil
}

// NewCertificateFromFile loads a PKCS#12 certificate file.
func NewCertificateFromFile(path, passphrase string) (*Certificate, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read certificate file: %w", err)
	}
	return NewCertificateFromPFX(data, passphrase)
}

// NewCertificateFromPEM loads a certificate and key from PEM blocks. PKCS#1
// and PKCS#8 key encodings are accepted.
func NewCertificateFromPEM(certPEM, keyPEM []byte) (*Certificate, error) {
	certBlock, _ := pem.Decode(certPEM)
	if certBlock == nil {
		return nil, fmt.Errorf("no PEM block found in certificate data")
	}
	cert, err := x509.ParseCertificate(certBlock.Bytes)
	if err != nil {
		return nil, fmt.Errorf("failed to parse certificate: %w", err)
	}

	keyBlock, _ := pem.Decode(keyPEM)
	if keyBlock == nil {
		return nil, fmt.Errorf("no PEM block found in key data")
	}
	var key *rsa.PrivateKey
	if key, err = x509.ParsePKCS1PrivateKey(keyBlock.Bytes); err != nil {
		parsed, err8 := x509.ParsePKCS8PrivateKey(keyBlock.Bytes)
		if err8 != nil {
			return nil, fmt.Errorf("failed to parse private key: %w", err8)
		}
		var ok bool
		if key, ok = parsed.(*rsa.PrivateKey); !ok {
			return nil, fmt.Errorf("private key is %T, expected an RSA private key", parsed)
		}
	}
	return &Certificate{cert: cert, key: key}, nil
}

// X509 returns the parsed certificate.
func (c *Certificate) X509() *x509.Certificate { return c.cert }

// PrivateKey returns the RSA private key.
func (c *Certificate) PrivateKey() *rsa.PrivateKey { return c.key }

// TLSCertificate returns the certificate in the form the TLS stack expects.
func (c *Certificate) TLSCertificate() tls.Certificate {
	return tls.Certificate{
		Certificate: [][]byte{c.cert.Raw},
		PrivateKey:  c.key,
		Leaf:        c.cert,
	}
}
