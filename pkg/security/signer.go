package security

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"encoding/base64"
	"fmt"

	"github.com/beevik/etree"
	"github.com/leifj/signedxml"
)

// Canonicalize rewrites an XML document into exclusive canonical form with
// comments. The MMS verifies signatures against this form, so the same
// bytes must be both signed and submitted.
func Canonicalize(data []byte) ([]byte, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(data); err != nil {
		return nil, fmt.Errorf("failed to parse document for canonicalization: %w", err)
	}
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("document has no root element")
	}
	canonicalizer := signedxml.ExclusiveCanonicalization{WithComments: true}
	canonical, err := canonicalizer.ProcessElement(root, "")
	if err != nil {
		return nil, fmt.Errorf("failed to canonicalize document: %w", err)
	}
	return []byte(canonical), nil
}

// Signer signs canonical payload bytes with the client certificate's key.
type Signer struct {
	cert *Certificate
}

// NewSigner returns a signer backed by the given certificate.
func NewSigner(cert *Certificate) (*Signer, error) {
	if cert == nil || cert.key == nil {
		return nil, fmt.Errorf("signer requires a certificate with a private key")
	}
	return &Signer{cert: cert}, nil
}

// Sign canonicalizes the document and signs the canonical bytes with
// RSA-SHA256, returning the canonical form and the base64 signature.
func (s *Signer) Sign(data []byte) (canonical []byte, signature string, err error) {
	canonical, err = Canonicalize(data)
	if err != nil {
		return nil, "", err
	}
	digest := sha256.Sum256(canonical)
	raw, err := rsa.SignPKCS1v15(rand.Reader, s.cert.key, crypto.SHA256, digest[:])
	if err != nil {
		return nil, "", fmt.Errorf("failed to sign payload: %w", err)
	}
	return canonical, base64.StdEncoding.EncodeToString(raw), nil
}

// SignBytes signs raw bytes without canonicalization, for attachments.
func (s *Signer) SignBytes(data []byte) (string, error) {
	digest := sha256.Sum256(data)
	raw, err := rsa.SignPKCS1v15(rand.Reader, s.cert.key, crypto.SHA256, digest[:])
	if err != nil {
		return "", fmt.Errorf("failed to sign data: %w", err)
	}
	return base64.StdEncoding.EncodeToString(raw), nil
}

// Verify checks a base64 RSA-SHA256 signature over data against the
// certificate's public key.
func (s *Signer) Verify(data []byte, signature string) error {
	raw, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return fmt.Errorf("failed to decode signature: %w", err)
	}
	digest := sha256.Sum256(data)
	if err := rsa.VerifyPKCS1v15(&s.cert.key.PublicKey, crypto.SHA256, digest[:], raw); err != nil {
		return fmt.Errorf("signature verification failed: %w", err)
	}
	return nil
}
