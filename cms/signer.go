//
// Copyright (c) 2026, The pdfsigil contributors
//
// Permission to use, copy, modify, and/or distribute this software for any
// purpose with or without fee is hereby granted.
//
// THE SOFTWARE IS PROVIDED "AS IS" AND THE AUTHORS DISCLAIM ALL WARRANTIES
// WITH REGARD TO THIS SOFTWARE INCLUDING ALL IMPLIED WARRANTIES OF
// MERCHANTABILITY AND FITNESS. IN NO EVENT SHALL THE AUTHORS BE LIABLE FOR ANY
// SPECIAL, DIRECT, INDIRECT, OR CONSEQUENTIAL DAMAGES OR ANY DAMAGES
// WHATSOEVER RESULTING FROM LOSS OF USE, DATA OR PROFITS, WHETHER IN AN ACTION
// OF CONTRACT, NEGLIGENCE OR OTHER TORTIOUS ACTION, ARISING OUT OF OR IN
// CONNECTION WITH THE USE OR PERFORMANCE OF THIS SOFTWARE.
//

package cms

import (
	"crypto"
	"crypto/x509"
	"errors"
	"fmt"

	"go.mozilla.org/pkcs7"
)

// Signer is the single operation the signer driver needs from a CMS
// signing backend: produce a detached, DER-encoded PKCS#7 SignedData
// blob covering data. The driver is responsible for handing Sign the
// concatenation of the two byte ranges around the signature
// placeholder -- Sign itself knows nothing about PDF byte ranges.
type Signer interface {
	Sign(data []byte) ([]byte, error)
}

// PKCS7Signer signs with a private key and certificate chain loaded
// from a PKCS#12 bundle (see LoadPKCS12), using SHA-256 as the
// message digest.
type PKCS7Signer struct {
	key   crypto.PrivateKey
	certs []*x509.Certificate
}

// NewPKCS7Signer validates that certs[0]'s key usage is suitable for
// document signing and returns a Signer wrapping key and the chain.
// certs[0] is the signer's own certificate; certs[1:] are the rest
// of the chain, in order.
func NewPKCS7Signer(key crypto.PrivateKey, certs []*x509.Certificate) (*PKCS7Signer, error) {
	if len(certs) == 0 {
		return nil, errors.New("cms: no certificate supplied")
	}
	if err := checkKeyUsage(certs[0]); err != nil {
		return nil, err
	}
	return &PKCS7Signer{key: key, certs: certs}, nil
}

// checkKeyUsage rejects certificates that Adobe Acrobat and poppler
// refuse to treat as valid signing certificates: the key usage must
// permit digital signatures or non-repudiation, and if an extended
// key usage list is present at all, it must include S/MIME or "any".
func checkKeyUsage(cert *x509.Certificate) error {
	if cert.KeyUsage&(x509.KeyUsageDigitalSignature|x509.KeyUsageContentCommitment) == 0 {
		return errors.New("cms: certificate key usage must include " +
			"digital signatures or non-repudiation")
	}
	if len(cert.ExtKeyUsage) == 0 {
		return nil
	}
	for _, u := range cert.ExtKeyUsage {
		if u == x509.ExtKeyUsageAny || u == x509.ExtKeyUsageEmailProtection {
			return nil
		}
	}
	return errors.New("cms: certificate extended key usage must include S/MIME")
}

// Sign produces a detached SHA-256 PKCS#7 SignedData blob over data,
// including the full certificate chain.
func (s *PKCS7Signer) Sign(data []byte) ([]byte, error) {
	signedData, err := pkcs7.NewSignedData(data)
	if err != nil {
		return nil, fmt.Errorf("cms: %w", err)
	}
	signedData.SetDigestAlgorithm(pkcs7.OIDDigestAlgorithmSHA256)
	if err := signedData.AddSignerChain(s.certs[0], s.key, s.certs[1:],
		pkcs7.SignerInfoConfig{}); err != nil {
		return nil, fmt.Errorf("cms: %w", err)
	}
	signedData.Detach()
	der, err := signedData.Finish()
	if err != nil {
		return nil, fmt.Errorf("cms: %w", err)
	}
	return der, nil
}
