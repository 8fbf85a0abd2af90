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

// Package cms implements the detached CMS/PKCS#7 signing backend the
// signer driver delegates to: loading a PKCS#12 bundle and producing
// a DER-encoded SignedData blob over a caller-supplied byte range.
package cms

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/rsa"
	"crypto/x509"
	"errors"
	"fmt"

	"golang.org/x/crypto/pkcs12"
)

// LoadPKCS12 parses a PKCS#12 bundle and returns its private key, its
// signer certificate (first), and any additional chain certificates.
// The bundle must contain exactly one private key and at least one
// certificate; the pkcs12 package's own Decode does not surface
// included intermediate certificates, so the PEM blocks are walked
// manually here instead.
func LoadPKCS12(p12 []byte, password string) (crypto.PrivateKey, []*x509.Certificate, error) {
	blocks, err := pkcs12.ToPEM(p12, password)
	if err != nil {
		return nil, nil, fmt.Errorf("pkcs12: %w", err)
	}

	var keyBlocks, certBlocks [][]byte
	for _, b := range blocks {
		switch b.Type {
		case "PRIVATE KEY":
			keyBlocks = append(keyBlocks, b.Bytes)
		case "CERTIFICATE":
			certBlocks = append(certBlocks, b.Bytes)
		}
	}
	switch {
	case len(keyBlocks) == 0:
		return nil, nil, errors.New("pkcs12: missing private key")
	case len(keyBlocks) > 1:
		return nil, nil, errors.New("pkcs12: more than one private key")
	case len(certBlocks) == 0:
		return nil, nil, errors.New("pkcs12: missing certificate")
	}

	key, err := parsePrivateKey(keyBlocks[0])
	if err != nil {
		return nil, nil, fmt.Errorf("pkcs12: %w", err)
	}

	certs, err := x509.ParseCertificates(certBlocks[0])
	if err != nil {
		return nil, nil, fmt.Errorf("pkcs12: %w", err)
	}
	if len(certs) != 1 {
		return nil, nil, errors.New("pkcs12: expected exactly one certificate in the first bag")
	}
	for _, block := range certBlocks[1:] {
		chain, err := x509.ParseCertificates(block)
		if err != nil {
			return nil, nil, fmt.Errorf("pkcs12: %w", err)
		}
		certs = append(certs, chain...)
	}

	if err := matchesPublicKey(key, certs[0]); err != nil {
		return nil, nil, fmt.Errorf("pkcs12: %w", err)
	}
	return key, certs, nil
}

// parsePrivateKey tries the key encodings pkcs12.ToPEM is known to
// produce: PKCS#1 RSA, SEC1 EC, and (occasionally) PKCS#8.
func parsePrivateKey(der []byte) (crypto.PrivateKey, error) {
	if key, err := x509.ParsePKCS1PrivateKey(der); err == nil {
		return key, nil
	}
	if key, err := x509.ParseECPrivateKey(der); err == nil {
		return key, nil
	}
	if key, err := x509.ParsePKCS8PrivateKey(der); err == nil {
		return key, nil
	}
	return nil, errors.New("failed to parse private key")
}

func matchesPublicKey(key crypto.PrivateKey, cert *x509.Certificate) error {
	switch pub := cert.PublicKey.(type) {
	case *rsa.PublicKey:
		priv, ok := key.(*rsa.PrivateKey)
		if !ok {
			return errors.New("private key type does not match public key type")
		}
		if pub.N.Cmp(priv.N) != 0 {
			return errors.New("private key does not match public key")
		}
	case *ecdsa.PublicKey:
		priv, ok := key.(*ecdsa.PrivateKey)
		if !ok {
			return errors.New("private key type does not match public key type")
		}
		if pub.X.Cmp(priv.X) != 0 || pub.Y.Cmp(priv.Y) != 0 {
			return errors.New("private key does not match public key")
		}
	default:
		return errors.New("unknown public key algorithm")
	}
	return nil
}
