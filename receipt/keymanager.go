// Package receipt produces signed sale receipts: CBOR claims wrapped in
// a COSE_Sign1 envelope under a per-process ECDSA P-256 key. The
// validation package verifies them offline given the public key.
package receipt

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"encoding/pem"
	"fmt"
)

// KeyAlgorithm names the COSE algorithm receipts are signed with.
const KeyAlgorithm = "ES256"

// KeyManager holds the daemon's receipt-signing key pair.
type KeyManager struct {
	privateKey *ecdsa.PrivateKey // keep private - sensitive!
	PublicKey  *ecdsa.PublicKey
}

// NewKeyManager generates a fresh ECDSA P-256 key pair. The key lives
// for the process lifetime only: receipts are verifiable for as long as
// the caller retains the published public key.
func NewKeyManager() (*KeyManager, error) {
	privateKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("failed to generate ECDSA key pair: %w", err)
	}

	return &KeyManager{
		privateKey: privateKey,
		PublicKey:  &privateKey.PublicKey,
	}, nil
}

// PublicKeyPEM returns the public key in PEM format for the key
// endpoint and for offline verification.
func (km *KeyManager) PublicKeyPEM() (string, error) {
	derBytes, err := x509.MarshalPKIXPublicKey(km.PublicKey)
	if err != nil {
		return "", fmt.Errorf("failed to marshal public key: %w", err)
	}

	pemBlock := &pem.Block{
		Type:  "PUBLIC KEY",
		Bytes: derBytes,
	}

	return string(pem.EncodeToMemory(pemBlock)), nil
}
