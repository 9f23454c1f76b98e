// Package validation verifies sale receipts offline: anyone holding the
// daemon's published public key can check that a receipt was signed by
// that daemon and that its claims were not altered, without talking to
// the server.
package validation

import (
	"crypto/ecdsa"
	"crypto/x509"
	"encoding/pem"
	"fmt"

	"github.com/fxamacker/cbor/v2"
	"github.com/veraison/go-cose"

	"github.com/pitchside-io/teamauction/auctionapi"
	"github.com/pitchside-io/teamauction/core"
)

// ParsePublicKeyPEM parses the daemon's PEM-encoded ECDSA public key as
// served by the receipt-key endpoint.
func ParsePublicKeyPEM(pemData string) (*ecdsa.PublicKey, error) {
	block, _ := pem.Decode([]byte(pemData))
	if block == nil || block.Type != "PUBLIC KEY" {
		return nil, fmt.Errorf("no PUBLIC KEY block in PEM data")
	}

	parsed, err := x509.ParsePKIXPublicKey(block.Bytes)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}

	ecdsaKey, ok := parsed.(*ecdsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("public key is not ECDSA")
	}
	return ecdsaKey, nil
}

// VerifySaleReceipt checks a base64 COSE_Sign1 receipt against the
// signing public key. It verifies the signature, decodes the CBOR
// claims, and recomputes the sale hash from the claims. Returns the
// claims on success.
func VerifySaleReceipt(receiptB64 auctionapi.ReceiptCOSEBase64, publicKey *ecdsa.PublicKey) (*auctionapi.SaleReceiptClaims, error) {
	coseBytes, err := receiptB64.Decode()
	if err != nil {
		return nil, fmt.Errorf("decode receipt: %w", err)
	}

	var msg cose.Sign1Message
	if err := msg.UnmarshalCBOR(coseBytes); err != nil {
		return nil, fmt.Errorf("parse COSE_Sign1 message: %w", err)
	}

	verifier, err := cose.NewVerifier(cose.AlgorithmES256, publicKey)
	if err != nil {
		return nil, fmt.Errorf("create verifier: %w", err)
	}

	if err := msg.Verify(nil, verifier); err != nil {
		return nil, fmt.Errorf("COSE signature verification failed: %w", err)
	}

	var claims auctionapi.SaleReceiptClaims
	if err := cbor.Unmarshal(msg.Payload, &claims); err != nil {
		return nil, fmt.Errorf("decode receipt claims: %w", err)
	}

	expected := core.ComputeSaleHash(claims.PlayerID, claims.Price, claims.TeamID, claims.Nonce)
	if claims.SaleHash != expected {
		return nil, fmt.Errorf("sale hash mismatch: receipt claims were altered")
	}

	return &claims, nil
}

// VerifySaleReceiptPEM is VerifySaleReceipt with a PEM public key, the
// form clients hold after calling the receipt-key endpoint.
func VerifySaleReceiptPEM(receiptB64 auctionapi.ReceiptCOSEBase64, publicKeyPEM string) (*auctionapi.SaleReceiptClaims, error) {
	publicKey, err := ParsePublicKeyPEM(publicKeyPEM)
	if err != nil {
		return nil, err
	}
	return VerifySaleReceipt(receiptB64, publicKey)
}
