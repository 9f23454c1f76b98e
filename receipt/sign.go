package receipt

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/fxamacker/cbor/v2"
	"github.com/veraison/go-cose"

	"github.com/pitchside-io/teamauction/auctionapi"
	"github.com/pitchside-io/teamauction/core"
)

// Sale carries the facts of a finalized sale to be receipted.
type Sale struct {
	TournamentID string
	PlayerID     string
	TeamID       string
	Price        int64
}

// SignSale builds the receipt claims for a sale, hashes them with a
// fresh nonce, CBOR-encodes the claims, and signs them as a COSE_Sign1
// message. Returns the base64-encoded envelope for JSON transport.
func (km *KeyManager) SignSale(sale Sale) (auctionapi.ReceiptCOSEBase64, error) {
	nonce, err := generateNonce()
	if err != nil {
		return "", fmt.Errorf("failed to generate receipt nonce: %w", err)
	}

	claims := auctionapi.SaleReceiptClaims{
		TournamentID: sale.TournamentID,
		PlayerID:     sale.PlayerID,
		TeamID:       sale.TeamID,
		Price:        sale.Price,
		SaleHash:     core.ComputeSaleHash(sale.PlayerID, sale.Price, sale.TeamID, nonce),
		Nonce:        nonce,
		Timestamp:    time.Now().UTC(),
	}

	payload, err := cbor.Marshal(claims)
	if err != nil {
		return "", fmt.Errorf("failed to marshal receipt claims: %w", err)
	}

	signer, err := cose.NewSigner(cose.AlgorithmES256, km.privateKey)
	if err != nil {
		return "", fmt.Errorf("failed to create COSE signer: %w", err)
	}

	msg := cose.NewSign1Message()
	msg.Headers.Protected.SetAlgorithm(cose.AlgorithmES256)
	msg.Payload = payload
	if err := msg.Sign(rand.Reader, nil, signer); err != nil {
		return "", fmt.Errorf("failed to sign receipt: %w", err)
	}

	coseBytes, err := msg.MarshalCBOR()
	if err != nil {
		return "", fmt.Errorf("failed to encode COSE message: %w", err)
	}

	return auctionapi.EncodeReceipt(coseBytes), nil
}

// generateNonce returns 256 bits of hex-encoded entropy.
func generateNonce() (string, error) {
	randomBytes := make([]byte, 32)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("entropy generation failed: %w", err)
	}
	return hex.EncodeToString(randomBytes), nil
}
