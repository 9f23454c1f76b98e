package core

import (
	"crypto/sha256"
	"fmt"
)

// ComputeSaleHash computes the integrity hash carried in a sale receipt.
// Both the signer (receipt package) and offline verification recompute
// this from the receipt claims.
//
// Formula: SHA256(player_id + "|" + price + "|" + team_id + "|" + nonce)
//
// The price is formatted in base 10 so the hash is independent of how
// the amount is represented in memory or on the wire.
func ComputeSaleHash(playerID string, price int64, teamID, nonce string) string {
	data := fmt.Sprintf("%s|%d|%s|%s", playerID, price, teamID, nonce)
	hash := sha256.Sum256([]byte(data))
	return fmt.Sprintf("%x", hash)
}
