// Package auctionapi defines the wire types shared by the auction
// daemon, its clients, and offline receipt validation.
package auctionapi

import (
	"encoding/base64"
	"time"

	"github.com/pitchside-io/teamauction/core"
)

// CreateTournamentRequest is the organizer's tournament-creation body.
type CreateTournamentRequest struct {
	Name          string `json:"name"`
	Organizer     string `json:"organizer"`
	DateOfAuction string `json:"dateOfAuction"`
	NumTeams      int    `json:"numTeams"`
	BudgetPerTeam int64  `json:"budgetPerTeam"`
}

// CreateTournamentResponse returns the generated tournament id and the
// credential set. This is the only time the controller password and
// viewer code are ever sent.
type CreateTournamentResponse struct {
	TournamentID       string `json:"tournamentId"`
	ControllerID       string `json:"controllerId"`
	ControllerPassword string `json:"controllerPassword"`
	ViewerCode         string `json:"viewerCode"`
}

// ControllerLoginRequest carries controller credentials.
type ControllerLoginRequest struct {
	ControllerID string `json:"controllerId"`
	Password     string `json:"password"`
}

// ControllerLoginResponse acknowledges a controller login.
type ControllerLoginResponse struct {
	OK           bool   `json:"ok"`
	TournamentID string `json:"tournamentId"`
}

// ViewerLoginRequest carries a viewer code.
type ViewerLoginRequest struct {
	ViewerCode string `json:"viewerCode"`
}

// ViewerLoginResponse acknowledges a viewer login.
type ViewerLoginResponse struct {
	Viewer       bool   `json:"viewer"`
	TournamentID string `json:"tournamentId"`
}

// CreateTeamRequest is the body for registering a team.
type CreateTeamRequest struct {
	Name        string `json:"name"`
	OwnerName   string `json:"ownerName"`
	BudgetTotal int64  `json:"budgetTotal"`
}

// CreatePlayerRequest is the body for registering a player.
type CreatePlayerRequest struct {
	Name      string `json:"name"`
	Role      string `json:"role"`
	BasePrice int64  `json:"basePrice"`
	PhotoURL  string `json:"photoUrl,omitempty"`
}

// StartAuctionRequest opens bidding on a player.
type StartAuctionRequest struct {
	PlayerID   string `json:"playerId"`
	StartPrice int64  `json:"startPrice"`
}

// PlaceBidRequest raises the current bid by Amount.
type PlaceBidRequest struct {
	Amount int64 `json:"amount"`
}

// SellPlayerRequest finalizes the current lot to a team.
type SellPlayerRequest struct {
	TeamID string `json:"teamId"`
}

// SellPlayerResponse returns the three entities the sale changed, plus
// the signed receipt when receipt signing is enabled.
type SellPlayerResponse struct {
	State   core.AuctionState `json:"state"`
	Player  core.Player       `json:"player"`
	Team    core.Team         `json:"team"`
	Receipt ReceiptCOSEBase64 `json:"receipt,omitempty"`
}

// ErrorResponse is the envelope for every failure.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// ReceiptKeyResponse publishes the daemon's receipt-signing public key.
type ReceiptKeyResponse struct {
	KeyAlgorithm string `json:"key_algorithm"` // e.g. "ES256"
	PublicKey    string `json:"public_key"`    // PEM-encoded
}

// SaleReceiptClaims is the CBOR payload inside a COSE_Sign1 sale
// receipt. SaleHash is core.ComputeSaleHash over (PlayerID, Price,
// TeamID, Nonce), so a verifier can detect tampering with any claim
// independently of the signature.
type SaleReceiptClaims struct {
	TournamentID string    `cbor:"tournament_id" json:"tournament_id"`
	PlayerID     string    `cbor:"player_id" json:"player_id"`
	TeamID       string    `cbor:"team_id" json:"team_id"`
	Price        int64     `cbor:"price" json:"price"`
	SaleHash     string    `cbor:"sale_hash" json:"sale_hash"`
	Nonce        string    `cbor:"nonce" json:"nonce"`
	Timestamp    time.Time `cbor:"timestamp" json:"timestamp"`
}

// ReceiptCOSEBase64 is a base64-encoded COSE_Sign1 sale receipt as it
// appears on the wire.
type ReceiptCOSEBase64 string

// Decode returns the raw COSE_Sign1 bytes.
func (r ReceiptCOSEBase64) Decode() ([]byte, error) {
	return base64.StdEncoding.DecodeString(string(r))
}

// EncodeReceipt wraps raw COSE_Sign1 bytes for JSON transport.
func EncodeReceipt(coseBytes []byte) ReceiptCOSEBase64 {
	return ReceiptCOSEBase64(base64.StdEncoding.EncodeToString(coseBytes))
}
