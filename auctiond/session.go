package main

import (
	"log/slog"

	"github.com/pitchside-io/teamauction/auctionapi"
	"github.com/pitchside-io/teamauction/core"
	"github.com/pitchside-io/teamauction/receipt"
	"github.com/pitchside-io/teamauction/store"
)

// AuctionSession orchestrates auction transitions for the HTTP layer.
// Each call resolves the tournament record, runs the transition under
// the record's lock, and on a sale signs a receipt after the lock is
// released. Keys is nil when receipt signing is disabled.
type AuctionSession struct {
	store  *store.Store
	keys   *receipt.KeyManager
	logger *slog.Logger
}

func NewAuctionSession(st *store.Store, keys *receipt.KeyManager, logger *slog.Logger) *AuctionSession {
	return &AuctionSession{
		store:  st,
		keys:   keys,
		logger: logger,
	}
}

// Start opens bidding on a player in the given tournament.
func (s *AuctionSession) Start(tournamentID, playerID string, startPrice int64) (core.AuctionState, error) {
	record, err := s.store.Tournament(tournamentID)
	if err != nil {
		return core.AuctionState{}, err
	}

	state, err := record.StartLot(playerID, startPrice)
	if err != nil {
		return core.AuctionState{}, err
	}

	s.logger.Info("lot opened",
		"tournament_id", tournamentID,
		"player_id", playerID,
		"opening_bid", state.CurrentBid)
	return state, nil
}

// Bid raises the current bid by amount.
func (s *AuctionSession) Bid(tournamentID string, amount int64) (core.AuctionState, error) {
	record, err := s.store.Tournament(tournamentID)
	if err != nil {
		return core.AuctionState{}, err
	}
	return record.PlaceBid(amount)
}

// Sell finalizes the current lot to the given team and, when signing
// is enabled, attaches a COSE receipt for the sale.
func (s *AuctionSession) Sell(tournamentID, teamID string) (auctionapi.SellPlayerResponse, error) {
	record, err := s.store.Tournament(tournamentID)
	if err != nil {
		return auctionapi.SellPlayerResponse{}, err
	}

	result, err := record.SellLot(teamID)
	if err != nil {
		return auctionapi.SellPlayerResponse{}, err
	}

	resp := auctionapi.SellPlayerResponse{
		State:  result.State,
		Player: result.Player,
		Team:   result.Team,
	}

	if s.keys != nil {
		signed, err := s.keys.SignSale(receipt.Sale{
			TournamentID: tournamentID,
			PlayerID:     result.Player.ID,
			TeamID:       result.Team.ID,
			Price:        result.State.CurrentBid,
		})
		if err != nil {
			// The sale is already committed; surface it without a
			// receipt rather than fail the request.
			s.logger.Error("failed to sign sale receipt",
				"tournament_id", tournamentID,
				"player_id", result.Player.ID,
				"error", err)
		} else {
			resp.Receipt = signed
		}
	}

	s.logger.Info("lot sold",
		"tournament_id", tournamentID,
		"player_id", result.Player.ID,
		"team_id", result.Team.ID,
		"price", result.State.CurrentBid)
	return resp, nil
}

// Undo reports that sale reversal is not supported.
func (s *AuctionSession) Undo(tournamentID string) error {
	record, err := s.store.Tournament(tournamentID)
	if err != nil {
		return err
	}
	return record.UndoSale()
}

// State returns the live auction snapshot for a tournament.
func (s *AuctionSession) State(tournamentID string) (core.Snapshot, error) {
	record, err := s.store.Tournament(tournamentID)
	if err != nil {
		return core.Snapshot{}, err
	}
	return record.Snapshot(), nil
}

// Summary returns per-team spend totals and budget utilization.
func (s *AuctionSession) Summary(tournamentID string) (core.AuctionSummary, error) {
	record, err := s.store.Tournament(tournamentID)
	if err != nil {
		return core.AuctionSummary{}, err
	}
	return record.Summary(), nil
}
