package core

import "fmt"

// StartLot opens bidding on a player. It is legal from any status: the
// controller may abandon an in-progress lot by starting the next one,
// matching the single-active-lot model of the live auction.
//
// Preconditions:
//   - player is a member of the tournament and still unsold
//
// Effect: currentPlayerID = player.ID, currentBid = the opening price,
// status = StatusBidding. The opening price is the highest of the
// requested start price, the player's base price, and zero, so a lot can
// never open below its base price or at a negative amount.
func StartLot(state *AuctionState, player *Player, startPrice int64) error {
	if player == nil {
		return fmt.Errorf("start lot: %w", ErrInvalidPlayer)
	}
	if player.Status == PlayerSold {
		return fmt.Errorf("start lot: player %s already sold: %w", player.ID, ErrInvalidPlayer)
	}

	opening := startPrice
	if player.BasePrice > opening {
		opening = player.BasePrice
	}
	if opening < 0 {
		opening = 0
	}

	state.CurrentPlayerID = player.ID
	state.CurrentBid = opening
	state.Status = StatusBidding
	return nil
}

// PlaceBid raises the current bid by amount. The amount is a delta, not
// an absolute price, matching the increment-based controller contract.
//
// Preconditions:
//   - status is StatusBidding
//   - amount > 0, so the running bid is strictly increasing
func PlaceBid(state *AuctionState, amount int64) error {
	if state.Status != StatusBidding {
		return fmt.Errorf("bid in status %q: %w", state.Status, ErrInvalidState)
	}
	if amount <= 0 {
		return fmt.Errorf("bid increment %d must be positive: %w", amount, ErrInvalidBid)
	}

	state.CurrentBid += amount
	return nil
}

// SellLot finalizes the current lot to a team at the current bid. The
// three updates (player sold fields, team budget, auction status) are
// applied together only after every precondition passes, so an error
// leaves all entities untouched and no caller can observe a partial
// sale.
//
// Preconditions:
//   - status is StatusBidding
//   - player is the current lot and team belongs to the same tournament
//   - team.BudgetRemaining covers the current bid
func SellLot(state *AuctionState, player *Player, team *Team) error {
	if state.Status != StatusBidding {
		return fmt.Errorf("sell in status %q: %w", state.Status, ErrInvalidState)
	}
	if player == nil || player.ID != state.CurrentPlayerID {
		return fmt.Errorf("sell: no current player: %w", ErrInvalidPlayer)
	}
	if team == nil {
		return fmt.Errorf("sell: team: %w", ErrNotFound)
	}
	if team.BudgetRemaining < state.CurrentBid {
		return fmt.Errorf("sell: team %s has %d remaining, bid is %d: %w",
			team.ID, team.BudgetRemaining, state.CurrentBid, ErrInsufficientBudget)
	}

	price := state.CurrentBid
	teamID := team.ID

	player.Status = PlayerSold
	player.SoldPrice = &price
	player.SoldToTeamID = &teamID
	team.BudgetRemaining -= price
	state.Status = StatusSold
	return nil
}

// UndoSale exists to give undo/reopen requests a deterministic refusal.
// The auction model has no transition back from StatusSold for the same
// lot, and silently re-opening would corrupt player and budget state.
func UndoSale(state *AuctionState) error {
	return fmt.Errorf("undo sale in status %q: %w", state.Status, ErrUnsupported)
}
