package core

import (
	"errors"
	"testing"

	"github.com/peterldowns/testy/check"
)

func unsoldPlayer(id string, basePrice int64) *Player {
	return &Player{
		ID:        id,
		Name:      "Player " + id,
		Role:      "batter",
		BasePrice: basePrice,
		Status:    PlayerUnsold,
	}
}

func TestStartLot_OpensAtHighestOfStartAndBase(t *testing.T) {
	state := &AuctionState{Status: StatusIdle}
	player := unsoldPlayer("p1", 50)

	check.Nil(t, StartLot(state, player, 30))

	check.Equal(t, StatusBidding, state.Status)
	check.Equal(t, "p1", state.CurrentPlayerID)
	check.Equal(t, int64(50), state.CurrentBid) // base price wins over lower start

	// A start price above base wins.
	state = &AuctionState{Status: StatusIdle}
	check.Nil(t, StartLot(state, player, 80))
	check.Equal(t, int64(80), state.CurrentBid)
}

func TestStartLot_NegativeStartPriceClampsToZero(t *testing.T) {
	state := &AuctionState{Status: StatusIdle}
	player := unsoldPlayer("p1", 0)

	check.Nil(t, StartLot(state, player, -10))
	check.Equal(t, int64(0), state.CurrentBid)
}

func TestStartLot_RejectsSoldPlayer(t *testing.T) {
	state := &AuctionState{Status: StatusIdle}
	price := int64(100)
	teamID := "t1"
	player := &Player{ID: "p1", Status: PlayerSold, SoldPrice: &price, SoldToTeamID: &teamID}

	err := StartLot(state, player, 50)
	check.True(t, errors.Is(err, ErrInvalidPlayer))
	check.Equal(t, StatusIdle, state.Status)
}

func TestStartLot_RejectsMissingPlayer(t *testing.T) {
	state := &AuctionState{Status: StatusIdle}
	err := StartLot(state, nil, 50)
	check.True(t, errors.Is(err, ErrInvalidPlayer))
}

func TestStartLot_OverwritesInProgressLot(t *testing.T) {
	// The state machine allows starting a new lot mid-bid; the previous
	// player simply stays unsold.
	state := &AuctionState{Status: StatusIdle}
	first := unsoldPlayer("p1", 10)
	second := unsoldPlayer("p2", 20)

	check.Nil(t, StartLot(state, first, 10))
	check.Nil(t, PlaceBid(state, 5))
	check.Nil(t, StartLot(state, second, 20))

	check.Equal(t, "p2", state.CurrentPlayerID)
	check.Equal(t, int64(20), state.CurrentBid)
	check.Equal(t, PlayerUnsold, first.Status)
}

func TestPlaceBid_AccumulatesIncrements(t *testing.T) {
	// For start(p, price), bid(+a1), bid(+a2) the bid must equal
	// max(price, basePrice) + a1 + a2.
	state := &AuctionState{Status: StatusIdle}
	player := unsoldPlayer("p1", 50)

	check.Nil(t, StartLot(state, player, 50))
	check.Nil(t, PlaceBid(state, 20))
	check.Nil(t, PlaceBid(state, 30))

	check.Equal(t, int64(100), state.CurrentBid)
	check.Equal(t, StatusBidding, state.Status)
}

func TestPlaceBid_RejectsOutsideBidding(t *testing.T) {
	for _, status := range []AuctionStatus{StatusIdle, StatusSold} {
		state := &AuctionState{Status: status, CurrentBid: 40}

		err := PlaceBid(state, 10)
		check.True(t, errors.Is(err, ErrInvalidState))
		check.Equal(t, int64(40), state.CurrentBid) // unchanged
		check.Equal(t, status, state.Status)
	}
}

func TestPlaceBid_RejectsNonPositiveIncrement(t *testing.T) {
	state := &AuctionState{Status: StatusBidding, CurrentBid: 40}

	for _, amount := range []int64{0, -5} {
		err := PlaceBid(state, amount)
		check.True(t, errors.Is(err, ErrInvalidBid))
		check.Equal(t, int64(40), state.CurrentBid)
	}
}

func TestSellLot_AtomicUpdate(t *testing.T) {
	state := &AuctionState{Status: StatusIdle}
	player := unsoldPlayer("p1", 50)
	team := &Team{ID: "t1", BudgetTotal: 1000, BudgetRemaining: 1000}

	check.Nil(t, StartLot(state, player, 50))
	check.Nil(t, PlaceBid(state, 20))
	check.Nil(t, PlaceBid(state, 30))
	check.Nil(t, SellLot(state, player, team))

	check.Equal(t, StatusSold, state.Status)
	check.Equal(t, PlayerSold, player.Status)
	check.NotNil(t, player.SoldPrice)
	check.Equal(t, int64(100), *player.SoldPrice)
	check.NotNil(t, player.SoldToTeamID)
	check.Equal(t, "t1", *player.SoldToTeamID)
	check.Equal(t, int64(900), team.BudgetRemaining)
}

func TestSellLot_RejectsOutsideBidding(t *testing.T) {
	player := unsoldPlayer("p1", 50)
	team := &Team{ID: "t1", BudgetTotal: 1000, BudgetRemaining: 1000}

	for _, status := range []AuctionStatus{StatusIdle, StatusSold} {
		state := &AuctionState{Status: status, CurrentPlayerID: "p1", CurrentBid: 100}

		err := SellLot(state, player, team)
		check.True(t, errors.Is(err, ErrInvalidState))
		check.Equal(t, PlayerUnsold, player.Status)
		check.Equal(t, int64(1000), team.BudgetRemaining)
	}
}

func TestSellLot_RejectsInsufficientBudget(t *testing.T) {
	state := &AuctionState{Status: StatusIdle}
	player := unsoldPlayer("p1", 50)
	team := &Team{ID: "t1", BudgetTotal: 1000, BudgetRemaining: 1000}

	check.Nil(t, StartLot(state, player, 1200))

	err := SellLot(state, player, team)
	check.True(t, errors.Is(err, ErrInsufficientBudget))

	// Rejection leaves everything unchanged.
	check.Equal(t, StatusBidding, state.Status)
	check.Equal(t, PlayerUnsold, player.Status)
	check.Nil(t, player.SoldPrice)
	check.Equal(t, int64(1000), team.BudgetRemaining)
}

func TestSellLot_BudgetExactlyCoversBid(t *testing.T) {
	state := &AuctionState{Status: StatusIdle}
	player := unsoldPlayer("p1", 1000)
	team := &Team{ID: "t1", BudgetTotal: 1000, BudgetRemaining: 1000}

	check.Nil(t, StartLot(state, player, 1000))
	check.Nil(t, SellLot(state, player, team))
	check.Equal(t, int64(0), team.BudgetRemaining)
}

func TestSellLot_RejectsWrongPlayer(t *testing.T) {
	state := &AuctionState{Status: StatusBidding, CurrentPlayerID: "p1", CurrentBid: 10}
	other := unsoldPlayer("p2", 10)
	team := &Team{ID: "t1", BudgetTotal: 1000, BudgetRemaining: 1000}

	err := SellLot(state, other, team)
	check.True(t, errors.Is(err, ErrInvalidPlayer))
}

func TestSellLot_RejectsMissingTeam(t *testing.T) {
	state := &AuctionState{Status: StatusBidding, CurrentPlayerID: "p1", CurrentBid: 10}
	player := unsoldPlayer("p1", 10)

	err := SellLot(state, player, nil)
	check.True(t, errors.Is(err, ErrNotFound))
}

func TestUndoSale_AlwaysUnsupported(t *testing.T) {
	for _, status := range []AuctionStatus{StatusIdle, StatusBidding, StatusSold} {
		state := &AuctionState{Status: status}

		err := UndoSale(state)
		check.True(t, errors.Is(err, ErrUnsupported))
		check.Equal(t, status, state.Status)
	}
}

func TestErrorCode_Taxonomy(t *testing.T) {
	check.Equal(t, "NOT_FOUND", ErrorCode(ErrNotFound))
	check.Equal(t, "UNAUTHORIZED", ErrorCode(ErrUnauthorized))
	check.Equal(t, "INVALID_STATE", ErrorCode(ErrInvalidState))
	check.Equal(t, "INVALID_PLAYER", ErrorCode(ErrInvalidPlayer))
	check.Equal(t, "INVALID_BID", ErrorCode(ErrInvalidBid))
	check.Equal(t, "INSUFFICIENT_BUDGET", ErrorCode(ErrInsufficientBudget))
	check.Equal(t, "UNSUPPORTED", ErrorCode(ErrUnsupported))
	check.Equal(t, "UNKNOWN", ErrorCode(errors.New("boom")))

	// Wrapped errors keep their code.
	check.Equal(t, "INVALID_BID", ErrorCode(PlaceBid(&AuctionState{Status: StatusBidding}, 0)))
}
