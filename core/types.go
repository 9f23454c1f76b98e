package core

// AuctionStatus is the lifecycle state of a tournament's live auction.
type AuctionStatus string

const (
	// StatusIdle means no lot is under the hammer.
	StatusIdle AuctionStatus = "idle"
	// StatusBidding means a lot is open and accepting bid increments.
	StatusBidding AuctionStatus = "bidding"
	// StatusSold means the last lot was finalized; the next StartLot reopens bidding.
	StatusSold AuctionStatus = "sold"
)

// PlayerStatus tracks whether a player has been sold to a team.
type PlayerStatus string

const (
	PlayerUnsold PlayerStatus = "unsold"
	PlayerSold   PlayerStatus = "sold"
)

// Tournament is a single auction event. Immutable after creation.
type Tournament struct {
	ID                 string `json:"id"`
	Name               string `json:"name"`
	Organizer          string `json:"organizer"`
	DateOfAuction      string `json:"dateOfAuction"`
	NumTeams           int    `json:"numTeams"`
	BudgetPerTeam      int64  `json:"budgetPerTeam"`
	ControllerID       string `json:"controllerId"`
	ControllerPassword string `json:"-"`
	ViewerCode         string `json:"-"`
}

// Team belongs to exactly one tournament. BudgetRemaining decreases only
// through a successful sell transition and never goes below zero.
type Team struct {
	ID              string `json:"id"`
	TournamentID    string `json:"tournamentId"`
	Name            string `json:"name"`
	OwnerName       string `json:"ownerName"`
	BudgetTotal     int64  `json:"budgetTotal"`
	BudgetRemaining int64  `json:"budgetRemaining"`
}

// Player is a lot that can be auctioned once. SoldPrice and SoldToTeamID
// are set iff Status is PlayerSold.
type Player struct {
	ID           string       `json:"id"`
	TournamentID string       `json:"tournamentId"`
	Name         string       `json:"name"`
	Role         string       `json:"role"`
	BasePrice    int64        `json:"basePrice"`
	Status       PlayerStatus `json:"status"`
	SoldPrice    *int64       `json:"soldPrice"`
	SoldToTeamID *string      `json:"soldToTeamId"`
	PhotoURL     string       `json:"photoUrl,omitempty"`
}

// AuctionState is the per-tournament live-auction state. One instance
// exists per tournament for the process lifetime, created in StatusIdle.
type AuctionState struct {
	CurrentPlayerID string        `json:"currentPlayerId"`
	CurrentBid      int64         `json:"currentBidAmount"`
	Status          AuctionStatus `json:"status"`
}

// Snapshot is a consistent read-only view of an auction, with the
// current player resolved rather than referenced.
type Snapshot struct {
	Status          AuctionStatus `json:"status"`
	CurrentBid      int64         `json:"currentBidAmount"`
	CurrentPlayerID string        `json:"currentPlayerId"`
	Player          *Player       `json:"player"`
}

// SaleResult is the outcome of a successful SellLot: the three entities
// that changed as one atomic unit.
type SaleResult struct {
	State  AuctionState `json:"state"`
	Player Player       `json:"player"`
	Team   Team         `json:"team"`
}
