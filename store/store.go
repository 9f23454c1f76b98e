// Package store holds all tournament state in process memory: entity
// records plus the per-tournament auction state. There is no
// persistence; data lives for the process lifetime, which is the
// accepted operating model for this backend.
//
// Locking model: the Store's RWMutex guards only the tournament map and
// credential scans. Everything belonging to one tournament (teams,
// players, auction state) lives behind that tournament Record's own
// mutex, so operations on different tournaments never contend while
// operations on the same tournament fully serialize.
package store

import (
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/pitchside-io/teamauction/core"
)

// Store is the process-wide entity store. Construct one per process (or
// per test) with New and pass it by handle; it has no global state.
type Store struct {
	mu          sync.RWMutex
	tournaments map[string]*Record
}

// Record is the unit of exclusive access: one tournament with its
// teams, players, and live-auction state. Callers outside this package
// reach the contents only through Record methods, which take the
// record's lock.
type Record struct {
	mu         sync.Mutex
	tournament core.Tournament
	teams      []*core.Team
	players    []*core.Player
	state      core.AuctionState
}

// New returns an empty store.
func New() *Store {
	return &Store{tournaments: make(map[string]*Record)}
}

// TournamentSpec carries the organizer-provided fields for a new tournament.
type TournamentSpec struct {
	Name          string
	Organizer     string
	DateOfAuction string
	NumTeams      int
	BudgetPerTeam int64
}

// CreateTournament creates a tournament with generated id and
// credentials, and seeds its auction state in StatusIdle.
func (s *Store) CreateTournament(spec TournamentSpec) (core.Tournament, error) {
	controllerID, err := core.NewControllerID()
	if err != nil {
		return core.Tournament{}, fmt.Errorf("generate controller id: %w", err)
	}
	controllerPassword, err := core.NewAccessCode()
	if err != nil {
		return core.Tournament{}, fmt.Errorf("generate controller password: %w", err)
	}
	viewerCode, err := core.NewAccessCode()
	if err != nil {
		return core.Tournament{}, fmt.Errorf("generate viewer code: %w", err)
	}

	tournament := core.Tournament{
		ID:                 uuid.NewString(),
		Name:               spec.Name,
		Organizer:          spec.Organizer,
		DateOfAuction:      spec.DateOfAuction,
		NumTeams:           spec.NumTeams,
		BudgetPerTeam:      spec.BudgetPerTeam,
		ControllerID:       controllerID,
		ControllerPassword: controllerPassword,
		ViewerCode:         viewerCode,
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tournaments[tournament.ID] = &Record{
		tournament: tournament,
		state:      core.AuctionState{Status: core.StatusIdle},
	}
	return tournament, nil
}

// Tournament returns the exclusive record for a tournament id.
func (s *Store) Tournament(id string) (*Record, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.tournaments[id]
	if !ok {
		return nil, fmt.Errorf("tournament %s: %w", id, core.ErrNotFound)
	}
	return rec, nil
}

// FindController scans tournaments for an exact controller credential
// match and returns the tournament id.
func (s *Store) FindController(controllerID, password string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.tournaments {
		t := rec.tournament
		if t.ControllerID == controllerID && t.ControllerPassword == password {
			return t.ID, nil
		}
	}
	return "", fmt.Errorf("controller credentials: %w", core.ErrUnauthorized)
}

// FindViewer scans tournaments for a viewer code match and returns the
// tournament id.
func (s *Store) FindViewer(viewerCode string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, rec := range s.tournaments {
		if rec.tournament.ViewerCode == viewerCode {
			return rec.tournament.ID, nil
		}
	}
	return "", fmt.Errorf("viewer code: %w", core.ErrUnauthorized)
}

// Tournament returns a copy of the record's tournament.
func (r *Record) Tournament() core.Tournament {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.tournament
}

// TeamSpec carries the fields for a new team.
type TeamSpec struct {
	Name        string
	OwnerName   string
	BudgetTotal int64
}

// CreateTeam adds a team to the tournament with its remaining budget
// initialized to the total.
func (r *Record) CreateTeam(spec TeamSpec) core.Team {
	r.mu.Lock()
	defer r.mu.Unlock()

	team := &core.Team{
		ID:              uuid.NewString(),
		TournamentID:    r.tournament.ID,
		Name:            spec.Name,
		OwnerName:       spec.OwnerName,
		BudgetTotal:     spec.BudgetTotal,
		BudgetRemaining: spec.BudgetTotal,
	}
	r.teams = append(r.teams, team)
	return *team
}

// PlayerSpec carries the fields for a new player.
type PlayerSpec struct {
	Name      string
	Role      string
	BasePrice int64
	PhotoURL  string
}

// CreatePlayer adds an unsold player to the tournament.
func (r *Record) CreatePlayer(spec PlayerSpec) core.Player {
	r.mu.Lock()
	defer r.mu.Unlock()

	player := &core.Player{
		ID:           uuid.NewString(),
		TournamentID: r.tournament.ID,
		Name:         spec.Name,
		Role:         spec.Role,
		BasePrice:    spec.BasePrice,
		Status:       core.PlayerUnsold,
		PhotoURL:     spec.PhotoURL,
	}
	r.players = append(r.players, player)
	return *player
}

// ListTeams returns copies of the tournament's teams, empty slice when
// there are none.
func (r *Record) ListTeams() []core.Team {
	r.mu.Lock()
	defer r.mu.Unlock()

	teams := make([]core.Team, 0, len(r.teams))
	for _, team := range r.teams {
		teams = append(teams, *team)
	}
	return teams
}

// ListPlayers returns copies of the tournament's players.
func (r *Record) ListPlayers() []core.Player {
	r.mu.Lock()
	defer r.mu.Unlock()

	players := make([]core.Player, 0, len(r.players))
	for _, player := range r.players {
		players = append(players, *player)
	}
	return players
}

// GetTeam returns a copy of one team.
func (r *Record) GetTeam(teamID string) (core.Team, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	team := r.findTeam(teamID)
	if team == nil {
		return core.Team{}, fmt.Errorf("team %s: %w", teamID, core.ErrNotFound)
	}
	return *team, nil
}

// GetPlayer returns a copy of one player.
func (r *Record) GetPlayer(playerID string) (core.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	player := r.findPlayer(playerID)
	if player == nil {
		return core.Player{}, fmt.Errorf("player %s: %w", playerID, core.ErrNotFound)
	}
	return *player, nil
}

// findTeam and findPlayer require r.mu to be held.
func (r *Record) findTeam(teamID string) *core.Team {
	for _, team := range r.teams {
		if team.ID == teamID {
			return team
		}
	}
	return nil
}

func (r *Record) findPlayer(playerID string) *core.Player {
	for _, player := range r.players {
		if player.ID == playerID {
			return player
		}
	}
	return nil
}

// Snapshot returns a consistent view of the auction state with the
// current player resolved. It takes the record lock briefly, so it
// observes transitions either fully before or fully after, never
// mid-update.
func (r *Record) Snapshot() core.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()

	snap := core.Snapshot{
		Status:          r.state.Status,
		CurrentBid:      r.state.CurrentBid,
		CurrentPlayerID: r.state.CurrentPlayerID,
	}
	if player := r.findPlayer(r.state.CurrentPlayerID); player != nil {
		copied := *player
		snap.Player = &copied
	}
	return snap
}

// StartLot opens bidding on a player as one critical section.
func (r *Record) StartLot(playerID string, startPrice int64) (core.AuctionState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	player := r.findPlayer(playerID)
	if player == nil {
		return core.AuctionState{}, fmt.Errorf("player %s: %w", playerID, core.ErrInvalidPlayer)
	}
	if err := core.StartLot(&r.state, player, startPrice); err != nil {
		return core.AuctionState{}, err
	}
	return r.state, nil
}

// PlaceBid applies one bid increment as one critical section.
func (r *Record) PlaceBid(amount int64) (core.AuctionState, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := core.PlaceBid(&r.state, amount); err != nil {
		return core.AuctionState{}, err
	}
	return r.state, nil
}

// SellLot finalizes the current lot to a team. Player, team, and
// auction state are updated under one lock; no observer sees a partial
// sale.
func (r *Record) SellLot(teamID string) (core.SaleResult, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	team := r.findTeam(teamID)
	if team == nil {
		return core.SaleResult{}, fmt.Errorf("team %s: %w", teamID, core.ErrNotFound)
	}
	player := r.findPlayer(r.state.CurrentPlayerID)
	if err := core.SellLot(&r.state, player, team); err != nil {
		return core.SaleResult{}, err
	}
	return core.SaleResult{State: r.state, Player: *player, Team: *team}, nil
}

// UndoSale refuses to reopen a finished sale.
func (r *Record) UndoSale() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return core.UndoSale(&r.state)
}

// Summary aggregates sales under the record lock.
func (r *Record) Summary() core.AuctionSummary {
	r.mu.Lock()
	defer r.mu.Unlock()

	teams := make([]core.Team, 0, len(r.teams))
	for _, team := range r.teams {
		teams = append(teams, *team)
	}
	players := make([]core.Player, 0, len(r.players))
	for _, player := range r.players {
		players = append(players, *player)
	}
	return core.BuildSummary(teams, players)
}
