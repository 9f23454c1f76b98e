package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/sahilm/fuzzy"

	"github.com/pitchside-io/teamauction/auctionapi"
	"github.com/pitchside-io/teamauction/core"
	"github.com/pitchside-io/teamauction/receipt"
	"github.com/pitchside-io/teamauction/store"
)

const maxRequestBody = 1 << 20 // 1 MiB

// apiServer holds the HTTP-facing state of the daemon.
type apiServer struct {
	store   *store.Store
	gate    *Gate
	session *AuctionSession
	keys    *receipt.KeyManager
	logger  *slog.Logger
}

func newAPIServer(cfg *Config, logger *slog.Logger) (*apiServer, error) {
	st := store.New()

	gate, err := NewGate(st)
	if err != nil {
		return nil, err
	}

	var keys *receipt.KeyManager
	if cfg.Receipts.Enabled {
		keys, err = receipt.NewKeyManager()
		if err != nil {
			return nil, fmt.Errorf("failed to initialize receipt keys: %w", err)
		}
	}

	return &apiServer{
		store:   st,
		gate:    gate,
		session: NewAuctionSession(st, keys, logger),
		keys:    keys,
		logger:  logger,
	}, nil
}

func (s *apiServer) routes(cfg *Config) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleRoot)
	mux.HandleFunc("POST /tournaments", s.handleCreateTournament)
	mux.HandleFunc("POST /auth/controller/login", s.handleControllerLogin)
	mux.HandleFunc("POST /auth/viewer/login", s.handleViewerLogin)
	mux.HandleFunc("POST /teams/{tournamentID}", s.handleCreateTeam)
	mux.HandleFunc("GET /teams/{tournamentID}", s.handleListTeams)
	mux.HandleFunc("POST /players/{tournamentID}", s.handleCreatePlayer)
	mux.HandleFunc("GET /players/{tournamentID}", s.handleListPlayers)
	mux.HandleFunc("GET /auction/state/{tournamentID}", s.handleAuctionState)
	mux.HandleFunc("POST /auction/start/{tournamentID}", s.handleStartAuction)
	mux.HandleFunc("POST /auction/bid/{tournamentID}", s.handlePlaceBid)
	mux.HandleFunc("POST /auction/sell/{tournamentID}", s.handleSellPlayer)
	mux.HandleFunc("POST /auction/undo/{tournamentID}", s.handleUndoSale)
	mux.HandleFunc("GET /auction/summary/{tournamentID}", s.handleAuctionSummary)
	mux.HandleFunc("GET /auction/receipt-key", s.handleReceiptKey)

	var handler http.Handler = mux
	handler = withWorkerLimit(s.logger, cfg.Server.MaxWorkers, handler)
	handler = withCORS(handler)
	handler = withLogging(s.logger, handler)
	handler = withRecovery(s.logger, handler)
	return handler
}

func (s *apiServer) handleRoot(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	fmt.Fprintln(w, "Team auction server is running")
}

func (s *apiServer) handleCreateTournament(w http.ResponseWriter, r *http.Request) {
	var req auctionapi.CreateTournamentRequest
	if !s.decode(w, r, &req) {
		return
	}

	tournament, err := s.store.CreateTournament(store.TournamentSpec{
		Name:          req.Name,
		Organizer:     req.Organizer,
		DateOfAuction: req.DateOfAuction,
		NumTeams:      req.NumTeams,
		BudgetPerTeam: req.BudgetPerTeam,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	s.logger.Info("tournament created",
		"tournament_id", tournament.ID,
		"name", tournament.Name)

	writeJSON(w, http.StatusCreated, auctionapi.CreateTournamentResponse{
		TournamentID:       tournament.ID,
		ControllerID:       tournament.ControllerID,
		ControllerPassword: tournament.ControllerPassword,
		ViewerCode:         tournament.ViewerCode,
	})
}

func (s *apiServer) handleControllerLogin(w http.ResponseWriter, r *http.Request) {
	var req auctionapi.ControllerLoginRequest
	if !s.decode(w, r, &req) {
		return
	}

	tournamentID, err := s.gate.LoginController(req.ControllerID, req.Password)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, auctionapi.ControllerLoginResponse{
		OK:           true,
		TournamentID: tournamentID,
	})
}

func (s *apiServer) handleViewerLogin(w http.ResponseWriter, r *http.Request) {
	var req auctionapi.ViewerLoginRequest
	if !s.decode(w, r, &req) {
		return
	}

	tournamentID, err := s.gate.LoginViewer(req.ViewerCode)
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, auctionapi.ViewerLoginResponse{
		Viewer:       true,
		TournamentID: tournamentID,
	})
}

func (s *apiServer) handleCreateTeam(w http.ResponseWriter, r *http.Request) {
	record, ok := s.tournament(w, r)
	if !ok {
		return
	}

	var req auctionapi.CreateTeamRequest
	if !s.decode(w, r, &req) {
		return
	}

	team := record.CreateTeam(store.TeamSpec{
		Name:        req.Name,
		OwnerName:   req.OwnerName,
		BudgetTotal: req.BudgetTotal,
	})
	writeJSON(w, http.StatusCreated, team)
}

func (s *apiServer) handleListTeams(w http.ResponseWriter, r *http.Request) {
	record, ok := s.tournament(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, record.ListTeams())
}

func (s *apiServer) handleCreatePlayer(w http.ResponseWriter, r *http.Request) {
	record, ok := s.tournament(w, r)
	if !ok {
		return
	}

	var req auctionapi.CreatePlayerRequest
	if !s.decode(w, r, &req) {
		return
	}

	player := record.CreatePlayer(store.PlayerSpec{
		Name:      req.Name,
		Role:      req.Role,
		BasePrice: req.BasePrice,
		PhotoURL:  req.PhotoURL,
	})
	writeJSON(w, http.StatusCreated, player)
}

func (s *apiServer) handleListPlayers(w http.ResponseWriter, r *http.Request) {
	record, ok := s.tournament(w, r)
	if !ok {
		return
	}

	players := record.ListPlayers()
	if q := r.URL.Query().Get("q"); q != "" {
		players = filterPlayers(players, q)
	}
	writeJSON(w, http.StatusOK, players)
}

// filterPlayers narrows the player list to fuzzy name matches, best
// match first.
func filterPlayers(players []core.Player, query string) []core.Player {
	names := make([]string, len(players))
	for i, p := range players {
		names[i] = p.Name
	}

	matches := fuzzy.Find(query, names)
	filtered := make([]core.Player, 0, len(matches))
	for _, m := range matches {
		filtered = append(filtered, players[m.Index])
	}
	return filtered
}

func (s *apiServer) handleAuctionState(w http.ResponseWriter, r *http.Request) {
	snapshot, err := s.session.State(r.PathValue("tournamentID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

func (s *apiServer) handleStartAuction(w http.ResponseWriter, r *http.Request) {
	var req auctionapi.StartAuctionRequest
	if !s.decode(w, r, &req) {
		return
	}

	state, err := s.session.Start(r.PathValue("tournamentID"), req.PlayerID, req.StartPrice)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *apiServer) handlePlaceBid(w http.ResponseWriter, r *http.Request) {
	var req auctionapi.PlaceBidRequest
	if !s.decode(w, r, &req) {
		return
	}

	state, err := s.session.Bid(r.PathValue("tournamentID"), req.Amount)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (s *apiServer) handleSellPlayer(w http.ResponseWriter, r *http.Request) {
	var req auctionapi.SellPlayerRequest
	if !s.decode(w, r, &req) {
		return
	}

	resp, err := s.session.Sell(r.PathValue("tournamentID"), req.TeamID)
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *apiServer) handleUndoSale(w http.ResponseWriter, r *http.Request) {
	if err := s.session.Undo(r.PathValue("tournamentID")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *apiServer) handleAuctionSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.session.Summary(r.PathValue("tournamentID"))
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *apiServer) handleReceiptKey(w http.ResponseWriter, r *http.Request) {
	if s.keys == nil {
		writeJSONError(w, http.StatusNotFound, "receipt signing is disabled", core.ErrorCode(core.ErrNotFound))
		return
	}

	publicKeyPEM, err := s.keys.PublicKeyPEM()
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, auctionapi.ReceiptKeyResponse{
		KeyAlgorithm: receipt.KeyAlgorithm,
		PublicKey:    publicKeyPEM,
	})
}

// tournament resolves the path's tournament ID to its record, writing
// the 404 itself when the tournament does not exist.
func (s *apiServer) tournament(w http.ResponseWriter, r *http.Request) (*store.Record, bool) {
	record, err := s.store.Tournament(r.PathValue("tournamentID"))
	if err != nil {
		s.writeError(w, err)
		return nil, false
	}
	return record, true
}

// decode reads a JSON request body into dst, writing the 400 itself
// on malformed input.
func (s *apiServer) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, maxRequestBody)
	if err := json.NewDecoder(body).Decode(dst); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid request body", "BAD_REQUEST")
		return false
	}
	return true
}

// httpStatus maps domain errors onto HTTP status codes.
func httpStatus(err error) int {
	switch {
	case errors.Is(err, core.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, core.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, core.ErrInvalidState):
		return http.StatusConflict
	case errors.Is(err, core.ErrInvalidPlayer),
		errors.Is(err, core.ErrInvalidBid),
		errors.Is(err, core.ErrInsufficientBudget),
		errors.Is(err, core.ErrUnsupported):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func (s *apiServer) writeError(w http.ResponseWriter, err error) {
	status := httpStatus(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "error", err)
	}
	writeJSONError(w, status, err.Error(), core.ErrorCode(err))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeJSONError(w http.ResponseWriter, status int, message, code string) {
	writeJSON(w, status, auctionapi.ErrorResponse{
		Error: message,
		Code:  code,
	})
}
