package core

import "errors"

// Sentinel errors for every way an auction operation can be refused.
// Validation always precedes effect: an operation that returns one of
// these has not mutated any entity.
var (
	// ErrNotFound indicates an unknown tournament, team, or player id.
	ErrNotFound = errors.New("not found")
	// ErrUnauthorized indicates failed controller or viewer credentials.
	ErrUnauthorized = errors.New("unauthorized")
	// ErrInvalidState indicates a transition attempted from the wrong auction status.
	ErrInvalidState = errors.New("invalid auction state")
	// ErrInvalidPlayer indicates the lot's player is missing or already sold.
	ErrInvalidPlayer = errors.New("invalid player")
	// ErrInvalidBid indicates a non-positive bid increment.
	ErrInvalidBid = errors.New("invalid bid")
	// ErrInsufficientBudget indicates the buying team cannot cover the current bid.
	ErrInsufficientBudget = errors.New("insufficient budget")
	// ErrUnsupported indicates an operation the auction model deliberately
	// has no transition for, such as undoing a sale.
	ErrUnsupported = errors.New("unsupported operation")
)

// ErrorCode returns the machine-readable code for a domain error, or
// "UNKNOWN" for anything outside the taxonomy.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrNotFound):
		return "NOT_FOUND"
	case errors.Is(err, ErrUnauthorized):
		return "UNAUTHORIZED"
	case errors.Is(err, ErrInvalidState):
		return "INVALID_STATE"
	case errors.Is(err, ErrInvalidPlayer):
		return "INVALID_PLAYER"
	case errors.Is(err, ErrInvalidBid):
		return "INVALID_BID"
	case errors.Is(err, ErrInsufficientBudget):
		return "INSUFFICIENT_BUDGET"
	case errors.Is(err, ErrUnsupported):
		return "UNSUPPORTED"
	default:
		return "UNKNOWN"
	}
}
