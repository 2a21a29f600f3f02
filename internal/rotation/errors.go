package rotation

import (
	"errors"
	"fmt"
)

var (
	// ErrSubstitutionRejected means a precondition failed (outgoing player not
	// on the floor, incoming player not on the bench). The lineup is left
	// untouched and the caller may retry with corrected arguments.
	ErrSubstitutionRejected = errors.New("substitution rejected")

	// ErrRosterExhausted means a forced substitution was required but the
	// bench is empty. The caller decides whether the match continues
	// shorthanded or is forfeited.
	ErrRosterExhausted = errors.New("roster exhausted")

	// ErrRosterInfeasible means the team has fewer than five eligible players
	// and can no longer field a legal lineup.
	ErrRosterInfeasible = errors.New("fewer than five eligible players")
)

// ConfigError reports an invalid roster or starting five at construction.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid lineup configuration: %s", e.Reason)
}
