package usecase

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrConflict              = errors.New("conflict")
	ErrPreconditionFailed    = errors.New("precondition failed")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)

// Specific failures keep errors.Is working against their general kind.
var (
	ErrCapacityExceeded = fmt.Errorf("%w: contest capacity exceeded", ErrConflict)
	ErrAlreadyJoined    = fmt.Errorf("%w: already joined contest", ErrConflict)
	ErrDuplicateTeam    = fmt.Errorf("%w: identical team already exists", ErrConflict)
	ErrTeamLimitReached = fmt.Errorf("%w: team limit reached for match", ErrConflict)
	ErrMatchStarted     = fmt.Errorf("%w: match already started", ErrPreconditionFailed)
)
