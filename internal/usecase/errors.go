package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrTeamUnresolved        = errors.New("team could not be resolved")
	ErrTeamAmbiguous         = errors.New("team name is ambiguous")
	ErrDataInsufficient      = errors.New("not enough valid fixtures")
	ErrConsistencyViolation  = errors.New("analysis failed consistency check")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
