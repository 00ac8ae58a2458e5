package stats

import "errors"

// Caller errors. Data-quality issues in the punch stream are never errors;
// they are reported as anomalies inside a successful result.
var (
	ErrInvalidRange = errors.New("end date precedes start date")
	ErrUnknownUser  = errors.New("requested user does not exist")
	ErrUnknownTeam  = errors.New("requested team does not exist")
)
