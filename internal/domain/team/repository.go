package team

import "context"

// Repository defines read-only access to teams.
type Repository interface {
	// GetByID retrieves a team by ID. Returns ErrTeamNotFound when absent.
	GetByID(ctx context.Context, id int64) (Team, error)

	// ListAll retrieves every team ordered by ID.
	ListAll(ctx context.Context) ([]Team, error)
}
