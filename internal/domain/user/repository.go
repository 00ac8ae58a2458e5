package user

import "context"

// Repository defines read-only access to users.
type Repository interface {
	// GetByID retrieves a user by ID. Returns ErrUserNotFound when absent.
	GetByID(ctx context.Context, id int64) (User, error)

	// GetByEmail retrieves a user by email. Returns ErrUserNotFound when absent.
	GetByEmail(ctx context.Context, email string) (User, error)

	// ListByTeam retrieves all members of a team ordered by ID.
	ListByTeam(ctx context.Context, teamID int64) ([]User, error)

	// ListAll retrieves every user ordered by ID.
	ListAll(ctx context.Context) ([]User, error)
}
