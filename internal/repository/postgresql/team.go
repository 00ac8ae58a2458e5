package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/pointagehq/attendance-backend-go/internal/domain/team"
	"github.com/pointagehq/attendance-backend-go/internal/pkg/database"
)

type teamRepositoryImpl struct {
	db *database.DB
}

func NewTeamRepository(db *database.DB) team.Repository {
	return &teamRepositoryImpl{db: db}
}

// GetByID implements team.Repository.
func (r *teamRepositoryImpl) GetByID(ctx context.Context, id int64) (team.Team, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT id, name, manager_id FROM teams WHERE id = $1`

	var t team.Team
	err := q.QueryRow(ctx, query, id).Scan(&t.ID, &t.Name, &t.ManagerID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return team.Team{}, team.ErrTeamNotFound
		}
		return team.Team{}, fmt.Errorf("failed to get team: %w", err)
	}
	return t, nil
}

// ListAll implements team.Repository.
func (r *teamRepositoryImpl) ListAll(ctx context.Context) ([]team.Team, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, name, manager_id FROM teams ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	teams := make([]team.Team, 0)
	for rows.Next() {
		var t team.Team
		if err := rows.Scan(&t.ID, &t.Name, &t.ManagerID); err != nil {
			return nil, fmt.Errorf("failed to scan team: %w", err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate teams: %w", err)
	}
	return teams, nil
}
