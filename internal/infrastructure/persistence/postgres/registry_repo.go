package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/cf-tools/cf-insight/internal/domain/profile"
	"github.com/cf-tools/cf-insight/internal/domain/shared"
)

// RegistryRepository implements profile.RegistryRepository on PostgreSQL.
type RegistryRepository struct {
	conn *Connection
}

// NewRegistryRepository creates a new RegistryRepository.
func NewRegistryRepository(conn *Connection) *RegistryRepository {
	return &RegistryRepository{conn: conn}
}

// ListLinks returns every (user id, handle) row in the registry.
func (r *RegistryRepository) ListLinks(ctx context.Context) ([]profile.Link, error) {
	rows, err := r.conn.pool.Query(ctx, `SELECT user_id, handle FROM users ORDER BY user_id`)
	if err != nil {
		return nil, fmt.Errorf("query links: %w", err)
	}
	defer rows.Close()

	var links []profile.Link
	for rows.Next() {
		var link profile.Link
		if err := rows.Scan(&link.UserID, &link.Handle); err != nil {
			return nil, fmt.Errorf("scan link: %w", err)
		}
		links = append(links, link)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate links: %w", err)
	}
	return links, nil
}

// FindLink returns the link for one user id, or shared.ErrNotFound.
func (r *RegistryRepository) FindLink(ctx context.Context, userID int64) (*profile.Link, error) {
	var link profile.Link
	err := r.conn.pool.QueryRow(ctx,
		`SELECT user_id, handle FROM users WHERE user_id = $1`, userID).
		Scan(&link.UserID, &link.Handle)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, shared.WrapError("postgres", "FindLink", shared.ErrNotFound,
			fmt.Sprintf("no link for user %d", userID), nil)
	}
	if err != nil {
		return nil, fmt.Errorf("find link: %w", err)
	}
	return &link, nil
}

// SaveLink inserts or updates a link.
func (r *RegistryRepository) SaveLink(ctx context.Context, link profile.Link) error {
	_, err := r.conn.pool.Exec(ctx, `
		INSERT INTO users (user_id, handle)
		VALUES ($1, $2)
		ON CONFLICT (user_id) DO UPDATE SET handle = EXCLUDED.handle
	`, link.UserID, link.Handle)
	if err != nil {
		return fmt.Errorf("save link: %w", err)
	}
	return nil
}

// DeleteLink removes a link. Deleting an absent link is not an error.
func (r *RegistryRepository) DeleteLink(ctx context.Context, userID int64) error {
	_, err := r.conn.pool.Exec(ctx, `DELETE FROM users WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("delete link: %w", err)
	}
	return nil
}
