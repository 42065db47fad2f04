package profile

import "context"

// Link associates a chat-platform user id with a Codeforces handle. The
// registry table is the only thing this system persists.
type Link struct {
	UserID int64
	Handle string
}

// RegistryRepository is the persistent handle registry collaborator.
// Implementations live in the infrastructure layer.
type RegistryRepository interface {
	// ListLinks returns every (user id, handle) row.
	ListLinks(ctx context.Context) ([]Link, error)

	// FindLink returns the link for one user id, or shared.ErrNotFound.
	FindLink(ctx context.Context, userID int64) (*Link, error)

	// SaveLink inserts or updates a link.
	SaveLink(ctx context.Context, link Link) error

	// DeleteLink removes a link. Deleting an absent link is not an error.
	DeleteLink(ctx context.Context, userID int64) error
}
