package ports

import (
	"context"

	"github.com/bloodlink/donor-registry/internal/core/domain"
)

// PostRepository defines persistence operations for donation requests.
// All list operations return posts ordered by creation time, newest first.
// The repository is authorization-agnostic; ownership checks live in the
// service layer.
type PostRepository interface {
	// Create inserts the post and returns the store-assigned id.
	Create(ctx context.Context, p *domain.Post) (string, error)
	FindByID(ctx context.Context, id string) (*domain.Post, error)
	List(ctx context.Context) ([]*domain.Post, error)
	ListOpen(ctx context.Context) ([]*domain.Post, error)
	// ListByRequester queries on requester id alone and sorts locally, so
	// the underlying store needs no compound index.
	ListByRequester(ctx context.Context, requesterID string) ([]*domain.Post, error)
	UpdateStatus(ctx context.Context, id string, status domain.PostStatus) error
	Delete(ctx context.Context, id string) error
}
