package ports

import (
	"context"

	"github.com/bloodlink/donor-registry/internal/core/domain"
)

// CreatePostInput carries the fields a requester supplies for a new
// donation request. Requester identity comes from the acting profile, not
// the input.
type CreatePostInput struct {
	BloodGroupNeeded domain.BloodGroup
	Location         string
	ContactNumber    string
	Description      string
	Urgency          domain.Urgency
}

// DonorAlert is the outbound notification sent to matching donors when a
// request is posted.
type DonorAlert struct {
	Email            string
	DonorName        string
	BloodGroupNeeded domain.BloodGroup
	Location         string
	Urgency          domain.Urgency
	PostID           string
}

// PostService governs the donation-request lifecycle and enforces the
// owner-only mutation rule on top of the authorization-agnostic store.
type PostService interface {
	Create(ctx context.Context, requester *domain.Profile, in CreatePostInput) (*domain.Post, error)
	List(ctx context.Context) ([]*domain.Post, error)
	ListOpen(ctx context.Context) ([]*domain.Post, error)
	ListByRequester(ctx context.Context, requesterID string) ([]*domain.Post, error)
	// UpdateStatus transitions a post between open and fulfilled. Only the
	// requester may call it; re-applying the current status is a no-op,
	// not an error.
	UpdateStatus(ctx context.Context, actorID, postID string, status domain.PostStatus) (*domain.Post, error)
	// Delete removes the post entirely. Only the requester may call it; a
	// second delete fails with domain.ErrPostNotFound.
	Delete(ctx context.Context, actorID, postID string) error
}
