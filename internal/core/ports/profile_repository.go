package ports

import (
	"context"
	"time"

	"github.com/bloodlink/donor-registry/internal/core/domain"
)

// ProfileUpdate carries a partial profile mutation. Nil fields are left
// untouched. Role is deliberately absent: promotion is provisioned
// out-of-band, never through this surface.
type ProfileUpdate struct {
	Name              *string
	ContactNumber     *string
	Location          *string
	BloodGroup        *domain.BloodGroup
	LastDonationDate  *time.Time
	NextAvailableDate *time.Time
}

// ProfileRepository defines persistence operations for donor profiles.
// FindByID reports absence with domain.ErrProfileNotFound; list operations
// return empty slices, never an error, when nothing matches.
type ProfileRepository interface {
	FindByID(ctx context.Context, id string) (*domain.Profile, error)
	List(ctx context.Context) ([]*domain.Profile, error)
	ListByBloodGroup(ctx context.Context, bg domain.BloodGroup) ([]*domain.Profile, error)
	// Save upserts the full profile document under the given id.
	Save(ctx context.Context, id string, p *domain.Profile) error
	// Update merges non-nil fields into an existing document. Fails with
	// domain.ErrProfileNotFound when the id matches nothing.
	Update(ctx context.Context, id string, u ProfileUpdate) error
}
