package ports

import (
	"context"
	"time"

	"github.com/bloodlink/donor-registry/internal/core/domain"
)

// DonorView pairs a profile with its computed availability for display.
type DonorView struct {
	Profile      *domain.Profile     `json:"profile"`
	Availability domain.Availability `json:"availability"`
}

// UpdateProfileInput is the self-service profile edit whitelist. Email,
// role, and the derived donation dates are not editable through it.
type UpdateProfileInput struct {
	Name          *string
	ContactNumber *string
	Location      *string
	BloodGroup    *domain.BloodGroup
}

// RegistryStats summarizes the registry for the admin dashboard.
type RegistryStats struct {
	TotalDonors    int                       `json:"total_donors"`
	ByBloodGroup   map[domain.BloodGroup]int `json:"by_blood_group"`
	OpenPosts      int                       `json:"open_posts"`
	FulfilledPosts int                       `json:"fulfilled_posts"`
}

// DonorService owns profile reads and the donor-facing mutations,
// including the one piece of derived state: the next-available date.
type DonorService interface {
	GetProfile(ctx context.Context, id string) (*domain.Profile, error)
	ListDonors(ctx context.Context) ([]DonorView, error)
	ListDonorsByBloodGroup(ctx context.Context, bg domain.BloodGroup) ([]DonorView, error)
	UpdateProfile(ctx context.Context, profileID string, in UpdateProfileInput) (*domain.Profile, error)
	// RecordDonation sets the last donation date and recomputes the
	// next-available date in the same mutation.
	RecordDonation(ctx context.Context, profileID string, donatedOn time.Time) (*domain.Profile, error)
	Stats(ctx context.Context) (*RegistryStats, error)
}
