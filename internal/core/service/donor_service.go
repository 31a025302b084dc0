package service

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/bloodlink/donor-registry/internal/core/domain"
	"github.com/bloodlink/donor-registry/internal/core/ports"
)

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrProfileNotFound)
}

// DonorService serves profile reads, self-service edits, and the donation
// log. Availability is computed at read time from the stored dates.
type DonorService struct {
	profiles ports.ProfileRepository
	posts    ports.PostRepository
	logger   zerolog.Logger
	now      func() time.Time
}

func NewDonorService(profiles ports.ProfileRepository, posts ports.PostRepository, logger zerolog.Logger) *DonorService {
	return &DonorService{
		profiles: profiles,
		posts:    posts,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *DonorService) GetProfile(ctx context.Context, id string) (*domain.Profile, error) {
	return s.profiles.FindByID(ctx, id)
}

func (s *DonorService) ListDonors(ctx context.Context) ([]ports.DonorView, error) {
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, err
	}
	return s.annotate(profiles), nil
}

func (s *DonorService) ListDonorsByBloodGroup(ctx context.Context, bg domain.BloodGroup) ([]ports.DonorView, error) {
	if !bg.Valid() {
		return nil, domain.ErrInvalidBloodGroup
	}
	profiles, err := s.profiles.ListByBloodGroup(ctx, bg)
	if err != nil {
		return nil, err
	}
	return s.annotate(profiles), nil
}

// UpdateProfile applies the whitelisted self-service edits. Fields left
// nil are untouched; email, role, and the donation dates cannot be set
// through this path.
func (s *DonorService) UpdateProfile(ctx context.Context, profileID string, in ports.UpdateProfileInput) (*domain.Profile, error) {
	if in.BloodGroup != nil && !in.BloodGroup.Valid() {
		return nil, domain.ErrInvalidBloodGroup
	}

	update := ports.ProfileUpdate{
		Name:          in.Name,
		ContactNumber: in.ContactNumber,
		Location:      in.Location,
		BloodGroup:    in.BloodGroup,
	}
	if err := s.profiles.Update(ctx, profileID, update); err != nil {
		return nil, err
	}
	return s.profiles.FindByID(ctx, profileID)
}

// RecordDonation stores the donation date and the derived next-available
// date in the same update so readers never see one without the other.
func (s *DonorService) RecordDonation(ctx context.Context, profileID string, donatedOn time.Time) (*domain.Profile, error) {
	donatedOn = donatedOn.UTC()
	if donatedOn.After(s.now()) {
		return nil, domain.ErrDonationInFuture
	}

	next := domain.NextAvailable(donatedOn)
	update := ports.ProfileUpdate{
		LastDonationDate:  &donatedOn,
		NextAvailableDate: &next,
	}
	if err := s.profiles.Update(ctx, profileID, update); err != nil {
		return nil, err
	}

	s.logger.Info().Str("profile_id", profileID).
		Time("donated_on", donatedOn).Time("next_available", next).
		Msg("donation recorded")
	return s.profiles.FindByID(ctx, profileID)
}

func (s *DonorService) Stats(ctx context.Context) (*ports.RegistryStats, error) {
	profiles, err := s.profiles.List(ctx)
	if err != nil {
		return nil, err
	}
	posts, err := s.posts.List(ctx)
	if err != nil {
		return nil, err
	}

	stats := &ports.RegistryStats{
		TotalDonors:  len(profiles),
		ByBloodGroup: make(map[domain.BloodGroup]int),
	}
	for _, p := range profiles {
		if p.BloodGroup.Valid() {
			stats.ByBloodGroup[p.BloodGroup]++
		}
	}
	for _, p := range posts {
		switch p.Status {
		case domain.PostOpen:
			stats.OpenPosts++
		case domain.PostFulfilled:
			stats.FulfilledPosts++
		}
	}
	return stats, nil
}

func (s *DonorService) annotate(profiles []*domain.Profile) []ports.DonorView {
	today := s.now()
	views := make([]ports.DonorView, 0, len(profiles))
	for _, p := range profiles {
		views = append(views, ports.DonorView{
			Profile:      p,
			Availability: domain.Eligibility(p, today),
		})
	}
	return views
}
