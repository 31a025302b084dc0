package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/bloodlink/donor-registry/internal/core/domain"
	"github.com/bloodlink/donor-registry/internal/core/ports"
)

// AlertDispatcher hands donor alerts off for asynchronous delivery.
type AlertDispatcher interface {
	Enqueue(alert ports.DonorAlert)
}

// PostService owns the donation-request lifecycle: creation with donor
// fan-out, status transitions, and owner-gated deletion.
type PostService struct {
	posts      ports.PostRepository
	profiles   ports.ProfileRepository
	dispatcher AlertDispatcher // optional
	logger     zerolog.Logger
	now        func() time.Time
}

func NewPostService(posts ports.PostRepository, profiles ports.ProfileRepository, dispatcher AlertDispatcher, logger zerolog.Logger) *PostService {
	return &PostService{
		posts:      posts,
		profiles:   profiles,
		dispatcher: dispatcher,
		logger:     logger,
		now:        func() time.Time { return time.Now().UTC() },
	}
}

// Create validates and persists a new request, then fans an alert out to
// currently-available donors of the matching blood group. Fan-out is
// best-effort: its failures never surface to the requester.
func (s *PostService) Create(ctx context.Context, requester *domain.Profile, in ports.CreatePostInput) (*domain.Post, error) {
	if !in.BloodGroupNeeded.Valid() {
		return nil, domain.ErrInvalidBloodGroup
	}
	if !in.Urgency.Valid() {
		return nil, domain.ErrInvalidUrgency
	}

	post := &domain.Post{
		RequesterID:      requester.ID,
		RequesterName:    requester.Name,
		BloodGroupNeeded: in.BloodGroupNeeded,
		Location:         in.Location,
		ContactNumber:    in.ContactNumber,
		Description:      in.Description,
		Urgency:          in.Urgency,
		Status:           domain.PostOpen,
		CreatedAt:        s.now(),
	}

	id, err := s.posts.Create(ctx, post)
	if err != nil {
		return nil, err
	}
	post.ID = id

	s.logger.Info().Str("post_id", id).Str("blood_group", string(in.BloodGroupNeeded)).
		Str("urgency", string(in.Urgency)).Msg("donation request posted")

	s.alertDonors(ctx, post)
	return post, nil
}

func (s *PostService) List(ctx context.Context) ([]*domain.Post, error) {
	return s.posts.List(ctx)
}

func (s *PostService) ListOpen(ctx context.Context) ([]*domain.Post, error) {
	return s.posts.ListOpen(ctx)
}

func (s *PostService) ListByRequester(ctx context.Context, requesterID string) ([]*domain.Post, error) {
	return s.posts.ListByRequester(ctx, requesterID)
}

// UpdateStatus moves a post between open and fulfilled. Only the
// requester may call it, and re-applying the current status succeeds
// without a write.
func (s *PostService) UpdateStatus(ctx context.Context, actorID, postID string, status domain.PostStatus) (*domain.Post, error) {
	if !status.Valid() {
		return nil, domain.ErrInvalidPostStatus
	}

	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if post.RequesterID != actorID {
		return nil, domain.ErrNotPostOwner
	}
	if post.Status == status {
		return post, nil
	}
	if !post.Status.CanTransitionTo(status) {
		return nil, domain.ErrInvalidTransition
	}

	if err := s.posts.UpdateStatus(ctx, postID, status); err != nil {
		return nil, err
	}
	post.Status = status

	s.logger.Info().Str("post_id", postID).Str("status", string(status)).Msg("post status updated")
	return post, nil
}

// Delete removes the post. Only the requester may call it; deleting an
// already-deleted post reports domain.ErrPostNotFound.
func (s *PostService) Delete(ctx context.Context, actorID, postID string) error {
	post, err := s.posts.FindByID(ctx, postID)
	if err != nil {
		return err
	}
	if post.RequesterID != actorID {
		return domain.ErrNotPostOwner
	}

	if err := s.posts.Delete(ctx, postID); err != nil {
		return err
	}
	s.logger.Info().Str("post_id", postID).Msg("post deleted")
	return nil
}

// alertDonors enqueues one alert per matching donor who is available now
// or has never donated. The requester is never alerted about their own
// post.
func (s *PostService) alertDonors(ctx context.Context, post *domain.Post) {
	if s.dispatcher == nil {
		return
	}

	donors, err := s.profiles.ListByBloodGroup(ctx, post.BloodGroupNeeded)
	if err != nil {
		s.logger.Warn().Err(err).Str("post_id", post.ID).Msg("donor lookup for alert fan-out failed")
		return
	}

	today := s.now()
	for _, donor := range donors {
		if donor.ID == post.RequesterID {
			continue
		}
		if domain.Eligibility(donor, today).Kind == domain.AvailableFrom {
			continue
		}
		s.dispatcher.Enqueue(ports.DonorAlert{
			Email:            donor.Email,
			DonorName:        donor.Name,
			BloodGroupNeeded: post.BloodGroupNeeded,
			Location:         post.Location,
			Urgency:          post.Urgency,
			PostID:           post.ID,
		})
	}
}
