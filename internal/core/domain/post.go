package domain

import "time"

// PostStatus represents the lifecycle state of a donation request.
type PostStatus string

const (
	PostOpen      PostStatus = "open"
	PostFulfilled PostStatus = "fulfilled"
)

// validTransitions defines the allowed state machine transitions. Reopening
// a fulfilled request is a first-class transition, not an error path.
var validTransitions = map[PostStatus][]PostStatus{
	PostOpen:      {PostFulfilled},
	PostFulfilled: {PostOpen},
}

// Valid reports whether s is a known post status.
func (s PostStatus) Valid() bool {
	return s == PostOpen || s == PostFulfilled
}

// CanTransitionTo reports whether a transition from s to next is valid.
// Re-applying the current status is allowed so that repeated calls are
// idempotent rather than errors.
func (s PostStatus) CanTransitionTo(next PostStatus) bool {
	if s == next {
		return true
	}
	for _, allowed := range validTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Urgency ranks how quickly a donation request needs attention.
type Urgency string

const (
	UrgencyHigh   Urgency = "high"
	UrgencyMedium Urgency = "medium"
	UrgencyLow    Urgency = "low"
)

// Valid reports whether u is a known urgency level.
func (u Urgency) Valid() bool {
	return u == UrgencyHigh || u == UrgencyMedium || u == UrgencyLow
}

// Post is a donation request raised by a profile. RequesterID references
// Profile.ID; the store does not enforce the relation, the service layer
// does before any mutation.
type Post struct {
	ID               string     `json:"id"`
	RequesterID      string     `json:"requester_id"`
	RequesterName    string     `json:"requester_name"`
	BloodGroupNeeded BloodGroup `json:"blood_group_needed"`
	Location         string     `json:"location"`
	ContactNumber    string     `json:"contact_number"`
	Description      string     `json:"description"`
	Urgency          Urgency    `json:"urgency"`
	Status           PostStatus `json:"status"`
	CreatedAt        time.Time  `json:"created_at"`
}
