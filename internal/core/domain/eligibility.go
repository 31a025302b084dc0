package domain

import "time"

// DonationCooldownDays is the mandatory rest period between whole-blood
// donations.
const DonationCooldownDays = 90

// AvailabilityKind classifies a donor's readiness to donate.
type AvailabilityKind string

const (
	// AvailabilityUnknown means the profile has no recorded donation, so
	// no cooldown applies.
	AvailabilityUnknown AvailabilityKind = "unknown"
	AvailableNow        AvailabilityKind = "available_now"
	AvailableFrom       AvailabilityKind = "available_from"
)

// Availability is the derived donor-readiness state. From is set only when
// Kind is AvailableFrom.
type Availability struct {
	Kind AvailabilityKind `json:"kind"`
	From *time.Time       `json:"from,omitempty"`
}

// NextAvailable returns the first date a donor may donate again after
// donating on last.
func NextAvailable(last time.Time) time.Time {
	return last.AddDate(0, 0, DonationCooldownDays)
}

// Eligibility computes a profile's availability as of today. It reads the
// stored NextAvailableDate rather than recomputing from the last donation:
// the derived field is maintained at every mutation point, so stored data
// stays self-describing.
func Eligibility(p *Profile, today time.Time) Availability {
	if p == nil || p.LastDonationDate == nil {
		return Availability{Kind: AvailabilityUnknown}
	}

	next := p.NextAvailableDate
	if next == nil {
		// Legacy record mutated outside this system; fall back to the
		// invariant definition.
		n := NextAvailable(*p.LastDonationDate)
		next = &n
	}

	if !next.After(today) {
		return Availability{Kind: AvailableNow}
	}
	return Availability{Kind: AvailableFrom, From: next}
}
