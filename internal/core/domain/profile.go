package domain

import "time"

// Role distinguishes regular donors from administrators.
type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// Valid reports whether the role is one of the two known roles.
func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

// BloodGroup is one of the eight canonical ABO/Rh values.
type BloodGroup string

const (
	BloodAPos  BloodGroup = "A+"
	BloodANeg  BloodGroup = "A-"
	BloodBPos  BloodGroup = "B+"
	BloodBNeg  BloodGroup = "B-"
	BloodABPos BloodGroup = "AB+"
	BloodABNeg BloodGroup = "AB-"
	BloodOPos  BloodGroup = "O+"
	BloodONeg  BloodGroup = "O-"
)

var bloodGroups = map[BloodGroup]struct{}{
	BloodAPos: {}, BloodANeg: {},
	BloodBPos: {}, BloodBNeg: {},
	BloodABPos: {}, BloodABNeg: {},
	BloodOPos: {}, BloodONeg: {},
}

// Valid reports whether bg is a canonical blood group. The empty string is
// not valid; self-healed profiles carry no blood group until the donor
// fills one in, so storage accepts blank while input validation does not.
func (bg BloodGroup) Valid() bool {
	_, ok := bloodGroups[bg]
	return ok
}

// Profile is a registered donor record. The ID is the identity provider's
// opaque account identifier and doubles as the document key; it is never
// generated locally.
type Profile struct {
	ID            string     `json:"id" bson:"_id"`
	Name          string     `json:"name" bson:"name"`
	Email         string     `json:"email" bson:"email"`
	ContactNumber string     `json:"contact_number" bson:"contact_number"`
	Location      string     `json:"location" bson:"location"`
	BloodGroup    BloodGroup `json:"blood_group" bson:"blood_group"`
	Role          Role       `json:"role" bson:"role"`
	// LastDonationDate and NextAvailableDate travel together:
	// NextAvailableDate is always LastDonationDate plus the donation
	// cooldown, recomputed at the point of mutation.
	LastDonationDate  *time.Time `json:"last_donation_date,omitempty" bson:"last_donation_date,omitempty"`
	NextAvailableDate *time.Time `json:"next_available_date,omitempty" bson:"next_available_date,omitempty"`
	CreatedAt         time.Time  `json:"created_at" bson:"created_at"`
}

// IsAdmin reports whether the profile belongs to an administrator.
func (p *Profile) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}
