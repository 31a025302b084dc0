package handler

import (
	"time"

	"github.com/bloodlink/donor-registry/internal/core/domain"
)

type signupRequest struct {
	Name          string `json:"name" validate:"required,min=2"`
	Email         string `json:"email" validate:"required,email"`
	Password      string `json:"password" validate:"required,min=6"`
	ContactNumber string `json:"contact_number" validate:"required"`
	Location      string `json:"location" validate:"required"`
	BloodGroup    string `json:"blood_group" validate:"required,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	// Role, when present, gates the login to that role.
	Role string `json:"role,omitempty" validate:"omitempty,oneof=user admin"`
}

type resetRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type updateProfileRequest struct {
	Name          *string `json:"name,omitempty" validate:"omitempty,min=2"`
	ContactNumber *string `json:"contact_number,omitempty"`
	Location      *string `json:"location,omitempty"`
	BloodGroup    *string `json:"blood_group,omitempty" validate:"omitempty,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
}

type recordDonationRequest struct {
	// DonatedOn is the donation date in YYYY-MM-DD form.
	DonatedOn string `json:"donated_on" validate:"required,datetime=2006-01-02"`
}

type createPostRequest struct {
	BloodGroupNeeded string `json:"blood_group_needed" validate:"required,oneof=A+ A- B+ B- AB+ AB- O+ O-"`
	Location         string `json:"location" validate:"required"`
	ContactNumber    string `json:"contact_number" validate:"required"`
	Description      string `json:"description"`
	Urgency          string `json:"urgency" validate:"required,oneof=high medium low"`
}

type updatePostStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=open fulfilled"`
}

type loginResponse struct {
	Token         string          `json:"token"`
	ProviderToken string          `json:"provider_token,omitempty"`
	Profile       *domain.Profile `json:"profile"`
}

type resetResponse struct {
	Message string `json:"message"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}
