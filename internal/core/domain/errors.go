package domain

import (
	"errors"
	"fmt"
)

// Identity-provider boundary.
var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrDuplicateAccount    = errors.New("account already registered")
	ErrRateLimited         = errors.New("too many attempts, try again later")
	ErrTimeout             = errors.New("identity provider timed out")
	ErrProviderUnavailable = errors.New("identity provider failure")
)

// Record-store boundary.
var (
	ErrProfileNotFound  = errors.New("profile not found")
	ErrPostNotFound     = errors.New("post not found")
	ErrStoreUnavailable = errors.New("record store failure")
)

// Core policy errors.
var (
	ErrRecordInconsistency = errors.New("profile record could not be repaired")
	ErrRoleMismatch        = errors.New("account role does not match requested role")
	ErrNotPostOwner        = errors.New("only the requester may modify this post")
	ErrInvalidTransition   = errors.New("invalid post status transition")
	ErrInvalidPostStatus   = errors.New("unknown post status")
	ErrInvalidBloodGroup   = errors.New("unknown blood group")
	ErrInvalidUrgency      = errors.New("unknown urgency level")
	ErrDonationInFuture    = errors.New("donation date cannot be in the future")
)

// StoreError wraps a transport failure from the document store so callers
// can match on ErrStoreUnavailable while keeping the driver error in the
// chain.
func StoreError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrStoreUnavailable, err)
}

// ProviderError does the same for identity-provider transport failures.
func ProviderError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrProviderUnavailable, err)
}
