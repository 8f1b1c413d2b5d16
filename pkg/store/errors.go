package store

import (
	"errors"
	"fmt"

	"aurelialuxe.com/boutique/pkg/gateway"
)

var (
	// ErrInvalidCredentials covers both an unknown email and a wrong password
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrPendingApproval means the credentials are correct but the curator has not approved the account
	ErrPendingApproval = errors.New("account is pending curator review")
	ErrEmailTaken      = errors.New("an account with this email already exists")
	ErrSKUTaken        = errors.New("another piece already uses this sku")
	ErrSelfDeletion    = errors.New("administrators cannot delete their own account")
	ErrForbidden       = errors.New("curator access required")
	ErrNotSignedIn     = errors.New("sign in required")
	ErrNotFound        = errors.New("not found")
	ErrEmptyBag        = errors.New("the bag is empty")
)

// translate maps gateway errors onto the store's taxonomy
func translate(op string, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gateway.ErrNotFound):
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	case errors.Is(err, gateway.ErrDuplicateEmail):
		return fmt.Errorf("%s: %w", op, ErrEmailTaken)
	case errors.Is(err, gateway.ErrDuplicateSKU):
		return fmt.Errorf("%s: %w", op, ErrSKUTaken)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
