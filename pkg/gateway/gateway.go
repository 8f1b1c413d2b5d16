// Package gateway defines the contract of the remote data store behind the
// boutique: CRUD over products, users and site content plus change
// notifications. It also owns the mapping between the in-memory models and
// the store's lower-snake-case records.
package gateway

import (
	"context"
	"errors"

	"aurelialuxe.com/boutique/pkg/models"
)

// Resource names a remote table
type Resource string

const (
	ResourceProducts    Resource = "products"
	ResourceUsers       Resource = "users"
	ResourceSiteContent Resource = "site_content"
)

var (
	ErrNotFound       = errors.New("record not found")
	ErrDuplicateEmail = errors.New("email already exists")
	ErrDuplicateSKU   = errors.New("sku already exists")
	ErrUnavailable    = errors.New("remote store unavailable")
)

// Snapshot is the result of a full fetch. A nil field means that resource
// could not be read and the caller should fall back to its own data.
type Snapshot struct {
	Products    []models.Product
	Users       []models.User
	SiteContent *models.SiteContent
}

// UserPatch lists the user fields to change. Nil fields are left untouched.
type UserPatch struct {
	Name         *string
	PasswordHash *string
	IsAdmin      *bool
	IsApproved   *bool
	IsSubscribed *bool
	Wishlist     *[]string
	OrderHistory *[]models.Order
}

// Gateway is the remote data store used by the store manager
type Gateway interface {
	// FetchAll is best effort and never fails; unreadable resources are nil
	FetchAll(ctx context.Context) Snapshot

	UpsertProduct(ctx context.Context, product models.Product) error
	DeleteProduct(ctx context.Context, id string) error

	InsertUser(ctx context.Context, user models.User) error
	UpdateUser(ctx context.Context, id string, patch UserPatch) error
	DeleteUser(ctx context.Context, id string) error

	UpsertSiteContent(ctx context.Context, content models.SiteContent) error

	// Subscribe registers onChange for any remote mutation of resource.
	// The returned function releases the registration.
	Subscribe(ctx context.Context, resource Resource, onChange func()) (unsubscribe func(), err error)
}
