package identity

import (
	"context"
	"time"
)

// ===============================================
// Identity Types
// ===============================================

// Source records which surface first produced an identity.
type Source string

const (
	SourceWidget  Source = "widget"
	SourceForm    Source = "form"
	SourceWebhook Source = "webhook"
	SourceLegacy  Source = "legacy"
	SourceAdmin   Source = "admin"
)

// Identity is a resolved client/company record. Raw submissions from the
// widget, public forms and webhooks all collapse onto this one shape; legacy
// "business" rows are normalized to it at the storage boundary.
type Identity struct {
	ID       uint     `json:"-"`
	PublicID string   `json:"id"`
	Name     string   `json:"name"`
	Email    *string  `json:"email,omitempty"` // not guaranteed unique
	Phone    *string  `json:"phone,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Source   Source   `json:"source"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ===============================================
// Identity Repository
// ===============================================

type IdentityFilter struct {
	ID       *uint
	PublicID *string
	Email    *string
}

type IdentityRepository interface {
	Create(ctx context.Context, ident *Identity) error
	FindAll(ctx context.Context) ([]*Identity, error)
	FindByFilter(ctx context.Context, filter IdentityFilter) ([]*Identity, error)
	FindByID(ctx context.Context, id uint) (*Identity, error)
	FindByPublicID(ctx context.Context, publicID string) (*Identity, error)
	Update(ctx context.Context, ident *Identity) error
}
