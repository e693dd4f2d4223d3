package appointment

import (
	"context"
	"time"
)

// ===============================================
// Appointment Types
// ===============================================

type AppointmentStatus string

const (
	AppointmentStatusScheduled AppointmentStatus = "scheduled"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
	AppointmentStatusCompleted AppointmentStatus = "completed"
)

// Appointment is a booked slot of the shared calendar. ExternalID carries
// the provider's event id and is the dedupe key for webhook retries.
type Appointment struct {
	ID              uint              `json:"-"`
	PublicID        string            `json:"id"`
	CompanyID       *uint             `json:"-"`
	ConversationID  *uint             `json:"-"`
	ExternalID      *string           `json:"external_id,omitempty"`
	ScheduledAt     time.Time         `json:"scheduled_at"`
	DurationMinutes int               `json:"duration_minutes"`
	Status          AppointmentStatus `json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ===============================================
// Appointment Repository
// ===============================================

type AppointmentRepository interface {
	Create(ctx context.Context, appt *Appointment) error
	FindByPublicID(ctx context.Context, publicID string) (*Appointment, error)
	// FindByExternalID returns (nil, nil) when no appointment carries the id.
	FindByExternalID(ctx context.Context, externalID string) (*Appointment, error)
	// FindBooked returns non-cancelled appointments scheduled in [from, to).
	FindBooked(ctx context.Context, from, to time.Time) ([]*Appointment, error)
	Update(ctx context.Context, appt *Appointment) error
	// CompletePast marks scheduled appointments older than the cutoff
	// completed and reports how many rows changed.
	CompletePast(ctx context.Context, before time.Time) (int64, error)
}
