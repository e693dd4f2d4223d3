package appointment

import (
	"context"
	"time"

	"studio-server/internal/utils/idgen"
	"studio-server/internal/utils/platformerrors"
)

// CollisionWindow is the minimum separation enforced between any two booked
// slots. An existing appointment exactly one window away does not collide.
const CollisionWindow = 30 * time.Minute

const slotLayout = "3:04 PM"

// GuardConfig carries the bookable slot grid and its timezone.
type GuardConfig struct {
	Slots           []string
	Location        *time.Location
	DefaultDuration time.Duration
}

// Guard validates proposed appointment slots against existing bookings.
// Rejection is an expected, frequent outcome and therefore a normal return
// value, never an error.
type Guard struct {
	repo AppointmentRepository
	cfg  GuardConfig
}

// Decision is the outcome of an admission check. When a slot is rejected,
// AvailableAlternatives lists the still-free slots of that day.
type Decision struct {
	Admitted              bool
	Conflict              *Appointment
	AvailableAlternatives []string
}

// NewGuard creates a booking guard.
func NewGuard(repo AppointmentRepository, cfg GuardConfig) *Guard {
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.DefaultDuration <= 0 {
		cfg.DefaultDuration = 30 * time.Minute
	}
	return &Guard{repo: repo, cfg: cfg}
}

// Admit decides whether the proposed instant may be booked. excludeID, when
// non-nil, ignores that appointment so a reschedule to the same time is a
// no-op.
func (g *Guard) Admit(ctx context.Context, proposed time.Time, excludeID *uint) (*Decision, error) {
	booked, err := g.bookedAround(ctx, proposed)
	if err != nil {
		return nil, err
	}

	for _, appt := range booked {
		if excludeID != nil && appt.ID == *excludeID {
			continue
		}
		if withinWindow(appt.ScheduledAt, proposed) {
			alternatives := g.freeSlots(proposed, booked, excludeID)
			return &Decision{Admitted: false, Conflict: appt, AvailableAlternatives: alternatives}, nil
		}
	}
	return &Decision{Admitted: true}, nil
}

// Availability returns the free slots of the given day.
func (g *Guard) Availability(ctx context.Context, day time.Time) ([]string, error) {
	booked, err := g.bookedAround(ctx, day)
	if err != nil {
		return nil, err
	}
	return g.freeSlots(day, booked, nil), nil
}

// ScheduleInput describes a booking request.
type ScheduleInput struct {
	CompanyID       *uint
	ConversationID  *uint
	ExternalID      *string
	ScheduledAt     time.Time
	DurationMinutes int
}

// Schedule admits and persists a booking. A rejected slot returns the
// decision with Admitted false and no appointment. When ExternalID matches
// an existing appointment the stored one is returned unchanged, keeping
// webhook retries idempotent.
func (g *Guard) Schedule(ctx context.Context, input ScheduleInput) (*Appointment, *Decision, error) {
	if input.ScheduledAt.IsZero() {
		return nil, nil, platformerrors.NewError(ctx, platformerrors.LayerDomain, platformerrors.ErrorTypeValidation,
			"appointment time is required", nil, "7c1e3a5b-9d0f-4284-b6c8-0e2a4c6d8f15")
	}

	if input.ExternalID != nil && *input.ExternalID != "" {
		existing, err := g.repo.FindByExternalID(ctx, *input.ExternalID)
		if err != nil {
			return nil, nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to check external id")
		}
		if existing != nil {
			return existing, &Decision{Admitted: true}, nil
		}
	}

	decision, err := g.Admit(ctx, input.ScheduledAt, nil)
	if err != nil {
		return nil, nil, err
	}
	if !decision.Admitted {
		return nil, decision, nil
	}

	publicID, err := idgen.GenerateSecureID("appt", 16)
	if err != nil {
		return nil, nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to generate appointment id")
	}

	duration := input.DurationMinutes
	if duration <= 0 {
		duration = int(g.cfg.DefaultDuration.Minutes())
	}

	appt := &Appointment{
		PublicID:        publicID,
		CompanyID:       input.CompanyID,
		ConversationID:  input.ConversationID,
		ExternalID:      input.ExternalID,
		ScheduledAt:     input.ScheduledAt.UTC(),
		DurationMinutes: duration,
		Status:          AppointmentStatusScheduled,
	}
	if err := g.repo.Create(ctx, appt); err != nil {
		return nil, nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to persist appointment")
	}
	return appt, decision, nil
}

// Reschedule moves an appointment, re-running the admission check with the
// appointment itself excluded.
func (g *Guard) Reschedule(ctx context.Context, appt *Appointment, newTime time.Time) (*Decision, error) {
	decision, err := g.Admit(ctx, newTime, &appt.ID)
	if err != nil {
		return nil, err
	}
	if !decision.Admitted {
		return decision, nil
	}
	appt.ScheduledAt = newTime.UTC()
	if err := g.repo.Update(ctx, appt); err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to reschedule appointment")
	}
	return decision, nil
}

// Cancel marks the appointment cancelled; cancelled slots never count toward
// occupancy.
func (g *Guard) Cancel(ctx context.Context, appt *Appointment) error {
	appt.Status = AppointmentStatusCancelled
	if err := g.repo.Update(ctx, appt); err != nil {
		return platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to cancel appointment")
	}
	return nil
}

// FindByExternalID exposes the provider dedupe lookup to webhook handlers.
func (g *Guard) FindByExternalID(ctx context.Context, externalID string) (*Appointment, error) {
	appt, err := g.repo.FindByExternalID(ctx, externalID)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to look up appointment")
	}
	return appt, nil
}

// bookedAround loads the non-cancelled appointments of the proposed day,
// padded by one collision window on both sides to catch midnight-adjacent
// bookings.
func (g *Guard) bookedAround(ctx context.Context, proposed time.Time) ([]*Appointment, error) {
	local := proposed.In(g.cfg.Location)
	dayStart := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, g.cfg.Location)
	from := dayStart.Add(-CollisionWindow)
	to := dayStart.Add(24*time.Hour + CollisionWindow)

	booked, err := g.repo.FindBooked(ctx, from, to)
	if err != nil {
		return nil, platformerrors.AsError(ctx, platformerrors.LayerDomain, err, "failed to load bookings")
	}
	return booked, nil
}

// freeSlots returns the configured slot grid of the proposed day minus the
// slots occupied within the collision window of a booking.
func (g *Guard) freeSlots(day time.Time, booked []*Appointment, excludeID *uint) []string {
	local := day.In(g.cfg.Location)
	free := make([]string, 0, len(g.cfg.Slots))
	for _, slot := range g.cfg.Slots {
		at, err := time.Parse(slotLayout, slot)
		if err != nil {
			continue
		}
		instant := time.Date(local.Year(), local.Month(), local.Day(), at.Hour(), at.Minute(), 0, 0, g.cfg.Location)

		occupied := false
		for _, appt := range booked {
			if excludeID != nil && appt.ID == *excludeID {
				continue
			}
			if withinWindow(appt.ScheduledAt, instant) {
				occupied = true
				break
			}
		}
		if !occupied {
			free = append(free, slot)
		}
	}
	return free
}

func withinWindow(a, b time.Time) bool {
	diff := a.Sub(b)
	if diff < 0 {
		diff = -diff
	}
	return diff < CollisionWindow
}
