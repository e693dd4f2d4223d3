package appointmenthandler

import (
	"context"
	"time"

	"studio-server/internal/config"
	"studio-server/internal/domain/appointment"
	"studio-server/internal/infrastructure/metrics"
	"studio-server/internal/infrastructure/notify"
	"studio-server/internal/interfaces/httpserver/requests/appointmentreq"
	"studio-server/internal/interfaces/httpserver/responses/appointmentres"
	"studio-server/internal/utils/platformerrors"
)

const (
	dateLayout     = "2006-01-02"
	dateTimeLayout = "2006-01-02 3:04 PM"
)

// AppointmentHandler serves the public booking surface.
type AppointmentHandler struct {
	guard    *appointment.Guard
	notifier *notify.Notifier
	cfg      *config.Config
}

func NewAppointmentHandler(guard *appointment.Guard, notifier *notify.Notifier, cfg *config.Config) *AppointmentHandler {
	return &AppointmentHandler{
		guard:    guard,
		notifier: notifier,
		cfg:      cfg,
	}
}

// Book runs the proposed slot through the collision check and persists the
// appointment when admitted. A rejected slot returns the decision with the
// remaining open alternatives; the route turns that into a 409.
func (h *AppointmentHandler) Book(ctx context.Context, req appointmentreq.BookAppointmentRequest) (*appointmentres.AppointmentResponse, *appointment.Decision, error) {
	proposed, err := h.parseSlot(ctx, req.Date, req.Time)
	if err != nil {
		return nil, nil, err
	}

	appt, decision, err := h.guard.Schedule(ctx, appointment.ScheduleInput{
		ScheduledAt:     proposed,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		return nil, nil, err
	}
	if !decision.Admitted {
		metrics.BookingConflictsTotal.Inc()
		return nil, decision, nil
	}

	metrics.AppointmentsScheduledTotal.WithLabelValues("api").Inc()
	clientName := req.Name
	if clientName == "" {
		clientName = req.Email
	}
	h.notifier.AppointmentBooked(ctx, req.Date+" "+req.Time, clientName)

	return appointmentres.NewAppointmentResponse(appt), decision, nil
}

// Availability lists the open slot labels for a day.
func (h *AppointmentHandler) Availability(ctx context.Context, date string) (*appointmentres.AvailabilityResponse, error) {
	day, err := time.ParseInLocation(dateLayout, date, h.cfg.Location())
	if err != nil {
		return nil, platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeValidation,
			"date must be YYYY-MM-DD", err, "1f3b5d7c-9e0a-4826-b4c6-8d0e2a4f6c38")
	}

	slots, err := h.guard.Availability(ctx, day)
	if err != nil {
		return nil, err
	}
	return &appointmentres.AvailabilityResponse{
		Date:           date,
		AvailableSlots: slots,
	}, nil
}

func (h *AppointmentHandler) parseSlot(ctx context.Context, date, slot string) (time.Time, error) {
	proposed, err := time.ParseInLocation(dateTimeLayout, date+" "+slot, h.cfg.Location())
	if err != nil {
		return time.Time{}, platformerrors.NewError(ctx, platformerrors.LayerHandler, platformerrors.ErrorTypeValidation,
			"invalid date or time slot", err, "6d8f0b2c-4e5a-4937-8c1d-3f5b7d9e1a40")
	}
	return proposed, nil
}
