package appointmentres

import (
	"time"

	"studio-server/internal/domain/appointment"
)

// AppointmentResponse is the wire shape of a booked appointment.
type AppointmentResponse struct {
	ID              string    `json:"id"`
	ScheduledAt     time.Time `json:"scheduled_at"`
	DurationMinutes int       `json:"duration_minutes"`
	Status          string    `json:"status"`
}

func NewAppointmentResponse(appt *appointment.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              appt.PublicID,
		ScheduledAt:     appt.ScheduledAt,
		DurationMinutes: appt.DurationMinutes,
		Status:          string(appt.Status),
	}
}

// ConflictResponse is the 409 body for a rejected slot.
type ConflictResponse struct {
	Error                 string   `json:"error"`
	AvailableAlternatives []string `json:"availableAlternatives"`
}

// AvailabilityResponse lists the open slot labels for a day.
type AvailabilityResponse struct {
	Date           string   `json:"date"`
	AvailableSlots []string `json:"availableSlots"`
}
