package appointmentreq

// BookAppointmentRequest is the body of POST /api/book-appointment. Date is
// "2006-01-02"; Time is a wall-clock slot label like "8:30 AM" interpreted
// in the studio timezone.
type BookAppointmentRequest struct {
	Date            string `json:"date" binding:"required"`
	Time            string `json:"time" binding:"required"`
	DurationMinutes int    `json:"duration_minutes,omitempty"`
	Email           string `json:"email,omitempty"`
	Name            string `json:"name,omitempty"`
	Phone           string `json:"phone,omitempty"`
}
