package webhookreq

// SquarespaceSubmission is a form submission delivery from Squarespace.
// Field names follow the provider's payload.
type SquarespaceSubmission struct {
	ID      string `json:"formSubmissionId"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Phone   string `json:"phone,omitempty"`
	Message string `json:"message,omitempty"`
}

// AcuityEvent is an appointment event delivery from Acuity Scheduling.
// Datetime is RFC 3339; Date/Time are the fallback pair some webhook
// configurations send instead.
type AcuityEvent struct {
	ID        string `json:"id"`
	Action    string `json:"action,omitempty"`
	Email     string `json:"email"`
	FirstName string `json:"firstName,omitempty"`
	LastName  string `json:"lastName,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Datetime  string `json:"datetime,omitempty"`
	Date      string `json:"date,omitempty"`
	Time      string `json:"time,omitempty"`
	Duration  int    `json:"duration,omitempty"`
}

// Name joins the split name fields the way the booking form displays them.
func (e AcuityEvent) Name() string {
	switch {
	case e.FirstName != "" && e.LastName != "":
		return e.FirstName + " " + e.LastName
	case e.FirstName != "":
		return e.FirstName
	default:
		return e.LastName
	}
}
