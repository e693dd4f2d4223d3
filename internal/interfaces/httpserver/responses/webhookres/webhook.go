package webhookres

// WebhookResponse acknowledges a webhook delivery. Status is "processed"
// for first deliveries and "duplicate" for replays of an already-handled
// event id; both acknowledge with 200 so the provider stops retrying.
type WebhookResponse struct {
	Status        string `json:"status"`
	ProjectID     string `json:"projectId,omitempty"`
	AppointmentID string `json:"appointmentId,omitempty"`
}
