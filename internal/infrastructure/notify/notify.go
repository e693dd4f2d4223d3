package notify

import (
	"context"
	"fmt"

	"resty.dev/v3"

	"studio-server/internal/config"
	"studio-server/internal/infrastructure/logger"
	"studio-server/internal/utils/httpclients"
)

// Notifier sends internal email alerts (new conversation, new booking)
// through the relay service. Delivery is best effort; a failed notification
// never fails the request that triggered it.
type Notifier struct {
	client *resty.Client
	cfg    *config.Config
}

type relayRequest struct {
	From    string `json:"from"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

func NewNotifier(cfg *config.Config) *Notifier {
	client := httpclients.NewClient("notify-relay")
	client.SetTimeout(cfg.NotifyTimeout)
	return &Notifier{client: client, cfg: cfg}
}

// ConversationStarted alerts staff that a new conversation was opened.
func (n *Notifier) ConversationStarted(ctx context.Context, title, clientName string) {
	subject := fmt.Sprintf("New conversation: %s", title)
	body := fmt.Sprintf("%s started a new conversation.", clientName)
	n.deliver(ctx, subject, body)
}

// AppointmentBooked alerts staff that a slot was taken.
func (n *Notifier) AppointmentBooked(ctx context.Context, slot string, clientName string) {
	subject := fmt.Sprintf("New appointment: %s", slot)
	body := fmt.Sprintf("%s booked an appointment at %s.", clientName, slot)
	n.deliver(ctx, subject, body)
}

func (n *Notifier) deliver(ctx context.Context, subject, body string) {
	if n.cfg.NotifyRelayURL == "" || n.cfg.NotifyTo == "" {
		return
	}

	resp, err := n.client.R().
		SetContext(ctx).
		SetBody(relayRequest{
			From:    n.cfg.NotifyFrom,
			To:      n.cfg.NotifyTo,
			Subject: subject,
			Body:    body,
		}).
		Post(n.cfg.NotifyRelayURL)
	log := logger.GetLogger()
	if err != nil {
		log.Warn().Err(err).Str("subject", subject).Msg("Notification delivery failed")
		return
	}
	if resp.IsError() {
		log.Warn().Int("status", resp.StatusCode()).Str("subject", subject).Msg("Notification relay rejected request")
	}
}
