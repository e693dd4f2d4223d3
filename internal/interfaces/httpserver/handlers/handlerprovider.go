package handlers

import (
	"github.com/google/wire"

	"studio-server/internal/application/audit"
	"studio-server/internal/interfaces/httpserver/handlers/adminhandler"
	"studio-server/internal/interfaces/httpserver/handlers/appointmenthandler"
	"studio-server/internal/interfaces/httpserver/handlers/messagehandler"
	"studio-server/internal/interfaces/httpserver/handlers/sockethandler"
	"studio-server/internal/interfaces/httpserver/handlers/tokenhandler"
	"studio-server/internal/interfaces/httpserver/handlers/webhookhandler"
)

var HandlerProvider = wire.NewSet(
	audit.NewAdminAuditLogger,
	tokenhandler.NewTokenHandler,
	messagehandler.NewMessageHandler,
	appointmenthandler.NewAppointmentHandler,
	webhookhandler.NewWebhookHandler,
	adminhandler.NewAdminHandler,
	sockethandler.NewSocketHandler,
)
