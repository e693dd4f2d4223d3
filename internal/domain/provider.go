package domain

import (
	"time"

	"github.com/google/wire"

	"studio-server/internal/config"
	"studio-server/internal/domain/appointment"
	"studio-server/internal/domain/conversation"
	"studio-server/internal/domain/identity"
	"studio-server/internal/domain/token"
	"studio-server/internal/domain/webhook"
)

// ServiceProvider provides all domain services
var ServiceProvider = wire.NewSet(
	token.NewService,
	identity.NewResolver,
	conversation.NewRouter,
	conversation.NewMessageService,
	webhook.NewDeduper,

	ProvideGuardConfig,
	appointment.NewGuard,
)

func ProvideGuardConfig(cfg *config.Config) appointment.GuardConfig {
	return appointment.GuardConfig{
		Slots:           cfg.BookingSlots,
		Location:        cfg.Location(),
		DefaultDuration: time.Duration(cfg.DefaultDurationMins) * time.Minute,
	}
}
