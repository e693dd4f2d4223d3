package routes

import (
	"studio-server/internal/interfaces/httpserver/handlers"
	"studio-server/internal/interfaces/httpserver/routes/admin"
	"studio-server/internal/interfaces/httpserver/routes/public"

	"github.com/google/wire"
)

var RouteProvider = wire.NewSet(
	// Handlers
	handlers.HandlerProvider,

	// Routes
	public.NewPublicRoute,
	admin.NewAdminRoute,
)
