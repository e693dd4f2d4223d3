//go:build wireinject

package main

import (
	"studio-server/internal/domain"
	"studio-server/internal/infrastructure"
	"studio-server/internal/interfaces"
	"studio-server/internal/interfaces/httpserver/routes"

	"github.com/google/wire"
)

func CreateApplication() (*Application, error) {
	wire.Build(
		domain.ServiceProvider,
		infrastructure.InfrastructureProvider,
		routes.RouteProvider,
		interfaces.InterfacesProvider,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}
