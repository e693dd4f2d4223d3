package repository

import (
	"studio-server/internal/infrastructure/database/repository/appointmentrepo"
	"studio-server/internal/infrastructure/database/repository/companyrepo"
	"studio-server/internal/infrastructure/database/repository/messagerepo"
	"studio-server/internal/infrastructure/database/repository/projectrepo"
	"studio-server/internal/infrastructure/database/repository/webhookrepo"

	"github.com/google/wire"
)

var RepositoryProvider = wire.NewSet(
	companyrepo.NewCompanyGormRepository,
	projectrepo.NewProjectGormRepository,
	messagerepo.NewMessageGormRepository,
	appointmentrepo.NewAppointmentGormRepository,
	webhookrepo.NewWebhookEventGormRepository,
)
