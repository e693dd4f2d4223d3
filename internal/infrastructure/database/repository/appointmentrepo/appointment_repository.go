package appointmentrepo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"

	"studio-server/internal/domain/appointment"
	"studio-server/internal/infrastructure/database/dbschema"
	"studio-server/internal/utils/platformerrors"
)

type AppointmentGormRepository struct {
	db *gorm.DB
}

var _ appointment.AppointmentRepository = (*AppointmentGormRepository)(nil)

func NewAppointmentGormRepository(db *gorm.DB) appointment.AppointmentRepository {
	return &AppointmentGormRepository{db: db}
}

// Create implements appointment.AppointmentRepository.
func (repo *AppointmentGormRepository) Create(ctx context.Context, appt *appointment.Appointment) error {
	dbAppointment := dbschema.NewSchemaAppointment(appt)
	if err := repo.db.WithContext(ctx).Create(dbAppointment).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeConflict,
				"appointment already recorded", err, "b3c1d9e7-60f4-4a2b-9c85-1e7d2f4b8a03")
		}
		return platformerrors.AsStorageError(ctx, err, "failed to create appointment")
	}
	appt.ID = dbAppointment.ID
	appt.CreatedAt = dbAppointment.CreatedAt
	appt.UpdatedAt = dbAppointment.UpdatedAt
	return nil
}

// FindByPublicID implements appointment.AppointmentRepository.
func (repo *AppointmentGormRepository) FindByPublicID(ctx context.Context, publicID string) (*appointment.Appointment, error) {
	var row dbschema.Appointment
	err := repo.db.WithContext(ctx).Where("public_id = ?", publicID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, platformerrors.AsStorageError(ctx, err, "failed to find appointment by public id")
	}
	return row.EtoD(), nil
}

// FindByExternalID implements appointment.AppointmentRepository.
func (repo *AppointmentGormRepository) FindByExternalID(ctx context.Context, externalID string) (*appointment.Appointment, error) {
	var row dbschema.Appointment
	err := repo.db.WithContext(ctx).Where("external_id = ?", externalID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, platformerrors.AsStorageError(ctx, err, "failed to find appointment by external id")
	}
	return row.EtoD(), nil
}

// FindBooked implements appointment.AppointmentRepository.
func (repo *AppointmentGormRepository) FindBooked(ctx context.Context, from, to time.Time) ([]*appointment.Appointment, error) {
	var rows []dbschema.Appointment
	err := repo.db.WithContext(ctx).
		Where("status <> ?", appointment.AppointmentStatusCancelled).
		Where("scheduled_at >= ? AND scheduled_at < ?", from, to).
		Order("scheduled_at ASC").
		Find(&rows).Error
	if err != nil {
		return nil, platformerrors.AsStorageError(ctx, err, "failed to list booked appointments")
	}
	result := make([]*appointment.Appointment, len(rows))
	for i, row := range rows {
		result[i] = row.EtoD()
	}
	return result, nil
}

// Update implements appointment.AppointmentRepository.
func (repo *AppointmentGormRepository) Update(ctx context.Context, appt *appointment.Appointment) error {
	err := repo.db.WithContext(ctx).
		Model(&dbschema.Appointment{}).
		Where("id = ?", appt.ID).
		Updates(map[string]any{
			"scheduled_at":     appt.ScheduledAt,
			"duration_minutes": appt.DurationMinutes,
			"status":           appt.Status,
		}).Error
	if err != nil {
		return platformerrors.AsStorageError(ctx, err, "failed to update appointment")
	}
	return nil
}

// CompletePast implements appointment.AppointmentRepository.
func (repo *AppointmentGormRepository) CompletePast(ctx context.Context, before time.Time) (int64, error) {
	result := repo.db.WithContext(ctx).
		Model(&dbschema.Appointment{}).
		Where("status = ? AND scheduled_at < ?", appointment.AppointmentStatusScheduled, before).
		Update("status", appointment.AppointmentStatusCompleted)
	if result.Error != nil {
		return 0, platformerrors.AsStorageError(ctx, result.Error, "failed to complete past appointments")
	}
	return result.RowsAffected, nil
}
