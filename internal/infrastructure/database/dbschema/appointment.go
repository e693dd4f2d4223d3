package dbschema

import (
	"time"

	"studio-server/internal/domain/appointment"
	"studio-server/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Appointment{})
}

// Appointment represents the database schema for booked slots.
type Appointment struct {
	BaseModel
	PublicID        string                        `gorm:"type:varchar(64);uniqueIndex;not null"`
	CompanyID       *uint                         `gorm:"index"`
	ConversationID  *uint                         `gorm:"index"`
	ExternalID      *string                       `gorm:"type:varchar(128)"`
	ScheduledAt     time.Time                     `gorm:"type:timestamptz;not null;index"`
	DurationMinutes int                           `gorm:"not null;default:30"`
	Status          appointment.AppointmentStatus `gorm:"type:varchar(20);not null;default:'scheduled';index"`
}

// TableName specifies the table name for Appointment
func (Appointment) TableName() string {
	return "studio.appointments"
}

// EtoD converts database schema to domain appointment (Entity to Domain)
func (a *Appointment) EtoD() *appointment.Appointment {
	return &appointment.Appointment{
		ID:              a.ID,
		PublicID:        a.PublicID,
		CompanyID:       a.CompanyID,
		ConversationID:  a.ConversationID,
		ExternalID:      a.ExternalID,
		ScheduledAt:     a.ScheduledAt,
		DurationMinutes: a.DurationMinutes,
		Status:          a.Status,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}
}

// NewSchemaAppointment creates a database schema from a domain appointment
func NewSchemaAppointment(appt *appointment.Appointment) *Appointment {
	return &Appointment{
		BaseModel: BaseModel{
			ID:        appt.ID,
			CreatedAt: appt.CreatedAt,
			UpdatedAt: appt.UpdatedAt,
		},
		PublicID:        appt.PublicID,
		CompanyID:       appt.CompanyID,
		ConversationID:  appt.ConversationID,
		ExternalID:      appt.ExternalID,
		ScheduledAt:     appt.ScheduledAt,
		DurationMinutes: appt.DurationMinutes,
		Status:          appt.Status,
	}
}
