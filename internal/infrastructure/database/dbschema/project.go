package dbschema

import (
	"studio-server/internal/domain/conversation"
	"studio-server/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Project{})
}

// Project represents the database schema for conversations. The access
// token column is written once at creation and never updated.
type Project struct {
	BaseModel
	PublicID    string                          `gorm:"type:varchar(64);uniqueIndex;not null"`
	CompanyID   uint                            `gorm:"index:idx_projects_company_status;not null"`
	Company     Company                         `gorm:"foreignKey:CompanyID"`
	AccessToken string                          `gorm:"type:varchar(32);uniqueIndex;not null"`
	Title       string                          `gorm:"type:varchar(256);not null"`
	Status      conversation.ConversationStatus `gorm:"type:varchar(20);index:idx_projects_company_status;not null;default:'active'"`

	Messages []Message `gorm:"foreignKey:ConversationID"`
}

// TableName specifies the table name for Project
func (Project) TableName() string {
	return "studio.projects"
}

// EtoD converts database schema to domain conversation (Entity to Domain)
func (p *Project) EtoD() *conversation.Conversation {
	return &conversation.Conversation{
		ID:          p.ID,
		PublicID:    p.PublicID,
		CompanyID:   p.CompanyID,
		AccessToken: p.AccessToken,
		Title:       p.Title,
		Status:      p.Status,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

// NewSchemaProject creates a database schema from a domain conversation
func NewSchemaProject(conv *conversation.Conversation) *Project {
	return &Project{
		BaseModel: BaseModel{
			ID:        conv.ID,
			CreatedAt: conv.CreatedAt,
			UpdatedAt: conv.UpdatedAt,
		},
		PublicID:    conv.PublicID,
		CompanyID:   conv.CompanyID,
		AccessToken: conv.AccessToken,
		Title:       conv.Title,
		Status:      conv.Status,
	}
}
