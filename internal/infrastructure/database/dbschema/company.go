package dbschema

import (
	"strings"

	"studio-server/internal/domain/identity"
	"studio-server/internal/infrastructure/database"
)

func init() {
	database.RegisterSchemaForAutoMigrate(Company{})
}

// ===============================================
// Company Schema
// ===============================================

// Company represents the database schema for client identities. Rows
// imported from the legacy dashboard stored their display name in
// business_name; EtoD folds both shapes into the one domain Identity so the
// core never sees the legacy variant.
type Company struct {
	BaseModel
	PublicID     string          `gorm:"type:varchar(64);uniqueIndex;not null"`
	Name         string          `gorm:"type:varchar(255);not null"`
	BusinessName *string         `gorm:"type:varchar(255)"` // legacy rows only
	Email        *string         `gorm:"type:varchar(320);index"`
	Phone        *string         `gorm:"type:varchar(32)"`
	Tags         JSONStringSlice `gorm:"type:jsonb"`
	Source       string          `gorm:"type:varchar(20);not null;default:'form'"`
}

// TableName specifies the table name for Company
func (Company) TableName() string {
	return "studio.companies"
}

// ===============================================
// Conversion Methods
// ===============================================

// EtoD converts database schema to domain identity (Entity to Domain)
func (c *Company) EtoD() *identity.Identity {
	name := c.Name
	if strings.TrimSpace(name) == "" && c.BusinessName != nil {
		name = *c.BusinessName
	}
	return &identity.Identity{
		ID:        c.ID,
		PublicID:  c.PublicID,
		Name:      name,
		Email:     c.Email,
		Phone:     c.Phone,
		Tags:      c.Tags,
		Source:    identity.Source(c.Source),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}
}

// NewSchemaCompany creates a database schema from a domain identity
func NewSchemaCompany(ident *identity.Identity) *Company {
	return &Company{
		BaseModel: BaseModel{
			ID:        ident.ID,
			CreatedAt: ident.CreatedAt,
			UpdatedAt: ident.UpdatedAt,
		},
		PublicID: ident.PublicID,
		Name:     ident.Name,
		Email:    ident.Email,
		Phone:    ident.Phone,
		Tags:     JSONStringSlice(ident.Tags),
		Source:   string(ident.Source),
	}
}
