package companyrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"studio-server/internal/domain/identity"
	"studio-server/internal/infrastructure/database/dbschema"
	"studio-server/internal/utils/platformerrors"
)

type CompanyGormRepository struct {
	db *gorm.DB
}

var _ identity.IdentityRepository = (*CompanyGormRepository)(nil)

func NewCompanyGormRepository(db *gorm.DB) identity.IdentityRepository {
	return &CompanyGormRepository{db: db}
}

// Create implements identity.IdentityRepository.
func (repo *CompanyGormRepository) Create(ctx context.Context, ident *identity.Identity) error {
	dbCompany := dbschema.NewSchemaCompany(ident)
	if err := repo.db.WithContext(ctx).Create(dbCompany).Error; err != nil {
		return platformerrors.AsStorageError(ctx, err, "failed to create company")
	}
	ident.ID = dbCompany.ID
	ident.CreatedAt = dbCompany.CreatedAt
	ident.UpdatedAt = dbCompany.UpdatedAt
	return nil
}

// FindAll implements identity.IdentityRepository. The attribution engine
// scans the full identity set, which stays small for a single agency.
func (repo *CompanyGormRepository) FindAll(ctx context.Context) ([]*identity.Identity, error) {
	var rows []dbschema.Company
	if err := repo.db.WithContext(ctx).Order("id ASC").Find(&rows).Error; err != nil {
		return nil, platformerrors.AsStorageError(ctx, err, "failed to list companies")
	}
	result := make([]*identity.Identity, len(rows))
	for i, row := range rows {
		result[i] = row.EtoD()
	}
	return result, nil
}

// FindByFilter implements identity.IdentityRepository.
func (repo *CompanyGormRepository) FindByFilter(ctx context.Context, filter identity.IdentityFilter) ([]*identity.Identity, error) {
	query := repo.db.WithContext(ctx).Model(&dbschema.Company{})
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.PublicID != nil {
		query = query.Where("public_id = ?", *filter.PublicID)
	}
	if filter.Email != nil {
		query = query.Where("LOWER(email) = LOWER(?)", *filter.Email)
	}

	var rows []dbschema.Company
	if err := query.Order("id ASC").Find(&rows).Error; err != nil {
		return nil, platformerrors.AsStorageError(ctx, err, "failed to filter companies")
	}
	result := make([]*identity.Identity, len(rows))
	for i, row := range rows {
		result[i] = row.EtoD()
	}
	return result, nil
}

// FindByID implements identity.IdentityRepository.
func (repo *CompanyGormRepository) FindByID(ctx context.Context, id uint) (*identity.Identity, error) {
	var row dbschema.Company
	err := repo.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, platformerrors.AsStorageError(ctx, err, "failed to find company")
	}
	return row.EtoD(), nil
}

// FindByPublicID implements identity.IdentityRepository.
func (repo *CompanyGormRepository) FindByPublicID(ctx context.Context, publicID string) (*identity.Identity, error) {
	var row dbschema.Company
	err := repo.db.WithContext(ctx).Where("public_id = ?", publicID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, platformerrors.AsStorageError(ctx, err, "failed to find company by public id")
	}
	return row.EtoD(), nil
}

// Update implements identity.IdentityRepository.
func (repo *CompanyGormRepository) Update(ctx context.Context, ident *identity.Identity) error {
	dbCompany := dbschema.NewSchemaCompany(ident)
	if err := repo.db.WithContext(ctx).Save(dbCompany).Error; err != nil {
		return platformerrors.AsStorageError(ctx, err, "failed to update company")
	}
	ident.UpdatedAt = dbCompany.UpdatedAt
	return nil
}
