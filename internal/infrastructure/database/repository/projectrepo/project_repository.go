package projectrepo

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"studio-server/internal/domain/conversation"
	"studio-server/internal/infrastructure/database/dbschema"
	"studio-server/internal/utils/platformerrors"
)

type ProjectGormRepository struct {
	db *gorm.DB
}

var _ conversation.ConversationRepository = (*ProjectGormRepository)(nil)

func NewProjectGormRepository(db *gorm.DB) conversation.ConversationRepository {
	return &ProjectGormRepository{db: db}
}

// Create implements conversation.ConversationRepository. Duplicate keys map
// to a conflict so the router can recover from a lost creation race.
func (repo *ProjectGormRepository) Create(ctx context.Context, conv *conversation.Conversation) error {
	dbProject := dbschema.NewSchemaProject(conv)
	if err := repo.db.WithContext(ctx).Create(dbProject).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return platformerrors.NewError(ctx, platformerrors.LayerRepository, platformerrors.ErrorTypeConflict,
				"conversation already exists", err, "4f6a8c0e-2b5d-4971-8d3f-5a7c9e1b3d60")
		}
		return platformerrors.AsStorageError(ctx, err, "failed to create conversation")
	}
	conv.ID = dbProject.ID
	conv.CreatedAt = dbProject.CreatedAt
	conv.UpdatedAt = dbProject.UpdatedAt
	return nil
}

// FindByFilter implements conversation.ConversationRepository.
func (repo *ProjectGormRepository) FindByFilter(ctx context.Context, filter conversation.ConversationFilter) ([]*conversation.Conversation, error) {
	query := repo.db.WithContext(ctx).Model(&dbschema.Project{})
	if filter.ID != nil {
		query = query.Where("id = ?", *filter.ID)
	}
	if filter.PublicID != nil {
		query = query.Where("public_id = ?", *filter.PublicID)
	}
	if filter.CompanyID != nil {
		query = query.Where("company_id = ?", *filter.CompanyID)
	}
	if filter.Status != nil {
		query = query.Where("status = ?", *filter.Status)
	}

	var rows []dbschema.Project
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, platformerrors.AsStorageError(ctx, err, "failed to list conversations")
	}
	result := make([]*conversation.Conversation, len(rows))
	for i, row := range rows {
		result[i] = row.EtoD()
	}
	return result, nil
}

// FindByPublicID implements conversation.ConversationRepository.
func (repo *ProjectGormRepository) FindByPublicID(ctx context.Context, publicID string) (*conversation.Conversation, error) {
	var row dbschema.Project
	err := repo.db.WithContext(ctx).Where("public_id = ?", publicID).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, platformerrors.AsStorageError(ctx, err, "failed to find conversation by public id")
	}
	return row.EtoD(), nil
}

// FindByAccessToken implements conversation.ConversationRepository.
func (repo *ProjectGormRepository) FindByAccessToken(ctx context.Context, accessToken string) (*conversation.Conversation, error) {
	var row dbschema.Project
	err := repo.db.WithContext(ctx).Where("access_token = ?", accessToken).First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, platformerrors.AsStorageError(ctx, err, "failed to find conversation by token")
	}
	return row.EtoD(), nil
}

// FindLatestActive implements conversation.ConversationRepository.
func (repo *ProjectGormRepository) FindLatestActive(ctx context.Context, companyID uint) (*conversation.Conversation, error) {
	var row dbschema.Project
	err := repo.db.WithContext(ctx).
		Where("company_id = ? AND status = ?", companyID, conversation.ConversationStatusActive).
		Order("created_at DESC").
		First(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, platformerrors.AsStorageError(ctx, err, "failed to find latest active conversation")
	}
	return row.EtoD(), nil
}

// Update implements conversation.ConversationRepository. The access token
// column is deliberately excluded; tokens are immutable once issued.
func (repo *ProjectGormRepository) Update(ctx context.Context, conv *conversation.Conversation) error {
	err := repo.db.WithContext(ctx).
		Model(&dbschema.Project{}).
		Where("id = ?", conv.ID).
		Updates(map[string]any{
			"title":  conv.Title,
			"status": conv.Status,
		}).Error
	if err != nil {
		return platformerrors.AsStorageError(ctx, err, "failed to update conversation")
	}
	return nil
}
