package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jubilee-retail/backoffice/internal/domain/partner"
	"github.com/jubilee-retail/backoffice/internal/domain/shared"
	"github.com/jubilee-retail/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormClientRepository implements partner.ClientRepository using GORM
type GormClientRepository struct {
	db *gorm.DB
}

// NewGormClientRepository creates a new GormClientRepository
func NewGormClientRepository(db *gorm.DB) *GormClientRepository {
	return &GormClientRepository{db: db}
}

// Save creates or updates a client
func (r *GormClientRepository) Save(ctx context.Context, client *partner.Client) error {
	model := models.ClientModelFromDomain(client)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByID finds a client by its ID
func (r *GormClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Client, error) {
	var model models.ClientModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByDocumentNo finds a client by document number
func (r *GormClientRepository) FindByDocumentNo(ctx context.Context, documentNo string) (*partner.Client, error) {
	var model models.ClientModel
	if err := r.db.WithContext(ctx).
		Where("document_no = ?", documentNo).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List returns a page of clients matching the filter
func (r *GormClientRepository) List(ctx context.Context, filter shared.Filter) (shared.Paginated[*partner.Client], error) {
	query := r.db.WithContext(ctx).Model(&models.ClientModel{})
	query = applySearch(query, filter.Search, "name", "document_no", "phone", "email")
	query = applyActive(query, filter.IsActive)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[*partner.Client]{}, err
	}

	var clientModels []models.ClientModel
	query = applySort(query, filter, ClientSortFields)
	query = applyPagination(query, filter)
	if err := query.Find(&clientModels).Error; err != nil {
		return shared.Paginated[*partner.Client]{}, err
	}

	clients := make([]*partner.Client, len(clientModels))
	for i := range clientModels {
		clients[i] = clientModels[i].ToDomain()
	}
	return shared.NewPaginated(clients, total, filter.Page, filter.PageSize), nil
}

// Delete deletes a client
func (r *GormClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ClientModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExistsByDocumentNo checks if a client with the given document number exists
func (r *GormClientRepository) ExistsByDocumentNo(ctx context.Context, documentNo string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ClientModel{}).
		Where("document_no = ?", documentNo).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountCreatedBetween counts clients registered inside the window
func (r *GormClientRepository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ClientModel{}).
		Where("created_at BETWEEN ? AND ?", from, to).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormClientRepository implements partner.ClientRepository
var _ partner.ClientRepository = (*GormClientRepository)(nil)
