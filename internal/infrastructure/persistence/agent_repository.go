package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jubilee-retail/backoffice/internal/domain/partner"
	"github.com/jubilee-retail/backoffice/internal/domain/shared"
	"github.com/jubilee-retail/backoffice/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormAgentRepository implements partner.AgentRepository using GORM
type GormAgentRepository struct {
	db *gorm.DB
}

// NewGormAgentRepository creates a new GormAgentRepository
func NewGormAgentRepository(db *gorm.DB) *GormAgentRepository {
	return &GormAgentRepository{db: db}
}

// Save creates or updates an agent
func (r *GormAgentRepository) Save(ctx context.Context, agent *partner.Agent) error {
	model := models.AgentModelFromDomain(agent)
	return r.db.WithContext(ctx).Save(model).Error
}

// FindByID finds an agent by its ID
func (r *GormAgentRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Agent, error) {
	var model models.AgentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByCode finds an agent by its code
func (r *GormAgentRepository) FindByCode(ctx context.Context, code string) (*partner.Agent, error) {
	var model models.AgentModel
	if err := r.db.WithContext(ctx).
		Where("code = ?", strings.ToUpper(code)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List returns a page of agents matching the filter
func (r *GormAgentRepository) List(ctx context.Context, filter shared.Filter) (shared.Paginated[*partner.Agent], error) {
	return r.list(ctx, r.db.WithContext(ctx).Model(&models.AgentModel{}), filter)
}

// ListByBranch returns a page of agents attached to a branch
func (r *GormAgentRepository) ListByBranch(ctx context.Context, branchID uuid.UUID, filter shared.Filter) (shared.Paginated[*partner.Agent], error) {
	query := r.db.WithContext(ctx).
		Model(&models.AgentModel{}).
		Where("branch_id = ?", branchID)
	return r.list(ctx, query, filter)
}

func (r *GormAgentRepository) list(_ context.Context, query *gorm.DB, filter shared.Filter) (shared.Paginated[*partner.Agent], error) {
	query = applySearch(query, filter.Search, "code", "name", "email", "phone")
	query = applyActive(query, filter.IsActive)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[*partner.Agent]{}, err
	}

	var agentModels []models.AgentModel
	query = applySort(query, filter, AgentSortFields)
	query = applyPagination(query, filter)
	if err := query.Find(&agentModels).Error; err != nil {
		return shared.Paginated[*partner.Agent]{}, err
	}

	agents := make([]*partner.Agent, len(agentModels))
	for i := range agentModels {
		agents[i] = agentModels[i].ToDomain()
	}
	return shared.NewPaginated(agents, total, filter.Page, filter.PageSize), nil
}

// Delete deletes an agent
func (r *GormAgentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.AgentModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// ExistsByCode checks if an agent with the given code exists
func (r *GormAgentRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.AgentModel{}).
		Where("code = ?", strings.ToUpper(code)).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountActive counts agents currently able to sell
func (r *GormAgentRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.AgentModel{}).
		Where("is_active = ?", true).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Ensure GormAgentRepository implements partner.AgentRepository
var _ partner.AgentRepository = (*GormAgentRepository)(nil)
