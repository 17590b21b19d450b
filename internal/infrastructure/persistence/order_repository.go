package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jubilee-retail/backoffice/internal/domain/shared"
	"github.com/jubilee-retail/backoffice/internal/domain/trade"
	"github.com/jubilee-retail/backoffice/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormOrderRepository implements trade.OrderRepository using GORM
type GormOrderRepository struct {
	db *gorm.DB
}

// NewGormOrderRepository creates a new GormOrderRepository
func NewGormOrderRepository(db *gorm.DB) *GormOrderRepository {
	return &GormOrderRepository{db: db}
}

// Save creates or updates an order
func (r *GormOrderRepository) Save(ctx context.Context, order *trade.Order) error {
	model := models.OrderModelFromDomain(order)
	return session(ctx, r.db).Save(model).Error
}

// FindByID finds an order by its ID
func (r *GormOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	var model models.OrderModel
	if err := session(ctx, r.db).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByOrderNo finds an order by its order number
func (r *GormOrderRepository) FindByOrderNo(ctx context.Context, orderNo string) (*trade.Order, error) {
	var model models.OrderModel
	if err := session(ctx, r.db).
		Where("order_no = ?", orderNo).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// List returns a page of orders matching the filter
func (r *GormOrderRepository) List(ctx context.Context, filter trade.OrderFilter) (shared.Paginated[*trade.Order], error) {
	query := session(ctx, r.db).Model(&models.OrderModel{})
	query = applySearch(query, filter.Search, "order_no", "policy_no", "tracking_no")
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.ClientID != nil {
		query = query.Where("client_id = ?", *filter.ClientID)
	}
	if filter.AgentID != nil {
		query = query.Where("agent_id = ?", *filter.AgentID)
	}
	if filter.From != nil {
		query = query.Where("created_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("created_at <= ?", *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return shared.Paginated[*trade.Order]{}, err
	}

	var orderModels []models.OrderModel
	query = applySort(query, filter.Filter, OrderSortFields)
	query = applyPagination(query, filter.Filter)
	if err := query.Find(&orderModels).Error; err != nil {
		return shared.Paginated[*trade.Order]{}, err
	}

	orders := make([]*trade.Order, len(orderModels))
	for i := range orderModels {
		orders[i] = orderModels[i].ToDomain()
	}
	return shared.NewPaginated(orders, total, filter.Page, filter.PageSize), nil
}

// Delete deletes an order
func (r *GormOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := session(ctx, r.db).Delete(&models.OrderModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// NextPolicySequence increments and returns the policy number counter.
// The single counter row is bumped inside a transaction; the UPDATE
// takes the row lock, so concurrent issuers serialize on it.
func (r *GormOrderRepository) NextPolicySequence(ctx context.Context) (int64, error) {
	var seq int64
	err := session(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.PolicySequenceModel{}).
			Where("id = ?", 1).
			UpdateColumn("next_value", gorm.Expr("next_value + 1"))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			if err := tx.Create(&models.PolicySequenceModel{ID: 1, NextValue: 2}).Error; err != nil {
				return err
			}
			seq = 1
			return nil
		}
		var row models.PolicySequenceModel
		if err := tx.First(&row, "id = ?", 1).Error; err != nil {
			return err
		}
		seq = row.NextValue - 1
		return nil
	})
	return seq, err
}

type statusSummaryRow struct {
	Status  trade.OrderStatus
	Count   int64
	Premium decimal.Decimal
	Total   decimal.Decimal
}

// SummarizeByStatus aggregates order counts and amounts per lifecycle
// status within the window.
func (r *GormOrderRepository) SummarizeByStatus(ctx context.Context, from, to time.Time) ([]trade.StatusSummary, error) {
	var rows []statusSummaryRow
	if err := session(ctx, r.db).
		Model(&models.OrderModel{}).
		Select(`status, COUNT(*) AS count,
			COALESCE(SUM(premium), 0) AS premium,
			COALESCE(SUM(total), 0) AS total`).
		Where("created_at BETWEEN ? AND ?", from, to).
		Group("status").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	summaries := make([]trade.StatusSummary, len(rows))
	for i, row := range rows {
		summaries[i] = trade.StatusSummary{
			Status:  row.Status,
			Count:   row.Count,
			Premium: row.Premium,
			Total:   row.Total,
		}
	}
	return summaries, nil
}

type productSummaryRow struct {
	ProductID   uuid.UUID
	ProductName string
	OrderCount  int64
	Premium     decimal.Decimal
}

// TopProducts aggregates non-cancelled order volume per product within
// the window, highest volume first.
func (r *GormOrderRepository) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]trade.ProductSummary, error) {
	if limit <= 0 {
		limit = 5
	}
	var rows []productSummaryRow
	if err := session(ctx, r.db).
		Table("orders").
		Select(`products.id AS product_id, products.name AS product_name,
			COUNT(*) AS order_count,
			COALESCE(SUM(orders.premium), 0) AS premium`).
		Joins("JOIN plans ON plans.id = orders.plan_id").
		Joins("JOIN products ON products.id = plans.product_id").
		Where("orders.created_at BETWEEN ? AND ?", from, to).
		Where("orders.status <> ?", trade.OrderStatusCancelled).
		Group("products.id, products.name").
		Order("order_count DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	summaries := make([]trade.ProductSummary, len(rows))
	for i, row := range rows {
		summaries[i] = trade.ProductSummary{
			ProductID:   row.ProductID,
			ProductName: row.ProductName,
			Orders:      row.OrderCount,
			Premium:     row.Premium,
		}
	}
	return summaries, nil
}

// Ensure GormOrderRepository implements trade.OrderRepository
var _ trade.OrderRepository = (*GormOrderRepository)(nil)
