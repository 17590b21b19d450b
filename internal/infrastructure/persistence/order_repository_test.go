package persistence

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jubilee-retail/backoffice/internal/domain/catalog"
	"github.com/jubilee-retail/backoffice/internal/domain/shared"
	"github.com/jubilee-retail/backoffice/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestOrder(t *testing.T, premium int64) *trade.Order {
	t.Helper()
	order, err := trade.NewOrder(uuid.New(), uuid.New(), uuid.New(), uuid.New(),
		decimal.NewFromInt(premium), decimal.Zero)
	require.NoError(t, err)
	return order
}

func TestGormOrderRepository_SaveAndFind(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	order := newTestOrder(t, 12000)
	require.NoError(t, repo.Save(ctx, order))

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, order.OrderNo, found.OrderNo)
	assert.Equal(t, trade.OrderStatusPending, found.Status)
	assert.True(t, found.Premium.Equal(decimal.NewFromInt(12000)))

	byNo, err := repo.FindByOrderNo(ctx, order.OrderNo)
	require.NoError(t, err)
	assert.Equal(t, order.ID, byNo.ID)

	_, err = repo.FindByID(ctx, uuid.New())
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestGormOrderRepository_SavePersistsLifecycle(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	order := newTestOrder(t, 9000)
	require.NoError(t, repo.Save(ctx, order))

	require.NoError(t, order.Approve())
	require.NoError(t, order.Issue("JR-2026-000007"))
	require.NoError(t, repo.Save(ctx, order))

	found, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, trade.OrderStatusIssued, found.Status)
	assert.Equal(t, "JR-2026-000007", found.PolicyNo)
	assert.NotNil(t, found.ApprovedAt)
	assert.NotNil(t, found.IssuedAt)
}

func TestGormOrderRepository_ListFilters(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	clientID := uuid.New()
	pending, err := trade.NewOrder(clientID, uuid.New(), uuid.New(), uuid.New(),
		decimal.NewFromInt(5000), decimal.Zero)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, pending))

	approved := newTestOrder(t, 8000)
	require.NoError(t, approved.Approve())
	require.NoError(t, repo.Save(ctx, approved))

	byStatus, err := repo.List(ctx, trade.OrderFilter{
		Filter: shared.DefaultFilter(),
		Status: trade.OrderStatusApproved,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), byStatus.Total)
	assert.Equal(t, approved.ID, byStatus.Items[0].ID)

	byClient, err := repo.List(ctx, trade.OrderFilter{
		Filter:   shared.DefaultFilter(),
		ClientID: &clientID,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), byClient.Total)
	assert.Equal(t, pending.ID, byClient.Items[0].ID)

	all, err := repo.List(ctx, trade.OrderFilter{Filter: shared.DefaultFilter()})
	require.NoError(t, err)
	assert.Equal(t, int64(2), all.Total)
}

func TestGormOrderRepository_NextPolicySequence(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	first, err := repo.NextPolicySequence(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), first)

	second, err := repo.NextPolicySequence(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(2), second)

	third, err := repo.NextPolicySequence(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), third)
}

func TestGormOrderRepository_SummarizeByStatus(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Save(ctx, newTestOrder(t, 1000)))
	}
	cancelled := newTestOrder(t, 4000)
	require.NoError(t, cancelled.Cancel("test"))
	require.NoError(t, repo.Save(ctx, cancelled))

	from := time.Now().Add(-time.Hour)
	to := time.Now().Add(time.Hour)
	summaries, err := repo.SummarizeByStatus(ctx, from, to)
	require.NoError(t, err)

	byStatus := make(map[trade.OrderStatus]trade.StatusSummary)
	for _, s := range summaries {
		byStatus[s.Status] = s
	}
	assert.Equal(t, int64(3), byStatus[trade.OrderStatusPending].Count)
	assert.True(t, byStatus[trade.OrderStatusPending].Premium.Equal(decimal.NewFromInt(3000)))
	assert.Equal(t, int64(1), byStatus[trade.OrderStatusCancelled].Count)

	// Outside the window nothing aggregates
	empty, err := repo.SummarizeByStatus(ctx, from.Add(-48*time.Hour), from.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestGormOrderRepository_TopProducts(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	productRepo := NewGormProductRepository(db)
	planRepo := NewGormPlanRepository(db)
	ctx := context.Background()

	health, err := catalog.NewProduct("HLT", "Health Shield", catalog.CategoryHealth)
	require.NoError(t, err)
	require.NoError(t, productRepo.Save(ctx, health))
	motor, err := catalog.NewProduct("MTR", "Motor Secure", catalog.CategoryMotor)
	require.NoError(t, err)
	require.NoError(t, productRepo.Save(ctx, motor))

	healthPlan, err := catalog.NewPlan(health.ID, "HLT-S", "Silver",
		decimal.NewFromInt(12000), decimal.NewFromInt(500000), 12)
	require.NoError(t, err)
	require.NoError(t, planRepo.Save(ctx, healthPlan))
	motorPlan, err := catalog.NewPlan(motor.ID, "MTR-B", "Basic",
		decimal.NewFromInt(20000), decimal.NewFromInt(900000), 12)
	require.NoError(t, err)
	require.NoError(t, planRepo.Save(ctx, motorPlan))

	saveOrder := func(planID uuid.UUID, cancelledOrder bool) {
		order, err := trade.NewOrder(uuid.New(), planID, uuid.New(), uuid.New(),
			decimal.NewFromInt(1000), decimal.Zero)
		require.NoError(t, err)
		if cancelledOrder {
			require.NoError(t, order.Cancel("test"))
		}
		require.NoError(t, repo.Save(ctx, order))
	}
	saveOrder(healthPlan.ID, false)
	saveOrder(healthPlan.ID, false)
	saveOrder(motorPlan.ID, false)
	saveOrder(motorPlan.ID, true) // cancelled orders are excluded

	from := time.Now().Add(-time.Hour)
	to := time.Now().Add(time.Hour)
	top, err := repo.TopProducts(ctx, from, to, 5)
	require.NoError(t, err)

	require.Len(t, top, 2)
	assert.Equal(t, "Health Shield", top[0].ProductName)
	assert.Equal(t, int64(2), top[0].Orders)
	assert.Equal(t, "Motor Secure", top[1].ProductName)
	assert.Equal(t, int64(1), top[1].Orders)
}

func TestGormOrderRepository_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewGormOrderRepository(db)
	ctx := context.Background()

	order := newTestOrder(t, 1500)
	require.NoError(t, repo.Save(ctx, order))
	require.NoError(t, repo.Delete(ctx, order.ID))

	_, err := repo.FindByID(ctx, order.ID)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, order.ID), shared.ErrNotFound)
}
