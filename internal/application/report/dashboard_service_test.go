package report

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jubilee-retail/backoffice/internal/domain/partner"
	"github.com/jubilee-retail/backoffice/internal/domain/shared"
	"github.com/jubilee-retail/backoffice/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubOrderRepository struct {
	mock.Mock
}

func (m *stubOrderRepository) Save(ctx context.Context, order *trade.Order) error {
	return m.Called(ctx, order).Error(0)
}

func (m *stubOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Order), args.Error(1)
}

func (m *stubOrderRepository) FindByOrderNo(ctx context.Context, orderNo string) (*trade.Order, error) {
	args := m.Called(ctx, orderNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Order), args.Error(1)
}

func (m *stubOrderRepository) List(ctx context.Context, filter trade.OrderFilter) (shared.Paginated[*trade.Order], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[*trade.Order]), args.Error(1)
}

func (m *stubOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *stubOrderRepository) NextPolicySequence(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *stubOrderRepository) SummarizeByStatus(ctx context.Context, from, to time.Time) ([]trade.StatusSummary, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]trade.StatusSummary), args.Error(1)
}

func (m *stubOrderRepository) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]trade.ProductSummary, error) {
	args := m.Called(ctx, from, to, limit)
	return args.Get(0).([]trade.ProductSummary), args.Error(1)
}

type stubClientRepository struct {
	mock.Mock
}

func (m *stubClientRepository) Save(ctx context.Context, client *partner.Client) error {
	return m.Called(ctx, client).Error(0)
}

func (m *stubClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Client), args.Error(1)
}

func (m *stubClientRepository) FindByDocumentNo(ctx context.Context, documentNo string) (*partner.Client, error) {
	args := m.Called(ctx, documentNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Client), args.Error(1)
}

func (m *stubClientRepository) List(ctx context.Context, filter shared.Filter) (shared.Paginated[*partner.Client], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[*partner.Client]), args.Error(1)
}

func (m *stubClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *stubClientRepository) ExistsByDocumentNo(ctx context.Context, documentNo string) (bool, error) {
	args := m.Called(ctx, documentNo)
	return args.Bool(0), args.Error(1)
}

func (m *stubClientRepository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(int64), args.Error(1)
}

type stubAgentRepository struct {
	mock.Mock
}

func (m *stubAgentRepository) Save(ctx context.Context, agent *partner.Agent) error {
	return m.Called(ctx, agent).Error(0)
}

func (m *stubAgentRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Agent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Agent), args.Error(1)
}

func (m *stubAgentRepository) FindByCode(ctx context.Context, code string) (*partner.Agent, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Agent), args.Error(1)
}

func (m *stubAgentRepository) List(ctx context.Context, filter shared.Filter) (shared.Paginated[*partner.Agent], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[*partner.Agent]), args.Error(1)
}

func (m *stubAgentRepository) ListByBranch(ctx context.Context, branchID uuid.UUID, filter shared.Filter) (shared.Paginated[*partner.Agent], error) {
	args := m.Called(ctx, branchID, filter)
	return args.Get(0).(shared.Paginated[*partner.Agent]), args.Error(1)
}

func (m *stubAgentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	return m.Called(ctx, id).Error(0)
}

func (m *stubAgentRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *stubAgentRepository) CountActive(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func TestParseDateRange_DefaultsToLastThirtyDays(t *testing.T) {
	r, err := ParseDateRange("", "")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().AddDate(0, 0, -30), r.From, time.Minute)
	assert.WithinDuration(t, time.Now(), r.To, time.Minute)
}

func TestParseDateRange_UpperBoundCoversWholeDay(t *testing.T) {
	r, err := ParseDateRange("2026-08-01", "2026-08-01")
	require.NoError(t, err)
	assert.Equal(t, 2026, r.To.Year())
	assert.Equal(t, 23, r.To.Hour())
	assert.True(t, r.To.After(r.From))
}

func TestParseDateRange_RejectsBadInput(t *testing.T) {
	_, err := ParseDateRange("01/08/2026", "")
	require.Error(t, err)

	_, err = ParseDateRange("2026-08-10", "2026-08-01")
	require.Error(t, err)
}

func TestDashboardService_Build_ZeroFillsStatuses(t *testing.T) {
	ctx := context.Background()
	orderRepo := new(stubOrderRepository)
	clientRepo := new(stubClientRepository)
	agentRepo := new(stubAgentRepository)
	service := NewDashboardService(orderRepo, clientRepo, agentRepo, zap.NewNop())

	r, err := ParseDateRange("2026-08-01", "2026-08-28")
	require.NoError(t, err)

	orderRepo.On("SummarizeByStatus", ctx, r.From, r.To).Return([]trade.StatusSummary{
		{Status: trade.OrderStatusPending, Count: 3,
			Premium: decimal.NewFromInt(36000), Total: decimal.NewFromInt(36000)},
		{Status: trade.OrderStatusIssued, Count: 2,
			Premium: decimal.NewFromInt(24000), Total: decimal.NewFromInt(21600)},
		{Status: trade.OrderStatusCancelled, Count: 1,
			Premium: decimal.NewFromInt(12000), Total: decimal.NewFromInt(12000)},
	}, nil)
	orderRepo.On("TopProducts", ctx, r.From, r.To, 5).Return([]trade.ProductSummary{
		{ProductID: uuid.New(), ProductName: "Health Shield", Orders: 4,
			Premium: decimal.NewFromInt(48000)},
	}, nil)
	clientRepo.On("CountCreatedBetween", ctx, r.From, r.To).Return(int64(7), nil)
	agentRepo.On("CountActive", ctx).Return(int64(12), nil)

	dashboard, err := service.Build(ctx, r)
	require.NoError(t, err)

	require.Len(t, dashboard.Statuses, len(trade.AllOrderStatuses))
	byStatus := make(map[string]StatusRow)
	for _, row := range dashboard.Statuses {
		byStatus[row.Status] = row
	}
	assert.Equal(t, int64(3), byStatus["pending"].Count)
	assert.Equal(t, int64(0), byStatus["approved"].Count)
	assert.Equal(t, int64(0), byStatus["delivered"].Count)

	// Cancelled orders count toward neither volume nor premium
	assert.Equal(t, int64(5), dashboard.TotalOrders)
	assert.True(t, dashboard.TotalPremium.Equal(decimal.NewFromInt(60000)))
	assert.True(t, dashboard.TotalRevenue.Equal(decimal.NewFromInt(21600)))

	assert.Equal(t, int64(7), dashboard.NewClients)
	assert.Equal(t, int64(12), dashboard.ActiveAgents)
	require.Len(t, dashboard.TopProducts, 1)
	assert.Equal(t, "Health Shield", dashboard.TopProducts[0].ProductName)
}
