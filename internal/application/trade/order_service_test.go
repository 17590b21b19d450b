package trade

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jubilee-retail/backoffice/internal/domain/catalog"
	"github.com/jubilee-retail/backoffice/internal/domain/partner"
	"github.com/jubilee-retail/backoffice/internal/domain/shared"
	"github.com/jubilee-retail/backoffice/internal/domain/trade"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// MockOrderRepository is a mock implementation of trade.OrderRepository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) Save(ctx context.Context, order *trade.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*trade.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByOrderNo(ctx context.Context, orderNo string) (*trade.Order, error) {
	args := m.Called(ctx, orderNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trade.Order), args.Error(1)
}

func (m *MockOrderRepository) List(ctx context.Context, filter trade.OrderFilter) (shared.Paginated[*trade.Order], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[*trade.Order]), args.Error(1)
}

func (m *MockOrderRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockOrderRepository) NextPolicySequence(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockOrderRepository) SummarizeByStatus(ctx context.Context, from, to time.Time) ([]trade.StatusSummary, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]trade.StatusSummary), args.Error(1)
}

func (m *MockOrderRepository) TopProducts(ctx context.Context, from, to time.Time, limit int) ([]trade.ProductSummary, error) {
	args := m.Called(ctx, from, to, limit)
	return args.Get(0).([]trade.ProductSummary), args.Error(1)
}

// MockClientRepository is a mock implementation of partner.ClientRepository
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) Save(ctx context.Context, client *partner.Client) error {
	args := m.Called(ctx, client)
	return args.Error(0)
}

func (m *MockClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Client), args.Error(1)
}

func (m *MockClientRepository) FindByDocumentNo(ctx context.Context, documentNo string) (*partner.Client, error) {
	args := m.Called(ctx, documentNo)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Client), args.Error(1)
}

func (m *MockClientRepository) List(ctx context.Context, filter shared.Filter) (shared.Paginated[*partner.Client], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[*partner.Client]), args.Error(1)
}

func (m *MockClientRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockClientRepository) ExistsByDocumentNo(ctx context.Context, documentNo string) (bool, error) {
	args := m.Called(ctx, documentNo)
	return args.Bool(0), args.Error(1)
}

func (m *MockClientRepository) CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).(int64), args.Error(1)
}

// MockAgentRepository is a mock implementation of partner.AgentRepository
type MockAgentRepository struct {
	mock.Mock
}

func (m *MockAgentRepository) Save(ctx context.Context, agent *partner.Agent) error {
	args := m.Called(ctx, agent)
	return args.Error(0)
}

func (m *MockAgentRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Agent, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Agent), args.Error(1)
}

func (m *MockAgentRepository) FindByCode(ctx context.Context, code string) (*partner.Agent, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Agent), args.Error(1)
}

func (m *MockAgentRepository) List(ctx context.Context, filter shared.Filter) (shared.Paginated[*partner.Agent], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[*partner.Agent]), args.Error(1)
}

func (m *MockAgentRepository) ListByBranch(ctx context.Context, branchID uuid.UUID, filter shared.Filter) (shared.Paginated[*partner.Agent], error) {
	args := m.Called(ctx, branchID, filter)
	return args.Get(0).(shared.Paginated[*partner.Agent]), args.Error(1)
}

func (m *MockAgentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockAgentRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

func (m *MockAgentRepository) CountActive(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

// MockPlanRepository is a mock implementation of catalog.PlanRepository
type MockPlanRepository struct {
	mock.Mock
}

func (m *MockPlanRepository) Save(ctx context.Context, plan *catalog.Plan) error {
	args := m.Called(ctx, plan)
	return args.Error(0)
}

func (m *MockPlanRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Plan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Plan), args.Error(1)
}

func (m *MockPlanRepository) List(ctx context.Context, filter shared.Filter) (shared.Paginated[*catalog.Plan], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[*catalog.Plan]), args.Error(1)
}

func (m *MockPlanRepository) ListByProduct(ctx context.Context, productID uuid.UUID, filter shared.Filter) (shared.Paginated[*catalog.Plan], error) {
	args := m.Called(ctx, productID, filter)
	return args.Get(0).(shared.Paginated[*catalog.Plan]), args.Error(1)
}

func (m *MockPlanRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockPlanRepository) ExistsByCode(ctx context.Context, productID uuid.UUID, code string) (bool, error) {
	args := m.Called(ctx, productID, code)
	return args.Bool(0), args.Error(1)
}

// MockCouponRepository is a mock implementation of catalog.CouponRepository
type MockCouponRepository struct {
	mock.Mock
}

func (m *MockCouponRepository) Save(ctx context.Context, coupon *catalog.Coupon) error {
	args := m.Called(ctx, coupon)
	return args.Error(0)
}

func (m *MockCouponRepository) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Coupon, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Coupon), args.Error(1)
}

func (m *MockCouponRepository) FindByCode(ctx context.Context, code string) (*catalog.Coupon, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Coupon), args.Error(1)
}

func (m *MockCouponRepository) List(ctx context.Context, filter shared.Filter) (shared.Paginated[*catalog.Coupon], error) {
	args := m.Called(ctx, filter)
	return args.Get(0).(shared.Paginated[*catalog.Coupon]), args.Error(1)
}

func (m *MockCouponRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockCouponRepository) ExistsByCode(ctx context.Context, code string) (bool, error) {
	args := m.Called(ctx, code)
	return args.Bool(0), args.Error(1)
}

// passthroughTx runs the function without a real transaction
type passthroughTx struct{}

func (passthroughTx) Execute(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type orderFixture struct {
	orderRepo  *MockOrderRepository
	clientRepo *MockClientRepository
	agentRepo  *MockAgentRepository
	planRepo   *MockPlanRepository
	couponRepo *MockCouponRepository
	service    *OrderService
	client     *partner.Client
	agent      *partner.Agent
	plan       *catalog.Plan
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()

	client, err := partner.NewClient("Ayesha Khan", "35202-1234567-1")
	require.NoError(t, err)
	branch, err := partner.NewBranch("LHR-01", "Lahore Main")
	require.NoError(t, err)
	agent, err := partner.NewAgent("AG-100", "Bilal Ahmed", branch.ID)
	require.NoError(t, err)
	plan, err := catalog.NewPlan(uuid.New(), "HLT-SILVER", "Health Silver",
		decimal.NewFromInt(12000), decimal.NewFromInt(500000), 12)
	require.NoError(t, err)

	f := &orderFixture{
		orderRepo:  new(MockOrderRepository),
		clientRepo: new(MockClientRepository),
		agentRepo:  new(MockAgentRepository),
		planRepo:   new(MockPlanRepository),
		couponRepo: new(MockCouponRepository),
		client:     client,
		agent:      agent,
		plan:       plan,
	}
	f.service = NewOrderService(f.orderRepo, f.clientRepo, f.agentRepo,
		f.planRepo, f.couponRepo, passthroughTx{}, zap.NewNop())
	return f
}

func (f *orderFixture) expectLookups(ctx context.Context) {
	f.clientRepo.On("FindByID", ctx, f.client.ID).Return(f.client, nil)
	f.agentRepo.On("FindByID", ctx, f.agent.ID).Return(f.agent, nil)
	f.planRepo.On("FindByID", ctx, f.plan.ID).Return(f.plan, nil)
}

func validCoupon(t *testing.T) *catalog.Coupon {
	t.Helper()
	coupon, err := catalog.NewCoupon("WELCOME10", catalog.DiscountPercent,
		decimal.NewFromInt(10), time.Now().Add(-time.Hour), time.Now().Add(24*time.Hour), 0)
	require.NoError(t, err)
	return coupon
}

func TestOrderService_Create_PremiumFromPlan(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	f.expectLookups(ctx)
	f.orderRepo.On("Save", ctx, mock.AnythingOfType("*trade.Order")).Return(nil)

	dto, err := f.service.Create(ctx, CreateOrderInput{
		ClientID: f.client.ID, PlanID: f.plan.ID, AgentID: f.agent.ID,
	}, uuid.New())

	require.NoError(t, err)
	assert.Equal(t, "pending", dto.Status)
	assert.True(t, dto.Premium.Equal(decimal.NewFromInt(12000)))
	assert.True(t, dto.Discount.IsZero())
	assert.True(t, dto.Total.Equal(decimal.NewFromInt(12000)))
	assert.Regexp(t, regexp.MustCompile(`^ORD-\d{8}-[0-9A-F]{8}$`), dto.OrderNo)
	assert.Empty(t, dto.PolicyNo)
}

func TestOrderService_Create_CouponDiscountsAndRedeems(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	f.expectLookups(ctx)
	coupon := validCoupon(t)
	f.couponRepo.On("FindByCode", ctx, "WELCOME10").Return(coupon, nil)
	f.couponRepo.On("Save", ctx, coupon).Return(nil)
	f.orderRepo.On("Save", ctx, mock.AnythingOfType("*trade.Order")).Return(nil)

	dto, err := f.service.Create(ctx, CreateOrderInput{
		ClientID: f.client.ID, PlanID: f.plan.ID, AgentID: f.agent.ID,
		CouponCode: "welcome10",
	}, uuid.New())

	require.NoError(t, err)
	assert.True(t, dto.Discount.Equal(decimal.NewFromInt(1200)))
	assert.True(t, dto.Total.Equal(decimal.NewFromInt(10800)))
	require.NotNil(t, dto.CouponID)
	assert.Equal(t, coupon.ID, *dto.CouponID)
	assert.Equal(t, 1, coupon.Redemptions)
}

func TestOrderService_Create_ExhaustedCouponRejected(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	f.expectLookups(ctx)
	coupon, err := catalog.NewCoupon("ONEUSE", catalog.DiscountFixed,
		decimal.NewFromInt(500), time.Now().Add(-time.Hour), time.Now().Add(time.Hour), 1)
	require.NoError(t, err)
	require.NoError(t, coupon.Redeem(time.Now()))
	f.couponRepo.On("FindByCode", ctx, "ONEUSE").Return(coupon, nil)

	_, err = f.service.Create(ctx, CreateOrderInput{
		ClientID: f.client.ID, PlanID: f.plan.ID, AgentID: f.agent.ID,
		CouponCode: "ONEUSE",
	}, uuid.New())

	assert.ErrorIs(t, err, shared.ErrCouponExhausted)
	f.orderRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestOrderService_Create_InactivePlanRejected(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	f.plan.Deactivate()
	f.expectLookups(ctx)

	_, err := f.service.Create(ctx, CreateOrderInput{
		ClientID: f.client.ID, PlanID: f.plan.ID, AgentID: f.agent.ID,
	}, uuid.New())

	assert.ErrorIs(t, err, shared.ErrEntityInactive)
}

func TestOrderService_Issue_AssignsPolicyNumber(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	order, err := trade.NewOrder(f.client.ID, f.plan.ID, f.agent.ID, uuid.New(),
		decimal.NewFromInt(12000), decimal.Zero)
	require.NoError(t, err)
	require.NoError(t, order.Approve())

	f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
	f.orderRepo.On("NextPolicySequence", ctx).Return(int64(42), nil)
	f.orderRepo.On("Save", ctx, order).Return(nil)

	dto, err := f.service.Issue(ctx, order.ID)

	require.NoError(t, err)
	assert.Equal(t, "issued", dto.Status)
	expected := "JR-" + time.Now().Format("2006") + "-000042"
	assert.Equal(t, expected, dto.PolicyNo)
}

func TestOrderService_Issue_PendingOrderRejectedWithoutSequence(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	order, err := trade.NewOrder(f.client.ID, f.plan.ID, f.agent.ID, uuid.New(),
		decimal.NewFromInt(12000), decimal.Zero)
	require.NoError(t, err)

	f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)

	_, err = f.service.Issue(ctx, order.ID)

	require.Error(t, err)
	f.orderRepo.AssertNotCalled(t, "NextPolicySequence", mock.Anything)
}

func TestOrderService_Cancel_RecordsReason(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	order, err := trade.NewOrder(f.client.ID, f.plan.ID, f.agent.ID, uuid.New(),
		decimal.NewFromInt(12000), decimal.Zero)
	require.NoError(t, err)

	f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
	f.orderRepo.On("Save", ctx, order).Return(nil)

	dto, err := f.service.Cancel(ctx, order.ID, "client withdrew")

	require.NoError(t, err)
	assert.Equal(t, "cancelled", dto.Status)
	assert.Equal(t, "client withdrew", dto.StatusReason)
	assert.NotNil(t, dto.CancelledAt)
}

func TestOrderService_Cancel_ReleasesCouponBeforeIssue(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	coupon, err := catalog.NewCoupon("ONEUSE", catalog.DiscountFixed,
		decimal.NewFromInt(500), time.Now().Add(-time.Hour), time.Now().Add(time.Hour), 1)
	require.NoError(t, err)
	require.NoError(t, coupon.Redeem(time.Now()))

	order, err := trade.NewOrder(f.client.ID, f.plan.ID, f.agent.ID, uuid.New(),
		decimal.NewFromInt(12000), decimal.NewFromInt(500))
	require.NoError(t, err)
	order.SetCoupon(coupon.ID)

	f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
	f.orderRepo.On("Save", ctx, order).Return(nil)
	f.couponRepo.On("FindByID", ctx, coupon.ID).Return(coupon, nil)
	f.couponRepo.On("Save", ctx, coupon).Return(nil)

	dto, err := f.service.Cancel(ctx, order.ID, "client withdrew")

	require.NoError(t, err)
	assert.Equal(t, "cancelled", dto.Status)
	assert.Equal(t, 0, coupon.Redemptions)
	assert.NoError(t, coupon.CanRedeem(time.Now()))
	f.couponRepo.AssertCalled(t, "Save", ctx, coupon)
}

func TestOrderService_Cancel_IssuedOrderKeepsRedemption(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)
	coupon := validCoupon(t)
	require.NoError(t, coupon.Redeem(time.Now()))

	order, err := trade.NewOrder(f.client.ID, f.plan.ID, f.agent.ID, uuid.New(),
		decimal.NewFromInt(12000), decimal.NewFromInt(1200))
	require.NoError(t, err)
	order.SetCoupon(coupon.ID)
	require.NoError(t, order.Approve())
	require.NoError(t, order.Issue("JR-2026-000001"))

	f.orderRepo.On("FindByID", ctx, order.ID).Return(order, nil)
	f.orderRepo.On("Save", ctx, order).Return(nil)

	dto, err := f.service.Cancel(ctx, order.ID, "policy rescinded")

	require.NoError(t, err)
	assert.Equal(t, "cancelled", dto.Status)
	assert.Equal(t, 1, coupon.Redemptions)
	f.couponRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	f.couponRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestOrderService_List_RejectsUnknownStatus(t *testing.T) {
	ctx := context.Background()
	f := newOrderFixture(t)

	_, err := f.service.List(ctx, ListOrdersInput{Status: "teleported"}, shared.DefaultFilter())

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATUS", domainErr.Code)
}
