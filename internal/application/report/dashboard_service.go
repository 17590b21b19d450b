package report

import (
	"context"
	"strings"
	"time"

	"github.com/jubilee-retail/backoffice/internal/domain/partner"
	"github.com/jubilee-retail/backoffice/internal/domain/shared"
	"github.com/jubilee-retail/backoffice/internal/domain/trade"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const dateLayout = "2006-01-02"

// DateRange is an inclusive reporting window. Both bounds are optional;
// the default window is the last 30 days.
type DateRange struct {
	From time.Time
	To   time.Time
}

// ParseDateRange reads "2006-01-02" bounds. The upper bound is extended
// to the end of its day so a same-day range covers the whole day.
func ParseDateRange(fromRaw, toRaw string) (DateRange, error) {
	now := time.Now()
	r := DateRange{From: now.AddDate(0, 0, -30), To: now}

	if s := strings.TrimSpace(fromRaw); s != "" {
		from, err := time.Parse(dateLayout, s)
		if err != nil {
			return DateRange{}, shared.NewDomainError("INVALID_DATE", "From date must be formatted as YYYY-MM-DD")
		}
		r.From = from
	}
	if s := strings.TrimSpace(toRaw); s != "" {
		to, err := time.Parse(dateLayout, s)
		if err != nil {
			return DateRange{}, shared.NewDomainError("INVALID_DATE", "To date must be formatted as YYYY-MM-DD")
		}
		r.To = to.Add(24*time.Hour - time.Nanosecond)
	}
	if r.To.Before(r.From) {
		return DateRange{}, shared.NewDomainError("INVALID_DATE_RANGE", "To date cannot be before the from date")
	}
	return r, nil
}

// StatusRow is one order-status aggregate in the dashboard payload
type StatusRow struct {
	Status  string          `json:"status"`
	Count   int64           `json:"count"`
	Premium decimal.Decimal `json:"premium"`
	Total   decimal.Decimal `json:"total"`
}

// ProductRow is one top-product aggregate in the dashboard payload
type ProductRow struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Orders      int64           `json:"orders"`
	Premium     decimal.Decimal `json:"premium"`
}

// Dashboard is the back-office landing page payload
type Dashboard struct {
	From         time.Time       `json:"from"`
	To           time.Time       `json:"to"`
	Statuses     []StatusRow     `json:"statuses"`
	TotalOrders  int64           `json:"total_orders"`
	TotalPremium decimal.Decimal `json:"total_premium"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TopProducts  []ProductRow    `json:"top_products"`
	NewClients   int64           `json:"new_clients"`
	ActiveAgents int64           `json:"active_agents"`
}

// DashboardService assembles the landing page aggregates
type DashboardService struct {
	orderRepo  trade.OrderRepository
	clientRepo partner.ClientRepository
	agentRepo  partner.AgentRepository
	logger     *zap.Logger
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(orderRepo trade.OrderRepository, clientRepo partner.ClientRepository, agentRepo partner.AgentRepository, logger *zap.Logger) *DashboardService {
	return &DashboardService{
		orderRepo:  orderRepo,
		clientRepo: clientRepo,
		agentRepo:  agentRepo,
		logger:     logger,
	}
}

// Build produces the dashboard for a date range. Every lifecycle status
// appears in the status breakdown, zero-filled when the range has no
// orders in that state. Revenue counts delivered and issued orders only.
func (s *DashboardService) Build(ctx context.Context, r DateRange) (Dashboard, error) {
	summaries, err := s.orderRepo.SummarizeByStatus(ctx, r.From, r.To)
	if err != nil {
		return Dashboard{}, err
	}
	byStatus := make(map[trade.OrderStatus]trade.StatusSummary, len(summaries))
	for _, row := range summaries {
		byStatus[row.Status] = row
	}

	dashboard := Dashboard{
		From:         r.From,
		To:           r.To,
		Statuses:     make([]StatusRow, 0, len(trade.AllOrderStatuses)),
		TotalPremium: decimal.Zero,
		TotalRevenue: decimal.Zero,
	}
	for _, status := range trade.AllOrderStatuses {
		row := byStatus[status]
		dashboard.Statuses = append(dashboard.Statuses, StatusRow{
			Status:  string(status),
			Count:   row.Count,
			Premium: row.Premium,
			Total:   row.Total,
		})
		if status != trade.OrderStatusCancelled {
			dashboard.TotalOrders += row.Count
			dashboard.TotalPremium = dashboard.TotalPremium.Add(row.Premium)
		}
		if status == trade.OrderStatusIssued || status == trade.OrderStatusDelivered {
			dashboard.TotalRevenue = dashboard.TotalRevenue.Add(row.Total)
		}
	}

	products, err := s.orderRepo.TopProducts(ctx, r.From, r.To, 5)
	if err != nil {
		return Dashboard{}, err
	}
	dashboard.TopProducts = make([]ProductRow, len(products))
	for i, p := range products {
		dashboard.TopProducts[i] = ProductRow{
			ProductID:   p.ProductID.String(),
			ProductName: p.ProductName,
			Orders:      p.Orders,
			Premium:     p.Premium,
		}
	}

	dashboard.NewClients, err = s.clientRepo.CountCreatedBetween(ctx, r.From, r.To)
	if err != nil {
		return Dashboard{}, err
	}
	dashboard.ActiveAgents, err = s.agentRepo.CountActive(ctx)
	if err != nil {
		return Dashboard{}, err
	}
	return dashboard, nil
}
