package partner

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jubilee-retail/backoffice/internal/domain/shared"
)

// BranchRepository defines the persistence interface for branches
type BranchRepository interface {
	Save(ctx context.Context, branch *Branch) error
	FindByID(ctx context.Context, id uuid.UUID) (*Branch, error)
	FindByCode(ctx context.Context, code string) (*Branch, error)
	List(ctx context.Context, filter shared.Filter) (shared.Paginated[*Branch], error)
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByCode(ctx context.Context, code string) (bool, error)
}

// AgentRepository defines the persistence interface for agents
type AgentRepository interface {
	Save(ctx context.Context, agent *Agent) error
	FindByID(ctx context.Context, id uuid.UUID) (*Agent, error)
	FindByCode(ctx context.Context, code string) (*Agent, error)
	List(ctx context.Context, filter shared.Filter) (shared.Paginated[*Agent], error)
	ListByBranch(ctx context.Context, branchID uuid.UUID, filter shared.Filter) (shared.Paginated[*Agent], error)
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByCode(ctx context.Context, code string) (bool, error)
	CountActive(ctx context.Context) (int64, error)
}

// ClientRepository defines the persistence interface for policyholders
type ClientRepository interface {
	Save(ctx context.Context, client *Client) error
	FindByID(ctx context.Context, id uuid.UUID) (*Client, error)
	FindByDocumentNo(ctx context.Context, documentNo string) (*Client, error)
	List(ctx context.Context, filter shared.Filter) (shared.Paginated[*Client], error)
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByDocumentNo(ctx context.Context, documentNo string) (bool, error)
	CountCreatedBetween(ctx context.Context, from, to time.Time) (int64, error)
}

// CityRepository defines the persistence interface for cities
type CityRepository interface {
	Save(ctx context.Context, city *City) error
	FindByID(ctx context.Context, id uuid.UUID) (*City, error)
	List(ctx context.Context, filter shared.Filter) (shared.Paginated[*City], error)
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByName(ctx context.Context, name string) (bool, error)
}

// CourierRepository defines the persistence interface for couriers
type CourierRepository interface {
	Save(ctx context.Context, courier *Courier) error
	FindByID(ctx context.Context, id uuid.UUID) (*Courier, error)
	List(ctx context.Context, filter shared.Filter) (shared.Paginated[*Courier], error)
	Delete(ctx context.Context, id uuid.UUID) error
	ExistsByServiceCode(ctx context.Context, code string) (bool, error)
}
