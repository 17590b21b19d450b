package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/jubilee-retail/backoffice/internal/domain/partner"
	"github.com/jubilee-retail/backoffice/internal/domain/shared"
	"go.uber.org/zap"
)

// BranchService handles branch CRUD
type BranchService struct {
	branchRepo partner.BranchRepository
	cityRepo   partner.CityRepository
	logger     *zap.Logger
}

// NewBranchService creates a new branch service
func NewBranchService(branchRepo partner.BranchRepository, cityRepo partner.CityRepository, logger *zap.Logger) *BranchService {
	return &BranchService{branchRepo: branchRepo, cityRepo: cityRepo, logger: logger}
}

// Create creates a branch
func (s *BranchService) Create(ctx context.Context, input BranchInput) (BranchDTO, error) {
	branch, err := partner.NewBranch(input.Code, input.Name)
	if err != nil {
		return BranchDTO{}, err
	}

	if exists, err := s.branchRepo.ExistsByCode(ctx, branch.Code); err != nil {
		return BranchDTO{}, err
	} else if exists {
		return BranchDTO{}, shared.NewDomainError("CODE_TAKEN", "Branch code is already in use")
	}

	if err := s.applyDetails(ctx, branch, input); err != nil {
		return BranchDTO{}, err
	}
	if err := s.branchRepo.Save(ctx, branch); err != nil {
		return BranchDTO{}, err
	}
	s.logger.Info("Branch created", zap.String("code", branch.Code))
	return ToBranchDTO(branch), nil
}

// Get returns one branch
func (s *BranchService) Get(ctx context.Context, id uuid.UUID) (BranchDTO, error) {
	branch, err := s.branchRepo.FindByID(ctx, id)
	if err != nil {
		return BranchDTO{}, shared.ErrNotFound
	}
	return ToBranchDTO(branch), nil
}

// List returns a page of branches
func (s *BranchService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[BranchDTO], error) {
	page, err := s.branchRepo.List(ctx, filter)
	if err != nil {
		return shared.Paginated[BranchDTO]{}, err
	}
	dtos := make([]BranchDTO, len(page.Items))
	for i, b := range page.Items {
		dtos[i] = ToBranchDTO(b)
	}
	return shared.NewPaginated(dtos, page.Total, page.Page, page.PageSize), nil
}

// ListAll returns every branch, for dataset views and exports
func (s *BranchService) ListAll(ctx context.Context) ([]BranchDTO, error) {
	branches, err := shared.CollectAll(func(filter shared.Filter) (shared.Paginated[*partner.Branch], error) {
		return s.branchRepo.List(ctx, filter)
	})
	if err != nil {
		return nil, err
	}
	dtos := make([]BranchDTO, len(branches))
	for i, b := range branches {
		dtos[i] = ToBranchDTO(b)
	}
	return dtos, nil
}

// Update updates a branch's details. The code is immutable.
func (s *BranchService) Update(ctx context.Context, id uuid.UUID, input BranchInput) (BranchDTO, error) {
	branch, err := s.branchRepo.FindByID(ctx, id)
	if err != nil {
		return BranchDTO{}, shared.ErrNotFound
	}
	if err := branch.Rename(input.Name); err != nil {
		return BranchDTO{}, err
	}
	if err := s.applyDetails(ctx, branch, input); err != nil {
		return BranchDTO{}, err
	}
	if err := s.branchRepo.Save(ctx, branch); err != nil {
		return BranchDTO{}, err
	}
	return ToBranchDTO(branch), nil
}

// SetActive activates or deactivates a branch
func (s *BranchService) SetActive(ctx context.Context, id uuid.UUID, active bool) (BranchDTO, error) {
	branch, err := s.branchRepo.FindByID(ctx, id)
	if err != nil {
		return BranchDTO{}, shared.ErrNotFound
	}
	if active {
		branch.Activate()
	} else {
		branch.Deactivate()
	}
	if err := s.branchRepo.Save(ctx, branch); err != nil {
		return BranchDTO{}, err
	}
	return ToBranchDTO(branch), nil
}

// Delete removes a branch
func (s *BranchService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.branchRepo.FindByID(ctx, id); err != nil {
		return shared.ErrNotFound
	}
	return s.branchRepo.Delete(ctx, id)
}

func (s *BranchService) applyDetails(ctx context.Context, branch *partner.Branch, input BranchInput) error {
	if input.CityID != nil {
		city, err := s.cityRepo.FindByID(ctx, *input.CityID)
		if err != nil {
			return shared.NewDomainError("CITY_NOT_FOUND", "City does not exist")
		}
		if !city.IsActive {
			return shared.ErrEntityInactive
		}
	}
	branch.SetCity(input.CityID)
	if err := branch.SetAddress(input.Address); err != nil {
		return err
	}
	return branch.SetContact(input.Phone, input.Email)
}
