package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/jubilee-retail/backoffice/internal/domain/catalog"
	"github.com/jubilee-retail/backoffice/internal/domain/shared"
	"go.uber.org/zap"
)

// ProductService handles products and their plans
type ProductService struct {
	productRepo catalog.ProductRepository
	planRepo    catalog.PlanRepository
	logger      *zap.Logger
}

// NewProductService creates a new product service
func NewProductService(productRepo catalog.ProductRepository, planRepo catalog.PlanRepository, logger *zap.Logger) *ProductService {
	return &ProductService{productRepo: productRepo, planRepo: planRepo, logger: logger}
}

// CreateProduct creates a product
func (s *ProductService) CreateProduct(ctx context.Context, input ProductInput) (ProductDTO, error) {
	category, err := catalog.ParseProductCategory(input.Category)
	if err != nil {
		return ProductDTO{}, err
	}
	product, err := catalog.NewProduct(input.Code, input.Name, category)
	if err != nil {
		return ProductDTO{}, err
	}
	if exists, err := s.productRepo.ExistsByCode(ctx, product.Code); err != nil {
		return ProductDTO{}, err
	} else if exists {
		return ProductDTO{}, shared.NewDomainError("CODE_TAKEN", "Product code is already in use")
	}
	if err := product.SetDescription(input.Description); err != nil {
		return ProductDTO{}, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return ProductDTO{}, err
	}
	s.logger.Info("Product created", zap.String("code", product.Code))
	return ToProductDTO(product), nil
}

// GetProduct returns one product
func (s *ProductService) GetProduct(ctx context.Context, id uuid.UUID) (ProductDTO, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return ProductDTO{}, shared.ErrNotFound
	}
	return ToProductDTO(product), nil
}

// ListProducts returns a page of products
func (s *ProductService) ListProducts(ctx context.Context, filter shared.Filter) (shared.Paginated[ProductDTO], error) {
	page, err := s.productRepo.List(ctx, filter)
	if err != nil {
		return shared.Paginated[ProductDTO]{}, err
	}
	dtos := make([]ProductDTO, len(page.Items))
	for i, p := range page.Items {
		dtos[i] = ToProductDTO(p)
	}
	return shared.NewPaginated(dtos, page.Total, page.Page, page.PageSize), nil
}

// ListAllProducts returns every product, for dataset views and exports
func (s *ProductService) ListAllProducts(ctx context.Context) ([]ProductDTO, error) {
	products, err := shared.CollectAll(func(filter shared.Filter) (shared.Paginated[*catalog.Product], error) {
		return s.productRepo.List(ctx, filter)
	})
	if err != nil {
		return nil, err
	}
	dtos := make([]ProductDTO, len(products))
	for i, p := range products {
		dtos[i] = ToProductDTO(p)
	}
	return dtos, nil
}

// UpdateProduct updates name, category, and description
func (s *ProductService) UpdateProduct(ctx context.Context, id uuid.UUID, input ProductInput) (ProductDTO, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return ProductDTO{}, shared.ErrNotFound
	}
	if err := product.Rename(input.Name); err != nil {
		return ProductDTO{}, err
	}
	category, err := catalog.ParseProductCategory(input.Category)
	if err != nil {
		return ProductDTO{}, err
	}
	if err := product.SetCategory(category); err != nil {
		return ProductDTO{}, err
	}
	if err := product.SetDescription(input.Description); err != nil {
		return ProductDTO{}, err
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return ProductDTO{}, err
	}
	return ToProductDTO(product), nil
}

// SetProductActive activates or deactivates a product
func (s *ProductService) SetProductActive(ctx context.Context, id uuid.UUID, active bool) (ProductDTO, error) {
	product, err := s.productRepo.FindByID(ctx, id)
	if err != nil {
		return ProductDTO{}, shared.ErrNotFound
	}
	if active {
		product.Activate()
	} else {
		product.Deactivate()
	}
	if err := s.productRepo.Save(ctx, product); err != nil {
		return ProductDTO{}, err
	}
	return ToProductDTO(product), nil
}

// DeleteProduct removes a product
func (s *ProductService) DeleteProduct(ctx context.Context, id uuid.UUID) error {
	if _, err := s.productRepo.FindByID(ctx, id); err != nil {
		return shared.ErrNotFound
	}
	return s.productRepo.Delete(ctx, id)
}

// Plans

// CreatePlan creates a plan under an active product
func (s *ProductService) CreatePlan(ctx context.Context, input PlanInput) (PlanDTO, error) {
	product, err := s.productRepo.FindByID(ctx, input.ProductID)
	if err != nil {
		return PlanDTO{}, shared.NewDomainError("PRODUCT_NOT_FOUND", "Product does not exist")
	}
	if !product.IsActive {
		return PlanDTO{}, shared.ErrEntityInactive
	}

	plan, err := catalog.NewPlan(input.ProductID, input.Code, input.Name,
		input.Premium, input.CoverAmount, input.DurationMonths)
	if err != nil {
		return PlanDTO{}, err
	}
	if exists, err := s.planRepo.ExistsByCode(ctx, input.ProductID, plan.Code); err != nil {
		return PlanDTO{}, err
	} else if exists {
		return PlanDTO{}, shared.NewDomainError("CODE_TAKEN", "Plan code is already in use for this product")
	}
	if err := s.planRepo.Save(ctx, plan); err != nil {
		return PlanDTO{}, err
	}
	s.logger.Info("Plan created",
		zap.String("product_code", product.Code), zap.String("code", plan.Code))
	return ToPlanDTO(plan), nil
}

// GetPlan returns one plan
func (s *ProductService) GetPlan(ctx context.Context, id uuid.UUID) (PlanDTO, error) {
	plan, err := s.planRepo.FindByID(ctx, id)
	if err != nil {
		return PlanDTO{}, shared.ErrNotFound
	}
	return ToPlanDTO(plan), nil
}

// ListPlans returns a page of plans, optionally scoped to a product
func (s *ProductService) ListPlans(ctx context.Context, productID *uuid.UUID, filter shared.Filter) (shared.Paginated[PlanDTO], error) {
	var page shared.Paginated[*catalog.Plan]
	var err error
	if productID != nil {
		page, err = s.planRepo.ListByProduct(ctx, *productID, filter)
	} else {
		page, err = s.planRepo.List(ctx, filter)
	}
	if err != nil {
		return shared.Paginated[PlanDTO]{}, err
	}
	dtos := make([]PlanDTO, len(page.Items))
	for i, p := range page.Items {
		dtos[i] = ToPlanDTO(p)
	}
	return shared.NewPaginated(dtos, page.Total, page.Page, page.PageSize), nil
}

// ListAllPlans returns every plan, for dataset views and exports
func (s *ProductService) ListAllPlans(ctx context.Context) ([]PlanDTO, error) {
	plans, err := shared.CollectAll(func(filter shared.Filter) (shared.Paginated[*catalog.Plan], error) {
		return s.planRepo.List(ctx, filter)
	})
	if err != nil {
		return nil, err
	}
	dtos := make([]PlanDTO, len(plans))
	for i, p := range plans {
		dtos[i] = ToPlanDTO(p)
	}
	return dtos, nil
}

// UpdatePlan updates a plan's name, pricing, and duration
func (s *ProductService) UpdatePlan(ctx context.Context, id uuid.UUID, input PlanInput) (PlanDTO, error) {
	plan, err := s.planRepo.FindByID(ctx, id)
	if err != nil {
		return PlanDTO{}, shared.ErrNotFound
	}
	if err := plan.Rename(input.Name); err != nil {
		return PlanDTO{}, err
	}
	if err := plan.Reprice(input.Premium, input.CoverAmount); err != nil {
		return PlanDTO{}, err
	}
	if err := plan.SetDuration(input.DurationMonths); err != nil {
		return PlanDTO{}, err
	}
	if err := s.planRepo.Save(ctx, plan); err != nil {
		return PlanDTO{}, err
	}
	return ToPlanDTO(plan), nil
}

// SetPlanActive activates or deactivates a plan
func (s *ProductService) SetPlanActive(ctx context.Context, id uuid.UUID, active bool) (PlanDTO, error) {
	plan, err := s.planRepo.FindByID(ctx, id)
	if err != nil {
		return PlanDTO{}, shared.ErrNotFound
	}
	if active {
		plan.Activate()
	} else {
		plan.Deactivate()
	}
	if err := s.planRepo.Save(ctx, plan); err != nil {
		return PlanDTO{}, err
	}
	return ToPlanDTO(plan), nil
}

// DeletePlan removes a plan
func (s *ProductService) DeletePlan(ctx context.Context, id uuid.UUID) error {
	if _, err := s.planRepo.FindByID(ctx, id); err != nil {
		return shared.ErrNotFound
	}
	return s.planRepo.Delete(ctx, id)
}
