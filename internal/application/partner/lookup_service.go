package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/jubilee-retail/backoffice/internal/domain/partner"
	"github.com/jubilee-retail/backoffice/internal/domain/shared"
	"go.uber.org/zap"
)

// LookupService handles the setup lookups: cities and couriers
type LookupService struct {
	cityRepo    partner.CityRepository
	courierRepo partner.CourierRepository
	logger      *zap.Logger
}

// NewLookupService creates a new lookup service
func NewLookupService(cityRepo partner.CityRepository, courierRepo partner.CourierRepository, logger *zap.Logger) *LookupService {
	return &LookupService{cityRepo: cityRepo, courierRepo: courierRepo, logger: logger}
}

// Cities

// CreateCity creates a city
func (s *LookupService) CreateCity(ctx context.Context, input CityInput) (CityDTO, error) {
	city, err := partner.NewCity(input.Name, input.Province)
	if err != nil {
		return CityDTO{}, err
	}
	if exists, err := s.cityRepo.ExistsByName(ctx, city.Name); err != nil {
		return CityDTO{}, err
	} else if exists {
		return CityDTO{}, shared.NewDomainError("NAME_TAKEN", "City already exists")
	}
	if err := s.cityRepo.Save(ctx, city); err != nil {
		return CityDTO{}, err
	}
	return ToCityDTO(city), nil
}

// GetCity returns one city
func (s *LookupService) GetCity(ctx context.Context, id uuid.UUID) (CityDTO, error) {
	city, err := s.cityRepo.FindByID(ctx, id)
	if err != nil {
		return CityDTO{}, shared.ErrNotFound
	}
	return ToCityDTO(city), nil
}

// ListCities returns a page of cities
func (s *LookupService) ListCities(ctx context.Context, filter shared.Filter) (shared.Paginated[CityDTO], error) {
	page, err := s.cityRepo.List(ctx, filter)
	if err != nil {
		return shared.Paginated[CityDTO]{}, err
	}
	dtos := make([]CityDTO, len(page.Items))
	for i, c := range page.Items {
		dtos[i] = ToCityDTO(c)
	}
	return shared.NewPaginated(dtos, page.Total, page.Page, page.PageSize), nil
}

// ListAllCities returns every city, for dataset views and exports
func (s *LookupService) ListAllCities(ctx context.Context) ([]CityDTO, error) {
	cities, err := shared.CollectAll(func(filter shared.Filter) (shared.Paginated[*partner.City], error) {
		return s.cityRepo.List(ctx, filter)
	})
	if err != nil {
		return nil, err
	}
	dtos := make([]CityDTO, len(cities))
	for i, c := range cities {
		dtos[i] = ToCityDTO(c)
	}
	return dtos, nil
}

// UpdateCity renames a city or changes its province
func (s *LookupService) UpdateCity(ctx context.Context, id uuid.UUID, input CityInput) (CityDTO, error) {
	city, err := s.cityRepo.FindByID(ctx, id)
	if err != nil {
		return CityDTO{}, shared.ErrNotFound
	}
	if err := city.Rename(input.Name); err != nil {
		return CityDTO{}, err
	}
	city.SetProvince(input.Province)
	if err := s.cityRepo.Save(ctx, city); err != nil {
		return CityDTO{}, err
	}
	return ToCityDTO(city), nil
}

// SetCityActive activates or deactivates a city
func (s *LookupService) SetCityActive(ctx context.Context, id uuid.UUID, active bool) (CityDTO, error) {
	city, err := s.cityRepo.FindByID(ctx, id)
	if err != nil {
		return CityDTO{}, shared.ErrNotFound
	}
	if active {
		city.Activate()
	} else {
		city.Deactivate()
	}
	if err := s.cityRepo.Save(ctx, city); err != nil {
		return CityDTO{}, err
	}
	return ToCityDTO(city), nil
}

// DeleteCity removes a city
func (s *LookupService) DeleteCity(ctx context.Context, id uuid.UUID) error {
	if _, err := s.cityRepo.FindByID(ctx, id); err != nil {
		return shared.ErrNotFound
	}
	return s.cityRepo.Delete(ctx, id)
}

// Couriers

// CreateCourier creates a courier
func (s *LookupService) CreateCourier(ctx context.Context, input CourierInput) (CourierDTO, error) {
	courier, err := partner.NewCourier(input.Name, input.ServiceCode)
	if err != nil {
		return CourierDTO{}, err
	}
	if exists, err := s.courierRepo.ExistsByServiceCode(ctx, courier.ServiceCode); err != nil {
		return CourierDTO{}, err
	} else if exists {
		return CourierDTO{}, shared.NewDomainError("CODE_TAKEN", "Courier service code is already in use")
	}
	if err := courier.SetTrackingURL(input.TrackingURL); err != nil {
		return CourierDTO{}, err
	}
	if err := s.courierRepo.Save(ctx, courier); err != nil {
		return CourierDTO{}, err
	}
	return ToCourierDTO(courier), nil
}

// GetCourier returns one courier
func (s *LookupService) GetCourier(ctx context.Context, id uuid.UUID) (CourierDTO, error) {
	courier, err := s.courierRepo.FindByID(ctx, id)
	if err != nil {
		return CourierDTO{}, shared.ErrNotFound
	}
	return ToCourierDTO(courier), nil
}

// ListCouriers returns a page of couriers
func (s *LookupService) ListCouriers(ctx context.Context, filter shared.Filter) (shared.Paginated[CourierDTO], error) {
	page, err := s.courierRepo.List(ctx, filter)
	if err != nil {
		return shared.Paginated[CourierDTO]{}, err
	}
	dtos := make([]CourierDTO, len(page.Items))
	for i, c := range page.Items {
		dtos[i] = ToCourierDTO(c)
	}
	return shared.NewPaginated(dtos, page.Total, page.Page, page.PageSize), nil
}

// ListAllCouriers returns every courier, for dataset views and exports
func (s *LookupService) ListAllCouriers(ctx context.Context) ([]CourierDTO, error) {
	couriers, err := shared.CollectAll(func(filter shared.Filter) (shared.Paginated[*partner.Courier], error) {
		return s.courierRepo.List(ctx, filter)
	})
	if err != nil {
		return nil, err
	}
	dtos := make([]CourierDTO, len(couriers))
	for i, c := range couriers {
		dtos[i] = ToCourierDTO(c)
	}
	return dtos, nil
}

// UpdateCourier updates a courier's name and tracking template
func (s *LookupService) UpdateCourier(ctx context.Context, id uuid.UUID, input CourierInput) (CourierDTO, error) {
	courier, err := s.courierRepo.FindByID(ctx, id)
	if err != nil {
		return CourierDTO{}, shared.ErrNotFound
	}
	if err := courier.Rename(input.Name); err != nil {
		return CourierDTO{}, err
	}
	if err := courier.SetTrackingURL(input.TrackingURL); err != nil {
		return CourierDTO{}, err
	}
	if err := s.courierRepo.Save(ctx, courier); err != nil {
		return CourierDTO{}, err
	}
	return ToCourierDTO(courier), nil
}

// SetCourierActive activates or deactivates a courier
func (s *LookupService) SetCourierActive(ctx context.Context, id uuid.UUID, active bool) (CourierDTO, error) {
	courier, err := s.courierRepo.FindByID(ctx, id)
	if err != nil {
		return CourierDTO{}, shared.ErrNotFound
	}
	if active {
		courier.Activate()
	} else {
		courier.Deactivate()
	}
	if err := s.courierRepo.Save(ctx, courier); err != nil {
		return CourierDTO{}, err
	}
	return ToCourierDTO(courier), nil
}

// DeleteCourier removes a courier
func (s *LookupService) DeleteCourier(ctx context.Context, id uuid.UUID) error {
	if _, err := s.courierRepo.FindByID(ctx, id); err != nil {
		return shared.ErrNotFound
	}
	return s.courierRepo.Delete(ctx, id)
}
