package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/jubilee-retail/backoffice/internal/domain/partner"
	"github.com/jubilee-retail/backoffice/internal/domain/shared"
	"go.uber.org/zap"
)

// ClientService handles policyholder CRUD
type ClientService struct {
	clientRepo partner.ClientRepository
	cityRepo   partner.CityRepository
	logger     *zap.Logger
}

// NewClientService creates a new client service
func NewClientService(clientRepo partner.ClientRepository, cityRepo partner.CityRepository, logger *zap.Logger) *ClientService {
	return &ClientService{clientRepo: clientRepo, cityRepo: cityRepo, logger: logger}
}

// Create creates a policyholder record
func (s *ClientService) Create(ctx context.Context, input ClientInput) (ClientDTO, error) {
	client, err := partner.NewClient(input.Name, input.DocumentNo)
	if err != nil {
		return ClientDTO{}, err
	}
	if exists, err := s.clientRepo.ExistsByDocumentNo(ctx, client.DocumentNo); err != nil {
		return ClientDTO{}, err
	} else if exists {
		return ClientDTO{}, shared.NewDomainError("DOCUMENT_TAKEN", "A client with this document number already exists")
	}
	if err := s.applyDetails(ctx, client, input); err != nil {
		return ClientDTO{}, err
	}
	if err := s.clientRepo.Save(ctx, client); err != nil {
		return ClientDTO{}, err
	}
	s.logger.Info("Client created", zap.String("document_no", client.DocumentNo))
	return ToClientDTO(client), nil
}

// Get returns one client
func (s *ClientService) Get(ctx context.Context, id uuid.UUID) (ClientDTO, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return ClientDTO{}, shared.ErrNotFound
	}
	return ToClientDTO(client), nil
}

// List returns a page of clients
func (s *ClientService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[ClientDTO], error) {
	page, err := s.clientRepo.List(ctx, filter)
	if err != nil {
		return shared.Paginated[ClientDTO]{}, err
	}
	dtos := make([]ClientDTO, len(page.Items))
	for i, c := range page.Items {
		dtos[i] = ToClientDTO(c)
	}
	return shared.NewPaginated(dtos, page.Total, page.Page, page.PageSize), nil
}

// ListAll returns every client, for dataset views and exports
func (s *ClientService) ListAll(ctx context.Context) ([]ClientDTO, error) {
	clients, err := shared.CollectAll(func(filter shared.Filter) (shared.Paginated[*partner.Client], error) {
		return s.clientRepo.List(ctx, filter)
	})
	if err != nil {
		return nil, err
	}
	dtos := make([]ClientDTO, len(clients))
	for i, c := range clients {
		dtos[i] = ToClientDTO(c)
	}
	return dtos, nil
}

// Update updates a client's details. The document number is immutable.
func (s *ClientService) Update(ctx context.Context, id uuid.UUID, input ClientInput) (ClientDTO, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return ClientDTO{}, shared.ErrNotFound
	}
	if err := client.Rename(input.Name); err != nil {
		return ClientDTO{}, err
	}
	if err := s.applyDetails(ctx, client, input); err != nil {
		return ClientDTO{}, err
	}
	if err := s.clientRepo.Save(ctx, client); err != nil {
		return ClientDTO{}, err
	}
	return ToClientDTO(client), nil
}

// SetActive activates or deactivates a client record
func (s *ClientService) SetActive(ctx context.Context, id uuid.UUID, active bool) (ClientDTO, error) {
	client, err := s.clientRepo.FindByID(ctx, id)
	if err != nil {
		return ClientDTO{}, shared.ErrNotFound
	}
	if active {
		client.Activate()
	} else {
		client.Deactivate()
	}
	if err := s.clientRepo.Save(ctx, client); err != nil {
		return ClientDTO{}, err
	}
	return ToClientDTO(client), nil
}

// Delete removes a client
func (s *ClientService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.clientRepo.FindByID(ctx, id); err != nil {
		return shared.ErrNotFound
	}
	return s.clientRepo.Delete(ctx, id)
}

func (s *ClientService) applyDetails(ctx context.Context, client *partner.Client, input ClientInput) error {
	if input.CityID != nil {
		if _, err := s.cityRepo.FindByID(ctx, *input.CityID); err != nil {
			return shared.NewDomainError("CITY_NOT_FOUND", "City does not exist")
		}
	}
	client.SetCity(input.CityID)
	if err := client.SetContact(input.Phone, input.Email); err != nil {
		return err
	}
	if input.DateOfBirth != nil {
		if err := client.SetDateOfBirth(*input.DateOfBirth); err != nil {
			return err
		}
	}
	return client.SetAddress(input.Address)
}
