package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/jubilee-retail/backoffice/internal/domain/partner"
	"github.com/jubilee-retail/backoffice/internal/domain/shared"
	"go.uber.org/zap"
)

// AgentService handles agent CRUD
type AgentService struct {
	agentRepo  partner.AgentRepository
	branchRepo partner.BranchRepository
	logger     *zap.Logger
}

// NewAgentService creates a new agent service
func NewAgentService(agentRepo partner.AgentRepository, branchRepo partner.BranchRepository, logger *zap.Logger) *AgentService {
	return &AgentService{agentRepo: agentRepo, branchRepo: branchRepo, logger: logger}
}

// Create creates an agent under an active branch
func (s *AgentService) Create(ctx context.Context, input AgentInput) (AgentDTO, error) {
	branch, err := s.branchRepo.FindByID(ctx, input.BranchID)
	if err != nil {
		return AgentDTO{}, shared.NewDomainError("BRANCH_NOT_FOUND", "Branch does not exist")
	}
	if !branch.IsActive {
		return AgentDTO{}, shared.ErrEntityInactive
	}

	agent, err := partner.NewAgent(input.Code, input.Name, input.BranchID)
	if err != nil {
		return AgentDTO{}, err
	}
	if exists, err := s.agentRepo.ExistsByCode(ctx, agent.Code); err != nil {
		return AgentDTO{}, err
	} else if exists {
		return AgentDTO{}, shared.NewDomainError("CODE_TAKEN", "Agent code is already in use")
	}
	if err := agent.SetContact(input.Phone, input.Email); err != nil {
		return AgentDTO{}, err
	}

	if err := s.agentRepo.Save(ctx, agent); err != nil {
		return AgentDTO{}, err
	}
	s.logger.Info("Agent created", zap.String("code", agent.Code))
	return ToAgentDTO(agent), nil
}

// Get returns one agent
func (s *AgentService) Get(ctx context.Context, id uuid.UUID) (AgentDTO, error) {
	agent, err := s.agentRepo.FindByID(ctx, id)
	if err != nil {
		return AgentDTO{}, shared.ErrNotFound
	}
	return ToAgentDTO(agent), nil
}

// List returns a page of agents
func (s *AgentService) List(ctx context.Context, filter shared.Filter) (shared.Paginated[AgentDTO], error) {
	page, err := s.agentRepo.List(ctx, filter)
	if err != nil {
		return shared.Paginated[AgentDTO]{}, err
	}
	dtos := make([]AgentDTO, len(page.Items))
	for i, a := range page.Items {
		dtos[i] = ToAgentDTO(a)
	}
	return shared.NewPaginated(dtos, page.Total, page.Page, page.PageSize), nil
}

// ListAll returns every agent, for dataset views and exports
func (s *AgentService) ListAll(ctx context.Context) ([]AgentDTO, error) {
	agents, err := shared.CollectAll(func(filter shared.Filter) (shared.Paginated[*partner.Agent], error) {
		return s.agentRepo.List(ctx, filter)
	})
	if err != nil {
		return nil, err
	}
	dtos := make([]AgentDTO, len(agents))
	for i, a := range agents {
		dtos[i] = ToAgentDTO(a)
	}
	return dtos, nil
}

// Update updates an agent, including branch transfer
func (s *AgentService) Update(ctx context.Context, id uuid.UUID, input AgentInput) (AgentDTO, error) {
	agent, err := s.agentRepo.FindByID(ctx, id)
	if err != nil {
		return AgentDTO{}, shared.ErrNotFound
	}
	if err := agent.Rename(input.Name); err != nil {
		return AgentDTO{}, err
	}
	if input.BranchID != agent.BranchID {
		branch, err := s.branchRepo.FindByID(ctx, input.BranchID)
		if err != nil {
			return AgentDTO{}, shared.NewDomainError("BRANCH_NOT_FOUND", "Branch does not exist")
		}
		if !branch.IsActive {
			return AgentDTO{}, shared.ErrEntityInactive
		}
		if err := agent.Transfer(input.BranchID); err != nil {
			return AgentDTO{}, err
		}
	}
	if err := agent.SetContact(input.Phone, input.Email); err != nil {
		return AgentDTO{}, err
	}
	if err := s.agentRepo.Save(ctx, agent); err != nil {
		return AgentDTO{}, err
	}
	return ToAgentDTO(agent), nil
}

// SetActive activates or deactivates an agent
func (s *AgentService) SetActive(ctx context.Context, id uuid.UUID, active bool) (AgentDTO, error) {
	agent, err := s.agentRepo.FindByID(ctx, id)
	if err != nil {
		return AgentDTO{}, shared.ErrNotFound
	}
	if active {
		agent.Activate()
	} else {
		agent.Deactivate()
	}
	if err := s.agentRepo.Save(ctx, agent); err != nil {
		return AgentDTO{}, err
	}
	return ToAgentDTO(agent), nil
}

// Delete removes an agent
func (s *AgentService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.agentRepo.FindByID(ctx, id); err != nil {
		return shared.ErrNotFound
	}
	return s.agentRepo.Delete(ctx, id)
}
