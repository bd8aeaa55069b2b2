package service

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sweem/sweem-api/internal/core/domain"
	"github.com/sweem/sweem-api/internal/core/ports"
)

// ClientService manages clients. Deleting a client deletes its projects in
// the same transaction.
type ClientService struct {
	*crudService[domain.Client, ports.CreateClientInput, ports.UpdateClientInput, ports.ClientView]
}

var _ ports.ClientService = (*ClientService)(nil)

func NewClientService(store ports.Store, logger zerolog.Logger, opts ...Option) *ClientService {
	rules := entityRules[domain.Client, ports.CreateClientInput, ports.UpdateClientInput, ports.ClientView]{
		entity:   "client",
		notFound: domain.ErrClientNotFound,
		repo: func(uow ports.UnitOfWork) ports.Repository[domain.Client] {
			return uow.Clients()
		},
		build:        buildClient,
		apply:        applyClient,
		validate:     validateClient,
		beforeDelete: cascadeProjects,
		view:         toClientView,
	}
	return &ClientService{crudService: newCRUDService(store, rules, logger, opts)}
}

func buildClient(id uuid.UUID, in ports.CreateClientInput) (*domain.Client, error) {
	return &domain.Client{
		ID:                id,
		Name:              in.Name,
		Address:           in.Address,
		ProjectsTotal:     in.ProjectsTotal,
		ProjectsCompleted: in.ProjectsCompleted,
	}, nil
}

func applyClient(c *domain.Client, in ports.UpdateClientInput) {
	c.Name = in.Name
	c.Address = in.Address
	c.ProjectsTotal = in.ProjectsTotal
	c.ProjectsCompleted = in.ProjectsCompleted
}

func validateClient(c *domain.Client) error {
	if err := requireText("name", c.Name, maxNameLen); err != nil {
		return err
	}
	if err := limitText("address", c.Address, maxAddressLen); err != nil {
		return err
	}
	if c.ProjectsCompleted > c.ProjectsTotal {
		return domain.Invalid("projectsCompleted", "must not exceed projectsTotal")
	}
	return nil
}

func toClientView(c *domain.Client) ports.ClientView {
	return ports.ClientView{
		ID:                c.ID,
		Name:              c.Name,
		Address:           c.Address,
		ProjectsTotal:     c.ProjectsTotal,
		ProjectsCompleted: c.ProjectsCompleted,
	}
}
