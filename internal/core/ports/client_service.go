package ports

import "github.com/google/uuid"

type CreateClientInput struct {
	Name              string
	Address           string
	ProjectsTotal     uint32
	ProjectsCompleted uint32
}

type UpdateClientInput struct {
	Name              string
	Address           string
	ProjectsTotal     uint32
	ProjectsCompleted uint32
}

type ClientView struct {
	ID                uuid.UUID
	Name              string
	Address           string
	ProjectsTotal     uint32
	ProjectsCompleted uint32
}

type ClientService interface {
	CRUDService[CreateClientInput, UpdateClientInput, ClientView]
}
