package ports

import (
	"github.com/google/uuid"

	"github.com/sweem/sweem-api/internal/core/domain"
)

type CreateProjectInput struct {
	ClientID       uuid.UUID
	Name           string
	StartDate      domain.Date
	PlannedEndDate domain.Date
	ActualEndDate  *domain.Date
	ManagerID      uuid.UUID
}

// UpdateProjectInput has no ClientID: the owning client cannot change.
type UpdateProjectInput struct {
	Name           string
	StartDate      domain.Date
	PlannedEndDate domain.Date
	ActualEndDate  *domain.Date
	ManagerID      uuid.UUID
}

type ProjectView struct {
	ID             uuid.UUID
	ClientID       uuid.UUID
	Name           string
	StartDate      domain.Date
	PlannedEndDate domain.Date
	ActualEndDate  *domain.Date
	ManagerID      uuid.UUID
}

type ProjectService interface {
	CRUDService[CreateProjectInput, UpdateProjectInput, ProjectView]
}
