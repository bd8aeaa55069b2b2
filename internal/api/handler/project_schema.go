package handler

import (
	"github.com/google/uuid"

	"github.com/sweem/sweem-api/internal/core/domain"
)

// --- Request / Response types ---

// Dates travel as YYYY-MM-DD strings.

type createProjectRequest struct {
	ClientID       uuid.UUID    `json:"clientId"       swaggertype:"string" format:"uuid"`
	Name           string       `json:"name"           validate:"required,max=200"`
	StartDate      domain.Date  `json:"startDate"      swaggertype:"string" format:"date"`
	PlannedEndDate domain.Date  `json:"plannedEndDate" swaggertype:"string" format:"date"`
	ActualEndDate  *domain.Date `json:"actualEndDate"  swaggertype:"string" format:"date"`
	ManagerID      uuid.UUID    `json:"managerId"      swaggertype:"string" format:"uuid"`
}

// updateProjectRequest has no clientId; a project never changes owner.
type updateProjectRequest struct {
	Name           string       `json:"name"           validate:"required,max=200"`
	StartDate      domain.Date  `json:"startDate"      swaggertype:"string" format:"date"`
	PlannedEndDate domain.Date  `json:"plannedEndDate" swaggertype:"string" format:"date"`
	ActualEndDate  *domain.Date `json:"actualEndDate"  swaggertype:"string" format:"date"`
	ManagerID      uuid.UUID    `json:"managerId"      swaggertype:"string" format:"uuid"`
}

type projectResponse struct {
	ID             uuid.UUID    `json:"id"             swaggertype:"string" format:"uuid"`
	ClientID       uuid.UUID    `json:"clientId"       swaggertype:"string" format:"uuid"`
	Name           string       `json:"name"`
	StartDate      domain.Date  `json:"startDate"      swaggertype:"string" format:"date"`
	PlannedEndDate domain.Date  `json:"plannedEndDate" swaggertype:"string" format:"date"`
	ActualEndDate  *domain.Date `json:"actualEndDate"  swaggertype:"string" format:"date"`
	ManagerID      uuid.UUID    `json:"managerId"      swaggertype:"string" format:"uuid"`
}
