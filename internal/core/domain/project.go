package domain

import "github.com/google/uuid"

// Project is a piece of delivery work for one client, run by one manager.
// ClientID is fixed at creation.
type Project struct {
	ID             uuid.UUID
	ClientID       uuid.UUID
	Name           string
	StartDate      Date
	PlannedEndDate Date
	ActualEndDate  *Date
	ManagerID      uuid.UUID
}

// Completed reports whether the project has an actual end date.
func (p *Project) Completed() bool {
	return p.ActualEndDate != nil
}
