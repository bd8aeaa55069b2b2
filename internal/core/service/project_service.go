package service

import (
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/sweem/sweem-api/internal/core/domain"
	"github.com/sweem/sweem-api/internal/core/ports"
)

// ProjectService manages projects. The owning client and the manager must
// exist; the owning client never changes after creation.
type ProjectService struct {
	*crudService[domain.Project, ports.CreateProjectInput, ports.UpdateProjectInput, ports.ProjectView]
}

var _ ports.ProjectService = (*ProjectService)(nil)

func NewProjectService(store ports.Store, logger zerolog.Logger, opts ...Option) *ProjectService {
	rules := entityRules[domain.Project, ports.CreateProjectInput, ports.UpdateProjectInput, ports.ProjectView]{
		entity:   "project",
		notFound: domain.ErrProjectNotFound,
		repo: func(uow ports.UnitOfWork) ports.Repository[domain.Project] {
			return uow.Projects()
		},
		build:      buildProject,
		apply:      applyProject,
		validate:   validateProject,
		verifyRefs: verifyProjectRefs,
		view:       toProjectView,
	}
	return &ProjectService{crudService: newCRUDService(store, rules, logger, opts)}
}

func buildProject(id uuid.UUID, in ports.CreateProjectInput) (*domain.Project, error) {
	return &domain.Project{
		ID:             id,
		ClientID:       in.ClientID,
		Name:           in.Name,
		StartDate:      in.StartDate,
		PlannedEndDate: in.PlannedEndDate,
		ActualEndDate:  copyDate(in.ActualEndDate),
		ManagerID:      in.ManagerID,
	}, nil
}

// applyProject leaves ID and ClientID untouched.
func applyProject(p *domain.Project, in ports.UpdateProjectInput) {
	p.Name = in.Name
	p.StartDate = in.StartDate
	p.PlannedEndDate = in.PlannedEndDate
	p.ActualEndDate = copyDate(in.ActualEndDate)
	p.ManagerID = in.ManagerID
}

func validateProject(p *domain.Project) error {
	if err := requireText("name", p.Name, maxNameLen); err != nil {
		return err
	}
	if p.ClientID == uuid.Nil {
		return domain.Invalid("clientId", "is required")
	}
	if p.ManagerID == uuid.Nil {
		return domain.Invalid("managerId", "is required")
	}
	if p.StartDate.IsZero() {
		return domain.Invalid("startDate", "is required")
	}
	if p.PlannedEndDate.IsZero() {
		return domain.Invalid("plannedEndDate", "is required")
	}
	if p.PlannedEndDate.Before(p.StartDate) {
		return domain.Invalid("plannedEndDate", "must not be before startDate")
	}
	if p.ActualEndDate != nil && p.ActualEndDate.Before(p.StartDate) {
		return domain.Invalid("actualEndDate", "must not be before startDate")
	}
	return nil
}

func toProjectView(p *domain.Project) ports.ProjectView {
	return ports.ProjectView{
		ID:             p.ID,
		ClientID:       p.ClientID,
		Name:           p.Name,
		StartDate:      p.StartDate,
		PlannedEndDate: p.PlannedEndDate,
		ActualEndDate:  copyDate(p.ActualEndDate),
		ManagerID:      p.ManagerID,
	}
}

// copyDate keeps callers from sharing a *Date with the stored entity. A zero
// date is treated as absent.
func copyDate(d *domain.Date) *domain.Date {
	if d == nil || d.IsZero() {
		return nil
	}
	c := *d
	return &c
}
