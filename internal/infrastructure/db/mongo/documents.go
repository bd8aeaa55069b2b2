package mongo

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sweem/sweem-api/internal/core/domain"
)

// Identifiers are stored as their canonical string form in _id.

type clientDoc struct {
	ID                string `bson:"_id"`
	Name              string `bson:"name"`
	Address           string `bson:"address"`
	ProjectsTotal     int64  `bson:"projects_total"`
	ProjectsCompleted int64  `bson:"projects_completed"`
}

type projectDoc struct {
	ID             string     `bson:"_id"`
	ClientID       string     `bson:"client_id"`
	Name           string     `bson:"name"`
	StartDate      time.Time  `bson:"start_date"`
	PlannedEndDate time.Time  `bson:"planned_end_date"`
	ActualEndDate  *time.Time `bson:"actual_end_date"`
	ManagerID      string     `bson:"manager_id"`
}

type userDoc struct {
	ID           string `bson:"_id"`
	Name         string `bson:"name"`
	Login        string `bson:"login"`
	PasswordHash string `bson:"password_hash"`
	Role         int32  `bson:"role"`
}

func toClientDoc(c *domain.Client) clientDoc {
	return clientDoc{
		ID:                c.ID.String(),
		Name:              c.Name,
		Address:           c.Address,
		ProjectsTotal:     int64(c.ProjectsTotal),
		ProjectsCompleted: int64(c.ProjectsCompleted),
	}
}

func (d clientDoc) toDomain() (*domain.Client, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("client _id %q: %w", d.ID, err)
	}
	return &domain.Client{
		ID:                id,
		Name:              d.Name,
		Address:           d.Address,
		ProjectsTotal:     uint32(d.ProjectsTotal),
		ProjectsCompleted: uint32(d.ProjectsCompleted),
	}, nil
}

func toProjectDoc(p *domain.Project) projectDoc {
	doc := projectDoc{
		ID:             p.ID.String(),
		ClientID:       p.ClientID.String(),
		Name:           p.Name,
		StartDate:      p.StartDate.Time(),
		PlannedEndDate: p.PlannedEndDate.Time(),
		ManagerID:      p.ManagerID.String(),
	}
	if p.ActualEndDate != nil {
		t := p.ActualEndDate.Time()
		doc.ActualEndDate = &t
	}
	return doc
}

func (d projectDoc) toDomain() (*domain.Project, error) {
	ids, err := parseIDs(d.ID, d.ClientID, d.ManagerID)
	if err != nil {
		return nil, fmt.Errorf("project %q: %w", d.ID, err)
	}
	p := &domain.Project{
		ID:             ids[0],
		ClientID:       ids[1],
		Name:           d.Name,
		StartDate:      domain.DateOf(d.StartDate),
		PlannedEndDate: domain.DateOf(d.PlannedEndDate),
		ManagerID:      ids[2],
	}
	if d.ActualEndDate != nil {
		end := domain.DateOf(*d.ActualEndDate)
		p.ActualEndDate = &end
	}
	return p, nil
}

func toUserDoc(u *domain.User) userDoc {
	return userDoc{
		ID:           u.ID.String(),
		Name:         u.Name,
		Login:        u.Login,
		PasswordHash: u.PasswordHash,
		Role:         int32(u.Role),
	}
}

func (d userDoc) toDomain() (*domain.User, error) {
	id, err := uuid.Parse(d.ID)
	if err != nil {
		return nil, fmt.Errorf("user _id %q: %w", d.ID, err)
	}
	return &domain.User{
		ID:           id,
		Name:         d.Name,
		Login:        d.Login,
		PasswordHash: d.PasswordHash,
		Role:         domain.Role(d.Role),
	}, nil
}

func parseIDs(raw ...string) ([]uuid.UUID, error) {
	out := make([]uuid.UUID, len(raw))
	for i, s := range raw {
		id, err := uuid.Parse(s)
		if err != nil {
			return nil, err
		}
		out[i] = id
	}
	return out, nil
}
