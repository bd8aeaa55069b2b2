package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sweem/sweem-api/internal/core/domain"
)

type projectRepo struct {
	collection[projectDoc, domain.Project]
}

func newProjectRepo(db *mongo.Database) *projectRepo {
	return &projectRepo{collection[projectDoc, domain.Project]{col: db.Collection(collectionProjects), name: collectionProjects}}
}

func (r *projectRepo) Insert(ctx context.Context, p *domain.Project) error {
	if err := r.insert(ctx, toProjectDoc(p)); err != nil {
		return fmt.Errorf("insert project: %w", err)
	}
	return nil
}

// Update leaves client_id untouched.
func (r *projectRepo) Update(ctx context.Context, p *domain.Project) error {
	doc := toProjectDoc(p)
	err := r.set(ctx, doc.ID, bson.M{
		"name":             doc.Name,
		"start_date":       doc.StartDate,
		"planned_end_date": doc.PlannedEndDate,
		"actual_end_date":  doc.ActualEndDate,
		"manager_id":       doc.ManagerID,
	})
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("update project: %w", err)
	}
	return err
}

func (r *projectRepo) DeleteByClient(ctx context.Context, clientID uuid.UUID) (int64, error) {
	res, err := r.col.DeleteMany(ctx, bson.M{"client_id": clientID.String()})
	if err != nil {
		return 0, fmt.Errorf("delete client projects: %w", err)
	}
	return res.DeletedCount, nil
}

func (r *projectRepo) CountByManager(ctx context.Context, managerID uuid.UUID) (int64, error) {
	n, err := r.col.CountDocuments(ctx, bson.M{"manager_id": managerID.String()})
	if err != nil {
		return 0, fmt.Errorf("count managed projects: %w", err)
	}
	return n, nil
}
