package mongo

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/sweem/sweem-api/internal/core/domain"
)

type clientRepo struct {
	collection[clientDoc, domain.Client]
}

func newClientRepo(db *mongo.Database) *clientRepo {
	return &clientRepo{collection[clientDoc, domain.Client]{col: db.Collection(collectionClients), name: collectionClients}}
}

func (r *clientRepo) Insert(ctx context.Context, c *domain.Client) error {
	if err := r.insert(ctx, toClientDoc(c)); err != nil {
		return fmt.Errorf("insert client: %w", err)
	}
	return nil
}

func (r *clientRepo) Update(ctx context.Context, c *domain.Client) error {
	doc := toClientDoc(c)
	err := r.set(ctx, doc.ID, bson.M{
		"name":               doc.Name,
		"address":            doc.Address,
		"projects_total":     doc.ProjectsTotal,
		"projects_completed": doc.ProjectsCompleted,
	})
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("update client: %w", err)
	}
	return err
}
