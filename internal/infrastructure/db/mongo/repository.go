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

// document is a stored shape that converts back into its domain entity.
type document[E any] interface {
	toDomain() (*E, error)
}

// collection holds the operations every entity shares. Entity-specific
// repositories embed it and add their own queries.
type collection[D document[E], E any] struct {
	col  *mongo.Collection
	name string
}

func (c collection[D, E]) Count(ctx context.Context) (int64, error) {
	n, err := c.col.CountDocuments(ctx, bson.M{})
	if err != nil {
		return 0, fmt.Errorf("count %s: %w", c.name, err)
	}
	return n, nil
}

func (c collection[D, E]) List(ctx context.Context, offset, limit int) ([]*E, error) {
	cur, err := c.col.Find(ctx, bson.M{}, pageOptions(offset, limit))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", c.name, err)
	}
	defer cur.Close(ctx)

	var out []*E
	for cur.Next(ctx) {
		var doc D
		if err := cur.Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode %s: %w", c.name, err)
		}
		e, err := doc.toDomain()
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, cur.Err()
}

func (c collection[D, E]) FindByID(ctx context.Context, id uuid.UUID) (*E, error) {
	var doc D
	err := c.col.FindOne(ctx, bson.M{"_id": id.String()}).Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, domain.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", c.name, err)
	}
	return doc.toDomain()
}

func (c collection[D, E]) insert(ctx context.Context, doc D) error {
	_, err := c.col.InsertOne(ctx, doc)
	return err
}

func (c collection[D, E]) set(ctx context.Context, id string, fields bson.M) error {
	res, err := c.col.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": fields})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// LockForReference bumps the document's rev field. Snapshot transactions only
// conflict on overlapping writes, so a project that references this document
// and a concurrent delete of it can no longer both commit.
func (c collection[D, E]) LockForReference(ctx context.Context, id uuid.UUID) error {
	res, err := c.col.UpdateOne(ctx, bson.M{"_id": id.String()}, bson.M{"$inc": bson.M{"rev": 1}})
	if err != nil {
		return fmt.Errorf("lock %s: %w", c.name, err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (c collection[D, E]) Delete(ctx context.Context, id uuid.UUID) error {
	res, err := c.col.DeleteOne(ctx, bson.M{"_id": id.String()})
	if err != nil {
		return fmt.Errorf("delete %s: %w", c.name, err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrNotFound
	}
	return nil
}
