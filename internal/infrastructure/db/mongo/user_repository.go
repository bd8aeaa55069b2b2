package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/sweem/sweem-api/internal/core/domain"
)

type userRepo struct {
	collection[userDoc, domain.User]
}

func newUserRepo(db *mongo.Database) *userRepo {
	return &userRepo{collection[userDoc, domain.User]{col: db.Collection(collectionUsers), name: collectionUsers}}
}

func (r *userRepo) ExistsByLogin(ctx context.Context, login string, exclude uuid.UUID) (bool, error) {
	filter := bson.M{"login": login}
	if exclude != uuid.Nil {
		filter["_id"] = bson.M{"$ne": exclude.String()}
	}
	n, err := r.col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("check login: %w", err)
	}
	return n > 0, nil
}

func (r *userRepo) Insert(ctx context.Context, u *domain.User) error {
	if err := r.insert(ctx, toUserDoc(u)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrLoginTaken
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

func (r *userRepo) Update(ctx context.Context, u *domain.User) error {
	doc := toUserDoc(u)
	err := r.set(ctx, doc.ID, bson.M{
		"name":          doc.Name,
		"login":         doc.Login,
		"password_hash": doc.PasswordHash,
		"role":          doc.Role,
	})
	switch {
	case err == nil, errors.Is(err, domain.ErrNotFound):
		return err
	case mongo.IsDuplicateKeyError(err):
		return domain.ErrLoginTaken
	}
	return fmt.Errorf("update user: %w", err)
}
