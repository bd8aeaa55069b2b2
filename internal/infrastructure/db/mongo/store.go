package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"

	"github.com/sweem/sweem-api/internal/core/ports"
)

const (
	collectionClients  = "clients"
	collectionProjects = "projects"
	collectionUsers    = "users"
)

// Store implements ports.Store on MongoDB. Each unit of work runs inside a
// session transaction; the driver retries fn on transient transaction errors,
// so fn must not have side effects outside the store.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
}

var _ ports.Store = (*Store)(nil)

func NewStore(client *mongo.Client, db *mongo.Database) *Store {
	return &Store{client: client, db: db}
}

func (s *Store) Name() string { return "mongo" }

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, uow ports.UnitOfWork) error) error {
	sess, err := s.client.StartSession()
	if err != nil {
		return fmt.Errorf("mongo session: %w", err)
	}
	defer sess.EndSession(context.WithoutCancel(ctx))

	txOpts := options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority())

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc, unitOfWork{db: s.db})
	}, txOpts)
	return err
}

func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// EnsureIndexes creates the login unique index and the project reference
// indexes. It also creates the collections, which must exist before they are
// written to inside a transaction.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	_, err := s.db.Collection(collectionUsers).Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "login", Value: 1}},
		Options: options.Index().SetUnique(true).SetName("users_login_key"),
	})
	if err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}

	_, err = s.db.Collection(collectionProjects).Indexes().CreateMany(ctx, []mongo.IndexModel{
		{Keys: bson.D{{Key: "client_id", Value: 1}}},
		{Keys: bson.D{{Key: "manager_id", Value: 1}}},
	})
	if err != nil {
		return fmt.Errorf("projects indexes: %w", err)
	}

	names, err := s.db.ListCollectionNames(ctx, bson.M{"name": collectionClients})
	if err != nil {
		return fmt.Errorf("list collections: %w", err)
	}
	if len(names) == 0 {
		if err := s.db.CreateCollection(ctx, collectionClients); err != nil {
			return fmt.Errorf("create clients: %w", err)
		}
	}
	return nil
}

type unitOfWork struct {
	db *mongo.Database
}

func (u unitOfWork) Clients() ports.ClientRepository {
	return newClientRepo(u.db)
}

func (u unitOfWork) Projects() ports.ProjectRepository {
	return newProjectRepo(u.db)
}

func (u unitOfWork) Users() ports.UserRepository {
	return newUserRepo(u.db)
}

// pageOptions sorts on the primary key so pages are stable.
func pageOptions(offset, limit int) *options.FindOptions {
	return options.Find().
		SetSort(bson.D{{Key: "_id", Value: 1}}).
		SetSkip(int64(offset)).
		SetLimit(int64(limit))
}
