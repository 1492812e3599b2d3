package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	defaultTimeout     = 10 * time.Second
	defaultMaxPoolSize = 100
	appName            = "employee-service"
)

// Config holds the connection settings for the employee store.
type Config struct {
	URI        string
	Database   string
	Collection string
	// Timeout bounds connecting and every single store operation.
	Timeout     time.Duration
	MaxPoolSize uint64
}

func (c Config) timeout() time.Duration {
	if c.Timeout <= 0 {
		return defaultTimeout
	}
	return c.Timeout
}

// Connect opens a pooled client and verifies connectivity with a ping
// against the primary.
func Connect(ctx context.Context, cfg Config) (*mongo.Client, *mongo.Database, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.timeout())
	defer cancel()

	poolSize := cfg.MaxPoolSize
	if poolSize == 0 {
		poolSize = defaultMaxPoolSize
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetAppName(appName).
		SetMaxPoolSize(poolSize).
		SetTimeout(cfg.timeout())

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, nil, fmt.Errorf("mongo connect: %w", err)
	}

	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.WithoutCancel(ctx))
		return nil, nil, fmt.Errorf("mongo ping: %w", err)
	}

	return client, client.Database(cfg.Database), nil
}

// Store bundles the employee repository and its id sequence.
type Store struct {
	Employees *EmployeeRepository
	Sequence  *Sequence
}

// OpenStore prepares the employee and counter collections of db: it creates
// the unique indexes and moves the id counter past any existing record.
func OpenStore(ctx context.Context, db *mongo.Database, cfg Config) (*Store, error) {
	collection := cfg.Collection
	if collection == "" {
		collection = DefaultEmployeeCollection
	}

	store := &Store{
		Employees: NewEmployeeRepository(db.Collection(collection), cfg.timeout()),
		Sequence:  NewSequence(db.Collection(CountersCollection), cfg.timeout()),
	}

	if err := store.Employees.EnsureIndexes(ctx); err != nil {
		return nil, fmt.Errorf("ensure employee indexes: %w", err)
	}

	maxID, err := store.Employees.MaxID(ctx)
	if err != nil {
		return nil, err
	}
	if err := store.Sequence.SyncTo(ctx, maxID); err != nil {
		return nil, err
	}

	return store, nil
}

// PingCheck returns a readiness check for client.
func PingCheck(client *mongo.Client) func(context.Context) error {
	return func(ctx context.Context) error {
		return client.Ping(ctx, readpref.Primary())
	}
}
