package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/employee-service/internal/core/domain"
)

const (
	CountersCollection = "counters"
	employeeCounterKey = "employee_id"
)

// idBase is added to the counter value so that the first id is domain.FirstEmployeeID.
const idBase = domain.FirstEmployeeID - 1

// Sequence allocates employee ids from a counter document updated with $inc,
// so concurrent allocations never observe the same value.
type Sequence struct {
	col     *mongo.Collection
	timeout time.Duration
}

func NewSequence(col *mongo.Collection, timeout time.Duration) *Sequence {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Sequence{col: col, timeout: timeout}
}

type counterDocument struct {
	Key string `bson:"_id"`
	Seq int64  `bson:"seq"`
}

// Next increments the counter and returns the new employee id.
func (s *Sequence) Next(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var doc counterDocument
	err := s.col.FindOneAndUpdate(ctx,
		bson.M{"_id": employeeCounterKey},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		opts,
	).Decode(&doc)
	if err != nil {
		return 0, fmt.Errorf("next employee id: %w", err)
	}
	return idBase + doc.Seq, nil
}

// SyncTo raises the counter so the next allocated id is greater than maxID.
// It never lowers the counter.
func (s *Sequence) SyncTo(ctx context.Context, maxID int64) error {
	if maxID <= idBase {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.col.UpdateOne(ctx,
		bson.M{"_id": employeeCounterKey},
		bson.M{"$max": bson.M{"seq": maxID - idBase}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("sync employee id counter: %w", err)
	}
	return nil
}
