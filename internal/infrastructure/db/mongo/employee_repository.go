package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/99minutos/employee-service/internal/core/domain"
)

const DefaultEmployeeCollection = "employee"

// EmployeeRepository implements ports.EmployeeRepository on a MongoDB collection.
type EmployeeRepository struct {
	col     *mongo.Collection
	timeout time.Duration
}

// NewEmployeeRepository wraps col. Each operation is bounded by timeout, or
// defaultTimeout when timeout is not positive.
func NewEmployeeRepository(col *mongo.Collection, timeout time.Duration) *EmployeeRepository {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &EmployeeRepository{col: col, timeout: timeout}
}

type employeeDocument struct {
	ObjectID    primitive.ObjectID `bson:"_id,omitempty"`
	ID          int64              `bson:"id"`
	Username    string             `bson:"username"`
	Designation string             `bson:"designation"`
	Email       string             `bson:"email"`
	Password    string             `bson:"password"`
	Role        string             `bson:"role"`
}

func toDocument(e *domain.Employee) employeeDocument {
	return employeeDocument{
		ID:          e.ID,
		Username:    e.Username,
		Designation: e.Designation,
		Email:       e.Email,
		Password:    e.PasswordHash,
		Role:        e.Role,
	}
}

func (d employeeDocument) toDomain() *domain.Employee {
	return &domain.Employee{
		ID:           d.ID,
		Username:     d.Username,
		Designation:  d.Designation,
		Email:        d.Email,
		PasswordHash: d.Password,
		Role:         d.Role,
	}
}

func (r *EmployeeRepository) Create(ctx context.Context, e *domain.Employee) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if _, err := r.col.InsertOne(ctx, toDocument(e)); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateUser
		}
		return fmt.Errorf("insert employee: %w", err)
	}
	return nil
}

func (r *EmployeeRepository) FindByID(ctx context.Context, id int64) (*domain.Employee, error) {
	return r.findOne(ctx, bson.M{"id": id})
}

func (r *EmployeeRepository) FindByEmail(ctx context.Context, email string) (*domain.Employee, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *EmployeeRepository) findOne(ctx context.Context, filter bson.M) (*domain.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var doc employeeDocument
	if err := r.col.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrEmployeeNotFound
		}
		return nil, fmt.Errorf("find employee: %w", err)
	}
	return doc.toDomain(), nil
}

func (r *EmployeeRepository) ExistsByEmailOrUsername(ctx context.Context, email, username string) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	filter := bson.M{"$or": bson.A{
		bson.M{"email": email},
		bson.M{"username": username},
	}}
	n, err := r.col.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("count employees: %w", err)
	}
	return n > 0, nil
}

func (r *EmployeeRepository) CountByRole(ctx context.Context, role string) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	n, err := r.col.CountDocuments(ctx, bson.M{"role": role})
	if err != nil {
		return 0, fmt.Errorf("count employees by role: %w", err)
	}
	return n, nil
}

// List returns every employee in the collection's natural order.
func (r *EmployeeRepository) List(ctx context.Context) ([]*domain.Employee, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	cur, err := r.col.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("list employees: %w", err)
	}
	defer cur.Close(ctx)

	var docs []employeeDocument
	if err := cur.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode employees: %w", err)
	}

	employees := make([]*domain.Employee, 0, len(docs))
	for _, d := range docs {
		employees = append(employees, d.toDomain())
	}
	return employees, nil
}

func (r *EmployeeRepository) Update(ctx context.Context, e *domain.Employee) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"username":    e.Username,
		"designation": e.Designation,
		"email":       e.Email,
		"password":    e.PasswordHash,
	}}
	res, err := r.col.UpdateOne(ctx, bson.M{"id": e.ID}, update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return domain.ErrDuplicateUser
		}
		return fmt.Errorf("update employee: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrEmployeeNotFound
	}
	return nil
}

func (r *EmployeeRepository) Delete(ctx context.Context, id int64) error {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	if _, err := r.col.DeleteOne(ctx, bson.M{"id": id}); err != nil {
		return fmt.Errorf("delete employee: %w", err)
	}
	return nil
}

// MaxID returns the highest employee id in the collection, or 0 when empty.
func (r *EmployeeRepository) MaxID(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	var doc employeeDocument
	opts := options.FindOne().SetSort(bson.D{{Key: "id", Value: -1}})
	if err := r.col.FindOne(ctx, bson.M{}, opts).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return 0, nil
		}
		return 0, fmt.Errorf("find max employee id: %w", err)
	}
	return doc.ID, nil
}

// EnsureIndexes creates the unique indexes backing id, email and username.
func (r *EmployeeRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "id", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "username", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "role", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
