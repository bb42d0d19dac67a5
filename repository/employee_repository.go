package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"parlour-api/config"
	"parlour-api/models"
)

type EmployeeRepository struct {
	collection *mongo.Collection
}

func NewEmployeeRepository(db *mongo.Database) *EmployeeRepository {
	return &EmployeeRepository{
		collection: db.Collection(config.EmployeeCollection),
	}
}

func (r *EmployeeRepository) CreateEmployee(ctx context.Context, employee *models.Employee) error {
	now := time.Now()
	employee.ID = primitive.NewObjectID()
	employee.CreatedAt = now
	employee.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, employee); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create employee: %w", err)
	}
	return nil
}

func (r *EmployeeRepository) FindEmployeeByID(ctx context.Context, id primitive.ObjectID) (*models.Employee, error) {
	var employee models.Employee
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&employee)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find employee by id: %w", err)
	}
	return &employee, nil
}

// FindEmployees lists employees newest first. A nil active matches both states.
func (r *EmployeeRepository) FindEmployees(ctx context.Context, active *bool) ([]models.Employee, error) {
	filter := bson.M{}
	if active != nil {
		filter["is_active"] = *active
	}
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to find employees: %w", err)
	}
	defer cursor.Close(ctx)

	employees := []models.Employee{}
	if err = cursor.All(ctx, &employees); err != nil {
		return nil, fmt.Errorf("failed to decode employees: %w", err)
	}
	return employees, nil
}

func (r *EmployeeRepository) FindActiveEmployees(ctx context.Context) ([]models.Employee, error) {
	active := true
	return r.FindEmployees(ctx, &active)
}

// UpdateEmployee applies updateData and returns the stored document, or nil when id is unknown.
func (r *EmployeeRepository) UpdateEmployee(ctx context.Context, id primitive.ObjectID, updateData bson.M) (*models.Employee, error) {
	updateData["updated_at"] = time.Now()
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var employee models.Employee
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": updateData}, opts).Decode(&employee)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicateEmail
		}
		return nil, fmt.Errorf("failed to update employee: %w", err)
	}
	return &employee, nil
}

// DeactivateEmployee clears is_active. Attendance history keeps referencing the record.
func (r *EmployeeRepository) DeactivateEmployee(ctx context.Context, id primitive.ObjectID) (*models.Employee, error) {
	return r.UpdateEmployee(ctx, id, bson.M{"is_active": false})
}

func (r *EmployeeRepository) CountActiveEmployees(ctx context.Context) (int64, error) {
	n, err := r.collection.CountDocuments(ctx, bson.M{"is_active": true})
	if err != nil {
		return 0, fmt.Errorf("failed to count active employees: %w", err)
	}
	return n, nil
}

func (r *EmployeeRepository) DepartmentDistribution(ctx context.Context) ([]models.DepartmentCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"is_active": true, "department": bson.M{"$ne": ""}}}},
		{{Key: "$group", Value: bson.M{
			"_id":   "$department",
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "count", Value: -1}, {Key: "_id", Value: 1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate department distribution: %w", err)
	}
	defer cursor.Close(ctx)

	counts := []models.DepartmentCount{}
	if err = cursor.All(ctx, &counts); err != nil {
		return nil, fmt.Errorf("failed to decode department distribution: %w", err)
	}
	return counts, nil
}
