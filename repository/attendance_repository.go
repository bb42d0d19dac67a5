package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"parlour-api/config"
	"parlour-api/models"
)

// AttendanceRepository is the append-only punch ledger. It deliberately offers no update or delete.
type AttendanceRepository struct {
	collection *mongo.Collection
}

func NewAttendanceRepository(db *mongo.Database) *AttendanceRepository {
	return &AttendanceRepository{
		collection: db.Collection(config.AttendanceCollection),
	}
}

var ledgerOrder = config.LedgerSort

func (r *AttendanceRepository) CreateAttendance(ctx context.Context, attendance *models.Attendance) error {
	if attendance.ID.IsZero() {
		attendance.ID = primitive.NewObjectID()
	}
	if _, err := r.collection.InsertOne(ctx, attendance); err != nil {
		return fmt.Errorf("failed to create attendance: %w", err)
	}
	return nil
}

// FindLatestByEmployee returns the employee's newest ledger entry, or nil when there is none.
func (r *AttendanceRepository) FindLatestByEmployee(ctx context.Context, employeeID primitive.ObjectID) (*models.Attendance, error) {
	var attendance models.Attendance
	opts := options.FindOne().SetSort(ledgerOrder)

	err := r.collection.FindOne(ctx, bson.M{"employee_id": employeeID}, opts).Decode(&attendance)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find latest attendance: %w", err)
	}
	return &attendance, nil
}

// FindAttendances returns entries matching filter newest first, each joined with its employee.
func (r *AttendanceRepository) FindAttendances(ctx context.Context, filter models.AttendanceFilter) ([]models.AttendanceWithEmployee, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: attendanceMatch(filter)}},
		{{Key: "$sort", Value: ledgerOrder}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: config.EmployeeCollection},
			{Key: "localField", Value: "employee_id"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "employee"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$employee"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "employee_id", Value: 1},
			{Key: "action", Value: 1},
			{Key: "timestamp", Value: 1},
			{Key: "location", Value: 1},
			{Key: "notes", Value: 1},
			{Key: "created_at", Value: 1},
			{Key: "employee._id", Value: 1},
			{Key: "employee.name", Value: 1},
			{Key: "employee.email", Value: 1},
			{Key: "employee.phone", Value: 1},
			{Key: "employee.position", Value: 1},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate attendance: %w", err)
	}
	defer cursor.Close(ctx)

	results := []models.AttendanceWithEmployee{}
	if err = cursor.All(ctx, &results); err != nil {
		return nil, fmt.Errorf("failed to decode attendance: %w", err)
	}
	return results, nil
}

func attendanceMatch(filter models.AttendanceFilter) bson.M {
	match := bson.M{}
	if !filter.EmployeeID.IsZero() {
		match["employee_id"] = filter.EmployeeID
	}
	if filter.StartTime != nil || filter.EndTime != nil {
		window := bson.M{}
		if filter.StartTime != nil {
			window["$gte"] = *filter.StartTime
		}
		if filter.EndTime != nil {
			window["$lte"] = *filter.EndTime
		}
		match["timestamp"] = window
	}
	return match
}
