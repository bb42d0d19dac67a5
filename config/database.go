package config

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

const (
	UserCollection       = "users"
	EmployeeCollection   = "employees"
	AttendanceCollection = "attendances"
	TaskCollection       = "tasks"
)

// MongoConnect dials uri and verifies the primary is reachable.
func MongoConnect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}
	return client, nil
}

// LedgerSort orders attendance entries newest first. Ties on timestamp fall back to insertion order.
var LedgerSort = bson.D{
	{Key: "timestamp", Value: -1},
	{Key: "created_at", Value: -1},
	{Key: "_id", Value: -1},
}

// LedgerIndexKeys is the per-employee attendance index. It carries the whole of LedgerSort after the
// equality key, otherwise MongoDB falls back to an in-memory sort of the employee's entries.
var LedgerIndexKeys = append(bson.D{{Key: "employee_id", Value: 1}}, LedgerSort...)

// InitDatabase creates the indexes the repositories rely on. It is safe to run on every start.
func InitDatabase(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		UserCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		EmployeeCollection: {
			{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
			{Keys: bson.D{{Key: "is_active", Value: 1}, {Key: "created_at", Value: -1}}},
		},
		AttendanceCollection: {
			// matches the full ledger sort so latest-per-employee and per-employee range queries never sort in memory
			{Keys: LedgerIndexKeys},
			{Keys: bson.D{{Key: "timestamp", Value: -1}}},
		},
		TaskCollection: {
			{Keys: bson.D{{Key: "assigned_to", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}}},
		},
	}
	for name, models := range indexes {
		if _, err := db.Collection(name).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("create indexes on %s: %w", name, err)
		}
	}
	return nil
}
