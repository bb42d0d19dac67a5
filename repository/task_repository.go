package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"parlour-api/config"
	"parlour-api/models"
)

type TaskRepository struct {
	collection *mongo.Collection
}

func NewTaskRepository(db *mongo.Database) *TaskRepository {
	return &TaskRepository{
		collection: db.Collection(config.TaskCollection),
	}
}

func (r *TaskRepository) CreateTask(ctx context.Context, task *models.Task) error {
	now := time.Now()
	task.ID = primitive.NewObjectID()
	task.CreatedAt = now
	task.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, task); err != nil {
		return fmt.Errorf("failed to create task: %w", err)
	}
	return nil
}

func (r *TaskRepository) FindTaskByID(ctx context.Context, id primitive.ObjectID) (*models.Task, error) {
	var task models.Task
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&task)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find task by id: %w", err)
	}
	return &task, nil
}

// FindTasks lists tasks matching filter, newest first, with assignee and assigner joined in.
func (r *TaskRepository) FindTasks(ctx context.Context, filter bson.M) ([]models.TaskWithPeople, error) {
	if filter == nil {
		filter = bson.M{}
	}
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: filter}},
		{{Key: "$sort", Value: bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: config.EmployeeCollection},
			{Key: "localField", Value: "assigned_to"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "assigned_to"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$assigned_to"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: config.UserCollection},
			{Key: "localField", Value: "assigned_by"},
			{Key: "foreignField", Value: "_id"},
			{Key: "as", Value: "assigned_by"},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$assigned_by"},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
		{{Key: "$project", Value: bson.D{
			{Key: "title", Value: 1},
			{Key: "description", Value: 1},
			{Key: "status", Value: 1},
			{Key: "priority", Value: 1},
			{Key: "due_date", Value: 1},
			{Key: "recurrence_rule", Value: 1},
			{Key: "created_at", Value: 1},
			{Key: "updated_at", Value: 1},
			{Key: "assigned_to._id", Value: 1},
			{Key: "assigned_to.name", Value: 1},
			{Key: "assigned_to.email", Value: 1},
			{Key: "assigned_to.position", Value: 1},
			{Key: "assigned_by._id", Value: 1},
			{Key: "assigned_by.name", Value: 1},
			{Key: "assigned_by.email", Value: 1},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate tasks: %w", err)
	}
	defer cursor.Close(ctx)

	tasks := []models.TaskWithPeople{}
	if err = cursor.All(ctx, &tasks); err != nil {
		return nil, fmt.Errorf("failed to decode tasks: %w", err)
	}
	return tasks, nil
}

func (r *TaskRepository) FindTaskWithPeople(ctx context.Context, id primitive.ObjectID) (*models.TaskWithPeople, error) {
	tasks, err := r.FindTasks(ctx, bson.M{"_id": id})
	if err != nil {
		return nil, err
	}
	if len(tasks) == 0 {
		return nil, nil
	}
	return &tasks[0], nil
}

func (r *TaskRepository) UpdateTask(ctx context.Context, id primitive.ObjectID, updateData bson.M) (bool, error) {
	updateData["updated_at"] = time.Now()
	result, err := r.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": updateData})
	if err != nil {
		return false, fmt.Errorf("failed to update task: %w", err)
	}
	return result.MatchedCount > 0, nil
}

func (r *TaskRepository) DeleteTask(ctx context.Context, id primitive.ObjectID) (bool, error) {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return false, fmt.Errorf("failed to delete task: %w", err)
	}
	return result.DeletedCount > 0, nil
}

func (r *TaskRepository) CountByStatus(ctx context.Context) ([]models.TaskStatusCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.D{{Key: "_id", Value: 1}}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate task status: %w", err)
	}
	defer cursor.Close(ctx)

	counts := []models.TaskStatusCount{}
	if err = cursor.All(ctx, &counts); err != nil {
		return nil, fmt.Errorf("failed to decode task status: %w", err)
	}
	return counts, nil
}
