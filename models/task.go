package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	TaskStatusPending    = "pending"
	TaskStatusInProgress = "in_progress"
	TaskStatusCompleted  = "completed"
	TaskStatusCancelled  = "cancelled"

	TaskPriorityLow    = "low"
	TaskPriorityMedium = "medium"
	TaskPriorityHigh   = "high"
)

type Task struct {
	ID             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Title          string             `json:"title" bson:"title"`
	Description    string             `json:"description" bson:"description"`
	AssignedTo     primitive.ObjectID `json:"assignedTo" bson:"assigned_to"`
	AssignedBy     primitive.ObjectID `json:"assignedBy" bson:"assigned_by"`
	Status         string             `json:"status" bson:"status"`
	Priority       string             `json:"priority" bson:"priority"`
	DueDate        time.Time          `json:"dueDate" bson:"due_date"`
	RecurrenceRule string             `json:"recurrenceRule,omitempty" bson:"recurrence_rule,omitempty"`
	CreatedAt      time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updated_at"`
}

// TaskWithPeople is a task joined with its assignee and assigner.
type TaskWithPeople struct {
	ID             primitive.ObjectID `json:"id" bson:"_id"`
	Title          string             `json:"title" bson:"title"`
	Description    string             `json:"description" bson:"description"`
	Status         string             `json:"status" bson:"status"`
	Priority       string             `json:"priority" bson:"priority"`
	DueDate        time.Time          `json:"dueDate" bson:"due_date"`
	RecurrenceRule string             `json:"recurrenceRule,omitempty" bson:"recurrence_rule,omitempty"`
	AssignedTo     EmployeeSummary    `json:"assignedTo" bson:"assigned_to"`
	AssignedBy     UserSummary        `json:"assignedBy" bson:"assigned_by"`
	CreatedAt      time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updated_at"`
}

type TaskCreatePayload struct {
	Title          string `json:"title" validate:"required,max=200"`
	Description    string `json:"description" validate:"required,max=2000"`
	AssignedTo     string `json:"assignedTo" validate:"required,mongodb"`
	Priority       string `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	DueDate        string `json:"dueDate" validate:"required,datetime=2006-01-02"`
	RecurrenceRule string `json:"recurrenceRule,omitempty" validate:"omitempty,rrule"`
}

type TaskUpdatePayload struct {
	Title          string `json:"title,omitempty" validate:"omitempty,max=200"`
	Description    string `json:"description,omitempty" validate:"omitempty,max=2000"`
	AssignedTo     string `json:"assignedTo,omitempty" validate:"omitempty,mongodb"`
	Status         string `json:"status,omitempty" validate:"omitempty,oneof=pending in_progress completed cancelled"`
	Priority       string `json:"priority,omitempty" validate:"omitempty,oneof=low medium high"`
	DueDate        string `json:"dueDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	RecurrenceRule string `json:"recurrenceRule,omitempty" validate:"omitempty,rrule"`
}

type TaskStatusCount struct {
	Status string `bson:"_id" json:"status"`
	Count  int64  `bson:"count" json:"count"`
}
