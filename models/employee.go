package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Employee struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name       string             `json:"name" bson:"name"`
	Email      string             `json:"email" bson:"email"`
	Phone      string             `json:"phone" bson:"phone"`
	Position   string             `json:"position" bson:"position"`
	Department string             `json:"department" bson:"department"`
	JoinDate   time.Time          `json:"joinDate" bson:"join_date"`
	IsActive   bool               `json:"isActive" bson:"is_active"`
	CreatedAt  time.Time          `json:"createdAt" bson:"created_at"`
	UpdatedAt  time.Time          `json:"updatedAt" bson:"updated_at"`
}

// EmployeeSummary is the display projection attached to attendance and task listings.
type EmployeeSummary struct {
	ID       primitive.ObjectID `json:"id" bson:"_id"`
	Name     string             `json:"name" bson:"name"`
	Email    string             `json:"email" bson:"email"`
	Phone    string             `json:"phone,omitempty" bson:"phone,omitempty"`
	Position string             `json:"position" bson:"position"`
}

type EmployeeCreatePayload struct {
	Name       string `json:"name" validate:"required,min=2,max=100"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"required,min=5,max=30"`
	Position   string `json:"position" validate:"required,max=100"`
	Department string `json:"department" validate:"required,max=100"`
	JoinDate   string `json:"joinDate" validate:"required,datetime=2006-01-02"`
}

type EmployeeUpdatePayload struct {
	Name       string `json:"name,omitempty" validate:"omitempty,min=2,max=100"`
	Email      string `json:"email,omitempty" validate:"omitempty,email"`
	Phone      string `json:"phone,omitempty" validate:"omitempty,min=5,max=30"`
	Position   string `json:"position,omitempty" validate:"omitempty,max=100"`
	Department string `json:"department,omitempty" validate:"omitempty,max=100"`
	JoinDate   string `json:"joinDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	IsActive   *bool  `json:"isActive,omitempty"`
}
