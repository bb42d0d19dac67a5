package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AttendanceAction is the kind of punch recorded in the ledger.
type AttendanceAction string

const (
	ActionPunchIn  AttendanceAction = "punch_in"
	ActionPunchOut AttendanceAction = "punch_out"
)

// Valid reports whether a is one of the enumerated punch actions.
func (a AttendanceAction) Valid() bool {
	return a == ActionPunchIn || a == ActionPunchOut
}

// Attendance is a single ledger entry. Entries are never updated or deleted.
type Attendance struct {
	ID         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	EmployeeID primitive.ObjectID `json:"employeeId" bson:"employee_id"`
	Action     AttendanceAction   `json:"action" bson:"action"`
	Timestamp  time.Time          `json:"timestamp" bson:"timestamp"`
	Location   string             `json:"location,omitempty" bson:"location,omitempty"`
	Notes      string             `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt  time.Time          `json:"createdAt" bson:"created_at"`
}

// AttendanceWithEmployee is a ledger entry joined with the owning employee's display fields.
type AttendanceWithEmployee struct {
	ID         primitive.ObjectID `json:"id" bson:"_id"`
	EmployeeID primitive.ObjectID `json:"employeeId" bson:"employee_id"`
	Action     AttendanceAction   `json:"action" bson:"action"`
	Timestamp  time.Time          `json:"timestamp" bson:"timestamp"`
	Location   string             `json:"location,omitempty" bson:"location,omitempty"`
	Notes      string             `json:"notes,omitempty" bson:"notes,omitempty"`
	CreatedAt  time.Time          `json:"createdAt" bson:"created_at"`
	Employee   EmployeeSummary    `json:"employee" bson:"employee"`
}

// AttendanceFilter narrows a ledger query. Zero values mean "no constraint".
type AttendanceFilter struct {
	EmployeeID primitive.ObjectID
	StartTime  *time.Time
	EndTime    *time.Time
}

// PunchPayload is the body accepted by the punch endpoint.
type PunchPayload struct {
	EmployeeID string     `json:"employeeId" validate:"required,mongodb"`
	Action     string     `json:"action" validate:"required,oneof=punch_in punch_out"`
	Location   string     `json:"location,omitempty" validate:"omitempty,max=200"`
	Notes      string     `json:"notes,omitempty" validate:"omitempty,max=500"`
	Timestamp  *time.Time `json:"timestamp,omitempty"`
}

// AttendanceStatus is the check-in state derived from an employee's latest ledger entry.
type AttendanceStatus struct {
	IsCheckedIn  bool       `json:"isCheckedIn"`
	LastActivity *time.Time `json:"lastActivity"`
}

// EmployeeStatus is an employee record flattened together with its derived status.
type EmployeeStatus struct {
	Employee
	AttendanceStatus
}

// AttendanceUpdate is the payload pushed to the admin room after a successful punch.
type AttendanceUpdate struct {
	Attendance Attendance          `json:"attendance"`
	Employee   EmployeeWithCheckIn `json:"employee"`
}

// EmployeeWithCheckIn is the employee projection carried by AttendanceUpdate.
type EmployeeWithCheckIn struct {
	Employee
	IsCheckedIn bool `json:"isCheckedIn"`
}
