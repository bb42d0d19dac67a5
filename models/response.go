package models

import "time"

type LoginSuccessResponse struct {
	Message string `json:"message" example:"Login successful"`
	Token   string `json:"token" example:"v2.local.Ft9QcxZhJXEYyb7-bMM..."`
	User    User   `json:"user"`
}

type PunchSuccessResponse struct {
	Message    string           `json:"message" example:"Successfully punch in"`
	Attendance Attendance       `json:"attendance"`
	Status     AttendanceStatus `json:"status"`
}

type EmployeeStatusResponse struct {
	Employees []EmployeeStatus `json:"employees"`
}

type AttendanceListResponse struct {
	Attendance []AttendanceWithEmployee `json:"attendance"`
}

type ErrorResponse struct {
	Error string `json:"error" example:"Employee not found"`
	Code  string `json:"code,omitempty" example:"not_found"`
}

type ValidationErrorResponse struct {
	Error  string      `json:"error" example:"Validation failed"`
	Code   string      `json:"code" example:"validation_failed"`
	Errors interface{} `json:"errors"`
}

type UserResponse struct {
	Message string `json:"message,omitempty" example:"User created successfully"`
	User    User   `json:"user"`
}

type EmployeeResponse struct {
	Message  string   `json:"message,omitempty" example:"Employee created successfully"`
	Employee Employee `json:"employee"`
}

type EmployeeListResponse struct {
	Employees []Employee `json:"employees"`
}

type TaskResponse struct {
	Message string         `json:"message,omitempty" example:"Task created successfully"`
	Task    TaskWithPeople `json:"task"`
}

type TaskListResponse struct {
	Tasks []TaskWithPeople `json:"tasks"`
}

type TaskOccurrencesResponse struct {
	TaskID      string      `json:"taskId"`
	Occurrences []time.Time `json:"occurrences"`
}

type MessageResponse struct {
	Message string `json:"message" example:"Employee deactivated successfully"`
}
