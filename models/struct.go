package models

type DepartmentCount struct {
	Department string `bson:"_id" json:"department"`
	Count      int64  `bson:"count" json:"count"`
}

type DashboardStats struct {
	ActiveEmployees        int64             `json:"activeEmployees"`
	CheckedInEmployees     int64             `json:"checkedInEmployees"`
	TasksByStatus          []TaskStatusCount `json:"tasksByStatus"`
	DepartmentDistribution []DepartmentCount `json:"departmentDistribution"`
}
