package dto

import "github.com/educompact/school-records/internal/app/models"

// ClassCount is one row of the students-per-class breakdown.
type ClassCount struct {
	Class string `json:"class"`
	Count int64  `json:"count"`
}

// StaffTypeCount is one row of the staff-per-type breakdown. StaffType is
// "Unknown" for staff rows without a type.
type StaffTypeCount struct {
	StaffType string `json:"staffType"`
	Count     int64  `json:"count"`
}

// ReportResponse is the dashboard aggregation returned by GET /reports.
type ReportResponse struct {
	TotalStudents    int64            `json:"totalStudents"`
	TotalStaff       int64            `json:"totalStaff"`
	ActiveStudents   int64            `json:"activeStudents"`
	InactiveStudents int64            `json:"inactiveStudents"`
	StudentsByClass  []ClassCount     `json:"studentsByClass"`
	StaffByType      []StaffTypeCount `json:"staffByType"`
	RecentStudents   []models.Student `json:"recentStudents"`
}
