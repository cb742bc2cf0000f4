package services

// Services defined in this package:
// - AuthService: credential checks and token issuing
// - StudentService: student record CRUD with child collections
// - StaffService: staff record CRUD with typed profiles
// - ReportService: dashboard aggregation
// - ExportService: filtered CSV/JSON export
