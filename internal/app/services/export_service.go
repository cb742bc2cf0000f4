package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/educompact/school-records/internal/app/models"
	"github.com/educompact/school-records/internal/app/models/dto"
	"github.com/educompact/school-records/internal/app/repositories"
	"github.com/educompact/school-records/internal/pkg/apperrors"
	"github.com/educompact/school-records/internal/pkg/helpers"
)

const (
	ExportTypeStudents = "students"
	ExportTypeStaff    = "staff"

	ExportFormatCSV  = "excel"
	ExportFormatJSON = "json"
)

var studentCSVHeaders = []string{
	"Name", "Registration No", "Class", "Status", "Date of Birth",
	"Date of Admission", "Nationality", "Gender", "Guardian Name",
	"Guardian Phone", "Created Date",
}

var staffCSVHeaders = []string{
	"Name", "Staff ID", "Designation", "Staff Type", "Employment Date",
	"Status", "Nationality", "Email", "Phone", "Highest Qualification",
	"Years Experience", "Emergency Contact", "Created Date",
}

// ExportResult is a rendered export ready to be written to the response.
type ExportResult struct {
	Format   string
	Filename string              // set for CSV
	Content  []byte              // set for CSV
	Payload  *dto.ExportResponse // set for JSON
}

// ExportService renders filtered record exports as CSV or JSON.
type ExportService interface {
	Export(ctx context.Context, query dto.ExportQuery) (*ExportResult, error)
}

type exportService struct {
	studentRepo *repositories.StudentRepository
	staffRepo   *repositories.StaffRepository
}

// NewExportService creates a new ExportService
func NewExportService(studentRepo *repositories.StudentRepository, staffRepo *repositories.StaffRepository) ExportService {
	return &exportService{studentRepo: studentRepo, staffRepo: staffRepo}
}

func (s *exportService) Export(ctx context.Context, query dto.ExportQuery) (*ExportResult, error) {
	exportType := query.Type
	if exportType == "" {
		exportType = ExportTypeStudents
	}
	if exportType != ExportTypeStudents && exportType != ExportTypeStaff {
		return nil, apperrors.NewBadRequestError(fmt.Sprintf("invalid export type: %s", query.Type))
	}

	format := query.Format
	if format == "" {
		format = ExportFormatJSON
	}

	dateFrom, dateTo, err := parseDateRange(query)
	if err != nil {
		return nil, err
	}

	filters := appliedFilters(query, exportType)

	var data interface{}
	var total int
	var csvContent string

	if exportType == ExportTypeStudents {
		filter := repositories.StudentExportFilter{
			Class:       filterValue(query.Class),
			Status:      filterValue(query.Status),
			Nationality: query.Nationality,
			DateFrom:    dateFrom,
			DateTo:      dateTo,
		}
		students, err := s.studentRepo.Export(ctx, filter)
		if err != nil {
			return nil, err
		}
		if students == nil {
			students = []models.Student{}
		}
		data = students
		total = len(students)
		if format == ExportFormatCSV {
			csvContent = buildStudentCSV(students)
		}
	} else {
		filter := repositories.StaffExportFilter{
			StaffType:   filterValue(query.StaffType),
			Status:      filterValue(query.Status),
			Nationality: query.Nationality,
			DateFrom:    dateFrom,
			DateTo:      dateTo,
		}
		staff, err := s.staffRepo.Export(ctx, filter)
		if err != nil {
			return nil, err
		}
		if staff == nil {
			staff = []models.Staff{}
		}
		data = staff
		total = len(staff)
		if format == ExportFormatCSV {
			csvContent = buildStaffCSV(staff)
		}
	}

	if format == ExportFormatCSV {
		return &ExportResult{
			Format:   ExportFormatCSV,
			Filename: fmt.Sprintf("%s-report-%s.csv", exportType, time.Now().UTC().Format("2006-01-02")),
			Content:  []byte(csvContent),
		}, nil
	}

	return &ExportResult{
		Format: ExportFormatJSON,
		Payload: &dto.ExportResponse{
			Data: data,
			Metadata: dto.ExportMetadata{
				Total:       total,
				Type:        exportType,
				Filters:     filters,
				GeneratedAt: time.Now().UTC(),
				ExportedBy:  "System",
			},
		},
	}, nil
}

// parseDateRange coerces dateFrom/dateTo to day boundaries.
func parseDateRange(query dto.ExportQuery) (*time.Time, *time.Time, error) {
	var dateFrom, dateTo *time.Time

	if query.DateFrom != "" {
		t, err := helpers.ParseDate(query.DateFrom)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid dateFrom: %w", err)
		}
		from := helpers.StartOfDay(*t)
		dateFrom = &from
	}
	if query.DateTo != "" {
		t, err := helpers.ParseDate(query.DateTo)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid dateTo: %w", err)
		}
		to := helpers.EndOfDay(*t)
		dateTo = &to
	}

	return dateFrom, dateTo, nil
}

// appliedFilters collects the filters relevant to the export type for the
// JSON metadata block. A nil map serializes as null.
func appliedFilters(query dto.ExportQuery, exportType string) map[string]string {
	filters := map[string]string{}

	if exportType == ExportTypeStudents {
		if v := filterValue(query.Class); v != "" {
			filters["class"] = v
		}
	} else {
		if v := filterValue(query.StaffType); v != "" {
			filters["staffType"] = v
		}
	}
	if v := filterValue(query.Status); v != "" {
		filters["status"] = v
	}
	if query.Nationality != "" {
		filters["nationality"] = query.Nationality
	}
	if query.DateFrom != "" {
		filters["dateFrom"] = query.DateFrom
	}
	if query.DateTo != "" {
		filters["dateTo"] = query.DateTo
	}

	if len(filters) == 0 {
		return nil
	}
	return filters
}

// filterValue treats "all" as no filter.
func filterValue(v string) string {
	if v == "all" {
		return ""
	}
	return v
}

func buildStudentCSV(students []models.Student) string {
	lines := make([]string, 0, len(students)+1)
	lines = append(lines, strings.Join(studentCSVHeaders, ","))

	for _, s := range students {
		var guardianName, guardianPhone string
		if len(s.Guardians) > 0 {
			guardianName = s.Guardians[0].FullName
			guardianPhone = s.Guardians[0].ContactPhone
		}

		fields := []string{
			fullName(s.FirstName, s.MiddleName, s.Surname),
			orNA(s.RegistrationNo),
			orNA(s.Class),
			orNA(string(s.Status)),
			shortDate(&s.DateOfBirth),
			shortDate(s.DateOfAdmission),
			orNA(s.Nationality),
			orNA(s.Gender),
			orNA(guardianName),
			orNA(guardianPhone),
			shortDate(&s.CreatedAt),
		}
		lines = append(lines, quoteJoin(fields))
	}

	return strings.Join(lines, "\n")
}

func buildStaffCSV(staff []models.Staff) string {
	lines := make([]string, 0, len(staff)+1)
	lines = append(lines, strings.Join(staffCSVHeaders, ","))

	for _, s := range staff {
		var contactName string
		if len(s.EmergencyContacts) > 0 {
			contactName = s.EmergencyContacts[0].FullNames
		}

		staffType := "N/A"
		if s.StaffType != nil {
			staffType = humanizeStaffType(string(*s.StaffType))
		}

		fields := []string{
			fullName(s.FirstName, s.MiddleName, s.Surname),
			orNA(s.StaffID),
			orNA(s.Designation),
			staffType,
			shortDate(s.DateOfEmployment),
			orNA(string(s.Status)),
			orNA(s.Nationality),
			orNA(s.Email),
			orNA(s.Phone),
			orNA(s.HighestQualification),
			fmt.Sprintf("%d", s.YearsOfWorkExperience),
			orNA(contactName),
			shortDate(&s.CreatedAt),
		}
		lines = append(lines, quoteJoin(fields))
	}

	return strings.Join(lines, "\n")
}

// humanizeStaffType turns "resident_teaching_staff" into "Resident Teaching
// Staff".
func humanizeStaffType(staffType string) string {
	words := strings.Split(strings.ReplaceAll(staffType, "_", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// fullName joins the non-blank name parts with single spaces.
func fullName(first, middle, last string) string {
	parts := make([]string, 0, 3)
	for _, p := range []string{first, middle, last} {
		if strings.TrimSpace(p) != "" {
			parts = append(parts, strings.TrimSpace(p))
		}
	}
	return strings.Join(parts, " ")
}

func orNA(v string) string {
	if v == "" {
		return "N/A"
	}
	return v
}

// shortDate renders a date as M/D/YYYY, or "N/A" when absent.
func shortDate(t *time.Time) string {
	if t == nil || t.IsZero() {
		return "N/A"
	}
	return fmt.Sprintf("%d/%d/%d", int(t.Month()), t.Day(), t.Year())
}

// quoteJoin wraps every field in double quotes. Embedded quotes are doubled
// per RFC 4180.
func quoteJoin(fields []string) string {
	quoted := make([]string, len(fields))
	for i, f := range fields {
		quoted[i] = `"` + strings.ReplaceAll(f, `"`, `""`) + `"`
	}
	return strings.Join(quoted, ",")
}
