package services

import (
	"context"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/educompact/school-records/internal/app/models"
	"github.com/educompact/school-records/internal/app/repositories"
)

func newReportService(t *testing.T) (ReportService, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })

	// Dashboard queries run concurrently, so arrival order is not fixed.
	mock.MatchExpectationsInOrder(false)

	repos := repositories.NewRepositories(mock)
	return NewReportService(repos.ReportRepository), mock
}

func TestDashboard(t *testing.T) {
	svc, mock := newReportService(t)

	mock.ExpectQuery(`^SELECT COUNT\(\*\) FROM students$`).
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(int64(120)))
	mock.ExpectQuery(`^SELECT COUNT\(\*\) FROM staff$`).
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(int64(30)))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM students WHERE status =`).
		WithArgs(models.StatusActive).
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(int64(100)))
	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM students WHERE status =`).
		WithArgs(models.StatusInactive).
		WillReturnRows(mock.NewRows([]string{"count"}).AddRow(int64(20)))
	mock.ExpectQuery("SELECT class, COUNT").
		WillReturnRows(mock.NewRows([]string{"class", "count"}).
			AddRow("Grade 1", int64(18)))
	mock.ExpectQuery("SELECT staff_type, COUNT").
		WillReturnRows(mock.NewRows([]string{"staff_type", "count"}).
			AddRow("resident_teaching_staff", int64(12)).
			AddRow("", int64(3)))
	mock.ExpectQuery("SELECT .+ FROM students WHERE date_of_admission IS NOT NULL").
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(mock.NewRows([]string{"id"}))

	report, err := svc.Dashboard(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(120), report.TotalStudents)
	assert.Equal(t, int64(30), report.TotalStaff)
	assert.Equal(t, int64(100), report.ActiveStudents)
	assert.Equal(t, int64(20), report.InactiveStudents)

	require.Len(t, report.StudentsByClass, 1)
	assert.Equal(t, "Grade 1", report.StudentsByClass[0].Class)

	// Blank staff types surface as "Unknown".
	require.Len(t, report.StaffByType, 2)
	assert.Equal(t, "resident_teaching_staff", report.StaffByType[0].StaffType)
	assert.Equal(t, "Unknown", report.StaffByType[1].StaffType)

	// No recent admissions still yields an empty slice, not null.
	assert.NotNil(t, report.RecentStudents)
	assert.Empty(t, report.RecentStudents)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDashboardPropagatesErrors(t *testing.T) {
	svc, mock := newReportService(t)

	// Only the failing query is expected; the sibling queries error out as
	// unexpected calls, and either way Dashboard must surface a failure.
	mock.ExpectQuery(`^SELECT COUNT\(\*\) FROM students$`).
		WillReturnError(assert.AnError)

	_, err := svc.Dashboard(context.Background())
	assert.Error(t, err)
}
