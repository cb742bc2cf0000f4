package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/educompact/school-records/internal/app/models"
	"github.com/educompact/school-records/internal/pkg/apperrors"
)

func newMockPool(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(func() { mock.Close() })
	return mock
}

// anyArgs returns n AnyArg matchers for expectations that do not pin specific
// argument values; pgxmock requires the argument count to match exactly.
func anyArgs(n int) []any {
	args := make([]any, n)
	for i := range args {
		args[i] = pgxmock.AnyArg()
	}
	return args
}

// studentRowValues returns a row matching studentColumns for scanStudent.
func studentRowValues(id int64, status models.RecordStatus) []any {
	dob := time.Date(2015, time.June, 2, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, time.January, 10, 8, 0, 0, 0, time.UTC)
	return []any{
		id, "Amina", "", "Hassan", "",
		dob, "Female", "Tanzanian", "",
		"2024", (*time.Time)(nil), "Grade 3", "CCIS-001", status,
		"", "", "",
		"", (*time.Time)(nil), "",
		"", (*time.Time)(nil), "",
		"", "", "", "", "",
		"", "", "",
		false, false, false,
		"", "", false, 0.0,
		now, now,
	}
}

// expectStudentReload queues the queries GetByID issues after a write.
func expectStudentReload(mock pgxmock.PgxPoolIface, id int64, status models.RecordStatus) {
	mock.ExpectQuery("SELECT .+ FROM students WHERE id =").
		WithArgs(id).
		WillReturnRows(mock.NewRows(studentColumns).AddRow(studentRowValues(id, status)...))
	mock.ExpectQuery("SELECT .+ FROM guardians WHERE student_id =").
		WithArgs(id).
		WillReturnRows(mock.NewRows([]string{"id", "student_id", "relationship", "full_name", "occupation",
			"residential_address", "contact_phone", "whatsapp_number", "email_address", "preferred_contact"}))
	mock.ExpectQuery("SELECT .+ FROM emergency_contacts WHERE student_id =").
		WithArgs(id).
		WillReturnRows(mock.NewRows([]string{"id", "student_id", "full_names", "relationship", "contact_phone", "whatsapp_number"}))
	mock.ExpectQuery("SELECT .+ FROM student_doctors WHERE student_id =").
		WithArgs(id).
		WillReturnRows(mock.NewRows([]string{"id", "student_id", "full_names", "contact_phone"}))
	mock.ExpectQuery("SELECT .+ FROM student_exits WHERE student_id =").
		WithArgs(id).
		WillReturnError(pgx.ErrNoRows)
}

func TestStudentRepositoryGetByIDNotFound(t *testing.T) {
	mock := newMockPool(t)
	repo := NewStudentRepository(mock)

	mock.ExpectQuery("SELECT .+ FROM students WHERE id =").
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryGetByID(t *testing.T) {
	mock := newMockPool(t)
	repo := NewStudentRepository(mock)

	expectStudentReload(mock, 7, models.StatusActive)

	student, err := repo.GetByID(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, int64(7), student.ID)
	assert.Equal(t, "Amina", student.FirstName)
	assert.Equal(t, models.StatusActive, student.Status)
	assert.Nil(t, student.StudentExit)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryDelete(t *testing.T) {
	mock := newMockPool(t)
	repo := NewStudentRepository(mock)

	mock.ExpectExec("DELETE FROM students WHERE id =").
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))

	require.NoError(t, repo.Delete(context.Background(), 7))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryDeleteNotFound(t *testing.T) {
	mock := newMockPool(t)
	repo := NewStudentRepository(mock)

	mock.ExpectExec("DELETE FROM students WHERE id =").
		WithArgs(int64(99)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryUpdateNotFoundRollsBack(t *testing.T) {
	mock := newMockPool(t)
	repo := NewStudentRepository(mock)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE students SET").
		WithArgs(anyArgs(38)...).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	_, err := repo.Update(context.Background(), 99, &models.Student{FirstName: "Amina", Surname: "Hassan"})
	assert.ErrorIs(t, err, apperrors.ErrStudentNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryUpdateReplacesChildren(t *testing.T) {
	mock := newMockPool(t)
	repo := NewStudentRepository(mock)

	student := &models.Student{
		FirstName:   "Amina",
		Surname:     "Hassan",
		DateOfBirth: time.Date(2015, time.June, 2, 0, 0, 0, 0, time.UTC),
		Status:      models.StatusActive,
		Guardians: []models.Guardian{
			{FullName: "Fatma Hassan", Relationship: "Mother"},
			{FullName: "   "}, // blank rows are dropped
		},
		EmergencyContacts: []models.EmergencyContact{
			{FullNames: ""}, // nothing to insert
		},
		// Exit details on an ACTIVE student must not be written.
		StudentExit: &models.StudentExit{DestinationSchool: "Elsewhere"},
	}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE students SET").
		WithArgs(anyArgs(38)...).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("DELETE FROM guardians WHERE student_id =").
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 1))
	mock.ExpectExec("DELETE FROM emergency_contacts WHERE student_id =").
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec("DELETE FROM student_doctors WHERE student_id =").
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec("DELETE FROM student_exits WHERE student_id =").
		WithArgs(int64(7)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	// Only the guardian with a name survives; no emergency contact, doctor or
	// exit inserts follow.
	mock.ExpectExec("INSERT INTO guardians").
		WithArgs(anyArgs(9)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	expectStudentReload(mock, 7, models.StatusActive)

	got, err := repo.Update(context.Background(), 7, student)
	require.NoError(t, err)
	assert.Equal(t, int64(7), got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryCreateWritesExitForInactive(t *testing.T) {
	mock := newMockPool(t)
	repo := NewStudentRepository(mock)

	student := &models.Student{
		FirstName:   "Omar",
		Surname:     "Ali",
		DateOfBirth: time.Date(2014, time.March, 1, 0, 0, 0, 0, time.UTC),
		Status:      models.StatusInactive,
		StudentExit: &models.StudentExit{DestinationSchool: "Other School"},
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO students .+RETURNING id").
		WithArgs(anyArgs(37)...).
		WillReturnRows(mock.NewRows([]string{"id"}).AddRow(int64(11)))
	mock.ExpectExec("INSERT INTO student_exits").
		WithArgs(anyArgs(9)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	expectStudentReload(mock, 11, models.StatusInactive)

	got, err := repo.Create(context.Background(), student)
	require.NoError(t, err)
	assert.Equal(t, int64(11), got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryCreateRollsBackOnChildFailure(t *testing.T) {
	mock := newMockPool(t)
	repo := NewStudentRepository(mock)

	student := &models.Student{
		FirstName:   "Omar",
		Surname:     "Ali",
		DateOfBirth: time.Date(2014, time.March, 1, 0, 0, 0, 0, time.UTC),
		Status:      models.StatusActive,
		Guardians:   []models.Guardian{{FullName: "Ali Senior"}},
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO students .+RETURNING id").
		WithArgs(anyArgs(37)...).
		WillReturnRows(mock.NewRows([]string{"id"}).AddRow(int64(11)))
	mock.ExpectExec("INSERT INTO guardians").
		WithArgs(anyArgs(9)...).
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	_, err := repo.Create(context.Background(), student)
	assert.Error(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryList(t *testing.T) {
	mock := newMockPool(t)
	repo := NewStudentRepository(mock)

	listColumns := append(append([]string{}, studentColumns...), "count")
	rowValues := append(studentRowValues(7, models.StatusActive), int64(23))

	mock.ExpectQuery("SELECT .+ FROM students").
		WillReturnRows(mock.NewRows(listColumns).AddRow(rowValues...))
	mock.ExpectQuery("SELECT .+ FROM guardians WHERE student_id = ANY").
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(mock.NewRows([]string{"student_id", "full_name", "relationship"}).
			AddRow(int64(7), "Fatma Hassan", "Mother"))

	students, total, err := repo.List(context.Background(), "", 1, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(23), total)
	require.Len(t, students, 1)
	require.Len(t, students[0].Guardians, 1)
	assert.Equal(t, "Fatma Hassan", students[0].Guardians[0].FullName)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryListClampsPaging(t *testing.T) {
	mock := newMockPool(t)
	repo := NewStudentRepository(mock)

	listColumns := append(append([]string{}, studentColumns...), "count")

	mock.ExpectQuery(`SELECT .+ FROM students .+ LIMIT 10 OFFSET 0`).
		WillReturnRows(mock.NewRows(listColumns))
	mock.ExpectQuery(`SELECT .+ FROM students .+ LIMIT 10 OFFSET 10`).
		WillReturnRows(mock.NewRows(listColumns))

	_, _, err := repo.List(context.Background(), "", 0, 0)
	require.NoError(t, err)

	// An oversized limit falls back to the default page size.
	_, _, err = repo.List(context.Background(), "", 2, 500)
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStudentRepositoryExportFilters(t *testing.T) {
	mock := newMockPool(t)
	repo := NewStudentRepository(mock)

	from := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	filter := StudentExportFilter{
		Class:       "Grade 3",
		Status:      "ACTIVE",
		Nationality: "Tanz",
		DateFrom:    &from,
	}

	mock.ExpectQuery("SELECT .+ FROM students WHERE class = .+ AND status = .+ AND nationality LIKE .+ AND date_of_admission >=").
		WithArgs("Grade 3", "ACTIVE", "%Tanz%", from).
		WillReturnRows(mock.NewRows(studentColumns).AddRow(studentRowValues(7, models.StatusActive)...))
	mock.ExpectQuery("SELECT .+ FROM guardians WHERE student_id = ANY").
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(mock.NewRows([]string{"student_id", "full_name", "relationship"}))

	students, err := repo.Export(context.Background(), filter)
	require.NoError(t, err)
	assert.Len(t, students, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
