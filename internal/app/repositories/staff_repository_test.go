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

// staffRowValues returns a row matching staffColumns for scanStaff.
func staffRowValues(id int64, staffType *models.StaffType, status models.RecordStatus) []any {
	now := time.Date(2024, time.February, 1, 0, 0, 0, 0, time.UTC)
	return []any{
		id, "Grace", "", "Mushi", "Female", (*time.Time)(nil),
		"Tanzanian", "grace@example.com", "+255711111111", "",
		"STF-10", "Teacher", staffType, (*time.Time)(nil),
		"BEd", 7, 2,
		"", "", status,
		now, now,
	}
}

// expectStaffReload queues the queries GetByID issues after a write.
func expectStaffReload(mock pgxmock.PgxPoolIface, id int64, staffType *models.StaffType, status models.RecordStatus) {
	mock.ExpectQuery("SELECT .+ FROM staff WHERE id =").
		WithArgs(id).
		WillReturnRows(mock.NewRows(staffColumns).AddRow(staffRowValues(id, staffType, status)...))
	mock.ExpectQuery("SELECT .+ FROM staff_emergency_contacts WHERE staff_id = ANY").
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(mock.NewRows([]string{"id", "staff_id", "full_names", "relationship", "contact_phone", "whatsapp"}))
	mock.ExpectQuery("SELECT .+ FROM resident_teaching_staff_profiles").
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(mock.NewRows([]string{"id", "staff_id", "national_id_no", "national_id_attachment",
			"nssf_no", "nssf_attachment", "tin_no", "tin_attachment", "teaching_license_no", "teaching_license_attachment"}))
	mock.ExpectQuery("SELECT .+ FROM resident_non_teaching_staff_profiles").
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(mock.NewRows([]string{"id", "staff_id", "national_id_no", "national_id_attachment",
			"nssf_no", "nssf_attachment", "tin_no", "tin_attachment"}))
	mock.ExpectQuery("SELECT .+ FROM international_teaching_staff_profiles").
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(mock.NewRows([]string{"id", "staff_id", "tcu_no", "tcu_attachment",
			"teaching_license_no", "teaching_license_attachment", "expiration_date",
			"work_permit_no", "work_permit_expiration_date", "work_permit_attachment",
			"resident_permit_no", "resident_permit_expiration_date", "resident_permit_attachment",
			"passport_no", "passport_expiration_date", "passport_attachment"}))
	mock.ExpectQuery("SELECT .+ FROM international_non_teaching_staff_profiles").
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(mock.NewRows([]string{"id", "staff_id",
			"work_permit_no", "work_permit_expiration_date", "work_permit_attachment",
			"resident_permit_no", "resident_permit_expiration_date", "resident_permit_attachment",
			"passport_no", "passport_expiration_date", "passport_attachment"}))
	mock.ExpectQuery("SELECT .+ FROM staff_exits").
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(mock.NewRows([]string{"id", "staff_id", "date_of_exit", "notice", "certificate_of_service",
			"letter_of_no_objection_ref_no", "letter_of_no_objection_attachment", "staff_clearance_form", "exit_statement"}))
}

func TestStaffRepositoryGetByIDNotFound(t *testing.T) {
	mock := newMockPool(t)
	repo := NewStaffRepository(mock)

	mock.ExpectQuery("SELECT .+ FROM staff WHERE id =").
		WithArgs(int64(99)).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrStaffNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStaffRepositoryDeleteNotFound(t *testing.T) {
	mock := newMockPool(t)
	repo := NewStaffRepository(mock)

	mock.ExpectExec("DELETE FROM staff WHERE id =").
		WithArgs(int64(99)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	err := repo.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, apperrors.ErrStaffNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStaffRepositoryUpdateClearsAllChildTables(t *testing.T) {
	mock := newMockPool(t)
	repo := NewStaffRepository(mock)

	staffType := models.StaffTypeResidentTeaching
	staff := &models.Staff{
		FirstName: "Grace",
		Surname:   "Mushi",
		StaffType: &staffType,
		Status:    models.StatusActive,
		EmergencyContacts: []models.StaffEmergencyContact{
			{FullNames: "Neema Mushi", Relationship: "Sister"},
		},
		ResidentTeachingStaffProfile: &models.ResidentTeachingProfile{NationalIDNo: "NIDA-1"},
		// A stale profile for a different type must not be written.
		InternationalTeachingStaffProfile: &models.InternationalTeachingProfile{TcuNo: "TCU-9"},
	}

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE staff SET").
		WithArgs(anyArgs(20)...).
		WillReturnResult(pgxmock.NewResult("UPDATE", 1))
	mock.ExpectExec("DELETE FROM staff_emergency_contacts WHERE staff_id =").
		WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec("DELETE FROM resident_teaching_staff_profiles WHERE staff_id =").
		WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec("DELETE FROM resident_non_teaching_staff_profiles WHERE staff_id =").
		WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec("DELETE FROM international_teaching_staff_profiles WHERE staff_id =").
		WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec("DELETE FROM international_non_teaching_staff_profiles WHERE staff_id =").
		WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec("DELETE FROM staff_exits WHERE staff_id =").
		WithArgs(int64(5)).
		WillReturnResult(pgxmock.NewResult("DELETE", 0))
	mock.ExpectExec("INSERT INTO staff_emergency_contacts").
		WithArgs(anyArgs(5)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	// Only the resident teaching profile matches the staff type.
	mock.ExpectExec("INSERT INTO resident_teaching_staff_profiles").
		WithArgs(anyArgs(9)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	expectStaffReload(mock, 5, &staffType, models.StatusActive)

	got, err := repo.Update(context.Background(), 5, staff)
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStaffRepositoryUpdateNotFoundRollsBack(t *testing.T) {
	mock := newMockPool(t)
	repo := NewStaffRepository(mock)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE staff SET").
		WithArgs(anyArgs(20)...).
		WillReturnResult(pgxmock.NewResult("UPDATE", 0))
	mock.ExpectRollback()

	_, err := repo.Update(context.Background(), 99, &models.Staff{FirstName: "Grace", Surname: "Mushi"})
	assert.ErrorIs(t, err, apperrors.ErrStaffNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStaffRepositoryCreateWritesExitForInactive(t *testing.T) {
	mock := newMockPool(t)
	repo := NewStaffRepository(mock)

	exitDate := time.Date(2024, time.June, 30, 0, 0, 0, 0, time.UTC)
	staff := &models.Staff{
		FirstName: "Juma",
		Surname:   "Kondo",
		Status:    models.StatusInactive,
		StaffExit: &models.StaffExit{DateOfExit: &exitDate, Notice: "30 days"},
	}

	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO staff .+RETURNING id").
		WithArgs(anyArgs(19)...).
		WillReturnRows(mock.NewRows([]string{"id"}).AddRow(int64(3)))
	mock.ExpectExec("INSERT INTO staff_exits").
		WithArgs(anyArgs(8)...).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	expectStaffReload(mock, 3, nil, models.StatusInactive)

	got, err := repo.Create(context.Background(), staff)
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.ID)
	assert.Nil(t, got.StaffType)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStaffRepositoryExportFilters(t *testing.T) {
	mock := newMockPool(t)
	repo := NewStaffRepository(mock)

	staffType := models.StaffTypeResidentTeaching
	filter := StaffExportFilter{
		StaffType: string(staffType),
		Status:    "ACTIVE",
	}

	mock.ExpectQuery("SELECT .+ FROM staff WHERE staff_type = .+ AND status =").
		WithArgs(string(staffType), "ACTIVE").
		WillReturnRows(mock.NewRows(staffColumns).AddRow(staffRowValues(5, &staffType, models.StatusActive)...))
	mock.ExpectQuery("SELECT .+ FROM staff_emergency_contacts WHERE staff_id = ANY").
		WithArgs(pgxmock.AnyArg()).
		WillReturnRows(mock.NewRows([]string{"id", "staff_id", "full_names", "relationship", "contact_phone", "whatsapp"}).
			AddRow(int64(1), int64(5), "Neema Mushi", "Sister", "+255722222222", ""))

	staff, err := repo.Export(context.Background(), filter)
	require.NoError(t, err)
	require.Len(t, staff, 1)
	require.Len(t, staff[0].EmergencyContacts, 1)
	assert.Equal(t, "Neema Mushi", staff[0].EmergencyContacts[0].FullNames)
	assert.NoError(t, mock.ExpectationsWereMet())
}
