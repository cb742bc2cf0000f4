package repositories

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	"github.com/educompact/school-records/internal/app/models"
	"github.com/educompact/school-records/internal/pkg/apperrors"
	"github.com/educompact/school-records/internal/pkg/helpers"
)

var studentColumns = []string{
	"id", "first_name", "middle_name", "surname", "preferred_name",
	"date_of_birth", "gender", "nationality", "religion",
	"academic_year", "date_of_admission", "class", "registration_no", "status",
	"student_photo", "birth_certificat_no", "birth_certificate_file",
	"passport_no", "expiry_date", "passport_file",
	"student_pass_no", "date_of_expiry", "student_pass_file",
	"name_of_school", "location", "reason_for_exit", "recent_report_file", "additional_attachment",
	"blood_type", "who_lives_with_student_at_home", "primary_language_at_home",
	"other_children_at_ccis", "referred_by_current_family", "permission_for_social_media_photos",
	"special_information", "medical_conditions", "fees_contribution", "fees_contribution_percentage",
	"created_at", "updated_at",
}

// StudentExportFilter narrows the rows returned by Export. Zero values mean
// the filter is not applied.
type StudentExportFilter struct {
	Class       string
	Status      string
	Nationality string
	DateFrom    *time.Time
	DateTo      *time.Time
}

// StudentRepository handles database operations for student records
type StudentRepository struct {
	db DB
}

// NewStudentRepository creates a new StudentRepository
func NewStudentRepository(db DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// List retrieves students matching the search term, newest first, with
// guardian name/relationship summaries attached.
func (r *StudentRepository) List(ctx context.Context, search string, page, limit int) ([]models.Student, int64, error) {
	query := squirrel.Select(studentColumns...).
		Column("COUNT(*) OVER()").
		From("students").
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"first_name": pattern},
			squirrel.ILike{"surname": pattern},
			squirrel.ILike{"registration_no": pattern},
			squirrel.Expr("EXISTS (SELECT 1 FROM guardians g WHERE g.student_id = students.id AND g.full_name ILIKE ?)", pattern),
		})
	}

	offset, size := helpers.CalculateOffsetLimit(page, limit)
	query = query.Limit(uint64(size)).Offset(offset)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var students []models.Student
	var total int64

	for rows.Next() {
		var s models.Student
		if err := scanStudent(rows, &s, &total); err != nil {
			return nil, 0, fmt.Errorf("error scanning row: %w", err)
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("error reading rows: %w", err)
	}

	if err := r.attachGuardianSummaries(ctx, students); err != nil {
		return nil, 0, err
	}

	return students, total, nil
}

// GetByID retrieves a student with all child collections eagerly attached.
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	query := squirrel.Select(studentColumns...).
		From("students").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var s models.Student
	err = scanStudent(r.db.QueryRow(ctx, sql, args...), &s, nil)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	if err := r.loadChildren(ctx, &s); err != nil {
		return nil, err
	}

	return &s, nil
}

// Create inserts a student and its child rows in one transaction and returns
// the fully loaded record.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) (*models.Student, error) {
	var id int64

	err := withTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		query := squirrel.Insert("students").
			Columns(studentColumns[1 : len(studentColumns)-2]...).
			Values(studentValues(student)...).
			Suffix("RETURNING id").
			PlaceholderFormat(squirrel.Dollar)

		sql, args, err := query.ToSql()
		if err != nil {
			return fmt.Errorf("error building SQL: %w", err)
		}

		if err := tx.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
			return fmt.Errorf("error inserting student: %w", err)
		}

		return r.insertChildren(ctx, tx, id, student)
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

// Update replaces a student's scalar fields and all child rows atomically.
// Child collections are deleted and re-inserted wholesale.
func (r *StudentRepository) Update(ctx context.Context, id int64, student *models.Student) (*models.Student, error) {
	err := withTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		query := squirrel.Update("students").
			Where("id = ?", id).
			Set("updated_at", squirrel.Expr("NOW()")).
			PlaceholderFormat(squirrel.Dollar)

		cols := studentColumns[1 : len(studentColumns)-2]
		vals := studentValues(student)
		for i, col := range cols {
			query = query.Set(col, vals[i])
		}

		sql, args, err := query.ToSql()
		if err != nil {
			return fmt.Errorf("error building SQL: %w", err)
		}

		result, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return fmt.Errorf("error updating student: %w", err)
		}
		if result.RowsAffected() == 0 {
			return apperrors.ErrStudentNotFound
		}

		for _, table := range []string{"guardians", "emergency_contacts", "student_doctors", "student_exits"} {
			del := squirrel.Delete(table).
				Where("student_id = ?", id).
				PlaceholderFormat(squirrel.Dollar)
			sql, args, err := del.ToSql()
			if err != nil {
				return fmt.Errorf("error building SQL: %w", err)
			}
			if _, err := tx.Exec(ctx, sql, args...); err != nil {
				return fmt.Errorf("error clearing %s: %w", table, err)
			}
		}

		return r.insertChildren(ctx, tx, id, student)
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

// Delete removes a student; child rows go with it via ON DELETE CASCADE.
func (r *StudentRepository) Delete(ctx context.Context, id int64) error {
	query := squirrel.Delete("students").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	result, err := r.db.Exec(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error executing query: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// Export retrieves students matching the filter, newest first, with guardian
// summaries attached.
func (r *StudentRepository) Export(ctx context.Context, filter StudentExportFilter) ([]models.Student, error) {
	query := squirrel.Select(studentColumns...).
		From("students").
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if filter.Class != "" {
		query = query.Where("class = ?", filter.Class)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Nationality != "" {
		query = query.Where("nationality LIKE ?", "%"+filter.Nationality+"%")
	}
	if filter.DateFrom != nil {
		query = query.Where("date_of_admission >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("date_of_admission <= ?", *filter.DateTo)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var students []models.Student
	for rows.Next() {
		var s models.Student
		if err := scanStudent(rows, &s, nil); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		students = append(students, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error reading rows: %w", err)
	}

	if err := r.attachGuardianSummaries(ctx, students); err != nil {
		return nil, err
	}

	return students, nil
}

// insertChildren bulk-inserts the child collections of a student. Rows whose
// name field is blank are dropped. The exit row is written only for INACTIVE
// students.
func (r *StudentRepository) insertChildren(ctx context.Context, tx pgx.Tx, studentID int64, student *models.Student) error {
	guardians := squirrel.Insert("guardians").
		Columns("student_id", "relationship", "full_name", "occupation", "residential_address",
			"contact_phone", "whatsapp_number", "email_address", "preferred_contact").
		PlaceholderFormat(squirrel.Dollar)
	hasGuardians := false
	for _, g := range student.Guardians {
		if strings.TrimSpace(g.FullName) == "" {
			continue
		}
		guardians = guardians.Values(studentID, g.Relationship, g.FullName, g.Occupation,
			g.ResidentialAddress, g.ContactPhone, g.WhatsappNumber, g.EmailAddress, g.PreferredContact)
		hasGuardians = true
	}
	if hasGuardians {
		if err := execInsert(ctx, tx, guardians, "guardians"); err != nil {
			return err
		}
	}

	contacts := squirrel.Insert("emergency_contacts").
		Columns("student_id", "full_names", "relationship", "contact_phone", "whatsapp_number").
		PlaceholderFormat(squirrel.Dollar)
	hasContacts := false
	for _, ec := range student.EmergencyContacts {
		if strings.TrimSpace(ec.FullNames) == "" {
			continue
		}
		contacts = contacts.Values(studentID, ec.FullNames, ec.Relationship, ec.ContactPhone, ec.WhatsappNumber)
		hasContacts = true
	}
	if hasContacts {
		if err := execInsert(ctx, tx, contacts, "emergency_contacts"); err != nil {
			return err
		}
	}

	doctors := squirrel.Insert("student_doctors").
		Columns("student_id", "full_names", "contact_phone").
		PlaceholderFormat(squirrel.Dollar)
	hasDoctors := false
	for _, d := range student.Doctors {
		if strings.TrimSpace(d.FullNames) == "" {
			continue
		}
		doctors = doctors.Values(studentID, d.FullNames, d.ContactPhone)
		hasDoctors = true
	}
	if hasDoctors {
		if err := execInsert(ctx, tx, doctors, "student_doctors"); err != nil {
			return err
		}
	}

	if student.Status == models.StatusInactive && student.StudentExit != nil {
		e := student.StudentExit
		exit := squirrel.Insert("student_exits").
			Columns("student_id", "date_of_exit", "destination_school", "next_class", "reason_for_exit",
				"exit_statement", "student_report", "student_clearance_form", "other_exit_documents").
			Values(studentID, e.DateOfExit, e.DestinationSchool, e.NextClass, e.ReasonForExit,
				e.ExitStatement, e.StudentReport, e.StudentClearanceForm, e.OtherExitDocuments).
			PlaceholderFormat(squirrel.Dollar)
		if err := execInsert(ctx, tx, exit, "student_exits"); err != nil {
			return err
		}
	}

	return nil
}

// loadChildren attaches all child collections of a single student.
func (r *StudentRepository) loadChildren(ctx context.Context, s *models.Student) error {
	query := squirrel.Select("id", "student_id", "relationship", "full_name", "occupation",
		"residential_address", "contact_phone", "whatsapp_number", "email_address", "preferred_contact").
		From("guardians").
		Where("student_id = ?", s.ID).
		OrderBy("id ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error loading guardians: %w", err)
	}
	for rows.Next() {
		var g models.Guardian
		if err := rows.Scan(&g.ID, &g.StudentID, &g.Relationship, &g.FullName, &g.Occupation,
			&g.ResidentialAddress, &g.ContactPhone, &g.WhatsappNumber, &g.EmailAddress, &g.PreferredContact); err != nil {
			rows.Close()
			return fmt.Errorf("error scanning guardian: %w", err)
		}
		s.Guardians = append(s.Guardians, g)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error reading guardians: %w", err)
	}

	query = squirrel.Select("id", "student_id", "full_names", "relationship", "contact_phone", "whatsapp_number").
		From("emergency_contacts").
		Where("student_id = ?", s.ID).
		OrderBy("id ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err = query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	rows, err = r.db.Query(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error loading emergency contacts: %w", err)
	}
	for rows.Next() {
		var ec models.EmergencyContact
		if err := rows.Scan(&ec.ID, &ec.StudentID, &ec.FullNames, &ec.Relationship, &ec.ContactPhone, &ec.WhatsappNumber); err != nil {
			rows.Close()
			return fmt.Errorf("error scanning emergency contact: %w", err)
		}
		s.EmergencyContacts = append(s.EmergencyContacts, ec)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error reading emergency contacts: %w", err)
	}

	query = squirrel.Select("id", "student_id", "full_names", "contact_phone").
		From("student_doctors").
		Where("student_id = ?", s.ID).
		OrderBy("id ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err = query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	rows, err = r.db.Query(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error loading doctors: %w", err)
	}
	for rows.Next() {
		var d models.StudentDoctor
		if err := rows.Scan(&d.ID, &d.StudentID, &d.FullNames, &d.ContactPhone); err != nil {
			rows.Close()
			return fmt.Errorf("error scanning doctor: %w", err)
		}
		s.Doctors = append(s.Doctors, d)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return fmt.Errorf("error reading doctors: %w", err)
	}

	query = squirrel.Select("id", "student_id", "date_of_exit", "destination_school", "next_class",
		"reason_for_exit", "exit_statement", "student_report", "student_clearance_form", "other_exit_documents").
		From("student_exits").
		Where("student_id = ?", s.ID).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err = query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	var exit models.StudentExit
	err = r.db.QueryRow(ctx, sql, args...).Scan(&exit.ID, &exit.StudentID, &exit.DateOfExit,
		&exit.DestinationSchool, &exit.NextClass, &exit.ReasonForExit, &exit.ExitStatement,
		&exit.StudentReport, &exit.StudentClearanceForm, &exit.OtherExitDocuments)
	if err != nil {
		if err != pgx.ErrNoRows {
			return fmt.Errorf("error loading exit record: %w", err)
		}
	} else {
		s.StudentExit = &exit
	}

	return nil
}

// attachGuardianSummaries loads guardian name/relationship pairs for a page of
// students in one query.
func (r *StudentRepository) attachGuardianSummaries(ctx context.Context, students []models.Student) error {
	if len(students) == 0 {
		return nil
	}

	ids := make([]int64, len(students))
	index := make(map[int64]*models.Student, len(students))
	for i := range students {
		ids[i] = students[i].ID
		index[students[i].ID] = &students[i]
	}

	query := squirrel.Select("student_id", "full_name", "relationship").
		From("guardians").
		Where("student_id = ANY(?)", ids).
		OrderBy("id ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error loading guardian summaries: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var g models.Guardian
		if err := rows.Scan(&g.StudentID, &g.FullName, &g.Relationship); err != nil {
			return fmt.Errorf("error scanning guardian summary: %w", err)
		}
		if s, ok := index[g.StudentID]; ok {
			s.Guardians = append(s.Guardians, g)
		}
	}
	return rows.Err()
}

// studentValues returns insert values aligned with studentColumns minus id and
// the timestamp columns.
func studentValues(s *models.Student) []any {
	return []any{
		s.FirstName, s.MiddleName, s.Surname, s.PreferredName,
		s.DateOfBirth, s.Gender, s.Nationality, s.Religion,
		s.AcademicYear, s.DateOfAdmission, s.Class, s.RegistrationNo, s.Status,
		s.StudentPhoto, s.BirthCertificatNo, s.BirthCertificateFile,
		s.PassportNo, s.ExpiryDate, s.PassportFile,
		s.StudentPassNo, s.DateOfExpiry, s.StudentPassFile,
		s.NameOfSchool, s.Location, s.ReasonForExit, s.RecentReportFile, s.AdditionalAttachment,
		s.BloodType, s.WhoLivesWithStudentAtHome, s.PrimaryLanguageAtHome,
		s.OtherChildrenAtCCIS, s.ReferredByCurrentFamily, s.PermissionForSocialMediaPhotos,
		s.SpecialInformation, s.MedicalConditions, s.FeesContribution, s.FeesContributionPercentage,
	}
}

func scanStudent(row pgx.Row, s *models.Student, total *int64) error {
	dest := []any{
		&s.ID, &s.FirstName, &s.MiddleName, &s.Surname, &s.PreferredName,
		&s.DateOfBirth, &s.Gender, &s.Nationality, &s.Religion,
		&s.AcademicYear, &s.DateOfAdmission, &s.Class, &s.RegistrationNo, &s.Status,
		&s.StudentPhoto, &s.BirthCertificatNo, &s.BirthCertificateFile,
		&s.PassportNo, &s.ExpiryDate, &s.PassportFile,
		&s.StudentPassNo, &s.DateOfExpiry, &s.StudentPassFile,
		&s.NameOfSchool, &s.Location, &s.ReasonForExit, &s.RecentReportFile, &s.AdditionalAttachment,
		&s.BloodType, &s.WhoLivesWithStudentAtHome, &s.PrimaryLanguageAtHome,
		&s.OtherChildrenAtCCIS, &s.ReferredByCurrentFamily, &s.PermissionForSocialMediaPhotos,
		&s.SpecialInformation, &s.MedicalConditions, &s.FeesContribution, &s.FeesContributionPercentage,
		&s.CreatedAt, &s.UpdatedAt,
	}
	if total != nil {
		dest = append(dest, total)
	}
	return row.Scan(dest...)
}

func execInsert(ctx context.Context, tx pgx.Tx, builder squirrel.InsertBuilder, table string) error {
	sql, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}
	if _, err := tx.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("error inserting into %s: %w", table, err)
	}
	return nil
}
