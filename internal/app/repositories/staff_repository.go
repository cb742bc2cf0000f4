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
)

var staffColumns = []string{
	"id", "first_name", "middle_name", "surname", "gender", "date_of_birth",
	"nationality", "email", "phone", "address",
	"staff_id", "designation", "staff_type", "date_of_employment",
	"highest_qualification", "years_of_work_experience", "no_of_years_at_ccis",
	"resume", "comment", "status",
	"created_at", "updated_at",
}

var staffProfileTables = []string{
	"resident_teaching_staff_profiles",
	"resident_non_teaching_staff_profiles",
	"international_teaching_staff_profiles",
	"international_non_teaching_staff_profiles",
}

// StaffExportFilter narrows the rows returned by Export. Zero values mean the
// filter is not applied.
type StaffExportFilter struct {
	StaffType   string
	Status      string
	Nationality string
	DateFrom    *time.Time
	DateTo      *time.Time
}

// StaffRepository handles database operations for staff records
type StaffRepository struct {
	db DB
}

// NewStaffRepository creates a new StaffRepository
func NewStaffRepository(db DB) *StaffRepository {
	return &StaffRepository{db: db}
}

// List retrieves staff matching the search term, newest first, with all child
// collections attached.
func (r *StaffRepository) List(ctx context.Context, search string) ([]models.Staff, error) {
	query := squirrel.Select(staffColumns...).
		From("staff").
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if search != "" {
		pattern := "%" + search + "%"
		query = query.Where(squirrel.Or{
			squirrel.ILike{"first_name": pattern},
			squirrel.ILike{"surname": pattern},
			squirrel.ILike{"staff_id": pattern},
			squirrel.ILike{"designation": pattern},
			squirrel.ILike{"email": pattern},
		})
	}

	staff, err := r.queryStaff(ctx, query)
	if err != nil {
		return nil, err
	}

	if err := r.loadChildren(ctx, staff); err != nil {
		return nil, err
	}

	return staff, nil
}

// GetByID retrieves a staff member with all child collections attached.
func (r *StaffRepository) GetByID(ctx context.Context, id int64) (*models.Staff, error) {
	query := squirrel.Select(staffColumns...).
		From("staff").
		Where("id = ?", id).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	var s models.Staff
	err = scanStaff(r.db.QueryRow(ctx, sql, args...), &s)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrStaffNotFound
		}
		return nil, fmt.Errorf("error executing query: %w", err)
	}

	staff := []models.Staff{s}
	if err := r.loadChildren(ctx, staff); err != nil {
		return nil, err
	}

	return &staff[0], nil
}

// Create inserts a staff member and its child rows in one transaction and
// returns the fully loaded record.
func (r *StaffRepository) Create(ctx context.Context, staff *models.Staff) (*models.Staff, error) {
	var id int64

	err := withTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		query := squirrel.Insert("staff").
			Columns(staffColumns[1 : len(staffColumns)-2]...).
			Values(staffValues(staff)...).
			Suffix("RETURNING id").
			PlaceholderFormat(squirrel.Dollar)

		sql, args, err := query.ToSql()
		if err != nil {
			return fmt.Errorf("error building SQL: %w", err)
		}

		if err := tx.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
			return fmt.Errorf("error inserting staff: %w", err)
		}

		return r.insertChildren(ctx, tx, id, staff)
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

// Update replaces a staff member's scalar fields and all child rows
// atomically. All four profile tables are cleared before the profile matching
// the staff type is re-inserted.
func (r *StaffRepository) Update(ctx context.Context, id int64, staff *models.Staff) (*models.Staff, error) {
	err := withTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		query := squirrel.Update("staff").
			Where("id = ?", id).
			Set("updated_at", squirrel.Expr("NOW()")).
			PlaceholderFormat(squirrel.Dollar)

		cols := staffColumns[1 : len(staffColumns)-2]
		vals := staffValues(staff)
		for i, col := range cols {
			query = query.Set(col, vals[i])
		}

		sql, args, err := query.ToSql()
		if err != nil {
			return fmt.Errorf("error building SQL: %w", err)
		}

		result, err := tx.Exec(ctx, sql, args...)
		if err != nil {
			return fmt.Errorf("error updating staff: %w", err)
		}
		if result.RowsAffected() == 0 {
			return apperrors.ErrStaffNotFound
		}

		tables := append([]string{"staff_emergency_contacts"}, staffProfileTables...)
		tables = append(tables, "staff_exits")
		for _, table := range tables {
			del := squirrel.Delete(table).
				Where("staff_id = ?", id).
				PlaceholderFormat(squirrel.Dollar)
			sql, args, err := del.ToSql()
			if err != nil {
				return fmt.Errorf("error building SQL: %w", err)
			}
			if _, err := tx.Exec(ctx, sql, args...); err != nil {
				return fmt.Errorf("error clearing %s: %w", table, err)
			}
		}

		return r.insertChildren(ctx, tx, id, staff)
	})
	if err != nil {
		return nil, err
	}

	return r.GetByID(ctx, id)
}

// Delete removes a staff member; child rows go with it via ON DELETE CASCADE.
func (r *StaffRepository) Delete(ctx context.Context, id int64) error {
	query := squirrel.Delete("staff").
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
		return apperrors.ErrStaffNotFound
	}

	return nil
}

// Export retrieves staff matching the filter, newest first, with emergency
// contact summaries attached.
func (r *StaffRepository) Export(ctx context.Context, filter StaffExportFilter) ([]models.Staff, error) {
	query := squirrel.Select(staffColumns...).
		From("staff").
		OrderBy("created_at DESC").
		PlaceholderFormat(squirrel.Dollar)

	if filter.StaffType != "" {
		query = query.Where("staff_type = ?", filter.StaffType)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Nationality != "" {
		query = query.Where("nationality LIKE ?", "%"+filter.Nationality+"%")
	}
	if filter.DateFrom != nil {
		query = query.Where("date_of_employment >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("date_of_employment <= ?", *filter.DateTo)
	}

	staff, err := r.queryStaff(ctx, query)
	if err != nil {
		return nil, err
	}

	if err := r.loadEmergencyContacts(ctx, staffIndex(staff)); err != nil {
		return nil, err
	}

	return staff, nil
}

func (r *StaffRepository) queryStaff(ctx context.Context, query squirrel.SelectBuilder) ([]models.Staff, error) {
	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error executing query: %w", err)
	}
	defer rows.Close()

	var staff []models.Staff
	for rows.Next() {
		var s models.Staff
		if err := scanStaff(rows, &s); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		staff = append(staff, s)
	}
	return staff, rows.Err()
}

// insertChildren bulk-inserts the child rows of a staff member. Emergency
// contacts with blank names are dropped; only the profile matching the staff
// type is written; the exit row is written only for INACTIVE staff.
func (r *StaffRepository) insertChildren(ctx context.Context, tx pgx.Tx, staffID int64, staff *models.Staff) error {
	contacts := squirrel.Insert("staff_emergency_contacts").
		Columns("staff_id", "full_names", "relationship", "contact_phone", "whatsapp").
		PlaceholderFormat(squirrel.Dollar)
	hasContacts := false
	for _, ec := range staff.EmergencyContacts {
		if strings.TrimSpace(ec.FullNames) == "" {
			continue
		}
		contacts = contacts.Values(staffID, ec.FullNames, ec.Relationship, ec.ContactPhone, ec.Whatsapp)
		hasContacts = true
	}
	if hasContacts {
		if err := execInsert(ctx, tx, contacts, "staff_emergency_contacts"); err != nil {
			return err
		}
	}

	if staff.StaffType != nil {
		if err := r.insertProfile(ctx, tx, staffID, *staff.StaffType, staff); err != nil {
			return err
		}
	}

	if staff.Status == models.StatusInactive && staff.StaffExit != nil {
		e := staff.StaffExit
		exit := squirrel.Insert("staff_exits").
			Columns("staff_id", "date_of_exit", "notice", "certificate_of_service",
				"letter_of_no_objection_ref_no", "letter_of_no_objection_attachment",
				"staff_clearance_form", "exit_statement").
			Values(staffID, e.DateOfExit, e.Notice, e.CertificateOfService,
				e.LetterOfNoObjectionRefNo, e.LetterOfNoObjectionAttachment,
				e.StaffClearanceForm, e.ExitStatement).
			PlaceholderFormat(squirrel.Dollar)
		if err := execInsert(ctx, tx, exit, "staff_exits"); err != nil {
			return err
		}
	}

	return nil
}

func (r *StaffRepository) insertProfile(ctx context.Context, tx pgx.Tx, staffID int64, staffType models.StaffType, staff *models.Staff) error {
	switch staffType {
	case models.StaffTypeResidentTeaching:
		p := staff.ResidentTeachingStaffProfile
		if p == nil {
			return nil
		}
		insert := squirrel.Insert("resident_teaching_staff_profiles").
			Columns("staff_id", "national_id_no", "national_id_attachment", "nssf_no", "nssf_attachment",
				"tin_no", "tin_attachment", "teaching_license_no", "teaching_license_attachment").
			Values(staffID, p.NationalIDNo, p.NationalIDAttachment, p.NssfNo, p.NssfAttachment,
				p.TinNo, p.TinAttachment, p.TeachingLicenseNo, p.TeachingLicenseAttachment).
			PlaceholderFormat(squirrel.Dollar)
		return execInsert(ctx, tx, insert, "resident_teaching_staff_profiles")

	case models.StaffTypeResidentNonTeaching:
		p := staff.ResidentNonTeachingStaffProfile
		if p == nil {
			return nil
		}
		insert := squirrel.Insert("resident_non_teaching_staff_profiles").
			Columns("staff_id", "national_id_no", "national_id_attachment", "nssf_no", "nssf_attachment",
				"tin_no", "tin_attachment").
			Values(staffID, p.NationalIDNo, p.NationalIDAttachment, p.NssfNo, p.NssfAttachment,
				p.TinNo, p.TinAttachment).
			PlaceholderFormat(squirrel.Dollar)
		return execInsert(ctx, tx, insert, "resident_non_teaching_staff_profiles")

	case models.StaffTypeInternationalTeaching:
		p := staff.InternationalTeachingStaffProfile
		if p == nil {
			return nil
		}
		insert := squirrel.Insert("international_teaching_staff_profiles").
			Columns("staff_id", "tcu_no", "tcu_attachment", "teaching_license_no", "teaching_license_attachment",
				"expiration_date", "work_permit_no", "work_permit_expiration_date", "work_permit_attachment",
				"resident_permit_no", "resident_permit_expiration_date", "resident_permit_attachment",
				"passport_no", "passport_expiration_date", "passport_attachment").
			Values(staffID, p.TcuNo, p.TcuAttachment, p.TeachingLicenseNo, p.TeachingLicenseAttachment,
				p.ExpirationDate, p.WorkPermitNo, p.WorkPermitExpirationDate, p.WorkPermitAttachment,
				p.ResidentPermitNo, p.ResidentPermitExpirationDate, p.ResidentPermitAttachment,
				p.PassportNo, p.PassportExpirationDate, p.PassportAttachment).
			PlaceholderFormat(squirrel.Dollar)
		return execInsert(ctx, tx, insert, "international_teaching_staff_profiles")

	case models.StaffTypeInternationalNonTeaching:
		p := staff.InternationalNonTeachingStaffProfile
		if p == nil {
			return nil
		}
		insert := squirrel.Insert("international_non_teaching_staff_profiles").
			Columns("staff_id", "work_permit_no", "work_permit_expiration_date", "work_permit_attachment",
				"resident_permit_no", "resident_permit_expiration_date", "resident_permit_attachment",
				"passport_no", "passport_expiration_date", "passport_attachment").
			Values(staffID, p.WorkPermitNo, p.WorkPermitExpirationDate, p.WorkPermitAttachment,
				p.ResidentPermitNo, p.ResidentPermitExpirationDate, p.ResidentPermitAttachment,
				p.PassportNo, p.PassportExpirationDate, p.PassportAttachment).
			PlaceholderFormat(squirrel.Dollar)
		return execInsert(ctx, tx, insert, "international_non_teaching_staff_profiles")
	}

	return nil
}

// loadChildren attaches all child collections for a batch of staff rows.
func (r *StaffRepository) loadChildren(ctx context.Context, staff []models.Staff) error {
	if len(staff) == 0 {
		return nil
	}

	index := staffIndex(staff)

	if err := r.loadEmergencyContacts(ctx, index); err != nil {
		return err
	}
	if err := r.loadProfiles(ctx, index); err != nil {
		return err
	}
	return r.loadExits(ctx, index)
}

func staffIndex(staff []models.Staff) map[int64]*models.Staff {
	index := make(map[int64]*models.Staff, len(staff))
	for i := range staff {
		index[staff[i].ID] = &staff[i]
	}
	return index
}

func staffIDs(index map[int64]*models.Staff) []int64 {
	ids := make([]int64, 0, len(index))
	for id := range index {
		ids = append(ids, id)
	}
	return ids
}

func (r *StaffRepository) loadEmergencyContacts(ctx context.Context, index map[int64]*models.Staff) error {
	if len(index) == 0 {
		return nil
	}

	query := squirrel.Select("id", "staff_id", "full_names", "relationship", "contact_phone", "whatsapp").
		From("staff_emergency_contacts").
		Where("staff_id = ANY(?)", staffIDs(index)).
		OrderBy("id ASC").
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error loading emergency contacts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var ec models.StaffEmergencyContact
		if err := rows.Scan(&ec.ID, &ec.StaffID, &ec.FullNames, &ec.Relationship, &ec.ContactPhone, &ec.Whatsapp); err != nil {
			return fmt.Errorf("error scanning emergency contact: %w", err)
		}
		if s, ok := index[ec.StaffID]; ok {
			s.EmergencyContacts = append(s.EmergencyContacts, ec)
		}
	}
	return rows.Err()
}

func (r *StaffRepository) loadProfiles(ctx context.Context, index map[int64]*models.Staff) error {
	ids := staffIDs(index)

	query := squirrel.Select("id", "staff_id", "national_id_no", "national_id_attachment",
		"nssf_no", "nssf_attachment", "tin_no", "tin_attachment",
		"teaching_license_no", "teaching_license_attachment").
		From("resident_teaching_staff_profiles").
		Where("staff_id = ANY(?)", ids).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error loading resident teaching profiles: %w", err)
	}
	for rows.Next() {
		var p models.ResidentTeachingProfile
		if err := rows.Scan(&p.ID, &p.StaffID, &p.NationalIDNo, &p.NationalIDAttachment,
			&p.NssfNo, &p.NssfAttachment, &p.TinNo, &p.TinAttachment,
			&p.TeachingLicenseNo, &p.TeachingLicenseAttachment); err != nil {
			rows.Close()
			return fmt.Errorf("error scanning resident teaching profile: %w", err)
		}
		if s, ok := index[p.StaffID]; ok {
			profile := p
			s.ResidentTeachingStaffProfile = &profile
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	query = squirrel.Select("id", "staff_id", "national_id_no", "national_id_attachment",
		"nssf_no", "nssf_attachment", "tin_no", "tin_attachment").
		From("resident_non_teaching_staff_profiles").
		Where("staff_id = ANY(?)", ids).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err = query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	rows, err = r.db.Query(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error loading resident non-teaching profiles: %w", err)
	}
	for rows.Next() {
		var p models.ResidentNonTeachingProfile
		if err := rows.Scan(&p.ID, &p.StaffID, &p.NationalIDNo, &p.NationalIDAttachment,
			&p.NssfNo, &p.NssfAttachment, &p.TinNo, &p.TinAttachment); err != nil {
			rows.Close()
			return fmt.Errorf("error scanning resident non-teaching profile: %w", err)
		}
		if s, ok := index[p.StaffID]; ok {
			profile := p
			s.ResidentNonTeachingStaffProfile = &profile
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	query = squirrel.Select("id", "staff_id", "tcu_no", "tcu_attachment",
		"teaching_license_no", "teaching_license_attachment", "expiration_date",
		"work_permit_no", "work_permit_expiration_date", "work_permit_attachment",
		"resident_permit_no", "resident_permit_expiration_date", "resident_permit_attachment",
		"passport_no", "passport_expiration_date", "passport_attachment").
		From("international_teaching_staff_profiles").
		Where("staff_id = ANY(?)", ids).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err = query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	rows, err = r.db.Query(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error loading international teaching profiles: %w", err)
	}
	for rows.Next() {
		var p models.InternationalTeachingProfile
		if err := rows.Scan(&p.ID, &p.StaffID, &p.TcuNo, &p.TcuAttachment,
			&p.TeachingLicenseNo, &p.TeachingLicenseAttachment, &p.ExpirationDate,
			&p.WorkPermitNo, &p.WorkPermitExpirationDate, &p.WorkPermitAttachment,
			&p.ResidentPermitNo, &p.ResidentPermitExpirationDate, &p.ResidentPermitAttachment,
			&p.PassportNo, &p.PassportExpirationDate, &p.PassportAttachment); err != nil {
			rows.Close()
			return fmt.Errorf("error scanning international teaching profile: %w", err)
		}
		if s, ok := index[p.StaffID]; ok {
			profile := p
			s.InternationalTeachingStaffProfile = &profile
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	query = squirrel.Select("id", "staff_id",
		"work_permit_no", "work_permit_expiration_date", "work_permit_attachment",
		"resident_permit_no", "resident_permit_expiration_date", "resident_permit_attachment",
		"passport_no", "passport_expiration_date", "passport_attachment").
		From("international_non_teaching_staff_profiles").
		Where("staff_id = ANY(?)", ids).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err = query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	rows, err = r.db.Query(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error loading international non-teaching profiles: %w", err)
	}
	for rows.Next() {
		var p models.InternationalNonTeachingProfile
		if err := rows.Scan(&p.ID, &p.StaffID,
			&p.WorkPermitNo, &p.WorkPermitExpirationDate, &p.WorkPermitAttachment,
			&p.ResidentPermitNo, &p.ResidentPermitExpirationDate, &p.ResidentPermitAttachment,
			&p.PassportNo, &p.PassportExpirationDate, &p.PassportAttachment); err != nil {
			rows.Close()
			return fmt.Errorf("error scanning international non-teaching profile: %w", err)
		}
		if s, ok := index[p.StaffID]; ok {
			profile := p
			s.InternationalNonTeachingStaffProfile = &profile
		}
	}
	rows.Close()
	return rows.Err()
}

func (r *StaffRepository) loadExits(ctx context.Context, index map[int64]*models.Staff) error {
	query := squirrel.Select("id", "staff_id", "date_of_exit", "notice", "certificate_of_service",
		"letter_of_no_objection_ref_no", "letter_of_no_objection_attachment",
		"staff_clearance_form", "exit_statement").
		From("staff_exits").
		Where("staff_id = ANY(?)", staffIDs(index)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return fmt.Errorf("error loading exit records: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var e models.StaffExit
		if err := rows.Scan(&e.ID, &e.StaffID, &e.DateOfExit, &e.Notice, &e.CertificateOfService,
			&e.LetterOfNoObjectionRefNo, &e.LetterOfNoObjectionAttachment,
			&e.StaffClearanceForm, &e.ExitStatement); err != nil {
			return fmt.Errorf("error scanning exit record: %w", err)
		}
		if s, ok := index[e.StaffID]; ok {
			exit := e
			s.StaffExit = &exit
		}
	}
	return rows.Err()
}

// staffValues returns insert values aligned with staffColumns minus id and the
// timestamp columns.
func staffValues(s *models.Staff) []any {
	return []any{
		s.FirstName, s.MiddleName, s.Surname, s.Gender, s.DateOfBirth,
		s.Nationality, s.Email, s.Phone, s.Address,
		s.StaffID, s.Designation, s.StaffType, s.DateOfEmployment,
		s.HighestQualification, s.YearsOfWorkExperience, s.NoOfYearsAtCCIS,
		s.Resume, s.Comment, s.Status,
	}
}

func scanStaff(row pgx.Row, s *models.Staff) error {
	return row.Scan(
		&s.ID, &s.FirstName, &s.MiddleName, &s.Surname, &s.Gender, &s.DateOfBirth,
		&s.Nationality, &s.Email, &s.Phone, &s.Address,
		&s.StaffID, &s.Designation, &s.StaffType, &s.DateOfEmployment,
		&s.HighestQualification, &s.YearsOfWorkExperience, &s.NoOfYearsAtCCIS,
		&s.Resume, &s.Comment, &s.Status,
		&s.CreatedAt, &s.UpdatedAt,
	)
}
