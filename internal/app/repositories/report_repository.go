package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/educompact/school-records/internal/app/models"
	"github.com/educompact/school-records/internal/app/models/dto"
)

// ReportRepository runs the read-only aggregation queries behind the
// dashboard.
type ReportRepository struct {
	db DB
}

// NewReportRepository creates a new ReportRepository
func NewReportRepository(db DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// CountStudents counts students, optionally restricted to a status.
func (r *ReportRepository) CountStudents(ctx context.Context, status models.RecordStatus) (int64, error) {
	query := squirrel.Select("COUNT(*)").
		From("students").
		PlaceholderFormat(squirrel.Dollar)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	sql, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting students: %w", err)
	}
	return count, nil
}

// CountStaff counts all staff rows.
func (r *ReportRepository) CountStaff(ctx context.Context) (int64, error) {
	sql, args, err := squirrel.Select("COUNT(*)").
		From("staff").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("error building SQL: %w", err)
	}

	var count int64
	if err := r.db.QueryRow(ctx, sql, args...).Scan(&count); err != nil {
		return 0, fmt.Errorf("error counting staff: %w", err)
	}
	return count, nil
}

// StudentsByClass groups student counts by class, ascending.
func (r *ReportRepository) StudentsByClass(ctx context.Context) ([]dto.ClassCount, error) {
	sql, args, err := squirrel.Select("class", "COUNT(*)").
		From("students").
		GroupBy("class").
		OrderBy("class ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error grouping students by class: %w", err)
	}
	defer rows.Close()

	counts := []dto.ClassCount{}
	for rows.Next() {
		var c dto.ClassCount
		if err := rows.Scan(&c.Class, &c.Count); err != nil {
			return nil, fmt.Errorf("error scanning class count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// StaffByType groups staff counts by type, ascending, skipping rows without a
// type.
func (r *ReportRepository) StaffByType(ctx context.Context) ([]dto.StaffTypeCount, error) {
	sql, args, err := squirrel.Select("staff_type", "COUNT(*)").
		From("staff").
		Where("staff_type IS NOT NULL").
		GroupBy("staff_type").
		OrderBy("staff_type ASC").
		PlaceholderFormat(squirrel.Dollar).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error grouping staff by type: %w", err)
	}
	defer rows.Close()

	counts := []dto.StaffTypeCount{}
	for rows.Next() {
		var c dto.StaffTypeCount
		if err := rows.Scan(&c.StaffType, &c.Count); err != nil {
			return nil, fmt.Errorf("error scanning staff type count: %w", err)
		}
		counts = append(counts, c)
	}
	return counts, rows.Err()
}

// RecentStudents returns students admitted on or after since, newest admission
// first, capped at limit.
func (r *ReportRepository) RecentStudents(ctx context.Context, since time.Time, limit int) ([]models.Student, error) {
	query := squirrel.Select(studentColumns...).
		From("students").
		Where("date_of_admission IS NOT NULL").
		Where("date_of_admission >= ?", since).
		OrderBy("date_of_admission DESC").
		Limit(uint64(limit)).
		PlaceholderFormat(squirrel.Dollar)

	sql, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("error building SQL: %w", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("error loading recent students: %w", err)
	}
	defer rows.Close()

	students := []models.Student{}
	for rows.Next() {
		var s models.Student
		if err := scanStudent(rows, &s, nil); err != nil {
			return nil, fmt.Errorf("error scanning row: %w", err)
		}
		students = append(students, s)
	}
	return students, rows.Err()
}
