package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/educompact/school-records/internal/pkg/logger"
)

// DB is the subset of pgxpool.Pool the repositories use. Keeping it narrow
// lets tests swap in a mock pool.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Repositories holds all the repository instances
type Repositories struct {
	StudentRepository *StudentRepository
	StaffRepository   *StaffRepository
	ReportRepository  *ReportRepository
	UserRepository    *UserRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db DB) *Repositories {
	return &Repositories{
		StudentRepository: NewStudentRepository(db),
		StaffRepository:   NewStaffRepository(db),
		ReportRepository:  NewReportRepository(db),
		UserRepository:    NewUserRepository(db),
	}
}

// withTransaction runs fn inside a transaction, rolling back on error or panic.
func withTransaction(ctx context.Context, db DB, fn func(ctx context.Context, tx pgx.Tx) error) error {
	_, hasDeadline := ctx.Deadline()
	if !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}

	defer func() {
		if r := recover(); r != nil {
			_ = tx.Rollback(ctx)
			panic(r)
		}
	}()

	if err := fn(ctx, tx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			logger.Error().Err(rbErr).Msg("Failed to rollback transaction")
			return fmt.Errorf("error: %v, rollback error: %w", err, rbErr)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
