package migrations

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeMigration(t *testing.T, dir, name, sql string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(sql), 0o644))
}

func TestMigrateFromFileRecordsVersionInTransaction(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	dir := t.TempDir()
	writeMigration(t, dir, "001_create_students.sql", "CREATE TABLE students (id BIGSERIAL PRIMARY KEY);")

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("001").
		WillReturnRows(mock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE students").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	// The version row must go through the same transaction as the DDL.
	mock.ExpectExec("INSERT INTO schema_migrations").
		WithArgs("001", pgxmock.AnyArg()).
		WillReturnResult(pgxmock.NewResult("INSERT", 1))
	mock.ExpectCommit()

	migrator := NewMigrator(mock)
	require.NoError(t, migrator.MigrateFromFile(filepath.Join(dir, "001_create_students.sql")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateFromFileSkipsAppliedVersion(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	dir := t.TempDir()
	writeMigration(t, dir, "002_create_staff.sql", "CREATE TABLE staff (id BIGSERIAL PRIMARY KEY);")

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("002").
		WillReturnRows(mock.NewRows([]string{"exists"}).AddRow(true))

	migrator := NewMigrator(mock)
	require.NoError(t, migrator.MigrateFromFile(filepath.Join(dir, "002_create_staff.sql")))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrateFromFileRollsBackOnFailure(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	dir := t.TempDir()
	writeMigration(t, dir, "003_bad.sql", "CREATE TABLE broken (;")

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS schema_migrations").
		WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectQuery("SELECT EXISTS").
		WithArgs("003").
		WillReturnRows(mock.NewRows([]string{"exists"}).AddRow(false))
	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE broken").
		WillReturnError(assert.AnError)
	mock.ExpectRollback()

	migrator := NewMigrator(mock)
	err = migrator.MigrateFromFile(filepath.Join(dir, "003_bad.sql"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "003_bad.sql")
	assert.NoError(t, mock.ExpectationsWereMet())
}
