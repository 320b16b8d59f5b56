package resumes

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"

	"resume-builder/internal/shared/storage/db"
)

func newMockGormRepo(t *testing.T) (*GormRepo, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })
	gdb, err := db.OpenGorm(sqlDB)
	if err != nil {
		t.Fatalf("OpenGorm: %v", err)
	}
	return NewGormRepo(gdb), mock
}

func TestGormRepoGetDecodesDocument(t *testing.T) {
	repo, mock := newMockGormRepo(t)
	now := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{"id", "user_id", "title", "document", "created_at", "updated_at", "deleted_at"}).
		AddRow("r1", "u1", "Backend", `{"personalInfo":{"fullName":"Ada Lovelace"},"skills":["Go"]}`, now, now, nil)
	mock.ExpectQuery(`SELECT \* FROM "resumes" WHERE id = \$1 AND "resumes"."deleted_at" IS NULL`).WillReturnRows(rows)

	got, err := repo.Get(context.Background(), "r1")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Document.PersonalInfo.FullName != "Ada Lovelace" || len(got.Document.Skills) != 1 {
		t.Fatalf("unexpected document %+v", got.Document)
	}
	if got.Document.Experience == nil {
		t.Fatalf("absent lists should decode as empty, not nil")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestGormRepoGetNotFound(t *testing.T) {
	repo, mock := newMockGormRepo(t)
	mock.ExpectQuery(`SELECT \* FROM "resumes"`).WillReturnRows(sqlmock.NewRows([]string{"id"}))

	if _, err := repo.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGormRepoDeleteIsSoft(t *testing.T) {
	repo, mock := newMockGormRepo(t)
	mock.ExpectExec(`UPDATE "resumes" SET "deleted_at"=\$1 WHERE id = \$2`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "resumes" SET "deleted_at"`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	if err := repo.Delete(context.Background(), "r1"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := repo.Delete(context.Background(), "r1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second delete should report ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestGormRepoCountByUser(t *testing.T) {
	repo, mock := newMockGormRepo(t)
	mock.ExpectQuery(`SELECT count\(\*\) FROM "resumes" WHERE user_id = \$1`).
		WithArgs("u1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))

	n, err := repo.CountByUser(context.Background(), "u1")
	if err != nil || n != 2 {
		t.Fatalf("CountByUser = %d, %v", n, err)
	}
}
