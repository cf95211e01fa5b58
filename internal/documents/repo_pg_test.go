package documents

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
)

func TestPGRepoCreateReturnsAssignedID(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectQuery("INSERT INTO documents").
		WithArgs(
			"primary",
			"Photo ID",
			"id.pdf",
			int64(2048),
			"application/pdf",
			StatusUploaded,
			sqlmock.AnyArg(), // uploaded_at
			sqlmock.AnyArg(), // file_data
		).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(7)))

	doc, err := repo.Create(context.Background(), Document{
		ApplicantType: "primary",
		DocumentType:  "Photo ID",
		FileName:      "id.pdf",
		FileSize:      2048,
		MimeType:      "application/pdf",
		FileData:      "aGVsbG8=",
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if doc.ID != 7 {
		t.Fatalf("expected id 7, got %d", doc.ID)
	}
	if doc.Status != StatusUploaded {
		t.Fatalf("expected status %q, got %q", StatusUploaded, doc.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoDeleteReportsExistence(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectExec("DELETE FROM documents").
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DELETE FROM documents").
		WithArgs(int64(8)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	ok, err := repo.Delete(context.Background(), 7)
	if err != nil || !ok {
		t.Fatalf("Delete existing: ok=%v err=%v", ok, err)
	}
	ok, err = repo.Delete(context.Background(), 8)
	if err != nil {
		t.Fatalf("Delete absent: %v", err)
	}
	if ok {
		t.Fatalf("expected false for absent id")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}

func TestPGRepoGetNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	repo := &PGRepo{DB: db}

	mock.ExpectQuery("SELECT (.+) FROM documents").
		WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	if _, err := repo.Get(context.Background(), 42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("ExpectationsWereMet: %v", err)
	}
}
