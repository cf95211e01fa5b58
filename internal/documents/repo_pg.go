package documents

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

const documentColumns = `id, applicant_type, document_type, file_name, file_size, mime_type, status, uploaded_at, file_data`

// Create inserts a new document and returns it with the assigned id.
func (r *PGRepo) Create(ctx context.Context, doc Document) (Document, error) {
	const query = `
INSERT INTO documents (
    applicant_type,
    document_type,
    file_name,
    file_size,
    mime_type,
    status,
    uploaded_at,
    file_data
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
RETURNING id`

	doc.Status = StatusUploaded
	doc.UploadedAt = time.Now().UTC()

	var fileData sql.NullString
	if doc.FileData != "" {
		fileData = sql.NullString{String: doc.FileData, Valid: true}
	}

	err := r.DB.QueryRowContext(
		ctx,
		query,
		doc.ApplicantType,
		doc.DocumentType,
		doc.FileName,
		doc.FileSize,
		doc.MimeType,
		doc.Status,
		doc.UploadedAt,
		fileData,
	).Scan(&doc.ID)
	if err != nil {
		return Document{}, err
	}
	return doc, nil
}

// List returns documents for an applicant type in insertion order.
func (r *PGRepo) List(ctx context.Context, applicantType string) ([]Document, error) {
	const query = `
SELECT ` + documentColumns + `
FROM documents
WHERE applicant_type = $1
ORDER BY id`

	rows, err := r.DB.QueryContext(ctx, query, applicantType)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Document{}
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, doc)
	}
	return out, rows.Err()
}

// Get returns a document by id.
func (r *PGRepo) Get(ctx context.Context, id int64) (Document, error) {
	const query = `
SELECT ` + documentColumns + `
FROM documents
WHERE id = $1`

	doc, err := scanDocument(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

// Delete removes a document, reporting whether it existed.
func (r *PGRepo) Delete(ctx context.Context, id int64) (bool, error) {
	res, err := r.DB.ExecContext(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return false, err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return affected > 0, nil
}

// UpdateStatus sets the status of an existing document.
func (r *PGRepo) UpdateStatus(ctx context.Context, id int64, status string) (Document, error) {
	const query = `
UPDATE documents
SET status = $1
WHERE id = $2
RETURNING ` + documentColumns

	doc, err := scanDocument(r.DB.QueryRowContext(ctx, query, status, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Document{}, ErrNotFound
		}
		return Document{}, err
	}
	return doc, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (Document, error) {
	var doc Document
	var fileData sql.NullString
	if err := row.Scan(
		&doc.ID,
		&doc.ApplicantType,
		&doc.DocumentType,
		&doc.FileName,
		&doc.FileSize,
		&doc.MimeType,
		&doc.Status,
		&doc.UploadedAt,
		&fileData,
	); err != nil {
		return Document{}, err
	}
	if fileData.Valid {
		doc.FileData = fileData.String
	}
	return doc, nil
}

var _ Repo = (*PGRepo)(nil)
