package documents

import "context"

// Repo defines persistence operations for documents.
type Repo interface {
	// List returns documents for an applicant type in insertion order.
	List(ctx context.Context, applicantType string) ([]Document, error)
	// Get returns a document by id or ErrNotFound.
	Get(ctx context.Context, id int64) (Document, error)
	// Create stores a new document, assigning its id, status and upload time.
	Create(ctx context.Context, doc Document) (Document, error)
	// Delete removes a document, reporting whether it existed.
	Delete(ctx context.Context, id int64) (bool, error)
	// UpdateStatus sets the status of an existing document or returns ErrNotFound.
	UpdateStatus(ctx context.Context, id int64, status string) (Document, error)
}
