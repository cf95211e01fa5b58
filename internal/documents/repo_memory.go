package documents

import (
	"context"
	"sync"
	"time"
)

// MemoryRepo is an in-memory implementation of Repo. All access is
// serialized behind a single mutex since gin serves requests concurrently.
type MemoryRepo struct {
	mu     sync.Mutex
	docs   map[int64]Document
	order  []int64
	nextID int64
}

// NewMemoryRepo constructs a MemoryRepo.
func NewMemoryRepo() *MemoryRepo {
	return &MemoryRepo{
		docs:   make(map[int64]Document),
		nextID: 1,
	}
}

// List returns documents whose applicant type matches exactly, in insertion order.
func (r *MemoryRepo) List(ctx context.Context, applicantType string) ([]Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	out := []Document{}
	for _, id := range r.order {
		if doc, ok := r.docs[id]; ok && doc.ApplicantType == applicantType {
			out = append(out, doc)
		}
	}
	return out, nil
}

// Get returns a document by id.
func (r *MemoryRepo) Get(ctx context.Context, id int64) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, ok := r.docs[id]
	if !ok {
		return Document{}, ErrNotFound
	}
	return doc, nil
}

// Create stores a new document. The id counter only ever advances, so ids
// are never reused within a process lifetime.
func (r *MemoryRepo) Create(ctx context.Context, doc Document) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	doc.ID = r.nextID
	r.nextID++
	doc.Status = StatusUploaded
	doc.UploadedAt = time.Now().UTC()

	r.docs[doc.ID] = doc
	r.order = append(r.order, doc.ID)
	return doc, nil
}

// Delete removes a document, reporting whether it existed.
func (r *MemoryRepo) Delete(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.docs[id]; !ok {
		return false, nil
	}
	delete(r.docs, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return true, nil
}

// UpdateStatus sets the status of an existing document.
func (r *MemoryRepo) UpdateStatus(ctx context.Context, id int64, status string) (Document, error) {
	if err := ctx.Err(); err != nil {
		return Document{}, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	doc, ok := r.docs[id]
	if !ok {
		return Document{}, ErrNotFound
	}
	doc.Status = status
	r.docs[id] = doc
	return doc, nil
}

var _ Repo = (*MemoryRepo)(nil)
