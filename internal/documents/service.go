package documents

import (
	"context"
	"strings"

	"docportal-backend/internal/webhook"
)

// Service contains business logic for documents.
type Service struct {
	Repo     Repo
	Notifier *webhook.Notifier

	// DefaultReferenceID is used for webhook payloads when the upload
	// carries no reference id.
	DefaultReferenceID string
}

// CreateInput carries a validated-at-the-boundary upload request.
type CreateInput struct {
	ApplicantType string
	DocumentType  string
	FileName      string
	FileSize      int64
	MimeType      string
	FileData      string // base64
	ReferenceID   string
}

// Upload validates the input, stores the document and dispatches the
// webhook notification. Webhook delivery is detached and never affects
// the returned result.
func (s *Service) Upload(ctx context.Context, in CreateInput) (Document, error) {
	if verr := validate(in); verr != nil {
		return Document{}, verr
	}

	doc, err := s.Repo.Create(ctx, Document{
		ApplicantType: strings.TrimSpace(in.ApplicantType),
		DocumentType:  strings.TrimSpace(in.DocumentType),
		FileName:      in.FileName,
		FileSize:      in.FileSize,
		MimeType:      in.MimeType,
		FileData:      in.FileData,
	})
	if err != nil {
		return Document{}, err
	}

	referenceID := strings.TrimSpace(in.ReferenceID)
	if referenceID == "" {
		referenceID = s.DefaultReferenceID
	}
	s.Notifier.Notify(webhook.UploadNotification{
		ReferenceID: referenceID,
		FileName:    doc.FileName,
		SectionName: doc.DocumentType,
		FileBase64:  doc.FileData,
	})

	return doc, nil
}

// List returns documents for an applicant type.
func (s *Service) List(ctx context.Context, applicantType string) ([]Document, error) {
	return s.Repo.List(ctx, applicantType)
}

// Get returns a document by id.
func (s *Service) Get(ctx context.Context, id int64) (Document, error) {
	return s.Repo.Get(ctx, id)
}

// Delete removes a document, reporting whether it existed.
func (s *Service) Delete(ctx context.Context, id int64) (bool, error) {
	return s.Repo.Delete(ctx, id)
}

// UpdateStatus moves a document to the given status.
func (s *Service) UpdateStatus(ctx context.Context, id int64, status string) (Document, error) {
	if !ValidStatus(status) {
		return Document{}, &ValidationError{Fields: []FieldError{
			{Field: "status", Message: "must be one of: uploaded, processing"},
		}}
	}
	return s.Repo.UpdateStatus(ctx, id, status)
}

func validate(in CreateInput) *ValidationError {
	var fields []FieldError
	if strings.TrimSpace(in.ApplicantType) == "" {
		fields = append(fields, FieldError{Field: "applicantType", Message: "is required"})
	}
	if strings.TrimSpace(in.DocumentType) == "" {
		fields = append(fields, FieldError{Field: "documentType", Message: "is required"})
	}
	if strings.TrimSpace(in.FileName) == "" {
		fields = append(fields, FieldError{Field: "fileName", Message: "is required"})
	}
	if _, ok := AllowedMimeTypes[in.MimeType]; !ok {
		fields = append(fields, FieldError{Field: "mimeType", Message: "only PDF, JPG and PNG files are allowed"})
	}
	if in.FileSize <= 0 {
		fields = append(fields, FieldError{Field: "fileSize", Message: "must be positive"})
	} else if in.FileSize > MaxFileSize {
		fields = append(fields, FieldError{Field: "fileSize", Message: "exceeds the 10MB limit"})
	}
	if in.FileData == "" {
		fields = append(fields, FieldError{Field: "fileData", Message: "is required"})
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}
