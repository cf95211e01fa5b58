package documents

import "time"

// DocumentResponse is the outward-facing representation of a document.
// File bytes are intentionally not echoed back; they are served by the
// file endpoint.
type DocumentResponse struct {
	ID            int64     `json:"id"`
	ApplicantType string    `json:"applicantType"`
	DocumentType  string    `json:"documentType"`
	FileName      string    `json:"fileName"`
	FileSize      int64     `json:"fileSize"`
	MimeType      string    `json:"mimeType"`
	Status        string    `json:"status"`
	UploadedAt    time.Time `json:"uploadedAt"`
}

func toResponse(doc Document) DocumentResponse {
	return DocumentResponse{
		ID:            doc.ID,
		ApplicantType: doc.ApplicantType,
		DocumentType:  doc.DocumentType,
		FileName:      doc.FileName,
		FileSize:      doc.FileSize,
		MimeType:      doc.MimeType,
		Status:        doc.Status,
		UploadedAt:    doc.UploadedAt,
	}
}
