package documents

import "time"

// Document statuses. A document starts as uploaded and may be moved to
// processing by an explicit status update; there are no automatic
// transitions.
const (
	StatusUploaded   = "uploaded"
	StatusProcessing = "processing"
)

// MaxFileSize is the upload size ceiling in bytes.
const MaxFileSize = 10 << 20 // 10 MiB

// AllowedMimeTypes is the upload MIME allow-list.
var AllowedMimeTypes = map[string]struct{}{
	"application/pdf": {},
	"image/jpeg":      {},
	"image/png":       {},
}

// Document is an uploaded applicant document. IDs are assigned by the
// store, increase monotonically and are never reused within a process
// lifetime.
type Document struct {
	ID            int64
	ApplicantType string
	DocumentType  string
	FileName      string
	FileSize      int64
	MimeType      string
	Status        string
	UploadedAt    time.Time
	FileData      string // base64-encoded payload, may be empty
}

// ValidStatus reports whether s is a known document status.
func ValidStatus(s string) bool {
	return s == StatusUploaded || s == StatusProcessing
}
