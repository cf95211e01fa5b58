package documents

import "errors"

var ErrNotFound = errors.New("document not found")

// FieldError describes a single invalid field in an upload request.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError aggregates the field errors of a rejected upload.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 1 {
		return e.Fields[0].Field + ": " + e.Fields[0].Message
	}
	return "invalid document data"
}
