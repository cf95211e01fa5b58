package requirements

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"docportal-backend/internal/documents"
	"docportal-backend/internal/monday"
	"docportal-backend/internal/shared/server/respond"
)

// SourceStatic and SourceMonday name the two required-document sources.
const (
	SourceStatic = "static"
	SourceMonday = "monday"
)

// BoardFetcher is the board dependency of the checklist endpoint.
type BoardFetcher interface {
	FetchMissingDocuments(ctx context.Context, applicantID string) (monday.Groups, error)
}

// Handler serves the reconciled checklist for an applicant type.
type Handler struct {
	Repo   documents.Repo
	Board  BoardFetcher
	Source string

	// DefaultReferenceID is the applicant identifier used for the board
	// lookup when the request does not carry one.
	DefaultReferenceID string
}

// RegisterRoutes attaches the checklist route. The :key segment name is
// shared with the documents GET routes; here it is an applicant type.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/documents/:key/checklist", h.checklist)
}

func (h *Handler) checklist(c *gin.Context) {
	applicantType := c.Param("key")
	c.Set("applicantType", applicantType)

	levels, ok := ForApplicantType(applicantType)
	if !ok {
		respond.Error(c, http.StatusBadRequest, "validation_error", "Unknown applicant type", nil)
		return
	}

	docs, err := h.Repo.List(c.Request.Context(), applicantType)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to fetch documents", nil)
		return
	}

	if h.Source == SourceMonday && h.Board != nil {
		referenceID := strings.TrimSpace(c.Query("referenceId"))
		if referenceID == "" {
			referenceID = h.DefaultReferenceID
		}
		groups, err := h.Board.FetchMissingDocuments(c.Request.Context(), referenceID)
		if err != nil {
			respond.Error(c, http.StatusInternalServerError, "upstream_error", "Failed to fetch documents from board", nil)
			return
		}
		levels = LevelsFromMissing(groups, applicantType)
	}

	respond.OK(c, Reconcile(applicantType, levels, uploadedTypes(docs)))
}

func uploadedTypes(docs []documents.Document) map[string]bool {
	out := make(map[string]bool, len(docs))
	for _, doc := range docs {
		out[doc.DocumentType] = true
	}
	return out
}
