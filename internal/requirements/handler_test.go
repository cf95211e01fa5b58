package requirements

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"docportal-backend/internal/documents"
	"docportal-backend/internal/monday"
)

func newChecklistRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h.RegisterRoutes(r.Group("/api"))
	return r
}

func TestChecklistStaticSource(t *testing.T) {
	repo := documents.NewMemoryRepo()
	ctx := context.Background()
	for _, docType := range []string{"Photo ID", "SSN Card"} {
		if _, err := repo.Create(ctx, documents.Document{
			ApplicantType: "primary",
			DocumentType:  docType,
			FileName:      "f.pdf",
			FileSize:      1,
			MimeType:      "application/pdf",
		}); err != nil {
			t.Fatalf("Create: %v", err)
		}
	}

	router := newChecklistRouter(&Handler{Repo: repo, Source: SourceStatic})

	req := httptest.NewRequest(http.MethodGet, "/api/documents/primary/checklist", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}

	var out Checklist
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode checklist: %v", err)
	}
	// 2 of 6 required uploaded.
	if out.Progress != 33 {
		t.Fatalf("expected progress 33, got %d", out.Progress)
	}
	if out.CompletedCount != 2 || out.TotalCount != 8 {
		t.Fatalf("expected 2/8, got %d/%d", out.CompletedCount, out.TotalCount)
	}
}

func TestChecklistUnknownApplicantType(t *testing.T) {
	router := newChecklistRouter(&Handler{Repo: documents.NewMemoryRepo(), Source: SourceStatic})

	req := httptest.NewRequest(http.MethodGet, "/api/documents/landlord/checklist", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.Code)
	}
}

type stubBoard struct {
	groups monday.Groups
	err    error

	gotApplicantID string
}

func (s *stubBoard) FetchMissingDocuments(ctx context.Context, applicantID string) (monday.Groups, error) {
	s.gotApplicantID = applicantID
	return s.groups, s.err
}

func TestChecklistMondaySource(t *testing.T) {
	repo := documents.NewMemoryRepo()
	if _, err := repo.Create(context.Background(), documents.Document{
		ApplicantType: "primary",
		DocumentType:  "Photo ID",
		FileName:      "id.pdf",
		FileSize:      1,
		MimeType:      "application/pdf",
	}); err != nil {
		t.Fatalf("Create: %v", err)
	}

	board := &stubBoard{groups: monday.Groups{
		monday.SectionPrimary: {
			{Name: "Photo ID"},
			{Name: "Pay Stubs"},
		},
		monday.SectionCoApplicant: {},
		monday.SectionGuarantor:   {},
	}}
	router := newChecklistRouter(&Handler{
		Repo:               repo,
		Board:              board,
		Source:             SourceMonday,
		DefaultReferenceID: "default",
	})

	req := httptest.NewRequest(http.MethodGet, "/api/documents/primary/checklist?referenceId=APP-7", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", resp.Code, resp.Body.String())
	}
	if board.gotApplicantID != "APP-7" {
		t.Fatalf("expected board lookup for APP-7, got %q", board.gotApplicantID)
	}

	var out Checklist
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode checklist: %v", err)
	}
	if out.Progress != 50 {
		t.Fatalf("expected progress 50, got %d", out.Progress)
	}
	if len(out.Items) != 2 {
		t.Fatalf("expected 2 items from the feed, got %d", len(out.Items))
	}
}

func TestChecklistMondaySourceUpstreamFailure(t *testing.T) {
	router := newChecklistRouter(&Handler{
		Repo:               documents.NewMemoryRepo(),
		Board:              &stubBoard{err: errors.New("board unreachable")},
		Source:             SourceMonday,
		DefaultReferenceID: "default",
	})

	req := httptest.NewRequest(http.MethodGet, "/api/documents/primary/checklist", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	if resp.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", resp.Code)
	}
}
