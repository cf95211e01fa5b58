package monday

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const boardFixture = `{
  "data": {
    "boards": [
      {
        "items_page": {
          "items": [
            {
              "id": "101",
              "name": "Smith Application",
              "column_values": [
                {"id": "text_mksxyax3", "text": "APP-1"}
              ],
              "subitems": [
                {
                  "id": "201",
                  "name": "Photo ID",
                  "column_values": [
                    {"id": "status", "text": "Missing"},
                    {"id": "color_mksyqx5h", "text": "Applicant"}
                  ]
                },
                {
                  "id": "202",
                  "name": "Pay Stubs",
                  "column_values": [
                    {"id": "status", "text": "Received"},
                    {"id": "color_mksyqx5h", "text": "Applicant"}
                  ]
                },
                {
                  "id": "203",
                  "name": "Bank Statements",
                  "column_values": [
                    {"id": "status", "text": "Missing"},
                    {"id": "color_mksyqx5h", "text": "Co-Applicant"}
                  ]
                },
                {
                  "id": "204",
                  "name": "Tax Returns",
                  "column_values": [
                    {"id": "status", "text": "", "label": "Missing"},
                    {"id": "color_mksyqx5h", "text": ""}
                  ]
                },
                {
                  "id": "205",
                  "name": "Credit Report",
                  "column_values": [
                    {"id": "status", "text": "Missing"},
                    {"id": "color_mksyqx5h", "text": "Broker"}
                  ]
                }
              ]
            },
            {
              "id": "102",
              "name": "Jones Application",
              "column_values": [
                {"id": "text_mksxyax3", "text": "APP-2"}
              ],
              "subitems": [
                {
                  "id": "301",
                  "name": "Photo ID",
                  "column_values": [
                    {"id": "status", "text": "Missing"},
                    {"id": "color_mksyqx5h", "text": "Guarantor"}
                  ]
                }
              ]
            }
          ]
        }
      }
    ]
  }
}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client, err := NewClient(Config{
		Token:   "token-123",
		BoardID: "9602025981",
		APIURL:  srv.URL,
	})
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	return client
}

func TestFetchMissingDocumentsFiltersAndGroups(t *testing.T) {
	var gotAuth, gotQuery string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		var req struct {
			Query string `json:"query"`
		}
		_ = json.Unmarshal(raw, &req)
		gotQuery = req.Query
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(boardFixture))
	})

	groups, err := client.FetchMissingDocuments(context.Background(), "APP-1")
	if err != nil {
		t.Fatalf("FetchMissingDocuments: %v", err)
	}

	if gotAuth != "token-123" {
		t.Fatalf("expected token header, got %q", gotAuth)
	}
	if !strings.Contains(gotQuery, "9602025981") {
		t.Fatalf("query must target the configured board: %s", gotQuery)
	}

	// All three sections are always present.
	for _, section := range []string{SectionPrimary, SectionCoApplicant, SectionGuarantor} {
		if _, ok := groups[section]; !ok {
			t.Fatalf("missing section %q", section)
		}
	}

	// APP-1's Missing subitems only: "Applicant" and the blank type both
	// normalize to Primary Applicant, "Broker" falls back to the primary
	// bucket, "Received" status is dropped, and APP-2's guarantor subitem
	// never appears.
	primary := groups[SectionPrimary]
	if len(primary) != 3 {
		t.Fatalf("expected 3 primary documents, got %d: %+v", len(primary), primary)
	}
	for _, doc := range primary {
		if doc.Name == "Photo ID" && doc.ApplicantType != PrimaryApplicant {
			t.Fatalf("expected Applicant to normalize to Primary Applicant, got %q", doc.ApplicantType)
		}
		if doc.Name == "Pay Stubs" {
			t.Fatalf("Received-status subitem must be filtered out")
		}
		if doc.ParentItemID != "101" || doc.ParentItemName != "Smith Application" {
			t.Fatalf("parent item not propagated: %+v", doc)
		}
	}

	co := groups[SectionCoApplicant]
	if len(co) != 1 || co[0].Name != "Bank Statements" {
		t.Fatalf("unexpected co-applicant bucket: %+v", co)
	}

	if len(groups[SectionGuarantor]) != 0 {
		t.Fatalf("guarantor bucket must be empty for APP-1: %+v", groups[SectionGuarantor])
	}
}

func TestFetchMissingDocumentsNoMatches(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(boardFixture))
	})

	groups, err := client.FetchMissingDocuments(context.Background(), "APP-404")
	if err != nil {
		t.Fatalf("FetchMissingDocuments: %v", err)
	}
	for section, docs := range groups {
		if len(docs) != 0 {
			t.Fatalf("expected empty %q, got %+v", section, docs)
		}
	}
}

func TestFetchMissingDocumentsAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream down", http.StatusBadGateway)
	})

	if _, err := client.FetchMissingDocuments(context.Background(), "APP-1"); err == nil {
		t.Fatalf("expected error on non-200 response")
	}
}

func TestFetchMissingDocumentsGraphQLError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"errors":[{"message":"invalid board id"}]}`))
	})

	_, err := client.FetchMissingDocuments(context.Background(), "APP-1")
	if err == nil || !strings.Contains(err.Error(), "invalid board id") {
		t.Fatalf("expected graphql error, got %v", err)
	}
}

func TestDebugCounts(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(boardFixture))
	})

	report, err := client.Debug(context.Background())
	if err != nil {
		t.Fatalf("Debug: %v", err)
	}
	if report.TotalItems != 2 {
		t.Fatalf("expected 2 items, got %d", report.TotalItems)
	}
	if report.TotalSubitems != 6 {
		t.Fatalf("expected 6 subitems, got %d", report.TotalSubitems)
	}
	if report.MissingSubitems != 5 {
		t.Fatalf("expected 5 missing subitems, got %d", report.MissingSubitems)
	}
}

func TestNewClientRequiresTokenAndBoard(t *testing.T) {
	if _, err := NewClient(Config{BoardID: "1"}); err == nil {
		t.Fatalf("expected error without token")
	}
	if _, err := NewClient(Config{Token: "t"}); err == nil {
		t.Fatalf("expected error without board id")
	}
}
