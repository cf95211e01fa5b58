// Package monday queries a monday.com board for missing applicant
// documents. The board is read-only from this service's point of view;
// results are fetched fresh on every request and never cached.
package monday

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	defaultAPIURL              = "https://api.monday.com/v2"
	defaultApplicantIDColumn   = "text_mksxyax3"
	defaultApplicantTypeColumn = "color_mksyqx5h"

	statusColumnID = "status"
	missingStatus  = "Missing"

	apiVersion     = "2024-10"
	requestTimeout = 30 * time.Second
)

// Applicant type labels as they appear on the board.
const (
	PrimaryApplicant = "Primary Applicant"
	CoApplicant      = "Co-Applicant"
	Guarantor        = "Guarantor"
)

// Section keys of the grouped response. All three are always present.
const (
	SectionPrimary     = "Required Documents - Primary Applicant"
	SectionCoApplicant = "Required Documents - Co-Applicant"
	SectionGuarantor   = "Required Documents - Guarantor"
)

// MissingDocument is one missing subitem from the board, tagged with its
// parent item and classified applicant type.
type MissingDocument struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	Status         string `json:"status"`
	ParentItemName string `json:"parentItemName"`
	ParentItemID   string `json:"parentItemId"`
	ApplicantType  string `json:"applicantType"`
}

// Groups maps section names to their missing documents.
type Groups map[string][]MissingDocument

func newGroups() Groups {
	return Groups{
		SectionPrimary:     {},
		SectionCoApplicant: {},
		SectionGuarantor:   {},
	}
}

// Config holds client settings. Token and BoardID are required; the rest
// default to the production board layout.
type Config struct {
	Token               string
	BoardID             string
	APIURL              string
	ApplicantIDColumn   string
	ApplicantTypeColumn string
}

// Client is a minimal GraphQL client for the board API.
type Client struct {
	token               string
	boardID             string
	apiURL              string
	applicantIDColumn   string
	applicantTypeColumn string
	httpClient          *http.Client
}

// NewClient constructs a Client.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.Token) == "" {
		return nil, fmt.Errorf("MONDAY_TOKEN is required")
	}
	if strings.TrimSpace(cfg.BoardID) == "" {
		return nil, fmt.Errorf("MONDAY_BOARD_ID is required")
	}
	apiURL := strings.TrimSpace(cfg.APIURL)
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	idColumn := strings.TrimSpace(cfg.ApplicantIDColumn)
	if idColumn == "" {
		idColumn = defaultApplicantIDColumn
	}
	typeColumn := strings.TrimSpace(cfg.ApplicantTypeColumn)
	if typeColumn == "" {
		typeColumn = defaultApplicantTypeColumn
	}
	return &Client{
		token:               cfg.Token,
		boardID:             cfg.BoardID,
		apiURL:              apiURL,
		applicantIDColumn:   idColumn,
		applicantTypeColumn: typeColumn,
		httpClient:          &http.Client{Timeout: requestTimeout},
	}, nil
}

type gqlRequest struct {
	Query string `json:"query"`
}

type columnValue struct {
	ID    string `json:"id"`
	Text  string `json:"text"`
	Label string `json:"label"`
}

type subitem struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	ColumnValues []columnValue `json:"column_values"`
}

type boardItem struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	ColumnValues []columnValue `json:"column_values"`
	Subitems     []subitem     `json:"subitems"`
}

type gqlResponse struct {
	Data struct {
		Boards []struct {
			ItemsPage struct {
				Items []boardItem `json:"items"`
			} `json:"items_page"`
		} `json:"boards"`
	} `json:"data"`
	Errors []struct {
		Message string `json:"message"`
	} `json:"errors"`
}

// FetchMissingDocuments returns the board's Missing-status subitems for
// the given applicant id, grouped into the three fixed sections.
func (c *Client) FetchMissingDocuments(ctx context.Context, applicantID string) (Groups, error) {
	items, err := c.queryItems(ctx)
	if err != nil {
		return nil, err
	}

	groups := newGroups()
	for _, item := range items {
		if columnText(item.ColumnValues, c.applicantIDColumn) != applicantID {
			continue
		}
		for _, sub := range item.Subitems {
			if columnText(sub.ColumnValues, statusColumnID) != missingStatus {
				continue
			}
			applicantType := normalizeApplicantType(columnText(sub.ColumnValues, c.applicantTypeColumn))
			section := sectionFor(applicantType)
			groups[section] = append(groups[section], MissingDocument{
				ID:             sub.ID,
				Name:           sub.Name,
				Status:         columnText(sub.ColumnValues, statusColumnID),
				ParentItemName: item.Name,
				ParentItemID:   item.ID,
				ApplicantType:  applicantType,
			})
		}
	}
	return groups, nil
}

// DebugReport summarizes the board contents for operators.
type DebugReport struct {
	TotalItems      int            `json:"totalItems"`
	TotalSubitems   int            `json:"totalSubitems"`
	MissingSubitems int            `json:"missingSubitems"`
	MissingItems    []DebugSubitem `json:"missingItems"`
}

// DebugSubitem identifies one Missing-status subitem.
type DebugSubitem struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Status string `json:"status"`
}

// Debug returns item and Missing-subitem counts across the whole board.
func (c *Client) Debug(ctx context.Context) (DebugReport, error) {
	items, err := c.queryItems(ctx)
	if err != nil {
		return DebugReport{}, err
	}

	report := DebugReport{
		TotalItems:   len(items),
		MissingItems: []DebugSubitem{},
	}
	for _, item := range items {
		report.TotalSubitems += len(item.Subitems)
		for _, sub := range item.Subitems {
			status := columnText(sub.ColumnValues, statusColumnID)
			if status != missingStatus {
				continue
			}
			report.MissingSubitems++
			report.MissingItems = append(report.MissingItems, DebugSubitem{
				ID:     sub.ID,
				Name:   sub.Name,
				Status: status,
			})
		}
	}
	return report, nil
}

func (c *Client) queryItems(ctx context.Context) ([]boardItem, error) {
	query := fmt.Sprintf(`query {
  boards(ids: %s) {
    items_page {
      items {
        id
        name
        column_values(ids: [%q]) {
          id
          text
        }
        subitems {
          id
          name
          column_values(ids: [%q, %q]) {
            id
            text
            ... on StatusValue {
              label
            }
          }
        }
      }
    }
  }
}`, c.boardID, c.applicantIDColumn, statusColumnID, c.applicantTypeColumn)

	body, err := json.Marshal(gqlRequest{Query: query})
	if err != nil {
		return nil, fmt.Errorf("marshal query: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", c.token)
	req.Header.Set("API-Version", apiVersion)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("board request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read board response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("board API returned status %d", resp.StatusCode)
	}

	var parsed gqlResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return nil, fmt.Errorf("decode board response: %w", err)
	}
	if len(parsed.Errors) > 0 {
		return nil, fmt.Errorf("board API error: %s", parsed.Errors[0].Message)
	}
	if len(parsed.Data.Boards) == 0 {
		return nil, nil
	}
	return parsed.Data.Boards[0].ItemsPage.Items, nil
}

// columnText returns the display text of a column, falling back to the
// status label when text is empty.
func columnText(values []columnValue, id string) string {
	for _, cv := range values {
		if cv.ID != id {
			continue
		}
		if cv.Text != "" {
			return cv.Text
		}
		return cv.Label
	}
	return ""
}

// normalizeApplicantType maps an absent type to Primary Applicant and the
// board's "Applicant" label to "Primary Applicant".
func normalizeApplicantType(raw string) string {
	t := strings.TrimSpace(raw)
	if t == "" || t == "Applicant" {
		return PrimaryApplicant
	}
	return t
}

// sectionFor buckets an applicant type; anything unrecognized falls into
// the primary section.
func sectionFor(applicantType string) string {
	switch applicantType {
	case CoApplicant:
		return SectionCoApplicant
	case Guarantor:
		return SectionGuarantor
	default:
		return SectionPrimary
	}
}
