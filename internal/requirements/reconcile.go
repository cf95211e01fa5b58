package requirements

import (
	"math"
	"sort"

	"docportal-backend/internal/monday"
)

// ChecklistItem is the reconciled state of one document type.
type ChecklistItem struct {
	DocumentType string `json:"documentType"`
	Requirement  Level  `json:"requirement"`
	Status       string `json:"status"` // uploaded, required or optional
	Description  string `json:"description,omitempty"`
}

// Checklist is the reconciled completion state for an applicant type.
type Checklist struct {
	ApplicantType  string          `json:"applicantType"`
	Items          []ChecklistItem `json:"items"`
	Progress       int             `json:"progress"`
	CompletedCount int             `json:"completedCount"`
	TotalCount     int             `json:"totalCount"`
}

// Reconcile merges a requirement row with the set of uploaded document
// types. Document types with level na never appear in the output. An
// uploaded match wins over the base level; progress counts required
// types only and is 100 when nothing is required.
func Reconcile(applicantType string, levels map[string]Level, uploaded map[string]bool) Checklist {
	out := Checklist{
		ApplicantType: applicantType,
		Items:         []ChecklistItem{},
	}

	requiredTotal := 0
	requiredUploaded := 0
	for _, docType := range orderedTypes(levels) {
		level := levels[docType]
		if level == NotApplicable {
			continue
		}

		status := string(level)
		if uploaded[docType] {
			status = StatusUploaded
			out.CompletedCount++
		}
		if level == Required {
			requiredTotal++
			if uploaded[docType] {
				requiredUploaded++
			}
		}
		out.TotalCount++

		out.Items = append(out.Items, ChecklistItem{
			DocumentType: docType,
			Requirement:  level,
			Status:       status,
			Description:  Descriptions[docType],
		})
	}

	if requiredTotal == 0 {
		out.Progress = 100
	} else {
		out.Progress = int(math.Round(float64(requiredUploaded) / float64(requiredTotal) * 100))
	}
	return out
}

// LevelsFromMissing derives a requirement row from the board's missing
// documents: every missing entry in the applicant's bucket is required.
func LevelsFromMissing(groups monday.Groups, applicantType string) map[string]Level {
	section := sectionForApplicantType(applicantType)
	levels := make(map[string]Level)
	for _, doc := range groups[section] {
		levels[doc.Name] = Required
	}
	return levels
}

func sectionForApplicantType(applicantType string) string {
	switch applicantType {
	case "co-applicant":
		return monday.SectionCoApplicant
	case "guarantor":
		return monday.SectionGuarantor
	default:
		return monday.SectionPrimary
	}
}

// orderedTypes returns the row's document types in display order; types
// outside the static order sort alphabetically after it.
func orderedTypes(levels map[string]Level) []string {
	rank := make(map[string]int, len(documentTypeOrder))
	for i, docType := range documentTypeOrder {
		rank[docType] = i
	}

	out := make([]string, 0, len(levels))
	for docType := range levels {
		out = append(out, docType)
	}
	sort.Slice(out, func(i, j int) bool {
		ri, iKnown := rank[out[i]]
		rj, jKnown := rank[out[j]]
		switch {
		case iKnown && jKnown:
			return ri < rj
		case iKnown:
			return true
		case jKnown:
			return false
		default:
			return out[i] < out[j]
		}
	})
	return out
}
