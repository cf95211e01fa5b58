// Package requirements holds the static per-applicant-type document
// requirement table and the reconciliation of requirements against
// uploaded documents.
package requirements

// Level is a document requirement level for an applicant type.
type Level string

const (
	Required      Level = "required"
	Optional      Level = "optional"
	NotApplicable Level = "na"
)

// StatusUploaded marks a checklist entry with a matching uploaded document.
const StatusUploaded = "uploaded"

// ApplicantTypes lists the applicant types with a requirement row.
var ApplicantTypes = []string{"primary", "co-applicant", "guarantor"}

// documentTypeOrder fixes checklist ordering; maps do not iterate stably.
var documentTypeOrder = []string{
	"Photo ID",
	"SSN Card",
	"Bank Statements",
	"Tax Returns",
	"Employment Letter",
	"Pay Stubs",
	"Credit Report",
	"Reference Letters",
}

// Table is the static requirement configuration, loaded at process start
// and never mutated.
var Table = map[string]map[string]Level{
	"primary": {
		"Photo ID":          Required,
		"SSN Card":          Required,
		"Bank Statements":   Required,
		"Tax Returns":       Required,
		"Employment Letter": Required,
		"Pay Stubs":         Required,
		"Credit Report":     Optional,
		"Reference Letters": Optional,
	},
	"co-applicant": {
		"Photo ID":          Required,
		"SSN Card":          Required,
		"Bank Statements":   Required,
		"Tax Returns":       Required,
		"Employment Letter": Required,
		"Pay Stubs":         Required,
		"Credit Report":     Optional,
		"Reference Letters": Optional,
	},
	"guarantor": {
		"Photo ID":          Required,
		"SSN Card":          Required,
		"Bank Statements":   Required,
		"Tax Returns":       Required,
		"Employment Letter": Required,
		"Pay Stubs":         Required,
		"Credit Report":     Required,
		"Reference Letters": Optional,
	},
}

// Descriptions explains each document type for display.
var Descriptions = map[string]string{
	"Photo ID":          "Driver's license, passport, or state ID",
	"SSN Card":          "Official SSN card or W-2 form",
	"Bank Statements":   "Last 3 months of bank statements",
	"Tax Returns":       "Last 2 years of tax returns",
	"Employment Letter": "Letter from employer confirming employment",
	"Pay Stubs":         "Last 3 months of pay stubs",
	"Credit Report":     "Recent credit report from major bureau",
	"Reference Letters": "Professional or personal references",
}

// ForApplicantType returns the requirement row for an applicant type.
func ForApplicantType(applicantType string) (map[string]Level, bool) {
	levels, ok := Table[applicantType]
	return levels, ok
}
