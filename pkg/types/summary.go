// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for uspto-lookup.
// Implements: patent summary (applicants, numbers, grant date) and the
// configuration structs loaded by internal/config.
package types

// Applicant is one party listed on a patent application.
type Applicant struct {
	// Name is the applicant name text, empty when the record carries none.
	Name string `json:"name,omitempty" yaml:"name,omitempty"`

	// Address is a comma-joined postal address, empty when unavailable.
	Address string `json:"address,omitempty" yaml:"address,omitempty"`
}

// PatentSummary is the display view derived from the first record of a
// search. Empty strings mean the value was not found in the record.
type PatentSummary struct {
	ApplicationNumberText     string `json:"applicationNumberText,omitempty" yaml:"application_number_text,omitempty"`
	PatentNumber              string `json:"patentNumber,omitempty" yaml:"patent_number,omitempty"`
	EarliestPublicationNumber string `json:"earliestPublicationNumber,omitempty" yaml:"earliest_publication_number,omitempty"`
	GrantDate                 string `json:"grantDate,omitempty" yaml:"grant_date,omitempty"`

	// Applicants is never nil; records without applicant data yield an empty list.
	Applicants []Applicant `json:"applicants" yaml:"applicants"`
}

// HasNumbers reports whether a patent or application number was resolved.
// The maintenance-fee link is only meaningful when one of them is present.
func (s PatentSummary) HasNumbers() bool {
	return s.PatentNumber != "" || s.ApplicationNumberText != ""
}
