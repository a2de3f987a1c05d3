// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package display converts canonical USPTO numbers into their conventional
// punctuated forms. Every function is total: input that does not match the
// expected shape is returned unchanged.
package display

import (
	"net/url"
	"strings"

	"github.com/pdiddy/uspto-lookup/pkg/types"
)

// DefaultFeesBaseURL is the maintenance-fee storefront domain.
const DefaultFeesBaseURL = "https://fees.uspto.gov"

// ApplicationNumber formats an 8-digit application number as DD/DDD,DDD
// (e.g. "15745021" -> "15/745,021").
func ApplicationNumber(s string) string {
	d := digits(s)
	if len(d) != 8 {
		return s
	}
	return d[:2] + "/" + d[2:5] + "," + d[5:]
}

// PatentNumber groups the digits of a patent number in threes from the
// right (e.g. "11578110" -> "11,578,110"). Non-digits are dropped.
func PatentNumber(s string) string {
	d := digits(s)
	if d == "" {
		return s
	}

	var b strings.Builder
	lead := len(d) % 3
	if lead > 0 {
		b.WriteString(d[:lead])
	}
	for i := lead; i < len(d); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(d[i : i+3])
	}
	return b.String()
}

// MaintenanceFeeURL builds the maintenance-fee details link for a patent.
// Either number may be empty.
func MaintenanceFeeURL(base, patentNumber, applicationNumber string) string {
	if base == "" {
		base = DefaultFeesBaseURL
	}
	return strings.TrimRight(base, "/") +
		"/MaintenanceFees/fees/details?patentNumber=" + url.QueryEscape(patentNumber) +
		"&applicationNumber=" + url.QueryEscape(applicationNumber) +
		"&caresActSelected="
}

func digits(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] >= '0' && s[i] <= '9' {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

// Numbers holds the display forms of a summary's identifiers.
type Numbers struct {
	Application       string
	Patent            string
	MaintenanceFeeURL string
}

// Summary formats the numbers of s. The maintenance-fee link is only built
// when s carries a patent or application number.
func Summary(s types.PatentSummary, feesBase string) Numbers {
	n := Numbers{
		Application: ApplicationNumber(s.ApplicationNumberText),
		Patent:      PatentNumber(s.PatentNumber),
	}
	if s.HasNumbers() {
		n.MaintenanceFeeURL = MaintenanceFeeURL(feesBase, s.PatentNumber, s.ApplicationNumberText)
	}
	return n
}
