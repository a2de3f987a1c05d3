// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package identifier

import (
	"strings"
)

// PartialKind marks a publication number whose kind code was given only as "A".
const PartialKind = "A"

// ValidationError reports input that cannot be reconciled with the expected
// shape for its kind. The message names the expected shape.
type ValidationError struct {
	Kind  Kind
	Input string
	Msg   string
}

func (e *ValidationError) Error() string { return e.Msg }

// Publication is a canonical US pre-grant publication number.
type Publication struct {
	// Base is "US" + 4-digit year + 7-digit sequence.
	Base string

	// Kind is "", PartialKind, or a full kind code such as "A1".
	Kind string
}

// Partial reports whether the kind code is missing or given only as "A".
// Both forms are treated the same way.
func (p Publication) Partial() bool {
	return p.Kind == "" || p.Kind == PartialKind
}

func (p Publication) String() string { return p.Base + p.Kind }

// NormalizePublication parses inputs such as "US20240088251A1",
// "US 2024/0088251", "2024/0088251 A1" and "US-2024-0088251-A".
func NormalizePublication(raw string) (Publication, error) {
	s := keepAlnum(strings.ToUpper(raw))
	s = strings.TrimPrefix(s, "US")

	if len(s) < 11 || !allDigits(s[:4]) || !allDigits(s[4:11]) {
		return Publication{}, &ValidationError{
			Kind:  KindPublication,
			Input: raw,
			Msg:   "publication number must be US + 4-digit year + 7-digit sequence, optional kind A1/A2/A9",
		}
	}

	pub := Publication{Base: "US" + s[:11]}
	rest := s[11:]
	if strings.HasPrefix(rest, "A") {
		switch {
		case len(rest) == 1:
			pub.Kind = PartialKind
		case strings.ContainsRune("129", rune(rest[1])):
			pub.Kind = rest[:2]
		}
	}
	return pub, nil
}

// NormalizeApplication strips separators and requires 8 digits
// (2-digit series + 6-digit serial).
func NormalizeApplication(raw string) (string, error) {
	d := digits(raw)
	if len(d) != 8 {
		return "", &ValidationError{
			Kind:  KindApplication,
			Input: raw,
			Msg:   "application number must be 8 digits: 2-digit series + 6-digit serial",
		}
	}
	return d, nil
}

// NormalizePatent strips separators and requires 6 to 8 digits.
func NormalizePatent(raw string) (string, error) {
	d := digits(raw)
	if len(d) < 6 || len(d) > 8 {
		return "", &ValidationError{
			Kind:  KindPatent,
			Input: raw,
			Msg:   "patent number must be 6-8 digits",
		}
	}
	return d, nil
}

func keepAlnum(s string) string {
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9') {
			b.WriteByte(c)
		}
	}
	return b.String()
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

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
