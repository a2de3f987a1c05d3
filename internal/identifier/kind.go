// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package identifier normalizes free-form publication, application, and
// patent numbers into the canonical tokens the USPTO search API filters on,
// and expands partial publication numbers into one candidate per kind code.
package identifier

import (
	"fmt"
	"strings"
)

// Kind selects which number the user is searching by.
type Kind int

const (
	KindPublication Kind = iota
	KindApplication
	KindPatent
)

// kindSpec carries the per-kind configuration: the API filter field, the
// input hint shown to users, and the function producing search candidates.
type kindSpec struct {
	name        string
	filterField string
	placeholder string
	candidates  func(raw string) ([]string, string, error)
}

var kindSpecs = [...]kindSpec{
	KindPublication: {
		name:        "publication",
		filterField: "applicationMetaData.earliestPublicationNumber",
		placeholder: "USYYYYXXXXXXXA* (e.g. US20240088251A1 or US 2024/0088251)",
		candidates:  publicationCandidates,
	},
	KindApplication: {
		name:        "application",
		filterField: "applicationNumberText",
		placeholder: "Series(2)+Serial(6), e.g. 15745021",
		candidates:  singleCandidate(NormalizeApplication),
	},
	KindPatent: {
		name:        "patent",
		filterField: "applicationMetaData.patentNumber",
		placeholder: "6-8 digits, e.g. 11578110",
		candidates:  singleCandidate(NormalizePatent),
	},
}

// Kinds returns all search kinds in menu order.
func Kinds() []Kind {
	return []Kind{KindPublication, KindApplication, KindPatent}
}

func (k Kind) spec() kindSpec {
	if k < 0 || int(k) >= len(kindSpecs) {
		return kindSpec{name: "unknown"}
	}
	return kindSpecs[k]
}

func (k Kind) String() string { return k.spec().name }

// FilterField returns the search API field the candidate value is matched against.
func (k Kind) FilterField() string { return k.spec().filterField }

// Placeholder returns a short description of the accepted input format.
func (k Kind) Placeholder() string { return k.spec().placeholder }

// ParseKind resolves a kind by name. Matching is case-insensitive.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for _, k := range Kinds() {
		if k.String() == name {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown search kind %q: want publication, application, or patent", s)
}

// Candidates normalizes raw for kind k and returns the values to query, in
// order, along with a label describing them for messages.
func Candidates(k Kind, raw string) ([]string, string, error) {
	spec := k.spec()
	if spec.candidates == nil {
		return nil, "", fmt.Errorf("unknown search kind %d", int(k))
	}
	cands, label, err := spec.candidates(raw)
	if err != nil {
		return nil, "", err
	}
	return Dedupe(cands, func(s string) string { return s }), label, nil
}

func singleCandidate(normalize func(string) (string, error)) func(string) ([]string, string, error) {
	return func(raw string) ([]string, string, error) {
		v, err := normalize(raw)
		if err != nil {
			return nil, "", err
		}
		return []string{v}, v, nil
	}
}

func publicationCandidates(raw string) ([]string, string, error) {
	pub, err := NormalizePublication(raw)
	if err != nil {
		return nil, "", err
	}
	cands, err := Expand(pub)
	if err != nil {
		return nil, "", err
	}
	kinds := make([]string, len(cands))
	for i, c := range cands {
		kinds[i] = strings.TrimPrefix(c, pub.Base)
	}
	return cands, fmt.Sprintf("%s(%s)", pub.Base, strings.Join(kinds, "/")), nil
}

// Normalize returns the canonical form of raw for kind k, without expanding
// publication kind codes.
func Normalize(k Kind, raw string) (string, error) {
	switch k {
	case KindPublication:
		pub, err := NormalizePublication(raw)
		if err != nil {
			return "", err
		}
		return pub.String(), nil
	case KindApplication:
		return NormalizeApplication(raw)
	case KindPatent:
		return NormalizePatent(raw)
	default:
		return "", fmt.Errorf("unknown search kind %d", int(k))
	}
}
