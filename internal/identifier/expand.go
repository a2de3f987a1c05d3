// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package identifier

import "slices"

// allowedKinds are the pre-grant publication kind codes, in query order:
// A1 first publication, A2 second publication, A9 corrected publication.
var allowedKinds = []string{"A1", "A2", "A9"}

// Expand returns the search candidates for a publication. A missing or
// partial kind expands to every allowed kind code in fixed order.
func Expand(pub Publication) ([]string, error) {
	kinds := allowedKinds
	if !pub.Partial() {
		if !slices.Contains(allowedKinds, pub.Kind) {
			return nil, &ValidationError{
				Kind:  KindPublication,
				Input: pub.String(),
				Msg:   "kind code must be A1, A2, or A9",
			}
		}
		kinds = []string{pub.Kind}
	}

	out := make([]string, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, pub.Base+k)
	}
	return Dedupe(out, func(s string) string { return s }), nil
}

// Dedupe drops items whose key was already seen, keeping first-seen order.
func Dedupe[T any](items []T, key func(T) string) []T {
	seen := make(map[string]struct{}, len(items))
	out := make([]T, 0, len(items))
	for _, it := range items {
		k := key(it)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, it)
	}
	return out
}
