// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lookup

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"go.yaml.in/yaml/v3"
)

const (
	notAvailable = "Not available"
	unknownName  = "Unknown name"
)

// AmbiguousWarning is shown when more than one record matched.
const AmbiguousWarning = "Multiple results found. Please refine your search."

func orNotAvailable(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}

// FormatText writes a human-readable summary of res to w.
func FormatText(res *Result, w io.Writer) {
	if res.Ambiguous {
		fmt.Fprintf(w, "Warning: %s (%d results for %s)\n\n", AmbiguousWarning, res.Total, res.Label)
	}
	if res.Summary == nil {
		fmt.Fprintf(w, "%d results for %s\n", res.Total, res.Label)
		return
	}

	s := res.Summary
	fmt.Fprintln(w, "Summary")
	fmt.Fprintln(w, strings.Repeat("-", 40))
	fmt.Fprintf(w, "%-22s %s\n", "Application number:", orNotAvailable(res.ApplicationNumberDisplay))
	fmt.Fprintf(w, "%-22s %s\n", "Patent number:", orNotAvailable(res.PatentNumberDisplay))
	fmt.Fprintf(w, "%-22s %s\n", "Earliest publication:", orNotAvailable(s.EarliestPublicationNumber))
	fmt.Fprintf(w, "%-22s %s\n", "Grant date:", orNotAvailable(s.GrantDate))

	fmt.Fprintln(w, "\nApplicants")
	if len(s.Applicants) == 0 {
		fmt.Fprintln(w, "  No applicant data found.")
	}
	for _, a := range s.Applicants {
		name := a.Name
		if name == "" {
			name = unknownName
		}
		if a.Address != "" {
			fmt.Fprintf(w, "  - %s - %s\n", name, a.Address)
		} else {
			fmt.Fprintf(w, "  - %s\n", name)
		}
	}

	if res.MaintenanceFeeURL != "" {
		fmt.Fprintf(w, "\nMaintenance fees: %s\n", res.MaintenanceFeeURL)
	}
	fmt.Fprintf(w, "\n%d result", res.Total)
	if res.Total != 1 {
		fmt.Fprint(w, "s")
	}
	fmt.Fprintf(w, " for %s\n", res.Label)
}

// FormatJSON writes res as indented JSON to w.
func FormatJSON(res *Result, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(res)
}

// FormatYAML writes res as YAML to w.
func FormatYAML(res *Result, w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(res); err != nil {
		return fmt.Errorf("encoding YAML: %w", err)
	}
	return enc.Close()
}

// FormatRaw writes the merged records as {"results": [...]} to w.
func FormatRaw(res *Result, w io.Writer) error {
	data, err := res.RawJSON()
	if err != nil {
		return fmt.Errorf("encoding results: %w", err)
	}
	_, err = fmt.Fprintf(w, "%s\n", data)
	return err
}
