// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package selftest runs quick built-in checks of identifier parsing and
// display formatting, for use from the command line without network access.
package selftest

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/uspto-lookup/internal/display"
	"github.com/pdiddy/uspto-lookup/internal/identifier"
)

// Check is the outcome of one self-test.
type Check struct {
	Name    string `json:"name" yaml:"name"`
	OK      bool   `json:"ok" yaml:"ok"`
	Details string `json:"details,omitempty" yaml:"details,omitempty"`
}

type probe struct {
	name string
	run  func() (ok bool, details string, err error)
}

func publication(input, wantKind string, partialOK bool) func() (bool, string, error) {
	return func() (bool, string, error) {
		p, err := identifier.NormalizePublication(input)
		if err != nil {
			return false, "", err
		}
		ok := p.Base == "US20240088251" && (p.Kind == wantKind || (partialOK && p.Partial()))
		return ok, p.String(), nil
	}
}

func normalized(k identifier.Kind, input string) func() (bool, string, error) {
	return func() (bool, string, error) {
		v, err := identifier.Normalize(k, input)
		return err == nil, v, err
	}
}

func formatted(f func(string) string, input, want string) func() (bool, string, error) {
	return func() (bool, string, error) {
		got := f(input)
		return got == want, got, nil
	}
}

var probes = []probe{
	{"pub exact no sep", publication("US20240088251A1", "A1", false)},
	{"pub with space+slash no kind", publication("US 2024/0088251", "", true)},
	{"pub missing US", publication("2024/0088251 A1", "A1", false)},
	{"pub hyphen partial kind", publication("US-2024-0088251-A", identifier.PartialKind, false)},
	{"application 8 digits", normalized(identifier.KindApplication, "15-745,021")},
	{"patent 6-8 digits", normalized(identifier.KindPatent, "11,578,110")},
	{"format app nn/nnn,nnn", formatted(display.ApplicationNumber, "15745021", "15/745,021")},
	{"format patent commas", formatted(display.PatentNumber, "11578110", "11,578,110")},
}

// Run executes every check in order. A panicking check is reported as a
// failure and does not stop the rest.
func Run() []Check {
	out := make([]Check, 0, len(probes))
	for _, p := range probes {
		out = append(out, runProbe(p))
	}
	return out
}

func runProbe(p probe) (c Check) {
	c.Name = p.name
	defer func() {
		if r := recover(); r != nil {
			c.OK = false
			c.Details = fmt.Sprint(r)
		}
	}()
	ok, details, err := p.run()
	c.OK = ok && err == nil
	c.Details = details
	if err != nil {
		c.Details = err.Error()
	}
	return c
}

// Passed reports whether every check succeeded.
func Passed(checks []Check) bool {
	for _, c := range checks {
		if !c.OK {
			return false
		}
	}
	return true
}

// Format writes one line per check to w.
func Format(checks []Check, w io.Writer) {
	for _, c := range checks {
		status := "OK"
		if !c.OK {
			status = "FAIL"
			if c.Details != "" {
				status += " - " + c.Details
			}
		}
		fmt.Fprintf(w, "%s: %s\n", c.Name, status)
	}
	passed := 0
	for _, c := range checks {
		if c.OK {
			passed++
		}
	}
	fmt.Fprintf(w, "%s\n%d/%d passed\n", strings.Repeat("-", 30), passed, len(checks))
}
