// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lookup runs a patent lookup: it normalizes the user's number,
// queries each search candidate in turn, merges the records, and builds a
// summary of the first one.
package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/pdiddy/uspto-lookup/internal/display"
	"github.com/pdiddy/uspto-lookup/internal/identifier"
	"github.com/pdiddy/uspto-lookup/internal/record"
	"github.com/pdiddy/uspto-lookup/internal/uspto"
	"github.com/pdiddy/uspto-lookup/pkg/types"
)

const tracerName = "github.com/pdiddy/uspto-lookup/internal/lookup"

// Backend runs one filtered search. *uspto.Client implements it.
type Backend interface {
	Search(ctx context.Context, q uspto.Query) (*uspto.Page, error)
}

// ProgressFunc is called after each candidate has been tried. done counts
// the candidates finished so far out of total.
type ProgressFunc func(done, total int, candidate string)

// Request is one user search.
type Request struct {
	APIKey string
	Kind   identifier.Kind
	Value  string
}

// Result is a completed search.
type Result struct {
	Kind       identifier.Kind `json:"-" yaml:"-"`
	Label      string          `json:"label" yaml:"label"`
	Candidates []string        `json:"candidates" yaml:"candidates"`

	// Records are the merged raw records from all candidates, in order.
	Records []json.RawMessage `json:"-" yaml:"-"`

	// Total is the number of matches reported across candidates.
	Total int `json:"total" yaml:"total"`

	// Ambiguous is set when more than one record matched. It is a warning:
	// the results are still returned.
	Ambiguous bool `json:"ambiguous" yaml:"ambiguous"`

	// Summary describes the first record; nil when no record was returned.
	Summary *types.PatentSummary `json:"summary,omitempty" yaml:"summary,omitempty"`

	ApplicationNumberDisplay string `json:"applicationNumberDisplay,omitempty" yaml:"application_number_display,omitempty"`
	PatentNumberDisplay      string `json:"patentNumberDisplay,omitempty" yaml:"patent_number_display,omitempty"`
	MaintenanceFeeURL        string `json:"maintenanceFeeURL,omitempty" yaml:"maintenance_fee_url,omitempty"`
}

// RawJSON returns the merged records as {"results": [...]}, indented.
func (r *Result) RawJSON() ([]byte, error) {
	records := r.Records
	if records == nil {
		records = []json.RawMessage{}
	}
	return json.MarshalIndent(struct {
		Results []json.RawMessage `json:"results"`
	}{records}, "", "  ")
}

// Searcher sequences candidate searches against a Backend.
type Searcher struct {
	Backend     Backend
	FeesBaseURL string
	Log         *zap.SugaredLogger
	Tracer      trace.Tracer
	Progress    ProgressFunc
}

// state tracks a run through its candidates.
type state int

const (
	statePending state = iota
	stateHasPartialResults
	stateFailed
	stateSucceeded
)

func (s state) String() string {
	switch s {
	case statePending:
		return "pending"
	case stateHasPartialResults:
		return "partial"
	case stateFailed:
		return "failed"
	case stateSucceeded:
		return "succeeded"
	default:
		return "unknown"
	}
}

// Run searches every candidate for req in order, one request at a time.
// A 404 moves on to the next candidate; any other error status aborts the
// whole run and discards what was merged so far.
func (s *Searcher) Run(ctx context.Context, req Request) (*Result, error) {
	log := s.Log
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	tracer := s.Tracer
	if tracer == nil {
		tracer = otel.Tracer(tracerName)
	}

	if req.APIKey == "" {
		return nil, ErrMissingCredential
	}
	if strings.TrimSpace(req.Value) == "" {
		return nil, ErrEmptyInput
	}

	candidates, label, err := identifier.Candidates(req.Kind, req.Value)
	if err != nil {
		return nil, err
	}

	ctx, span := tracer.Start(ctx, "lookup.run", trace.WithAttributes(
		attribute.String("lookup.kind", req.Kind.String()),
		attribute.String("lookup.label", label),
		attribute.Int("lookup.candidates", len(candidates)),
	))
	defer span.End()

	res := &Result{Kind: req.Kind, Label: label, Candidates: candidates}
	st := statePending

	for i, cand := range candidates {
		found, err := s.searchCandidate(ctx, tracer, req, cand, res)
		if s.Progress != nil {
			s.Progress(i+1, len(candidates), cand)
		}
		if err != nil {
			st = stateFailed
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			log.Warnw("lookup aborted", "label", label, "candidate", cand, "state", st.String(), "err", err)
			return nil, err
		}
		if found > 0 {
			st = stateHasPartialResults
		}
		log.Debugw("candidate done", "candidate", cand, "found", found, "state", st.String())
	}

	if res.Total == 0 {
		st = stateFailed
		span.SetStatus(codes.Error, "no results")
		log.Infow("no results", "label", label, "candidates", len(candidates), "state", st.String())
		return nil, &NoResultsError{Label: label}
	}
	st = stateSucceeded

	res.Ambiguous = res.Total > 1
	if len(res.Records) > 0 {
		summary := record.ResolveSummary(gjson.ParseBytes(res.Records[0]))
		res.Summary = &summary
		nums := display.Summary(summary, s.FeesBaseURL)
		res.ApplicationNumberDisplay = nums.Application
		res.PatentNumberDisplay = nums.Patent
		res.MaintenanceFeeURL = nums.MaintenanceFeeURL
	}

	span.SetAttributes(attribute.Int("lookup.total", res.Total), attribute.Bool("lookup.ambiguous", res.Ambiguous))
	log.Infow("lookup complete", "label", label, "total", res.Total, "ambiguous", res.Ambiguous, "state", st.String())
	return res, nil
}

// searchCandidate queries one candidate and merges its records into res.
// It returns the number of matches added; a 404 adds none and is not an error.
func (s *Searcher) searchCandidate(ctx context.Context, tracer trace.Tracer, req Request, cand string, res *Result) (int, error) {
	ctx, span := tracer.Start(ctx, "uspto.search", trace.WithAttributes(
		attribute.String("uspto.filter", req.Kind.FilterField()),
		attribute.String("uspto.value", cand),
	))
	defer span.End()

	page, err := s.Backend.Search(ctx, uspto.Query{APIKey: req.APIKey, Field: req.Kind.FilterField(), Value: cand})
	if errors.Is(err, uspto.ErrNotFound) {
		span.AddEvent("not_found")
		return 0, nil
	}
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, fmt.Errorf("searching %s: %w", cand, err)
	}

	added := mergePage(page, res)
	span.SetAttributes(attribute.Int("uspto.found", added))
	return added, nil
}

// mergePage appends a page's records to res. When no known envelope held
// records but the response reports a positive count, the wrapper bag (or,
// failing that, the whole body) is kept and the count is trusted.
func mergePage(page *uspto.Page, res *Result) int {
	if len(page.Records) > 0 {
		for _, r := range page.Records {
			res.Records = append(res.Records, json.RawMessage(r.Raw))
		}
		res.Total += len(page.Records)
		return len(page.Records)
	}

	if !page.HasCount || page.Count <= 0 {
		return 0
	}
	if bag := page.Body.Get("patentFileWrapperDataBag"); bag.IsArray() {
		for _, r := range bag.Array() {
			res.Records = append(res.Records, json.RawMessage(r.Raw))
		}
	} else {
		res.Records = append(res.Records, json.RawMessage(page.Body.Raw))
	}
	res.Total += page.Count
	return page.Count
}
