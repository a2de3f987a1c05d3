// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lookup

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/pdiddy/uspto-lookup/internal/identifier"
	"github.com/pdiddy/uspto-lookup/internal/uspto"
)

type reply struct {
	status int
	body   string
}

// fakeAPI answers each search by the filter value it carries. Values with
// no entry get a 404.
type fakeAPI struct {
	mu      sync.Mutex
	replies map[string]reply
	seen    []string
}

func (f *fakeAPI) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	var req uspto.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Filters) != 1 || len(req.Filters[0].Value) != 1 {
		http.Error(w, "bad request", http.StatusBadRequest)
		return
	}
	value := req.Filters[0].Value[0]

	f.mu.Lock()
	f.seen = append(f.seen, value)
	rep, ok := f.replies[value]
	f.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	w.WriteHeader(rep.status)
	fmt.Fprint(w, rep.body)
}

func newSearcher(t *testing.T, api *fakeAPI) *Searcher {
	t.Helper()
	ts := httptest.NewServer(api)
	t.Cleanup(ts.Close)
	return &Searcher{Backend: &uspto.Client{HTTP: ts.Client(), Endpoint: ts.URL}}
}

const grantedRecord = `{
  "applicationNumberText": "15745021",
  "applicationMetaData": {
    "patentNumber": "11578110",
    "earliestPublicationNumber": "US20190024035A1",
    "grantDate": "2023-02-14",
    "applicantBag": [
      {"applicantNameText": "Acme Corp", "correspondenceAddressBag": [{"cityName": "Springfield", "geographicRegionCode": "IL", "countryCode": "US"}]}
    ]
  }
}`

func bag(records ...string) string {
	out := `{"count":` + fmt.Sprint(len(records)) + `,"patentFileWrapperDataBag":[`
	for i, r := range records {
		if i > 0 {
			out += ","
		}
		out += r
	}
	return out + "]}"
}

func TestRunApplicationFound(t *testing.T) {
	api := &fakeAPI{replies: map[string]reply{"15745021": {200, bag(grantedRecord)}}}
	s := newSearcher(t, api)

	res, err := s.Run(context.Background(), Request{APIKey: "k", Kind: identifier.KindApplication, Value: "15/745,021"})
	require.NoError(t, err)

	assert.Equal(t, []string{"15745021"}, api.seen)
	assert.Equal(t, "15745021", res.Label)
	assert.Equal(t, 1, res.Total)
	assert.False(t, res.Ambiguous)
	require.Len(t, res.Records, 1)
	require.NotNil(t, res.Summary)
	assert.Equal(t, "11578110", res.Summary.PatentNumber)
	assert.Equal(t, "2023-02-14", res.Summary.GrantDate)
	assert.Equal(t, "15/745,021", res.ApplicationNumberDisplay)
	assert.Equal(t, "11,578,110", res.PatentNumberDisplay)
	assert.Equal(t, "https://fees.uspto.gov/MaintenanceFees/fees/details?patentNumber=11578110&applicationNumber=15745021&caresActSelected=", res.MaintenanceFeeURL)
}

func TestRunPublicationTriesAllKinds(t *testing.T) {
	api := &fakeAPI{replies: map[string]reply{
		"US20240088251A2": {200, bag(`{"applicationNumberText":"18000001"}`)},
	}}
	s := newSearcher(t, api)

	var progress []string
	s.Progress = func(done, total int, cand string) {
		progress = append(progress, fmt.Sprintf("%d/%d %s", done, total, cand))
	}

	res, err := s.Run(context.Background(), Request{APIKey: "k", Kind: identifier.KindPublication, Value: "US 2024/0088251"})
	require.NoError(t, err)

	assert.Equal(t, []string{"US20240088251A1", "US20240088251A2", "US20240088251A9"}, api.seen)
	assert.Equal(t, []string{
		"1/3 US20240088251A1",
		"2/3 US20240088251A2",
		"3/3 US20240088251A9",
	}, progress)
	assert.Equal(t, "US20240088251(A1/A2/A9)", res.Label)
	assert.Equal(t, 1, res.Total)
	assert.Equal(t, "18000001", res.Summary.ApplicationNumberText)
}

func TestRunExplicitKindSingleCandidate(t *testing.T) {
	api := &fakeAPI{replies: map[string]reply{"US20240088251A1": {200, bag(grantedRecord)}}}
	s := newSearcher(t, api)

	_, err := s.Run(context.Background(), Request{APIKey: "k", Kind: identifier.KindPublication, Value: "US20240088251A1"})
	require.NoError(t, err)
	assert.Equal(t, []string{"US20240088251A1"}, api.seen)
}

func TestRunAmbiguousAcrossCandidates(t *testing.T) {
	api := &fakeAPI{replies: map[string]reply{
		"US20240088251A1": {200, bag(`{"applicationNumberText":"18000001"}`)},
		"US20240088251A9": {200, bag(`{"applicationNumberText":"18000002"}`)},
	}}
	s := newSearcher(t, api)

	res, err := s.Run(context.Background(), Request{APIKey: "k", Kind: identifier.KindPublication, Value: "US20240088251"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.True(t, res.Ambiguous)
	require.Len(t, res.Records, 2)
	assert.Equal(t, "18000001", res.Summary.ApplicationNumberText, "summary comes from the first merged record")
}

func TestRunServerErrorAborts(t *testing.T) {
	api := &fakeAPI{replies: map[string]reply{
		"US20240088251A1": {200, bag(grantedRecord)},
		"US20240088251A2": {500, "internal failure"},
	}}
	s := newSearcher(t, api)

	res, err := s.Run(context.Background(), Request{APIKey: "k", Kind: identifier.KindPublication, Value: "US20240088251"})
	assert.Nil(t, res)

	var herr *HTTPError
	require.ErrorAs(t, err, &herr)
	assert.Equal(t, 500, herr.StatusCode)
	assert.Contains(t, err.Error(), "HTTP 500 - internal failure")
	assert.Equal(t, []string{"US20240088251A1", "US20240088251A2"}, api.seen, "A9 must not be queried after an abort")
}

func TestRunAllNotFound(t *testing.T) {
	api := &fakeAPI{replies: map[string]reply{}}
	s := newSearcher(t, api)

	_, err := s.Run(context.Background(), Request{APIKey: "k", Kind: identifier.KindPublication, Value: "US20240088251A"})
	var nerr *NoResultsError
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, "US20240088251(A1/A2/A9)", nerr.Label)
	assert.Equal(t, "no results found for US20240088251(A1/A2/A9)", err.Error())
	assert.Len(t, api.seen, 3)
}

func TestRunEmptyBagIsNoResults(t *testing.T) {
	api := &fakeAPI{replies: map[string]reply{"11578110": {200, `{"count":0,"patentFileWrapperDataBag":[]}`}}}
	s := newSearcher(t, api)

	_, err := s.Run(context.Background(), Request{APIKey: "k", Kind: identifier.KindPatent, Value: "11578110"})
	var nerr *NoResultsError
	require.ErrorAs(t, err, &nerr)
	assert.Equal(t, "11578110", nerr.Label)
}

func TestRunCountFallback(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		wantTotal   int
		wantRecords int
	}{
		{"bag not an array", `{"count":2,"patentFileWrapperDataBag":{"applicationNumberText":"15745021"}}`, 2, 1},
		{"no known envelope", `{"count":1,"hits":{"applicationNumberText":"15745021"}}`, 1, 1},
		{"count without records", `{"count":0}`, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			api := &fakeAPI{replies: map[string]reply{"15745021": {200, tt.body}}}
			s := newSearcher(t, api)

			res, err := s.Run(context.Background(), Request{APIKey: "k", Kind: identifier.KindApplication, Value: "15745021"})
			if tt.wantTotal == 0 {
				var nerr *NoResultsError
				require.ErrorAs(t, err, &nerr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantTotal, res.Total)
			assert.Len(t, res.Records, tt.wantRecords)
			assert.Equal(t, tt.wantTotal > 1, res.Ambiguous)
		})
	}
}

func TestRunPreflightErrors(t *testing.T) {
	api := &fakeAPI{replies: map[string]reply{}}
	s := newSearcher(t, api)

	tests := []struct {
		name    string
		req     Request
		wantErr error
	}{
		{"missing key", Request{Kind: identifier.KindPatent, Value: "11578110"}, ErrMissingCredential},
		{"empty value", Request{APIKey: "k", Kind: identifier.KindPatent, Value: "   "}, ErrEmptyInput},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := s.Run(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	_, err := s.Run(context.Background(), Request{APIKey: "k", Kind: identifier.KindApplication, Value: "1574502"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Msg, "8 digits")

	assert.Empty(t, api.seen, "no request is sent when input is rejected")
}

func TestRunNoMaintenanceURLWithoutNumbers(t *testing.T) {
	api := &fakeAPI{replies: map[string]reply{"11578110": {200, bag(`{"applicationMetaData":{"grantDate":"2023-02-14"}}`)}}}
	s := newSearcher(t, api)

	res, err := s.Run(context.Background(), Request{APIKey: "k", Kind: identifier.KindPatent, Value: "11578110"})
	require.NoError(t, err)
	assert.Empty(t, res.MaintenanceFeeURL)
	assert.Equal(t, "2023-02-14", res.Summary.GrantDate)
}

func TestRunRecordsSpans(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec))
	t.Cleanup(func() { _ = tp.Shutdown(context.Background()) })

	api := &fakeAPI{replies: map[string]reply{"US20240088251A9": {200, bag(grantedRecord)}}}
	s := newSearcher(t, api)
	s.Tracer = tp.Tracer("test")

	_, err := s.Run(context.Background(), Request{APIKey: "k", Kind: identifier.KindPublication, Value: "US20240088251"})
	require.NoError(t, err)

	var names []string
	for _, sp := range rec.Ended() {
		names = append(names, sp.Name())
	}
	assert.Equal(t, []string{"uspto.search", "uspto.search", "uspto.search", "lookup.run"}, names)
}

type errBackend struct{ err error }

func (b errBackend) Search(context.Context, uspto.Query) (*uspto.Page, error) { return nil, b.err }

func TestRunTransportErrorWrapped(t *testing.T) {
	boom := errors.New("connection refused")
	s := &Searcher{Backend: errBackend{boom}}

	_, err := s.Run(context.Background(), Request{APIKey: "k", Kind: identifier.KindPatent, Value: "11578110"})
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "searching 11578110")
}

func TestResultRawJSON(t *testing.T) {
	res := &Result{Records: []json.RawMessage{json.RawMessage(`{"a":1}`)}}
	data, err := res.RawJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"results":[{"a":1}]}`, string(data))

	empty, err := (&Result{}).RawJSON()
	require.NoError(t, err)
	assert.JSONEq(t, `{"results":[]}`, string(empty))
}
