// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package uspto

// PageSize is the fixed number of records requested per query.
const PageSize = 25

// SearchRequest is the JSON body of a search POST.
type SearchRequest struct {
	Q            *string       `json:"q"`
	Filters      []Filter      `json:"filters"`
	RangeFilters []RangeFilter `json:"rangeFilters"`
	Pagination   Pagination    `json:"pagination"`
	Sort         []SortField   `json:"sort"`
}

// Filter matches Name against any of Value.
type Filter struct {
	Name  string   `json:"name"`
	Value []string `json:"value"`
}

// RangeFilter restricts Field to [ValueFrom, ValueTo]. Searches here never
// set one; the API still expects the array.
type RangeFilter struct {
	Field     string `json:"field"`
	ValueFrom string `json:"valueFrom"`
	ValueTo   string `json:"valueTo"`
}

type Pagination struct {
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

type SortField struct {
	Field string `json:"field"`
	Order string `json:"order"`
}

// NewSearchRequest builds a single-filter request, newest filing first.
func NewSearchRequest(field, value string) SearchRequest {
	return SearchRequest{
		Filters:      []Filter{{Name: field, Value: []string{value}}},
		RangeFilters: []RangeFilter{},
		Pagination:   Pagination{Offset: 0, Limit: PageSize},
		Sort:         []SortField{{Field: "applicationMetaData.filingDate", Order: "Desc"}},
	}
}
