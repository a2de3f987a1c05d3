// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package record reads USPTO search responses whose shape varies by API
// version and endpoint. Records are never fully modeled; only the fields
// needed for a summary are read, and missing paths yield empty values.
package record

import (
	"github.com/tidwall/gjson"
)

// envelopePaths lists where result arrays have been observed, in priority
// order. A top-level array is checked before all of them.
var envelopePaths = []string{
	"results",
	"results.records",
	"records",
	"response.docs",
	"items",
	"data",
	"patentFileWrapperDataBag",
	"searchResult.records",
}

// Extract returns the result records of a response body. It never fails:
// empty, invalid, or unrecognized bodies yield an empty list.
func Extract(body []byte) []gjson.Result {
	if len(body) == 0 || !gjson.ValidBytes(body) {
		return []gjson.Result{}
	}
	return ExtractFrom(gjson.ParseBytes(body))
}

// ExtractFrom is Extract for an already parsed document. The first
// non-empty array in envelope order wins.
func ExtractFrom(root gjson.Result) []gjson.Result {
	if recs := nonEmptyArray(root); recs != nil {
		return recs
	}
	if root.IsObject() {
		for _, p := range envelopePaths {
			if recs := nonEmptyArray(root.Get(p)); recs != nil {
				return recs
			}
		}
	}
	return []gjson.Result{}
}

func nonEmptyArray(v gjson.Result) []gjson.Result {
	if !v.IsArray() {
		return nil
	}
	arr := v.Array()
	if len(arr) == 0 {
		return nil
	}
	return arr
}
