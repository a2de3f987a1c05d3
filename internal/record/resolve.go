// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package record

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/pdiddy/uspto-lookup/pkg/types"
)

// accessor reads one candidate location of a field. ok is false when the
// location is missing, null, or blank.
type accessor func(rec gjson.Result) (value string, ok bool)

// xmlFileNamePattern matches grant XML names such as "15745021_11578110.xml".
var xmlFileNamePattern = regexp.MustCompile(`(\d{6,9})_(\d{6,8})\.xml$`)

var (
	issueDatePattern = regexp.MustCompile(`(?i)patent issue date`)
	ipgPattern       = regexp.MustCompile(`(?i)ipg(\d{6})`)
)

// addressFields are the address parts picked in output order.
var addressFields = []string{
	"addressLineOne", "addressLineTwo", "addressLineThree",
	"streetLineOne", "streetLineTwo",
	"city", "state", "province",
	"postalCode", "zipCode",
	"country", "countryCode",
}

// ResolveSummary extracts the display fields of one record. It never fails;
// fields not found are left empty and Applicants is an empty list.
func ResolveSummary(rec gjson.Result) types.PatentSummary {
	return types.PatentSummary{
		ApplicationNumberText: firstPresent(rec,
			at("applicationNumberText"),
			at("applicationMetaData.applicationNumberText"),
			at("bibliographicData.applicationIdentifier.applicationNumberText"),
			xmlFileNameApplication,
		),
		PatentNumber: firstPresent(rec,
			at("patentNumber"),
			at("applicationMetaData.patentNumber"),
			at("bibliographicData.patentNumber"),
			xmlFileNamePatent,
		),
		EarliestPublicationNumber: firstPresent(rec,
			at("earliestPublicationNumber"),
			at("applicationMetaData.earliestPublicationNumber"),
			at("documentIdBag.publicationDocumentId.documentId"),
			at("bibliographicData.publicationIdentifier.documentId"),
		),
		GrantDate: firstPresent(rec,
			at("applicationMetaData.grantDate"),
			at("grantDate"),
			issueEventDate,
			ipgFileDate,
		),
		Applicants: applicants(rec),
	}
}

// firstPresent returns the value of the first accessor that finds one.
func firstPresent(rec gjson.Result, accessors ...accessor) string {
	for _, get := range accessors {
		if v, ok := get(rec); ok {
			return v
		}
	}
	return ""
}

func at(path string) accessor {
	return func(rec gjson.Result) (string, bool) {
		v := rec.Get(path)
		if !present(v) {
			return "", false
		}
		return text(v), true
	}
}

// present reports whether v counts as a value. Blank strings, null, and
// empty arrays do not; zero and false do.
func present(v gjson.Result) bool {
	switch v.Type {
	case gjson.Null:
		return false
	case gjson.String:
		return strings.TrimSpace(v.Str) != ""
	case gjson.JSON:
		return !v.IsArray() || len(v.Array()) > 0
	default:
		return true
	}
}

func text(v gjson.Result) string {
	if v.Type == gjson.JSON {
		return v.Raw
	}
	return v.String()
}

func xmlFileNameApplication(rec gjson.Result) (string, bool) {
	m := xmlFileNamePattern.FindStringSubmatch(rec.Get("grantDocumentMetaData.xmlFileName").String())
	if m == nil || len(m[1]) != 8 {
		return "", false
	}
	return m[1], true
}

func xmlFileNamePatent(rec gjson.Result) (string, bool) {
	m := xmlFileNamePattern.FindStringSubmatch(rec.Get("grantDocumentMetaData.xmlFileName").String())
	if m == nil {
		return "", false
	}
	return m[2], true
}

// issueEventDate returns the date of the first patent-issue event. Only the
// first matching event is considered.
func issueEventDate(rec gjson.Result) (string, bool) {
	events := rec.Get("eventDataBag")
	if !events.IsArray() {
		return "", false
	}
	for _, e := range events.Array() {
		desc := e.Get("eventDescriptionText").String()
		code := strings.ToUpper(e.Get("eventCode").String())
		if !issueDatePattern.MatchString(desc) && code != "PTAC" {
			continue
		}
		return at("eventDate")(e)
	}
	return "", false
}

// ipgFileDate reads the YYMMDD stamp of a weekly grant file name such as
// "ipg230214.zip" and returns it as 2023-02-14.
func ipgFileDate(rec gjson.Result) (string, bool) {
	src := firstPresent(rec,
		at("grantDocumentMetaData.zipFileName"),
		at("grantDocumentMetaData.fileLocationURI"),
	)
	m := ipgPattern.FindStringSubmatch(src)
	if m == nil {
		return "", false
	}
	d := m[1]
	return fmt.Sprintf("20%s-%s-%s", d[:2], d[2:4], d[4:6]), true
}

func applicants(rec gjson.Result) []types.Applicant {
	out := []types.Applicant{}

	var bag gjson.Result
	for _, p := range []string{"applicantBag", "bibliographicData.parties.applicants", "applicationMetaData.applicantBag"} {
		if v := rec.Get(p); present(v) {
			bag = v
			break
		}
	}
	if !bag.IsArray() {
		return out
	}

	for _, a := range bag.Array() {
		out = append(out, types.Applicant{
			Name: firstPresent(a,
				at("applicantNameText"),
				at("applicantNameBag.applicantNameText"),
				at("applicantName.name"),
				at("name"),
			),
			Address: firstPresent(a,
				addressAt("correspondenceAddressBag"),
				addressAt("addressBag"),
			),
		})
	}
	return out
}

func addressAt(path string) accessor {
	return func(rec gjson.Result) (string, bool) {
		return formatAddress(rec.Get(path))
	}
}

// formatAddress joins the known address parts of v. When none are set it
// falls back to every scalar field in document order. An array is read
// through its first object element.
func formatAddress(v gjson.Result) (string, bool) {
	if v.IsArray() {
		var first gjson.Result
		for _, el := range v.Array() {
			if el.IsObject() {
				first = el
				break
			}
		}
		v = first
	}
	if !v.IsObject() {
		return "", false
	}

	var picked []string
	for _, k := range addressFields {
		if f := v.Get(k); truthyScalar(f) {
			picked = append(picked, f.String())
		}
	}
	if len(picked) > 0 {
		return strings.Join(picked, ", "), true
	}

	var all []string
	v.ForEach(func(_, f gjson.Result) bool {
		if f.Type != gjson.JSON && f.Type != gjson.Null && strings.TrimSpace(f.String()) != "" {
			all = append(all, f.String())
		}
		return true
	})
	if len(all) == 0 {
		return "", false
	}
	return strings.Join(all, ", "), true
}

// truthyScalar excludes objects, arrays, null, "", 0, and false.
func truthyScalar(v gjson.Result) bool {
	switch v.Type {
	case gjson.String:
		return v.Str != ""
	case gjson.Number:
		return v.Num != 0
	case gjson.True:
		return true
	default:
		return false
	}
}
