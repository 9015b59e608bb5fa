// Package aivalidate turns untrusted LLM output into well-typed records.
// Every function here is total: any input shape, including nil, produces a
// usable value plus error markers. Nothing in this package panics.
package aivalidate

import (
	"math"
	"strconv"
	"strings"
)

// ListingDraft is the sanitized create-ad record. It only becomes a
// persisted Ad after the caller checks the field-error list is empty.
type ListingDraft struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Category     string   `json:"category"`
	Location     string   `json:"location"`
	Price        *float64 `json:"price"`
	ContactPhone string   `json:"contact_phone"`
	ContactEmail string   `json:"contact_email"`
	Visits       int      `json:"visits"`
}

// SearchFilters is the sanitized search-ads record. Both price bounds are
// independent; either or both may be nil meaning "no bound".
type SearchFilters struct {
	Keywords string   `json:"keywords"`
	Category string   `json:"category"`
	Location string   `json:"location"`
	MinPrice *float64 `json:"min_price"`
	MaxPrice *float64 `json:"max_price"`
}

// StringOrEmpty trims a string value; anything that is not a string
// (nil, numbers, objects, arrays) becomes "".
func StringOrEmpty(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(s)
}

// NumberOrNil coerces to a finite float64 or nil. Numeric strings like
// "180" succeed; "free", nil, NaN and Inf all map to nil.
func NumberOrNil(v any) *float64 {
	var f float64
	switch n := v.(type) {
	case float64:
		f = n
	case float32:
		f = float64(n)
	case int:
		f = float64(n)
	case int64:
		f = float64(n)
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(n), 64)
		if err != nil {
			return nil
		}
		f = parsed
	default:
		return nil
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return &f
}

// IntOrDefault coerces to a non-negative integer, falling back to def when
// the value is not a finite number or is negative.
func IntOrDefault(v any, def int) int {
	f := NumberOrNil(v)
	if f == nil || *f < 0 {
		return def
	}
	return int(*f)
}

// ValidateAdDraft sanitizes raw create-ad output. The returned slice names
// required fields that ended up empty; all other fields tolerate any shape.
// Applying it to its own output returns the same draft.
func ValidateAdDraft(raw any) (ListingDraft, []string) {
	obj, _ := raw.(map[string]any)

	draft := ListingDraft{
		Title:        StringOrEmpty(obj["title"]),
		Description:  StringOrEmpty(obj["description"]),
		Category:     StringOrEmpty(obj["category"]),
		Location:     StringOrEmpty(obj["location"]),
		Price:        NumberOrNil(obj["price"]),
		ContactPhone: StringOrEmpty(obj["contact_phone"]),
		ContactEmail: StringOrEmpty(obj["contact_email"]),
		Visits:       IntOrDefault(obj["visits"], 0),
	}

	var errs []string
	if draft.Title == "" {
		errs = append(errs, "title")
	}
	if draft.Description == "" {
		errs = append(errs, "description")
	}
	return draft, errs
}

// ValidateSearchFilters sanitizes raw search-ads output. A min greater than
// max is passed through unchanged; the search layer treats it as an empty
// result range.
func ValidateSearchFilters(raw any) SearchFilters {
	obj, _ := raw.(map[string]any)

	return SearchFilters{
		Keywords: StringOrEmpty(obj["keywords"]),
		Category: StringOrEmpty(obj["category"]),
		Location: StringOrEmpty(obj["location"]),
		MinPrice: NumberOrNil(obj["min_price"]),
		MaxPrice: NumberOrNil(obj["max_price"]),
	}
}
