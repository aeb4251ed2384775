package constants

import (
	"strings"
)

// Category identifies which of the four utility services an invoice belongs to.
type Category string

const (
	Electricity Category = "Electricity"
	Water       Category = "Water"
	Internet    Category = "Internet"
	Gas         Category = "Gas"
)

// allCategories fixes the processing order: uploads are handled and
// displayed in this order, one at a time.
var allCategories = []Category{Electricity, Water, Internet, Gas}

// labels are the user-facing Spanish names, matching the upload form.
var labels = map[Category]string{
	Electricity: "Luz",
	Water:       "Agua",
	Internet:    "Internet",
	Gas:         "Gas",
}

// formFields are the multipart field names accepted by the process endpoint.
var formFields = map[Category]string{
	Electricity: "luz",
	Water:       "agua",
	Internet:    "internet",
	Gas:         "gas",
}

// AllCategories returns the fixed category set in processing order.
func AllCategories() []Category {
	out := make([]Category, len(allCategories))
	copy(out, allCategories)
	return out
}

func AsStringSlice() []string {
	result := make([]string, len(allCategories))
	for i, cat := range allCategories {
		result[i] = string(cat)
	}
	return result
}

// Label returns the display name used in the UI and the export.
func (c Category) Label() string {
	if l, ok := labels[c]; ok {
		return l
	}
	return string(c)
}

// FormField returns the multipart field name for this category.
func (c Category) FormField() string {
	if f, ok := formFields[c]; ok {
		return f
	}
	return strings.ToLower(string(c))
}

// Canonicalize maps a loose label to a Category.
func Canonicalize(input string) (Category, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" {
		return "", false
	}

	// synonyms map
	synonyms := map[string]Category{
		"luz":          Electricity,
		"electricidad": Electricity,
		"electricity":  Electricity,
		"agua":         Water,
		"water":        Water,
		"internet":     Internet,
		"fibra":        Internet,
		"gas":          Gas,
		"gas natural":  Gas,
	}
	if cat, ok := synonyms[normalized]; ok {
		return cat, true
	}

	// check if it matches any category string
	for _, cat := range allCategories {
		if normalized == strings.ToLower(string(cat)) {
			return cat, true
		}
	}
	return "", false
}
