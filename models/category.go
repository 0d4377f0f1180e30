package models

import "strings"

// IssueCategory is the fixed defect classification an issue ends up with
// after normalizing the raw classifier label
type IssueCategory string

// Known issue categories
const (
	CategoryPothole           IssueCategory = "pothole"
	CategoryBrokenStreetlight IssueCategory = "broken_streetlight"
	CategoryGraffiti          IssueCategory = "graffiti"
	CategoryFlyTipping        IssueCategory = "fly_tipping"
	CategoryDamagedSign       IssueCategory = "damaged_sign"
	CategoryOther             IssueCategory = "other"
)

// localeQualifiers are region tags some classifier deployments append to
// their labels. They carry no meaning for display or categorization.
var localeQualifiers = map[string]bool{
	"india": true,
	"uk":    true,
}

var categoryByKey = map[string]IssueCategory{
	"pothole":             CategoryPothole,
	"pot_hole":            CategoryPothole,
	"broken_streetlight":  CategoryBrokenStreetlight,
	"broken_street_light": CategoryBrokenStreetlight,
	"graffiti":            CategoryGraffiti,
	"fly_tipping":         CategoryFlyTipping,
	"flytipping":          CategoryFlyTipping,
	"damaged_sign":        CategoryDamagedSign,
	"damaged_road_sign":   CategoryDamagedSign,
	"other":               CategoryOther,
}

// normalizedWords splits a raw classifier label on separator runs and drops
// locale qualifiers
func normalizedWords(raw string) []string {
	fields := strings.FieldsFunc(raw, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	})
	words := make([]string, 0, len(fields))
	for _, f := range fields {
		if localeQualifiers[strings.ToLower(f)] {
			continue
		}
		words = append(words, f)
	}
	return words
}

// NormalizeCategoryLabel converts a raw classifier label into its display
// form: locale qualifiers stripped, separator runs collapsed to single
// spaces, each word title-cased. "pot_hole_india" becomes "Pot Hole".
func NormalizeCategoryLabel(raw string) string {
	words := normalizedWords(raw)
	if len(words) == 0 {
		return "Unknown Issue"
	}
	for i, w := range words {
		lower := strings.ToLower(w)
		words[i] = strings.ToUpper(lower[:1]) + lower[1:]
	}
	return strings.Join(words, " ")
}

// CategoryFromRaw maps a raw classifier label onto the fixed category
// enumeration. Labels outside the enumeration map to CategoryOther; the raw
// provider string is never stored.
func CategoryFromRaw(raw string) IssueCategory {
	words := normalizedWords(raw)
	for i, w := range words {
		words[i] = strings.ToLower(w)
	}
	key := strings.Join(words, "_")
	if c, ok := categoryByKey[key]; ok {
		return c
	}
	return CategoryOther
}

// Label returns the display form of the category
func (c IssueCategory) Label() string {
	return NormalizeCategoryLabel(string(c))
}
