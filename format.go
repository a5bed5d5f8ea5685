package grammar

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// caseNameWidth is the column width of case abbreviations ("Ms" is the
// longest).
const caseNameWidth = 2

// FormatForm renders f compactly for diagnostics, e.g. "f Pl  B" or
// "Sg 3 Imp". Field order is fixed: gender, number, case, person, Inf, Imp,
// anim, then remaining keys as key=value sorted by key. Values outside the
// enumerations are an error.
func FormatForm(f Form) (string, error) {
	var parts []string
	if f.Gender != 0 {
		name, ok := genderAbbrevs[f.Gender]
		if !ok {
			return "", &FormError{Field: "gender", Value: int(f.Gender), Reason: "unknown gender"}
		}
		parts = append(parts, name)
	}
	if f.Number != 0 {
		name, ok := numberAbbrevs[f.Number]
		if !ok {
			return "", &FormError{Field: "number", Value: int(f.Number), Reason: "unknown number"}
		}
		parts = append(parts, name)
	}
	if f.Case != 0 {
		name, ok := caseAbbrevs[f.Case]
		if !ok {
			return "", &FormError{Field: "case", Value: int(f.Case), Reason: "unknown case"}
		}
		parts = append(parts, fmt.Sprintf("%*s", caseNameWidth, name))
	}
	if f.Person != 0 {
		if !slices.Contains(Persons, f.Person) {
			return "", &FormError{Field: "person", Value: f.Person, Reason: "unknown person"}
		}
		parts = append(parts, strconv.Itoa(f.Person))
	}
	if f.Infinitive {
		parts = append(parts, "Inf")
	}
	if f.Imperative {
		parts = append(parts, "Imp")
	}
	if f.Animacy == Animate {
		parts = append(parts, "anim")
	}

	rest := maps.Clone(f.Extra)
	if rest == nil {
		rest = make(map[string]string)
	}
	if f.Preposition {
		rest["preposition"] = "true"
	}
	for _, key := range slices.Sorted(maps.Keys(rest)) {
		parts = append(parts, key+"="+rest[key])
	}
	return strings.Join(parts, " "), nil
}

// MustFormatForm is FormatForm for callers that already validated f.
func MustFormatForm(f Form) string {
	s, err := FormatForm(f)
	if err != nil {
		panic(err)
	}
	return s
}
