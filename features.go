package grammar

import (
	"fmt"
	"strconv"
	"strings"
)

// SpeechPart is the grammatical category a rule or word belongs to.
// Its value is the letter used in rule and lexicon files.
type SpeechPart byte

const (
	Noun      SpeechPart = 'N'
	Verb      SpeechPart = 'V'
	Adjective SpeechPart = 'A'
	Adverb    SpeechPart = 'D'
	Other     SpeechPart = 'O'
)

// SpeechParts lists every supported part of speech in file order.
var SpeechParts = []SpeechPart{Noun, Verb, Adjective, Adverb, Other}

// ParseSpeechPart converts a rule-file column ("N", "V", ...) to a SpeechPart.
func ParseSpeechPart(s string) (SpeechPart, error) {
	if len(s) == 1 {
		p := SpeechPart(s[0])
		if p.Valid() {
			return p, nil
		}
	}
	return 0, fmt.Errorf("no such speech part: %q", s)
}

// Valid reports whether p is one of SpeechParts.
func (p SpeechPart) Valid() bool {
	switch p {
	case Noun, Verb, Adjective, Adverb, Other:
		return true
	}
	return false
}

// Letter returns the one-letter file code of p.
func (p SpeechPart) Letter() string {
	return string(rune(p))
}

func (p SpeechPart) String() string {
	switch p {
	case Noun:
		return "noun"
	case Verb:
		return "verb"
	case Adjective:
		return "adjective"
	case Adverb:
		return "adverb"
	case Other:
		return "other"
	default:
		return fmt.Sprintf("SpeechPart(%q)", rune(p))
	}
}

// Case is a grammatical case. The numeric value is the one used in
// rule-file form ids.
type Case int

const (
	Nominative Case = iota + 1
	Genitive
	Dative
	Accusative
	Instrumental
	Locative
	Vocative
)

// Cases lists all supported cases.
var Cases = []Case{Nominative, Genitive, Dative, Accusative, Instrumental, Locative, Vocative}

var caseAbbrevs = map[Case]string{
	Nominative:   "M",
	Genitive:     "D",
	Dative:       "C",
	Accusative:   "B",
	Instrumental: "N",
	Locative:     "Ms",
	Vocative:     "W",
}

var caseNames = map[Case]string{
	Nominative:   "nominative",
	Genitive:     "genitive",
	Dative:       "dative",
	Accusative:   "accusative",
	Instrumental: "instrumental",
	Locative:     "locative",
	Vocative:     "vocative",
}

// Valid reports whether c is one of Cases.
func (c Case) Valid() bool {
	return c >= Nominative && c <= Vocative
}

func (c Case) String() string {
	if n, ok := caseNames[c]; ok {
		return n
	}
	return "Case(" + strconv.Itoa(int(c)) + ")"
}

// Gender is a grammatical gender; the value is its form-id hundreds digit.
type Gender int

const (
	Masculine Gender = iota + 1
	Neuter
	Feminine
)

// Genders lists all supported genders.
var Genders = []Gender{Masculine, Neuter, Feminine}

var genderAbbrevs = map[Gender]string{Masculine: "m", Neuter: "n", Feminine: "f"}

var genderNames = map[Gender]string{Masculine: "masculine", Neuter: "neuter", Feminine: "feminine"}

// Valid reports whether g is one of Genders.
func (g Gender) Valid() bool {
	return g >= Masculine && g <= Feminine
}

func (g Gender) String() string {
	if n, ok := genderNames[g]; ok {
		return n
	}
	return "Gender(" + strconv.Itoa(int(g)) + ")"
}

// Number is a grammatical number.
type Number int

const (
	Singular Number = iota + 1
	Plural
)

// Numbers lists all supported grammatical numbers.
var Numbers = []Number{Singular, Plural}

var numberAbbrevs = map[Number]string{Singular: "Sg", Plural: "Pl"}

// Valid reports whether n is one of Numbers.
func (n Number) Valid() bool {
	return n == Singular || n == Plural
}

func (n Number) String() string {
	switch n {
	case Singular:
		return "singular"
	case Plural:
		return "plural"
	}
	return "Number(" + strconv.Itoa(int(n)) + ")"
}

// Persons present in each number.
var Persons = []int{1, 2, 3}

// Animacy is tri-state: most requests do not mention it at all.
type Animacy int

const (
	AnimacyUnset Animacy = iota
	Animate
	Inanimate
)

// Form is a requested grammatical target. Zero values mean "not given".
// A Form is built per call and never retained by the engine.
type Form struct {
	Case       Case
	Number     Number
	Gender     Gender
	Person     int
	Infinitive bool
	Imperative bool
	Animacy    Animacy
	// Preposition marks a noun used as the object of a preposition.
	Preposition bool
	// Extra holds extension keys. They are ignored by matching and
	// only show up in FormatForm output.
	Extra map[string]string
}

// plural reports whether the request asks for the plural; unset means singular.
func (f Form) plural() bool {
	return f.Number == Plural
}

// ParseForm builds a Form from textual key/value pairs as they arrive from
// the command line or a query string. Keys: case, number, gender, person,
// infinitive, imperative, animate, preposition. Values accept numbers,
// abbreviations (M D C B N Ms W, Sg Pl, m n f) or full names. Any other key
// is kept in Extra.
func ParseForm(kv map[string]string) (Form, error) {
	var f Form
	for key, val := range kv {
		var err error
		switch strings.ToLower(key) {
		case "case":
			f.Case, err = parseCase(val)
		case "number":
			f.Number, err = parseNumber(val)
		case "gender":
			f.Gender, err = parseGender(val)
		case "person":
			f.Person, err = strconv.Atoi(val)
			if err != nil {
				err = &FormError{Field: "person", Value: val, Reason: "not a number"}
			}
		case "infinitive":
			f.Infinitive, err = parseFlag(key, val)
		case "imperative":
			f.Imperative, err = parseFlag(key, val)
		case "preposition":
			f.Preposition, err = parseFlag(key, val)
		case "animate":
			var b bool
			b, err = parseFlag(key, val)
			f.Animacy = Inanimate
			if b {
				f.Animacy = Animate
			}
		default:
			if f.Extra == nil {
				f.Extra = make(map[string]string)
			}
			f.Extra[key] = val
		}
		if err != nil {
			return Form{}, err
		}
	}
	return f, nil
}

func parseCase(s string) (Case, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return Case(n), nil
	}
	for c, abbr := range caseAbbrevs {
		if s == abbr || strings.EqualFold(s, caseNames[c]) {
			return c, nil
		}
	}
	return 0, &FormError{Field: "case", Value: s, Reason: "unknown case"}
}

func parseNumber(s string) (Number, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return Number(n), nil
	}
	switch strings.ToLower(s) {
	case "sg", "singular":
		return Singular, nil
	case "pl", "plural":
		return Plural, nil
	}
	return 0, &FormError{Field: "number", Value: s, Reason: "unknown number"}
}

func parseGender(s string) (Gender, error) {
	if n, err := strconv.Atoi(s); err == nil {
		return Gender(n), nil
	}
	for g, abbr := range genderAbbrevs {
		if s == abbr || strings.EqualFold(s, genderNames[g]) {
			return g, nil
		}
	}
	return 0, &FormError{Field: "gender", Value: s, Reason: "unknown gender"}
}

// parseFlag treats a bare key (empty value) as true.
func parseFlag(key, s string) (bool, error) {
	if s == "" {
		return true, nil
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false, &FormError{Field: key, Value: s, Reason: "not a boolean"}
	}
	return b, nil
}
