package grammar

import "sort"

// AttachMarker joins two words that must not be separated by a line break
// when the text is rendered.
const AttachMarker = "~"

// Language holds the behaviour that differs between languages. The set of
// implementations is closed: Generic, Polish, German and English. Values
// are stateless and safe to share.
type Language interface {
	// Code is the selector used on the command line ("pl", "de", ...).
	Code() string
	// AdjectiveFormID encodes an already validated adjective request.
	AdjectiveFormID(f Form) int
	// ReflexiveParticle returns the reflexive particle, ok is false for
	// languages without reflexive-verb support.
	ReflexiveParticle() (particle string, ok bool)
	JoinPrepositionObject(preposition, object string) string
	// NounJoinAllowed may veto attaching attribute to main.
	NounJoinAllowed(main, attribute string) bool
	JoinedAttributeNoun(main, attribute string) string

	language()
}

// Generic is the default language; the other variants call it for every
// hook they do not change.
type Generic struct{}

func (Generic) Code() string { return "generic" }

func (Generic) AdjectiveFormID(f Form) int { return AdjectiveFormID(f) }

func (Generic) ReflexiveParticle() (string, bool) { return "", false }

func (Generic) JoinPrepositionObject(preposition, object string) string {
	return preposition + " " + object
}

func (Generic) NounJoinAllowed(main, attribute string) bool { return true }

func (Generic) JoinedAttributeNoun(main, attribute string) string {
	return main + " " + attribute
}

func (Generic) language() {}

// German approximates the genitive with a fixed article.
type German struct{}

func (German) Code() string { return "de" }

func (German) AdjectiveFormID(f Form) int { return Generic{}.AdjectiveFormID(f) }

func (German) ReflexiveParticle() (string, bool) { return "sich", true }

func (German) JoinPrepositionObject(preposition, object string) string {
	return Generic{}.JoinPrepositionObject(preposition, object)
}

func (German) NounJoinAllowed(main, attribute string) bool {
	return Generic{}.NounJoinAllowed(main, attribute)
}

// JoinedAttributeNoun always uses "des", whatever the gender and number
// of the attribute.
func (German) JoinedAttributeNoun(main, attribute string) string {
	return main + " des " + attribute
}

func (German) language() {}

// English has no reflexive particle and attaches attributes with "of".
type English struct{}

func (English) Code() string { return "en" }

func (English) AdjectiveFormID(f Form) int { return Generic{}.AdjectiveFormID(f) }

func (English) ReflexiveParticle() (string, bool) { return Generic{}.ReflexiveParticle() }

func (English) JoinPrepositionObject(preposition, object string) string {
	return Generic{}.JoinPrepositionObject(preposition, object)
}

func (English) NounJoinAllowed(main, attribute string) bool {
	return Generic{}.NounJoinAllowed(main, attribute)
}

func (English) JoinedAttributeNoun(main, attribute string) string {
	return main + " of " + attribute
}

func (English) language() {}

var languages = map[string]Language{
	"pl": Polish{},
	"de": German{},
	"en": English{},
}

// LanguageFor returns the language for a code; unknown codes get Generic.
func LanguageFor(code string) Language {
	if l, ok := languages[code]; ok {
		return l
	}
	return Generic{}
}

// KnownLanguage reports whether code selects a specific language.
func KnownLanguage(code string) bool {
	_, ok := languages[code]
	return ok
}

// LanguageCodes returns the codes with a dedicated implementation.
func LanguageCodes() []string {
	codes := make([]string, 0, len(languages))
	for c := range languages {
		codes = append(codes, c)
	}
	sort.Strings(codes)
	return codes
}
