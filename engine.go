// Package grammar inflects words with suffix rules read from a per-language
// rule file. A word, its lexical tags and a requested Form are turned into
// a form id, the rules stored under that id are tried in file order and the
// first match transforms the word. Language specifics (Polish preposition
// euphony, reflexive particles, attribute nouns) are supplied by a Language.
package grammar

import (
	"slices"
)

// Engine inflects words for one language. It is immutable after New and
// safe for concurrent use.
type Engine struct {
	table *RuleTable
	lang  Language
}

// New returns an Engine using table. A nil lang means Generic.
func New(table *RuleTable, lang Language) *Engine {
	if table == nil {
		table = NewRuleTable()
	}
	if lang == nil {
		lang = Generic{}
	}
	return &Engine{table: table, lang: lang}
}

// Load reads the rule file at path and returns a ready Engine together with
// the per-line load report.
func Load(path string, lang Language, opts ...LoadOption) (*Engine, *LoadReport, error) {
	table, rep, err := LoadRules(path, opts...)
	if err != nil {
		return nil, rep, err
	}
	return New(table, lang), rep, nil
}

// Language returns the engine's language.
func (e *Engine) Language() Language { return e.lang }

// Table returns the rule table. It must not be modified.
func (e *Engine) Table() *RuleTable { return e.table }

// InflectedForm returns the result of the first rule in the (part, formID)
// slot that matches word. ok is false when the slot is missing or no rule
// matches.
func (e *Engine) InflectedForm(part SpeechPart, formID int, word string, tags []string) (string, bool) {
	for _, r := range e.table.Rules(part, formID) {
		if r.Matches(word, tags) {
			return r.Inflect(word, tags), true
		}
	}
	return "", false
}

// InflectNoun returns the requested form of a noun, or noun itself when no
// rule covers it. Form.Case is required.
func (e *Engine) InflectNoun(noun string, tags []string, f Form) (string, error) {
	if err := validateNoun(f); err != nil {
		return "", err
	}
	tags = normalizeTags(tags)
	if f.Preposition {
		// Clip so the append never writes into the caller's array.
		tags = append(slices.Clip(tags), PrepositionTag)
	}
	return e.inflectOrKeep(Noun, NounFormID(f), noun, tags), nil
}

// InflectAdjective returns the requested form of an adjective. Form.Case is
// required; gender defaults to masculine and number to singular.
func (e *Engine) InflectAdjective(adjective string, tags []string, f Form) (string, error) {
	if err := validateAdjective(f); err != nil {
		return "", err
	}
	return e.inflectOrKeep(Adjective, e.lang.AdjectiveFormID(f), adjective, normalizeTags(tags)), nil
}

// InflectVerb returns the requested form of a verb. The infinitive is the
// citation form and is returned without consulting the rules; otherwise
// Form.Person is required. reflexive adds the language's particle, and is
// ignored by languages without one.
func (e *Engine) InflectVerb(verb string, tags []string, reflexive bool, f Form) (string, error) {
	if err := validateVerb(f); err != nil {
		return "", err
	}
	tags = normalizeTags(tags)
	inflect := func() (string, error) {
		if f.Infinitive {
			return verb, nil
		}
		return e.inflectOrKeep(Verb, VerbFormID(f), verb, tags), nil
	}
	if particle, ok := e.lang.ReflexiveParticle(); ok {
		return inflectReflexive(particle, verb, reflexive, f, inflect)
	}
	return inflect()
}

// inflectOrKeep matches on the NFC form of word but hands back word as the
// caller wrote it when no rule applies.
func (e *Engine) inflectOrKeep(part SpeechPart, formID int, word string, tags []string) string {
	if out, ok := e.InflectedForm(part, formID, Normalize(word), tags); ok {
		return out
	}
	return word
}

// HasRuleFor reports whether any rule of any form id registered for part
// matches word. Lexicon validation uses it to find words whose tags promise
// an inflection the rule file does not deliver.
func (e *Engine) HasRuleFor(part SpeechPart, word string, tags []string) bool {
	word, tags = Normalize(word), normalizeTags(tags)
	for _, id := range e.table.FormIDs(part) {
		for _, r := range e.table.Rules(part, id) {
			if r.Matches(word, tags) {
				return true
			}
		}
	}
	return false
}

// JoinPrepositionObject joins a preposition with its (already inflected)
// object.
func (e *Engine) JoinPrepositionObject(preposition, object string) string {
	return e.lang.JoinPrepositionObject(Normalize(preposition), Normalize(object))
}

// JoinAttributeNoun attaches attribute to main, or returns main alone when
// the language does not allow the pair.
func (e *Engine) JoinAttributeNoun(main, attribute string) string {
	if !e.lang.NounJoinAllowed(main, attribute) {
		return main
	}
	return e.lang.JoinedAttributeNoun(main, attribute)
}
