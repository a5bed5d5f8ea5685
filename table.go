package grammar

import (
	"maps"
	"slices"
)

// RuleTable maps (speech part, form id) to an ordered list of rules.
// Order within a slot is the file order, and the first matching rule wins.
// The table is only appended to while loading; afterwards it is read-only
// and may be shared between goroutines.
type RuleTable struct {
	rules map[SpeechPart]map[int][]*Rule
}

// NewRuleTable returns an empty table with a slot map for every speech part.
func NewRuleTable() *RuleTable {
	t := &RuleTable{rules: make(map[SpeechPart]map[int][]*Rule, len(SpeechParts))}
	for _, p := range SpeechParts {
		t.rules[p] = make(map[int][]*Rule)
	}
	return t
}

// Add appends r to the (part, formID) slot.
func (t *RuleTable) Add(part SpeechPart, formID int, r *Rule) {
	forms, ok := t.rules[part]
	if !ok {
		forms = make(map[int][]*Rule)
		t.rules[part] = forms
	}
	forms[formID] = append(forms[formID], r)
}

// Rules returns the rules of one slot, nil if there is none.
func (t *RuleTable) Rules(part SpeechPart, formID int) []*Rule {
	return t.rules[part][formID]
}

// FormIDs returns the form ids registered for part in ascending order.
func (t *RuleTable) FormIDs(part SpeechPart) []int {
	return slices.Sorted(maps.Keys(t.rules[part]))
}

// Len returns the number of rules over all speech parts and forms.
func (t *RuleTable) Len() int {
	n := 0
	for _, forms := range t.rules {
		for _, rules := range forms {
			n += len(rules)
		}
	}
	return n
}

// PartLen returns the number of rules registered for one speech part.
func (t *RuleTable) PartLen(part SpeechPart) int {
	n := 0
	for _, rules := range t.rules[part] {
		n += len(rules)
	}
	return n
}
