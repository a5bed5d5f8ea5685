package grammar

import (
	"fmt"
	"slices"

	"github.com/dlclark/regexp2"
)

// Rule is one suffix transformation: a word ending in Find and carrying
// every Required tag gets Remove stripped from its end and Add appended.
// Find and Remove are regular-expression fragments anchored at the end of
// the word. A Rule is immutable once built.
type Rule struct {
	remove   string
	add      string
	find     string
	required []string

	findRe   *regexp2.Regexp
	removeRe *regexp2.Regexp // nil when remove is empty
}

// NewRule compiles a rule. required normally starts with the rule's
// pattern tag.
func NewRule(remove, add, find string, required ...string) (*Rule, error) {
	findRe, err := compileSuffix(find)
	if err != nil {
		return nil, fmt.Errorf("find pattern %q: %w", find, err)
	}
	r := &Rule{
		remove:   remove,
		add:      add,
		find:     find,
		required: slices.Clone(required),
		findRe:   findRe,
	}
	if remove != "" {
		if r.removeRe, err = compileSuffix(remove); err != nil {
			return nil, fmt.Errorf("remove pattern %q: %w", remove, err)
		}
	}
	return r, nil
}

// compileSuffix anchors a fragment at the end of input. The group keeps
// alternations such as "a|y" anchored as a whole.
func compileSuffix(fragment string) (*regexp2.Regexp, error) {
	return regexp2.Compile("(?:"+fragment+")$", regexp2.None)
}

func (r *Rule) Remove() string { return r.remove }

func (r *Rule) Add() string { return r.add }

func (r *Rule) Find() string { return r.find }

// Required returns a copy of the tags a word must carry.
func (r *Rule) Required() []string { return slices.Clone(r.required) }

// Matches reports whether the rule applies to word carrying tags.
func (r *Rule) Matches(word string, tags []string) bool {
	if len(tags) == 0 && len(r.required) > 0 {
		return false
	}
	for _, req := range r.required {
		if !slices.Contains(tags, req) {
			return false
		}
	}
	ok, err := r.findRe.MatchString(word)
	return err == nil && ok
}

// Inflect applies the transformation. Callers are expected to have checked
// Matches; when Remove does not match the ending nothing is stripped and
// Add is still appended.
func (r *Rule) Inflect(word string, tags []string) string {
	stem := word
	if r.removeRe != nil {
		if s, err := r.removeRe.Replace(word, "", -1, -1); err == nil {
			stem = s
		}
	}
	return stem + r.add
}

func (r *Rule) String() string {
	return fmt.Sprintf("-%s +%s /%s %v", r.remove, r.add, r.find, r.required)
}
