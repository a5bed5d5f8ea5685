package grammar

// Paradigm is the full set of forms a word gets from the rule table.
type Paradigm struct {
	Part SpeechPart
	Word string
	// Cells maps form id to the inflected form.
	Cells map[int]string
}

// Paradigm computes every form of word the rule table can produce for part.
// Form ids without a matching rule are left out.
func (e *Engine) Paradigm(part SpeechPart, word string, tags []string) *Paradigm {
	key, tags := Normalize(word), normalizeTags(tags)
	p := &Paradigm{
		Part:  part,
		Word:  word,
		Cells: make(map[int]string),
	}
	for _, id := range e.table.FormIDs(part) {
		if out, ok := e.InflectedForm(part, id, key, tags); ok {
			p.Cells[id] = out
		}
	}
	return p
}

// DescribeFormID decodes a form id back into the Form it addresses, the
// inverse of the per-part encoders. ok is false for ids that do not decode
// to valid features.
func DescribeFormID(part SpeechPart, id int) (Form, bool) {
	var f Form
	switch part {
	case Noun:
		f.Case = Case(id % pluralOffset)
		f.Number = Number(id/pluralOffset + 1)
		return f, f.Case.Valid() && f.Number.Valid()
	case Adjective:
		f.Gender = Gender(id / genderMultiplier)
		rest := id % genderMultiplier
		f.Case = Case(rest % pluralOffset)
		f.Number = Number(rest/pluralOffset + 1)
		return f, f.Gender.Valid() && f.Case.Valid() && f.Number.Valid()
	case Verb:
		f.Imperative = id/imperativeOffset == 1
		rest := id % imperativeOffset
		f.Person = rest % pluralOffset
		f.Number = Number(rest/pluralOffset + 1)
		return f, id/imperativeOffset <= 1 && f.Person >= 1 && f.Person <= 3 && f.Number.Valid()
	}
	return f, false
}
