package grammar

// Form ids are additive: one decimal position per grammatical axis, so the
// numbers in a rule file can be assigned by hand.
//
//	noun       case + 10*plural
//	adjective  case + 10*plural + 100*gender
//	verb       person + 10*plural + 100*imperative
const (
	pluralOffset     = 10
	genderMultiplier = 100
	imperativeOffset = 100
)

// PrepositionTag is added to a noun's tags, for one call only, when it is
// inflected as the object of a preposition. Rules opt into those forms by
// listing it as a required tag.
const PrepositionTag = "p"

// NounFormID encodes a noun request. Gender is not part of the key.
func NounFormID(f Form) int {
	id := int(f.Case)
	if f.plural() {
		id += pluralOffset
	}
	return id
}

// AdjectiveFormID encodes an adjective request with the generic formula.
// Gender defaults to masculine.
func AdjectiveFormID(f Form) int {
	gender := f.Gender
	if gender == 0 {
		gender = Masculine
	}
	id := int(f.Case)
	if f.plural() {
		id += pluralOffset
	}
	return id + int(gender)*genderMultiplier
}

// VerbFormID encodes a finite verb request.
func VerbFormID(f Form) int {
	id := f.Person
	if f.plural() {
		id += pluralOffset
	}
	if f.Imperative {
		id += imperativeOffset
	}
	return id
}

// checkDomain rejects any axis that is set to a value outside its
// enumeration.
func checkDomain(f Form) error {
	if f.Case != 0 && !f.Case.Valid() {
		return invalid("case", int(f.Case))
	}
	if f.Number != 0 && !f.Number.Valid() {
		return invalid("number", int(f.Number))
	}
	if f.Gender != 0 && !f.Gender.Valid() {
		return invalid("gender", int(f.Gender))
	}
	if f.Person != 0 && (f.Person < 1 || f.Person > 3) {
		return invalid("person", f.Person)
	}
	return nil
}

// Validate reports whether f is a complete request for part: the features
// part requires are present and every feature is within its enumeration.
// Parts without inflection accept no form.
func (f Form) Validate(part SpeechPart) error {
	switch part {
	case Noun:
		return validateNoun(f)
	case Adjective:
		return validateAdjective(f)
	case Verb:
		return validateVerb(f)
	}
	return &FormError{Field: "part", Value: part, Reason: "does not inflect"}
}

func validateNoun(f Form) error {
	if f.Case == 0 {
		return missing("case")
	}
	return checkDomain(f)
}

func validateAdjective(f Form) error {
	if f.Case == 0 {
		return missing("case")
	}
	return checkDomain(f)
}

func validateVerb(f Form) error {
	if f.Infinitive && f.Person != 0 {
		return &FormError{Field: "infinitive", Reason: "both infinitive and person given"}
	}
	if !f.Infinitive && f.Person == 0 {
		return missing("person")
	}
	return checkDomain(f)
}
