package grammar

import "github.com/dlclark/regexp2"

const polishConsonants = "bcdfghjklłmnprstwz"

var (
	// z -> ze before z/s/sz + consonant, "ws" and "śl": ze zbroją, ze snu,
	// ze szkła, ze wstydu, ze śladem.
	reZeCluster = regexp2.MustCompile(
		`^(z[`+polishConsonants+`]|s[bcdfghjklłmnprstw]|sz[`+polishConsonants+`]|ws|śl)`, regexp2.None)
	// w -> we before w + consonant and before "mnie": we władzy, we mnie.
	reWeCluster = regexp2.MustCompile(`^w[`+polishConsonants+`]|^mnie\b`, regexp2.None)
)

// Polish adds preposition euphony, the reflexive "się" and the merger of
// inanimate masculine adjective forms.
type Polish struct{}

func (Polish) Code() string { return "pl" }

// AdjectiveFormID folds inanimate masculine forms onto the ones the rule
// file actually lists: plural uses the neuter (non-virile) forms, singular
// accusative equals the nominative.
func (Polish) AdjectiveFormID(f Form) int {
	gender := f.Gender
	if gender == 0 {
		gender = Masculine
	}
	if f.Animacy == Inanimate && gender == Masculine {
		if f.plural() {
			f.Gender = Neuter
		} else if f.Case == Accusative {
			f.Case = Nominative
		}
	}
	return Generic{}.AdjectiveFormID(f)
}

func (Polish) ReflexiveParticle() (string, bool) { return "się", true }

// JoinPrepositionObject picks the vocalised preposition variant where
// Polish requires it and glues it to the object with AttachMarker.
func (Polish) JoinPrepositionObject(preposition, object string) string {
	prep := preposition
	switch {
	case prep == "z" && matches(reZeCluster, object):
		prep = "ze"
	case prep == "z" && (object == "mną" || object == "mnie"):
		prep = "ze"
	case prep == "w" && matches(reWeCluster, object):
		prep = "we"
	case prep == "od" && object == "mnie":
		prep = "ode"
	}
	return prep + AttachMarker + object
}

func (Polish) NounJoinAllowed(main, attribute string) bool {
	return Generic{}.NounJoinAllowed(main, attribute)
}

func (Polish) JoinedAttributeNoun(main, attribute string) string {
	return Generic{}.JoinedAttributeNoun(main, attribute)
}

func (Polish) language() {}

func matches(re *regexp2.Regexp, s string) bool {
	ok, err := re.MatchString(s)
	return err == nil && ok
}
