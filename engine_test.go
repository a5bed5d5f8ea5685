package grammar

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const plRules = "testdata/pl.aff"

func loadEngine(t *testing.T, lang Language) *Engine {
	t.Helper()
	e, rep, err := Load(plRules, lang)
	require.NoError(t, err)
	require.Empty(t, rep.Issues)
	return e
}

func engineFrom(t *testing.T, src string, lang Language) *Engine {
	t.Helper()
	table, rep, err := ReadRules(strings.NewReader(src))
	require.NoError(t, err)
	require.Empty(t, rep.Issues)
	return New(table, lang)
}

func TestFormIDs(t *testing.T) {
	assert.Equal(t, int(Genitive)+10, NounFormID(Form{Case: Genitive, Number: Plural}))
	assert.Equal(t, int(Nominative), NounFormID(Form{Case: Nominative, Number: Singular}))
	assert.Equal(t, int(Dative), NounFormID(Form{Case: Dative, Gender: Feminine}), "gender is not part of the noun key")

	assert.Equal(t, int(Accusative)+10+int(Feminine)*100,
		AdjectiveFormID(Form{Case: Accusative, Number: Plural, Gender: Feminine}))
	assert.Equal(t, int(Genitive)+int(Masculine)*100, AdjectiveFormID(Form{Case: Genitive}),
		"gender defaults to masculine, number to singular")

	assert.Equal(t, 3, VerbFormID(Form{Person: 3}))
	assert.Equal(t, 11, VerbFormID(Form{Person: 1, Number: Plural}))
	assert.Equal(t, 102, VerbFormID(Form{Person: 2, Imperative: true}))
	assert.Equal(t, 112, VerbFormID(Form{Person: 2, Number: Plural, Imperative: true}))
}

func TestInflectNoun(t *testing.T) {
	e := loadEngine(t, Polish{})
	tests := []struct {
		word string
		tags []string
		form Form
		want string
	}{
		{"noga", []string{"A"}, Form{Case: Nominative}, "noga"},
		{"noga", []string{"A"}, Form{Case: Genitive}, "nogi"},
		{"szyja", []string{"A"}, Form{Case: Genitive}, "szyjy"},
		{"noga", []string{"A"}, Form{Case: Accusative}, "nogę"},
		{"noga", []string{"A"}, Form{Case: Genitive, Number: Plural}, "nog"},
		{"dom", []string{"B"}, Form{Case: Genitive}, "domu"},
		{"dom", []string{"B"}, Form{Case: Genitive, Number: Plural}, "domów"},
		// no rule for the slot: the word comes back unchanged
		{"dom", []string{"B"}, Form{Case: Vocative}, "dom"},
		// tags do not match any rule
		{"noga", []string{"Q"}, Form{Case: Genitive}, "noga"},
		{"noga", nil, Form{Case: Genitive}, "noga"},
	}
	for _, tt := range tests {
		got, err := e.InflectNoun(tt.word, tt.tags, tt.form)
		require.NoError(t, err)
		assert.Equalf(t, tt.want, got, "InflectNoun(%q, %v, %s)", tt.word, tt.tags, MustFormatForm(tt.form))
	}
}

func TestInflectNounPreposition(t *testing.T) {
	e := loadEngine(t, Polish{})
	tags := make([]string, 1, 4)
	tags[0] = "A"

	// the locative rule requires the preposition tag
	got, err := e.InflectNoun("noga", tags, Form{Case: Locative})
	require.NoError(t, err)
	assert.Equal(t, "noga", got)

	got, err = e.InflectNoun("noga", tags, Form{Case: Locative, Preposition: true})
	require.NoError(t, err)
	assert.Equal(t, "nogie", got)

	// the marker never leaks into the caller's tags, even with spare capacity
	assert.Equal(t, []string{"A"}, tags)
	assert.Equal(t, "", tags[:2][1])
	got, err = e.InflectNoun("noga", tags, Form{Case: Locative})
	require.NoError(t, err)
	assert.Equal(t, "noga", got)
}

func TestInflectAdjective(t *testing.T) {
	e := loadEngine(t, Generic{})
	tests := []struct {
		form Form
		want string
	}{
		{Form{Case: Nominative}, "nowy"},
		{Form{Case: Genitive, Gender: Masculine}, "nowego"},
		{Form{Case: Accusative, Gender: Masculine}, "nowego"},
		{Form{Case: Nominative, Gender: Feminine}, "nowa"},
		{Form{Case: Accusative, Gender: Feminine}, "nową"},
		{Form{Case: Nominative, Gender: Masculine, Number: Plural}, "nowi"},
		{Form{Case: Genitive, Gender: Masculine, Number: Plural}, "nowych"},
		{Form{Case: Nominative, Gender: Neuter, Number: Plural}, "nowe"},
		{Form{Case: Vocative, Gender: Feminine}, "nowy"},
	}
	for _, tt := range tests {
		got, err := e.InflectAdjective("nowy", []string{"a"}, tt.form)
		require.NoError(t, err)
		assert.Equalf(t, tt.want, got, "InflectAdjective(nowy, %s)", MustFormatForm(tt.form))
	}
}

func TestInflectVerb(t *testing.T) {
	e := loadEngine(t, Generic{})
	tests := []struct {
		form Form
		want string
	}{
		{Form{Person: 1}, "robię"},
		{Form{Person: 2, Number: Singular}, "robisz"},
		{Form{Person: 3}, "robi"},
		{Form{Person: 1, Number: Plural}, "robimy"},
		{Form{Person: 3, Number: Plural}, "robią"},
		{Form{Person: 2, Imperative: true}, "rob"},
		{Form{Person: 3, Imperative: true}, "robić"},
		{Form{Infinitive: true}, "robić"},
	}
	for _, tt := range tests {
		got, err := e.InflectVerb("robić", []string{"c"}, false, tt.form)
		require.NoError(t, err)
		assert.Equalf(t, tt.want, got, "InflectVerb(robić, %s)", MustFormatForm(tt.form))
	}
}

func TestInflectVerbInfinitiveSkipsRules(t *testing.T) {
	// a rule that would match every verb in every slot
	e := engineFrom(t, "V c 0-200 0 X .\n", Generic{})
	got, err := e.InflectVerb("robić", []string{"c"}, false, Form{Infinitive: true})
	require.NoError(t, err)
	assert.Equal(t, "robić", got)
}

func TestInflectReturnsInputWhenUnchanged(t *testing.T) {
	e := loadEngine(t, Polish{})
	robic := "robic\u0301" // ć as c + combining acute

	got, err := e.InflectVerb(robic, []string{"c"}, false, Form{Infinitive: true})
	require.NoError(t, err)
	assert.Equal(t, robic, got, "infinitive")

	got, err = e.InflectVerb(robic, []string{"c"}, true, Form{Infinitive: true})
	require.NoError(t, err)
	assert.Equal(t, "się~"+robic, got, "reflexive infinitive")

	got, err = e.InflectVerb(robic, []string{"x"}, false, Form{Person: 1})
	require.NoError(t, err)
	assert.Equal(t, robic, got, "no verb rule")

	zrodlo := "z\u0301ro\u0301dło"
	got, err = e.InflectNoun(zrodlo, []string{"x"}, Form{Case: Genitive})
	require.NoError(t, err)
	assert.Equal(t, zrodlo, got, "no noun rule")

	zolty := "z\u0307o\u0301łty"
	got, err = e.InflectAdjective(zolty, []string{"x"}, Form{Case: Genitive})
	require.NoError(t, err)
	assert.Equal(t, zolty, got, "no adjective rule")

	// matching still sees the composed word
	got, err = e.InflectVerb(robic, []string{"c"}, false, Form{Person: 1})
	require.NoError(t, err)
	assert.Equal(t, "robię", got)
}

func TestFirstMatchWins(t *testing.T) {
	e := engineFrom(t, "N A 2 a y a\nN A 2 a i [gk]a\n", Generic{})
	got, err := e.InflectNoun("noga", []string{"A"}, Form{Case: Genitive})
	require.NoError(t, err)
	assert.Equal(t, "nogy", got, "earlier rule wins even though the later one is more specific")

	out, ok := e.InflectedForm(Noun, 2, "noga", []string{"A"})
	assert.True(t, ok)
	assert.Equal(t, "nogy", out)

	_, ok = e.InflectedForm(Noun, 3, "noga", []string{"A"})
	assert.False(t, ok, "missing slot")
	_, ok = e.InflectedForm(Noun, 2, "dom", []string{"A"})
	assert.False(t, ok, "no rule matches")
}

func TestInflectDomainErrors(t *testing.T) {
	e := loadEngine(t, Polish{})
	tests := []struct {
		name string
		call func() error
	}{
		{"noun without case", func() error {
			_, err := e.InflectNoun("noga", []string{"A"}, Form{})
			return err
		}},
		{"noun with unknown case", func() error {
			_, err := e.InflectNoun("noga", []string{"A"}, Form{Case: 8})
			return err
		}},
		{"noun with unknown number", func() error {
			_, err := e.InflectNoun("noga", []string{"A"}, Form{Case: Genitive, Number: 3})
			return err
		}},
		{"adjective without case", func() error {
			_, err := e.InflectAdjective("nowy", []string{"a"}, Form{Gender: Feminine})
			return err
		}},
		{"adjective with unknown gender", func() error {
			_, err := e.InflectAdjective("nowy", []string{"a"}, Form{Case: Genitive, Gender: 4})
			return err
		}},
		{"verb without person", func() error {
			_, err := e.InflectVerb("robić", []string{"c"}, false, Form{})
			return err
		}},
		{"verb with unknown person", func() error {
			_, err := e.InflectVerb("robić", []string{"c"}, false, Form{Person: 4})
			return err
		}},
		{"verb with infinitive and person", func() error {
			_, err := e.InflectVerb("robić", []string{"c"}, true, Form{Infinitive: true, Person: 1})
			return err
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrDomain))
			var fe *FormError
			assert.True(t, errors.As(err, &fe))
		})
	}
}

func TestHasRuleFor(t *testing.T) {
	e := loadEngine(t, Polish{})
	assert.True(t, e.HasRuleFor(Noun, "noga", []string{"A"}))
	assert.True(t, e.HasRuleFor(Noun, "dom", []string{"B"}))
	assert.False(t, e.HasRuleFor(Noun, "kolano", []string{"A"}), "wrong ending")
	assert.False(t, e.HasRuleFor(Noun, "toga", []string{"C"}), "unknown tag")
	assert.False(t, e.HasRuleFor(Adjective, "noga", []string{"A"}), "wrong speech part")
	assert.False(t, e.HasRuleFor(Adverb, "szybko", []string{"A"}), "no rules at all")

	// only a rule in a late slot matches
	e = engineFrom(t, "N A 1 a e a\nN B 12 0 ów .\n", Generic{})
	assert.True(t, e.HasRuleFor(Noun, "dom", []string{"B"}))
}

func TestParadigm(t *testing.T) {
	e := loadEngine(t, Polish{})
	p := e.Paradigm(Noun, "dom", []string{"B"})
	assert.Equal(t, map[int]string{1: "dom", 2: "domu", 5: "domem", 11: "domy", 12: "domów"}, p.Cells)

	p = e.Paradigm(Verb, "robić", []string{"x"})
	assert.Empty(t, p.Cells)
}

func TestDescribeFormID(t *testing.T) {
	f, ok := DescribeFormID(Noun, 12)
	assert.True(t, ok)
	assert.Equal(t, Form{Case: Genitive, Number: Plural}, f)

	f, ok = DescribeFormID(Adjective, 314)
	assert.True(t, ok)
	assert.Equal(t, Form{Case: Accusative, Number: Plural, Gender: Feminine}, f)

	f, ok = DescribeFormID(Verb, 102)
	assert.True(t, ok)
	assert.Equal(t, Form{Person: 2, Number: Singular, Imperative: true}, f)

	for _, id := range []int{0, 8, 22} {
		_, ok = DescribeFormID(Noun, id)
		assert.Falsef(t, ok, "noun id %d", id)
	}
	_, ok = DescribeFormID(Other, 1)
	assert.False(t, ok)

	// encoding and decoding agree on every valid adjective id
	for _, g := range Genders {
		for _, n := range Numbers {
			for _, c := range Cases {
				want := Form{Case: c, Number: n, Gender: g}
				got, ok := DescribeFormID(Adjective, AdjectiveFormID(want))
				require.True(t, ok)
				assert.Equal(t, want, got)
			}
		}
	}
}

func TestNewDefaults(t *testing.T) {
	e := New(nil, nil)
	assert.Equal(t, "generic", e.Language().Code())
	assert.Equal(t, 0, e.Table().Len())
	got, err := e.InflectNoun("dom", nil, Form{Case: Genitive})
	require.NoError(t, err)
	assert.Equal(t, "dom", got)
}

func TestFormValidate(t *testing.T) {
	assert.NoError(t, Form{Case: Genitive}.Validate(Noun))
	assert.NoError(t, Form{Case: Genitive, Gender: Feminine}.Validate(Adjective))
	assert.NoError(t, Form{Infinitive: true}.Validate(Verb))
	assert.NoError(t, Form{Person: 2, Imperative: true}.Validate(Verb))

	for _, tt := range []struct {
		part SpeechPart
		form Form
	}{
		{Noun, Form{}},
		{Noun, Form{Number: Plural}},
		{Adjective, Form{Gender: Feminine}},
		{Verb, Form{}},
		{Verb, Form{Infinitive: true, Person: 1}},
		{Adverb, Form{Case: Genitive}},
	} {
		err := tt.form.Validate(tt.part)
		assert.ErrorIsf(t, err, ErrDomain, "%s %+v", tt.part, tt.form)
	}
}
