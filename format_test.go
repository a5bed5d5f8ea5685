package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatForm(t *testing.T) {
	tests := []struct {
		form Form
		want string
	}{
		{Form{}, ""},
		{Form{Case: Locative}, "Ms"},
		{Form{Case: Nominative}, " M"},
		{Form{Gender: Feminine, Number: Plural, Case: Accusative}, "f Pl  B"},
		{Form{Gender: Neuter, Case: Vocative}, "n  W"},
		{Form{Number: Singular, Person: 3, Imperative: true}, "Sg 3 Imp"},
		{Form{Infinitive: true}, "Inf"},
		{Form{Case: Genitive, Animacy: Animate}, " D anim"},
		{Form{Case: Genitive, Animacy: Inanimate}, " D"},
		{
			Form{Case: Instrumental, Preposition: true, Extra: map[string]string{"zeta": "1", "alpha": "x"}},
			" N alpha=x preposition=true zeta=1",
		},
	}
	for _, tt := range tests {
		got, err := FormatForm(tt.form)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestFormatFormRejectsUnknownValues(t *testing.T) {
	for _, f := range []Form{
		{Case: 9},
		{Gender: 7},
		{Number: 3},
		{Person: 4},
	} {
		_, err := FormatForm(f)
		assert.ErrorIs(t, err, ErrDomain)
	}
	assert.Panics(t, func() { MustFormatForm(Form{Case: -1}) })
}

func TestFormatFormIsStable(t *testing.T) {
	f := Form{Gender: Masculine, Number: Plural, Case: Dative, Extra: map[string]string{"b": "2", "a": "1", "c": "3"}}
	first := MustFormatForm(f)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, MustFormatForm(f))
	}
	assert.Equal(t, "m Pl  C a=1 b=2 c=3", first)
}
