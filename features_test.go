package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseForm(t *testing.T) {
	tests := []struct {
		in   map[string]string
		want Form
	}{
		{map[string]string{"case": "2", "number": "2"}, Form{Case: Genitive, Number: Plural}},
		{map[string]string{"case": "Ms", "gender": "f"}, Form{Case: Locative, Gender: Feminine}},
		{map[string]string{"case": "accusative", "gender": "Neuter", "number": "pl"}, Form{Case: Accusative, Gender: Neuter, Number: Plural}},
		{map[string]string{"person": "3", "imperative": ""}, Form{Person: 3, Imperative: true}},
		{map[string]string{"infinitive": "true"}, Form{Infinitive: true}},
		{map[string]string{"animate": "false", "case": "B"}, Form{Case: Accusative, Animacy: Inanimate}},
		{map[string]string{"animate": "1"}, Form{Animacy: Animate}},
		{map[string]string{"preposition": "yes"}, Form{}},
		{map[string]string{"case": "1", "rhyme": "x"}, Form{Case: Nominative, Extra: map[string]string{"rhyme": "x"}}},
	}
	for _, tt := range tests {
		got, err := ParseForm(tt.in)
		if tt.in["preposition"] == "yes" {
			assert.ErrorIs(t, err, ErrDomain)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestParseFormErrors(t *testing.T) {
	for _, in := range []map[string]string{
		{"case": "X"},
		{"gender": "q"},
		{"number": "dual"},
		{"person": "first"},
		{"infinitive": "maybe"},
	} {
		_, err := ParseForm(in)
		assert.ErrorIs(t, err, ErrDomain, in)
	}

	// numbers outside the enumerations parse, the engine rejects them
	f, err := ParseForm(map[string]string{"case": "12"})
	require.NoError(t, err)
	assert.False(t, f.Case.Valid())
}

func TestParseSpeechPart(t *testing.T) {
	for _, p := range SpeechParts {
		got, err := ParseSpeechPart(p.Letter())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	for _, s := range []string{"", "X", "NN", "n"} {
		_, err := ParseSpeechPart(s)
		assert.Error(t, err, s)
	}
	assert.Equal(t, "adjective", Adjective.String())
}
