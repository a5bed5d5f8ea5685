package app

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poeta-go/grammar"
	"github.com/poeta-go/grammar/internal/config"
)

func newCmd(f *Flags) *cobra.Command {
	cmd := &cobra.Command{Use: "test", RunE: func(*cobra.Command, []string) error { return nil }}
	f.Bind(cmd)
	return cmd
}

func TestSetupFlagsOverrideConfig(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "poeta.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("language: de\nlexicon: de.dic\n"), 0o644))

	var f Flags
	cmd := newCmd(&f)
	require.NoError(t, cmd.ParseFlags([]string{"-c", cfgPath, "--rules", "../../testdata/pl.aff", "-l", "pl"}))

	var logs bytes.Buffer
	env, err := Setup(cmd, &f, &logs)
	require.NoError(t, err)
	assert.Equal(t, "pl", env.Config.Language)
	assert.Equal(t, "de.dic", env.Config.Lexicon)
	assert.Equal(t, grammar.Polish{}, env.Language)

	e, rep, err := env.LoadEngine()
	require.NoError(t, err)
	assert.Empty(t, rep.Errors())
	assert.Equal(t, map[string]int{"noun": 14, "adjective": 21, "verb": 7}, RuleCounts(e.Table()))
}

func TestSetupMissingExplicitConfig(t *testing.T) {
	var f Flags
	cmd := newCmd(&f)
	require.NoError(t, cmd.ParseFlags([]string{"--config", filepath.Join(t.TempDir(), "none.yaml")}))
	_, err := Setup(cmd, &f, nil)
	assert.Error(t, err)
}

func TestSetupRejectsUnknownLanguage(t *testing.T) {
	var f Flags
	cmd := newCmd(&f)
	require.NoError(t, cmd.ParseFlags([]string{"-l", "xx"}))
	_, err := Setup(cmd, &f, nil)
	var verr config.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "language", verr.Errors[0].Field)
}

func TestLoadLexiconRequiresPath(t *testing.T) {
	env, err := NewEnv(config.Default(), nil)
	require.NoError(t, err)
	_, _, err = env.LoadLexicon()
	assert.ErrorContains(t, err, "no lexicon")

	env.Config.Lexicon = "../../testdata/pl.dic"
	words, _, err := env.LoadLexicon()
	require.NoError(t, err)
	assert.Len(t, words, 7)
}

func TestInflect(t *testing.T) {
	table, _, err := grammar.LoadRules("../../testdata/pl.aff")
	require.NoError(t, err)
	e := grammar.New(table, grammar.Polish{})

	got, err := Inflect(e, grammar.Noun, "noga", []string{"A"}, false, grammar.Form{Case: grammar.Genitive})
	require.NoError(t, err)
	assert.Equal(t, "nogi", got)

	got, err = Inflect(e, grammar.Verb, "robić", []string{"c"}, true, grammar.Form{Person: 1})
	require.NoError(t, err)
	assert.Equal(t, "robię~się", got)

	_, err = Inflect(e, grammar.Adverb, "szybko", nil, false, grammar.Form{})
	assert.Error(t, err)
}

func TestParseTags(t *testing.T) {
	assert.Nil(t, ParseTags(" "))
	assert.Equal(t, []string{"A", "B"}, ParseTags("AB"))
	assert.Equal(t, []string{"A", "xy"}, ParseTags("A, xy,"))
	assert.Equal(t, []string{"ą"}, ParseTags("ą"))
}

func TestParsePart(t *testing.T) {
	for in, want := range map[string]grammar.SpeechPart{
		"N": grammar.Noun, "n": grammar.Noun, "noun": grammar.Noun, "Verb": grammar.Verb, "a": grammar.Adjective,
	} {
		got, err := ParsePart(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParsePart("x")
	assert.Error(t, err)
}
