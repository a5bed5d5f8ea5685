package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/poeta-go/grammar"
	"github.com/poeta-go/grammar/internal/app"
)

// cli carries the state shared by all subcommands of one invocation.
type cli struct {
	flags app.Flags
	env   *app.Env
	out   io.Writer
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	c := &cli{out: out}
	root := &cobra.Command{
		Use:   "poeta",
		Short: "Inflect words with declarative suffix rules",
		Long: `poeta inflects nouns, adjectives and verbs using a per-language rule
file, joins prepositions and attribute nouns, and checks lexicons against
the rules.

Examples:
  # genitive singular of a noun tagged A
  poeta inflect noun noga --tags A case=2

  # first person singular of a reflexive verb
  poeta inflect verb robić --tags c --reflexive person=1

  # every form the rules produce for a word
  poeta paradigm noun noga --tags A

  # vocalised preposition
  poeta join z zbroją

  # lexicon words whose tags no rule satisfies
  poeta check --lexicon pl.dic`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			env, err := app.Setup(cmd, &c.flags, errOut)
			if err != nil {
				return err
			}
			c.env = env
			return nil
		},
	}
	root.SetOut(out)
	root.SetErr(errOut)
	c.flags.Bind(root)

	root.AddCommand(
		c.inflectCmd(),
		c.paradigmCmd(),
		c.joinCmd(),
		c.checkCmd(),
		c.rulesCmd(),
	)
	return root
}

func (c *cli) engine() (*grammar.Engine, error) {
	e, rep, err := c.env.LoadEngine()
	if err != nil {
		return nil, err
	}
	if n := len(rep.Errors()); n > 0 {
		c.env.Logger.Warn("rule file has invalid lines", "source", rep.Source, "skipped", n)
	}
	return e, nil
}

// parseFormArgs turns key=value arguments into a Form; a bare key is a
// flag set to true.
func parseFormArgs(args []string) (grammar.Form, error) {
	kv := make(map[string]string, len(args))
	for _, a := range args {
		k, v, _ := strings.Cut(a, "=")
		if k == "" {
			return grammar.Form{}, fmt.Errorf("bad form argument %q", a)
		}
		kv[k] = v
	}
	return grammar.ParseForm(kv)
}
