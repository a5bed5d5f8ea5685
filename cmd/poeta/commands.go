package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/poeta-go/grammar"
	"github.com/poeta-go/grammar/internal/app"
)

func (c *cli) inflectCmd() *cobra.Command {
	var (
		tags      string
		reflexive bool
	)
	cmd := &cobra.Command{
		Use:   "inflect <part> <word> [feature=value ...]",
		Short: "Print one form of a word",
		Long: `Print the requested form of a word. Features are case, number, gender,
person, infinitive, imperative, animate and preposition. Values may be
numbers, abbreviations (M D C B N Ms W, Sg Pl, m n f) or full names.
A word no rule covers is printed unchanged.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			part, err := app.ParsePart(args[0])
			if err != nil {
				return err
			}
			f, err := parseFormArgs(args[2:])
			if err != nil {
				return err
			}
			e, err := c.engine()
			if err != nil {
				return err
			}
			out, err := app.Inflect(e, part, args[1], app.ParseTags(tags), reflexive, f)
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, out)
			return nil
		},
	}
	cmd.Flags().StringVarP(&tags, "tags", "t", "", "lexical tags of the word (\"AB\" or \"A,B\")")
	cmd.Flags().BoolVarP(&reflexive, "reflexive", "r", false, "add the reflexive particle (verbs)")
	return cmd
}

func (c *cli) paradigmCmd() *cobra.Command {
	var tags string
	cmd := &cobra.Command{
		Use:   "paradigm <part> <word>",
		Short: "Print every form the rules produce for a word",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			part, err := app.ParsePart(args[0])
			if err != nil {
				return err
			}
			e, err := c.engine()
			if err != nil {
				return err
			}
			p := e.Paradigm(part, args[1], app.ParseTags(tags))
			if len(p.Cells) == 0 {
				return fmt.Errorf("no %s rule matches %q", part, p.Word)
			}
			tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			for _, id := range e.Table().FormIDs(part) {
				text, ok := p.Cells[id]
				if !ok {
					continue
				}
				desc := ""
				if f, ok := grammar.DescribeFormID(part, id); ok {
					desc = grammar.MustFormatForm(f)
				}
				fmt.Fprintf(tw, "%d\t%s\t%s\n", id, desc, text)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().StringVarP(&tags, "tags", "t", "", "lexical tags of the word")
	return cmd
}

func (c *cli) joinCmd() *cobra.Command {
	var attribute bool
	cmd := &cobra.Command{
		Use:   "join <first> <second>",
		Short: "Join a preposition and its object, or a noun and its attribute",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			e := grammar.New(nil, c.env.Language)
			if attribute {
				fmt.Fprintln(c.out, e.JoinAttributeNoun(args[0], args[1]))
				return nil
			}
			fmt.Fprintln(c.out, e.JoinPrepositionObject(args[0], args[1]))
			return nil
		},
	}
	cmd.Flags().BoolVarP(&attribute, "attribute", "a", false, "join <noun> <attribute> instead of <preposition> <object>")
	return cmd
}

var errCheckFailed = errors.New("lexicon check failed")

func (c *cli) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Report lexicon words whose tags no rule satisfies",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			e, err := c.engine()
			if err != nil {
				return err
			}
			words, rep, err := c.env.LoadLexicon()
			if err != nil {
				return err
			}
			issues := e.Validate(words)
			for _, issue := range issues {
				fmt.Fprintf(c.out, "%s:%d: %s\n", rep.Source, issue.Word.Line, issue.Message)
			}
			for _, bad := range rep.Errors() {
				fmt.Fprintln(c.out, bad.Error())
			}
			fmt.Fprintf(c.out, "%d words, %d unreadable lines, %d without a matching rule\n",
				len(words), len(rep.Errors()), len(issues))
			if len(issues) > 0 || len(rep.Errors()) > 0 {
				return errCheckFailed
			}
			return nil
		},
	}
}

func (c *cli) rulesCmd() *cobra.Command {
	var partFlag string
	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List the loaded rules by speech part and form id",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			parts := grammar.SpeechParts
			if partFlag != "" {
				p, err := app.ParsePart(partFlag)
				if err != nil {
					return err
				}
				parts = []grammar.SpeechPart{p}
			}
			e, err := c.engine()
			if err != nil {
				return err
			}
			t := e.Table()
			tw := tabwriter.NewWriter(c.out, 0, 4, 2, ' ', 0)
			n := 0
			for _, p := range parts {
				for _, id := range t.FormIDs(p) {
					for _, r := range t.Rules(p, id) {
						fmt.Fprintf(tw, "%s\t%d\t%s\n", p.Letter(), id, r)
						n++
					}
				}
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			fmt.Fprintf(c.out, "%d rules\n", n)
			return nil
		},
	}
	cmd.Flags().StringVarP(&partFlag, "part", "p", "", "only list rules of this speech part")
	return cmd
}
