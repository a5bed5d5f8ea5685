// Package app wires configuration, logging and rule loading for the poeta
// commands.
package app

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/poeta-go/grammar"
	"github.com/poeta-go/grammar/internal/config"
	"github.com/poeta-go/grammar/internal/logging"
)

// DefaultConfigFile is read when present and --config is not given.
const DefaultConfigFile = "poeta.yaml"

// Flags are the command-line settings shared by all poeta commands.
type Flags struct {
	Config   string
	Language string
	Rules    string
	Lexicon  string
	LogLevel string
}

// Bind registers the flags as persistent flags of cmd.
func (f *Flags) Bind(cmd *cobra.Command) {
	pf := cmd.PersistentFlags()
	pf.StringVarP(&f.Config, "config", "c", DefaultConfigFile, "config file path")
	pf.StringVarP(&f.Language, "language", "l", config.DefaultLanguage, "language code (pl, de, en)")
	pf.StringVar(&f.Rules, "rules", "", "rule file (default <language>.aff)")
	pf.StringVar(&f.Lexicon, "lexicon", "", "lexicon file")
	pf.StringVar(&f.LogLevel, "log-level", config.DefaultLogLevel, "log level (debug, info, warn, error)")
}

// Env is what a command needs once its flags are parsed.
type Env struct {
	Config   *config.Config
	Logger   *log.Logger
	Language grammar.Language
}

// Setup loads .env and the config file, overlays the flags the user set
// on cmd and builds the logger, which writes to logOut.
func Setup(cmd *cobra.Command, f *Flags, logOut io.Writer) (*Env, error) {
	if err := config.LoadDotEnv(".env"); err != nil {
		return nil, fmt.Errorf("load .env: %w", err)
	}
	flags := cmd.Flags()
	cfg, err := config.Load(f.Config, !flags.Changed("config"))
	if err != nil {
		return nil, err
	}
	if flags.Changed("language") {
		cfg.Language = f.Language
	}
	if flags.Changed("rules") {
		cfg.Rules = f.Rules
	}
	if flags.Changed("lexicon") {
		cfg.Lexicon = f.Lexicon
	}
	if flags.Changed("log-level") {
		cfg.Logging.Level = f.LogLevel
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return NewEnv(cfg, logOut)
}

// NewEnv builds an Env from a validated configuration.
func NewEnv(cfg *config.Config, logOut io.Writer) (*Env, error) {
	logger, err := logging.New(logging.Options{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Output: logOut,
	})
	if err != nil {
		return nil, err
	}
	return &Env{
		Config:   cfg,
		Logger:   logger,
		Language: grammar.LanguageFor(cfg.Language),
	}, nil
}

// LoadEngine reads the configured rule file.
func (e *Env) LoadEngine() (*grammar.Engine, *grammar.LoadReport, error) {
	return grammar.Load(e.Config.RulesPath(), e.Language,
		grammar.WithLogger(logging.Component(e.Logger, "rules")))
}

// LoadLexicon reads the configured lexicon.
func (e *Env) LoadLexicon() ([]grammar.Word, *grammar.LoadReport, error) {
	if e.Config.Lexicon == "" {
		return nil, nil, fmt.Errorf("no lexicon configured (use --lexicon)")
	}
	return grammar.LoadLexicon(e.Config.Lexicon,
		grammar.WithLogger(logging.Component(e.Logger, "lexicon")))
}

// RuleCounts maps speech part names to their number of rules.
func RuleCounts(t *grammar.RuleTable) map[string]int {
	counts := make(map[string]int)
	for _, p := range grammar.SpeechParts {
		if n := t.PartLen(p); n > 0 {
			counts[p.String()] = n
		}
	}
	return counts
}

// Inflect dispatches to the engine operation for part. Only nouns,
// adjectives and verbs inflect; reflexive applies to verbs.
func Inflect(e *grammar.Engine, part grammar.SpeechPart, word string, tags []string, reflexive bool, f grammar.Form) (string, error) {
	switch part {
	case grammar.Noun:
		return e.InflectNoun(word, tags, f)
	case grammar.Adjective:
		return e.InflectAdjective(word, tags, f)
	case grammar.Verb:
		return e.InflectVerb(word, tags, reflexive, f)
	}
	return "", fmt.Errorf("%s words do not inflect", part)
}

// ParseTags splits a tag argument. "A,B" and "AB" both give [A B]; tags
// are single letters in lexicons, so letters are split when no comma is
// present.
func ParseTags(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	if strings.Contains(s, ",") {
		var tags []string
		for _, t := range strings.Split(s, ",") {
			if t = strings.TrimSpace(t); t != "" {
				tags = append(tags, t)
			}
		}
		return tags
	}
	tags := make([]string, 0, len(s))
	for _, r := range s {
		tags = append(tags, string(r))
	}
	return tags
}

// ParsePart accepts a speech part letter (N, A, V, D, O) or its name.
func ParsePart(s string) (grammar.SpeechPart, error) {
	for _, p := range grammar.SpeechParts {
		if strings.EqualFold(s, p.String()) {
			return p, nil
		}
	}
	return grammar.ParseSpeechPart(strings.ToUpper(s))
}
