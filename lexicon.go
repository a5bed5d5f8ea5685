package grammar

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

// Word is a lexicon entry as far as inflection is concerned. The word
// store itself (frequencies, semantics, random choice) lives elsewhere;
// this is just enough to check a lexicon against a rule file.
type Word struct {
	Part      SpeechPart
	Frequency int
	Text      string
	// Tags are the one-letter lexical tags after the slash ("noga/A").
	Tags []string
	// Rest is the unparsed remainder of the line (objects, semantics...).
	Rest string
	Line int
}

var (
	reLexPart   = regexp.MustCompile(`^(\S)\s+`)
	reLexFreq   = regexp.MustCompile(`^(\d+)\s+`)
	reLexQuoted = regexp.MustCompile(`^"([^"]+)"`)
	reLexBare   = regexp.MustCompile(`^([^\s/]+)`)
	reLexTags   = regexp.MustCompile(`^/(\S*)`)
)

// LoadLexicon reads a lexicon file from path.
func LoadLexicon(path string, opts ...LoadOption) ([]Word, *LoadReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadLexicon(f, append([]LoadOption{WithSource(path)}, opts...)...)
}

// ReadLexicon parses lexicon lines of the form
//
//	<speech_part> <frequency> <text|"quoted text">[/<tags>] [rest]
//
// Unparseable lines are reported and skipped.
func ReadLexicon(r io.Reader, opts ...LoadOption) ([]Word, *LoadReport, error) {
	o := newLoadOptions("lexicon", opts)
	rep := &LoadReport{Source: o.source}
	var words []Word

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		raw := sc.Text()
		line := strings.TrimSpace(stripComment(raw))
		if line == "" {
			continue
		}
		rep.Lines++
		w, err := parseWord(Normalize(line))
		if err != nil {
			o.report(rep, LoadIssue{Line: lineNo, Text: raw, Err: err})
			continue
		}
		w.Line = lineNo
		words = append(words, w)
		rep.Loaded++
	}
	if err := sc.Err(); err != nil {
		return nil, rep, fmt.Errorf("read %s: %w", o.source, err)
	}
	return words, rep, nil
}

var errNoTags = errors.New("cannot read word tags")

func parseWord(line string) (Word, error) {
	var w Word

	m := reLexPart.FindStringSubmatch(line)
	if m == nil {
		return w, fmt.Errorf("cannot read speech part from %q", line)
	}
	part, err := ParseSpeechPart(m[1])
	if err != nil {
		return w, err
	}
	w.Part = part
	rest := line[len(m[0]):]

	if m = reLexFreq.FindStringSubmatch(rest); m == nil {
		return w, fmt.Errorf("cannot read frequency from %q", rest)
	}
	w.Frequency, _ = strconv.Atoi(m[1])
	rest = rest[len(m[0]):]

	if m = reLexQuoted.FindStringSubmatch(rest); m == nil {
		m = reLexBare.FindStringSubmatch(rest)
	}
	if m == nil {
		return w, fmt.Errorf("cannot read word from %q", rest)
	}
	w.Text = m[1]
	rest = rest[len(m[0]):]

	if m = reLexTags.FindStringSubmatch(rest); m != nil {
		if m[1] == "" {
			return w, errNoTags
		}
		for _, r := range m[1] {
			w.Tags = append(w.Tags, string(r))
		}
		rest = rest[len(m[0]):]
	}
	w.Rest = strings.TrimSpace(rest)
	return w, nil
}

// ValidationIssue is a lexicon word the rule file cannot inflect.
type ValidationIssue struct {
	Word    Word
	Message string
}

// inflectable lists the speech parts whose tags promise rule coverage.
var inflectable = []SpeechPart{Noun, Adjective, Verb}

// Validate returns an issue for every noun, adjective or verb that declares
// tags but is matched by no rule. Words without tags are fine: they are
// invariant by construction.
func (e *Engine) Validate(words []Word) []ValidationIssue {
	var issues []ValidationIssue
	for _, w := range words {
		if len(w.Tags) == 0 || !slices.Contains(inflectable, w.Part) {
			continue
		}
		if e.HasRuleFor(w.Part, w.Text, w.Tags) {
			continue
		}
		issues = append(issues, ValidationIssue{
			Word: w,
			Message: fmt.Sprintf("no %s rule matches %q with tags %s",
				w.Part, w.Text, strings.Join(w.Tags, "")),
		})
	}
	return issues
}
