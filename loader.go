package grammar

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
)

// emptyColumn stands for the empty string in the remove and add columns.
const emptyColumn = "0"

type loadOptions struct {
	logger *log.Logger
	source string
}

// LoadOption customises ReadRules, LoadRules and ReadLexicon.
type LoadOption func(*loadOptions)

// WithLogger reports every skipped line and warning through l.
func WithLogger(l *log.Logger) LoadOption {
	return func(o *loadOptions) { o.logger = l }
}

// WithSource names the input in issues (defaults to the file path, or
// "rules" for readers).
func WithSource(name string) LoadOption {
	return func(o *loadOptions) { o.source = name }
}

func newLoadOptions(defaultSource string, opts []LoadOption) loadOptions {
	o := loadOptions{source: defaultSource}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// report records an issue and logs it when a logger was given.
func (o loadOptions) report(rep *LoadReport, issue LoadIssue) {
	issue.Source = o.source
	rep.Issues = append(rep.Issues, issue)
	if o.logger == nil {
		return
	}
	if issue.Warning {
		o.logger.Warn("suspicious line", "source", issue.Source, "line", issue.Line, "error", issue.Err)
	} else {
		o.logger.Error("skipping line", "source", issue.Source, "line", issue.Line, "text", issue.Text, "error", issue.Err)
	}
}

// LoadRules reads a rule file from path.
func LoadRules(path string, opts ...LoadOption) (*RuleTable, *LoadReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadRules(f, append([]LoadOption{WithSource(path)}, opts...)...)
}

// ReadRules builds a RuleTable from rule-file text. Each line holds
//
//	<speech_part> <pattern_tag> <form_spec> <remove> <add> <find>[/<required_tag> ...]
//
// '#' starts a comment. Bad lines are reported in the LoadReport and
// skipped; only a read failure is returned as an error.
func ReadRules(r io.Reader, opts ...LoadOption) (*RuleTable, *LoadReport, error) {
	o := newLoadOptions("rules", opts)
	table := NewRuleTable()
	rep := &LoadReport{Source: o.source}

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

		n, dup, err := parseRuleLine(table, Normalize(line))
		if err != nil {
			o.report(rep, LoadIssue{Line: lineNo, Text: raw, Err: err})
			continue
		}
		if dup {
			o.report(rep, LoadIssue{Line: lineNo, Text: raw, Err: errDuplicateForms, Warning: true})
		}
		rep.Loaded += n
	}
	if err := sc.Err(); err != nil {
		return nil, rep, fmt.Errorf("read %s: %w", o.source, err)
	}
	if o.logger != nil {
		o.logger.Debug("rules loaded", "source", o.source, "lines", rep.Lines, "rules", rep.Loaded, "issues", len(rep.Issues))
	}
	return table, rep, nil
}

var (
	errDuplicateForms = errors.New("duplicates in form spec")
	errColumns        = errors.New("wrong line: expected 6 columns")
)

// parseRuleLine adds the rules described by one line and returns how many
// table entries were created.
func parseRuleLine(table *RuleTable, line string) (int, bool, error) {
	cols := strings.Fields(line)
	if len(cols) < 6 {
		return 0, false, errColumns
	}
	partCol, pattern, formCol, remove, add := cols[0], cols[1], cols[2], cols[3], cols[4]

	// "find/req1 req2" may spill over into further columns.
	condition := strings.Join(cols[5:], " ")
	find, requiredCol, hasRequired := strings.Cut(condition, "/")
	if len(cols) > 6 && !hasRequired {
		return 0, false, errColumns
	}

	part, err := ParseSpeechPart(partCol)
	if err != nil {
		return 0, false, err
	}
	ids, dup, err := ParseFormSpec(formCol)
	if err != nil {
		return 0, false, err
	}
	if remove == emptyColumn {
		remove = ""
	}
	if add == emptyColumn {
		add = ""
	}
	required := []string{pattern}
	if hasRequired {
		required = append(required, strings.Fields(requiredCol)...)
	}

	// Compile once up front so a bad pattern rejects the whole line.
	if _, err := NewRule(remove, add, find, required...); err != nil {
		return 0, false, err
	}
	for _, id := range ids {
		r, _ := NewRule(remove, add, find, required...)
		table.Add(part, id, r)
	}
	return len(ids), dup, nil
}
