package grammar

import (
	"errors"
	"fmt"
)

// ErrDomain is matched by every error caused by a Form that lacks a
// required feature or carries a value outside its enumeration.
var ErrDomain = errors.New("grammar: invalid form")

// FormError describes a rejected Form field.
type FormError struct {
	Field  string
	Value  any
	Reason string
}

func (e *FormError) Error() string {
	if e.Value == nil {
		return fmt.Sprintf("grammar: %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("grammar: %s %v: %s", e.Field, e.Value, e.Reason)
}

// Unwrap lets callers test with errors.Is(err, ErrDomain).
func (e *FormError) Unwrap() error {
	return ErrDomain
}

func missing(field string) error {
	return &FormError{Field: field, Reason: "has to be passed"}
}

func invalid(field string, v any) error {
	return &FormError{Field: field, Value: v, Reason: "out of range"}
}

// LoadIssue is a problem found on one line of a rule or lexicon file.
// Issues never stop loading; the line is skipped (or, for warnings,
// loaded anyway).
type LoadIssue struct {
	Source  string
	Line    int
	Text    string
	Err     error
	Warning bool
}

func (i LoadIssue) Error() string {
	kind := "error"
	if i.Warning {
		kind = "warning"
	}
	return fmt.Sprintf("%s:%d:%s: %v", i.Source, i.Line, kind, i.Err)
}

func (i LoadIssue) Unwrap() error {
	return i.Err
}

// LoadReport summarises a load pass.
type LoadReport struct {
	Source string
	Lines  int
	Loaded int
	Issues []LoadIssue
}

// Errors returns the issues that caused a line to be skipped.
func (r *LoadReport) Errors() []LoadIssue {
	var out []LoadIssue
	for _, i := range r.Issues {
		if !i.Warning {
			out = append(out, i)
		}
	}
	return out
}

// Warnings returns the issues that did not prevent loading.
func (r *LoadReport) Warnings() []LoadIssue {
	var out []LoadIssue
	for _, i := range r.Issues {
		if i.Warning {
			out = append(out, i)
		}
	}
	return out
}
