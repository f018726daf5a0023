// Package provider holds the generative-service boundaries: the remote and
// local fix providers and the optional analysis provider. The core talks to
// them over a fixed JSON wire shape and a fixed natural-language instruction
// protocol.
package provider

import (
	"context"
	"regexp"
	"strings"
)

// Kind identifies which provider produced a fix attempt
type Kind string

const (
	KindRemote        Kind = "remote"
	KindLocal         Kind = "local"
	KindDeterministic Kind = "deterministic"
)

// Status is the closed set of fix-attempt results
type Status int

const (
	StatusSuccess Status = iota
	StatusTransportFailure
	StatusValidationFailure
)

// Outcome is the result of one provider attempt. Text is set on success,
// Err on either failure variant.
type Outcome struct {
	Status Status
	Text   string
	Err    error
}

// Success wraps provider output text in a successful outcome
func Success(text string) Outcome {
	return Outcome{Status: StatusSuccess, Text: text}
}

// TransportFailure marks a network, timeout, non-success or empty-response failure
func TransportFailure(err error) Outcome {
	return Outcome{Status: StatusTransportFailure, Err: err}
}

// ValidationFailure marks output that was received but is not usable markup
func ValidationFailure(err error) Outcome {
	return Outcome{Status: StatusValidationFailure, Err: err}
}

// FixRequest carries everything a generative provider needs to synthesize a
// corrected document.
type FixRequest struct {
	SourceText string
	RuleID     string
	Message    string
	Suggestion string
}

// FixProvider synthesizes a complete corrected document for one finding
type FixProvider interface {
	Kind() Kind
	Fix(ctx context.Context, req FixRequest) Outcome
}

var fenceRe = regexp.MustCompile("(?s)^```[a-zA-Z]*[ \t]*\n(.*?)\n?```[ \t\n]*$")

// Sanitize strips the wrappers generative providers tend to add around
// markup: surrounding whitespace, code fences, an echoed prompt prefix, and
// leading explanatory prose before the first tag delimiter.
func Sanitize(s string) string {
	s = strings.TrimSpace(s)
	if m := fenceRe.FindStringSubmatch(s); m != nil {
		s = strings.TrimSpace(m[1])
	}
	s = strings.TrimSpace(strings.TrimPrefix(s, "fix wcag:"))
	if i := strings.Index(s, "<"); i > 0 {
		s = s[i:]
	}
	return s
}

// Validate reports whether sanitized provider output is acceptable as a fix:
// non-empty and containing at least one markup tag delimiter.
func Validate(s string) bool {
	return s != "" && strings.Contains(s, "<") && strings.Contains(s, ">")
}
