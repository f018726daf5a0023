// Package conformance defines the boundary to the external standards-
// conformance engine, which evaluates a document fragment against a rule-tag
// filter and reports violations with node references, impact and help text.
package conformance

import "context"

// Level selects the WCAG conformance level to evaluate against
type Level string

const (
	LevelA   Level = "A"
	LevelAA  Level = "AA"
	LevelAAA Level = "AAA"
)

// Tags returns the cumulative rule-tag filter for the level. AA adds the
// broader best-practice set on top of A; AAA adds its own set on top of AA.
func (l Level) Tags() []string {
	tags := []string{"wcag2a"}
	if l == LevelAA || l == LevelAAA {
		tags = append(tags, "wcag2aa", "best-practice")
	}
	if l == LevelAAA {
		tags = append(tags, "wcag2aaa")
	}
	return tags
}

// NodeResult is one rule violation reported for a matched node
type NodeResult struct {
	RuleID  string `json:"id"`
	Impact  string `json:"impact"`
	Help    string `json:"help"`
	HelpURL string `json:"helpUrl"`
	HTML    string `json:"html"`
}

// Report holds the two ordered result lists of one evaluation
type Report struct {
	Violations []NodeResult `json:"violations"`
	Incomplete []NodeResult `json:"incomplete"`
}

// Engine evaluates a document fragment against a conformance level. The
// evaluation context is created fresh per call and torn down afterward; no
// state survives between calls.
type Engine interface {
	Evaluate(ctx context.Context, fragment string, level Level) (*Report, error)
}
