package types

import "strings"

// Severity levels for findings, ordered low < medium < high.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Rank returns the ordering position of a severity (low=0, medium=1, high=2).
// Unknown values rank as low.
func (s Severity) Rank() int {
	switch s {
	case SeverityHigh:
		return 2
	case SeverityMedium:
		return 1
	default:
		return 0
	}
}

// AIRulePrefix namespaces rule ids of findings produced by the generative
// analysis provider. The fix resolver and fix-eligibility check use it to
// recognize AI-eligible findings.
const AIRulePrefix = "ai-"

// Finding represents a single detected accessibility issue
type Finding struct {
	ID         string   // unique within one analysis pass
	RuleID     string   // canonical rule identifier, never empty
	Severity   Severity // "low", "medium", "high"
	Message    string
	Suggestion string
}

// IsAISourced reports whether the finding's rule id carries the AI namespace marker.
func (f Finding) IsAISourced() bool {
	return strings.HasPrefix(f.RuleID, AIRulePrefix)
}

// CanonicalRuleID returns the rule id with the AI namespace marker removed.
func (f Finding) CanonicalRuleID() string {
	return strings.TrimPrefix(f.RuleID, AIRulePrefix)
}
