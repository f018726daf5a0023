// Package rewrite holds the deterministic rewrite rules: pure text-to-text
// transformations that serve as the terminal, always-succeeds fallback for a
// detected issue. Every rule is idempotent on already-fixed input and returns
// its input unchanged when the trigger pattern is absent.
package rewrite

import (
	"fmt"
	"sort"

	"github.com/LafuenteColoradoJose/a11y-audit-ai/internal/detectors"
)

// Rule defines a deterministic remediation keyed by one or more rule ids
type Rule struct {
	ID        string   // canonical rule id
	MatchIDs  []string // aliases routing to this rule
	Transform func(text string) string
}

// Table holds the rewrite rules with an alias index. At most one rule owns a
// given rule id; registering a conflicting alias is a programmer error.
type Table struct {
	rules []Rule
	index map[string]int
}

// NewTable creates a rule table with the default rules registered
func NewTable() *Table {
	t := &Table{
		rules: []Rule{},
		index: make(map[string]int),
	}

	t.registerDefaults()

	return t
}

// Has reports whether a deterministic rule exists for the given rule id
func (t *Table) Has(ruleID string) bool {
	_, ok := t.index[ruleID]
	return ok
}

// Apply runs the rule matching ruleID over the text. An unmatched rule id is
// a no-op: the input is returned unchanged.
func (t *Table) Apply(ruleID, text string) string {
	i, ok := t.index[ruleID]
	if !ok {
		return text
	}
	return t.rules[i].Transform(text)
}

// RuleIDs returns every id the table matches on, sorted.
func (t *Table) RuleIDs() []string {
	ids := make([]string, 0, len(t.index))
	for id := range t.index {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (t *Table) registerDefaults() {
	t.register(detectors.RuleImageAlt, []string{"image-alt", "input-image-alt", "missing-alt"}, fixMissingAlt)
	t.register("accessible-name-missing", []string{"button-name", "input-button-name", "select-name", "label"}, fixAccessibleName)
	t.register("non-semantic-button", []string{"role-button"}, fixRoleButton)
	t.register("aria-hidden-focusable", []string{"aria-hidden-focus"}, fixAriaHidden)
	t.register(detectors.RuleTabindexPositive, []string{"tabindex"}, fixPositiveTabindex)
	t.register(detectors.RuleSkipLink, []string{"skip-link", "bypass"}, fixSkipLink)
	t.register(detectors.RuleFocusOutline, []string{"focus-outline"}, fixFocusOutline)
	t.register(detectors.RuleAutoplay, []string{"autoplay", "no-autoplay"}, fixAutoplay)
	t.register(detectors.RuleVideoCaptions, []string{"video-caption"}, fixVideoCaptions)
	t.register(detectors.RuleAudioTranscript, []string{"audio-transcript"}, fixAudioTranscript)
	t.register(detectors.RuleRedundantRole, []string{"aria-redundant-role"}, fixRedundantRole)
	t.register("nested-interactive", nil, fixNestedInteractive)
	t.register("heading-tab-role", []string{"aria-required-parent", "invalid-tab-structure"}, fixHeadingTab)
	t.register(detectors.RuleAutocomplete, []string{"autocomplete-valid"}, fixAutocomplete)
}

func (t *Table) register(id string, aliases []string, transform func(string) string) {
	idx := len(t.rules)
	t.rules = append(t.rules, Rule{
		ID:        id,
		MatchIDs:  append([]string{id}, aliases...),
		Transform: transform,
	})
	for _, m := range append([]string{id}, aliases...) {
		if prev, ok := t.index[m]; ok {
			panic(fmt.Sprintf("rewrite: rule id %q already owned by %q", m, t.rules[prev].ID))
		}
		t.index[m] = idx
	}
}
