package detectors

import (
	"go.uber.org/zap"

	"github.com/LafuenteColoradoJose/a11y-audit-ai/internal/config"
	"github.com/LafuenteColoradoJose/a11y-audit-ai/internal/types"
)

// Detector defines a single text-pattern accessibility check
type Detector struct {
	ID          string
	Description string
	Severity    types.Severity
	Disabled    bool
	Check       func(text string) []types.Finding
}

// Set manages and executes the pattern detectors
type Set struct {
	detectors []Detector
	log       *zap.SugaredLogger
}

// NewSet creates a detector set with the default detectors registered.
// A nil logger disables logging.
func NewSet(log *zap.SugaredLogger) *Set {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	set := &Set{
		detectors: []Detector{},
		log:       log,
	}

	set.registerDefaults()

	return set
}

// Run executes every enabled detector against the source text. A failing
// detector is isolated: it contributes zero findings and never prevents the
// remaining detectors from running.
func (s *Set) Run(text string) []types.Finding {
	var findings []types.Finding

	for _, d := range s.detectors {
		if d.Disabled {
			continue
		}
		results := s.runOne(d, text)
		// Override severity only when a set-level severity override is active
		if d.Severity != "" {
			for i := range results {
				results[i].Severity = d.Severity
			}
		}
		findings = append(findings, results...)
	}

	return findings
}

func (s *Set) runOne(d Detector, text string) (findings []types.Finding) {
	defer func() {
		if r := recover(); r != nil {
			s.log.Warnw("detector panicked", "detector", d.ID, "error", r)
			findings = nil
		}
	}()
	return d.Check(text)
}

// ApplyConfig applies per-detector overrides from the configuration
func (s *Set) ApplyConfig(cfg *config.Config) {
	for i := range s.detectors {
		d := &s.detectors[i]
		if dc, ok := cfg.Detectors[d.ID]; ok {
			if dc.Disabled {
				d.Disabled = true
			}
			if dc.Severity != "" {
				d.Severity = types.Severity(dc.Severity)
			}
		}
	}
}

// registerDefaults registers the built-in pattern detectors
func (s *Set) registerDefaults() {
	// Structural checks the conformance engine cannot see on raw template text
	s.register(RuleImageAlt, "Images must have an alt attribute", checkImageAlt)
	s.register(RuleRedundantRole, "Elements should not restate their implicit ARIA role", checkRedundantRole)
	s.register(RuleTabindexPositive, "Positive tabindex values disrupt focus order", checkPositiveTabindex)
	s.register(RuleSkipLink, "Pages with landmarks need a skip link", checkSkipLink)
	s.register(RuleAutocomplete, "Personal-data fields need an autocomplete attribute", checkAutocomplete)
	s.register(RuleVideoCaptions, "Video elements need a captions track", checkVideoCaptions)
	s.register(RuleAudioTranscript, "Audio content needs a transcript", checkAudioTranscript)
	s.register(RuleAutoplay, "Media must not autoplay", checkAutoplay)
	s.register(RuleMouseOnly, "Click handlers need keyboard equivalents", checkMouseOnly)
	s.register(RuleAmbiguousLink, "Link text must describe the destination", checkAmbiguousLinkText)

	// Style-text checks, inline or block
	s.register(RuleFocusOutline, "Focus outlines must stay visible", checkFocusOutline)
	s.register(RuleColorLiteral, "Colors should come from theme variables", checkColorLiterals)
	s.register(RuleFontSizeAbsolute, "Font sizes should use relative units", checkAbsoluteFontSize)
	s.register(RuleTextJustified, "Justified text harms readability", checkJustifiedText)
}

// register is a helper to register detectors. The empty severity means the
// detector assigns per-finding severities itself.
func (s *Set) register(id, description string, check func(string) []types.Finding) {
	s.detectors = append(s.detectors, Detector{
		ID:          id,
		Description: description,
		Check:       check,
	})
}

// newFinding is a helper to create a Finding with consistent formatting. The
// aggregator assigns ids when merging.
func newFinding(ruleID string, severity types.Severity, message, suggestion string) types.Finding {
	return types.Finding{
		RuleID:     ruleID,
		Severity:   severity,
		Message:    message,
		Suggestion: suggestion,
	}
}
