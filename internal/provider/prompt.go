package provider

import (
	"strings"

	"github.com/LafuenteColoradoJose/a11y-audit-ai/internal/types"
)

// fixProtocol is the fixed instruction preamble sent with every fix request.
const fixProtocol = "You are an accessibility remediation engine. " +
	"Return only the corrected markup for the full document, with no prose, " +
	"no explanations and no code fences. Apply the minimal change that " +
	"satisfies the specific rule."

// mandatoryInstructions carry rule-specific transformations the provider must
// apply rather than merely suggest.
var mandatoryInstructions = map[string]string{
	"tabindex-positive":      "Set the offending tabindex value to exactly 0.",
	"tabindex":               "Set the offending tabindex value to exactly 0.",
	"media-autoplay":         "Remove the autoplay attribute entirely.",
	"autoplay":               "Remove the autoplay attribute entirely.",
	"no-autoplay":            "Remove the autoplay attribute entirely.",
	"video-captions-missing": `Insert a <track kind="captions"> child element into the video; do not merely suggest one.`,
	"video-caption":          `Insert a <track kind="captions"> child element into the video; do not merely suggest one.`,
}

// Instructions builds the natural-language protocol text for a rule id,
// appending the rule's mandatory transformation when one exists.
func Instructions(ruleID string) string {
	id := strings.TrimPrefix(ruleID, types.AIRulePrefix)
	if extra, ok := mandatoryInstructions[id]; ok {
		return fixProtocol + " " + extra
	}
	return fixProtocol
}
