package detectors

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/LafuenteColoradoJose/a11y-audit-ai/internal/markup"
	"github.com/LafuenteColoradoJose/a11y-audit-ai/internal/types"
)

// checkImageAlt finds img elements without an alt attribute
func checkImageAlt(text string) []types.Finding {
	var findings []types.Finding

	for _, tag := range markup.Scan(text) {
		if tag.Closing || tag.Name != "img" {
			continue
		}
		if markup.HasAttr(tag.Attrs, "alt") {
			continue
		}
		findings = append(findings, newFinding(
			RuleImageAlt,
			types.SeverityHigh,
			"<img> element is missing an alt attribute",
			"Add an alt attribute describing the image, or alt=\"\" if it is decorative",
		))
	}

	return findings
}

// checkRedundantRole finds elements that restate their implicit ARIA role.
// Triggers once per offending element.
func checkRedundantRole(text string) []types.Finding {
	var findings []types.Finding

	for _, tag := range markup.Scan(text) {
		if tag.Closing {
			continue
		}
		implicit, ok := ImplicitRoles[tag.Name]
		if !ok {
			continue
		}
		role, present := markup.AttrValue(tag.Attrs, "role")
		if !present || !strings.EqualFold(strings.TrimSpace(role), implicit) {
			continue
		}
		findings = append(findings, newFinding(
			RuleRedundantRole,
			types.SeverityLow,
			fmt.Sprintf("Redundant role %q on <%s> element", strings.TrimSpace(role), tag.Name),
			"Remove the role attribute; the element already has this role implicitly",
		))
	}

	return findings
}

// checkPositiveTabindex finds elements whose tabindex is a positive integer.
// Zero and negative values are exempt.
func checkPositiveTabindex(text string) []types.Finding {
	var findings []types.Finding

	for _, tag := range markup.Scan(text) {
		if tag.Closing {
			continue
		}
		val, present := markup.AttrValue(tag.Attrs, "tabindex")
		if !present {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(val))
		if err != nil || n < 1 {
			continue
		}
		findings = append(findings, newFinding(
			RuleTabindexPositive,
			types.SeverityMedium,
			fmt.Sprintf("Positive tabindex %q disrupts the natural focus order", strings.TrimSpace(val)),
			"Use tabindex=\"0\" so the element is focusable in document order",
		))
	}

	return findings
}

// checkSkipLink triggers exactly once per input when a page-level landmark
// wrapper is present but no skip anchor exists anywhere in the text.
func checkSkipLink(text string) []types.Finding {
	hasLandmark := false
	for _, tag := range markup.Scan(text) {
		if tag.Closing {
			continue
		}
		if tag.Name == "header" || tag.Name == "nav" || tag.Name == "main" {
			hasLandmark = true
			break
		}
	}
	if !hasLandmark || hasSkipAnchor(text) {
		return nil
	}

	return []types.Finding{newFinding(
		RuleSkipLink,
		types.SeverityMedium,
		"Page defines landmark regions but no skip link",
		"Add a skip link as the first focusable element so keyboard users can bypass repeated content",
	)}
}

// checkAutocomplete finds inputs that collect personal data but lack an
// autocomplete attribute. One finding per offending input.
func checkAutocomplete(text string) []types.Finding {
	var findings []types.Finding

	for _, tag := range markup.Scan(text) {
		if tag.Closing || tag.Name != "input" {
			continue
		}
		if markup.HasAttr(tag.Attrs, "autocomplete") {
			continue
		}

		typ, _ := markup.AttrValue(tag.Attrs, "type")
		typ = strings.ToLower(strings.TrimSpace(typ))
		name, _ := markup.AttrValue(tag.Attrs, "name")
		name = strings.ToLower(strings.TrimSpace(name))

		switch {
		case SensitiveInputTypes[typ]:
			findings = append(findings, newFinding(
				RuleAutocomplete,
				types.SeverityMedium,
				fmt.Sprintf("Input of type %q is missing an autocomplete attribute", typ),
				"Add an autocomplete attribute so browsers can assist with filling personal data",
			))
		case PIIFieldNames[name]:
			findings = append(findings, newFinding(
				RuleAutocomplete,
				types.SeverityMedium,
				fmt.Sprintf("Input named %q looks like a personal-data field but has no autocomplete attribute", name),
				"Add an autocomplete attribute so browsers can assist with filling personal data",
			))
		}
	}

	return findings
}

var captionTrackRe = regexp.MustCompile(`(?i)<track\b[^>]*kind\s*=\s*["']?(captions|subtitles)`)

// checkVideoCaptions fires once per video element whose span contains no
// caption or subtitle track.
func checkVideoCaptions(text string) []types.Finding {
	var findings []types.Finding

	tags := markup.Scan(text)
	for i, tag := range tags {
		if tag.Closing || tag.Name != "video" {
			continue
		}
		span := markup.ElementSpan(text, tags, i)
		if captionTrackRe.MatchString(span) {
			continue
		}
		findings = append(findings, newFinding(
			RuleVideoCaptions,
			types.SeverityHigh,
			"<video> element has no captions track",
			"Add a <track kind=\"captions\"> child so deaf and hard-of-hearing users can follow the audio",
		))
	}

	return findings
}

// checkAudioTranscript is document-scoped: it fires at most once per input,
// when an audio element is present and the word "transcript" appears nowhere
// in the whole document.
func checkAudioTranscript(text string) []types.Finding {
	hasAudio := false
	for _, tag := range markup.Scan(text) {
		if !tag.Closing && tag.Name == "audio" {
			hasAudio = true
			break
		}
	}
	if !hasAudio || strings.Contains(strings.ToLower(text), "transcript") {
		return nil
	}

	return []types.Finding{newFinding(
		RuleAudioTranscript,
		types.SeverityMedium,
		"Audio content has no accompanying transcript",
		"Provide a text transcript near the audio element",
	)}
}

// checkAutoplay finds video and audio elements carrying an autoplay attribute
func checkAutoplay(text string) []types.Finding {
	var findings []types.Finding

	for _, tag := range markup.Scan(text) {
		if tag.Closing || (tag.Name != "video" && tag.Name != "audio") {
			continue
		}
		if !markup.HasAttr(tag.Attrs, "autoplay") {
			continue
		}
		findings = append(findings, newFinding(
			RuleAutoplay,
			types.SeverityMedium,
			fmt.Sprintf("<%s> element autoplays media", tag.Name),
			"Remove the autoplay attribute and let users start playback themselves",
		))
	}

	return findings
}

// checkMouseOnly finds non-natively-interactive elements with a click handler
// but no paired keyboard handler.
func checkMouseOnly(text string) []types.Finding {
	var findings []types.Finding

	for _, tag := range markup.Scan(text) {
		if tag.Closing || interactiveTags[tag.Name] {
			continue
		}
		if !hasClickHandler(tag.Attrs) || hasKeyHandler(tag.Attrs) {
			continue
		}
		findings = append(findings, newFinding(
			RuleMouseOnly,
			types.SeverityHigh,
			fmt.Sprintf("<%s> element handles click events without a keyboard equivalent", tag.Name),
			"Add a keydown or keyup handler, or use a native interactive element",
		))
	}

	return findings
}

var anchorRe = regexp.MustCompile(`(?is)<a\b((?:"[^"]*"|'[^']*'|[^>"'])*)>(.*?)</a>`)

// checkAmbiguousLinkText finds anchors whose inner text matches a fixed
// ambiguous-phrase set.
func checkAmbiguousLinkText(text string) []types.Finding {
	var findings []types.Finding

	for _, m := range anchorRe.FindAllStringSubmatch(text, -1) {
		inner := strings.TrimSpace(markup.StripTags(m[2]))
		if !ambiguousLinkPhrases[strings.ToLower(inner)] {
			continue
		}
		findings = append(findings, newFinding(
			RuleAmbiguousLink,
			types.SeverityMedium,
			fmt.Sprintf("Ambiguous link text %q", inner),
			"Describe the link destination in the link text itself",
		))
	}

	return findings
}
