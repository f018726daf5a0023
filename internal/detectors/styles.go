package detectors

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/LafuenteColoradoJose/a11y-audit-ai/internal/types"
)

// Detectors over style text. They scan the raw source, so they see inline
// style attributes and style blocks alike.

var outlineSuppressedRe = regexp.MustCompile(`(?i)outline\s*:\s*(none|0)\b`)

// checkFocusOutline triggers once per input when an outline declaration with
// value none or 0 appears anywhere in style text.
func checkFocusOutline(text string) []types.Finding {
	m := outlineSuppressedRe.FindString(text)
	if m == "" {
		return nil
	}

	return []types.Finding{newFinding(
		RuleFocusOutline,
		types.SeverityHigh,
		fmt.Sprintf("Focus outline suppressed with %q", m),
		"Keep a visible focus indicator; restyle the outline instead of removing it",
	)}
}

var colorDeclRe = regexp.MustCompile(`(?i)\b(color|background-color|background|border-color|outline-color|fill|stroke)\s*:\s*([^;"'}<]+)`)

var (
	hexColorRe  = regexp.MustCompile(`^#[0-9a-fA-F]{3,8}$`)
	funcColorRe = regexp.MustCompile(`(?i)^(rgb|rgba|hsl|hsla)\(`)
)

// adaptiveColorKeywords never count as hardcoded: they adapt to the user's
// theme or inherit from it.
var adaptiveColorKeywords = map[string]bool{
	"auto":         true,
	"currentcolor": true,
	"inherit":      true,
	"initial":      true,
	"none":         true,
	"revert":       true,
	"transparent":  true,
	"unset":        true,
}

var namedColors = map[string]bool{
	"black":   true,
	"blue":    true,
	"brown":   true,
	"cyan":    true,
	"gray":    true,
	"green":   true,
	"grey":    true,
	"magenta": true,
	"orange":  true,
	"pink":    true,
	"purple":  true,
	"red":     true,
	"white":   true,
	"yellow":  true,
}

// maxColorFindings caps color-literal findings per pass so one large
// stylesheet cannot flood the results.
const maxColorFindings = 5

// checkColorLiterals finds color-bearing declarations whose value is a
// literal instead of a variable reference, deduplicated by literal value.
func checkColorLiterals(text string) []types.Finding {
	var findings []types.Finding
	seen := make(map[string]bool)

	for _, m := range colorDeclRe.FindAllStringSubmatch(text, -1) {
		if len(findings) >= maxColorFindings {
			break
		}
		value := strings.TrimSpace(m[2])
		if strings.Contains(value, "var(") {
			continue
		}
		lower := strings.ToLower(value)
		if adaptiveColorKeywords[lower] || seen[lower] {
			continue
		}
		if !hexColorRe.MatchString(value) && !funcColorRe.MatchString(value) && !namedColors[lower] {
			continue
		}
		seen[lower] = true
		findings = append(findings, newFinding(
			RuleColorLiteral,
			types.SeverityLow,
			fmt.Sprintf("Hardcoded color %q; use a theme variable instead", value),
			"Reference a CSS custom property so user themes and contrast modes apply",
		))
	}

	return findings
}

var fontSizePxRe = regexp.MustCompile(`(?i)font-size\s*:\s*([\d.]+px)`)

// checkAbsoluteFontSize finds font-size declarations using absolute pixels
func checkAbsoluteFontSize(text string) []types.Finding {
	var findings []types.Finding

	for _, m := range fontSizePxRe.FindAllStringSubmatch(text, -1) {
		findings = append(findings, newFinding(
			RuleFontSizeAbsolute,
			types.SeverityLow,
			fmt.Sprintf("Absolute font size %q prevents user resizing", m[1]),
			"Use relative units such as rem or em",
		))
	}

	return findings
}

var justifiedRe = regexp.MustCompile(`(?i)text-align\s*:\s*justify`)

// checkJustifiedText finds text-align: justify declarations
func checkJustifiedText(text string) []types.Finding {
	var findings []types.Finding

	for range justifiedRe.FindAllString(text, -1) {
		findings = append(findings, newFinding(
			RuleTextJustified,
			types.SeverityLow,
			"Justified text creates uneven word spacing that harms readability",
			"Use left-aligned text for running copy",
		))
	}

	return findings
}
