package detectors

import (
	"regexp"
	"strings"

	"github.com/LafuenteColoradoJose/a11y-audit-ai/internal/markup"
)

// Helper tables and functions shared by the detectors and the rewrite rules

// ImplicitRoles maps tag names to the ARIA role they already carry. Declaring
// the same role explicitly is redundant.
var ImplicitRoles = map[string]string{
	"a":      "link",
	"aside":  "complementary",
	"button": "button",
	"footer": "contentinfo",
	"form":   "form",
	"h1":     "heading",
	"h2":     "heading",
	"h3":     "heading",
	"h4":     "heading",
	"h5":     "heading",
	"h6":     "heading",
	"header": "banner",
	"img":    "img",
	"li":     "listitem",
	"main":   "main",
	"nav":    "navigation",
	"ol":     "list",
	"ul":     "list",
}

// interactiveTags are natively keyboard-operable elements.
var interactiveTags = map[string]bool{
	"a":        true,
	"button":   true,
	"input":    true,
	"option":   true,
	"select":   true,
	"summary":  true,
	"textarea": true,
}

// SensitiveInputTypes are input types that collect personal data.
var SensitiveInputTypes = map[string]bool{
	"email":    true,
	"password": true,
	"tel":      true,
}

// PIIFieldNames are input names that suggest a personal-data field.
var PIIFieldNames = map[string]bool{
	"address":     true,
	"card-number": true,
	"cardnumber":  true,
	"cc-number":   true,
	"city":        true,
	"country":     true,
	"email":       true,
	"firstname":   true,
	"fullname":    true,
	"lastname":    true,
	"name":        true,
	"phone":       true,
	"postal":      true,
	"postcode":    true,
	"street":      true,
	"surname":     true,
	"tel":         true,
	"telephone":   true,
	"username":    true,
	"zip":         true,
	"zipcode":     true,
}

// ambiguousLinkPhrases are link texts that say nothing about the destination.
var ambiguousLinkPhrases = map[string]bool{
	"click":      true,
	"click here": true,
	"here":       true,
	"learn more": true,
	"link":       true,
	"more":       true,
	"read more":  true,
	"this":       true,
}

// clickHandlerNames cover plain DOM handlers and template-syntax bindings.
var clickHandlerNames = map[string]bool{
	"(click)":    true,
	"@click":     true,
	"ng-click":   true,
	"onclick":    true,
	"v-on:click": true,
}

var skipAnchorRe = regexp.MustCompile(`(?i)href\s*=\s*["']#[^"']*skip`)

// hasSkipAnchor reports whether an anchor targeting an in-page fragment whose
// identifier contains the word "skip" exists anywhere in the text.
func hasSkipAnchor(text string) bool {
	return skipAnchorRe.MatchString(text)
}

// hasKeyHandler reports whether the attribute text carries any keyboard
// handler. Matching on the attribute name covers template-syntax modifiers
// such as (keydown.enter).
func hasKeyHandler(attrs string) bool {
	for _, a := range markup.ParseAttrs(attrs) {
		name := strings.ToLower(a.Name)
		if strings.Contains(name, "keydown") || strings.Contains(name, "keyup") || strings.Contains(name, "keypress") {
			return true
		}
	}
	return false
}

// hasClickHandler reports whether the attribute text carries a click handler.
func hasClickHandler(attrs string) bool {
	for _, a := range markup.ParseAttrs(attrs) {
		if clickHandlerNames[strings.ToLower(a.Name)] {
			return true
		}
	}
	return false
}
