package rewrite

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/LafuenteColoradoJose/a11y-audit-ai/internal/detectors"
	"github.com/LafuenteColoradoJose/a11y-audit-ai/internal/markup"
)

// Placeholder values injected by the rules
const (
	placeholderAlt     = `alt="Description needed"`
	placeholderName    = `aria-label="Accessible name needed"`
	skipLinkMarkup     = `<a class="skip-link" href="#skip-to-main">Skip to main content</a>`
	captionTrackMarkup = `<track kind="captions" src="captions.vtt" srclang="en" label="English">`
	transcriptMarkup   = `<details class="audio-transcript"><summary>Transcript</summary><p>Transcript not yet provided.</p></details>`
	visibleOutline     = "outline: auto"
)

// edit replaces the half-open span [start, end) with text
type edit struct {
	start, end int
	text       string
}

// applyEdits applies non-overlapping edits back to front so earlier offsets
// stay valid.
func applyEdits(text string, edits []edit) string {
	if len(edits) == 0 {
		return text
	}
	sort.SliceStable(edits, func(i, j int) bool {
		return edits[i].start > edits[j].start
	})
	for _, e := range edits {
		text = text[:e.start] + e.text + text[e.end:]
	}
	return text
}

var tabindexAttrRe = regexp.MustCompile(`(?i)(tabindex\s*=\s*["']?)(-?\d+)(["']?)`)

// rebuildTag reassembles an opening tag around modified attribute text,
// keeping the original name spelling.
func rebuildTag(tag markup.Tag, attrs string) string {
	head := tag.Raw[:1+len(tag.Name)]
	if tag.SelfClosing {
		return markup.NormalizeTag(head + attrs + "/>")
	}
	return markup.NormalizeTag(head + attrs + ">")
}

// fixMissingAlt injects a placeholder alt attribute into img elements lacking
// one. An existing alt, even empty, is never overwritten.
func fixMissingAlt(text string) string {
	var edits []edit
	for _, tag := range markup.Scan(text) {
		if tag.Closing || tag.Name != "img" {
			continue
		}
		if markup.HasAttr(tag.Attrs, "alt") {
			continue
		}
		pos := tag.Start + 1 + len(tag.Name)
		edits = append(edits, edit{pos, pos, " " + placeholderAlt})
	}
	return applyEdits(text, edits)
}

var accessibleNameTags = map[string]bool{
	"button":   true,
	"input":    true,
	"select":   true,
	"textarea": true,
}

// fixAccessibleName injects a placeholder aria-label into form controls that
// carry no label-equivalent attribute.
func fixAccessibleName(text string) string {
	var edits []edit
	for _, tag := range markup.Scan(text) {
		if tag.Closing || !accessibleNameTags[tag.Name] {
			continue
		}
		if markup.HasAnyAttr(tag.Attrs, "aria-label", "aria-labelledby", "title") {
			continue
		}
		pos := tag.Start + 1 + len(tag.Name)
		edits = append(edits, edit{pos, pos, " " + placeholderName})
	}
	return applyEdits(text, edits)
}

// fixRoleButton rewrites anchors, divs and spans carrying role="button" into
// native button elements. The role attribute is dropped, anchors lose their
// href, and everything else (event bindings and nested content included) is
// preserved verbatim through the element's real closing tag.
func fixRoleButton(text string) string {
	tags := markup.Scan(text)
	var edits []edit
	done := 0
	for i, tag := range tags {
		if tag.Closing || tag.SelfClosing || tag.Start < done {
			continue
		}
		if tag.Name != "a" && tag.Name != "div" && tag.Name != "span" {
			continue
		}
		role, ok := markup.AttrValue(tag.Attrs, "role")
		if !ok || !strings.EqualFold(strings.TrimSpace(role), "button") {
			continue
		}
		ci := markup.CloseIndex(tags, i)
		if ci < 0 {
			continue
		}
		attrs := markup.RemoveAttr(tag.Attrs, "role")
		if tag.Name == "a" {
			attrs = markup.RemoveAttr(attrs, "href")
		}
		open := markup.NormalizeTag(`<button type="button"` + attrs + ">")
		inner := text[tag.End:tags[ci].Start]
		edits = append(edits, edit{tag.Start, tags[ci].End, open + inner + "</button>"})
		done = tags[ci].End
	}
	return applyEdits(text, edits)
}

// fixAriaHidden strips aria-hidden="true" attributes
func fixAriaHidden(text string) string {
	var edits []edit
	for _, tag := range markup.Scan(text) {
		if tag.Closing {
			continue
		}
		v, ok := markup.AttrValue(tag.Attrs, "aria-hidden")
		if !ok || !strings.EqualFold(strings.TrimSpace(v), "true") {
			continue
		}
		edits = append(edits, edit{tag.Start, tag.End, rebuildTag(tag, markup.RemoveAttr(tag.Attrs, "aria-hidden"))})
	}
	return applyEdits(text, edits)
}

// fixPositiveTabindex rewrites positive tabindex values to zero. Zero and
// negative values are left untouched.
func fixPositiveTabindex(text string) string {
	var edits []edit
	for _, tag := range markup.Scan(text) {
		if tag.Closing {
			continue
		}
		v, ok := markup.AttrValue(tag.Attrs, "tabindex")
		if !ok {
			continue
		}
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n < 1 {
			continue
		}
		newRaw := tabindexAttrRe.ReplaceAllString(tag.Raw, "${1}0${3}")
		edits = append(edits, edit{tag.Start, tag.End, newRaw})
	}
	return applyEdits(text, edits)
}

var skipAnchorRe = regexp.MustCompile(`(?i)href\s*=\s*["']#[^"']*skip`)

// fixSkipLink inserts a skip-link anchor as the first child of the page-level
// landmark wrapper. No-op when a skip anchor already exists anywhere.
func fixSkipLink(text string) string {
	if skipAnchorRe.MatchString(text) {
		return text
	}

	tags := markup.Scan(text)
	wrapper := -1
	for i, tag := range tags {
		if tag.Closing || tag.SelfClosing {
			continue
		}
		if tag.Name == "header" || tag.Name == "nav" || tag.Name == "main" {
			wrapper = i
			break
		}
		if tag.Name == "body" && wrapper < 0 {
			wrapper = i
		}
	}
	if wrapper < 0 {
		return text
	}

	pos := tags[wrapper].End
	return text[:pos] + skipLinkMarkup + text[pos:]
}

var outlineSuppressedRe = regexp.MustCompile(`(?i)outline\s*:\s*(none|0)\b`)

// fixFocusOutline replaces outline-suppressing declarations with the platform
// default focus ring.
func fixFocusOutline(text string) string {
	return outlineSuppressedRe.ReplaceAllString(text, visibleOutline)
}

// fixAutoplay strips the autoplay attribute from video and audio elements,
// leaving sibling attributes intact.
func fixAutoplay(text string) string {
	var edits []edit
	for _, tag := range markup.Scan(text) {
		if tag.Closing || (tag.Name != "video" && tag.Name != "audio") {
			continue
		}
		if !markup.HasAttr(tag.Attrs, "autoplay") {
			continue
		}
		edits = append(edits, edit{tag.Start, tag.End, rebuildTag(tag, markup.RemoveAttr(tag.Attrs, "autoplay"))})
	}
	return applyEdits(text, edits)
}

var captionTrackRe = regexp.MustCompile(`(?i)<track\b[^>]*kind\s*=\s*["']?(captions|subtitles)`)

// fixVideoCaptions inserts a caption-track child immediately after the
// opening tag of each video element lacking one.
func fixVideoCaptions(text string) string {
	var edits []edit
	tags := markup.Scan(text)
	for i, tag := range tags {
		if tag.Closing || tag.Name != "video" {
			continue
		}
		if captionTrackRe.MatchString(markup.ElementSpan(text, tags, i)) {
			continue
		}
		edits = append(edits, edit{tag.End, tag.End, captionTrackMarkup})
	}
	return applyEdits(text, edits)
}

// fixAudioTranscript appends a collapsible placeholder transcript after the
// offending audio element. No-op when the document mentions a transcript
// anywhere, which also makes the rule idempotent.
func fixAudioTranscript(text string) string {
	if strings.Contains(strings.ToLower(text), "transcript") {
		return text
	}

	tags := markup.Scan(text)
	for i, tag := range tags {
		if tag.Closing || tag.Name != "audio" {
			continue
		}
		pos := markup.CloseOffset(tags, i)
		if pos < 0 {
			pos = tag.End
		}
		return text[:pos] + transcriptMarkup + text[pos:]
	}

	return text
}

// fixRedundantRole strips role attributes that exactly restate the tag's
// implicit role, then normalizes the resulting whitespace.
func fixRedundantRole(text string) string {
	var edits []edit
	for _, tag := range markup.Scan(text) {
		if tag.Closing {
			continue
		}
		implicit, ok := detectors.ImplicitRoles[tag.Name]
		if !ok {
			continue
		}
		role, present := markup.AttrValue(tag.Attrs, "role")
		if !present || !strings.EqualFold(strings.TrimSpace(role), implicit) {
			continue
		}
		edits = append(edits, edit{tag.Start, tag.End, rebuildTag(tag, markup.RemoveAttr(tag.Attrs, "role"))})
	}
	return applyEdits(text, edits)
}

// fixNestedInteractive demotes an interactive element that directly wraps
// another of the same kind to a neutral span, preserving its attributes and
// the nested content verbatim.
func fixNestedInteractive(text string) string {
	tags := markup.Scan(text)
	var edits []edit
	done := 0
	for i, tag := range tags {
		if tag.Closing || tag.SelfClosing || tag.Start < done {
			continue
		}
		if tag.Name != "button" && tag.Name != "a" {
			continue
		}
		ci := markup.CloseIndex(tags, i)
		if ci < 0 || i+1 >= len(tags) {
			continue
		}
		first := tags[i+1]
		if first.Closing || first.Name != tag.Name {
			continue
		}
		fc := markup.CloseIndex(tags, i+1)
		if fc < 0 || fc != ci-1 {
			continue
		}
		// Direct wrapping only: nothing but whitespace around the inner element
		if strings.TrimSpace(text[tag.End:first.Start]) != "" ||
			strings.TrimSpace(text[tags[fc].End:tags[ci].Start]) != "" {
			continue
		}
		inner := text[tag.End:tags[ci].Start]
		edits = append(edits, edit{tag.Start, tags[ci].End, markup.NormalizeTag("<span"+tag.Attrs+">") + inner + "</span>"})
		done = tags[ci].End
	}
	return applyEdits(text, edits)
}

var headingTags = map[string]bool{
	"h1": true,
	"h2": true,
	"h3": true,
	"h4": true,
	"h5": true,
	"h6": true,
}

var (
	roleTabRe     = regexp.MustCompile(`(?i)role\s*=\s*["']tab["']`)
	roleTablistRe = regexp.MustCompile(`(?i)role\s*=\s*["']tablist["']`)
)

// fixHeadingTab moves a tabpanel role off a heading onto a neutral wrapper,
// and wraps tab-role elements in a tablist when none exists.
func fixHeadingTab(text string) string {
	tags := markup.Scan(text)
	var edits []edit
	for i, tag := range tags {
		if tag.Closing || !headingTags[tag.Name] {
			continue
		}
		role, ok := markup.AttrValue(tag.Attrs, "role")
		if !ok || !strings.EqualFold(strings.TrimSpace(role), "tabpanel") {
			continue
		}
		ci := markup.CloseIndex(tags, i)
		if ci < 0 {
			continue
		}
		heading := markup.NormalizeTag("<"+tag.Name+markup.RemoveAttr(tag.Attrs, "role")+">") +
			text[tag.End:tags[ci].Start] + "</" + tag.Name + ">"
		edits = append(edits, edit{tag.Start, tags[ci].End, `<div role="tabpanel">` + heading + `</div>`})
	}
	text = applyEdits(text, edits)

	if roleTabRe.MatchString(text) && !roleTablistRe.MatchString(text) {
		tags := markup.Scan(text)
		first, last := -1, -1
		for i, tag := range tags {
			if tag.Closing {
				continue
			}
			role, ok := markup.AttrValue(tag.Attrs, "role")
			if !ok || !strings.EqualFold(strings.TrimSpace(role), "tab") {
				continue
			}
			if first < 0 {
				first = i
			}
			last = i
		}
		if first >= 0 {
			end := markup.CloseOffset(tags, last)
			if end < 0 {
				end = tags[last].End
			}
			start := tags[first].Start
			text = text[:start] + `<div role="tablist">` + text[start:end] + `</div>` + text[end:]
		}
	}

	return text
}

// fixAutocomplete injects an autocomplete attribute derived from the field's
// type and name into personal-data inputs lacking one.
func fixAutocomplete(text string) string {
	var edits []edit
	for _, tag := range markup.Scan(text) {
		if tag.Closing || tag.Name != "input" {
			continue
		}
		if markup.HasAttr(tag.Attrs, "autocomplete") {
			continue
		}
		typ, _ := markup.AttrValue(tag.Attrs, "type")
		name, _ := markup.AttrValue(tag.Attrs, "name")
		typ = strings.ToLower(strings.TrimSpace(typ))
		name = strings.ToLower(strings.TrimSpace(name))
		if !detectors.SensitiveInputTypes[typ] && !detectors.PIIFieldNames[name] {
			continue
		}
		pos := tag.Start + 1 + len(tag.Name)
		edits = append(edits, edit{pos, pos, fmt.Sprintf(" autocomplete=%q", autocompleteToken(typ, name))})
	}
	return applyEdits(text, edits)
}

// autocompleteToken derives the autocomplete value from type and name
func autocompleteToken(typ, name string) string {
	switch typ {
	case "email":
		return "email"
	case "tel":
		return "tel"
	case "password":
		return "current-password"
	}

	switch name {
	case "email":
		return "email"
	case "phone", "tel", "telephone":
		return "tel"
	case "name", "fullname":
		return "name"
	case "firstname":
		return "given-name"
	case "lastname", "surname":
		return "family-name"
	case "username":
		return "username"
	case "address", "street":
		return "street-address"
	case "city":
		return "address-level2"
	case "zip", "zipcode", "postal", "postcode":
		return "postal-code"
	case "country":
		return "country"
	case "cc-number", "cardnumber", "card-number":
		return "cc-number"
	}

	return "on"
}
