package markup

import (
	"regexp"
	"strings"
)

// Tag represents a single markup tag found in raw source text. The scanner
// works on raw text only; no document tree is ever built.
type Tag struct {
	Name        string // lowercased tag name
	Attrs       string // raw attribute text between the name and the closing delimiter
	Raw         string // full tag text including delimiters
	Start       int    // byte offset of '<' in the source
	End         int    // byte offset just past '>'
	Closing     bool   // true for </tag>
	SelfClosing bool   // true for <tag ... />
}

var tagRe = regexp.MustCompile(`<(/?)([a-zA-Z][a-zA-Z0-9-]*)((?:"[^"]*"|'[^']*'|[^>"'])*)>`)

// Scan finds every tag in the source text, in document order.
func Scan(text string) []Tag {
	var tags []Tag

	for _, m := range tagRe.FindAllStringSubmatchIndex(text, -1) {
		raw := text[m[0]:m[1]]
		closing := m[3] > m[2]
		attrs := text[m[6]:m[7]]

		selfClosing := false
		if trimmed := strings.TrimRight(attrs, " \t\r\n"); strings.HasSuffix(trimmed, "/") {
			selfClosing = true
			attrs = strings.TrimSuffix(trimmed, "/")
		}

		tags = append(tags, Tag{
			Name:        strings.ToLower(text[m[4]:m[5]]),
			Attrs:       attrs,
			Raw:         raw,
			Start:       m[0],
			End:         m[1],
			Closing:     closing,
			SelfClosing: selfClosing,
		})
	}

	return tags
}

// Attr is a single parsed attribute. Start and End delimit the attribute's
// bytes within the attrs string, including its leading whitespace, so callers
// can splice attributes out without touching surrounding text.
type Attr struct {
	Name     string
	Value    string
	HasValue bool
	Start    int
	End      int
}

// ParseAttrs splits raw attribute text into individual attributes. Attribute
// names keep their original spelling (template bindings like "(click)" are
// names too); lookups are case-insensitive.
func ParseAttrs(attrs string) []Attr {
	var out []Attr
	i := 0
	n := len(attrs)

	for i < n {
		// Skip whitespace, keeping it inside the attribute's span
		wsStart := i
		for i < n && isSpace(attrs[i]) {
			i++
		}
		if i >= n {
			break
		}

		// Attribute name: everything up to whitespace or '='
		start := i
		for i < n && !isSpace(attrs[i]) && attrs[i] != '=' {
			i++
		}
		name := attrs[start:i]
		if name == "" {
			i++
			continue
		}

		// Skip whitespace before a possible '='
		j := i
		for j < n && isSpace(attrs[j]) {
			j++
		}
		if j >= n || attrs[j] != '=' {
			out = append(out, Attr{Name: name, Start: wsStart, End: i})
			continue
		}

		// Value follows '='
		j++
		for j < n && isSpace(attrs[j]) {
			j++
		}
		if j < n && (attrs[j] == '"' || attrs[j] == '\'') {
			quote := attrs[j]
			j++
			vStart := j
			for j < n && attrs[j] != quote {
				j++
			}
			value := attrs[vStart:j]
			if j < n {
				j++
			}
			out = append(out, Attr{Name: name, Value: value, HasValue: true, Start: wsStart, End: j})
		} else {
			vStart := j
			for j < n && !isSpace(attrs[j]) {
				j++
			}
			out = append(out, Attr{Name: name, Value: attrs[vStart:j], HasValue: true, Start: wsStart, End: j})
		}
		i = j
	}

	return out
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r'
}

// AttrValue returns the value of the named attribute, case-insensitively.
// The second result is false when the attribute is absent entirely; a present
// attribute without a value yields ("", true).
func AttrValue(attrs, name string) (string, bool) {
	for _, a := range ParseAttrs(attrs) {
		if strings.EqualFold(a.Name, name) {
			return a.Value, true
		}
	}
	return "", false
}

// HasAttr reports whether the named attribute is present.
func HasAttr(attrs, name string) bool {
	_, ok := AttrValue(attrs, name)
	return ok
}

// HasAnyAttr reports whether any of the named attributes is present.
func HasAnyAttr(attrs string, names ...string) bool {
	for _, n := range names {
		if HasAttr(attrs, n) {
			return true
		}
	}
	return false
}

var spacesRe = regexp.MustCompile(`[ \t]{2,}`)

// NormalizeTag cleans up a tag's text after attribute surgery: collapses
// repeated spaces and removes stray space before the closing delimiter.
func NormalizeTag(raw string) string {
	raw = spacesRe.ReplaceAllString(raw, " ")
	raw = strings.ReplaceAll(raw, " >", ">")
	raw = strings.ReplaceAll(raw, " />", "/>")
	return raw
}

// RemoveAttr deletes every occurrence of the named attribute from raw
// attribute text, splicing out only the attribute's own bytes. Text inside
// other attributes' values is never touched.
func RemoveAttr(attrs, name string) string {
	for {
		removed := false
		for _, a := range ParseAttrs(attrs) {
			if strings.EqualFold(a.Name, name) {
				attrs = attrs[:a.Start] + attrs[a.End:]
				removed = true
				break
			}
		}
		if !removed {
			return attrs
		}
	}
}

// CloseIndex returns the index in tags of the closing tag matching the
// opening tag at tags[idx], or -1 when the element is never closed.
func CloseIndex(tags []Tag, idx int) int {
	open := tags[idx]
	depth := 0
	for j := idx + 1; j < len(tags); j++ {
		t := tags[j]
		if t.Name != open.Name {
			continue
		}
		if t.Closing {
			if depth == 0 {
				return j
			}
			depth--
		} else if !t.SelfClosing {
			depth++
		}
	}
	return -1
}

// CloseOffset returns the byte offset just past the matching closing tag of
// the opening tag at tags[idx], or -1 when the element is never closed.
func CloseOffset(tags []Tag, idx int) int {
	if j := CloseIndex(tags, idx); j >= 0 {
		return tags[j].End
	}
	return -1
}

// ElementSpan returns the text from an opening tag through its matching
// closing tag, or through the end of the document when the element is never
// closed.
func ElementSpan(text string, tags []Tag, idx int) string {
	end := CloseOffset(tags, idx)
	if end < 0 {
		return text[tags[idx].Start:]
	}
	return text[tags[idx].Start:end]
}

var innerTagRe = regexp.MustCompile(`<[^>]*>`)

// StripTags removes every tag from a text fragment, leaving inner text only.
func StripTags(s string) string {
	return innerTagRe.ReplaceAllString(s, "")
}
