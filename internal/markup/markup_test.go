package markup

import (
	"strings"
	"testing"
)

func TestScan(t *testing.T) {
	tests := []struct {
		name string
		text string
		tags []Tag
	}{
		{
			name: "simple_pair",
			text: `<div>x</div>`,
			tags: []Tag{
				{Name: "div", Raw: "<div>", Start: 0, End: 5},
				{Name: "div", Raw: "</div>", Start: 6, End: 12, Closing: true},
			},
		},
		{
			name: "attributes_preserved",
			text: `<img src="logo.png">`,
			tags: []Tag{
				{Name: "img", Attrs: ` src="logo.png"`, Raw: `<img src="logo.png">`, Start: 0, End: 20},
			},
		},
		{
			name: "self_closing",
			text: `<br/>`,
			tags: []Tag{
				{Name: "br", Raw: "<br/>", Start: 0, End: 5, SelfClosing: true},
			},
		},
		{
			name: "quoted_delimiter",
			text: `<div title="a > b">x</div>`,
			tags: []Tag{
				{Name: "div", Attrs: ` title="a > b"`, Raw: `<div title="a > b">`, Start: 0, End: 19},
				{Name: "div", Raw: "</div>", Start: 20, End: 26, Closing: true},
			},
		},
		{
			name: "uppercase_name_lowered",
			text: `<IMG>`,
			tags: []Tag{
				{Name: "img", Raw: "<IMG>", Start: 0, End: 5},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Scan(tt.text)
			if len(got) != len(tt.tags) {
				t.Fatalf("expected %d tags, got %d: %+v", len(tt.tags), len(got), got)
			}
			for i, want := range tt.tags {
				if got[i] != want {
					t.Errorf("tag %d: expected %+v, got %+v", i, want, got[i])
				}
			}
		})
	}
}

func TestParseAttrs(t *testing.T) {
	tests := []struct {
		name  string
		attrs string
		want  []Attr
	}{
		{"empty", "", nil},
		{"bare", " disabled", []Attr{{Name: "disabled"}}},
		{"double_quoted", ` src="a.png"`, []Attr{{Name: "src", Value: "a.png", HasValue: true}}},
		{"single_quoted", ` role='button'`, []Attr{{Name: "role", Value: "button", HasValue: true}}},
		{"unquoted", ` tabindex=3`, []Attr{{Name: "tabindex", Value: "3", HasValue: true}}},
		{"template_binding", ` (click)="go()"`, []Attr{{Name: "(click)", Value: "go()", HasValue: true}}},
		{
			"mixed",
			` src="a" autoplay muted`,
			[]Attr{
				{Name: "src", Value: "a", HasValue: true},
				{Name: "autoplay"},
				{Name: "muted"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseAttrs(tt.attrs)
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d attrs, got %d: %+v", len(tt.want), len(got), got)
			}
			for i, want := range tt.want {
				if got[i].Name != want.Name || got[i].Value != want.Value || got[i].HasValue != want.HasValue {
					t.Errorf("attr %d: expected %+v, got %+v", i, want, got[i])
				}
			}
		})
	}
}

func TestParseAttrsSpans(t *testing.T) {
	attrs := ` src="a.png" autoplay muted`
	for _, a := range ParseAttrs(attrs) {
		if got := attrs[a.Start:a.End]; !strings.Contains(got, a.Name) {
			t.Errorf("span %q of attr %q does not cover its name", got, a.Name)
		}
	}
	parsed := ParseAttrs(attrs)
	if len(parsed) != 3 {
		t.Fatalf("expected 3 attrs, got %d", len(parsed))
	}
	if got := attrs[parsed[0].Start:parsed[0].End]; got != ` src="a.png"` {
		t.Errorf("unexpected span for valued attr: %q", got)
	}
	if got := attrs[parsed[1].Start:parsed[1].End]; got != ` autoplay` {
		t.Errorf("unexpected span for bare attr: %q", got)
	}
}

func TestRemoveAttr(t *testing.T) {
	tests := []struct {
		name  string
		attrs string
		attr  string
		want  string
	}{
		{"quoted", ` role="button" href="#"`, "role", ` href="#"`},
		{"bare", ` autoplay controls`, "autoplay", ` controls`},
		{"last", ` src="a" autoplay`, "autoplay", ` src="a"`},
		{"decoy_in_other_value", ` title="role = admin" role="img"`, "role", ` title="role = admin"`},
		{"absent", ` src="a.png"`, "alt", ` src="a.png"`},
		{"repeated", ` role="a" role="b"`, "role", ``},
		{"case_insensitive", ` ROLE='x' id="k"`, "role", ` id="k"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RemoveAttr(tt.attrs, tt.attr); got != tt.want {
				t.Errorf("RemoveAttr(%q, %q) = %q, want %q", tt.attrs, tt.attr, got, tt.want)
			}
		})
	}
}

func TestAttrValue(t *testing.T) {
	attrs := ` type="email" NAME='user' disabled`

	if v, ok := AttrValue(attrs, "type"); !ok || v != "email" {
		t.Errorf("expected (email, true), got (%q, %v)", v, ok)
	}
	if v, ok := AttrValue(attrs, "name"); !ok || v != "user" {
		t.Errorf("case-insensitive lookup failed: (%q, %v)", v, ok)
	}
	if v, ok := AttrValue(attrs, "disabled"); !ok || v != "" {
		t.Errorf("bare attribute: expected (\"\", true), got (%q, %v)", v, ok)
	}
	if _, ok := AttrValue(attrs, "href"); ok {
		t.Error("absent attribute reported present")
	}
}

func TestNormalizeTag(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"<button >", "<button>"},
		{"<video  src=\"a\">", "<video src=\"a\">"},
		{"<br />", "<br/>"},
		{"<div>", "<div>"},
	}

	for _, tt := range tests {
		if got := NormalizeTag(tt.in); got != tt.want {
			t.Errorf("NormalizeTag(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestElementSpan(t *testing.T) {
	text := `<video src="a"><track><source></video><video>second`
	tags := Scan(text)

	if got := ElementSpan(text, tags, 0); got != `<video src="a"><track><source></video>` {
		t.Errorf("unexpected span: %q", got)
	}

	// Unclosed element spans to the end of the document
	var second int
	for i, tag := range tags {
		if tag.Name == "video" && !tag.Closing && i > 0 {
			second = i
		}
	}
	if got := ElementSpan(text, tags, second); got != `<video>second` {
		t.Errorf("unexpected unclosed span: %q", got)
	}
}

func TestCloseIndexNestedSameTag(t *testing.T) {
	text := `<div id="o"><div>in</div></div><div>tail</div>`
	tags := Scan(text)

	ci := CloseIndex(tags, 0)
	if ci != 3 {
		t.Fatalf("expected closing tag index 3, got %d", ci)
	}
	if got := ElementSpan(text, tags, 0); got != `<div id="o"><div>in</div></div>` {
		t.Errorf("span crossed the nested closing tag: %q", got)
	}
}

func TestStripTags(t *testing.T) {
	if got := StripTags(`<span>click <b>here</b></span>`); got != "click here" {
		t.Errorf("expected %q, got %q", "click here", got)
	}
}
