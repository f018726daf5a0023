package detectors

import (
	"fmt"
	"strings"
	"testing"
)

func TestCheckFocusOutline(t *testing.T) {
	findings := checkFocusOutline(`<button style="outline: none">x</button>`)
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
	if findings[0].Message != `Focus outline suppressed with "outline: none"` {
		t.Errorf("unexpected message: %q", findings[0].Message)
	}

	tests := []struct {
		name  string
		text  string
		count int
	}{
		{"outline_zero", `<style>a:focus { outline: 0; }</style>`, 1},
		{"fires_once_per_input", `outline: none; outline: 0`, 1},
		{"visible_outline", `outline: 2px solid blue`, 0},
		{"outline_auto", `outline: auto`, 0},
		{"no_styles", `<div>x</div>`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(checkFocusOutline(tt.text)); got != tt.count {
				t.Errorf("expected %d findings, got %d", tt.count, got)
			}
		})
	}
}

func TestCheckColorLiterals(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		count int
	}{
		{"hex", `color: #ff0000;`, 1},
		{"rgb_function", `background-color: rgb(255, 0, 0);`, 1},
		{"named_color", `border-color: red;`, 1},
		{"var_reference", `color: var(--text-color);`, 0},
		{"transparent_exempt", `background: transparent;`, 0},
		{"inherit_exempt", `color: inherit;`, 0},
		{"dedup_by_value", `color: #fff; background-color: #fff;`, 1},
		{"case_insensitive_dedup", `color: #FFF; fill: #fff;`, 1},
		{"gradient_not_a_color", `background: linear-gradient(red);`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(checkColorLiterals(tt.text)); got != tt.count {
				t.Errorf("expected %d findings, got %d", tt.count, got)
			}
		})
	}

	t.Run("capped_per_pass", func(t *testing.T) {
		var sb strings.Builder
		for i := 0; i < 10; i++ {
			fmt.Fprintf(&sb, "color: #%06x; ", i+1)
		}
		if got := len(checkColorLiterals(sb.String())); got != maxColorFindings {
			t.Errorf("expected cap of %d findings, got %d", maxColorFindings, got)
		}
	})

	findings := checkColorLiterals(`color: #336699;`)
	if findings[0].Message != `Hardcoded color "#336699"; use a theme variable instead` {
		t.Errorf("unexpected message: %q", findings[0].Message)
	}
}

func TestCheckAbsoluteFontSize(t *testing.T) {
	findings := checkAbsoluteFontSize(`font-size: 14px;`)
	if len(findings) != 1 {
		t.Fatalf("expected 1 finding, got %d", len(findings))
	}
	if findings[0].Message != `Absolute font size "14px" prevents user resizing` {
		t.Errorf("unexpected message: %q", findings[0].Message)
	}

	tests := []struct {
		name  string
		text  string
		count int
	}{
		{"rem_is_fine", `font-size: 1.2rem;`, 0},
		{"em_is_fine", `font-size: 1em;`, 0},
		{"per_occurrence", `font-size: 12px; font-size: 16px;`, 2},
		{"fractional_px", `font-size: 13.5px;`, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(checkAbsoluteFontSize(tt.text)); got != tt.count {
				t.Errorf("expected %d findings, got %d", tt.count, got)
			}
		})
	}
}

func TestCheckJustifiedText(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		count int
	}{
		{"justify", `text-align: justify;`, 1},
		{"per_occurrence", `text-align: justify; text-align:justify`, 2},
		{"left_is_fine", `text-align: left;`, 0},
		{"center_is_fine", `text-align: center;`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := len(checkJustifiedText(tt.text)); got != tt.count {
				t.Errorf("expected %d findings, got %d", tt.count, got)
			}
		})
	}
}
