package a11yaudit

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAnalyzeWithDetectorsOnly(t *testing.T) {
	a := New(ProviderConfig{}, nil)

	findings := a.Analyze(context.Background(), `<img src="logo.png"><div tabindex="3">x</div>`, Options{})

	require.Len(t, findings, 2)
	assert.Equal(t, "image-alt-missing", findings[0].RuleID)
	assert.Equal(t, SeverityHigh, findings[0].Severity)
	assert.Equal(t, "tabindex-positive", findings[1].RuleID)
	for _, f := range findings {
		assert.NotEmpty(t, f.ID)
		assert.NotEmpty(t, f.Message)
	}
}

func TestAnalyzeWithConformanceEngine(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Source string   `json:"source"`
			Tags   []string `json:"tags"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Contains(t, req.Tags, "wcag2aaa")
		_, _ = w.Write([]byte(`{"violations":[{"id":"color-contrast","impact":"serious","help":"Contrast is too low"}],"incomplete":[]}`))
	}))
	defer srv.Close()

	a := New(ProviderConfig{ConformanceURL: srv.URL}, nil)

	findings := a.Analyze(context.Background(), `<p>x</p>`, Options{Level: LevelAAA})

	require.Len(t, findings, 1)
	assert.Equal(t, "color-contrast", findings[0].RuleID)
	assert.Equal(t, SeverityHigh, findings[0].Severity)
}

func TestIsFixEligible(t *testing.T) {
	a := New(ProviderConfig{}, nil)

	tests := []struct {
		name   string
		ruleID string
		want   bool
	}{
		{"deterministic_rule", "image-alt-missing", true},
		{"alias", "tabindex", true},
		{"ai_sourced", "ai-anything-at-all", true},
		{"detector_without_rule", "color-literal", false},
		{"unknown", "made-up-rule", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.IsFixEligible(Finding{RuleID: tt.ruleID}))
		})
	}
}

func TestResolveFixDeterministicFallback(t *testing.T) {
	a := New(ProviderConfig{}, nil)

	in := `<video src="movie.mp4" autoplay></video>`
	f := Finding{ID: "det-0001", RuleID: "media-autoplay", Severity: SeverityMedium}

	got := a.ResolveFix(context.Background(), in, f, Options{})
	assert.Equal(t, `<video src="movie.mp4"></video>`, got)

	// Resolving an already-fixed document changes nothing
	assert.Equal(t, got, a.ResolveFix(context.Background(), got, f, Options{}))
}

func TestResolveFixPrefersRemoteProvider(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Code  string `json:"code"`
			Issue struct {
				RuleID string `json:"ruleId"`
			} `json:"issue"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "image-alt-missing", req.Issue.RuleID)
		_, _ = w.Write([]byte(`{"fixedCode":"<img alt=\"A corporate logo\" src=\"a.png\">"}`))
	}))
	defer srv.Close()

	a := New(ProviderConfig{RemoteFixURL: srv.URL}, nil)

	got := a.ResolveFix(context.Background(), `<img src="a.png">`, Finding{RuleID: "image-alt-missing"}, Options{UseRemoteFix: true})
	assert.Equal(t, `<img alt="A corporate logo" src="a.png">`, got)
}

func TestResolveFixFallsThroughFailedRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	a := New(ProviderConfig{RemoteFixURL: srv.URL}, nil)

	got := a.ResolveFix(context.Background(), `<img src="a.png">`, Finding{RuleID: "image-alt-missing"}, Options{UseRemoteFix: true})
	assert.Equal(t, `<img alt="Description needed" src="a.png">`, got)
}

func TestNewFromConfigFileAppliesOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a11y.yaml")
	content := `
detectors:
  image-alt-missing:
    disabled: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	a, err := NewFromConfigFile(path, nil)
	require.NoError(t, err)

	findings := a.Analyze(context.Background(), `<img src="a.png">`, Options{})
	assert.Empty(t, findings)
}
