package conformance

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevelTags(t *testing.T) {
	tests := []struct {
		level Level
		want  []string
	}{
		{LevelA, []string{"wcag2a"}},
		{LevelAA, []string{"wcag2a", "wcag2aa", "best-practice"}},
		{LevelAAA, []string{"wcag2a", "wcag2aa", "best-practice", "wcag2aaa"}},
	}

	for _, tt := range tests {
		t.Run(string(tt.level), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.level.Tags())
		})
	}
}

func TestClientEvaluate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req evaluateRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, `<img src="a.png">`, req.Source)
		assert.Equal(t, []string{"wcag2a", "wcag2aa", "best-practice"}, req.Tags)

		_ = json.NewEncoder(w).Encode(Report{
			Violations: []NodeResult{
				{RuleID: "image-alt", Impact: "critical", Help: "Images must have alternate text", HelpURL: "https://example.test/image-alt"},
			},
			Incomplete: []NodeResult{
				{RuleID: "color-contrast", Impact: "serious", Help: "Elements must meet contrast thresholds"},
			},
		})
	}))
	defer srv.Close()

	c := NewClient(srv.URL)
	report, err := c.Evaluate(context.Background(), `<img src="a.png">`, LevelAA)

	require.NoError(t, err)
	require.Len(t, report.Violations, 1)
	assert.Equal(t, "image-alt", report.Violations[0].RuleID)
	assert.Equal(t, "critical", report.Violations[0].Impact)
	require.Len(t, report.Incomplete, 1)
	assert.Equal(t, "color-contrast", report.Incomplete[0].RuleID)
}

func TestClientEvaluateErrors(t *testing.T) {
	t.Run("no_endpoint", func(t *testing.T) {
		c := NewClient("")
		_, err := c.Evaluate(context.Background(), "<div>", LevelA)
		assert.Error(t, err)
	})

	t.Run("non_success_status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "runner crashed", http.StatusInternalServerError)
		}))
		defer srv.Close()

		c := NewClient(srv.URL)
		_, err := c.Evaluate(context.Background(), "<div>", LevelA)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "500")
	})

	t.Run("malformed_report", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("["))
		}))
		defer srv.Close()

		c := NewClient(srv.URL)
		_, err := c.Evaluate(context.Background(), "<div>", LevelA)
		assert.Error(t, err)
	})
}
