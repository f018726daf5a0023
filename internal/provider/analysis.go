package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/LafuenteColoradoJose/a11y-audit-ai/internal/types"
)

// AnalysisProvider surfaces additional findings from a generative service.
// A request failure degrades to an empty result rather than propagating.
type AnalysisProvider interface {
	Analyze(ctx context.Context, sourceText string) []types.Finding
}

// AnalysisClient is the HTTP-backed analysis provider
type AnalysisClient struct {
	url    string
	apiKey string
	client *http.Client
	log    *zap.SugaredLogger
}

// NewAnalysisClient creates an analysis provider for the given endpoint
func NewAnalysisClient(url, apiKey string, log *zap.SugaredLogger) *AnalysisClient {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &AnalysisClient{
		url:    url,
		apiKey: apiKey,
		client: &http.Client{},
		log:    log,
	}
}

type analyzeRequestBody struct {
	Code string `json:"code"`
}

type analyzeIssueBody struct {
	RuleID     string `json:"ruleId"`
	Severity   string `json:"severity"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion"`
}

type analyzeResponseBody struct {
	Issues []analyzeIssueBody `json:"issues"`
}

// Analyze asks the generative service for additional findings. An empty
// result signals "no additional issues found"; every failure path degrades
// to the same empty result.
func (c *AnalysisClient) Analyze(ctx context.Context, sourceText string) []types.Finding {
	if c.url == "" {
		return nil
	}

	payload, err := json.Marshal(analyzeRequestBody{Code: sourceText})
	if err != nil {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return nil
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		c.log.Debugw("analysis provider transport error", "error", err)
		return nil
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Debugw("analysis provider returned non-success status", "status", resp.StatusCode)
		return nil
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil
	}

	var out analyzeResponseBody
	if err := json.Unmarshal(body, &out); err != nil {
		c.log.Debugw("failed to decode analysis response", "error", err)
		return nil
	}

	findings := make([]types.Finding, 0, len(out.Issues))
	for _, issue := range out.Issues {
		if issue.RuleID == "" {
			continue
		}
		findings = append(findings, types.Finding{
			RuleID:     issue.RuleID,
			Severity:   parseSeverity(issue.Severity),
			Message:    issue.Message,
			Suggestion: issue.Suggestion,
		})
	}
	return findings
}

func parseSeverity(s string) types.Severity {
	switch types.Severity(s) {
	case types.SeverityHigh:
		return types.SeverityHigh
	case types.SeverityMedium:
		return types.SeverityMedium
	default:
		return types.SeverityLow
	}
}
