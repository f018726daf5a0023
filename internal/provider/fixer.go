package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"
)

// Fixer is an HTTP-backed generative fix provider. The remote and the local
// self-hosted service share the same wire shape and differ only in endpoint
// and credentials.
type Fixer struct {
	kind   Kind
	url    string
	apiKey string
	client *http.Client
	log    *zap.SugaredLogger
}

// NewRemoteFixer creates the network-hosted fix provider
func NewRemoteFixer(url, apiKey string, log *zap.SugaredLogger) *Fixer {
	return newFixer(KindRemote, url, apiKey, log)
}

// NewLocalFixer creates the self-hosted fix provider
func NewLocalFixer(url string, log *zap.SugaredLogger) *Fixer {
	return newFixer(KindLocal, url, "", log)
}

func newFixer(kind Kind, url, apiKey string, log *zap.SugaredLogger) *Fixer {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Fixer{
		kind:   kind,
		url:    url,
		apiKey: apiKey,
		client: &http.Client{},
		log:    log,
	}
}

// Kind returns which provider this fixer is
func (f *Fixer) Kind() Kind {
	return f.kind
}

type fixIssueBody struct {
	RuleID     string `json:"ruleId"`
	Message    string `json:"message"`
	Suggestion string `json:"suggestion"`
}

type fixRequestBody struct {
	Code         string       `json:"code"`
	Issue        fixIssueBody `json:"issue"`
	Instructions string       `json:"instructions"`
}

type fixResponseBody struct {
	FixedCode string `json:"fixedCode"`
}

// Fix requests a complete corrected document for one finding. Transport
// errors, non-success statuses and empty response text all count as a
// provider failure; the caller validates the returned text before accepting.
func (f *Fixer) Fix(ctx context.Context, req FixRequest) Outcome {
	if f.url == "" {
		return TransportFailure(errors.New("no endpoint configured"))
	}

	payload, err := json.Marshal(fixRequestBody{
		Code: req.SourceText,
		Issue: fixIssueBody{
			RuleID:     req.RuleID,
			Message:    req.Message,
			Suggestion: req.Suggestion,
		},
		Instructions: Instructions(req.RuleID),
	})
	if err != nil {
		return TransportFailure(fmt.Errorf("failed to encode fix request: %w", err))
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, f.url, bytes.NewReader(payload))
	if err != nil {
		return TransportFailure(err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if f.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+f.apiKey)
	}

	resp, err := f.client.Do(httpReq)
	if err != nil {
		f.log.Debugw("fix provider transport error", "provider", f.kind, "error", err)
		return TransportFailure(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return TransportFailure(fmt.Errorf("fix request failed: %d - %s", resp.StatusCode, string(body)))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return TransportFailure(err)
	}

	var out fixResponseBody
	if err := json.Unmarshal(body, &out); err != nil {
		return TransportFailure(fmt.Errorf("failed to decode fix response: %w", err))
	}
	if out.FixedCode == "" {
		return TransportFailure(errors.New("empty response text"))
	}

	return Success(out.FixedCode)
}
