// Package resolver produces a corrected text for exactly one finding, trying
// providers in a fixed priority order: remote generative service, local
// generative service, deterministic rewrite rules. The deterministic tail
// never fails, so resolution always yields a result.
package resolver

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/LafuenteColoradoJose/a11y-audit-ai/internal/provider"
	"github.com/LafuenteColoradoJose/a11y-audit-ai/internal/rewrite"
	"github.com/LafuenteColoradoJose/a11y-audit-ai/internal/types"
)

// DefaultAttemptTimeout bounds one provider attempt when the caller does not
// tune it.
const DefaultAttemptTimeout = 30 * time.Second

// Options selects which upstream providers participate in one resolution.
// Callers pass it per invocation; there is no ambient toggle state.
type Options struct {
	UseRemote      bool
	UseLocal       bool
	AttemptTimeout time.Duration
}

// Resolver resolves fixes through the provider chain. It never mutates the
// finding or the rule table.
type Resolver struct {
	remote provider.FixProvider
	local  provider.FixProvider
	rules  *rewrite.Table
	log    *zap.SugaredLogger
}

// New creates a resolver. Either provider may be nil, which disables it; the
// rewrite table is required.
func New(remote, local provider.FixProvider, rules *rewrite.Table, log *zap.SugaredLogger) *Resolver {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Resolver{
		remote: remote,
		local:  local,
		rules:  rules,
		log:    log,
	}
}

// Resolve returns the corrected text for one finding. Provider attempts are
// strictly sequential: a lower-priority provider runs only after the one
// above it has failed. When every generative attempt fails the deterministic
// rewrite applies, which is a no-op only when no rule matches the rule id.
func (r *Resolver) Resolve(ctx context.Context, sourceText string, f types.Finding, opts Options) string {
	req := provider.FixRequest{
		SourceText: sourceText,
		RuleID:     f.RuleID,
		Message:    f.Message,
		Suggestion: f.Suggestion,
	}

	if opts.UseRemote && r.remote != nil {
		if text, ok := r.attempt(ctx, r.remote, req, opts); ok {
			return text
		}
	}
	if opts.UseLocal && r.local != nil {
		if text, ok := r.attempt(ctx, r.local, req, opts); ok {
			return text
		}
	}

	return r.rules.Apply(f.CanonicalRuleID(), sourceText)
}

// attempt runs one provider under a bounded timeout and validates its output.
// Output failing validation counts as a provider failure and is never
// surfaced to the caller.
func (r *Resolver) attempt(ctx context.Context, p provider.FixProvider, req provider.FixRequest, opts Options) (string, bool) {
	timeout := opts.AttemptTimeout
	if timeout <= 0 {
		timeout = DefaultAttemptTimeout
	}
	attemptCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	outcome := p.Fix(attemptCtx, req)
	if outcome.Status != provider.StatusSuccess {
		r.log.Debugw("fix provider failed", "provider", p.Kind(), "error", outcome.Err)
		return "", false
	}

	text := provider.Sanitize(outcome.Text)
	if !provider.Validate(text) {
		r.log.Debugw("fix provider output rejected", "provider", p.Kind())
		return "", false
	}

	return text, true
}
