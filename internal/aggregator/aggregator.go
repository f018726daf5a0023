// Package aggregator merges the conformance engine's results, the pattern
// detectors' results and (when enabled) the generative analysis provider's
// results into one normalized finding list per analysis request.
package aggregator

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/LafuenteColoradoJose/a11y-audit-ai/internal/conformance"
	"github.com/LafuenteColoradoJose/a11y-audit-ai/internal/detectors"
	"github.com/LafuenteColoradoJose/a11y-audit-ai/internal/provider"
	"github.com/LafuenteColoradoJose/a11y-audit-ai/internal/types"
)

// DefaultSourceTimeout bounds one external analysis source when the caller
// does not tune it.
const DefaultSourceTimeout = 30 * time.Second

// Options configures one analysis pass. Callers pass it per invocation.
type Options struct {
	Level         conformance.Level
	UseAIAnalysis bool
	SourceTimeout time.Duration
}

// Aggregator performs one analysis pass over source text
type Aggregator struct {
	engine    conformance.Engine
	detectors *detectors.Set
	analysis  provider.AnalysisProvider
	log       *zap.SugaredLogger
}

// New creates an aggregator. The engine and the analysis provider may be
// nil, which disables their contribution.
func New(engine conformance.Engine, set *detectors.Set, analysis provider.AnalysisProvider, log *zap.SugaredLogger) *Aggregator {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	if set == nil {
		set = detectors.NewSet(log)
	}
	return &Aggregator{
		engine:    engine,
		detectors: set,
		analysis:  analysis,
		log:       log,
	}
}

// Analyze runs the three sources concurrently and merges their findings.
// Each source degrades to zero findings on failure; the merge preserves each
// source's own ordering and assigns fresh non-colliding ids. Structurally
// identical violations from different sources are intentionally not
// deduplicated.
func (a *Aggregator) Analyze(ctx context.Context, sourceText string, opts Options) []types.Finding {
	var engineFindings, detectorFindings, aiFindings []types.Finding

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		engineFindings = a.runEngine(gctx, sourceText, opts)
		return nil
	})
	g.Go(func() error {
		detectorFindings = a.detectors.Run(sourceText)
		return nil
	})
	if opts.UseAIAnalysis && a.analysis != nil {
		g.Go(func() error {
			aiFindings = a.runAnalysis(gctx, sourceText, opts)
			return nil
		})
	}
	_ = g.Wait()

	merged := make([]types.Finding, 0, len(engineFindings)+len(detectorFindings)+len(aiFindings))
	n := 0
	merged, n = appendWithIDs(merged, engineFindings, "axe", n)
	merged, n = appendWithIDs(merged, detectorFindings, "det", n)
	merged, _ = appendWithIDs(merged, aiFindings, "ai", n)

	return merged
}

// runEngine evaluates the conformance engine; a fault contributes zero findings
func (a *Aggregator) runEngine(ctx context.Context, sourceText string, opts Options) []types.Finding {
	if a.engine == nil {
		return nil
	}

	evalCtx, cancel := context.WithTimeout(ctx, sourceTimeout(opts))
	defer cancel()

	report, err := a.engine.Evaluate(evalCtx, sourceText, opts.Level)
	if err != nil {
		a.log.Warnw("conformance evaluation failed", "error", err)
		return nil
	}

	var findings []types.Finding
	for _, node := range report.Violations {
		findings = append(findings, nodeFinding(node))
	}
	for _, node := range report.Incomplete {
		findings = append(findings, nodeFinding(node))
	}
	return findings
}

// runAnalysis queries the generative analysis provider and namespaces its
// rule ids with the AI marker.
func (a *Aggregator) runAnalysis(ctx context.Context, sourceText string, opts Options) []types.Finding {
	analysisCtx, cancel := context.WithTimeout(ctx, sourceTimeout(opts))
	defer cancel()

	findings := a.analysis.Analyze(analysisCtx, sourceText)
	for i := range findings {
		if !strings.HasPrefix(findings[i].RuleID, types.AIRulePrefix) {
			findings[i].RuleID = types.AIRulePrefix + findings[i].RuleID
		}
	}
	return findings
}

func nodeFinding(node conformance.NodeResult) types.Finding {
	suggestion := node.Help
	if node.HelpURL != "" {
		suggestion = fmt.Sprintf("%s (see %s)", node.Help, node.HelpURL)
	}
	return types.Finding{
		RuleID:     node.RuleID,
		Severity:   mapImpact(node.Impact),
		Message:    node.Help,
		Suggestion: suggestion,
	}
}

// mapImpact collapses the engine's impact classification to the three-level
// severity enum: critical/serious map to high, moderate to medium, everything
// else to low.
func mapImpact(impact string) types.Severity {
	switch strings.ToLower(strings.TrimSpace(impact)) {
	case "critical", "serious":
		return types.SeverityHigh
	case "moderate":
		return types.SeverityMedium
	default:
		return types.SeverityLow
	}
}

// appendWithIDs copies findings into dst assigning fresh ids. The source
// prefix plus a pass-wide counter keeps ids from different sources distinct.
func appendWithIDs(dst, src []types.Finding, prefix string, n int) ([]types.Finding, int) {
	for _, f := range src {
		n++
		f.ID = fmt.Sprintf("%s-%04d", prefix, n)
		dst = append(dst, f)
	}
	return dst, n
}

func sourceTimeout(opts Options) time.Duration {
	if opts.SourceTimeout > 0 {
		return opts.SourceTimeout
	}
	return DefaultSourceTimeout
}
