// Package a11yaudit detects WCAG accessibility violations in HTML and
// template source text and produces corrected text. Findings come from three
// sources merged per analysis pass: an external conformance engine, a set of
// text-pattern detectors, and an optional generative analysis provider. A fix
// for any finding resolves through an ordered provider chain (remote
// generative service, local generative service, deterministic rewrite rules),
// so a fix attempt always produces a result and never corrupts the input.
package a11yaudit

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/LafuenteColoradoJose/a11y-audit-ai/internal/aggregator"
	"github.com/LafuenteColoradoJose/a11y-audit-ai/internal/conformance"
	"github.com/LafuenteColoradoJose/a11y-audit-ai/internal/config"
	"github.com/LafuenteColoradoJose/a11y-audit-ai/internal/detectors"
	"github.com/LafuenteColoradoJose/a11y-audit-ai/internal/logging"
	"github.com/LafuenteColoradoJose/a11y-audit-ai/internal/provider"
	"github.com/LafuenteColoradoJose/a11y-audit-ai/internal/resolver"
	"github.com/LafuenteColoradoJose/a11y-audit-ai/internal/rewrite"
	"github.com/LafuenteColoradoJose/a11y-audit-ai/internal/types"
)

// Finding is one reported accessibility issue instance
type Finding = types.Finding

// Severity is the three-level finding severity
type Severity = types.Severity

const (
	SeverityLow    = types.SeverityLow
	SeverityMedium = types.SeverityMedium
	SeverityHigh   = types.SeverityHigh
)

// Level selects the WCAG conformance level for analysis
type Level = conformance.Level

const (
	LevelA   = conformance.LevelA
	LevelAA  = conformance.LevelAA
	LevelAAA = conformance.LevelAAA
)

// ProviderConfig holds the endpoints of the external collaborators. Empty
// endpoints disable the corresponding source or provider.
type ProviderConfig struct {
	ConformanceURL string
	RemoteFixURL   string
	LocalFixURL    string
	AnalyzeURL     string
	APIKey         string
	Timeout        time.Duration
}

// Options configures one Analyze or ResolveFix invocation. Provider selection
// is explicit per call; there is no ambient toggle state.
type Options struct {
	Level           Level
	UseRemoteFix    bool
	UseLocalFix     bool
	UseAIAnalysis   bool
	ProviderTimeout time.Duration
}

// Auditor is the core analysis and fix-resolution surface
type Auditor struct {
	agg            *aggregator.Aggregator
	res            *resolver.Resolver
	rules          *rewrite.Table
	defaultTimeout time.Duration
}

// NewLogger builds a console logger for hosts that have none of their own.
// Debug mode lowers the level and switches to the development encoder.
func NewLogger(debug bool) *zap.SugaredLogger {
	return logging.New(debug)
}

// New creates an auditor from explicit provider settings. Endpoints left
// empty are filled from the process environment; New reads no files. A nil
// logger disables logging.
func New(pc ProviderConfig, log *zap.SugaredLogger) *Auditor {
	return build(pc, &config.Config{Detectors: map[string]config.DetectorConfig{}}, log)
}

// NewFromConfigFile creates an auditor from a YAML configuration file
// carrying provider endpoints and per-detector overrides. A .env file in the
// working directory, if present, is loaded before the environment is read.
func NewFromConfigFile(path string, log *zap.SugaredLogger) (*Auditor, error) {
	config.LoadEnvFile()
	cfg, err := config.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	pc := ProviderConfig{
		ConformanceURL: cfg.Providers.ConformanceURL,
		RemoteFixURL:   cfg.Providers.RemoteFixURL,
		LocalFixURL:    cfg.Providers.LocalFixURL,
		AnalyzeURL:     cfg.Providers.AnalyzeURL,
		APIKey:         cfg.Providers.APIKey,
		Timeout:        time.Duration(cfg.Providers.TimeoutSeconds) * time.Second,
	}
	return build(pc, cfg, log), nil
}

func build(pc ProviderConfig, cfg *config.Config, log *zap.SugaredLogger) *Auditor {
	if log == nil {
		log = logging.Nop()
	}

	env := config.FromEnv(config.ProviderConfig{
		ConformanceURL: pc.ConformanceURL,
		RemoteFixURL:   pc.RemoteFixURL,
		LocalFixURL:    pc.LocalFixURL,
		AnalyzeURL:     pc.AnalyzeURL,
		APIKey:         pc.APIKey,
	})

	set := detectors.NewSet(log)
	set.ApplyConfig(cfg)

	var engine conformance.Engine
	if env.ConformanceURL != "" {
		engine = conformance.NewClient(env.ConformanceURL)
	}
	var analysis provider.AnalysisProvider
	if env.AnalyzeURL != "" {
		analysis = provider.NewAnalysisClient(env.AnalyzeURL, env.APIKey, log)
	}

	rules := rewrite.NewTable()
	remote := provider.NewRemoteFixer(env.RemoteFixURL, env.APIKey, log)
	local := provider.NewLocalFixer(env.LocalFixURL, log)

	return &Auditor{
		agg:            aggregator.New(engine, set, analysis, log),
		res:            resolver.New(remote, local, rules, log),
		rules:          rules,
		defaultTimeout: pc.Timeout,
	}
}

// Analyze runs one analysis pass over the source text and returns the merged,
// normalized finding list. It is total: every internal failure degrades to
// fewer findings, never to an error.
func (a *Auditor) Analyze(ctx context.Context, sourceText string, opts Options) []Finding {
	level := opts.Level
	if level == "" {
		level = LevelAA
	}
	return a.agg.Analyze(ctx, sourceText, aggregator.Options{
		Level:         level,
		UseAIAnalysis: opts.UseAIAnalysis,
		SourceTimeout: a.timeout(opts),
	})
}

// IsFixEligible reports whether at least one remediation path exists for the
// finding: its rule id carries the AI namespace marker or appears in the
// deterministic rule table.
func (a *Auditor) IsFixEligible(f Finding) bool {
	return f.IsAISourced() || a.rules.Has(f.RuleID)
}

// ResolveFix returns the corrected text for one finding. When every
// generative provider fails or is disabled, the deterministic rewrite rules
// apply; the input comes back unchanged only when no rule matches.
func (a *Auditor) ResolveFix(ctx context.Context, sourceText string, f Finding, opts Options) string {
	return a.res.Resolve(ctx, sourceText, f, resolver.Options{
		UseRemote:      opts.UseRemoteFix,
		UseLocal:       opts.UseLocalFix,
		AttemptTimeout: a.timeout(opts),
	})
}

func (a *Auditor) timeout(opts Options) time.Duration {
	if opts.ProviderTimeout > 0 {
		return opts.ProviderTimeout
	}
	return a.defaultTimeout
}
