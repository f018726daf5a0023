package detectors

// Canonical rule ids raised by the pattern detectors. The deterministic
// rewrite table matches on these ids (and on external aliases) to remediate.
const (
	RuleImageAlt         = "image-alt-missing"
	RuleRedundantRole    = "redundant-role"
	RuleTabindexPositive = "tabindex-positive"
	RuleSkipLink         = "skip-link-missing"
	RuleFocusOutline     = "focus-outline-suppressed"
	RuleAutocomplete     = "autocomplete-missing"
	RuleVideoCaptions    = "video-captions-missing"
	RuleAudioTranscript  = "audio-transcript-missing"
	RuleAutoplay         = "media-autoplay"
	RuleMouseOnly        = "mouse-only-handler"
	RuleColorLiteral     = "color-literal"
	RuleFontSizeAbsolute = "font-size-absolute"
	RuleTextJustified    = "text-justified"
	RuleAmbiguousLink    = "link-text-ambiguous"
)
