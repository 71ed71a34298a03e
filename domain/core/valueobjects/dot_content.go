package valueobjects

import (
	"strings"
	"unicode/utf8"

	"dotspark-backend/domain/config"
	pkgerrors "dotspark-backend/pkg/errors"
)

// DotContent is a value object for a captured insight: a short summary,
// a memory anchor, and a single-word emotional pulse. Downstream storage
// assumes the length bounds are already satisfied, so construction
// normalizes and truncates rather than rejecting over-length input.
type DotContent struct {
	summary string
	anchor  string
	pulse   string
}

// NewDotContent creates dot content with normalization using default configuration
func NewDotContent(summary, anchor, pulse string) (DotContent, error) {
	return NewDotContentWithConfig(summary, anchor, pulse, config.DefaultDomainConfig())
}

// NewDotContentWithConfig creates dot content with normalization and configuration.
// Summary and anchor are truncated to their configured bounds; pulse is reduced
// to exactly one lowercase word. An empty summary cannot be normalized and is
// rejected.
func NewDotContentWithConfig(summary, anchor, pulse string, cfg *config.DomainConfig) (DotContent, error) {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}

	summary = truncateRunes(strings.TrimSpace(summary), cfg.MaxSummaryLength)
	anchor = truncateRunes(strings.TrimSpace(anchor), cfg.MaxAnchorLength)
	pulse = firstWord(pulse)

	if summary == "" {
		return DotContent{}, pkgerrors.NewValidationError("summary cannot be empty")
	}

	return DotContent{
		summary: summary,
		anchor:  anchor,
		pulse:   pulse,
	}, nil
}

// Summary returns the insight summary
func (c DotContent) Summary() string {
	return c.summary
}

// Anchor returns the memory anchor
func (c DotContent) Anchor() string {
	return c.anchor
}

// Pulse returns the single-word emotional tag
func (c DotContent) Pulse() string {
	return c.pulse
}

// truncateRunes cuts s to at most max runes
func truncateRunes(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	runes := []rune(s)
	return string(runes[:max])
}

// firstWord reduces s to its first whitespace-delimited word, lowercased
func firstWord(s string) string {
	fields := strings.Fields(strings.ToLower(s))
	if len(fields) == 0 {
		return ""
	}
	return strings.Trim(fields[0], ".,!?\"'")
}
