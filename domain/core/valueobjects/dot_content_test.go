package valueobjects

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dotspark-backend/domain/config"
)

func TestNewDotContent_Normalizes(t *testing.T) {
	content, err := NewDotContent("  A realization about mornings  ", " the quiet hour ", "Excited and nervous")
	require.NoError(t, err)

	assert.Equal(t, "A realization about mornings", content.Summary())
	assert.Equal(t, "the quiet hour", content.Anchor())
	assert.Equal(t, "excited", content.Pulse())
}

func TestNewDotContent_TruncatesByRunes(t *testing.T) {
	cfg := config.DefaultDomainConfig()
	content, err := NewDotContent(strings.Repeat("é", cfg.MaxSummaryLength+50), strings.Repeat("ü", cfg.MaxAnchorLength+10), "calm")
	require.NoError(t, err)

	assert.Equal(t, cfg.MaxSummaryLength, utf8.RuneCountInString(content.Summary()))
	assert.Equal(t, cfg.MaxAnchorLength, utf8.RuneCountInString(content.Anchor()))
}

func TestNewDotContent_EmptySummaryRejected(t *testing.T) {
	_, err := NewDotContent("   ", "anchor", "calm")
	assert.Error(t, err)
}

func TestNewDotContent_PulsePunctuationStripped(t *testing.T) {
	content, err := NewDotContent("summary", "", `"Hopeful!"`)
	require.NoError(t, err)
	assert.Equal(t, "hopeful", content.Pulse())
}

func TestNewDotContent_EmptyPulseAllowed(t *testing.T) {
	content, err := NewDotContent("summary", "", "   ")
	require.NoError(t, err)
	assert.Equal(t, "", content.Pulse())
}
