package config

// DomainConfig holds all configurable business rules and constraints
type DomainConfig struct {
	// Dot constraints
	MaxSummaryLength int
	MaxAnchorLength  int

	// Organization thresholds
	OrganizeConfidence     float64
	MinTurnsBeforeOrganize int

	// Pattern memory constraints
	MaxKeywordsPerRecord   int
	MaxNewKeywordsPerTurn  int
	MinKeywordLength       int
	DetailedStyleTurnCount int

	// Context limits for classification prompts
	MaxPatternRecords  int
	MaxRecentTitles    int
	MaxAssistantLength int
}

// DefaultDomainConfig returns the default domain configuration
func DefaultDomainConfig() *DomainConfig {
	return &DomainConfig{
		MaxSummaryLength: 220,
		MaxAnchorLength:  300,

		OrganizeConfidence:     0.7,
		MinTurnsBeforeOrganize: 6,

		MaxKeywordsPerRecord:   20,
		MaxNewKeywordsPerTurn:  10,
		MinKeywordLength:       4,
		DetailedStyleTurnCount: 8,

		MaxPatternRecords:  5,
		MaxRecentTitles:    10,
		MaxAssistantLength: 600,
	}
}
