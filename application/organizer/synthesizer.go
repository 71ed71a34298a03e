package organizer

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"dotspark-backend/application/ports"
	"dotspark-backend/domain/config"
	"dotspark-backend/domain/core/entities"
	"dotspark-backend/domain/core/valueobjects"
)

// DegradedVisualSummary is shown when synthesis fails; confirmation is
// still required so the state machine reaches the confirming stage
// instead of stalling.
const DegradedVisualSummary = "I had trouble structuring your thoughts just now, but everything you shared is safe in this conversation."

const synthesizerSystemPrompt = `You turn a user's raw thoughts into a structured capture.
Use ONLY the user's own words as source material.
Respond with a single JSON object of the requested shape and nothing else.`

// Synthesizer converts the full message log into a concrete structured
// proposal once the conversation is deep enough. It consumes only
// user-authored turns and enforces the dot field bounds before returning.
type Synthesizer struct {
	reasoner ports.Reasoner
	cfg      *config.DomainConfig
	logger   *zap.Logger
}

// NewSynthesizer creates a synthesizer
func NewSynthesizer(reasoner ports.Reasoner, cfg *config.DomainConfig, logger *zap.Logger) *Synthesizer {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &Synthesizer{
		reasoner: reasoner,
		cfg:      cfg,
		logger:   logger,
	}
}

// Synthesize produces an OrganizedProposal for the classified branch.
// UserConfirmationNeeded is always true: no proposal is ever committed
// without an explicit confirmation turn.
func (s *Synthesizer) Synthesize(
	ctx context.Context,
	cls Classification,
	turns []entities.ConversationTurn,
	patternMemory []*entities.PatternRecord,
) OrganizedProposal {
	prompt := s.buildPrompt(cls, turns)

	raw, err := s.reasoner.Complete(ctx, synthesizerSystemPrompt, prompt)
	if err != nil {
		s.logger.Warn("Synthesis capability failed, returning degraded proposal",
			zap.Error(err),
			zap.String("type", cls.Type.String()),
		)
		return degradedProposal(cls)
	}

	data, err := s.parseStructuredData(cls.Type, raw)
	if err != nil {
		s.logger.Warn("Unparseable synthesis output, returning degraded proposal",
			zap.Error(err),
		)
		return degradedProposal(cls)
	}

	return OrganizedProposal{
		Classification:         cls,
		Data:                   data,
		VisualSummary:          s.visualSummary(data),
		UserConfirmationNeeded: true,
	}
}

// buildPrompt requests the branch-specific JSON shape from the user turns only
func (s *Synthesizer) buildPrompt(cls Classification, turns []entities.ConversationTurn) string {
	var shape string
	switch cls.Type {
	case valueobjects.ThoughtTypeWheel:
		shape = fmt.Sprintf(`{"name":"...","goals":"...","timeline":"...","dots":[{"summary":"max %d chars","anchor":"max %d chars","pulse":"one emotion word"}]}`,
			s.cfg.MaxSummaryLength, s.cfg.MaxAnchorLength)
	case valueobjects.ThoughtTypeChakra:
		shape = `{"name":"...","purpose":"...","wheels":[{"name":"...","goals":"...","timeline":"..."}]}`
	default:
		shape = fmt.Sprintf(`{"summary":"the core insight, max %d chars","anchor":"what will help them remember it, max %d chars","pulse":"one emotion word"}`,
			s.cfg.MaxSummaryLength, s.cfg.MaxAnchorLength)
	}

	return fmt.Sprintf(
		"The user's thoughts, in their own words:\n%s\nProduce JSON of this shape:\n%s",
		renderUserTurns(turns),
		shape,
	)
}

// parseStructuredData decodes and normalizes the branch-specific payload
func (s *Synthesizer) parseStructuredData(t valueobjects.ThoughtType, raw string) (StructuredData, error) {
	var data StructuredData

	switch t {
	case valueobjects.ThoughtTypeWheel:
		var sketch WheelSketch
		if err := extractJSON(raw, &sketch); err != nil {
			return data, err
		}
		if sketch.Name == "" {
			return data, fmt.Errorf("wheel sketch missing name")
		}
		sketch.Dots = s.normalizeDots(sketch.Dots)
		data = StructuredData{Kind: SketchWheel, Wheel: &sketch}

	case valueobjects.ThoughtTypeChakra:
		var sketch ChakraSketch
		if err := extractJSON(raw, &sketch); err != nil {
			return data, err
		}
		if sketch.Name == "" {
			return data, fmt.Errorf("chakra sketch missing name")
		}
		data = StructuredData{Kind: SketchChakra, Chakra: &sketch}

	default:
		// Exploring conversations that reached synthesis are captured as a dot
		var sketch DotSketch
		if err := extractJSON(raw, &sketch); err != nil {
			return data, err
		}
		normalized, ok := s.normalizeDot(sketch)
		if !ok {
			return data, fmt.Errorf("dot sketch missing summary")
		}
		data = StructuredData{Kind: SketchDot, Dot: &normalized}
	}

	data.normalize()
	return data, nil
}

// normalizeDot enforces the dot field bounds via the DotContent value object
func (s *Synthesizer) normalizeDot(sketch DotSketch) (DotSketch, bool) {
	content, err := valueobjects.NewDotContentWithConfig(sketch.Summary, sketch.Anchor, sketch.Pulse, s.cfg)
	if err != nil {
		return DotSketch{}, false
	}
	return DotSketch{
		Summary: content.Summary(),
		Anchor:  content.Anchor(),
		Pulse:   content.Pulse(),
	}, true
}

func (s *Synthesizer) normalizeDots(sketches []DotSketch) []DotSketch {
	out := make([]DotSketch, 0, len(sketches))
	for _, sketch := range sketches {
		if normalized, ok := s.normalizeDot(sketch); ok {
			out = append(out, normalized)
		}
	}
	return out
}

// visualSummary renders the proposal as human-readable text
func (s *Synthesizer) visualSummary(data StructuredData) string {
	var b strings.Builder

	switch data.Kind {
	case SketchDot:
		b.WriteString("Here's the insight I captured:\n\n")
		fmt.Fprintf(&b, "• %s\n", data.Dot.Summary)
		if data.Dot.Anchor != "" {
			fmt.Fprintf(&b, "  Anchor: %s\n", data.Dot.Anchor)
		}
		if data.Dot.Pulse != "" {
			fmt.Fprintf(&b, "  Feeling: %s\n", data.Dot.Pulse)
		}

	case SketchWheel:
		fmt.Fprintf(&b, "Here's the goal I see taking shape — %s:\n\n", data.Wheel.Name)
		if data.Wheel.Goals != "" {
			fmt.Fprintf(&b, "Goals: %s\n", data.Wheel.Goals)
		}
		if data.Wheel.Timeline != "" {
			fmt.Fprintf(&b, "Timeline: %s\n", data.Wheel.Timeline)
		}
		for _, dot := range data.Wheel.Dots {
			fmt.Fprintf(&b, "• %s\n", dot.Summary)
		}

	case SketchChakra:
		fmt.Fprintf(&b, "Here's the bigger purpose I see — %s:\n\n", data.Chakra.Name)
		if data.Chakra.Purpose != "" {
			fmt.Fprintf(&b, "Purpose: %s\n", data.Chakra.Purpose)
		}
		for _, wheel := range data.Chakra.Wheels {
			fmt.Fprintf(&b, "• %s (%s)\n", wheel.Name, wheel.Timeline)
		}

	default:
		return DegradedVisualSummary
	}

	return strings.TrimRight(b.String(), "\n")
}

// degradedProposal keeps the state machine moving when synthesis fails:
// empty structured data, a generic summary, confirmation still required
func degradedProposal(cls Classification) OrganizedProposal {
	return OrganizedProposal{
		Classification:         cls,
		Data:                   StructuredData{Kind: SketchNone},
		VisualSummary:          DegradedVisualSummary,
		UserConfirmationNeeded: true,
	}
}
