package organizer

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"dotspark-backend/application/ports"
	"dotspark-backend/domain/config"
	"dotspark-backend/domain/core/entities"
	"dotspark-backend/domain/core/valueobjects"
	"dotspark-backend/domain/events"
)

// Committer writes a confirmed proposal as linked records. Inserts are
// sequential and best-effort: there is no transaction, parents are written
// before children, and a mid-list failure still reports everything
// committed so far.
type Committer struct {
	thoughts  ports.ThoughtRepository
	publisher ports.EventPublisher
	cfg       *config.DomainConfig
	logger    *zap.Logger
}

// NewCommitter creates a committer
func NewCommitter(thoughts ports.ThoughtRepository, publisher ports.EventPublisher, cfg *config.DomainConfig, logger *zap.Logger) *Committer {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &Committer{
		thoughts:  thoughts,
		publisher: publisher,
		cfg:       cfg,
		logger:    logger,
	}
}

// Commit persists the proposal for ownerUserID. Storage errors are returned
// as data, never as an error value: the conversation reports the outcome and
// ends. Completing the session is the orchestrator's job, after it has
// appended the outcome message to the turn log.
func (c *Committer) Commit(
	ctx context.Context,
	proposal OrganizedProposal,
	ownerUserID string,
	session *entities.Session,
) SaveResult {
	result := SaveResult{SavedItems: []SavedItem{}}

	// The summary and completion event are recorded unconditionally: even a
	// failed save ends the conversation with the summary on record.
	defer func() {
		session.SetOrganizationSummary(proposal.VisualSummary)
		c.publishCompletion(ctx, session, len(result.SavedItems))
	}()

	if ownerUserID == "" {
		// The orchestrator short-circuits anonymous saves before reaching
		// here; this is a backstop, not a user-facing path.
		result.Message = "sign in to save your thoughts"
		return result
	}

	var err error
	switch proposal.Data.Kind {
	case SketchDot:
		err = c.commitDot(ctx, *proposal.Data.Dot, ownerUserID, session.ID().String(), "", &result)
	case SketchWheel:
		err = c.commitWheel(ctx, *proposal.Data.Wheel, ownerUserID, session.ID().String(), "", &result)
	case SketchChakra:
		err = c.commitChakra(ctx, *proposal.Data.Chakra, ownerUserID, session.ID().String(), &result)
	default:
		result.Message = "there was nothing concrete to save yet"
		return result
	}

	if err != nil {
		c.logger.Error("Commit failed part way through",
			zap.Error(err),
			zap.String("sessionID", session.ID().String()),
			zap.Int("savedItems", len(result.SavedItems)),
		)
		result.Success = false
		result.Message = fmt.Sprintf("saved %d item(s) before a storage error; please try again", len(result.SavedItems))
		return result
	}

	result.Success = true
	result.Message = fmt.Sprintf("saved %d item(s)", len(result.SavedItems))
	return result
}

// commitDot inserts a single dot, optionally linked to a parent wheel
func (c *Committer) commitDot(ctx context.Context, sketch DotSketch, ownerUserID, sessionID, wheelID string, result *SaveResult) error {
	// Normalization happened at synthesis time; re-applying it here means
	// an out-of-bound or empty sketch becomes a persistence failure rather
	// than an invalid record.
	content, err := valueobjects.NewDotContentWithConfig(sketch.Summary, sketch.Anchor, sketch.Pulse, c.cfg)
	if err != nil {
		return err
	}

	dot, err := entities.NewDot(ownerUserID, content)
	if err != nil {
		return err
	}
	dot.WheelID = wheelID

	id, err := c.thoughts.InsertDot(ctx, dot)
	if err != nil {
		return err
	}

	result.SavedItems = append(result.SavedItems, SavedItem{Type: "dot", ID: id, Name: content.Summary()})
	c.publishCaptured(ctx, "dot", id, content.Summary(), ownerUserID, sessionID)
	return nil
}

// commitWheel inserts the wheel first, then each child dot tagged with the
// wheel's generated id
func (c *Committer) commitWheel(ctx context.Context, sketch WheelSketch, ownerUserID, sessionID, chakraID string, result *SaveResult) error {
	wheel, err := entities.NewWheel(ownerUserID, sketch.Name, sketch.Goals, sketch.Timeline)
	if err != nil {
		return err
	}
	wheel.ChakraID = chakraID

	wheelID, err := c.thoughts.InsertWheel(ctx, wheel)
	if err != nil {
		return err
	}

	result.SavedItems = append(result.SavedItems, SavedItem{Type: "wheel", ID: wheelID, Name: wheel.Name})
	c.publishCaptured(ctx, "wheel", wheelID, wheel.Name, ownerUserID, sessionID)

	for _, dotSketch := range sketch.Dots {
		if err := c.commitDot(ctx, dotSketch, ownerUserID, sessionID, wheelID, result); err != nil {
			return err
		}
	}

	return nil
}

// commitChakra inserts the chakra first, then each child wheel tagged with
// the chakra's generated id
func (c *Committer) commitChakra(ctx context.Context, sketch ChakraSketch, ownerUserID, sessionID string, result *SaveResult) error {
	chakra, err := entities.NewChakra(ownerUserID, sketch.Name, sketch.Purpose)
	if err != nil {
		return err
	}

	chakraID, err := c.thoughts.InsertChakra(ctx, chakra)
	if err != nil {
		return err
	}

	result.SavedItems = append(result.SavedItems, SavedItem{Type: "chakra", ID: chakraID, Name: chakra.Name})
	c.publishCaptured(ctx, "chakra", chakraID, chakra.Name, ownerUserID, sessionID)

	for _, wheelSketch := range sketch.Wheels {
		wheel := WheelSketch{Name: wheelSketch.Name, Goals: wheelSketch.Goals, Timeline: wheelSketch.Timeline}
		if err := c.commitWheel(ctx, wheel, ownerUserID, sessionID, chakraID, result); err != nil {
			return err
		}
	}

	return nil
}

// publishCaptured emits a ThoughtCaptured event best-effort
func (c *Committer) publishCaptured(ctx context.Context, itemType, itemID, name, userID, sessionID string) {
	if c.publisher == nil {
		return
	}
	event := events.NewThoughtCaptured(itemType, itemID, name, userID, sessionID, time.Now())
	if err := c.publisher.Publish(ctx, event); err != nil {
		c.logger.Warn("Failed to publish thought.captured event",
			zap.Error(err),
			zap.String("itemID", itemID),
		)
	}
}

// publishCompletion emits a SessionCompleted event best-effort
func (c *Committer) publishCompletion(ctx context.Context, session *entities.Session, itemsSaved int) {
	if c.publisher == nil {
		return
	}
	event := events.NewSessionCompleted(
		session.ID().String(),
		session.OwnerUserID(),
		session.CurrentThoughtType().String(),
		itemsSaved,
		time.Now(),
	)
	if err := c.publisher.Publish(ctx, event); err != nil {
		c.logger.Warn("Failed to publish session.completed event",
			zap.Error(err),
			zap.String("sessionID", session.ID().String()),
		)
	}
}
