package organizer

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"dotspark-backend/application/ports"
	"dotspark-backend/domain/config"
	"dotspark-backend/domain/core/entities"
	"dotspark-backend/domain/core/valueobjects"
	pkgerrors "dotspark-backend/pkg/errors"
)

// Conversation-facing messages for the fixed turns of the state machine.
const (
	saveQuestion     = "\n\nWould you like me to save this, or should we adjust anything first?"
	signInPrompt     = "You'll need to sign in before I can save this for you. Everything you shared stays in this conversation in the meantime."
	adjustQuestion   = "No problem — what would you like to change before we save it?"
	completedMessage = "This conversation is already wrapped up. Start a new one whenever you're ready to capture more."
)

// affirmativePhrases confirm a proposal, matched case-insensitively
var affirmativePhrases = []string{"save", "yes", "looks good"}

// Orchestrator is the state machine driving organizing conversations.
// Each call is one request-response turn; all state crosses call
// boundaries through the session and pattern stores, never through
// in-process memory.
type Orchestrator struct {
	sessions    ports.SessionStore
	thoughts    ports.ThoughtRepository
	classifier  *Classifier
	guide       *DialogueGuide
	synthesizer *Synthesizer
	committer   *Committer
	learner     *PatternLearner
	patterns    ports.PatternStore
	cfg         *config.DomainConfig
	logger      *zap.Logger
}

// NewOrchestrator creates the orchestrator
func NewOrchestrator(
	sessions ports.SessionStore,
	patterns ports.PatternStore,
	thoughts ports.ThoughtRepository,
	classifier *Classifier,
	guide *DialogueGuide,
	synthesizer *Synthesizer,
	committer *Committer,
	learner *PatternLearner,
	cfg *config.DomainConfig,
	logger *zap.Logger,
) *Orchestrator {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &Orchestrator{
		sessions:    sessions,
		patterns:    patterns,
		thoughts:    thoughts,
		classifier:  classifier,
		guide:       guide,
		synthesizer: synthesizer,
		committer:   committer,
		learner:     learner,
		cfg:         cfg,
		logger:      logger,
	}
}

// HandleOrganizeThoughts processes one conversational turn. The returned
// error is reserved for session store failures; every engine or capability
// failure is folded into the result so the conversation keeps moving.
func (o *Orchestrator) HandleOrganizeThoughts(
	ctx context.Context,
	userInput string,
	ownerUserID string,
	sessionID valueobjects.SessionID,
	step valueobjects.ConversationStep,
) (*OrganizeResult, error) {
	session, err := o.loadOrCreateSession(ctx, sessionID, ownerUserID)
	if err != nil {
		return nil, err
	}

	// Completed sessions are terminal: a new session id starts fresh.
	if session.IsCompleted() {
		return &OrganizeResult{
			Response: completedMessage,
			NextStep: valueobjects.StepCompleted,
		}, nil
	}

	session.AdoptOwner(ownerUserID)

	userInput = strings.TrimSpace(userInput)
	if userInput != "" {
		if err := session.AppendUserTurn(userInput); err != nil {
			return nil, err
		}
	}

	if !step.IsValid() || step == valueobjects.StepCompleted {
		step = valueobjects.StepInitial
	}

	var result *OrganizeResult
	switch step {
	case valueobjects.StepOrganizing:
		result = o.handleOrganizing(ctx, session)
	case valueobjects.StepConfirming:
		result = o.handleConfirming(ctx, session, userInput)
	default:
		// initial and exploring share handling
		result = o.handleExploring(ctx, session)
	}

	// Persist the updated turn log and derived fields before returning, so
	// the next invocation (possibly another process) resumes exactly here.
	if err := o.sessions.Save(ctx, session); err != nil {
		return nil, err
	}

	return result, nil
}

// handleExploring runs classification plus dialogue guidance and decides
// whether the conversation is ready to organize
func (o *Orchestrator) handleExploring(ctx context.Context, session *entities.Session) *OrganizeResult {
	turns := session.Turns()
	memory := o.patternMemory(ctx, session.OwnerUserID())
	titles := o.recentTitles(ctx, session.OwnerUserID())

	cls := o.classifier.Classify(ctx, turns, memory, titles)
	session.SetThoughtType(cls.Type)

	reply := o.guide.Guide(ctx, cls, turns, memory)
	if err := session.AppendAssistantTurn(reply); err != nil {
		o.logger.Warn("Failed to append assistant turn", zap.Error(err))
	}

	o.learner.UpdatePatterns(ctx, session.OwnerUserID(), cls, turns)

	// Dual-threshold gate: heuristic confidence alone never advances the
	// conversation, it also has to be deep enough.
	next := valueobjects.StepExploring
	if cls.Confidence > o.cfg.OrganizeConfidence && session.TurnCount() > o.cfg.MinTurnsBeforeOrganize {
		next = valueobjects.StepOrganizing
	}

	return &OrganizeResult{
		Response: reply,
		NextStep: next,
	}
}

// handleOrganizing re-derives the classification from the now-longer log,
// synthesizes a proposal and asks for confirmation
func (o *Orchestrator) handleOrganizing(ctx context.Context, session *entities.Session) *OrganizeResult {
	turns := session.Turns()
	memory := o.patternMemory(ctx, session.OwnerUserID())
	titles := o.recentTitles(ctx, session.OwnerUserID())

	cls := o.classifier.Classify(ctx, turns, memory, titles)
	session.SetThoughtType(cls.Type)

	proposal := o.synthesizer.Synthesize(ctx, cls, turns, memory)
	session.SetOrganizationSummary(proposal.VisualSummary)

	o.learner.UpdatePatterns(ctx, session.OwnerUserID(), cls, turns)

	response := proposal.VisualSummary + saveQuestion
	if err := session.AppendAssistantTurn(response); err != nil {
		o.logger.Warn("Failed to append assistant turn", zap.Error(err))
	}

	return &OrganizeResult{
		Response:         response,
		NextStep:         valueobjects.StepConfirming,
		OrganizedSummary: &proposal,
	}
}

// handleConfirming routes the user's verdict on the proposal
func (o *Orchestrator) handleConfirming(ctx context.Context, session *entities.Session, userInput string) *OrganizeResult {
	if !isAffirmative(userInput) {
		if err := session.AppendAssistantTurn(adjustQuestion); err != nil {
			o.logger.Warn("Failed to append assistant turn", zap.Error(err))
		}
		return &OrganizeResult{
			Response: adjustQuestion,
			NextStep: valueobjects.StepOrganizing,
		}
	}

	// Persistence without an owner is disallowed: short-circuit with a
	// sign-in prompt and still complete the session to avoid a stuck state.
	if !session.HasOwner() {
		if err := session.AppendAssistantTurn(signInPrompt); err != nil {
			o.logger.Warn("Failed to append assistant turn", zap.Error(err))
		}
		session.Complete()
		return &OrganizeResult{
			Response: signInPrompt,
			NextStep: valueobjects.StepCompleted,
		}
	}

	// Re-derive classification and proposal from the full log before
	// committing; the confirmed summary was itself derived the same way.
	turns := session.Turns()
	memory := o.patternMemory(ctx, session.OwnerUserID())
	titles := o.recentTitles(ctx, session.OwnerUserID())

	cls := o.classifier.Classify(ctx, turns, memory, titles)
	proposal := o.synthesizer.Synthesize(ctx, cls, turns, memory)

	saveResult := o.committer.Commit(ctx, proposal, session.OwnerUserID(), session)

	// The outcome message goes on the log before the session is sealed, so
	// the persisted history ends with what the user was told.
	response := o.commitResponse(saveResult)
	if err := session.AppendAssistantTurn(response); err != nil {
		o.logger.Warn("Failed to append assistant turn", zap.Error(err))
	}
	session.Complete()

	return &OrganizeResult{
		Response:   response,
		NextStep:   valueobjects.StepCompleted,
		SaveResult: &saveResult,
	}
}

// loadOrCreateSession creates a session lazily on first sight of an id
func (o *Orchestrator) loadOrCreateSession(
	ctx context.Context,
	sessionID valueobjects.SessionID,
	ownerUserID string,
) (*entities.Session, error) {
	session, err := o.sessions.Get(ctx, sessionID)
	if err == nil {
		return session, nil
	}
	if !pkgerrors.IsNotFound(err) {
		return nil, err
	}
	return entities.NewSession(sessionID, ownerUserID)
}

// patternMemory loads the user's recent pattern records; failures degrade
// to empty context rather than failing the turn
func (o *Orchestrator) patternMemory(ctx context.Context, ownerUserID string) []*entities.PatternRecord {
	if ownerUserID == "" {
		return nil
	}
	records, err := o.patterns.ListRecent(ctx, ownerUserID, o.cfg.MaxPatternRecords)
	if err != nil {
		o.logger.Warn("Failed to load pattern memory", zap.Error(err), zap.String("userID", ownerUserID))
		return nil
	}
	return records
}

// recentTitles loads recent saved titles as classification context
func (o *Orchestrator) recentTitles(ctx context.Context, ownerUserID string) []string {
	if ownerUserID == "" {
		return nil
	}
	titles, err := o.thoughts.RecentTitles(ctx, ownerUserID, o.cfg.MaxRecentTitles)
	if err != nil {
		o.logger.Warn("Failed to load recent titles", zap.Error(err), zap.String("userID", ownerUserID))
		return nil
	}
	return titles
}

// commitResponse turns a save result into the closing assistant message
func (o *Orchestrator) commitResponse(result SaveResult) string {
	var b strings.Builder
	b.WriteString(result.Message)
	for _, item := range result.SavedItems {
		b.WriteString("\n• ")
		b.WriteString(item.Type)
		b.WriteString(": ")
		b.WriteString(item.Name)
	}
	return b.String()
}

// isAffirmative matches the user's text against the confirmation phrases
func isAffirmative(input string) bool {
	lowered := strings.ToLower(input)
	for _, phrase := range affirmativePhrases {
		if strings.Contains(lowered, phrase) {
			return true
		}
	}
	return false
}
