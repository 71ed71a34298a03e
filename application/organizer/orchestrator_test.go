package organizer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"dotspark-backend/application/ports"
	"dotspark-backend/domain/config"
	"dotspark-backend/domain/core/entities"
	"dotspark-backend/domain/core/valueobjects"
	"dotspark-backend/infrastructure/persistence/memory"
)

// scriptedReasoner routes each call on the system prompt so one stub can
// serve classification, guidance and synthesis in a single turn.
type scriptedReasoner struct {
	classifyJSON string
	guideReply   string
	synthJSON    string
	err          error
}

func (r *scriptedReasoner) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if r.err != nil {
		return "", r.err
	}
	switch {
	case strings.Contains(systemPrompt, "intent classifier"):
		return r.classifyJSON, nil
	case strings.Contains(systemPrompt, "structured capture"):
		return r.synthJSON, nil
	default:
		return r.guideReply, nil
	}
}

func classificationJSON(thoughtType string, confidence float64) string {
	return fmt.Sprintf(`{"type":%q,"confidence":%g,"reasoning":"test"}`, thoughtType, confidence)
}

type testEngine struct {
	orch     *Orchestrator
	sessions *memory.SessionStore
	patterns *memory.PatternStore
	thoughts *memory.ThoughtRepository
}

func newTestEngine(t *testing.T, reasoner ports.Reasoner) *testEngine {
	t.Helper()

	logger := zap.NewNop()
	cfg := config.DefaultDomainConfig()
	sessions := memory.NewSessionStore()
	patterns := memory.NewPatternStore()
	thoughts := memory.NewThoughtRepository()

	orch := NewOrchestrator(
		sessions,
		patterns,
		thoughts,
		NewClassifier(reasoner, logger),
		NewDialogueGuide(reasoner, cfg, logger),
		NewSynthesizer(reasoner, cfg, logger),
		NewCommitter(thoughts, nil, cfg, logger),
		NewPatternLearner(patterns, cfg, logger),
		cfg,
		logger,
	)

	return &testEngine{orch: orch, sessions: sessions, patterns: patterns, thoughts: thoughts}
}

func newSessionID(t *testing.T) valueobjects.SessionID {
	t.Helper()
	return valueobjects.NewSessionID()
}

func seedSession(t *testing.T, engine *testEngine, id valueobjects.SessionID, owner string, userTurns int) *entities.Session {
	t.Helper()

	session, err := entities.NewSession(id, owner)
	require.NoError(t, err)
	for i := 0; i < userTurns; i++ {
		require.NoError(t, session.AppendUserTurn(fmt.Sprintf("thought number %d about learning piano", i)))
		require.NoError(t, session.AppendAssistantTurn("tell me more"))
	}
	require.NoError(t, engine.sessions.Save(context.Background(), session))
	return session
}

func TestHandleOrganizeThoughts_FirstTurnStaysExploring(t *testing.T) {
	reasoner := &scriptedReasoner{
		classifyJSON: classificationJSON("dot", 0.95),
		guideReply:   "What sparked that thought?",
	}
	engine := newTestEngine(t, reasoner)
	id := newSessionID(t)

	result, err := engine.orch.HandleOrganizeThoughts(context.Background(), "I just realized something", "", id, valueobjects.StepInitial)
	require.NoError(t, err)

	// High confidence alone never advances a shallow conversation.
	assert.Equal(t, valueobjects.StepExploring, result.NextStep)
	assert.Equal(t, "What sparked that thought?", result.Response)
	assert.Nil(t, result.OrganizedSummary)
	assert.Nil(t, result.SaveResult)

	session, err := engine.sessions.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 2, session.TurnCount())
	assert.Len(t, session.UserTurns(), 1)
}

func TestHandleOrganizeThoughts_DeepConfidentConversationAdvances(t *testing.T) {
	reasoner := &scriptedReasoner{
		classifyJSON: classificationJSON("wheel", 0.9),
		guideReply:   "Sounds like a plan is forming.",
	}
	engine := newTestEngine(t, reasoner)
	id := newSessionID(t)
	seedSession(t, engine, id, "", 4) // 8 turns on record

	result, err := engine.orch.HandleOrganizeThoughts(context.Background(), "and I want to finish by June", "", id, valueobjects.StepExploring)
	require.NoError(t, err)

	assert.Equal(t, valueobjects.StepOrganizing, result.NextStep)
}

func TestHandleOrganizeThoughts_ConfidenceAtThresholdDoesNotAdvance(t *testing.T) {
	reasoner := &scriptedReasoner{
		classifyJSON: classificationJSON("wheel", 0.7), // gate requires strictly greater
		guideReply:   "Keep going.",
	}
	engine := newTestEngine(t, reasoner)
	id := newSessionID(t)
	seedSession(t, engine, id, "", 5)

	result, err := engine.orch.HandleOrganizeThoughts(context.Background(), "more detail", "", id, valueobjects.StepExploring)
	require.NoError(t, err)

	assert.Equal(t, valueobjects.StepExploring, result.NextStep)
}

func TestHandleOrganizeThoughts_OrganizingProposesAndAsksForConfirmation(t *testing.T) {
	reasoner := &scriptedReasoner{
		classifyJSON: classificationJSON("dot", 0.9),
		synthJSON:    `{"summary":"Mornings are my best writing hours","anchor":"the quiet before email","pulse":"calm"}`,
	}
	engine := newTestEngine(t, reasoner)
	id := newSessionID(t)
	seedSession(t, engine, id, "", 4)

	result, err := engine.orch.HandleOrganizeThoughts(context.Background(), "that is the heart of it", "", id, valueobjects.StepOrganizing)
	require.NoError(t, err)

	assert.Equal(t, valueobjects.StepConfirming, result.NextStep)
	require.NotNil(t, result.OrganizedSummary)
	assert.True(t, result.OrganizedSummary.UserConfirmationNeeded)
	assert.Contains(t, result.Response, "Mornings are my best writing hours")
	assert.Contains(t, result.Response, "save")

	session, err := engine.sessions.Get(context.Background(), id)
	require.NoError(t, err)
	assert.NotEmpty(t, session.OrganizationSummary())
	assert.False(t, session.IsCompleted())
}

func TestHandleOrganizeThoughts_ConfirmationCommitsDot(t *testing.T) {
	reasoner := &scriptedReasoner{
		classifyJSON: classificationJSON("dot", 0.9),
		synthJSON:    `{"summary":"Mornings are my best writing hours","anchor":"the quiet before email","pulse":"calm"}`,
	}
	engine := newTestEngine(t, reasoner)
	id := newSessionID(t)
	seedSession(t, engine, id, "", 4)

	result, err := engine.orch.HandleOrganizeThoughts(context.Background(), "yes, save it", "42", id, valueobjects.StepConfirming)
	require.NoError(t, err)

	assert.Equal(t, valueobjects.StepCompleted, result.NextStep)
	require.NotNil(t, result.SaveResult)
	assert.True(t, result.SaveResult.Success)
	require.Len(t, result.SaveResult.SavedItems, 1)
	assert.Equal(t, "dot", result.SaveResult.SavedItems[0].Type)

	dots := engine.thoughts.Dots()
	require.Len(t, dots, 1)
	assert.Equal(t, "42", dots[0].UserID)
	assert.Equal(t, "Mornings are my best writing hours", dots[0].Summary)
	assert.Equal(t, "calm", dots[0].Pulse)

	session, err := engine.sessions.Get(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, session.IsCompleted())

	// The persisted log ends with the outcome message, not the user's "yes".
	turns := session.Turns()
	require.NotEmpty(t, turns)
	last := turns[len(turns)-1]
	assert.Equal(t, entities.RoleAssistant, last.Role)
	assert.Contains(t, last.Content, "saved 1 item(s)")
}

func TestHandleOrganizeThoughts_AnonymousConfirmationPromptsSignIn(t *testing.T) {
	reasoner := &scriptedReasoner{
		classifyJSON: classificationJSON("dot", 0.9),
		synthJSON:    `{"summary":"an insight","anchor":"","pulse":""}`,
	}
	engine := newTestEngine(t, reasoner)
	id := newSessionID(t)
	seedSession(t, engine, id, "", 4)

	result, err := engine.orch.HandleOrganizeThoughts(context.Background(), "save", "", id, valueobjects.StepConfirming)
	require.NoError(t, err)

	assert.Equal(t, valueobjects.StepCompleted, result.NextStep)
	assert.Contains(t, result.Response, "sign in")
	assert.Nil(t, result.SaveResult)
	assert.Empty(t, engine.thoughts.Dots())

	session, err := engine.sessions.Get(context.Background(), id)
	require.NoError(t, err)
	assert.True(t, session.IsCompleted())
}

func TestHandleOrganizeThoughts_NonAffirmativeReturnsToOrganizing(t *testing.T) {
	reasoner := &scriptedReasoner{
		classifyJSON: classificationJSON("dot", 0.9),
		synthJSON:    `{"summary":"an insight"}`,
	}
	engine := newTestEngine(t, reasoner)
	id := newSessionID(t)
	seedSession(t, engine, id, "42", 4)

	result, err := engine.orch.HandleOrganizeThoughts(context.Background(), "change the wording first", "42", id, valueobjects.StepConfirming)
	require.NoError(t, err)

	assert.Equal(t, valueobjects.StepOrganizing, result.NextStep)
	assert.Empty(t, engine.thoughts.Dots())

	session, err := engine.sessions.Get(context.Background(), id)
	require.NoError(t, err)
	assert.False(t, session.IsCompleted())
}

func TestHandleOrganizeThoughts_ReasonerOutageDegradesGracefully(t *testing.T) {
	reasoner := &scriptedReasoner{err: errors.New("upstream timeout")}
	engine := newTestEngine(t, reasoner)
	id := newSessionID(t)

	result, err := engine.orch.HandleOrganizeThoughts(context.Background(), "hello", "", id, valueobjects.StepInitial)
	require.NoError(t, err)

	assert.Equal(t, FallbackPrompt, result.Response)
	assert.Equal(t, valueobjects.StepExploring, result.NextStep)
}

func TestHandleOrganizeThoughts_OutageDuringOrganizingStillReachesConfirming(t *testing.T) {
	reasoner := &scriptedReasoner{err: errors.New("upstream down")}
	engine := newTestEngine(t, reasoner)
	id := newSessionID(t)
	seedSession(t, engine, id, "", 4)

	result, err := engine.orch.HandleOrganizeThoughts(context.Background(), "ready", "", id, valueobjects.StepOrganizing)
	require.NoError(t, err)

	assert.Equal(t, valueobjects.StepConfirming, result.NextStep)
	assert.Contains(t, result.Response, DegradedVisualSummary)
}

func TestHandleOrganizeThoughts_CompletedSessionIsTerminal(t *testing.T) {
	engine := newTestEngine(t, &scriptedReasoner{})
	id := newSessionID(t)

	session, err := entities.NewSession(id, "")
	require.NoError(t, err)
	session.Complete()
	require.NoError(t, engine.sessions.Save(context.Background(), session))

	result, err := engine.orch.HandleOrganizeThoughts(context.Background(), "one more thing", "", id, valueobjects.StepExploring)
	require.NoError(t, err)

	assert.Equal(t, valueobjects.StepCompleted, result.NextStep)

	reloaded, err := engine.sessions.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, 0, reloaded.TurnCount())
}

func TestHandleOrganizeThoughts_BlankInputAppendsNoUserTurn(t *testing.T) {
	reasoner := &scriptedReasoner{
		classifyJSON: classificationJSON("exploring", 0.2),
		guideReply:   "What's on your mind?",
	}
	engine := newTestEngine(t, reasoner)
	id := newSessionID(t)

	_, err := engine.orch.HandleOrganizeThoughts(context.Background(), "   ", "", id, valueobjects.StepInitial)
	require.NoError(t, err)

	session, err := engine.sessions.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Empty(t, session.UserTurns())
}

func TestHandleOrganizeThoughts_InvalidStepTreatedAsInitial(t *testing.T) {
	reasoner := &scriptedReasoner{
		classifyJSON: classificationJSON("exploring", 0.2),
		guideReply:   "Go on.",
	}
	engine := newTestEngine(t, reasoner)
	id := newSessionID(t)

	result, err := engine.orch.HandleOrganizeThoughts(context.Background(), "hi", "", id, valueobjects.ConversationStep("bogus"))
	require.NoError(t, err)

	assert.Equal(t, valueobjects.StepExploring, result.NextStep)
}

func TestHandleOrganizeThoughts_AdoptsOwnerMidConversation(t *testing.T) {
	reasoner := &scriptedReasoner{
		classifyJSON: classificationJSON("exploring", 0.3),
		guideReply:   "Tell me more.",
	}
	engine := newTestEngine(t, reasoner)
	id := newSessionID(t)

	_, err := engine.orch.HandleOrganizeThoughts(context.Background(), "started anonymous", "", id, valueobjects.StepInitial)
	require.NoError(t, err)

	_, err = engine.orch.HandleOrganizeThoughts(context.Background(), "now signed in", "42", id, valueobjects.StepExploring)
	require.NoError(t, err)

	session, err := engine.sessions.Get(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, "42", session.OwnerUserID())

	owned, err := engine.sessions.ListByOwner(context.Background(), "42", 10)
	require.NoError(t, err)
	assert.Len(t, owned, 1)
}

func TestIsAffirmative(t *testing.T) {
	assert.True(t, isAffirmative("Yes, please"))
	assert.True(t, isAffirmative("looks good to me"))
	assert.True(t, isAffirmative("SAVE it"))
	assert.False(t, isAffirmative("not quite"))
	assert.False(t, isAffirmative(""))
}
