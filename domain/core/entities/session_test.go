package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dotspark-backend/domain/core/valueobjects"
)

func newTestSession(t *testing.T, owner string) *Session {
	t.Helper()
	session, err := NewSession(valueobjects.NewSessionID(), owner)
	require.NoError(t, err)
	return session
}

func TestNewSession_RequiresID(t *testing.T) {
	_, err := NewSession(valueobjects.SessionID{}, "42")
	assert.Error(t, err)
}

func TestSession_TurnLogIsAppendOnlyAndOrdered(t *testing.T) {
	session := newTestSession(t, "42")

	require.NoError(t, session.AppendUserTurn("first"))
	require.NoError(t, session.AppendAssistantTurn("second"))
	require.NoError(t, session.AppendUserTurn("third"))

	turns := session.Turns()
	require.Len(t, turns, 3)
	assert.Equal(t, "first", turns[0].Content)
	assert.Equal(t, "second", turns[1].Content)
	assert.Equal(t, "third", turns[2].Content)
	assert.False(t, turns[0].Timestamp.After(turns[2].Timestamp))

	// Mutating the returned slice must not touch the session's log.
	turns[0].Content = "tampered"
	assert.Equal(t, "first", session.Turns()[0].Content)
}

func TestSession_CompletedIsTerminal(t *testing.T) {
	session := newTestSession(t, "42")
	session.Complete()

	assert.True(t, session.IsCompleted())
	assert.Error(t, session.AppendUserTurn("too late"))
	assert.Error(t, session.AppendAssistantTurn("too late"))
	assert.Equal(t, 0, session.TurnCount())
}

func TestSession_UserTurnsExcludesAssistant(t *testing.T) {
	session := newTestSession(t, "42")
	require.NoError(t, session.AppendUserTurn("mine"))
	require.NoError(t, session.AppendAssistantTurn("theirs"))

	userTurns := session.UserTurns()
	require.Len(t, userTurns, 1)
	assert.Equal(t, "mine", userTurns[0].Content)
}

func TestSession_AdoptOwnerNeverOverwrites(t *testing.T) {
	session := newTestSession(t, "")
	assert.False(t, session.HasOwner())

	session.AdoptOwner("42")
	assert.Equal(t, "42", session.OwnerUserID())

	session.AdoptOwner("43")
	assert.Equal(t, "42", session.OwnerUserID())
}

func TestSession_SetThoughtTypeRejectsInvalid(t *testing.T) {
	session := newTestSession(t, "42")
	session.SetThoughtType(valueobjects.ThoughtTypeWheel)
	assert.Equal(t, valueobjects.ThoughtTypeWheel, session.CurrentThoughtType())

	session.SetThoughtType(valueobjects.ThoughtType("bogus"))
	assert.Equal(t, valueobjects.ThoughtTypeExploring, session.CurrentThoughtType())
}
