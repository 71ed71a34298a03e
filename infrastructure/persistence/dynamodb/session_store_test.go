package dynamodb

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dotspark-backend/domain/core/entities"
	"dotspark-backend/domain/core/valueobjects"
)

func TestSessionItem_RoundTripsEntity(t *testing.T) {
	id := valueobjects.NewSessionID()
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	updated := created.Add(5 * time.Minute)

	original, err := entities.ReconstructSession(
		id,
		"user-1",
		valueobjects.ThoughtTypeWheel,
		[]entities.ConversationTurn{
			{Role: entities.RoleUser, Content: "a thought", Timestamp: created},
			{Role: entities.RoleAssistant, Content: "a question", Timestamp: updated},
		},
		"the proposal",
		entities.SessionActive,
		created,
		updated,
	)
	require.NoError(t, err)

	item := sessionItem{
		PK:                  sessionPK(id),
		SK:                  "METADATA",
		EntityType:          "SESSION",
		SessionID:           id.String(),
		OwnerUserID:         original.OwnerUserID(),
		ThoughtType:         original.CurrentThoughtType().String(),
		Turns:               toTurnItems(original.Turns()),
		OrganizationSummary: original.OrganizationSummary(),
		Status:              string(original.Status()),
		CreatedAt:           created.Format(time.RFC3339Nano),
		UpdatedAt:           updated.Format(time.RFC3339Nano),
	}

	restored, err := item.toEntity()
	require.NoError(t, err)

	assert.True(t, restored.ID().Equals(id))
	assert.Equal(t, "user-1", restored.OwnerUserID())
	assert.Equal(t, valueobjects.ThoughtTypeWheel, restored.CurrentThoughtType())
	assert.Equal(t, "the proposal", restored.OrganizationSummary())
	require.Equal(t, 2, restored.TurnCount())
	assert.Equal(t, original.Turns()[0].Content, restored.Turns()[0].Content)
	assert.True(t, restored.CreatedAt().Equal(created))
}

func TestSessionItem_UnknownThoughtTypeFallsBack(t *testing.T) {
	id := valueobjects.NewSessionID()
	item := sessionItem{
		SessionID:   id.String(),
		ThoughtType: "spiral",
		Status:      string(entities.SessionActive),
		CreatedAt:   time.Now().Format(time.RFC3339Nano),
		UpdatedAt:   time.Now().Format(time.RFC3339Nano),
	}

	restored, err := item.toEntity()
	require.NoError(t, err)
	assert.Equal(t, valueobjects.ThoughtTypeExploring, restored.CurrentThoughtType())
}
