package organizer

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"dotspark-backend/domain/config"
	"dotspark-backend/domain/core/entities"
	"dotspark-backend/domain/core/valueobjects"
	"dotspark-backend/infrastructure/persistence/memory"
)

func newLearner(t *testing.T) (*PatternLearner, *memory.PatternStore) {
	t.Helper()
	store := memory.NewPatternStore()
	return NewPatternLearner(store, config.DefaultDomainConfig(), zap.NewNop()), store
}

func userTurn(content string) entities.ConversationTurn {
	return entities.ConversationTurn{Role: entities.RoleUser, Content: content}
}

func TestUpdatePatterns_CreatesRecordOnFirstEncounter(t *testing.T) {
	learner, store := newLearner(t)
	cls := Classification{Type: valueobjects.ThoughtTypeWheel, Confidence: 0.8}

	learner.UpdatePatterns(context.Background(), "42", cls, []entities.ConversationTurn{
		userTurn("Training schedule for the marathon, building endurance slowly."),
	})

	record, err := store.FindByOwnerAndPattern(context.Background(), "42", valueobjects.ThoughtTypeWheel)
	require.NoError(t, err)
	assert.Equal(t, entities.StyleBrief, record.ConversationStyle())
	assert.Contains(t, record.Keywords(), "marathon")
	assert.Contains(t, record.Keywords(), "endurance")
}

func TestUpdatePatterns_DetailedStyleForLongConversations(t *testing.T) {
	learner, store := newLearner(t)
	cls := Classification{Type: valueobjects.ThoughtTypeDot}

	turns := make([]entities.ConversationTurn, 0, 10)
	for i := 0; i < 10; i++ {
		turns = append(turns, userTurn(fmt.Sprintf("reflection number%d", i)))
	}
	learner.UpdatePatterns(context.Background(), "42", cls, turns)

	record, err := store.FindByOwnerAndPattern(context.Background(), "42", valueobjects.ThoughtTypeDot)
	require.NoError(t, err)
	assert.Equal(t, entities.StyleDetailed, record.ConversationStyle())
}

func TestUpdatePatterns_AnonymousLearnsNothing(t *testing.T) {
	learner, store := newLearner(t)
	cls := Classification{Type: valueobjects.ThoughtTypeDot}

	learner.UpdatePatterns(context.Background(), "", cls, []entities.ConversationTurn{
		userTurn("marathon training endurance"),
	})

	records, err := store.ListRecent(context.Background(), "", 10)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestUpdatePatterns_MergesIntoExistingRecord(t *testing.T) {
	learner, store := newLearner(t)
	cls := Classification{Type: valueobjects.ThoughtTypeWheel}

	learner.UpdatePatterns(context.Background(), "42", cls, []entities.ConversationTurn{userTurn("marathon training")})
	learner.UpdatePatterns(context.Background(), "42", cls, []entities.ConversationTurn{userTurn("interval workouts")})

	record, err := store.FindByOwnerAndPattern(context.Background(), "42", valueobjects.ThoughtTypeWheel)
	require.NoError(t, err)
	keywords := record.Keywords()
	assert.Contains(t, keywords, "marathon")
	assert.Contains(t, keywords, "interval")
}

func TestExtractKeywords_FiltersAndCaps(t *testing.T) {
	learner, _ := newLearner(t)

	keywords := learner.extractKeywords([]entities.ConversationTurn{
		userTurn("This is really about something: the marathon, the Marathon!"),
		{Role: entities.RoleAssistant, Content: "assistant words should never count"},
		userTurn("cat dog it a of"),
	})

	// Stopwords, short words and duplicates are gone; case is folded.
	assert.Equal(t, []string{"marathon"}, keywords)
}

func TestExtractKeywords_CapsPerCall(t *testing.T) {
	learner, _ := newLearner(t)
	cfg := config.DefaultDomainConfig()

	words := make([]string, 0, 30)
	for i := 0; i < 30; i++ {
		words = append(words, fmt.Sprintf("keyword%02d", i))
	}
	keywords := learner.extractKeywords([]entities.ConversationTurn{userTurn(strings.Join(words, " "))})

	assert.Len(t, keywords, cfg.MaxNewKeywordsPerTurn)
}

func TestMergeKeywords_MostRecentBias(t *testing.T) {
	record, err := entities.NewPatternRecord("42", valueobjects.ThoughtTypeDot, []string{"oldest"}, entities.StyleBrief)
	require.NoError(t, err)

	for i := 0; i < 25; i++ {
		record.MergeKeywords([]string{fmt.Sprintf("kw%02d", i)}, 20)
	}

	keywords := record.Keywords()
	assert.Len(t, keywords, 20)
	assert.NotContains(t, keywords, "oldest")
	assert.Contains(t, keywords, "kw24")
}
