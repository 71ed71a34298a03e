package dynamodb

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"go.uber.org/zap"

	"dotspark-backend/application/ports"
	"dotspark-backend/domain/core/entities"
	"dotspark-backend/domain/core/valueobjects"
	pkgerrors "dotspark-backend/pkg/errors"
)

// PatternStore implements the PatternStore port using DynamoDB. One item
// exists per (user, thoughtPattern) pair.
type PatternStore struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewPatternStore creates a new PatternStore
func NewPatternStore(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.PatternStore {
	return &PatternStore{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// patternItem represents the DynamoDB item structure for a pattern record
type patternItem struct {
	PK                string   `dynamodbav:"PK"`
	SK                string   `dynamodbav:"SK"`
	EntityType        string   `dynamodbav:"EntityType"`
	OwnerUserID       string   `dynamodbav:"OwnerUserID"`
	ThoughtPattern    string   `dynamodbav:"ThoughtPattern"`
	Keywords          []string `dynamodbav:"Keywords"`
	ConversationStyle string   `dynamodbav:"ConversationStyle"`
	PreferredTopics   []string `dynamodbav:"PreferredTopics"`
	UpdatedAt         string   `dynamodbav:"UpdatedAt"`
}

func patternKey(ownerUserID string, pattern valueobjects.ThoughtType) (string, string) {
	return fmt.Sprintf("USER#%s", ownerUserID), fmt.Sprintf("PATTERN#%s", pattern.String())
}

// FindByOwnerAndPattern retrieves the record for one pattern type
func (s *PatternStore) FindByOwnerAndPattern(
	ctx context.Context,
	ownerUserID string,
	pattern valueobjects.ThoughtType,
) (*entities.PatternRecord, error) {
	pk, sk := patternKey(ownerUserID, pattern)
	key, err := attributevalue.MarshalMap(map[string]string{"PK": pk, "SK": sk})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("marshal pattern key", err)
	}

	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key:       key,
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get pattern", err)
	}
	if out.Item == nil {
		return nil, pkgerrors.NewNotFoundError("pattern")
	}

	var item patternItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, pkgerrors.NewDatabaseError("unmarshal pattern", err)
	}

	return item.toEntity(), nil
}

// ListRecent retrieves a user's most recently updated records. A user holds
// at most one record per thought type, so the partition is read whole and
// sorted in memory.
func (s *PatternStore) ListRecent(ctx context.Context, ownerUserID string, limit int) ([]*entities.PatternRecord, error) {
	keyCond := expression.Key("PK").Equal(expression.Value(fmt.Sprintf("USER#%s", ownerUserID))).
		And(expression.Key("SK").BeginsWith("PATTERN#"))

	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("build pattern query", err)
	}

	out, err := s.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(s.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("query patterns", err)
	}

	records := make([]*entities.PatternRecord, 0, len(out.Items))
	for _, raw := range out.Items {
		var item patternItem
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			s.logger.Warn("Skipping unreadable pattern item", zap.Error(err))
			continue
		}
		records = append(records, item.toEntity())
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].UpdatedAt().After(records[j].UpdatedAt())
	})
	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}

	return records, nil
}

// Upsert creates or replaces a record
func (s *PatternStore) Upsert(ctx context.Context, record *entities.PatternRecord) error {
	pk, sk := patternKey(record.OwnerUserID(), record.ThoughtPattern())
	item := patternItem{
		PK:                pk,
		SK:                sk,
		EntityType:        "PATTERN",
		OwnerUserID:       record.OwnerUserID(),
		ThoughtPattern:    record.ThoughtPattern().String(),
		Keywords:          record.Keywords(),
		ConversationStyle: string(record.ConversationStyle()),
		PreferredTopics:   record.PreferredTopics(),
		UpdatedAt:         record.UpdatedAt().Format(time.RFC3339Nano),
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return pkgerrors.NewDatabaseError("marshal pattern", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      av,
	})
	if err != nil {
		s.logger.Error("Failed to upsert pattern",
			zap.Error(err),
			zap.String("userID", record.OwnerUserID()),
			zap.String("pattern", record.ThoughtPattern().String()),
		)
		return pkgerrors.NewDatabaseError("put pattern", err)
	}

	return nil
}

func (item patternItem) toEntity() *entities.PatternRecord {
	updatedAt, _ := time.Parse(time.RFC3339Nano, item.UpdatedAt)
	return entities.ReconstructPatternRecord(
		item.OwnerUserID,
		valueobjects.ParseThoughtType(item.ThoughtPattern),
		item.Keywords,
		entities.ConversationStyle(item.ConversationStyle),
		item.PreferredTopics,
		updatedAt,
	)
}
