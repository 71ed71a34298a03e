// Package dynamodb implements the organizer's persistence ports on a
// single DynamoDB table with a PK/SK layout and one GSI for owner-level
// queries.
package dynamodb

import (
	"context"
	"fmt"
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

// SessionStore implements the SessionStore port using DynamoDB
type SessionStore struct {
	client    *dynamodb.Client
	tableName string
	indexName string
	logger    *zap.Logger
}

// NewSessionStore creates a new SessionStore
func NewSessionStore(client *dynamodb.Client, tableName, indexName string, logger *zap.Logger) ports.SessionStore {
	return &SessionStore{
		client:    client,
		tableName: tableName,
		indexName: indexName,
		logger:    logger,
	}
}

// turnItem is the stored form of one conversation turn
type turnItem struct {
	Role      string `dynamodbav:"Role"`
	Content   string `dynamodbav:"Content"`
	Timestamp string `dynamodbav:"Timestamp"`
}

// sessionItem represents the DynamoDB item structure for a session
type sessionItem struct {
	PK                  string     `dynamodbav:"PK"`
	SK                  string     `dynamodbav:"SK"`
	GSI1PK              string     `dynamodbav:"GSI1PK,omitempty"`
	GSI1SK              string     `dynamodbav:"GSI1SK,omitempty"`
	EntityType          string     `dynamodbav:"EntityType"`
	SessionID           string     `dynamodbav:"SessionID"`
	OwnerUserID         string     `dynamodbav:"OwnerUserID,omitempty"`
	ThoughtType         string     `dynamodbav:"ThoughtType"`
	Turns               []turnItem `dynamodbav:"Turns"`
	OrganizationSummary string     `dynamodbav:"OrganizationSummary,omitempty"`
	Status              string     `dynamodbav:"Status"`
	CreatedAt           string     `dynamodbav:"CreatedAt"`
	UpdatedAt           string     `dynamodbav:"UpdatedAt"`
}

func sessionPK(id valueobjects.SessionID) string {
	return fmt.Sprintf("SESSION#%s", id.String())
}

// Get retrieves a session by id
func (s *SessionStore) Get(ctx context.Context, id valueobjects.SessionID) (*entities.Session, error) {
	key, err := attributevalue.MarshalMap(map[string]string{
		"PK": sessionPK(id),
		"SK": "METADATA",
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("marshal session key", err)
	}

	out, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(s.tableName),
		Key:       key,
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("get session", err)
	}
	if out.Item == nil {
		return nil, pkgerrors.NewNotFoundError("session")
	}

	var item sessionItem
	if err := attributevalue.UnmarshalMap(out.Item, &item); err != nil {
		return nil, pkgerrors.NewDatabaseError("unmarshal session", err)
	}

	return item.toEntity()
}

// Save persists a session (create or full update)
func (s *SessionStore) Save(ctx context.Context, session *entities.Session) error {
	item := sessionItem{
		PK:                  sessionPK(session.ID()),
		SK:                  "METADATA",
		EntityType:          "SESSION",
		SessionID:           session.ID().String(),
		OwnerUserID:         session.OwnerUserID(),
		ThoughtType:         session.CurrentThoughtType().String(),
		Turns:               toTurnItems(session.Turns()),
		OrganizationSummary: session.OrganizationSummary(),
		Status:              string(session.Status()),
		CreatedAt:           session.CreatedAt().Format(time.RFC3339Nano),
		UpdatedAt:           session.UpdatedAt().Format(time.RFC3339Nano),
	}

	if session.HasOwner() {
		item.GSI1PK = fmt.Sprintf("USER#%s", session.OwnerUserID())
		item.GSI1SK = fmt.Sprintf("SESSION#%s", item.UpdatedAt)
	}

	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return pkgerrors.NewDatabaseError("marshal session", err)
	}

	_, err = s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(s.tableName),
		Item:      av,
	})
	if err != nil {
		s.logger.Error("Failed to save session",
			zap.Error(err),
			zap.String("sessionID", session.ID().String()),
		)
		return pkgerrors.NewDatabaseError("put session", err)
	}

	return nil
}

// ListByOwner retrieves a user's sessions, most recently updated first
func (s *SessionStore) ListByOwner(ctx context.Context, ownerUserID string, limit int) ([]*entities.Session, error) {
	keyCond := expression.Key("GSI1PK").Equal(expression.Value(fmt.Sprintf("USER#%s", ownerUserID))).
		And(expression.Key("GSI1SK").BeginsWith("SESSION#"))

	expr, err := expression.NewBuilder().WithKeyCondition(keyCond).Build()
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("build session query", err)
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(s.tableName),
		IndexName:                 aws.String(s.indexName),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
		ScanIndexForward:          aws.Bool(false), // newest first
	}
	if limit > 0 {
		input.Limit = aws.Int32(int32(limit))
	}

	out, err := s.client.Query(ctx, input)
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("query sessions", err)
	}

	sessions := make([]*entities.Session, 0, len(out.Items))
	for _, raw := range out.Items {
		var item sessionItem
		if err := attributevalue.UnmarshalMap(raw, &item); err != nil {
			s.logger.Warn("Skipping unreadable session item", zap.Error(err))
			continue
		}
		session, err := item.toEntity()
		if err != nil {
			s.logger.Warn("Skipping invalid session item", zap.Error(err))
			continue
		}
		sessions = append(sessions, session)
	}

	return sessions, nil
}

func (item sessionItem) toEntity() (*entities.Session, error) {
	id, err := valueobjects.ParseSessionID(item.SessionID)
	if err != nil {
		return nil, err
	}

	createdAt, _ := time.Parse(time.RFC3339Nano, item.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, item.UpdatedAt)

	return entities.ReconstructSession(
		id,
		item.OwnerUserID,
		valueobjects.ParseThoughtType(item.ThoughtType),
		fromTurnItems(item.Turns),
		item.OrganizationSummary,
		entities.SessionStatus(item.Status),
		createdAt,
		updatedAt,
	)
}

func toTurnItems(turns []entities.ConversationTurn) []turnItem {
	out := make([]turnItem, 0, len(turns))
	for _, turn := range turns {
		out = append(out, turnItem{
			Role:      string(turn.Role),
			Content:   turn.Content,
			Timestamp: turn.Timestamp.Format(time.RFC3339Nano),
		})
	}
	return out
}

func fromTurnItems(items []turnItem) []entities.ConversationTurn {
	out := make([]entities.ConversationTurn, 0, len(items))
	for _, item := range items {
		ts, _ := time.Parse(time.RFC3339Nano, item.Timestamp)
		out = append(out, entities.ConversationTurn{
			Role:      entities.TurnRole(item.Role),
			Content:   item.Content,
			Timestamp: ts,
		})
	}
	return out
}
