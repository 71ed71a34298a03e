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
	pkgerrors "dotspark-backend/pkg/errors"
)

// ThoughtRepository implements the ThoughtRepository port using DynamoDB.
// Dots, wheels and chakras share the user's partition under typed sort keys.
type ThoughtRepository struct {
	client    *dynamodb.Client
	tableName string
	logger    *zap.Logger
}

// NewThoughtRepository creates a new ThoughtRepository
func NewThoughtRepository(client *dynamodb.Client, tableName string, logger *zap.Logger) ports.ThoughtRepository {
	return &ThoughtRepository{
		client:    client,
		tableName: tableName,
		logger:    logger,
	}
}

// dotItem represents the DynamoDB item structure for a dot
type dotItem struct {
	PK          string `dynamodbav:"PK"`
	SK          string `dynamodbav:"SK"`
	EntityType  string `dynamodbav:"EntityType"`
	DotID       string `dynamodbav:"DotID"`
	UserID      string `dynamodbav:"UserID"`
	Summary     string `dynamodbav:"Summary"`
	Anchor      string `dynamodbav:"Anchor,omitempty"`
	Pulse       string `dynamodbav:"Pulse,omitempty"`
	WheelID     string `dynamodbav:"WheelID,omitempty"`
	ChakraID    string `dynamodbav:"ChakraID,omitempty"`
	SourceType  string `dynamodbav:"SourceType"`
	CaptureMode string `dynamodbav:"CaptureMode"`
	CreatedAt   string `dynamodbav:"CreatedAt"`
}

// wheelItem represents the DynamoDB item structure for a wheel
type wheelItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	EntityType string `dynamodbav:"EntityType"`
	WheelID    string `dynamodbav:"WheelID"`
	UserID     string `dynamodbav:"UserID"`
	Name       string `dynamodbav:"Name"`
	Goals      string `dynamodbav:"Goals,omitempty"`
	Timeline   string `dynamodbav:"Timeline,omitempty"`
	Category   string `dynamodbav:"Category"`
	Color      string `dynamodbav:"Color"`
	ChakraID   string `dynamodbav:"ChakraID,omitempty"`
	CreatedAt  string `dynamodbav:"CreatedAt"`
}

// chakraItem represents the DynamoDB item structure for a chakra
type chakraItem struct {
	PK         string `dynamodbav:"PK"`
	SK         string `dynamodbav:"SK"`
	EntityType string `dynamodbav:"EntityType"`
	ChakraID   string `dynamodbav:"ChakraID"`
	UserID     string `dynamodbav:"UserID"`
	Name       string `dynamodbav:"Name"`
	Purpose    string `dynamodbav:"Purpose,omitempty"`
	Category   string `dynamodbav:"Category"`
	Color      string `dynamodbav:"Color"`
	CreatedAt  string `dynamodbav:"CreatedAt"`
}

func userPK(userID string) string {
	return fmt.Sprintf("USER#%s", userID)
}

// InsertDot writes a dot and returns its generated id
func (r *ThoughtRepository) InsertDot(ctx context.Context, dot *entities.Dot) (string, error) {
	item := dotItem{
		PK:          userPK(dot.UserID),
		SK:          fmt.Sprintf("DOT#%s", dot.ID),
		EntityType:  "DOT",
		DotID:       dot.ID,
		UserID:      dot.UserID,
		Summary:     dot.Summary,
		Anchor:      dot.Anchor,
		Pulse:       dot.Pulse,
		WheelID:     dot.WheelID,
		ChakraID:    dot.ChakraID,
		SourceType:  dot.SourceType,
		CaptureMode: dot.CaptureMode,
		CreatedAt:   dot.CreatedAt.Format(time.RFC3339Nano),
	}
	if err := r.putItem(ctx, item, "dot", dot.ID); err != nil {
		return "", err
	}
	return dot.ID, nil
}

// InsertWheel writes a wheel and returns its generated id
func (r *ThoughtRepository) InsertWheel(ctx context.Context, wheel *entities.Wheel) (string, error) {
	item := wheelItem{
		PK:         userPK(wheel.UserID),
		SK:         fmt.Sprintf("WHEEL#%s", wheel.ID),
		EntityType: "WHEEL",
		WheelID:    wheel.ID,
		UserID:     wheel.UserID,
		Name:       wheel.Name,
		Goals:      wheel.Goals,
		Timeline:   wheel.Timeline,
		Category:   wheel.Category,
		Color:      wheel.Color,
		ChakraID:   wheel.ChakraID,
		CreatedAt:  wheel.CreatedAt.Format(time.RFC3339Nano),
	}
	if err := r.putItem(ctx, item, "wheel", wheel.ID); err != nil {
		return "", err
	}
	return wheel.ID, nil
}

// InsertChakra writes a chakra and returns its generated id
func (r *ThoughtRepository) InsertChakra(ctx context.Context, chakra *entities.Chakra) (string, error) {
	item := chakraItem{
		PK:         userPK(chakra.UserID),
		SK:         fmt.Sprintf("CHAKRA#%s", chakra.ID),
		EntityType: "CHAKRA",
		ChakraID:   chakra.ID,
		UserID:     chakra.UserID,
		Name:       chakra.Name,
		Purpose:    chakra.Purpose,
		Category:   chakra.Category,
		Color:      chakra.Color,
		CreatedAt:  chakra.CreatedAt.Format(time.RFC3339Nano),
	}
	if err := r.putItem(ctx, item, "chakra", chakra.ID); err != nil {
		return "", err
	}
	return chakra.ID, nil
}

func (r *ThoughtRepository) putItem(ctx context.Context, item any, kind, id string) error {
	av, err := attributevalue.MarshalMap(item)
	if err != nil {
		return pkgerrors.NewDatabaseError(fmt.Sprintf("marshal %s", kind), err)
	}

	_, err = r.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(r.tableName),
		Item:      av,
	})
	if err != nil {
		r.logger.Error("Failed to insert thought",
			zap.Error(err),
			zap.String("kind", kind),
			zap.String("id", id),
		)
		return pkgerrors.NewDatabaseError(fmt.Sprintf("put %s", kind), err)
	}

	return nil
}

// titleRow is the projection read back for RecentTitles
type titleRow struct {
	EntityType string `dynamodbav:"EntityType"`
	Summary    string `dynamodbav:"Summary"`
	Name       string `dynamodbav:"Name"`
	CreatedAt  string `dynamodbav:"CreatedAt"`
}

// RecentTitles retrieves recent dot/wheel/chakra titles for a user. The
// user partition also holds pattern items, so results are filtered by
// entity type and sorted by creation time in memory.
func (r *ThoughtRepository) RecentTitles(ctx context.Context, ownerUserID string, limit int) ([]string, error) {
	keyCond := expression.Key("PK").Equal(expression.Value(userPK(ownerUserID)))
	filter := expression.Name("EntityType").In(
		expression.Value("DOT"),
		expression.Value("WHEEL"),
		expression.Value("CHAKRA"),
	)

	expr, err := expression.NewBuilder().
		WithKeyCondition(keyCond).
		WithFilter(filter).
		Build()
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("build titles query", err)
	}

	out, err := r.client.Query(ctx, &dynamodb.QueryInput{
		TableName:                 aws.String(r.tableName),
		KeyConditionExpression:    expr.KeyCondition(),
		FilterExpression:          expr.Filter(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	})
	if err != nil {
		return nil, pkgerrors.NewDatabaseError("query titles", err)
	}

	rows := make([]titleRow, 0, len(out.Items))
	for _, raw := range out.Items {
		var row titleRow
		if err := attributevalue.UnmarshalMap(raw, &row); err != nil {
			r.logger.Warn("Skipping unreadable thought item", zap.Error(err))
			continue
		}
		rows = append(rows, row)
	}

	sort.Slice(rows, func(i, j int) bool {
		return rows[i].CreatedAt > rows[j].CreatedAt
	})

	titles := make([]string, 0, len(rows))
	for _, row := range rows {
		title := row.Name
		if row.EntityType == "DOT" {
			title = row.Summary
		}
		if title == "" {
			continue
		}
		titles = append(titles, title)
		if limit > 0 && len(titles) >= limit {
			break
		}
	}

	return titles, nil
}
