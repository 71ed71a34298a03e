package di

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awsdynamodb "github.com/aws/aws-sdk-go-v2/service/dynamodb"
	awseventbridge "github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"go.uber.org/zap"

	"dotspark-backend/application/organizer"
	"dotspark-backend/application/ports"
	domainconfig "dotspark-backend/domain/config"
	"dotspark-backend/infrastructure/config"
	"dotspark-backend/infrastructure/llm"
	"dotspark-backend/infrastructure/messaging/eventbridge"
	"dotspark-backend/infrastructure/persistence/dynamodb"
	"dotspark-backend/pkg/auth"
)

// ProvideLogger creates a new logger instance
func ProvideLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.Environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

// ProvideAWSConfig creates AWS configuration
func ProvideAWSConfig(ctx context.Context, cfg *config.Config) (aws.Config, error) {
	return awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.AWSRegion),
	)
}

// ProvideDynamoDBClient creates a DynamoDB client
func ProvideDynamoDBClient(awsCfg aws.Config) *awsdynamodb.Client {
	return awsdynamodb.NewFromConfig(awsCfg)
}

// ProvideEventBridgeClient creates an EventBridge client
func ProvideEventBridgeClient(awsCfg aws.Config) *awseventbridge.Client {
	return awseventbridge.NewFromConfig(awsCfg)
}

// ProvideDomainConfig exposes the organizer thresholds
func ProvideDomainConfig(cfg *config.Config) *domainconfig.DomainConfig {
	return cfg.Domain
}

// ProvideSessionStore creates a session store
func ProvideSessionStore(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.SessionStore {
	return dynamodb.NewSessionStore(client, cfg.DynamoDBTable, cfg.IndexName, logger)
}

// ProvidePatternStore creates a pattern store
func ProvidePatternStore(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.PatternStore {
	return dynamodb.NewPatternStore(client, cfg.DynamoDBTable, logger)
}

// ProvideThoughtRepository creates a thought repository
func ProvideThoughtRepository(client *awsdynamodb.Client, cfg *config.Config, logger *zap.Logger) ports.ThoughtRepository {
	return dynamodb.NewThoughtRepository(client, cfg.DynamoDBTable, logger)
}

// ProvideEventPublisher creates an event publisher. A nil publisher is
// returned when events are disabled; the committer treats that as no-op.
func ProvideEventPublisher(client *awseventbridge.Client, cfg *config.Config, logger *zap.Logger) ports.EventPublisher {
	if !cfg.EnableEvents {
		return nil
	}
	return eventbridge.NewPublisher(client, cfg.EventBusName, logger)
}

// ProvideReasoner creates the external reasoning adapter
func ProvideReasoner(cfg *config.Config, logger *zap.Logger) ports.Reasoner {
	return llm.NewOpenAIReasoner(llm.Config{
		APIKey:  cfg.OpenAIAPIKey,
		BaseURL: cfg.OpenAIBaseURL,
		Model:   cfg.OpenAIModel,
		Timeout: 30 * time.Second,
	}, logger)
}

// ProvideClassifier creates the thought classifier
func ProvideClassifier(reasoner ports.Reasoner, logger *zap.Logger) *organizer.Classifier {
	return organizer.NewClassifier(reasoner, logger)
}

// ProvideDialogueGuide creates the dialogue guide
func ProvideDialogueGuide(reasoner ports.Reasoner, domain *domainconfig.DomainConfig, logger *zap.Logger) *organizer.DialogueGuide {
	return organizer.NewDialogueGuide(reasoner, domain, logger)
}

// ProvideSynthesizer creates the structure synthesizer
func ProvideSynthesizer(reasoner ports.Reasoner, domain *domainconfig.DomainConfig, logger *zap.Logger) *organizer.Synthesizer {
	return organizer.NewSynthesizer(reasoner, domain, logger)
}

// ProvideCommitter creates the committer
func ProvideCommitter(thoughts ports.ThoughtRepository, publisher ports.EventPublisher, domain *domainconfig.DomainConfig, logger *zap.Logger) *organizer.Committer {
	return organizer.NewCommitter(thoughts, publisher, domain, logger)
}

// ProvidePatternLearner creates the pattern learner
func ProvidePatternLearner(patterns ports.PatternStore, domain *domainconfig.DomainConfig, logger *zap.Logger) *organizer.PatternLearner {
	return organizer.NewPatternLearner(patterns, domain, logger)
}

// ProvideOrchestrator creates the conversation orchestrator
func ProvideOrchestrator(
	sessions ports.SessionStore,
	patterns ports.PatternStore,
	thoughts ports.ThoughtRepository,
	classifier *organizer.Classifier,
	guide *organizer.DialogueGuide,
	synthesizer *organizer.Synthesizer,
	committer *organizer.Committer,
	learner *organizer.PatternLearner,
	domain *domainconfig.DomainConfig,
	logger *zap.Logger,
) *organizer.Orchestrator {
	return organizer.NewOrchestrator(
		sessions,
		patterns,
		thoughts,
		classifier,
		guide,
		synthesizer,
		committer,
		learner,
		domain,
		logger,
	)
}

// ProvideJWTValidator creates the JWT validator. Development falls back to
// a fixed secret so local runs work without configuration; production
// requires JWT_SECRET via config validation.
func ProvideJWTValidator(cfg *config.Config) (*auth.JWTValidator, error) {
	secret := cfg.JWTSecret
	if secret == "" {
		secret = "dotspark-dev-secret"
	}
	return auth.NewJWTValidator(auth.JWTConfig{
		SecretKey: secret,
		Issuer:    cfg.JWTIssuer,
	})
}
