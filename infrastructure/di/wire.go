//go:build wireinject
// +build wireinject

package di

import (
	"context"

	"github.com/google/wire"
	"go.uber.org/zap"

	"dotspark-backend/application/organizer"
	"dotspark-backend/application/ports"
	"dotspark-backend/infrastructure/config"
	"dotspark-backend/pkg/auth"
)

// Container holds all application dependencies
type Container struct {
	Config         *config.Config
	Logger         *zap.Logger
	SessionStore   ports.SessionStore
	PatternStore   ports.PatternStore
	ThoughtRepo    ports.ThoughtRepository
	EventPublisher ports.EventPublisher
	Reasoner       ports.Reasoner
	Orchestrator   *organizer.Orchestrator
	JWTValidator   *auth.JWTValidator
}

// SuperSet is the main provider set containing all providers
var SuperSet = wire.NewSet(
	ProvideLogger,
	ProvideAWSConfig,
	ProvideDynamoDBClient,
	ProvideEventBridgeClient,
	ProvideDomainConfig,
	ProvideSessionStore,
	ProvidePatternStore,
	ProvideThoughtRepository,
	ProvideEventPublisher,
	ProvideReasoner,
	ProvideClassifier,
	ProvideDialogueGuide,
	ProvideSynthesizer,
	ProvideCommitter,
	ProvidePatternLearner,
	ProvideOrchestrator,
	ProvideJWTValidator,
	wire.Struct(new(Container), "*"),
)

// InitializeContainer creates a fully wired container
func InitializeContainer(ctx context.Context, cfg *config.Config) (*Container, error) {
	wire.Build(SuperSet)
	return nil, nil // Wire will replace this
}
