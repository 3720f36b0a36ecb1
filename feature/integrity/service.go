package integrity

import (
	"context"

	"stash-recipes/core/storage"
	"stash-recipes/feature/integrity/checks"
	"stash-recipes/feature/recipes"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles integrity checks.
type Service struct {
	client  storage.Client
	storage storage.Config
	logger  *zap.Logger
	db      *gorm.DB
}

// NewService creates a new integrity service.
func NewService(client storage.Client, storageCfg storage.Config, logger *zap.Logger, db *gorm.DB) *Service {
	return &Service{
		client:  client,
		storage: storageCfg,
		logger:  logger,
		db:      db,
	}
}

// CheckStructure returns a list of missing folders.
func (s *Service) CheckStructure(ctx context.Context) ([]string, error) {
	return checks.CheckStructure(ctx, s.client, s.storage.Bucket, checks.RequiredFolders(s.storage))
}

// FixStructure creates the missing folders.
func (s *Service) FixStructure(ctx context.Context, missing []string) error {
	return checks.FixStructure(ctx, s.client, s.storage.Bucket, s.logger, missing)
}

// CheckSnapshots validates every stored snapshot page.
func (s *Service) CheckSnapshots(ctx context.Context) (*checks.SnapshotReport, error) {
	return checks.CheckSnapshots(ctx, s.client, s.storage.Bucket, s.storage.SnapshotPrefix)
}

// CheckServer checks the history database schema.
func (s *Service) CheckServer() (*checks.ServerReport, error) {
	return checks.CheckServerIntegrity(s.db, recipes.MatchRun{})
}
