package recipes

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"stash-recipes/core/config"
	"stash-recipes/core/item"
	"stash-recipes/core/partition"
	"stash-recipes/core/recipe"
	"stash-recipes/core/report"
	"stash-recipes/core/serializer"
	"stash-recipes/core/storage"
	"stash-recipes/feature/stash"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var (
	// ErrNoDatabase is returned by history operations when no database is connected.
	ErrNoDatabase = errors.New("history database not connected")
	// ErrNoStorage is returned by bucket operations when no storage client is configured.
	ErrNoStorage = errors.New("storage not configured")
	// ErrInvalidSnapshot is returned for snapshot names that cannot address a folder.
	ErrInvalidSnapshot = errors.New("invalid snapshot name")
	// ErrReportNotFound is returned when no report is stored for a fingerprint.
	ErrReportNotFound = errors.New("report not found")
)

// Service evaluates stash snapshots against the recipe rule set.
type Service struct {
	client  storage.Client
	storage storage.Config
	db      *gorm.DB
	logger  *zap.Logger
	recipes []recipe.Definition
	cache   *reportCache
	persist bool
}

// NewService creates a recipe service over the built-in rule set.
// client and db may be nil for purely local evaluation.
func NewService(client storage.Client, storageCfg storage.Config, db *gorm.DB, matchCfg config.MatchConfig, logger *zap.Logger) *Service {
	return &Service{
		client:  client,
		storage: storageCfg,
		db:      db,
		logger:  logger,
		recipes: recipe.All(),
		cache:   newReportCache(matchCfg.CacheTTL()),
		persist: matchCfg.Persist,
	}
}

// Recipes returns the recipe definitions in priority order.
func (s *Service) Recipes() []recipe.Definition {
	return recipe.All()
}

// Evaluate loads src and matches its items. name labels the run in the history.
func (s *Service) Evaluate(ctx context.Context, src stash.Source, name string) (*report.Report, error) {
	items, err := src.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load snapshot %s: %w", name, err)
	}
	return s.Match(ctx, items, name)
}

// Match partitions items and returns the report. Reports are shared through the cache
// and must not be modified by callers.
func (s *Service) Match(ctx context.Context, items []item.Item, name string) (*report.Report, error) {
	fp := Fingerprint(items)
	l := s.logger.With(zap.String("source", name), zap.String("fingerprint", fp))

	rep, cached, err := s.cache.getOrBuild(fp, func() (*report.Report, error) {
		start := time.Now()
		res, err := partition.Match(items, s.recipes)
		if err != nil {
			l.Error("Recipe matching failed", zap.Error(err))
			return nil, err
		}
		for _, w := range res.Warnings {
			l.Warn("Skipped stash item", zap.String("item_id", w.ItemID), zap.String("reason", w.Reason))
		}

		rep := report.Build(res, s.recipes)
		rep.Fingerprint = fp
		l.Info("Matched stash snapshot",
			zap.Int("items", len(items)),
			zap.Int("sets", rep.TotalSets),
			zap.Int("leftovers", len(rep.Leftovers)),
			zap.Duration("duration", time.Since(start)),
		)
		return rep, nil
	})
	if err != nil {
		return nil, err
	}
	if cached {
		l.Debug("Report served from cache")
	}

	if s.persist {
		if _, err := s.Persist(ctx, rep, name); err != nil {
			// The report is still valid; history is best effort
			l.Error("Failed to persist report", zap.Error(err))
		}
	}
	return rep, nil
}

// MatchSnapshot evaluates the stored snapshot folder name.
func (s *Service) MatchSnapshot(ctx context.Context, name string) (*report.Report, error) {
	if s.client == nil {
		return nil, ErrNoStorage
	}
	name = strings.Trim(name, "/")
	if name == "" || strings.Contains(name, "..") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSnapshot, name)
	}
	src := &stash.ObjectSource{
		Client: s.client,
		Bucket: s.storage.Bucket,
		Prefix: s.storage.SnapshotKey(name) + "/",
	}
	return s.Evaluate(ctx, src, name)
}

// Snapshots lists the stored snapshot names.
func (s *Service) Snapshots(ctx context.Context) ([]string, error) {
	if s.client == nil {
		return nil, ErrNoStorage
	}
	keys, err := storage.ListKeys(ctx, s.client, s.storage.Bucket, s.storage.SnapshotPrefix)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	names := []string{}
	for _, page := range stash.PageNames(keys, s.storage.SnapshotPrefix) {
		folder, _, ok := strings.Cut(page, "/")
		if !ok {
			continue
		}
		if _, dup := seen[folder]; dup {
			continue
		}
		seen[folder] = struct{}{}
		names = append(names, folder)
	}
	sort.Strings(names)
	return names, nil
}

// Persist writes rep to the bucket and records a run. Without a database only the
// report object is written and the returned run is not stored.
func (s *Service) Persist(ctx context.Context, rep *report.Report, name string) (*MatchRun, error) {
	if s.client == nil {
		return nil, ErrNoStorage
	}

	data, err := serializer.Marshal(serializer.FormatJSON, rep)
	if err != nil {
		return nil, err
	}

	key := s.storage.ReportKey(rep.Fingerprint + "." + serializer.FormatJSON.Extension())
	_, err = s.client.PutObject(ctx, s.storage.Bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: serializer.FormatJSON.ContentType(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to upload report %s: %w", key, err)
	}

	run := &MatchRun{
		ID:            uuid.NewString(),
		Fingerprint:   rep.Fingerprint,
		Source:        name,
		TotalSets:     rep.TotalSets,
		LeftoverCount: len(rep.Leftovers),
		WarningCount:  len(rep.Warnings),
		ReportKey:     key,
		CreatedAt:     time.Now().UTC(),
	}
	if s.db == nil {
		return run, nil
	}
	if err := s.db.WithContext(ctx).Create(run).Error; err != nil {
		return nil, fmt.Errorf("failed to record run: %w", err)
	}
	s.logger.Info("Recorded match run", zap.String("run_id", run.ID), zap.String("report", key))
	return run, nil
}

// StoredReport reads a persisted report by fingerprint.
func (s *Service) StoredReport(ctx context.Context, fingerprint string) (*report.Report, error) {
	if s.client == nil {
		return nil, ErrNoStorage
	}
	key := s.storage.ReportKey(fingerprint + "." + serializer.FormatJSON.Extension())
	data, err := storage.ReadObject(ctx, s.client, s.storage.Bucket, key)
	if storage.IsNotFound(err) {
		return nil, fmt.Errorf("%w: %s", ErrReportNotFound, fingerprint)
	}
	if err != nil {
		return nil, err
	}
	var rep report.Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return nil, fmt.Errorf("failed to decode report %s: %w", key, err)
	}
	return &rep, nil
}

// History returns the most recent runs, newest first.
func (s *Service) History(ctx context.Context, limit int) ([]MatchRun, error) {
	if s.db == nil {
		return nil, ErrNoDatabase
	}
	if limit <= 0 {
		limit = 20
	}
	runs := []MatchRun{}
	if err := s.db.WithContext(ctx).Order("created_at desc").Limit(limit).Find(&runs).Error; err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	return runs, nil
}

// Prune deletes runs recorded before cutoff together with report objects no newer run
// still references. It returns the number of deleted runs.
func (s *Service) Prune(ctx context.Context, cutoff time.Time) (int, error) {
	if s.db == nil {
		return 0, ErrNoDatabase
	}
	db := s.db.WithContext(ctx)

	var old []MatchRun
	if err := db.Where("created_at < ?", cutoff).Find(&old).Error; err != nil {
		return 0, fmt.Errorf("failed to query old runs: %w", err)
	}
	if len(old) == 0 {
		return 0, nil
	}

	var live []string
	if err := db.Model(&MatchRun{}).Where("created_at >= ?", cutoff).Pluck("report_key", &live).Error; err != nil {
		return 0, fmt.Errorf("failed to query live reports: %w", err)
	}
	keep := make(map[string]struct{}, len(live))
	for _, k := range live {
		keep[k] = struct{}{}
	}

	var stale []string
	seen := make(map[string]struct{})
	for _, r := range old {
		if r.ReportKey == "" {
			continue
		}
		if _, ok := keep[r.ReportKey]; ok {
			continue
		}
		if _, ok := seen[r.ReportKey]; ok {
			continue
		}
		seen[r.ReportKey] = struct{}{}
		stale = append(stale, r.ReportKey)
	}

	if len(stale) > 0 && s.client != nil {
		if err := s.removeObjects(ctx, stale); err != nil {
			return 0, err
		}
	}

	if err := db.Where("created_at < ?", cutoff).Delete(&MatchRun{}).Error; err != nil {
		return 0, fmt.Errorf("failed to delete old runs: %w", err)
	}

	s.logger.Info("Pruned match history", zap.Int("runs", len(old)), zap.Int("reports", len(stale)))
	return len(old), nil
}

func (s *Service) removeObjects(ctx context.Context, keys []string) error {
	objects := make(chan minio.ObjectInfo, len(keys))
	for _, k := range keys {
		objects <- minio.ObjectInfo{Key: k}
	}
	close(objects)

	var errs []error
	for rerr := range s.client.RemoveObjects(ctx, s.storage.Bucket, objects, minio.RemoveObjectsOptions{}) {
		errs = append(errs, fmt.Errorf("failed to remove %s: %w", rerr.ObjectName, rerr.Err))
	}
	return errors.Join(errs...)
}
