package recipes

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"regexp"
	"sync"
	"testing"
	"time"

	"stash-recipes/core/config"
	"stash-recipes/core/database"
	"stash-recipes/core/item"
	"stash-recipes/core/partition"
	"stash-recipes/core/recipe"
	"stash-recipes/core/report"
	"stash-recipes/core/storage"
	"stash-recipes/core/storage/mocks"
	"stash-recipes/feature/stash"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/minio/minio-go/v7"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var testStorage = storage.Config{
	Bucket:         "test-bucket",
	SnapshotPrefix: "snapshots/",
	ReportPrefix:   "reports/",
}

// setupMockDB creates a mock GORM DB for testing.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

// setupHistoryDB opens a migrated in-memory history database.
func setupHistoryDB(t *testing.T) *gorm.DB {
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return db
}

func loadFixture(t *testing.T) []item.Item {
	t.Helper()
	items, err := stash.NewFileSource("testdata/unid.json").Load(context.Background())
	require.NoError(t, err)
	return items
}

func TestService_Match(t *testing.T) {
	svc := NewService(nil, testStorage, nil, config.MatchConfig{}, zap.NewNop())

	rep, err := svc.Match(context.Background(), loadFixture(t), "fixture")
	require.NoError(t, err)

	assert.Equal(t, 1, rep.TotalSets)
	require.Len(t, rep.Sets, 1)
	assert.Equal(t, recipe.ChaosUnidentified, rep.Sets[0].RecipeID)
	assert.Len(t, rep.Leftovers, 2)
	assert.Empty(t, rep.Warnings)
	assert.Len(t, rep.Fingerprint, 64)
}

func TestService_Evaluate_SourceError(t *testing.T) {
	svc := NewService(nil, testStorage, nil, config.MatchConfig{}, zap.NewNop())

	_, err := svc.Evaluate(context.Background(), stash.NewFileSource("testdata/missing.json"), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestService_Match_Invariant(t *testing.T) {
	svc := NewService(nil, testStorage, nil, config.MatchConfig{}, zap.NewNop())
	svc.recipes = []recipe.Definition{{ID: "broken"}}

	_, err := svc.Match(context.Background(), loadFixture(t), "fixture")
	require.Error(t, err)
	assert.True(t, errors.Is(err, partition.ErrInvariant))
}

func TestService_Match_Cache(t *testing.T) {
	items := loadFixture(t)

	cached := NewService(nil, testStorage, nil, config.MatchConfig{CacheTTLSeconds: 60}, zap.NewNop())
	first, err := cached.Match(context.Background(), items, "a")
	require.NoError(t, err)
	second, err := cached.Match(context.Background(), items, "b")
	require.NoError(t, err)
	assert.Same(t, first, second)

	uncached := NewService(nil, testStorage, nil, config.MatchConfig{}, zap.NewNop())
	first, err = uncached.Match(context.Background(), items, "a")
	require.NoError(t, err)
	second, err = uncached.Match(context.Background(), items, "b")
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Equal(t, first, second)
}

func TestReportCache_SharedBuild(t *testing.T) {
	c := newReportCache(time.Minute)

	var (
		mu     sync.Mutex
		builds int
		wg     sync.WaitGroup
	)
	release := make(chan struct{})
	build := func() (*report.Report, error) {
		mu.Lock()
		builds++
		mu.Unlock()
		<-release
		return &report.Report{Fingerprint: "k"}, nil
	}

	results := make([]*report.Report, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			r, _, err := c.getOrBuild("k", build)
			assert.NoError(t, err)
			results[i] = r
		}(i)
	}
	time.Sleep(20 * time.Millisecond)
	close(release)
	wg.Wait()

	r, hit, err := c.getOrBuild("k", build)
	require.NoError(t, err)
	assert.True(t, hit)
	for _, got := range results {
		assert.Same(t, r, got)
	}
	assert.LessOrEqual(t, builds, len(results))
	assert.GreaterOrEqual(t, builds, 1)
}

func TestReportCache_Expiry(t *testing.T) {
	entry := &cachedReport{built: time.Now().Add(-2 * time.Minute), ttl: time.Minute}
	assert.True(t, entry.IsExpired())

	entry.built = time.Now()
	assert.False(t, entry.IsExpired())

	entry.ttl = 0
	assert.True(t, entry.IsExpired())
}

func TestReportCache_Eviction(t *testing.T) {
	stale := func() *cachedReport {
		return &cachedReport{report: &report.Report{}, built: time.Now().Add(-2 * time.Minute), ttl: time.Minute}
	}
	build := func() (*report.Report, error) { return &report.Report{}, nil }

	t.Run("LookupDropsExpired", func(t *testing.T) {
		c := newReportCache(time.Minute)
		c.entries["old"] = stale()

		_, ok := c.lookup("old")
		assert.False(t, ok)
		assert.Empty(t, c.entries)
	})

	t.Run("InsertSweepsExpired", func(t *testing.T) {
		c := newReportCache(time.Minute)
		c.entries["a"] = stale()
		c.entries["b"] = stale()

		_, hit, err := c.getOrBuild("c", build)
		require.NoError(t, err)
		assert.False(t, hit)
		assert.Len(t, c.entries, 1)
		_, ok := c.entries["c"]
		assert.True(t, ok)
	})

	t.Run("RebuildReplacesExpired", func(t *testing.T) {
		c := newReportCache(time.Minute)
		c.entries["k"] = stale()

		r, hit, err := c.getOrBuild("k", build)
		require.NoError(t, err)
		assert.False(t, hit)
		assert.Same(t, r, c.entries["k"].report)
		assert.False(t, c.entries["k"].IsExpired())
	})
}

func TestReportCache_ErrorNotCached(t *testing.T) {
	c := newReportCache(time.Minute)

	_, _, err := c.getOrBuild("k", func() (*report.Report, error) { return nil, errors.New("boom") })
	require.Error(t, err)

	r, hit, err := c.getOrBuild("k", func() (*report.Report, error) { return &report.Report{}, nil })
	require.NoError(t, err)
	assert.False(t, hit)
	assert.NotNil(t, r)
}

func TestFingerprint(t *testing.T) {
	items := loadFixture(t)
	reversed := make([]item.Item, len(items))
	for i, it := range items {
		reversed[len(items)-1-i] = it
	}
	assert.Equal(t, Fingerprint(items), Fingerprint(reversed))

	changed := append([]item.Item(nil), items...)
	changed[0].ItemLevel++
	assert.NotEqual(t, Fingerprint(items), Fingerprint(changed))

	assert.Equal(t, Fingerprint(nil), Fingerprint([]item.Item{}))
}

func TestService_Persist(t *testing.T) {
	mockClient := new(mocks.Client)
	db := setupHistoryDB(t)
	svc := NewService(mockClient, testStorage, db, config.MatchConfig{Persist: true}, zap.NewNop())

	items := loadFixture(t)
	key := "reports/" + Fingerprint(items) + ".json"
	mockClient.On("PutObject", mock.Anything, "test-bucket", key, mock.Anything, mock.Anything, mock.MatchedBy(func(o minio.PutObjectOptions) bool {
		return o.ContentType == "application/json"
	})).Return(minio.UploadInfo{Key: key}, nil).Once()

	rep, err := svc.Match(context.Background(), items, "fixture")
	require.NoError(t, err)

	runs, err := svc.History(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, rep.Fingerprint, runs[0].Fingerprint)
	assert.Equal(t, "fixture", runs[0].Source)
	assert.Equal(t, 1, runs[0].TotalSets)
	assert.Equal(t, 2, runs[0].LeftoverCount)
	assert.Equal(t, key, runs[0].ReportKey)
	mockClient.AssertExpectations(t)
}

func TestService_Persist_UploadFailureKeepsReport(t *testing.T) {
	mockClient := new(mocks.Client)
	db := setupHistoryDB(t)
	svc := NewService(mockClient, testStorage, db, config.MatchConfig{Persist: true}, zap.NewNop())

	mockClient.On("PutObject", mock.Anything, "test-bucket", mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Return(minio.UploadInfo{}, errors.New("bucket offline"))

	rep, err := svc.Match(context.Background(), loadFixture(t), "fixture")
	require.NoError(t, err)
	assert.Equal(t, 1, rep.TotalSets)

	runs, err := svc.History(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestService_Persist_NoStorage(t *testing.T) {
	svc := NewService(nil, testStorage, nil, config.MatchConfig{}, zap.NewNop())
	_, err := svc.Persist(context.Background(), &report.Report{}, "x")
	assert.ErrorIs(t, err, ErrNoStorage)
}

func TestService_MatchSnapshot(t *testing.T) {
	mockClient := new(mocks.Client)
	svc := NewService(mockClient, testStorage, nil, config.MatchConfig{}, zap.NewNop())

	page, err := os.ReadFile("testdata/unid.json")
	require.NoError(t, err)

	mockClient.On("ListObjects", mock.Anything, "test-bucket", minio.ListObjectsOptions{Prefix: "snapshots/week1/", Recursive: true}).
		Return(mocks.Objects("snapshots/week1/tab-00.json"))
	mockClient.On("GetObject", mock.Anything, "test-bucket", "snapshots/week1/tab-00.json", mock.Anything).
		Return(mocks.Body(page), nil)

	rep, err := svc.MatchSnapshot(context.Background(), "week1")
	require.NoError(t, err)
	assert.Equal(t, 1, rep.TotalSets)
	mockClient.AssertExpectations(t)
}

func TestService_MatchSnapshot_InvalidName(t *testing.T) {
	svc := NewService(new(mocks.Client), testStorage, nil, config.MatchConfig{}, zap.NewNop())

	for _, name := range []string{"", "/", "../secrets"} {
		_, err := svc.MatchSnapshot(context.Background(), name)
		assert.ErrorIs(t, err, ErrInvalidSnapshot, name)
	}
}

func TestService_Snapshots(t *testing.T) {
	mockClient := new(mocks.Client)
	svc := NewService(mockClient, testStorage, nil, config.MatchConfig{}, zap.NewNop())

	mockClient.On("ListObjects", mock.Anything, "test-bucket", minio.ListObjectsOptions{Prefix: "snapshots/", Recursive: true}).
		Return(mocks.Objects(
			"snapshots/week2/tab-00.json",
			"snapshots/week1/tab-01.json",
			"snapshots/week1/tab-00.json",
			"snapshots/loose.json",
		))

	names, err := svc.Snapshots(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"week1", "week2"}, names)
}

func TestService_StoredReport(t *testing.T) {
	mockClient := new(mocks.Client)
	svc := NewService(mockClient, testStorage, nil, config.MatchConfig{}, zap.NewNop())

	stored, err := json.Marshal(report.Report{Fingerprint: "abc", TotalSets: 3})
	require.NoError(t, err)
	mockClient.On("GetObject", mock.Anything, "test-bucket", "reports/abc.json", mock.Anything).
		Return(mocks.Body(stored), nil)
	mockClient.On("GetObject", mock.Anything, "test-bucket", "reports/bad.json", mock.Anything).
		Return(mocks.Body([]byte("{")), nil)

	rep, err := svc.StoredReport(context.Background(), "abc")
	require.NoError(t, err)
	assert.Equal(t, 3, rep.TotalSets)

	_, err = svc.StoredReport(context.Background(), "bad")
	assert.ErrorContains(t, err, "failed to decode report")
	assert.NotErrorIs(t, err, ErrReportNotFound)
}

func TestService_StoredReport_Missing(t *testing.T) {
	mockClient := new(mocks.Client)
	svc := NewService(mockClient, testStorage, nil, config.MatchConfig{}, zap.NewNop())

	noSuchKey := minio.ErrorResponse{Code: "NoSuchKey", StatusCode: 404}
	mockClient.On("GetObject", mock.Anything, "test-bucket", "reports/gone.json", mock.Anything).
		Return(nil, noSuchKey)
	mockClient.On("GetObject", mock.Anything, "test-bucket", "reports/denied.json", mock.Anything).
		Return(nil, minio.ErrorResponse{Code: "AccessDenied", StatusCode: 403})

	_, err := svc.StoredReport(context.Background(), "gone")
	assert.ErrorIs(t, err, ErrReportNotFound)
	assert.ErrorContains(t, err, "gone")

	_, err = svc.StoredReport(context.Background(), "denied")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrReportNotFound)
}

func TestService_History_NoDatabase(t *testing.T) {
	svc := NewService(nil, testStorage, nil, config.MatchConfig{}, zap.NewNop())

	_, err := svc.History(context.Background(), 5)
	assert.ErrorIs(t, err, ErrNoDatabase)
	_, err = svc.Prune(context.Background(), time.Now())
	assert.ErrorIs(t, err, ErrNoDatabase)
}

func TestService_History_Query(t *testing.T) {
	db, sqlMock := setupMockDB(t)
	svc := NewService(nil, testStorage, db, config.MatchConfig{}, zap.NewNop())

	rows := sqlmock.NewRows([]string{"id", "fingerprint", "source", "total_sets", "leftover_count", "warning_count", "report_key", "created_at"}).
		AddRow("r1", "fp", "upload", 2, 5, 0, "reports/fp.json", time.Now())
	sqlMock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `match_runs` ORDER BY created_at desc LIMIT")).
		WillReturnRows(rows)

	runs, err := svc.History(context.Background(), 5)
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, "r1", runs[0].ID)
	assert.Equal(t, 2, runs[0].TotalSets)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestService_Prune(t *testing.T) {
	mockClient := new(mocks.Client)
	db := setupHistoryDB(t)
	svc := NewService(mockClient, testStorage, db, config.MatchConfig{}, zap.NewNop())

	now := time.Now().UTC()
	runs := []MatchRun{
		{ID: "old-1", ReportKey: "reports/a.json", CreatedAt: now.Add(-48 * time.Hour)},
		{ID: "old-2", ReportKey: "reports/b.json", CreatedAt: now.Add(-47 * time.Hour)},
		{ID: "old-3", ReportKey: "reports/a.json", CreatedAt: now.Add(-46 * time.Hour)},
		{ID: "new-1", ReportKey: "reports/b.json", CreatedAt: now.Add(-time.Hour)},
	}
	require.NoError(t, db.Create(&runs).Error)

	var removed []string
	mockClient.On("RemoveObjects", mock.Anything, "test-bucket", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			for obj := range args.Get(2).(<-chan minio.ObjectInfo) {
				removed = append(removed, obj.Key)
			}
		}).
		Return(nil)

	n, err := svc.Prune(context.Background(), now.Add(-24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.Equal(t, []string{"reports/a.json"}, removed)

	left, err := svc.History(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, "new-1", left[0].ID)
}

func TestService_Prune_RemoveError(t *testing.T) {
	mockClient := new(mocks.Client)
	db := setupHistoryDB(t)
	svc := NewService(mockClient, testStorage, db, config.MatchConfig{}, zap.NewNop())

	require.NoError(t, db.Create(&MatchRun{ID: "old", ReportKey: "reports/a.json", CreatedAt: time.Now().UTC().Add(-48 * time.Hour)}).Error)

	errs := make(chan minio.RemoveObjectError, 1)
	errs <- minio.RemoveObjectError{ObjectName: "reports/a.json", Err: errors.New("denied")}
	close(errs)
	mockClient.On("RemoveObjects", mock.Anything, "test-bucket", mock.Anything, mock.Anything).
		Return((<-chan minio.RemoveObjectError)(errs))

	_, err := svc.Prune(context.Background(), time.Now().UTC().Add(-24*time.Hour))
	assert.ErrorContains(t, err, "denied")

	runs, err := svc.History(context.Background(), 10)
	require.NoError(t, err)
	assert.Len(t, runs, 1, "runs stay when their reports could not be removed")
}
