package recipes

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"sync"
	"time"

	"stash-recipes/core/item"
	"stash-recipes/core/report"

	"golang.org/x/sync/singleflight"
)

// cachedReport is a report together with its build time.
type cachedReport struct {
	report *report.Report
	built  time.Time
	ttl    time.Duration
}

// IsExpired returns true once the entry outlived its TTL. A zero TTL never caches.
func (c *cachedReport) IsExpired() bool {
	if c.ttl == 0 {
		return true
	}
	return time.Since(c.built) > c.ttl
}

// reportCache holds reports keyed by snapshot fingerprint.
type reportCache struct {
	mu      sync.RWMutex
	entries map[string]*cachedReport
	sf      singleflight.Group
	ttl     time.Duration
}

func newReportCache(ttl time.Duration) *reportCache {
	return &reportCache{
		entries: make(map[string]*cachedReport),
		ttl:     ttl,
	}
}

// getOrBuild returns the cached report for key, or builds and stores a new one.
// Concurrent callers of the same key share one build.
func (c *reportCache) getOrBuild(key string, build func() (*report.Report, error)) (*report.Report, bool, error) {
	if r, ok := c.lookup(key); ok {
		return r, true, nil
	}

	hit := true
	result, err, _ := c.sf.Do(key, func() (interface{}, error) {
		// Double-check after acquiring the singleflight slot
		if r, ok := c.lookup(key); ok {
			return r, nil
		}
		hit = false

		r, err := build()
		if err != nil {
			return nil, err
		}

		if c.ttl > 0 {
			c.mu.Lock()
			c.sweepLocked()
			c.entries[key] = &cachedReport{report: r, built: time.Now(), ttl: c.ttl}
			c.mu.Unlock()
		}
		return r, nil
	})
	if err != nil {
		return nil, false, err
	}
	return result.(*report.Report), hit, nil
}

func (c *reportCache) lookup(key string) (*report.Report, bool) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if entry.IsExpired() {
		c.mu.Lock()
		// Another caller may have stored a fresh entry meanwhile
		if c.entries[key] == entry {
			delete(c.entries, key)
		}
		c.mu.Unlock()
		return nil, false
	}
	return entry.report, true
}

// sweepLocked drops every expired entry. The caller holds mu.
func (c *reportCache) sweepLocked() {
	for key, entry := range c.entries {
		if entry.IsExpired() {
			delete(c.entries, key)
		}
	}
}

// Fingerprint identifies a snapshot independent of item order.
func Fingerprint(items []item.Item) string {
	sorted := make([]item.Item, len(items))
	copy(sorted, items)
	sort.SliceStable(sorted, func(i, j int) bool {
		if item.Less(sorted[i], sorted[j]) {
			return true
		}
		if item.Less(sorted[j], sorted[i]) {
			return false
		}
		// Full ties (same id twice) are ordered by content
		return string(mustJSON(sorted[i])) < string(mustJSON(sorted[j]))
	})

	h := sha256.New()
	enc := json.NewEncoder(h)
	for _, it := range sorted {
		// Item holds only plain values, so encoding cannot fail
		_ = enc.Encode(it)
	}
	return hex.EncodeToString(h.Sum(nil))
}

func mustJSON(it item.Item) []byte {
	b, _ := json.Marshal(it)
	return b
}
