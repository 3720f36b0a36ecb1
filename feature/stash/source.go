package stash

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"stash-recipes/core/item"
	"stash-recipes/core/storage"

	"golang.org/x/sync/errgroup"
)

// maxConcurrentPages bounds concurrent page reads.
const maxConcurrentPages = 4

// Source loads every item of a stash snapshot.
type Source interface {
	Load(ctx context.Context) ([]item.Item, error)
}

// FileSource reads stash-tab documents from local files. The n-th path is tab n.
type FileSource struct {
	Paths []string
}

// NewFileSource returns a FileSource over paths.
func NewFileSource(paths ...string) *FileSource {
	return &FileSource{Paths: paths}
}

// Load reads and parses every file.
func (s *FileSource) Load(ctx context.Context) ([]item.Item, error) {
	return loadPages(ctx, len(s.Paths), func(_ context.Context, tab int) ([]item.Item, error) {
		data, err := os.ReadFile(s.Paths[tab])
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", s.Paths[tab], err)
		}
		items, err := Parse(bytes.NewReader(data), tab)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.Paths[tab], err)
		}
		return items, nil
	})
}

// ObjectSource reads stash-tab documents from the bucket. With no explicit Keys, every
// object under Prefix is a page, in key order.
type ObjectSource struct {
	Client storage.Client
	Bucket string
	Prefix string
	Keys   []string
}

// NewObjectSource returns a source over the given object keys.
func NewObjectSource(client storage.Client, bucket string, keys ...string) *ObjectSource {
	return &ObjectSource{Client: client, Bucket: bucket, Keys: keys}
}

// Load fetches and parses every page.
func (s *ObjectSource) Load(ctx context.Context) ([]item.Item, error) {
	keys := s.Keys
	if len(keys) == 0 {
		listed, err := storage.ListKeys(ctx, s.Client, s.Bucket, s.Prefix)
		if err != nil {
			return nil, err
		}
		if len(listed) == 0 {
			return nil, fmt.Errorf("no snapshot pages under %s/%s", s.Bucket, s.Prefix)
		}
		keys = listed
	}

	return loadPages(ctx, len(keys), func(ctx context.Context, tab int) ([]item.Item, error) {
		data, err := storage.ReadObject(ctx, s.Client, s.Bucket, keys[tab])
		if err != nil {
			return nil, err
		}
		items, err := Parse(bytes.NewReader(data), tab)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", keys[tab], err)
		}
		return items, nil
	})
}

// Static is a Source over items already in memory.
type Static []item.Item

// Load returns a copy of the items.
func (s Static) Load(context.Context) ([]item.Item, error) {
	return append([]item.Item(nil), s...), nil
}

// loadPages runs fetch for every page concurrently and concatenates the results in page
// order once all of them succeeded.
func loadPages(ctx context.Context, n int, fetch func(ctx context.Context, tab int) ([]item.Item, error)) ([]item.Item, error) {
	pages := make([][]item.Item, n)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentPages)
	for tab := 0; tab < n; tab++ {
		g.Go(func() error {
			items, err := fetch(gctx, tab)
			if err != nil {
				return err
			}
			pages[tab] = items
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	total := 0
	for _, p := range pages {
		total += len(p)
	}
	out := make([]item.Item, 0, total)
	for _, p := range pages {
		out = append(out, p...)
	}
	return out, nil
}

// PageNames returns the base names of keys under prefix, sorted.
func PageNames(keys []string, prefix string) []string {
	out := make([]string, 0, len(keys))
	for _, k := range keys {
		if name := strings.TrimPrefix(k, prefix); name != k && name != "" {
			out = append(out, name)
		}
	}
	sort.Strings(out)
	return out
}
