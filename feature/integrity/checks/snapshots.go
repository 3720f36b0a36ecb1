package checks

import (
	"bytes"
	"context"
	"strings"

	"stash-recipes/core/storage"
	"stash-recipes/feature/stash"
)

// SnapshotIssue describes a stored page that cannot be matched.
type SnapshotIssue struct {
	Key    string `json:"key"`
	Reason string `json:"reason"`
}

// SnapshotReport is the result of a snapshot check.
type SnapshotReport struct {
	Snapshots int             `json:"snapshots"`
	Pages     int             `json:"pages"`
	Issues    []SnapshotIssue `json:"issues"`
}

// CheckSnapshots decodes every page under prefix. Pages must live in a snapshot folder,
// decode as stash-tab documents and hold at least one item.
func CheckSnapshots(ctx context.Context, client storage.Client, bucket, prefix string) (*SnapshotReport, error) {
	keys, err := storage.ListKeys(ctx, client, bucket, prefix)
	if err != nil {
		return nil, err
	}

	report := &SnapshotReport{Issues: []SnapshotIssue{}}
	folders := make(map[string]struct{})

	for _, key := range keys {
		rel := strings.TrimPrefix(key, prefix)
		folder, _, ok := strings.Cut(rel, "/")
		if !ok {
			report.Issues = append(report.Issues, SnapshotIssue{Key: key, Reason: "page outside a snapshot folder"})
			continue
		}
		folders[folder] = struct{}{}
		report.Pages++

		data, err := storage.ReadObject(ctx, client, bucket, key)
		if err != nil {
			report.Issues = append(report.Issues, SnapshotIssue{Key: key, Reason: err.Error()})
			continue
		}
		doc, err := stash.Decode(bytes.NewReader(data))
		if err != nil {
			report.Issues = append(report.Issues, SnapshotIssue{Key: key, Reason: err.Error()})
			continue
		}
		if len(doc.Items) == 0 {
			report.Issues = append(report.Issues, SnapshotIssue{Key: key, Reason: "page has no items"})
		}
	}

	report.Snapshots = len(folders)
	return report, nil
}
