// Package storage wraps the MinIO client used for the stash bucket.
//
// The bucket holds two folders: stash snapshot documents under the snapshot prefix and
// stored match reports under the report prefix. Client is the subset of the MinIO API the
// application needs; core/storage/mocks provides a testify mock of it.
//
// ListKeys and ReadObject are small helpers over ListObjects and GetObject shared by the
// snapshot source, the recipes service and the integrity check.
//
// # Usage
//
//	client, err := storage.NewClient(cfg.Storage)
//	keys, err := storage.ListKeys(ctx, client, cfg.Storage.Bucket, cfg.Storage.SnapshotPrefix)
package storage
