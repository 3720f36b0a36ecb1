package storage

import "strings"

// Config holds configuration for the storage provider.
type Config struct {
	// Endpoint is the URL of the storage service.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket holds stash snapshots and stored reports.
	Bucket string `mapstructure:"bucket" default:"stash-recipes"`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
	// SnapshotPrefix is the folder of stash snapshot documents.
	SnapshotPrefix string `mapstructure:"snapshot_prefix" default:"snapshots/"`
	// ReportPrefix is the folder of stored match reports.
	ReportPrefix string `mapstructure:"report_prefix" default:"reports/"`
}

// SnapshotKey returns the object name of a snapshot.
func (c Config) SnapshotKey(name string) string {
	return joinPrefix(c.SnapshotPrefix, name)
}

// ReportKey returns the object name of a stored report.
func (c Config) ReportKey(name string) string {
	return joinPrefix(c.ReportPrefix, name)
}

func joinPrefix(prefix, name string) string {
	name = strings.TrimPrefix(name, "/")
	if prefix == "" {
		return name
	}
	if strings.HasPrefix(name, prefix) {
		return name
	}
	return strings.TrimSuffix(prefix, "/") + "/" + name
}
