// Package config loads the stash-recipes configuration.
//
// Values come from environment variables, optionally seeded from a .env file, with
// defaults declared on the struct tags of each section. Nested keys map to upper-case
// environment names joined by underscores (server.api_key -> SERVER_API_KEY).
//
// # Configuration Structure
//
//   - Server: HTTP port, API key, stash realm
//   - Storage: S3/MinIO credentials, bucket, snapshot and report prefixes
//   - Database: driver (mysql, sqlite) and connection details for the run history
//   - Log: level and format
//   - Match: report cache TTL, persistence toggle
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.Server.Port)
package config
