// Package integrity provides health checks for the storage and database the recipe
// service depends on.
//
// # Checks Provided
//
//   - Structure: Checks that the snapshot and report folders exist in the storage bucket.
//   - Snapshots: Decodes every stored snapshot page and lists pages that cannot be matched
//     (undecodable, empty, or outside a snapshot folder).
//   - Server: Validates that the run history table matches the MatchRun model (columns, types).
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/structure : Runs structure check (supports ?fix=true).
//   - GET /integrity/snapshots : Runs snapshot check.
//   - GET /integrity/server : Runs server schema check.
package integrity
