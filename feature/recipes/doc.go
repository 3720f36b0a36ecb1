// Package recipes exposes vendor recipe matching as a service.
//
// The Service loads stash snapshots (uploaded documents, stored bucket snapshots or local
// files), runs the partitioner over them and aggregates the outcome into a report.
// Reports are cached per snapshot fingerprint, so repeated requests for an unchanged
// stash reuse the previous result. When persistence is enabled, every report is written
// to the bucket as JSON under the report prefix and a MatchRun row is recorded in the
// history database.
//
// # Snapshots
//
// A stored snapshot is a folder under the snapshot prefix. Every object in the folder is
// one stash-tab page; pages are read concurrently and become tabs in key order:
//
//	snapshots/
//	  2026-10-01/
//	    tab-00.json
//	    tab-01.json
//
// # HTTP Endpoints
//
//   - GET /recipes : Lists the recipe definitions in priority order.
//   - POST /recipes/match : Matches the stash-tab document in the body (?tab=, ?format=).
//   - GET /recipes/snapshots : Lists the stored snapshots.
//   - GET /recipes/snapshots/:name : Matches a stored snapshot (?format=).
//   - GET /recipes/reports/:fingerprint : Returns a persisted report.
//   - GET /recipes/history : Lists recorded runs, newest first (?limit=).
//   - DELETE /recipes/history : Removes runs and reports older than ?older_than= (e.g. 720h).
package recipes
