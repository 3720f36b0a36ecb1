// Package report aggregates a partition.MatchResult into the read-only view handed to
// presentation layers (CLI tables, HTTP responses, stored documents).
//
// Build performs no matching of its own: it counts sets per recipe name, lists the items
// of every set, counts the full inventory per category and per rare item level band, and
// lists leftovers. Output is deterministic so that two reports of the same match encode to
// identical bytes.
package report
