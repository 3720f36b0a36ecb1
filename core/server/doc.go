// Package server holds the HTTP server configuration.
//
// The start command builds the fiber application from it; the realm names which stash
// realm the served snapshots belong to and is validated at startup.
package server
