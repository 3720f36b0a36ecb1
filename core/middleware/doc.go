// Package middleware groups the fiber middleware of the HTTP server.
//
//   - auth: API key validation on every protected route.
//   - rayid: a request id (ray id) per request, stored in the fiber locals and echoed in
//     the X-Ray-ID response header so log lines can be correlated.
//
// rayid is registered first so that every later log line carries the id.
package middleware
