// Package http provides the request dispatcher for dufs: method routing
// over a chi router, the Basic-auth gate, access logging, and the index
// page renderer. Handlers stream file and archive bodies and map every
// internal failure to a bare status response; error details stay in the
// server log.
package http
