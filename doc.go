// Package dufs implements a minimal HTTP file server that exposes a single
// local directory for browsing, download, upload, deletion, recursive
// search, and bulk ZIP download. It is a developer tool for ad-hoc sharing
// on a LAN or local host.
//
// The root package holds the transient data model and the path resolution
// rules; everything a request touches on disk is confined to one
// canonicalized root directory by a lexical containment check.
//
// # Key Components
//
//   - ResolvePath: translates a percent-encoded request URI into an
//     absolute filesystem path under the serving root, rejecting escapes
//   - PathItem / IndexData: one listing row and the payload injected into
//     the index page, with a total order over (type, name, mtime, size)
//   - filesystem: listings, recursive search, streaming ZIP assembly,
//     uploads and recursive deletion
//   - http: the chi-based dispatcher, Basic-auth gate and index renderer
//   - config: the immutable serving configuration shared by all requests
//
// See cmd/dufs for the server binary.
package dufs
