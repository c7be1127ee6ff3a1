// Package webchunk provides a client for a remote content-extraction service.
// A user submits a URL and an optional query; the service returns text
// fragments of the page scored by relevance to the query.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., http/, goquery/, rod/).
package webchunk
