// Package krpcdocs provides a locally cached, searchable index of the kRPC
// Python documentation site. It crawls a bounded set of pages under one URL
// prefix, extracts page text and per-anchor API member definitions, persists
// the result to a local cache, and answers free-text search, page lookup,
// and fuzzy member resolution queries behind a staleness-gated index.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, sqlite/, http/).
package krpcdocs
