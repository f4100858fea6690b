// Package tropy crawls a wiki-style content site and caches the "tropes" it
// finds. List pages yield lightweight references to other tropes; detail pages
// resolve a single trope's metadata and raw HTML. A local SQLite cache records
// what is known so repeated runs only fetch what is still missing.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, http/).
package tropy
