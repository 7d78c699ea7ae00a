// Package bookshelf aggregates book metadata from external catalogs.
// It queries several catalogs concurrently, normalizes their answers
// into a canonical Book, deduplicates them by identity and ranks them
// by fuzzy textual relevance.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, goquery/, levenshtein/).
package bookshelf
