// Package baysearch extracts structured listing data from marketplace
// search-results pages. It turns one semi-structured HTML document into a
// typed SearchResult: organic listings, promoted ads, the total result
// count, the buyer's location label, and per-condition facet counts.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., goquery/, http/, sqlite/).
package baysearch
