// Package pincrawl collects image URLs from lazily-rendered web pages and
// downloads the best reachable variant of each image to local storage.
// Collection drives a browser through repeated scroll/extract cycles; the
// download stage is a bounded worker pool with size and dimension filtering.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., rod/, goquery/, http/).
package pincrawl
